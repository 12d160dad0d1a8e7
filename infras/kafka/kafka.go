package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"stayengine/config"
	"stayengine/infras/otel"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// DecodeKafkaMessage unmarshals the JSON value of msg into T.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	err := json.Unmarshal(msg.Value, &value)
	if err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to unmarshal Kafka message value from JSON")

		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler)
	Close() error
}

const (
	defaultRetryInitialInterval = 500 * time.Millisecond
	defaultRetryMaxInterval     = 30 * time.Second
)

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
	retry  retryPolicy
}

// retryPolicy spaces out attempts on a failing message or reader.
type retryPolicy struct {
	initial time.Duration
	max     time.Duration
}

func newRetryPolicy(cfg *config.Config) retryPolicy {
	policy := retryPolicy{initial: cfg.Kafka.Retry.InitialInterval, max: cfg.Kafka.Retry.MaxInterval}

	if policy.initial <= 0 {
		policy.initial = defaultRetryInitialInterval
	}

	if policy.max < policy.initial {
		policy.max = max(defaultRetryMaxInterval, policy.initial)
	}

	return policy
}

func (p retryPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initial
	b.MaxInterval = p.max
	b.Reset()

	return b
}

// messageReader is the part of *kafkaGo.Reader the consume loop needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

func New(config *config.Config) Client {
	dialer := &kafkaGo.Dialer{
		DualStack: true,
	}

	transport := &kafkaGo.Transport{}

	if config.Kafka.SASL.Username != "" {
		mechanism := plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkaGo.RequireOne,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: dialer,
		writer: writer,
		retry:  newRetryPolicy(config),
	}
}

func (k *kafkaClientImpl) reader(consumerGroup, topic string) *kafkaGo.Reader {
	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
}

// SendMessages publishes messages keyed so that one aggregate always lands on the same partition.
func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msg.Headers = traceHeaders(ctx)
		msgs = append(msgs, msg)
	}

	err = k.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Info().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

// Consume reads topic until ctx is done or the reader is closed. A message is committed only
// after handler succeeds, and a failing message is retried with backoff before the next one is
// fetched: a group commit covers every earlier offset, so moving on would lose it.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) {
	if topic == "" {
		log.Error().Msg("Topic name cannot be empty when creating Kafka reader")

		return
	}

	reader := k.reader(consumerGroup, topic)

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	consume(ctx, reader, topic, handler, k.retry)
}

func consume(ctx context.Context, reader messageReader, topic string, handler Handler, policy retryPolicy) {
	fetchBackOff := policy.backOff()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return
			}

			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				log.Warn().Err(err).Str("topic", topic).Msg("Kafka reader closed, stopping consumer.")

				return
			}

			wait := fetchBackOff.NextBackOff()
			log.Error().Err(err).Str("topic", topic).Dur("retry_in", wait).Msg("Failed to read message from Kafka.")

			if !sleep(ctx, wait) {
				return
			}

			continue
		}

		fetchBackOff.Reset()

		log.Info().Str("topic", topic).Str("key", string(msg.Key)).Msg("Received message from Kafka.")

		if !handleUntilDone(ctx, topic, msg, handler, policy) {
			log.Info().Str("topic", topic).Int64("offset", msg.Offset).Msg("Consumer context done before message was handled.")

			return
		}

		// A lost commit only means redelivery; the next commit covers this offset.
		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
	}
}

// handleUntilDone runs handler on msg until it succeeds. It returns false only when ctx ends first.
func handleUntilDone(ctx context.Context, topic string, msg kafkaGo.Message, handler Handler, policy retryPolicy) bool {
	msgCtx := traceContext(ctx, msg)

	operation := func() (struct{}, error) {
		return struct{}{}, handler(msgCtx, msg)
	}

	notify := func(err error, next time.Duration) {
		log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).
			Dur("retry_in", next).Msg("Failed to handle Kafka message.")
	}

	for ctx.Err() == nil {
		_, err := backoff.Retry(ctx, operation,
			backoff.WithBackOff(policy.backOff()),
			backoff.WithMaxElapsedTime(0),
			backoff.WithNotify(notify),
		)
		if err == nil {
			return true
		}
	}

	return false
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}

func traceHeaders(ctx context.Context) []kafkaGo.Header {
	carrier := otel.Inject(ctx)

	headers := make([]kafkaGo.Header, 0, len(carrier))
	for key, value := range carrier {
		headers = append(headers, kafkaGo.Header{Key: key, Value: []byte(value)})
	}

	return headers
}

func traceContext(ctx context.Context, msg kafkaGo.Message) context.Context {
	if len(msg.Headers) == 0 {
		return ctx
	}

	carrier := make(map[string]string, len(msg.Headers))
	for _, header := range msg.Headers {
		carrier[header.Key] = string(header.Value)
	}

	return otel.ExtractMap(ctx, carrier)
}
