package kafka_test

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/infras/kafka"
)

type invoicePaid struct {
	BookingID string `json:"booking_id"`
}

func TestToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: invoicePaid{BookingID: "booking-1"}}

	out, err := msg.ToKafkaMessage("invoice.paid")
	require.NoError(t, err)

	assert.Equal(t, "invoice.paid", out.Topic)
	assert.Equal(t, []byte("booking-1"), out.Key)
	assert.JSONEq(t, `{"booking_id":"booking-1"}`, string(out.Value))
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("topic")
	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	decoded, err := kafka.DecodeKafkaMessage[invoicePaid](kafkaGo.Message{Value: []byte(`{"booking_id":"b-9"}`)})
	require.NoError(t, err)
	assert.Equal(t, "b-9", decoded.BookingID)

	_, err = kafka.DecodeKafkaMessage[invoicePaid](kafkaGo.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}
