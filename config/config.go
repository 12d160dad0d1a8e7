package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	DefaultServiceFeeRate = "0.07"
	DefaultCurrency       = "USDT"

	// MaxCurrencyLength matches the width of every currency column.
	MaxCurrencyLength = 10
)

type Config struct {
	Server struct {
		Env       string `envconfig:"ENV"`
		LogLevel  string `envconfig:"LOG_LEVEL"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
		Port      string `envconfig:"PORT"`
		Host      string `envconfig:"HOST"`
		Shutdown  struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry        int    `envconfig:"MAX_RETRY"          default:"5"`
			RetryWaitTime   int    `envconfig:"RETRY_WAIT_TIME"    default:"2"`
			MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS"     default:"20"`
			MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS"     default:"10"`
			ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME"  default:"30"`
			MigrationTable  string `envconfig:"MIGRATION_TABLE"    default:"schema_migrations"`
			MigrationPath   string `envconfig:"MIGRATION_PATH"     default:"migrations/postgres"`
			AutoMigrate     bool   `envconfig:"AUTO_MIGRATE"`
			Prefix          string `envconfig:"PREFIX"`
			Read            struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingEvents string `envconfig:"BOOKING_EVENTS" default:"booking.events"`
			PayoutEvents  string `envconfig:"PAYOUT_EVENTS"  default:"payout.events"`
			InvoicePaid   string `envconfig:"INVOICE_PAID"   default:"invoice.paid"`
		} `envconfig:"TOPICS"`
		Retry struct {
			InitialInterval time.Duration `envconfig:"INITIAL_INTERVAL" default:"500ms"`
			MaxInterval     time.Duration `envconfig:"MAX_INTERVAL"     default:"30s"`
		} `envconfig:"RETRY"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`

	Rental struct {
		ServiceFeeRate         string `envconfig:"SERVICE_FEE_RATE"         default:"0.07"`
		Currency               string `envconfig:"CURRENCY"                 default:"USDT"`
		PaymentInstructions    string `envconfig:"PAYMENT_INSTRUCTIONS"     default:"Transfer {amount} {currency} referencing invoice {invoice_id}"`
		MaxCalendarDays        int    `envconfig:"MAX_CALENDAR_DAYS"        default:"366"`
		CompletionSweepSeconds int    `envconfig:"COMPLETION_SWEEP_SECONDS" default:"3600"`
		PayoutExportDirectory  string `envconfig:"PAYOUT_EXPORT_DIRECTORY"  default:"payouts"`
	} `envconfig:"RENTAL"`
}

// ServiceFeeRate returns the platform commission rate applied to booking subtotals.
// An unset or malformed value falls back to DefaultServiceFeeRate.
func (c *Config) ServiceFeeRate() decimal.Decimal {
	if c.Rental.ServiceFeeRate == "" {
		return decimal.RequireFromString(DefaultServiceFeeRate)
	}

	rate, err := decimal.NewFromString(c.Rental.ServiceFeeRate)
	if err != nil || rate.IsNegative() {
		log.Error().Err(err).Str("rate", c.Rental.ServiceFeeRate).Msg("invalid service fee rate, using default")

		return decimal.RequireFromString(DefaultServiceFeeRate)
	}

	return rate
}

// Currency is the settlement currency stamped on new properties.
// A value wider than MaxCurrencyLength falls back to DefaultCurrency.
func (c *Config) Currency() string {
	if c.Rental.Currency == "" {
		return DefaultCurrency
	}

	if len(c.Rental.Currency) > MaxCurrencyLength {
		log.Error().Str("currency", c.Rental.Currency).Msg("currency code too long, using default")

		return DefaultCurrency
	}

	return c.Rental.Currency
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
