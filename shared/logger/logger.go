package logger

import (
	"io"
	"os"
	"time"

	"stayengine/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const FormatJSON = "json"

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies the configured level and output format to the global logger.
// An unparsable level falls back to trace.
func SetLogLevel(cfg *config.Config) {
	if cfg.Server.LogFormat == FormatJSON {
		log.Logger = New(os.Stdout, cfg)
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// New builds a structured logger tagged with the service name and environment.
func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(out).With().Timestamp()

	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	if cfg.Server.Env != "" {
		ctx = ctx.Str("env", cfg.Server.Env)
	}

	return ctx.Logger()
}
