package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Levels accepted in configuration, lowest first.
var Levels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

// Initialize sets up the global logger. Development mode writes human
// readable output at debug level, otherwise JSON at info level.
func Initialize(isDevelopment bool) {
	InitializeWithWriter(isDevelopment, os.Stdout)
}

// InitializeWithWriter is Initialize with an explicit destination
func InitializeWithWriter(isDevelopment bool, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	output := out
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if isDevelopment {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// GetLogger returns a logger with the component field set
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// IsValidLevel reports whether level is one of Levels
func IsValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// SetLogLevel sets the global log level. Unknown levels fall back to info
// and are reported as an error.
func SetLogLevel(level string) error {
	if !IsValidLevel(level) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return fmt.Errorf("unknown log level %q, using info", level)
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return fmt.Errorf("failed to parse log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}
