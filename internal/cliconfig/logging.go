package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Logger returns the diagnostic logger used before configuration is loaded.
// It writes to stderr so that results on stdout stay clean.
func Logger() zerolog.Logger {
	return logger
}
