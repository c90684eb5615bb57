// Package logger provides the structured logger used by the drivers. Logs
// are JSON by default; set FCSIM_ENV=dev for a human-readable console
// format.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the given component field.
func New(component string) zerolog.Logger {
	env := strings.ToLower(os.Getenv("FCSIM_ENV"))
	if env == "dev" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("component", component).Logger()
}
