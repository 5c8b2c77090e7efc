package cli

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(level string, w io.Writer) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch s := strings.ToLower(strings.TrimSpace(level)); s {
	case "off":
		lvl = zerolog.Disabled
	case "":
	default:
		if l, err := zerolog.ParseLevel(s); err == nil && l != zerolog.NoLevel {
			lvl = l
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
}
