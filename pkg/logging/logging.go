package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New : console logger used by every binary , level falls back to info when unparsable
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
