// Package logger builds the zerolog logger used across sellerstore.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"sellerstore/internal/config"
)

// New returns a logger writing to w at the configured level. A nil w means
// stderr. Unknown levels fall back to info.
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "sellerstore").Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
