package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/config"
)

// New builds the process logger. Pretty output is meant for local runs only.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "appointmenttech-api").
		Logger()
}

// Nop is used by tests and by components built without a logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
