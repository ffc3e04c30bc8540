package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func InitWithWriter(w io.Writer) {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if os.Getenv("LOG_FORMAT") == "json" {
		l = zerolog.New(w)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	zlog.Logger = l.With().Timestamp().Str("service", "stats-service").Logger().Level(level)
}
