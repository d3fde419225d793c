package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure sets up the global zerolog logger with a console writer.
// The level comes from KUBEALLOC_LOG_LEVEL (debug, info, warn, error);
// unset or unknown values fall back to info.
func Configure() {
	level, err := zerolog.ParseLevel(os.Getenv("KUBEALLOC_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
