package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development keeps debug output and colored
// console rendering; production logs info and up without color.
func New(environment string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("service", "gamewise-api").
		Str("env", environment).
		Logger()

	switch environment {
	case "production":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "test":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	return logger
}
