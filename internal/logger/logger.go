package logger

import (
	"os"
	"strings"
	"time"

	"Petfolio/config"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	// Usable before Init runs (fx providers log during construction).
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func Init(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.App.Environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stdout).With().
			Timestamp().
			Str("app", cfg.App.Name).
			Logger()
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
