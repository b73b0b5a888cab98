package internal

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lrn-oss/lrc/internal/config"
	"github.com/spf13/viper"
)

type DefaultLogHandler struct {
	*slog.TextHandler
}

type DiscardLogHandler struct {
	*slog.TextHandler
}

func newDefaultLogHandler(opts *slog.HandlerOptions) slog.Handler {
	return &DefaultLogHandler{
		TextHandler: slog.NewTextHandler(os.Stderr, opts),
	}
}

func newDiscardLogHandler(opts *slog.HandlerOptions) slog.Handler {
	return &DiscardLogHandler{
		TextHandler: slog.NewTextHandler(io.Discard, opts),
	}
}

// InitLogging sets the default slog logger. Logging is enabled by the "log" flag or by any log level other than "off"
func InitLogging() {
	initLogging(false)
}

// InitServerLogging sets the default slog logger for long-running commands. Logging is enabled unless the log level
// is "off"
func InitServerLogging() {
	initLogging(true)
}

func initLogging(enabledByDefault bool) {
	logLevel := strings.TrimSpace(viper.GetString(config.KeyLogLevel))
	var logEnabled bool
	switch {
	case strings.EqualFold(logLevel, config.LogLevelOff):
		logEnabled = false
	case logLevel != "":
		logEnabled = true
	default:
		logEnabled = enabledByDefault || viper.GetBool(config.KeyLog)
	}

	var level slog.Level
	err := level.UnmarshalText([]byte(logLevel))
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if logEnabled {
		handler = newDefaultLogHandler(opts)
	} else {
		handler = newDiscardLogHandler(opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
}
