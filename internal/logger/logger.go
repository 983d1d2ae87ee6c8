package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

var (
	errUnknownLogLevel  = errors.New("unknown log level")
	errUnknownLogFormat = errors.New("unknown log format")
)

// New builds a logger writing to w. Debug loggers also record the caller.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	var logLevel zerolog.Level
	switch level {
	case zerolog.LevelDebugValue:
		logLevel = zerolog.DebugLevel
	case zerolog.LevelInfoValue, "":
		logLevel = zerolog.InfoLevel
	case zerolog.LevelWarnValue:
		logLevel = zerolog.WarnLevel
	case zerolog.LevelErrorValue:
		logLevel = zerolog.ErrorLevel
	default:
		return zerolog.Logger{}, fmt.Errorf("log level %s: %w", level, errUnknownLogLevel)
	}

	var out io.Writer
	switch format {
	case FormatJSON:
		out = w
	case FormatText, "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Logger{}, fmt.Errorf("log format %s: %w", format, errUnknownLogFormat)
	}

	ctx := zerolog.New(out).Level(logLevel).With().Timestamp()
	if logLevel == zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}

// Setup installs a stderr logger as the global and default context logger.
func Setup(level, format string) error {
	l, err := New(os.Stderr, level, format)
	if err != nil {
		return fmt.Errorf("get logger: %w", err)
	}
	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return nil
}
