package logger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"

	corelogger "github.com/ptbdnr/vrp/core/logger"
)

// Logger aliases the core interface so infra constructors satisfy core
// signatures directly.
type Logger = corelogger.Logger

// NopLogger discards every record. Components accept it where logging is
// optional.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the default zerolog-backed Logger for the component. APP_ENV
// selects the output format, see NewZerologLogger.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// NewWithBackend returns a Logger using the named backend. Unknown names fall
// back to zerolog.
func NewWithBackend(backend, component string) Logger {
	switch strings.ToLower(backend) {
	case "logrus":
		return NewLogrusLogger(component)
	default:
		return NewZerologLogger(component)
	}
}

// SetLevel adjusts the minimum severity emitted by loggers of both backends.
// Unknown names fall back to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logrusLevel = logrus.DebugLevel
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		logrusLevel = logrus.WarnLevel
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		logrusLevel = logrus.ErrorLevel
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logrusLevel = logrus.InfoLevel
	}
}
