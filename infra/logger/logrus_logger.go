package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Logger using sirupsen/logrus.
type LogrusLogger struct {
	log *logrus.Entry
}

// logrusLevel is shared by all logrus-backed loggers and adjusted by SetLevel.
var logrusLevel = logrus.DebugLevel

// NewLogrusLogger returns a logrus-backed Logger tagging every record with
// the component name. APP_ENV=dev switches from JSON to text output.
func NewLogrusLogger(component string) Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrusLevel)
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
	return &LogrusLogger{log: base.WithField("component", component)}
}

func (l *LogrusLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *LogrusLogger) Debugw(msg string, fields map[string]any) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *LogrusLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *LogrusLogger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *LogrusLogger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}
