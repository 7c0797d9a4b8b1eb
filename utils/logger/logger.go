package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface the rest of the service depends on.
// Services take it by interface so tests can swap in a recorder.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogger builds the process logger. Unknown levels fall back to
// info; "json" output is for environments that ship logs to a
// collector, anything else gets the human-readable form.
func NewLogger(level, format string) Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)

	if strings.EqualFold(format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	return &logrusLogger{entry: logrus.NewEntry(base)}
}

func (l *logrusLogger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *logrusLogger) Fatal(args ...interface{})                 { l.entry.Fatal(args...) }
func (l *logrusLogger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }
