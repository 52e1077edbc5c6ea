package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Warn(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	entry *logrus.Entry
}

// New returns a JSON logger writing to stdout.
func New(service, level string) Logger {
	return NewWithWriter(service, level, os.Stdout)
}

func NewWithWriter(service, level string, w io.Writer) Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000000000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: FieldTimestamp,
			logrus.FieldKeyMsg:  FieldMessage,
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	hostname, _ := os.Hostname()
	return &jsonLogger{
		entry: base.WithFields(logrus.Fields{
			FieldService:  service,
			FieldHostname: hostname,
		}),
	}
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details).Info(message)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details).Debug(message)
}

func (l *jsonLogger) Warn(action, message, requestID string, details map[string]interface{}) {
	l.with(action, requestID, details).Warn(message)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	e := l.with(action, requestID, details)
	if err != nil {
		e = e.WithField(FieldError, ErrorInfo{Msg: err.Error(), Type: errorType(err)})
	}
	e.Error(message)
}

func (l *jsonLogger) with(action, requestID string, details map[string]interface{}) *logrus.Entry {
	fields := logrus.Fields{
		FieldAction:    action,
		FieldRequestID: requestID,
	}
	if len(details) > 0 {
		fields[FieldDetails] = details
	}
	return l.entry.WithFields(fields)
}

// Nop discards everything. Used by tests and tools.
func Nop() Logger {
	return NewWithWriter("nop", "panic", io.Discard)
}
