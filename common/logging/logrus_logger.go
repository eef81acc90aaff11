package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
)

// NewFromLogrus creates a Logger from the provided logrus logger.
func NewFromLogrus(log *logrus.Logger) interfaces.Logger {
	return &logrusLogger{
		entry: logrus.NewEntry(log),
	}
}

// NewDiscard creates a Logger that discards all output. Intended for tests.
func NewDiscard() interfaces.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewFromLogrus(log)
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debug(msg string) { l.entry.Debug(msg) }
func (l *logrusLogger) Info(msg string)  { l.entry.Info(msg) }
func (l *logrusLogger) Warn(msg string)  { l.entry.Warn(msg) }
func (l *logrusLogger) Error(msg string) { l.entry.Error(msg) }
func (l *logrusLogger) Fatal(msg string) { l.entry.Fatal(msg) }

func (l *logrusLogger) WithField(key string, value interface{}) interfaces.Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *logrusLogger) WithError(err error) interfaces.Logger {
	return &logrusLogger{entry: l.entry.WithError(err)}
}
