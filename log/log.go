package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Print(...interface{})
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})

	WithField(key string, value interface{}) Logger
}

type logger struct {
	*logrus.Entry
}

// New returns a logger configured for env: JSON at info level in prod, text at
// debug level anywhere else.
func New(env string) Logger {
	l := logrus.New()

	if env == "prod" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{}
		l.Level = logrus.DebugLevel
	}

	return logger{l.WithField("env", env)}
}

// Discard returns a logger that writes nothing. Used by tests and by library
// code called without a logger.
func Discard() Logger {
	l := logrus.New()
	l.Out = io.Discard
	return logger{logrus.NewEntry(l)}
}

func (l logger) Print(args ...interface{}) {
	l.Println(args...)
}

func (l logger) Error(args ...interface{}) {
	l.Errorln(args...)
}

func (l logger) Fatal(args ...interface{}) {
	l.Fatalln(args...)
}

func (l logger) WithField(key string, value interface{}) Logger {
	return logger{l.Entry.WithField(key, value)}
}
