package app

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the component-tagged logger handed to every subsystem.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes logrus text records with a component field.
type FileLogger struct{ log *logrus.Logger }

func NewFileLogger(w io.Writer, debug bool) FileLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return FileLogger{log: l}
}

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Infof(format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Errorf(format, args...)
}
