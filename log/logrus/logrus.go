package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/subcipher"
)

var _ subcipher.Logger = Logger{}

// Logger adapts a logrus entry; every record carries component=subcipher.
type Logger struct{ E *logrus.Entry }

func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "subcipher")}
}

func (l Logger) Debug(msg string, f subcipher.Fields) { l.E.WithFields(logrus.Fields(f)).Debug(msg) }
func (l Logger) Info(msg string, f subcipher.Fields)  { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f subcipher.Fields)  { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f subcipher.Fields) { l.E.WithFields(logrus.Fields(f)).Error(msg) }
