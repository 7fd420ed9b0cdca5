package mylog

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type standardLogger struct {
	componentName string
	entry         *logrus.Logger
}

func newStandardLogger(componentName string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	return standardLogger{
		componentName: componentName,
		entry:         l,
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	l.entry.WithFields(logrus.Fields{
		"component": l.componentName,
		"aggregate": traceLabel,
	}).Log(toLevel(severity), fmt.Sprintf(format, a...))
}

func toLevel(severity Severity) logrus.Level {
	switch severity {
	case SeverityDebug:
		return logrus.DebugLevel
	case SeverityWarn:
		return logrus.WarnLevel
	case SeverityError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
