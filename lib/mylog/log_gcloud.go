package mylog

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/MarcGrol/salesbackend/lib/mycontext"
)

// UseStructured switches all loggers created afterwards to json-lines that Cloud Logging understands.
func UseStructured() {
	New = newStructuredLogger
}

type structuredLogger struct {
	componentName string
	entry         *logrus.Logger
}

func newStructuredLogger(componentName string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		// Timestamp is added when shipping logs to Cloud Logging.
		DisableTimestamp: true,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
	})

	return structuredLogger{
		componentName: componentName,
		entry:         l,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := logrus.Fields{
		"component": l.componentName,
		"logging.googleapis.com/labels": map[string]string{
			"aggregate": traceLabel,
		},
	}
	if trace, ok := ctx.Value(mycontext.CtxTraceContext{}).(string); ok && trace != "" {
		fields["logging.googleapis.com/trace"] = trace
	}

	l.entry.WithFields(fields).Log(toLevel(severity), l.componentName+":"+fmt.Sprintf(format, a...))
}
