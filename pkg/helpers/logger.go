package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Development gets colored text at
// debug level; everything else ships JSON at info level with the service
// name on every entry.
func NewLogger(service, env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	switch env {
	case "development":
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05Z07:00"})
	}
	l.AddHook(&serviceHook{service: service, env: env})
	return l
}

// serviceHook stamps the service identity onto every entry.
type serviceHook struct {
	service string
	env     string
}

func (h *serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = h.service
	e.Data["env"] = h.env
	return nil
}
