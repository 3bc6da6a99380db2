// Package logging builds the structured logger shared by the API and the
// Lambda entrypoint.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a JSON logger tagged with the service name. level is a
// logrus level name; anything unparseable falls back to info.
func NewLogger(service, level string) *logrus.Entry {
	return newLogger(os.Stdout, service, level)
}

func newLogger(out io.Writer, service, level string) *logrus.Entry {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil || strings.TrimSpace(level) == "" {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log.WithField("service", service)
}
