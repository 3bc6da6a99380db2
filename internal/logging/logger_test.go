package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "petak", "debug")
	log.WithField("match_id", "m1").Debug("saved")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["service"] != "petak" || line["match_id"] != "m1" || line["msg"] != "saved" {
		t.Errorf("unexpected fields: %v", line)
	}
}

func TestNewLogger_LevelFallback(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		if got := newLogger(&bytes.Buffer{}, "petak", level).Logger.GetLevel(); got != logrus.InfoLevel {
			t.Errorf("level %q: expected info, got %v", level, got)
		}
	}
	if got := newLogger(&bytes.Buffer{}, "petak", "warn").Logger.GetLevel(); got != logrus.WarnLevel {
		t.Errorf("expected warn, got %v", got)
	}
}
