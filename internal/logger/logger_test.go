package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_ProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)
	log.Debug("hidden")
	log.Info("submitted", "form", "register")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single info line, got %q", buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected JSON record: %v", err)
	}
	if record["msg"] != "submitted" || record["form"] != "register" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestNewWithWriter_DevIsTextWithDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("dev", &buf)
	log.Debug("draft created", "session", "abc")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "session=abc") {
		t.Fatalf("unexpected text output %q", out)
	}
}
