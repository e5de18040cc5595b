package logx

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{Debug: false})

	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	logger.Info().Str("route", "help_agent").Msg("turn finished")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["route"] != "help_agent" {
		t.Fatalf("unexpected route field: %#v", entry["route"])
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatal("expected caller field")
	}
}

func TestNewDebugEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{Debug: true})
	logger.Debug().Msg("visible")
	if buf.Len() == 0 {
		t.Fatal("expected debug line")
	}
}
