package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	tests := []struct {
		name      string
		level     string
		format    string
		wantErr   bool
		wantLevel log.Level
	}{
		{"text info", "info", "text", false, log.InfoLevel},
		{"default format", "debug", "", false, log.DebugLevel},
		{"json warn", "warn", "json", false, log.WarnLevel},
		{"bad level", "loud", "text", true, 0},
		{"bad format", "info", "xml", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Setup(&buf, tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Setup() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && log.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.wantLevel)
			}
		})
	}
}

func TestSetupJSONOutput(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	var buf bytes.Buffer
	if err := Setup(&buf, "info", "json"); err != nil {
		t.Fatal(err)
	}

	log.WithField("component", "test").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if entry["msg"] != "hello" || entry["component"] != "test" {
		t.Errorf("entry = %v", entry)
	}
}

func TestSetupTextOutput(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	var buf bytes.Buffer
	if err := Setup(&buf, "info", "text"); err != nil {
		t.Fatal(err)
	}

	log.WithField("component", "web").Info("Starting server")

	out := buf.String()
	if !strings.Contains(out, "[web]") || !strings.Contains(out, "Starting server") {
		t.Errorf("output = %q, want component and message", out)
	}
}
