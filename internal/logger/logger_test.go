package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
		wantInfo  bool
		wantError bool
	}{
		{"default shows info", Options{}, false, true, true},
		{"debug shows everything", Options{Debug: true}, true, true, true},
		{"quiet shows only errors", Options{Quiet: true}, false, false, true},
		{"quiet wins over debug", Options{Debug: true, Quiet: true}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			Init(tt.opts)

			Debug("debug-line")
			Info("info-line")
			Error("error-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "error-line"); got != tt.wantError {
				t.Errorf("error logged = %v, want %v", got, tt.wantError)
			}
		})
	}
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSON: true, Output: &buf})

	Info("hello", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", record["msg"])
	}
	if record["key"] != "value" {
		t.Errorf("expected key attribute, got %v", record["key"])
	}
}

func TestInitCustomLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	Init(Options{Logger: custom, Quiet: true})

	Info("through-custom")
	if !strings.Contains(buf.String(), "through-custom") {
		t.Error("expected the custom logger to receive records")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Warn("warned")
	if !strings.Contains(buf.String(), "warned") {
		t.Error("expected the installed logger to receive records")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})

	With("component", "cleaner").Info("scoped")

	out := buf.String()
	if !strings.Contains(out, "scoped") || !strings.Contains(out, "component=cleaner") {
		t.Errorf("expected scoped record with attribute, got %q", out)
	}
}
