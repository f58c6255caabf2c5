package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutputLevels(t *testing.T) {
	testCases := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tc := range testCases {
		logger := NewWithOutput(&bytes.Buffer{}, tc.level, "text")
		if logger.GetLevel() != tc.expected {
			t.Errorf("NewWithOutput(%q) level = %s, want %s", tc.level, logger.GetLevel(), tc.expected)
		}
	}
}

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "json")

	logger.WithField("filename", "resume.pdf").Info("text extracted")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["filename"] != "resume.pdf" {
		t.Errorf("filename field = %v", entry["filename"])
	}
	if entry["msg"] != "text extracted" {
		t.Errorf("msg field = %v", entry["msg"])
	}
}

func TestNewWithOutputText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "text")

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing: %q", out)
	}
}
