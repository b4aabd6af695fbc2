package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{name: "debug", level: "debug", want: logrus.DebugLevel},
		{name: "warn", level: "warn", want: logrus.WarnLevel},
		{name: "invalid falls back to info", level: "loud", want: logrus.InfoLevel},
		{name: "empty falls back to info", level: "", want: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(tt.level, ""); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			if got := Log.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Init("info", path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Log.SetOutput(os.Stdout) })

	Log.WithField("model", "gemini-2.0-flash").Info("hello from test")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message, got %q", string(data))
	}
	if !strings.Contains(string(data), "model=gemini-2.0-flash") {
		t.Errorf("log file missing field, got %q", string(data))
	}
}

func TestInit_BadFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "app.log")
	if err := Init("info", path); err == nil {
		t.Fatal("expected error for unwritable log path")
	}
}
