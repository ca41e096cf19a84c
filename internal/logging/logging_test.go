package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lantern.log")

	logger, err := New("debug", path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("dungeon generated")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "dungeon generated") {
		t.Errorf("log file missing message: %s", content)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("loud", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Error("New() should reject an unknown level")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("nonsense", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("dropped")
}
