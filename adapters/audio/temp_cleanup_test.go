package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestTempCleanupService_RunCleanup(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-2 * time.Hour)

	files := map[string]time.Time{
		"upload_stale.mp3": old,
		"upload_fresh.wav": time.Now(),
		"unrelated.txt":    old,
	}
	for name, mtime := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("Failed to set mtime on %s: %v", name, err)
		}
	}

	s := NewTempCleanupService(dir, time.Hour, zaptest.NewLogger(t))
	if removed := s.runCleanup(time.Now()); removed != 1 {
		t.Errorf("Expected 1 file removed, got %d", removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "upload_stale.mp3")); !os.IsNotExist(err) {
		t.Error("Expected stale upload to be removed")
	}
	for _, keep := range []string{"upload_fresh.wav", "unrelated.txt"} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Errorf("Expected %s to be kept: %v", keep, err)
		}
	}
}

func TestTempCleanupService_StartStop(t *testing.T) {
	// The loop may still be sweeping after the test returns, so do not log to t
	s := NewTempCleanupService(t.TempDir(), time.Hour, zap.NewNop())
	s.Start()
	s.Stop()
	s.Stop()
}
