package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/config"
)

func TestRecordingPath(t *testing.T) {
	r := New(config.AudioConfig{SampleRate: 16000, Channels: 1}, "/tmp/stt")
	if got := r.RecordingPath(); got != "/tmp/stt/recording.wav" {
		t.Errorf("RecordingPath(): expected /tmp/stt/recording.wav, got %s", got)
	}
}

func TestStop_WithoutStart(t *testing.T) {
	r := New(config.AudioConfig{}, t.TempDir())
	if err := r.Stop(); err != nil {
		t.Errorf("Stop() without a running recording should be a no-op, got %v", err)
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	r := New(config.AudioConfig{}, dir)

	path := r.RecordingPath()
	if err := os.WriteFile(path, []byte("wav"), 0644); err != nil {
		t.Fatalf("failed to write recording: %v", err)
	}

	r.Cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Cleanup() should remove the recording file")
	}

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Error("Cleanup() should keep the temp directory")
	}
}
