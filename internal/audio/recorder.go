package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/config"
)

// Recorder captures microphone audio to a WAV file using pw-record.
type Recorder struct {
	tempDir    string
	sampleRate int
	channels   int
	cmd        *exec.Cmd
}

func New(cfg config.AudioConfig, tempDir string) *Recorder {
	return &Recorder{
		tempDir:    tempDir,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
	}
}

func (r *Recorder) RecordingPath() string {
	return filepath.Join(r.tempDir, "recording.wav")
}

func getDefaultSource() (string, error) {
	cmd := exec.Command("pactl", "get-default-source")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get default source: %w", err)
	}

	source := strings.TrimSpace(string(output))
	if source == "" {
		return "", fmt.Errorf("no default source found")
	}

	return source, nil
}

func (r *Recorder) Start(ctx context.Context) error {
	source, err := getDefaultSource()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(r.tempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	os.Remove(r.RecordingPath())

	cmd := exec.Command(
		"pw-record",
		"--target", source,
		"--rate", strconv.Itoa(r.sampleRate),
		"--channels", strconv.Itoa(r.channels),
		r.RecordingPath(),
	)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start pw-record: %w", err)
	}

	r.cmd = cmd
	return nil
}

func (r *Recorder) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil {
		return nil
	}

	if err := r.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to stop recording process: %w", err)
	}

	r.cmd.Wait()
	r.cmd = nil
	return nil
}

// Cleanup removes the temporary recording file.
func (r *Recorder) Cleanup() {
	os.Remove(r.RecordingPath())
}
