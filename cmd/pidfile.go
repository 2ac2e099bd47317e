package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// writePIDFile records the current process so toggle/stop can find it.
func writePIDFile(path string) error {
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(path, []byte(pid), 0644); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	return nil
}

func removePIDFile(path string) {
	os.Remove(path)
}

// activePID returns the pid of a live recording process, or 0 when none
// is running. Stale pid files are cleaned up.
func activePID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		os.Remove(path)
		return 0
	}

	// Signal 0 probes liveness without delivering anything.
	if err := syscall.Kill(pid, 0); err != nil {
		os.Remove(path)
		return 0
	}
	return pid
}
