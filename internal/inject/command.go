package inject

import (
	"fmt"
	"os/exec"
	"time"
)

const commandTimeout = 10 * time.Second

// CommandBackend wraps an external command-line tool that accepts raw
// text and asks the compositor to insert it at the focused surface.
type CommandBackend struct {
	name      string
	bin       string
	typeArgs  func(text string) []string
	pasteArgs []string

	lookPath func(file string) (string, error)
}

// NewWtype creates the wtype backend (compositor-native text injection).
func NewWtype() *CommandBackend {
	return &CommandBackend{
		name: "wtype",
		bin:  "wtype",
		typeArgs: func(text string) []string {
			return []string{"--", text}
		},
		pasteArgs: []string{"-M", "ctrl", "-P", "v", "-m", "ctrl"},
		lookPath:  exec.LookPath,
	}
}

// NewYdotool creates the ydotool backend. It has its own failure domain:
// the command exits non-zero when the ydotoold daemon is not running.
func NewYdotool() *CommandBackend {
	return &CommandBackend{
		name: "ydotool",
		bin:  "ydotool",
		typeArgs: func(text string) []string {
			return []string{"type", "-d", "0", "--", text}
		},
		// key codes 29 (ctrl) and 47 (v), press then release
		pasteArgs: []string{"key", "29:1", "47:1", "47:0", "29:0"},
		lookPath:  exec.LookPath,
	}
}

func (b *CommandBackend) Name() string { return b.name }

// Probe reports ErrUnavailable when the tool is not installed.
func (b *CommandBackend) Probe() error {
	if _, err := b.lookPath(b.bin); err != nil {
		return fmt.Errorf("%w: %s not installed", ErrUnavailable, b.bin)
	}
	return nil
}

// Type runs the tool with the whole text; a non-zero exit is a failure
// for this backend.
func (b *CommandBackend) Type(text string) error {
	return b.run(b.typeArgs(text)...)
}

// PressPaste synthesizes a Ctrl+V chord through the tool.
func (b *CommandBackend) PressPaste() error {
	return b.run(b.pasteArgs...)
}

func (b *CommandBackend) run(args ...string) error {
	cmd := exec.Command(b.bin, args...)
	cmd.WaitDelay = commandTimeout
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (output: %s)", b.bin, err, out)
	}
	return nil
}
