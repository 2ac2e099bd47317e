package inject

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Paster can synthesize a paste key-combination. The uinput and command
// backends all qualify.
type Paster interface {
	Name() string
	Probe() error
	PressPaste() error
}

// ClipboardBackend copies the text to the system clipboard and pastes it
// with the first available paste synthesizer. Lowest-fidelity fallback:
// it mutates the user's clipboard as an observable side effect and relies
// on the target application accepting paste.
type ClipboardBackend struct {
	copyBin string
	pasters []Paster

	lookPath func(file string) (string, error)
}

// NewClipboard creates the clipboard round-trip backend over wl-copy.
func NewClipboard(pasters ...Paster) *ClipboardBackend {
	return &ClipboardBackend{
		copyBin:  "wl-copy",
		pasters:  pasters,
		lookPath: exec.LookPath,
	}
}

func (b *ClipboardBackend) Name() string { return "clipboard" }

// Probe requires both the clipboard utility and at least one working
// paste synthesizer.
func (b *ClipboardBackend) Probe() error {
	if _, err := b.lookPath(b.copyBin); err != nil {
		return fmt.Errorf("%w: %s not installed", ErrUnavailable, b.copyBin)
	}
	if b.paster() == nil {
		return fmt.Errorf("%w: no paste mechanism available", ErrUnavailable)
	}
	return nil
}

// Type copies the whole text to the clipboard, then presses paste.
func (b *ClipboardBackend) Type(text string) error {
	cmd := exec.Command(b.copyBin)
	cmd.Stdin = strings.NewReader(text)
	cmd.WaitDelay = commandTimeout
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (output: %s)", b.copyBin, err, out)
	}

	paster := b.paster()
	if paster == nil {
		return fmt.Errorf("no paste mechanism available")
	}

	// Give the clipboard manager a moment before pasting.
	time.Sleep(100 * time.Millisecond)

	if err := paster.PressPaste(); err != nil {
		return fmt.Errorf("paste via %s failed: %w", paster.Name(), err)
	}
	return nil
}

func (b *ClipboardBackend) paster() Paster {
	for _, p := range b.pasters {
		if p.Probe() == nil {
			return p
		}
	}
	return nil
}
