// Package inject delivers a decoded text string into the focused surface
// by trying an ordered sequence of OS-level mechanisms.
package inject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnavailable marks a backend whose required resource (device file,
// external binary) is missing or inaccessible. The chain skips it
// silently and moves on.
var ErrUnavailable = errors.New("backend unavailable")

// Backend is one injection mechanism. Probe checks the backend's resource
// without side effects; Type delivers the whole string or fails as a
// whole — no partial text is ever considered injected.
type Backend interface {
	Name() string
	Probe() error
	Type(text string) error
}

// BackendError records why one backend in the chain did not deliver.
type BackendError struct {
	Backend     string
	Unavailable bool
	Err         error
}

func (e BackendError) String() string {
	if e.Unavailable {
		return fmt.Sprintf("%s: unavailable (%v)", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s: failed (%v)", e.Backend, e.Err)
}

// ChainError aggregates the outcome of every backend tried.
type ChainError struct {
	Attempts []BackendError
}

func (e *ChainError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.String()
	}
	return "text injection failed: " + strings.Join(parts, "; ")
}

// Chain tries backends strictly in priority order; the first success
// terminates the chain.
type Chain struct {
	backends []Backend
	log      zerolog.Logger
}

// NewChain builds a chain over the given backends, highest priority first.
func NewChain(log zerolog.Logger, backends ...Backend) *Chain {
	return &Chain{backends: backends, log: log}
}

// Inject types text through the first working backend. If every backend
// is unavailable or fails, it returns a *ChainError naming each one.
func (c *Chain) Inject(text string) error {
	if text == "" {
		return nil
	}

	var attempts []BackendError
	for _, b := range c.backends {
		if err := b.Probe(); err != nil {
			c.log.Debug().Str("backend", b.Name()).Err(err).Msg("backend unavailable")
			attempts = append(attempts, BackendError{Backend: b.Name(), Unavailable: true, Err: err})
			continue
		}

		if err := b.Type(text); err != nil {
			c.log.Warn().Str("backend", b.Name()).Err(err).Msg("backend failed")
			attempts = append(attempts, BackendError{Backend: b.Name(), Err: err})
			continue
		}

		c.log.Info().Str("backend", b.Name()).Int("chars", len([]rune(text))).Msg("text injected")
		return nil
	}

	return &ChainError{Attempts: attempts}
}
