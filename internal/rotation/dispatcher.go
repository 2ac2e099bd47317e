// Package rotation selects an API key and a model for each transcription
// attempt, tracks failures, and retries across the combination space
// until success or exhaustion.
package rotation

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Boundary is the external transcription service, consumed as an opaque
// request/response call.
type Boundary interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// Request is one attempt against the boundary.
type Request struct {
	Audio     []byte
	MIMEType  string
	Model     string
	APIKey    string
	Language  string
	Translate bool
}

// Result is a decoded transcription.
type Result struct {
	Text     string
	Language string
}

// CursorStore persists the model cursor between process runs.
type CursorStore interface {
	Cursor() (int, error)
	SetCursor(cursor int) error
}

// Dispatcher owns the credential pool, the model sequence and the combined
// retry policy. It is process-local mutable state with no synchronization:
// only one transcription request executes at a time.
type Dispatcher struct {
	creds    []*Credential
	models   *Sequence
	boundary Boundary
	store    CursorStore
	log      zerolog.Logger
	rng      *rand.Rand
}

type pairKey struct {
	cred, model int
}

// attemptRecord is ephemeral bookkeeping for one attempt, kept only to
// drive logging within a single request.
type attemptRecord struct {
	credential string
	model      string
	class      string
}

// New creates a Dispatcher resuming the model cursor from the store.
func New(creds []*Credential, models []string, boundary Boundary, store CursorStore, log zerolog.Logger) (*Dispatcher, error) {
	cursor, err := store.Cursor()
	if err != nil {
		return nil, err
	}

	seq, err := NewSequence(models, cursor)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		creds:    creds,
		models:   seq,
		boundary: boundary,
		store:    store,
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Transcribe runs the retry loop for one audio recording. It returns the
// decoded text on the first success, the provider error on a permanent
// failure, or *ExhaustedError once every (credential, model) pair has
// been attempted.
func (d *Dispatcher) Transcribe(ctx context.Context, audio []byte, mimeType, language string, translate bool) (*Result, error) {
	total := len(d.creds) * d.models.Len()
	tried := make(map[pairKey]bool, total)
	startCursor := d.models.Cursor()

	var records []attemptRecord
	var last error

	for len(tried) < total {
		ci, mi, ok := d.selectPair(tried)
		if !ok {
			break
		}
		tried[pairKey{ci, mi}] = true

		cred := d.creds[ci]
		model := d.models.Name(mi)

		d.log.Debug().
			Int("attempt", len(tried)).
			Str("credential", cred.Redacted()).
			Str("model", model).
			Msg("transcription attempt")

		res, err := d.boundary.Transcribe(ctx, Request{
			Audio:     audio,
			MIMEType:  mimeType,
			Model:     model,
			APIKey:    cred.Token(),
			Language:  language,
			Translate: translate,
		})
		if err == nil {
			cred.clearFailed()
			d.models.cursor = (startCursor + 1) % d.models.Len()
			if serr := d.store.SetCursor(d.models.cursor); serr != nil {
				d.log.Warn().Err(serr).Msg("failed to persist model cursor")
			}
			d.log.Info().
				Str("model", model).
				Int("attempts", len(tried)).
				Int("cursor", d.models.cursor).
				Msg("transcription succeeded")
			return res, nil
		}

		if !Transient(err) {
			d.log.Error().Err(err).Str("model", model).Msg("permanent transcription error")
			return nil, err
		}

		cred.markFailed()
		d.models.markFailed(mi)
		last = err
		records = append(records, attemptRecord{
			credential: cred.Redacted(),
			model:      model,
			class:      ErrorClass(err),
		})
		d.log.Warn().
			Err(err).
			Str("credential", cred.Redacted()).
			Str("model", model).
			Str("class", ErrorClass(err)).
			Msg("transient transcription error, rotating")
	}

	for _, rec := range records {
		d.log.Debug().
			Str("credential", rec.credential).
			Str("model", rec.model).
			Str("class", rec.class).
			Msg("failed attempt")
	}

	return nil, &ExhaustedError{
		Attempts:  len(tried),
		LastClass: ErrorClass(last),
		Last:      last,
	}
}

// selectPair picks the next (credential, model) pair: a uniformly random
// non-failed credential and the model at the cursor (skipping failed
// ones), excluding pairs already attempted this request. Fully failed
// pools are reset before selection.
func (d *Dispatcher) selectPair(tried map[pairKey]bool) (int, int, bool) {
	if len(tried) >= len(d.creds)*d.models.Len() {
		return 0, 0, false
	}

	cands := d.credCandidates(tried)

	if len(cands) == 0 && d.allCredsFailed() {
		for _, c := range d.creds {
			c.clearFailed()
		}
		d.log.Warn().Msg("all credentials failed, resetting pool")
		cands = d.credCandidates(tried)
	}

	if len(cands) == 0 && d.models.allFailed() {
		d.models.clearFailed()
		d.log.Warn().Msg("all models failed, resetting sequence")
		cands = d.credCandidates(tried)
	}

	if len(cands) == 0 {
		// Untried pairs remain but only behind failed flags on one
		// pool; fall back to any credential with an untried pair so
		// the loop still terminates.
		for ci := range d.creds {
			if d.hasUntriedPair(ci, tried, false) {
				cands = append(cands, ci)
			}
		}
	}
	if len(cands) == 0 {
		return 0, 0, false
	}

	ci := cands[d.rng.Intn(len(cands))]

	start := d.models.next()
	n := d.models.Len()
	for k := 0; k < n; k++ {
		mi := (start + k) % n
		if !d.models.Failed(mi) && !tried[pairKey{ci, mi}] {
			return ci, mi, true
		}
	}
	for k := 0; k < n; k++ {
		mi := (start + k) % n
		if !tried[pairKey{ci, mi}] {
			return ci, mi, true
		}
	}
	return 0, 0, false
}

// credCandidates returns non-failed credentials that still have an
// untried pair against a non-failed model.
func (d *Dispatcher) credCandidates(tried map[pairKey]bool) []int {
	var cands []int
	for ci, c := range d.creds {
		if c.Failed() {
			continue
		}
		if d.hasUntriedPair(ci, tried, true) {
			cands = append(cands, ci)
		}
	}
	return cands
}

func (d *Dispatcher) hasUntriedPair(ci int, tried map[pairKey]bool, skipFailedModels bool) bool {
	for mi := 0; mi < d.models.Len(); mi++ {
		if skipFailedModels && d.models.Failed(mi) {
			continue
		}
		if !tried[pairKey{ci, mi}] {
			return true
		}
	}
	return false
}

func (d *Dispatcher) allCredsFailed() bool {
	for _, c := range d.creds {
		if !c.Failed() {
			return false
		}
	}
	return true
}
