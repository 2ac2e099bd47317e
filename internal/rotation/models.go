package rotation

import "fmt"

// Sequence is the ordered model rotation with its cursor. The cursor only
// moves forward (wrapping), either while skipping failed models during
// selection or by one step after a successful transcription.
type Sequence struct {
	names  []string
	failed []bool
	cursor int
}

// NewSequence builds a model sequence resuming from the given cursor.
func NewSequence(names []string, cursor int) (*Sequence, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("model sequence is empty")
	}
	if cursor < 0 {
		cursor = 0
	}
	return &Sequence{
		names:  append([]string(nil), names...),
		failed: make([]bool, len(names)),
		cursor: cursor % len(names),
	}, nil
}

// Len returns the number of models in the sequence.
func (s *Sequence) Len() int { return len(s.names) }

// Name returns the model identifier at index i.
func (s *Sequence) Name(i int) string { return s.names[i] }

// Cursor returns the current cursor position.
func (s *Sequence) Cursor() int { return s.cursor }

// Failed reports whether the model at index i is currently excluded.
func (s *Sequence) Failed(i int) bool { return s.failed[i] }

func (s *Sequence) markFailed(i int) { s.failed[i] = true }

func (s *Sequence) clearFailed() {
	for i := range s.failed {
		s.failed[i] = false
	}
}

func (s *Sequence) allFailed() bool {
	for _, f := range s.failed {
		if !f {
			return false
		}
	}
	return true
}

// next returns the index of the model at the cursor, advancing the cursor
// past failed models (wrapping). When every model is failed the pool is
// reset and rotation resumes from the cursor.
func (s *Sequence) next() int {
	for i := 0; i < len(s.names); i++ {
		if !s.failed[s.cursor] {
			return s.cursor
		}
		s.cursor = (s.cursor + 1) % len(s.names)
	}
	s.clearFailed()
	return s.cursor
}
