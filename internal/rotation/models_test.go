package rotation

import "testing"

func TestNewSequence_Validation(t *testing.T) {
	if _, err := NewSequence(nil, 0); err == nil {
		t.Fatal("expected an error for an empty sequence")
	}

	seq, err := NewSequence([]string{"a", "b", "c"}, 7)
	if err != nil {
		t.Fatalf("NewSequence() failed: %v", err)
	}
	if seq.Cursor() != 1 {
		t.Errorf("out-of-range cursor should wrap: expected 1, got %d", seq.Cursor())
	}

	seq, err = NewSequence([]string{"a", "b"}, -3)
	if err != nil {
		t.Fatalf("NewSequence() failed: %v", err)
	}
	if seq.Cursor() != 0 {
		t.Errorf("negative cursor should normalize to 0, got %d", seq.Cursor())
	}
}

func TestSequence_NextSkipsFailed(t *testing.T) {
	seq, err := NewSequence([]string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatalf("NewSequence() failed: %v", err)
	}

	if got := seq.next(); got != 0 {
		t.Fatalf("next(): expected 0, got %d", got)
	}

	seq.markFailed(0)
	seq.markFailed(1)
	if got := seq.next(); got != 2 {
		t.Errorf("next() should skip failed models: expected 2, got %d", got)
	}
	if seq.Cursor() != 2 {
		t.Errorf("cursor should land on the selected model, got %d", seq.Cursor())
	}
}

func TestSequence_NextResetsWhenAllFailed(t *testing.T) {
	seq, err := NewSequence([]string{"a", "b"}, 1)
	if err != nil {
		t.Fatalf("NewSequence() failed: %v", err)
	}
	seq.markFailed(0)
	seq.markFailed(1)

	got := seq.next()
	if seq.Failed(0) || seq.Failed(1) {
		t.Error("a fully failed sequence should be reset by next()")
	}
	if got != seq.Cursor() {
		t.Errorf("next() should return the cursor after reset, got %d with cursor %d", got, seq.Cursor())
	}
}
