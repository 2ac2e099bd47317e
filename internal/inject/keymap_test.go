package inject

import (
	"testing"
)

func TestKeystrokes_ASCII(t *testing.T) {
	chords := keystrokes("Hi, a!")

	want := []chord{
		{key: keyH, shift: true},
		{key: keyI},
		{key: keyComma},
		{key: keySpace},
		{key: keyA},
		{key: key1, shift: true},
	}
	if len(chords) != len(want) {
		t.Fatalf("expected %d chords, got %d", len(want), len(chords))
	}
	for i, w := range want {
		if chords[i] != w {
			t.Errorf("chord %d: expected %+v, got %+v", i, w, chords[i])
		}
	}
}

func TestKeystrokes_ShiftedPunctuation(t *testing.T) {
	chords := keystrokes("?\"")
	if len(chords) != 2 {
		t.Fatalf("expected 2 chords, got %d", len(chords))
	}
	if chords[0] != (chord{key: keySlash, shift: true}) {
		t.Errorf("'?': expected shift+slash, got %+v", chords[0])
	}
	if chords[1] != (chord{key: keyApostrophe, shift: true}) {
		t.Errorf("'\"': expected shift+apostrophe, got %+v", chords[1])
	}
}

func TestKeystrokes_UnicodeGlyph(t *testing.T) {
	// 'é' is U+00E9: Ctrl+Shift+U, 'e', '9', space.
	chords := keystrokes("é")

	want := []chord{
		{key: keyU, shift: true, ctrl: true},
		{key: keyE},
		{key: key9},
		{key: keySpace},
	}
	if len(chords) != len(want) {
		t.Fatalf("expected %d chords, got %d", len(want), len(chords))
	}
	for i, w := range want {
		if chords[i] != w {
			t.Errorf("chord %d: expected %+v, got %+v", i, w, chords[i])
		}
	}
}

func TestKeystrokes_MixedTextStaysOnePlan(t *testing.T) {
	// A string mixing mapped and unmapped glyphs still produces a single
	// contiguous plan, so one backend can deliver all of it.
	chords := keystrokes("a€b")
	if len(chords) == 0 {
		t.Fatal("expected a non-empty plan")
	}
	if chords[0] != (chord{key: keyA}) {
		t.Errorf("first chord: expected plain 'a', got %+v", chords[0])
	}
	if chords[len(chords)-1] != (chord{key: keyB}) {
		t.Errorf("last chord: expected plain 'b', got %+v", chords[len(chords)-1])
	}
}

func TestKeysUsed_IncludesModifiers(t *testing.T) {
	chords := []chord{
		{key: keyA},
		{key: keyA, shift: true},
		{key: keyU, shift: true, ctrl: true},
	}

	keys := keysUsed(chords)
	set := make(map[uint16]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}

	for _, k := range []uint16{keyA, keyU, keyLeftShift, keyLeftCtrl} {
		if !set[k] {
			t.Errorf("keysUsed missing key code %d", k)
		}
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 distinct keys, got %d (%v)", len(keys), keys)
	}
}
