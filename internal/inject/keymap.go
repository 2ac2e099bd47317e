package inject

import (
	"fmt"
	"unicode"
)

// Linux input event key codes (input-event-codes.h), US layout.
const (
	keyEsc        = 1
	key1          = 2
	key2          = 3
	key3          = 4
	key4          = 5
	key5          = 6
	key6          = 7
	key7          = 8
	key8          = 9
	key9          = 10
	key0          = 11
	keyMinus      = 12
	keyEqual      = 13
	keyBackspace  = 14
	keyTab        = 15
	keyQ          = 16
	keyW          = 17
	keyE          = 18
	keyR          = 19
	keyT          = 20
	keyY          = 21
	keyU          = 22
	keyI          = 23
	keyO          = 24
	keyP          = 25
	keyLeftBrace  = 26
	keyRightBrace = 27
	keyEnter      = 28
	keyLeftCtrl   = 29
	keyA          = 30
	keyS          = 31
	keyD          = 32
	keyF          = 33
	keyG          = 34
	keyH          = 35
	keyJ          = 36
	keyK          = 37
	keyL          = 38
	keySemicolon  = 39
	keyApostrophe = 40
	keyGrave      = 41
	keyLeftShift  = 42
	keyBackslash  = 43
	keyZ          = 44
	keyX          = 45
	keyC          = 46
	keyV          = 47
	keyB          = 48
	keyN          = 49
	keyM          = 50
	keyComma      = 51
	keyDot        = 52
	keySlash      = 53
	keySpace      = 57
)

// keyMap covers characters reachable without modifiers on a US layout.
var keyMap = map[rune]uint16{
	'a': keyA, 'b': keyB, 'c': keyC, 'd': keyD, 'e': keyE,
	'f': keyF, 'g': keyG, 'h': keyH, 'i': keyI, 'j': keyJ,
	'k': keyK, 'l': keyL, 'm': keyM, 'n': keyN, 'o': keyO,
	'p': keyP, 'q': keyQ, 'r': keyR, 's': keyS, 't': keyT,
	'u': keyU, 'v': keyV, 'w': keyW, 'x': keyX, 'y': keyY,
	'z': keyZ,
	'0': key0, '1': key1, '2': key2, '3': key3, '4': key4,
	'5': key5, '6': key6, '7': key7, '8': key8, '9': key9,
	' ': keySpace, '\n': keyEnter, '\t': keyTab,
	'.': keyDot, ',': keyComma,
	'-': keyMinus, '=': keyEqual,
	'[': keyLeftBrace, ']': keyRightBrace,
	';': keySemicolon, '\'': keyApostrophe,
	'\\': keyBackslash, '/': keySlash,
	'`': keyGrave,
}

// shiftMap covers characters that need the shift modifier, mapped to
// their base key.
var shiftMap = map[rune]uint16{
	'!': key1, '@': key2, '#': key3, '$': key4, '%': key5,
	'^': key6, '&': key7, '*': key8, '(': key9, ')': key0,
	'_': keyMinus, '+': keyEqual,
	'{': keyLeftBrace, '}': keyRightBrace,
	':': keySemicolon, '"': keyApostrophe,
	'|': keyBackslash, '?': keySlash,
	'~': keyGrave,
	'<': keyComma, '>': keyDot,
}

// chord is one synthesized key press with its modifiers.
type chord struct {
	key   uint16
	shift bool
	ctrl  bool
}

// keystrokes plans the full event sequence for a text. Glyphs outside the
// mapped layout are emitted through the IBus-style Ctrl+Shift+U
// hex-codepoint entry, so the whole string stays on one backend.
func keystrokes(text string) []chord {
	var out []chord
	for _, r := range text {
		out = append(out, charChords(r)...)
	}
	return out
}

func charChords(r rune) []chord {
	if code, ok := shiftMap[r]; ok {
		return []chord{{key: code, shift: true}}
	}
	if unicode.IsUpper(r) {
		if code, ok := keyMap[unicode.ToLower(r)]; ok {
			return []chord{{key: code, shift: true}}
		}
	}
	if code, ok := keyMap[r]; ok {
		return []chord{{key: code}}
	}
	return unicodeChords(r)
}

// unicodeChords types one glyph as Ctrl+Shift+U, the hex codepoint, then
// space to commit the sequence.
func unicodeChords(r rune) []chord {
	out := []chord{{key: keyU, shift: true, ctrl: true}}
	for _, h := range fmt.Sprintf("%x", r) {
		out = append(out, chord{key: keyMap[h]})
	}
	out = append(out, chord{key: keySpace})
	return out
}

// keysUsed returns the set of key codes a chord sequence touches,
// including modifiers, for device registration.
func keysUsed(chords []chord) []uint16 {
	seen := make(map[uint16]bool)
	var keys []uint16
	add := func(code uint16) {
		if !seen[code] {
			seen[code] = true
			keys = append(keys, code)
		}
	}
	for _, c := range chords {
		add(c.key)
		if c.shift {
			add(keyLeftShift)
		}
		if c.ctrl {
			add(keyLeftCtrl)
		}
	}
	return keys
}
