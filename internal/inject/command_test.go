package inject

import (
	"errors"
	"testing"
)

func TestCommandProbe(t *testing.T) {
	b := NewWtype()

	b.lookPath = func(file string) (string, error) {
		if file != "wtype" {
			t.Errorf("probe looked up %q, expected wtype", file)
		}
		return "/usr/bin/wtype", nil
	}
	if err := b.Probe(); err != nil {
		t.Errorf("Probe() with installed binary failed: %v", err)
	}

	b.lookPath = func(file string) (string, error) {
		return "", errors.New("not found")
	}
	err := b.Probe()
	if err == nil {
		t.Fatal("expected Probe() to fail for a missing binary")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCommandArgs(t *testing.T) {
	wtype := NewWtype()
	args := wtype.typeArgs("--hello world")
	if len(args) != 2 || args[0] != "--" || args[1] != "--hello world" {
		t.Errorf("wtype args should pass text after --, got %v", args)
	}

	ydotool := NewYdotool()
	args = ydotool.typeArgs("-x text")
	want := []string{"type", "-d", "0", "--", "-x text"}
	if len(args) != len(want) {
		t.Fatalf("ydotool args: expected %v, got %v", want, args)
	}
	for i, w := range want {
		if args[i] != w {
			t.Errorf("ydotool arg %d: expected %q, got %q", i, w, args[i])
		}
	}
}
