package inject

import (
	"errors"
	"testing"
)

// event is one recorded emit call.
type event struct {
	etype uint16
	code  uint16
	value int32
}

// fakeDevice records emitted events in place of /dev/uinput.
type fakeDevice struct {
	events  []event
	emitErr error
	closed  bool
}

func (d *fakeDevice) emit(etype, code uint16, value int32) error {
	if d.emitErr != nil {
		return d.emitErr
	}
	d.events = append(d.events, event{etype, code, value})
	return nil
}

func (d *fakeDevice) sync() error {
	return d.emit(evSyn, synReport, 0)
}

func (d *fakeDevice) close() error {
	d.closed = true
	return nil
}

func newFakeUinput(dev *fakeDevice) (*UinputBackend, *[]uint16) {
	b := NewUinput("/dev/uinput", 0)
	var registered []uint16
	b.open = func(keys []uint16) (eventDevice, error) {
		registered = append(registered, keys...)
		return dev, nil
	}
	return b, &registered
}

// keyEvents filters the recorded stream down to key events.
func keyEvents(events []event) []event {
	var out []event
	for _, e := range events {
		if e.etype == evKey {
			out = append(out, e)
		}
	}
	return out
}

func TestUinputType_EmitsDownUpPairs(t *testing.T) {
	dev := &fakeDevice{}
	b, registered := newFakeUinput(dev)

	if err := b.Type("ab"); err != nil {
		t.Fatalf("Type() failed: %v", err)
	}

	want := []event{
		{evKey, keyA, 1}, {evKey, keyA, 0},
		{evKey, keyB, 1}, {evKey, keyB, 0},
	}
	got := keyEvents(dev.events)
	if len(got) != len(want) {
		t.Fatalf("expected %d key events, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("event %d: expected %+v, got %+v", i, w, got[i])
		}
	}

	for _, code := range []uint16{keyA, keyB} {
		found := false
		for _, k := range *registered {
			if k == code {
				found = true
			}
		}
		if !found {
			t.Errorf("key %d not registered with the device", code)
		}
	}
	if !dev.closed {
		t.Error("device should be closed after typing")
	}
}

func TestUinputType_ModifierOrdering(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := newFakeUinput(dev)

	if err := b.Type("A"); err != nil {
		t.Fatalf("Type() failed: %v", err)
	}

	want := []event{
		{evKey, keyLeftShift, 1},
		{evKey, keyA, 1},
		{evKey, keyA, 0},
		{evKey, keyLeftShift, 0},
	}
	got := keyEvents(dev.events)
	if len(got) != len(want) {
		t.Fatalf("expected %d key events, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("event %d: expected %+v, got %+v", i, w, got[i])
		}
	}
}

func TestUinputType_SyncAfterEveryKeyEvent(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := newFakeUinput(dev)

	if err := b.Type("hi"); err != nil {
		t.Fatalf("Type() failed: %v", err)
	}

	for i := 0; i < len(dev.events); i += 2 {
		if dev.events[i].etype != evKey {
			t.Fatalf("event %d: expected a key event, got type %d", i, dev.events[i].etype)
		}
		if dev.events[i+1] != (event{evSyn, synReport, 0}) {
			t.Fatalf("event %d: expected a syn report, got %+v", i+1, dev.events[i+1])
		}
	}
}

func TestUinputType_ClosesDeviceOnEmitError(t *testing.T) {
	dev := &fakeDevice{emitErr: errors.New("write failed")}
	b, _ := newFakeUinput(dev)

	if err := b.Type("a"); err == nil {
		t.Fatal("expected an emit error to surface")
	}
	if !dev.closed {
		t.Error("device should be closed even when emission fails")
	}
}

func TestUinputType_EmptyTextSkipsDevice(t *testing.T) {
	b := NewUinput("/dev/uinput", 0)
	b.open = func(keys []uint16) (eventDevice, error) {
		t.Fatal("empty text should not open the device")
		return nil, nil
	}
	if err := b.Type(""); err != nil {
		t.Fatalf("Type(\"\") failed: %v", err)
	}
}

func TestUinputPressPaste(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := newFakeUinput(dev)

	if err := b.PressPaste(); err != nil {
		t.Fatalf("PressPaste() failed: %v", err)
	}

	want := []event{
		{evKey, keyLeftCtrl, 1},
		{evKey, keyV, 1},
		{evKey, keyV, 0},
		{evKey, keyLeftCtrl, 0},
	}
	got := keyEvents(dev.events)
	if len(got) != len(want) {
		t.Fatalf("expected %d key events, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("event %d: expected %+v, got %+v", i, w, got[i])
		}
	}
}

func TestUinputProbe_MissingDevice(t *testing.T) {
	b := NewUinput("/nonexistent/uinput", 0)
	err := b.Probe()
	if err == nil {
		t.Fatal("expected Probe() to fail for a missing device")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
