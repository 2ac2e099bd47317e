package inject

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// uinput protocol constants (linux/uinput.h).
const (
	evSyn     = 0x00
	evKey     = 0x01
	synReport = 0

	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565

	busUSB = 0x03

	// sizeof(struct uinput_user_dev): name[80] + input_id + ff_effects_max
	// + 4 x abs arrays of 64 int32.
	userDevSize = 80 + 8 + 4 + 4*64*4

	inputEventSize = 24
)

const deviceName = "stt-typer virtual keyboard"

// eventDevice is the writable synthetic keyboard. Abstracted so the
// emission logic is testable without /dev/uinput.
type eventDevice interface {
	emit(etype, code uint16, value int32) error
	sync() error
	close() error
}

// UinputBackend types through a kernel-level synthetic keyboard device.
type UinputBackend struct {
	device string
	delay  time.Duration

	open func(keys []uint16) (eventDevice, error)
}

// NewUinput creates the uinput backend for the given device path with the
// given inter-key delay.
func NewUinput(device string, delay time.Duration) *UinputBackend {
	b := &UinputBackend{device: device, delay: delay}
	b.open = b.openDevice
	return b
}

func (b *UinputBackend) Name() string { return "uinput" }

// Probe checks that the device file can be opened for writing. A
// permission error here is the common failure mode.
func (b *UinputBackend) Probe() error {
	fd, err := unix.Open(b.device, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("%w: cannot open %s for writing: %v", ErrUnavailable, b.device, err)
	}
	unix.Close(fd)
	return nil
}

// Type registers a keymap covering the characters in text, emits
// key-down/key-up pairs with a short inter-key delay, then destroys the
// device. The device is released on every exit path.
func (b *UinputBackend) Type(text string) error {
	chords := keystrokes(text)
	if len(chords) == 0 {
		return nil
	}

	dev, err := b.open(keysUsed(chords))
	if err != nil {
		return err
	}
	defer dev.close()

	return emitChords(dev, chords, b.delay)
}

// PressPaste synthesizes a Ctrl+V chord, used by the clipboard fallback.
func (b *UinputBackend) PressPaste() error {
	chords := []chord{{key: keyV, ctrl: true}}

	dev, err := b.open(keysUsed(chords))
	if err != nil {
		return err
	}
	defer dev.close()

	return emitChords(dev, chords, b.delay)
}

func emitChords(dev eventDevice, chords []chord, delay time.Duration) error {
	for _, c := range chords {
		if err := emitChord(dev, c); err != nil {
			return err
		}
		// Spacing out keystrokes avoids event coalescing by the
		// receiving compositor.
		time.Sleep(delay)
	}
	return nil
}

func emitChord(dev eventDevice, c chord) error {
	var mods []uint16
	if c.ctrl {
		mods = append(mods, keyLeftCtrl)
	}
	if c.shift {
		mods = append(mods, keyLeftShift)
	}

	for _, m := range mods {
		if err := press(dev, m, 1); err != nil {
			return err
		}
	}
	if err := press(dev, c.key, 1); err != nil {
		return err
	}
	if err := press(dev, c.key, 0); err != nil {
		return err
	}
	for i := len(mods) - 1; i >= 0; i-- {
		if err := press(dev, mods[i], 0); err != nil {
			return err
		}
	}
	return nil
}

func press(dev eventDevice, code uint16, value int32) error {
	if err := dev.emit(evKey, code, value); err != nil {
		return err
	}
	return dev.sync()
}

// uinputDevice is the real /dev/uinput handle.
type uinputDevice struct {
	fd int
}

// openDevice opens the device file, registers the key bits the text
// needs, and creates the virtual keyboard.
func (b *UinputBackend) openDevice(keys []uint16) (eventDevice, error) {
	fd, err := unix.Open(b.device, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", b.device, err)
	}

	dev := &uinputDevice{fd: fd}
	if err := dev.setup(keys); err != nil {
		unix.Close(fd)
		return nil, err
	}

	// Let the compositor pick up the new device before typing.
	time.Sleep(100 * time.Millisecond)
	return dev, nil
}

func (d *uinputDevice) setup(keys []uint16) error {
	if err := unix.IoctlSetInt(d.fd, uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("failed to enable key events: %w", err)
	}
	for _, code := range keys {
		if err := unix.IoctlSetInt(d.fd, uiSetKeyBit, int(code)); err != nil {
			return fmt.Errorf("failed to register key %d: %w", code, err)
		}
	}

	// Legacy uinput_user_dev setup: write the descriptor, then create.
	var desc [userDevSize]byte
	copy(desc[:79], deviceName)
	binary.LittleEndian.PutUint16(desc[80:], busUSB)  // bustype
	binary.LittleEndian.PutUint16(desc[82:], 0x1d6b)  // vendor
	binary.LittleEndian.PutUint16(desc[84:], 0x0104)  // product
	binary.LittleEndian.PutUint16(desc[86:], 1)       // version

	if _, err := unix.Write(d.fd, desc[:]); err != nil {
		return fmt.Errorf("failed to write device descriptor: %w", err)
	}
	if err := unix.IoctlSetInt(d.fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("failed to create virtual device: %w", err)
	}
	return nil
}

func (d *uinputDevice) emit(etype, code uint16, value int32) error {
	// struct input_event on 64-bit: 16 bytes of timestamp (left zero),
	// type, code, value.
	var buf [inputEventSize]byte
	binary.LittleEndian.PutUint16(buf[16:], etype)
	binary.LittleEndian.PutUint16(buf[18:], code)
	binary.LittleEndian.PutUint32(buf[20:], uint32(value))

	if _, err := unix.Write(d.fd, buf[:]); err != nil {
		return fmt.Errorf("failed to write input event: %w", err)
	}
	return nil
}

func (d *uinputDevice) sync() error {
	return d.emit(evSyn, synReport, 0)
}

func (d *uinputDevice) close() error {
	// Destroy before close so no phantom input device is leaked.
	ioctlErr := unix.IoctlSetInt(d.fd, uiDevDestroy, 0)
	closeErr := unix.Close(d.fd)
	if ioctlErr != nil {
		return fmt.Errorf("failed to destroy virtual device: %w", ioctlErr)
	}
	return closeErr
}
