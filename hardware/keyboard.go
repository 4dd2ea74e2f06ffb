package hardware

import (
	"sync"

	"github.com/ezrec/dcpu16/cpu"
)

const (
	KEYBOARD_ID           = 0x30cf7406
	KEYBOARD_VERSION      = 0x0001
	KEYBOARD_MANUFACTURER = 0x0000

	// Buffered keys beyond this are dropped.
	KEYBOARD_BUFFER_SIZE = 64
)

// Key codes outside the printable ASCII range 0x20..0x7e.
const (
	KEY_BACKSPACE   = 0x10
	KEY_RETURN      = 0x11
	KEY_INSERT      = 0x12
	KEY_DELETE      = 0x13
	KEY_ARROW_UP    = 0x80
	KEY_ARROW_DOWN  = 0x81
	KEY_ARROW_LEFT  = 0x82
	KEY_ARROW_RIGHT = 0x83
	KEY_SHIFT       = 0x90
	KEY_CONTROL     = 0x91
)

// Keyboard is the generic keyboard device. Keys typed from the host side
// land in a small buffer the processor drains with hardware interrupts.
// Type, Press, and Release are safe to call from a goroutine other than
// the one stepping the processor; key-event interrupts are raised from a
// per-step wake so that all processor state stays on the stepping
// goroutine.
type Keyboard struct {
	cpu *cpu.Cpu

	mu      sync.Mutex
	buffer  []uint16
	pressed map[uint16]bool
	message uint16
	events  int // host key events not yet raised as interrupts
}

// Attach connects the keyboard to a processor.
func (kb *Keyboard) Attach(c *cpu.Cpu) {
	kb.cpu = c
	c.ScheduleWake(kb, 0, 0)
}

// Interrupt handles a hardware interrupt: A=0 clears the key buffer, A=1
// pops the next buffered key into C (0 if the buffer is empty), A=2 sets
// C to 1 if the key in B is currently pressed, A=3 sets the key-event
// interrupt message from B (0 disables interrupts).
func (kb *Keyboard) Interrupt() (extraCycles int) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	switch kb.cpu.Reg(cpu.REG_A) {
	case 0: // clear buffer
		kb.buffer = kb.buffer[:0]

	case 1: // next key
		var key uint16
		if len(kb.buffer) > 0 {
			key = kb.buffer[0]
			kb.buffer = kb.buffer[1:]
		}
		kb.cpu.SetReg(cpu.REG_C, key)

	case 2: // key pressed?
		var value uint16
		if kb.pressed[kb.cpu.Reg(cpu.REG_B)] {
			value = 1
		}
		kb.cpu.SetReg(cpu.REG_C, value)

	case 3: // set interrupt message
		kb.message = kb.cpu.Reg(cpu.REG_B)
	}

	return
}

// Wake runs once per step, raising one interrupt per host key event that
// arrived since the last step.
func (kb *Keyboard) Wake(elapsedCycles int, context int) {
	kb.mu.Lock()
	events := kb.events
	kb.events = 0
	message := kb.message
	kb.mu.Unlock()

	if message != 0 {
		for range events {
			kb.cpu.Interrupt(message)
		}
	}

	kb.cpu.ScheduleWake(kb, 0, 0)
}

// event records a host key event for the next wake.
func (kb *Keyboard) event() {
	if kb.events < KEYBOARD_BUFFER_SIZE {
		kb.events++
	}
}

// Type buffers a key press from the host.
func (kb *Keyboard) Type(key uint16) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if len(kb.buffer) < KEYBOARD_BUFFER_SIZE {
		kb.buffer = append(kb.buffer, key)
	}
	kb.event()
}

// Press marks a key as held down.
func (kb *Keyboard) Press(key uint16) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if kb.pressed == nil {
		kb.pressed = make(map[uint16]bool)
	}
	kb.pressed[key] = true
	kb.event()
}

// Release marks a key as released.
func (kb *Keyboard) Release(key uint16) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	delete(kb.pressed, key)
	kb.event()
}

// Id returns the hardware id.
func (kb *Keyboard) Id() uint32 {
	return KEYBOARD_ID
}

// Version returns the hardware version.
func (kb *Keyboard) Version() uint16 {
	return KEYBOARD_VERSION
}

// Manufacturer returns the hardware manufacturer id.
func (kb *Keyboard) Manufacturer() uint32 {
	return KEYBOARD_MANUFACTURER
}
