package cpu

import (
	"fmt"
	"log"
)

const (
	// MEMORY_SIZE is the address space, in words.
	MEMORY_SIZE = 0x10000

	// DEFAULT_CLOCK_HZ is the nominal clock speed used by NewCpu. Cycle
	// counts are abstract units; the clock speed only informs devices that
	// peg their timing to it.
	DEFAULT_CLOCK_HZ = 100_000
)

// CpuState is the run state of the CPU. The error states are terminal:
// once frozen, every Step is a no-op returning 0 cycles.
type CpuState int

//go:generate go tool stringer -linecomment -type=CpuState
const (
	STATE_RUNNING                      = CpuState(0) // running
	STATE_ERROR_ILLEGAL_INSTRUCTION    = CpuState(1) // illegal instruction
	STATE_ERROR_INTERRUPT_QUEUE_FILLED = CpuState(2) // interrupt queue filled
)

// Cpu is the simulation context for a DCPU-16 processor and its attached
// hardware devices. All state mutation happens on the single goroutine
// that calls Step.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	mem [MEMORY_SIZE]uint16
	reg [registerCount]uint16

	state             CpuState
	interruptsEnabled bool
	queue             InterruptQueue

	clockHz int
	devices []Device

	cycles int
	wakes  []wakeRequest
}

// NewCpu creates a CPU at the default clock speed and attaches the given
// hardware devices.
func NewCpu(devices ...Device) (c *Cpu) {
	return NewCpuAt(DEFAULT_CLOCK_HZ, devices...)
}

// NewCpuAt creates a CPU with a specific nominal clock speed in Hz and
// attaches the given hardware devices.
func NewCpuAt(clockHz int, devices ...Device) (c *Cpu) {
	c = &Cpu{
		interruptsEnabled: true,
		clockHz:           clockHz,
		devices:           devices,
	}

	for _, dev := range devices {
		dev.Attach(c)
	}

	return
}

// Step runs the CPU for a single instruction: deliver a pending interrupt
// if one is due, then fetch, decode, and execute the instruction at PC,
// then fire any device wake requests that have come due. Returns the
// number of cycles consumed, or 0 if the CPU is frozen.
func (c *Cpu) Step() (cycles int) {
	if c.state != STATE_RUNNING {
		return
	}

	if c.interruptsEnabled && c.queue.Len() > 0 {
		c.dispatchInterrupt()
	}

	inst := decoded(c.mem[c.reg[REG_PC]])
	if inst.Illegal() {
		if c.Verbose {
			log.Printf("cpu: illegal instruction %#04x at %#04x", c.mem[c.reg[REG_PC]], c.reg[REG_PC])
		}
		c.state = STATE_ERROR_ILLEGAL_INSTRUCTION
		return
	}

	cycles = c.execute(inst)
	if c.state != STATE_RUNNING {
		// the instruction froze the CPU (illegal skip target, interrupt
		// queue overflow)
		cycles = 0
		return
	}

	c.cycles += cycles
	c.fireWakes()

	return
}

// dispatchInterrupt delivers the next queued interrupt message. With no
// handler installed (IA == 0) the message is discarded and dispatch moves
// on to the next message; with a handler, interrupts are disabled, PC and
// A are pushed, and control transfers to the handler with the message in A.
func (c *Cpu) dispatchInterrupt() {
	for {
		message, ok := c.queue.Dequeue()
		if !ok {
			return
		}

		if c.reg[REG_IA] != 0 {
			c.interruptsEnabled = false
			c.push(c.reg[REG_PC])
			c.push(c.reg[REG_A])
			c.reg[REG_PC] = c.reg[REG_IA]
			c.reg[REG_A] = message
			return
		}

		if c.Verbose {
			log.Printf("cpu: interrupt %#04x dropped, no handler", message)
		}
	}
}

// Interrupt adds a message to the interrupt queue. Queue overflow freezes
// the CPU instead of enqueueing; there is no way back from it.
func (c *Cpu) Interrupt(message uint16) {
	if c.state != STATE_RUNNING {
		return
	}

	if !c.queue.Enqueue(message) {
		// the documented behavior is to catch fire; freezing will have
		// to do
		c.state = STATE_ERROR_INTERRUPT_QUEUE_FILLED
	}
}

// push places a value on the stack, predecrementing SP.
func (c *Cpu) push(value uint16) {
	c.reg[REG_SP]--
	c.mem[c.reg[REG_SP]] = value
}

// pop removes and returns the value at the top of the stack.
func (c *Cpu) pop() (value uint16) {
	value = c.mem[c.reg[REG_SP]]
	c.reg[REG_SP]++
	return
}

// nextWord consumes one word from the instruction stream at PC.
func (c *Cpu) nextWord() (word uint16) {
	word = c.mem[c.reg[REG_PC]]
	c.reg[REG_PC]++
	return
}

// State returns the run state of the CPU.
func (c *Cpu) State() CpuState {
	return c.state
}

// Error returns true if the CPU is frozen in an error state.
func (c *Cpu) Error() bool {
	return c.state != STATE_RUNNING
}

// Reg returns the value of a register.
func (c *Cpu) Reg(reg Register) uint16 {
	return c.reg[reg]
}

// SetReg sets the value of a register.
func (c *Cpu) SetReg(reg Register, value uint16) {
	c.reg[reg] = value
}

// Memory reads a single memory address.
func (c *Cpu) Memory(address uint16) uint16 {
	return c.mem[address]
}

// SetMemory writes a single memory address.
func (c *Cpu) SetMemory(address uint16, value uint16) {
	c.mem[address] = value
}

// LoadImage copies a memory image into memory starting at address 0.
func (c *Cpu) LoadImage(image []uint16) {
	copy(c.mem[:], image)
}

// InterruptsEnabled returns true if interrupts trigger rather than queue.
func (c *Cpu) InterruptsEnabled() bool {
	return c.interruptsEnabled
}

// ClockSpeed returns the nominal clock speed in Hz.
func (c *Cpu) ClockSpeed() int {
	return c.clockHz
}

// Cycles returns the cycle timestamp: the total cycles consumed since the
// CPU was created.
func (c *Cpu) Cycles() int {
	return c.cycles
}

// AttachedDeviceCount returns the number of attached hardware devices.
func (c *Cpu) AttachedDeviceCount() int {
	return len(c.devices)
}

// AttachedDevice returns the hardware device at the given index.
func (c *Cpu) AttachedDevice(index int) Device {
	return c.devices[index]
}

// String returns the current CPU state as a string.
func (c *Cpu) String() (text string) {
	text = fmt.Sprintf("state: %v\n", c.state)
	for reg := REG_A; reg < Register(registerCount); reg++ {
		text += fmt.Sprintf("% 3s: %04x\n", reg, c.reg[reg])
	}
	return
}
