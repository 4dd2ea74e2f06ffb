// Package emulator assembles a DCPU-16 processor and its standard
// hardware devices into a runnable machine.
package emulator

import (
	"context"
	"encoding/binary"
	"io"
	"iter"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/hardware"
)

// ctxCheckSteps is how many steps Run takes between context checks.
const ctxCheckSteps = 4096

// Emulator state: CPU plus the standard hardware devices.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Clock    hardware.Clock    // Generic clock device.
	Keyboard hardware.Keyboard // Generic keyboard device.
	Terminal hardware.Terminal // LEM1802 terminal device.
	Floppy   hardware.Floppy   // M35FD floppy drive device.
}

// NewEmulator creates an emulator at the default clock speed. Any extra
// devices are attached after the standard ones.
func NewEmulator(extra ...cpu.Device) (emu *Emulator) {
	return NewEmulatorAt(cpu.DEFAULT_CLOCK_HZ, extra...)
}

// NewEmulatorAt creates an emulator with a specific clock speed in Hz.
func NewEmulatorAt(clockHz int, extra ...cpu.Device) (emu *Emulator) {
	emu = &Emulator{}

	devices := []cpu.Device{&emu.Clock, &emu.Keyboard, &emu.Terminal, &emu.Floppy}
	devices = append(devices, extra...)

	emu.Cpu = cpu.NewCpuAt(clockHz, devices...)

	return
}

// Assemble assembles a source listing and loads the image at address 0.
func (emu *Emulator) Assemble(input io.Reader) (image []uint16, err error) {
	asm := cpu.Assembler{Verbose: emu.Verbose}
	image, err = asm.Parse(input)
	if err != nil {
		return
	}

	emu.Cpu.LoadImage(image)
	return
}

// LoadBinary loads a big-endian binary image at address 0, returning the
// number of words loaded.
func (emu *Emulator) LoadBinary(input io.Reader) (words int, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}
	if len(data)%2 != 0 {
		err = ErrImageOdd
		return
	}

	words = min(len(data)/2, cpu.MEMORY_SIZE)
	image := make([]uint16, words)
	for n := range image {
		image[n] = binary.BigEndian.Uint16(data[2*n:])
	}

	emu.Cpu.LoadImage(image)
	return
}

// SaveBinary writes the first words of memory as a big-endian binary
// image.
func (emu *Emulator) SaveBinary(output io.Writer, words int) (err error) {
	words = min(words, cpu.MEMORY_SIZE)
	data := make([]byte, 2*words)
	for n := range words {
		binary.BigEndian.PutUint16(data[2*n:], emu.Cpu.Memory(uint16(n)))
	}

	_, err = output.Write(data)
	return
}

// Tick performs a single step of the emulator, reporting an error once
// the processor freezes.
func (emu *Emulator) Tick() (cycles int, err error) {
	emu.Cpu.Verbose = emu.Verbose

	cycles = emu.Cpu.Step()
	if emu.Cpu.Error() {
		err = &ErrFrozen{State: emu.Cpu.State(), PC: emu.Cpu.Reg(cpu.REG_PC)}
	}

	return
}

// Run steps the emulator until the processor freezes, the context is
// canceled, or, with limit > 0, at least limit cycles have elapsed.
func (emu *Emulator) Run(ctx context.Context, limit int) (cycles int, err error) {
	for steps := 1; ; steps++ {
		var stepCycles int
		stepCycles, err = emu.Tick()
		cycles += stepCycles
		if err != nil {
			return
		}

		if limit > 0 && cycles >= limit {
			return
		}

		if steps%ctxCheckSteps == 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
		}
	}
}

// Listing disassembles a range of memory.
func (emu *Emulator) Listing(start uint16, end uint16) iter.Seq2[uint16, string] {
	mem := make([]uint16, cpu.MEMORY_SIZE)
	for n := range mem {
		mem[n] = emu.Cpu.Memory(uint16(n))
	}
	return cpu.Listing(mem, start, end)
}
