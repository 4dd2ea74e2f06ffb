package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/dcpu16/cpu"
)

// fill loads every memory address with a harmless 1-cycle instruction
// (SET Z, 1), so the device tests can step the processor freely.
func fill(c *cpu.Cpu) {
	word := cpu.Instruction{
		Operator: cpu.OP_SET,
		A:        cpu.OPERAND_LITERAL + 2,
		B:        cpu.OPERAND_REG + 5,
	}.Encode()

	for n := range cpu.MEMORY_SIZE {
		c.SetMemory(uint16(n), word)
	}
}

// steps runs the CPU for a number of steps.
func steps(c *cpu.Cpu, n int) {
	for range n {
		c.Step()
	}
}

// hwi loads the interrupt registers and sends the device a hardware
// interrupt, the way an HWI instruction would.
func hwi(c *cpu.Cpu, dev cpu.Device, regs map[cpu.Register]uint16) {
	for reg, value := range regs {
		c.SetReg(reg, value)
	}
	dev.Interrupt()
}

func TestDeviceIdentities(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name         string
		device       cpu.Device
		id           uint32
		version      uint16
		manufacturer uint32
	}){
		{"clock", &Clock{}, 0x12d0b402, 0x0001, 0x0000},
		{"keyboard", &Keyboard{}, 0x30cf7406, 0x0001, 0x0000},
		{"terminal", &Terminal{}, 0x7349f615, 0x1802, 0x1c6c8b36},
		{"floppy", &Floppy{}, 0x4f524c5, 0x000b, 0x1eb37e91},
		{"debugger", NewDebugger(), 0x769336d9, 0x0001, 0x0000},
	}

	for _, entry := range table {
		assert.Equal(entry.id, entry.device.Id(), entry.name)
		assert.Equal(entry.version, entry.device.Version(), entry.name)
		assert.Equal(entry.manufacturer, entry.device.Manufacturer(), entry.name)
	}
}

func TestFloppyEnumStrings(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("no media", FLOPPY_STATE_NO_MEDIA.String())
	assert.Equal("busy", FLOPPY_STATE_BUSY.String())
	assert.Equal("ready, write protected", FLOPPY_STATE_READY_WP.String())
	assert.Equal("bad sector", FLOPPY_ERROR_BAD_SECTOR.String())
	assert.Equal("broken", FLOPPY_ERROR_BROKEN.String())
	assert.Equal("FloppyError(7)", FloppyError(7).String())
}
