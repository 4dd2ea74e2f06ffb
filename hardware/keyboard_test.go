package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/dcpu16/cpu"
)

// readKey pops the next buffered key.
func readKey(c *cpu.Cpu, kb *Keyboard) uint16 {
	hwi(c, kb, map[cpu.Register]uint16{cpu.REG_A: 1})
	return c.Reg(cpu.REG_C)
}

func TestKeyboardBuffer(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	c := cpu.NewCpu(kb)

	kb.Type('h')
	kb.Type('i')
	kb.Type(KEY_RETURN)

	assert.Equal(uint16('h'), readKey(c, kb))
	assert.Equal(uint16('i'), readKey(c, kb))
	assert.Equal(uint16(KEY_RETURN), readKey(c, kb))
	assert.Equal(uint16(0), readKey(c, kb))
}

func TestKeyboardClear(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	c := cpu.NewCpu(kb)

	kb.Type('x')
	hwi(c, kb, map[cpu.Register]uint16{cpu.REG_A: 0})

	assert.Equal(uint16(0), readKey(c, kb))
}

func TestKeyboardPressed(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	c := cpu.NewCpu(kb)

	kb.Press(KEY_SHIFT)
	hwi(c, kb, map[cpu.Register]uint16{cpu.REG_A: 2, cpu.REG_B: KEY_SHIFT})
	assert.Equal(uint16(1), c.Reg(cpu.REG_C))

	kb.Release(KEY_SHIFT)
	hwi(c, kb, map[cpu.Register]uint16{cpu.REG_A: 2, cpu.REG_B: KEY_SHIFT})
	assert.Equal(uint16(0), c.Reg(cpu.REG_C))
}

func TestKeyboardBufferBound(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	c := cpu.NewCpu(kb)

	for n := range uint16(KEYBOARD_BUFFER_SIZE + 10) {
		kb.Type(n)
	}

	for n := range uint16(KEYBOARD_BUFFER_SIZE) {
		assert.Equal(n, readKey(c, kb))
	}
	assert.Equal(uint16(0), readKey(c, kb))
}

func TestKeyboardInterrupts(t *testing.T) {
	assert := assert.New(t)

	kb := &Keyboard{}
	c := cpu.NewCpu(kb)
	fill(c)
	c.SetReg(cpu.REG_IA, 0x200)

	hwi(c, kb, map[cpu.Register]uint16{cpu.REG_A: 3, cpu.REG_B: 9})

	kb.Type('k')

	c.Step() // the per-step wake raises the key event
	c.Step() // delivery
	assert.Equal(uint16(9), c.Reg(cpu.REG_A))
	assert.Equal(uint16(0x201), c.Reg(cpu.REG_PC))

	assert.Equal(uint16('k'), readKey(c, kb))
}
