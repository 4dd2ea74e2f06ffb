package cpu

import (
	"log"
)

// execute runs a single decoded instruction. PC still points at the
// instruction word on entry; on return it points at the next instruction
// to run (past any skip chain, or wherever a branch sent it).
func (c *Cpu) execute(inst Instruction) (cycles int) {
	if c.Verbose {
		log.Printf("cpu: %04x: %v", c.reg[REG_PC], inst.Operator)
	}

	c.reg[REG_PC]++ // consume the instruction word

	// The A operand always resolves first, taking its next-words and SP
	// side effects ahead of B.
	a := c.resolve(inst.A, false)
	var b ref
	if inst.B != OPERAND_NONE {
		b = c.resolve(inst.B, true)
	}

	cycles = inst.Operator.Cycles() + inst.WordsUsed() - 1

	var skip bool

	switch inst.Operator {
	case OP_SET:
		c.set(b, c.get(a))

	case OP_ADD:
		result := uint32(c.get(a)) + uint32(c.get(b))
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(result >> 16)

	case OP_SUB:
		result := uint32(c.get(b)) - uint32(c.get(a))
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(result >> 16)

	case OP_MUL:
		result := uint32(c.get(a)) * uint32(c.get(b))
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(result >> 16)

	case OP_MLI:
		result := int32(int16(c.get(a))) * int32(int16(c.get(b)))
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(uint32(result) >> 16)

	case OP_DIV:
		valueA := c.get(a)
		if valueA == 0 {
			c.set(b, 0)
			c.reg[REG_EX] = 0
		} else {
			result := (uint32(c.get(b)) << 16) / uint32(valueA)
			c.set(b, uint16(result>>16))
			c.reg[REG_EX] = uint16(result)
		}

	case OP_DVI:
		valueA := int32(int16(c.get(a)))
		if valueA == 0 {
			c.set(b, 0)
			c.reg[REG_EX] = 0
		} else {
			result := (int32(int16(c.get(b))) << 16) / valueA
			c.set(b, uint16(result>>16))
			c.reg[REG_EX] = uint16(uint32(result))
		}

	case OP_MOD:
		valueA := c.get(a)
		if valueA == 0 {
			c.set(b, 0)
		} else {
			c.set(b, c.get(b)%valueA)
		}

	case OP_MDI:
		valueA := int32(int16(c.get(a)))
		if valueA == 0 {
			c.set(b, 0)
		} else {
			c.set(b, uint16(int32(int16(c.get(b)))%valueA))
		}

	case OP_AND:
		c.set(b, c.get(a)&c.get(b))

	case OP_BOR:
		c.set(b, c.get(a)|c.get(b))

	case OP_XOR:
		c.set(b, c.get(a)^c.get(b))

	case OP_SHR:
		shift := c.get(a)
		valueB := c.get(b)
		c.set(b, uint16(uint32(valueB)>>shift))
		c.reg[REG_EX] = uint16(int32(uint32(valueB)<<16) >> shift)

	case OP_ASR:
		shift := c.get(a)
		valueB := c.get(b)
		c.set(b, uint16(int32(int16(valueB))>>shift))
		c.reg[REG_EX] = uint16((uint32(valueB) << 16) >> shift)

	case OP_SHL:
		result := uint64(c.get(b)) << c.get(a)
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(result >> 16)

	case OP_IFB:
		skip = (c.get(a) & c.get(b)) == 0

	case OP_IFC:
		skip = (c.get(a) & c.get(b)) != 0

	case OP_IFE:
		skip = c.get(a) != c.get(b)

	case OP_IFN:
		skip = c.get(a) == c.get(b)

	case OP_IFG:
		skip = c.get(a) <= c.get(b)

	case OP_IFA:
		skip = int16(c.get(a)) <= int16(c.get(b))

	case OP_IFL:
		skip = c.get(a) >= c.get(b)

	case OP_IFU:
		skip = int16(c.get(a)) >= int16(c.get(b))

	case OP_ADX:
		result := uint32(c.get(a)) + uint32(c.get(b)) + uint32(c.reg[REG_EX])
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(result >> 16)

	case OP_SBX:
		result := uint32(c.get(a)) - uint32(c.get(b)) + uint32(c.reg[REG_EX])
		c.set(b, uint16(result))
		c.reg[REG_EX] = uint16(result >> 16)

	case OP_STI:
		c.set(b, c.get(a))
		c.reg[REG_I]++
		c.reg[REG_J]++

	case OP_STD:
		c.set(b, c.get(a))
		c.reg[REG_I]--
		c.reg[REG_J]--

	case OP_JSR:
		c.push(c.reg[REG_PC])
		c.reg[REG_PC] = c.get(a)

	case OP_INT:
		c.Interrupt(c.get(a))

	case OP_IAG:
		c.set(a, c.reg[REG_IA])

	case OP_IAS:
		c.reg[REG_IA] = c.get(a)

	case OP_RFI:
		c.reg[REG_A] = c.pop()
		c.reg[REG_PC] = c.pop()
		c.interruptsEnabled = true

	case OP_IAQ:
		c.interruptsEnabled = c.get(a) == 0

	case OP_HWN:
		c.set(a, uint16(len(c.devices)))

	case OP_HWQ:
		index := c.get(a)
		if int(index) < len(c.devices) {
			dev := c.devices[index]
			id := dev.Id()
			c.reg[REG_A] = uint16(id)
			c.reg[REG_B] = uint16(id >> 16)
			c.reg[REG_C] = dev.Version()
			manufacturer := dev.Manufacturer()
			c.reg[REG_X] = uint16(manufacturer)
			c.reg[REG_Y] = uint16(manufacturer >> 16)
		}

	case OP_HWI:
		index := c.get(a)
		if int(index) < len(c.devices) {
			cycles += c.devices[index].Interrupt()
		}
	}

	if skip {
		cycles += c.skipChain()
	}

	return
}

// skipChain advances PC past the next instruction and keeps going while
// the skipped instruction is itself conditional, costing one extra cycle
// per skipped instruction. Running into an illegal instruction freezes
// the CPU.
func (c *Cpu) skipChain() (extra int) {
	for {
		inst := decoded(c.mem[c.reg[REG_PC]])
		if inst.Illegal() {
			c.state = STATE_ERROR_ILLEGAL_INSTRUCTION
			return
		}

		c.reg[REG_PC] += uint16(inst.WordsUsed())
		extra++

		if !inst.Conditional() {
			return
		}
	}
}
