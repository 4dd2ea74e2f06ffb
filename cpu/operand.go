package cpu

// Operand is an addressing mode, decoded from the 6-bit operand-A field or
// the 5-bit operand-B field of an instruction word. Values correspond to
// the DCPU-16 "Values" table:
//
//	0x00-0x07  register A..J
//	0x08-0x0f  [register]
//	0x10-0x17  [register + next word]
//	0x18       PUSH (B slot) / POP (A slot)
//	0x19       PEEK ([SP])
//	0x1a       PICK n ([SP + next word])
//	0x1b-0x1d  SP, PC, EX
//	0x1e       [next word]
//	0x1f       next word, as a literal
//	0x20-0x3f  inline literal -1..30
type Operand int

const (
	OPERAND_REG      = Operand(0x00) // plus register index, A..J
	OPERAND_REG_MEM  = Operand(0x08)
	OPERAND_REG_NEXT = Operand(0x10)
	OPERAND_STACK    = Operand(0x18)
	OPERAND_PEEK     = Operand(0x19)
	OPERAND_PICK     = Operand(0x1a)
	OPERAND_SP       = Operand(0x1b)
	OPERAND_PC       = Operand(0x1c)
	OPERAND_EX       = Operand(0x1d)
	OPERAND_NEXT_MEM = Operand(0x1e)
	OPERAND_NEXT     = Operand(0x1f)
	OPERAND_LITERAL  = Operand(0x20) // plus literal value + 1

	// OPERAND_NONE marks the absent B operand of a special instruction.
	OPERAND_NONE = Operand(-1)
)

// LiteralOperand returns the inline addressing mode encoding a small
// literal, if the value fits the inline range -1..30.
func LiteralOperand(value uint16) (op Operand, ok bool) {
	op = OPERAND_NONE
	if value == 0xffff || value <= 30 {
		op = OPERAND_LITERAL + Operand((value+1)&0x1f)
		ok = true
	}
	return
}

// WordsUsed returns the number of extra instruction words the operand
// consumes from the instruction stream.
func (op Operand) WordsUsed() (words int) {
	switch {
	case op >= OPERAND_REG_NEXT && op < OPERAND_STACK:
		words = 1
	case op == OPERAND_PICK, op == OPERAND_NEXT_MEM, op == OPERAND_NEXT:
		words = 1
	}
	return
}

// ref is a resolved operand: its addressing mode plus the referent token,
// which is a memory address or a literal value depending on the mode.
type ref struct {
	operand Operand
	token   uint16
}

// resolve determines the referent of an operand from the current CPU
// state, consuming next-words from the instruction stream and applying
// stack-pointer side effects. The A operand must always be resolved before
// the B operand so that next-words and SP adjustments land in order.
func (c *Cpu) resolve(op Operand, isB bool) (r ref) {
	r.operand = op

	switch {
	case op < OPERAND_REG_MEM: // register
	case op < OPERAND_REG_NEXT: // [register]
		r.token = c.reg[op-OPERAND_REG_MEM]
	case op < OPERAND_STACK: // [register + next word]
		r.token = c.reg[op-OPERAND_REG_NEXT] + c.nextWord()
	case op == OPERAND_STACK:
		if isB {
			c.reg[REG_SP]--
			r.token = c.reg[REG_SP]
		} else {
			r.token = c.reg[REG_SP]
			c.reg[REG_SP]++
		}
	case op == OPERAND_PEEK:
		r.token = c.reg[REG_SP]
	case op == OPERAND_PICK:
		r.token = c.reg[REG_SP] + c.nextWord()
	case op == OPERAND_SP, op == OPERAND_PC, op == OPERAND_EX:
	case op == OPERAND_NEXT_MEM, op == OPERAND_NEXT:
		r.token = c.nextWord()
	default:
		r.token = uint16(op) - 0x21 // inline literal, -1..30
	}

	return
}

// get reads the value of a resolved operand.
func (c *Cpu) get(r ref) (value uint16) {
	op := r.operand
	switch {
	case op < OPERAND_REG_MEM:
		value = c.reg[op]
	case op == OPERAND_SP:
		value = c.reg[REG_SP]
	case op == OPERAND_PC:
		value = c.reg[REG_PC]
	case op == OPERAND_EX:
		value = c.reg[REG_EX]
	case op == OPERAND_NEXT, op >= OPERAND_LITERAL:
		value = r.token
	default:
		value = c.mem[r.token]
	}
	return
}

// set writes the value of a resolved operand. Writes to literal operands
// are discarded.
func (c *Cpu) set(r ref, value uint16) {
	op := r.operand
	switch {
	case op < OPERAND_REG_MEM:
		c.reg[op] = value
	case op == OPERAND_SP:
		c.reg[REG_SP] = value
	case op == OPERAND_PC:
		c.reg[REG_PC] = value
	case op == OPERAND_EX:
		c.reg[REG_EX] = value
	case op == OPERAND_NEXT, op >= OPERAND_LITERAL:
		// literals are read-only
	default:
		c.mem[r.token] = value
	}
}
