package cpu

import (
	"fmt"
	"iter"
)

// operandText formats a single operand, consuming next-words as needed.
func operandText(op Operand, isB bool, next func() uint16) (text string) {
	switch {
	case op < OPERAND_REG_MEM:
		text = Register(op).String()
	case op < OPERAND_REG_NEXT:
		text = fmt.Sprintf("[%v]", Register(op-OPERAND_REG_MEM))
	case op < OPERAND_STACK:
		text = fmt.Sprintf("[%v+%#04x]", Register(op-OPERAND_REG_NEXT), next())
	case op == OPERAND_STACK:
		if isB {
			text = "PUSH"
		} else {
			text = "POP"
		}
	case op == OPERAND_PEEK:
		text = "PEEK"
	case op == OPERAND_PICK:
		text = fmt.Sprintf("PICK %d", next())
	case op == OPERAND_SP:
		text = "SP"
	case op == OPERAND_PC:
		text = "PC"
	case op == OPERAND_EX:
		text = "EX"
	case op == OPERAND_NEXT_MEM:
		text = fmt.Sprintf("[%#04x]", next())
	case op == OPERAND_NEXT:
		text = fmt.Sprintf("%#04x", next())
	default:
		text = fmt.Sprintf("%d", int(op)-0x21)
	}
	return
}

// Disassemble renders the instruction at an address as mnemonic text, in
// the "OP b, a" order the assembler accepts. Returns the number of words
// the instruction occupies. Illegal words render as DAT.
func Disassemble(mem []uint16, address uint16) (text string, words int) {
	inst := Decode(mem[address])
	words = 1
	if inst.Illegal() {
		text = fmt.Sprintf("DAT %#04x", mem[address])
		return
	}

	next := func() (word uint16) {
		word = mem[(int(address)+words)%len(mem)]
		words++
		return
	}

	// operand A consumes its next-words first
	aText := operandText(inst.A, false, next)
	if inst.Operator.Special() {
		text = fmt.Sprintf("%v %v", inst.Operator, aText)
	} else {
		bText := operandText(inst.B, true, next)
		text = fmt.Sprintf("%v %v, %v", inst.Operator, bText, aText)
	}

	return
}

// Listing walks memory from start up to end, yielding each instruction's
// address and disassembly.
func Listing(mem []uint16, start uint16, end uint16) iter.Seq2[uint16, string] {
	return func(yield func(address uint16, text string) bool) {
		address := int(start)
		for address < int(end) {
			text, words := Disassemble(mem, uint16(address))
			if !yield(uint16(address), text) {
				return
			}
			address += words
		}
	}
}
