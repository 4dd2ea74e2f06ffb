package cpu

import (
	"sync"
)

// Instruction word bit layout, 16 bits: aaaaaabbbbbooooo. An opcode field
// of zero selects the special (one-operand) form, where the operand-B
// field picks the operator instead.
const (
	OPCODE_MASK     = 0x1f
	OPERAND_B_SHIFT = 5
	OPERAND_B_MASK  = 0x1f
	OPERAND_A_SHIFT = 10
	OPERAND_A_MASK  = 0x3f
)

// Instruction is a decoded instruction word. Special instructions carry
// OPERAND_NONE in the B slot.
type Instruction struct {
	Operator Operator
	A        Operand
	B        Operand
}

// Decode decodes a single instruction word. Decoding is a pure function
// of the word; a word whose operator-table slot has no mapping decodes to
// an Instruction with OP_NONE, which is illegal to execute.
func Decode(word uint16) (inst Instruction) {
	opcode := word & OPCODE_MASK
	fieldB := (word >> OPERAND_B_SHIFT) & OPERAND_B_MASK
	fieldA := (word >> OPERAND_A_SHIFT) & OPERAND_A_MASK

	inst.A = Operand(fieldA)
	if opcode == 0 {
		inst.Operator = specialOperators[fieldB]
		inst.B = OPERAND_NONE
	} else {
		inst.Operator = normalOperators[opcode]
		inst.B = Operand(fieldB)
	}

	return
}

// Encode produces the instruction word for a decoded instruction.
// Encode is the inverse of Decode for every legal instruction.
func (inst Instruction) Encode() (word uint16) {
	word = uint16(inst.A) << OPERAND_A_SHIFT
	if inst.Operator.Special() {
		word |= inst.Operator.Value() << OPERAND_B_SHIFT
	} else {
		word |= uint16(inst.B)<<OPERAND_B_SHIFT | inst.Operator.Value()
	}
	return
}

// Illegal returns true if the instruction cannot be executed.
func (inst Instruction) Illegal() bool {
	return inst.Operator == OP_NONE
}

// Conditional returns true for the IF* instructions.
func (inst Instruction) Conditional() bool {
	return inst.Operator.Conditional()
}

// WordsUsed returns the total number of memory words the instruction
// occupies: one for the instruction word itself plus any next-words
// consumed by its operands.
func (inst Instruction) WordsUsed() (words int) {
	words = 1 + inst.A.WordsUsed()
	if inst.B != OPERAND_NONE {
		words += inst.B.WordsUsed()
	}
	return
}

// decodeTable caches the decode of all 65,536 possible instruction words,
// populated on first use.
var decodeTable [0x10000]Instruction
var decodeOnce sync.Once

func decoded(word uint16) Instruction {
	decodeOnce.Do(func() {
		for w := range decodeTable {
			decodeTable[w] = Decode(uint16(w))
		}
	})
	return decodeTable[word]
}
