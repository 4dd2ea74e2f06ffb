package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	operandsA := []Operand{
		OPERAND_REG, OPERAND_REG + 7, OPERAND_REG_MEM, OPERAND_REG_NEXT,
		OPERAND_STACK, OPERAND_PEEK, OPERAND_PICK, OPERAND_SP, OPERAND_PC,
		OPERAND_EX, OPERAND_NEXT_MEM, OPERAND_NEXT, OPERAND_LITERAL,
		OPERAND_LITERAL + 0x1f,
	}
	operandsB := operandsA[:12] // the B field cannot hold inline literals

	for op := OP_SET; op < Operator(operatorCount); op++ {
		for _, a := range operandsA {
			if op.Special() {
				inst := Instruction{Operator: op, A: a, B: OPERAND_NONE}
				assert.Equal(inst, Decode(inst.Encode()), "%v %#x", op, a)
				continue
			}
			for _, b := range operandsB {
				inst := Instruction{Operator: op, A: a, B: b}
				assert.Equal(inst, Decode(inst.Encode()), "%v %#x %#x", op, a, b)
			}
		}
	}
}

func TestDecodeIllegal(t *testing.T) {
	assert := assert.New(t)

	// unmapped normal opcodes
	for _, opcode := range []uint16{0x18, 0x19, 0x1c, 0x1d} {
		assert.True(Decode(opcode).Illegal(), "opcode %#x", opcode)
	}

	// unmapped special operators
	for _, special := range []uint16{0x00, 0x02, 0x07, 0x0d, 0x13, 0x1f} {
		word := special << OPERAND_B_SHIFT
		assert.True(Decode(word).Illegal(), "special %#x", special)
	}

	assert.True(Decode(0x0000).Illegal())
	assert.False(Decode(Instruction{Operator: OP_SET, A: OPERAND_LITERAL, B: OPERAND_REG}.Encode()).Illegal())
}

func TestInstructionWordsUsed(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		inst  Instruction
		words int
	}){
		{"reg_reg", Instruction{OP_SET, OPERAND_REG, OPERAND_REG + 1}, 1},
		{"lit_reg", Instruction{OP_SET, OPERAND_LITERAL + 5, OPERAND_REG}, 1},
		{"next_reg", Instruction{OP_SET, OPERAND_NEXT, OPERAND_REG}, 2},
		{"next_next", Instruction{OP_SET, OPERAND_NEXT_MEM, OPERAND_REG_NEXT}, 3},
		{"pick", Instruction{OP_SET, OPERAND_PICK, OPERAND_PICK}, 3},
		{"special_next", Instruction{OP_JSR, OPERAND_NEXT, OPERAND_NONE}, 2},
		{"special_reg", Instruction{OP_RFI, OPERAND_LITERAL, OPERAND_NONE}, 1},
	}

	for _, entry := range table {
		assert.Equal(entry.words, entry.inst.WordsUsed(), entry.name)
	}
}

func TestDecodedTableMatchesDecode(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint16{0x0000, 0x0001, 0x7c01, 0x8801, 0x9037, 0xfc12, 0xffff} {
		assert.Equal(Decode(word), decoded(word), "%#04x", word)
	}
}
