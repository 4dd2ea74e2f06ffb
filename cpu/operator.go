package cpu

// Operator is an executable operation, selected by the 5-bit opcode field
// of a normal instruction or the operand-B field of a special instruction.
type Operator int

//go:generate go tool stringer -linecomment -type=Operator
const (
	OP_NONE = Operator(iota) // ???

	// basic arithmetic
	OP_SET // SET
	OP_ADD // ADD
	OP_SUB // SUB
	OP_MUL // MUL
	OP_MLI // MLI
	OP_DIV // DIV
	OP_DVI // DVI
	OP_MOD // MOD
	OP_MDI // MDI

	// bitwise arithmetic
	OP_AND // AND
	OP_BOR // BOR
	OP_XOR // XOR
	OP_SHR // SHR
	OP_ASR // ASR
	OP_SHL // SHL

	// conditional
	OP_IFB // IFB
	OP_IFC // IFC
	OP_IFE // IFE
	OP_IFN // IFN
	OP_IFG // IFG
	OP_IFA // IFA
	OP_IFL // IFL
	OP_IFU // IFU

	// arithmetic with overflow
	OP_ADX // ADX
	OP_SBX // SBX

	// loop helpers
	OP_STI // STI
	OP_STD // STD

	// special
	OP_JSR // JSR
	OP_INT // INT
	OP_IAG // IAG
	OP_IAS // IAS
	OP_RFI // RFI
	OP_IAQ // IAQ
	OP_HWN // HWN
	OP_HWQ // HWQ
	OP_HWI // HWI
)

const operatorCount = int(OP_HWI) + 1

// operatorSpec carries the static attributes of an operator.
type operatorSpec struct {
	value       uint16 // encoded operator field value
	cycles      int    // base execution cycles, before operand and skip costs
	special     bool   // one-operand form
	conditional bool   // participates in skip chaining
}

var operatorSpecs = [operatorCount]operatorSpec{
	OP_SET: {value: 0x01, cycles: 1},
	OP_ADD: {value: 0x02, cycles: 2},
	OP_SUB: {value: 0x03, cycles: 2},
	OP_MUL: {value: 0x04, cycles: 2},
	OP_MLI: {value: 0x05, cycles: 2},
	OP_DIV: {value: 0x06, cycles: 3},
	OP_DVI: {value: 0x07, cycles: 3},
	OP_MOD: {value: 0x08, cycles: 3},
	OP_MDI: {value: 0x09, cycles: 3},

	OP_AND: {value: 0x0a, cycles: 1},
	OP_BOR: {value: 0x0b, cycles: 1},
	OP_XOR: {value: 0x0c, cycles: 1},
	OP_SHR: {value: 0x0d, cycles: 1},
	OP_ASR: {value: 0x0e, cycles: 1},
	OP_SHL: {value: 0x0f, cycles: 1},

	OP_IFB: {value: 0x10, cycles: 2, conditional: true},
	OP_IFC: {value: 0x11, cycles: 2, conditional: true},
	OP_IFE: {value: 0x12, cycles: 2, conditional: true},
	OP_IFN: {value: 0x13, cycles: 2, conditional: true},
	OP_IFG: {value: 0x14, cycles: 2, conditional: true},
	OP_IFA: {value: 0x15, cycles: 2, conditional: true},
	OP_IFL: {value: 0x16, cycles: 2, conditional: true},
	OP_IFU: {value: 0x17, cycles: 2, conditional: true},

	OP_ADX: {value: 0x1a, cycles: 3},
	OP_SBX: {value: 0x1b, cycles: 3},

	OP_STI: {value: 0x1e, cycles: 2},
	OP_STD: {value: 0x1f, cycles: 2},

	OP_JSR: {value: 0x01, cycles: 3, special: true},
	OP_INT: {value: 0x08, cycles: 4, special: true},
	OP_IAG: {value: 0x09, cycles: 1, special: true},
	OP_IAS: {value: 0x0a, cycles: 1, special: true},
	OP_RFI: {value: 0x0b, cycles: 3, special: true},
	OP_IAQ: {value: 0x0c, cycles: 2, special: true},
	OP_HWN: {value: 0x10, cycles: 2, special: true},
	OP_HWQ: {value: 0x11, cycles: 4, special: true},
	OP_HWI: {value: 0x12, cycles: 4, special: true},
}

// normalOperators maps the opcode field of a normal instruction to its
// operator. Unmapped slots decode as OP_NONE, which is illegal to execute.
var normalOperators = [0x20]Operator{
	0x01: OP_SET, 0x02: OP_ADD, 0x03: OP_SUB, 0x04: OP_MUL,
	0x05: OP_MLI, 0x06: OP_DIV, 0x07: OP_DVI, 0x08: OP_MOD,
	0x09: OP_MDI, 0x0a: OP_AND, 0x0b: OP_BOR, 0x0c: OP_XOR,
	0x0d: OP_SHR, 0x0e: OP_ASR, 0x0f: OP_SHL, 0x10: OP_IFB,
	0x11: OP_IFC, 0x12: OP_IFE, 0x13: OP_IFN, 0x14: OP_IFG,
	0x15: OP_IFA, 0x16: OP_IFL, 0x17: OP_IFU, 0x1a: OP_ADX,
	0x1b: OP_SBX, 0x1e: OP_STI, 0x1f: OP_STD,
}

// specialOperators maps the operand-B field of a special instruction to its
// operator.
var specialOperators = [0x20]Operator{
	0x01: OP_JSR, 0x08: OP_INT, 0x09: OP_IAG, 0x0a: OP_IAS,
	0x0b: OP_RFI, 0x0c: OP_IAQ, 0x10: OP_HWN, 0x11: OP_HWQ,
	0x12: OP_HWI,
}

// operatorByName maps mnemonics to operators, for the assembler.
var operatorByName = map[string]Operator{}

func init() {
	for op := OP_SET; op < Operator(operatorCount); op++ {
		operatorByName[op.String()] = op
	}
}

// Value returns the operator field value as encoded in an instruction word.
func (op Operator) Value() uint16 {
	return operatorSpecs[op].value
}

// Cycles returns the base number of cycles taken to execute the operator,
// not counting cycles consumed fetching the operands.
func (op Operator) Cycles() int {
	return operatorSpecs[op].cycles
}

// Special returns true if the operator takes a single operand.
func (op Operator) Special() bool {
	return operatorSpecs[op].special
}

// Conditional returns true for the IF* operators, which skip the following
// instruction when their condition is false.
func (op Operator) Conditional() bool {
	return operatorSpecs[op].conditional
}
