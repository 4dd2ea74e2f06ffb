package cpu

// Register names a CPU register.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A  = Register(iota) // A
	REG_B                   // B
	REG_C                   // C
	REG_X                   // X
	REG_Y                   // Y
	REG_Z                   // Z
	REG_I                   // I
	REG_J                   // J
	REG_PC                  // PC
	REG_SP                  // SP
	REG_EX                  // EX
	REG_IA                  // IA
)

const registerCount = int(REG_IA) + 1

// registerByName maps register names to registers, for the assembler.
var registerByName = map[string]Register{}

func init() {
	for reg := REG_A; reg < Register(registerCount); reg++ {
		registerByName[reg.String()] = reg
	}
}
