package emulator

import (
	"errors"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	ErrImageOdd = errors.New(f("image has an odd byte length"))
)

// ErrFrozen indicates the processor froze in a terminal error state.
type ErrFrozen struct {
	State cpu.CpuState
	PC    uint16
}

func (err *ErrFrozen) Error() string {
	return f("frozen at %#04x: %v", err.PC, err.State)
}
