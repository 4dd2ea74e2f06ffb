package hardware

import (
	"log"

	"github.com/ezrec/dcpu16/cpu"
)

const (
	CLOCK_ID           = 0x12d0b402
	CLOCK_VERSION      = 0x0001
	CLOCK_MANUFACTURER = 0x0000

	// the "base" number of ticks per second, divided by the rate in B
	CLOCK_BASIC_RATE = 60
)

// Clock is the generic clock device. Once given a rate it ticks every
// B/60 seconds of simulated time, counting ticks and optionally raising
// an interrupt per tick. The clock is pegged to the processor's cycle
// counter and clock speed, not to real time.
type Clock struct {
	Verbose bool // Set to enable verbose logging.

	cpu     *cpu.Cpu
	message uint16

	context    int // wake generation; bumped on every rate change
	ticks      uint16
	waitCycles int
}

// Attach connects the clock to a processor.
func (ck *Clock) Attach(c *cpu.Cpu) {
	ck.cpu = c
}

// Interrupt handles a hardware interrupt: A=0 sets the tick rate from B
// (one tick per B/60 seconds, 0 stops the clock), A=1 reads the tick
// count since the last rate change into C, A=2 sets the per-tick
// interrupt message from B (0 disables interrupts).
func (ck *Clock) Interrupt() (extraCycles int) {
	switch ck.cpu.Reg(cpu.REG_A) {
	case 0: // set rate
		ck.context++
		ck.ticks = 0
		ck.waitCycles = ck.cpu.ClockSpeed() * int(ck.cpu.Reg(cpu.REG_B)) / CLOCK_BASIC_RATE
		if ck.waitCycles != 0 {
			ck.cpu.ScheduleWake(ck, ck.waitCycles, ck.context)
		}

	case 1: // get tick count
		ck.cpu.SetReg(cpu.REG_C, ck.ticks)

	case 2: // set interrupt message
		ck.message = ck.cpu.Reg(cpu.REG_B)
	}

	return
}

// Wake ticks the clock and schedules the next tick.
func (ck *Clock) Wake(elapsedCycles int, context int) {
	if context != ck.context {
		// this wake is for a previous rate
		return
	}

	ck.ticks++
	if ck.Verbose {
		log.Printf("clock: tick %v after %v cycles", ck.ticks, elapsedCycles)
	}
	if ck.message != 0 {
		ck.cpu.Interrupt(ck.message)
	}

	ck.cpu.ScheduleWake(ck, ck.waitCycles, ck.context)
}

// Id returns the hardware id.
func (ck *Clock) Id() uint32 {
	return CLOCK_ID
}

// Version returns the hardware version.
func (ck *Clock) Version() uint16 {
	return CLOCK_VERSION
}

// Manufacturer returns the hardware manufacturer id.
func (ck *Clock) Manufacturer() uint32 {
	return CLOCK_MANUFACTURER
}
