package hardware

import (
	"sync"
	"sync/atomic"

	"github.com/ezrec/dcpu16/cpu"
)

const (
	DEBUGGER_ID           = 0x769336d9
	DEBUGGER_VERSION      = 0x0001
	DEBUGGER_MANUFACTURER = 0x0000
)

// Debugger is a hardware device that pauses the processor at
// breakpoints. It inspects PC after every step; on a breakpoint or an
// explicit Pause it parks the stepping goroutine until another
// goroutine calls Step or Continue. Programs can also break themselves
// by sending the debugger a hardware interrupt.
type Debugger struct {
	OnPause func(pc uint16) // Called, on the stepping goroutine, as a pause begins.

	cpu *cpu.Cpu

	mu          sync.Mutex
	breakpoints map[uint16]bool

	breaking atomic.Bool
	resume   chan bool // true resumes for a single step, false until the next break
}

// NewDebugger creates a detached debugger.
func NewDebugger() *Debugger {
	return &Debugger{
		breakpoints: make(map[uint16]bool),
		resume:      make(chan bool),
	}
}

// Attach connects the debugger to a processor.
func (dbg *Debugger) Attach(c *cpu.Cpu) {
	dbg.cpu = c
	// a zero-cycle wake request fires after every step
	c.ScheduleWake(dbg, 0, 0)
}

// Interrupt handles a hardware interrupt, which acts as a software
// breakpoint.
func (dbg *Debugger) Interrupt() (extraCycles int) {
	dbg.Pause()
	return
}

// Wake runs once per step, pausing when a break is due.
func (dbg *Debugger) Wake(elapsedCycles int, context int) {
	if dbg.Breakpoint(dbg.cpu.Reg(cpu.REG_PC)) {
		dbg.breaking.Store(true)
	}

	if dbg.breaking.Load() {
		if dbg.OnPause != nil {
			dbg.OnPause(dbg.cpu.Reg(cpu.REG_PC))
		}
		// park until Step or Continue
		dbg.breaking.Store(<-dbg.resume)
	}

	dbg.cpu.ScheduleWake(dbg, 0, 0)
}

// Pause asks the debugger to break before the next instruction.
func (dbg *Debugger) Pause() {
	dbg.breaking.Store(true)
}

// Step resumes a paused processor for a single instruction.
func (dbg *Debugger) Step() {
	dbg.resume <- true
}

// Continue resumes a paused processor until the next break.
func (dbg *Debugger) Continue() {
	dbg.resume <- false
}

// Breakpoint returns true if a breakpoint is set at an address.
func (dbg *Debugger) Breakpoint(address uint16) bool {
	dbg.mu.Lock()
	defer dbg.mu.Unlock()
	return dbg.breakpoints[address]
}

// SetBreakpoint sets or clears a breakpoint at an address.
func (dbg *Debugger) SetBreakpoint(address uint16, set bool) {
	dbg.mu.Lock()
	defer dbg.mu.Unlock()
	if set {
		dbg.breakpoints[address] = true
	} else {
		delete(dbg.breakpoints, address)
	}
}

// ClearBreakpoints removes every breakpoint.
func (dbg *Debugger) ClearBreakpoints() {
	dbg.mu.Lock()
	defer dbg.mu.Unlock()
	clear(dbg.breakpoints)
}

// Id returns the hardware id.
func (dbg *Debugger) Id() uint32 {
	return DEBUGGER_ID
}

// Version returns the hardware version.
func (dbg *Debugger) Version() uint16 {
	return DEBUGGER_VERSION
}

// Manufacturer returns the hardware manufacturer id.
func (dbg *Debugger) Manufacturer() uint32 {
	return DEBUGGER_MANUFACTURER
}
