package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/dcpu16/cpu"
)

// runDebugger starts a goroutine stepping a filled CPU n times. Break
// conditions must already be in place; the returned channels carry pause
// PCs and completion.
func runDebugger(dbg *Debugger) (c *cpu.Cpu, paused chan uint16, done chan struct{}, run func(n int)) {
	paused = make(chan uint16)
	dbg.OnPause = func(pc uint16) { paused <- pc }

	c = cpu.NewCpu(dbg)
	fill(c)

	done = make(chan struct{})
	run = func(n int) {
		go func() {
			steps(c, n)
			close(done)
		}()
	}

	return
}

func TestDebuggerBreakpoint(t *testing.T) {
	assert := assert.New(t)

	dbg := NewDebugger()
	dbg.SetBreakpoint(3, true)
	assert.True(dbg.Breakpoint(3))

	c, paused, done, run := runDebugger(dbg)
	run(10)

	assert.Equal(uint16(3), <-paused)
	dbg.Continue()
	<-done
	assert.Equal(uint16(10), c.Reg(cpu.REG_PC))
}

func TestDebuggerSingleStep(t *testing.T) {
	assert := assert.New(t)

	dbg := NewDebugger()
	dbg.SetBreakpoint(2, true)

	_, paused, done, run := runDebugger(dbg)
	run(10)

	assert.Equal(uint16(2), <-paused)

	// a single step advances one instruction and pauses again
	dbg.Step()
	assert.Equal(uint16(3), <-paused)
	dbg.Step()
	assert.Equal(uint16(4), <-paused)

	dbg.Continue()
	<-done
}

func TestDebuggerPause(t *testing.T) {
	assert := assert.New(t)

	dbg := NewDebugger()
	dbg.Pause()

	_, paused, done, run := runDebugger(dbg)
	run(5)

	// the pause request lands on the very first step
	assert.Equal(uint16(1), <-paused)
	dbg.Continue()
	<-done
}

func TestDebuggerSoftwareBreakpoint(t *testing.T) {
	assert := assert.New(t)

	dbg := NewDebugger()
	_, paused, done, run := runDebugger(dbg)

	// a hardware interrupt sent to the debugger acts as a breakpoint
	dbg.Interrupt()
	run(5)

	assert.Equal(uint16(1), <-paused)
	dbg.Continue()
	<-done
}

func TestDebuggerClearBreakpoints(t *testing.T) {
	assert := assert.New(t)

	dbg := NewDebugger()
	dbg.SetBreakpoint(1, true)
	dbg.SetBreakpoint(2, true)

	dbg.ClearBreakpoints()
	assert.False(dbg.Breakpoint(1))
	assert.False(dbg.Breakpoint(2))

	dbg.SetBreakpoint(3, true)
	dbg.SetBreakpoint(3, false)
	assert.False(dbg.Breakpoint(3))
}
