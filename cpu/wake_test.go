package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// wakeRecorder records Wake deliveries, optionally rescheduling itself
// with a zero-cycle delay on the first one.
type wakeRecorder struct {
	cpu        *Cpu
	contexts   []int
	elapsed    []int
	reschedule bool
}

func (d *wakeRecorder) Attach(c *Cpu) { d.cpu = c }
func (d *wakeRecorder) Interrupt() (extraCycles int) {
	return
}
func (d *wakeRecorder) Wake(elapsedCycles int, context int) {
	d.contexts = append(d.contexts, context)
	d.elapsed = append(d.elapsed, elapsedCycles)
	if d.reschedule {
		d.reschedule = false
		d.cpu.ScheduleWake(d, 0, 99)
	}
}
func (d *wakeRecorder) Id() uint32           { return 0x11112222 }
func (d *wakeRecorder) Version() uint16      { return 1 }
func (d *wakeRecorder) Manufacturer() uint32 { return 0x33334444 }

// bootDevices assembles a program into a CPU with the given devices.
func bootDevices(t *testing.T, program []string, devices ...Device) (c *Cpu) {
	t.Helper()

	asm := &Assembler{}
	image, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	c = NewCpu(devices...)
	c.LoadImage(image)
	return
}

// oneCycleLoop is a program of 1-cycle instructions.
func oneCycleLoop(n int) (program []string) {
	for range n {
		program = append(program, "SET A, 1")
	}
	return
}

func TestWakeOrdering(t *testing.T) {
	assert := assert.New(t)

	dev := &wakeRecorder{}
	c := bootDevices(t, oneCycleLoop(8), dev)

	c.ScheduleWake(dev, 5, 1)
	c.ScheduleWake(dev, 3, 2)
	c.ScheduleWake(dev, 5, 3)

	c.Step()
	c.Step()
	assert.Empty(dev.contexts)

	c.Step() // cycle 3: the earliest deadline fires
	assert.Equal([]int{2}, dev.contexts)
	assert.Equal([]int{3}, dev.elapsed)

	c.Step()
	c.Step() // cycle 5: equal deadlines fire in registration order
	assert.Equal([]int{2, 1, 3}, dev.contexts)
	assert.Equal([]int{3, 5, 5}, dev.elapsed)
}

func TestWakeDeliveredAfterDeadline(t *testing.T) {
	assert := assert.New(t)

	dev := &wakeRecorder{}
	c := bootDevices(t, []string{
		"SET A, 0x1234", // 2 cycles
		"SET B, 0x5678", // 2 cycles
	}, dev)

	// due at cycle 3, mid-instruction; delivery waits for the step that
	// crosses the deadline
	c.ScheduleWake(dev, 3, 7)

	c.Step()
	assert.Empty(dev.contexts)

	c.Step() // cycle 4
	assert.Equal([]int{7}, dev.contexts)
	assert.Equal([]int{4}, dev.elapsed)
}

func TestWakeRescheduleDefersToNextStep(t *testing.T) {
	assert := assert.New(t)

	dev := &wakeRecorder{reschedule: true}
	c := bootDevices(t, oneCycleLoop(4), dev)

	c.ScheduleWake(dev, 1, 1)

	c.Step() // fires context 1, which schedules a zero-delay wake
	assert.Equal([]int{1}, dev.contexts)

	c.Step() // the rescheduled wake fires one step later, not recursively
	assert.Equal([]int{1, 99}, dev.contexts)
	assert.Equal([]int{1, 1}, dev.elapsed)
}

func TestWakeNotFiredWhenFrozen(t *testing.T) {
	assert := assert.New(t)

	dev := &wakeRecorder{}
	c := NewCpu(dev) // zeroed memory freezes on the first step

	c.ScheduleWake(dev, 0, 1)

	c.Step()
	assert.True(c.Error())
	assert.Empty(dev.contexts)
}
