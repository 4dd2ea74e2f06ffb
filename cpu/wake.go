package cpu

import (
	"slices"
)

// wakeRequest is a device callback scheduled against the cycle counter.
type wakeRequest struct {
	device  Device
	context int
	start   int // cycle timestamp at registration
	end     int // cycle timestamp at which the request fires
}

// ScheduleWake asks the CPU to call device.Wake once the given number of
// cycles have elapsed. Delivery happens after the step whose cycle cost
// pushes the counter to or past the deadline, never sooner. The context
// value is handed back to the device unchanged.
func (c *Cpu) ScheduleWake(device Device, cycles int, context int) {
	req := wakeRequest{
		device:  device,
		context: context,
		start:   c.cycles,
		end:     c.cycles + cycles,
	}

	// Pending requests stay sorted by ascending deadline; equal deadlines
	// fire in registration order.
	n := len(c.wakes)
	for n > 0 && c.wakes[n-1].end > req.end {
		n--
	}
	c.wakes = slices.Insert(c.wakes, n, req)
}

// fireWakes delivers every wake request that has come due at the current
// cycle timestamp, oldest deadline first. Requests scheduled during the
// flush, including zero-delay requests, are deferred to the next step so a
// device rescheduling itself cannot starve the simulation.
func (c *Cpu) fireWakes() {
	n := 0
	for n < len(c.wakes) && c.wakes[n].end <= c.cycles {
		n++
	}
	if n == 0 {
		return
	}

	due := slices.Clone(c.wakes[:n])
	c.wakes = slices.Delete(c.wakes, 0, n)

	for _, req := range due {
		req.device.Wake(c.cycles-req.start, req.context)
	}
}
