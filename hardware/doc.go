// Package hardware provides the standard hardware devices for the
// DCPU-16: the generic clock, the generic keyboard, the LEM1802
// terminal, the M35FD floppy drive, and a debugger.
//
// Devices attach to a processor at creation time and talk to it through
// the cpu.Device contract: HWI instructions arrive as Interrupt calls,
// and deferred work comes back as Wake calls after a scheduled number of
// cycles. Timing is pegged to the processor's cycle counter, not to
// wall-clock time.
package hardware
