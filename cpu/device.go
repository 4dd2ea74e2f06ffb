package cpu

// Device is a hardware device attached to the CPU.
//
// The identity triple (Id, Version, Manufacturer) is surfaced to programs
// by the HWQ instruction and must stay constant for the device's lifetime.
type Device interface {
	// Attach notifies the device that it is connected to a CPU.
	// Called once, before any other method.
	Attach(cpu *Cpu)
	// Interrupt delivers a software interrupt (HWI) to the device.
	// Registers A/B/C/X/Y are the parameter and return channel.
	// Returns the number of cycles the device adds to the HWI cost.
	Interrupt() (extraCycles int)
	// Wake is fired by the CPU after a ScheduleWake request comes due.
	Wake(elapsedCycles int, context int)
	// Id returns the 32-bit hardware ID.
	Id() uint32
	// Version returns the 16-bit hardware version.
	Version() uint16
	// Manufacturer returns the 32-bit manufacturer ID.
	Manufacturer() uint32
}
