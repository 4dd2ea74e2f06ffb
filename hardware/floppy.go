package hardware

import (
	"log"

	"github.com/ezrec/dcpu16/cpu"
)

const (
	FLOPPY_ID           = 0x4f524c5
	FLOPPY_VERSION      = 0x000b
	FLOPPY_MANUFACTURER = 0x1eb37e91

	FLOPPY_SECTORS_PER_TRACK = 18
	FLOPPY_TOTAL_SECTORS     = 1440
	FLOPPY_WORDS_PER_SECTOR  = 512
	FLOPPY_TOTAL_WORDS       = FLOPPY_TOTAL_SECTORS * FLOPPY_WORDS_PER_SECTOR

	// track-to-track seek time in seconds, and sustained transfer rate
	floppySeekSeconds    = 0.0024
	floppyWordsPerSecond = 30700
)

// FloppyState is the drive state reported by a poll.
type FloppyState int

//go:generate go tool stringer -linecomment -type=FloppyState
const (
	FLOPPY_STATE_NO_MEDIA = FloppyState(0x0000) // no media
	FLOPPY_STATE_READY    = FloppyState(0x0001) // ready
	FLOPPY_STATE_READY_WP = FloppyState(0x0002) // ready, write protected
	FLOPPY_STATE_BUSY     = FloppyState(0x0003) // busy
)

// FloppyError is the last error reported by a poll. Polling clears it.
type FloppyError int

//go:generate go tool stringer -linecomment -type=FloppyError
const (
	FLOPPY_ERROR_NONE       = FloppyError(0x0000) // none
	FLOPPY_ERROR_BUSY       = FloppyError(0x0001) // busy
	FLOPPY_ERROR_NO_MEDIA   = FloppyError(0x0002) // no media
	FLOPPY_ERROR_PROTECTED  = FloppyError(0x0003) // protected
	FLOPPY_ERROR_EJECT      = FloppyError(0x0004) // eject
	FLOPPY_ERROR_BAD_SECTOR = FloppyError(0x0005) // bad sector
	FLOPPY_ERROR_BROKEN     = FloppyError(0xffff) // broken
)

// floppyOp is a transfer in progress.
type floppyOp int

const (
	floppyOpNone = floppyOp(iota)
	floppyOpRead
	floppyOpWrite
)

// Floppy is the floppy drive device. Reads and writes move one sector at
// a time and complete asynchronously, after a simulated seek and
// transfer delay pegged to the processor's clock speed.
type Floppy struct {
	Verbose bool // Set to enable verbose logging.

	cpu     *cpu.Cpu
	state   FloppyState
	lastErr FloppyError
	message uint16

	disk         []uint16
	writeProtect bool
	track        int

	seekCycles int // cycles to seek one track
	rwCycles   int // cycles to transfer one sector

	op        floppyOp
	opSector  int
	opAddress uint16
}

// Attach connects the drive to a processor, deriving the seek and
// transfer delays from its clock speed.
func (fd *Floppy) Attach(c *cpu.Cpu) {
	fd.cpu = c
	fd.seekCycles = int(floppySeekSeconds * float64(c.ClockSpeed()))
	fd.rwCycles = c.ClockSpeed() * FLOPPY_WORDS_PER_SECTOR / floppyWordsPerSecond
}

// Interrupt handles a hardware interrupt: A=0 polls the drive (state
// into B, last error into C, clearing it), A=1 sets the state-change
// interrupt message from X, A=2 reads sector X into memory at Y, A=3
// writes memory at Y to sector X.
func (fd *Floppy) Interrupt() (extraCycles int) {
	switch fd.cpu.Reg(cpu.REG_A) {
	case 0: // poll device
		fd.cpu.SetReg(cpu.REG_B, uint16(fd.state))
		fd.cpu.SetReg(cpu.REG_C, uint16(fd.lastErr))
		// clearing the error is not a state change; no interrupt
		fd.lastErr = FLOPPY_ERROR_NONE

	case 1: // set interrupt message
		fd.message = fd.cpu.Reg(cpu.REG_X)

	case 2: // read sector
		fd.beginOp(floppyOpRead, int(fd.cpu.Reg(cpu.REG_X)), fd.cpu.Reg(cpu.REG_Y))

	case 3: // write sector
		fd.beginOp(floppyOpWrite, int(fd.cpu.Reg(cpu.REG_X)), fd.cpu.Reg(cpu.REG_Y))
	}

	return
}

// transition sets the drive state and last error, raising the
// state-change interrupt if anything changed.
func (fd *Floppy) transition(state FloppyState, lastErr FloppyError) {
	if fd.message != 0 && (state != fd.state || lastErr != fd.lastErr) {
		fd.cpu.Interrupt(fd.message)
	}
	fd.state = state
	fd.lastErr = lastErr
}

// fail reports an error without changing the drive state.
func (fd *Floppy) fail(lastErr FloppyError) {
	fd.transition(fd.state, lastErr)
}

// beginOp starts a sector transfer, leaving 1 in B if the transfer was
// accepted and 0 if not.
func (fd *Floppy) beginOp(op floppyOp, sector int, address uint16) {
	switch {
	case fd.state == FLOPPY_STATE_NO_MEDIA:
		fd.fail(FLOPPY_ERROR_NO_MEDIA)
	case fd.state == FLOPPY_STATE_BUSY:
		fd.fail(FLOPPY_ERROR_BUSY)
	case op == floppyOpWrite && fd.state == FLOPPY_STATE_READY_WP:
		fd.fail(FLOPPY_ERROR_PROTECTED)
	case sector >= FLOPPY_TOTAL_SECTORS:
		fd.fail(FLOPPY_ERROR_BAD_SECTOR)
	default:
		fd.op = op
		fd.opSector = sector
		fd.opAddress = address

		track := sector / FLOPPY_SECTORS_PER_TRACK
		seekTracks := max(fd.track-track, track-fd.track)
		waitCycles := fd.rwCycles + fd.seekCycles*seekTracks
		fd.track = track

		if fd.Verbose {
			log.Printf("floppy: op %v sector %v address %#04x, %v cycles", op, sector, address, waitCycles)
		}

		fd.cpu.ScheduleWake(fd, waitCycles, 0)
		fd.transition(FLOPPY_STATE_BUSY, fd.lastErr)
		fd.cpu.SetReg(cpu.REG_B, 1)
		return
	}

	fd.cpu.SetReg(cpu.REG_B, 0)
}

// Wake completes the pending sector transfer.
func (fd *Floppy) Wake(elapsedCycles int, context int) {
	base := fd.opSector * FLOPPY_WORDS_PER_SECTOR

	switch fd.op {
	case floppyOpRead:
		for n := range FLOPPY_WORDS_PER_SECTOR {
			fd.cpu.SetMemory(fd.opAddress+uint16(n), fd.disk[base+n])
		}

	case floppyOpWrite:
		for n := range FLOPPY_WORDS_PER_SECTOR {
			fd.disk[base+n] = fd.cpu.Memory(fd.opAddress + uint16(n))
		}

	default:
		// the disk was ejected mid-transfer
		return
	}

	fd.op = floppyOpNone
	fd.transition(fd.readyState(), fd.lastErr)
}

// readyState is the idle state for the inserted disk.
func (fd *Floppy) readyState() FloppyState {
	if fd.writeProtect {
		return FLOPPY_STATE_READY_WP
	}
	return FLOPPY_STATE_READY
}

// Inserted returns true if a disk is in the drive.
func (fd *Floppy) Inserted() bool {
	return fd.disk != nil
}

// Insert loads a disk image into the drive. Images shorter than a full
// disk are zero padded. The drive must be empty.
func (fd *Floppy) Insert(image []uint16, writeProtect bool) (ok bool) {
	if fd.Inserted() || len(image) > FLOPPY_TOTAL_WORDS {
		return
	}

	fd.disk = make([]uint16, FLOPPY_TOTAL_WORDS)
	copy(fd.disk, image)
	fd.writeProtect = writeProtect
	fd.track = 0
	fd.transition(fd.readyState(), fd.lastErr)

	return true
}

// Eject removes the disk from the drive, returning its contents. An
// eject during a transfer abandons the transfer and reports an error.
func (fd *Floppy) Eject() (image []uint16, ok bool) {
	if !fd.Inserted() {
		return
	}

	if fd.op != floppyOpNone {
		fd.transition(FLOPPY_STATE_NO_MEDIA, FLOPPY_ERROR_EJECT)
	} else {
		fd.transition(FLOPPY_STATE_NO_MEDIA, fd.lastErr)
	}

	image = fd.disk
	fd.disk = nil
	fd.op = floppyOpNone

	return image, true
}

// Id returns the hardware id.
func (fd *Floppy) Id() uint32 {
	return FLOPPY_ID
}

// Version returns the hardware version.
func (fd *Floppy) Version() uint16 {
	return FLOPPY_VERSION
}

// Manufacturer returns the hardware manufacturer id.
func (fd *Floppy) Manufacturer() uint32 {
	return FLOPPY_MANUFACTURER
}
