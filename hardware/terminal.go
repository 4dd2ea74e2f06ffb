package hardware

import (
	"strings"

	"github.com/ezrec/dcpu16/cpu"
)

const (
	TERMINAL_ID           = 0x7349f615
	TERMINAL_VERSION      = 0x1802
	TERMINAL_MANUFACTURER = 0x1c6c8b36

	TERMINAL_WIDTH  = 32
	TERMINAL_HEIGHT = 12
)

// Terminal commands, selected by register A on a hardware interrupt.
const (
	TERMINAL_MEM_MAP_SCREEN   = 0
	TERMINAL_MEM_MAP_FONT     = 1
	TERMINAL_MEM_MAP_PALETTE  = 2
	TERMINAL_SET_BORDER_COLOR = 3
	TERMINAL_MEM_DUMP_FONT    = 4
	TERMINAL_MEM_DUMP_PALETTE = 5
)

// defaultPalette is the palette used until one is mapped, 0x0rgb.
var defaultPalette = [16]uint16{
	0x000, 0x00a, 0x0a0, 0x0aa, 0xa00, 0xa0a, 0xa50, 0xaaa,
	0x555, 0x55f, 0x5f5, 0x5ff, 0xf55, 0xf5f, 0xff5, 0xfff,
}

// defaultFont is the font ROM dumped by MEM_DUMP_FONT. Glyph bitmaps are
// not modeled; rendering decodes the character code of each cell instead.
var defaultFont [256]uint16

// Terminal is the LEM1802 display device, rendered as text rather than
// pixels. Once a screen is mapped, each of the 12x32 cells holds a color
// and blink attribute in the high bits and a 7-bit character code in the
// low bits.
type Terminal struct {
	cpu *cpu.Cpu

	screen  uint16 // mapped video memory, 0 when disconnected
	font    uint16 // mapped font memory, 0 for the font ROM
	palette uint16 // mapped palette memory, 0 for the default palette
	border  uint16
}

// Attach connects the terminal to a processor.
func (t *Terminal) Attach(c *cpu.Cpu) {
	t.cpu = c
}

// Interrupt handles a hardware interrupt: map or unmap the screen, font,
// and palette regions from B, set the border color from B, or dump the
// built-in font or palette to memory at B.
func (t *Terminal) Interrupt() (extraCycles int) {
	b := t.cpu.Reg(cpu.REG_B)

	switch t.cpu.Reg(cpu.REG_A) {
	case TERMINAL_MEM_MAP_SCREEN:
		t.screen = b

	case TERMINAL_MEM_MAP_FONT:
		t.font = b

	case TERMINAL_MEM_MAP_PALETTE:
		t.palette = b

	case TERMINAL_SET_BORDER_COLOR:
		t.border = b & 0xf

	case TERMINAL_MEM_DUMP_FONT:
		for n, word := range defaultFont {
			t.cpu.SetMemory(b+uint16(n), word)
		}
		extraCycles = len(defaultFont)

	case TERMINAL_MEM_DUMP_PALETTE:
		for n, word := range defaultPalette {
			t.cpu.SetMemory(b+uint16(n), word)
		}
		extraCycles = len(defaultPalette)
	}

	return
}

// Wake is unused; the terminal schedules no deferred work.
func (t *Terminal) Wake(elapsedCycles int, context int) {
}

// Connected returns true once a screen has been mapped.
func (t *Terminal) Connected() bool {
	return t.screen != 0
}

// Border returns the border palette index.
func (t *Terminal) Border() uint16 {
	return t.border
}

// Color returns the palette entry for a color index, 0x0rgb.
func (t *Terminal) Color(index uint16) uint16 {
	index &= 0xf
	if t.palette != 0 {
		return t.cpu.Memory(t.palette + index)
	}
	return defaultPalette[index]
}

// Cell returns the raw cell word at a row and column of the mapped
// screen.
func (t *Terminal) Cell(row int, col int) uint16 {
	return t.cpu.Memory(t.screen + uint16(row*TERMINAL_WIDTH+col))
}

// Render formats the mapped screen as TERMINAL_HEIGHT lines of
// TERMINAL_WIDTH characters, dropping the color and blink attributes.
// A disconnected terminal renders as nil.
func (t *Terminal) Render() (lines []string) {
	if !t.Connected() {
		return
	}

	var sb strings.Builder
	for row := range TERMINAL_HEIGHT {
		sb.Reset()
		for col := range TERMINAL_WIDTH {
			ch := rune(t.Cell(row, col) & 0x7f)
			if ch < 0x20 || ch == 0x7f {
				ch = ' '
			}
			sb.WriteRune(ch)
		}
		lines = append(lines, sb.String())
	}

	return
}

// Id returns the hardware id.
func (t *Terminal) Id() uint32 {
	return TERMINAL_ID
}

// Version returns the hardware version.
func (t *Terminal) Version() uint16 {
	return TERMINAL_VERSION
}

// Manufacturer returns the hardware manufacturer id.
func (t *Terminal) Manufacturer() uint32 {
	return TERMINAL_MANUFACTURER
}
