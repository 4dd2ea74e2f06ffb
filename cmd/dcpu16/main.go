package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/emulator"
	"github.com/ezrec/dcpu16/hardware"
)

// feedKeys reads raw bytes from the console and feeds them to the
// keyboard device, translating carriage returns, deletes, and the arrow
// key escape sequences. Ctrl-C cancels the run.
func feedKeys(kb *hardware.Keyboard, cancel context.CancelFunc) {
	buffer := make([]byte, 64)
	var escape []byte

	for {
		n, err := os.Stdin.Read(buffer)
		if err != nil {
			cancel()
			return
		}

		for _, ch := range buffer[:n] {
			if len(escape) > 0 {
				escape = append(escape, ch)
				if len(escape) < 3 {
					continue
				}
				switch string(escape) {
				case "\033[A":
					kb.Type(hardware.KEY_ARROW_UP)
				case "\033[B":
					kb.Type(hardware.KEY_ARROW_DOWN)
				case "\033[C":
					kb.Type(hardware.KEY_ARROW_RIGHT)
				case "\033[D":
					kb.Type(hardware.KEY_ARROW_LEFT)
				}
				escape = escape[:0]
				continue
			}

			switch ch {
			case 0x03: // Ctrl-C
				cancel()
				return
			case '\r', '\n':
				kb.Type(hardware.KEY_RETURN)
			case 0x7f, 0x08:
				kb.Type(hardware.KEY_BACKSPACE)
			case 0x1b:
				escape = append(escape, ch)
			default:
				if ch >= 0x20 && ch < 0x7f {
					kb.Type(uint16(ch))
				}
			}
		}
	}
}

// render repaints the console from the terminal device.
func render(t *hardware.Terminal) {
	lines := t.Render()
	if lines == nil {
		return
	}

	fmt.Print("\033[H\033[2J")
	border := strings.Repeat("-", hardware.TERMINAL_WIDTH+2)
	fmt.Print("+", border, "+\r\n")
	for _, line := range lines {
		fmt.Print("| ", line, " |\r\n")
	}
	fmt.Print("+", border, "+\r\n")
}

func main() {
	var compile string
	var image string
	var output string
	var save bool
	var listing bool
	var disk string
	var writeProtect bool
	var clockHz int
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".dasm file to assemble")
	flag.StringVar(&image, "i", "", "binary image to load")
	flag.StringVar(&output, "o", "", "binary image to save")
	flag.BoolVar(&save, "s", false, "Save image, do not execute")
	flag.BoolVar(&listing, "l", false, "Print a disassembly, do not execute")
	flag.StringVar(&disk, "d", "", "floppy disk image to insert")
	flag.BoolVar(&writeProtect, "wp", false, "Write protect the floppy disk")
	flag.IntVar(&clockHz, "hz", cpu.DEFAULT_CLOCK_HZ, "Clock speed in Hz")
	flag.IntVar(&limit, "limit", 0, "Stop after this many cycles (0 for no limit)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulatorAt(clockHz)
	emu.Verbose = verbose

	var words int

	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		loaded, err := emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		words = len(loaded)
	} else if len(image) != 0 {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		words, err = emu.LoadBinary(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		err = emu.SaveBinary(ouf, words)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if listing {
		for address, text := range emu.Listing(0, uint16(words)) {
			fmt.Printf("%04x: %v\n", address, text)
		}
		return
	}

	if save {
		return
	}

	if len(disk) != 0 {
		data, err := os.ReadFile(disk)
		if err != nil {
			log.Fatalf("%v: %v", disk, err)
		}
		diskImage := make([]uint16, len(data)/2)
		for n := range diskImage {
			diskImage[n] = uint16(data[2*n])<<8 | uint16(data[2*n+1])
		}
		if !emu.Floppy.Insert(diskImage, writeProtect) {
			log.Fatalf("%v: disk image too large", disk)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			log.Fatalf("raw mode: %v", err)
		}
		defer term.Restore(int(os.Stdin.Fd()), oldState)

		go feedKeys(&emu.Keyboard, cancel)
	}

	// Step in screen-refresh sized slices of simulated time.
	slice := max(clockHz/20, 1)
	var total int
	var err error
	for err == nil && ctx.Err() == nil {
		var cycles int
		cycles, err = emu.Run(ctx, slice)
		total += cycles

		if interactive {
			render(&emu.Terminal)
		}

		if limit > 0 && total >= limit {
			break
		}
	}

	if interactive {
		fmt.Print("\r\n")
	}

	var frozen *emulator.ErrFrozen
	if errors.As(err, &frozen) {
		log.Printf("%v after %v cycles", frozen, total)
	}

	if len(disk) != 0 && !writeProtect {
		if diskImage, ok := emu.Floppy.Eject(); ok {
			data := make([]byte, 2*len(diskImage))
			for n, word := range diskImage {
				data[2*n] = byte(word >> 8)
				data[2*n+1] = byte(word)
			}
			err := os.WriteFile(disk, data, 0o644)
			if err != nil {
				log.Fatalf("%v: %v", disk, err)
			}
		}
	}
}
