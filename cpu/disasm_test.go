package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		image []uint16
		text  string
		words int
	}){
		{"reg_reg", parse(t, "SET B, A"), "SET B, A", 1},
		{"inline", parse(t, "ADD A, 5"), "ADD A, 5", 1},
		{"inline_minus_one", parse(t, "SET A, -1"), "SET A, -1", 1},
		{"next", parse(t, "SET A, 0x1234"), "SET A, 0x1234", 2},
		{"reg_mem", parse(t, "SET A, [B]"), "SET A, [B]", 1},
		{"reg_next", parse(t, "SET A, [B+2]"), "SET A, [B+0x0002]", 2},
		{"next_mem", parse(t, "SET [0x8000], A"), "SET [0x8000], A", 2},
		{"push_pop", parse(t, "SET PUSH, POP"), "SET PUSH, POP", 1},
		{"peek", parse(t, "SET A, PEEK"), "SET A, PEEK", 1},
		{"pick", parse(t, "SET A, PICK 2"), "SET A, PICK 2", 2},
		{"sp_pc_ex", parse(t, "SET SP, EX"), "SET SP, EX", 1},
		{"special", parse(t, "JSR 0x100"), "JSR 0x0100", 2},
		{"special_inline", parse(t, "RFI 0"), "RFI 0", 1},
		{"illegal", []uint16{0x0000}, "DAT 0x0000", 1},
	}

	for _, entry := range table {
		mem := make([]uint16, MEMORY_SIZE)
		copy(mem, entry.image)

		text, words := Disassemble(mem, 0)
		assert.Equal(entry.text, text, entry.name)
		assert.Equal(entry.words, words, entry.name)
	}
}

func TestDisassembleOperandOrder(t *testing.T) {
	assert := assert.New(t)

	// the A operand's next-word comes first in the stream
	mem := make([]uint16, MEMORY_SIZE)
	copy(mem, parse(t, "SET [0x10], 0x1234"))

	text, words := Disassemble(mem, 0)
	assert.Equal("SET [0x0010], 0x1234", text)
	assert.Equal(3, words)
}

func TestListing(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"SET A, 0x1234",
		"ADD A, 1",
		"IFE A, 0x1235",
		"SET PC, 0",
	}

	mem := make([]uint16, MEMORY_SIZE)
	image := parse(t, source...)
	copy(mem, image)

	var addresses []uint16
	var texts []string
	for address, text := range Listing(mem, 0, uint16(len(image))) {
		addresses = append(addresses, address)
		texts = append(texts, text)
	}

	assert.Equal([]uint16{0, 2, 3, 5}, addresses)
	assert.Equal([]string{
		"SET A, 0x1234",
		"ADD A, 1",
		"IFE A, 0x1235",
		"SET PC, 0",
	}, texts)
}

func TestListingRoundTrip(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"SET PUSH, 0x5555",
		"JSR 0x0008",
		"SET A, [B+1]",
		"SUB PC, 1",
	}

	mem := make([]uint16, MEMORY_SIZE)
	image := parse(t, source...)
	copy(mem, image)

	// reassembling the listing reproduces the image
	var listing []string
	for _, text := range Listing(mem, 0, uint16(len(image))) {
		listing = append(listing, text)
	}

	asm := &Assembler{}
	again, err := asm.Parse(strings.NewReader(strings.Join(listing, "\n")))
	assert.NoError(err)
	assert.Equal(image, again)
}
