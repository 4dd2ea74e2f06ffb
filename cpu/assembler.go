package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%#v", MEMORY_SIZE),
}

// Assembler is a single pass macro assembler for the DCPU-16 mnemonic
// syntax: "OP b, a" instructions, ":label" or "label:" definitions,
// .equ equates, .macro/.endm macros, DAT data (words and strings), 'x'
// character constants, and compile-time $(...) expressions.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Words   []uint16 // Assembled memory image.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to word addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	fixups []fixup // Label references awaiting final linking.
}

// fixup records an emitted word that takes a label's address once all
// labels are known.
type fixup struct {
	index  int // Index of the word to patch.
	label  string
	lineNo int
	line   string
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
var identScanRe = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_.]*`)

// substitute replaces equate names appearing in operand text.
func (asm *Assembler) substitute(text string) string {
	return identScanRe.ReplaceAllStringFunc(text, func(name string) string {
		if value, ok := asm.Equate[name]; ok {
			return value
		}
		return name
	})
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	invert := false
	if word != "" && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrParseNumber(word)
		return
	}
	value = uint16(v64)

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// stripComment removes a ';' comment, leaving semicolons inside quoted
// strings alone.
func stripComment(line string) string {
	quoted := false
	for n, r := range line {
		switch r {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return line[:n]
			}
		}
	}
	return line
}

// splitField splits off the first whitespace-separated field of a line.
func splitField(line string) (first string, rest string) {
	n := strings.IndexAny(line, " \t")
	if n < 0 {
		first = line
		return
	}
	first = line[:n]
	rest = strings.TrimSpace(line[n+1:])
	return
}

// splitOperands splits operand text on commas, leaving commas inside
// quoted strings alone.
func splitOperands(text string) (parts []string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	quoted := false
	start := 0
	for n, r := range text {
		switch r {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				parts = append(parts, text[start:n])
				start = n + 1
			}
		}
	}
	parts = append(parts, text[start:])
	return
}

// emit appends words to the image.
func (asm *Assembler) emit(words ...uint16) {
	asm.Words = append(asm.Words, words...)
}

// link records a label reference patching the next emitted word.
func (asm *Assembler) link(label string, lineno int, line string) {
	asm.fixups = append(asm.fixups, fixup{
		index:  len(asm.Words),
		label:  label,
		lineNo: lineno,
		line:   line,
	})
}

// wordValue resolves a next-word payload: a number now, or a label
// address linked later.
func (asm *Assembler) wordValue(text string) (extra []uint16, label string, err error) {
	if identRe.MatchString(text) {
		extra = []uint16{0}
		label = text
		return
	}
	var value uint16
	value, err = asm.valueOf(text)
	if err != nil {
		return
	}
	extra = []uint16{value}
	return
}

// parseIndirect parses the inside of a bracketed operand: [register],
// [register+offset], [SP+offset] (PICK), or [address].
func (asm *Assembler) parseIndirect(inner string) (op Operand, extra []uint16, label string, err error) {
	parts := strings.Split(inner, "+")
	for n := range parts {
		parts[n] = strings.TrimSpace(parts[n])
	}

	switch len(parts) {
	case 1:
		part := parts[0]
		upper := strings.ToUpper(part)
		if upper == "SP" {
			op = OPERAND_PEEK
			return
		}
		if reg, ok := registerByName[upper]; ok && reg <= REG_J {
			op = OPERAND_REG_MEM + Operand(reg)
			return
		}
		op = OPERAND_NEXT_MEM
		extra, label, err = asm.wordValue(part)

	case 2:
		// register + offset, in either order
		regPart, offPart := parts[0], parts[1]
		if _, ok := registerByName[strings.ToUpper(regPart)]; !ok {
			regPart, offPart = offPart, regPart
		}
		upper := strings.ToUpper(regPart)
		if upper == "SP" {
			op = OPERAND_PICK
		} else {
			reg, ok := registerByName[upper]
			if !ok || reg > REG_J {
				err = ErrParseValue(inner)
				return
			}
			op = OPERAND_REG_NEXT + Operand(reg)
		}
		extra, label, err = asm.wordValue(offPart)

	default:
		err = ErrParseValue(inner)
	}

	return
}

// parseOperand parses a single operand. Small literals are promoted to
// the inline addressing mode in the A slot only; the 5-bit B field cannot
// encode them. Label references always take a next-word, since their
// address is not yet known.
func (asm *Assembler) parseOperand(text string, slotB bool) (op Operand, extra []uint16, label string, err error) {
	text = strings.TrimSpace(asm.substitute(text))
	if text == "" {
		err = ErrOperandMissing
		return
	}

	if text[0] == '[' {
		if text[len(text)-1] != ']' {
			err = ErrParseValue(text)
			return
		}
		op, extra, label, err = asm.parseIndirect(text[1 : len(text)-1])
		return
	}

	upper := strings.ToUpper(text)
	switch upper {
	case "PUSH", "POP":
		op = OPERAND_STACK
		return
	case "PEEK":
		op = OPERAND_PEEK
		return
	case "SP":
		op = OPERAND_SP
		return
	case "PC":
		op = OPERAND_PC
		return
	case "EX":
		op = OPERAND_EX
		return
	}

	if reg, ok := registerByName[upper]; ok {
		if reg > REG_J {
			// IA is only reachable through IAG/IAS
			err = ErrParseValue(text)
			return
		}
		op = OPERAND_REG + Operand(reg)
		return
	}

	if len(text) > 5 && strings.EqualFold(text[:4], "PICK") && (text[4] == ' ' || text[4] == '\t') {
		op = OPERAND_PICK
		extra, label, err = asm.wordValue(strings.TrimSpace(text[5:]))
		return
	}

	if identRe.MatchString(text) {
		op = OPERAND_NEXT
		extra = []uint16{0}
		label = text
		return
	}

	var value uint16
	value, err = asm.valueOf(text)
	if err != nil {
		return
	}
	if !slotB {
		if lit, ok := LiteralOperand(value); ok {
			op = lit
			return
		}
	}
	op = OPERAND_NEXT
	extra = []uint16{value}
	return
}

// parseData emits a DAT directive: comma-separated values, labels, and
// quoted strings, one word per value or character.
func (asm *Assembler) parseData(rest string, lineno int, line string) (err error) {
	items := splitOperands(rest)
	if len(items) == 0 {
		err = ErrOperandMissing
		return
	}

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			err = ErrOperandMissing
			return
		}

		if item[0] == '"' {
			if len(item) < 2 || item[len(item)-1] != '"' {
				err = ErrParseValue(item)
				return
			}
			for _, ch := range item[1 : len(item)-1] {
				asm.emit(uint16(ch))
			}
			continue
		}

		item = strings.TrimSpace(asm.substitute(item))

		var extra []uint16
		var label string
		extra, label, err = asm.wordValue(item)
		if err != nil {
			return
		}
		if label != "" {
			asm.link(label, lineno, line)
		}
		asm.emit(extra...)
	}

	return
}

// parseInstruction assembles a single instruction. The A operand's
// next-words are emitted before the B operand's, matching the order the
// processor consumes them.
func (asm *Assembler) parseInstruction(mnemonic string, rest string, lineno int, line string) (err error) {
	op, ok := operatorByName[strings.ToUpper(mnemonic)]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	operands := splitOperands(rest)

	want := 2
	if op.Special() {
		want = 1
	}
	if len(operands) < want {
		err = ErrOperandMissing
		return
	}
	if len(operands) > want {
		err = ErrOperandExtra
		return
	}

	inst := Instruction{Operator: op, B: OPERAND_NONE}
	var aExtra, bExtra []uint16
	var aLabel, bLabel string

	inst.A, aExtra, aLabel, err = asm.parseOperand(operands[want-1], false)
	if err != nil {
		return
	}
	if !op.Special() {
		inst.B, bExtra, bLabel, err = asm.parseOperand(operands[0], true)
		if err != nil {
			return
		}
	}

	asm.emit(inst.Encode())
	if aLabel != "" {
		asm.link(aLabel, lineno, line)
	}
	asm.emit(aExtra...)
	if bLabel != "" {
		asm.link(bLabel, lineno, line)
	}
	asm.emit(bExtra...)

	return
}

// expandMacro assembles the body of a macro with its arguments bound as
// equates. Any '@' in the body expands to a per-invocation prefix, for
// labels local to one expansion.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string, lineno int) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	// Turn args into equs
	old_equate := maps.Clone(asm.Equate)
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}
	defer func() { asm.Equate = old_equate }()

	for n, line := range macro.Lines {
		expandedNo := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
		err = asm.parseLine(line, expandedNo)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: expandedNo, Err: err}
			return
		}
	}

	return
}

// parseLine parses a single comment-stripped line.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	// Leading ":name" or "name:" label definitions.
	for {
		first, rest := splitField(line)

		var label string
		switch {
		case len(first) > 1 && first[0] == ':':
			label = first[1:]
		case len(first) > 1 && first[len(first)-1] == ':':
			label = first[:len(first)-1]
		}
		if label == "" || !identRe.MatchString(label) {
			break
		}

		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = uint16(len(asm.Words))

		if rest == "" {
			return
		}
		line = rest
	}

	first, rest := splitField(line)

	// .equ CONST VALUE
	if first == ".equ" {
		name, value := splitField(rest)
		if name == "" || value == "" {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = value
		return
	}

	// macro invocation, with space separated arguments
	macro, ok := asm.Macro[first]
	if ok {
		return asm.expandMacro(first, macro, strings.Fields(rest), lineno)
	}

	if strings.EqualFold(first, "DAT") {
		return asm.parseData(rest, lineno, line)
	}

	return asm.parseInstruction(first, rest, lineno, line)
}

// Parse assembles an input stream into a memory image loadable at
// address 0.
func (asm *Assembler) Parse(input io.Reader) (image []uint16, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Words = asm.Words[:0]
	asm.fixups = asm.fixups[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))

		first, rest := splitField(line)

		// .macro NAME arg...
		if first == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			name, args := splitField(rest)
			if name == "" {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[name]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if args != "" {
				macro.Args = strings.Fields(args)
			}
			asm.Macro[name] = macro
			continue
		}

		if first == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for _, fx := range asm.fixups {
		value, ok := asm.Label[fx.label]
		if !ok {
			line, lineno = fx.line, fx.lineNo
			err = ErrLabelMissing(fx.label)
			return
		}
		asm.Words[fx.index] = value
	}

	if len(asm.Words) > MEMORY_SIZE {
		err = ErrImageOverflow
		return
	}

	image = slices.Clone(asm.Words)
	return
}
