// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

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

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"MEM_SIZE": fmt.Sprintf("%v", MEM_SIZE),
}

// opMap maps instruction mnemonics.
var opMap = map[string]Opcode{
	"nop": OP_NOP,
	"lda": OP_LDA,
	"add": OP_ADD,
	"sub": OP_SUB,
	"sta": OP_STA,
	"out": OP_OUT,
	"jmp": OP_JMP,
	"ldi": OP_LDI,
	"jc":  OP_JC,
	"hlt": OP_HLT,
}

// Assembler is a single pass assembler for the μSAP instruction set.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Line    []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	value, err = strconv.ParseInt(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(v64))
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
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into instruction words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, MEM_SIZE)
		}
		asm.Label[label] = len(asm.Line)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// parseWords assembles the words of one line into a single byte.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	if len(asm.Line) >= MEM_SIZE {
		err = ErrProgramTooLong
		return
	}

	line := Line{LineNo: lineno, Addr: len(asm.Line), Words: words}

	switch words[0] {
	case ".byte":
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		if len(words) > 2 {
			err = ErrExtraArgs
			return
		}
		var value int64
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < -128 || value > 255 {
			err = ErrOperandRange
			return
		}
		line.Byte = uint8(value)
	default:
		op, ok := opMap[words[0]]
		if !ok {
			err = ErrOpcodeInvalid
			return
		}

		var arg uint8
		switch {
		case !op.HasOperand():
			if len(words) > 1 {
				err = ErrExtraArgs
				return
			}
		case len(words) < 2:
			err = ErrOperandMissing
			return
		case len(words) > 2:
			err = ErrExtraArgs
			return
		default:
			value, verr := asm.valueOf(words[1])
			if verr != nil {
				// Not a number; leave for the label link pass.
				line.LinkLabel = words[1]
			} else {
				if value < 0 || value > int64(OPERAND_MASK) {
					err = ErrOperandRange
					return
				}
				arg = uint8(value)
			}
		}

		line.Byte = uint8(MakeInstruction(op, arg))
	}

	asm.Line = append(asm.Line, line)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Line = asm.Line[:0]
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

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of labels.
	for n := range asm.Line {
		entry := &asm.Line[n]

		if len(entry.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[entry.LinkLabel]
		if !ok {
			err = ErrLabelMissing(entry.LinkLabel)
			lineno = entry.LineNo
			line = strings.Join(entry.Words, " ")
			return
		}
		entry.Byte |= uint8(addr) & OPERAND_MASK
	}

	prog = &Program{
		Lines: slices.Clone(asm.Line),
	}

	return
}
