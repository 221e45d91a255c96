package cpu

import (
	"iter"
)

// Line is one assembled source line: its source location, the memory
// address it landed at, the parsed words, the assembled byte, and an
// optional label left for the link pass.
type Line struct {
	LineNo    int
	Addr      int
	Words     []string
	Byte      uint8
	LinkLabel string
}

// Program is an assembled listing. Each line emits exactly one byte,
// so addresses run contiguously from 0.
type Program struct {
	Lines []Line
}

// LineAt returns the listing line assembled at the given address.
func (prog *Program) LineAt(addr uint8) (line *Line) {
	for n := range prog.Lines {
		if prog.Lines[n].Addr == int(addr) {
			line = &prog.Lines[n]
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (image []uint8) {
	for _, value := range prog.Bytes() {
		image = append(image, value)
	}

	return
}

// Bytes iterates the program as (address, byte) pairs.
func (prog *Program) Bytes() iter.Seq2[uint8, uint8] {
	return func(yield func(addr uint8, value uint8) bool) {
		for _, line := range prog.Lines {
			if !yield(uint8(line.Addr), line.Byte) {
				return
			}
		}
	}
}
