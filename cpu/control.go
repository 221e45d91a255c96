package cpu

import (
	"errors"
	"strings"
)

// ControlWord is the set of control lines the sequencer asserts for one
// tick. Every line is independently meaningful; the word as a whole is
// the single source of truth for what every component does this tick.
type ControlWord uint32

const (
	LINE_HALT       = ControlWord(1 << iota) // hlt
	LINE_MEM_SELECT                          // mce
	LINE_MEM_WRITE                           // mwr
	LINE_MEM_OUT                             // mro
	LINE_IR_LOAD                             // ili
	LINE_IR_OUT                              // ilo
	LINE_IR_ADDR                             // iao
	LINE_ACC_LOAD                            // ali
	LINE_ACC_OUT                             // alo
	LINE_B_LOAD                              // bli
	LINE_ALU_OUT                             // eo
	LINE_ALU_SUB                             // su
	LINE_OUT_SELECT                          // oce
	LINE_PC_INC                              // pce
	LINE_PC_OUT                              // pco
	LINE_PC_LOAD                             // pli
	LINE_PC_CARRY                            // pcc
	LINE_RESTART                             // sr
)

// lineNames maps each control line to its schematic mnemonic, in bit order.
var lineNames = []struct {
	line ControlWord
	name string
}{
	{LINE_HALT, "hlt"},
	{LINE_MEM_SELECT, "mce"},
	{LINE_MEM_WRITE, "mwr"},
	{LINE_MEM_OUT, "mro"},
	{LINE_IR_LOAD, "ili"},
	{LINE_IR_OUT, "ilo"},
	{LINE_IR_ADDR, "iao"},
	{LINE_ACC_LOAD, "ali"},
	{LINE_ACC_OUT, "alo"},
	{LINE_B_LOAD, "bli"},
	{LINE_ALU_OUT, "eo"},
	{LINE_ALU_SUB, "su"},
	{LINE_OUT_SELECT, "oce"},
	{LINE_PC_INC, "pce"},
	{LINE_PC_OUT, "pco"},
	{LINE_PC_LOAD, "pli"},
	{LINE_PC_CARRY, "pcc"},
	{LINE_RESTART, "sr"},
}

// Has returns true if the control word asserts the given line.
func (cw ControlWord) Has(line ControlWord) bool {
	return (cw & line) != 0
}

// DataDrivers counts the asserted data-bus output-enable lines. The
// drivers of the 8-bit data path are the memory, the instruction
// register's operand nibble, the accumulator, and the ALU. The operand
// (B) register has no output-enable line at all.
func (cw ControlWord) DataDrivers() (count int) {
	for _, line := range []ControlWord{LINE_MEM_OUT, LINE_IR_OUT, LINE_ACC_OUT, LINE_ALU_OUT} {
		if cw.Has(line) {
			count++
		}
	}
	return
}

// AddressDrivers counts the asserted address-path output-enable lines.
// The 4-bit address path is driven by either the program counter or the
// instruction register's operand nibble.
func (cw ControlWord) AddressDrivers() (count int) {
	for _, line := range []ControlWord{LINE_PC_OUT, LINE_IR_ADDR} {
		if cw.Has(line) {
			count++
		}
	}
	return
}

// Consumers counts the lines that latch or deliver the settled data-bus
// value at the commit edge.
func (cw ControlWord) Consumers() (count int) {
	for _, line := range []ControlWord{LINE_IR_LOAD, LINE_ACC_LOAD, LINE_B_LOAD, LINE_PC_LOAD, LINE_MEM_WRITE, LINE_OUT_SELECT} {
		if cw.Has(line) {
			count++
		}
	}
	return
}

// String returns the asserted line mnemonics, in bit order.
func (cw ControlWord) String() (out string) {
	var names []string
	for _, entry := range lineNames {
		if cw.Has(entry.line) {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	out = strings.Join(names, ".")
	return
}

const (
	// STEP_LIMIT is the number of micro-steps per instruction.
	STEP_LIMIT = 3

	// FETCH_WORD is the shared step-0 control word of every opcode:
	// the program counter drives the address path, memory drives the
	// fetched byte onto the data path, the instruction register
	// latches it, and the program counter advances.
	FETCH_WORD = LINE_PC_OUT | LINE_MEM_SELECT | LINE_MEM_OUT | LINE_IR_LOAD | LINE_PC_INC
)

// Microprogram maps (opcode, micro-step) to a control word. It is the
// single source of truth for instruction semantics: changing an
// instruction's behavior means changing this table, nothing else.
type Microprogram [OPCODE_LIMIT][STEP_LIMIT]ControlWord

// NewMicroprogram returns the canonical variable-length microprogram.
// Most instructions finish in two steps (fetch, then execute with the
// restart line); ADD and SUB take a third step to run the operand
// through the ALU. The reserved encodings above OP_HLT share the
// OP_HLT row.
func NewMicroprogram() (mp Microprogram) {
	memRead := LINE_MEM_SELECT | LINE_MEM_OUT

	mp[OP_NOP] = [STEP_LIMIT]ControlWord{FETCH_WORD, LINE_RESTART}
	mp[OP_LDA] = [STEP_LIMIT]ControlWord{FETCH_WORD, LINE_IR_ADDR | memRead | LINE_ACC_LOAD | LINE_RESTART}
	mp[OP_ADD] = [STEP_LIMIT]ControlWord{FETCH_WORD,
		LINE_IR_ADDR | memRead | LINE_B_LOAD,
		LINE_ALU_OUT | LINE_ACC_LOAD | LINE_RESTART}
	mp[OP_SUB] = [STEP_LIMIT]ControlWord{FETCH_WORD,
		LINE_IR_ADDR | memRead | LINE_B_LOAD,
		LINE_ALU_OUT | LINE_ALU_SUB | LINE_ACC_LOAD | LINE_RESTART}
	mp[OP_STA] = [STEP_LIMIT]ControlWord{FETCH_WORD,
		LINE_IR_ADDR | LINE_MEM_SELECT | LINE_MEM_WRITE | LINE_ACC_OUT | LINE_RESTART}
	mp[OP_OUT] = [STEP_LIMIT]ControlWord{FETCH_WORD, LINE_ACC_OUT | LINE_OUT_SELECT | LINE_RESTART}
	mp[OP_JMP] = [STEP_LIMIT]ControlWord{FETCH_WORD, LINE_IR_OUT | LINE_PC_LOAD | LINE_RESTART}
	mp[OP_LDI] = [STEP_LIMIT]ControlWord{FETCH_WORD, LINE_IR_OUT | LINE_ACC_LOAD | LINE_RESTART}
	mp[OP_JC] = [STEP_LIMIT]ControlWord{FETCH_WORD,
		LINE_IR_OUT | LINE_PC_LOAD | LINE_PC_CARRY | LINE_RESTART}
	mp[OP_HLT] = [STEP_LIMIT]ControlWord{FETCH_WORD, LINE_HALT | LINE_RESTART}

	for op := int(OP_HLT) + 1; op < OPCODE_LIMIT; op++ {
		mp[op] = mp[OP_HLT]
	}

	return
}

// FixedMicroprogram returns the fixed-length baseline variant: the same
// instruction semantics as NewMicroprogram, but every instruction runs
// through all three steps with no restart line, padding the unused
// steps with all-zero words.
func FixedMicroprogram() (mp Microprogram) {
	mp = NewMicroprogram()
	for op := range mp {
		for step := range mp[op] {
			mp[op][step] &= ^LINE_RESTART
		}
	}
	return
}

// Validate checks a microprogram for authoring defects. A malformed
// table is the only user-visible failure of the core: every documented
// opcode and the reserved range produce defined outcomes at runtime.
func (mp *Microprogram) Validate() (err error) {
	for op := range mp {
		restarted := false
		for step := range mp[op] {
			cw := mp[op][step]

			check := func(ok bool, cause error) {
				if !ok {
					err = errors.Join(err, &ErrMicrocode{Op: Opcode(op), Step: step, Err: cause})
				}
			}

			if restarted {
				check(cw == 0, ErrDeadStep)
				continue
			}

			check(step != 0 || cw == FETCH_WORD, ErrFetchWord)
			check(cw.DataDrivers() <= 1, ErrBusContention)
			check(cw.AddressDrivers() <= 1, ErrBusContention)
			check(cw.Consumers() == 0 || cw.DataDrivers() == 1, ErrNoDriver)
			check(!cw.Has(LINE_MEM_SELECT) || cw.AddressDrivers() == 1, ErrNoAddress)

			if cw.Has(LINE_RESTART) {
				restarted = true
			}
		}
	}

	return
}
