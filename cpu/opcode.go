package cpu

import (
	"fmt"
)

// Opcode is a 4-bit operation selector, decoded from the high nibble of
// an instruction byte.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP = Opcode(0) // nop
	OP_LDA = Opcode(1) // lda
	OP_ADD = Opcode(2) // add
	OP_SUB = Opcode(3) // sub
	OP_STA = Opcode(4) // sta
	OP_OUT = Opcode(5) // out
	OP_JMP = Opcode(6) // jmp
	OP_LDI = Opcode(7) // ldi
	OP_JC  = Opcode(8) // jc
	OP_HLT = Opcode(9) // hlt
)

// OPCODE_LIMIT is the number of distinct opcode encodings (the full
// 4-bit range; encodings above OP_HLT all behave as OP_HLT).
const OPCODE_LIMIT = 16

// HasOperand returns true if the opcode consumes its low operand nibble.
func (op Opcode) HasOperand() bool {
	switch op {
	case OP_LDA, OP_ADD, OP_SUB, OP_STA, OP_JMP, OP_LDI, OP_JC:
		return true
	}
	return false
}

// DecodeOpcode decodes the high nibble of an instruction byte into an
// Opcode. The reserved encodings 0b1001-0b1111 all decode as OP_HLT.
func DecodeOpcode(instruction uint8) (op Opcode) {
	op = Opcode(instruction >> 4)
	if op > OP_HLT {
		op = OP_HLT
	}
	return
}

// Instruction is one byte of program text: opcode in bits 7-4 and the
// operand/address in bits 3-0.
type Instruction uint8

// MakeInstruction packs an opcode and operand nibble into an Instruction.
func MakeInstruction(op Opcode, arg uint8) Instruction {
	return Instruction((uint8(op) << 4) | (arg & OPERAND_MASK))
}

// Op returns the decoded opcode of the instruction.
func (in Instruction) Op() Opcode {
	return DecodeOpcode(uint8(in))
}

// Arg returns the operand/address nibble of the instruction.
func (in Instruction) Arg() uint8 {
	return uint8(in) & OPERAND_MASK
}

// String returns the assembly language representation of the instruction.
func (in Instruction) String() (out string) {
	op := in.Op()
	out = op.String()
	if op.HasOperand() {
		out = fmt.Sprintf("%v 0x%x", op.String(), in.Arg())
	}
	return
}
