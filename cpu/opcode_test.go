package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeOpcode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(OP_NOP, DecodeOpcode(0x0f))
	assert.Equal(OP_LDA, DecodeOpcode(0x1e))
	assert.Equal(OP_JC, DecodeOpcode(0x80))
	assert.Equal(OP_HLT, DecodeOpcode(0x90))

	// Reserved encodings all decode as hlt.
	for hi := uint8(0xa0); hi != 0; hi += 0x10 {
		assert.Equal(OP_HLT, DecodeOpcode(hi|0x03), "0x%02x", hi)
	}
}

func TestInstruction(t *testing.T) {
	assert := assert.New(t)

	in := MakeInstruction(OP_LDA, 14)
	assert.Equal(uint8(0x1e), uint8(in))
	assert.Equal(OP_LDA, in.Op())
	assert.Equal(uint8(14), in.Arg())
	assert.Equal("lda 0xe", in.String())

	assert.Equal("out", MakeInstruction(OP_OUT, 0).String())
	assert.Equal("hlt", Instruction(0xf7).String())

	// Operand overflow is masked, not carried into the opcode nibble.
	assert.Equal(uint8(0x71), uint8(MakeInstruction(OP_LDI, 0x11)))
}

func TestHasOperand(t *testing.T) {
	assert := assert.New(t)

	for op, expect := range map[Opcode]bool{
		OP_NOP: false,
		OP_LDA: true,
		OP_ADD: true,
		OP_SUB: true,
		OP_STA: true,
		OP_OUT: false,
		OP_JMP: true,
		OP_LDI: true,
		OP_JC:  true,
		OP_HLT: false,
	} {
		assert.Equal(expect, op.HasOperand(), op.String())
	}
}
