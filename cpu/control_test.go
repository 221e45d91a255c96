package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleWriter(t *testing.T) {
	assert := assert.New(t)

	for name, mp := range map[string]Microprogram{
		"canonical": NewMicroprogram(),
		"fixed":     FixedMicroprogram(),
	} {
		for op := range mp {
			for step := range mp[op] {
				cw := mp[op][step]
				assert.LessOrEqual(cw.DataDrivers(), 1, "%v %v step %v", name, Opcode(op), step)
				assert.LessOrEqual(cw.AddressDrivers(), 1, "%v %v step %v", name, Opcode(op), step)
			}
		}
	}
}

func TestFetchIsShared(t *testing.T) {
	assert := assert.New(t)

	mp := NewMicroprogram()
	for op := range mp {
		assert.Equal(FETCH_WORD, mp[op][0], "%v", Opcode(op))
	}
}

func TestRestartEndsEveryRow(t *testing.T) {
	assert := assert.New(t)

	mp := NewMicroprogram()
	for op := range mp {
		last := 0
		for step := range mp[op] {
			if mp[op][step] != 0 {
				last = step
			}
		}
		assert.True(mp[op][last].Has(LINE_RESTART), "%v", Opcode(op))
	}
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	canonical := NewMicroprogram()
	require.NoError(canonical.Validate())

	fixed := FixedMicroprogram()
	require.NoError(fixed.Validate())

	table := [](struct {
		name    string
		corrupt func(mp *Microprogram)
		expect  error
	}){
		{"missing_fetch", func(mp *Microprogram) {
			mp[OP_NOP][0] = LINE_RESTART
		}, ErrFetchWord},
		{"data_contention", func(mp *Microprogram) {
			mp[OP_LDA][1] |= LINE_ACC_OUT
		}, ErrBusContention},
		{"address_contention", func(mp *Microprogram) {
			mp[OP_LDA][1] |= LINE_PC_OUT
		}, ErrBusContention},
		{"load_without_driver", func(mp *Microprogram) {
			mp[OP_NOP][1] |= LINE_ACC_LOAD
		}, ErrNoDriver},
		{"select_without_address", func(mp *Microprogram) {
			mp[OP_LDA][1] &= ^LINE_IR_ADDR
		}, ErrNoAddress},
		{"dead_step", func(mp *Microprogram) {
			mp[OP_LDA][2] = LINE_RESTART
		}, ErrDeadStep},
	}

	for _, entry := range table {
		mp := NewMicroprogram()
		entry.corrupt(&mp)

		err := mp.Validate()
		assert.Error(err, entry.name)
		assert.ErrorIs(err, entry.expect, entry.name)

		var located *ErrMicrocode
		assert.ErrorAs(err, &located, entry.name)
	}
}

func TestSetMicrocode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	mp := NewMicroprogram()
	mp[OP_NOP][1] |= LINE_ACC_LOAD
	err := cpu.SetMicrocode(mp)
	assert.ErrorIs(err, ErrNoDriver)

	// The installed table is untouched after a failed install.
	assert.NoError(cpu.Microcode.Validate())

	assert.NoError(cpu.SetMicrocode(FixedMicroprogram()))
}

func TestFixedEquivalence(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	program := []uint8{
		uint8(MakeInstruction(OP_LDA, 14)),
		uint8(MakeInstruction(OP_ADD, 15)),
		uint8(MakeInstruction(OP_OUT, 0)),
		uint8(MakeInstruction(OP_SUB, 14)),
		uint8(MakeInstruction(OP_OUT, 0)),
		uint8(MakeInstruction(OP_JC, 7)),
		uint8(MakeInstruction(OP_HLT, 0)),
		uint8(MakeInstruction(OP_LDI, 1)),
		uint8(MakeInstruction(OP_OUT, 0)),
		uint8(MakeInstruction(OP_HLT, 0)),
	}

	run := func(mp Microprogram) (*Cpu, int) {
		cpu := NewCpu()
		require.NoError(cpu.SetMicrocode(mp))
		cpu.Memory.Load(program)
		cpu.Memory.Write(14, 250)
		cpu.Memory.Write(15, 10)
		cpu.Reset()
		for !cpu.Halted {
			cpu.Tick()
		}
		return cpu, cpu.Ticks
	}

	canonical, quick := run(NewMicroprogram())
	fixed, slow := run(FixedMicroprogram())

	assert.Equal(canonical.Acc.Value(), fixed.Acc.Value())
	assert.Equal(canonical.LastOut, fixed.LastOut)
	assert.Equal(canonical.LatchedCarry, fixed.LatchedCarry)
	assert.Equal(canonical.Pc.Value(), fixed.Pc.Value())

	// The baseline variant burns the padding steps.
	assert.Less(quick, slow)
}

func TestControlWordString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("-", ControlWord(0).String())
	assert.Equal("mce.mro.ili.pce.pco", FETCH_WORD.String())
}

func TestOperandRegisterNeverDrives(t *testing.T) {
	assert := assert.New(t)

	// The operand register has no output-enable line in the control
	// word layout: asserting every line at once still only yields the
	// four data drivers and two address drivers.
	all := ControlWord(0)
	for _, entry := range lineNames {
		all |= entry.line
	}
	assert.Equal(4, all.DataDrivers())
	assert.Equal(2, all.AddressDrivers())
}
