package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzCpu drives the machine with arbitrary memory images and register
// state. Whatever the program bytes, every documented opcode and the
// reserved range must produce defined outcomes: the machine never
// panics on the shipped microprogram, the step counter stays within
// its range and returns to 0 within the step budget, and the program
// counter stays within the address space.
func FuzzCpu(f *testing.F) {
	f.Add([]byte{0x71, 0x4e, 0x70, 0x50, 0x2e, 0x4f, 0x1e, 0x4d, 0x1f, 0x4e, 0x1d, 0x80, 0x63}, uint8(0), uint8(0))
	f.Add([]byte{0x90}, uint8(0xff), uint8(0x01))
	f.Add([]byte{}, uint8(0x80), uint8(0x80))

	f.Fuzz(func(t *testing.T, image []byte, a uint8, b uint8) {
		assert := assert.New(t)

		if len(image) > MEM_SIZE {
			image = image[:MEM_SIZE]
		}

		cpu := NewCpu()
		cpu.Memory.Load(image)
		cpu.Reset()
		cpu.Acc.Load(a)
		cpu.B.Load(b)

		sinceBoundary := 0
		for range 256 {
			if cpu.Halted {
				break
			}

			cpu.Tick()
			sinceBoundary++

			assert.Less(cpu.Step, STEP_LIMIT)
			assert.GreaterOrEqual(cpu.Step, 0)
			assert.Less(cpu.Pc.Value(), uint8(MEM_SIZE))

			if cpu.Step == 0 {
				assert.LessOrEqual(sinceBoundary, STEP_LIMIT)
				sinceBoundary = 0
			}
		}

		// A reset always recovers, halted or not.
		cpu.Reset()
		assert.Equal(0, cpu.Step)
		assert.False(cpu.Halted)
	})
}
