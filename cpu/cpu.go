package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/usap/io"
)

var _cpu_defines = map[string]string{
	"MEM_SIZE":   fmt.Sprintf("%v", MEM_SIZE),
	"STEP_LIMIT": fmt.Sprintf("%v", STEP_LIMIT),
}

// Cpu is the simulation context for the whole machine: the control
// unit and every synchronous component it drives. All machine state is
// owned here and mutated only during the commit phase of a Tick, or by
// Reset.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Microcode Microprogram // Control unit lookup table.
	Memory    Memory       // 16-cell byte store.
	Display   io.Display   // Output peripheral collaborator, may be nil.

	Acc Register // Accumulator.
	B   Register // Operand register for the ALU. Never drives the bus.
	Ir  Register // Instruction register.
	Pc  Counter  // 4-bit program counter.

	Step         int         // Micro-step counter, 0..STEP_LIMIT-1.
	Carry        bool        // Combinational ALU carry-out.
	LatchedCarry bool        // Carry registered on ALU-enabled ticks; consumed by JC.
	Halted       bool        // Set once the halt line is observed.
	ResetLine    bool        // While asserted, the machine is held at zero.
	LastOut      uint8       // Last value delivered to the output peripheral.
	Word         ControlWord // Control word of the most recent tick.

	Ticks int // Tick counter since reset.
}

// NewCpu creates a machine wired with the canonical microprogram.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Microcode: NewMicroprogram(),
	}

	return
}

// SetMicrocode installs a microprogram table, validating it first.
// This is the construction-time gate for implementer-supplied tables.
func (cpu *Cpu) SetMicrocode(mp Microprogram) (err error) {
	err = mp.Validate()
	if err != nil {
		return
	}

	cpu.Microcode = mp

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset forces every register, counter, and flag to zero immediately,
// independent of the clock, as the board's asynchronous clear does.
// Memory contents are preserved so a programmed image survives a reset.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Acc.Reset()
	cpu.B.Reset()
	cpu.Ir.Reset()
	cpu.Pc.Reset()

	cpu.Step = 0
	cpu.Carry = false
	cpu.LatchedCarry = false
	cpu.Halted = false
	cpu.LastOut = 0
	cpu.Word = 0
	cpu.Ticks = 0
}

// ControlWordFor returns the microprogram entry for an (opcode, step)
// pair; the all-zero word while the reset line is asserted.
func (cpu *Cpu) ControlWordFor(op Opcode, step int) (cw ControlWord) {
	if cpu.ResetLine {
		return
	}

	cw = cpu.Microcode[op][step]

	return
}

// Tick advances the machine by one clock cycle and returns the control
// word that drove it. The tick evaluates in two phases to match the
// hardware commit ordering: first the control word, bus resolution,
// and ALU output settle from the pre-tick register values; then all
// loads, increments, the carry latch and the
// step transition commit together as if on one clock edge. Once the
// machine has halted, ticks are no-ops until a reset.
func (cpu *Cpu) Tick() (cw ControlWord) {
	if cpu.ResetLine {
		cpu.Reset()
		return
	}

	if cpu.Halted {
		return
	}

	opcode := Opcode(cpu.Ir.Value() >> 4)
	cw = cpu.Microcode[opcode][cpu.Step]

	// Phase 1: combinational settle, from pre-tick register values.
	operand := cpu.Ir.Value() & OPERAND_MASK

	addr, addrOk := BusSettle(
		BusDriver{cw.Has(LINE_PC_OUT), cpu.Pc.Value()},
		BusDriver{cw.Has(LINE_IR_ADDR), operand},
	)

	var memValue uint8
	if cw.Has(LINE_MEM_SELECT) && !cw.Has(LINE_MEM_WRITE) && addrOk {
		memValue = cpu.Memory.Read(addr)
	}

	aluResult, aluCarry := AluCompute(cpu.Acc.Value(), cpu.B.Value(), cw.Has(LINE_ALU_SUB))

	data, _ := BusSettle(
		BusDriver{cw.Has(LINE_MEM_OUT), memValue},
		BusDriver{cw.Has(LINE_IR_OUT), operand},
		BusDriver{cw.Has(LINE_ACC_OUT), cpu.Acc.Value()},
		BusDriver{cw.Has(LINE_ALU_OUT), aluResult},
	)

	if cpu.Verbose {
		log.Printf("cpu: %02d.%d %-8v %v", cpu.Pc.Value(), cpu.Step, Instruction(cpu.Ir.Value()), cw)
	}

	// Phase 2: commit on the clock edge.
	if cw.Has(LINE_MEM_SELECT) && cw.Has(LINE_MEM_WRITE) {
		cpu.Memory.Write(addr, data)
	}
	if cw.Has(LINE_IR_LOAD) {
		cpu.Ir.Load(data)
	}
	if cw.Has(LINE_ACC_LOAD) {
		cpu.Acc.Load(data)
	}
	if cw.Has(LINE_B_LOAD) {
		cpu.B.Load(data)
	}
	if cw.Has(LINE_PC_INC) {
		cpu.Pc.Increment()
	}
	if cw.Has(LINE_PC_LOAD) {
		cpu.Pc.LoadMasked(data, cw.Has(LINE_PC_CARRY), cpu.LatchedCarry)
	}
	if cw.Has(LINE_OUT_SELECT) {
		cpu.LastOut = data
		if cpu.Display != nil {
			cpu.Display.Show(data)
		}
	}

	cpu.Carry = aluCarry
	if cw.Has(LINE_ALU_OUT) {
		cpu.LatchedCarry = aluCarry
	}
	if cw.Has(LINE_HALT) {
		cpu.Halted = true
	}

	if cw.Has(LINE_RESTART) || cpu.Step == STEP_LIMIT-1 {
		cpu.Step = 0
	} else {
		cpu.Step++
	}

	cpu.Word = cw
	cpu.Ticks++

	return
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"acc", "b", "ir", "pc", "step", "carry", "latched", "halt", "out"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "acc":
			strval = fmt.Sprintf("0x%02x", cpu.Acc.Value())
		case "b":
			strval = fmt.Sprintf("0x%02x", cpu.B.Value())
		case "ir":
			strval = fmt.Sprintf("0x%02x (%v)", cpu.Ir.Value(), Instruction(cpu.Ir.Value()))
		case "pc":
			strval = fmt.Sprintf("0x%x", cpu.Pc.Value())
		case "step":
			strval = fmt.Sprintf("%v", cpu.Step)
		case "carry":
			strval = fmt.Sprintf("%v", cpu.Carry)
		case "latched":
			strval = fmt.Sprintf("%v", cpu.LatchedCarry)
		case "halt":
			strval = fmt.Sprintf("%v", cpu.Halted)
		case "out":
			strval = fmt.Sprintf("0x%02x", cpu.LastOut)
		}
		text += fmt.Sprintf("% 8s: %v\n", reg, strval)
	}

	return
}
