// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/usap/cpu"
	"github.com/ezrec/usap/internal"
	"github.com/ezrec/usap/io"
)

// DEFAULT_TICK_LIMIT bounds Run for programs that never halt.
const DEFAULT_TICK_LIMIT = 4096

var _emulator_defines = map[string]string{
	"TICK_LIMIT": fmt.Sprintf("%v", DEFAULT_TICK_LIMIT),
}

// Emulator state. CPU + program listing + output peripheral.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the machine simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.
	Image    []uint8      // Raw memory image; preferred over Program when set.

	Record io.Recorder // Default output peripheral sink.
}

// NewEmulator creates a new emulator with a recording output peripheral.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Display = &emu.Record

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset clears the machine, then programs the memory through the
// out-of-band port: the raw image when one is set, otherwise the
// assembled program listing.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Cpu.Memory.Reset()
	emu.Record.Reset()

	image := emu.Image
	if image == nil {
		image = emu.Program.Binary()
	}

	err = emu.Cpu.Memory.Load(image)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %v bytes", len(image))
	}

	return
}

// LineNo returns the source line number for the instruction the
// program counter points at, or 0 when no listing covers it.
func (emu *Emulator) LineNo() (lineno int) {
	line := emu.Program.LineAt(emu.Cpu.Pc.Value())
	if line != nil {
		lineno = line.LineNo
	}

	return
}

// Outputs returns the values delivered to the output peripheral since
// the last reset.
func (emu *Emulator) Outputs() []uint8 {
	return emu.Record.Values
}

// Tick performs a single clock tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Tick()
	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the machine halts. Programs that do not
// halt within the tick limit fail with ErrTickLimit.
func (emu *Emulator) Run(maxTicks int) (err error) {
	if maxTicks <= 0 {
		maxTicks = DEFAULT_TICK_LIMIT
	}

	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if emu.Cpu.Ticks >= maxTicks {
			err = &ErrTickLimit{Limit: maxTicks, LineNo: emu.LineNo()}
			return
		}
	}
}
