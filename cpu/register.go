package cpu

// Register is one 8-bit storage cell of the register file. A register
// latches a new value only when its load-enable line is asserted; its
// current value is always readable internally, and reaches the bus
// only through its own output-enable line in the control word.
type Register struct {
	value uint8
}

// Load latches a new value at the commit edge.
func (reg *Register) Load(value uint8) {
	reg.value = value
}

// Value returns the current latched value.
func (reg *Register) Value() uint8 {
	return reg.value
}

// Reset clears the register to 0.
func (reg *Register) Reset() {
	reg.value = 0
}

// Counter is the 4-bit program counter. It wraps modulo 16 on
// increment, loads unconditionally on the load line, and loads
// conditionally when the load line is masked by the latched carry.
type Counter struct {
	value uint8
}

// Increment advances the counter, wrapping modulo the address space.
func (pc *Counter) Increment() {
	pc.value = (pc.value + 1) & ADDR_MASK
}

// Load sets the counter from the low nibble of the bus value.
func (pc *Counter) Load(value uint8) {
	pc.value = value & ADDR_MASK
}

// LoadMasked loads the counter only if the mask is not requested or
// the latched carry is set. This is the JC gate.
func (pc *Counter) LoadMasked(value uint8, masked, carry bool) {
	if masked && !carry {
		return
	}
	pc.Load(value)
}

// Value returns the current counter value.
func (pc *Counter) Value() uint8 {
	return pc.value
}

// Reset clears the counter to 0.
func (pc *Counter) Reset() {
	pc.value = 0
}
