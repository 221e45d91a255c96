package cpu

const (
	// MEM_SIZE is the number of addressable memory cells.
	MEM_SIZE = 16

	// ADDR_MASK masks a value down to the 4-bit address space.
	ADDR_MASK = uint8(MEM_SIZE - 1)

	// OPERAND_MASK masks an instruction byte down to its operand nibble.
	OPERAND_MASK = uint8(0x0f)
)

// Memory is the 16-cell byte store. Reads are combinational; writes
// land synchronously at the commit edge of a tick. The 4-bit address
// space covers the cell array completely, so out-of-range addresses
// cannot occur.
type Memory struct {
	Cell [MEM_SIZE]uint8
}

// Read returns the cell value at the given address.
func (mem *Memory) Read(addr uint8) uint8 {
	return mem.Cell[addr&ADDR_MASK]
}

// Write stores a value at the given address.
func (mem *Memory) Write(addr, value uint8) {
	mem.Cell[addr&ADDR_MASK] = value
}

// Program writes one cell through the out-of-band programming port.
// The board equivalent is the front-panel switch bank; the core does
// not validate program correctness.
func (mem *Memory) Program(addr, value uint8) {
	mem.Write(addr, value)
}

// Load programs an image into memory starting at address 0.
func (mem *Memory) Load(image []uint8) (err error) {
	if len(image) > MEM_SIZE {
		err = ErrImageTooLong
		return
	}

	copy(mem.Cell[:], image)

	return
}

// Reset clears all cells to 0.
func (mem *Memory) Reset() {
	clear(mem.Cell[:])
}
