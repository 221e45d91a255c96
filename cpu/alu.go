package cpu

// AluCompute is the purely combinational adder/subtractor. Subtraction
// is computed as two's-complement addition of a + (^b + 1), and carry
// is the adder's carry-out under either scheme: for addition it means
// the sum exceeded 255, for subtraction it conventionally signals "no
// borrow". This single definition is the one the JC instruction
// consumes, whichever operation latched it last.
func AluCompute(a, b uint8, subtract bool) (result uint8, carry bool) {
	sum := uint16(a) + uint16(b)
	if subtract {
		sum = uint16(a) + uint16(^b) + 1
	}

	result = uint8(sum)
	carry = sum > 0xff

	return
}
