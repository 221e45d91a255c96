// Package io provides the external collaborators of the μSAP machine:
// the output peripheral that receives bus values whenever the output
// chip-select line is asserted, and the memory image format used by
// the out-of-band programming front end. None of these influence the
// core computation.
package io

import (
	"fmt"
	"io"
)

// Display receives the bus value delivered to the output peripheral.
// Rendering (7-segment, two's complement and so on) is the
// collaborator's business, never the core's.
type Display interface {
	// Show delivers one output value.
	Show(value uint8)
}

// Recorder is a Display that remembers every delivered value.
type Recorder struct {
	Values []uint8
}

var _ Display = (*Recorder)(nil)

// Show appends the delivered value.
func (rec *Recorder) Show(value uint8) {
	rec.Values = append(rec.Values, value)
}

// Reset forgets all recorded values.
func (rec *Recorder) Reset() {
	rec.Values = nil
}

// Printer is a Display that writes each delivered value as a decimal
// line. With Signed set it renders the two's complement reading, the
// way the board's signed display mode does.
type Printer struct {
	Output io.Writer
	Signed bool
}

var _ Display = (*Printer)(nil)

// Show writes the delivered value.
func (pr *Printer) Show(value uint8) {
	v := int(value)
	if pr.Signed && value >= 0x80 {
		v -= 256
	}

	fmt.Fprintf(pr.Output, "%d\n", v)
}
