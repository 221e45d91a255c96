// Package cpu implements the microcoded μSAP 8-bit computer.
//
// The machine is a single synchronous circuit: the control unit maps the
// current (opcode, micro-step) pair through a fixed microprogram table to
// a control word, and every other component (memory, registers, program
// counter, ALU, buses) reacts to that word. Each
// Tick settles the combinational state from a snapshot of the registers,
// then commits every register update on the same clock edge.
//
// The assembler provides the matching assembly language for the ten
// opcode instruction set, supporting labels, equates, raw data bytes,
// and compile-time expression evaluation.
package cpu
