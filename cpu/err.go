package cpu

import (
	"errors"

	"github.com/ezrec/usap/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrBusContention = errors.New(f("bus contention"))
	ErrImageTooLong  = errors.New(f("memory image too long"))

	// Microprogram authoring errors
	ErrFetchWord = errors.New(f("step 0 is not the fetch word"))
	ErrNoDriver  = errors.New(f("data consumer without a bus driver"))
	ErrNoAddress = errors.New(f("memory select without an address driver"))
	ErrDeadStep  = errors.New(f("step after restart is not empty"))

	// Assembler errors
	ErrProgramTooLong  = errors.New(f("program exceeds memory"))
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrByteSyntax      = errors.New(f(".byte syntax"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrExtraArgs       = errors.New(f("excessive arguments"))
)

// ErrMicrocode locates a microprogram table defect.
type ErrMicrocode struct {
	Op   Opcode
	Step int
	Err  error
}

func (err *ErrMicrocode) Error() string {
	return f("%v step %d: %v", err.Op, err.Step, err.Err)
}

func (err *ErrMicrocode) Unwrap() error {
	return err.Err
}

// ErrLabelMissing names a jump target that was never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrParseNumber names a word that did not parse as a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression names a $(...) expression that did not evaluate.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembler error in its source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
