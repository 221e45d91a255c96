package emulator

import (
	"github.com/ezrec/usap/translate"
)

var f = translate.From

// ErrTickLimit indicates the machine did not halt within the tick budget.
type ErrTickLimit struct {
	Limit  int
	LineNo int
}

func (err *ErrTickLimit) Error() string {
	if err.LineNo != 0 {
		return f("no halt within %d ticks (line %d)", err.Limit, err.LineNo)
	}
	return f("no halt within %d ticks", err.Limit)
}
