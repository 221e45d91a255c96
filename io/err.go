package io

import (
	"github.com/ezrec/usap/translate"
)

var f = translate.From

// ErrImageByte locates a word in an image file that is not a hex byte.
type ErrImageByte struct {
	LineNo int
	Word   string
}

func (err *ErrImageByte) Error() string {
	return f("line %d '%v' is not a hex byte", err.LineNo, err.Word)
}
