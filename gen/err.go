package gen

import (
	"github.com/ezrec/rvfuzz/translate"
)

var f = translate.From

// ErrAlignment is returned for an immediate alignment that is not a
// power of two.
type ErrAlignment uint64

func (err ErrAlignment) Error() string {
	return f("alignment %d is not a power of two", uint64(err))
}

// ErrLabelRange is returned when no label is available for a symbol.
type ErrLabelRange struct {
	Label int
	Max   int
}

func (err ErrLabelRange) Error() string {
	return f("no label after %d up to %d", err.Label, err.Max)
}

// ErrPopulate locates an allocation error.
type ErrPopulate struct {
	Opcode string
	Label  int
	Err    error
}

func (err ErrPopulate) Error() string {
	return f("%v at label %d: %v", err.Opcode, err.Label, err.Err)
}

func (err ErrPopulate) Unwrap() error {
	return err.Err
}
