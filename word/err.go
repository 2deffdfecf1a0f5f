package word

import (
	"github.com/ezrec/rvfuzz/translate"
)

var f = translate.From

// ErrOperandMissing is returned when a placeholder has no value.
type ErrOperandMissing string

func (err ErrOperandMissing) Error() string {
	return f("operand %v missing", string(err))
}
