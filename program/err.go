package program

import (
	"errors"

	"github.com/ezrec/rvfuzz/translate"
)

var f = translate.From

var (
	ErrSize           = errors.New(f("region size negative"))
	ErrUnpopulated    = errors.New(f("word unpopulated"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrTargetMissing  = errors.New(f("target missing"))
	ErrWriteCode      = errors.New(f("memory write to code"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelRegister is returned for a label an assembler would read as a
// register operand.
type ErrLabelRegister string

func (err ErrLabelRegister) Error() string {
	return f("label %v is a register name", string(err))
}

// ErrTargetBackward is returned for a control flow reference to a label
// that does not follow it.
type ErrTargetBackward string

func (err ErrTargetBackward) Error() string {
	return f("target %v is not forward", string(err))
}

// ErrTarget locates a bad control flow target of a generated word.
type ErrTarget struct {
	Label  string
	Target string
	Err    error
}

func (err ErrTarget) Error() string {
	return f("%v: target %v: %v", err.Label, err.Target, err.Err)
}

func (err ErrTarget) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
