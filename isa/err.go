package isa

import (
	"errors"
	"strings"

	"github.com/ezrec/rvfuzz/translate"
)

var f = translate.From

var (
	// Profile errors
	ErrProfileEmpty = errors.New(f("profile selects no extensions"))

	// Catalog errors
	ErrEntrySyntax  = errors.New(f("entry syntax"))
	ErrOverlayShape = errors.New(f("overlay shape"))
)

// ErrProfileBase is returned for a profile that does not start with RV32 or RV64.
type ErrProfileBase string

func (err ErrProfileBase) Error() string {
	return f("profile '%v' has no RV32 or RV64 base", string(err))
}

// ErrProfileExtension is returned for an extension that is not recognized.
type ErrProfileExtension string

func (err ErrProfileExtension) Error() string {
	return f("extension '%v' unknown", string(err))
}

// ErrImmSlot is returned for an immediate slot name that does not
// encode a signedness and width.
type ErrImmSlot string

func (err ErrImmSlot) Error() string {
	return f("immediate slot '%v' invalid", string(err))
}

type ErrPartitionUnknown string

func (err ErrPartitionUnknown) Error() string {
	return f("partition %v unknown", string(err))
}

type ErrPartitionDuplicate string

func (err ErrPartitionDuplicate) Error() string {
	return f("partition %v duplicated", string(err))
}

// ErrOpcodeCollision is returned when two partitions define the same opcode.
type ErrOpcodeCollision struct {
	Opcode     string
	Partitions []string
}

func (err ErrOpcodeCollision) Error() string {
	return f("opcode %v defined by %v", err.Opcode, strings.Join(err.Partitions, ", "))
}

// ErrEntry locates an error in an opcode entry.
type ErrEntry struct {
	Opcode string
	Err    error
}

func (err ErrEntry) Error() string {
	return f("opcode %v: %v", err.Opcode, err.Err)
}

func (err ErrEntry) Unwrap() error {
	return err.Err
}

// ErrOverlay locates an error in an overlay script.
type ErrOverlay struct {
	Name string
	Err  error
}

func (err ErrOverlay) Error() string {
	return f("overlay %v: %v", err.Name, err.Err)
}

func (err ErrOverlay) Unwrap() error {
	return err.Err
}
