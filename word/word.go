// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package word

import (
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/rvfuzz/isa"
)

// Word is one generated instruction unit. A single opcode may expand
// into several output lines.
type Word struct {
	Label    int          // Region local label number.
	Opcode   string       // Opcode the word was built from.
	Category isa.Category // Control/memory category.
	Template []string     // Output lines, with placeholders.
	Insts    []string     // Output lines, with values. Set once populated.

	XRegs   []string      // General register placeholders.
	FRegs   []string      // Float register placeholders.
	Imms    []isa.ImmSlot // Immediate placeholders.
	Symbols []string      // Symbol placeholders.

	Values    map[string]string // Placeholder values. Set once populated.
	Populated bool
}

// New creates an unpopulated word from a classified shape.
func New(label int, opcode string, shape isa.Shape) (w *Word) {
	w = &Word{
		Label:    label,
		Opcode:   opcode,
		Category: shape.Category,
		Template: slices.Clone(shape.Lines),
		XRegs:    slices.Clone(shape.XRegs),
		FRegs:    slices.Clone(shape.FRegs),
		Imms:     slices.Clone(shape.Imms),
		Symbols:  slices.Clone(shape.Symbols),
	}
	return
}

// Slots returns every placeholder of the word, in fill order.
func (w *Word) Slots() (slots []string) {
	slots = append(slots, w.XRegs...)
	slots = append(slots, w.FRegs...)
	for _, imm := range w.Imms {
		slots = append(slots, imm.Name)
	}
	slots = append(slots, w.Symbols...)
	return
}

// Populate fills the placeholders from values. Every slot must have a
// value. Populating an already populated word does nothing.
func (w *Word) Populate(values map[string]string) (err error) {
	if w.Populated {
		return
	}

	for _, slot := range w.Slots() {
		if _, ok := values[slot]; !ok {
			err = ErrOperandMissing(slot)
			return
		}
	}

	insts := make([]string, len(w.Template))
	for n, line := range w.Template {
		insts[n] = isa.Substitute(line, values)
	}

	w.Values = maps.Clone(values)
	w.Insts = insts
	w.Populated = true

	return
}

// Lines returns the output lines: populated if the word is, else the template.
func (w *Word) Lines() []string {
	if w.Populated {
		return w.Insts
	}
	return w.Template
}

// Blank returns an unpopulated copy of the word, with the same label
// and shape.
func (w *Word) Blank() *Word {
	return New(w.Label, w.Opcode, isa.Shape{
		Category: w.Category,
		Lines:    w.Template,
		XRegs:    w.XRegs,
		FRegs:    w.FRegs,
		Imms:     w.Imms,
		Symbols:  w.Symbols,
	})
}

// Targets returns the populated values of the symbol slots.
func (w *Word) Targets() (targets []string) {
	for _, sym := range w.Symbols {
		if value, ok := w.Values[sym]; ok {
			targets = append(targets, value)
		}
	}
	return
}

func (w *Word) String() string {
	return strings.Join(w.Lines(), "; ")
}
