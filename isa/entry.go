package isa

import (
	"regexp"
	"slices"
	"strconv"
)

var (
	reToken  = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	reXReg   = regexp.MustCompile(`^xreg[0-9]+$`)
	reFReg   = regexp.MustCompile(`^freg[0-9]+$`)
	reSymbol = regexp.MustCompile(`^symbol[0-9]*$`)
	reImm    = regexp.MustCompile(`^(u?)imm([0-9]+)$`)
)

// ImmSlot describes an immediate placeholder.
type ImmSlot struct {
	Name   string // Placeholder name in the syntax template.
	Signed bool   // Signed immediates carry a separate sign token.
	Width  int    // Encoded width in bits.
	Align  uint64 // Required alignment of the value. Must be a power of two.
}

// NewImmSlot builds the descriptor for an immediate placeholder. Names
// are "immN" for an N bit signed immediate, or "uimmN" for an N bit
// unsigned one.
func NewImmSlot(name string, align uint64) (slot ImmSlot, err error) {
	match := reImm.FindStringSubmatch(name)
	if match == nil {
		err = ErrImmSlot(name)
		return
	}

	width, err := strconv.Atoi(match[2])
	if err != nil {
		err = ErrImmSlot(name)
		return
	}

	slot = ImmSlot{
		Name:   name,
		Signed: match[1] == "",
		Width:  width,
		Align:  align,
	}

	if slot.Bits() < 1 || slot.Bits() > 63 {
		err = ErrImmSlot(name)
		return
	}

	return
}

// Bits returns the number of magnitude bits. Signed slots give one bit
// of their width to the sign.
func (slot ImmSlot) Bits() int {
	if slot.Signed {
		return slot.Width - 1
	}
	return slot.Width
}

// Entry is the generic slot description of an opcode.
type Entry struct {
	Syntax  string    // Syntax template.
	XRegs   []string  // General register placeholders.
	FRegs   []string  // Float register placeholders.
	Imms    []ImmSlot // Immediate placeholders.
	Symbols []string  // Symbol placeholders.
}

// NewEntry builds an entry from a syntax template. Register, float
// register and symbol placeholders are found in the template in order of
// first appearance. Immediates must be listed, and every immediate in the
// template must be listed.
func NewEntry(syntax string, imms ...ImmSlot) (entry Entry, err error) {
	entry.Syntax = syntax

	seen := map[string]bool{}
	for _, token := range reToken.FindAllString(syntax, -1) {
		if seen[token] {
			continue
		}
		seen[token] = true

		switch {
		case reXReg.MatchString(token):
			entry.XRegs = append(entry.XRegs, token)
		case reFReg.MatchString(token):
			entry.FRegs = append(entry.FRegs, token)
		case reSymbol.MatchString(token):
			entry.Symbols = append(entry.Symbols, token)
		case reImm.MatchString(token):
			if !slices.ContainsFunc(imms, func(slot ImmSlot) bool { return slot.Name == token }) {
				err = ErrEntrySyntax
				return
			}
		}
	}

	for _, slot := range imms {
		if !seen[slot.Name] {
			err = ErrEntrySyntax
			return
		}
	}
	entry.Imms = slices.Clone(imms)

	return
}

// Slots returns every placeholder name of the entry.
func (entry Entry) Slots() (slots []string) {
	slots = append(slots, entry.XRegs...)
	slots = append(slots, entry.FRegs...)
	for _, slot := range entry.Imms {
		slots = append(slots, slot.Name)
	}
	slots = append(slots, entry.Symbols...)
	return
}

// Substitute replaces each placeholder token of line found in values.
func Substitute(line string, values map[string]string) string {
	return reToken.ReplaceAllStringFunc(line, func(token string) string {
		value, ok := values[token]
		if !ok {
			return token
		}
		return value
	})
}
