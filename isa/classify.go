package isa

import (
	"regexp"
	"slices"
	"strings"
)

// Category is the control/memory classification of an instruction.
type Category int

//go:generate go tool stringer -linecomment -type=Category
const (
	CATEGORY_NONE   = Category(0) // none
	CATEGORY_MEM_W  = Category(1) // mem_w
	CATEGORY_MEM_R  = Category(2) // mem_r
	CATEGORY_CF_J   = Category(3) // cf_j
	CATEGORY_CF_RET = Category(4) // cf_ret
)

// IsControlFlow returns true for jumps and returns.
func (cat Category) IsControlFlow() bool {
	return cat == CATEGORY_CF_J || cat == CATEGORY_CF_RET
}

// IsMemory returns true for memory reads and writes.
func (cat Category) IsMemory() bool {
	return cat == CATEGORY_MEM_W || cat == CATEGORY_MEM_R
}

// Shape is an opcode as classified: its category, output lines, and the
// placeholders those lines carry.
type Shape struct {
	Category Category
	Lines    []string
	XRegs    []string
	FRegs    []string
	Imms     []ImmSlot
	Symbols  []string
}

// Shape returns the unclassified shape of an entry: category none and the
// syntax template as the only line.
func (entry Entry) Shape() Shape {
	return Shape{
		Category: CATEGORY_NONE,
		Lines:    []string{entry.Syntax},
		XRegs:    slices.Clone(entry.XRegs),
		FRegs:    slices.Clone(entry.FRegs),
		Imms:     slices.Clone(entry.Imms),
		Symbols:  slices.Clone(entry.Symbols),
	}
}

// ClassifyFunc classifies an opcode.
type ClassifyFunc func(opcode string, entry Entry) Shape

// Classifier pairs an opcode predicate with its classification.
type Classifier struct {
	Name     string
	Match    func(opcode string) bool
	Classify ClassifyFunc
}

// OpcodeSet returns a predicate matching exactly the named opcodes.
func OpcodeSet(opcodes ...string) func(string) bool {
	set := make(map[string]struct{}, len(opcodes))
	for _, opcode := range opcodes {
		set[opcode] = struct{}{}
	}
	return func(opcode string) bool {
		_, ok := set[opcode]
		return ok
	}
}

// Registry is an ordered list of classifiers. The first match wins.
type Registry []Classifier

// Classify returns the shape of opcode. Opcodes no classifier matches
// keep the entry's own shape.
func (reg Registry) Classify(opcode string, entry Entry) Shape {
	for _, cl := range reg {
		if cl.Match(opcode) {
			return cl.Classify(opcode, entry)
		}
	}
	return entry.Shape()
}

// Symbol placeholder added by expanding classifiers.
const symbolSlot = "symbol"

var reBase = regexp.MustCompile(`\((xreg[0-9]+)\)`)

// withSymbol appends the symbol placeholder if not already present.
func withSymbol(shape Shape) Shape {
	if !slices.Contains(shape.Symbols, symbolSlot) {
		shape.Symbols = append(shape.Symbols, symbolSlot)
	}
	return shape
}

// classifyAs keeps the syntax as is.
func classifyAs(cat Category) ClassifyFunc {
	return func(opcode string, entry Entry) (shape Shape) {
		shape = entry.Shape()
		shape.Category = cat
		return
	}
}

// classifyMemory loads a symbol address into the base register ahead of
// the access.
func classifyMemory(cat Category) ClassifyFunc {
	return func(opcode string, entry Entry) (shape Shape) {
		shape = entry.Shape()
		shape.Category = cat

		match := reBase.FindStringSubmatch(entry.Syntax)
		if match == nil {
			return
		}

		shape.Lines = []string{"la " + match[1] + ", " + symbolSlot, entry.Syntax}
		shape = withSymbol(shape)
		return
	}
}

// classifyIndirect turns a register jump into a jump through a loaded
// symbol address, with a zero offset.
func classifyIndirect(opcode string, entry Entry) (shape Shape) {
	shape = entry.Shape()
	shape.Category = CATEGORY_CF_J

	match := reBase.FindStringSubmatch(entry.Syntax)
	if match == nil {
		return
	}

	zero := map[string]string{}
	for _, slot := range entry.Imms {
		zero[slot.Name] = "0"
	}
	shape.Imms = nil
	shape.Lines = []string{"la " + match[1] + ", " + symbolSlot, Substitute(entry.Syntax, zero)}
	shape = withSymbol(shape)
	return
}

// classifyReturn sets the exception PC to a symbol before returning.
func classifyReturn(opcode string, entry Entry) (shape Shape) {
	shape = entry.Shape()
	shape.Category = CATEGORY_CF_RET

	epc := "mepc"
	if strings.HasPrefix(opcode, "s") {
		epc = "sepc"
	}

	const reg = "xreg0"
	if !slices.Contains(shape.XRegs, reg) {
		shape.XRegs = append(shape.XRegs, reg)
	}
	shape.Lines = []string{
		"la " + reg + ", " + symbolSlot,
		"csrw " + epc + ", " + reg,
		entry.Syntax,
	}
	shape = withSymbol(shape)
	return
}

func isAtomicWrite(opcode string) bool {
	return strings.HasPrefix(opcode, "amo") || strings.HasPrefix(opcode, "sc.")
}

// DefaultRegistry classifies the built-in partitions.
var DefaultRegistry = Registry{
	{
		Name:     "branch",
		Match:    OpcodeSet("beq", "bne", "blt", "bge", "bltu", "bgeu"),
		Classify: classifyAs(CATEGORY_CF_J),
	},
	{
		Name:     "jal",
		Match:    OpcodeSet("jal"),
		Classify: classifyAs(CATEGORY_CF_J),
	},
	{
		Name:     "jalr",
		Match:    OpcodeSet("jalr"),
		Classify: classifyIndirect,
	},
	{
		Name:     "return",
		Match:    OpcodeSet("mret", "sret"),
		Classify: classifyReturn,
	},
	{
		Name:     "load",
		Match:    OpcodeSet("lb", "lh", "lw", "lbu", "lhu", "lwu", "ld", "flw", "fld", "flq", "lr.w", "lr.d"),
		Classify: classifyMemory(CATEGORY_MEM_R),
	},
	{
		Name:     "store",
		Match:    OpcodeSet("sb", "sh", "sw", "sd", "fsw", "fsd", "fsq"),
		Classify: classifyMemory(CATEGORY_MEM_W),
	},
	{
		Name:     "atomic",
		Match:    isAtomicWrite,
		Classify: classifyMemory(CATEGORY_MEM_W),
	},
}
