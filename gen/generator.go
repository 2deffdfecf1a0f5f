// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package gen

import (
	"log"
	"math/rand/v2"

	"github.com/ezrec/rvfuzz/internal"
	"github.com/ezrec/rvfuzz/isa"
	"github.com/ezrec/rvfuzz/word"
)

// Generator builds words for one generation session. It is not safe for
// concurrent use; independent streams each need their own Generator.
type Generator struct {
	Verbose     bool         // If set, logs each word as it is built.
	Options     Options      // Allocation biases.
	Catalog     *isa.Catalog // Opcodes for the main and suffix regions.
	Classifiers isa.Registry // Opcode classification.

	rand *rand.Rand

	opcodes   []string      // Catalog opcodes, in sampling order.
	prefix    isa.Partition // Opcodes for the prefix region.
	prefixOps []string      // Prefix opcodes, in sampling order.

	// Session state, cleared by Reset.
	xregs  internal.OrderedSet[int]
	fregs  internal.OrderedSet[int]
	imms   internal.OrderedSet[uint64]
	labels [word.REGION_COUNT]int
}

// New creates a generator over a composed catalog, drawing randomness
// from source. Equal sources and equal call sequences give equal words.
func New(catalog *isa.Catalog, source rand.Source) (gen *Generator) {
	prefix, _ := isa.Builtin(isa.PART_RV_ZICSR)

	gen = &Generator{
		Options:     Defaults(),
		Catalog:     catalog,
		Classifiers: isa.DefaultRegistry,
		rand:        rand.New(source),
		opcodes:     catalog.Opcodes(),
		prefix:      prefix,
		prefixOps:   prefix.Opcodes(),
	}

	return
}

// NewFromProfile composes the catalog of a profile string, plus any
// overlays, and creates a generator over it.
func NewFromProfile(profile string, source rand.Source, overlays ...isa.Overlay) (gen *Generator, err error) {
	prof, err := isa.ParseProfile(profile)
	if err != nil {
		return
	}

	merged := isa.Overlay{}
	for _, overlay := range overlays {
		err = merged.Merge(overlay)
		if err != nil {
			return
		}
	}

	catalog, err := isa.Compose(prof, merged)
	if err != nil {
		return
	}

	gen = New(catalog, source)
	return
}

// Reset clears the session: used registers and immediates, and the
// label counters. The catalog is kept.
func (gen *Generator) Reset() {
	gen.xregs.Clear()
	gen.fregs.Clear()
	gen.imms.Clear()
	gen.labels = [word.REGION_COUNT]int{}
}

// Word builds the next unpopulated word of a region. Prefix words draw
// from the CSR opcodes only.
func (gen *Generator) Word(region word.Region) (w *word.Word) {
	var opcode string
	var entry isa.Entry

	if region == word.REGION_PREFIX {
		opcode = gen.prefixOps[gen.rand.IntN(len(gen.prefixOps))]
		entry = gen.prefix[opcode]
	} else {
		opcode = gen.opcodes[gen.rand.IntN(len(gen.opcodes))]
		entry, _ = gen.Catalog.Lookup(opcode)
	}

	label := gen.labels[region]
	gen.labels[region]++

	shape := gen.Classifiers.Classify(opcode, entry)
	w = word.New(label, opcode, shape)

	if gen.Verbose {
		log.Printf("%v: %v (%v)", region.Symbol(label), opcode, shape.Category)
	}

	return
}

// Populate assigns registers, immediates and symbols to the placeholders
// of w. Jump targets are drawn from the labels after w's own, up to and
// including maxLabel. A populated word is left untouched, and no
// randomness is drawn for it. On error w stays unpopulated, and the
// registers and immediates drawn for it are not recorded as used.
func (gen *Generator) Populate(w *word.Word, maxLabel int, region word.Region) (err error) {
	if w.Populated {
		return
	}

	xregs, fregs, imms := gen.xregs.Len(), gen.fregs.Len(), gen.imms.Len()
	defer func() {
		if err != nil {
			gen.xregs.Truncate(xregs)
			gen.fregs.Truncate(fregs)
			gen.imms.Truncate(imms)
		}
	}()

	band := fullBand
	if region == word.REGION_PREFIX {
		band = gen.Options.PrefixBand
	}

	values := make(map[string]string, len(w.Slots()))

	for _, xreg := range w.XRegs {
		if w.Category == isa.CATEGORY_NONE {
			values[xreg] = gen.pickXReg(fullBand, false)
		} else {
			values[xreg] = gen.pickXReg(band, true)
		}
	}

	for _, freg := range w.FRegs {
		values[freg] = gen.pickFReg()
	}

	for _, imm := range w.Imms {
		values[imm.Name], err = gen.pickImmediate(imm)
		if err != nil {
			err = ErrPopulate{Opcode: w.Opcode, Label: w.Label, Err: err}
			return
		}
	}

	for _, sym := range w.Symbols {
		values[sym], err = gen.pickSymbol(w.Category, w.Label, maxLabel, region)
		if err != nil {
			err = ErrPopulate{Opcode: w.Opcode, Label: w.Label, Err: err}
			return
		}
	}

	err = w.Populate(values)
	if err != nil {
		return
	}

	if gen.Verbose {
		log.Printf("%v: %v", region.Symbol(w.Label), w)
	}

	return
}

// DataWord draws a random data value from the session's source.
func (gen *Generator) DataWord() uint64 {
	return gen.rand.Uint64()
}

// Label returns the next label number of a region.
func (gen *Generator) Label(region word.Region) int {
	return gen.labels[region]
}

// UsedXRegs returns the general registers drawn so far.
func (gen *Generator) UsedXRegs() []int {
	return gen.xregs.Values()
}

// UsedFRegs returns the float registers drawn so far.
func (gen *Generator) UsedFRegs() []int {
	return gen.fregs.Values()
}

// UsedImms returns the immediates drawn so far.
func (gen *Generator) UsedImms() []uint64 {
	return gen.imms.Values()
}
