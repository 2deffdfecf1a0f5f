// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package program

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ezrec/rvfuzz/gen"
	"github.com/ezrec/rvfuzz/isa"
	"github.com/ezrec/rvfuzz/word"
)

// GUARD_SIZE is the size in bytes of the guard areas around the data block.
const GUARD_SIZE = 2048

// SLOT_ALIGN is the alignment in bytes of each data slot.
const SLOT_ALIGN = 16

// DefaultEpilogue exits a Linux process with status 0.
var DefaultEpilogue = []string{
	"li a7, 93",
	"li a0, 0",
	"ecall",
}

// Sizes are the number of words in each region.
type Sizes struct {
	Prefix int
	Main   int
	Suffix int
}

// Of returns the size of a region.
func (sizes Sizes) Of(region word.Region) int {
	switch region {
	case word.REGION_PREFIX:
		return sizes.Prefix
	case word.REGION_MAIN:
		return sizes.Main
	default:
		return sizes.Suffix
	}
}

// Program is a generated test program.
type Program struct {
	Verbose  bool
	Sections [word.REGION_COUNT][]*word.Word // Populated words, per region.
	Data     [][]uint64                      // Data slot values, per data section.
	Epilogue []string                        // Lines after the last region.
}

// Generate builds a program from a generator. The generator is reset
// first, so region labels start at zero. Every word of a region is built
// before any is populated, and the label after the last word of a region
// is its terminal label.
func Generate(g *gen.Generator, sizes Sizes) (prog *Program, err error) {
	for _, region := range word.Regions {
		if sizes.Of(region) < 0 {
			err = ErrSize
			return
		}
	}

	g.Reset()

	prog = &Program{
		Verbose:  g.Verbose,
		Epilogue: DefaultEpilogue,
	}

	for _, region := range word.Regions {
		size := sizes.Of(region)
		words := make([]*word.Word, size)
		for n := range words {
			words[n] = g.Word(region)
		}
		for _, w := range words {
			err = g.Populate(w, size, region)
			if err != nil {
				prog = nil
				return
			}
		}
		prog.Sections[region] = words
	}

	prog.Data = make([][]uint64, g.Options.DataSections)
	for n := range prog.Data {
		prog.Data[n] = make([]uint64, g.Options.DataSlots)
		for k := range prog.Data[n] {
			prog.Data[n][k] = g.DataWord()
		}
	}

	return
}

// Words returns the number of words in the program.
func (prog *Program) Words() (count int) {
	for _, words := range prog.Sections {
		count += len(words)
	}
	return
}

// Verify checks that every control flow target of every word is a later
// label of the word's own region, up to the region's terminal label.
// Memory accesses must target a data slot, or for reads, any code label
// of the word's region.
func (prog *Program) Verify() (err error) {
	data := map[string]bool{}
	for n, slots := range prog.Data {
		for k := range slots {
			data[gen.DataSymbol(n, k)] = true
		}
	}

	for _, region := range word.Regions {
		words := prog.Sections[region]
		for _, w := range words {
			label := region.Symbol(w.Label)
			if !w.Populated {
				err = ErrTarget{Label: label, Err: ErrUnpopulated}
				return
			}

			targets := w.Targets()
			switch {
			case w.Category.IsMemory():
				for _, target := range targets {
					r, n, code := word.ParseSymbol(target)
					switch {
					case data[target]:
					case !code || r != region || n > len(words):
						err = ErrTarget{Label: label, Target: target, Err: ErrLabelMissing(target)}
						return
					case w.Category == isa.CATEGORY_MEM_W:
						err = ErrTarget{Label: label, Target: target, Err: ErrWriteCode}
						return
					}
				}
			case w.Category.IsControlFlow():
				if len(targets) == 0 {
					err = ErrTarget{Label: label, Err: ErrTargetMissing}
					return
				}
				for _, target := range targets {
					r, n, ok := word.ParseSymbol(target)
					switch {
					case !ok || r != region || n > len(words):
						err = ErrTarget{Label: label, Target: target, Err: ErrLabelMissing(target)}
						return
					case n <= w.Label:
						err = ErrTarget{Label: label, Target: target, Err: ErrTargetBackward(target)}
						return
					}
				}
			}
		}
	}

	return
}

// WriteTo writes the program as an assembler listing.
func (prog *Program) WriteTo(out io.Writer) (n int64, err error) {
	var buf strings.Builder

	emit := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteByte('\n')
	}

	emit("\t.text")
	emit("\t.globl _start")
	emit("_start:")

	for _, region := range word.Regions {
		words := prog.Sections[region]
		for _, w := range words {
			emit("%v:", region.Symbol(w.Label))
			for _, line := range w.Lines() {
				emit("\t%v", line)
			}
		}
		emit("%v:", region.Symbol(len(words)))
	}

	for _, line := range prog.Epilogue {
		emit("\t%v", line)
	}

	emit("")
	emit("\t.data")
	emit("\t.balign %d", SLOT_ALIGN)
	emit("\t.space %d", GUARD_SIZE)
	for n, slots := range prog.Data {
		for k, value := range slots {
			emit("\t.balign %d", SLOT_ALIGN)
			emit("%v:", gen.DataSymbol(n, k))
			emit("\t.dword 0x%016x", value)
		}
	}
	emit("\t.balign %d", SLOT_ALIGN)
	emit("\t.space %d", GUARD_SIZE)

	if prog.Verbose {
		log.Printf("program: %d words, %d data sections", prog.Words(), len(prog.Data))
	}

	written, err := io.WriteString(out, buf.String())
	n = int64(written)
	return
}
