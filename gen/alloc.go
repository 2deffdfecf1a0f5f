package gen

import (
	"fmt"
	"strconv"

	"github.com/ezrec/rvfuzz/isa"
	"github.com/ezrec/rvfuzz/word"
)

// boundary immediates, before masking.
var boundary = [2]uint64{0x0, 0xffff_ffff}

// chance draws a coin that comes up true with probability p.
func (gen *Generator) chance(p float64) bool {
	return gen.rand.Float64() < p
}

// between draws uniformly from [low, high].
func (gen *Generator) between(low, high int) int {
	return low + gen.rand.IntN(high-low+1)
}

// pickXReg picks a general register from band. Reuse of an earlier
// register is only considered for the full band. Fresh picks are recorded
// before the zero check, and a zero redraw is not recorded.
func (gen *Generator) pickXReg(band Band, noZero bool) string {
	var n int
	if band == fullBand && gen.xregs.Len() > 0 && gen.chance(gen.Options.ReuseBias) {
		n = gen.xregs.At(gen.rand.IntN(gen.xregs.Len()))
	} else {
		n = gen.between(band.Low, band.High)
		gen.xregs.Add(n)
	}

	if noZero && n == 0 {
		n = gen.between(1, REGISTER_COUNT-1)
	}

	return "x" + strconv.Itoa(n)
}

// pickFReg picks a float register.
func (gen *Generator) pickFReg() string {
	var n int
	if gen.fregs.Len() > 0 && gen.chance(gen.Options.ReuseBias) {
		n = gen.fregs.At(gen.rand.IntN(gen.fregs.Len()))
	} else {
		n = gen.between(fullBand.Low, fullBand.High)
		gen.fregs.Add(n)
	}

	return "f" + strconv.Itoa(n)
}

// pickImmediate picks an immediate for slot, as a sign token followed by
// the decimal magnitude.
func (gen *Generator) pickImmediate(slot isa.ImmSlot) (value string, err error) {
	align := slot.Align
	if align == 0 || align&(align-1) != 0 {
		err = ErrAlignment(align)
		return
	}

	sign := ""
	if slot.Signed && gen.rand.IntN(2) == 1 {
		sign = "-"
	}

	mask := uint64(1)<<slot.Bits() - 1
	if gen.chance(gen.Options.AlignBias) {
		mask &^= align - 1
	}

	var imm uint64
	opts := &gen.Options
	r := gen.rand.Float64()
	switch {
	case gen.imms.Len() > 0 && r < opts.ReuseBias:
		imm = gen.imms.At(gen.rand.IntN(gen.imms.Len()))
	case r < opts.ReuseBias+opts.ZeroOrOnesBias:
		imm = boundary[gen.rand.IntN(len(boundary))]
	default:
		imm = gen.rand.Uint64N(mask + 1)
		gen.imms.Add(imm)
	}

	value = sign + strconv.FormatUint(imm&mask, 10)
	return
}

// pickSymbol picks the target of a symbol slot. Writes always target
// data. Reads sometimes target code. Everything else targets a later
// label of the same region.
func (gen *Generator) pickSymbol(cat isa.Category, label int, maxLabel int, region word.Region) (symbol string, err error) {
	switch cat {
	case isa.CATEGORY_MEM_W:
		symbol = gen.dataSymbol()
	case isa.CATEGORY_MEM_R:
		if gen.chance(gen.Options.CodeAliasBias) {
			if maxLabel < 0 {
				err = ErrLabelRange{Label: -1, Max: maxLabel}
				return
			}
			symbol = region.Symbol(gen.between(0, maxLabel))
		} else {
			symbol = gen.dataSymbol()
		}
	default:
		if label+1 > maxLabel {
			err = ErrLabelRange{Label: label, Max: maxLabel}
			return
		}
		symbol = region.Symbol(gen.between(label+1, maxLabel))
	}

	return
}

// dataSymbol draws a data section symbol.
func (gen *Generator) dataSymbol() string {
	n := gen.rand.IntN(gen.Options.DataSections)
	k := gen.rand.IntN(gen.Options.DataSlots)
	return DataSymbol(n, k)
}

// DataSymbol names slot k of data section n.
func DataSymbol(n, k int) string {
	return fmt.Sprintf("d_%d_%d", n, k)
}
