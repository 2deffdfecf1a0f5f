package gen

// Band is an inclusive range of register indices.
type Band struct {
	Low  int
	High int
}

// Contains returns true if n is in the band.
func (band Band) Contains(n int) bool {
	return n >= band.Low && n <= band.High
}

// fullBand is every register.
var fullBand = Band{0, REGISTER_COUNT - 1}

// REGISTER_COUNT is the number of general and of float registers.
const REGISTER_COUNT = 32

// Options are the allocation biases of a generator.
type Options struct {
	// Probability of reusing an already used register or immediate.
	ReuseBias float64
	// Probability of an all-zeros or all-ones immediate.
	ZeroOrOnesBias float64
	// Probability of honoring an immediate's alignment.
	AlignBias float64
	// Probability of a memory read targeting a code label instead of data.
	CodeAliasBias float64

	DataSections int // Number of data sections.
	DataSlots    int // Number of symbols in each data section.

	// Registers available to control and memory instructions in the
	// prefix region.
	PrefixBand Band
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		ReuseBias:      0.2,
		ZeroOrOnesBias: 0.2,
		AlignBias:      1.0,
		CodeAliasBias:  0.2,
		DataSections:   6,
		DataSlots:      28,
		PrefixBand:     Band{10, 14},
	}
}
