package word

import (
	"strconv"
	"strings"
)

// Region is the coarse placement of a word in a program.
type Region int

//go:generate go tool stringer -linecomment -type=Region
const (
	REGION_PREFIX = Region(0) // prefix
	REGION_MAIN   = Region(1) // main
	REGION_SUFFIX = Region(2) // suffix
)

// REGION_COUNT is the number of regions.
const REGION_COUNT = 3

// Label prefixes start with an underscore, so no label reads as an ABI
// register name such as s0 or a1.
var regionPrefix = [REGION_COUNT]string{"_p", "_l", "_s"}

// Regions lists the regions in program order.
var Regions = []Region{REGION_PREFIX, REGION_MAIN, REGION_SUFFIX}

// Prefix returns the label prefix of the region.
func (region Region) Prefix() string {
	return regionPrefix[region]
}

// Symbol returns the name of label n in the region.
func (region Region) Symbol(n int) string {
	return region.Prefix() + strconv.Itoa(n)
}

// ParseSymbol parses a code label of any region.
func ParseSymbol(symbol string) (region Region, n int, ok bool) {
	for _, region = range Regions {
		digits, found := strings.CutPrefix(symbol, region.Prefix())
		if !found || len(digits) == 0 {
			continue
		}
		var err error
		n, err = strconv.Atoi(digits)
		if err != nil || n < 0 || digits[0] == '+' {
			continue
		}
		ok = true
		return
	}
	return
}
