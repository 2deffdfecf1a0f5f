package program

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/rvfuzz/word"
)

// branches take their target as the last operand.
var branches = map[string]bool{
	"beq":  true,
	"bne":  true,
	"blt":  true,
	"bge":  true,
	"bltu": true,
	"bgeu": true,
	"jal":  true,
	"j":    true,
}

// indirect instructions consume an address loaded by the 'la' just
// before them as a control flow target.
var indirect = map[string]bool{
	"jalr": true,
	"jr":   true,
	"csrw": true,
}

// registers holds every integer and float register name, numeric and ABI.
var registers = map[string]bool{
	"zero": true, "ra": true, "sp": true, "gp": true, "tp": true, "fp": true,
}

func init() {
	banks := []struct {
		prefix string
		count  int
	}{
		{"x", 32}, {"f", 32},
		{"t", 7}, {"s", 12}, {"a", 8},
		{"ft", 12}, {"fs", 12}, {"fa", 8},
	}
	for _, bank := range banks {
		for n := range bank.count {
			registers[bank.prefix+strconv.Itoa(n)] = true
		}
	}
}

// isRegister returns true if name reads as a register operand.
func isRegister(name string) bool {
	return registers[name]
}

type listingLine struct {
	lineNo   int
	text     string
	label    string
	mnemonic string
	operands []string
}

// parseLine splits a listing line. Comments start with '#'.
func parseLine(lineNo int, text string) (ll listingLine) {
	ll.lineNo = lineNo
	ll.text = text

	line, _, _ := strings.Cut(text, "#")
	line = strings.TrimSpace(line)

	if label, ok := strings.CutSuffix(line, ":"); ok && !strings.ContainsAny(label, " \t") {
		ll.label = label
		return
	}

	if len(line) == 0 || strings.HasPrefix(line, ".") {
		return
	}

	mnemonic, rest, _ := strings.Cut(line, " ")
	ll.mnemonic = mnemonic
	for _, operand := range strings.Split(rest, ",") {
		operand = strings.TrimSpace(operand)
		if len(operand) > 0 {
			ll.operands = append(ll.operands, operand)
		}
	}

	return
}

// CheckListing parses an assembler listing and checks its labels. No
// label is defined twice or named like a register, every referenced label
// is defined, and every control flow reference to a code label points
// forward in the listing.
func CheckListing(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var lines []listingLine
	labels := map[string]int{}

	for lineNo := 1; scanner.Scan(); lineNo++ {
		ll := parseLine(lineNo, scanner.Text())
		if len(ll.label) > 0 {
			if isRegister(ll.label) {
				err = &ErrSyntax{LineNo: ll.lineNo, Line: ll.text, Err: ErrLabelRegister(ll.label)}
				return
			}
			if _, ok := labels[ll.label]; ok {
				err = &ErrSyntax{LineNo: ll.lineNo, Line: ll.text, Err: ErrLabelDuplicate}
				return
			}
			labels[ll.label] = len(lines)
		}
		lines = append(lines, ll)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	for n, ll := range lines {
		var target string
		var flow bool

		switch {
		case branches[ll.mnemonic] && len(ll.operands) > 0:
			target = ll.operands[len(ll.operands)-1]
			flow = true
		case ll.mnemonic == "la" && len(ll.operands) == 2:
			target = ll.operands[1]
			flow = indirect[nextMnemonic(lines, n)]
		default:
			continue
		}

		at, ok := labels[target]
		if !ok {
			err = &ErrSyntax{LineNo: ll.lineNo, Line: ll.text, Err: ErrLabelMissing(target)}
			return
		}

		if _, _, code := word.ParseSymbol(target); flow && code && at <= n {
			err = &ErrSyntax{LineNo: ll.lineNo, Line: ll.text, Err: ErrTargetBackward(target)}
			return
		}
	}

	return
}

// nextMnemonic returns the mnemonic of the first instruction after line n.
func nextMnemonic(lines []listingLine, n int) string {
	for _, ll := range lines[n+1:] {
		if len(ll.mnemonic) > 0 {
			return ll.mnemonic
		}
	}
	return ""
}
