package program

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckListing(t *testing.T) {
	assert := assert.New(t)

	good := `	.text
_start:
_l0:
	beq x1, x2, _l2      # forward branch
_l1:
	la x5, _l0
	lw x6, 0(x5)
	la x7, d_0_1
	sw x6, 8(x7)
_l2:
	la x3, _l3
	jalr x0, 0(x3)
_l3:
	la x4, _l4
	csrw mepc, x4
	mret
_l4:
	jal x1, _l5
_l5:
	ecall
	.data
d_0_1:
	.dword 0x0
`
	assert.NoError(CheckListing(strings.NewReader(good)))
	assert.NoError(CheckListing(strings.NewReader("")))
}

func TestCheckListingErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		listing string
		lineNo  int
		err     error
	}{
		{"_l0:\n\tnop\n_l0:\n", 3, ErrLabelDuplicate},
		{"_l0:\n\tbne x1, x2, _l7\n", 2, ErrLabelMissing("_l7")},
		{"_l0:\n\tla x1, d_9_9\n\tld x2, 0(x1)\n", 2, ErrLabelMissing("d_9_9")},
		{"_l0:\n\tnop\n_l1:\n\tbgeu x1, x2, _l0\n", 4, ErrTargetBackward("_l0")},
		{"_l0:\n\tjal x1, _l0\n", 2, ErrTargetBackward("_l0")},
		{"_p0:\n\tnop\n_p1:\n\tla x10, _p0\n\tjalr x1, 0(x10)\n", 4, ErrTargetBackward("_p0")},
		{"_s0:\n\tla x10, _s0\n\tcsrw sepc, x10\n\tsret\n", 2, ErrTargetBackward("_s0")},
		{"\tbeq x1, x2, s2\ns2:\n\tnop\n", 2, ErrLabelRegister("s2")},
		{"x31:\n", 1, ErrLabelRegister("x31")},
		{"_l0:\nfa7:\n", 2, ErrLabelRegister("fa7")},
		{"zero:\n", 1, ErrLabelRegister("zero")},
	}

	for _, entry := range table {
		err := CheckListing(strings.NewReader(entry.listing))
		var es *ErrSyntax
		if !assert.True(errors.As(err, &es), entry.listing) {
			continue
		}
		assert.Equal(entry.lineNo, es.LineNo, entry.listing)
		assert.Equal(entry.err, es.Err, entry.listing)
		assert.True(errors.Is(err, entry.err), entry.listing)
	}
}

func TestIsRegister(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"x0", "x31", "f0", "f31", "zero", "ra", "sp", "gp", "tp", "fp",
		"t0", "t6", "s0", "s11", "a0", "a7", "ft0", "ft11", "fs0", "fs11", "fa0", "fa7"} {
		assert.True(isRegister(name), name)
	}

	for _, name := range []string{"x32", "f32", "t7", "s12", "a8", "ft12", "fa8",
		"_s0", "_l0", "_p0", "l3", "p0", "d_0_0", "_start"} {
		assert.False(isRegister(name), name)
	}
}

func TestParseLine(t *testing.T) {
	assert := assert.New(t)

	ll := parseLine(3, "\tfmadd.s f1, f2, f3, f4  # comment")
	assert.Equal(3, ll.lineNo)
	assert.Equal("fmadd.s", ll.mnemonic)
	assert.Equal([]string{"f1", "f2", "f3", "f4"}, ll.operands)
	assert.Empty(ll.label)

	ll = parseLine(1, "_l12:")
	assert.Equal("_l12", ll.label)
	assert.Empty(ll.mnemonic)

	ll = parseLine(1, "\t.balign 16")
	assert.Empty(ll.mnemonic)
	assert.Empty(ll.label)

	ll = parseLine(1, "\tfence")
	assert.Equal("fence", ll.mnemonic)
	assert.Empty(ll.operands)
}
