package isa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

const acmeOverlay = `
def mem(op, align):
    return (op + " xreg0, imm12(xreg1)", [("imm12", align)])

partitions = {
    "rv32xacme": {
        "acme.mix": "acme.mix xreg0, xreg1, xreg2",
        "acme.ld": mem("acme.ld", 4),
    },
    "rv64xacme": {
        "acme.mixw": "acme.mixw xreg0, xreg1, xreg2",
    },
}
`

func TestLoadOverlay(t *testing.T) {
	assert := assert.New(t)

	overlay, err := LoadOverlay("acme.star", acmeOverlay)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(2, len(overlay))
	ld := overlay["rv32xacme"]["acme.ld"]
	assert.Equal("acme.ld xreg0, imm12(xreg1)", ld.Syntax)
	assert.Equal([]ImmSlot{{Name: "imm12", Signed: true, Width: 12, Align: 4}}, ld.Imms)
	assert.Equal([]string{"xreg0", "xreg1"}, ld.XRegs)

	cat, err := Compose(MustParseProfile("RV64I"), overlay)
	assert.NoError(err)
	_, ok := cat.Lookup("acme.mixw")
	assert.True(ok)
}

func TestLoadOverlayErrors(t *testing.T) {
	assert := assert.New(t)

	var oe ErrOverlay

	_, err := LoadOverlay("syntax.star", "partitions = {")
	assert.ErrorAs(err, &oe)
	assert.Equal("syntax.star", oe.Name)

	_, err = LoadOverlay("none.star", "x = 1")
	assert.True(errors.Is(err, ErrOverlayShape))

	_, err = LoadOverlay("list.star", "partitions = []")
	assert.True(errors.Is(err, ErrOverlayShape))

	_, err = LoadOverlay("value.star", `partitions = {"xacme": {"acme": 3}}`)
	assert.True(errors.Is(err, ErrOverlayShape))

	_, err = LoadOverlay("imm.star", `partitions = {"xacme": {"acme": ("acme xreg0, simm3", [("simm3", 1)])}}`)
	assert.ErrorAs(err, new(ErrImmSlot))
	var ee ErrEntry
	assert.ErrorAs(err, &ee)
	assert.Equal("acme", ee.Opcode)

	_, err = LoadOverlay("shadow.star", `partitions = {"rv32i": {"acme": "acme xreg0"}}`)
	assert.ErrorAs(err, &oe)
	assert.Equal("shadow.star", oe.Name)
	assert.Equal(ErrPartitionDuplicate("rv32i"), oe.Err)

	_, err = LoadOverlay("missing.star", `partitions = {"xacme": {"acme": "acme xreg0, imm12"}}`)
	assert.True(errors.Is(err, ErrEntrySyntax))
}

func TestOverlayMerge(t *testing.T) {
	assert := assert.New(t)

	a := Overlay{"xa": {}}
	assert.NoError(a.Merge(Overlay{"xb": {}}))
	assert.Equal(2, len(a))
	assert.Equal(ErrPartitionDuplicate("xb"), a.Merge(Overlay{"xb": {}}))
}
