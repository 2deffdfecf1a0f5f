package isa

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewImmSlot(t *testing.T) {
	assert := assert.New(t)

	slot, err := NewImmSlot("imm12", 4)
	assert.NoError(err)
	assert.Equal(ImmSlot{Name: "imm12", Signed: true, Width: 12, Align: 4}, slot)
	assert.Equal(11, slot.Bits())

	slot, err = NewImmSlot("uimm20", 1)
	assert.NoError(err)
	assert.False(slot.Signed)
	assert.Equal(20, slot.Bits())

	for _, bad := range []string{"simm12", "imm", "uimm0", "imm1", "imm65", "offset"} {
		_, err = NewImmSlot(bad, 1)
		assert.Equal(ErrImmSlot(bad), err, bad)
	}
}

func TestNewEntry(t *testing.T) {
	assert := assert.New(t)

	entry, err := NewEntry("sw xreg0, imm12(xreg1)", imm12w)
	assert.NoError(err)
	assert.Equal([]string{"xreg0", "xreg1"}, entry.XRegs)
	assert.Nil(entry.FRegs)
	assert.Equal([]ImmSlot{imm12w}, entry.Imms)
	assert.Nil(entry.Symbols)
	assert.Equal([]string{"xreg0", "xreg1", "imm12"}, entry.Slots())

	entry, err = NewEntry("fmadd.s freg0, freg1, freg2, freg0")
	assert.NoError(err)
	assert.Equal([]string{"freg0", "freg1", "freg2"}, entry.FRegs)

	entry, err = NewEntry("beq xreg0, xreg1, symbol")
	assert.NoError(err)
	assert.Equal([]string{"symbol"}, entry.Symbols)

	// Immediate in the template but not described.
	_, err = NewEntry("addi xreg0, xreg1, imm12")
	assert.True(errors.Is(err, ErrEntrySyntax))

	// Immediate described but not in the template.
	_, err = NewEntry("add xreg0, xreg1, xreg2", imm12)
	assert.True(errors.Is(err, ErrEntrySyntax))
}

func TestSubstitute(t *testing.T) {
	assert := assert.New(t)

	values := map[string]string{
		"xreg0": "x5",
		"xreg1": "x10",
		"imm12": "-16",
	}

	assert.Equal("lw x5, -16(x10)", Substitute("lw xreg0, imm12(xreg1)", values))
	assert.Equal("fcvt.s.w f1, x5", Substitute("fcvt.s.w f1, xreg0", values))
	assert.Equal("xreg01", Substitute("xreg01", values))
}

func TestBuiltin(t *testing.T) {
	assert := assert.New(t)

	for _, name := range BuiltinNames() {
		part, ok := Builtin(name)
		assert.True(ok, name)
		assert.NotEmpty(part, name)

		// Every 32-bit partition has a 64-bit counterpart.
		if strings.Contains(name, "32") {
			_, ok = Builtin(strings.ReplaceAll(name, "32", "64"))
			assert.True(ok, name)
		}
	}

	_, ok := Builtin("rv128i")
	assert.False(ok)

	// Copies are independent.
	part, _ := Builtin(PART_RV_ZICSR)
	delete(part, "csrrw")
	again, _ := Builtin(PART_RV_ZICSR)
	_, ok = again["csrrw"]
	assert.True(ok)
}

func TestCompose(t *testing.T) {
	assert := assert.New(t)

	cat, err := Compose(MustParseProfile("RV64G"), nil)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Less(0, cat.Len())
	for _, part := range []string{PART_RV32I, PART_RV64I, PART_RV32M, PART_RV64M, PART_RV32A, PART_RV64A, PART_RV32F, PART_RV64F} {
		assert.True(slices.Contains(cat.Partitions, part), part)
	}

	entry, ok := cat.Lookup("addiw")
	assert.True(ok)
	assert.Equal("addiw xreg0, xreg1, imm12", entry.Syntax)

	name, ok := cat.Partition("addiw")
	assert.True(ok)
	assert.Equal(PART_RV64I, name)

	name, ok = cat.Partition("mret")
	assert.True(ok)
	assert.Equal(PART_TRAP_RET, name)

	_, ok = cat.Lookup("fadd.d")
	assert.False(ok)

	// Sampling order is partition order, then opcode name.
	opcodes := cat.Opcodes()
	assert.Equal([]string{"mret", "sret"}, opcodes[:2])
	assert.Equal(cat.Len(), len(opcodes))

	var all []string
	for opcode := range cat.All() {
		all = append(all, opcode)
	}
	assert.Equal(opcodes, all)

	assert.Contains(cat.String(), "RV64G")
}

func TestComposeDeterministic(t *testing.T) {
	assert := assert.New(t)

	a, err := Compose(MustParseProfile("RV64IMAFDQ_Zicsr_Zifencei"), nil)
	assert.NoError(err)
	b, err := Compose(MustParseProfile("RV64IMAFDQ_Zicsr_Zifencei"), nil)
	assert.NoError(err)

	assert.Equal(a.Opcodes(), b.Opcodes())
}

func TestComposeErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Compose(Profile{Width: 64}, nil)
	assert.True(errors.Is(err, ErrProfileEmpty))

	// C alone contributes no partition.
	_, err = Compose(MustParseProfile("RV64C"), nil)
	assert.True(errors.Is(err, ErrProfileEmpty))

	// Overlays may not shadow a built-in partition.
	_, err = Compose(MustParseProfile("RV32I"), map[string]Partition{
		PART_RV32I: {},
	})
	assert.Equal(ErrPartitionDuplicate(PART_RV32I), err)

	// Colliding opcodes.
	acme := mustPartition(one("add", "add xreg0, xreg1, xreg2"))
	_, err = Compose(MustParseProfile("RV32I"), map[string]Partition{
		"xacme": acme,
	})
	var collision ErrOpcodeCollision
	assert.ErrorAs(err, &collision)
	assert.Equal("add", collision.Opcode)
	assert.Equal([]string{PART_RV32I, "xacme"}, collision.Partitions)
}

func TestComposeOverlay(t *testing.T) {
	assert := assert.New(t)

	overlay := map[string]Partition{
		"rv32xacme": mustPartition(one("acme.mix", "acme.mix xreg0, xreg1, xreg2")),
		"rv64xacme": mustPartition(one("acme.mixw", "acme.mixw xreg0, xreg1, xreg2")),
	}

	cat, err := Compose(MustParseProfile("RV64I"), overlay)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]string{PART_TRAP_RET, PART_RV32I, PART_RV64I, "rv32xacme", "rv64xacme"}, cat.Partitions)
	_, ok := cat.Lookup("acme.mixw")
	assert.True(ok)

	// A 32-bit overlay without a 64-bit counterpart composes on 64-bit
	// profiles too.
	only32 := map[string]Partition{"rv32xacme": overlay["rv32xacme"]}
	for _, profile := range []string{"RV32I", "RV64I"} {
		cat, err = Compose(MustParseProfile(profile), only32)
		if !assert.NoError(err, profile) {
			continue
		}
		assert.Contains(cat.Partitions, "rv32xacme", profile)
		assert.NotContains(cat.Partitions, "rv64xacme", profile)
		part, ok := cat.Partition("acme.mix")
		assert.True(ok, profile)
		assert.Equal("rv32xacme", part, profile)
	}

	// Overlays alone are enough for a catalog.
	cat, err = Compose(MustParseProfile("RV32C"), map[string]Partition{"xacme": overlay["rv32xacme"]})
	assert.NoError(err)
	assert.Equal(3, cat.Len())
}
