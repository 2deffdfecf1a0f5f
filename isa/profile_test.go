package isa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProfile(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text     string
		width    int
		has      []Extension
		canon    string
		partsLen int
	}){
		{"RV64G", 64, []Extension{EXT_G}, "RV64G", 11},
		{"rv32imaf", 32, []Extension{EXT_I, EXT_M, EXT_A, EXT_F}, "RV32IMAF", 5},
		{"RV64IMAFD_Zicsr_Zifencei", 64, []Extension{EXT_I, EXT_M, EXT_A, EXT_F, EXT_D, EXT_ZICSR, EXT_ZIFENCEI}, "RV64IMAFD_Zicsr_Zifencei", 13},
		{"rv64gzicsr", 64, []Extension{EXT_G, EXT_ZICSR}, "RV64G_Zicsr", 11},
		{"RV64GC", 64, []Extension{EXT_G, EXT_C}, "RV64CG", 11},
	}

	for _, entry := range table {
		profile, err := ParseProfile(entry.text)
		assert.NoError(err, entry.text)
		assert.Equal(entry.width, profile.Width, entry.text)
		for _, ext := range entry.has {
			assert.True(profile.Extensions.Has(ext), "%v %v", entry.text, ext)
		}
		assert.Equal(entry.canon, profile.String(), entry.text)
		assert.Equal(entry.partsLen, len(profile.Partitions()), entry.text)
	}
}

func TestParseProfileErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseProfile("x86")
	assert.ErrorAs(err, new(ErrProfileBase))

	_, err = ParseProfile("RV64")
	assert.True(errors.Is(err, ErrProfileEmpty))

	_, err = ParseProfile("RV64IMB")
	var ext ErrProfileExtension
	assert.ErrorAs(err, &ext)
	assert.Equal(ErrProfileExtension("b"), ext)

	_, err = ParseProfile("RV64I_Zbb")
	assert.ErrorAs(err, &ext)
	assert.Equal(ErrProfileExtension("zbb"), ext)
}

func TestPartitions(t *testing.T) {
	assert := assert.New(t)

	rv32 := MustParseProfile("RV32G").Partitions()
	assert.Equal([]string{
		PART_TRAP_RET,
		PART_RV32I,
		PART_RV32A,
		PART_RV32F,
		PART_RV_ZIFENCEI,
		PART_RV_ZICSR,
		PART_RV32M,
	}, rv32)

	rv64 := MustParseProfile("RV64G").Partitions()
	assert.Equal([]string{
		PART_TRAP_RET,
		PART_RV32I, PART_RV64I,
		PART_RV32A, PART_RV64A,
		PART_RV32F, PART_RV64F,
		PART_RV_ZIFENCEI,
		PART_RV_ZICSR,
		PART_RV32M, PART_RV64M,
	}, rv64)

	// I and G both name rv32i; it is loaded once, at its first position.
	both := MustParseProfile("RV32IG").Partitions()
	assert.Equal(PART_RV32I, both[1])
	count := 0
	for _, part := range both {
		if part == PART_RV32I {
			count++
		}
	}
	assert.Equal(1, count)

	// D does not drag in F.
	d := MustParseProfile("RV32D").Partitions()
	assert.Equal([]string{PART_TRAP_RET, PART_RV32D}, d)
}
