// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
	"slices"
	"strings"
)

// Extension is an ISA extension tag.
type Extension int

//go:generate go tool stringer -linecomment -type=Extension
const (
	EXT_I        = Extension(0) // I
	EXT_M        = Extension(1) // M
	EXT_A        = Extension(2) // A
	EXT_F        = Extension(3) // F
	EXT_D        = Extension(4) // D
	EXT_Q        = Extension(5) // Q
	EXT_C        = Extension(6) // C
	EXT_G        = Extension(7) // G
	EXT_ZICSR    = Extension(8) // Zicsr
	EXT_ZIFENCEI = Extension(9) // Zifencei
)

// Partition names.
const (
	PART_TRAP_RET    = "trap_ret"
	PART_RV32I       = "rv32i"
	PART_RV32M       = "rv32m"
	PART_RV32A       = "rv32a"
	PART_RV32F       = "rv32f"
	PART_RV32D       = "rv32d"
	PART_RV32Q       = "rv32q"
	PART_RV64I       = "rv64i"
	PART_RV64M       = "rv64m"
	PART_RV64A       = "rv64a"
	PART_RV64F       = "rv64f"
	PART_RV64D       = "rv64d"
	PART_RV64Q       = "rv64q"
	PART_RV_ZIFENCEI = "rv_zifencei"
	PART_RV_ZICSR    = "rv_zicsr"
)

var letterExtension = map[byte]Extension{
	'i': EXT_I,
	'm': EXT_M,
	'a': EXT_A,
	'f': EXT_F,
	'd': EXT_D,
	'q': EXT_Q,
	'c': EXT_C,
	'g': EXT_G,
}

var namedExtension = map[string]Extension{
	"zicsr":    EXT_ZICSR,
	"zifencei": EXT_ZIFENCEI,
}

// extensionPartition is the partition contributed by each extension, in
// the order they are added to the partition list.
var extensionPartition = []struct {
	ext  Extension
	part []string
}{
	{EXT_I, []string{PART_RV32I}},
	{EXT_M, []string{PART_RV32M}},
	{EXT_A, []string{PART_RV32A}},
	{EXT_F, []string{PART_RV32F}},
	{EXT_ZIFENCEI, []string{PART_RV_ZIFENCEI}},
	{EXT_ZICSR, []string{PART_RV_ZICSR}},
	{EXT_D, []string{PART_RV32D}},
	{EXT_Q, []string{PART_RV32Q}},
	{EXT_G, []string{PART_RV32I, PART_RV32A, PART_RV32F, PART_RV_ZIFENCEI, PART_RV_ZICSR, PART_RV32M}},
}

// ExtensionSet is a set of extension tags.
type ExtensionSet uint16

// Has returns true if ext is in the set.
func (set ExtensionSet) Has(ext Extension) bool {
	return set&(1<<ext) != 0
}

// With returns the set plus ext.
func (set ExtensionSet) With(ext Extension) ExtensionSet {
	return set | (1 << ext)
}

// Profile is a parsed ISA profile: a base width and a set of extensions.
type Profile struct {
	Width      int          // 32 or 64
	Extensions ExtensionSet // Requested extensions.
}

// ParseProfile parses a profile such as "RV64G", "rv32imaf" or
// "RV64IMAFD_Zicsr_Zifencei". Single letter extensions follow the base;
// multi-letter extensions are separated by underscores.
func ParseProfile(text string) (profile Profile, err error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(lower, "rv32"):
		profile.Width = 32
	case strings.HasPrefix(lower, "rv64"):
		profile.Width = 64
	default:
		err = ErrProfileBase(text)
		return
	}

	parts := strings.Split(lower[4:], "_")

	letters := parts[0]
	for n := 0; n < len(letters); n++ {
		if letters[n] == 'z' {
			// "rv64gzicsr" style, a multi-letter name without separator.
			parts = append(parts, letters[n:])
			break
		}
		ext, ok := letterExtension[letters[n]]
		if !ok {
			err = ErrProfileExtension(string(letters[n]))
			return
		}
		profile.Extensions = profile.Extensions.With(ext)
	}

	for _, name := range parts[1:] {
		if len(name) == 0 {
			continue
		}
		ext, ok := namedExtension[name]
		if !ok {
			err = ErrProfileExtension(name)
			return
		}
		profile.Extensions = profile.Extensions.With(ext)
	}

	if profile.Extensions == 0 {
		err = ErrProfileEmpty
		return
	}

	return
}

// MustParseProfile is ParseProfile, panicking on error.
func MustParseProfile(text string) Profile {
	profile, err := ParseProfile(text)
	if err != nil {
		panic(err)
	}
	return profile
}

// Partitions returns the partition names selected by the profile, in load
// order. For 64-bit profiles every partition whose name contains "32" is
// followed by its "64" counterpart.
func (profile Profile) Partitions() (parts []string) {
	parts = []string{PART_TRAP_RET}
	for _, ep := range extensionPartition {
		if !profile.Extensions.Has(ep.ext) {
			continue
		}
		for _, part := range ep.part {
			if !slices.Contains(parts, part) {
				parts = append(parts, part)
			}
		}
	}

	if profile.Width == 64 {
		parts = widen(parts)
	}

	return
}

// widen follows each "32" partition with its "64" duplicate.
func widen(parts []string) (wide []string) {
	for _, part := range parts {
		wide = append(wide, part)
		if strings.Contains(part, "32") {
			wide = append(wide, strings.ReplaceAll(part, "32", "64"))
		}
	}
	return
}

// String returns the canonical profile name, such as "RV64IMAFD_Zicsr".
func (profile Profile) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "RV%d", profile.Width)
	for ext := EXT_I; ext <= EXT_G; ext++ {
		if profile.Extensions.Has(ext) {
			buf.WriteString(ext.String())
		}
	}
	for _, ext := range []Extension{EXT_ZICSR, EXT_ZIFENCEI} {
		if profile.Extensions.Has(ext) {
			buf.WriteString("_")
			buf.WriteString(ext.String())
		}
	}
	return buf.String()
}
