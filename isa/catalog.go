// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/rvfuzz/internal"
)

// Catalog is the flat opcode table of a composed ISA.
type Catalog struct {
	Profile    Profile  // Profile the catalog was composed from.
	Partitions []string // Partition names, in load order.

	parts   []Partition
	opcodes []string          // Opcodes in sampling order.
	entries map[string]Entry  // Opcode to entry.
	owner   map[string]string // Opcode to partition name.
}

// Compose resolves a profile into its catalog. Overlay partitions are
// loaded after the profile's own partitions, and are widened to 64 bits
// in the same way.
func Compose(profile Profile, overlays map[string]Partition) (cat *Catalog, err error) {
	if profile.Extensions == 0 {
		err = ErrProfileEmpty
		return
	}

	names := profile.Partitions()
	if len(names) == 1 && len(overlays) == 0 {
		// Only the trap return partition.
		err = ErrProfileEmpty
		return
	}

	var extra []string
	for _, name := range slices.Sorted(maps.Keys(overlays)) {
		if _, ok := builtin[name]; ok {
			err = ErrPartitionDuplicate(name)
			return
		}
		extra = append(extra, name)
	}
	if profile.Width == 64 {
		extra = widen(extra)
	}
	for _, name := range extra {
		if _, ok := overlays[name]; !ok {
			// 64-bit counterpart the overlay does not define.
			continue
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	cat = &Catalog{
		Profile: profile,
		entries: map[string]Entry{},
		owner:   map[string]string{},
	}

	for _, name := range names {
		part, ok := overlays[name]
		if !ok {
			part, ok = builtin[name]
		}
		if !ok {
			cat = nil
			err = ErrPartitionUnknown(name)
			return
		}
		cat.Partitions = append(cat.Partitions, name)
		cat.parts = append(cat.parts, part)
	}

	for n, part := range cat.parts {
		name := cat.Partitions[n]
		for opcode, entry := range part.All() {
			if prior, ok := cat.owner[opcode]; ok {
				cat = nil
				err = ErrOpcodeCollision{Opcode: opcode, Partitions: []string{prior, name}}
				return
			}
			cat.owner[opcode] = name
			cat.entries[opcode] = entry
			cat.opcodes = append(cat.opcodes, opcode)
		}
	}

	if len(cat.opcodes) == 0 {
		cat = nil
		err = ErrProfileEmpty
		return
	}

	return
}

// All iterates over every opcode and entry, in partition load order.
func (cat *Catalog) All() iter.Seq2[string, Entry] {
	seqs := make([]iter.Seq2[string, Entry], 0, len(cat.parts))
	for _, part := range cat.parts {
		seqs = append(seqs, part.All())
	}
	return internal.IterSeq2Concat(seqs...)
}

// Lookup returns the entry of an opcode.
func (cat *Catalog) Lookup(opcode string) (entry Entry, ok bool) {
	entry, ok = cat.entries[opcode]
	return
}

// Partition returns the name of the partition defining opcode.
func (cat *Catalog) Partition(opcode string) (name string, ok bool) {
	name, ok = cat.owner[opcode]
	return
}

// Opcodes returns the opcodes, in sampling order.
func (cat *Catalog) Opcodes() []string {
	return slices.Clone(cat.opcodes)
}

// Len returns the number of opcodes.
func (cat *Catalog) Len() int {
	return len(cat.opcodes)
}

// String summarizes the catalog.
func (cat *Catalog) String() string {
	return f("%v: %d opcodes from %v", cat.Profile, len(cat.opcodes), strings.Join(cat.Partitions, " "))
}
