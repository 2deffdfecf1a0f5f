// Package isa describes the RISC-V instruction tables used by the
// generator.
//
// A Profile such as "RV64G" is resolved into an ordered list of partition
// names (rv32i, rv64i, rv_zicsr, ...). Compose merges the partitions into a
// Catalog mapping each opcode to an Entry: its syntax template and the
// register, float register, immediate and symbol placeholders it carries.
//
// A Registry of Classifiers decides the control/memory Category of an
// opcode and may expand it into several output lines, for example loading
// a symbol address before an indirect jump.
//
// Custom partitions may be supplied as Starlark overlays, see LoadOverlay.
package isa
