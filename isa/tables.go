package isa

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/rvfuzz/internal"
)

// Partition maps opcode names to their entries.
type Partition map[string]Entry

// All iterates the partition in opcode name order.
func (part Partition) All() iter.Seq2[string, Entry] {
	return internal.SortedAll(part)
}

// Opcodes returns the opcode names in sorted order.
func (part Partition) Opcodes() []string {
	return slices.Sorted(maps.Keys(part))
}

func mustImmSlot(name string, align uint64) ImmSlot {
	slot, err := NewImmSlot(name, align)
	if err != nil {
		panic(err)
	}
	return slot
}

// Immediate slots, by access alignment.
var (
	imm12  = mustImmSlot("imm12", 1)
	imm12h = mustImmSlot("imm12", 2)
	imm12w = mustImmSlot("imm12", 4)
	imm12d = mustImmSlot("imm12", 8)
	imm12q = mustImmSlot("imm12", 16)
	uimm5  = mustImmSlot("uimm5", 1)
	uimm20 = mustImmSlot("uimm20", 1)

	noImm    = []ImmSlot(nil)
	imm12any = []ImmSlot{imm12}
)

// opdef is one opcode in a table definition.
type opdef struct {
	name   string
	syntax string
	imms   []ImmSlot
}

// family expands a syntax format, with %s as the opcode, over a list of opcodes.
func family(format string, imms []ImmSlot, names ...string) (defs []opdef) {
	for _, name := range names {
		defs = append(defs, opdef{name: name, syntax: fmt.Sprintf(format, name), imms: imms})
	}
	return
}

// one defines a single opcode.
func one(name, syntax string, imms ...ImmSlot) []opdef {
	return []opdef{{name: name, syntax: syntax, imms: imms}}
}

func mustPartition(groups ...[]opdef) (part Partition) {
	part = Partition{}
	for _, group := range groups {
		for _, def := range group {
			if _, ok := part[def.name]; ok {
				panic(fmt.Sprintf("opcode %v duplicated", def.name))
			}
			entry, err := NewEntry(def.syntax, def.imms...)
			if err != nil {
				panic(ErrEntry{Opcode: def.name, Err: err})
			}
			part[def.name] = entry
		}
	}
	return
}

const (
	fmtRRR  = "%s xreg0, xreg1, xreg2"
	fmtRRI  = "%s xreg0, xreg1, imm12"
	fmtRRS  = "%s xreg0, xreg1, uimm5"
	fmtBr   = "%s xreg0, xreg1, symbol"
	fmtMem  = "%s xreg0, imm12(xreg1)"
	fmtFLd  = "%s freg0, imm12(xreg0)"
	fmtAmo  = "%s xreg0, xreg2, (xreg1)"
	fmtLr   = "%s xreg0, (xreg1)"
	fmtF3   = "%s freg0, freg1, freg2"
	fmtF4   = "%s freg0, freg1, freg2, freg3"
	fmtF2   = "%s freg0, freg1"
	fmtFX   = "%s xreg0, freg0"
	fmtXF   = "%s freg0, xreg0"
	fmtFCmp = "%s xreg0, freg0, freg1"
)

// builtin holds the partitions known without overlays.
var builtin = map[string]Partition{
	PART_TRAP_RET: mustPartition(
		one("mret", "mret"),
		one("sret", "sret"),
	),
	PART_RV32I: mustPartition(
		one("lui", "lui xreg0, uimm20", uimm20),
		one("auipc", "auipc xreg0, uimm20", uimm20),
		one("jal", "jal xreg0, symbol"),
		one("jalr", "jalr xreg0, imm12(xreg1)", imm12),
		family(fmtBr, noImm, "beq", "bne", "blt", "bge", "bltu", "bgeu"),
		family(fmtMem, imm12any, "lb", "lbu"),
		family(fmtMem, []ImmSlot{imm12h}, "lh", "lhu"),
		family(fmtMem, []ImmSlot{imm12w}, "lw"),
		family(fmtMem, imm12any, "sb"),
		family(fmtMem, []ImmSlot{imm12h}, "sh"),
		family(fmtMem, []ImmSlot{imm12w}, "sw"),
		family(fmtRRI, imm12any, "addi", "slti", "sltiu", "xori", "ori", "andi"),
		family(fmtRRS, []ImmSlot{uimm5}, "slli", "srli", "srai"),
		family(fmtRRR, noImm, "add", "sub", "sll", "slt", "sltu", "xor", "srl", "sra", "or", "and"),
		one("fence", "fence"),
	),
	PART_RV64I: mustPartition(
		family(fmtMem, []ImmSlot{imm12w}, "lwu"),
		family(fmtMem, []ImmSlot{imm12d}, "ld"),
		family(fmtMem, []ImmSlot{imm12d}, "sd"),
		family(fmtRRI, imm12any, "addiw"),
		family(fmtRRS, []ImmSlot{uimm5}, "slliw", "srliw", "sraiw"),
		family(fmtRRR, noImm, "addw", "subw", "sllw", "srlw", "sraw"),
	),
	PART_RV32M: mustPartition(
		family(fmtRRR, noImm, "mul", "mulh", "mulhsu", "mulhu", "div", "divu", "rem", "remu"),
	),
	PART_RV64M: mustPartition(
		family(fmtRRR, noImm, "mulw", "divw", "divuw", "remw", "remuw"),
	),
	PART_RV32A: mustPartition(
		family(fmtLr, noImm, "lr.w"),
		family(fmtAmo, noImm, "sc.w", "amoswap.w", "amoadd.w", "amoxor.w", "amoand.w",
			"amoor.w", "amomin.w", "amomax.w", "amominu.w", "amomaxu.w"),
	),
	PART_RV64A: mustPartition(
		family(fmtLr, noImm, "lr.d"),
		family(fmtAmo, noImm, "sc.d", "amoswap.d", "amoadd.d", "amoxor.d", "amoand.d",
			"amoor.d", "amomin.d", "amomax.d", "amominu.d", "amomaxu.d"),
	),
	PART_RV32F: mustPartition(
		family(fmtFLd, []ImmSlot{imm12w}, "flw", "fsw"),
		family(fmtF4, noImm, "fmadd.s", "fmsub.s", "fnmsub.s", "fnmadd.s"),
		family(fmtF3, noImm, "fadd.s", "fsub.s", "fmul.s", "fdiv.s",
			"fsgnj.s", "fsgnjn.s", "fsgnjx.s", "fmin.s", "fmax.s"),
		family(fmtF2, noImm, "fsqrt.s"),
		family(fmtFX, noImm, "fcvt.w.s", "fcvt.wu.s", "fmv.x.w", "fclass.s"),
		family(fmtXF, noImm, "fcvt.s.w", "fcvt.s.wu", "fmv.w.x"),
		family(fmtFCmp, noImm, "feq.s", "flt.s", "fle.s"),
	),
	PART_RV64F: mustPartition(
		family(fmtFX, noImm, "fcvt.l.s", "fcvt.lu.s"),
		family(fmtXF, noImm, "fcvt.s.l", "fcvt.s.lu"),
	),
	PART_RV32D: mustPartition(
		family(fmtFLd, []ImmSlot{imm12d}, "fld", "fsd"),
		family(fmtF4, noImm, "fmadd.d", "fmsub.d", "fnmsub.d", "fnmadd.d"),
		family(fmtF3, noImm, "fadd.d", "fsub.d", "fmul.d", "fdiv.d",
			"fsgnj.d", "fsgnjn.d", "fsgnjx.d", "fmin.d", "fmax.d"),
		family(fmtF2, noImm, "fsqrt.d", "fcvt.s.d", "fcvt.d.s"),
		family(fmtFX, noImm, "fcvt.w.d", "fcvt.wu.d", "fclass.d"),
		family(fmtXF, noImm, "fcvt.d.w", "fcvt.d.wu"),
		family(fmtFCmp, noImm, "feq.d", "flt.d", "fle.d"),
	),
	PART_RV64D: mustPartition(
		family(fmtFX, noImm, "fcvt.l.d", "fcvt.lu.d", "fmv.x.d"),
		family(fmtXF, noImm, "fcvt.d.l", "fcvt.d.lu", "fmv.d.x"),
	),
	PART_RV32Q: mustPartition(
		family(fmtFLd, []ImmSlot{imm12q}, "flq", "fsq"),
		family(fmtF4, noImm, "fmadd.q", "fmsub.q", "fnmsub.q", "fnmadd.q"),
		family(fmtF3, noImm, "fadd.q", "fsub.q", "fmul.q", "fdiv.q",
			"fsgnj.q", "fsgnjn.q", "fsgnjx.q", "fmin.q", "fmax.q"),
		family(fmtF2, noImm, "fsqrt.q", "fcvt.s.q", "fcvt.q.s", "fcvt.d.q", "fcvt.q.d"),
		family(fmtFX, noImm, "fcvt.w.q", "fcvt.wu.q", "fclass.q"),
		family(fmtXF, noImm, "fcvt.q.w", "fcvt.q.wu"),
		family(fmtFCmp, noImm, "feq.q", "flt.q", "fle.q"),
	),
	PART_RV64Q: mustPartition(
		family(fmtFX, noImm, "fcvt.l.q", "fcvt.lu.q"),
		family(fmtXF, noImm, "fcvt.q.l", "fcvt.q.lu"),
	),
	PART_RV_ZIFENCEI: mustPartition(
		one("fence.i", "fence.i"),
	),
	PART_RV_ZICSR: mustPartition(
		one("csrrw", "csrrw xreg0, fcsr, xreg1"),
		one("csrrs", "csrrs xreg0, frm, xreg1"),
		one("csrrc", "csrrc xreg0, fflags, xreg1"),
		one("csrrwi", "csrrwi xreg0, fcsr, uimm5", uimm5),
		one("csrrsi", "csrrsi xreg0, frm, uimm5", uimm5),
		one("csrrci", "csrrci xreg0, fflags, uimm5", uimm5),
	),
}

// Builtin returns a copy of the named built-in partition.
func Builtin(name string) (part Partition, ok bool) {
	src, ok := builtin[name]
	if !ok {
		return
	}
	part = maps.Clone(src)
	return
}

// BuiltinNames returns the names of all built-in partitions.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtin))
}
