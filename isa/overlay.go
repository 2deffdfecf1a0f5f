package isa

import (
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Overlay is a set of partitions loaded from a script.
type Overlay map[string]Partition

// Merge adds the partitions of other. A partition name defined twice is
// an error.
func (overlay Overlay) Merge(other Overlay) (err error) {
	for name, part := range other {
		if _, ok := overlay[name]; ok {
			err = ErrPartitionDuplicate(name)
			return
		}
		overlay[name] = part
	}
	return
}

// LoadOverlay executes a Starlark script and reads its global
// 'partitions' dictionary. Each partition maps opcode names either to a
// syntax template string, or to a (syntax, [(imm_name, align), ...])
// tuple:
//
//	partitions = {
//	    "rv32xacme": {
//	        "acme.mix": "acme.mix xreg0, xreg1, xreg2",
//	        "acme.ld": ("acme.ld xreg0, imm12(xreg1)", [("imm12", 4)]),
//	    },
//	    "rv64xacme": {},
//	}
//
// On 64-bit profiles the "rv64" counterpart of an "rv32" partition is
// composed when the overlay defines it, and skipped otherwise. Names of
// built-in partitions are rejected.
func LoadOverlay(name string, src any) (overlay Overlay, err error) {
	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, name, src, nil)
	if err != nil {
		err = ErrOverlay{Name: name, Err: err}
		return
	}

	value, ok := globals["partitions"]
	if !ok {
		err = ErrOverlay{Name: name, Err: ErrOverlayShape}
		return
	}

	dict, ok := value.(*starlark.Dict)
	if !ok {
		err = ErrOverlay{Name: name, Err: ErrOverlayShape}
		return
	}

	overlay = Overlay{}
	for _, item := range dict.Items() {
		part_name, ok := starlark.AsString(item[0])
		if !ok {
			overlay = nil
			err = ErrOverlay{Name: name, Err: ErrOverlayShape}
			return
		}

		if slices.Contains(BuiltinNames(), part_name) {
			overlay = nil
			err = ErrOverlay{Name: name, Err: ErrPartitionDuplicate(part_name)}
			return
		}

		opcodes, ok := item[1].(*starlark.Dict)
		if !ok {
			overlay = nil
			err = ErrOverlay{Name: name, Err: ErrOverlayShape}
			return
		}

		part := Partition{}
		for _, op := range opcodes.Items() {
			opcode, ok := starlark.AsString(op[0])
			if !ok {
				overlay = nil
				err = ErrOverlay{Name: name, Err: ErrOverlayShape}
				return
			}

			var entry Entry
			entry, err = overlayEntry(op[1])
			if err != nil {
				overlay = nil
				err = ErrOverlay{Name: name, Err: ErrEntry{Opcode: opcode, Err: err}}
				return
			}
			part[opcode] = entry
		}

		overlay[part_name] = part
	}

	return
}

// overlayEntry converts one opcode value of an overlay.
func overlayEntry(value starlark.Value) (entry Entry, err error) {
	switch v := value.(type) {
	case starlark.String:
		return NewEntry(string(v))
	case starlark.Tuple:
		if len(v) != 2 {
			err = ErrOverlayShape
			return
		}
		text, ok := starlark.AsString(v[0])
		if !ok {
			err = ErrOverlayShape
			return
		}
		var imms []ImmSlot
		imms, err = overlayImms(v[1])
		if err != nil {
			return
		}
		return NewEntry(text, imms...)
	}

	err = ErrOverlayShape
	return
}

// overlayImms converts a list of (name, align) tuples.
func overlayImms(value starlark.Value) (imms []ImmSlot, err error) {
	iterable, ok := value.(starlark.Iterable)
	if !ok {
		err = ErrOverlayShape
		return
	}

	it := iterable.Iterate()
	defer it.Done()

	var x starlark.Value
	for it.Next(&x) {
		pair, ok := x.(starlark.Tuple)
		if !ok || len(pair) != 2 {
			err = ErrOverlayShape
			return
		}
		name, ok := starlark.AsString(pair[0])
		if !ok {
			err = ErrOverlayShape
			return
		}
		var align int
		align, err = starlark.AsInt32(pair[1])
		if err != nil {
			return
		}
		if align < 0 {
			err = ErrOverlayShape
			return
		}
		var slot ImmSlot
		slot, err = NewImmSlot(name, uint64(align))
		if err != nil {
			return
		}
		imms = append(imms, slot)
	}

	return
}
