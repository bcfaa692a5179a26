package loader

import (
	"cuelang.org/go/cue"

	"github.com/quillhw/omir/internal/ir"
)

// convertAttr converts a concrete CUE data value into an attribute tree.
// Record entry order follows the source document.
func convertAttr(v cue.Value) (ir.Attr, error) {
	switch v.Kind() {
	case cue.NullKind:
		return ir.NullAttr{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.BoolAttr(b), nil
	case cue.IntKind:
		i, err := v.Int(nil)
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.IntAttr{V: i}, nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.FloatAttr(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.StringAttr(s), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var arr ir.ArrayAttr
		for iter.Next() {
			el, err := convertAttr(iter.Value())
			if err != nil {
				return nil, err
			}
			arr = append(arr, el)
		}
		return arr, nil
	case cue.StructKind:
		return convertDict(v)
	default:
		return nil, &LoadError{
			Field:   "value",
			Message: "unsupported value kind " + v.Kind().String(),
			Pos:     v.Pos(),
		}
	}
}

// convertDict converts a CUE struct into a DictAttr, applying the wire
// conventions for special members:
//
//   - `info` entries matching the location shape become location attributes
//   - `circt.nonlocal` string entries become symbol references
//   - `omir.tracker` true entries become unit markers
func convertDict(v cue.Value) (ir.DictAttr, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var dict ir.DictAttr
	for iter.Next() {
		name := iter.Label()
		fv := iter.Value()

		if special, ok, err := convertSpecialEntry(name, fv); err != nil {
			return nil, err
		} else if ok {
			dict = append(dict, ir.E(name, special))
			continue
		}

		attr, err := convertAttr(fv)
		if err != nil {
			return nil, err
		}
		dict = append(dict, ir.E(name, attr))
	}
	return dict, nil
}

func convertSpecialEntry(name string, v cue.Value) (ir.Attr, bool, error) {
	switch name {
	case "info":
		loc, err := convertLoc(v)
		if err != nil || loc == nil {
			return nil, false, err
		}
		return loc, true, nil
	case "circt.nonlocal":
		if v.Kind() != cue.StringKind {
			return nil, false, nil
		}
		s, err := v.String()
		if err != nil {
			return nil, false, formatCUEError(err)
		}
		return ir.SymbolRefAttr(s), true, nil
	case "omir.tracker":
		if v.Kind() != cue.BoolKind {
			return nil, false, nil
		}
		b, err := v.Bool()
		if err != nil || !b {
			return nil, false, formatCUEError(err)
		}
		return ir.UnitAttr{}, true, nil
	}
	return nil, false, nil
}

// convertLoc parses the location shape: a {file, line, col} struct or a
// list of them (fused). Returns nil, nil when v has some other shape, so
// callers can fall back to plain attribute conversion.
func convertLoc(v cue.Value) (ir.Loc, error) {
	switch v.Kind() {
	case cue.StructKind:
		fileVal := v.LookupPath(cue.ParsePath("file"))
		if !fileVal.Exists() {
			return nil, nil
		}
		file, err := fileVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		line, err := v.LookupPath(cue.ParsePath("line")).Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		col, err := v.LookupPath(cue.ParsePath("col")).Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.FileLineColLoc{File: file, Line: int(line), Col: int(col)}, nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var fused ir.FusedLoc
		for iter.Next() {
			sub, err := convertLoc(iter.Value())
			if err != nil {
				return nil, err
			}
			if sub == nil {
				return nil, nil
			}
			fused = append(fused, sub)
		}
		return fused, nil
	}
	return nil, nil
}
