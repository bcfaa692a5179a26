package loader

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"

	"github.com/quillhw/omir/internal/ir"
)

var componentKinds = map[string]ir.OpKind{
	"instance": ir.KindInstance,
	"wire":     ir.KindWire,
	"reg":      ir.KindReg,
	"regreset": ir.KindRegReset,
	"node":     ir.KindNode,
}

// LoadFile reads and parses a design bundle. JSON bundles load through the
// same path, since JSON is valid CUE. Returns the design root and the
// circuit op it contains.
func LoadFile(path string) (design, circuit *ir.Op, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading design bundle: %w", err)
	}
	return LoadBytes(path, data)
}

// LoadBytes parses a design bundle from memory. filename is used for error
// positions only.
func LoadBytes(filename string, data []byte) (design, circuit *ir.Op, err error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(designSchema, cue.Filename("design-schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, nil, formatCUEError(err)
	}

	val := ctx.CompileBytes(data, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return nil, nil, formatCUEError(err)
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, nil, formatCUEError(err)
	}

	return buildDesign(unified.LookupPath(cue.ParsePath("circuit")))
}

func buildDesign(v cue.Value) (design, circuit *ir.Op, err error) {
	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return nil, nil, formatCUEError(err)
	}

	design = ir.NewDesign()
	circuit = ir.NewCircuit(ident(name))
	design.AddChild(circuit)

	if loc, err := lookupLoc(v); err != nil {
		return nil, nil, err
	} else if loc != nil {
		circuit.Loc = loc
	}
	if circuit.Annos, err = convertAnnotations(v); err != nil {
		return nil, nil, err
	}

	modsVal := v.LookupPath(cue.ParsePath("modules"))
	if modsVal.Exists() {
		iter, err := modsVal.List()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for iter.Next() {
			mod, err := buildModule(iter.Value())
			if err != nil {
				return nil, nil, err
			}
			circuit.AddChild(mod)
		}
	}

	anchorsVal := v.LookupPath(cue.ParsePath("anchors"))
	if anchorsVal.Exists() {
		iter, err := anchorsVal.List()
		if err != nil {
			return nil, nil, formatCUEError(err)
		}
		for iter.Next() {
			anchor, err := buildAnchor(iter.Value())
			if err != nil {
				return nil, nil, err
			}
			circuit.AddChild(anchor)
		}
	}

	return design, circuit, nil
}

func buildModule(v cue.Value) (*ir.Op, error) {
	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	mod := ir.NewOp(ir.KindModule, ident(name))

	if loc, err := lookupLoc(v); err != nil {
		return nil, err
	} else if loc != nil {
		mod.Loc = loc
	}
	if mod.Annos, err = convertAnnotations(v); err != nil {
		return nil, err
	}

	bodyVal := v.LookupPath(cue.ParsePath("body"))
	if bodyVal.Exists() {
		iter, err := bodyVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			comp, err := buildComponent(iter.Value())
			if err != nil {
				return nil, err
			}
			mod.AddChild(comp)
		}
	}

	return mod, nil
}

func buildComponent(v cue.Value) (*ir.Op, error) {
	kindStr, err := v.LookupPath(cue.ParsePath("kind")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	kind, ok := componentKinds[kindStr]
	if !ok {
		return nil, &LoadError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown component kind %q", kindStr),
			Pos:     v.Pos(),
		}
	}

	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	comp := ir.NewOp(kind, ident(name))

	if loc, err := lookupLoc(v); err != nil {
		return nil, err
	} else if loc != nil {
		comp.Loc = loc
	}
	if comp.Annos, err = convertAnnotations(v); err != nil {
		return nil, err
	}

	return comp, nil
}

func buildAnchor(v cue.Value) (*ir.Op, error) {
	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	modpath, err := stringList(v.LookupPath(cue.ParsePath("modpath")))
	if err != nil {
		return nil, err
	}
	namepath, err := stringList(v.LookupPath(cue.ParsePath("namepath")))
	if err != nil {
		return nil, err
	}
	if len(modpath) != len(namepath) {
		return nil, &LoadError{
			Field:   "anchor." + name,
			Message: fmt.Sprintf("modpath and namepath lengths differ (%d vs %d)", len(modpath), len(namepath)),
			Pos:     v.Pos(),
		}
	}

	syms := make([]ir.SymbolRefAttr, len(modpath))
	for i, m := range modpath {
		syms[i] = ir.SymbolRefAttr(ident(m))
	}
	names := make([]string, len(namepath))
	for i, n := range namepath {
		names[i] = ident(n)
	}
	return ir.NewNonLocalAnchor(ident(name), syms, names), nil
}

// convertAnnotations converts the optional `annotations` list of a design
// element into annotation records.
func convertAnnotations(v cue.Value) ([]ir.DictAttr, error) {
	annosVal := v.LookupPath(cue.ParsePath("annotations"))
	if !annosVal.Exists() {
		return nil, nil
	}
	iter, err := annosVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var annos []ir.DictAttr
	for iter.Next() {
		anno, err := convertDict(iter.Value())
		if err != nil {
			return nil, err
		}
		annos = append(annos, anno)
	}
	return annos, nil
}

func lookupLoc(v cue.Value) (ir.Loc, error) {
	infoVal := v.LookupPath(cue.ParsePath("info"))
	if !infoVal.Exists() {
		return nil, nil
	}
	return convertLoc(infoVal)
}

func stringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ident normalizes an identifier at the input boundary. Emitted paths embed
// these names verbatim, so normalization happens once, here.
func ident(s string) string {
	return norm.NFC.String(s)
}
