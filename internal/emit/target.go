package emit

import (
	"fmt"
	"strings"

	"github.com/quillhw/omir/internal/ir"
	"github.com/quillhw/omir/internal/jsonw"
)

// deletedTolerantTargets are the target types that refer to signals which
// may legitimately vanish during optimization; a missing tracker degrades
// to the OMDeleted sentinel. Every other type denotes a structural entity
// whose removal is a hard failure.
var deletedTolerantTargets = map[string]bool{
	"OMReferenceTarget":       true,
	"OMMemberReferenceTarget": true,
	"OMMemberInstanceTarget":  true,
}

// emitTrackedTarget resolves a tracked-target record into the fully
// qualified hierarchical path string `Type:~Top|<path>` and writes it as a
// JSON string. Every module symbol embedded in the path goes through the
// interner; every instance and component named in the path is marked
// don't-touch, since the emitted text refers to it verbatim.
func (e *emitter) emitTrackedTarget(node ir.DictAttr, w *jsonw.Writer) {
	id, ok := node.GetInt("id")
	if !ok {
		e.error(e.circuit.Loc, "tracked OMIR target missing `id` integer field",
			attrNote(node))
		w.String("<error>")
		return
	}

	typ, ok := node.GetString("type")
	if !ok {
		e.error(e.circuit.Loc, "tracked OMIR target missing `type` string field",
			attrNote(node))
		w.String("<error>")
		return
	}

	// Find the tracker for this target, and handle the case where the
	// tracked operation has been deleted since annotation time.
	tr, found := tracker{}, false
	if id.IsInt64() {
		tr, found = e.trackers[id.Int64()]
	}
	if !found {
		if deletedTolerantTargets[typ] {
			w.String("OMDeleted")
			return
		}
		e.error(e.circuit.Loc,
			fmt.Sprintf("tracked OMIR target of type `%s` was deleted", typ),
			typ+" should never be deleted", attrNote(node))
		w.String("<error>")
		return
	}

	var target strings.Builder
	target.WriteString(typ)
	target.WriteString(":~")
	target.WriteString(e.circuit.Name)
	target.WriteByte('|')

	// Serialize the local or non-local module/instance hierarchy path.
	if tr.nla != nil {
		var instName string
		for i := range tr.nla.Modpath {
			sym := tr.nla.Modpath[i]
			name := tr.nla.Namepath[i]
			module := e.symtbl.Lookup(string(sym))
			if i > 0 {
				target.WriteByte('/')
			}
			if instName != "" {
				target.WriteString(instName)
				target.WriteByte(':')
			}
			target.WriteString(e.addSymbol(sym))
			instName = name

			// The path names this instance verbatim; protect it.
			if module != nil {
				module.Walk(func(op *ir.Op) {
					if op.Kind == ir.KindInstance && op.Name == name {
						op.AddDontTouch()
					}
				})
			}
		}
	} else {
		module := tr.op
		if module.Kind != ir.KindModule {
			module = tr.op.EnclosingModule()
		}
		if module == nil {
			e.errorf(tr.op.Loc, "invalid target for `%s` OMIR", typ)
			w.String("<error>")
			return
		}
		target.WriteString(e.addOpSymbol(module))
	}

	// Serialize any component inside the module this target refers to.
	var componentName string
	switch tr.op.Kind {
	case ir.KindWire, ir.KindReg, ir.KindRegReset, ir.KindInstance, ir.KindNode:
		tr.op.AddDontTouch()
		componentName = tr.op.Name
	case ir.KindModule:
		// Whole-module target, no component suffix.
	default:
		e.errorf(tr.op.Loc, "invalid target for `%s` OMIR", typ)
		w.String("<error>")
		return
	}
	if componentName != "" {
		target.WriteByte('>')
		target.WriteString(componentName)
	}

	w.String(target.String())
}
