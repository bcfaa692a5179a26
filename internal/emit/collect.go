package emit

import (
	"github.com/quillhw/omir/internal/ir"
)

// tracker records one live OMIR target found in the IR.
type tracker struct {
	// id is the unique key of this tracker.
	id int64
	// op is the operation onto which the tracker was annotated. Non-owning:
	// the resolver mutates it (don't-touch marking) later in the same run.
	op *ir.Op
	// nla is the corresponding anchor if the tracker is non-local, else nil.
	nla *ir.Op
}

// collectTrackers traverses the hierarchy once and strips every tracker
// annotation, building the id-indexed table. A tracker missing its integer
// id fails the run, but the walk continues so every such problem in the
// circuit is reported together. A `circt.nonlocal` reference that does not
// resolve to an anchor is tolerated as a local target.
//
// Duplicate ids overwrite in walk order; upstream guarantees uniqueness, so
// last-wins is accepted rather than flagged.
func (e *emitter) collectTrackers() {
	e.circuit.Walk(func(op *ir.Op) {
		op.RemoveAnnotations(func(anno ir.DictAttr) bool {
			if ir.AnnoClass(anno) != ir.OMIRTrackerAnnoClass {
				return false
			}
			id, ok := anno.GetInt("id")
			if !ok {
				e.error(op.Loc, ir.OMIRTrackerAnnoClass+" annotation missing `id` integer attribute")
				return true
			}
			if !id.IsInt64() {
				e.errorf(op.Loc, "%s annotation `id` out of range: %s", ir.OMIRTrackerAnnoClass, id.String())
				return true
			}
			tr := tracker{id: id.Int64(), op: op}
			if sym, ok := anno.Get("circt.nonlocal").(ir.SymbolRefAttr); ok {
				if def := e.symtbl.Lookup(string(sym)); def != nil && def.Kind == ir.KindNonLocalAnchor {
					tr.nla = def
				}
			}
			e.trackers[tr.id] = tr
			return true
		})
	})
}
