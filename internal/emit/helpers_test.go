package emit

import (
	"github.com/quillhw/omir/internal/ir"
)

// Annotation and attribute builders shared by the emission tests.

func fileAnno(path string) ir.DictAttr {
	return ir.Dict(
		ir.E(ir.AnnoClassKey, ir.StringAttr(ir.OMIRFileAnnoClass)),
		ir.E("filename", ir.StringAttr(path)),
	)
}

func omirAnno(nodes ...ir.Attr) ir.DictAttr {
	return ir.Dict(
		ir.E(ir.AnnoClassKey, ir.StringAttr(ir.OMIRAnnoClass)),
		ir.E("nodes", ir.ArrayAttr(nodes)),
	)
}

func trackerAnno(id int64) ir.DictAttr {
	return ir.Dict(
		ir.E(ir.AnnoClassKey, ir.StringAttr(ir.OMIRTrackerAnnoClass)),
		ir.E("id", ir.NewIntAttr(id)),
	)
}

func nonlocalTrackerAnno(id int64, anchor string) ir.DictAttr {
	return ir.Dict(
		ir.E(ir.AnnoClassKey, ir.StringAttr(ir.OMIRTrackerAnnoClass)),
		ir.E("id", ir.NewIntAttr(id)),
		ir.E("circt.nonlocal", ir.SymbolRefAttr(anchor)),
	)
}

func trackedTarget(id int64, typ string) ir.DictAttr {
	return ir.Dict(
		ir.E("omir.tracker", ir.UnitAttr{}),
		ir.E("id", ir.NewIntAttr(id)),
		ir.E("type", ir.StringAttr(typ)),
	)
}

func omNode(id string, fields ir.DictAttr) ir.DictAttr {
	return ir.Dict(
		ir.E("id", ir.StringAttr(id)),
		ir.E("fields", fields),
	)
}

func omField(index int64, value ir.Attr) ir.DictAttr {
	return ir.Dict(
		ir.E("index", ir.NewIntAttr(index)),
		ir.E("value", value),
	)
}

// singleValueCircuit builds a circuit whose one OMIR node carries a single
// field holding value, bound for out.json.
func singleValueCircuit(value ir.Attr) *ir.Op {
	circuit := ir.NewCircuit("Top")
	circuit.Annos = []ir.DictAttr{
		fileAnno("out.json"),
		omirAnno(omNode("OMID:0", ir.Dict(ir.E("v", omField(0, value))))),
	}
	return circuit
}

// nonlocalCircuit builds the two-level hierarchy Top|A/x:B>w with a wire
// tracker reached through anchor nla_1. Returns the circuit and the ops the
// resolver should mark don't-touch.
func nonlocalCircuit() (circuit, instX, instY, wireW *ir.Op) {
	circuit = ir.NewCircuit("Top")

	modA := ir.NewOp(ir.KindModule, "A")
	instX = ir.NewOp(ir.KindInstance, "x")
	modA.AddChild(instX)

	modB := ir.NewOp(ir.KindModule, "B")
	instY = ir.NewOp(ir.KindInstance, "y")
	modB.AddChild(instY)
	wireW = ir.NewOp(ir.KindWire, "w")
	wireW.Annos = []ir.DictAttr{nonlocalTrackerAnno(1, "nla_1")}
	modB.AddChild(wireW)

	nla := ir.NewNonLocalAnchor("nla_1",
		[]ir.SymbolRefAttr{"A", "B"}, []string{"x", "y"})

	circuit.AddChild(modA)
	circuit.AddChild(modB)
	circuit.AddChild(nla)
	circuit.Annos = []ir.DictAttr{
		fileAnno("out.json"),
		omirAnno(omNode("OMID:0", ir.Dict(
			ir.E("om", omField(0, trackedTarget(1, "OMReferenceTarget"))),
		))),
	}
	return circuit, instX, instY, wireW
}
