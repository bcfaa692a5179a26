package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhw/omir/internal/ir"
)

const jsonBundle = `{
	"circuit": {
		"name": "Top",
		"info": {"file": "Top.scala", "line": 3, "col": 1},
		"annotations": [
			{
				"class": "freechips.rocketchip.objectmodel.OMIRFileAnnotation",
				"filename": "omir.json"
			},
			{
				"class": "freechips.rocketchip.objectmodel.OMIRAnnotation",
				"nodes": [
					{
						"info": {"file": "Top.scala", "line": 5, "col": 2},
						"id": "OMID:0",
						"fields": {
							"target": {
								"index": 0,
								"value": {
									"omir.tracker": true,
									"id": 1,
									"type": "OMReferenceTarget"
								}
							}
						}
					}
				]
			}
		],
		"modules": [
			{
				"name": "A",
				"body": [{"kind": "instance", "name": "x"}]
			},
			{
				"name": "B",
				"body": [
					{
						"kind": "wire",
						"name": "w",
						"annotations": [
							{
								"class": "freechips.rocketchip.objectmodel.OMIRTracker",
								"id": 1,
								"circt.nonlocal": "nla_1"
							}
						]
					}
				]
			}
		],
		"anchors": [
			{"name": "nla_1", "modpath": ["A", "B"], "namepath": ["x", "w"]}
		]
	}
}`

func TestLoadJSONBundle(t *testing.T) {
	design, circuit, err := LoadBytes("bundle.json", []byte(jsonBundle))
	require.NoError(t, err)
	require.NotNil(t, design)
	require.NotNil(t, circuit)

	assert.Equal(t, ir.KindDesign, design.Kind)
	assert.Equal(t, ir.KindCircuit, circuit.Kind)
	assert.Equal(t, "Top", circuit.Name)
	assert.Equal(t, ir.FileLineColLoc{File: "Top.scala", Line: 3, Col: 1}, circuit.Loc)

	children := circuit.Children()
	require.Len(t, children, 3)
	assert.Equal(t, ir.KindModule, children[0].Kind)
	assert.Equal(t, "A", children[0].Name)
	assert.Equal(t, ir.KindModule, children[1].Kind)
	assert.Equal(t, ir.KindNonLocalAnchor, children[2].Kind)
	assert.Equal(t, []ir.SymbolRefAttr{"A", "B"}, children[2].Modpath)
	assert.Equal(t, []string{"x", "w"}, children[2].Namepath)

	assert.True(t, circuit.HasAnnotation(ir.OMIRFileAnnoClass))
	assert.True(t, circuit.HasAnnotation(ir.OMIRAnnoClass))
}

func TestLoadSpecialMembers(t *testing.T) {
	_, circuit, err := LoadBytes("bundle.json", []byte(jsonBundle))
	require.NoError(t, err)

	// The wire tracker annotation gets its special members typed.
	wire := circuit.Children()[1].Children()[0]
	require.Equal(t, "w", wire.Name)
	require.Len(t, wire.Annos, 1)
	anno := wire.Annos[0]
	assert.Equal(t, ir.OMIRTrackerAnnoClass, ir.AnnoClass(anno))
	assert.Equal(t, ir.SymbolRefAttr("nla_1"), anno.Get("circt.nonlocal"))

	// Node `info` entries become location attributes, not plain records.
	var omirAnno ir.DictAttr
	for _, a := range circuit.Annos {
		if ir.AnnoClass(a) == ir.OMIRAnnoClass {
			omirAnno = a
		}
	}
	nodes, ok := omirAnno.GetArray("nodes")
	require.True(t, ok)
	node, ok := nodes[0].(ir.DictAttr)
	require.True(t, ok)
	assert.Equal(t,
		ir.FileLineColLoc{File: "Top.scala", Line: 5, Col: 2},
		node.GetLoc("info"))

	// The tracked-target record carries the unit marker.
	fields, ok := node.GetDict("fields")
	require.True(t, ok)
	target, ok := fields.GetDict("target")
	require.True(t, ok)
	value, ok := target.GetDict("value")
	require.True(t, ok)
	assert.Equal(t, ir.UnitAttr{}, value.Get("omir.tracker"))
	id, ok := value.GetInt("id")
	require.True(t, ok)
	assert.Equal(t, int64(1), id.Int64())
}

func TestLoadCUEBundle(t *testing.T) {
	src := `
circuit: {
	name: "Top"
	modules: [{
		name: "DUT"
		body: [{kind: "reg", name: "r"}]
	}]
}
`
	_, circuit, err := LoadBytes("bundle.cue", []byte(src))
	require.NoError(t, err)
	require.Len(t, circuit.Children(), 1)
	mod := circuit.Children()[0]
	assert.Equal(t, "DUT", mod.Name)
	require.Len(t, mod.Children(), 1)
	assert.Equal(t, ir.KindReg, mod.Children()[0].Kind)
	assert.Equal(t, "r", mod.Children()[0].Name)
}

func TestLoadFusedInfo(t *testing.T) {
	src := `
circuit: {
	name: "Top"
	info: [
		{file: "A.scala", line: 1, col: 2},
		{file: "B.scala", line: 3, col: 4},
	]
}
`
	_, circuit, err := LoadBytes("bundle.cue", []byte(src))
	require.NoError(t, err)
	fused, ok := circuit.Loc.(ir.FusedLoc)
	require.True(t, ok)
	require.Len(t, fused, 2)
	assert.Equal(t, ir.FileLineColLoc{File: "A.scala", Line: 1, Col: 2}, fused[0])
}

func TestLoadNormalizesIdentifiers(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) composes to U+00E9.
	src := `circuit: {name: "Café", modules: [{name: "Modéle"}]}`
	_, circuit, err := LoadBytes("bundle.cue", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Café", circuit.Name)
	assert.Equal(t, "Modéle", circuit.Children()[0].Name)
}

func TestLoadAnchorLengthMismatch(t *testing.T) {
	src := `
circuit: {
	name: "Top"
	anchors: [{name: "nla", modpath: ["A", "B"], namepath: ["x"]}]
}
`
	_, _, err := LoadBytes("bundle.cue", []byte(src))
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "lengths differ")
}

func TestLoadRejectsUnknownComponentKind(t *testing.T) {
	src := `
circuit: {
	name: "Top"
	modules: [{name: "DUT", body: [{kind: "mem", name: "m"}]}]
}
`
	_, _, err := LoadBytes("bundle.cue", []byte(src))
	assert.Error(t, err)
}

func TestLoadRejectsMissingCircuitName(t *testing.T) {
	_, _, err := LoadBytes("bundle.cue", []byte(`circuit: {modules: []}`))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedSource(t *testing.T) {
	_, _, err := LoadBytes("bundle.json", []byte(`{"circuit": `))
	assert.Error(t, err)
}
