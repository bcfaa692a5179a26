package emit

import (
	"errors"
	"fmt"

	"github.com/quillhw/omir/internal/ir"
	"github.com/quillhw/omir/internal/jsonw"
)

// ErrFailed is wrapped by every error Run returns for a failed run.
// Diagnostics carry the individual problems.
var ErrFailed = errors.New("omir emission failed")

// Options are the pass parameters.
type Options struct {
	// OutputFilename overrides any annotation-derived output path.
	OutputFilename string
}

// Artifact is the output of one successful run: the JSON text with embedded
// {{N}} placeholders, the symbol references resolving each placeholder
// index, and the destination the text is bound for. The artifact is
// constructed once and never mutated afterward.
type Artifact struct {
	JSON                []byte
	Symbols             []ir.SymbolRefAttr
	OutputPath          string
	ExcludeFromFileList bool
}

// emitter is the per-run state. Constructed fresh at every Run entry so no
// state leaks across runs; independent circuits can be processed
// concurrently with independent emitters.
type emitter struct {
	circuit *ir.Op
	symtbl  ir.SymbolTable

	// trackers holds the OMIR target trackers gathered in this run, by id.
	trackers map[int64]tracker
	// symbols is the interned symbol list, populated as JSON is built and
	// module names are collected. symbolIndex is its reverse mapping.
	symbols     []ir.SymbolRefAttr
	symbolIndex map[ir.SymbolRefAttr]int

	diags       []Diagnostic
	anyFailures bool
}

// Run executes the emission stage over circuit. It returns the artifact, or
// nil with a nil error when neither an annotation nor the pass parameter
// named an output file (the run is a deliberate no-op). On failure the
// artifact is nil and the returned error wraps ErrFailed; no partial output
// is ever produced. The returned diagnostics are complete in both cases.
//
// As a side effect, matched OMIR annotations and tracker markers are
// removed from the IR, path-referenced instances and components are marked
// don't-touch, and on success the artifact is attached to the design as a
// verbatim sibling of the circuit.
func Run(circuit *ir.Op, opts Options) (*Artifact, []Diagnostic, error) {
	if circuit == nil || circuit.Kind != ir.KindCircuit {
		return nil, nil, fmt.Errorf("%w: emission requires a circuit op", ErrFailed)
	}

	e := &emitter{
		circuit:     circuit,
		trackers:    make(map[int64]tracker),
		symbolIndex: make(map[ir.SymbolRefAttr]int),
	}

	// Gather the relevant annotations from the circuit: the OMIR node trees
	// to process and emit, and an optional override of the output file.
	var annoNodes []ir.ArrayAttr
	var annoFilename string
	var haveAnnoFilename bool

	circuit.RemoveAnnotations(func(anno ir.DictAttr) bool {
		switch ir.AnnoClass(anno) {
		case ir.OMIRFileAnnoClass:
			path, ok := anno.GetString("filename")
			if !ok {
				e.error(circuit.Loc, ir.OMIRFileAnnoClass+" annotation missing `filename` string attribute")
				return true
			}
			annoFilename = path
			haveAnnoFilename = true
			return true
		case ir.OMIRAnnoClass:
			nodes, ok := anno.GetArray("nodes")
			if !ok {
				e.error(circuit.Loc, ir.OMIRAnnoClass+" annotation missing `nodes` array attribute")
				return true
			}
			annoNodes = append(annoNodes, nodes)
			return true
		}
		return false
	})
	if e.anyFailures {
		return nil, e.diags, e.failure()
	}

	// Traverse the IR and collect the tracker annotations that were
	// previously scattered into the circuit.
	e.symtbl = ir.BuildSymbolTable(circuit)
	e.collectTrackers()
	if e.anyFailures {
		return nil, e.diags, e.failure()
	}

	// The pass parameter beats whatever the annotations configured. If
	// neither names a file, there is nothing to do.
	outputFilename := annoFilename
	if opts.OutputFilename != "" {
		outputFilename = opts.OutputFilename
	} else if !haveAnnoFilename {
		return nil, e.diags, nil
	}

	// Build the output JSON.
	w := jsonw.New()
	w.Array(func() {
		for _, nodes := range annoNodes {
			for _, node := range nodes {
				e.emitOMNode(node, w)
				if e.anyFailures {
					return
				}
			}
		}
	})
	if e.anyFailures {
		return nil, e.diags, e.failure()
	}

	artifact := &Artifact{
		JSON:                w.Bytes(),
		Symbols:             e.symbols,
		OutputPath:          outputFilename,
		ExcludeFromFileList: true,
	}

	// Attach the artifact to the design as a verbatim op after the circuit.
	verbatim := ir.NewOp(ir.KindVerbatim, "")
	verbatim.Text = string(artifact.JSON)
	verbatim.Symbols = artifact.Symbols
	verbatim.OutputFile = &ir.OutputFile{
		Path:                artifact.OutputPath,
		ExcludeFromFileList: artifact.ExcludeFromFileList,
	}
	circuit.InsertAfter(verbatim)

	return artifact, e.diags, nil
}

func (e *emitter) failure() error {
	return fmt.Errorf("%w with %d diagnostic(s)", ErrFailed, len(e.diags))
}
