package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quillhw/omir/internal/ir"
	"github.com/quillhw/omir/internal/jsonw"
)

// passthroughPrefixes are the opaque OMIR type tags whose string encodings
// pass through serialization verbatim. The tag is the prefix before the
// first colon of the encoded value.
var passthroughPrefixes = map[string]bool{
	"OMID":           true,
	"OMReference":    true,
	"OMBigInt":       true,
	"OMLong":         true,
	"OMString":       true,
	"OMBoolean":      true,
	"OMDouble":       true,
	"OMBigDecimal":   true,
	"OMFrozenTarget": true,
	"OMDeleted":      true,
	"OMConstant":     true,
}

// isStringEncodedPassthrough reports whether tag is an opaque OMIR type tag.
func isStringEncodedPassthrough(tag string) bool {
	return passthroughPrefixes[tag]
}

// emitValue serializes one attribute value as JSON. The attribute universe
// is closed; anything outside it emits the unsupported-value sentinel and
// fails the run. After each recursive sub-call the failure flag is checked
// so remaining sibling work is skipped promptly once failure is signaled.
func (e *emitter) emitValue(node ir.Attr, w *jsonw.Writer) {
	// Handle the null case.
	if node == nil {
		w.Null()
		return
	}

	switch attr := node.(type) {
	case ir.NullAttr, ir.UnitAttr:
		w.Null()
		return
	case ir.BoolAttr:
		w.Bool(bool(attr)) // OMBoolean
		return
	case ir.IntAttr:
		// CAVEAT: integers arriving from a JSON-shaped OMIR file fit in 64
		// bits, so the exact decimal form is a valid JSON number. Wider
		// values still serialize exactly but may exceed what a standard
		// JSON consumer accepts.
		w.Raw(attr.V.Text(10)) // OMInt
		return
	case ir.FloatAttr:
		// Same caveat as integers; shortest round-trip decimal form.
		w.Raw(strconv.FormatFloat(float64(attr), 'g', -1, 64)) // OMDouble
		return
	case ir.ArrayAttr:
		w.Array(func() {
			for _, element := range attr {
				e.emitValue(element, w)
				if e.anyFailures {
					return
				}
			}
		})
		return
	case ir.DictAttr:
		// Targets with a corresponding tracker in the IR resolve to a
		// hierarchical path string instead of a plain record.
		if attr.Get("omir.tracker") != nil {
			e.emitTrackedTarget(attr, w)
			return
		}
		w.Object(func() {
			for _, entry := range attr {
				w.Name(entry.Name)
				e.emitValue(entry.Value, w)
				if e.anyFailures {
					return
				}
			}
		})
		return
	case ir.StringAttr:
		// The string-encoded pass-through cases.
		val := string(attr)
		tag, _, _ := strings.Cut(val, ":")
		if isStringEncodedPassthrough(tag) {
			w.String(val)
			return
		}
	}

	// Anything else is not serializable as an OMIR value.
	w.String("<unsupported value>")
	e.errorf(e.circuit.Loc, "unsupported attribute for OMIR serialization: `%s`", attrString(node))
}

// attrString renders an attribute compactly for diagnostics.
func attrString(a ir.Attr) string {
	switch attr := a.(type) {
	case nil:
		return "<null>"
	case ir.NullAttr:
		return "null"
	case ir.UnitAttr:
		return "unit"
	case ir.BoolAttr:
		return strconv.FormatBool(bool(attr))
	case ir.IntAttr:
		return attr.V.Text(10)
	case ir.FloatAttr:
		return strconv.FormatFloat(float64(attr), 'g', -1, 64)
	case ir.StringAttr:
		return strconv.Quote(string(attr))
	case ir.SymbolRefAttr:
		return "@" + string(attr)
	case ir.ArrayAttr:
		parts := make([]string, len(attr))
		for i, el := range attr {
			parts[i] = attrString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.DictAttr:
		parts := make([]string, len(attr))
		for i, entry := range attr {
			parts[i] = entry.Name + " = " + attrString(entry.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ir.FileLineColLoc:
		return "loc(" + attr.String() + ")"
	case ir.FusedLoc:
		return "loc(fused)"
	case ir.UnknownLoc:
		return "loc(unknown)"
	default:
		return fmt.Sprintf("%T", a)
	}
}

// attrNote renders an attribute as a diagnostic note.
func attrNote(a ir.Attr) string {
	return "in " + attrString(a)
}
