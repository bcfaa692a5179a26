package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quillhw/omir/internal/ir"
	"github.com/quillhw/omir/internal/jsonw"
)

// sourceInfo renders a location digest for the `info` entry of OMNode and
// OMField: every file location reachable through the location tree, each as
// `filename line:col`, joined by spaces and bracketed as `@[ ... ]`. Empty
// if no file location is found.
func sourceInfo(loc ir.Loc) string {
	var b strings.Builder
	ir.WalkLoc(loc, func(l ir.Loc) {
		fl, ok := l.(ir.FileLineColLoc)
		if !ok {
			return
		}
		if b.Len() == 0 {
			b.WriteString("@[")
		} else {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s %d:%d", fl.File, fl.Line, fl.Col)
	})
	if b.Len() > 0 {
		b.WriteByte(']')
	}
	return b.String()
}

type orderedField struct {
	index int64
	name  string
	field ir.DictAttr
}

// emitOMNode serializes one OMNode record. Fields are rendered in ascending
// `index` order (default 0, ties keep encounter order) regardless of their
// order in the record.
func (e *emitter) emitOMNode(node ir.Attr, w *jsonw.Writer) {
	dict, ok := node.(ir.DictAttr)
	if !ok {
		e.error(e.circuit.Loc, "OMNode must be a record", attrNote(node))
		return
	}

	var info string
	if loc := dict.GetLoc("info"); loc != nil {
		info = sourceInfo(loc)
	}

	id, ok := dict.GetString("id")
	if !ok {
		e.error(e.circuit.Loc, "OMNode missing `id` string field", attrNote(dict))
		return
	}

	// Extract and order the fields of this node.
	var orderedFields []orderedField
	if fieldsDict, ok := dict.GetDict("fields"); ok {
		for _, nameAndField := range fieldsDict {
			fieldDict, ok := nameAndField.Value.(ir.DictAttr)
			if !ok {
				e.error(e.circuit.Loc, "OMField must be a record", attrNote(nameAndField.Value))
				return
			}
			var index int64
			if v, ok := fieldDict.GetInt("index"); ok {
				index = v.Int64()
			}
			orderedFields = append(orderedFields, orderedField{index, nameAndField.Name, fieldDict})
		}
		sort.SliceStable(orderedFields, func(i, j int) bool {
			return orderedFields[i].index < orderedFields[j].index
		})
	}

	w.Object(func() {
		w.Name("info")
		w.String(info)
		w.Name("id")
		w.String(id)
		w.Name("fields")
		w.Array(func() {
			for _, of := range orderedFields {
				e.emitOMField(of.name, of.field, w)
				if e.anyFailures {
					return
				}
			}
		})
	})
}

// emitOMField serializes one OMField record. The field's name comes from
// the outside, as its entry name in the surrounding record.
func (e *emitter) emitOMField(name string, field ir.DictAttr, w *jsonw.Writer) {
	var info string
	if loc := field.GetLoc("info"); loc != nil {
		info = sourceInfo(loc)
	}

	w.Object(func() {
		w.Name("info")
		w.String(info)
		w.Name("name")
		w.String(name)
		w.Name("value")
		e.emitValue(field.Get("value"), w)
	})
}
