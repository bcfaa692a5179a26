package emit

import (
	"strconv"

	"github.com/quillhw/omir/internal/ir"
)

// addSymbol interns a symbol reference and returns its textual placeholder.
// Indices are dense, assigned on first use, and stable for the run. The
// placeholder `{{N}}` is embedded in the output text; a downstream stage
// substitutes each one with the symbol's final rendered name.
func (e *emitter) addSymbol(sym ir.SymbolRefAttr) string {
	id, ok := e.symbolIndex[sym]
	if !ok {
		id = len(e.symbols)
		e.symbols = append(e.symbols, sym)
		e.symbolIndex[sym] = id
	}
	return "{{" + strconv.Itoa(id) + "}}"
}

// addOpSymbol interns the symbol naming a symbol-defining operation.
func (e *emitter) addOpSymbol(op *ir.Op) string {
	return e.addSymbol(ir.SymbolRefAttr(op.Name))
}
