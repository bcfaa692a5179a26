package emit

import (
	"fmt"
	"strings"

	"github.com/quillhw/omir/internal/ir"
)

// Diagnostic is one reported problem with contextual notes. Diagnostics
// accumulate over a run so independent problems in one batch are each
// individually actionable.
type Diagnostic struct {
	Message string
	Notes   []string
	Loc     ir.Loc
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if fl, ok := d.Loc.(ir.FileLineColLoc); ok {
		b.WriteString(fl.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	for _, note := range d.Notes {
		b.WriteString("\n  note: ")
		b.WriteString(note)
	}
	return b.String()
}

// error records a diagnostic and flags the run as failed.
func (e *emitter) error(loc ir.Loc, msg string, notes ...string) {
	e.anyFailures = true
	e.diags = append(e.diags, Diagnostic{Message: msg, Notes: notes, Loc: loc})
}

// errorf is error with formatting.
func (e *emitter) errorf(loc ir.Loc, format string, args ...any) {
	e.error(loc, fmt.Sprintf(format, args...))
}
