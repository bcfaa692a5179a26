// Package emit implements the OMIR emission stage.
//
// The stage runs once over a circuit late in the pipeline: it gathers OMIR
// node trees and an optional output-path override from the circuit's
// annotations, collects scattered target trackers from the instance
// hierarchy, serializes every node tree into one JSON array, and attaches
// the result to the design as a verbatim artifact. Module and instance
// names referenced by emitted paths are interned as {{N}} placeholders and
// reported alongside the text so a downstream textual emitter can
// substitute final names.
//
// A run either produces the complete artifact or nothing: any input
// malformation is reported through accumulated diagnostics and the run
// fails without partial output.
package emit
