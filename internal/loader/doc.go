// Package loader parses design-bundle files into the circuit IR.
//
// A design bundle is a CUE (or plain JSON) document describing a circuit:
// its module hierarchy, non-local anchors, and the annotations scattered
// over it, including the OMIR node trees the emission stage renders. The
// bundle is unified against an embedded CUE schema before conversion, so
// shape errors surface with source positions instead of as downstream
// emission diagnostics.
package loader
