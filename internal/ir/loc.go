package ir

import "fmt"

// Loc is a source location attribute. Locations are attributes so they can
// appear as `info` entries inside annotation records.
type Loc interface {
	Attr
	loc()
}

// UnknownLoc is a location with no source information.
type UnknownLoc struct{}

func (UnknownLoc) attr() {}
func (UnknownLoc) loc()  {}

// FileLineColLoc points at a file position.
type FileLineColLoc struct {
	File string
	Line int
	Col  int
}

func (FileLineColLoc) attr() {}
func (FileLineColLoc) loc()  {}

func (l FileLineColLoc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// FusedLoc combines several locations, for example when an operation was
// produced by merging ops with distinct origins.
type FusedLoc []Loc

func (FusedLoc) attr() {}
func (FusedLoc) loc()  {}

// WalkLoc visits l and, for fused locations, every reachable sub-location
// in order.
func WalkLoc(l Loc, fn func(Loc)) {
	if l == nil {
		return
	}
	fn(l)
	if fused, ok := l.(FusedLoc); ok {
		for _, sub := range fused {
			WalkLoc(sub, fn)
		}
	}
}
