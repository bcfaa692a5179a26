package ir

import "math/big"

// Attr is a sealed interface representing the closed attribute universe.
// Only NullAttr, UnitAttr, BoolAttr, IntAttr, FloatAttr, StringAttr,
// SymbolRefAttr, ArrayAttr, DictAttr, and the location attributes in loc.go
// implement it.
type Attr interface {
	attr() // Sealed - only these types implement it
}

// NullAttr represents an absent or null value.
type NullAttr struct{}

func (NullAttr) attr() {}

// UnitAttr is a presence marker carrying no payload. Dictionary entries use
// it to tag a record (for example the tracked-target marker).
type UnitAttr struct{}

func (UnitAttr) attr() {}

// BoolAttr represents a boolean value.
type BoolAttr bool

func (BoolAttr) attr() {}

// IntAttr represents an arbitrary-precision integer value.
// Values read from JSON-shaped OMIR fit in 64 bits, but the IR itself does
// not impose that bound; serialization emits the exact signed decimal form.
type IntAttr struct {
	V *big.Int
}

func (IntAttr) attr() {}

// NewIntAttr creates an IntAttr from an int64.
func NewIntAttr(v int64) IntAttr {
	return IntAttr{V: big.NewInt(v)}
}

// FloatAttr represents a floating-point value. Serialized via the shortest
// round-trip decimal form.
type FloatAttr float64

func (FloatAttr) attr() {}

// StringAttr represents a string value.
type StringAttr string

func (StringAttr) attr() {}

// SymbolRefAttr is a flat reference to a symbol-defining operation by name.
type SymbolRefAttr string

func (SymbolRefAttr) attr() {}

// ArrayAttr represents an ordered sequence of attribute values.
type ArrayAttr []Attr

func (ArrayAttr) attr() {}

// DictEntry is a single named entry of a DictAttr.
type DictEntry struct {
	Name  string
	Value Attr
}

// DictAttr represents a record of named attribute values. Unlike a map it
// preserves encounter order, which the emitter relies on for regular
// record serialization.
type DictAttr []DictEntry

func (DictAttr) attr() {}

// Get returns the value for name, or nil if absent.
func (d DictAttr) Get(name string) Attr {
	for _, e := range d {
		if e.Name == name {
			return e.Value
		}
	}
	return nil
}

// GetString returns the string value for name, or "", false if the entry is
// absent or not a StringAttr.
func (d DictAttr) GetString(name string) (string, bool) {
	s, ok := d.Get(name).(StringAttr)
	return string(s), ok
}

// GetInt returns the integer value for name, or nil, false if the entry is
// absent or not an IntAttr.
func (d DictAttr) GetInt(name string) (*big.Int, bool) {
	i, ok := d.Get(name).(IntAttr)
	if !ok || i.V == nil {
		return nil, false
	}
	return i.V, true
}

// GetDict returns the record value for name, or nil, false if the entry is
// absent or not a DictAttr.
func (d DictAttr) GetDict(name string) (DictAttr, bool) {
	sub, ok := d.Get(name).(DictAttr)
	return sub, ok
}

// GetArray returns the array value for name, or nil, false if the entry is
// absent or not an ArrayAttr.
func (d DictAttr) GetArray(name string) (ArrayAttr, bool) {
	arr, ok := d.Get(name).(ArrayAttr)
	return arr, ok
}

// GetLoc returns the location value for name, or nil if the entry is absent
// or not a location attribute.
func (d DictAttr) GetLoc(name string) Loc {
	l, ok := d.Get(name).(Loc)
	if !ok {
		return nil
	}
	return l
}

// E constructs a DictEntry. Shorthand for literal DictAttr construction.
func E(name string, value Attr) DictEntry {
	return DictEntry{Name: name, Value: value}
}

// Dict constructs a DictAttr from entries in order.
func Dict(entries ...DictEntry) DictAttr {
	return DictAttr(entries)
}
