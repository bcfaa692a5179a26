package ir

// OpKind identifies the structural kind of an operation.
type OpKind int

const (
	// KindDesign is the root container holding a circuit and any artifacts
	// emitted as its siblings.
	KindDesign OpKind = iota
	// KindCircuit is the top-level circuit; its name seeds every emitted
	// hierarchical path.
	KindCircuit
	// KindModule defines a module; its name is a symbol.
	KindModule
	// KindInstance instantiates a module inside another module's body.
	KindInstance
	// KindWire declares a wire.
	KindWire
	// KindReg declares a register.
	KindReg
	// KindRegReset declares a register with a reset value.
	KindRegReset
	// KindNode declares a named intermediate value.
	KindNode
	// KindNonLocalAnchor describes one instantiation path through the
	// hierarchy; its name is a symbol.
	KindNonLocalAnchor
	// KindVerbatim is an opaque text artifact destined for a file.
	KindVerbatim
)

var opKindNames = map[OpKind]string{
	KindDesign:         "design",
	KindCircuit:        "circuit",
	KindModule:         "module",
	KindInstance:       "instance",
	KindWire:           "wire",
	KindReg:            "reg",
	KindRegReset:       "regreset",
	KindNode:           "node",
	KindNonLocalAnchor: "nla",
	KindVerbatim:       "verbatim",
}

func (k OpKind) String() string {
	if s, ok := opKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// OutputFile associates a verbatim artifact with its destination path.
type OutputFile struct {
	Path                string
	ExcludeFromFileList bool
}

// Op is one operation in the instance hierarchy. Ops are owned by their
// parent; everything else holds non-owning references.
type Op struct {
	Kind  OpKind
	Name  string
	Loc   Loc
	Annos []DictAttr

	// Non-local anchor payload: parallel module-symbol and instance-name
	// sequences, outermost first.
	Modpath  []SymbolRefAttr
	Namepath []string

	// Verbatim payload.
	Text       string
	Symbols    []SymbolRefAttr
	OutputFile *OutputFile

	parent   *Op
	children []*Op
}

// NewOp creates an operation of the given kind and name.
func NewOp(kind OpKind, name string) *Op {
	return &Op{Kind: kind, Name: name, Loc: UnknownLoc{}}
}

// NewDesign creates an empty design root.
func NewDesign() *Op {
	return NewOp(KindDesign, "")
}

// NewCircuit creates a circuit op with the given top name.
func NewCircuit(name string) *Op {
	return NewOp(KindCircuit, name)
}

// NewNonLocalAnchor creates an anchor op. modpath and namepath must have
// equal length; the caller guarantees this (the loader validates it).
func NewNonLocalAnchor(name string, modpath []SymbolRefAttr, namepath []string) *Op {
	op := NewOp(KindNonLocalAnchor, name)
	op.Modpath = modpath
	op.Namepath = namepath
	return op
}

// AddChild appends child to o's body and sets its parent back-reference.
func (o *Op) AddChild(child *Op) {
	child.parent = o
	o.children = append(o.children, child)
}

// InsertAfter places newOp directly after o among o's parent's children.
// No-op if o has no parent.
func (o *Op) InsertAfter(newOp *Op) {
	p := o.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == o {
			newOp.parent = p
			p.children = append(p.children[:i+1], append([]*Op{newOp}, p.children[i+1:]...)...)
			return
		}
	}
}

// Parent returns the owning operation, or nil for a root.
func (o *Op) Parent() *Op {
	return o.parent
}

// Children returns o's body in order.
func (o *Op) Children() []*Op {
	return o.children
}

// Walk visits o and every operation beneath it in pre-order.
func (o *Op) Walk(fn func(*Op)) {
	fn(o)
	for _, c := range o.children {
		c.Walk(fn)
	}
}

// EnclosingModule returns o itself if it is a module, otherwise the nearest
// module ancestor, or nil if there is none.
func (o *Op) EnclosingModule() *Op {
	for cur := o; cur != nil; cur = cur.parent {
		if cur.Kind == KindModule {
			return cur
		}
	}
	return nil
}

// SymbolTable maps symbol names to their defining operations within one
// circuit. Lookup misses return nil rather than erroring; collectors treat
// a miss as "no anchor".
type SymbolTable map[string]*Op

// BuildSymbolTable indexes the symbol-defining children of a circuit
// (modules and non-local anchors) by name.
func BuildSymbolTable(circuit *Op) SymbolTable {
	tbl := make(SymbolTable)
	for _, child := range circuit.children {
		switch child.Kind {
		case KindModule, KindNonLocalAnchor:
			tbl[child.Name] = child
		}
	}
	return tbl
}

// Lookup returns the operation defining sym, or nil.
func (t SymbolTable) Lookup(sym string) *Op {
	return t[sym]
}
