package lang

// Model is the fully resolved form of a translation unit. Every variable
// reference has been substituted, every dynamic name computed, every
// template expanded, and every directive executed. Slices keep
// declaration order; instantiated copies appear where their directive
// ran.
type Model struct {
	// Name is the translation unit name, when one was given.
	Name string

	// Objects holds the top-level equipment hierarchy.
	Objects []*ObjectDecl

	// Flattened views over the whole tree, in declaration order.
	Signals     []*SignalDecl
	Connections []*ConnectionDecl
	Variables   []*VariableDecl
	Sequences   []*Sequence
	Bindings    []*Binding

	// Templates keeps the unmaterialized template definitions. Their
	// instantiated copies appear in the slices above.
	Templates []*Template
}

// ObjectDecl is one resolved equipment declaration.
type ObjectDecl struct {
	// Name is the computed declaration name, extensions substituted.
	Name string

	// Path is the slash-joined chain of enclosing declaration names,
	// ending in Name. Unique within a model.
	Path string

	Type ObjectType
	Pos  Position

	Params      []*ParamDecl
	Objects     []*ObjectDecl
	Signals     []*SignalDecl
	Connections []*ConnectionDecl
}

// SignalDecl is one resolved signal declaration.
type SignalDecl struct {
	Name string
	Path string

	Direction Direction
	Type      SignalType
	Pos       Position

	Params      []*ParamDecl
	Connections []*ConnectionDecl

	// Bound names the connection this signal was routed to, or is
	// empty when no routing directive ran in the signal's scope.
	Bound string
}

// ConnectionDecl is one resolved connection declaration.
type ConnectionDecl struct {
	Name string
	Path string
	Pos  Position

	Params []*ParamDecl
}

// ParamDecl is one resolved parameter assignment. Exactly one of Value
// and Range is set.
type ParamDecl struct {
	Name string
	Type *TypeSpec
	Pos  Position

	Value *Datum
	Range *RangeVal

	Options []*OptionDecl
}

// RangeVal is a resolved numeric domain. A nil bound is open.
type RangeVal struct {
	Lo *int64
	Hi *int64
}

// OptionDecl is one resolved parameter option. At most one of Value and
// Status is set; both nil means the option was named without a value.
type OptionDecl struct {
	Name  string
	Class OptionClass
	Pos   Position

	Value  *Datum
	Status *StatusConst
}

// VariableDecl is one resolved scoped variable.
type VariableDecl struct {
	Name string

	// Scope is the path of the declaration's enclosing construct.
	Scope string

	// Origin names the variable this one was initialized from, or
	// holds the computed text of a dynamic name initializer. Empty
	// for literal and absent initializers.
	Origin string

	Type  *TypeSpec
	Value *Datum
	Pos   Position
}

// Sequence is the ordered value stream produced by a linear use
// directive over an array variable.
type Sequence struct {
	// Name is the identifier the directive was registered under.
	Name string

	// Scope is the path of the construct the directive ran in.
	Scope string

	// Source names the array variable the values came from.
	Source string

	// Values is the stream after exclusion, in array order.
	Values []Datum

	// Excluded holds the filtered value, when the directive named one.
	Excluded *Datum

	Pos Position
}

// RefKind classifies a binding target.
type RefKind int

const (
	RefConnection RefKind = iota
	RefObject
	RefSignal
	RefVariable
)

func (k RefKind) String() string {
	switch k {
	case RefConnection:
		return "connection"
	case RefObject:
		return "object"
	case RefSignal:
		return "signal"
	case RefVariable:
		return "variable"
	}

	return "unknown"
}

// Binding records one resolved routing directive: the scope it ran in
// and the declaration it attached to.
type Binding struct {
	// Source is the path of the construct the directive ran in.
	Source string

	// Target is the computed name the directive resolved.
	Target string

	Kind RefKind
	Pos  Position

	// Decl is the bound declaration itself, not a copy. The concrete
	// type follows Kind: *ConnectionDecl, *ObjectDecl, *SignalDecl or
	// *VariableDecl.
	Decl any
}
