package lang

// Module is the root of a parsed translation unit. Entries appear in
// source order; the resolver consumes them in that order.
type Module struct {
	Name    string
	Entries []Entry
}

// Entry is the closed set of constructs that may appear in a scope body.
// The concrete types are *Object, *VarDecl, *Template, *Context,
// *Connection, *Signal, *ParamAssign and *Directive.
type Entry interface {
	entry()
}

func (*Object) entry()      {}
func (*VarDecl) entry()     {}
func (*Template) entry()    {}
func (*Context) entry()     {}
func (*Connection) entry()  {}
func (*Signal) entry()      {}
func (*ParamAssign) entry() {}
func (*Directive) entry()   {}

// VarRef is a variable extraction: a sigil-prefixed identifier
// dereferenced to the value of its nearest visible declaration.
type VarRef struct {
	Name string
	Pos  Position
}

// Name is a declaration name: a literal base optionally extended with
// variable extractions concatenated left to right (PUMP + $n).
type Name struct {
	Base string
	Ext  []VarRef
	Pos  Position
}

// DynName is a parenthesized dynamic name used as a variable initializer:
// (BASE + $a + $b). It resolves to a single string.
type DynName struct {
	Base string
	Ext  []VarRef
	Pos  Position
}

// ObjectType is the equipment type tag.
type ObjectType int

const (
	ObjectAnalog ObjectType = iota // аналог
	ObjectDigital
)

func (t ObjectType) String() string {
	if t == ObjectDigital {
		return "цифра"
	}

	return "аналог"
}

// Object is an equipment declaration with an owned child scope.
type Object struct {
	Type ObjectType
	Name Name
	Body []Entry
	Pos  Position
}

// Template is a named reusable scope body. It is never materialized into
// the model directly, only through instantiation against a context.
type Template struct {
	Name string
	Body []Entry
	Pos  Position
}

// Context is a named bundle of variable declarations supplying concrete
// values to a template instantiation.
type Context struct {
	Name string
	Vars []*VarDecl
	Pos  Position
}

// Connection is a named entity with typed parameters and directives.
type Connection struct {
	Name Name
	Body []Entry
	Pos  Position
}

// Direction is a signal direction tag.
type Direction int

const (
	Input Direction = iota // входной
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "выходной"
	}

	return "входной"
}

// SignalType is a signal type tag.
type SignalType int

const (
	SignalAnalog SignalType = iota // аналог
	SignalDiscrete
)

func (t SignalType) String() string {
	if t == SignalDiscrete {
		return "дискрет"
	}

	return "аналог"
}

// Signal is a signal declaration with direction, type and an owned scope.
type Signal struct {
	Name      Name
	Direction Direction
	Type      SignalType
	Body      []Entry
	Pos       Position
}

// VarDecl declares one or more variables sharing a type spec and an
// optional single initializer.
type VarDecl struct {
	Names []VarRef
	Type  *TypeSpec
	Init  *Init
	Pos   Position
}

// Init is a variable initializer. Exactly one field is set: a literal
// value, another variable's extraction, or a dynamic name.
type Init struct {
	Value *Value
	Ref   *VarRef
	Dyn   *DynName
}

// Scalar enumerates the scalar type names.
type Scalar int

const (
	ScalarInt Scalar = iota
	ScalarFloat
	ScalarStr
	ScalarBool
	ScalarArray
)

func (s Scalar) String() string {
	switch s {
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarStr:
		return "str"
	case ScalarBool:
		return "bool"
	case ScalarArray:
		return "arr"
	default:
		return "unknown"
	}
}

// TypeSpec is a declared type: a scalar, or an array described by its
// ordered element specs when Scalar is ScalarArray.
type TypeSpec struct {
	Scalar Scalar
	Elems  []ArrayElem
	Pos    Position
}

// ArrayElem is one element of an array type spec. Size 0 means no
// explicit count (a single element); an explicit count is always
// positive. Ellipsis marks the trailing "zero or more" element and
// excludes a Size.
type ArrayElem struct {
	Spec     *TypeSpec
	Size     int
	Ellipsis bool
}

// ValueKind enumerates literal value shapes.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueString
	ValueBool
	ValueArray
)

// Value is a literal: text, numeric, boolean, or an array of items.
type Value struct {
	Kind  ValueKind
	Text  string
	Int   int64
	Float float64
	Bool  bool
	Items []ArrayItem
	Pos   Position
}

// ArrayItem is one element of an array literal: a nested value or a
// variable extraction.
type ArrayItem struct {
	Value *Value
	Ref   *VarRef
}

// BoundKind enumerates range bound alternatives.
type BoundKind int

const (
	BoundOpen BoundKind = iota // ~
	BoundInt
	BoundRef
)

// Bound is one side of a range: open, a concrete integer, or a variable
// extraction.
type Bound struct {
	Kind BoundKind
	Int  int64
	Ref  *VarRef
}

// Range is a pair of bounds, each independently open, concrete or
// extracted.
type Range struct {
	Lo  Bound
	Hi  Bound
	Pos Position
}

// ParamAssign is a typed parameter assignment with trailing options.
type ParamAssign struct {
	Name    string
	Type    *TypeSpec
	Value   ParamValue
	Options []ParamOption
	Pos     Position
}

// ParamValue is the assigned value of a parameter. Exactly one field is
// set.
type ParamValue struct {
	Ref   *VarRef
	Range *Range
	Value *Value
}

// OptionClass separates signal options from the connection handler option.
type OptionClass int

const (
	SignalOption OptionClass = iota
	HandlerOption
)

// ParamOption is a parameter option, optionally carrying a value.
type ParamOption struct {
	Name  string
	Class OptionClass
	Value *OptionValue
	Pos   Position
}

// OptionValue is an option's assigned value. Exactly one field is set.
type OptionValue struct {
	Ref    *VarRef
	Status *StatusConst
	Value  *Value
}

// StatusConst is one of the fixed status constants. Alarm is true for
// авария and тревога; Text preserves the source spelling.
type StatusConst struct {
	Text  string
	Alarm bool
}

// DirectiveKind enumerates the three directive alternatives.
type DirectiveKind int

const (
	UseKind DirectiveKind = iota
	PutKind
	BindKind
)

func (k DirectiveKind) String() string {
	switch k {
	case UseKind:
		return "использовать"
	case PutKind:
		return "подстановка"
	case BindKind:
		return "привязать"
	default:
		return "unknown"
	}
}

// Directive is a closed tagged variant over the three directive kinds.
// Exactly one of Use, Put, Bind is set, selected by Kind.
type Directive struct {
	Kind DirectiveKind
	Use  *UseDirective
	Put  *PutDirective
	Bind *BindDirective
	Pos  Position
}

// UseDirective selects a source's value set linearly. A nil Exclude is
// the "все" form (no filter).
type UseDirective struct {
	Source string
	Pos    Position

	Exclude *UseFilter
}

// UseFilter is the excluded value of a use directive: a literal or a
// variable extraction.
type UseFilter struct {
	Ref   *VarRef
	Value *Value
}

// PutDirective copies a value extracted from Source into the named
// destination, optionally through an index-mapping rule.
type PutDirective struct {
	Dest   string
	Source VarRef
	Rule   *PutRule
	Pos    Position
}

// PutRule is the index-mapping rule of a put directive: either a bracketed
// window [Lo:Hi] <- [i], or a variable extraction resolving to the window
// bounds.
type PutRule struct {
	Lo  int64
	Hi  int64
	Ref *VarRef
}

// BindDirective attaches a non-owning reference to an existing declaration
// resolved by name.
type BindDirective struct {
	Name Name
}
