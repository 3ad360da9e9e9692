package lang

import (
	"log/slog"
)

// ScopeKind identifies the construct a scope belongs to. Lookup rules are
// uniform across kinds; the kind gates which constructs may be declared
// and which directives may run.
type ScopeKind int

const (
	scopeModule ScopeKind = iota
	scopeObject
	scopeTemplate
	scopeContext
	scopeConnection
	scopeSignal
)

func (k ScopeKind) String() string {
	switch k {
	case scopeModule:
		return "module"
	case scopeObject:
		return "object"
	case scopeTemplate:
		return "template"
	case scopeContext:
		return "context"
	case scopeConnection:
		return "connection"
	case scopeSignal:
		return "signal"
	}

	return "unknown"
}

// SymbolKind classifies a declared name.
type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymObject
	SymTemplate
	SymContext
	SymConnection
	SymSignal
	SymSequence
)

func (k SymbolKind) String() string {
	switch k {
	case SymVar:
		return "variable"
	case SymObject:
		return "object"
	case SymTemplate:
		return "template"
	case SymContext:
		return "context"
	case SymConnection:
		return "connection"
	case SymSignal:
		return "signal"
	case SymSequence:
		return "sequence"
	}

	return "unknown"
}

// Symbol is one declared name in a scope.
type Symbol struct {
	Name string
	Kind SymbolKind
	Pos  Position

	// Datum holds the resolved value for variables and sequences.
	Datum *Datum

	// Decl points at the owner's resolved form. The concrete type
	// depends on Kind: *VariableDecl, *ObjectDecl, *Template,
	// *contextState, *ConnectionDecl or *SignalDecl.
	Decl any
}

// Scope is one node of the lexical scope tree. Declarations keep source
// order; lookups walk toward the root.
type Scope struct {
	kind   ScopeKind
	name   string
	parent *Scope
	order  []string
	table  map[string]*Symbol
}

func newScope(kind ScopeKind, name string, parent *Scope) *Scope {
	return &Scope{
		kind:   kind,
		name:   name,
		parent: parent,
		table:  make(map[string]*Symbol),
	}
}

// declare installs a symbol in this scope. Redefining a name already
// present in the same scope fails; shadowing an outer declaration is
// allowed.
func (s *Scope) declare(sym *Symbol) error {
	if prev, ok := s.table[sym.Name]; ok {
		return ErrDuplicateDeclaration.WithPosition(sym.Pos).
			With(
				slog.String("name", sym.Name),
				slog.String("scope", s.name),
				slog.String("previous", prev.Pos.String()),
			)
	}

	s.table[sym.Name] = sym
	s.order = append(s.order, sym.Name)

	return nil
}

// lookup resolves a name through this scope and its ancestors. The
// innermost declaration wins.
func (s *Scope) lookup(name string) (*Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.table[name]; ok {
			return sym, true
		}
	}

	return nil, false
}

// visible collects every name reachable from this scope, innermost first.
// Used for suggestions on failed lookups.
func (s *Scope) visible() []string {
	var names []string

	seen := make(map[string]bool)

	for scope := s; scope != nil; scope = scope.parent {
		for _, name := range scope.order {
			if !seen[name] {
				seen[name] = true

				names = append(names, name)
			}
		}
	}

	return names
}

// unresolved builds the lookup failure for a variable reference,
// attaching near-miss suggestions from the visible names.
func (s *Scope) unresolved(ref VarRef) error {
	e := ErrUnresolvedVariable.WithPosition(ref.Pos).
		With(
			slog.String("name", ref.Name),
			slog.String("scope", s.name),
		)

	if near := suggest(ref.Name, s.visible()); len(near) > 0 {
		e = e.With(slog.Any("suggestions", near))
	}

	return e
}
