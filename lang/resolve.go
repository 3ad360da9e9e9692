package lang

import (
	"context"
	"log/slog"
)

// Resolve walks the parsed module once, in source order, producing the
// resolved model. The walk binds every name at its point of use, so a
// construct may only reference declarations that precede it.
func Resolve(
	ctx context.Context,
	mod *Module,
	opts ...Option,
) (*Model, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &resolver{
		model: &Model{Name: mod.Name},
	}

	root := newScope(scopeModule, mod.Name, nil)

	err := r.entries(root, mod.Entries, &container{})
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "resolve complete",
		slog.Int("object_count", len(r.model.Objects)),
		slog.Int("signal_count", len(r.model.Signals)),
		slog.Int("connection_count", len(r.model.Connections)),
		slog.Int("binding_count", len(r.model.Bindings)))

	return r.model, nil
}

// resolver carries the walk state. instantiating is nonzero while a
// template body is being expanded, switching the failure kind for
// unsatisfied lookups.
type resolver struct {
	model         *Model
	instantiating int
}

// container is the construct currently receiving declarations. At most
// one of object, signal and conn is set; all nil means module level.
type container struct {
	path   string
	object *ObjectDecl
	signal *SignalDecl
	conn   *ConnectionDecl
	params map[string]Position
}

func (c *container) child(name string) string {
	if c.path == "" {
		return name
	}

	return c.path + "/" + name
}

func (r *resolver) entries(
	scope *Scope,
	entries []Entry,
	owner *container,
) error {
	for _, entry := range entries {
		var err error

		switch e := entry.(type) {
		case *Object:
			err = r.object(scope, e, owner)

		case *VarDecl:
			err = r.varDecl(scope, e, owner)

		case *Template:
			err = r.template(scope, e)

		case *Context:
			// Bound when the enclosing template was declared, or
			// already carrying row values during expansion.

		case *Connection:
			err = r.connection(scope, e, owner)

		case *Signal:
			err = r.signal(scope, e, owner)

		case *ParamAssign:
			err = r.param(scope, e, owner)

		case *Directive:
			err = r.directive(scope, e, owner)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// lookupVar resolves an extraction to its value. Inside a template
// expansion a miss means the instantiation left a variable without a
// binding; everywhere else it is a plain unresolved reference.
func (r *resolver) lookupVar(scope *Scope, ref VarRef) (*Datum, error) {
	sym, ok := scope.lookup(ref.Name)
	if ok && sym.Kind == SymVar && sym.Datum != nil {
		return sym.Datum, nil
	}

	if r.instantiating > 0 {
		e := ErrUnboundTemplateVariable.WithPosition(ref.Pos).
			With(
				slog.String("name", ref.Name),
				slog.String("scope", scope.name),
			)

		if ok {
			e = e.With(slog.String("text", "declared without a value"))
		}

		return nil, e
	}

	if ok {
		return nil, ErrUnresolvedVariable.WithPosition(ref.Pos).
			With(
				slog.String("name", ref.Name),
				slog.String("scope", scope.name),
				slog.String("text", "declared without a value"),
			)
	}

	return nil, scope.unresolved(ref)
}

// resolveName computes a declaration name, substituting the value of
// each extension.
func (r *resolver) resolveName(scope *Scope, name Name) (string, error) {
	full := name.Base

	for _, ref := range name.Ext {
		d, err := r.lookupVar(scope, ref)
		if err != nil {
			return "", err
		}

		full += d.String()
	}

	return full, nil
}

func (r *resolver) object(
	scope *Scope,
	obj *Object,
	owner *container,
) error {
	name, err := r.resolveName(scope, obj.Name)
	if err != nil {
		return err
	}

	decl := &ObjectDecl{
		Name: name,
		Path: owner.child(name),
		Type: obj.Type,
		Pos:  obj.Pos,
	}

	err = scope.declare(&Symbol{
		Name: name,
		Kind: SymObject,
		Pos:  obj.Pos,
		Decl: decl,
	})
	if err != nil {
		return err
	}

	if owner.object != nil {
		owner.object.Objects = append(owner.object.Objects, decl)
	} else {
		r.model.Objects = append(r.model.Objects, decl)
	}

	inner := newScope(scopeObject, name, scope)

	return r.entries(inner, obj.Body, &container{
		path:   decl.Path,
		object: decl,
	})
}

func (r *resolver) varDecl(
	scope *Scope,
	decl *VarDecl,
	owner *container,
) error {
	datum, origin, err := r.initValue(scope, decl)
	if err != nil {
		return err
	}

	for _, ref := range decl.Names {
		// Each name gets its own copy so later substitution into
		// one does not leak into the others.
		var val *Datum
		if datum != nil {
			val = cloneDatum(datum)
		}

		entry := &VariableDecl{
			Name:   ref.Name,
			Scope:  owner.path,
			Origin: origin,
			Type:   decl.Type,
			Value:  val,
			Pos:    ref.Pos,
		}

		err = scope.declare(&Symbol{
			Name:  ref.Name,
			Kind:  SymVar,
			Pos:   ref.Pos,
			Datum: val,
			Decl:  entry,
		})
		if err != nil {
			return err
		}

		r.model.Variables = append(r.model.Variables, entry)
	}

	return nil
}

// initValue computes a declaration's initial value, or nil when the
// declaration carries none. The second result names the alias origin
// for extraction and dynamic name initializers.
func (r *resolver) initValue(
	scope *Scope,
	decl *VarDecl,
) (*Datum, string, error) {
	if decl.Init == nil {
		return nil, "", nil
	}

	switch {
	case decl.Init.Dyn != nil:
		text := decl.Init.Dyn.Base

		for _, ref := range decl.Init.Dyn.Ext {
			d, err := r.lookupVar(scope, ref)
			if err != nil {
				return nil, "", err
			}

			text += d.String()
		}

		datum := &Datum{Kind: ScalarStr, Text: text}

		err := checkType(decl.Type, datum, decl.Init.Dyn.Pos)
		if err != nil {
			return nil, "", err
		}

		return datum, text, nil

	case decl.Init.Ref != nil:
		d, err := r.lookupVar(scope, *decl.Init.Ref)
		if err != nil {
			return nil, "", err
		}

		err = checkType(decl.Type, d, decl.Init.Ref.Pos)
		if err != nil {
			return nil, "", err
		}

		return d, decl.Init.Ref.Name, nil

	default:
		datum, err := r.value(scope, decl.Init.Value)
		if err != nil {
			return nil, "", err
		}

		err = checkType(decl.Type, datum, decl.Init.Value.Pos)
		if err != nil {
			return nil, "", err
		}

		return datum, "", nil
	}
}

// value materializes a literal, resolving any extractions among array
// elements.
func (r *resolver) value(scope *Scope, val *Value) (*Datum, error) {
	switch val.Kind {
	case ValueInt:
		return &Datum{Kind: ScalarInt, Int: val.Int}, nil

	case ValueFloat:
		return &Datum{Kind: ScalarFloat, Float: val.Float}, nil

	case ValueString:
		return &Datum{Kind: ScalarStr, Text: val.Text}, nil

	case ValueBool:
		return &Datum{Kind: ScalarBool, Bool: val.Bool}, nil

	default:
		datum := &Datum{Kind: ScalarArray}

		for _, item := range val.Items {
			if item.Ref != nil {
				d, err := r.lookupVar(scope, *item.Ref)
				if err != nil {
					return nil, err
				}

				datum.List = append(datum.List, *d)

				continue
			}

			d, err := r.value(scope, item.Value)
			if err != nil {
				return nil, err
			}

			datum.List = append(datum.List, *d)
		}

		return datum, nil
	}
}

// template registers the declaration and its contexts without touching
// the body; expansion happens when a use directive drives it.
func (r *resolver) template(scope *Scope, tmpl *Template) error {
	err := scope.declare(&Symbol{
		Name: tmpl.Name,
		Kind: SymTemplate,
		Pos:  tmpl.Pos,
		Decl: tmpl,
	})
	if err != nil {
		return err
	}

	r.model.Templates = append(r.model.Templates, tmpl)

	// Contexts are visible from outside the template so substitution
	// directives can load rows into them before any expansion.
	for _, entry := range tmpl.Body {
		ctx, ok := entry.(*Context)
		if !ok {
			continue
		}

		state := &contextState{
			name:     ctx.Name,
			vars:     ctx.Vars,
			template: tmpl,
			scope:    scope,
		}

		err = scope.declare(&Symbol{
			Name: ctx.Name,
			Kind: SymContext,
			Pos:  ctx.Pos,
			Decl: state,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// contextState accumulates substitution rows for one template context.
// expanding is set while the context's template body is being resolved,
// so a use directive inside that body cannot expand it again.
type contextState struct {
	name      string
	vars      []*VarDecl
	rows      [][]Datum
	template  *Template
	scope     *Scope
	expanding bool
}

// arity counts the names bound per row.
func (c *contextState) arity() int {
	n := 0
	for _, decl := range c.vars {
		n += len(decl.Names)
	}

	return n
}

func (r *resolver) connection(
	scope *Scope,
	conn *Connection,
	owner *container,
) error {
	name, err := r.resolveName(scope, conn.Name)
	if err != nil {
		return err
	}

	decl := &ConnectionDecl{
		Name: name,
		Path: owner.child(name),
		Pos:  conn.Pos,
	}

	err = scope.declare(&Symbol{
		Name: name,
		Kind: SymConnection,
		Pos:  conn.Pos,
		Decl: decl,
	})
	if err != nil {
		return err
	}

	switch {
	case owner.signal != nil:
		owner.signal.Connections = append(owner.signal.Connections, decl)

	case owner.object != nil:
		owner.object.Connections = append(owner.object.Connections, decl)
	}

	r.model.Connections = append(r.model.Connections, decl)

	inner := newScope(scopeConnection, name, scope)

	return r.entries(inner, conn.Body, &container{
		path: decl.Path,
		conn: decl,
	})
}

func (r *resolver) signal(
	scope *Scope,
	sig *Signal,
	owner *container,
) error {
	name, err := r.resolveName(scope, sig.Name)
	if err != nil {
		return err
	}

	decl := &SignalDecl{
		Name:      name,
		Path:      owner.child(name),
		Direction: sig.Direction,
		Type:      sig.Type,
		Pos:       sig.Pos,
	}

	err = scope.declare(&Symbol{
		Name: name,
		Kind: SymSignal,
		Pos:  sig.Pos,
		Decl: decl,
	})
	if err != nil {
		return err
	}

	if owner.object != nil {
		owner.object.Signals = append(owner.object.Signals, decl)
	}

	r.model.Signals = append(r.model.Signals, decl)

	inner := newScope(scopeSignal, name, scope)

	return r.entries(inner, sig.Body, &container{
		path:   decl.Path,
		signal: decl,
	})
}

func (r *resolver) param(
	scope *Scope,
	param *ParamAssign,
	owner *container,
) error {
	if owner.params == nil {
		owner.params = make(map[string]Position)
	}

	if prev, ok := owner.params[param.Name]; ok {
		return ErrDuplicateDeclaration.WithPosition(param.Pos).
			With(
				slog.String("name", param.Name),
				slog.String("scope", owner.path),
				slog.String("previous", prev.String()),
			)
	}

	owner.params[param.Name] = param.Pos

	decl := &ParamDecl{
		Name: param.Name,
		Type: param.Type,
		Pos:  param.Pos,
	}

	switch {
	case param.Value.Ref != nil:
		d, err := r.lookupVar(scope, *param.Value.Ref)
		if err != nil {
			return err
		}

		err = checkType(param.Type, d, param.Value.Ref.Pos)
		if err != nil {
			return err
		}

		decl.Value = cloneDatum(d)

	case param.Value.Range != nil:
		if !rangeMatches(param.Type) {
			return ErrTypeMismatch.WithPosition(param.Value.Range.Pos).
				With(
					slog.String("want", "int or float"),
					slog.String("got", FormatType(param.Type)),
					slog.String("text", "range constraint on non-numeric parameter"),
				)
		}

		rng, err := r.rangeVal(scope, param.Value.Range)
		if err != nil {
			return err
		}

		decl.Range = rng

	default:
		d, err := r.value(scope, param.Value.Value)
		if err != nil {
			return err
		}

		err = checkType(param.Type, d, param.Value.Value.Pos)
		if err != nil {
			return err
		}

		decl.Value = d
	}

	opts, err := r.options(scope, param.Options)
	if err != nil {
		return err
	}

	decl.Options = opts

	switch {
	case owner.signal != nil:
		owner.signal.Params = append(owner.signal.Params, decl)

	case owner.conn != nil:
		owner.conn.Params = append(owner.conn.Params, decl)

	case owner.object != nil:
		owner.object.Params = append(owner.object.Params, decl)
	}

	return nil
}

// options resolves a parameter's option list. The handler option only
// makes sense on connection parameters and signal options only on signal
// parameters; the scope kind decides which class is admissible.
func (r *resolver) options(
	scope *Scope,
	opts []ParamOption,
) ([]*OptionDecl, error) {
	if len(opts) == 0 {
		return nil, nil
	}

	decls := make([]*OptionDecl, 0, len(opts))
	seen := make(map[string]Position, len(opts))

	for _, opt := range opts {
		if prev, ok := seen[opt.Name]; ok {
			return nil, ErrDuplicateDeclaration.WithPosition(opt.Pos).
				With(
					slog.String("name", opt.Name),
					slog.String("previous", prev.String()),
				)
		}

		seen[opt.Name] = opt.Pos

		wantScope := scopeSignal
		if opt.Class == HandlerOption {
			wantScope = scopeConnection
		}

		if scope.kind != wantScope {
			return nil, ErrParse.WithPosition(opt.Pos).
				With(
					slog.String("option", opt.Name),
					slog.String("scope", scope.kind.String()),
					slog.String("text", "option not admissible in this scope"),
				)
		}

		decl := &OptionDecl{
			Name:  opt.Name,
			Class: opt.Class,
			Pos:   opt.Pos,
		}

		if opt.Value != nil {
			switch {
			case opt.Value.Ref != nil:
				d, err := r.lookupVar(scope, *opt.Value.Ref)
				if err != nil {
					return nil, err
				}

				decl.Value = cloneDatum(d)

			case opt.Value.Status != nil:
				decl.Status = opt.Value.Status

			default:
				d, err := r.value(scope, opt.Value.Value)
				if err != nil {
					return nil, err
				}

				decl.Value = d
			}
		}

		decls = append(decls, decl)
	}

	return decls, nil
}

// rangeVal resolves both bounds and validates their order. Open bounds
// stay nil and never conflict.
func (r *resolver) rangeVal(scope *Scope, rng *Range) (*RangeVal, error) {
	lo, err := r.bound(scope, rng.Lo, rng.Pos)
	if err != nil {
		return nil, err
	}

	hi, err := r.bound(scope, rng.Hi, rng.Pos)
	if err != nil {
		return nil, err
	}

	if lo != nil && hi != nil && *lo > *hi {
		return nil, ErrInvalidRange.WithPosition(rng.Pos).
			With(
				slog.Int64("lo", *lo),
				slog.Int64("hi", *hi),
			)
	}

	return &RangeVal{Lo: lo, Hi: hi}, nil
}

func (r *resolver) bound(
	scope *Scope,
	b Bound,
	pos Position,
) (*int64, error) {
	switch b.Kind {
	case BoundOpen:
		return nil, nil

	case BoundRef:
		d, err := r.lookupVar(scope, *b.Ref)
		if err != nil {
			return nil, err
		}

		if d.Kind != ScalarInt {
			return nil, ErrTypeMismatch.WithPosition(pos).
				With(
					slog.String("want", "int"),
					slog.String("got", d.Kind.String()),
					slog.String("text", "range bound"),
				)
		}

		n := d.Int

		return &n, nil

	default:
		n := b.Int

		return &n, nil
	}
}

func (r *resolver) directive(
	scope *Scope,
	dir *Directive,
	owner *container,
) error {
	switch dir.Kind {
	case UseKind:
		return r.useDirective(scope, dir.Use, owner)

	case PutKind:
		return r.putDirective(scope, dir.Put)

	default:
		return r.bindDirective(scope, dir.Bind, dir.Pos, owner)
	}
}

// useDirective consumes a value source. An array variable yields an
// ordered sequence with optional exclusion; a context expands its
// template once per loaded row.
func (r *resolver) useDirective(
	scope *Scope,
	use *UseDirective,
	owner *container,
) error {
	sym, ok := scope.lookup(use.Source)
	if !ok {
		return r.unknownName(scope, use.Source, use.Pos)
	}

	switch sym.Kind {
	case SymVar:
		return r.useSequence(scope, use, sym, owner)

	case SymContext:
		return r.expandTemplate(sym.Decl.(*contextState), owner, use.Pos)

	default:
		return ErrUnresolvedReference.WithPosition(use.Pos).
			With(
				slog.String("name", use.Source),
				slog.String("kind", sym.Kind.String()),
				slog.String("text", "not a value source"),
			)
	}
}

func (r *resolver) useSequence(
	scope *Scope,
	use *UseDirective,
	sym *Symbol,
	owner *container,
) error {
	if sym.Datum == nil {
		return ErrTypeMismatch.WithPosition(use.Pos).
			With(
				slog.String("want", "arr"),
				slog.String("got", "unset"),
				slog.String("name", use.Source),
			)
	}

	// A scalar source reads as a one-element set.
	elems := sym.Datum.List
	if sym.Datum.Kind != ScalarArray {
		elems = []Datum{*sym.Datum}
	}

	seq := &Sequence{
		Name:   use.Source,
		Scope:  owner.path,
		Source: use.Source,
		Pos:    use.Pos,
	}

	if use.Exclude != nil {
		var excl *Datum

		if use.Exclude.Ref != nil {
			d, err := r.lookupVar(scope, *use.Exclude.Ref)
			if err != nil {
				return err
			}

			excl = d
		} else {
			d, err := r.value(scope, use.Exclude.Value)
			if err != nil {
				return err
			}

			excl = d
		}

		seq.Excluded = excl
	}

	// Exclusion is idempotent: a value absent from the source leaves
	// the sequence unchanged.
	for _, elem := range elems {
		if seq.Excluded != nil && elem.Equal(*seq.Excluded) {
			continue
		}

		seq.Values = append(seq.Values, elem)
	}

	r.model.Sequences = append(r.model.Sequences, seq)

	return nil
}

// expandTemplate resolves the template body once per row. Every row gets
// a fresh scope rooted at the template's declaration site, so the copies
// are structurally independent and names bind lexically.
//
// A context with no loaded rows but a full set of initializers expands
// exactly once from those defaults.
func (r *resolver) expandTemplate(
	state *contextState,
	owner *container,
	pos Position,
) error {
	if state.expanding {
		return ErrUnresolvedReference.WithPosition(pos).
			With(
				slog.String("name", state.name),
				slog.String("template", state.template.Name),
				slog.String("text", "context expansion re-enters itself"),
			)
	}

	state.expanding = true
	defer func() { state.expanding = false }()

	rows := state.rows

	if len(rows) == 0 {
		row, ok, err := r.defaultRow(state)
		if err != nil {
			return err
		}

		if ok {
			rows = [][]Datum{row}
		}
	}

	for _, row := range rows {
		inner := newScope(scopeTemplate, state.template.Name, state.scope)

		i := 0

		for _, decl := range state.vars {
			for _, ref := range decl.Names {
				val := row[i]
				i++

				entry := &VariableDecl{
					Name:  ref.Name,
					Scope: owner.path,
					Type:  decl.Type,
					Value: &val,
					Pos:   ref.Pos,
				}

				err := inner.declare(&Symbol{
					Name:  ref.Name,
					Kind:  SymVar,
					Pos:   ref.Pos,
					Datum: &val,
					Decl:  entry,
				})
				if err != nil {
					return err
				}

				r.model.Variables = append(r.model.Variables, entry)
			}
		}

		r.instantiating++

		err := r.entries(inner, state.template.Body, owner)

		r.instantiating--

		if err != nil {
			return err
		}
	}

	return nil
}

// defaultRow builds the implicit row from the context's own
// initializers. Any variable declared without a value disables it.
func (r *resolver) defaultRow(
	state *contextState,
) ([]Datum, bool, error) {
	row := make([]Datum, 0, state.arity())

	for _, decl := range state.vars {
		if decl.Init == nil {
			return nil, false, nil
		}

		datum, _, err := r.initValue(state.scope, decl)
		if err != nil {
			return nil, false, err
		}

		for range decl.Names {
			row = append(row, *cloneDatum(datum))
		}
	}

	return row, true, nil
}

// putDirective loads values into a destination: rows into a context, or
// elements into an array variable under an optional slice rule.
func (r *resolver) putDirective(scope *Scope, put *PutDirective) error {
	src, err := r.lookupVar(scope, put.Source)
	if err != nil {
		return err
	}

	sym, ok := scope.lookup(put.Dest)
	if !ok {
		return r.unknownName(scope, put.Dest, put.Pos)
	}

	switch sym.Kind {
	case SymContext:
		return r.putRows(sym.Decl.(*contextState), src, put)

	case SymVar:
		return r.putVar(scope, sym, src, put)

	default:
		return ErrUnresolvedReference.WithPosition(put.Pos).
			With(
				slog.String("name", put.Dest),
				slog.String("kind", sym.Kind.String()),
				slog.String("text", "not a substitution destination"),
			)
	}
}

// putRows appends context rows from an array source. Each element is one
// row; its arity and per-position types must match the context's
// declarations.
func (r *resolver) putRows(
	state *contextState,
	src *Datum,
	put *PutDirective,
) error {
	if src.Kind != ScalarArray {
		return ErrTypeMismatch.WithPosition(put.Pos).
			With(
				slog.String("want", "arr"),
				slog.String("got", src.Kind.String()),
				slog.String("name", put.Source.Name),
			)
	}

	arity := state.arity()

	for _, elem := range src.List {
		row := elem.List
		if elem.Kind != ScalarArray {
			// A single-name context accepts a flat source.
			row = []Datum{elem}
		}

		if len(row) != arity {
			return ErrTypeMismatch.WithPosition(put.Pos).
				With(
					slog.String("context", state.name),
					slog.Int("want_arity", arity),
					slog.Int("got_arity", len(row)),
				)
		}

		i := 0

		for _, decl := range state.vars {
			for range decl.Names {
				err := checkType(decl.Type, &row[i], put.Pos)
				if err != nil {
					return err
				}

				i++
			}
		}

		state.rows = append(state.rows, row)
	}

	return nil
}

// putVar substitutes into an array variable. Without a rule the whole
// source replaces the destination value; with a slice rule the one-based
// inclusive element window is copied.
func (r *resolver) putVar(
	scope *Scope,
	sym *Symbol,
	src *Datum,
	put *PutDirective,
) error {
	decl := sym.Decl.(*VariableDecl)

	if put.Rule == nil {
		err := checkType(decl.Type, src, put.Pos)
		if err != nil {
			return err
		}

		if sym.Datum == nil {
			sym.Datum = new(Datum)
			decl.Value = sym.Datum
		}

		*sym.Datum = *src
		sym.Datum.List = append([]Datum(nil), src.List...)

		return nil
	}

	lo, hi := put.Rule.Lo, put.Rule.Hi

	if put.Rule.Ref != nil {
		window, err := r.lookupVar(scope, *put.Rule.Ref)
		if err != nil {
			return err
		}

		ok := window.Kind == ScalarArray &&
			len(window.List) == 2 &&
			window.List[0].Kind == ScalarInt &&
			window.List[1].Kind == ScalarInt

		if !ok {
			return ErrTypeMismatch.WithPosition(put.Pos).
				With(
					slog.String("want", "arr [int:2]"),
					slog.String("got", window.Kind.String()),
					slog.String("text", "substitution rule"),
				)
		}

		lo, hi = window.List[0].Int, window.List[1].Int
	}

	if lo > hi {
		return ErrInvalidRange.WithPosition(put.Pos).
			With(
				slog.Int64("lo", lo),
				slog.Int64("hi", hi),
			)
	}

	if src.Kind != ScalarArray {
		return ErrTypeMismatch.WithPosition(put.Pos).
			With(
				slog.String("want", "arr"),
				slog.String("got", src.Kind.String()),
				slog.String("name", put.Source.Name),
			)
	}

	if lo < 1 || hi > int64(len(src.List)) {
		return ErrInvalidRange.WithPosition(put.Pos).
			With(
				slog.Int64("lo", lo),
				slog.Int64("hi", hi),
				slog.Int("length", len(src.List)),
			)
	}

	datum := &Datum{
		Kind: ScalarArray,
		List: append([]Datum(nil), src.List[lo-1:hi]...),
	}

	err := checkType(decl.Type, datum, put.Pos)
	if err != nil {
		return err
	}

	if sym.Datum == nil {
		sym.Datum = new(Datum)
		decl.Value = sym.Datum
	}

	*sym.Datum = *datum

	return nil
}

// bindDirective resolves a declaration name, extensions substituted, and
// records the attachment. Binding a signal scope to a connection marks
// the signal as routed.
func (r *resolver) bindDirective(
	scope *Scope,
	bind *BindDirective,
	pos Position,
	owner *container,
) error {
	name, err := r.resolveName(scope, bind.Name)
	if err != nil {
		return err
	}

	sym, ok := scope.lookup(name)
	if !ok {
		return r.unknownName(scope, name, pos)
	}

	var kind RefKind

	switch sym.Kind {
	case SymConnection:
		kind = RefConnection

	case SymObject:
		kind = RefObject

	case SymSignal:
		kind = RefSignal

	case SymVar:
		kind = RefVariable

	default:
		return ErrUnresolvedReference.WithPosition(pos).
			With(
				slog.String("name", name),
				slog.String("kind", sym.Kind.String()),
				slog.String("text", "not a bindable declaration"),
			)
	}

	if owner.signal != nil && kind == RefConnection {
		owner.signal.Bound = name
	}

	r.model.Bindings = append(r.model.Bindings, &Binding{
		Source: owner.path,
		Target: name,
		Kind:   kind,
		Pos:    pos,
		Decl:   sym.Decl,
	})

	return nil
}

// unknownName builds the lookup failure for a plain identifier,
// attaching near-miss suggestions.
func (r *resolver) unknownName(
	scope *Scope,
	name string,
	pos Position,
) error {
	e := ErrUnresolvedReference.WithPosition(pos).
		With(
			slog.String("name", name),
			slog.String("scope", scope.name),
		)

	if near := suggest(name, scope.visible()); len(near) > 0 {
		e = e.With(slog.Any("suggestions", near))
	}

	return e
}
