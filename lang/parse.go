package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/Omarmeks89/edl-src/log"
)

// Option configures a parse or resolve run.
type Option func(*settings)

type settings struct {
	logger log.Logger
	name   string
}

// WithLogger attaches a logger to the run. The zero Logger discards
// everything, so omitting this option is safe.
func WithLogger(l log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithName sets the translation unit name recorded on the module.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// ParseReader parses a module from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, WrapError(ParseError, err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString tokenizes and parses a module from preprocessed source text.
// The first lexical or grammatical problem aborts the parse; there is no
// error recovery.
func ParseString(
	ctx context.Context,
	src string,
	opts ...Option,
) (*Module, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}

	mod, err := p.parseModule()
	if err != nil {
		return nil, err
	}

	mod.Name = cfg.name

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(toks)),
		slog.Int("entry_count", len(mod.Entries)))

	return mod, nil
}

// parser consumes the token sequence with a fixed lookahead of one token.
type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != KindEOF {
		p.pos++
	}

	return tok
}

func (p *parser) at(kind Kind) bool {
	return p.toks[p.pos].Kind == kind
}

// expect consumes the next token if it has the wanted kind, or fails with
// a ParseError naming the expected and found kinds.
func (p *parser) expect(kind Kind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.fail(tok, kind.String())
	}

	return p.next(), nil
}

func (p *parser) fail(tok Token, expected string) error {
	return ErrParse.WithPosition(tok.Pos).
		With(
			slog.String("expected", expected),
			slog.String("found", tok.Kind.String()),
			slog.String("text", tok.Text),
		)
}

// parseModule parses top-level constructs until the end marker.
func (p *parser) parseModule() (*Module, error) {
	mod := new(Module)

	for !p.at(KindEOF) {
		entry, err := p.parseEntry(scopeModule)
		if err != nil {
			return nil, err
		}

		mod.Entries = append(mod.Entries, entry)
	}

	return mod, nil
}

// parseEntry parses one construct allowed in the given scope kind.
// The leading token selects the alternative; no backtracking.
func (p *parser) parseEntry(scope ScopeKind) (Entry, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindEquipment:
		if scope == scopeConnection || scope == scopeSignal {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseObject()

	case KindSigil:
		if scope == scopeConnection {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseVarDecl()

	case KindTemplate:
		if scope != scopeModule {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseTemplate()

	case KindContext:
		if scope != scopeTemplate {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseContext()

	case KindConnection:
		if scope == scopeConnection {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseConnection()

	case KindSignal:
		if scope == scopeConnection || scope == scopeSignal {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseSignal()

	case KindPoint:
		return p.parseDirective()

	case KindIdent:
		if scope == scopeModule || scope == scopeTemplate {
			return nil, p.fail(tok, "declaration")
		}

		return p.parseParam()

	default:
		return nil, p.fail(tok, "declaration")
	}
}

// parseBody parses "{ entry* }" with the entries allowed in scope.
func (p *parser) parseBody(scope ScopeKind) ([]Entry, error) {
	_, err := p.expect(KindLBrace)
	if err != nil {
		return nil, err
	}

	var body []Entry

	for !p.at(KindRBrace) {
		if p.at(KindEOF) {
			return nil, p.fail(p.peek(), "}")
		}

		entry, err := p.parseEntry(scope)
		if err != nil {
			return nil, err
		}

		body = append(body, entry)
	}

	p.next() // }

	return body, nil
}

// parseObject parses: оборудование (класс_а|класс_ц) name { ... } ;
func (p *parser) parseObject() (*Object, error) {
	start, err := p.expect(KindEquipment)
	if err != nil {
		return nil, err
	}

	typeTok, err := p.expect(KindObjectType)
	if err != nil {
		return nil, err
	}

	objType := ObjectAnalog
	if typeTok.Text == "цифра" {
		objType = ObjectDigital
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(scopeObject)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &Object{
		Type: objType,
		Name: name,
		Body: body,
		Pos:  start.Pos,
	}, nil
}

// parseName parses: ID ("+" "$" ID)*
func (p *parser) parseName() (Name, error) {
	base, err := p.expect(KindIdent)
	if err != nil {
		return Name{}, err
	}

	name := Name{Base: base.Text, Pos: base.Pos}

	for p.at(KindConcat) {
		p.next()

		ref, err := p.parseVarRef()
		if err != nil {
			return Name{}, err
		}

		name.Ext = append(name.Ext, ref)
	}

	return name, nil
}

// parseVarRef parses: "$" ID
func (p *parser) parseVarRef() (VarRef, error) {
	sigil, err := p.expect(KindSigil)
	if err != nil {
		return VarRef{}, err
	}

	id, err := p.expect(KindIdent)
	if err != nil {
		return VarRef{}, err
	}

	return VarRef{Name: id.Text, Pos: sigil.Pos}, nil
}

// parseVarDecl parses:
//
//	"$" ID ("," "$" ID)* ":" type_spec ("=" init)? ";"
func (p *parser) parseVarDecl() (*VarDecl, error) {
	first, err := p.parseVarRef()
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{Names: []VarRef{first}, Pos: first.Pos}

	for p.at(KindComma) {
		p.next()

		ref, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}

		decl.Names = append(decl.Names, ref)
	}

	_, err = p.expect(KindColon)
	if err != nil {
		return nil, err
	}

	decl.Type, err = p.parseTypeSpec()
	if err != nil {
		return nil, err
	}

	if p.at(KindAssign) {
		p.next()

		init, err := p.parseInit()
		if err != nil {
			return nil, err
		}

		decl.Init = init
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return decl, nil
}

// parseInit parses a variable initializer: dynamic name, extraction or
// literal value.
func (p *parser) parseInit() (*Init, error) {
	switch p.peek().Kind {
	case KindLParen:
		dyn, err := p.parseDynName()
		if err != nil {
			return nil, err
		}

		return &Init{Dyn: dyn}, nil

	case KindSigil:
		ref, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}

		return &Init{Ref: &ref}, nil

	default:
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		return &Init{Value: val}, nil
	}
}

// parseDynName parses: "(" ID ("+" "$" ID)* ")"
func (p *parser) parseDynName() (*DynName, error) {
	open, err := p.expect(KindLParen)
	if err != nil {
		return nil, err
	}

	base, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	dyn := &DynName{Base: base.Text, Pos: open.Pos}

	for p.at(KindConcat) {
		p.next()

		ref, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}

		dyn.Ext = append(dyn.Ext, ref)
	}

	_, err = p.expect(KindRParen)
	if err != nil {
		return nil, err
	}

	return dyn, nil
}

// parseTemplate parses: шаблон ID { ... } ;
func (p *parser) parseTemplate() (*Template, error) {
	start, err := p.expect(KindTemplate)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(scopeTemplate)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &Template{Name: name.Text, Body: body, Pos: start.Pos}, nil
}

// parseContext parses: контекст ID { var_decl* } ;
func (p *parser) parseContext() (*Context, error) {
	start, err := p.expect(KindContext)
	if err != nil {
		return nil, err
	}

	name, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindLBrace)
	if err != nil {
		return nil, err
	}

	ctx := &Context{Name: name.Text, Pos: start.Pos}

	for !p.at(KindRBrace) {
		if p.at(KindEOF) {
			return nil, p.fail(p.peek(), "}")
		}

		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}

		ctx.Vars = append(ctx.Vars, decl)
	}

	p.next() // }

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return ctx, nil
}

// parseConnection parses: соединение name { ... } ;
func (p *parser) parseConnection() (*Connection, error) {
	start, err := p.expect(KindConnection)
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(scopeConnection)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &Connection{Name: name, Body: body, Pos: start.Pos}, nil
}

// parseSignal parses: сигнал direction sig_type name { ... } ;
func (p *parser) parseSignal() (*Signal, error) {
	start, err := p.expect(KindSignal)
	if err != nil {
		return nil, err
	}

	dirTok, err := p.expect(KindDirection)
	if err != nil {
		return nil, err
	}

	dir := Input
	if dirTok.Text == "выходной" {
		dir = Output
	}

	typeTok, err := p.expect(KindSignalType)
	if err != nil {
		return nil, err
	}

	sigType := SignalAnalog
	if typeTok.Text == "дискрет" {
		sigType = SignalDiscrete
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody(scopeSignal)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return &Signal{
		Name:      name,
		Direction: dir,
		Type:      sigType,
		Body:      body,
		Pos:       start.Pos,
	}, nil
}

// parseParam parses:
//
//	ID ":" type_spec "=" (var_extract | range | value) option* ";"
func (p *parser) parseParam() (*ParamAssign, error) {
	name, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	param := &ParamAssign{Name: name.Text, Pos: name.Pos}

	_, err = p.expect(KindColon)
	if err != nil {
		return nil, err
	}

	param.Type, err = p.parseTypeSpec()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindAssign)
	if err != nil {
		return nil, err
	}

	switch p.peek().Kind {
	case KindSigil:
		ref, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}

		param.Value.Ref = &ref

	case KindRange:
		rng, err := p.parseRange()
		if err != nil {
			return nil, err
		}

		param.Value.Range = rng

	default:
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		param.Value.Value = val
	}

	param.Options, err = p.parseOptions()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return param, nil
}

// parseOptions parses trailing parameter options. The parser accepts both
// option classes anywhere; placement rules (signal options on signal
// parameters, the handler option on connection parameters) are enforced
// during resolution.
func (p *parser) parseOptions() ([]ParamOption, error) {
	var opts []ParamOption

	for p.at(KindSignalOption) || p.at(KindConnOption) {
		tok := p.next()

		opt := ParamOption{Name: tok.Text, Pos: tok.Pos}
		if tok.Kind == KindConnOption {
			opt.Class = HandlerOption
		}

		if p.at(KindAssign) {
			p.next()

			val, err := p.parseOptionValue()
			if err != nil {
				return nil, err
			}

			opt.Value = val
		}

		opts = append(opts, opt)
	}

	return opts, nil
}

// parseOptionValue parses an option value: extraction, status constant or
// literal value.
func (p *parser) parseOptionValue() (*OptionValue, error) {
	switch p.peek().Kind {
	case KindSigil:
		ref, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}

		return &OptionValue{Ref: &ref}, nil

	case KindStatusConst:
		tok := p.next()

		return &OptionValue{
			Status: &StatusConst{
				Text:  tok.Text,
				Alarm: tok.Text != "норма",
			},
		}, nil

	default:
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		return &OptionValue{Value: val}, nil
	}
}

// parseTypeSpec parses a scalar type name or an array spec.
func (p *parser) parseTypeSpec() (*TypeSpec, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindTypeInt:
		p.next()

		return &TypeSpec{Scalar: ScalarInt, Pos: tok.Pos}, nil

	case KindTypeFloat:
		p.next()

		return &TypeSpec{Scalar: ScalarFloat, Pos: tok.Pos}, nil

	case KindTypeStr:
		p.next()

		return &TypeSpec{Scalar: ScalarStr, Pos: tok.Pos}, nil

	case KindTypeBool:
		p.next()

		return &TypeSpec{Scalar: ScalarBool, Pos: tok.Pos}, nil

	case KindTypeArray:
		return p.parseArraySpec()

	default:
		return nil, p.fail(tok, "type")
	}
}

// parseArraySpec parses:
//
//	arr "[" elem ("," elem)* "]"
//	elem: type_spec (":" INT)? | type_spec ".."
//
// The ellipsis is only accepted on the final element; anything following
// it is a ParseError.
func (p *parser) parseArraySpec() (*TypeSpec, error) {
	start, err := p.expect(KindTypeArray)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindLBracket)
	if err != nil {
		return nil, err
	}

	spec := &TypeSpec{Scalar: ScalarArray, Pos: start.Pos}

	for {
		elemSpec, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}

		elem := ArrayElem{Spec: elemSpec}

		switch p.peek().Kind {
		case KindColon:
			p.next()

			sizeTok, err := p.expect(KindInt)
			if err != nil {
				return nil, err
			}

			size, err := strconv.Atoi(sizeTok.Text)
			if err != nil {
				return nil, ErrParse.WithPosition(sizeTok.Pos).Wrap(err)
			}

			// An absent count already means one element, so an explicit
			// count must be at least one.
			if size < 1 {
				return nil, p.fail(sizeTok, "positive element count")
			}

			elem.Size = size

		case KindEllipsis:
			p.next()

			elem.Ellipsis = true
			spec.Elems = append(spec.Elems, elem)

			// Nothing may follow an ellipsis element.
			_, err = p.expect(KindRBracket)
			if err != nil {
				return nil, err
			}

			return spec, nil
		}

		spec.Elems = append(spec.Elems, elem)

		if p.at(KindComma) {
			p.next()

			continue
		}

		_, err = p.expect(KindRBracket)
		if err != nil {
			return nil, err
		}

		return spec, nil
	}
}

// parseValue parses a literal: signed numeric, string, boolean or array.
func (p *parser) parseValue() (*Value, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindMinus, KindInt, KindFloat:
		return p.parseNumeric()

	case KindString:
		p.next()

		return &Value{Kind: ValueString, Text: tok.Text, Pos: tok.Pos}, nil

	case KindBool:
		p.next()

		return &Value{
			Kind: ValueBool,
			Text: tok.Text,
			Bool: tok.Text == "Да",
			Pos:  tok.Pos,
		}, nil

	case KindLBracket:
		return p.parseArrayValue()

	default:
		return nil, p.fail(tok, "value")
	}
}

// parseNumeric parses an optionally negated integer or float literal.
func (p *parser) parseNumeric() (*Value, error) {
	tok := p.peek()
	neg := false

	if tok.Kind == KindMinus {
		p.next()

		neg = true
	}

	num := p.peek()

	switch num.Kind {
	case KindInt:
		p.next()

		n, err := strconv.ParseInt(num.Text, 10, 64)
		if err != nil {
			return nil, ErrParse.WithPosition(num.Pos).Wrap(err)
		}

		if neg {
			n = -n
		}

		return &Value{Kind: ValueInt, Int: n, Pos: tok.Pos}, nil

	case KindFloat:
		p.next()

		f, err := strconv.ParseFloat(num.Text, 64)
		if err != nil {
			return nil, ErrParse.WithPosition(num.Pos).Wrap(err)
		}

		if neg {
			f = -f
		}

		return &Value{Kind: ValueFloat, Float: f, Pos: tok.Pos}, nil

	default:
		return nil, p.fail(num, "number")
	}
}

// parseArrayValue parses: "[" (value | var_extract) ("," ...)* "]"
func (p *parser) parseArrayValue() (*Value, error) {
	open, err := p.expect(KindLBracket)
	if err != nil {
		return nil, err
	}

	val := &Value{Kind: ValueArray, Pos: open.Pos}

	for !p.at(KindRBracket) {
		if len(val.Items) > 0 {
			_, err = p.expect(KindComma)
			if err != nil {
				return nil, err
			}
		}

		if p.at(KindSigil) {
			ref, err := p.parseVarRef()
			if err != nil {
				return nil, err
			}

			val.Items = append(val.Items, ArrayItem{Ref: &ref})

			continue
		}

		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		val.Items = append(val.Items, ArrayItem{Value: item})
	}

	p.next() // ]

	return val, nil
}

// parseRange parses: диапазон "[" bound "," bound "]"
func (p *parser) parseRange() (*Range, error) {
	start, err := p.expect(KindRange)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindLBracket)
	if err != nil {
		return nil, err
	}

	lo, err := p.parseBound()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindComma)
	if err != nil {
		return nil, err
	}

	hi, err := p.parseBound()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindRBracket)
	if err != nil {
		return nil, err
	}

	return &Range{Lo: lo, Hi: hi, Pos: start.Pos}, nil
}

// parseBound parses one range bound: "~", an integer, or an extraction.
func (p *parser) parseBound() (Bound, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindTilde:
		p.next()

		return Bound{Kind: BoundOpen}, nil

	case KindSigil:
		ref, err := p.parseVarRef()
		if err != nil {
			return Bound{}, err
		}

		return Bound{Kind: BoundRef, Ref: &ref}, nil

	case KindInt:
		p.next()

		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return Bound{}, ErrParse.WithPosition(tok.Pos).Wrap(err)
		}

		return Bound{Kind: BoundInt, Int: n}, nil

	default:
		return Bound{}, p.fail(tok, "range bound")
	}
}

// parseDirective parses: "." (use | put | bind) ";"
func (p *parser) parseDirective() (*Directive, error) {
	start, err := p.expect(KindPoint)
	if err != nil {
		return nil, err
	}

	dir := &Directive{Pos: start.Pos}

	switch p.peek().Kind {
	case KindUse:
		dir.Kind = UseKind

		dir.Use, err = p.parseUse()

	case KindPut:
		dir.Kind = PutKind

		dir.Put, err = p.parsePut()

	case KindBind:
		dir.Kind = BindKind

		dir.Bind, err = p.parseBind()

	default:
		return nil, p.fail(p.peek(), "directive")
	}

	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindSemicolon)
	if err != nil {
		return nil, err
	}

	return dir, nil
}

// parseUse parses:
//
//	использовать ID линейно значения (кроме (value | var_extract) | все)
func (p *parser) parseUse() (*UseDirective, error) {
	start, err := p.expect(KindUse)
	if err != nil {
		return nil, err
	}

	src, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindUseMethod)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindValues)
	if err != nil {
		return nil, err
	}

	use := &UseDirective{Source: src.Text, Pos: start.Pos}

	if p.at(KindExcept) {
		p.next()

		if p.at(KindSigil) {
			ref, err := p.parseVarRef()
			if err != nil {
				return nil, err
			}

			use.Exclude = &UseFilter{Ref: &ref}
		} else {
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}

			use.Exclude = &UseFilter{Value: val}
		}

		return use, nil
	}

	_, err = p.expect(KindAll)
	if err != nil {
		return nil, err
	}

	return use, nil
}

// parsePut parses:
//
//	подстановка в ID из var_extract (правило rule)?
func (p *parser) parsePut() (*PutDirective, error) {
	start, err := p.expect(KindPut)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindIn)
	if err != nil {
		return nil, err
	}

	dest, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindFrom)
	if err != nil {
		return nil, err
	}

	src, err := p.parseVarRef()
	if err != nil {
		return nil, err
	}

	put := &PutDirective{Dest: dest.Text, Source: src, Pos: start.Pos}

	if p.at(KindRule) {
		put.Rule, err = p.parseRule()
		if err != nil {
			return nil, err
		}
	}

	return put, nil
}

// parseRule parses:
//
//	правило ("[" INT ":" INT "]" "<-" "[" i "]" | var_extract)
func (p *parser) parseRule() (*PutRule, error) {
	_, err := p.expect(KindRule)
	if err != nil {
		return nil, err
	}

	if p.at(KindSigil) {
		ref, err := p.parseVarRef()
		if err != nil {
			return nil, err
		}

		return &PutRule{Ref: &ref}, nil
	}

	_, err = p.expect(KindLBracket)
	if err != nil {
		return nil, err
	}

	loTok, err := p.expect(KindInt)
	if err != nil {
		return nil, err
	}

	lo, err := strconv.ParseInt(loTok.Text, 10, 64)
	if err != nil {
		return nil, ErrParse.WithPosition(loTok.Pos).Wrap(err)
	}

	_, err = p.expect(KindColon)
	if err != nil {
		return nil, err
	}

	hiTok, err := p.expect(KindInt)
	if err != nil {
		return nil, err
	}

	hi, err := strconv.ParseInt(hiTok.Text, 10, 64)
	if err != nil {
		return nil, ErrParse.WithPosition(hiTok.Pos).Wrap(err)
	}

	_, err = p.expect(KindRBracket)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindJunction)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindLBracket)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindIter)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(KindRBracket)
	if err != nil {
		return nil, err
	}

	return &PutRule{Lo: lo, Hi: hi}, nil
}

// parseBind parses: привязать (ID | "(" ID ("+" "$" ID)* ")")
func (p *parser) parseBind() (*BindDirective, error) {
	_, err := p.expect(KindBind)
	if err != nil {
		return nil, err
	}

	if p.at(KindLParen) {
		p.next()

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		_, err = p.expect(KindRParen)
		if err != nil {
			return nil, err
		}

		return &BindDirective{Name: name}, nil
	}

	id, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	return &BindDirective{Name: Name{Base: id.Text, Pos: id.Pos}}, nil
}
