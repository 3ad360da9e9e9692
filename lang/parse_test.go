package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Module {
	t.Helper()

	mod, err := ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return mod
}

func TestParseString_TopLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int // number of top-level entries
	}{
		{
			name:  "empty module",
			input: "",
			want:  0,
		},
		{
			name:  "single object",
			input: "оборудование класс_а TANK { };",
			want:  1,
		},
		{
			name:  "object and variable",
			input: "$n : int = 1;\nоборудование класс_ц PUMP+$n { };",
			want:  2,
		},
		{
			name:  "template and connection",
			input: "шаблон T { };\nсоединение LINK { };",
			want:  2,
		},
		{
			name: "signal with body",
			input: `сигнал выходной дискрет CMD {
				значение : int = 0;
			};`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := mustParse(t, tt.input)

			if len(mod.Entries) != tt.want {
				t.Errorf("expected %d entries, got %d",
					tt.want, len(mod.Entries))
			}
		})
	}
}

func TestParseString_Object(t *testing.T) {
	mod := mustParse(t, `
		оборудование класс_а TANK+$n {
			объем : float = 10.5;
		};
	`)

	obj, ok := mod.Entries[0].(*Object)
	if !ok {
		t.Fatalf("expected object, got %T", mod.Entries[0])
	}

	if obj.Type != ObjectAnalog {
		t.Errorf("expected analog class, got %v", obj.Type)
	}

	if obj.Name.Base != "TANK" || len(obj.Name.Ext) != 1 {
		t.Errorf("unexpected name: %+v", obj.Name)
	}

	if obj.Name.Ext[0].Name != "n" {
		t.Errorf("expected extension n, got %q", obj.Name.Ext[0].Name)
	}

	param, ok := obj.Body[0].(*ParamAssign)
	if !ok {
		t.Fatalf("expected parameter, got %T", obj.Body[0])
	}

	if param.Name != "объем" || param.Value.Value.Float != 10.5 {
		t.Errorf("unexpected parameter: %+v", param)
	}
}

func TestParseString_VarDecl(t *testing.T) {
	tests := []struct {
		name  string
		input string
		names int
		init  bool
	}{
		{
			name:  "no initializer",
			input: "$x : int;",
			names: 1,
			init:  false,
		},
		{
			name:  "multiple names",
			input: "$a, $b, $c : str = 'v';",
			names: 3,
			init:  true,
		},
		{
			name:  "dynamic name initializer",
			input: "$nm : str = (LVL+$n);",
			names: 1,
			init:  true,
		},
		{
			name:  "extraction initializer",
			input: "$y : int = $x;",
			names: 1,
			init:  true,
		},
		{
			name:  "array initializer",
			input: "$vals : arr [int..] = [1, 2, $x];",
			names: 1,
			init:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := mustParse(t, tt.input)

			decl, ok := mod.Entries[0].(*VarDecl)
			if !ok {
				t.Fatalf("expected declaration, got %T", mod.Entries[0])
			}

			if len(decl.Names) != tt.names {
				t.Errorf("expected %d names, got %d",
					tt.names, len(decl.Names))
			}

			if (decl.Init != nil) != tt.init {
				t.Errorf("initializer presence: expected %v", tt.init)
			}
		})
	}
}

func TestParseString_ArraySpec(t *testing.T) {
	mod := mustParse(t, "$v : arr [int, int:3, str..];")

	decl := mod.Entries[0].(*VarDecl)
	spec := decl.Type

	if spec.Scalar != ScalarArray || len(spec.Elems) != 3 {
		t.Fatalf("unexpected spec: %+v", spec)
	}

	if spec.Elems[0].Size != 0 || spec.Elems[0].Ellipsis {
		t.Errorf("unexpected first element: %+v", spec.Elems[0])
	}

	if spec.Elems[1].Size != 3 {
		t.Errorf("expected size 3, got %d", spec.Elems[1].Size)
	}

	if !spec.Elems[2].Ellipsis || spec.Elems[2].Spec.Scalar != ScalarStr {
		t.Errorf("unexpected final element: %+v", spec.Elems[2])
	}
}

func TestParseString_EllipsisMustBeFinal(t *testing.T) {
	_, err := ParseString(context.Background(),
		"$v : arr [int .., str];")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseString_Template(t *testing.T) {
	mod := mustParse(t, `
		шаблон UNIT {
			контекст CTX {
				$id : int;
				$nm : str;
			};
			оборудование класс_а U+$id { };
		};
	`)

	tmpl, ok := mod.Entries[0].(*Template)
	if !ok {
		t.Fatalf("expected template, got %T", mod.Entries[0])
	}

	if tmpl.Name != "UNIT" || len(tmpl.Body) != 2 {
		t.Fatalf("unexpected template: %+v", tmpl)
	}

	ctx, ok := tmpl.Body[0].(*Context)
	if !ok {
		t.Fatalf("expected context, got %T", tmpl.Body[0])
	}

	if ctx.Name != "CTX" || len(ctx.Vars) != 2 {
		t.Errorf("unexpected context: %+v", ctx)
	}
}

func TestParseString_ContextOutsideTemplate(t *testing.T) {
	_, err := ParseString(context.Background(),
		"контекст CTX { };")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseString_Signal(t *testing.T) {
	mod := mustParse(t, `
		сигнал входной аналог LVL {
			значение : float = диапазон [0, 100] важность = 2 статус = авария;
		};
	`)

	sig := mod.Entries[0].(*Signal)

	if sig.Direction != Input || sig.Type != SignalAnalog {
		t.Errorf("unexpected header: %v %v", sig.Direction, sig.Type)
	}

	param := sig.Body[0].(*ParamAssign)

	if param.Value.Range == nil {
		t.Fatal("expected a range value")
	}

	if param.Value.Range.Lo.Int != 0 || param.Value.Range.Hi.Int != 100 {
		t.Errorf("unexpected bounds: %+v", param.Value.Range)
	}

	if len(param.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(param.Options))
	}

	status := param.Options[1]
	if status.Value == nil || status.Value.Status == nil {
		t.Fatal("expected a status constant")
	}

	if status.Value.Status.Text != "авария" || !status.Value.Status.Alarm {
		t.Errorf("unexpected status: %+v", status.Value.Status)
	}
}

func TestParseString_RangeBounds(t *testing.T) {
	mod := mustParse(t, `
		оборудование класс_а T {
			предел : int = диапазон [~, $hi];
		};
	`)

	obj := mod.Entries[0].(*Object)
	param := obj.Body[0].(*ParamAssign)
	rng := param.Value.Range

	if rng.Lo.Kind != BoundOpen {
		t.Errorf("expected open low bound, got %v", rng.Lo.Kind)
	}

	if rng.Hi.Kind != BoundRef || rng.Hi.Ref.Name != "hi" {
		t.Errorf("unexpected high bound: %+v", rng.Hi)
	}
}

func TestParseString_Directives(t *testing.T) {
	mod := mustParse(t, `
		.использовать VALS линейно значения кроме 2;
		.использовать CTX линейно значения все;
		.подстановка в CTX из $rows;
		.подстановка в dst из $src правило [1:3] <- [i];
		.подстановка в dst из $src правило $window;
		.привязать LINK;
		.привязать (CONN+$n);
	`)

	if len(mod.Entries) != 7 {
		t.Fatalf("expected 7 directives, got %d", len(mod.Entries))
	}

	use := mod.Entries[0].(*Directive).Use
	if use.Source != "VALS" || use.Exclude == nil {
		t.Errorf("unexpected use: %+v", use)
	}

	if use.Exclude.Value.Int != 2 {
		t.Errorf("expected exclusion 2, got %+v", use.Exclude)
	}

	all := mod.Entries[1].(*Directive).Use
	if all.Exclude != nil {
		t.Errorf("expected no exclusion, got %+v", all.Exclude)
	}

	put := mod.Entries[3].(*Directive).Put
	if put.Dest != "dst" || put.Rule == nil {
		t.Fatalf("unexpected put: %+v", put)
	}

	if put.Rule.Lo != 1 || put.Rule.Hi != 3 {
		t.Errorf("unexpected window: %+v", put.Rule)
	}

	ruleRef := mod.Entries[4].(*Directive).Put.Rule
	if ruleRef.Ref == nil || ruleRef.Ref.Name != "window" {
		t.Errorf("unexpected rule: %+v", ruleRef)
	}

	bind := mod.Entries[6].(*Directive).Bind
	if bind.Name.Base != "CONN" || len(bind.Name.Ext) != 1 {
		t.Errorf("unexpected bind: %+v", bind)
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "keyword at top level", input: "правило;"},
		{name: "parameter at top level", input: "значение : int = 1;"},
		{name: "missing semicolon", input: "оборудование класс_а T { }"},
		{name: "unclosed body", input: "оборудование класс_а T {"},
		{name: "missing class", input: "оборудование T { };"},
		{name: "value instead of type", input: "$x : 5;"},
		{name: "missing rule iterator", input: ".подстановка в d из $s правило [1:2] <- [j];"},
		{name: "signal inside connection", input: "соединение C { сигнал входной аналог S { }; };"},
		{name: "object inside connection", input: "соединение C { оборудование класс_а X { }; };"},
		{name: "variable inside connection", input: "соединение C { $x : int; };"},
		{name: "connection inside connection", input: "соединение C { соединение D { }; };"},
		{name: "object inside signal", input: "сигнал входной аналог S { оборудование класс_а X { }; };"},
		{name: "signal inside signal", input: "сигнал входной аналог S { сигнал входной аналог T { }; };"},
		{name: "parameter inside template", input: "шаблон T { адрес : int = 1; };"},
		{name: "zero element count", input: "$x : arr [int:0];"},
		{name: "use without method", input: ".использовать VALS значения все;"},
		{name: "junction without brackets", input: ".подстановка в d из $s правило 1:2 <- [i];"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("expected parse error, got %v", err)
			}
		})
	}
}

func TestParseString_ErrorReportsPosition(t *testing.T) {
	_, err := ParseString(context.Background(),
		"оборудование класс_а T {\n\tзначение : int = ;\n};")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}

	pos, ok := perr.Position()
	if !ok {
		t.Fatal("expected a position")
	}

	if pos.Line != 2 {
		t.Errorf("expected line 2, got %d", pos.Line)
	}

	if !strings.Contains(err.Error(), "2:") {
		t.Errorf("rendered error lacks position: %v", err)
	}
}

func TestParseString_FirstErrorWins(t *testing.T) {
	// Both lines are malformed; only the first is reported.
	_, err := ParseString(context.Background(),
		"$x : int = ;\n$y : str = ;")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}

	pos, _ := perr.Position()
	if pos.Line != 1 {
		t.Errorf("expected first error at line 1, got %d", pos.Line)
	}
}
