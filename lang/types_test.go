package lang

import (
	"context"
	"errors"
	"testing"
)

// declType parses a declared type expression through the grammar to avoid
// hand-building specs.
func declType(t *testing.T, typ string) *TypeSpec {
	t.Helper()

	mod, err := ParseString(context.Background(), "$x : "+typ+";")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return mod.Entries[0].(*VarDecl).Type
}

func ints(vals ...int64) *Datum {
	d := &Datum{Kind: ScalarArray}
	for _, v := range vals {
		d.List = append(d.List, Datum{Kind: ScalarInt, Int: v})
	}

	return d
}

func TestCheckType(t *testing.T) {
	mixed := &Datum{Kind: ScalarArray, List: []Datum{
		{Kind: ScalarInt, Int: 1},
		{Kind: ScalarInt, Int: 2},
		{Kind: ScalarInt, Int: 3},
		{Kind: ScalarInt, Int: 4},
		{Kind: ScalarStr, Text: "a"},
		{Kind: ScalarStr, Text: "b"},
	}}

	tests := []struct {
		name string
		typ  string
		d    *Datum
		ok   bool
	}{
		{name: "int", typ: "int", d: &Datum{Kind: ScalarInt, Int: 5}, ok: true},
		{name: "float is not int", typ: "int", d: &Datum{Kind: ScalarFloat, Float: 5}, ok: false},
		{name: "int is not float", typ: "float", d: &Datum{Kind: ScalarInt, Int: 5}, ok: false},
		{name: "str", typ: "str", d: &Datum{Kind: ScalarStr}, ok: true},
		{name: "bool", typ: "bool", d: &Datum{Kind: ScalarBool}, ok: true},
		{name: "scalar is not array", typ: "arr [int ..]", d: &Datum{Kind: ScalarInt}, ok: false},

		{name: "fixed shape", typ: "arr [int, int:3]", d: ints(1, 2, 3, 4), ok: true},
		{name: "fixed shape too short", typ: "arr [int, int:3]", d: ints(1, 2, 3), ok: false},
		{name: "fixed shape too long", typ: "arr [int, int:3]", d: ints(1, 2, 3, 4, 5), ok: false},

		{name: "empty tail", typ: "arr [int, str ..]", d: ints(1), ok: true},
		{name: "tail consumes remainder", typ: "arr [int, int:3, str ..]", d: mixed, ok: true},
		{name: "tail element kind", typ: "arr [int ..]", d: &Datum{
			Kind: ScalarArray,
			List: []Datum{{Kind: ScalarInt}, {Kind: ScalarStr}},
		}, ok: false},
		{name: "empty array with tail", typ: "arr [int ..]", d: &Datum{Kind: ScalarArray}, ok: true},
		{name: "empty array without tail", typ: "arr [int]", d: &Datum{Kind: ScalarArray}, ok: false},

		{name: "nested rows", typ: "arr [arr [int, str] ..]", d: &Datum{
			Kind: ScalarArray,
			List: []Datum{
				{Kind: ScalarArray, List: []Datum{
					{Kind: ScalarInt, Int: 1},
					{Kind: ScalarStr, Text: "насос"},
				}},
			},
		}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkType(declType(t, tt.typ), tt.d, Position{})

			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.ok {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				if !errors.Is(err, ErrTypeMismatch) {
					t.Errorf("expected type mismatch, got %v", err)
				}
			}
		})
	}
}

func TestDatumString(t *testing.T) {
	tests := []struct {
		name string
		d    Datum
		want string
	}{
		{name: "int", d: Datum{Kind: ScalarInt, Int: -7}, want: "-7"},
		{name: "float", d: Datum{Kind: ScalarFloat, Float: 2.5}, want: "2.5"},
		{name: "text", d: Datum{Kind: ScalarStr, Text: "LVL"}, want: "LVL"},
		{name: "bool", d: Datum{Kind: ScalarBool, Bool: true}, want: "Да"},
		{name: "array", d: *ints(1, 2), want: "[1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDatumEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Datum
		want bool
	}{
		{
			name: "same int",
			a:    Datum{Kind: ScalarInt, Int: 1},
			b:    Datum{Kind: ScalarInt, Int: 1},
			want: true,
		},
		{
			name: "kind differs",
			a:    Datum{Kind: ScalarInt, Int: 1},
			b:    Datum{Kind: ScalarFloat, Float: 1},
			want: false,
		},
		{
			name: "same array",
			a:    *ints(1, 2, 3),
			b:    *ints(1, 2, 3),
			want: true,
		},
		{
			name: "array length differs",
			a:    *ints(1, 2),
			b:    *ints(1, 2, 3),
			want: false,
		},
		{
			name: "array element differs",
			a:    *ints(1, 2),
			b:    *ints(1, 9),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCloneDatum(t *testing.T) {
	src := ints(1, 2, 3)
	clone := cloneDatum(src)

	if !clone.Equal(*src) {
		t.Fatalf("clone differs: %v vs %v", clone, src)
	}

	// Rewriting the source must not reach the clone.
	src.List[0].Int = 99

	if clone.List[0].Int != 1 {
		t.Errorf("clone shares the source's elements")
	}
}
