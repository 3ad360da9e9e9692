package lang

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}

	return out
}

func TestScan_TokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Kind{KindEOF},
		},
		{
			name:  "variable declaration",
			input: "$x : int = 10;",
			want: []Kind{
				KindSigil, KindIdent, KindColon, KindTypeInt,
				KindAssign, KindInt, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "keyword recognition",
			input: "оборудование класс_а TANK",
			want: []Kind{
				KindEquipment, KindObjectType, KindIdent, KindEOF,
			},
		},
		{
			name:  "signal header",
			input: "сигнал входной аналог LVL",
			want: []Kind{
				KindSignal, KindDirection, KindSignalType,
				KindIdent, KindEOF,
			},
		},
		{
			name:  "float literal",
			input: "2.5",
			want:  []Kind{KindFloat, KindEOF},
		},
		{
			name:  "trailing point float",
			input: "5.",
			want:  []Kind{KindFloat, KindEOF},
		},
		{
			name:  "integer before ellipsis",
			input: "1..5",
			want:  []Kind{KindInt, KindEllipsis, KindInt, KindEOF},
		},
		{
			name:  "junction",
			input: "[1:3] <- [i]",
			want: []Kind{
				KindLBracket, KindInt, KindColon, KindInt,
				KindRBracket, KindJunction, KindLBracket,
				KindIter, KindRBracket, KindEOF,
			},
		},
		{
			name:  "dynamic name",
			input: "(LVL+$n)",
			want: []Kind{
				KindLParen, KindIdent, KindConcat, KindSigil,
				KindIdent, KindRParen, KindEOF,
			},
		},
		{
			name:  "negative number",
			input: "-3",
			want:  []Kind{KindMinus, KindInt, KindEOF},
		},
		{
			name:  "booleans",
			input: "Да Нет",
			want:  []Kind{KindBool, KindBool, KindEOF},
		},
		{
			name:  "status constants",
			input: "норма авария тревога",
			want: []Kind{
				KindStatusConst, KindStatusConst,
				KindStatusConst, KindEOF,
			},
		},
		{
			name:  "directive tokens",
			input: ".использовать VALS линейно значения все;",
			want: []Kind{
				KindPoint, KindUse, KindIdent, KindUseMethod,
				KindValues, KindAll, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "comment skipped",
			input: "/ описание уровня / $x",
			want:  []Kind{KindSigil, KindIdent, KindEOF},
		},
		{
			name:  "comment with quoted delimiter",
			input: "/ 'слеш / внутри' / 1",
			want:  []Kind{KindInt, KindEOF},
		},
		{
			name:  "unclosed comment at end of input",
			input: "$x / осталось открытым",
			want:  []Kind{KindSigil, KindIdent, KindEOF},
		},
		{
			name:  "open range bound",
			input: "диапазон [~, 10]",
			want: []Kind{
				KindRange, KindLBracket, KindTilde, KindComma,
				KindInt, KindRBracket, KindEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}

			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %v",
					len(tt.want), len(got), got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: expected %v, got %v",
						i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestScan_KeywordsAreScriptSensitive(t *testing.T) {
	// Latin homoglyphs of Cyrillic keywords must stay identifiers.
	toks, err := Scan("вcе")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[0].Kind != KindIdent {
		t.Errorf("expected identifier, got %v", toks[0].Kind)
	}
}

func TestScan_StringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single quotes", input: "'уровень'", want: "уровень"},
		{name: "double quotes", input: `"level"`, want: "level"},
		{name: "empty string", input: "''", want: ""},
		{name: "embedded slash", input: "'a/b'", want: "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Scan(tt.input)
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}

			if toks[0].Kind != KindString {
				t.Fatalf("expected string, got %v", toks[0].Kind)
			}

			if toks[0].Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, toks[0].Text)
			}
		})
	}
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{name: "unterminated string", input: "'уровень", line: 1, col: 1},
		{name: "bare less-than", input: "a < b", line: 1, col: 3},
		{name: "unknown rune", input: "$x ?", line: 1, col: 4},
		{name: "error position tracks lines", input: "$x\n  #", line: 2, col: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, ErrLex) {
				t.Fatalf("expected lex error, got %v", err)
			}

			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *Error, got %T", err)
			}

			pos, ok := lexErr.Position()
			if !ok {
				t.Fatal("expected a position")
			}

			if pos.Line != tt.line || pos.Column != tt.col {
				t.Errorf("expected %d:%d, got %d:%d",
					tt.line, tt.col, pos.Line, pos.Column)
			}
		})
	}
}

func TestScan_Positions(t *testing.T) {
	toks, err := Scan("$x\n  $y")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	// $ y at line 2 column 3
	if toks[2].Pos.Line != 2 || toks[2].Pos.Column != 3 {
		t.Errorf("expected 2:3, got %s", toks[2].Pos)
	}
}

func FuzzScan(f *testing.F) {
	f.Add("$x : int = 10;")
	f.Add("оборудование класс_а TANK { };")
	f.Add("/ comment / сигнал")
	f.Add("'string' 2.5 1..3")
	f.Add("диапазон [~, $hi]")
	f.Add(".подстановка в CTX из $rows;")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		toks, err := Scan(input)
		if err != nil {
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Errorf("non-structured error %T on %q", err, input)
			}

			return
		}

		if len(toks) == 0 || toks[len(toks)-1].Kind != KindEOF {
			t.Errorf("token stream for %q does not end with EOF", input)
		}
	})
}
