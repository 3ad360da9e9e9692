package lang

import (
	"testing"
)

func TestFormat_Canonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "variable declaration",
			input: "$a,$b:int=5;",
			want:  "$a, $b : int = 5;\n",
		},
		{
			name:  "dynamic name initializer",
			input: "$nm : str = ( LVL + $n );",
			want:  "$nm : str = (LVL+$n);\n",
		},
		{
			name:  "array type",
			input: "$v : arr [int,int:3,str ..];",
			want:  "$v : arr [int, int:3, str ..];\n",
		},
		{
			name:  "negative float",
			input: "$f : float = -2.5;",
			want:  "$f : float = -2.5;\n",
		},
		{
			name:  "boolean and string",
			input: "$ok : bool = Да; $s : str = 'метка насоса';",
			want:  "$ok : bool = Да;\n$s : str = 'метка насоса';\n",
		},
		{
			name:  "object with parameter",
			input: "оборудование класс_ц PUMP+$n { объем : float = 10.5; };",
			want: "оборудование класс_ц PUMP+$n {\n" +
				"  объем : float = 10.5;\n" +
				"};\n",
		},
		{
			name: "signal with options",
			input: "сигнал входной аналог LVL {" +
				" значение : int = диапазон [~, $hi] важность = 2 статус = авария;" +
				" };",
			want: "сигнал входной аналог LVL {\n" +
				"  значение : int = диапазон [~, $hi] важность = 2 статус = авария;\n" +
				"};\n",
		},
		{
			name:  "use directive",
			input: ".использовать VALS линейно значения кроме 2;",
			want:  ".использовать VALS линейно значения кроме 2;\n",
		},
		{
			name:  "put directive with window",
			input: ".подстановка в dst из $src правило [ 1 : 3 ] <- [ i ];",
			want:  ".подстановка в dst из $src правило [1:3] <- [i];\n",
		},
		{
			name:  "parenthesized bind",
			input: ".привязать ( CONN + $n );",
			want:  ".привязать (CONN+$n);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := mustParse(t, tt.input)

			if got := Format(mod); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// Canonical output must parse back to a tree that formats identically.
func TestFormat_RoundTrip(t *testing.T) {
	src := `
		/ заголовок модуля /
		$n : int = 7;
		$hi : int = 100;

		шаблон UNIT {
			контекст CTX {
				$id : int;
				$nm : str;
			};
			оборудование класс_а U+$id {
				метка_агрегата : str = $nm;
			};
		};

		соединение LINK {
			адрес : int = 12 обработчик = 'h1';
		};

		сигнал выходной дискрет CMD+$n {
			значение : int = диапазон [0, $hi] статус = норма;
			отображаемое_имя : str = 'команда' метка отображать;
			.привязать LINK;
		};

		.подстановка в CTX из $rows;
		.использовать CTX линейно значения все;
	`

	first := Format(mustParse(t, src))
	second := Format(mustParse(t, first))

	if first != second {
		t.Errorf("canonical form is not stable:\n%s\n----\n%s",
			first, second)
	}
}
