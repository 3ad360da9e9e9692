package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the module back to canonical source text. The output
// parses to an equal tree: one construct per line, nested bodies indented
// with two spaces, comments dropped.
func Format(mod *Module) string {
	var f formatter

	for _, entry := range mod.Entries {
		f.entry(entry)
	}

	return f.sb.String()
}

type formatter struct {
	sb    strings.Builder
	depth int
}

func (f *formatter) line(s string) {
	for range f.depth {
		f.sb.WriteString("  ")
	}

	f.sb.WriteString(s)
	f.sb.WriteByte('\n')
}

func (f *formatter) body(entries []Entry, head string) {
	f.line(head + " {")

	f.depth++

	for _, entry := range entries {
		f.entry(entry)
	}

	f.depth--

	f.line("};")
}

func (f *formatter) entry(entry Entry) {
	switch e := entry.(type) {
	case *Object:
		class := "класс_а"
		if e.Type == ObjectDigital {
			class = "класс_ц"
		}

		f.body(e.Body, "оборудование "+class+" "+formatName(e.Name))

	case *VarDecl:
		f.line(formatVarDecl(e))

	case *Template:
		f.body(e.Body, "шаблон "+e.Name)

	case *Context:
		f.line("контекст " + e.Name + " {")

		f.depth++

		for _, decl := range e.Vars {
			f.line(formatVarDecl(decl))
		}

		f.depth--

		f.line("};")

	case *Connection:
		f.body(e.Body, "соединение "+formatName(e.Name))

	case *Signal:
		head := fmt.Sprintf("сигнал %s %s %s",
			e.Direction, e.Type, formatName(e.Name))

		f.body(e.Body, head)

	case *ParamAssign:
		f.line(formatParam(e))

	case *Directive:
		f.line(formatDirective(e))
	}
}

func formatName(name Name) string {
	var sb strings.Builder

	sb.WriteString(name.Base)

	for _, ref := range name.Ext {
		sb.WriteString("+$")
		sb.WriteString(ref.Name)
	}

	return sb.String()
}

func formatVarDecl(decl *VarDecl) string {
	var sb strings.Builder

	for i, ref := range decl.Names {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteByte('$')
		sb.WriteString(ref.Name)
	}

	sb.WriteString(" : ")
	sb.WriteString(FormatType(decl.Type))

	if decl.Init != nil {
		sb.WriteString(" = ")

		switch {
		case decl.Init.Dyn != nil:
			sb.WriteByte('(')
			sb.WriteString(decl.Init.Dyn.Base)

			for _, ref := range decl.Init.Dyn.Ext {
				sb.WriteString("+$")
				sb.WriteString(ref.Name)
			}

			sb.WriteByte(')')

		case decl.Init.Ref != nil:
			sb.WriteByte('$')
			sb.WriteString(decl.Init.Ref.Name)

		default:
			sb.WriteString(formatValue(decl.Init.Value))
		}
	}

	sb.WriteByte(';')

	return sb.String()
}

// FormatType renders a type expression the way it is written in source.
func FormatType(spec *TypeSpec) string {
	if spec.Scalar != ScalarArray {
		return spec.Scalar.String()
	}

	var sb strings.Builder

	sb.WriteString("arr [")

	for i, elem := range spec.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(FormatType(elem.Spec))

		if elem.Size > 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(elem.Size))
		}

		if elem.Ellipsis {
			sb.WriteString(" ..")
		}
	}

	sb.WriteByte(']')

	return sb.String()
}

func formatParam(param *ParamAssign) string {
	var sb strings.Builder

	sb.WriteString(param.Name)
	sb.WriteString(" : ")
	sb.WriteString(FormatType(param.Type))
	sb.WriteString(" = ")

	switch {
	case param.Value.Ref != nil:
		sb.WriteByte('$')
		sb.WriteString(param.Value.Ref.Name)

	case param.Value.Range != nil:
		sb.WriteString(formatRange(param.Value.Range))

	default:
		sb.WriteString(formatValue(param.Value.Value))
	}

	for _, opt := range param.Options {
		sb.WriteByte(' ')
		sb.WriteString(opt.Name)

		if opt.Value != nil {
			sb.WriteString(" = ")

			switch {
			case opt.Value.Ref != nil:
				sb.WriteByte('$')
				sb.WriteString(opt.Value.Ref.Name)

			case opt.Value.Status != nil:
				sb.WriteString(opt.Value.Status.Text)

			default:
				sb.WriteString(formatValue(opt.Value.Value))
			}
		}
	}

	sb.WriteByte(';')

	return sb.String()
}

func formatValue(val *Value) string {
	switch val.Kind {
	case ValueInt:
		return strconv.FormatInt(val.Int, 10)

	case ValueFloat:
		return strconv.FormatFloat(val.Float, 'g', -1, 64)

	case ValueString:
		return "'" + val.Text + "'"

	case ValueBool:
		if val.Bool {
			return "Да"
		}

		return "Нет"

	case ValueArray:
		var sb strings.Builder

		sb.WriteByte('[')

		for i, item := range val.Items {
			if i > 0 {
				sb.WriteString(", ")
			}

			if item.Ref != nil {
				sb.WriteByte('$')
				sb.WriteString(item.Ref.Name)
			} else {
				sb.WriteString(formatValue(item.Value))
			}
		}

		sb.WriteByte(']')

		return sb.String()

	default:
		return ""
	}
}

func formatRange(rng *Range) string {
	return "диапазон [" +
		formatBound(rng.Lo) + ", " + formatBound(rng.Hi) + "]"
}

func formatBound(b Bound) string {
	switch b.Kind {
	case BoundOpen:
		return "~"

	case BoundRef:
		return "$" + b.Ref.Name

	default:
		return strconv.FormatInt(b.Int, 10)
	}
}

func formatDirective(dir *Directive) string {
	switch dir.Kind {
	case UseKind:
		use := dir.Use
		s := ".использовать " + use.Source + " линейно значения "

		switch {
		case use.Exclude == nil:
			s += "все"

		case use.Exclude.Ref != nil:
			s += "кроме $" + use.Exclude.Ref.Name

		default:
			s += "кроме " + formatValue(use.Exclude.Value)
		}

		return s + ";"

	case PutKind:
		put := dir.Put
		s := ".подстановка в " + put.Dest + " из $" + put.Source.Name

		if put.Rule != nil {
			if put.Rule.Ref != nil {
				s += " правило $" + put.Rule.Ref.Name
			} else {
				s += fmt.Sprintf(" правило [%d:%d] <- [i]",
					put.Rule.Lo, put.Rule.Hi)
			}
		}

		return s + ";"

	default:
		name := formatName(dir.Bind.Name)
		if len(dir.Bind.Name.Ext) > 0 {
			name = "(" + name + ")"
		}

		return ".привязать " + name + ";"
	}
}
