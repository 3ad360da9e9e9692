package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Datum is a resolved runtime value. Kind selects the active field; List
// carries array elements in order.
type Datum struct {
	Kind  Scalar
	Int   int64
	Float float64
	Text  string
	Bool  bool
	List  []Datum
}

// String renders the value the way it substitutes into dynamic names.
func (d Datum) String() string {
	switch d.Kind {
	case ScalarInt:
		return strconv.FormatInt(d.Int, 10)

	case ScalarFloat:
		return strconv.FormatFloat(d.Float, 'g', -1, 64)

	case ScalarStr:
		return d.Text

	case ScalarBool:
		if d.Bool {
			return "Да"
		}

		return "Нет"

	case ScalarArray:
		var sb strings.Builder

		sb.WriteByte('[')

		for i, elem := range d.List {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(elem.String())
		}

		sb.WriteByte(']')

		return sb.String()
	}

	return ""
}

// Equal reports deep value equality across identical kinds.
func (d Datum) Equal(other Datum) bool {
	if d.Kind != other.Kind {
		return false
	}

	switch d.Kind {
	case ScalarInt:
		return d.Int == other.Int

	case ScalarFloat:
		return d.Float == other.Float

	case ScalarStr:
		return d.Text == other.Text

	case ScalarBool:
		return d.Bool == other.Bool

	case ScalarArray:
		if len(d.List) != len(other.List) {
			return false
		}

		for i := range d.List {
			if !d.List[i].Equal(other.List[i]) {
				return false
			}
		}

		return true
	}

	return false
}

// cloneDatum copies a value so later substitution into the source does
// not rewrite declarations that already captured it.
func cloneDatum(d *Datum) *Datum {
	clone := *d
	clone.List = append([]Datum(nil), d.List...)

	return &clone
}

// checkType verifies that a value structurally matches a declared type.
// Scalars must match exactly; there is no numeric coercion. Array specs
// are matched positionally, consuming the value's elements left to right.
func checkType(spec *TypeSpec, d *Datum, pos Position) error {
	if spec.Scalar != ScalarArray {
		if d.Kind != spec.Scalar {
			return typeMismatch(spec, d, pos)
		}

		return nil
	}

	if d.Kind != ScalarArray {
		return typeMismatch(spec, d, pos)
	}

	items := d.List

	for _, elem := range spec.Elems {
		if elem.Ellipsis {
			// Consumes every remaining element, possibly none.
			for i := range items {
				err := checkType(elem.Spec, &items[i], pos)
				if err != nil {
					return err
				}
			}

			items = nil

			break
		}

		// Size zero means no explicit count; the parser guarantees an
		// explicit count is positive.
		count := elem.Size
		if count == 0 {
			count = 1
		}

		if len(items) < count {
			return typeMismatch(spec, d, pos)
		}

		for i := range count {
			err := checkType(elem.Spec, &items[i], pos)
			if err != nil {
				return err
			}
		}

		items = items[count:]
	}

	if len(items) > 0 {
		return typeMismatch(spec, d, pos)
	}

	return nil
}

func typeMismatch(spec *TypeSpec, d *Datum, pos Position) error {
	return ErrTypeMismatch.WithPosition(pos).
		With(
			slog.String("want", FormatType(spec)),
			slog.String("got", d.Kind.String()),
			slog.String("value", d.String()),
		)
}

// rangeMatches reports whether a declared parameter type can carry a
// range constraint. Ranges describe numeric domains only.
func rangeMatches(spec *TypeSpec) bool {
	return spec.Scalar == ScalarInt || spec.Scalar == ScalarFloat
}
