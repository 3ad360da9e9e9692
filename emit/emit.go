package emit

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/Omarmeks89/edl-src/lang"
)

// Option names carried through from source to the display artifact.
const (
	optDisplay = "отображать"
	optLabel   = "метка"
	optParam   = "параметр"
)

// Artifacts holds the four derived documents, each in declaration order.
type Artifacts struct {
	Signals []SignalRecord
	Sources []SourceRecord
	Display []DisplayRecord
	Aliases []AliasRecord
}

// SignalRecord is one entry of the signal listing.
type SignalRecord struct {
	Name      string        `yaml:"name"`
	Path      string        `yaml:"path"`
	Direction string        `yaml:"direction"`
	Type      string        `yaml:"type"`
	Bound     string        `yaml:"bound,omitempty"`
	Params    []ParamRecord `yaml:"params,omitempty"`
}

// ParamRecord is one resolved parameter of a signal or connection.
type ParamRecord struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Value   any            `yaml:"value,omitempty"`
	Range   *RangeRecord   `yaml:"range,omitempty"`
	Options []OptionRecord `yaml:"options,omitempty"`
}

// RangeRecord is a resolved numeric domain; a nil bound is open.
type RangeRecord struct {
	Lo *int64 `yaml:"lo"`
	Hi *int64 `yaml:"hi"`
}

// OptionRecord is one parameter option.
type OptionRecord struct {
	Name   string `yaml:"name"`
	Value  any    `yaml:"value,omitempty"`
	Status string `yaml:"status,omitempty"`
	Alarm  bool   `yaml:"alarm,omitempty"`
}

// SourceRecord maps one bound signal to its connection.
type SourceRecord struct {
	Signal     string        `yaml:"signal"`
	Connection string        `yaml:"connection"`
	Params     []ParamRecord `yaml:"params,omitempty"`
}

// DisplayRecord collects the presentation options of one signal.
type DisplayRecord struct {
	Signal  string `yaml:"signal"`
	Display any    `yaml:"display,omitempty"`
	Label   any    `yaml:"label,omitempty"`
	Format  any    `yaml:"format,omitempty"`
}

// AliasRecord is one name attachment: either a routing directive or a
// variable initialized from another name.
type AliasRecord struct {
	Name   string `yaml:"name"`
	Scope  string `yaml:"scope,omitempty"`
	Target string `yaml:"target"`
	Kind   string `yaml:"kind"`
}

// Build derives the four artifacts from a resolved model. It never
// fails; a model that resolved cleanly always yields valid records.
func Build(model *lang.Model) *Artifacts {
	a := new(Artifacts)

	// Bindings carry the bound declaration itself, so same-named
	// connections in different scopes keep their own parameters.
	bound := make(map[string]*lang.ConnectionDecl, len(model.Bindings))

	for _, bind := range model.Bindings {
		if bind.Kind != lang.RefConnection {
			continue
		}

		if conn, ok := bind.Decl.(*lang.ConnectionDecl); ok {
			bound[bind.Source] = conn
		}
	}

	for _, sig := range model.Signals {
		a.Signals = append(a.Signals, SignalRecord{
			Name:      sig.Name,
			Path:      sig.Path,
			Direction: sig.Direction.String(),
			Type:      sig.Type.String(),
			Bound:     sig.Bound,
			Params:    paramRecords(sig.Params),
		})

		if sig.Bound != "" {
			rec := SourceRecord{
				Signal:     sig.Path,
				Connection: sig.Bound,
			}

			if conn, ok := bound[sig.Path]; ok {
				rec.Params = paramRecords(conn.Params)
			}

			a.Sources = append(a.Sources, rec)
		}

		if rec, ok := displayRecord(sig); ok {
			a.Display = append(a.Display, rec)
		}
	}

	for _, bind := range model.Bindings {
		a.Aliases = append(a.Aliases, AliasRecord{
			Name:   bind.Source,
			Target: bind.Target,
			Kind:   bind.Kind.String(),
		})
	}

	for _, v := range model.Variables {
		if v.Origin == "" {
			continue
		}

		a.Aliases = append(a.Aliases, AliasRecord{
			Name:   v.Name,
			Scope:  v.Scope,
			Target: v.Origin,
			Kind:   "variable",
		})
	}

	return a
}

func paramRecords(params []*lang.ParamDecl) []ParamRecord {
	if len(params) == 0 {
		return nil
	}

	recs := make([]ParamRecord, 0, len(params))

	for _, param := range params {
		rec := ParamRecord{
			Name: param.Name,
			Type: lang.FormatType(param.Type),
		}

		if param.Value != nil {
			rec.Value = plain(param.Value)
		}

		if param.Range != nil {
			rec.Range = &RangeRecord{
				Lo: param.Range.Lo,
				Hi: param.Range.Hi,
			}
		}

		for _, opt := range param.Options {
			orec := OptionRecord{Name: opt.Name}

			if opt.Value != nil {
				orec.Value = plain(opt.Value)
			}

			if opt.Status != nil {
				orec.Status = opt.Status.Text
				orec.Alarm = opt.Status.Alarm
			}

			rec.Options = append(rec.Options, orec)
		}

		recs = append(recs, rec)
	}

	return recs
}

func displayRecord(sig *lang.SignalDecl) (DisplayRecord, bool) {
	rec := DisplayRecord{Signal: sig.Path}
	found := false

	for _, param := range sig.Params {
		for _, opt := range param.Options {
			var val any = true
			if opt.Value != nil {
				val = plain(opt.Value)
			}

			switch opt.Name {
			case optDisplay:
				rec.Display = val
				found = true

			case optLabel:
				rec.Label = val
				found = true

			case optParam:
				rec.Format = val
				found = true
			}
		}
	}

	return rec, found
}

// plain converts a resolved value to the builtin types the encoder
// understands.
func plain(d *lang.Datum) any {
	switch d.Kind {
	case lang.ScalarInt:
		return d.Int

	case lang.ScalarFloat:
		return d.Float

	case lang.ScalarStr:
		return d.Text

	case lang.ScalarBool:
		return d.Bool

	case lang.ScalarArray:
		items := make([]any, len(d.List))
		for i := range d.List {
			items[i] = plain(&d.List[i])
		}

		return items
	}

	return nil
}

// Encode writes one artifact document to the writer as YAML. A zero or
// negative indent selects flow style.
func Encode(ctx context.Context, w io.Writer, doc any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
