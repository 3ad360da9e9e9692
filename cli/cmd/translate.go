package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Omarmeks89/edl-src/emit"
	"github.com/Omarmeks89/edl-src/lang"
	"github.com/Omarmeks89/edl-src/log"
)

// Translate runs the full pipeline over each source and writes the
// derived documents as YAML.
type Translate struct {
	Out    string `default:"." help:"Output directory for derived documents." short:"o" type:"path"`
	Indent int    `default:"2" help:"Indent width for YAML output."           short:"i"`

	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the translate command.
func (t *Translate) Run(ctx context.Context) error {
	srcs, err := OpenSources(t.Source)
	if err != nil {
		return err
	}

	for _, src := range srcs {
		err = t.translate(ctx, src)
		src.Reader.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

func (t *Translate) translate(ctx context.Context, src Source) error {
	logger := log.With(slog.String("source", src.Path))

	mod, err := lang.ParseReader(ctx, src.Reader,
		lang.WithName(src.Name),
		lang.WithLogger(logger))
	if err != nil {
		return err
	}

	model, err := lang.Resolve(ctx, mod, lang.WithLogger(logger))
	if err != nil {
		return err
	}

	dir := t.Out
	if len(t.Source) > 1 {
		// Keep documents from different units apart.
		dir = filepath.Join(dir, src.Name)
	}

	err = emit.Build(model).WriteDir(ctx, dir, t.Indent)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "translated",
		slog.String("out", dir))

	return nil
}
