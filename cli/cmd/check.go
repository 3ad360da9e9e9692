package cmd

import (
	"context"
	"log/slog"

	"github.com/Omarmeks89/edl-src/lang"
	"github.com/Omarmeks89/edl-src/log"
)

// Check runs the pipeline over each source without writing anything.
// Success is silent; the first failure is returned with its position
// and attributes intact.
type Check struct {
	Source []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	srcs, err := OpenSources(c.Source)
	if err != nil {
		return err
	}

	for _, src := range srcs {
		logger := log.With(slog.String("source", src.Path))

		mod, err := lang.ParseReader(ctx, src.Reader,
			lang.WithName(src.Name),
			lang.WithLogger(logger))

		src.Reader.Close()

		if err != nil {
			return err
		}

		_, err = lang.Resolve(ctx, mod, lang.WithLogger(logger))
		if err != nil {
			return err
		}
	}

	return nil
}
