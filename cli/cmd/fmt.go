package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Omarmeks89/edl-src/lang"
)

// Fmt parses a source and re-emits it in canonical form on stdout.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) error {
	srcs, err := OpenSources([]string{f.Source})
	if err != nil {
		return err
	}

	src := srcs[0]
	defer src.Reader.Close()

	mod, err := lang.ParseReader(ctx, src.Reader,
		lang.WithName(src.Name))
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(os.Stdout, lang.Format(mod))

	return err
}
