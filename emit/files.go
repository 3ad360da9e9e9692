package emit

import (
	"context"
	"os"
	"path/filepath"
)

// Artifact file names written by WriteDir.
const (
	SignalsFile = "signals.yaml"
	SourcesFile = "sources.yaml"
	DisplayFile = "display.yaml"
	AliasesFile = "aliases.yaml"
)

// WriteDir writes the four artifact documents into dir, creating it if
// needed. Existing files are replaced.
func (a *Artifacts) WriteDir(
	ctx context.Context,
	dir string,
	indent int,
) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}

	docs := []struct {
		name string
		doc  any
	}{
		{SignalsFile, a.Signals},
		{SourcesFile, a.Sources},
		{DisplayFile, a.Display},
		{AliasesFile, a.Aliases},
	}

	for _, d := range docs {
		err = writeDoc(ctx, filepath.Join(dir, d.name), d.doc, indent)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeDoc(ctx context.Context, path string, doc any, indent int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = Encode(ctx, f, doc, indent)
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
