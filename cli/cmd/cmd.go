package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source is one opened translation input.
type Source struct {
	// Name is the translation unit name derived from the path.
	Name string

	// Path is the path as given on the command line.
	Path string

	Reader io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks and absolute/relative
// spellings of the same path.
type fileKey struct {
	dev uint64
	ino uint64
}

// OpenSources opens the given paths in order, deduplicating repeated
// files by resolving symlinks and comparing device/inode pairs. All
// occurrences of "-" collapse into a single stdin source placed last so
// it reads after every regular file.
func OpenSources(paths []string) ([]Source, error) {
	srcs := make([]Source, 0, len(paths))
	seen := make(map[fileKey]struct{})
	stdin := false

	for _, path := range paths {
		if path == stdinSource {
			stdin = true

			continue
		}

		src, ok, err := openUnique(path, seen)
		if err != nil {
			return nil, err
		}

		if ok {
			srcs = append(srcs, src)
		}
	}

	if stdin {
		srcs = append(srcs, Source{
			Name:   "stdin",
			Path:   stdinSource,
			Reader: io.NopCloser(os.Stdin),
		})
	}

	return srcs, nil
}

// openUnique opens path unless an identical file was already opened.
func openUnique(
	path string,
	seen map[fileKey]struct{},
) (Source, bool, error) {
	resolved := path

	abs, err := filepath.Abs(path)
	if err == nil {
		resolved = abs
	}

	if target, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = target
	}

	if info, err := os.Stat(resolved); err == nil {
		if stat, ok := info.Sys().(*syscall.Stat_t); ok {
			key := fileKey{dev: stat.Dev, ino: stat.Ino}
			if _, dup := seen[key]; dup {
				return Source{}, false, nil
			}

			seen[key] = struct{}{}
		}
	}

	f, err := os.Open(resolved)
	if err != nil {
		return Source{}, false, err
	}

	return Source{
		Name:   unitName(path),
		Path:   path,
		Reader: f,
	}, true, nil
}

// unitName derives the translation unit name from a source path.
func unitName(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
