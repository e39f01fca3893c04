// Package fs reads filing documents from the local filesystem.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/edgar"
)

// Reader expands file and directory paths into filing sources.
type Reader struct {
	// Recursive descends into subdirectories when set.
	Recursive bool
}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Expand resolves paths into the list of filing files to read.
// Directories contribute every file with an accepted extension, in lexical
// order; other files in them are skipped. A file named directly must have an
// accepted extension or Expand returns EINVALID.
func (r *Reader) Expand(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, edgar.Errorf(edgar.ENOTFOUND, "%s: no such file or directory", p)
			}
			return nil, err
		}

		if !info.IsDir() {
			if err := edgar.ValidateFilename(p); err != nil {
				return nil, err
			}
			files = append(files, p)
			continue
		}

		found, err := r.walk(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func (r *Reader) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !r.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if edgar.ValidateFilename(path) == nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Read loads a single source from disk.
func (r *Reader) Read(path string) (*edgar.Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &edgar.Source{Path: path, Text: string(b)}, nil
}

// ReadAll expands paths and loads every resulting source.
func (r *Reader) ReadAll(paths ...string) ([]*edgar.Source, error) {
	files, err := r.Expand(paths...)
	if err != nil {
		return nil, err
	}

	sources := make([]*edgar.Source, 0, len(files))
	for _, f := range files {
		src, err := r.Read(f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
