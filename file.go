package folio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/etnz/folio/project"
	"github.com/etnz/folio/store"
)

// File is a project file opened from disk.
type File struct {
	Path    string
	Format  Format
	Project *project.Project
	// Deferred is true while the heavy data of a SQLite file has not been read.
	Deferred bool

	store *store.Store
	opts  []store.Option
}

// OpenFile reads the project file at path.
func OpenFile(path string, opts ...store.Option) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot read project file: %w", err)
	}
	res, err := Open(data, filepath.Base(path), opts...)
	if err != nil {
		return nil, err
	}
	return &File{
		Path:     path,
		Format:   res.Format,
		Project:  res.Project,
		Deferred: res.HeavyLoadDeferred,
		store:    res.Store,
		opts:     opts,
	}, nil
}

// NewFile returns a new project named name, to be saved at path. Nothing is written until Save.
func NewFile(path, name string, opts ...store.Option) *File {
	return &File{
		Path:    path,
		Format:  formatFor(path),
		Project: project.New(name),
		opts:    opts,
	}
}

// Store returns the database of a SQLite file, nil otherwise.
func (f *File) Store() *store.Store { return f.store }

// Hydrate reads the heavy data of the file into f.Project if it was deferred.
func (f *File) Hydrate() error {
	if !f.Deferred {
		return nil
	}
	doc, err := f.store.HydrateHeavyData(f.Project)
	if err != nil {
		return fmt.Errorf("load error: cannot read heavy data of %q: %w", f.Path, err)
	}
	f.Project, f.Deferred = doc, false
	return nil
}

// Save writes the project back to its file.
func (f *File) Save() error { return f.SaveAs(f.Path) }

// SaveAs writes the project to path, in the format given by its extension. f then refers to
// path. Saving to the path of f keeps its format, even when its extension is unknown.
//
// Writing a SQLite file reuses the database of f, so heavy data that was never read is kept.
// Writing a JSON file reads the deferred heavy data first, as a JSON file holds everything.
func (f *File) SaveAs(path string) error {
	format := formatFor(path)
	if path == f.Path && f.Format != "" {
		format = f.Format
	}
	st := f.store
	if format == FormatJSON {
		if err := f.Hydrate(); err != nil {
			return err
		}
		st = nil
	}

	res, err := encode(format, filepath.Base(path), f.Project, st, f.opts)
	if err != nil {
		return err
	}
	if res.Store != nil {
		f.store = res.Store
	}
	if err := writeFile(path, res.Data); err != nil {
		return err
	}
	f.Path, f.Format = path, format
	return nil
}

// Close releases the database of a SQLite file.
func (f *File) Close() error {
	if f.store == nil {
		return nil
	}
	return f.store.Close()
}

// writeFile replaces the file at path with data. The content is written to a temporary file
// first, so a failure never leaves a partially written project.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("persist error: cannot create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("persist error: cannot write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist error: cannot write %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("persist error: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("persist error: cannot replace %q: %w", path, err)
	}
	return nil
}

// FindProjects returns the project files found under root, sorted by path. Files are
// recognised by their extension.
func FindProjects(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := FormatOf(p); ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list project files in %q: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
