package pack

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/discpack/internal/io"
	"github.com/handiism/discpack/internal/model"
	"github.com/handiism/discpack/internal/template"
	"github.com/spf13/afero"
)

// Section is one of the three template groups of a kind.
type Section string

const (
	// SectionFramework files are rendered once per pack.
	SectionFramework Section = "framework"
	// SectionDispatch files are rendered once per entry into one shared output.
	SectionDispatch Section = "dispatch"
	// SectionPerEntry files are rendered once per entry, each to its own output.
	SectionPerEntry Section = "per_entry"
)

// SetError reports a template set missing from the template tree.
type SetError struct {
	Set string
	Err error
}

func (e *SetError) Error() string {
	return fmt.Sprintf("template set %q: %v", e.Set, e.Err)
}

func (e *SetError) Unwrap() error { return e.Err }

// IsSetError reports whether err is or wraps a SetError.
func IsSetError(err error) bool {
	var e *SetError
	return errors.As(err, &e)
}

// Templates reads one template set out of a template tree.
type Templates struct {
	fsys fs.FS
	set  string
}

// File is a template file within a section.
type File struct {
	// Name is the full path inside the template tree.
	Name string
	// Rel is the slash-separated path relative to the section root; it is
	// the path template of the output.
	Rel string
}

// NewTemplates selects set from fsys. The set directory must exist.
func NewTemplates(fsys fs.FS, set string) (*Templates, error) {
	info, err := fs.Stat(fsys, set)
	if err != nil {
		return nil, &SetError{Set: set, Err: err}
	}
	if !info.IsDir() {
		return nil, &SetError{Set: set, Err: errors.New("not a directory")}
	}
	return &Templates{fsys: fsys, set: set}, nil
}

// Set returns the selected set name.
func (t *Templates) Set() string {
	return t.set
}

// Files lists the files of a section in lexical order. A section that is
// absent from the set has no files.
func (t *Templates) Files(kind Kind, section Section) ([]File, error) {
	root := path.Join(t.set, kind.String(), string(section))

	var files []File
	err := fs.WalkDir(t.fsys, root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, File{Name: name, Rel: strings.TrimPrefix(name, root+"/")})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	return files, nil
}

// Destination substitutes the file's relative path and joins it under dir.
func (f File) Destination(dir string, ctx template.Context) (string, error) {
	rel, err := template.Path(strings.Split(f.Rel, "/"), ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Name, err)
	}
	return filepath.Join(dir, rel), nil
}

// IsDocument reports whether the file is rendered as a JSON document.
func (f File) IsDocument() bool {
	switch path.Ext(f.Name) {
	case ".json", ".mcmeta":
		return true
	}
	return false
}

// RenderFile renders f into dst on fsys, creating parent directories.
//
// JSON documents are decoded, substituted leaf by leaf and re-encoded;
// everything else is substituted line by line.
func (t *Templates) RenderFile(fsys afero.Fs, f File, dst string, ctx template.Context) (err error) {
	src, err := t.fsys.Open(f.Name)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := ioutils.EnsureDir(fsys, filepath.Dir(dst)); err != nil {
		return err
	}
	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if f.IsDocument() {
		err = renderDocument(src, out, ctx)
	} else {
		err = template.Render(src, out, ctx)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}

// renderEach renders f once per entry into w, reading the template from
// the start each time.
func (t *Templates) renderEach(f File, w io.Writer, base template.Context, entries []model.Entry) (err error) {
	src, err := t.fsys.Open(f.Name)
	if err != nil {
		return err
	}
	defer func() {
		if src == nil {
			return
		}
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for i, entry := range entries {
		if i > 0 {
			if src, err = t.rewind(f.Name, src); err != nil {
				return err
			}
		}
		if err := template.Render(src, w, base.WithEntry(entry)); err != nil {
			return fmt.Errorf("%s (entry %s): %w", f.Name, entry.ID, err)
		}
	}
	return nil
}

// rewind seeks src back to the start, or reopens name when src cannot seek.
func (t *Templates) rewind(name string, src fs.File) (fs.File, error) {
	if s, ok := src.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return src, err
		}
		return src, nil
	}
	if err := src.Close(); err != nil {
		return nil, err
	}
	return t.fsys.Open(name)
}

func renderDocument(r io.Reader, w io.Writer, ctx template.Context) error {
	doc, err := template.DecodeDocument(r)
	if err != nil {
		return err
	}
	out, err := template.Document(doc, ctx)
	if err != nil {
		return err
	}
	return template.EncodeDocument(w, out)
}
