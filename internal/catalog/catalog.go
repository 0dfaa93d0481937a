package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/handiism/discpack/internal/audio"
	"github.com/handiism/discpack/internal/logging"
	"github.com/handiism/discpack/internal/model"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog document.
type File struct {
	Discs []model.Entry `yaml:"discs"`
}

// Load reads the catalog at path and returns its validated entry list.
func Load(fsys afero.Fs, path string) (*model.EntryList, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	var doc File
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	list, err := Resolve(fsys, filepath.Dir(path), doc.Discs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Resolve completes raw entries and validates them as a list.
//
// Paths are made relative to base unless absolute. Entries without a
// title or length are probed; a title still missing falls back to the
// track file name, and a missing id is derived from the title.
func Resolve(fsys afero.Fs, base string, raw []model.Entry) (*model.EntryList, error) {
	log := logging.GetLogger("catalog")
	entries := make([]model.Entry, 0, len(raw))

	for i, e := range raw {
		if e.Track == "" || e.Texture == "" {
			return nil, fmt.Errorf("disc %d: %w: track and texture are required", i+1, model.ErrInvalidEntry)
		}
		e.Track = resolvePath(base, e.Track)
		e.Texture = resolvePath(base, e.Texture)

		if e.Title == "" || e.Length <= 0 {
			info, err := audio.Probe(fsys, e.Track)
			if err != nil {
				log.Warn().Err(err).Str("track", e.Track).Msg("Could not read track tags")
			}
			if e.Title == "" {
				e.Title = info.Title
			}
			if e.Length <= 0 {
				e.Length = info.Length
			}
		}

		if e.Title == "" {
			e.Title = model.NameFromFile(e.Track)
		}
		if e.ID == "" {
			e.ID = model.InternalName(e.Title)
		}

		log.Debug().Str("id", e.ID).Str("title", e.Title).Float64("length", e.Length).Msg("Disc loaded")
		entries = append(entries, e)
	}

	list := model.NewEntryList(entries...)
	if err := list.Validate(); err != nil {
		return nil, err
	}
	return list, nil
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
