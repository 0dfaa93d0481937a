package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	ioutils "github.com/handiism/discpack/internal/io"
	"github.com/handiism/discpack/internal/logging"
	"github.com/handiism/discpack/internal/template"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Kind selects which of the two packs is being written.
type Kind int

const (
	// Behavior is the datapack: functions, advancements and loot tables.
	Behavior Kind = iota
	// Asset is the resourcepack: sounds, models and textures.
	Asset
)

// MarkerFile marks a directory as a generated pack. Only directories that
// carry it are ever removed.
const MarkerFile = "pack.mcmeta"

// String returns the template directory name of the kind.
func (k Kind) String() string {
	switch k {
	case Behavior:
		return "behavior"
	case Asset:
		return "asset"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Suffix is appended to the pack name to form the output directory name.
func (k Kind) Suffix() string {
	if k == Asset {
		return "_rp"
	}
	return "_dp"
}

// skeleton lists the directories every pack of a kind starts with, as
// path templates.
var skeleton = map[Kind][][]string{
	Behavior: {
		{"data", "minecraft", "tags", "functions"},
		{"data", "minecraft", "loot_tables", "entities"},
		{"data", "{namespace}", "functions"},
		{"data", "{namespace}", "advancements"},
	},
	Asset: {
		{"assets", "minecraft", "models", "item"},
		{"assets", "minecraft", "sounds", "records"},
		{"assets", "minecraft", "textures", "item"},
	},
}

// DirInUseError reports an output path that exists but was not written
// by the generator.
type DirInUseError struct {
	Path string
}

func (e *DirInUseError) Error() string {
	return fmt.Sprintf("%s exists and is not a generated pack (no %s)", e.Path, MarkerFile)
}

// IsDirInUse reports whether err is or wraps a DirInUseError.
func IsDirInUse(err error) bool {
	var e *DirInUseError
	return errors.As(err, &e)
}

// Builder creates pack trees and fills in their framework files.
type Builder struct {
	fs        afero.Fs
	templates *Templates
	log       zerolog.Logger
}

// NewBuilder creates a Builder writing to fsys from templates.
func NewBuilder(fsys afero.Fs, templates *Templates) *Builder {
	return &Builder{
		fs:        fsys,
		templates: templates,
		log:       logging.GetLogger("pack"),
	}
}

// Create prepares an empty pack tree of the given kind at dir.
//
// An existing directory that carries MarkerFile is removed first, so the
// last generate wins. Any other existing path is left alone and a
// DirInUseError is returned. The fresh tree contains the kind's skeleton
// directories and a manifest built from ctx.PackFormat and ctx.EntryCount.
func (b *Builder) Create(kind Kind, dir string, ctx template.Context) error {
	if err := b.clear(dir); err != nil {
		return err
	}

	if err := ioutils.EnsureDir(b.fs, dir); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, segments := range skeleton[kind] {
		rel, err := template.Path(segments, ctx)
		if err != nil {
			return err
		}
		if err := ioutils.EnsureDir(b.fs, filepath.Join(dir, rel)); err != nil {
			return fmt.Errorf("create %s: %w", rel, err)
		}
	}

	manifest := NewManifest(ctx.PackFormat, ctx.EntryCount)
	if err := writeJSON(b.fs, filepath.Join(dir, MarkerFile), manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	b.log.Debug().Str("kind", kind.String()).Str("dir", dir).Msg("Pack tree created")
	return nil
}

// WriteFramework renders every framework template of kind into dir.
func (b *Builder) WriteFramework(kind Kind, dir string, ctx template.Context) error {
	files, err := b.templates.Files(kind, SectionFramework)
	if err != nil {
		return err
	}

	for _, f := range files {
		dst, err := f.Destination(dir, ctx)
		if err != nil {
			return err
		}
		if err := b.templates.RenderFile(b.fs, f, dst, ctx); err != nil {
			return err
		}
	}

	b.log.Debug().Int("files", len(files)).Str("dir", dir).Msg("Framework written")
	return nil
}

func (b *Builder) clear(dir string) error {
	info, err := b.fs.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if !info.IsDir() || !ioutils.IsFile(b.fs, filepath.Join(dir, MarkerFile)) {
		return &DirInUseError{Path: dir}
	}

	b.log.Info().Str("dir", dir).Msg("Removing previous pack")
	return b.fs.RemoveAll(dir)
}
