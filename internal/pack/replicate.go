package pack

import (
	"fmt"
	"os"
	"path/filepath"

	ioutils "github.com/handiism/discpack/internal/io"
	"github.com/handiism/discpack/internal/logging"
	"github.com/handiism/discpack/internal/model"
	"github.com/handiism/discpack/internal/template"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Replicator writes the parts of a pack that repeat once per entry.
type Replicator struct {
	fs        afero.Fs
	templates *Templates
	images    *ioutils.ImageService
	log       zerolog.Logger
}

// NewReplicator creates a Replicator writing to fsys from templates.
func NewReplicator(fsys afero.Fs, templates *Templates) *Replicator {
	return &Replicator{
		fs:        fsys,
		templates: templates,
		images:    ioutils.NewImageService(),
		log:       logging.GetLogger("pack"),
	}
}

// PerEntry renders every per_entry template of kind once for each entry.
//
// The template's relative path is itself a template; it should reference
// an entry placeholder such as {entry.id} so each entry gets its own file.
// Parent directories are created as needed.
func (r *Replicator) PerEntry(kind Kind, dir string, base template.Context, entries *model.EntryList) error {
	files, err := r.templates.Files(kind, SectionPerEntry)
	if err != nil {
		return err
	}

	for _, entry := range entries.Entries {
		ctx := base.WithEntry(entry)
		for _, f := range files {
			dst, err := f.Destination(dir, ctx)
			if err != nil {
				return err
			}
			if err := r.templates.RenderFile(r.fs, f, dst, ctx); err != nil {
				return err
			}
		}
	}

	r.log.Debug().Int("templates", len(files)).Int("entries", entries.Len()).Msg("Per-entry files written")
	return nil
}

// Concatenate renders every dispatch template of kind once per entry and
// appends the results, in entry order, to a single output file.
//
// The output path is rendered without an entry bound. Every rendered line
// ends with a newline, so a K-line template yields N*K lines for N entries.
func (r *Replicator) Concatenate(kind Kind, dir string, base template.Context, entries *model.EntryList) error {
	files, err := r.templates.Files(kind, SectionDispatch)
	if err != nil {
		return err
	}

	for _, f := range files {
		dst, err := f.Destination(dir, base)
		if err != nil {
			return err
		}
		if err := r.concatenateFile(f, dst, base, entries); err != nil {
			return err
		}
	}

	r.log.Debug().Int("templates", len(files)).Int("entries", entries.Len()).Msg("Dispatch files written")
	return nil
}

func (r *Replicator) concatenateFile(f File, dst string, base template.Context, entries *model.EntryList) (err error) {
	if err := ioutils.EnsureDir(r.fs, filepath.Dir(dst)); err != nil {
		return err
	}
	out, err := r.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return r.templates.renderEach(f, out, base, entries.Entries)
}

// CopyMedia copies each entry's track and texture into an asset pack.
//
// Tracks are copied verbatim to assets/minecraft/sounds/records/<id>.ogg.
// Textures go to assets/minecraft/textures/item/music_disc_<id>.png,
// transcoded to PNG when they are another decodable image format.
func (r *Replicator) CopyMedia(dir string, entries *model.EntryList) error {
	sounds := filepath.Join(dir, "assets", "minecraft", "sounds", "records")
	textures := filepath.Join(dir, "assets", "minecraft", "textures", "item")

	for _, entry := range entries.Entries {
		if err := ioutils.CopyFile(r.fs, entry.Track, filepath.Join(sounds, entry.ID+".ogg")); err != nil {
			return fmt.Errorf("copy track of %s: %w", entry.ID, err)
		}

		converted, err := r.images.CopyAsPNG(r.fs, entry.Texture, filepath.Join(textures, "music_disc_"+entry.ID+".png"))
		if err != nil {
			return fmt.Errorf("copy texture of %s: %w", entry.ID, err)
		}
		if converted {
			r.log.Info().Str("entry", entry.ID).Str("texture", entry.Texture).Msg("Texture converted to PNG")
		}
	}
	return nil
}
