package generate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/handiism/discpack/internal/archive"
	"github.com/handiism/discpack/internal/config"
	ioutils "github.com/handiism/discpack/internal/io"
	"github.com/handiism/discpack/internal/logging"
	"github.com/handiism/discpack/internal/model"
	"github.com/handiism/discpack/internal/pack"
	"github.com/handiism/discpack/internal/reference"
	"github.com/handiism/discpack/internal/template"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// IconFile is the icon name at each pack root.
const IconFile = "pack.png"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a generation progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Generator writes the datapack and resourcepack for a list of discs.
// It is not safe for concurrent use.
type Generator struct {
	settings  *config.Settings
	fs        afero.Fs
	templates fs.FS
	images    *ioutils.ImageService

	onProgress func(ProgressEvent)
	log        zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithFs sets the filesystem packs are written to and media read from.
func WithFs(fsys afero.Fs) Option {
	return func(g *Generator) { g.fs = fsys }
}

// WithTemplates sets the template tree, overriding settings.Templates.
func WithTemplates(fsys fs.FS) Option {
	return func(g *Generator) { g.templates = fsys }
}

// WithProgress sets the progress callback.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(g *Generator) { g.onProgress = fn }
}

// NewGenerator creates a Generator for settings. By default it writes to
// the OS filesystem and reads templates from settings.Templates or the
// built-in tree.
func NewGenerator(settings *config.Settings, opts ...Option) *Generator {
	g := &Generator{
		settings: settings,
		images:   ioutils.NewImageService(),
		log:      logging.GetLogger("generate"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.templates == nil {
		g.templates = reference.Open(settings.Templates)
	}
	return g
}

// PackDir returns the output directory of a pack kind.
func (g *Generator) PackDir(kind pack.Kind) string {
	return filepath.Join(g.settings.Output, g.packName(kind))
}

func (g *Generator) packName(kind pack.Kind) string {
	return g.settings.Name + kind.Suffix()
}

// Generate writes the datapack, then the resourcepack. It stops at the
// first pack that fails and returns its status.
func (g *Generator) Generate(entries *model.EntryList) Status {
	if status := g.Datapack(entries); status != StatusSuccess {
		return status
	}
	return g.Resourcepack(entries)
}

// Datapack writes the behavior pack.
func (g *Generator) Datapack(entries *model.EntryList) Status {
	done := logging.LogOperationStart(g.log, "datapack")
	defer done()
	return g.finish(pack.Behavior, g.datapack(entries))
}

// Resourcepack writes the asset pack.
func (g *Generator) Resourcepack(entries *model.EntryList) Status {
	done := logging.LogOperationStart(g.log, "resourcepack")
	defer done()
	return g.finish(pack.Asset, g.resourcepack(entries))
}

func (g *Generator) datapack(entries *model.EntryList) error {
	indexed, err := g.prepare(entries)
	if err != nil {
		return err
	}

	tpl, err := pack.NewTemplates(g.templates, g.settings.TemplateSet())
	if err != nil {
		return err
	}

	dir := g.PackDir(pack.Behavior)
	ctx := g.context(pack.Behavior, tpl.Set(), indexed)
	builder := pack.NewBuilder(g.fs, tpl)
	replicator := pack.NewReplicator(g.fs, tpl)

	g.progress(ProgressEvent{Message: fmt.Sprintf("Creating datapack %s (%s templates)", dir, tpl.Set()), Level: LevelInfo})
	if err := builder.Create(pack.Behavior, dir, ctx); err != nil {
		return err
	}
	if err := builder.WriteFramework(pack.Behavior, dir, ctx); err != nil {
		return err
	}

	g.progress(ProgressEvent{Message: fmt.Sprintf("Writing functions for %d discs", indexed.Len()), Level: LevelVerbose})
	if err := replicator.Concatenate(pack.Behavior, dir, ctx, indexed); err != nil {
		return err
	}
	if err := replicator.PerEntry(pack.Behavior, dir, ctx, indexed); err != nil {
		return err
	}
	if err := replicator.WriteLootTable(dir, indexed); err != nil {
		return err
	}

	return g.complete(dir)
}

func (g *Generator) resourcepack(entries *model.EntryList) error {
	indexed, err := g.prepare(entries)
	if err != nil {
		return err
	}

	tpl, err := pack.NewTemplates(g.templates, config.SetV2)
	if err != nil {
		return err
	}

	dir := g.PackDir(pack.Asset)
	ctx := g.context(pack.Asset, tpl.Set(), indexed)
	builder := pack.NewBuilder(g.fs, tpl)
	replicator := pack.NewReplicator(g.fs, tpl)

	g.progress(ProgressEvent{Message: fmt.Sprintf("Creating resourcepack %s", dir), Level: LevelInfo})
	if err := builder.Create(pack.Asset, dir, ctx); err != nil {
		return err
	}
	if err := builder.WriteFramework(pack.Asset, dir, ctx); err != nil {
		return err
	}

	g.progress(ProgressEvent{Message: fmt.Sprintf("Writing models for %d discs", indexed.Len()), Level: LevelVerbose})
	if err := replicator.PerEntry(pack.Asset, dir, ctx, indexed); err != nil {
		return err
	}
	if err := replicator.WriteDiscModel(dir, indexed); err != nil {
		return err
	}
	if err := replicator.WriteSounds(dir, indexed); err != nil {
		return err
	}

	g.progress(ProgressEvent{Message: "Copying tracks and textures", Level: LevelVerbose})
	if err := replicator.CopyMedia(dir, indexed); err != nil {
		return err
	}

	return g.complete(dir)
}

// prepare validates the settings and entries and assigns entry indices.
func (g *Generator) prepare(entries *model.EntryList) (*model.EntryList, error) {
	if err := g.settings.Validate(); err != nil {
		return nil, err
	}
	if err := entries.Validate(); err != nil {
		return nil, err
	}
	for _, e := range entries.Entries {
		if !utf8.ValidString(e.Title) {
			return nil, &template.EncodingError{Name: template.EntryName + ".title", Value: e.Title}
		}
	}
	return entries.WithIndices(g.settings.Offset), nil
}

func (g *Generator) context(kind pack.Kind, set string, entries *model.EntryList) template.Context {
	format := g.settings.Version.DP
	if kind == pack.Asset {
		format = g.settings.Version.RP
	}
	return template.Context{
		Namespace:  g.packName(pack.Behavior),
		PackName:   g.packName(kind),
		PackFormat: format,
		Version:    set,
		EntryCount: entries.Len(),
		Offset:     g.settings.Offset,
	}
}

// complete adds the icon and archives the tree when asked to.
func (g *Generator) complete(dir string) error {
	g.copyIcon(dir)

	if !g.settings.Zip {
		return nil
	}
	g.progress(ProgressEvent{Message: fmt.Sprintf("Zipping %s", dir), Level: LevelVerbose})
	path, err := archive.Zip(g.fs, dir)
	if err != nil {
		return err
	}
	g.progress(ProgressEvent{Message: fmt.Sprintf("Created %s", path), Level: LevelInfo})
	return nil
}

func (g *Generator) copyIcon(dir string) {
	if g.settings.Pack == "" {
		g.progress(ProgressEvent{Message: "No pack icon set", Level: LevelVerbose})
		return
	}

	converted, err := g.images.CopyAsPNG(g.fs, g.settings.Pack, filepath.Join(dir, IconFile))
	if err != nil {
		g.progress(ProgressEvent{Message: fmt.Sprintf("Pack icon skipped: %v", err), Level: LevelWarning})
		return
	}
	if converted {
		g.progress(ProgressEvent{Message: "Pack icon converted to PNG", Level: LevelVerbose})
	}
}

func (g *Generator) finish(kind pack.Kind, err error) Status {
	status := Classify(err)
	if status == StatusSuccess {
		g.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s pack", kind), Level: LevelSuccess})
		return status
	}

	g.log.Error().Err(err).Str("kind", kind.String()).Stringer("status", status).Msg("Generation failed")
	g.progress(ProgressEvent{Message: fmt.Sprintf("%s: %v", status.Message(), err), Level: LevelError})
	return status
}

func (g *Generator) progress(event ProgressEvent) {
	switch event.Level {
	case LevelWarning:
		g.log.Warn().Msg(event.Message)
	case LevelError:
		// logged by finish with the error attached
	case LevelVerbose:
		g.log.Debug().Msg(event.Message)
	default:
		g.log.Info().Msg(event.Message)
	}

	if g.onProgress != nil {
		g.onProgress(event)
	}
}
