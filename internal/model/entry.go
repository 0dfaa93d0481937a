package model

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
)

// TicksPerSecond is the game tick rate used to express track lengths.
const TicksPerSecond = 20

var (
	idPattern    = regexp.MustCompile(`^[a-z0-9_]+$`)
	invalidIDRun = regexp.MustCompile(`[^a-z0-9_]+`)
	underscores  = regexp.MustCompile(`_+`)
)

// Entry represents a single user-supplied disc.
//
// Entry contains:
//   - ID, the internal identifier used in file names and function names
//   - Title, shown as the disc lore in game
//   - Track and Texture, the source media and image files
//   - Length in seconds, used to time playback (zero when unknown)
//   - Index, the custom model data value assigned by EntryList.WithIndices
type Entry struct {
	// ID is a lowercase alnum/underscore token, unique within a list.
	ID string `yaml:"id"`

	// Title is the display title.
	Title string `yaml:"title"`

	// Track is the path of the source sound file.
	Track string `yaml:"track"`

	// Texture is the path of the source disc image.
	Texture string `yaml:"texture"`

	// Length is the track duration in seconds.
	Length float64 `yaml:"length,omitempty"`

	// Index is position + offset + 1. Zero until indices are assigned.
	Index int `yaml:"-"`
}

// NewEntry creates an Entry whose ID is derived from the title.
func NewEntry(title, track, texture string) Entry {
	return Entry{
		ID:      InternalName(title),
		Title:   title,
		Track:   track,
		Texture: texture,
	}
}

// LengthTicks returns the track length in game ticks, rounded up.
func (e Entry) LengthTicks() int {
	if e.Length <= 0 {
		return 0
	}
	return int(math.Ceil(e.Length * TicksPerSecond))
}

// SoundName is the sound resource name relative to the sounds directory.
func (e Entry) SoundName() string {
	return "records/" + e.ID
}

// ModelName is the item model resource name for the disc.
func (e Entry) ModelName() string {
	return "item/music_disc_" + e.ID
}

// Validate checks that the entry identifier is a valid token.
func (e Entry) Validate() error {
	if !idPattern.MatchString(e.ID) {
		return fmt.Errorf("%w: %q is not a lowercase alnum/underscore token", ErrInvalidEntry, e.ID)
	}
	return nil
}

// InternalName converts free text into an identifier token.
//
// The following transformations are applied:
//   - Letters are lowercased
//   - Runs of characters outside [a-z0-9_] become one underscore
//   - Repeated underscores collapse, leading/trailing ones are trimmed
//
// Example:
//
//	InternalName("Song: Part 1/2") // Returns "song_part_1_2"
//	InternalName("track.ogg")      // Returns "track_ogg"
func InternalName(text string) string {
	name := strings.ToLower(strings.TrimSpace(text))
	name = invalidIDRun.ReplaceAllString(name, "_")
	name = underscores.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// NameFromFile derives a display title from a file path by dropping the
// directory and extension.
func NameFromFile(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
