package pack

import (
	"fmt"
	"path/filepath"

	"github.com/handiism/discpack/internal/model"
)

// SoundEvent is one sounds.json entry.
type SoundEvent struct {
	Sounds []Sound `json:"sounds"`
}

// Sound is a streamed sound file reference.
type Sound struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// ItemModel is an item model document with optional overrides.
type ItemModel struct {
	Parent    string            `json:"parent"`
	Textures  map[string]string `json:"textures"`
	Overrides []ModelOverride   `json:"overrides,omitempty"`
}

// ModelOverride switches the model when the predicate matches.
type ModelOverride struct {
	Predicate ModelPredicate `json:"predicate"`
	Model     string         `json:"model"`
}

// ModelPredicate matches on custom model data.
type ModelPredicate struct {
	CustomModelData int `json:"custom_model_data"`
}

// SoundEvents maps music_disc.<id> to the entry's streamed record.
func SoundEvents(entries *model.EntryList) map[string]SoundEvent {
	events := make(map[string]SoundEvent, entries.Len())
	for _, e := range entries.Entries {
		events["music_disc."+e.ID] = SoundEvent{
			Sounds: []Sound{{Name: e.SoundName(), Stream: true}},
		}
	}
	return events
}

// DiscDispatchModel is the music_disc_11 model with one override per
// entry, selecting the entry's model by its index.
func DiscDispatchModel(entries *model.EntryList) ItemModel {
	overrides := make([]ModelOverride, 0, entries.Len())
	for _, e := range entries.Entries {
		overrides = append(overrides, ModelOverride{
			Predicate: ModelPredicate{CustomModelData: e.Index},
			Model:     e.ModelName(),
		})
	}
	return ItemModel{
		Parent:    "item/generated",
		Textures:  map[string]string{"layer0": "item/music_disc_11"},
		Overrides: overrides,
	}
}

// WriteSounds writes assets/minecraft/sounds.json into an asset pack.
func (r *Replicator) WriteSounds(dir string, entries *model.EntryList) error {
	path := filepath.Join(dir, "assets", "minecraft", "sounds.json")
	if err := writeJSON(r.fs, path, SoundEvents(entries)); err != nil {
		return fmt.Errorf("write sounds: %w", err)
	}
	return nil
}

// WriteDiscModel writes the music_disc_11 item model into an asset pack.
func (r *Replicator) WriteDiscModel(dir string, entries *model.EntryList) error {
	path := filepath.Join(dir, "assets", "minecraft", "models", "item", "music_disc_11.json")
	if err := writeJSON(r.fs, path, DiscDispatchModel(entries)); err != nil {
		return fmt.Errorf("write disc model: %w", err)
	}
	return nil
}
