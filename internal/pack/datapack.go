package pack

import (
	"fmt"
	"path/filepath"

	"github.com/handiism/discpack/internal/model"
)

// LootTable is a minimal loot table document.
type LootTable struct {
	Type  string     `json:"type"`
	Pools []LootPool `json:"pools"`
}

// LootPool is one pool of a loot table.
type LootPool struct {
	Rolls      int             `json:"rolls"`
	Entries    []LootEntry     `json:"entries"`
	Conditions []LootCondition `json:"conditions,omitempty"`
}

// LootEntry is a tag or item entry of a pool.
type LootEntry struct {
	Type      string         `json:"type"`
	Weight    int            `json:"weight,omitempty"`
	Name      string         `json:"name"`
	Expand    bool           `json:"expand,omitempty"`
	Functions []LootFunction `json:"functions,omitempty"`
}

// LootFunction modifies a dropped item.
type LootFunction struct {
	Function string     `json:"function"`
	Tag      string     `json:"tag,omitempty"`
	Count    *LootRange `json:"count,omitempty"`
}

// LootRange is a number provider.
type LootRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Type string  `json:"type,omitempty"`
}

// LootCondition restricts when a pool rolls.
type LootCondition struct {
	Condition string         `json:"condition"`
	Predicate map[string]any `json:"predicate"`
	Entity    string         `json:"entity"`
}

// DiscNBT is the item NBT of a custom disc: its model data index, hidden
// vanilla tooltip and the title as grey lore.
func DiscNBT(e model.Entry) string {
	return fmt.Sprintf(`{CustomModelData:%d, HideFlags:32, display:{Lore:["\"\\u00a77%s\""]}}`, e.Index, e.Title)
}

// CreeperLootTable replaces the vanilla creeper drops: gunpowder as usual,
// and when a skeleton kills it, one disc picked from the vanilla disc tag
// plus one item per entry, all equally weighted.
func CreeperLootTable(entries *model.EntryList) LootTable {
	discs := []LootEntry{{
		Type:   "minecraft:tag",
		Weight: 1,
		Name:   "minecraft:creeper_drop_music_discs",
		Expand: true,
	}}
	for _, e := range entries.Entries {
		discs = append(discs, LootEntry{
			Type:   "minecraft:item",
			Weight: 1,
			Name:   "minecraft:music_disc_11",
			Functions: []LootFunction{{
				Function: "minecraft:set_nbt",
				Tag:      DiscNBT(e),
			}},
		})
	}

	gunpowder := []LootEntry{{
		Type: "minecraft:item",
		Name: "minecraft:gunpowder",
		Functions: []LootFunction{
			{Function: "minecraft:set_count", Count: &LootRange{Min: 0, Max: 2, Type: "minecraft:uniform"}},
			{Function: "minecraft:looting_enchant", Count: &LootRange{Min: 0, Max: 1}},
		},
	}}

	return LootTable{
		Type: "minecraft:entity",
		Pools: []LootPool{
			{Rolls: 1, Entries: gunpowder},
			{
				Rolls:   1,
				Entries: discs,
				Conditions: []LootCondition{{
					Condition: "minecraft:entity_properties",
					Predicate: map[string]any{"type": "#minecraft:skeletons"},
					Entity:    "killer",
				}},
			},
		},
	}
}

// WriteLootTable writes the creeper loot table into a behavior pack.
func (r *Replicator) WriteLootTable(dir string, entries *model.EntryList) error {
	path := filepath.Join(dir, "data", "minecraft", "loot_tables", "entities", "creeper.json")
	if err := writeJSON(r.fs, path, CreeperLootTable(entries)); err != nil {
		return fmt.Errorf("write loot table: %w", err)
	}
	return nil
}
