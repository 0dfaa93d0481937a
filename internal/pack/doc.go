// Package pack writes behavior (datapack) and asset (resourcepack) trees.
//
// A Builder prepares an empty pack directory with its skeleton and
// pack.mcmeta manifest, then mirrors the framework templates into it. A
// Replicator renders the per-entry and dispatch templates, writes the
// documents that list every entry (loot table, sounds.json, item model
// overrides) and copies each entry's media.
//
// All output goes through an afero.Fs; templates are read from an fs.FS
// laid out as <set>/<kind>/<section>/.
package pack
