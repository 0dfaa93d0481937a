// Package model defines the core data structures used throughout discpack.
//
// # Entry
//
// Entry is one custom music disc: an internal identifier, a display title,
// the source track and texture files, and the index assigned at generation
// time:
//
//	entry := model.NewEntry("Alpha Song", "/music/alpha.ogg", "/art/alpha.png")
//	fmt.Println(entry.ID) // "alpha_song"
//
// # EntryList
//
// EntryList keeps entries in order. The order decides the assigned indices:
//
//	list := model.NewEntryList(alpha, beta)
//	indexed := list.WithIndices(0) // alpha.Index == 1, beta.Index == 2
//
// Identifiers must be unique within a list; use Validate before generating.
package model
