package template

import (
	"strconv"

	"github.com/handiism/discpack/internal/model"
)

// EntryName is the reserved placeholder prefix for the current entry.
const EntryName = "entry"

// Context holds every value a template may reference.
//
// Context is passed by value; per-entry rendering copies the base context
// and sets Entry via WithEntry.
type Context struct {
	// Namespace is the function namespace, the datapack directory name.
	Namespace string

	// PackName is the output directory name of the pack being written.
	PackName string

	// PackFormat is the target format version of the pack being written.
	PackFormat int

	// Version is the generator datapack version string, e.g. "v2.0".
	Version string

	// EntryCount is the number of entries in the run.
	EntryCount int

	// Offset is the user-configured index offset.
	Offset int

	// Entry is the current entry, nil outside per-entry rendering.
	Entry *model.Entry
}

// WithEntry returns a copy of the context bound to entry.
func (c Context) WithEntry(entry model.Entry) Context {
	c.Entry = &entry
	return c
}

// Lookup returns the string form of the named value.
//
// Available names:
//   - namespace, pack_name, pack_format, dp_version, entry_count, offset
//   - entry.id, entry.title, entry.index, entry.length, entry.length_ticks
func (c Context) Lookup(name string) (string, bool) {
	switch name {
	case "namespace":
		return c.Namespace, true
	case "pack_name":
		return c.PackName, true
	case "pack_format":
		return strconv.Itoa(c.PackFormat), true
	case "dp_version":
		return c.Version, true
	case "entry_count":
		return strconv.Itoa(c.EntryCount), true
	case "offset":
		return strconv.Itoa(c.Offset), true
	}

	if c.Entry == nil {
		return "", false
	}

	switch name {
	case EntryName + ".id":
		return c.Entry.ID, true
	case EntryName + ".title":
		return c.Entry.Title, true
	case EntryName + ".index":
		return strconv.Itoa(c.Entry.Index), true
	case EntryName + ".length":
		return strconv.FormatFloat(c.Entry.Length, 'f', -1, 64), true
	case EntryName + ".length_ticks":
		return strconv.Itoa(c.Entry.LengthTicks()), true
	}
	return "", false
}
