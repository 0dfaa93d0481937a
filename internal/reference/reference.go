// Package reference ships the template trees the generator renders packs from.
//
// Layout is <set>/<kind>/<section>/..., where set is "v2" or "legacy", kind is
// "behavior" or "asset" and section is one of "framework", "dispatch" or
// "per_entry". File and directory names may carry {placeholder} segments.
package reference

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed v2
var embedded embed.FS

// Default returns the embedded template tree.
func Default() fs.FS {
	return embedded
}

// Open returns the template tree rooted at dir, or the embedded tree when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return Default()
	}
	return os.DirFS(dir)
}
