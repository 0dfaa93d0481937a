package pack

import (
	"bytes"
	"fmt"

	ioutils "github.com/handiism/discpack/internal/io"
	"github.com/handiism/discpack/internal/template"
	"github.com/spf13/afero"
)

// DescriptionFormat is the manifest description; %d is the entry count.
const DescriptionFormat = "Adds %d custom music discs"

// Manifest is the pack.mcmeta document.
type Manifest struct {
	Pack PackInfo `json:"pack"`
}

// PackInfo is the "pack" object of a manifest.
type PackInfo struct {
	PackFormat  int    `json:"pack_format"`
	Description string `json:"description"`
}

// NewManifest creates the manifest of a pack holding entryCount discs.
func NewManifest(format, entryCount int) Manifest {
	return Manifest{
		Pack: PackInfo{
			PackFormat:  format,
			Description: fmt.Sprintf(DescriptionFormat, entryCount),
		},
	}
}

func writeJSON(fsys afero.Fs, path string, doc any) error {
	var buf bytes.Buffer
	if err := template.EncodeDocument(&buf, doc); err != nil {
		return err
	}
	return ioutils.WriteFile(fsys, path, buf.Bytes())
}
