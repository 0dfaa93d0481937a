package audio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/spf13/afero"
)

// Info is the metadata found in a track.
type Info struct {
	// Title is the TIT2 frame, empty when absent.
	Title string
	// Length is the TLEN frame in seconds, zero when absent or malformed.
	Length float64
}

// Probe reads the ID3v2 tag at the start of the file at path.
func Probe(fsys afero.Fs, path string) (Info, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	tag, err := id3v2.ParseReader(f, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Title", "Length"},
	})
	if err != nil {
		return Info{}, fmt.Errorf("failed to read tags of %s: %w", path, err)
	}

	info := Info{Title: strings.TrimSpace(tag.Title())}

	if tlen := tag.GetTextFrame(tag.CommonID("Length")).Text; tlen != "" {
		if ms, err := strconv.ParseFloat(strings.TrimSpace(tlen), 64); err == nil && ms > 0 {
			info.Length = ms / 1000
		}
	}
	return info, nil
}
