package settings

import (
	"fmt"

	"github.com/handiism/discpack/internal/config"
)

// Kind is the selector type of a setting.
type Kind int

const (
	// Icon is an image file path.
	Icon Kind = iota
	// Check is a boolean.
	Check
	// Number is a non-negative integer with an upper bound.
	Number
	// Text is an identifier token.
	Text
	// Dropdown picks one of a fixed list of options.
	Dropdown
)

func (k Kind) String() string {
	switch k {
	case Icon:
		return "icon"
	case Check:
		return "check"
	case Number:
		return "number"
	case Text:
		return "text"
	case Dropdown:
		return "dropdown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Option is one choice of a Dropdown.
type Option struct {
	Label string
	Value any
}

// Definition describes one setting.
type Definition struct {
	Key     string
	Kind    Kind
	Label   string
	Tooltip string
	Default any

	// Max bounds a Number.
	Max int
	// Options lists the choices of a Dropdown.
	Options []Option
}

// Definitions lists every setting in display order.
func Definitions() []Definition {
	defaults := config.DefaultSettings()

	options := make([]Option, 0, len(config.GameVersions))
	var defaultVersion any
	for i := len(config.GameVersions) - 1; i >= 0; i-- {
		v := config.GameVersions[i]
		value := map[string]any{"dp": v.Version.DP, "rp": v.Version.RP}
		options = append(options, Option{Label: v.Name, Value: value})
		if v.Version == defaults.Version {
			defaultVersion = value
		}
	}

	return []Definition{
		{
			Key:     "pack",
			Kind:    Icon,
			Label:   "Pack icon",
			Tooltip: "Image shown next to both packs in the pack list",
			Default: "",
		},
		{
			Key:     "name",
			Kind:    Text,
			Label:   "Pack name",
			Tooltip: "Output name; _dp and _rp are appended",
			Default: defaults.Name,
		},
		{
			Key:     "version",
			Kind:    Dropdown,
			Label:   "Game version",
			Tooltip: "Game release the packs target; releases with datapack format 10 or lower need a templates directory with the legacy set",
			Default: defaultVersion,
			Options: options,
		},
		{
			Key:     "offset",
			Kind:    Number,
			Label:   "Index offset",
			Tooltip: "Start custom model data after this value, to combine with other disc packs",
			Default: defaults.Offset,
			Max:     9999,
		},
		{
			Key:     "zip",
			Kind:    Check,
			Label:   "Zip packs",
			Tooltip: "Archive each pack into a .zip and remove the directory",
			Default: defaults.Zip,
		},
		{
			Key:     "legacy_dp",
			Kind:    Check,
			Label:   "Legacy datapack",
			Tooltip: "Use the legacy datapack templates; they are not built in and need a templates directory",
			Default: defaults.LegacyDP,
		},
	}
}

// Lookup returns the definition of key.
func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions() {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
