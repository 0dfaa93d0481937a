package config

import "fmt"

// LegacyMaxFormat is the last datapack format the v2 templates do not
// support; versions at or below it need the legacy datapack.
const LegacyMaxFormat = 10

// GameVersion pairs a game release with its pack formats.
type GameVersion struct {
	Name    string
	Version PackVersion
}

// GameVersions lists supported releases, oldest first.
var GameVersions = []GameVersion{
	{Name: "1.17.1", Version: PackVersion{DP: 7, RP: 7}},
	{Name: "1.18.1", Version: PackVersion{DP: 8, RP: 8}},
	{Name: "1.18.2", Version: PackVersion{DP: 9, RP: 8}},
	{Name: "1.19.2", Version: PackVersion{DP: 10, RP: 9}},
	{Name: "1.19.3", Version: PackVersion{DP: 10, RP: 12}},
	{Name: "1.19.4", Version: PackVersion{DP: 12, RP: 13}},
	{Name: "1.20.1", Version: PackVersion{DP: 15, RP: 15}},
	{Name: "1.20.2", Version: PackVersion{DP: 18, RP: 18}},
	{Name: "1.20.4", Version: PackVersion{DP: 26, RP: 22}},
}

// LookupGameVersion returns the pack formats of a release name.
func LookupGameVersion(name string) (PackVersion, error) {
	for _, v := range GameVersions {
		if v.Name == name {
			return v.Version, nil
		}
	}
	return PackVersion{}, fmt.Errorf("unknown game version %q", name)
}

// GameVersionName returns the newest release using the given formats, or
// "" when none matches.
func GameVersionName(v PackVersion) string {
	for i := len(GameVersions) - 1; i >= 0; i-- {
		if GameVersions[i].Version == v {
			return GameVersions[i].Name
		}
	}
	return ""
}

// IsLegacy reports whether the datapack format needs the legacy templates.
func (v PackVersion) IsLegacy() bool {
	return v.DP <= LegacyMaxFormat
}
