package settings

import (
	"testing"

	"github.com/handiism/discpack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		max  int
		want int
	}{
		{"int in range", 5, 10, 5},
		{"above max", 50, 10, 10},
		{"negative", -3, 10, 0},
		{"numeric text", " 7 ", 10, 7},
		{"garbage text", "abc", 10, 0},
		{"float", 3.9, 10, 3},
		{"no upper bound", 123456, 0, 123456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNumber(tt.in, tt.max))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "my_discs2", NormalizeText("My_Discs-2", "x"))
	assert.Equal(t, "fallback", NormalizeText("!!!", "fallback"))
	assert.Equal(t, "fallback", NormalizeText("", "fallback"))
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	keys := make([]string, 0, len(defs))
	for _, d := range defs {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"pack", "name", "version", "offset", "zip", "legacy_dp"}, keys)

	version, ok := Lookup("version")
	require.True(t, ok)
	assert.Equal(t, Dropdown, version.Kind)
	assert.Equal(t, map[string]any{"dp": 15, "rp": 15}, version.Default)
	assert.Len(t, version.Options, len(config.GameVersions))
}

func TestForm_DefaultsMatchConfig(t *testing.T) {
	f := NewForm(Definitions(), NewLegacyLock())

	s, err := config.FromMap(f.Values())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
}

func TestForm_Set(t *testing.T) {
	f := NewForm(Definitions())

	require.NoError(t, f.Set("name", "Road Trip!"))
	assert.Equal(t, "roadtrip", f.Value("name"))

	require.NoError(t, f.Set("offset", "20000"))
	assert.Equal(t, 9999, f.Value("offset"))

	require.NoError(t, f.Set("zip", "true"))
	assert.Equal(t, true, f.Value("zip"))

	require.NoError(t, f.Set("version", "1.20.4"))
	assert.Equal(t, map[string]any{"dp": 26, "rp": 22}, f.Value("version"))

	assert.Error(t, f.Set("version", "0.1"))
	assert.Error(t, f.Set("missing", 1))
	assert.Error(t, f.Set("zip", 3))
}

func TestLegacyLock(t *testing.T) {
	f := NewForm(Definitions(), NewLegacyLock())
	require.NoError(t, f.Set("legacy_dp", false))
	assert.False(t, f.Locked("legacy_dp"))

	require.NoError(t, f.Set("version", "1.19.2"))
	assert.True(t, f.Locked("legacy_dp"))
	assert.Equal(t, true, f.Value("legacy_dp"))
	assert.Error(t, f.Set("legacy_dp", false), "locked settings reject input")

	require.NoError(t, f.Set("version", "1.18.2"))
	assert.True(t, f.Locked("legacy_dp"), "still legacy")

	require.NoError(t, f.Set("version", "1.20.1"))
	assert.False(t, f.Locked("legacy_dp"))
	assert.Equal(t, false, f.Value("legacy_dp"), "user value restored")
}

func TestLegacyLock_RestoresTrue(t *testing.T) {
	f := NewForm(Definitions(), NewLegacyLock())
	require.NoError(t, f.Set("legacy_dp", true))

	require.NoError(t, f.Set("version", "1.17.1"))
	require.NoError(t, f.Set("version", "1.20.2"))

	assert.False(t, f.Locked("legacy_dp"))
	assert.Equal(t, true, f.Value("legacy_dp"))
}
