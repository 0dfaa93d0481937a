package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"alpha", "alpha"},
		{"Alpha Song", "alpha_song"},
		{"Song: Part 1/2", "song_part_1_2"},
		{"  trailing   spaces  ", "trailing_spaces"},
		{"__under__score__", "under_score"},
		{"Ünïcode Tïtle", "n_code_t_tle"},
		{"track.ogg", "track_ogg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, InternalName(tt.input))
		})
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("Beta Song", "/music/beta.ogg", "/art/beta.png")

	assert.Equal(t, "beta_song", e.ID)
	assert.Equal(t, "records/beta_song", e.SoundName())
	assert.Equal(t, "item/music_disc_beta_song", e.ModelName())
	assert.Zero(t, e.Index)
}

func TestEntry_LengthTicks(t *testing.T) {
	assert.Equal(t, 0, Entry{}.LengthTicks())
	assert.Equal(t, 200, Entry{Length: 10}.LengthTicks())
	assert.Equal(t, 21, Entry{Length: 1.01}.LengthTicks())
}

func TestNameFromFile(t *testing.T) {
	assert.Equal(t, "Alpha Song", NameFromFile("/music/Alpha Song.ogg"))
	assert.Equal(t, "beta", NameFromFile("beta"))
}

func TestEntryList_WithIndices(t *testing.T) {
	list := NewEntryList(
		Entry{ID: "alpha", Title: "Alpha Song"},
		Entry{ID: "beta", Title: "Beta Song"},
		Entry{ID: "gamma", Title: "Gamma Song"},
	)

	for _, offset := range []int{0, 1, 7, 1000} {
		indexed := list.WithIndices(offset)

		require.Equal(t, list.Len(), indexed.Len())
		seen := map[int]bool{}
		for i, e := range indexed.Entries {
			assert.Equal(t, offset+i+1, e.Index)
			assert.False(t, seen[e.Index], "duplicate index %d", e.Index)
			seen[e.Index] = true
		}
	}

	for _, e := range list.Entries {
		assert.Zero(t, e.Index, "source list must not be mutated")
	}
}

func TestEntryList_WithIndicesExample(t *testing.T) {
	list := NewEntryList(Entry{ID: "alpha"}, Entry{ID: "beta"})

	indexed := list.WithIndices(0)

	assert.Equal(t, 1, indexed.Entries[0].Index)
	assert.Equal(t, 2, indexed.Entries[1].Index)
	assert.Equal(t, []string{"alpha", "beta"}, indexed.IDs())
}

func TestEntryList_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr bool
	}{
		{"empty list", nil, false},
		{"unique ids", []Entry{{ID: "a"}, {ID: "b_2"}}, false},
		{"duplicate ids", []Entry{{ID: "a"}, {ID: "a"}}, true},
		{"uppercase id", []Entry{{ID: "Alpha"}}, true},
		{"empty id", []Entry{{ID: ""}}, true},
		{"id with dash", []Entry{{ID: "a-b"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEntryList(tt.entries...).Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEntry)
				return
			}
			assert.NoError(t, err)
		})
	}
}
