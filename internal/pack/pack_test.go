package pack

import (
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/handiism/discpack/internal/model"
	"github.com/handiism/discpack/internal/reference"
	"github.com/handiism/discpack/internal/template"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outDir = "/out/discs_dp"

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"v2/behavior/framework/data/{namespace}/functions/load.mcfunction": {
			Data: []byte("say {pack_name} {entry_count}\ntellraw @a {{\"text\":\"hi\"}}\n"),
		},
		"v2/behavior/framework/data/minecraft/tags/functions/load.json": {
			Data: []byte(`{"values": ["{namespace}:load"], "replace": false}`),
		},
		"v2/behavior/dispatch/data/{namespace}/functions/play.mcfunction": {
			Data: []byte("execute if score @s id matches {entry.index} run function {namespace}:{entry.id}/play\nsay {entry.title}"),
		},
		"v2/behavior/per_entry/data/{namespace}/functions/{entry.id}/play.mcfunction": {
			Data: []byte("playsound minecraft:music_disc.{entry.id} record @a\n"),
		},
		"v2/asset/per_entry/assets/minecraft/models/item/music_disc_{entry.id}.json": {
			Data: []byte(`{"parent": "item/generated", "textures": {"layer0": "item/music_disc_{entry.id}"}}`),
		},
	}
}

func testContext() template.Context {
	return template.Context{
		Namespace:  "discs_dp",
		PackName:   "discs_dp",
		PackFormat: 15,
		Version:    "v2.0",
		EntryCount: 2,
	}
}

func testEntries() *model.EntryList {
	return model.NewEntryList(
		model.Entry{ID: "alpha", Title: "Alpha", Track: "/media/alpha.ogg", Texture: "/media/alpha.png"},
		model.Entry{ID: "beta", Title: "Beta", Track: "/media/beta.ogg", Texture: "/media/beta.png"},
	).WithIndices(0)
}

func newTestTemplates(t *testing.T, fsys fs.FS) *Templates {
	t.Helper()
	tpl, err := NewTemplates(fsys, "v2")
	require.NoError(t, err)
	return tpl
}

func assertFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	assert.True(t, ok, "expected %s to exist", path)
}

func readString(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "behavior", Behavior.String())
	assert.Equal(t, "asset", Asset.String())
	assert.Equal(t, "_dp", Behavior.Suffix())
	assert.Equal(t, "_rp", Asset.Suffix())
}

func TestBuilder_Create(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys, newTestTemplates(t, testTemplates()))

	require.NoError(t, b.Create(Behavior, outDir, testContext()))

	for _, dir := range []string{
		"data/minecraft/tags/functions",
		"data/minecraft/loot_tables/entities",
		"data/discs_dp/functions",
		"data/discs_dp/advancements",
	} {
		ok, err := afero.DirExists(fsys, filepath.Join(outDir, dir))
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}

	var manifest Manifest
	require.NoError(t, json.Unmarshal([]byte(readString(t, fsys, filepath.Join(outDir, MarkerFile))), &manifest))
	assert.Equal(t, NewManifest(15, 2), manifest)
	assert.Equal(t, "Adds 2 custom music discs", manifest.Pack.Description)
}

func TestBuilder_CreateReplacesGeneratedPack(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys, newTestTemplates(t, testTemplates()))

	require.NoError(t, b.Create(Asset, outDir, testContext()))
	stale := filepath.Join(outDir, "assets", "minecraft", "sounds", "records", "old.ogg")
	require.NoError(t, afero.WriteFile(fsys, stale, []byte("old"), 0644))

	require.NoError(t, b.Create(Asset, outDir, testContext()))

	exists, err := afero.Exists(fsys, stale)
	require.NoError(t, err)
	assert.False(t, exists)
	assertFile(t, fsys, filepath.Join(outDir, MarkerFile))
}

func TestBuilder_CreateRefusesForeignPath(t *testing.T) {
	tests := []struct {
		name  string
		setup func(afero.Fs)
	}{
		{
			name: "directory without marker",
			setup: func(fsys afero.Fs) {
				_ = afero.WriteFile(fsys, filepath.Join(outDir, "notes.txt"), []byte("keep me"), 0644)
			},
		},
		{
			name: "regular file",
			setup: func(fsys afero.Fs) {
				_ = afero.WriteFile(fsys, outDir, []byte("keep me"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			tt.setup(fsys)
			before := snapshot(t, fsys)

			b := NewBuilder(fsys, newTestTemplates(t, testTemplates()))
			err := b.Create(Behavior, outDir, testContext())

			require.Error(t, err)
			assert.True(t, IsDirInUse(err))
			assert.Equal(t, before, snapshot(t, fsys))
		})
	}
}

func snapshot(t *testing.T, fsys afero.Fs) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := afero.Walk(fsys, "/", func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := afero.ReadFile(fsys, path)
		files[path] = string(data)
		return err
	})
	require.NoError(t, err)
	return files
}

func TestBuilder_WriteFramework(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys, newTestTemplates(t, testTemplates()))
	ctx := testContext()

	require.NoError(t, b.Create(Behavior, outDir, ctx))
	require.NoError(t, b.WriteFramework(Behavior, outDir, ctx))

	text := readString(t, fsys, filepath.Join(outDir, "data", "discs_dp", "functions", "load.mcfunction"))
	assert.Equal(t, "say discs_dp 2\ntellraw @a {\"text\":\"hi\"}\n", text)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(readString(t, fsys, filepath.Join(outDir, "data", "minecraft", "tags", "functions", "load.json"))), &doc))
	assert.Equal(t, []any{"discs_dp:load"}, doc["values"])
	assert.Equal(t, false, doc["replace"])
}

func TestBuilder_WriteFrameworkUnresolved(t *testing.T) {
	templates := fstest.MapFS{
		"v2/behavior/framework/bad.mcfunction": {Data: []byte("say {nope}\n")},
	}
	fsys := afero.NewMemMapFs()
	b := NewBuilder(fsys, newTestTemplates(t, templates))

	err := b.WriteFramework(Behavior, outDir, testContext())
	require.Error(t, err)
	assert.True(t, template.IsUnresolved(err))
}

func TestNewTemplates_MissingSet(t *testing.T) {
	_, err := NewTemplates(testTemplates(), "legacy")
	require.Error(t, err)
	assert.True(t, IsSetError(err))
}

func TestTemplates_FilesMissingSection(t *testing.T) {
	tpl := newTestTemplates(t, testTemplates())

	files, err := tpl.Files(Asset, SectionFramework)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReplicator_PerEntry(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := NewReplicator(fsys, newTestTemplates(t, testTemplates()))

	require.NoError(t, r.PerEntry(Behavior, outDir, testContext(), testEntries()))

	for _, id := range []string{"alpha", "beta"} {
		got := readString(t, fsys, filepath.Join(outDir, "data", "discs_dp", "functions", id, "play.mcfunction"))
		assert.Equal(t, "playsound minecraft:music_disc."+id+" record @a\n", got)
	}

	require.NoError(t, r.PerEntry(Asset, "/out/discs_rp", testContext(), testEntries()))
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(readString(t, fsys, "/out/discs_rp/assets/minecraft/models/item/music_disc_beta.json")), &doc))
	assert.Equal(t, map[string]any{"layer0": "item/music_disc_beta"}, doc["textures"])
}

// noSeekFS hides io.Seeker so the replicator has to reopen templates.
type noSeekFS struct {
	fs.FS
	opens int
}

type noSeekFile struct {
	fs.File
}

func (n *noSeekFS) Open(name string) (fs.File, error) {
	f, err := n.FS.Open(name)
	if err != nil {
		return nil, err
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		return f, nil
	}
	n.opens++
	return noSeekFile{File: f}, nil
}

func TestReplicator_Concatenate(t *testing.T) {
	tests := []struct {
		name string
		fsys fs.FS
	}{
		{"seekable templates", testTemplates()},
		{"reopened templates", &noSeekFS{FS: testTemplates()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			r := NewReplicator(fsys, newTestTemplates(t, tt.fsys))
			entries := model.NewEntryList(
				model.Entry{ID: "alpha", Title: "Alpha"},
				model.Entry{ID: "beta", Title: "Beta"},
				model.Entry{ID: "gamma", Title: "Gamma"},
			).WithIndices(4)

			require.NoError(t, r.Concatenate(Behavior, outDir, testContext(), entries))

			got := readString(t, fsys, filepath.Join(outDir, "data", "discs_dp", "functions", "play.mcfunction"))
			lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
			require.Len(t, lines, 3*2)
			assert.Equal(t, "execute if score @s id matches 5 run function discs_dp:alpha/play", lines[0])
			assert.Equal(t, "say Alpha", lines[1])
			assert.Equal(t, "execute if score @s id matches 7 run function discs_dp:gamma/play", lines[4])
			assert.Equal(t, "say Gamma", lines[5])

			if ns, ok := tt.fsys.(*noSeekFS); ok {
				assert.Equal(t, 3, ns.opens)
			}
		})
	}
}

func TestReplicator_ConcatenateNoEntries(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := NewReplicator(fsys, newTestTemplates(t, testTemplates()))

	require.NoError(t, r.Concatenate(Behavior, outDir, testContext(), model.NewEntryList()))
	assert.Empty(t, readString(t, fsys, filepath.Join(outDir, "data", "discs_dp", "functions", "play.mcfunction")))
}

func TestCreeperLootTable(t *testing.T) {
	table := CreeperLootTable(testEntries())

	require.Len(t, table.Pools, 2)
	assert.Equal(t, "minecraft:gunpowder", table.Pools[0].Entries[0].Name)

	discs := table.Pools[1].Entries
	require.Len(t, discs, 3)
	assert.Equal(t, "minecraft:creeper_drop_music_discs", discs[0].Name)
	assert.True(t, discs[0].Expand)
	assert.Equal(t, `{CustomModelData:2, HideFlags:32, display:{Lore:["\"\\u00a77Beta\""]}}`, discs[2].Functions[0].Tag)
	assert.Equal(t, "killer", table.Pools[1].Conditions[0].Entity)
}

func TestSoundEventsAndDiscModel(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := NewReplicator(fsys, newTestTemplates(t, testTemplates()))
	dir := "/out/discs_rp"

	require.NoError(t, r.WriteSounds(dir, testEntries()))
	require.NoError(t, r.WriteDiscModel(dir, testEntries()))

	var sounds map[string]SoundEvent
	require.NoError(t, json.Unmarshal([]byte(readString(t, fsys, dir+"/assets/minecraft/sounds.json")), &sounds))
	assert.Len(t, sounds, 2)
	assert.Equal(t, []Sound{{Name: "records/alpha", Stream: true}}, sounds["music_disc.alpha"].Sounds)

	var disc ItemModel
	require.NoError(t, json.Unmarshal([]byte(readString(t, fsys, dir+"/assets/minecraft/models/item/music_disc_11.json")), &disc))
	assert.Equal(t, "item/generated", disc.Parent)
	assert.Equal(t, []ModelOverride{
		{Predicate: ModelPredicate{CustomModelData: 1}, Model: "item/music_disc_alpha"},
		{Predicate: ModelPredicate{CustomModelData: 2}, Model: "item/music_disc_beta"},
	}, disc.Overrides)
}

func TestReplicator_CopyMedia(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := NewReplicator(fsys, newTestTemplates(t, testTemplates()))
	for _, e := range testEntries().Entries {
		require.NoError(t, afero.WriteFile(fsys, e.Track, []byte("ogg "+e.ID), 0644))
		require.NoError(t, afero.WriteFile(fsys, e.Texture, []byte("\x89PNG\r\n\x1a\n"+e.ID), 0644))
	}

	dir := "/out/discs_rp"
	require.NoError(t, r.CopyMedia(dir, testEntries()))

	assert.Equal(t, "ogg beta", readString(t, fsys, dir+"/assets/minecraft/sounds/records/beta.ogg"))
	assert.Equal(t, "\x89PNG\r\n\x1a\nalpha", readString(t, fsys, dir+"/assets/minecraft/textures/item/music_disc_alpha.png"))
}

func TestReplicator_CopyMediaMissingTrack(t *testing.T) {
	fsys := afero.NewMemMapFs()
	r := NewReplicator(fsys, newTestTemplates(t, testTemplates()))

	err := r.CopyMedia("/out/discs_rp", testEntries())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	fsys := afero.NewMemMapFs()
	tpl, err := NewTemplates(reference.Default(), "v2")
	require.NoError(t, err)

	b := NewBuilder(fsys, tpl)
	r := NewReplicator(fsys, tpl)
	ctx := testContext()
	entries := testEntries()

	require.NoError(t, b.Create(Behavior, outDir, ctx))
	require.NoError(t, b.WriteFramework(Behavior, outDir, ctx))
	require.NoError(t, r.Concatenate(Behavior, outDir, ctx, entries))
	require.NoError(t, r.PerEntry(Behavior, outDir, ctx, entries))

	functions := filepath.Join(outDir, "data", "discs_dp", "functions")
	assertFile(t, fsys, filepath.Join(functions, "alpha", "play.mcfunction"))
	assertFile(t, fsys, filepath.Join(functions, "beta", "stop.mcfunction"))

	give := readString(t, fsys, filepath.Join(functions, "give_beta.mcfunction"))
	assert.Equal(t, "give @s minecraft:music_disc_11{CustomModelData:2,HideFlags:32,display:{Lore:[\"\\\"\\\\u00a77Beta\\\"\"]}}\n", give)

	all := readString(t, fsys, filepath.Join(functions, "give_all_discs.mcfunction"))
	assert.Equal(t, "function discs_dp:give_alpha\nfunction discs_dp:give_beta\n", all)

	require.NoError(t, b.Create(Asset, "/out/discs_rp", ctx))
	require.NoError(t, b.WriteFramework(Asset, "/out/discs_rp", ctx))
	require.NoError(t, r.PerEntry(Asset, "/out/discs_rp", ctx, entries))
	assertFile(t, fsys, "/out/discs_rp/assets/minecraft/models/item/music_disc_alpha.json")
}
