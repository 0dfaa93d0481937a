package template

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/discpack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() Context {
	return Context{
		Namespace:  "discs_dp",
		PackName:   "discs_dp",
		PackFormat: 15,
		Version:    "v2.0",
		EntryCount: 2,
	}.WithEntry(model.Entry{ID: "alpha", Title: "Alpha Song", Index: 3, Length: 12.5})
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"no placeholders", "say hello", "say hello"},
		{"single", "function {namespace}:play", "function discs_dp:play"},
		{"entry fields", "{entry.id} {entry.title} {entry.index}", "alpha Alpha Song 3"},
		{"length ticks", "schedule {entry.length_ticks}t", "schedule 250t"},
		{"repeated", "{entry.id}/{entry.id}", "alpha/alpha"},
		{"escaped braces", `tellraw @a {{"text":"{entry.title}"}}`, `tellraw @a {"text":"Alpha Song"}`},
		{"nested escapes", "{{{{x}}}}", "{{x}}"},
		{"numbers", "{pack_format}:{entry_count}:{offset}", "15:2:0"},
		{"empty", "", ""},
	}

	ctx := testContext()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Line(tt.line, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLine_Unresolved(t *testing.T) {
	_, err := Line("function {namespace}:{missing}", testContext())
	require.Error(t, err)
	assert.True(t, IsUnresolved(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestLine_EntryWithoutEntry(t *testing.T) {
	ctx := Context{Namespace: "discs_dp"}
	_, err := Line("{entry.id}", ctx)
	assert.True(t, IsUnresolved(err))
}

func TestLine_Syntax(t *testing.T) {
	for _, line := range []string{"open {namespace", "lone } brace", `{"text":"x"}`} {
		t.Run(line, func(t *testing.T) {
			_, err := Line(line, testContext())
			require.Error(t, err)
			assert.True(t, IsSyntax(err) || IsUnresolved(err))
		})
	}
}

func TestLine_Encoding(t *testing.T) {
	ctx := Context{}.WithEntry(model.Entry{ID: "bad", Title: "broken \xff title"})
	_, err := Line("{entry.title}", ctx)
	require.Error(t, err)
	assert.True(t, IsEncoding(err))
}

func TestLine_NoPlaceholderSyntaxRemains(t *testing.T) {
	ctx := testContext()
	line := "a {namespace} b {entry.id} c {entry.index} d {dp_version}"
	got, err := Line(line, ctx)
	require.NoError(t, err)
	assert.NotContains(t, got, "{")
	assert.NotContains(t, got, "}")
}

func TestDocument_PreservesStructure(t *testing.T) {
	src := `{
		"name": "{namespace}:give",
		"count": 3,
		"enabled": true,
		"none": null,
		"values": ["{entry.id}", 1.5, false, {"deep": ["{entry.title}"]}],
		"{entry.id}": "key stays"
	}`
	doc, err := DecodeDocument(strings.NewReader(src))
	require.NoError(t, err)

	out, err := Document(doc, testContext())
	require.NoError(t, err)

	m := out.(map[string]any)
	assert.Len(t, m, 6)
	assert.Equal(t, "discs_dp:give", m["name"])
	assert.Equal(t, json.Number("3"), m["count"])
	assert.Equal(t, true, m["enabled"])
	assert.Nil(t, m["none"])
	assert.Equal(t, "key stays", m["{entry.id}"])

	values := m["values"].([]any)
	require.Len(t, values, 4)
	assert.Equal(t, "alpha", values[0])
	assert.Equal(t, json.Number("1.5"), values[1])
	assert.Equal(t, false, values[2])
	assert.Equal(t, []any{"Alpha Song"}, values[3].(map[string]any)["deep"])

	// input untouched
	orig := doc.(map[string]any)
	assert.Equal(t, "{namespace}:give", orig["name"])
}

func TestDocument_Error(t *testing.T) {
	doc := map[string]any{"a": []any{"ok", "{nope}"}}
	_, err := Document(doc, testContext())
	require.Error(t, err)
	assert.True(t, IsUnresolved(err))
	assert.Contains(t, err.Error(), "a: [1]")
}

func TestPath(t *testing.T) {
	got, err := Path([]string{"data", "{namespace}", "functions", "{entry.id}", "play.mcfunction"}, testContext())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "discs_dp", "functions", "alpha", "play.mcfunction"), got)

	_, err = Path([]string{"data", "{unknown}"}, testContext())
	assert.True(t, IsUnresolved(err))
}

func TestRender(t *testing.T) {
	src := "# {entry.title}\nfunction {namespace}:{entry.id}/play\r\nscoreboard players set @s len {entry.length_ticks}"

	var buf bytes.Buffer
	require.NoError(t, Render(strings.NewReader(src), &buf, testContext()))

	assert.Equal(t, "# Alpha Song\nfunction discs_dp:alpha/play\nscoreboard players set @s len 250\n", buf.String())
}

func TestRender_ReportsLine(t *testing.T) {
	var buf bytes.Buffer
	err := Render(strings.NewReader("ok\n{bad}\n"), &buf, testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestEncodeDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeDocument(&buf, map[string]any{"a": "<b>"}))
	assert.Equal(t, "{\n    \"a\": \"<b>\"\n}\n", buf.String())
}
