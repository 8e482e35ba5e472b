package boundaries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

const sampleIndex = `[
  {
    "directory": "country",
    "area_type_wikidata_item_id": "Q6256",
    "name_columns": {"lang:en": "NAME_EN"}
  },
  {
    "directory": "regions",
    "associations": [
      {"comment": "Governor of Région", "position_item_id": "Q1", "name_columns": {}}
    ],
    "comment": "Régions"
  }
]
`

func TestParseIndex(t *testing.T) {
	ix, err := ParseIndex([]byte(sampleIndex), "index.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "regions"}, ix.Directories())
	assert.Empty(t, ix.Entries[0].Associations)
	require.Len(t, ix.Entries[1].Associations, 1)
	assert.Equal(t, "Q1", ix.Entries[1].Associations[0].PositionItemID)
	assert.Equal(t, []string{"Q1"}, ix.PositionItemIDs())
}

func TestParseIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"not an array", `{"directory": "x"}`},
		{"entry not an object", `["x"]`},
		{"missing directory", `[{"associations": []}]`},
		{"directory not a string", `[{"directory": 1}]`},
		{"empty directory", `[{"directory": ""}]`},
		{"directory with path", `[{"directory": "../etc"}]`},
		{"duplicate directory", `[{"directory": "a"}, {"directory": "a"}]`},
		{"associations not an array", `[{"directory": "a", "associations": {}}]`},
		{"association without id", `[{"directory": "a", "associations": [{"comment": "x"}]}]`},
		{"association id not a string", `[{"directory": "a", "associations": [{"position_item_id": 5}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndex([]byte(tt.doc), "index.json")
			require.Error(t, err)

			var parseErr *errors.ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestParseIndexNullAssociations(t *testing.T) {
	ix, err := ParseIndex([]byte(`[{"directory": "a", "associations": null}]`), "index.json")
	require.NoError(t, err)
	assert.Empty(t, ix.PositionItemIDs())

	out, err := ix.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"associations": null`)
}

func TestIndexMarshalRoundTrip(t *testing.T) {
	ix, err := ParseIndex([]byte(sampleIndex), "index.json")
	require.NoError(t, err)

	out, err := ix.Marshal()
	require.NoError(t, err)
	assert.Equal(t, sampleIndexFormatted, string(out))
}

const sampleIndexFormatted = `[
  {
    "directory": "country",
    "area_type_wikidata_item_id": "Q6256",
    "name_columns": {
      "lang:en": "NAME_EN"
    }
  },
  {
    "directory": "regions",
    "associations": [
      {
        "comment": "Governor of Région",
        "position_item_id": "Q1",
        "name_columns": {}
      }
    ],
    "comment": "Régions"
  }
]
`

func TestIndexMarshalEmpty(t *testing.T) {
	out, err := (&Index{}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestRewriteIndex(t *testing.T) {
	ix, err := ParseIndex([]byte(sampleIndex), "index.json")
	require.NoError(t, err)

	assert.Empty(t, RewriteIndex(ix, wikidata.Mapping{"Q2": "Q3"}))

	changes := RewriteIndex(ix, wikidata.Mapping{"Q1": "Q99"})
	assert.Equal(t, []Replacement{{Directory: "regions", Old: "Q1", New: "Q99"}}, changes)
	assert.Equal(t, "Q99", ix.Entries[1].Associations[0].PositionItemID)

	out, err := ix.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"position_item_id": "Q99",`)
	assert.Contains(t, string(out), `"comment": "Governor of Région",`)
}

func TestLoadAndSaveIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndexFormatted), 0o644))

	ix, err := LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, path, ix.Path)

	RewriteIndex(ix, wikidata.Mapping{"Q1": "Q2"})
	require.NoError(t, SaveIndex(ix))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"position_item_id": "Q2"`)
	assert.True(t, len(got) > 0 && got[len(got)-1] == '\n')
}

func TestLoadIndexMissing(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "index.json"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestResolveDir(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, root, ResolveDir(root))

	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o755))
	assert.Equal(t, filepath.Join(root, "build"), ResolveDir(root))
}
