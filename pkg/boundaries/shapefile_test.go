package boundaries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

type feature struct {
	x, y  float64
	attrs []string
}

func writeShapefile(t *testing.T, path string, fields []shp.Field, features []feature) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	w, err := createShapefile(path, shp.POINT, fields)
	require.NoError(t, err)
	for _, f := range features {
		row := w.Write(&shp.Point{X: f.x, Y: f.y})
		for k, v := range f.attrs {
			require.NoError(t, w.WriteAttribute(int(row), k, v))
		}
	}
	require.NoError(t, w.Close())
	require.FileExists(t, strings.TrimSuffix(path, ".shp")+".dbf")
}

func readShapefile(t *testing.T, path string) ([]string, []feature) {
	t.Helper()
	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.Fields() {
		names = append(names, f.String())
	}

	var features []feature
	for r.Next() {
		n, shape := r.Shape()
		p, ok := shape.(*shp.Point)
		require.True(t, ok)
		f := feature{x: p.X, y: p.Y}
		for k := range names {
			f.attrs = append(f.attrs, attribute(r, n, k))
		}
		features = append(features, f)
	}
	return names, features
}

func TestRewriteShapefile(t *testing.T) {
	dir := t.TempDir()
	path := ShapefilePath(dir, "regions")
	writeShapefile(t, path,
		[]shp.Field{shp.StringField("NAME", 20), shp.StringField("WIKIDATA", 16)},
		[]feature{
			{1, 2, []string{"North", "Q1"}},
			{3, 4, []string{"South", "Q2"}},
		})

	result, err := RewriteShapefile(dir, "regions", wikidata.Mapping{"Q1": "Q99"})
	require.NoError(t, err)
	assert.Equal(t, ShapefileRewritten, result.Outcome)
	assert.Equal(t, 2, result.Features)
	assert.Equal(t, 1, result.Replacements)

	names, features := readShapefile(t, path)
	assert.Equal(t, []string{"NAME", "WIKIDATA"}, names)
	require.Len(t, features, 2)
	assert.Equal(t, feature{1, 2, []string{"North", "Q99"}}, features[0])
	assert.Equal(t, feature{3, 4, []string{"South", "Q2"}}, features[1])

	for _, ext := range []string{".shp", ".shx", ".dbf", "dbf"} {
		assert.NoFileExists(t, filepath.Join(dir, "regions", "new.regions"+ext))
	}
	assert.NoFileExists(t, filepath.Join(dir, "regions", "regionsdbf"))
}

func TestRewriteShapefileRawAttributeTable(t *testing.T) {
	dir := t.TempDir()
	path := ShapefilePath(dir, "regions")
	writeShapefile(t, path,
		[]shp.Field{shp.StringField("WIKIDATA", 16)},
		[]feature{{1, 2, []string{"Q1"}}})

	// Values shorter than the field are NUL padded on disk.
	r, err := shp.Open(path)
	require.NoError(t, err)
	require.True(t, r.Next())
	assert.Contains(t, r.ReadAttribute(0, 0), "\x00")
	r.Close()

	result, err := RewriteShapefile(dir, "regions", wikidata.Mapping{"Q1": "Q99"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Replacements)

	_, features := readShapefile(t, path)
	require.Len(t, features, 1)
	assert.Equal(t, []string{"Q99"}, features[0].attrs)
}

func TestRewriteShapefileAbsent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "regions"), 0o755))

	result, err := RewriteShapefile(dir, "regions", wikidata.Mapping{"Q1": "Q2"})
	require.NoError(t, err)
	assert.Equal(t, ShapefileAbsent, result.Outcome)
}

func TestRewriteShapefileWithoutIdentifierAttribute(t *testing.T) {
	dir := t.TempDir()
	path := ShapefilePath(dir, "regions")
	writeShapefile(t, path,
		[]shp.Field{shp.StringField("NAME", 20)},
		[]feature{{1, 2, []string{"North"}}})
	before := readFile(t, path)

	result, err := RewriteShapefile(dir, "regions", wikidata.Mapping{"Q1": "Q2"})
	require.NoError(t, err)
	assert.Equal(t, ShapefileNoIdentifier, result.Outcome)
	assert.Equal(t, before, readFile(t, path))
}

func TestRewriteShapefileDryRun(t *testing.T) {
	dir := t.TempDir()
	path := ShapefilePath(dir, "regions")
	writeShapefile(t, path,
		[]shp.Field{shp.StringField("WIKIDATA", 16)},
		[]feature{{1, 2, []string{"Q1"}}})

	result, err := RewriteShapefile(dir, "regions", wikidata.Mapping{"Q1": "Q2"}, WithDryRun(true))
	require.NoError(t, err)
	assert.Equal(t, ShapefileRewritten, result.Outcome)
	assert.Equal(t, 1, result.Replacements)

	_, features := readShapefile(t, path)
	assert.Equal(t, []string{"Q1"}, features[0].attrs)
	assert.NoFileExists(t, filepath.Join(dir, "regions", "new.regions.shp"))
	assert.NoFileExists(t, filepath.Join(dir, "regions", "new.regionsdbf"))
}
