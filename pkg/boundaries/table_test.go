package boundaries

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// backdate sets an old modification time so tests can tell whether a file
// was rewritten.
func backdate(t *testing.T, path string) time.Time {
	t.Helper()
	old := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, old, old))
	return old
}

func modTime(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.ModTime()
}

func TestDetectNewline(t *testing.T) {
	assert.Equal(t, "\r\n", DetectNewline([]byte("a,b\r\nc,d\r\n")))
	assert.Equal(t, "\n", DetectNewline([]byte("a,b\nc,d\r\n")))
	assert.Equal(t, "\r", DetectNewline([]byte("a,b\rc,d")))
	assert.Equal(t, DefaultNewline, DetectNewline([]byte("a,b")))
	assert.Equal(t, DefaultNewline, DetectNewline(nil))
}

func TestScanTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "WIKIDATA,name\r\nQ2,B\r\nQ1,A\r\n,C\r\nQ1,D\r\n")

	scan, err := ScanTable(path)
	require.NoError(t, err)

	assert.Equal(t, ScanReconciled, scan.Status)
	assert.True(t, scan.Applicable())
	assert.Equal(t, []string{"WIKIDATA", "name"}, scan.Header)
	assert.Equal(t, []string{"Q1", "Q2"}, scan.IDs)
	assert.Equal(t, 4, scan.Rows)
	assert.Equal(t, "\r\n", scan.Newline)
}

func TestScanTableNotApplicable(t *testing.T) {
	dir := t.TempDir()

	noColumn := filepath.Join(dir, "a.csv")
	writeFile(t, noColumn, "id,name\n1,A\n")
	scan, err := ScanTable(noColumn)
	require.NoError(t, err)
	assert.Equal(t, ScanNoIdentifierColumn, scan.Status)
	assert.False(t, scan.Applicable())
	assert.Empty(t, scan.IDs)

	empty := filepath.Join(dir, "b.csv")
	writeFile(t, empty, "")
	scan, err = ScanTable(empty)
	require.NoError(t, err)
	assert.Equal(t, ScanEmpty, scan.Status)
	assert.False(t, scan.Applicable())
}

func TestScanTableHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "name,WIKIDATA")

	scan, err := ScanTable(path)
	require.NoError(t, err)
	assert.True(t, scan.Applicable())
	assert.Zero(t, scan.Rows)
	assert.Empty(t, scan.IDs)
	assert.Equal(t, DefaultNewline, scan.Newline)
}

func TestScanTableMissing(t *testing.T) {
	_, err := ScanTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRewriteTableReplacesIdentifiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "WIKIDATA,name\nQ1,A\nQ2,B\n")

	result, err := RewriteTable(path, "\n", wikidata.Mapping{"Q1": "Q99"})
	require.NoError(t, err)

	assert.Equal(t, TableChanged, result.Outcome)
	assert.Equal(t, []Replacement{{Row: 1, Old: "Q1", New: "Q99"}}, result.Replacements)
	assert.Equal(t, "WIKIDATA,name\nQ99,A\nQ2,B\n", readFile(t, path))
}

func TestRewriteTablePreservesLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "name,WIKIDATA,note\r\nA,Q1,\"x, y\"\r\nB,Q2,\"multi\nline\"\r\nC,Q1,z")

	result, err := RewriteTable(path, "\r\n", wikidata.Mapping{"Q1": "Q5"})
	require.NoError(t, err)
	assert.Equal(t, TableChanged, result.Outcome)
	assert.Len(t, result.Replacements, 2)

	assert.Equal(t, "name,WIKIDATA,note\r\nA,Q5,\"x, y\"\r\nB,Q2,\"multi\nline\"\r\nC,Q5,z", readFile(t, path))
}

func TestRewriteTableUnchangedLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	original := "WIKIDATA,name\r\nQ1,\"A\"\r\nQ2,B\r\n"
	writeFile(t, path, original)
	old := backdate(t, path)

	result, err := RewriteTable(path, "\r\n", wikidata.Mapping{"Q7": "Q8"})
	require.NoError(t, err)

	assert.Equal(t, TableUnchanged, result.Outcome)
	assert.Empty(t, result.Replacements)
	assert.Equal(t, original, readFile(t, path))
	assert.True(t, modTime(t, path).Equal(old))
}

func TestRewriteTableNotApplicable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	original := "id,name\nQ1,A\n"
	writeFile(t, path, original)
	old := backdate(t, path)

	result, err := RewriteTable(path, "\n", wikidata.Mapping{"Q1": "Q2"})
	require.NoError(t, err)

	assert.Equal(t, TableNotApplicable, result.Outcome)
	assert.Equal(t, original, readFile(t, path))
	assert.True(t, modTime(t, path).Equal(old))
}

func TestRewriteTableKeepsUnchangedRowBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "\"WIKIDATA\",\"name\"\n\"Q1\",\"A\"\n\"Q2\",\"B\"\n")

	_, err := RewriteTable(path, "\n", wikidata.Mapping{"Q1": "Q3"})
	require.NoError(t, err)

	assert.Equal(t, "\"WIKIDATA\",\"name\"\nQ3,A\n\"Q2\",\"B\"\n", readFile(t, path))
}

func TestRewriteTableShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "name,WIKIDATA\nA\nB,Q1\n")

	result, err := RewriteTable(path, "\n", wikidata.Mapping{"Q1": "Q2"})
	require.NoError(t, err)
	assert.Equal(t, TableChanged, result.Outcome)
	assert.Equal(t, "name,WIKIDATA\nA\nB,Q2\n", readFile(t, path))
}

func TestRewriteTableIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	writeFile(t, path, "WIKIDATA,name\nQ1,A\nQ2,B\n")
	m := wikidata.Mapping{"Q1": "Q99"}

	first, err := RewriteTable(path, "\n", m)
	require.NoError(t, err)
	assert.Equal(t, TableChanged, first.Outcome)
	after := readFile(t, path)

	second, err := RewriteTable(path, "\n", m)
	require.NoError(t, err)
	assert.Equal(t, TableUnchanged, second.Outcome)
	assert.Equal(t, after, readFile(t, path))
}

func TestRewriteTableDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	original := "WIKIDATA,name\nQ1,A\n"
	writeFile(t, path, original)

	result, err := RewriteTable(path, "\n", wikidata.Mapping{"Q1": "Q2"}, WithDryRun(true))
	require.NoError(t, err)
	assert.Equal(t, TableChanged, result.Outcome)
	assert.Equal(t, original, readFile(t, path))
}

func TestRewriteTableLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	writeFile(t, path, "WIKIDATA\nQ1\n")

	_, err := RewriteTable(path, "\n", wikidata.Mapping{"Q1": "Q2"})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
