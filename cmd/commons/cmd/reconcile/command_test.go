package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/internal/appcontext"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

const index = `[
  {
    "directory": "regions",
    "associations": [
      {
        "position_item_id": "Q7"
      }
    ]
  }
]
`

// sparqlServer answers every query with the given old → new redirects and
// records the query bodies.
func sparqlServer(t *testing.T, redirects map[string]string, queries *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*queries = append(*queries, string(body))

		var bindings []map[string]any
		for old, replacement := range redirects {
			bindings = append(bindings, map[string]any{
				"old": map[string]string{"type": "uri", "value": "http://www.wikidata.org/entity/" + old},
				"new": map[string]string{"type": "uri", "value": "http://www.wikidata.org/entity/" + replacement},
			})
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"head":    map[string]any{"vars": []string{"old", "new"}},
			"results": map[string]any{"bindings": bindings},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setup(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "regions"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.json"), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "regions", "regions.csv"),
		[]byte("WIKIDATA,name\nQ1,North\nQ2,South\n"), 0o644))
	return root
}

func run(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReconcileCommand(t *testing.T) {
	root := setup(t)
	var queries []string
	srv := sparqlServer(t, map[string]string{"Q1": "Q100", "Q7": "Q8"}, &queries)

	app := &appcontext.Mock{
		WikidataFunc: func() *wikidata.Client { return wikidata.New(srv.URL) },
	}
	out, err := run(t, app, "--boundaries-dir", root)
	require.NoError(t, err)

	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], "wd:Q1 wd:Q2 wd:Q7")

	csv, err := os.ReadFile(filepath.Join(root, "regions", "regions.csv"))
	require.NoError(t, err)
	assert.Equal(t, "WIKIDATA,name\nQ100,North\nQ2,South\n", string(csv))

	idx, err := os.ReadFile(filepath.Join(root, "index.json"))
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(index, "Q7", "Q8", 1), string(idx))

	assert.Contains(t, out, "Checked 3 identifiers")
	assert.Contains(t, out, "Replaced Q1 with Q100 in regions/regions.csv row 1")
	assert.Contains(t, out, "Replaced Q7 with Q8 in index.json (regions)")
}

func TestReconcileCommandDryRun(t *testing.T) {
	root := setup(t)
	var queries []string
	srv := sparqlServer(t, map[string]string{"Q1": "Q100"}, &queries)

	app := &appcontext.Mock{
		WikidataFunc:     func() *wikidata.Client { return wikidata.New(srv.URL) },
		OutputFormatFunc: func() string { return "json" },
	}
	out, err := run(t, app, "-d", root, "--dry-run")
	require.NoError(t, err)

	csv, err := os.ReadFile(filepath.Join(root, "regions", "regions.csv"))
	require.NoError(t, err)
	assert.Equal(t, "WIKIDATA,name\nQ1,North\nQ2,South\n", string(csv))

	var report struct {
		DryRun      bool              `json:"dry_run"`
		Mapping     map[string]string `json:"mapping"`
		Directories []struct {
			Directory string `json:"directory"`
			Table     string `json:"table"`
		} `json:"directories"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, map[string]string{"Q1": "Q100"}, report.Mapping)
	require.Len(t, report.Directories, 1)
	assert.Equal(t, "changed", report.Directories[0].Table)
}

func TestReconcileCommandMissingIndex(t *testing.T) {
	app := &appcontext.Mock{}
	_, err := run(t, app, "--boundaries-dir", t.TempDir())
	assert.Error(t, err)
}

func TestReconcileCommandServiceError(t *testing.T) {
	root := setup(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	app := &appcontext.Mock{
		WikidataFunc: func() *wikidata.Client { return wikidata.New(srv.URL) },
	}
	_, err := run(t, app, "--boundaries-dir", root)
	require.Error(t, err)

	csv, readErr := os.ReadFile(filepath.Join(root, "regions", "regions.csv"))
	require.NoError(t, readErr)
	assert.Equal(t, "WIKIDATA,name\nQ1,North\nQ2,South\n", string(csv))
}
