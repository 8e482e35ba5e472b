package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

func TestRepoName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Belgium", "proto-commons-belgium"},
		{"Côte d'Ivoire", "proto-commons-c-te-divoire"},
		{"Bosnia and Herzegovina", "proto-commons-bosnia-and-herzegovina"},
		{"  Saint Kitts & Nevis ", "proto-commons-saint-kitts-nevis"},
		{"People's Republic of China", "proto-commons-peoples-republic-of-china"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, RepoName(tt.label))
		})
	}
}

func TestCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "be")
	country := &wikidata.Country{Code: "be", ID: "Q31", Label: "Belgium", Languages: []string{"de", "fr", "nl", "en"}}

	repo, err := Create(dir, country)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"config.json",
		"Gemfile",
		"boundaries/build/index.json",
		"executive/index.json",
		"legislative/index.json",
	}, repo.Files)

	config, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"country_wikidata_id\": \"Q31\",\n  \"languages\": [\n    \"de\",\n    \"fr\",\n    \"nl\",\n    \"en\"\n  ]\n}", string(config))

	index, err := os.ReadFile(filepath.Join(dir, "legislative", "index.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n\n]", string(index))

	gem, err := os.ReadFile(filepath.Join(dir, "Gemfile"))
	require.NoError(t, err)
	assert.Contains(t, string(gem), "gem 'commons-builder'")
}

func TestCreateRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	_, err := Create(dir, &wikidata.Country{ID: "Q31"})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestCreateRequiresCountryID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")
	_, err := Create(dir, &wikidata.Country{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.NoDirExists(t, dir)
}

func TestNextSteps(t *testing.T) {
	repo := &Repository{Dir: "be", Files: []string{"config.json", "Gemfile"}}

	local := repo.NextSteps("")
	assert.Equal(t, "git add config.json Gemfile Gemfile.lock", local[3])
	assert.Len(t, local, 6)

	remote := repo.NextSteps("git@github.com:everypolitician/proto-commons-belgium.git")
	assert.Equal(t, "git push -u origin master", remote[len(remote)-1])
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "A basic Democratic Commons repository for Belgium", Description("Belgium"))
}
