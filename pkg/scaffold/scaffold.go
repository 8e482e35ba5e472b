// Package scaffold lays out a new country repository on disk.
package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// emptyIndex is how the Ruby builder serializes an empty array.
const emptyIndex = "[\n\n]"

const gemfile = `
# frozen_string_literal: true

source 'https://rubygems.org'

ruby '2.4.2'

gem 'commons-builder', :git => 'git://github.com/everypolitician/commons-builder.git'
`

// DataDirectories are created with an empty index.json each.
var DataDirectories = []string{
	filepath.Join(constants.BoundariesDir, constants.BuildDir),
	"executive",
	"legislative",
}

var nonLetters = regexp.MustCompile(`[^a-z]+`)

// RepoName derives the repository name from a country label: lowercased,
// apostrophes dropped, runs of anything but a-z turned into hyphens.
func RepoName(label string) string {
	slug := cases.Lower(language.English).String(label)
	slug = strings.ReplaceAll(slug, "'", "")
	slug = nonLetters.ReplaceAllString(slug, "-")
	return constants.RepoNamePrefix + strings.Trim(slug, "-")
}

// Description is the remote repository description for a country.
func Description(label string) string {
	return "A basic Democratic Commons repository for " + label
}

// Config is the config.json of a country repository.
type Config struct {
	CountryWikidataID string   `json:"country_wikidata_id"`
	Languages         []string `json:"languages"`
}

// Repository is a freshly scaffolded country repository.
type Repository struct {
	Dir string
	// Files lists the created files relative to Dir, in the order they
	// belong in the initial commit.
	Files []string
}

// Create lays out the repository for country in dir, which must not exist.
func Create(dir string, country *wikidata.Country) (*Repository, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, errors.NewResourceError("create", "repository directory", dir, errors.ErrAlreadyExists)
	} else if !os.IsNotExist(err) {
		return nil, errors.WrapIO("stat", dir, err)
	}
	if country == nil || country.ID == "" {
		return nil, errors.NewValidationError("country", country, "country has no Wikidata id")
	}

	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	repo := &Repository{Dir: dir}

	config, err := json.MarshalIndent(Config{
		CountryWikidataID: country.ID,
		Languages:         country.Languages,
	}, "", "  ")
	if err != nil {
		return nil, errors.WrapParse("json", "config.json", err)
	}
	if err := repo.write("config.json", config); err != nil {
		return nil, err
	}
	if err := repo.write("Gemfile", []byte(gemfile)); err != nil {
		return nil, err
	}

	for _, d := range DataDirectories {
		if err := os.MkdirAll(filepath.Join(dir, d), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Join(dir, d), err)
		}
		if err := repo.write(filepath.Join(d, constants.IndexFile), []byte(emptyIndex)); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func (r *Repository) write(rel string, data []byte) error {
	path := filepath.Join(r.Dir, rel)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	r.Files = append(r.Files, filepath.ToSlash(rel))
	return nil
}

// NextSteps returns the shell commands that finish setting up the
// repository: installing the builder, the initial commit, the first data
// refresh and, when a remote exists, pushing to it.
func (r *Repository) NextSteps(remoteURL string) []string {
	files := append(append([]string(nil), r.Files...), "Gemfile.lock")
	steps := []string{
		"cd " + r.Dir,
		"git init",
		"bundle install",
		"git add " + strings.Join(files, " "),
		"git commit -m 'Initial structure'",
		"../refresh-data.sh",
	}
	if remoteURL != "" {
		steps = append(steps,
			"git remote add origin "+remoteURL,
			"git push -u origin master",
		)
	}
	return steps
}
