// Package bootstrap provides the bootstrap command, which lays out a new
// country repository from an ISO 3166-1 code.
package bootstrap

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/everypolitician/commons-tools/internal/appcontext"
	"github.com/everypolitician/commons-tools/internal/cmd/alerts"
	"github.com/everypolitician/commons-tools/internal/cmd/output"
	"github.com/everypolitician/commons-tools/internal/fileutil"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/github"
	"github.com/everypolitician/commons-tools/pkg/logging"
	"github.com/everypolitician/commons-tools/pkg/scaffold"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// Flags holds the bootstrap command flags.
type Flags struct {
	Directory    string
	CreateRemote bool
}

// Result describes a bootstrapped repository.
type Result struct {
	Country        *wikidata.Country  `json:"country" yaml:"country"`
	RepositoryName string             `json:"repository_name" yaml:"repository_name"`
	Directory      string             `json:"directory" yaml:"directory"`
	Files          []string           `json:"files" yaml:"files"`
	Remote         *github.Repository `json:"remote,omitempty" yaml:"remote,omitempty"`
	RemoteURL      string             `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`
	NextSteps      []string           `json:"next_steps" yaml:"next_steps"`
}

// NewCommand creates the bootstrap command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "bootstrap <iso-3166-1-code>",
		GroupID: "repos",
		Short:   "Bootstrap a new country repository",
		Args:    cobra.ExactArgs(1),
		Long: `Bootstrap looks the country up on Wikidata by its ISO 3166-1 alpha-2 code
and creates a repository skeleton: config.json with the country item and
its official languages, a Gemfile, and empty boundary, executive and
legislative indexes.

With --create-remote the repository is also created on GitHub and tagged
with its topics; this needs GITHUB_ACCESS_TOKEN. The git, bundler and data
refresh commands that finish the set up are printed, not run.`,
		Example: `  commons bootstrap ee
  commons bootstrap ee -d estonia --create-remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithCountry(logging.WithLogger(cmd.Context(), app.Logger()), args[0])

			result, err := Run(ctx, app, args[0], flags)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, NewView(result))
		},
	}

	cmd.Flags().StringVarP(&flags.Directory, "directory", "d", "",
		"directory to create the repository in (default: the lowercased code)")
	cmd.Flags().BoolVar(&flags.CreateRemote, "create-remote", false,
		"create the GitHub repository and set its topics")

	return cmd
}

// Run bootstraps the repository for code.
func Run(ctx context.Context, app appcontext.Interface, code string, flags *Flags) (*Result, error) {
	log := logging.FromContext(ctx)

	dir := flags.Directory
	if dir == "" {
		dir = strings.ToLower(code)
	}
	if fileutil.IsDir(dir) {
		return nil, errors.NewResourceError("create", "repository directory", dir, errors.ErrAlreadyExists)
	}

	var gh *github.Client
	if flags.CreateRemote {
		var err error
		if gh, err = app.GitHub(); err != nil {
			return nil, err
		}
		// Fail before touching the disk.
		if err := gh.RequireToken(); err != nil {
			return nil, err
		}
	}

	country, err := app.Wikidata().CountryByISO(ctx, code)
	if err != nil {
		return nil, err
	}
	name := scaffold.RepoName(country.Label)
	log.Info().
		Str("country_id", country.ID).
		Str("label", country.Label).
		Str("repository", name).
		Msg("Found country")

	repo, err := scaffold.Create(dir, country)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Country:        country,
		RepositoryName: name,
		Directory:      dir,
		Files:          repo.Files,
	}

	if gh != nil {
		org := app.Org()
		status := app.Alerts()
		_ = status.WriteAlert(alerts.NewInfo("Creating and initialising GitHub repository " + org + "/" + name))
		remote, err := gh.CreateOrgRepo(ctx, org, github.CreateRepoRequest{
			Name:        name,
			Description: scaffold.Description(country.Label),
		})
		if err != nil {
			return nil, err
		}
		topics := []string{constants.CommonsDataTopic, github.CountryCodeTopic(code)}
		if remote.Topics, err = gh.ReplaceTopics(ctx, org, name, topics); err != nil {
			return nil, err
		}
		result.Remote = remote
		result.RemoteURL = github.SSHCloneURL(org, name)
		_ = status.WriteAlert(alerts.NewSuccess("Created " + remote.HTMLURL))
	}

	result.NextSteps = repo.NextSteps(result.RemoteURL)
	return result, nil
}
