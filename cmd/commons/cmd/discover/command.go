// Package discover provides the discover command, which lists the commons
// data repositories that should be registered as submodules.
package discover

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/everypolitician/commons-tools/internal/appcontext"
	"github.com/everypolitician/commons-tools/internal/cmd/alerts"
	"github.com/everypolitician/commons-tools/internal/cmd/output"
	"github.com/everypolitician/commons-tools/internal/submodules"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// NewCommand creates the discover command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:     "discover",
		GroupID: "repos",
		Short:   "List data repositories missing from the submodules",
		Args:    cobra.NoArgs,
		Long: `Discover lists the organisation's repositories tagged commons-data and
works out, from their country-code-XX topic, where each belongs as a
submodule of the repository in --repo-dir. For repositories not yet
registered in its .gitmodules the git submodule add command is printed.

Only the first page of repositories is read.`,
		Example: `  commons discover
  commons discover --repo-dir ../democratic-commons -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "discover")

			existing, err := submodules.Load(repoDir)
			if err != nil {
				return err
			}

			gh, err := app.GitHub()
			if err != nil {
				return err
			}
			repos, err := gh.ListRepos(ctx, app.Org())
			if err != nil {
				return err
			}

			plan, err := NewPlan(app.Org(), repos, existing)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Debug().
				Int("repositories", len(repos)).
				Int("submodules", len(existing)).
				Int("pending", len(plan.Pending())).
				Msg("Planned submodules")

			if pending := plan.Pending(); len(pending) > 0 {
				_ = app.Alerts().WriteAlert(alerts.NewInfo(
					fmt.Sprintf("%d repositories are not yet submodules", len(pending))))
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, newView(plan))
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo-dir", ".", "repository whose .gitmodules is checked")

	return cmd
}

func newView(p *Plan) output.View {
	data := &output.Data{Headers: []string{"Repository", "Country", "Status", "Command"}}
	for _, a := range p.Actions {
		status := "missing"
		switch {
		case a.Warning != "":
			status = "no country code"
		case a.Registered:
			status = "registered"
		}
		data.Rows = append(data.Rows, []string{a.Repository, strings.ToUpper(a.CountryCode), status, a.CommandLine()})
	}
	return output.View{Value: p, Table: data, Text: p.lines()}
}
