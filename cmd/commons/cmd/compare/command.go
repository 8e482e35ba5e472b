// Package compare provides the compare command, which summarises the
// changes between two versions of a legislative or executive index.
package compare

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/everypolitician/commons-tools/internal/appcontext"
	"github.com/everypolitician/commons-tools/internal/cmd/output"
	"github.com/everypolitician/commons-tools/pkg/differ"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// Flags holds the compare command flags.
type Flags struct {
	Old          string
	Ignore       []string
	SkipSubitems bool
}

// NewCommand creates the compare command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:       "compare <legislative|executive> <new-index.json>",
		GroupID:   "core",
		Short:     "Summarise changes between two versions of a branch index",
		Args:      cobra.ExactArgs(2),
		ValidArgs: differ.BranchNames(),
		Long: `Compare reads the previous version of a branch index from stdin (or --old)
and the current one from the named file, and prints the legislatures or
executives that were removed, added or changed.

The plain text output is meant for commit messages.`,
		Example: `  git show HEAD:legislative/index.json | commons compare legislative legislative/index.json
  commons compare executive executive/index.json --old /tmp/old.json -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "compare")

			branch, err := differ.BranchByName(args[0])
			if err != nil {
				return err
			}

			existing, err := readOld(cmd.InOrStdin(), flags.Old)
			if err != nil {
				return err
			}
			updated, err := readFile(args[1])
			if err != nil {
				return err
			}

			changes := differ.New(branch,
				differ.WithIgnoredFields(flags.Ignore...),
				differ.WithSubitems(!flags.SkipSubitems),
			).Compare(existing, updated)

			logging.FromContext(ctx).Debug().
				Str("branch", branch.Name).
				Int("removed", len(changes.Removed)).
				Int("added", len(changes.Added)).
				Int("updated", len(changes.Updated)).
				Msg("Compared branch indexes")

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, changes)
		},
	}

	cmd.Flags().StringVar(&flags.Old, "old", "", "previous index file (default: read from stdin)")
	cmd.Flags().StringSliceVar(&flags.Ignore, "ignore", nil,
		"attributes to leave out of the comparison (comma separated)")
	cmd.Flags().BoolVar(&flags.SkipSubitems, "skip-subitems", false,
		"do not compare terms or positions")

	return cmd
}

func readOld(stdin io.Reader, path string) (differ.Document, error) {
	if path == "" || path == "-" {
		return differ.ReadDocument(stdin, "stdin")
	}
	return readFile(path)
}

func readFile(path string) (differ.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return differ.ParseDocument(data, path)
}
