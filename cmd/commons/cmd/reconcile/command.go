// Package reconcile provides the reconcile command: it replaces Wikidata
// identifiers that have been merged into another item throughout a
// boundaries directory.
package reconcile

import (
	"github.com/spf13/cobra"

	"github.com/everypolitician/commons-tools/internal/appcontext"
	"github.com/everypolitician/commons-tools/internal/cmd/alerts"
	"github.com/everypolitician/commons-tools/internal/cmd/output"
	"github.com/everypolitician/commons-tools/pkg/boundaries"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// Flags holds the reconcile command flags.
type Flags struct {
	BoundariesDir string
	DryRun        bool
}

// NewCommand creates the reconcile command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Replace merged Wikidata identifiers in boundary data",
		Args:    cobra.NoArgs,
		Long: `Reconcile looks up every identifier used by the boundary data and replaces
those Wikidata has redirected to another item.

The index in the boundaries directory (its build/ subdirectory when present)
lists one directory per boundary set. The WIKIDATA column of each
<dir>/<dir>.csv, the WIKIDATA attribute of <dir>/<dir>.shp and the
position_item_id of every index association are rewritten. Files with no
superseded identifier are left byte-for-byte untouched.`,
		Example: `  commons reconcile                          # Reconcile ./boundaries
  commons reconcile --boundaries-dir data    # Another directory
  commons reconcile --dry-run -o json        # Report without writing`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			merger := boundaries.NewMerger(flags.BoundariesDir, app.Wikidata(),
				boundaries.WithMergeDryRun(flags.DryRun))
			report, err := merger.Run(ctx)
			if err != nil {
				return err
			}

			if report.DryRun {
				_ = app.Alerts().WriteAlert(alerts.NewInfo("Dry run: no files were written"))
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, NewView(report))
		},
	}

	cmd.Flags().StringVarP(&flags.BoundariesDir, "boundaries-dir", "d", constants.BoundariesDir,
		"boundaries directory holding index.json (or build/index.json)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "report replacements without writing any file")

	return cmd
}
