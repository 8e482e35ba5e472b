package app

import (
	"github.com/spf13/cobra"

	"github.com/everypolitician/commons-tools/cmd/commons/cmd/bootstrap"
	"github.com/everypolitician/commons-tools/cmd/commons/cmd/compare"
	"github.com/everypolitician/commons-tools/cmd/commons/cmd/discover"
	"github.com/everypolitician/commons-tools/cmd/commons/cmd/reconcile"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(compare.NewCommand(a))

	// Repository commands
	rootCmd.AddCommand(bootstrap.NewCommand(a))
	rootCmd.AddCommand(discover.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("commons %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
