package app

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/everypolitician/commons-tools/internal/cmd/output"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// Execute runs the commons CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "commons",
		Short:   "Democratic Commons curation tools",
		Version: a.version,
		Long: `Commons bundles the maintenance scripts for Democratic Commons country
repositories.

It reconciles boundary identifiers that Wikidata has merged, summarises
changes between two versions of a branch index, bootstraps new country
repositories and lists the data repositories to register as submodules.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "repos",
		Title: "Repository Commands:",
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.commons.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, text")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("commons {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := loadConfig(viper.New(), configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	//nolint:errcheck // Ignoring write error since we're exiting anyway
	_, _ = io.WriteString(w, "Error: "+err.Error()+"\n")
	if hint := errorHint(err); hint != "" {
		_, _ = io.WriteString(w, "Hint: "+hint+"\n")
	}
}

// errorHint suggests what to do about the common failure kinds.
func errorHint(err error) string {
	switch {
	case errors.IsRateLimited(err):
		return "the API rate limit is exhausted, wait before retrying or set " + constants.GitHubTokenEnv
	case errors.IsTokenError(err):
		return "set " + constants.GitHubTokenEnv + " to a token allowed to create repositories"
	case errors.IsServiceUnavailable(err):
		return "the remote service is unavailable, try again later"
	case errors.IsAlreadyExists(err):
		return "remove it or choose another location with --directory"
	case errors.IsNotFound(err):
		return "check the identifier or country code"
	}
	return ""
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
