// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/everypolitician/commons-tools/internal/cmd/alerts"
	"github.com/everypolitician/commons-tools/pkg/github"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/commons/app implements it.
type Interface interface {
	// Wikidata returns the SPARQL client, created lazily from configuration.
	Wikidata() *wikidata.Client

	// GitHub returns the repository hosting client. The client is usable
	// without a token for reads; writes fail with errors.ErrTokenRequired.
	GitHub() (*github.Client, error)

	// Org returns the organisation that owns the country repositories.
	Org() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// Alerts returns the writer for status notifications on stderr,
	// honouring --quiet and --no-color.
	Alerts() alerts.Writer

	// OutputFormat returns the configured output format (json, yaml, table, text).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
