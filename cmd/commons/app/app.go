// Package app provides the application context and dependency management
// for the commons CLI: configuration, logging and the lazily created
// remote service clients the commands share.
package app

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/everypolitician/commons-tools/internal/appcontext"
	"github.com/everypolitician/commons-tools/internal/cmd/alerts"
	"github.com/everypolitician/commons-tools/internal/transport"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/github"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// App represents the commons application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Remote clients (lazy-initialized)
	mu       sync.Mutex
	wikidata *wikidata.Client
	github   *github.Client
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Alerts returns the status writer for stderr.
func (a *App) Alerts() alerts.Writer {
	return alerts.NewWriterTo(os.Stderr, alerts.Config{Quiet: a.config.Quiet, NoColor: a.config.NoColor})
}

// OutputFormat returns the --format value, empty when auto-detected.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Org returns the organisation owning the country repositories.
func (a *App) Org() string {
	return a.config.GitHubOrg
}

// Wikidata returns the SPARQL client, creating it on first use.
func (a *App) Wikidata() *wikidata.Client {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.wikidata == nil {
		a.wikidata = wikidata.New(a.config.SPARQLEndpoint, a.transportOptions()...)
	}
	return a.wikidata
}

// GitHub returns the repository hosting client, creating it on first use.
func (a *App) GitHub() (*github.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.github != nil {
		return a.github, nil
	}
	client, err := github.New(a.config.GitHubAPI, a.config.GitHubToken, a.transportOptions()...)
	if err != nil {
		return nil, err
	}
	a.github = client
	return client, nil
}

func (a *App) transportOptions() []transport.Option {
	opts := []transport.Option{transport.WithUserAgent(a.config.UserAgent)}
	if a.config.HTTPTimeout > 0 {
		opts = append(opts, transport.WithTimeout(a.config.HTTPTimeout))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithWikidata sets the SPARQL client (useful for testing).
func WithWikidata(client *wikidata.Client) Option {
	return func(a *App) error {
		a.wikidata = client
		return nil
	}
}

// WithGitHub sets the repository hosting client (useful for testing).
func WithGitHub(client *github.Client) Option {
	return func(a *App) error {
		a.github = client
		return nil
	}
}
