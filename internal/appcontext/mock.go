package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/everypolitician/commons-tools/internal/cmd/alerts"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/github"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	WikidataFunc     func() *wikidata.Client
	GitHubFunc       func() (*github.Client, error)
	OrgFunc          func() string
	LoggerFunc       func() *zerolog.Logger
	AlertsFunc       func() alerts.Writer
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Wikidata returns a client using the mock function or one for the public endpoint.
func (m *Mock) Wikidata() *wikidata.Client {
	if m.WikidataFunc != nil {
		return m.WikidataFunc()
	}
	return wikidata.New("")
}

// GitHub returns a client using the mock function or an unauthenticated one.
func (m *Mock) GitHub() (*github.Client, error) {
	if m.GitHubFunc != nil {
		return m.GitHubFunc()
	}
	return github.New("", "")
}

// Org returns the organisation using the mock function or the default.
func (m *Mock) Org() string {
	if m.OrgFunc != nil {
		return m.OrgFunc()
	}
	return constants.DefaultGitHubOrg
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// Alerts returns a writer using the mock function or one that discards.
func (m *Mock) Alerts() alerts.Writer {
	if m.AlertsFunc != nil {
		return m.AlertsFunc()
	}
	return alerts.DiscardWriter
}

// OutputFormat returns the format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
