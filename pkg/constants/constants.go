// Package constants provides shared constants used throughout the commons tools.
// This includes timeouts, file permissions, well-known service URLs and the
// names of the columns and files that make up a country repository.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to remote services
	DefaultHTTPTimeout = 30 * time.Second

	// SPARQLTimeout is the timeout for a single query against the SPARQL endpoint.
	// The query service itself gives up after 60 seconds.
	SPARQLTimeout = 70 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Remote service defaults
const (
	// DefaultSPARQLEndpoint is the Wikidata query service.
	DefaultSPARQLEndpoint = "https://query.wikidata.org/sparql"

	// DefaultGitHubAPI is the base URL of the repository hosting API.
	DefaultGitHubAPI = "https://api.github.com/"

	// DefaultGitHubOrg owns every country repository.
	DefaultGitHubOrg = "everypolitician"

	// DefaultUserAgent identifies the tools to remote services.
	DefaultUserAgent = "commons-tools (https://github.com/everypolitician/commons-tools)"

	// GitHubTokenEnv is the environment variable holding the hosting API token.
	GitHubTokenEnv = "GITHUB_ACCESS_TOKEN"

	// DefaultPageSize is the number of repositories requested from list endpoints.
	DefaultPageSize = 100
)

// Country repository layout
const (
	// BoundariesDir is the directory holding boundary data.
	BoundariesDir = "boundaries"

	// BuildDir is the build variant of a data directory, preferred when present.
	BuildDir = "build"

	// IndexFile is the name of every branch and boundary index document.
	IndexFile = "index.json"

	// WikidataColumn is the reconciled identifier column in boundary CSVs
	// and the matching shapefile attribute.
	WikidataColumn = "WIKIDATA"

	// PositionItemIDField is the association identifier in the boundary index.
	PositionItemIDField = "position_item_id"

	// CommonsDataTopic marks repositories holding commons data.
	CommonsDataTopic = "commons-data"

	// CountryCodeTopicPrefix prefixes the country code topic.
	CountryCodeTopicPrefix = "country-code-"

	// RepoNamePrefix prefixes newly bootstrapped repository names.
	RepoNamePrefix = "proto-commons-"
)
