// Package wikidata talks to the Wikidata SPARQL query service. It resolves
// superseded item identifiers to their canonical replacements and looks up
// country metadata for new repositories.
package wikidata

import (
	"context"
	"net/http"
	"strings"

	"github.com/everypolitician/commons-tools/internal/transport"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// ServiceName identifies the query service in errors and logs.
const ServiceName = "wikidata"

// Client issues SPARQL queries against a query service endpoint.
type Client struct {
	endpoint  string
	transport *transport.Client
}

// New creates a client for the given endpoint. An empty endpoint uses the
// public Wikidata query service.
func New(endpoint string, opts ...transport.Option) *Client {
	if endpoint == "" {
		endpoint = constants.DefaultSPARQLEndpoint
	}
	opts = append([]transport.Option{transport.WithTimeout(constants.SPARQLTimeout)}, opts...)
	return &Client{
		endpoint:  endpoint,
		transport: transport.New(ServiceName, opts...),
	}
}

// Endpoint returns the query service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query posts a SPARQL query and decodes the JSON result set.
func (c *Client) Query(ctx context.Context, query string) (*Results, error) {
	logging.FromContext(ctx).Debug().
		Str("endpoint", c.endpoint).
		Int("query_bytes", len(query)).
		Msg("Running SPARQL query")

	headers := http.Header{
		"Accept":       {"application/sparql-results+json"},
		"Content-Type": {"application/sparql-query"},
	}
	resp, err := c.transport.Send(ctx, http.MethodPost, c.endpoint, strings.NewReader(query), headers)
	if err != nil {
		return nil, err
	}

	var results Results
	if err := transport.DecodeResponse(resp, ServiceName, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
