// Package github is a small client for the parts of the GitHub REST API the
// commons tools use: listing an owner's repositories with their topics,
// creating an organisation repository and setting its topics.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/everypolitician/commons-tools/internal/transport"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
)

// ServiceName identifies the API in errors and logs.
const ServiceName = "github"

// previewAccept opts in to repository topics in API responses.
const previewAccept = "application/vnd.github.mercy-preview+json"

// Client talks to the GitHub REST API.
type Client struct {
	baseURL   *url.URL
	token     string
	transport *transport.Client
}

// New creates a client for the API at baseURL (DefaultGitHubAPI when
// empty). token may be empty for read-only calls.
func New(baseURL, token string, opts ...transport.Option) (*Client, error) {
	if baseURL == "" {
		baseURL = constants.DefaultGitHubAPI
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.NewConfigError("github", "invalid API URL "+baseURL, err)
	}

	if token != "" {
		opts = append([]transport.Option{transport.WithAuth(&transport.TokenAuth{Scheme: "token", Token: token})}, opts...)
	}
	return &Client{
		baseURL:   u,
		token:     token,
		transport: transport.New(ServiceName, opts...),
	}, nil
}

// HasToken reports whether the client can make authenticated calls.
func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	ref, err := url.Parse(strings.Join(escaped, "/"))
	if err != nil {
		return c.baseURL.String()
	}
	return c.baseURL.ResolveReference(ref).String()
}

// RequireToken returns an AuthenticationError when the client has no token.
func (c *Client) RequireToken() error {
	if c.token == "" {
		return errors.NewAuthenticationError(ServiceName, "token",
			"no "+constants.GitHubTokenEnv+" found in environment; create one at https://github.com/settings/tokens",
			errors.ErrTokenRequired)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	resp, err := c.transport.Get(ctx, u, http.Header{"Accept": {previewAccept}})
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, ServiceName, target)
}

func (c *Client) send(ctx context.Context, method, u string, body, target any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.WrapParse("json", u, err)
	}
	headers := http.Header{
		"Accept":       {previewAccept},
		"Content-Type": {"application/json"},
	}
	resp, err := c.transport.Send(ctx, method, u, bytes.NewReader(data), headers)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, ServiceName, target)
}
