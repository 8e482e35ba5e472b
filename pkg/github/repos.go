package github

import (
	"context"
	"net/http"
	"strconv"

	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// Repository is the subset of a repository resource the tools read.
type Repository struct {
	Name        string   `json:"name" yaml:"name"`
	FullName    string   `json:"full_name" yaml:"full_name"`
	Description string   `json:"description" yaml:"description"`
	HTMLURL     string   `json:"html_url" yaml:"html_url"`
	SSHURL      string   `json:"ssh_url" yaml:"ssh_url"`
	Topics      []string `json:"topics" yaml:"topics"`
}

// CreateRepoRequest is the body of a repository creation call.
type CreateRepoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListRepos returns the first page of repositories owned by owner, with
// their topics.
func (c *Client) ListRepos(ctx context.Context, owner string) ([]Repository, error) {
	u := c.endpoint("users", owner, "repos") + "?per_page=" + strconv.Itoa(constants.DefaultPageSize)

	var repos []Repository
	if err := c.get(ctx, u, &repos); err != nil {
		return nil, errors.WrapResource("list", "repositories", owner, err)
	}

	logging.FromContext(ctx).Debug().
		Str("owner", owner).
		Int("count", len(repos)).
		Msg("Listed repositories")
	return repos, nil
}

// CreateOrgRepo creates a repository in org. It needs a token.
func (c *Client) CreateOrgRepo(ctx context.Context, org string, req CreateRepoRequest) (*Repository, error) {
	if err := c.RequireToken(); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, errors.NewValidationError("name", req.Name, "repository name is required")
	}

	var repo Repository
	if err := c.send(ctx, http.MethodPost, c.endpoint("orgs", org, "repos"), req, &repo); err != nil {
		return nil, errors.WrapResource("create", "repository", org+"/"+req.Name, err)
	}

	logging.FromContext(ctx).Info().Str("repository", repo.FullName).Msg("Created repository")
	return &repo, nil
}

// ReplaceTopics sets the topics of owner/repo, replacing any existing ones.
func (c *Client) ReplaceTopics(ctx context.Context, owner, repo string, topics []string) ([]string, error) {
	if err := c.RequireToken(); err != nil {
		return nil, err
	}

	body := struct {
		Names []string `json:"names"`
	}{Names: topics}
	if body.Names == nil {
		body.Names = []string{}
	}

	var result struct {
		Names []string `json:"names"`
	}
	if err := c.send(ctx, http.MethodPut, c.endpoint("repos", owner, repo, "topics"), body, &result); err != nil {
		return nil, errors.WrapResource("update", "topics", owner+"/"+repo, err)
	}
	return result.Names, nil
}
