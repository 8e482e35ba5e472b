package wikidata

import (
	"context"
	"fmt"
	"strings"

	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// RedirectQuery builds the query asking, for every id, which item it has
// been merged into (owl:sameAs).
func RedirectQuery(ids []string) (string, error) {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		if !IsEntityID(id) {
			return "", errors.NewValidationError("id", id, fmt.Sprintf("%q is not a Wikidata identifier", id))
		}
		values = append(values, "wd:"+id)
	}

	return fmt.Sprintf(`
SELECT ?old ?new WHERE {
  VALUES ?old { %s }
  ?old owl:sameAs ?new
}
`, strings.Join(values, " ")), nil
}

// Redirects resolves superseded identifiers to their canonical replacements
// in a single request. Values that are not entity ids (stray whitespace,
// lower case, free text) cannot have been merged and are left out of the
// query with a warning. When nothing is left to ask about the mapping is
// empty and the service is not contacted.
func (c *Client) Redirects(ctx context.Context, ids []string) (Mapping, error) {
	logger := logging.FromContext(ctx)
	mapping := Mapping{}

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if !IsEntityID(id) {
			logger.Warn().Str("id", id).Msg("Skipping value that is not a Wikidata identifier")
			continue
		}
		valid = append(valid, id)
	}
	if len(valid) == 0 {
		logger.Debug().Msg("No identifiers to reconcile, skipping query")
		return mapping, nil
	}

	query, err := RedirectQuery(valid)
	if err != nil {
		return nil, err
	}

	results, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, b := range results.Bindings() {
		oldURI, okOld := b.Value("old")
		newURI, okNew := b.Value("new")
		if !okOld || !okNew {
			return nil, errors.NewParseError("json", ServiceName+" response", "binding without old/new value", nil)
		}
		mapping[EntityID(oldURI)] = EntityID(newURI)
	}

	logger.Info().
		Int("queried", len(valid)).
		Int("redirected", mapping.Len()).
		Msg("Resolved superseded identifiers")

	return mapping, nil
}
