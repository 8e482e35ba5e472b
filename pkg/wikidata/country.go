package wikidata

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/everypolitician/commons-tools/pkg/errors"
)

var isoAlpha2Pattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

// Country is what a new country repository needs to know about its country.
type Country struct {
	Code      string   `json:"code"`
	ID        string   `json:"country_wikidata_id"`
	Label     string   `json:"label"`
	Languages []string `json:"languages"`
}

// CountryQuery builds the lookup for an ISO 3166-1 alpha-2 code: the item,
// its English label and the language codes of its official languages.
func CountryQuery(code string) (string, error) {
	if !isoAlpha2Pattern.MatchString(code) {
		return "", errors.NewValidationError("iso_3166_1_code", code, "expected a two letter ISO 3166-1 code")
	}

	return fmt.Sprintf(`SELECT * WHERE {
  ?country wdt:P297 '%s' ;
           wdt:P37/wdt:P424 ?language ;
           rdfs:label ?label .
  FILTER(LANG(?label) = 'en')
}
`, strings.ToUpper(code)), nil
}

// CountryByISO looks up a country by its ISO 3166-1 alpha-2 code. English is
// always among the returned languages.
func (c *Client) CountryByISO(ctx context.Context, code string) (*Country, error) {
	query, err := CountryQuery(code)
	if err != nil {
		return nil, err
	}

	results, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	bindings := results.Bindings()
	languageSet := map[string]struct{}{}
	countrySet := map[string]struct{}{}
	for _, b := range bindings {
		if lang, ok := b.Value("language"); ok {
			languageSet[lang] = struct{}{}
		}
		if country, ok := b.Value("country"); ok {
			countrySet[country] = struct{}{}
		}
	}

	countries := sortedKeys(countrySet)
	switch {
	case len(countries) == 0:
		return nil, errors.NewNotFoundError("country", code)
	case len(countries) > 1:
		return nil, errors.NewValidationError("iso_3166_1_code", code,
			"more than one country found: "+strings.Join(countries, ", "))
	}

	languages := sortedKeys(languageSet)
	if _, ok := languageSet["en"]; !ok {
		languages = append(languages, "en")
	}

	label, _ := bindings[0].Value("label")

	return &Country{
		Code:      code,
		ID:        EntityID(countries[0]),
		Label:     label,
		Languages: languages,
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
