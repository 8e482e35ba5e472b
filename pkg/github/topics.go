package github

import (
	"strings"

	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
)

// HasTopic reports whether topics contains topic.
func HasTopic(topics []string, topic string) bool {
	for _, t := range topics {
		if t == topic {
			return true
		}
	}
	return false
}

// IsCommonsData reports whether the repository holds commons data.
func (r Repository) IsCommonsData() bool {
	return HasTopic(r.Topics, constants.CommonsDataTopic)
}

// CountryCode returns the code of the single country-code- topic, or ""
// when there is none. More than one country code is an error.
func CountryCode(topics []string) (string, error) {
	var codes []string
	for _, t := range topics {
		if strings.HasPrefix(t, constants.CountryCodeTopicPrefix) {
			codes = append(codes, strings.TrimPrefix(t, constants.CountryCodeTopicPrefix))
		}
	}
	switch len(codes) {
	case 0:
		return "", nil
	case 1:
		return codes[0], nil
	}
	return "", errors.NewValidationError("topics", topics,
		"multiple country codes found in: "+strings.Join(topics, ", "))
}

// CountryCodeTopic returns the topic marking a repository's country.
func CountryCodeTopic(code string) string {
	return constants.CountryCodeTopicPrefix + strings.ToLower(code)
}

// SSHCloneURL returns the SSH clone URL of owner/repo.
func SSHCloneURL(owner, repo string) string {
	return "git@github.com:" + owner + "/" + repo + ".git"
}
