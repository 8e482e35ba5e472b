package discover

import (
	"strings"

	"github.com/everypolitician/commons-tools/internal/submodules"
	"github.com/everypolitician/commons-tools/pkg/github"
)

// Action is what to do about one commons data repository.
type Action struct {
	Repository  string `json:"repository" yaml:"repository"`
	CountryCode string `json:"country_code,omitempty" yaml:"country_code,omitempty"`
	// Registered is set when a submodule already exists at the country code.
	Registered bool `json:"registered" yaml:"registered"`
	// Command is the git invocation that registers the submodule.
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`
	Warning string   `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// CommandLine returns Command as a shell line.
func (a Action) CommandLine() string {
	return strings.Join(a.Command, " ")
}

// Plan lists the actions for an organisation's repositories.
type Plan struct {
	Org     string   `json:"org" yaml:"org"`
	Actions []Action `json:"actions" yaml:"actions"`
}

// Pending returns the actions that still need their command run.
func (p *Plan) Pending() []Action {
	var pending []Action
	for _, a := range p.Actions {
		if len(a.Command) > 0 {
			pending = append(pending, a)
		}
	}
	return pending
}

// NewPlan decides, for every repository carrying the commons-data topic,
// where it belongs as a submodule. Repositories are kept in listing order.
func NewPlan(org string, repos []github.Repository, existing submodules.Set) (*Plan, error) {
	plan := &Plan{Org: org, Actions: []Action{}}
	for _, repo := range repos {
		if !repo.IsCommonsData() {
			continue
		}
		code, err := github.CountryCode(repo.Topics)
		if err != nil {
			return nil, err
		}

		action := Action{Repository: repo.Name, CountryCode: code}
		switch {
		case code == "":
			action.Warning = "not country-code- topic found for " + repo.Name
		case existing.Has(code):
			action.Registered = true
		default:
			action.Command = []string{"git", "submodule", "add", github.SSHCloneURL(org, repo.Name), code}
		}
		plan.Actions = append(plan.Actions, action)
	}
	return plan, nil
}

// lines renders the plan the way the submodule maintenance notes read.
func (p *Plan) lines() []string {
	var out []string
	for _, a := range p.Actions {
		if a.Warning != "" {
			out = append(out, "Warning: "+a.Warning)
			continue
		}
		out = append(out, "Add "+p.Org+"/"+a.Repository+" as a submodule at "+a.CountryCode)
		if len(a.Command) > 0 {
			out = append(out, "  "+a.CommandLine())
		}
	}
	return out
}
