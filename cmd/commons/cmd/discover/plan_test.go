package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/internal/submodules"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/github"
)

func TestNewPlan(t *testing.T) {
	repos := []github.Repository{
		{Name: "proto-commons-estonia", Topics: []string{"commons-data", "country-code-ee"}},
		{Name: "website", Topics: []string{"country-code-gb"}},
		{Name: "proto-commons-latvia", Topics: []string{"country-code-lv", "commons-data"}},
		{Name: "proto-commons-nowhere", Topics: []string{"commons-data"}},
	}
	existing := submodules.Set{"lv": {Name: "lv", Path: "lv"}}

	plan, err := NewPlan("everypolitician", repos, existing)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 3)

	assert.Equal(t, []string{"git", "submodule", "add",
		"git@github.com:everypolitician/proto-commons-estonia.git", "ee"}, plan.Actions[0].Command)
	assert.True(t, plan.Actions[1].Registered)
	assert.Empty(t, plan.Actions[1].Command)
	assert.Equal(t, "not country-code- topic found for proto-commons-nowhere", plan.Actions[2].Warning)

	assert.Len(t, plan.Pending(), 1)
	assert.Equal(t, []string{
		"Add everypolitician/proto-commons-estonia as a submodule at ee",
		"  git submodule add git@github.com:everypolitician/proto-commons-estonia.git ee",
		"Add everypolitician/proto-commons-latvia as a submodule at lv",
		"Warning: not country-code- topic found for proto-commons-nowhere",
	}, plan.lines())
}

func TestNewPlanMultipleCountryCodes(t *testing.T) {
	repos := []github.Repository{
		{Name: "confused", Topics: []string{"commons-data", "country-code-ee", "country-code-lv"}},
	}
	_, err := NewPlan("everypolitician", repos, submodules.Set{})
	assert.True(t, errors.IsValidationError(err))
}

func TestNewPlanEmpty(t *testing.T) {
	plan, err := NewPlan("everypolitician", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Actions)
	assert.NotNil(t, plan.Actions)
}
