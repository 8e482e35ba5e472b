package differ

import (
	"sort"

	"github.com/everypolitician/commons-tools/pkg/errors"
)

// Branch describes how a branch index document is keyed and what is
// compared between two versions of it.
type Branch struct {
	Name string

	// Item and ItemPlural label the top-level entries.
	Item       string
	ItemPlural string
	// IDField identifies a top-level entry.
	IDField string
	// Attributes are compared field by field for entries in both versions.
	Attributes []string

	// SubitemLabel labels the nested entries held under SubitemKey.
	SubitemLabel string
	SubitemKey   string
	// SubitemIDField identifies a nested entry.
	SubitemIDField string
}

// Legislative compares legislative/index.json: houses and their terms.
var Legislative = Branch{
	Name:           "legislative",
	Item:           "legislature",
	ItemPlural:     "legislatures",
	IDField:        "house_item_id",
	Attributes:     []string{"comment", "area_id", "seat_count", "position_item_id"},
	SubitemLabel:   "term",
	SubitemKey:     "terms",
	SubitemIDField: "term_item_id",
}

// Executive compares executive/index.json: executives and their positions.
var Executive = Branch{
	Name:           "executive",
	Item:           "executive",
	ItemPlural:     "executives",
	IDField:        "executive_item_id",
	Attributes:     []string{"comment", "area_id"},
	SubitemLabel:   "position",
	SubitemKey:     "positions",
	SubitemIDField: "position_item_id",
}

var branches = map[string]Branch{
	Legislative.Name: Legislative,
	Executive.Name:   Executive,
}

// BranchByName returns the branch profile for name.
func BranchByName(name string) (Branch, error) {
	b, ok := branches[name]
	if !ok {
		return Branch{}, errors.NewValidationError("branch", name, "branch must be one of: legislative, executive")
	}
	return b, nil
}

// BranchNames returns the known branch names, sorted.
func BranchNames() []string {
	names := make([]string, 0, len(branches))
	for name := range branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// label returns the singular or plural item label for n items.
func (b Branch) label(n int) string {
	if n > 1 {
		return b.ItemPlural
	}
	return b.Item
}
