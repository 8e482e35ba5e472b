// Package differ compares two versions of a branch index document
// (legislative/index.json or executive/index.json) and describes what
// changed between them.
package differ

import (
	"reflect"
	"sort"
)

// Differ compares branch index documents.
type Differ interface {
	// Branch returns the profile the differ compares with.
	Branch() Branch

	// Compare returns the changes from existing to updated.
	Compare(existing, updated Document) *Changeset
}

type differ struct {
	branch       Branch
	ignoreFields map[string]bool
	subitems     bool
}

// New creates a Differ for the given branch.
func New(branch Branch, opts ...Option) Differ {
	d := &differ{
		branch:       branch,
		ignoreFields: make(map[string]bool),
		subitems:     true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Compare is a shortcut for New(branch).Compare(existing, updated).
func Compare(branch Branch, existing, updated Document) *Changeset {
	return New(branch).Compare(existing, updated)
}

func (d *differ) Branch() Branch {
	return d.branch
}

func (d *differ) Compare(existing, updated Document) *Changeset {
	b := d.branch
	oldByID := byID(existing, b.IDField)
	newByID := byID(updated, b.IDField)

	cs := &Changeset{
		Branch:  b,
		Removed: []Item{},
		Added:   []Item{},
		Updated: []ItemUpdate{},
	}

	for _, id := range sortedKeys(oldByID) {
		if _, ok := newByID[id]; !ok {
			cs.Removed = append(cs.Removed, Item{ID: id, Comment: oldByID[id]["comment"]})
		}
	}
	for _, id := range sortedKeys(newByID) {
		old, ok := oldByID[id]
		if !ok {
			cs.Added = append(cs.Added, Item{ID: id, Comment: newByID[id]["comment"]})
			continue
		}
		if update := d.entry(id, old, newByID[id]); update != nil {
			cs.Updated = append(cs.Updated, *update)
		}
	}
	return cs
}

// entry compares one entry present in both versions, returning nil when
// nothing differs.
func (d *differ) entry(id string, old, updated map[string]any) *ItemUpdate {
	b := d.branch
	update := &ItemUpdate{ID: id, Comment: updated["comment"]}

	for _, name := range b.Attributes {
		if d.ignoreFields[name] {
			continue
		}
		if !reflect.DeepEqual(old[name], updated[name]) {
			update.Attributes = append(update.Attributes, AttributeChange{
				Name: name,
				Old:  old[name],
				New:  updated[name],
			})
		}
	}

	if d.subitems {
		oldSubs := byID(subitems(old, b.SubitemKey), b.SubitemIDField)
		newSubs := byID(subitems(updated, b.SubitemKey), b.SubitemIDField)

		for _, sid := range sortedKeys(oldSubs) {
			if _, ok := newSubs[sid]; !ok {
				update.SubitemsRemoved = append(update.SubitemsRemoved, Item{ID: sid, Comment: oldSubs[sid]["comment"]})
			}
		}
		for _, sid := range sortedKeys(newSubs) {
			oldSub, ok := oldSubs[sid]
			if !ok {
				update.SubitemsAdded = append(update.SubitemsAdded, Item{ID: sid, Comment: newSubs[sid]["comment"]})
				continue
			}
			if !reflect.DeepEqual(oldSub["comment"], newSubs[sid]["comment"]) {
				update.SubitemComments = append(update.SubitemComments, CommentChange{
					ID:  sid,
					Old: oldSub["comment"],
					New: newSubs[sid]["comment"],
				})
			}
		}
	}

	if !update.HasChanges() {
		return nil
	}
	return update
}

func sortedKeys(m map[string]map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
