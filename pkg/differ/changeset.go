package differ

import (
	"fmt"
	"io"
	"strings"
)

// Item is an entry identified by id, with its comment.
type Item struct {
	ID      string `json:"id" yaml:"id"`
	Comment any    `json:"comment" yaml:"comment"`
}

// AttributeChange is a changed attribute of an entry.
type AttributeChange struct {
	Name string `json:"name" yaml:"name"`
	Old  any    `json:"old" yaml:"old"`
	New  any    `json:"new" yaml:"new"`
}

// CommentChange is a changed comment of a nested entry.
type CommentChange struct {
	ID  string `json:"id" yaml:"id"`
	Old any    `json:"old" yaml:"old"`
	New any    `json:"new" yaml:"new"`
}

// ItemUpdate collects the changes to an entry present in both versions.
type ItemUpdate struct {
	ID              string            `json:"id" yaml:"id"`
	Comment         any               `json:"comment" yaml:"comment"`
	Attributes      []AttributeChange `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	SubitemsRemoved []Item            `json:"subitems_removed,omitempty" yaml:"subitems_removed,omitempty"`
	SubitemsAdded   []Item            `json:"subitems_added,omitempty" yaml:"subitems_added,omitempty"`
	SubitemComments []CommentChange   `json:"subitem_comments,omitempty" yaml:"subitem_comments,omitempty"`
}

// HasChanges returns true if anything about the entry changed.
func (u *ItemUpdate) HasChanges() bool {
	return len(u.Attributes) > 0 || len(u.SubitemsRemoved) > 0 ||
		len(u.SubitemsAdded) > 0 || len(u.SubitemComments) > 0
}

// Changeset represents all changes between two versions of a branch index.
type Changeset struct {
	Branch  Branch       `json:"-" yaml:"-"`
	Removed []Item       `json:"removed" yaml:"removed"`
	Added   []Item       `json:"added" yaml:"added"`
	Updated []ItemUpdate `json:"updated" yaml:"updated"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return len(c.Removed) > 0 || len(c.Added) > 0 || len(c.Updated) > 0
}

// String returns a one-line summary of the changeset.
func (c *Changeset) String() string {
	if !c.HasChanges() {
		return "No changes detected"
	}
	return fmt.Sprintf("%s: %d added, %d updated, %d removed",
		c.Branch.Name, len(c.Added), len(c.Updated), len(c.Removed))
}

// WriteText writes the change summary used in data refresh commit messages.
func (c *Changeset) WriteText(w io.Writer) error {
	var b strings.Builder
	writeItems(&b, "Removed", c.Branch.label(len(c.Removed)), c.Removed)
	writeItems(&b, "Added", c.Branch.label(len(c.Added)), c.Added)

	label := c.Branch.SubitemLabel
	for _, u := range c.Updated {
		var lines []string
		for _, a := range u.Attributes {
			lines = append(lines, fmt.Sprintf("%s changed from %s to %s", a.Name, pyRepr(a.Old), pyRepr(a.New)))
		}
		for _, s := range u.SubitemsRemoved {
			lines = append(lines, fmt.Sprintf("%s removed:           %s %s", label, pad(s.ID), pyStr(s.Comment)))
		}
		for _, s := range u.SubitemsAdded {
			lines = append(lines, fmt.Sprintf("%s added:             %s %s", label, pad(s.ID), pyStr(s.Comment)))
		}
		for _, s := range u.SubitemComments {
			lines = append(lines, fmt.Sprintf("%s comment changed:   %s %s to %s", label, pad(s.ID), pyRepr(s.Old), pyRepr(s.New)))
		}

		fmt.Fprintf(&b, "Changes for %s - %s\n", u.ID, pyRepr(u.Comment))
		for _, line := range lines {
			b.WriteString(indent(line))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeItems(b *strings.Builder, verb, label string, items []Item) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s %s:\n", verb, label)
	for _, item := range items {
		fmt.Fprintf(b, "  %s %s\n", pad(item.ID), pyStr(item.Comment))
	}
}

// pad left-aligns an id in a 12 character column.
func pad(id string) string {
	return fmt.Sprintf("%-12s", id)
}

// indent prefixes every non-blank line with two spaces.
func indent(s string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString("  ")
		}
		b.WriteString(line)
	}
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
