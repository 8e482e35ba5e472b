package bootstrap

import (
	"fmt"
	"strings"

	"github.com/everypolitician/commons-tools/internal/cmd/output"
)

// NewView renders a bootstrap result for every output format.
func NewView(r *Result) output.View {
	rows := [][]string{
		{"Languages", strings.Join(r.Country.Languages, " ")},
		{"Country ID", r.Country.ID},
		{"Country name", r.Country.Label},
		{"Repository name", r.RepositoryName},
		{"Directory", r.Directory},
	}
	if r.Remote != nil {
		rows = append(rows, []string{"Remote", r.Remote.HTMLURL})
	}

	text := []string{"Country information:"}
	for _, row := range rows {
		text = append(text, fmt.Sprintf("  %-16s %s", row[0]+":", row[1]))
	}
	text = append(text, "", "Next steps:")
	for _, step := range r.NextSteps {
		text = append(text, "  "+step)
	}

	return output.View{
		Value: r,
		Table: &output.Data{Headers: []string{"Property", "Value"}, Rows: rows},
		Text:  text,
	}
}
