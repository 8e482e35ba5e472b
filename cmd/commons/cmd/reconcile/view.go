package reconcile

import (
	"fmt"
	"path"
	"strconv"

	"github.com/everypolitician/commons-tools/internal/cmd/output"
	"github.com/everypolitician/commons-tools/pkg/boundaries"
	"github.com/everypolitician/commons-tools/pkg/constants"
)

// NewView renders a reconciliation report for every output format.
func NewView(report *boundaries.Report) output.View {
	return output.View{
		Value: report,
		Table: table(report),
		Text:  lines(report),
	}
}

func table(report *boundaries.Report) *output.Data {
	data := &output.Data{
		Headers:         []string{"Directory", "Table", "Replacements", "Shapefile"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignLeft},
	}
	for _, d := range report.Directories {
		data.Rows = append(data.Rows, []string{
			d.Directory,
			d.Table.String(),
			strconv.Itoa(len(d.Replacements)),
			d.Shapefile.String(),
		})
	}
	if report.IndexChanged {
		data.Rows = append(data.Rows, []string{
			constants.IndexFile, "changed", strconv.Itoa(len(report.IndexChanges)), "",
		})
	}
	return data
}

// lines is the plain summary: one line per replaced identifier.
func lines(report *boundaries.Report) []string {
	verb := "Replaced"
	if report.DryRun {
		verb = "Would replace"
	}

	out := []string{fmt.Sprintf("Checked %d identifiers in %s, %d redirected",
		report.Identifiers, report.Dir, report.Mapping.Len())}
	for _, d := range report.Directories {
		file := path.Join(d.Directory, d.Directory+".csv")
		for _, r := range d.Replacements {
			out = append(out, fmt.Sprintf("%s %s with %s in %s row %d", verb, r.Old, r.New, file, r.Row))
		}
		if d.Shapefile == boundaries.ShapefileRewritten {
			out = append(out, fmt.Sprintf("%s %d identifiers in %s", verb, d.ShapefileReplacements,
				path.Join(d.Directory, d.Directory+".shp")))
		}
	}
	for _, r := range report.IndexChanges {
		out = append(out, fmt.Sprintf("%s %s with %s in %s (%s)", verb, r.Old, r.New, constants.IndexFile, r.Directory))
	}
	return out
}
