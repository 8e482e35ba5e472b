package boundaries

import (
	"context"
	"sort"

	"github.com/everypolitician/commons-tools/pkg/logging"
)

// Collection is everything gathered from a boundaries directory before
// asking Wikidata about it.
type Collection struct {
	// IDs holds every distinct, non-empty identifier, sorted.
	IDs []string
	// Scans holds the scan of each directory's table, keyed by directory.
	Scans map[string]*TableScan
	// Newlines maps the path of each reconciled table to the line
	// terminator its rewritten rows must use.
	Newlines map[string]string
}

// Collect scans the table of every directory in the index and gathers the
// identifiers they use, plus every association identifier of the index.
func Collect(ctx context.Context, dir string, ix *Index) (*Collection, error) {
	c := &Collection{
		Scans:    make(map[string]*TableScan, len(ix.Entries)),
		Newlines: make(map[string]string),
	}
	ids := make(map[string]struct{})

	for _, name := range ix.Directories() {
		scan, err := ScanTable(TablePath(dir, name))
		if err != nil {
			return nil, err
		}
		c.Scans[name] = scan

		log := logging.FromContext(logging.WithDirectory(ctx, name))
		if !scan.Applicable() {
			log.Debug().Stringer("status", scan.Status).Msg("Skipping table")
			continue
		}
		log.Debug().Int("rows", scan.Rows).Int("ids", len(scan.IDs)).Msg("Scanned table")

		c.Newlines[scan.Path] = scan.Newline
		for _, id := range scan.IDs {
			ids[id] = struct{}{}
		}
	}

	for _, id := range ix.PositionItemIDs() {
		if id != "" {
			ids[id] = struct{}{}
		}
	}

	c.IDs = make([]string, 0, len(ids))
	for id := range ids {
		c.IDs = append(c.IDs, id)
	}
	sort.Strings(c.IDs)
	return c, nil
}
