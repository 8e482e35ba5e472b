package boundaries

import (
	"context"

	"github.com/everypolitician/commons-tools/pkg/logging"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// Resolver maps identifiers to their canonical replacements.
type Resolver interface {
	Redirects(ctx context.Context, ids []string) (wikidata.Mapping, error)
}

// Merger runs the whole reconciliation over one boundaries directory.
type Merger struct {
	dir      string
	resolver Resolver
	dryRun   bool
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithMergeDryRun makes Run report what would change without writing.
func WithMergeDryRun(enabled bool) MergerOption {
	return func(m *Merger) {
		m.dryRun = enabled
	}
}

// NewMerger creates a merger for the boundaries directory root. The build
// variant below root is used when present.
func NewMerger(root string, resolver Resolver, opts ...MergerOption) *Merger {
	m := &Merger{dir: ResolveDir(root), resolver: resolver}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the directory holding the index being reconciled.
func (m *Merger) Dir() string {
	return m.dir
}

// DirectoryReport is the outcome for one boundary directory.
type DirectoryReport struct {
	Directory             string           `json:"directory" yaml:"directory"`
	Table                 TableOutcome     `json:"table" yaml:"table"`
	Replacements          []Replacement    `json:"replacements,omitempty" yaml:"replacements,omitempty"`
	Shapefile             ShapefileOutcome `json:"shapefile" yaml:"shapefile"`
	ShapefileReplacements int              `json:"shapefile_replacements,omitempty" yaml:"shapefile_replacements,omitempty"`
}

// Report summarises a reconciliation run.
type Report struct {
	Dir          string            `json:"dir" yaml:"dir"`
	DryRun       bool              `json:"dry_run" yaml:"dry_run"`
	Identifiers  int               `json:"identifiers" yaml:"identifiers"`
	Mapping      wikidata.Mapping  `json:"mapping" yaml:"mapping"`
	Directories  []DirectoryReport `json:"directories" yaml:"directories"`
	IndexChanges []Replacement     `json:"index_changes,omitempty" yaml:"index_changes,omitempty"`
	IndexChanged bool              `json:"index_changed" yaml:"index_changed"`
}

// Changed returns the directories whose table changed.
func (r *Report) Changed() []DirectoryReport {
	var changed []DirectoryReport
	for _, d := range r.Directories {
		if d.Table == TableChanged {
			changed = append(changed, d)
		}
	}
	return changed
}

// Run loads the index, collects identifiers, resolves them and rewrites
// the tables, shapefiles and index. Any error aborts the run.
func (m *Merger) Run(ctx context.Context) (*Report, error) {
	ctx = logging.WithOperation(ctx, "reconcile")
	log := logging.FromContext(ctx)

	ix, err := LoadIndex(IndexPath(m.dir))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("index", ix.Path).Int("entries", len(ix.Entries)).Msg("Loaded boundary index")

	collection, err := Collect(ctx, m.dir, ix)
	if err != nil {
		return nil, err
	}

	mapping, err := m.resolver.Redirects(ctx, collection.IDs)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Dir:         m.dir,
		DryRun:      m.dryRun,
		Identifiers: len(collection.IDs),
		Mapping:     mapping,
	}

	opts := []RewriteOption{WithDryRun(m.dryRun)}
	for _, name := range ix.Directories() {
		dirReport, err := m.rewriteDirectory(ctx, name, collection, mapping, opts)
		if err != nil {
			return nil, err
		}
		report.Directories = append(report.Directories, dirReport)
	}

	report.IndexChanges = RewriteIndex(ix, mapping)
	report.IndexChanged = len(report.IndexChanges) > 0
	if report.IndexChanged && !m.dryRun {
		if err := SaveIndex(ix); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("identifiers", report.Identifiers).
		Int("redirects", mapping.Len()).
		Int("tables_changed", len(report.Changed())).
		Bool("index_changed", report.IndexChanged).
		Bool("dry_run", m.dryRun).
		Msg("Reconciled boundary identifiers")

	return report, nil
}

func (m *Merger) rewriteDirectory(ctx context.Context, name string, c *Collection, mapping wikidata.Mapping, opts []RewriteOption) (DirectoryReport, error) {
	log := logging.FromContext(logging.WithDirectory(ctx, name))
	report := DirectoryReport{Directory: name}

	scan := c.Scans[name]
	if scan == nil || !scan.Applicable() {
		return report, nil
	}

	table, err := RewriteTable(scan.Path, c.Newlines[scan.Path], mapping, opts...)
	if err != nil {
		return report, err
	}
	report.Table = table.Outcome
	report.Replacements = table.Replacements
	if table.Outcome != TableChanged {
		return report, nil
	}
	log.Debug().Int("replacements", len(table.Replacements)).Msg("Rewrote table")

	shape, err := RewriteShapefile(m.dir, name, mapping, opts...)
	if err != nil {
		return report, err
	}
	report.Shapefile = shape.Outcome
	report.ShapefileReplacements = shape.Replacements
	if shape.Outcome == ShapefileRewritten {
		log.Info().Str("path", shape.Path).Int("features", shape.Features).Msg("Rewriting shapefile")
	}
	return report, nil
}
