package boundaries

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/everypolitician/commons-tools/internal/fileutil"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// DefaultNewline terminates rewritten rows of a file that had no line
// terminator at all.
const DefaultNewline = "\n"

// TablePath returns the CSV table of a boundary directory.
func TablePath(dir, name string) string {
	return filepath.Join(dir, name, name+".csv")
}

// ScanStatus says whether a table takes part in reconciliation.
type ScanStatus int

const (
	// ScanReconciled tables have a WIKIDATA column.
	ScanReconciled ScanStatus = iota
	// ScanNoIdentifierColumn tables have not been reconciled yet.
	ScanNoIdentifierColumn
	// ScanEmpty tables have no header row.
	ScanEmpty
)

func (s ScanStatus) String() string {
	switch s {
	case ScanReconciled:
		return "reconciled"
	case ScanNoIdentifierColumn:
		return "no-identifier-column"
	case ScanEmpty:
		return "empty"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s ScanStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TableScan is the result of reading a table during collection.
type TableScan struct {
	Path    string
	Status  ScanStatus
	Header  []string
	IDs     []string // distinct, non-empty, sorted
	Rows    int
	Newline string
}

// Applicable reports whether the table has an identifier column.
func (s *TableScan) Applicable() bool {
	return s.Status == ScanReconciled
}

// table is a parsed CSV file that still knows the raw bytes of each row.
type table struct {
	data    []byte
	records [][]string
	// bounds[i] is the byte range of records[i] in data, including any
	// blank lines before it and its terminator.
	bounds [][2]int64
	tail   int64
	column int
}

func readTable(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	t := &table{data: data, column: -1}
	var start int64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		end := r.InputOffset()
		t.records = append(t.records, rec)
		t.bounds = append(t.bounds, [2]int64{start, end})
		start = end
	}
	t.tail = start

	if len(t.records) > 0 {
		for i, name := range t.records[0] {
			if name == constants.WikidataColumn {
				t.column = i
				break
			}
		}
	}
	return t, nil
}

func (t *table) status() ScanStatus {
	switch {
	case len(t.records) == 0:
		return ScanEmpty
	case t.column < 0:
		return ScanNoIdentifierColumn
	}
	return ScanReconciled
}

// id returns the identifier of data row i (1-based, the header is row 0).
func (t *table) id(i int) (string, bool) {
	rec := t.records[i]
	if t.column >= len(rec) {
		return "", false
	}
	return rec[t.column], true
}

// DetectNewline returns the first line terminator in data, or
// DefaultNewline when there is none.
func DetectNewline(data []byte) string {
	for i, b := range data {
		switch b {
		case '\n':
			return "\n"
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return "\r\n"
			}
			return "\r"
		}
	}
	return DefaultNewline
}

// ScanTable reads a table and collects its identifiers and line terminator.
func ScanTable(path string) (*TableScan, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	scan := &TableScan{Path: path, Status: t.status()}
	if !scan.Applicable() {
		return scan, nil
	}

	scan.Header = t.records[0]
	scan.Rows = len(t.records) - 1
	scan.Newline = DetectNewline(t.data)

	seen := make(map[string]struct{})
	for i := 1; i < len(t.records); i++ {
		id, ok := t.id(i)
		if !ok || id == "" {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			scan.IDs = append(scan.IDs, id)
		}
	}
	sort.Strings(scan.IDs)
	return scan, nil
}

// TableOutcome is what happened to a table during the rewrite.
type TableOutcome int

const (
	// TableNotApplicable tables have no identifier column and were not read
	// for rewriting.
	TableNotApplicable TableOutcome = iota
	// TableUnchanged tables had no superseded identifier and were left alone.
	TableUnchanged
	// TableChanged tables had at least one identifier replaced.
	TableChanged
)

func (o TableOutcome) String() string {
	switch o {
	case TableNotApplicable:
		return "not-applicable"
	case TableUnchanged:
		return "unchanged"
	case TableChanged:
		return "changed"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o TableOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// TableRewrite reports the rewrite of one table.
type TableRewrite struct {
	Path         string
	Outcome      TableOutcome
	Replacements []Replacement
}

// RewriteOption configures the rewrite functions.
type RewriteOption func(*rewriteOptions)

type rewriteOptions struct {
	dryRun bool
}

// WithDryRun computes the rewrite without touching any file.
func WithDryRun(enabled bool) RewriteOption {
	return func(o *rewriteOptions) {
		o.dryRun = enabled
	}
}

func applyRewriteOptions(opts []RewriteOption) rewriteOptions {
	var o rewriteOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RewriteTable re-reads the table at path and replaces every WIKIDATA value
// that is a key of m. Rows that do not change keep their original bytes;
// rewritten rows end with newline. The file is replaced only when at least
// one row changed.
func RewriteTable(path, newline string, m wikidata.Mapping, opts ...RewriteOption) (*TableRewrite, error) {
	o := applyRewriteOptions(opts)

	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	result := &TableRewrite{Path: path, Outcome: TableNotApplicable}
	if t.status() != ScanReconciled {
		return result, nil
	}
	if newline == "" {
		newline = DetectNewline(t.data)
	}

	var out bytes.Buffer
	out.Grow(len(t.data))
	for i, rec := range t.records {
		start, end := t.bounds[i][0], t.bounds[i][1]
		raw := t.data[start:end]

		var replacement string
		var found bool
		if i > 0 {
			if id, ok := t.id(i); ok {
				replacement, found = m.Lookup(id)
			}
		}
		if !found {
			out.Write(raw)
			continue
		}

		result.Replacements = append(result.Replacements, Replacement{
			Row: i,
			Old: rec[t.column],
			New: replacement,
		})
		changed := append([]string(nil), rec...)
		changed[t.column] = replacement
		if err := writeRecord(&out, raw, changed, newline); err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
	}
	out.Write(t.data[t.tail:])

	if len(result.Replacements) == 0 {
		result.Outcome = TableUnchanged
		return result, nil
	}
	result.Outcome = TableChanged

	if o.dryRun {
		return result, nil
	}
	if err := fileutil.WriteFileAtomic(path, out.Bytes()); err != nil {
		return nil, err
	}
	return result, nil
}

// writeRecord encodes rec in place of raw, keeping the blank lines that
// preceded it and ending it with newline when raw was terminated.
func writeRecord(out *bytes.Buffer, raw []byte, rec []string, newline string) error {
	lead := 0
	for lead < len(raw) && (raw[lead] == '\n' || raw[lead] == '\r') {
		lead++
	}
	out.Write(raw[:lead])

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rec); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	out.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	if bytes.HasSuffix(raw, []byte("\n")) || bytes.HasSuffix(raw, []byte("\r")) {
		out.WriteString(newline)
	}
	return nil
}
