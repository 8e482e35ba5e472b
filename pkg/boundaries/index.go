// Package boundaries reconciles the Wikidata identifiers stored in a
// country repository's boundary data. It loads the boundary index, collects
// every identifier used by the per-directory CSV tables and the index's
// associations, asks Wikidata which of them have been merged into other
// items, and rewrites the tables, their shapefiles and the index in place.
//
// Files are only written when an identifier actually changed, and always
// through a temp file and rename.
package boundaries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/everypolitician/commons-tools/internal/fileutil"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// Index is the boundary index document: an ordered list of entries, one
// per boundary directory.
type Index struct {
	Path    string
	Entries []*Entry
}

// Entry describes one boundary directory and the positions associated
// with it. Fields other than directory and associations are kept verbatim.
type Entry struct {
	Directory    string
	Associations []*Association

	hasAssociations bool
	fields          object
}

// Association links a boundary to a position item.
type Association struct {
	PositionItemID string

	fields object
}

// Replacement records one identifier rewrite.
type Replacement struct {
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty"`
	Row       int    `json:"row,omitempty" yaml:"row,omitempty"`
	Old       string `json:"old" yaml:"old"`
	New       string `json:"new" yaml:"new"`
}

// ResolveDir returns the directory holding the boundary index below root:
// root/build when it exists, root otherwise.
func ResolveDir(root string) string {
	build := filepath.Join(root, constants.BuildDir)
	if fileutil.IsDir(build) {
		return build
	}
	return root
}

// IndexPath returns the index document path inside a boundaries directory.
func IndexPath(dir string) string {
	return filepath.Join(dir, constants.IndexFile)
}

// LoadIndex reads and validates the index document at path.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	ix, err := ParseIndex(data, path)
	if err != nil {
		return nil, err
	}
	ix.Path = path
	return ix, nil
}

// ParseIndex parses an index document. name is only used in errors.
func ParseIndex(data []byte, name string) (*Index, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.NewParseError("json", name, "index must be an array of entries", err)
	}

	ix := &Index{Entries: make([]*Entry, 0, len(raws))}
	seen := make(map[string]int, len(raws))
	for i, raw := range raws {
		entry, err := parseEntry(raw)
		if err != nil {
			return nil, errors.NewParseError("json", name, fmt.Sprintf("entry %d: %s", i, err), err)
		}
		if first, dup := seen[entry.Directory]; dup {
			return nil, errors.NewParseError("json", name,
				fmt.Sprintf("entry %d: directory %q already used by entry %d", i, entry.Directory, first), nil)
		}
		seen[entry.Directory] = i
		ix.Entries = append(ix.Entries, entry)
	}
	return ix, nil
}

func parseEntry(raw json.RawMessage) (*Entry, error) {
	e := &Entry{}
	if err := json.Unmarshal(raw, &e.fields); err != nil {
		return nil, err
	}

	dirRaw, ok := e.fields.get("directory")
	if !ok {
		return nil, fmt.Errorf("missing directory")
	}
	if err := json.Unmarshal(dirRaw, &e.Directory); err != nil {
		return nil, fmt.Errorf("directory must be a string")
	}
	if e.Directory == "" {
		return nil, fmt.Errorf("directory must not be empty")
	}
	if filepath.Base(e.Directory) != e.Directory || e.Directory == "." || e.Directory == ".." {
		return nil, fmt.Errorf("directory %q must be a plain directory name", e.Directory)
	}

	assocRaw, ok := e.fields.get("associations")
	if !ok || bytes.Equal(bytes.TrimSpace(assocRaw), []byte("null")) {
		return e, nil
	}

	var assocs []json.RawMessage
	if err := json.Unmarshal(assocRaw, &assocs); err != nil {
		return nil, fmt.Errorf("associations must be an array")
	}
	e.hasAssociations = true
	for j, a := range assocs {
		assoc, err := parseAssociation(a)
		if err != nil {
			return nil, fmt.Errorf("association %d: %w", j, err)
		}
		e.Associations = append(e.Associations, assoc)
	}
	return e, nil
}

func parseAssociation(raw json.RawMessage) (*Association, error) {
	a := &Association{}
	if err := json.Unmarshal(raw, &a.fields); err != nil {
		return nil, err
	}
	idRaw, ok := a.fields.get(constants.PositionItemIDField)
	if !ok {
		return nil, fmt.Errorf("missing %s", constants.PositionItemIDField)
	}
	if err := json.Unmarshal(idRaw, &a.PositionItemID); err != nil {
		return nil, fmt.Errorf("%s must be a string", constants.PositionItemIDField)
	}
	return a, nil
}

// Directories returns the directory names in document order.
func (ix *Index) Directories() []string {
	dirs := make([]string, 0, len(ix.Entries))
	for _, e := range ix.Entries {
		dirs = append(dirs, e.Directory)
	}
	return dirs
}

// PositionItemIDs returns every association identifier in document order.
func (ix *Index) PositionItemIDs() []string {
	var ids []string
	for _, e := range ix.Entries {
		for _, a := range e.Associations {
			ids = append(ids, a.PositionItemID)
		}
	}
	return ids
}

// MarshalJSON encodes the entry with its original field order.
func (e *Entry) MarshalJSON() ([]byte, error) {
	fields := e.fields
	if e.hasAssociations {
		raw, err := marshalNoEscape(e.Associations)
		if err != nil {
			return nil, err
		}
		fields = fields.clone()
		fields.set("associations", raw)
	}
	return fields.MarshalJSON()
}

// MarshalJSON encodes the association with its original field order.
func (a *Association) MarshalJSON() ([]byte, error) {
	raw, err := marshalNoEscape(a.PositionItemID)
	if err != nil {
		return nil, err
	}
	fields := a.fields.clone()
	fields.set(constants.PositionItemIDField, raw)
	return fields.MarshalJSON()
}

// Marshal renders the index the way the curated files are kept: two space
// indentation, non-ASCII characters left literal and a trailing newline.
func (ix *Index) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	entries := ix.Entries
	if entries == nil {
		entries = []*Entry{}
	}
	if err := enc.Encode(entries); err != nil {
		return nil, errors.WrapParse("json", ix.Path, err)
	}
	return buf.Bytes(), nil
}

// RewriteIndex applies the mapping to every association identifier. The
// returned replacements are empty when nothing changed.
func RewriteIndex(ix *Index, m wikidata.Mapping) []Replacement {
	var changes []Replacement
	for _, e := range ix.Entries {
		for _, a := range e.Associations {
			if replacement, ok := m.Lookup(a.PositionItemID); ok {
				changes = append(changes, Replacement{
					Directory: e.Directory,
					Old:       a.PositionItemID,
					New:       replacement,
				})
				a.PositionItemID = replacement
			}
		}
	}
	return changes
}

// SaveIndex writes the index back to its path.
func SaveIndex(ix *Index) error {
	if ix.Path == "" {
		return errors.NewValidationError("path", "", "index has no path to save to")
	}
	data, err := ix.Marshal()
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(ix.Path, data)
}
