package boundaries

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/everypolitician/commons-tools/internal/fileutil"
	"github.com/everypolitician/commons-tools/pkg/constants"
	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/wikidata"
)

// newPrefix marks the sibling files a shapefile is written to before they
// are renamed into place.
const newPrefix = "new."

// shapefileParts are the files written for a rewritten shapefile. Other
// companions (.prj, .cpg) are left as they are.
var shapefileParts = []string{".shp", ".shx", ".dbf"}

// ShapefilePath returns the shapefile of a boundary directory.
func ShapefilePath(dir, name string) string {
	return filepath.Join(dir, name, name+".shp")
}

// ShapefileOutcome is what happened to a directory's shapefile.
type ShapefileOutcome int

const (
	// ShapefileUntouched shapefiles were not considered because their table
	// did not change.
	ShapefileUntouched ShapefileOutcome = iota
	// ShapefileAbsent directories have a table but no shapefile.
	ShapefileAbsent
	// ShapefileNoIdentifier shapefiles have no WIKIDATA attribute.
	ShapefileNoIdentifier
	// ShapefileRewritten shapefiles were rewritten with the mapping applied.
	ShapefileRewritten
)

func (o ShapefileOutcome) String() string {
	switch o {
	case ShapefileUntouched:
		return "untouched"
	case ShapefileAbsent:
		return "absent"
	case ShapefileNoIdentifier:
		return "no-identifier-attribute"
	case ShapefileRewritten:
		return "rewritten"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o ShapefileOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ShapefileRewrite reports the rewrite of one shapefile.
type ShapefileRewrite struct {
	Path         string
	Outcome      ShapefileOutcome
	Features     int
	Replacements int
}

// RewriteShapefile rewrites the WIKIDATA attribute of every feature in the
// shapefile of directory name below dir, replacing superseded identifiers.
// The new shapefile is written to new.<name>.* siblings which are then
// renamed over the originals. A missing shapefile is not an error.
func RewriteShapefile(dir, name string, m wikidata.Mapping, opts ...RewriteOption) (*ShapefileRewrite, error) {
	o := applyRewriteOptions(opts)
	path := ShapefilePath(dir, name)
	result := &ShapefileRewrite{Path: path, Outcome: ShapefileAbsent}

	if !fileutil.IsFile(path) {
		return result, nil
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer reader.Close()

	fields := reader.Fields()
	column := -1
	for i, f := range fields {
		if strings.TrimRight(f.String(), "\x00 ") == constants.WikidataColumn {
			column = i
			break
		}
	}
	if column < 0 {
		result.Outcome = ShapefileNoIdentifier
		return result, nil
	}

	base := filepath.Join(dir, name)
	newPath := filepath.Join(base, newPrefix+name+".shp")

	var writer *shapeWriter
	if !o.dryRun {
		writer, err = createShapefile(newPath, reader.GeometryType, fields)
		if err != nil {
			return nil, errors.WrapIO("create", newPath, err)
		}
	}

	cleanup := func() {
		if writer != nil {
			_ = writer.Close()
		}
		removeNewParts(base, name)
	}

	for reader.Next() {
		n, shape := reader.Shape()
		result.Features++

		var row int32
		if writer != nil {
			row = writer.Write(shape)
		}
		for k := range fields {
			value := attribute(reader, n, k)
			if k == column {
				if replacement := m.Get(value); replacement != value {
					value = replacement
					result.Replacements++
				}
			}
			if writer == nil {
				continue
			}
			if err := writer.WriteAttribute(int(row), k, value); err != nil {
				cleanup()
				return nil, errors.NewParseError("shp", path,
					fmt.Sprintf("feature %d attribute %s", n, fields[k].String()), err)
			}
		}
	}
	if err := reader.Err(); err != nil {
		cleanup()
		return nil, errors.WrapParse("shp", path, err)
	}

	result.Outcome = ShapefileRewritten
	if writer == nil {
		return result, nil
	}
	if err := writer.Close(); err != nil {
		removeNewParts(base, name)
		return nil, errors.WrapIO("close", newPath, err)
	}

	for _, ext := range shapefileParts {
		from := filepath.Join(base, newPrefix+name+ext)
		to := filepath.Join(base, name+ext)
		if !fileutil.IsFile(from) {
			continue
		}
		if err := os.Rename(from, to); err != nil {
			removeNewParts(base, name)
			return nil, errors.WrapIO("rename", to, err)
		}
	}
	return result, nil
}

func removeNewParts(base, name string) {
	for _, ext := range shapefileParts {
		_ = os.Remove(filepath.Join(base, newPrefix+name+ext))
	}
	_ = os.Remove(filepath.Join(base, newPrefix+name+"dbf"))
}

// attribute reads a dBASE value without its space or NUL padding.
func attribute(r *shp.Reader, row, field int) string {
	return strings.TrimRight(r.ReadAttribute(row, field), "\x00 ")
}

// shapeWriter is a shp.Writer whose attribute table ends up next to the
// geometry as <base>.dbf. go-shp names it <base>dbf.
type shapeWriter struct {
	*shp.Writer
	base string
}

// createShapefile creates path (ending in .shp) with its index and an
// attribute table holding fields.
func createShapefile(path string, t shp.ShapeType, fields []shp.Field) (*shapeWriter, error) {
	w, err := shp.Create(path, t)
	if err != nil {
		return nil, err
	}
	sw := &shapeWriter{Writer: w, base: strings.TrimSuffix(path, filepath.Ext(path))}
	if err := w.SetFields(fields); err != nil {
		_ = sw.Close()
		return nil, err
	}
	return sw, nil
}

// Close writes the headers and moves the attribute table to <base>.dbf.
func (w *shapeWriter) Close() error {
	w.Writer.Close()
	misnamed := w.base + "dbf"
	if !fileutil.IsFile(misnamed) {
		return nil
	}
	return os.Rename(misnamed, w.base+".dbf")
}
