package differ

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/everypolitician/commons-tools/pkg/errors"
)

// Document is a parsed branch index: an array of JSON objects. Numbers are
// kept as json.Number so they print as they were written.
type Document []map[string]any

// ParseDocument parses a branch index. name is only used in errors.
func ParseDocument(data []byte, name string) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewParseError("json", name, "branch index must be an array of objects", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.NewParseError("json", name, "unexpected data after the branch index", nil)
	}
	return doc, nil
}

// ReadDocument reads and parses a branch index from r.
func ReadDocument(r io.Reader, name string) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return ParseDocument(data, name)
}

// byID keys entries by the string form of their id field. Entries without
// the field are skipped.
func byID(entries []map[string]any, field string) map[string]map[string]any {
	out := make(map[string]map[string]any, len(entries))
	for _, e := range entries {
		v, ok := e[field]
		if !ok {
			continue
		}
		out[pyStr(v)] = e
	}
	return out
}

// subitems returns the nested entries under key. Anything that is not an
// array of objects counts as no entries.
func subitems(entry map[string]any, key string) []map[string]any {
	list, ok := entry[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
