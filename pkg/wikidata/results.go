package wikidata

// Results is a SPARQL 1.1 JSON result set.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Binding maps variable names to the terms bound in one solution.
type Binding map[string]Term

// Term is a single RDF term in a binding.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Language string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Value returns the value bound to name, and whether it was bound at all.
func (b Binding) Value(name string) (string, bool) {
	term, ok := b[name]
	if !ok {
		return "", false
	}
	return term.Value, true
}

// Bindings returns the solutions of the result set.
func (r *Results) Bindings() []Binding {
	if r == nil {
		return nil
	}
	return r.Results.Bindings
}
