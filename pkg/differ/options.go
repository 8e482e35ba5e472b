package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields skips the named attributes when comparing entries.
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithSubitems enables/disables comparison of nested entries.
func WithSubitems(enabled bool) Option {
	return func(d *differ) {
		d.subitems = enabled
	}
}
