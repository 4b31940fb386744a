package tabular

// Record is one parsed data row: an ordered mapping from column name to
// Value. The key order is the header order of the source text.
//
// Records are immutable; accessors return copies where sharing would
// leak internal state.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord builds a record from parallel key and value slices. Missing
// trailing values are null. A repeated key keeps its first position and
// takes the last value assigned to it.
func NewRecord(keys []string, values []Value) Record {
	r := Record{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]Value, len(keys)),
	}
	for i, k := range keys {
		var v Value
		if i < len(values) {
			v = values[i]
		}
		if _, seen := r.values[k]; !seen {
			r.keys = append(r.keys, k)
		}
		r.values[k] = v
	}
	return r
}

// Keys returns the record's column names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value for name. The boolean is false when the record
// has no such column; the returned Value is then null.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record has a column called name.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len returns the number of columns.
func (r Record) Len() int { return len(r.keys) }

// Each calls fn for every column in order.
func (r Record) Each(fn func(key string, v Value)) {
	for _, k := range r.keys {
		fn(k, r.values[k])
	}
}
