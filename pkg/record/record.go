package record

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Record maps field names to decoded values and remembers insertion order.
// Setting an existing key replaces its value in place.
type Record struct {
	keys   []string
	values map[string]Value
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[string]Value)}
}

// Set stores v under key.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// SetText is shorthand for Set(key, Text(s)).
func (r *Record) SetText(key, s string) { r.Set(key, Text(s)) }

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.values[key]
	return v, ok
}

// String returns the rendered value for key, or "" when absent.
func (r *Record) String(key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Merge copies every entry of other into r. Keys present in both take
// other's value.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
}

// Clone returns an independent copy of r.
func (r *Record) Clone() *Record {
	out := New()
	out.Merge(r)
	return out
}

// MarshalJSON writes an object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
