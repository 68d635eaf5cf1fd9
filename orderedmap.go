package jsonschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// OrderedMap is a name->value mapping that preserves insertion order while
// enforcing key uniqueness, matching the JSON object model of §3.1: keys
// are unique but iteration order reflects the order values were set.
//
// It backs both the JSON value model's Object variant and the schema AST's
// named sub-schema collections (properties, patternProperties, ...).
type OrderedMap[V any] struct {
	keys   []string
	index  map[string]int
	values []V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{index: make(map[string]int)}
}

// Len reports the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Set inserts or overwrites the value for key, preserving the position of
// the first insertion when the key already exists.
func (m *OrderedMap[V]) Set(key string, val V) {
	if i, ok := m.index[key]; ok {
		m.values[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, val)
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	i, ok := m.index[key]
	if !ok {
		return zero, false
	}
	return m.values[i], true
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by callers.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Each calls fn for every entry in insertion order.
func (m *OrderedMap[V]) Each(fn func(key string, val V)) {
	if m == nil {
		return
	}
	for i, k := range m.keys {
		fn(k, m.values[i])
	}
}

// Clone returns a shallow copy: values are copied by assignment, not
// deep-cloned. Callers needing a deep copy of pointer-valued entries (e.g.
// *Schema) must clone each value explicitly.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	if m == nil {
		return nil
	}
	out := &OrderedMap[V]{
		keys:   append([]string(nil), m.keys...),
		values: append([]V(nil), m.values...),
		index:  make(map[string]int, len(m.index)),
	}
	for k, i := range m.index {
		out.index[k] = i
	}
	return out
}

// MarshalJSON renders the map as a JSON object with keys in insertion
// order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object, preserving the order its keys appear
// in the source. A duplicate key within the same object overwrites the
// earlier value but keeps its original position, mirroring the JSON value
// model's uniqueness invariant.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("jsonschema: expected JSON object, got %v", tok)
	}
	*m = *NewOrderedMap[V]()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("jsonschema: expected object key, got %v", keyTok)
		}
		var val V
		if err := dec.Decode(&val); err != nil {
			return err
		}
		m.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	return nil
}
