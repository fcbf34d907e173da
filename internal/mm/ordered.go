package mm

// OrderedMap is a string-to-string map that remembers insertion order.
// Proposition fields t/h/d are all backed by one of these, since a proof's
// hypotheses are matched positionally against a rule's hypotheses, so
// losing declaration order would silently scramble which argument binds
// to which hypothesis key.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]string)}
}

// Set inserts or overwrites key, appending it to the key order only the
// first time it's seen.
func (m *OrderedMap) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns the declaration-ordered key slice. Callers must not mutate
// the returned slice.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Each calls fn once per entry in declaration order.
func (m *OrderedMap) Each(fn func(key, value string)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Clone makes an independent copy sharing no backing storage with m.
func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}
