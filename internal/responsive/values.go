package responsive

// Map is a per-breakpoint value table with a mandatory default. The zero
// Map resolves to the zero value of T; build maps with NewMap.
//
// Maps are immutable; With returns a modified copy so tables can be shared
// between screens as package-level variables.
type Map[T any] struct {
	def       T
	overrides map[Label]T
}

// NewMap creates a Map whose default is def.
func NewMap[T any](def T) Map[T] {
	return Map[T]{def: def}
}

// With returns a copy of m with value v set for label.
func (m Map[T]) With(label Label, v T) Map[T] {
	next := make(map[Label]T, len(m.overrides)+1)
	for k, val := range m.overrides {
		next[k] = val
	}
	next[label] = v
	return Map[T]{def: m.def, overrides: next}
}

// Default returns the fallback value.
func (m Map[T]) Default() T {
	return m.def
}

// Lookup returns the value for label, falling back to the default.
func (m Map[T]) Lookup(label Label) T {
	if v, ok := m.overrides[label]; ok {
		return v
	}
	return m.def
}

// Resolve returns the value for width using DefaultTable.
func (m Map[T]) Resolve(width float64) T {
	return m.Lookup(DefaultTable.Resolve(width))
}

// ResolveIn returns the value for width using table t.
func (m Map[T]) ResolveIn(t Table, width float64) T {
	return m.Lookup(t.Resolve(width))
}
