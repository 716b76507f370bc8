package formula

import "sort"

// Scope is an ordered, append-only mapping of variable names to
// integer values. Insertion order is preserved; setting an existing
// name overwrites its value without moving it. The geometry walk
// relies on this ordering to register component lengths in declared
// order.
type Scope struct {
	names  []string
	values map[string]int
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{values: map[string]int{}}
}

// ScopeFrom returns a scope seeded from a plain map. Names are added
// in sorted order so identical maps always seed identical scopes.
func ScopeFrom(vars map[string]int) *Scope {
	s := NewScope()
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		s.Set(n, vars[n])
	}
	return s
}

// Set adds or overwrites a variable.
func (s *Scope) Set(name string, value int) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Get returns the value bound to name.
func (s *Scope) Get(name string) (int, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name is bound.
func (s *Scope) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Len returns the number of bound names.
func (s *Scope) Len() int {
	return len(s.names)
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// SortedNames returns the bound names in sorted order, for error
// messages and diagnostics.
func (s *Scope) SortedNames() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}
