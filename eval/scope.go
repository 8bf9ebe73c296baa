package eval

// Scope is the per-render variable store for {var:NAME,VALUE} bindings
// (spec.md §4.5). A render is synchronous and single-threaded (spec.md
// §5), so Scope needs no locking; a binding is visible to every
// statement evaluated after it in source order, never to one that ran
// before it.
type Scope struct {
	vars map[string][]string
}

// NewScope returns an empty variable store.
func NewScope() *Scope {
	return &Scope{vars: make(map[string][]string)}
}

// Bind sets NAME to value, overwriting any earlier binding.
func (s *Scope) Bind(name string, value []string) {
	s.vars[name] = value
}

// Lookup returns NAME's bound value and whether it has been bound yet.
func (s *Scope) Lookup(name string) ([]string, bool) {
	v, ok := s.vars[name]
	return v, ok
}
