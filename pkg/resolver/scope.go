package resolver

// Binding tracks a local name while its scope is being resolved.
type Binding struct {
	Defined  bool
	Constant bool
}

// Scope represents one lexical block during resolution. Scopes are kept on
// the resolver's stack, innermost last.
type Scope struct {
	symbols map[string]*Binding
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]*Binding)}
}

// Declare adds a name that cannot be read until it is defined.
func (s *Scope) Declare(name string, constant bool) {
	s.symbols[name] = &Binding{Constant: constant}
}

// Define marks a declared name as readable, declaring it first if needed.
func (s *Scope) Define(name string) {
	if b, ok := s.symbols[name]; ok {
		b.Defined = true
		return
	}
	s.symbols[name] = &Binding{Defined: true}
}

// LookupLocal searches only this scope.
func (s *Scope) LookupLocal(name string) (*Binding, bool) {
	b, ok := s.symbols[name]
	return b, ok
}
