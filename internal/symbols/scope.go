package symbols

import "github.com/thresh-lang/threshc/internal/source"

// ScopeKind enumerates the lexical scope categories the resolver tracks.
// Nothing in this tree allocates a Function or Block scope; the resolver
// only ever populates Module scopes.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeBlock
)

// Scope is a flat lexical scope: a direct-name table plus whatever `use`
// hoisted into it, visible in declaration order.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID

	Names   map[source.Name]DeclID // declared directly in this scope
	order   []source.Name          // declaration order, for deterministic iteration
	Hoisted []HoistedName          // `use`-introduced names, in declaration order

	Children []ScopeID
}

// HoistedName is one name a `use` item made visible in a scope. Visibility
// is re-checked against the use-site, not at hoist time, so Decl may
// resolve to a private declaration that a lookup later rejects.
type HoistedName struct {
	Name source.Name
	Decl DeclID
}

func newScope(kind ScopeKind, parent ScopeID) *Scope {
	return &Scope{Kind: kind, Parent: parent, Names: make(map[source.Name]DeclID)}
}

// declare adds name -> decl to a scope's direct table; it does not check for
// duplicates (callers do, since only they have the diagnostic context).
func (s *Scope) declare(name source.Name, decl DeclID) {
	if _, exists := s.Names[name]; !exists {
		s.order = append(s.order, name)
	}
	s.Names[name] = decl
}

// OrderedNames returns every directly-declared name in declaration order.
func (s *Scope) OrderedNames() []source.Name { return s.order }
