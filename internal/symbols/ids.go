package symbols

// ScopeID identifies a lexical scope in a Resolver's arena.
type ScopeID uint32

// NoScope marks the absence of a scope reference.
const NoScope ScopeID = 0

func (id ScopeID) Valid() bool { return id != NoScope }

// DeclID identifies a top-level or container-member declaration.
type DeclID uint32

// NoDecl marks the absence of a declaration reference.
const NoDecl DeclID = 0

func (id DeclID) Valid() bool { return id != NoDecl }
