package source

// Name is an interned identifier or string literal. Comparing two Names for
// equality is a pointer-free integer compare, which the resolver and type
// arena both lean on heavily for scope lookups and struct field keys.
type Name uint32

// NoName is the zero value, used as "not an identifier".
const NoName Name = 0

// Valid reports whether n is an actual interned name, as opposed to NoName.
func (n Name) Valid() bool { return n != NoName }

// Interner canonicalizes strings to stable Names. It never forgets an entry:
// the lifetime of a Name is the lifetime of the compilation.
type Interner struct {
	strs []string
	ids  map[string]Name
}

// NewInterner returns an Interner with NoName already reserved as "".
func NewInterner() *Interner {
	in := &Interner{ids: make(map[string]Name, 256)}
	in.strs = append(in.strs, "")
	return in
}

// Intern returns the stable Name for s, assigning a fresh one on first sight.
func (in *Interner) Intern(s string) Name {
	if s == "" {
		return NoName
	}
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := Name(len(in.strs))
	in.strs = append(in.strs, s)
	in.ids[s] = id
	return id
}

// Text resolves a Name back to its string.
func (in *Interner) Text(n Name) string {
	return in.strs[n]
}
