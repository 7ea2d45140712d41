package types

import (
	"strconv"
	"strings"
)

// Interner holds every Type reachable in a compilation, keyed structurally
// so that re-describing an already-seen shape returns the existing TypeID
// instead of allocating a duplicate.
type Interner struct {
	types []Type
	index map[string]TypeID

	// insts/instIndex back Instantiation (internal/types/generic.go): the
	// generic-instantiation identity key is a Type-Arena concern (it folds
	// a compile-time argument vector the same way composite type keys fold
	// a structural shape) but isn't itself a Type, so it gets its own slice
	// rather than sharing the TypeID space.
	insts     []instKey
	instIndex map[string]InstID
}

// NewInterner returns an Interner with slot 0 reserved for Invalid.
func NewInterner() *Interner {
	in := &Interner{
		types: make([]Type, 1, 256),
		index: make(map[string]TypeID, 256),
	}
	return in
}

// Get returns the Type a TypeID resolves to, or the zero Type for Invalid.
func (in *Interner) Get(id TypeID) *Type {
	if int(id) >= len(in.types) {
		return &in.types[0]
	}
	return &in.types[id]
}

func (in *Interner) Len() int { return len(in.types) }

// intern returns the canonical TypeID for t, allocating a new slot only on
// the first occurrence of its structural key.
func (in *Interner) intern(t Type) TypeID {
	key := keyOf(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := TypeID(len(in.types))
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// keyOf builds a structural key uniquely determined by every field that
// participates in a Type's identity. Two Types with the same key are
// interchangeable for every purpose the rest of the compiler cares about.
func keyOf(t Type) string {
	var b strings.Builder
	b.WriteByte(byte(t.Kind))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(t.Width)))
	b.WriteByte('|')
	if t.Signed {
		b.WriteByte('s')
	}
	b.WriteByte('|')
	writeID(&b, uint32(t.Elem))
	writeID(&b, uint32(t.ErrorSet))
	b.WriteString(strconv.FormatUint(t.Len, 10))
	b.WriteByte('|')
	if t.Const {
		b.WriteByte('c')
	}
	if t.Volatile {
		b.WriteByte('v')
	}
	b.WriteByte('|')
	for _, p := range t.Params {
		writeID(&b, uint32(p.Type))
		if p.NoAlias {
			b.WriteByte('n')
		}
		b.WriteByte(',')
	}
	writeID(&b, uint32(t.Ret))
	b.WriteString(strconv.FormatUint(uint64(t.CallCnv), 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(t.Name), 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(t.DeclSeq), 10))
	return b.String()
}

func writeID(b *strings.Builder, id uint32) {
	b.WriteString(strconv.FormatUint(uint64(id), 10))
	b.WriteByte(':')
}
