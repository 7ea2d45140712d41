package types

import (
	"strconv"
	"strings"

	"github.com/thresh-lang/threshc/internal/source"
)

// InstID identifies one canonical generic-function instantiation: a
// {generic function, compile-time argument vector} tuple, interned the same
// way composite types are so two calls passing an identical argument vector
// fold onto the same instantiation instead of internal/mono recording (and
// internal/backend emitting) duplicate bodies.
type InstID uint32

const NoInstID InstID = 0

// InstArgKind tags one slot of a generic instantiation's compile-time
// argument vector: either a `type` argument or a comptime scalar.
type InstArgKind uint8

const (
	InstArgType InstArgKind = iota
	InstArgInt
	InstArgBool
)

// InstArg is one folded compile-time argument to a generic call. Int uses a
// decimal string rather than int64 for the same reason mir.Const.Int does:
// arbitrary precision without a bignum dependency at this layer.
type InstArg struct {
	Kind InstArgKind
	Type TypeID
	Int  string
	Bool bool
}

type instKey struct {
	fn      source.Name
	declSeq uint32
	args    []InstArg
}

// Instantiation returns the canonical InstID for one generic function
// (identified the same way Named identifies a container: spelled name plus
// the declaration sequence that disambiguates shadows) applied to a
// compile-time argument vector, allocating a fresh one only the first time
// this exact vector is seen.
func (in *Interner) Instantiation(fnName source.Name, declSeq uint32, args []InstArg) InstID {
	if in.instIndex == nil {
		in.instIndex = make(map[string]InstID, 16)
	}
	key := instKeyOf(fnName, declSeq, args)
	if id, ok := in.instIndex[key]; ok {
		return id
	}
	id := InstID(len(in.insts) + 1)
	in.insts = append(in.insts, instKey{fn: fnName, declSeq: declSeq, args: args})
	in.instIndex[key] = id
	return id
}

func instKeyOf(fnName source.Name, declSeq uint32, args []InstArg) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(fnName), 10))
	b.WriteByte('#')
	b.WriteString(strconv.FormatUint(uint64(declSeq), 10))
	b.WriteByte('|')
	for _, a := range args {
		b.WriteByte(byte(a.Kind))
		switch a.Kind {
		case InstArgType:
			writeID(&b, uint32(a.Type))
		case InstArgInt:
			b.WriteString(a.Int)
		case InstArgBool:
			if a.Bool {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte(',')
	}
	return b.String()
}
