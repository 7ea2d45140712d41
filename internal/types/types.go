// Package types implements Thresh's type arena: a structural-key interner
// that gives every distinct type shape (primitive, pointer, array, slice,
// nullable, error-union, function, or named struct/enum/union) exactly one
// canonical TypeID, so two occurrences of `*const u8` anywhere in a
// compilation compare equal by ID alone.
package types

import "github.com/thresh-lang/threshc/internal/source"

// TypeID identifies an interned type. The zero value, Invalid, is the
// poisoned placeholder installed wherever type resolution failed; it
// propagates silently through further lookups rather than panicking,
// matching the diagnostic bag's "demote and continue" policy.
type TypeID uint32

// Invalid is the poisoned TypeID, reserved as index 0 of every Interner.
const Invalid TypeID = 0

func (id TypeID) Valid() bool { return id != Invalid }

// Kind tags which structural family a Type belongs to.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindNoReturn
	KindBool
	KindInt
	KindFloat
	KindComptimeInt   // unsuffixed integer literal type, arbitrary precision until coerced
	KindComptimeFloat // unsuffixed float literal type
	KindPointer
	KindArray
	KindSlice
	KindNullable
	KindErrorUnion
	KindErrorSet
	KindFn
	KindNamed // struct/enum/union/alias; identity carried by Name+DeclSeq
	KindType  // the meta-type `type` itself, for `comptime T: type` parameters
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindNoReturn:
		return "noreturn"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindComptimeInt:
		return "comptime_int"
	case KindComptimeFloat:
		return "comptime_float"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindSlice:
		return "slice"
	case KindNullable:
		return "nullable"
	case KindErrorUnion:
		return "error_union"
	case KindErrorSet:
		return "error_set"
	case KindFn:
		return "fn"
	case KindNamed:
		return "named"
	case KindType:
		return "type"
	default:
		return "kind(?)"
	}
}

// ArrayDynamicLength marks a KindArray whose declared shape is actually a
// slice (no compile-time-known length).
const ArrayDynamicLength = ^uint64(0)

// Param is one function-type parameter: its type and whether it is
// noalias-annotated.
type Param struct {
	Type    TypeID
	NoAlias bool
}

// Type is the flat descriptor every TypeID resolves to. Only the fields
// relevant to Kind are meaningful; the rest are left zero. This mirrors the
// AST's fat-node convention: one shape, a tag, and unused fields at rest.
type Type struct {
	Kind Kind

	Width  uint8 // bit width for KindInt/KindFloat; 0 for comptime variants
	Signed bool  // KindInt only

	Elem     TypeID // pointee / element / nullable or error-union payload
	ErrorSet TypeID // KindErrorUnion's error side; Invalid means inferred
	Len      uint64 // KindArray length; ArrayDynamicLength for slices described this way

	Const    bool // KindPointer / KindSlice
	Volatile bool // KindPointer

	Params  []Param // KindFn
	Ret     TypeID
	CallCnv source.Name

	Name    source.Name // KindNamed / KindErrorSet member tag
	DeclSeq uint32      // disambiguates shadowed declarations sharing a Name
}
