// Package mir is IR Stage-2's typed representation: every value carries a
// resolved types.TypeID, every place is a concrete local/global plus a
// projection chain, and every block is reachable only through the
// terminators sema built while checking the corresponding hir.Func.
package mir

import (
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

type FuncID int32
type BlockID int32
type LocalID int32
type GlobalID int32

const (
	NoFuncID   FuncID  = -1
	NoBlockID  BlockID = -1
	NoLocalID  LocalID = -1
	NoGlobalID GlobalID = -1
)

// Local is one typed storage slot: a function parameter, a `let`/`var`
// binding, or a compiler-introduced temporary.
type Local struct {
	Name    source.Name
	Type    types.TypeID
	Mutable bool
	Span    source.Span
}

// PlaceProjKind distinguishes the ways a Place can be projected from its
// base local/global: pointer dereference, a named field, or an index.
type PlaceProjKind uint8

const (
	ProjDeref PlaceProjKind = iota
	ProjField
	ProjIndex
)

type PlaceProj struct {
	Kind     PlaceProjKind
	Field    source.Name
	FieldIdx int
	Index    Value
}

// PlaceKind distinguishes a local slot from a module-level global.
type PlaceKind uint8

const (
	PlaceLocal PlaceKind = iota
	PlaceGlobal
)

// Place is an assignable/addressable location: a local or global plus zero
// or more projections applied left to right.
type Place struct {
	Kind   PlaceKind
	Local  LocalID
	Global GlobalID
	Proj   []PlaceProj
	Type   types.TypeID
}

func (p Place) Valid() bool {
	if p.Kind == PlaceGlobal {
		return p.Global != NoGlobalID
	}
	return p.Local != NoLocalID
}

// ConstKind enumerates the compile-time constant shapes Stage-2 folds
// literals and comptime evaluation results into.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstString
	ConstNull
	ConstUndef
	ConstAggregate // struct/array/tuple literal, built from Elems
)

// Const is a fully-evaluated compile-time value. Int uses a decimal string
// rather than int64 so it can hold the full range of any integer width
// (including values produced by the comptime big-integer evaluator)
// without a dependency on a bignum library the rest of the pack doesn't use
// for this purpose; internal/vm operates on math/big.Int and converts at
// the boundary where a value is folded into a Const.
type Const struct {
	Kind  ConstKind
	Type  types.TypeID
	Int   string
	Float float64
	Bool  bool
	Str   string
	Elems []Const
}

// ValueKind distinguishes an operand that reads a Place from one that is
// already a folded compile-time Const.
type ValueKind uint8

const (
	ValuePlace ValueKind = iota
	ValueConst
)

// Value is an operand to an instruction: either a typed Place to load from
// or a Const produced by literal folding or comptime evaluation.
type Value struct {
	Kind  ValueKind
	Place Place
	Const Const
	Type  types.TypeID
}
