// Package vm is the Stage-2 compile-time evaluator: a small tree-walking
// interpreter over already-checked internal/mir function bodies, used
// exclusively by internal/sema for `inline`/forced comptime calls. It
// never runs compiled code at runtime and has no JIT.
package vm

import (
	"math/big"

	"github.com/thresh-lang/threshc/internal/types"
)

// ValueKind tags the representation a compile-time Value carries.
type ValueKind uint8

const (
	VInvalid ValueKind = iota
	VInt
	VFloat
	VBool
	VString
	VAggregate // struct/array literal, held element/field-wise in Elems
)

// Value is a fully-evaluated compile-time value. Int uses math/big.Int for
// arbitrary precision during evaluation (mir.Const.Int only needs a decimal
// string once the result is folded back into Stage-2's representation; see
// internal/mir/types.go's Const doc comment for why the boundary is drawn
// there rather than carrying a bignum dependency into mir itself).
type Value struct {
	Kind  ValueKind
	Type  types.TypeID
	Int   *big.Int
	Float float64
	Bool  bool
	Str   string
	Elems []Value
}

func IntValue(ty types.TypeID, v *big.Int) Value   { return Value{Kind: VInt, Type: ty, Int: v} }
func FloatValue(ty types.TypeID, v float64) Value  { return Value{Kind: VFloat, Type: ty, Float: v} }
func BoolValue(ty types.TypeID, v bool) Value      { return Value{Kind: VBool, Type: ty, Bool: v} }
func StringValue(ty types.TypeID, v string) Value  { return Value{Kind: VString, Type: ty, Str: v} }
