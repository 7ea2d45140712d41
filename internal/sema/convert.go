package sema

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/types"
)

// convertible reports whether a value of type from converts implicitly to
// to, and whether that conversion can lose information (a narrowing integer
// or float conversion, which the caller still permits implicitly for
// literals already bounds-checked against their target by constant folding,
// but must guard with mir.TrapOverflow for a runtime value).
func convertible(in *types.Interner, b types.Builtins, from, to types.TypeID) (ok, narrows bool) {
	if from == to {
		return true, false
	}
	ft, tt := in.Get(from), in.Get(to)

	switch ft.Kind {
	case types.KindComptimeInt:
		switch tt.Kind {
		case types.KindInt, types.KindFloat:
			return true, false // bounds already checked at fold time
		}
		return false, false
	case types.KindComptimeFloat:
		return tt.Kind == types.KindFloat, false
	case types.KindInt:
		switch tt.Kind {
		case types.KindInt:
			if ft.Signed != tt.Signed {
				return true, true
			}
			return true, tt.Width < ft.Width
		case types.KindFloat:
			return true, false
		}
	case types.KindFloat:
		if tt.Kind == types.KindFloat {
			return true, tt.Width < ft.Width
		}
	case types.KindNullable:
		// T converts implicitly into ?T's payload position is handled by
		// the caller wrapping, not here; ?T -> ?T needs an identical Elem.
		if tt.Kind == types.KindNullable {
			return ft.Elem == tt.Elem, false
		}
	case types.KindPointer:
		if tt.Kind == types.KindPointer {
			// *T -> *const T is always fine; *const T -> *T is not.
			if ft.Elem == tt.Elem {
				return !ft.Const || tt.Const, false
			}
		}
	}
	return false, false
}

// wrapsToNullable reports whether assigning a from-typed value into a
// nullable(to) destination is the implicit "some" wrap every non-null value
// gets when its target is ?T.
func wrapsToNullable(in *types.Interner, from, to types.TypeID) bool {
	tt := in.Get(to)
	return tt.Kind == types.KindNullable && tt.Elem == from
}

// binOpResult applies the conversion lattice to a binary operator's
// operand types, returning the shared operand/result type, the trap the
// backend must guard the operation with, and whether the operator is one of
// Thresh's explicit wrapping spellings (`+%`/`-%`/`*%`/`<<%`).
func binOpResult(in *types.Interner, b types.Builtins, op ast.BinOp, lhs, rhs types.TypeID) (result types.TypeID, trap mir.TrapKind, wraps bool, ok bool) {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if !comparable(in, lhs, rhs) {
			return types.Invalid, mir.TrapNone, false, false
		}
		return b.Bool, mir.TrapNone, false, true
	case ast.OpBoolAnd, ast.OpBoolOr:
		if lhs != b.Bool || rhs != b.Bool {
			return types.Invalid, mir.TrapNone, false, false
		}
		return b.Bool, mir.TrapNone, false, true
	}

	common, ok := unify(in, lhs, rhs)
	if !ok {
		return types.Invalid, mir.TrapNone, false, false
	}
	ct := in.Get(common)

	switch op {
	case ast.OpAddWrap, ast.OpSubWrap, ast.OpMulWrap, ast.OpShlWrap:
		return common, mir.TrapNone, true, ct.Kind == types.KindInt
	case ast.OpDiv:
		if ct.Kind == types.KindFloat {
			return common, mir.TrapNone, false, true
		}
		return common, mir.TrapDivByZero, false, ct.Kind == types.KindInt
	case ast.OpDivExact:
		return common, mir.TrapExactDivRemainder, false, ct.Kind == types.KindInt
	case ast.OpMod:
		return common, mir.TrapDivByZero, false, ct.Kind == types.KindInt || ct.Kind == types.KindFloat
	case ast.OpShl, ast.OpShr:
		return common, mir.TrapShiftAmount, false, ct.Kind == types.KindInt
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		return common, mir.TrapNone, false, ct.Kind == types.KindInt
	case ast.OpAdd, ast.OpSub, ast.OpMul:
		switch ct.Kind {
		case types.KindInt:
			return common, mir.TrapOverflow, false, true
		case types.KindFloat:
			return common, mir.TrapNone, false, true
		}
		return types.Invalid, mir.TrapNone, false, false
	}
	return types.Invalid, mir.TrapNone, false, false
}

// unify picks the wider/common operand type for a binary arithmetic or
// bitwise expression, following the same widening rules as convertible.
func unify(in *types.Interner, lhs, rhs types.TypeID) (types.TypeID, bool) {
	if lhs == rhs {
		return lhs, true
	}
	lt, rt := in.Get(lhs), in.Get(rhs)
	if lt.Kind == types.KindComptimeInt || lt.Kind == types.KindComptimeFloat {
		return rhs, true
	}
	if rt.Kind == types.KindComptimeInt || rt.Kind == types.KindComptimeFloat {
		return lhs, true
	}
	if ok, _ := convertible(in, types.Builtins{}, lhs, rhs); ok {
		return rhs, true
	}
	if ok, _ := convertible(in, types.Builtins{}, rhs, lhs); ok {
		return lhs, true
	}
	return types.Invalid, false
}

func comparable(in *types.Interner, lhs, rhs types.TypeID) bool {
	if lhs == rhs {
		return true
	}
	_, ok := unify(in, lhs, rhs)
	return ok
}
