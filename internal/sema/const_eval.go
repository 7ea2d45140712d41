package sema

import (
	"math/big"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/mir"
)

// foldConst folds a switch-prong value (or range endpoint) into a
// mir.Const. Thresh requires switch-prong values to be comptime-evaluable,
// so only the literal forms and their negation are handled here; anything
// else is rejected rather than guessed at. Full comptime folding of
// arbitrary expressions (named constants, arithmetic on them) belongs to a
// later pass once container/const declarations are threaded into Stage-2.
func (fc *funcChecker) foldConst(id ast.ExprID) (mir.Const, bool) {
	e := fc.file.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprGroup:
		return fc.foldConst(e.A)
	case ast.ExprIntLit:
		return mir.Const{Kind: mir.ConstInt, Type: fc.b.ComptimeInt, Int: e.IntText}, true
	case ast.ExprCharLit:
		return mir.Const{Kind: mir.ConstInt, Type: fc.b.ComptimeInt, Int: e.IntText}, true
	case ast.ExprFloatLit:
		return mir.Const{Kind: mir.ConstFloat, Type: fc.b.ComptimeFloat, Float: e.Float}, true
	case ast.ExprBoolLit:
		return mir.Const{Kind: mir.ConstBool, Type: fc.b.Bool, Bool: e.Bool}, true
	case ast.ExprUnary:
		if e.UnOp == ast.OpNeg {
			if inner, ok := fc.foldConst(e.A); ok && inner.Kind == mir.ConstInt {
				n := new(big.Int)
				n.SetString(inner.Int, 10)
				n.Neg(n)
				inner.Int = n.String()
				return inner, true
			}
		}
	}
	return mir.Const{}, false
}
