package ast

import (
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

// ExprKind tags the expression shapes the parser recognizes, including
// type-as-expression forms used by `@TypeOf` and friends (TypeExprID is a
// separate arena for the type-syntax grammar itself; ExprTypeLit wraps a
// TypeExprID so it can appear wherever an expression is expected, e.g. as a
// `comptime`/generic argument).
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprIntLit
	ExprFloatLit
	ExprStringLit
	ExprCStringLit
	ExprCharLit
	ExprBoolLit
	ExprNullLit
	ExprUndefinedLit
	ExprCall
	ExprBinary
	ExprUnary
	ExprAddrOf
	ExprDeref
	ExprField
	ExprIndex
	ExprSlice
	ExprGroup
	ExprStructInit
	ExprArrayInit
	ExprTry
	ExprIf
	ExprSwitch
	ExprWhile
	ExprFor
	ExprBlock
	ExprComptime
	ExprInline
	ExprBuiltinCall // @sizeof(...), @import(...), @compileError(...), etc.
	ExprAsm
	ExprTypeLit // a type used where an expression is expected
	ExprCatch   // `try expr else |err| body` and bare `expr catch body`
	ExprAssign  // `place = value` or a compound form (`place +%= value`, ...)
)

// BinOp enumerates the binary operators, including the wrapping family.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAddWrap
	OpSubWrap
	OpMulWrap
	OpShlWrap
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpBoolAnd
	OpBoolOr
	OpOrelse
	OpDivExact // @divExact builtin desugars here for evaluator sharing
)

// UnOp enumerates prefix unary operators.
type UnOp uint8

const (
	OpNeg UnOp = iota
	OpNot
	OpBitNot
)

// Expr is a fat node covering every expression kind; only the fields
// relevant to Kind are populated. A, B, C are the common child slots (e.g.
// A/B are binary operands, A is a unary operand or call callee); Children
// holds a variable-length child list (call arguments, array elements).
type Expr struct {
	Kind ExprKind
	Span source.Span
	Seq  uint32

	A, B, C  ExprID
	Children []ExprID
	Type     TypeExprID // for ExprTypeLit, casts, struct-init type, builtin type args
	Name     source.Name
	Fields   []InitField // ExprStructInit

	BinOp BinOp
	UnOp  UnOp

	// Compound is true when ExprAssign's BinOp names the operator a
	// compound-assignment spelling (`+=`, `+%=`, ...) folds in; false for a
	// plain `=`, where BinOp is unused.
	Compound bool

	IntText   string // decoded integer text (arbitrary precision), ExprIntLit
	Overflow  bool
	Float     float64
	Str       string
	Builtin   string // name after '@' for ExprBuiltinCall
	Bool      bool

	Stmts     []StmtID // ExprBlock body
	Label     source.Name
	Binding   source.Name // `if (const|var x ?= e)`, `try x |err|`, `for x in e`
	BindPtr   bool        // pointer-binding variant
	BindMut   bool        // var vs const binding
	IndexName source.Name // `for elem, index in e`
	ElseBody  ExprID      // try/catch else-arm, if-else, while-else
	ErrName   source.Name // `else |err|` capture

	Cases []SwitchCase // ExprSwitch

	Cond ExprID // if/while condition, or the switch scrutinee
	Cont ExprID // while continue-expression

	Asm *AsmExpr
}

// InitField is one `.name = value` entry of a struct-literal initializer.
type InitField struct {
	Name  source.Name
	Value ExprID
}

// SwitchCase is one prong of a switch expression: either a list of
// comma-separated values/ranges, or the `else` catch-all (Else == true).
type SwitchCase struct {
	Values  []CaseValue
	Else    bool
	Binding source.Name // payload capture `|x|`
	Body    ExprID
}

// CaseValue is a single switch-prong value, with an optional range end
// (`a...b`).
type CaseValue struct {
	Value    ExprID
	RangeEnd ExprID // NoExpr when this is a single value, not a range
}

// AsmExpr captures an inline-assembly expression.
type AsmExpr struct {
	Volatile bool
	Template string
	Outputs  []AsmOperand
	Inputs   []AsmOperand
	Clobbers []string
}

// AsmOperand is one typed operand of an asm expression (`"=r" (x): T`).
type AsmOperand struct {
	Constraint string
	Symbolic   source.Name
	Expr       ExprID
	Type       TypeExprID
}

// Exprs is the per-file arena of expression nodes.
type Exprs struct {
	arena *Arena[Expr]
}

func NewExprs(capHint int) *Exprs { return &Exprs{arena: NewArena[Expr](capHint)} }

func (es *Exprs) New(kind ExprKind, span source.Span, seq uint32) ExprID {
	return ExprID(es.arena.Alloc(Expr{Kind: kind, Span: span, Seq: seq}))
}

func (es *Exprs) Get(id ExprID) *Expr { return es.arena.Get(uint32(id)) }
func (es *Exprs) Len() int            { return es.arena.Len() }

// FillLiteral copies a lexed literal's decoded payload onto an expr node;
// used by the parser right after allocating an ExprIntLit/ExprFloatLit/etc.
func FillLiteral(e *Expr, t token.Token) {
	switch e.Kind {
	case ExprIntLit:
		e.IntText = t.Number.IntText
		e.Overflow = t.Number.Overflow
	case ExprFloatLit:
		e.Float = t.Number.Float
	case ExprStringLit, ExprCStringLit, ExprCharLit:
		e.Str = t.Str
	}
}
