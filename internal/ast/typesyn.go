package ast

import "github.com/thresh-lang/threshc/internal/source"

// TypeExprKind tags the type-syntax grammar: named types, pointer/array/
// slice sugar, nullable (`?T`) and error-union (`E!T`) sugar, and inline
// function-type signatures.
type TypeExprKind uint8

const (
	TypeInvalid TypeExprKind = iota
	TypeName                 // `Foo`, possibly qualified `pkg.Foo`
	TypePointer
	TypeArray
	TypeSlice
	TypeNullable
	TypeErrorUnion
	TypeFn
	TypeAnyFrame // reserved for future async return typing; unused today
)

// TypeExpr is a fat node for the type grammar.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span
	Seq  uint32

	Name  source.Name
	Elem  TypeExprID // pointee/element/payload type
	Error TypeExprID // error-set side of `E!T`
	Len   ExprID     // array length, a compile-time expression; NoExpr for slices

	Const    bool
	Volatile bool

	Params  []FnParam // TypeFn
	Ret     TypeExprID
	CallCnv source.Name
}

// FnParam is one function-type/function-declaration parameter.
type FnParam struct {
	Name     source.Name
	Type     TypeExprID
	NoAlias  bool
	Comptime bool // generic parameter bound at compile time
}

// TypeExprs is the per-file arena of type-syntax nodes.
type TypeExprs struct {
	arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint int) *TypeExprs { return &TypeExprs{arena: NewArena[TypeExpr](capHint)} }

func (ts *TypeExprs) New(kind TypeExprKind, span source.Span, seq uint32) TypeExprID {
	return TypeExprID(ts.arena.Alloc(TypeExpr{Kind: kind, Span: span, Seq: seq}))
}

func (ts *TypeExprs) Get(id TypeExprID) *TypeExpr { return ts.arena.Get(uint32(id)) }
func (ts *TypeExprs) Len() int                     { return ts.arena.Len() }
