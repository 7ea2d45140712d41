package ast

import "github.com/thresh-lang/threshc/internal/source"

// StmtKind tags the statement-level grammar: var/const declarations, defer
// (in its three kinds), control flow used as a statement, labels, and plain
// expression statements.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLet               // `const`/`var` declaration
	StmtExpr              // bare expression, possibly with side effects
	StmtReturn
	StmtBreak
	StmtContinue
	StmtDefer
	StmtLabel
	StmtGoto
)

// Stmt is a fat statement node.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Seq  uint32

	Name    source.Name // let-binding name, label name, goto target
	Mutable bool         // `var` vs `const`
	Type    TypeExprID   // optional declared type on a let-binding
	Value   ExprID       // initializer / return value / deferred body / break value

	DeferKind DeferKind
	Label     source.Name // `break :label`, `continue :label`
}

// Stmts is the per-file arena of statement nodes.
type Stmts struct {
	arena *Arena[Stmt]
}

func NewStmts(capHint int) *Stmts { return &Stmts{arena: NewArena[Stmt](capHint)} }

func (ss *Stmts) New(kind StmtKind, span source.Span, seq uint32) StmtID {
	return StmtID(ss.arena.Alloc(Stmt{Kind: kind, Span: span, Seq: seq}))
}

func (ss *Stmts) Get(id StmtID) *Stmt { return ss.arena.Get(uint32(id)) }
func (ss *Stmts) Len() int            { return ss.arena.Len() }
