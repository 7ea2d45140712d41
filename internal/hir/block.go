package hir

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/source"
)

// InstrKind tags one straight-line HIR instruction.
type InstrKind uint8

const (
	InstrInvalid InstrKind = iota
	InstrEval              // evaluate an expression for its value and/or side effects
	InstrBind               // bind a local to the value of Expr (a let-statement)
	InstrDeferCall          // run one recorded defer body, in unwind order
)

// Instr is one instruction in a BasicBlock's straight-line body.
type Instr struct {
	Kind  InstrKind
	Expr  ast.ExprID
	Local LocalID

	// Name and DeclType are only populated for InstrBind: the source name
	// being bound (for diagnostics) and its declared type annotation, if
	// any (NoTypeExpr when the type is left to be inferred from Expr).
	Name     source.Name
	DeclType ast.TypeExprID
}

// TermKind tags how a BasicBlock ends.
type TermKind uint8

const (
	TermInvalid TermKind = iota
	TermJump
	TermBranch       // conditional two-way branch (if, short-circuit &&/||, try/catch success-vs-error)
	TermSwitch       // multi-way branch (switch expression)
	TermReturn
	TermUnreachable // `@panic`, a `noreturn` call, or a switch with no matching default
)

// SwitchEdge is one non-default arm of a TermSwitch.
type SwitchEdge struct {
	Values []ast.ExprID // prong values; a range is represented by two consecutive entries (lo, hi)
	Range  bool
	Target BlockID
}

// Terminator is the control-transfer instruction ending a BasicBlock.
type Terminator struct {
	Kind TermKind

	Cond ast.ExprID // TermBranch condition, or TermSwitch scrutinee
	Then BlockID    // TermBranch true-edge
	Else BlockID    // TermBranch false-edge; NoBlock if there is no else

	Edges   []SwitchEdge // TermSwitch arms
	Default BlockID      // TermSwitch default/else arm, or NoBlock if exhaustiveness is required

	Target BlockID    // TermJump destination
	Value  ast.ExprID // TermReturn value; NoExpr for a bare `return;`
}

// PhiEdge is one incoming value of a Phi, keyed by the predecessor block it
// comes from.
type PhiEdge struct {
	From  BlockID
	Value ast.ExprID // NoExpr if the predecessor contributes no value (e.g. a `break;` with no value)
}

// Phi merges the value an expression produced along each predecessor edge
// into the merge block that follows an if/switch/loop/short-circuit split.
// Stage-2 resolves these against the unified result type.
type Phi struct {
	Local    LocalID
	Incoming []PhiEdge
}

// BasicBlock is a single-entry, single-exit run of instructions.
type BasicBlock struct {
	ID    BlockID
	Phis  []Phi
	Instr []Instr
	Term  Terminator
}
