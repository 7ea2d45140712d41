// Package hir lowers a function's AST body into an untyped control-flow
// graph: basic blocks of straight-line instructions terminated by a jump,
// branch, switch, or return. It resolves short-circuit booleans, if/try/
// switch, and loops into explicit blocks, tracks per-scope defers by kind,
// and back-patches forward gotos once their enclosing block is built.
// Nothing here carries a types.TypeID; that's internal/sema's job once it
// walks this graph in Stage-2.
package hir

// BlockID identifies a basic block within a Func.
type BlockID uint32

// LocalID identifies a let-binding or parameter slot within a Func.
type LocalID uint32

// FuncID identifies a lowered function within a Module.
type FuncID uint32

const (
	NoBlock BlockID = 0
	NoLocal LocalID = 0
	NoFunc  FuncID  = 0
)

func (id BlockID) Valid() bool { return id != NoBlock }
func (id LocalID) Valid() bool { return id != NoLocal }
func (id FuncID) Valid() bool  { return id != NoFunc }
