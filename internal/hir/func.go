package hir

import "github.com/thresh-lang/threshc/internal/source"

// Param is one lowered function parameter, bound to a local slot.
type Param struct {
	Name  source.Name
	Local LocalID
}

// Goto is a forward `goto label;` recorded at the point it was parsed,
// before the block holding its target label exists. Builder.backpatchGotos
// resolves these against the label table collected for the enclosing function.
type Goto struct {
	Block  BlockID // block the goto instruction itself lives in
	Index  int     // instruction index within Block where the jump belongs
	Label  source.Name
	Scope  int // defer-stack depth at the goto site, for the cross-defer check
}

// Func is one lowered function: its parameter locals, its block graph, and
// the bookkeeping left over from lowering (used by Stage-2 and diagnostics).
type Func struct {
	Name   source.Name
	Params []Param
	Entry  BlockID
	Blocks []BasicBlock

	// NumLocals is the number of LocalID slots allocated (params + lets).
	NumLocals int

	// LocalNames records every local's source name, regardless of which
	// construct introduced it (parameter, let-binding, for-loop element/
	// index, if/while optional binding), for sema diagnostics and mir.Local.
	LocalNames map[LocalID]source.Name

	// PendingGotos lists forward gotos that were not resolved during
	// lowering, e.g. a label that was never declared in this function.
	PendingGotos []Goto

	// InlineLoops holds the header block of every `inline while`/`inline
	// for`, for Stage-2 to unroll at compile time instead of emitting a
	// runtime loop.
	InlineLoops []BlockID
}

func (f *Func) block(id BlockID) *BasicBlock { return &f.Blocks[id-1] }

// Block exposes block to other packages (tests, the printer, Stage-2).
func (f *Func) Block(id BlockID) *BasicBlock { return f.block(id) }

// Module is every function lowered out of one resolved compilation unit.
type Module struct {
	Funcs []Func
}
