package mir

import (
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// Func is one fully type-checked function body, ready for the backend or
// for internal/vm to interpret directly (inline/forced comptime calls).
type Func struct {
	Name   source.Name
	Type   types.TypeID // KindFn
	Locals []Local
	Entry  BlockID
	Blocks []BasicBlock

	// Extern is true for a declared-but-undefined function; it has no
	// Blocks and is resolved to a link-time symbol by the backend.
	Extern bool
}

func (f *Func) Block(id BlockID) *BasicBlock { return &f.Blocks[id] }
func (f *Func) Local(id LocalID) *Local      { return &f.Locals[id] }

// Global is a module-level variable.
type Global struct {
	Name    source.Name
	Type    types.TypeID
	Mutable bool
	Init    Value
}

// Module is everything Stage-2 produced for one compilation: every checked
// function plus module-level globals, ready for internal/mono to record
// generic instantiations against and internal/backend to emit.
type Module struct {
	Funcs   []Func
	Globals []Global
}
