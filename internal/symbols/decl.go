package symbols

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// DeclKind classifies what an ast.Item resolves into.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclFn
	DeclVar
	DeclContainer
	DeclUse
	DeclTest
)

// State is a declaration's position in the resolver's state machine:
// Unresolved -> Resolving -> {Ok, Invalid}. Re-entering Resolving for the
// same Decl is a cycle and demotes it to Invalid.
type State uint8

const (
	Unresolved State = iota
	Resolving
	Ok
	Invalid
)

// Decl is one resolved (or resolving) declaration: a module-level fn, var,
// container, or test.
type Decl struct {
	Name       source.Name
	Kind       DeclKind
	State      State
	Visibility ast.Visibility

	Module source.Name // the ModuleScope this decl belongs to
	Item   ast.ItemID
	Span   source.Span
	Seq    uint32 // the ast.Item's creation seq; disambiguates types.Named identity

	Type types.TypeID // Invalid until State == Ok (or permanently, for DeclVar's inferred case)

	// Generic is true for a DeclFn with one or more comptime parameters
	// (internal/mono.IsGeneric). internal/sema checks the declaration's
	// body once, like any other function, and records each distinct
	// compile-time argument tuple a call supplies with internal/mono's
	// Recorder; no separate concrete function is built per tuple.
	Generic bool
}
