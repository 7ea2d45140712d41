// Package backend defines the single seam the compiler core depends on for
// code generation (spec.md §6's "Backend interface"): type/global/function
// constructors, a per-function instruction builder, a debug-info builder,
// target-data layout queries, and a final codegen entry point. Nothing in
// internal/driver or internal/sema depends on a concrete Backend's API
// shape beyond what this file declares.
package backend

import "github.com/thresh-lang/threshc/internal/types"

// TypeRef is an opaque handle a Backend hands back for a type it has
// constructed, the same way types.TypeID is opaque to everything above
// internal/types.
type TypeRef uint32

// NoTypeRef is the zero value, returned on a construction failure.
const NoTypeRef TypeRef = 0

// FuncRef and GlobalRef are the function/global counterparts of TypeRef.
type FuncRef uint32
type GlobalRef uint32

const (
	NoFuncRef   FuncRef   = 0
	NoGlobalRef GlobalRef = 0
)

// Linkage controls whether a global or function symbol is visible outside
// the emitted object.
type Linkage uint8

const (
	LinkInternal Linkage = iota
	LinkExternal
	LinkWeak
)

// GlobalOpts carries a module-level global's alignment/section/linkage, per
// SPEC_FULL.md §4.7's "globals with alignment/section/linkage".
type GlobalOpts struct {
	Align   uint32
	Section string
	Linkage Linkage
	Mutable bool
}

// FuncOpts carries a function's linkage and calling convention.
type FuncOpts struct {
	Linkage Linkage
	CallConv string
	Extern   bool // declared only, no body emitted
}

// TargetData answers the layout questions a Backend's caller needs before
// it can compute field offsets or pick an integer representation for a
// pointer: pointer size and endianness (SPEC_FULL.md §4.7's "target-data
// layout queries").
type TargetData struct {
	PointerBits  uint8
	LittleEndian bool
}

// Module is the type/global/function constructor surface: the part of the
// Backend interface used once per compilation, before any function bodies
// are built.
type Module interface {
	// DeclareIntType, DeclareFloatType, DeclarePointerType, DeclareStructType,
	// and DeclareArrayType are the "type constructors (int, float, pointer,
	// struct, array, function)" SPEC_FULL.md §4.7 names. Each call returns a
	// new TypeRef: unlike internal/types' Interner, neither implementation in
	// this tree deduplicates identical arguments.
	DeclareIntType(width uint8, signed bool) TypeRef
	DeclareFloatType(width uint8) TypeRef
	DeclarePointerType(elem TypeRef) TypeRef
	DeclareStructType(name string, fields []TypeRef) TypeRef
	DeclareArrayType(elem TypeRef, length uint64) TypeRef
	DeclareFuncType(params []TypeRef, ret TypeRef) TypeRef

	DeclareGlobal(name string, ty TypeRef, opts GlobalOpts) GlobalRef
	DeclareFunc(name string, sig TypeRef, opts FuncOpts) FuncRef

	// Builder opens the basic-block/instruction builder for a previously
	// declared, non-extern function.
	Builder(fn FuncRef) Builder

	DebugInfo() DebugInfo
	TargetData() TargetData

	// Emit runs final codegen, producing an object artifact at path. It is
	// the single point downstream of every DeclareX/Builder call.
	Emit(path string) error
}

// CmpPred names an integer/float comparison predicate for Builder.Cmp.
type CmpPred uint8

const (
	CmpEq CmpPred = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// ArithOp names one of the overflow-checked arithmetic intrinsics
// SPEC_FULL.md §4.7 calls for ("arithmetic with overflow intrinsics").
type ArithOp uint8

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithRem
	ArithShl
	ArithShr
	ArithAnd
	ArithOr
	ArithXor
)

// Val is a Backend-internal SSA value handle produced by a Builder
// instruction and consumed by a later one in the same function.
type Val uint32

const NoVal Val = 0

// Block is a basic block handle within one function's Builder.
type Block uint32

const NoBlock Block = 0

// Builder is the per-function basic-block and instruction emission
// surface: arithmetic with overflow intrinsics, memory ops, calls, phi,
// and branches, per SPEC_FULL.md §4.7.
type Builder interface {
	Block(name string) Block
	SetBlock(b Block)

	ConstInt(ty TypeRef, decimal string) Val
	ConstFloat(ty TypeRef, v float64) Val
	ConstBool(v bool) Val
	ConstString(s string) Val
	Param(i int) Val

	// Arith emits one overflow-checked arithmetic op; trap is the panic
	// message text (e.g. "integer overflow") the runtime panic handler is
	// invoked with when the Backend's
	// own overflow intrinsic reports a fault and wraps is false.
	Arith(op ArithOp, lhs, rhs Val, ty TypeRef, trap string, wraps bool) Val
	Cmp(pred CmpPred, lhs, rhs Val, ty TypeRef) Val
	Not(v Val) Val
	Neg(v Val, ty TypeRef, trap string) Val

	Alloca(ty TypeRef, name string) Val
	Load(ptr Val, ty TypeRef) Val
	Store(ptr, v Val)
	GEP(base Val, indices []Val) Val

	Call(fn FuncRef, args []Val) Val
	CallIndirect(fnVal Val, sig TypeRef, args []Val) Val

	Phi(ty TypeRef, incoming map[Block]Val) Val
	Jump(target Block)
	Branch(cond Val, then, els Block)
	Switch(v Val, cases map[string]Block, def Block)
	Return(v Val, hasValue bool)
	Unreachable()

	// Trap calls the per-image panic handler with one of spec.md §6's
	// canonical safety-check messages and terminates the current block.
	Trap(message string)
}

// DebugInfo builds the compile-unit / file / scope / variable metadata
// SPEC_FULL.md §4.7 requires be "wired from per-instruction positions".
type DebugInfo interface {
	CompileUnit(producer, dir string)
	File(name, dir string) int
	LexicalScope(file int, line, col uint32) int
	LocalVariable(scope int, name string, ty TypeRef, line uint32)
}

// FromTypeID maps a types.TypeID to Backend type constructors, the glue
// internal/backend/llvm's emitter (and any other Backend implementation)
// uses to translate internal/types' arena into its own type table. in is
// the same Interner the compilation built ty against.
func FromTypeID(mod Module, in *types.Interner, ty types.TypeID) TypeRef {
	if !ty.Valid() {
		return NoTypeRef
	}
	t := in.Get(ty)
	switch t.Kind {
	case types.KindBool:
		return mod.DeclareIntType(1, false)
	case types.KindInt:
		return mod.DeclareIntType(t.Width, t.Signed)
	case types.KindFloat:
		return mod.DeclareFloatType(t.Width)
	case types.KindPointer:
		return mod.DeclarePointerType(FromTypeID(mod, in, t.Elem))
	case types.KindArray:
		return mod.DeclareArrayType(FromTypeID(mod, in, t.Elem), t.Len)
	case types.KindSlice:
		// A slice is {ptr, len}; represented as a two-field struct, the
		// same lowering the teacher's llvm backend gives Surge's slices.
		ptr := mod.DeclarePointerType(FromTypeID(mod, in, t.Elem))
		length := mod.DeclareIntType(64, false)
		return mod.DeclareStructType("slice", []TypeRef{ptr, length})
	case types.KindFn:
		params := make([]TypeRef, len(t.Params))
		for i, p := range t.Params {
			params[i] = FromTypeID(mod, in, p.Type)
		}
		return mod.DeclareFuncType(params, FromTypeID(mod, in, t.Ret))
	default:
		// void, noreturn, comptime_int/float, named, type: none of these
		// reach the backend directly (a named container's fields are
		// lowered field-by-field by the caller; comptime types are always
		// folded away before Stage-2 hands anything to the backend).
		return NoTypeRef
	}
}
