package mir

import "github.com/thresh-lang/threshc/internal/types"

// InstrKind enumerates MIR instruction kinds. Thresh has no async/channel
// surface (that is Surge-specific concurrency the distilled spec's
// Non-goals exclude), so this is a narrower set than the teacher's: plain
// arithmetic/compare/call/memory/cast/aggregate construction only.
type InstrKind uint8

const (
	InstrAssign InstrKind = iota
	InstrCall
	InstrBinOp
	InstrUnOp
	InstrConvert
	InstrAddrOf
	InstrStructLit
	InstrArrayLit
	InstrNop
)

// Instr is one typed MIR instruction, binding its result (when it has one)
// into Dst.
type Instr struct {
	Kind InstrKind
	Dst  LocalID

	Assign   AssignInstr
	Call     CallInstr
	BinOp    BinOpInstr
	UnOp     UnOpInstr
	Convert  ConvertInstr
	AddrOf   Value
	Struct   StructLitInstr
	Array    ArrayLitInstr
}

// AssignInstr stores Src into Dst. It carries no trap of its own; runtime
// checks such as overflow and division by zero ride on the BinOp
// instruction's Trap that produced the value.
type AssignInstr struct {
	Dst Place
	Src Value
}

type CalleeKind uint8

const (
	CalleeDirect CalleeKind = iota
	CalleeValue
)

type Callee struct {
	Kind CalleeKind
	Func FuncID
	Val  Value
}

type CallInstr struct {
	Callee Callee
	Args   []Value
	Type   types.TypeID
}

// BinOp mirrors ast's binary operator set once typed: the conversion
// lattice and overflow/div/shift semantics sema applies before emitting one
// of these are recorded in Trap, not re-derived by the backend.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// TrapKind names the runtime safety check the backend must guard an
// instruction with, per SPEC_FULL.md's "runtime safety traps" requirement.
// TrapNone means the operation is proven safe (e.g. wrapping arithmetic, or
// a scope where safety checks are disabled) and needs no guard.
type TrapKind uint8

const (
	TrapNone TrapKind = iota
	TrapOverflow
	TrapDivByZero
	TrapShiftAmount
	TrapBounds
	TrapUnwrapNull
	TrapUnwrapError
	TrapExactDivRemainder
)

type BinOpInstr struct {
	Op    BinOp
	Lhs   Value
	Rhs   Value
	Type  types.TypeID
	Trap  TrapKind
	Wraps bool // true if overflow silently wraps instead of trapping
}

type UnOpKind uint8

const (
	UnNeg UnOpKind = iota
	UnNot
	UnBitNot
)

type UnOpInstr struct {
	Op   UnOpKind
	Operand Value
	Type types.TypeID
	Trap TrapKind
}

// ConvertInstr performs an explicit or implicit lattice conversion; Trap is
// TrapOverflow for a narrowing integer conversion that can lose bits.
type ConvertInstr struct {
	Src  Value
	From types.TypeID
	To   types.TypeID
	Trap TrapKind
}

type StructLitField struct {
	FieldIdx int
	Value    Value
}

type StructLitInstr struct {
	Type   types.TypeID
	Fields []StructLitField
}

type ArrayLitInstr struct {
	Type  types.TypeID
	Elems []Value
}
