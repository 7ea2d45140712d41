package backend

import "fmt"

// MemModule is an in-memory Backend test double: it gives every
// DeclareX/Builder call a handle the way a real backend would, but records
// what it was asked to build instead of lowering to an object file.
// SPEC_FULL.md §8 drives the six end-to-end scenarios against this rather
// than a real codegen library, the same way internal/vm stands in for
// "running compiled code" during compile-time evaluation.
type MemModule struct {
	types   []memType
	globals []memGlobal
	funcs   []memFunc

	// Calls records, in emission order across every Builder this Module
	// opened, one entry per Builder.Call: the callee's declared name and
	// (when the argument folds to a compile-time string) its text. A
	// defer-ordering or hello-world scenario test reads this directly
	// instead of re-deriving call order from mir.Func itself.
	Calls []MemCall

	emitted string // path passed to Emit, recorded for assertions
}

type memType struct {
	kind   string
	params []TypeRef
	ret    TypeRef
}

type memGlobal struct {
	name string
	ty   TypeRef
	opts GlobalOpts
}

type memFunc struct {
	name string
	sig  TypeRef
	opts FuncOpts
}

// MemCall is one recorded Builder.Call, resolved back to the callee's
// declared name (constant arguments are captured as their literal text so
// a scenario test can assert on printed output without re-interpreting the
// IR).
type MemCall struct {
	Callee string
	Args   []string
}

// NewMemModule returns an empty in-memory Backend test double.
func NewMemModule() *MemModule {
	return &MemModule{}
}

func (m *MemModule) alloc() TypeRef { m.types = append(m.types, memType{}); return TypeRef(len(m.types)) }

func (m *MemModule) DeclareIntType(width uint8, signed bool) TypeRef {
	id := m.alloc()
	m.types[id-1] = memType{kind: fmt.Sprintf("int%d_signed=%v", width, signed)}
	return id
}

func (m *MemModule) DeclareFloatType(width uint8) TypeRef {
	id := m.alloc()
	m.types[id-1] = memType{kind: fmt.Sprintf("float%d", width)}
	return id
}

func (m *MemModule) DeclarePointerType(elem TypeRef) TypeRef {
	id := m.alloc()
	m.types[id-1] = memType{kind: "pointer", params: []TypeRef{elem}}
	return id
}

func (m *MemModule) DeclareStructType(name string, fields []TypeRef) TypeRef {
	id := m.alloc()
	m.types[id-1] = memType{kind: "struct:" + name, params: fields}
	return id
}

func (m *MemModule) DeclareArrayType(elem TypeRef, length uint64) TypeRef {
	id := m.alloc()
	m.types[id-1] = memType{kind: fmt.Sprintf("array[%d]", length), params: []TypeRef{elem}}
	return id
}

func (m *MemModule) DeclareFuncType(params []TypeRef, ret TypeRef) TypeRef {
	id := m.alloc()
	m.types[id-1] = memType{kind: "fn", params: params, ret: ret}
	return id
}

func (m *MemModule) DeclareGlobal(name string, ty TypeRef, opts GlobalOpts) GlobalRef {
	m.globals = append(m.globals, memGlobal{name: name, ty: ty, opts: opts})
	return GlobalRef(len(m.globals))
}

func (m *MemModule) DeclareFunc(name string, sig TypeRef, opts FuncOpts) FuncRef {
	m.funcs = append(m.funcs, memFunc{name: name, sig: sig, opts: opts})
	return FuncRef(len(m.funcs))
}

func (m *MemModule) Builder(fn FuncRef) Builder {
	return &memBuilder{mod: m, fn: fn}
}

func (m *MemModule) DebugInfo() DebugInfo     { return memDebugInfo{} }
func (m *MemModule) TargetData() TargetData   { return TargetData{PointerBits: 64, LittleEndian: true} }
func (m *MemModule) Emit(path string) error   { m.emitted = path; return nil }
func (m *MemModule) EmittedPath() string      { return m.emitted }

// FuncName returns the declared name for fn, used by a scenario test to
// resolve a mir.FuncID -> backend.FuncRef -> source name round trip.
func (m *MemModule) FuncName(fn FuncRef) (string, bool) {
	if fn == NoFuncRef || int(fn) > len(m.funcs) {
		return "", false
	}
	return m.funcs[fn-1].name, true
}

type memBuilder struct {
	mod    *MemModule
	fn     FuncRef
	vals   []memVal
	blocks int
}

type memVal struct {
	str string
	ok  bool // true if str is a known compile-time string literal
}

func (b *memBuilder) push(v memVal) Val {
	b.vals = append(b.vals, v)
	return Val(len(b.vals))
}

func (b *memBuilder) Block(name string) Block { b.blocks++; return Block(b.blocks) }
func (b *memBuilder) SetBlock(bl Block)       {}

func (b *memBuilder) ConstInt(ty TypeRef, decimal string) Val   { return b.push(memVal{str: decimal}) }
func (b *memBuilder) ConstFloat(ty TypeRef, v float64) Val      { return b.push(memVal{str: fmt.Sprint(v)}) }
func (b *memBuilder) ConstBool(v bool) Val                      { return b.push(memVal{str: fmt.Sprint(v)}) }
func (b *memBuilder) ConstString(s string) Val                  { return b.push(memVal{str: s, ok: true}) }
func (b *memBuilder) Param(i int) Val                           { return b.push(memVal{}) }

func (b *memBuilder) Arith(op ArithOp, lhs, rhs Val, ty TypeRef, trap string, wraps bool) Val {
	return b.push(memVal{})
}
func (b *memBuilder) Cmp(pred CmpPred, lhs, rhs Val, ty TypeRef) Val { return b.push(memVal{}) }
func (b *memBuilder) Not(v Val) Val                                  { return b.push(memVal{}) }
func (b *memBuilder) Neg(v Val, ty TypeRef, trap string) Val         { return b.push(memVal{}) }

func (b *memBuilder) Alloca(ty TypeRef, name string) Val { return b.push(memVal{}) }
func (b *memBuilder) Load(ptr Val, ty TypeRef) Val       { return b.push(memVal{}) }
func (b *memBuilder) Store(ptr, v Val)                   {}
func (b *memBuilder) GEP(base Val, indices []Val) Val    { return b.push(memVal{}) }

func (b *memBuilder) Call(fn FuncRef, args []Val) Val {
	name, _ := b.mod.FuncName(fn)
	call := MemCall{Callee: name}
	for _, a := range args {
		if int(a) >= 1 && int(a) <= len(b.vals) && b.vals[a-1].ok {
			call.Args = append(call.Args, b.vals[a-1].str)
		}
	}
	b.mod.Calls = append(b.mod.Calls, call)
	return b.push(memVal{})
}

func (b *memBuilder) CallIndirect(fnVal Val, sig TypeRef, args []Val) Val {
	b.mod.Calls = append(b.mod.Calls, MemCall{Callee: "<indirect>"})
	return b.push(memVal{})
}

func (b *memBuilder) Phi(ty TypeRef, incoming map[Block]Val) Val { return b.push(memVal{}) }
func (b *memBuilder) Jump(target Block)                          {}
func (b *memBuilder) Branch(cond Val, then, els Block)           {}
func (b *memBuilder) Switch(v Val, cases map[string]Block, def Block) {}
func (b *memBuilder) Return(v Val, hasValue bool)                {}
func (b *memBuilder) Unreachable()                               {}
func (b *memBuilder) Trap(message string)                        {}

type memDebugInfo struct{}

func (memDebugInfo) CompileUnit(producer, dir string)                         {}
func (memDebugInfo) File(name, dir string) int                                { return 0 }
func (memDebugInfo) LexicalScope(file int, line, col uint32) int              { return 0 }
func (memDebugInfo) LocalVariable(scope int, name string, ty TypeRef, line uint32) {}
