package llvm

import (
	"fmt"

	"github.com/thresh-lang/threshc/internal/backend"
)

// irBuilder appends textual LLVM IR instructions to its owning function's
// body buffer; it hands out Val/Block handles as plain incrementing SSA
// register numbers, the same numbering scheme LLVM's own unnamed values use.
type irBuilder struct {
	backend *Backend
	fn      backend.FuncRef
	nextVal uint32
	nextBlk uint32
}

func (ib *irBuilder) fnBody() *declaredFunc { return &ib.backend.funcs[ib.fn-1] }

func (ib *irBuilder) val() backend.Val {
	ib.nextVal++
	return backend.Val(ib.nextVal)
}

func (ib *irBuilder) line(format string, args ...any) {
	fmt.Fprintf(&ib.fnBody().body, "  "+format+"\n", args...)
}

func (ib *irBuilder) Block(name string) backend.Block {
	ib.nextBlk++
	ib.line("; <label>:%s", name)
	return backend.Block(ib.nextBlk)
}

func (ib *irBuilder) SetBlock(b backend.Block) {}

func (ib *irBuilder) ConstInt(ty backend.TypeRef, decimal string) backend.Val {
	v := ib.val()
	ib.line("%%%d = add %%t%d 0, %s", v, ty, decimal)
	return v
}

func (ib *irBuilder) ConstFloat(ty backend.TypeRef, f float64) backend.Val {
	v := ib.val()
	ib.line("%%%d = fadd %%t%d 0.0, %v", v, ty, f)
	return v
}

func (ib *irBuilder) ConstBool(bval bool) backend.Val {
	v := ib.val()
	ib.line("%%%d = add i1 0, %v", v, bval)
	return v
}

func (ib *irBuilder) ConstString(s string) backend.Val {
	v := ib.val()
	ib.line("%%%d = private constant [%d x i8] c%q", v, len(s), s)
	return v
}

func (ib *irBuilder) Param(i int) backend.Val {
	v := ib.val()
	ib.line("%%%d = param %d", v, i)
	return v
}

func (ib *irBuilder) Arith(op backend.ArithOp, lhs, rhs backend.Val, ty backend.TypeRef, trap string, wraps bool) backend.Val {
	v := ib.val()
	ib.line("%%%d = %s %%t%d %%%d, %%%d ; trap=%q wraps=%v", v, arithMnemonic(op), ty, lhs, rhs, trap, wraps)
	return v
}

func (ib *irBuilder) Cmp(pred backend.CmpPred, lhs, rhs backend.Val, ty backend.TypeRef) backend.Val {
	v := ib.val()
	ib.line("%%%d = icmp %s %%t%d %%%d, %%%d", v, cmpMnemonic(pred), ty, lhs, rhs)
	return v
}

func (ib *irBuilder) Not(operand backend.Val) backend.Val {
	v := ib.val()
	ib.line("%%%d = xor i1 %%%d, true", v, operand)
	return v
}

func (ib *irBuilder) Neg(operand backend.Val, ty backend.TypeRef, trap string) backend.Val {
	v := ib.val()
	ib.line("%%%d = sub %%t%d 0, %%%d ; trap=%q", v, ty, operand, trap)
	return v
}

func (ib *irBuilder) Alloca(ty backend.TypeRef, name string) backend.Val {
	v := ib.val()
	ib.line("%%%d = alloca %%t%d ; %s", v, ty, name)
	return v
}

func (ib *irBuilder) Load(ptr backend.Val, ty backend.TypeRef) backend.Val {
	v := ib.val()
	ib.line("%%%d = load %%t%d, ptr %%%d", v, ty, ptr)
	return v
}

func (ib *irBuilder) Store(ptr, value backend.Val) {
	ib.line("store %%%d, ptr %%%d", value, ptr)
}

func (ib *irBuilder) GEP(base backend.Val, indices []backend.Val) backend.Val {
	v := ib.val()
	ib.line("%%%d = getelementptr ptr %%%d, %d indices", v, base, len(indices))
	return v
}

func (ib *irBuilder) Call(fn backend.FuncRef, args []backend.Val) backend.Val {
	v := ib.val()
	name := ""
	if int(fn) >= 1 && int(fn) <= len(ib.backend.funcs) {
		name = ib.backend.funcs[fn-1].name
	}
	ib.line("%%%d = call @%s(%d args)", v, name, len(args))
	return v
}

func (ib *irBuilder) CallIndirect(fnVal backend.Val, sig backend.TypeRef, args []backend.Val) backend.Val {
	v := ib.val()
	ib.line("%%%d = call %%t%d %%%d(%d args)", v, sig, fnVal, len(args))
	return v
}

func (ib *irBuilder) Phi(ty backend.TypeRef, incoming map[backend.Block]backend.Val) backend.Val {
	v := ib.val()
	ib.line("%%%d = phi %%t%d ; %d incoming", v, ty, len(incoming))
	return v
}

func (ib *irBuilder) Jump(target backend.Block) { ib.line("br label %%%d", target) }

func (ib *irBuilder) Branch(cond backend.Val, then, els backend.Block) {
	ib.line("br i1 %%%d, label %%%d, label %%%d", cond, then, els)
}

func (ib *irBuilder) Switch(v backend.Val, cases map[string]backend.Block, def backend.Block) {
	ib.line("switch %%%d, label %%%d [%d cases]", v, def, len(cases))
}

func (ib *irBuilder) Return(v backend.Val, hasValue bool) {
	if hasValue {
		ib.line("ret %%%d", v)
	} else {
		ib.line("ret void")
	}
}

func (ib *irBuilder) Unreachable() { ib.line("unreachable") }

func (ib *irBuilder) Trap(message string) {
	ib.line("call @panic(%q)", message)
}

func arithMnemonic(op backend.ArithOp) string {
	switch op {
	case backend.ArithAdd:
		return "add"
	case backend.ArithSub:
		return "sub"
	case backend.ArithMul:
		return "mul"
	case backend.ArithDiv:
		return "sdiv"
	case backend.ArithRem:
		return "srem"
	case backend.ArithShl:
		return "shl"
	case backend.ArithShr:
		return "ashr"
	case backend.ArithAnd:
		return "and"
	case backend.ArithOr:
		return "or"
	case backend.ArithXor:
		return "xor"
	default:
		return "add"
	}
}

func cmpMnemonic(pred backend.CmpPred) string {
	switch pred {
	case backend.CmpEq:
		return "eq"
	case backend.CmpNe:
		return "ne"
	case backend.CmpLt:
		return "slt"
	case backend.CmpLe:
		return "sle"
	case backend.CmpGt:
		return "sgt"
	case backend.CmpGe:
		return "sge"
	default:
		return "eq"
	}
}
