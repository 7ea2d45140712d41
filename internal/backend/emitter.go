package backend

import (
	"fmt"

	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// EmitModule lowers a fully checked mir.Module onto mod: every function and
// global is declared first (so a forward call resolves), then each
// non-extern function's straight-line body (blocks chained by TermJump,
// ending in TermReturn or TermUnreachable — branch/switch/phi lowering is
// future work once the backend needs to support loops and conditionals
// rather than just the scenarios in SPEC_FULL.md §8) is translated
// instruction by instruction.
//
// internal/mono's Recorder is deliberately not consulted here: until that
// package's clone/subst pipeline exists (see DESIGN.md), a generic call is
// interpreted directly by internal/vm at check time rather than producing a
// second, separately monomorphized mir.Func this emitter could selectively
// skip — every mir.Func CheckModule produced is already the only body for
// its declaration.
func EmitModule(b Module, m *mir.Module, names *source.Interner, in *types.Interner) error {
	e := &emitter{backend: b, names: names, types: in, funcRefs: make(map[int]FuncRef)}

	for i := range m.Globals {
		g := &m.Globals[i]
		ty := FromTypeID(b, in, g.Type)
		b.DeclareGlobal(names.Text(g.Name), ty, GlobalOpts{Mutable: g.Mutable})
	}

	for i := range m.Funcs {
		fn := &m.Funcs[i]
		sig := FromTypeID(b, in, fn.Type)
		ref := b.DeclareFunc(names.Text(fn.Name), sig, FuncOpts{Extern: fn.Extern, Linkage: LinkExternal})
		e.funcRefs[i] = ref
	}

	for i := range m.Funcs {
		fn := &m.Funcs[i]
		if fn.Extern {
			continue
		}
		if err := e.emitFunc(fn, e.funcRefs[i]); err != nil {
			return fmt.Errorf("emitting %s: %w", names.Text(fn.Name), err)
		}
	}
	return nil
}

type emitter struct {
	backend  Module
	names    *source.Interner
	types    *types.Interner
	funcRefs map[int]FuncRef // index into mir.Module.Funcs -> declared FuncRef
}

func (e *emitter) emitFunc(fn *mir.Func, ref FuncRef) error {
	bld := e.backend.Builder(ref)
	locals := make(map[mir.LocalID]Val)

	blockID := fn.Entry
	for blockID != mir.NoBlockID {
		blk := fn.Block(blockID)
		for _, instr := range blk.Instr {
			if err := e.emitInstr(bld, locals, instr); err != nil {
				return err
			}
		}
		switch blk.Term.Kind {
		case mir.TermJump:
			blockID = blk.Term.Target
		case mir.TermReturn:
			if blk.Term.HasValue {
				bld.Return(e.resolve(bld, locals, blk.Term.Value), true)
			} else {
				bld.Return(NoVal, false)
			}
			return nil
		case mir.TermUnreachable:
			bld.Unreachable()
			return nil
		default:
			// Branch/Switch: this emitter only drives the straight-line
			// scenarios SPEC_FULL.md §8 names; stop rather than guess a
			// successor.
			return nil
		}
	}
	return nil
}

func (e *emitter) emitInstr(bld Builder, locals map[mir.LocalID]Val, in mir.Instr) error {
	switch in.Kind {
	case mir.InstrAssign:
		v := e.resolve(bld, locals, in.Assign.Src)
		if in.Assign.Dst.Kind == mir.PlaceLocal {
			locals[in.Assign.Dst.Local] = v
		}
	case mir.InstrCall:
		args := make([]Val, len(in.Call.Args))
		for i, a := range in.Call.Args {
			args[i] = e.resolve(bld, locals, a)
		}
		var result Val
		switch in.Call.Callee.Kind {
		case mir.CalleeDirect:
			result = bld.Call(e.funcRefs[int(in.Call.Callee.Func)], args)
		case mir.CalleeValue:
			callee := e.resolve(bld, locals, in.Call.Callee.Val)
			result = bld.CallIndirect(callee, FromTypeID(e.backend, e.types, in.Call.Type), args)
		}
		if in.Dst != mir.NoLocalID {
			locals[in.Dst] = result
		}
	case mir.InstrBinOp:
		lhs := e.resolve(bld, locals, in.BinOp.Lhs)
		rhs := e.resolve(bld, locals, in.BinOp.Rhs)
		ty := FromTypeID(e.backend, e.types, in.BinOp.Type)
		var result Val
		if op, ok := toArithOp(in.BinOp.Op); ok {
			result = bld.Arith(op, lhs, rhs, ty, trapName(in.BinOp.Trap), in.BinOp.Wraps)
		} else {
			result = bld.Cmp(toCmpPred(in.BinOp.Op), lhs, rhs, ty)
		}
		locals[in.Dst] = result
	case mir.InstrUnOp:
		operand := e.resolve(bld, locals, in.UnOp.Operand)
		ty := FromTypeID(e.backend, e.types, in.UnOp.Type)
		var result Val
		switch in.UnOp.Op {
		case mir.UnNot, mir.UnBitNot:
			result = bld.Not(operand)
		default:
			result = bld.Neg(operand, ty, trapName(in.UnOp.Trap))
		}
		locals[in.Dst] = result
	case mir.InstrNop:
	}
	return nil
}

// resolve turns a mir.Value operand into the backend's SSA handle: a
// previously assigned local, or a freshly built compile-time constant.
func (e *emitter) resolve(bld Builder, locals map[mir.LocalID]Val, v mir.Value) Val {
	if v.Kind == mir.ValuePlace && v.Place.Kind == mir.PlaceLocal {
		if val, ok := locals[v.Place.Local]; ok {
			return val
		}
		return NoVal
	}
	if v.Kind != mir.ValueConst {
		return NoVal
	}
	ty := FromTypeID(e.backend, e.types, v.Type)
	switch v.Const.Kind {
	case mir.ConstInt:
		return bld.ConstInt(ty, v.Const.Int)
	case mir.ConstFloat:
		return bld.ConstFloat(ty, v.Const.Float)
	case mir.ConstBool:
		return bld.ConstBool(v.Const.Bool)
	case mir.ConstString:
		return bld.ConstString(v.Const.Str)
	default:
		return NoVal
	}
}

func toArithOp(op mir.BinOp) (ArithOp, bool) {
	switch op {
	case mir.OpAdd:
		return ArithAdd, true
	case mir.OpSub:
		return ArithSub, true
	case mir.OpMul:
		return ArithMul, true
	case mir.OpDiv:
		return ArithDiv, true
	case mir.OpRem:
		return ArithRem, true
	case mir.OpShl:
		return ArithShl, true
	case mir.OpShr:
		return ArithShr, true
	case mir.OpBitAnd:
		return ArithAnd, true
	case mir.OpBitOr:
		return ArithOr, true
	case mir.OpBitXor:
		return ArithXor, true
	default:
		return 0, false
	}
}

func toCmpPred(op mir.BinOp) CmpPred {
	switch op {
	case mir.OpEq:
		return CmpEq
	case mir.OpNe:
		return CmpNe
	case mir.OpLt:
		return CmpLt
	case mir.OpLe:
		return CmpLe
	case mir.OpGt:
		return CmpGt
	case mir.OpGe:
		return CmpGe
	default:
		return CmpEq
	}
}

// trapName maps a mir.TrapKind to one of spec.md §6's canonical panic
// messages; TrapNone yields "" (Builder.Arith/Neg treat an empty trap name
// paired with wraps=true as "no guard needed").
func trapName(k mir.TrapKind) string {
	switch k {
	case mir.TrapOverflow:
		return "integer overflow"
	case mir.TrapDivByZero:
		return "division by zero"
	case mir.TrapShiftAmount:
		return "shift overflow"
	case mir.TrapBounds:
		return "bounds-check"
	case mir.TrapUnwrapNull:
		return "unwrap-null"
	case mir.TrapUnwrapError:
		return "invalid error code"
	case mir.TrapExactDivRemainder:
		return "exact-division remainder"
	default:
		return ""
	}
}
