package vm

import (
	"math/big"

	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// FuncResolver looks up an already-checked function by its mir.FuncID, so a
// call instruction can recurse into it. internal/sema supplies one backed
// by the mir.Module it is building; a callee not yet checked (a forward
// reference) resolves to nil, which the evaluator reports as unimplemented
// rather than guessing.
type FuncResolver func(mir.FuncID) *mir.Func

// VM interprets mir.Func bodies for compile-time evaluation. One VM is
// shared across an entire top-level comptime evaluation (a call and
// everything it recursively calls), so the backward-branch quota is
// enforced against the whole call tree, matching spec.md §4.6's "fib(7)"
// recursion-quota scenario.
type VM struct {
	Types    *types.Interner
	Names    *source.Interner
	B        types.Builtins
	Quota    int
	Resolve  FuncResolver
	branches int
}

// New returns a VM ready to evaluate one comptime call tree. quota <= 0
// selects the language default of 1000 backward branches.
func New(typesIn *types.Interner, names *source.Interner, b types.Builtins, quota int, resolve FuncResolver) *VM {
	if quota <= 0 {
		quota = 1000
	}
	return &VM{Types: typesIn, Names: names, B: b, Quota: quota, Resolve: resolve}
}

// typeName renders a TypeID the way spec.md's scenario diagnostics expect
// ("u8", "i32"); falls back to the interner's own kind name if no name
// table was supplied.
func (vm *VM) typeName(ty types.TypeID) string {
	if vm.Names == nil {
		return vm.Types.Get(ty).Kind.String()
	}
	return vm.Types.String(ty, vm.Names)
}

// Eval interprets fn against args (bound positionally to its leading
// locals) and returns its return value.
func (vm *VM) Eval(fn *mir.Func, args []Value) (Value, *Error) {
	if fn == nil || fn.Extern {
		return Value{}, errorf(ErrUnimplemented, "cannot compile-time evaluate an extern function")
	}
	return vm.evalFrame(NewFrame(fn, args))
}

func (vm *VM) evalFrame(f *Frame) (Value, *Error) {
	bb := f.Func.Entry
	visited := make(map[mir.BlockID]bool)
	for {
		if visited[bb] {
			vm.branches++
			if vm.branches > vm.Quota {
				return Value{}, errorf(ErrQuotaExceeded,
					"evaluation exceeded %d backwards branches", vm.Quota)
			}
		}
		visited[bb] = true

		block := f.Func.Block(bb)
		for i := range block.Instr {
			if err := vm.execInstr(f, &block.Instr[i]); err != nil {
				return Value{}, err
			}
		}

		switch block.Term.Kind {
		case mir.TermJump:
			bb = block.Term.Target
		case mir.TermBranch:
			cond, err := vm.evalValue(f, block.Term.Cond)
			if err != nil {
				return Value{}, err
			}
			if cond.Bool {
				bb = block.Term.Then
			} else {
				bb = block.Term.Else
			}
		case mir.TermSwitch:
			next, err := vm.evalSwitch(f, &block.Term)
			if err != nil {
				return Value{}, err
			}
			bb = next
		case mir.TermReturn:
			if block.Term.HasValue {
				return vm.evalValue(f, block.Term.Value)
			}
			return Value{}, nil
		case mir.TermUnreachable:
			return Value{}, errorf(ErrUnreachable, "reached unreachable code during compile-time evaluation")
		default:
			return Value{}, errorf(ErrGeneric, "function has no terminator")
		}
	}
}

func (vm *VM) evalSwitch(f *Frame, t *mir.Terminator) (mir.BlockID, *Error) {
	cond, err := vm.evalValue(f, t.Cond)
	if err != nil {
		return mir.NoBlockID, err
	}
	for _, edge := range t.Edges {
		for _, c := range edge.Values {
			if constEqualsValue(c, cond) {
				return edge.Target, nil
			}
		}
	}
	if t.Default != mir.NoBlockID {
		return t.Default, nil
	}
	return mir.NoBlockID, errorf(ErrGeneric, "switch had no matching prong and no default")
}

func constEqualsValue(c mir.Const, v Value) bool {
	switch c.Kind {
	case mir.ConstInt:
		n, ok := new(big.Int).SetString(c.Int, 10)
		return ok && v.Kind == VInt && v.Int != nil && v.Int.Cmp(n) == 0
	case mir.ConstBool:
		return v.Kind == VBool && v.Bool == c.Bool
	default:
		return false
	}
}

func (vm *VM) execInstr(f *Frame, in *mir.Instr) *Error {
	switch in.Kind {
	case mir.InstrAssign:
		v, err := vm.evalValue(f, in.Assign.Src)
		if err != nil {
			return err
		}
		return vm.store(f, in.Assign.Dst, v)
	case mir.InstrBinOp:
		v, err := vm.evalBinOp(f, &in.BinOp)
		if err != nil {
			return err
		}
		f.set(in.Dst, v)
		return nil
	case mir.InstrUnOp:
		v, err := vm.evalUnOp(f, &in.UnOp)
		if err != nil {
			return err
		}
		f.set(in.Dst, v)
		return nil
	case mir.InstrConvert:
		v, err := vm.evalConvert(f, &in.Convert)
		if err != nil {
			return err
		}
		f.set(in.Dst, v)
		return nil
	case mir.InstrCall:
		v, err := vm.evalCall(f, &in.Call)
		if err != nil {
			return err
		}
		f.set(in.Dst, v)
		return nil
	case mir.InstrStructLit:
		v, err := vm.evalStructLit(f, &in.Struct)
		if err != nil {
			return err
		}
		f.set(in.Dst, v)
		return nil
	case mir.InstrArrayLit:
		v, err := vm.evalArrayLit(f, &in.Array)
		if err != nil {
			return err
		}
		f.set(in.Dst, v)
		return nil
	case mir.InstrAddrOf:
		return errorf(ErrUnimplemented, "taking the address of a value is not supported by the comptime evaluator")
	case mir.InstrNop:
		return nil
	default:
		return errorf(ErrUnimplemented, "instruction kind %d is not supported by the comptime evaluator", in.Kind)
	}
}

func (vm *VM) evalCall(f *Frame, call *mir.CallInstr) (Value, *Error) {
	if call.Callee.Kind != mir.CalleeDirect {
		return Value{}, errorf(ErrUnimplemented, "indirect calls are not supported by the comptime evaluator")
	}
	if vm.Resolve == nil {
		return Value{}, errorf(ErrUnimplemented, "no function resolver wired into the comptime evaluator")
	}
	callee := vm.Resolve(call.Callee.Func)
	if callee == nil {
		return Value{}, errorf(ErrUnimplemented, "callee is not available to the comptime evaluator (forward reference?)")
	}
	// Each call counts as one backward branch, so unbounded recursion trips
	// the quota the same way an unbounded loop does.
	vm.branches++
	if vm.branches > vm.Quota {
		return Value{}, errorf(ErrQuotaExceeded, "evaluation exceeded %d backwards branches", vm.Quota)
	}
	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := vm.evalValue(f, a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return vm.Eval(callee, args)
}

func (vm *VM) evalStructLit(f *Frame, lit *mir.StructLitInstr) (Value, *Error) {
	maxIdx := -1
	for _, fl := range lit.Fields {
		if fl.FieldIdx > maxIdx {
			maxIdx = fl.FieldIdx
		}
	}
	elems := make([]Value, maxIdx+1)
	for _, fl := range lit.Fields {
		v, err := vm.evalValue(f, fl.Value)
		if err != nil {
			return Value{}, err
		}
		elems[fl.FieldIdx] = v
	}
	return Value{Kind: VAggregate, Type: lit.Type, Elems: elems}, nil
}

func (vm *VM) evalArrayLit(f *Frame, lit *mir.ArrayLitInstr) (Value, *Error) {
	elems := make([]Value, len(lit.Elems))
	for i, e := range lit.Elems {
		v, err := vm.evalValue(f, e)
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return Value{Kind: VAggregate, Type: lit.Type, Elems: elems}, nil
}

// evalValue evaluates an operand: either a literal/folded Const or a Place
// to load from (a local plus zero or more projections).
func (vm *VM) evalValue(f *Frame, v mir.Value) (Value, *Error) {
	if v.Kind == mir.ValueConst {
		return vm.fromConst(v.Const)
	}
	return vm.load(f, v.Place)
}

func (vm *VM) fromConst(c mir.Const) (Value, *Error) {
	return FromConst(c)
}

// FromConst converts an already-folded mir.Const into a Value, the inverse
// of ToConst. Exported so internal/sema can hand a call's already-const
// arguments straight to Eval without going through a Frame.
func FromConst(c mir.Const) (Value, *Error) {
	switch c.Kind {
	case mir.ConstInt:
		n, ok := new(big.Int).SetString(c.Int, 10)
		if !ok {
			return Value{}, errorf(ErrGeneric, "malformed integer constant %q", c.Int)
		}
		return IntValue(c.Type, n), nil
	case mir.ConstFloat:
		return FloatValue(c.Type, c.Float), nil
	case mir.ConstBool:
		return BoolValue(c.Type, c.Bool), nil
	case mir.ConstString:
		return StringValue(c.Type, c.Str), nil
	case mir.ConstAggregate:
		elems := make([]Value, len(c.Elems))
		for i, e := range c.Elems {
			v, err := FromConst(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Value{Kind: VAggregate, Type: c.Type, Elems: elems}, nil
	default:
		return Value{}, errorf(ErrUnimplemented, "constant kind %d is not supported by the comptime evaluator", c.Kind)
	}
}

// ToConst folds a fully-evaluated Value back into mir's Const
// representation, the boundary where arbitrary-precision math/big.Int
// becomes the decimal string mir.Const.Int carries.
func ToConst(v Value) (mir.Const, bool) {
	switch v.Kind {
	case VInt:
		if v.Int == nil {
			return mir.Const{}, false
		}
		return mir.Const{Kind: mir.ConstInt, Type: v.Type, Int: v.Int.String()}, true
	case VFloat:
		return mir.Const{Kind: mir.ConstFloat, Type: v.Type, Float: v.Float}, true
	case VBool:
		return mir.Const{Kind: mir.ConstBool, Type: v.Type, Bool: v.Bool}, true
	case VString:
		return mir.Const{Kind: mir.ConstString, Type: v.Type, Str: v.Str}, true
	case VAggregate:
		elems := make([]mir.Const, len(v.Elems))
		for i, e := range v.Elems {
			c, ok := ToConst(e)
			if !ok {
				return mir.Const{}, false
			}
			elems[i] = c
		}
		return mir.Const{Kind: mir.ConstAggregate, Type: v.Type, Elems: elems}, true
	default:
		return mir.Const{}, false
	}
}

func (vm *VM) load(f *Frame, p mir.Place) (Value, *Error) {
	if p.Kind != mir.PlaceLocal {
		return Value{}, errorf(ErrUnimplemented, "globals are not supported by the comptime evaluator")
	}
	v := f.get(p.Local)
	for _, proj := range p.Proj {
		next, err := vm.applyProj(f, v, proj)
		if err != nil {
			return Value{}, err
		}
		v = next
	}
	return v, nil
}

func (vm *VM) applyProj(f *Frame, base Value, proj mir.PlaceProj) (Value, *Error) {
	switch proj.Kind {
	case mir.ProjField:
		if base.Kind != VAggregate || proj.FieldIdx >= len(base.Elems) {
			return Value{}, errorf(ErrGeneric, "field projection on a non-aggregate compile-time value")
		}
		return base.Elems[proj.FieldIdx], nil
	case mir.ProjIndex:
		idx, err := vm.evalValue(f, proj.Index)
		if err != nil {
			return Value{}, err
		}
		if base.Kind != VAggregate || idx.Int == nil || !idx.Int.IsInt64() {
			return Value{}, errorf(ErrGeneric, "index projection on a non-aggregate compile-time value")
		}
		i := idx.Int.Int64()
		if i < 0 || int(i) >= len(base.Elems) {
			return Value{}, errorf(ErrGeneric, "compile-time index out of bounds")
		}
		return base.Elems[i], nil
	default:
		return Value{}, errorf(ErrUnimplemented, "pointer dereference is not supported by the comptime evaluator")
	}
}

func (vm *VM) store(f *Frame, p mir.Place, v Value) *Error {
	if p.Kind != mir.PlaceLocal {
		return errorf(ErrUnimplemented, "globals are not supported by the comptime evaluator")
	}
	if len(p.Proj) == 0 {
		f.set(p.Local, v)
		return nil
	}
	root := f.get(p.Local)
	updated, err := storeProj(root, p.Proj, v)
	if err != nil {
		return err
	}
	f.set(p.Local, updated)
	return nil
}

// storeProj rebuilds the aggregate chain rooted at root with v written
// through proj, copy-on-write (compile-time Values have no shared mutable
// storage to alias).
func storeProj(root Value, proj []mir.PlaceProj, v Value) (Value, *Error) {
	if len(proj) == 0 {
		return v, nil
	}
	if root.Kind != VAggregate {
		return Value{}, errorf(ErrGeneric, "projection assignment on a non-aggregate compile-time value")
	}
	elems := append([]Value(nil), root.Elems...)
	switch proj[0].Kind {
	case mir.ProjField:
		idx := proj[0].FieldIdx
		if idx >= len(elems) {
			return Value{}, errorf(ErrGeneric, "field index out of range in compile-time assignment")
		}
		updated, err := storeProj(elems[idx], proj[1:], v)
		if err != nil {
			return Value{}, err
		}
		elems[idx] = updated
	default:
		return Value{}, errorf(ErrUnimplemented, "only field projections are supported in compile-time assignment targets")
	}
	root.Elems = elems
	return root, nil
}
