package vm

import (
	"math/big"

	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/types"
)

func (vm *VM) widthOf(ty types.TypeID) (width uint8, signed bool) {
	t := vm.Types.Get(ty)
	return t.Width, t.Signed
}

func (vm *VM) evalBinOp(f *Frame, b *mir.BinOpInstr) (Value, *Error) {
	lhs, err := vm.evalValue(f, b.Lhs)
	if err != nil {
		return Value{}, err
	}
	rhs, err := vm.evalValue(f, b.Rhs)
	if err != nil {
		return Value{}, err
	}

	if lhs.Kind == VBool || rhs.Kind == VBool {
		return vm.evalBoolOp(b.Op, lhs, rhs, b.Type)
	}
	if lhs.Kind == VFloat || rhs.Kind == VFloat {
		return vm.evalFloatOp(b.Op, lhs, rhs, b.Type)
	}
	return vm.evalIntOp(b, lhs, rhs)
}

func (vm *VM) evalBoolOp(op mir.BinOp, lhs, rhs Value, ty types.TypeID) (Value, *Error) {
	switch op {
	case mir.OpEq:
		return BoolValue(ty, lhs.Bool == rhs.Bool), nil
	case mir.OpNe:
		return BoolValue(ty, lhs.Bool != rhs.Bool), nil
	default:
		return Value{}, errorf(ErrUnimplemented, "operator not supported on bool operands in the comptime evaluator")
	}
}

func (vm *VM) evalFloatOp(op mir.BinOp, lhs, rhs Value, ty types.TypeID) (Value, *Error) {
	a, b := lhs.Float, rhs.Float
	switch op {
	case mir.OpAdd:
		return FloatValue(ty, a+b), nil
	case mir.OpSub:
		return FloatValue(ty, a-b), nil
	case mir.OpMul:
		return FloatValue(ty, a*b), nil
	case mir.OpDiv:
		return FloatValue(ty, a/b), nil
	case mir.OpEq:
		return BoolValue(vm.B.Bool, a == b), nil
	case mir.OpNe:
		return BoolValue(vm.B.Bool, a != b), nil
	case mir.OpLt:
		return BoolValue(vm.B.Bool, a < b), nil
	case mir.OpLe:
		return BoolValue(vm.B.Bool, a <= b), nil
	case mir.OpGt:
		return BoolValue(vm.B.Bool, a > b), nil
	case mir.OpGe:
		return BoolValue(vm.B.Bool, a >= b), nil
	default:
		return Value{}, errorf(ErrUnimplemented, "operator not supported on float operands in the comptime evaluator")
	}
}

func (vm *VM) evalIntOp(b *mir.BinOpInstr, lhs, rhs Value) (Value, *Error) {
	width, signed := vm.widthOf(b.Type)
	a, c := lhs.Int, rhs.Int
	if a == nil || c == nil {
		return Value{}, errorf(ErrGeneric, "non-integer operand to an integer operator")
	}

	switch b.Op {
	case mir.OpAdd, mir.OpSub, mir.OpMul:
		var r *big.Int
		var ok bool
		switch b.Op {
		case mir.OpAdd:
			r, ok = addChecked(a, c, width, signed)
		case mir.OpSub:
			r, ok = subChecked(a, c, width, signed)
		case mir.OpMul:
			r, ok = mulChecked(a, c, width, signed)
		}
		if !ok {
			if b.Wraps {
				return IntValue(b.Type, wrapToWidth(r, width, signed)), nil
			}
			return Value{}, errorf(ErrOverflow, "operation overflows '%s'", vm.typeName(b.Type))
		}
		return IntValue(b.Type, r), nil
	case mir.OpDiv:
		if c.Sign() == 0 {
			return Value{}, errorf(ErrDivByZero, "division by zero is undefined")
		}
		q := new(big.Int).Quo(a, c)
		return IntValue(b.Type, q), nil
	case mir.OpRem:
		if c.Sign() == 0 {
			return Value{}, errorf(ErrDivByZero, "division by zero is undefined")
		}
		r := new(big.Int).Rem(a, c)
		return IntValue(b.Type, r), nil
	case mir.OpShl, mir.OpShr:
		if !c.IsInt64() || c.Sign() < 0 || (width != 0 && c.Int64() >= int64(width)) {
			return Value{}, errorf(ErrShiftOverflow, "shift amount does not fit in the operand width")
		}
		shift := uint(c.Int64())
		var r *big.Int
		if b.Op == mir.OpShl {
			r = new(big.Int).Lsh(a, shift)
		} else {
			r = new(big.Int).Rsh(a, shift)
		}
		if b.Op == mir.OpShl && !fitsWidth(r, width, signed) {
			if b.Wraps {
				return IntValue(b.Type, wrapToWidth(r, width, signed)), nil
			}
			return Value{}, errorf(ErrOverflow, "shift overflows '%s'", vm.typeName(b.Type))
		}
		return IntValue(b.Type, r), nil
	case mir.OpBitAnd:
		return IntValue(b.Type, new(big.Int).And(a, c)), nil
	case mir.OpBitOr:
		return IntValue(b.Type, new(big.Int).Or(a, c)), nil
	case mir.OpBitXor:
		return IntValue(b.Type, new(big.Int).Xor(a, c)), nil
	case mir.OpEq:
		return BoolValue(vm.B.Bool, a.Cmp(c) == 0), nil
	case mir.OpNe:
		return BoolValue(vm.B.Bool, a.Cmp(c) != 0), nil
	case mir.OpLt:
		return BoolValue(vm.B.Bool, a.Cmp(c) < 0), nil
	case mir.OpLe:
		return BoolValue(vm.B.Bool, a.Cmp(c) <= 0), nil
	case mir.OpGt:
		return BoolValue(vm.B.Bool, a.Cmp(c) > 0), nil
	case mir.OpGe:
		return BoolValue(vm.B.Bool, a.Cmp(c) >= 0), nil
	default:
		return Value{}, errorf(ErrUnimplemented, "operator not supported on integer operands in the comptime evaluator")
	}
}

func (vm *VM) evalUnOp(f *Frame, u *mir.UnOpInstr) (Value, *Error) {
	v, err := vm.evalValue(f, u.Operand)
	if err != nil {
		return Value{}, err
	}
	switch u.Op {
	case mir.UnNeg:
		if v.Kind == VFloat {
			return FloatValue(u.Type, -v.Float), nil
		}
		width, signed := vm.widthOf(u.Type)
		r := new(big.Int).Neg(v.Int)
		if !fitsWidth(r, width, signed) {
			return Value{}, errorf(ErrOverflow, "negation overflows '%s'", vm.typeName(u.Type))
		}
		return IntValue(u.Type, r), nil
	case mir.UnNot:
		return BoolValue(u.Type, !v.Bool), nil
	case mir.UnBitNot:
		width, _ := vm.widthOf(u.Type)
		r := new(big.Int).Not(v.Int)
		return IntValue(u.Type, wrapToWidth(r, width, false)), nil
	default:
		return Value{}, errorf(ErrUnimplemented, "unary operator not supported by the comptime evaluator")
	}
}

func (vm *VM) evalConvert(f *Frame, c *mir.ConvertInstr) (Value, *Error) {
	v, err := vm.evalValue(f, c.Src)
	if err != nil {
		return Value{}, err
	}
	to := vm.Types.Get(c.To)
	switch {
	case v.Kind == VInt && to.Kind == types.KindFloat:
		fv, _ := new(big.Float).SetInt(v.Int).Float64()
		return FloatValue(c.To, fv), nil
	case v.Kind == VFloat && (to.Kind == types.KindInt || to.Kind == types.KindComptimeInt):
		bi, _ := big.NewFloat(v.Float).Int(nil)
		return IntValue(c.To, bi), nil
	case v.Kind == VInt:
		width, signed := to.Width, to.Signed
		if !fitsWidth(v.Int, width, signed) {
			if c.Trap == mir.TrapNone {
				return IntValue(c.To, wrapToWidth(v.Int, width, signed)), nil
			}
			return Value{}, errorf(ErrOverflow, "integer value %s cannot be implicitly casted to type '%s'", v.Int.String(), vm.typeName(c.To))
		}
		return IntValue(c.To, v.Int), nil
	default:
		v.Type = c.To
		return v, nil
	}
}
