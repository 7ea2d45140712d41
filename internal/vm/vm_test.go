package vm_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/types"
	"github.com/thresh-lang/threshc/internal/vm"
)

func lit(ty types.TypeID, n string) mir.Value {
	return mir.Value{Kind: mir.ValueConst, Type: ty, Const: mir.Const{Kind: mir.ConstInt, Type: ty, Int: n}}
}

func localVal(id mir.LocalID, ty types.TypeID) mir.Value {
	return mir.Value{Kind: mir.ValuePlace, Type: ty, Place: mir.Place{Kind: mir.PlaceLocal, Local: id, Type: ty}}
}

// TestEvalStraightLineAdd builds a single-block function "return 2 + 3"
// directly in mir and checks the evaluator folds it to 5.
func TestEvalStraightLineAdd(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)
	fn := &mir.Func{
		Type: in.FnType(nil, b.I32, 0),
		Locals: []mir.Local{
			{Type: b.I32},
		},
		Entry: 0,
		Blocks: []mir.BasicBlock{
			{
				ID: 0,
				Instr: []mir.Instr{
					{Kind: mir.InstrBinOp, Dst: 0, BinOp: mir.BinOpInstr{
						Op: mir.OpAdd, Type: b.I32, Trap: mir.TrapOverflow,
						Lhs: lit(b.I32, "2"), Rhs: lit(b.I32, "3"),
					}},
				},
				Term: mir.Terminator{Kind: mir.TermReturn, HasValue: true, Value: localVal(0, b.I32)},
			},
		},
	}

	m := vm.New(in, nil, b, 0, nil)
	result, err := m.Eval(fn, nil)
	if err != nil {
		t.Fatalf("unexpected eval error: %v", err)
	}
	if result.Int == nil || result.Int.String() != "5" {
		t.Fatalf("expected 5, got %v", result.Int)
	}
}

// TestEvalOverflowingAddTraps checks that a non-wrapping add whose result
// doesn't fit the destination width fails with ErrOverflow rather than
// silently wrapping.
func TestEvalOverflowingAddTraps(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)
	fn := &mir.Func{
		Type:   in.FnType(nil, b.U8, 0),
		Locals: []mir.Local{{Type: b.U8}},
		Entry:  0,
		Blocks: []mir.BasicBlock{
			{
				ID: 0,
				Instr: []mir.Instr{
					{Kind: mir.InstrBinOp, Dst: 0, BinOp: mir.BinOpInstr{
						Op: mir.OpAdd, Type: b.U8, Trap: mir.TrapOverflow,
						Lhs: lit(b.U8, "250"), Rhs: lit(b.U8, "10"),
					}},
				},
				Term: mir.Terminator{Kind: mir.TermReturn, HasValue: true, Value: localVal(0, b.U8)},
			},
		},
	}

	m := vm.New(in, nil, b, 0, nil)
	_, err := m.Eval(fn, nil)
	if err == nil {
		t.Fatalf("expected an overflow error")
	}
	if err.Kind != vm.ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v: %s", err.Kind, err.Message)
	}
}

// TestEvalDivByZeroReportsUndefined matches spec.md's compile-time
// division-by-zero scenario text exactly.
func TestEvalDivByZeroReportsUndefined(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)
	fn := &mir.Func{
		Type:   in.FnType(nil, b.I32, 0),
		Locals: []mir.Local{{Type: b.I32}},
		Entry:  0,
		Blocks: []mir.BasicBlock{
			{
				ID: 0,
				Instr: []mir.Instr{
					{Kind: mir.InstrBinOp, Dst: 0, BinOp: mir.BinOpInstr{
						Op: mir.OpDiv, Type: b.I32, Trap: mir.TrapDivByZero,
						Lhs: lit(b.I32, "1"), Rhs: lit(b.I32, "0"),
					}},
				},
				Term: mir.Terminator{Kind: mir.TermReturn, HasValue: true, Value: localVal(0, b.I32)},
			},
		},
	}

	m := vm.New(in, nil, b, 0, nil)
	_, err := m.Eval(fn, nil)
	if err == nil || err.Kind != vm.ErrDivByZero {
		t.Fatalf("expected ErrDivByZero, got %v", err)
	}
	if err.Message != "division by zero is undefined" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

// TestEvalBackwardBranchQuotaExceeded builds a single-block function that
// jumps to itself forever and checks the evaluator aborts once it crosses
// a small quota instead of looping.
func TestEvalBackwardBranchQuotaExceeded(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)
	fn := &mir.Func{
		Type:  in.FnType(nil, b.Void, 0),
		Entry: 0,
		Blocks: []mir.BasicBlock{
			{ID: 0, Term: mir.Terminator{Kind: mir.TermJump, Target: 0}},
		},
	}

	m := vm.New(in, nil, b, 5, nil)
	_, err := m.Eval(fn, nil)
	if err == nil || err.Kind != vm.ErrQuotaExceeded {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

// TestEvalWrappingAddDoesNotTrap checks that Wraps-marked arithmetic
// silently reduces modulo the destination width instead of erroring.
func TestEvalWrappingAddDoesNotTrap(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)
	fn := &mir.Func{
		Type:   in.FnType(nil, b.U8, 0),
		Locals: []mir.Local{{Type: b.U8}},
		Entry:  0,
		Blocks: []mir.BasicBlock{
			{
				ID: 0,
				Instr: []mir.Instr{
					{Kind: mir.InstrBinOp, Dst: 0, BinOp: mir.BinOpInstr{
						Op: mir.OpAdd, Type: b.U8, Wraps: true,
						Lhs: lit(b.U8, "250"), Rhs: lit(b.U8, "10"),
					}},
				},
				Term: mir.Terminator{Kind: mir.TermReturn, HasValue: true, Value: localVal(0, b.U8)},
			},
		},
	}

	m := vm.New(in, nil, b, 0, nil)
	result, err := m.Eval(fn, nil)
	if err != nil {
		t.Fatalf("unexpected eval error: %v", err)
	}
	if result.Int.String() != "4" {
		t.Fatalf("expected wraparound to 4, got %v", result.Int)
	}
}
