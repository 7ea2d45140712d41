package backend_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/backend"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

func strConst(ty types.TypeID, s string) mir.Value {
	return mir.Value{Kind: mir.ValueConst, Type: ty, Const: mir.Const{Kind: mir.ConstString, Type: ty, Str: s}}
}

// TestEmitModuleRecordsDirectCallOrder builds a two-function mir.Module
// directly (a "main" that calls "print" twice) and checks the in-memory
// Backend test double records the calls in source/CFG order with their
// string arguments intact.
func TestEmitModuleRecordsDirectCallOrder(t *testing.T) {
	names := source.NewInterner()
	in := types.NewInterner()
	b := types.NewBuiltins(in)

	printName := names.Intern("print")
	mainName := names.Intern("main")
	strTy := in.SliceOf(b.U8, true)

	m := &mir.Module{
		Funcs: []mir.Func{
			{Name: printName, Type: in.FnType([]types.Param{{Type: strTy}}, b.Void, 0), Extern: true},
			{
				Name: mainName,
				Type: in.FnType(nil, b.Void, 0),
				Entry: 0,
				Blocks: []mir.BasicBlock{
					{
						ID: 0,
						Instr: []mir.Instr{
							{Kind: mir.InstrCall, Dst: mir.NoLocalID, Call: mir.CallInstr{
								Callee: mir.Callee{Kind: mir.CalleeDirect, Func: 0},
								Args:   []mir.Value{strConst(strTy, "before\n")},
								Type:   b.Void,
							}},
							{Kind: mir.InstrCall, Dst: mir.NoLocalID, Call: mir.CallInstr{
								Callee: mir.Callee{Kind: mir.CalleeDirect, Func: 0},
								Args:   []mir.Value{strConst(strTy, "after\n")},
								Type:   b.Void,
							}},
						},
						Term: mir.Terminator{Kind: mir.TermReturn},
					},
				},
			},
		},
	}

	mem := backend.NewMemModule()
	if err := backend.EmitModule(mem, m, names, in); err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}

	if len(mem.Calls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d: %+v", len(mem.Calls), mem.Calls)
	}
	if mem.Calls[0].Callee != "print" || len(mem.Calls[0].Args) != 1 || mem.Calls[0].Args[0] != "before\n" {
		t.Fatalf("unexpected first call: %+v", mem.Calls[0])
	}
	if mem.Calls[1].Callee != "print" || len(mem.Calls[1].Args) != 1 || mem.Calls[1].Args[0] != "after\n" {
		t.Fatalf("unexpected second call: %+v", mem.Calls[1])
	}
}

func TestFromTypeIDMapsPrimitives(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)
	mem := backend.NewMemModule()

	if ref := backend.FromTypeID(mem, in, b.I32); ref == backend.NoTypeRef {
		t.Fatalf("expected a valid TypeRef for i32")
	}
	if ref := backend.FromTypeID(mem, in, types.Invalid); ref != backend.NoTypeRef {
		t.Fatalf("expected NoTypeRef for an invalid TypeID, got %v", ref)
	}
}
