package mono_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/mono"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

func TestRecordDeduplicatesIdenticalArgVectors(t *testing.T) {
	names := source.NewInterner()
	typesIn := types.NewInterner()
	b := types.NewBuiltins(typesIn)
	r := mono.NewRecorder(typesIn)

	fn := names.Intern("identity")
	args := []types.InstArg{{Kind: types.InstArgType, Type: b.I32}}

	id1, isNew1 := r.Record(fn, 0, args, mono.UseSite{Caller: names.Intern("main")})
	id2, isNew2 := r.Record(fn, 0, args, mono.UseSite{Caller: names.Intern("other")})

	if id1 != id2 {
		t.Fatalf("expected identical argument vectors to fold to the same instantiation, got %v and %v", id1, id2)
	}
	if !isNew1 {
		t.Fatalf("expected the first Record to report a new entry")
	}
	if isNew2 {
		t.Fatalf("expected the second Record to report an existing entry")
	}
	if r.Len() != 1 {
		t.Fatalf("expected exactly one distinct instantiation, got %d", r.Len())
	}
	entry, ok := r.Entry(id1)
	if !ok || len(entry.Sites) != 2 {
		t.Fatalf("expected both call sites recorded against the shared entry, got %+v", entry)
	}
}

func TestRecordDistinguishesArgVectors(t *testing.T) {
	names := source.NewInterner()
	typesIn := types.NewInterner()
	b := types.NewBuiltins(typesIn)
	r := mono.NewRecorder(typesIn)

	fn := names.Intern("identity")
	id1, _ := r.Record(fn, 0, []types.InstArg{{Kind: types.InstArgType, Type: b.I32}}, mono.UseSite{})
	id2, _ := r.Record(fn, 0, []types.InstArg{{Kind: types.InstArgType, Type: b.U8}}, mono.UseSite{})

	if id1 == id2 {
		t.Fatalf("expected different type arguments to produce distinct instantiations")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 distinct instantiations, got %d", r.Len())
	}
}

func TestDrainReturnsOnlyNewSinceLastDrain(t *testing.T) {
	names := source.NewInterner()
	typesIn := types.NewInterner()
	b := types.NewBuiltins(typesIn)
	r := mono.NewRecorder(typesIn)

	fn := names.Intern("identity")
	r.Record(fn, 0, []types.InstArg{{Kind: types.InstArgType, Type: b.I32}}, mono.UseSite{})
	if got := len(r.Drain()); got != 1 {
		t.Fatalf("expected 1 pending entry, got %d", got)
	}
	if got := len(r.Drain()); got != 0 {
		t.Fatalf("expected an empty drain immediately after, got %d", got)
	}
	r.Record(fn, 0, []types.InstArg{{Kind: types.InstArgType, Type: b.U8}}, mono.UseSite{})
	if got := len(r.Drain()); got != 1 {
		t.Fatalf("expected 1 newly pending entry after a second distinct Record, got %d", got)
	}
}

func TestUnreachableDropsInstantiationsWithNoLiveCaller(t *testing.T) {
	names := source.NewInterner()
	typesIn := types.NewInterner()
	b := types.NewBuiltins(typesIn)
	r := mono.NewRecorder(typesIn)

	mainName := names.Intern("main")
	liveFn := names.Intern("used")
	deadFn := names.Intern("unused")

	liveID, _ := r.Record(liveFn, 0, []types.InstArg{{Kind: types.InstArgType, Type: b.I32}},
		mono.UseSite{Caller: mainName})
	deadID, _ := r.Record(deadFn, 0, []types.InstArg{{Kind: types.InstArgType, Type: b.I32}},
		mono.UseSite{Caller: names.Intern("dead_helper")})

	isRoot := func(n source.Name) bool { return n == mainName }
	reachable := r.Reachable(isRoot)
	if !reachable[liveID] {
		t.Fatalf("expected the instantiation called from main to be reachable")
	}
	if reachable[deadID] {
		t.Fatalf("expected the instantiation with no live caller to be unreachable")
	}

	dead := r.Unreachable(isRoot)
	if len(dead) != 1 || dead[0].ID != deadID {
		t.Fatalf("expected exactly the dead instantiation to be reported, got %+v", dead)
	}
}

func TestIsGenericDetectsComptimeParam(t *testing.T) {
	names := source.NewInterner()
	notGeneric := []ast.FnParam{{Name: names.Intern("x")}}
	if mono.IsGeneric(notGeneric) {
		t.Fatalf("expected an ordinary parameter list to not be generic")
	}
	generic := []ast.FnParam{{Name: names.Intern("T"), Comptime: true}}
	if !mono.IsGeneric(generic) {
		t.Fatalf("expected a comptime parameter to mark the function generic")
	}
}
