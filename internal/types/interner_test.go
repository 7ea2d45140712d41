package types_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

func TestBuiltinsAreStable(t *testing.T) {
	in := types.NewInterner()
	b1 := types.NewBuiltins(in)
	if b1.I32 == types.Invalid {
		t.Fatal("expected i32 to be a valid TypeID")
	}
	if b1.I32 == b1.U32 {
		t.Fatal("i32 and u32 must not collide")
	}
}

func TestPointerIdentityIsStructural(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)

	p1 := in.PointerTo(b.U8, true, false)
	p2 := in.PointerTo(b.U8, true, false)
	if p1 != p2 {
		t.Fatalf("got distinct IDs %d/%d for identical *const u8 descriptions", p1, p2)
	}

	p3 := in.PointerTo(b.U8, false, false)
	if p3 == p1 {
		t.Fatal("*u8 and *const u8 must not collide")
	}
}

func TestSliceAndArrayIdentity(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)

	s1 := in.SliceOf(b.I32, false)
	s2 := in.SliceOf(b.I32, false)
	if s1 != s2 {
		t.Fatal("[]i32 interned twice should share a TypeID")
	}

	a1 := in.ArrayOf(b.I32, 4)
	a2 := in.ArrayOf(b.I32, 4)
	if a1 != a2 {
		t.Fatal("[4]i32 interned twice should share a TypeID")
	}
	if a1 == s1 {
		t.Fatal("a fixed-length array must not collide with a slice of the same element")
	}
}

func TestNamedTypeDisambiguatesByDeclSeq(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	foo := names.Intern("Foo")

	outer := in.Named(foo, 1)
	shadowed := in.Named(foo, 2)
	if outer == shadowed {
		t.Fatal("two distinct declarations named Foo must not share a TypeID")
	}
	again := in.Named(foo, 1)
	if again != outer {
		t.Fatal("re-interning the same declaration must return the original TypeID")
	}
}

func TestErrorUnionInferredVsNamed(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	b := types.NewBuiltins(in)
	myErr := in.ErrorSetMember(names.Intern("MyError"))

	inferred := in.ErrorUnionOf(types.Invalid, b.I32)
	named := in.ErrorUnionOf(myErr, b.I32)
	if inferred == named {
		t.Fatal("!i32 and MyError!i32 must not collide")
	}
	if in.String(inferred, names) != "!i32" {
		t.Errorf("got %q, want !i32", in.String(inferred, names))
	}
	if in.String(named, names) != "error.MyError!i32" {
		t.Errorf("got %q, want error.MyError!i32", in.String(named, names))
	}
}

func TestFnTypeIdentity(t *testing.T) {
	in := types.NewInterner()
	b := types.NewBuiltins(in)

	f1 := in.FnType([]types.Param{{Type: b.I32}, {Type: b.I32, NoAlias: true}}, b.I32, source.NoName)
	f2 := in.FnType([]types.Param{{Type: b.I32}, {Type: b.I32, NoAlias: true}}, b.I32, source.NoName)
	if f1 != f2 {
		t.Fatal("identical function signatures must share a TypeID")
	}
	f3 := in.FnType([]types.Param{{Type: b.I32}, {Type: b.I32}}, b.I32, source.NoName)
	if f3 == f1 {
		t.Fatal("noalias must participate in function-type identity")
	}
}
