package llvm_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thresh-lang/threshc/internal/backend"
	"github.com/thresh-lang/threshc/internal/backend/llvm"
)

func TestEmitWritesDeclaredFunctionsAndGlobals(t *testing.T) {
	b := llvm.New("test_module")
	i32 := b.DeclareIntType(32, true)
	fnTy := b.DeclareFuncType(nil, i32)
	b.DeclareGlobal("counter", i32, backend.GlobalOpts{Mutable: true})
	fn := b.DeclareFunc("answer", fnTy, backend.FuncOpts{})

	bld := b.Builder(fn)
	v := bld.ConstInt(i32, "42")
	bld.Return(v, true)

	out := filepath.Join(t.TempDir(), "out.ll")
	if err := b.Emit(out); err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	text := string(data)
	for _, want := range []string{"@counter", "define", "@answer", "ret %"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected emitted IR to contain %q, got:\n%s", want, text)
		}
	}
}

func TestEmitDeclaresExternFunctionsWithoutABody(t *testing.T) {
	b := llvm.New("test_module")
	voidTy := b.DeclareIntType(0, false)
	fnTy := b.DeclareFuncType(nil, voidTy)
	b.DeclareFunc("print", fnTy, backend.FuncOpts{Extern: true})

	out := filepath.Join(t.TempDir(), "out.ll")
	if err := b.Emit(out); err != nil {
		t.Fatalf("unexpected emit error: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "declare") {
		t.Fatalf("expected an extern function to render as a declare, got:\n%s", data)
	}
}

func TestTargetDataReportsPointerWidth(t *testing.T) {
	b := llvm.New("test_module")
	td := b.TargetData()
	if td.PointerBits != 64 {
		t.Fatalf("expected a 64-bit pointer width, got %d", td.PointerBits)
	}
}
