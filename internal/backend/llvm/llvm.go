// Package llvm is internal/backend.Module's LLVM implementation. An actual
// LLVM binding (the cgo wrapper around LLVM-C, or an execution engine) is an
// external collaborator this exercise doesn't have access to, so this is
// the stub SPEC_FULL.md §6 explicitly allows: it renders a textual .ll
// module good enough to inspect, rather than driving a real LLVMModuleRef
// and emitting a linkable object. `cmd/threshc` wires it in as the default
// Backend whenever no other one is configured; internal/driver's tests use
// `internal/backend.MemModule` instead, since they assert on call order
// rather than on generated IR text.
package llvm

import (
	"fmt"
	"os"
	"strings"

	"github.com/thresh-lang/threshc/internal/backend"
)

// Backend is the textual-IR stub. It satisfies backend.Module; every
// DeclareX call appends to an in-memory buffer rather than calling into a
// real LLVM context.
type Backend struct {
	moduleName string
	types      []string
	globals    []string
	funcs      []declaredFunc
	typeCount  int
}

type declaredFunc struct {
	ref  backend.FuncRef
	name string
	sig  backend.TypeRef
	opts backend.FuncOpts
	body strings.Builder
}

// New returns a fresh textual-IR Backend for one compilation unit.
func New(moduleName string) *Backend {
	return &Backend{moduleName: moduleName}
}

func (b *Backend) nextType(desc string) backend.TypeRef {
	b.typeCount++
	b.types = append(b.types, fmt.Sprintf("%%t%d = type %s", b.typeCount, desc))
	return backend.TypeRef(b.typeCount)
}

func (b *Backend) DeclareIntType(width uint8, signed bool) backend.TypeRef {
	return b.nextType(fmt.Sprintf("i%d", width))
}

func (b *Backend) DeclareFloatType(width uint8) backend.TypeRef {
	kind := "double"
	if width <= 32 {
		kind = "float"
	}
	return b.nextType(kind)
}

func (b *Backend) DeclarePointerType(elem backend.TypeRef) backend.TypeRef {
	return b.nextType(fmt.Sprintf("ptr ; elem=%%t%d", elem))
}

func (b *Backend) DeclareStructType(name string, fields []backend.TypeRef) backend.TypeRef {
	return b.nextType(fmt.Sprintf("{ ... } ; %s, %d fields", name, len(fields)))
}

func (b *Backend) DeclareArrayType(elem backend.TypeRef, length uint64) backend.TypeRef {
	return b.nextType(fmt.Sprintf("[%d x %%t%d]", length, elem))
}

func (b *Backend) DeclareFuncType(params []backend.TypeRef, ret backend.TypeRef) backend.TypeRef {
	return b.nextType(fmt.Sprintf("func(%d params) -> %%t%d", len(params), ret))
}

func (b *Backend) DeclareGlobal(name string, ty backend.TypeRef, opts backend.GlobalOpts) backend.GlobalRef {
	kind := "constant"
	if opts.Mutable {
		kind = "global"
	}
	b.globals = append(b.globals, fmt.Sprintf("@%s = %s %%t%d", name, kind, ty))
	return backend.GlobalRef(len(b.globals))
}

func (b *Backend) DeclareFunc(name string, sig backend.TypeRef, opts backend.FuncOpts) backend.FuncRef {
	ref := backend.FuncRef(len(b.funcs) + 1)
	b.funcs = append(b.funcs, declaredFunc{ref: ref, name: name, sig: sig, opts: opts})
	return ref
}

func (b *Backend) Builder(fn backend.FuncRef) backend.Builder {
	return &irBuilder{backend: b, fn: fn}
}

func (b *Backend) DebugInfo() backend.DebugInfo { return debugInfo{} }

func (b *Backend) TargetData() backend.TargetData {
	return backend.TargetData{PointerBits: 64, LittleEndian: true}
}

// Emit renders the accumulated declarations as textual LLVM IR to path.
// There is no real codegen behind it: it writes what a human (or `llc`, if
// this were real IR rather than the approximation above) would read.
func (b *Backend) Emit(path string) error {
	var out strings.Builder
	fmt.Fprintf(&out, "; ModuleID = '%s'\n", b.moduleName)
	for _, t := range b.types {
		out.WriteString(t)
		out.WriteByte('\n')
	}
	for _, g := range b.globals {
		out.WriteString(g)
		out.WriteByte('\n')
	}
	for _, f := range b.funcs {
		if f.opts.Extern {
			fmt.Fprintf(&out, "declare %%t%d @%s(...)\n", f.sig, f.name)
			continue
		}
		fmt.Fprintf(&out, "define %%t%d @%s(...) {\n%s}\n", f.sig, f.name, f.body.String())
	}
	return os.WriteFile(path, []byte(out.String()), 0o644)
}

type debugInfo struct{}

func (debugInfo) CompileUnit(producer, dir string)                                 {}
func (debugInfo) File(name, dir string) int                                        { return 0 }
func (debugInfo) LexicalScope(file int, line, col uint32) int                      { return 0 }
func (debugInfo) LocalVariable(scope int, name string, ty backend.TypeRef, line uint32) {}
