// Package driver owns the single-threaded pipeline loop SPEC_FULL.md §5
// describes: a parse/resolve queue drained to completion before any
// function body is lowered, then every resolved function's body lowered
// and type-checked, then (only if nothing failed) handed to a Backend.
// Grounded on the teacher's internal/driver, reduced from its multi-file
// project/module-graph traversal (internal/symbols here has no import
// resolver to walk a `use` graph across files — see DESIGN.md) to the
// single-compilation-unit loop that pipeline actually supports today.
package driver

import (
	"fmt"
	"time"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/backend"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/hir"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/parser"
	"github.com/thresh-lang/threshc/internal/sema"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
	"github.com/thresh-lang/threshc/internal/types"
)

// PhaseStatus reports whether a phase has started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes one phase boundary; a driven-by-options Observer
// receives one of these per named stage, letting --verbose print timings
// without threading a timer through every pipeline package.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted while draining a Compilation.
type PhaseObserver func(PhaseEvent)

// Options configures one Compilation.
type Options struct {
	MaxDiagnostics int
	ComptimeQuota  int
	Observer       PhaseObserver
}

// Compilation is one compile unit's worth of shared arenas: the file set,
// name/type interners, the symbol resolver queued modules feed, and the
// diagnostic bag every stage reports into. cmd/threshc's subcommands build
// one Compilation per invocation.
type Compilation struct {
	Bag      *diag.Bag
	Names    *source.Interner
	Types    *types.Interner
	Builtins types.Builtins
	Files    *source.FileSet

	symbols *symbols.Resolver
	quota   int
	observe PhaseObserver

	pending []pendingModule
}

type pendingModule struct {
	moduleName source.Name
	file       *ast.File
}

// New allocates a Compilation with fresh arenas. Call AddModule once per
// source file, then Compile.
func New(opts Options) *Compilation {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 128
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	names := source.NewInterner()
	typesIn := types.NewInterner()
	builtins := types.NewBuiltins(typesIn)
	return &Compilation{
		Bag:      bag,
		Names:    names,
		Types:    typesIn,
		Builtins: builtins,
		Files:    source.NewFileSet(),
		symbols:  symbols.New(bag, names, typesIn, builtins),
		quota:    opts.ComptimeQuota,
		observe:  opts.Observer,
	}
}

func (c *Compilation) phase(name string, fn func()) {
	start := time.Now()
	c.emit(PhaseEvent{Name: name, Status: PhaseStart})
	fn()
	c.emit(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
}

func (c *Compilation) emit(ev PhaseEvent) {
	if c.observe != nil {
		c.observe(ev)
	}
}

// AddModule enqueues one source file under moduleName: it loads, lexes,
// and parses immediately (the parse queue is drained eagerly, one file at
// a time, since nothing downstream needs more than one file's AST at
// once), queuing the resulting *ast.File for the resolve queue Compile
// drains next. A parse error is recorded into c.Bag and AddModule returns
// it; the caller decides whether to keep adding modules or stop.
func (c *Compilation) AddModule(moduleName, path string, src []byte) error {
	var fileID source.FileID
	var err error
	c.phase("load:"+path, func() {
		fileID, err = c.Files.Add(path, "", src)
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	var file *ast.File
	c.phase("parse:"+path, func() {
		srcFile := c.Files.File(fileID)
		file = ast.NewFile(fileID, path)
		lx := lexer.New(srcFile, lexer.Options{}, c.Bag)
		err = parser.ParseFile(lx, file, c.Bag, c.Names)
	})
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.pending = append(c.pending, pendingModule{
		moduleName: c.Names.Intern(moduleName),
		file:       file,
	})
	return nil
}

// Symbols exposes the Resolver a Compile call drains, for a caller (e.g.
// cmd/threshc's `test` verb) that needs to walk resolved declarations
// Compile doesn't itself return, like `test "name" { ... }` blocks.
func (c *Compilation) Symbols() *symbols.Resolver { return c.symbols }

// Compile drains the resolve queue (every pending module's declarations,
// hoisting `use` edges first so resolution order doesn't depend on
// AddModule's call order) and the function-definition queue (lowering
// every resolved function to hir, then checking it to mir), in that
// order, per SPEC_FULL.md §5. It returns nil once c.Bag has accumulated
// any error — a Backend never sees a module that failed to resolve or
// check, the same as spec.md §8's four failing scenarios never reaching
// emission.
func (c *Compilation) Compile() *mir.Module {
	c.phase("resolve", func() {
		for _, pm := range c.pending {
			c.symbols.AddModule(pm.moduleName, pm.file)
		}
		c.symbols.ResolveAll()
	})
	if c.Bag.HasErrors() {
		return nil
	}

	var hirMod *hir.Module
	c.phase("lower", func() {
		hirMod = hir.LowerModule(c.symbols, c.Names, c.Bag)
	})
	if c.Bag.HasErrors() {
		return nil
	}

	var mirMod *mir.Module
	c.phase("check", func() {
		checker := sema.NewChecker(c.Bag, c.Names, c.Types, c.Builtins, c.symbols, c.quota)
		mirMod = checker.CheckModule(hirMod)
	})
	if c.Bag.HasErrors() {
		return nil
	}
	return mirMod
}

// Emit runs Compile and, only if it produced a module with no errors,
// lowers it into b and finalizes codegen at outPath. It returns an error
// (rather than writing anything) if compilation failed; the caller reads
// c.Bag for the diagnostics that explain why.
func (c *Compilation) Emit(b backend.Module, outPath string) error {
	mod := c.Compile()
	if mod == nil {
		return fmt.Errorf("compilation failed with %d diagnostic(s)", c.Bag.Len())
	}
	var err error
	c.phase("emit", func() {
		if err = backend.EmitModule(b, mod, c.Names, c.Types); err != nil {
			return
		}
		err = b.Emit(outPath)
	})
	return err
}
