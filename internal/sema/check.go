// Package sema is IR Stage-2: it type-checks internal/hir's untyped CFG
// against internal/symbols' resolved declarations and internal/types'
// interner, folding comptime-evaluable expressions and lowering everything
// else into internal/mir's typed instruction set.
package sema

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/hir"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/mono"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
	"github.com/thresh-lang/threshc/internal/types"
	"github.com/thresh-lang/threshc/internal/vm"
)

// FuncState is a function's position in Stage-2's own state machine,
// distinct from internal/symbols' declaration-resolution state: a function
// can be Ok as a declaration (its signature resolved) while its body is
// still Ready, Probing (being type-checked — re-entry means an illegal
// recursive comptime-argument dependency, not an ordinary call cycle, which
// is always legal at runtime), Complete, or Invalid.
type FuncState uint8

const (
	Ready FuncState = iota
	Probing
	Complete
	Invalid
)

type funcEntry struct {
	state FuncState
	mir   *mir.Func
}

// Checker drives Stage-2 over one resolved module set.
type Checker struct {
	bag     *diag.Bag
	names   *source.Interner
	typesIn *types.Interner
	b       types.Builtins
	res     *symbols.Resolver

	memo map[ast.ItemID]*funcEntry

	// declFuncID maps a resolved function declaration to its position in the
	// mir.Module.Funcs slice being built, so a call site can turn the callee
	// identifier's symbols.DeclID directly into a mir.CalleeDirect without a
	// second pass over the module.
	declFuncID map[symbols.DeclID]mir.FuncID

	// builtFuncs backs the comptime evaluator's FuncResolver: a completed
	// mir.Func is recorded here the moment CheckModule finishes checking it,
	// so a forced/inline comptime call site can interpret the callee's body.
	// A function whose funcID isn't present yet (declared later in the
	// module than the call site) is not evaluable at compile time here —
	// the same single-forward-pass limitation declFuncID already has.
	builtFuncs map[mir.FuncID]*mir.Func

	quota int // backward-branch quota for forced/inline comptime evaluation

	// mono is the canonical instantiation table: every call site targeting a
	// Decl.Generic function funnels through it so two call sites requesting
	// the same compile-time argument vector share one instantiation.
	mono *mono.Recorder
}

// NewChecker returns a Checker ready to check every module registered with
// res. quota bounds backward branches taken while interpreting a function's
// IR for `inline`/forced comptime evaluation; 0 selects the default of 1000.
func NewChecker(bag *diag.Bag, names *source.Interner, typesIn *types.Interner, b types.Builtins, res *symbols.Resolver, quota int) *Checker {
	if quota <= 0 {
		quota = 1000
	}
	return &Checker{
		bag: bag, names: names, typesIn: typesIn, b: b, res: res,
		memo:       make(map[ast.ItemID]*funcEntry),
		declFuncID: make(map[symbols.DeclID]mir.FuncID),
		builtFuncs: make(map[mir.FuncID]*mir.Func),
		quota:      quota,
		mono:       mono.NewRecorder(typesIn),
	}
}

// Instantiations exposes the Recorder that CheckModule filled in. Only the
// sema tests read it; internal/backend's emitter does not consult it.
func (c *Checker) Instantiations() *mono.Recorder { return c.mono }

// vmResolver returns a vm.FuncResolver backed by builtFuncs.
func (c *Checker) vmResolver() vm.FuncResolver {
	return func(id mir.FuncID) *mir.Func { return c.builtFuncs[id] }
}

// newVM returns a fresh compile-time evaluator sharing this Checker's type
// arena, name table, and backward-branch quota, with a FuncResolver that
// can recurse into any function already checked earlier in this module.
func (c *Checker) newVM() *vm.VM {
	return vm.New(c.typesIn, c.names, c.b, c.quota, c.vmResolver())
}

// vmDiagCode maps a vm.ErrorKind onto the diag.Code a forced/inline
// comptime call site reports it under.
func vmDiagCode(kind vm.ErrorKind) diag.Code {
	switch kind {
	case vm.ErrOverflow:
		return diag.CodeOverflow
	case vm.ErrDivByZero:
		return diag.CodeDivByZero
	case vm.ErrShiftOverflow:
		return diag.CodeShiftOverflow
	case vm.ErrQuotaExceeded:
		return diag.CodeQuotaExceeded
	default:
		return diag.CodeCompileError
	}
}

// CheckModule type-checks every resolved, non-extern function's hir.Func
// (built by hir.LowerModule over the same res) into a mir.Module. Iteration
// order matches hir.LowerModule's exactly, so hirMod.Funcs lines up
// index-for-index with the items this walk visits.
func (c *Checker) CheckModule(hirMod *hir.Module) *mir.Module {
	out := &mir.Module{}
	hirIdx := 0
	for _, modScope := range c.res.ModulesSorted() {
		file := modScope.File
		for _, itemID := range file.Root {
			item := file.Items.Get(itemID)
			if item.Kind != ast.ItemFn {
				continue
			}
			declID, ok := c.res.Lookup(modScope.Scope, item.Name, item.Span)
			if !ok || c.res.Decl(declID).State != symbols.Ok {
				continue
			}
			funcID := mir.FuncID(len(out.Funcs))
			c.declFuncID[declID] = funcID
			if item.Extern || !item.Body.Valid() {
				stub := mir.Func{Name: item.Name, Type: c.res.Decl(declID).Type, Extern: true}
				out.Funcs = append(out.Funcs, stub)
				continue
			}
			hf := &hirMod.Funcs[hirIdx]
			hirIdx++
			fn := c.checkFunc(itemID, file, item, declID, modScope.Scope, hf)
			out.Funcs = append(out.Funcs, *fn)
			c.builtFuncs[funcID] = &out.Funcs[len(out.Funcs)-1]
		}
	}
	return out
}

// checkFunc type-checks one function body, memoizing on its ast.ItemID so a
// function referenced from multiple call sites is only checked once. A
// re-entrant call while the same itemID is Probing means the function's
// signature depends on evaluating its own body (an illegal self-referential
// comptime dependency, not an ordinary call cycle — ordinary recursion
// never re-enters checkFunc, since it only walks call graphs at runtime).
func (c *Checker) checkFunc(itemID ast.ItemID, file *ast.File, item *ast.Item, declID symbols.DeclID, scope symbols.ScopeID, hf *hir.Func) *mir.Func {
	if entry, ok := c.memo[itemID]; ok {
		if entry.state == Probing {
			c.bag.Add(diag.Errorf(diag.CodeResolveCycle, item.Span,
				"'%s' depends on evaluating its own body", c.names.Text(item.Name)))
			return &mir.Func{Name: item.Name, Extern: true}
		}
		return entry.mir
	}
	entry := &funcEntry{state: Probing}
	c.memo[itemID] = entry

	fc := &funcChecker{
		Checker: c,
		file:    file,
		hf:      hf,
		fnType:  c.res.Decl(declID).Type,
		scope:   scope,
		locals:  make(map[hir.LocalID]mir.LocalID),
	}
	out := fc.run()

	entry.state = Complete
	entry.mir = out
	return out
}
