package sema

import (
	"math/big"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/hir"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
	"github.com/thresh-lang/threshc/internal/types"
	"github.com/thresh-lang/threshc/internal/vm"
)

// funcChecker type-checks one hir.Func into a mir.Func. It is re-created
// per function by Checker.checkFunc; it is not reused across functions.
type funcChecker struct {
	*Checker
	file   *ast.File
	hf     *hir.Func
	fnType types.TypeID
	scope  symbols.ScopeID // module scope, for resolving local type annotations

	out        *mir.Func
	locals     map[hir.LocalID]mir.LocalID
	localNames map[source.Name]mir.LocalID
	cur        *mir.BasicBlock
}

func (fc *funcChecker) run() *mir.Func {
	ft := fc.typesIn.Get(fc.fnType)
	fc.out = &mir.Func{Name: fc.hf.Name, Type: fc.fnType}
	fc.out.Blocks = make([]mir.BasicBlock, len(fc.hf.Blocks))
	for i := range fc.out.Blocks {
		fc.out.Blocks[i].ID = mir.BlockID(i)
	}
	fc.out.Entry = fc.blockID(fc.hf.Entry)

	for i, p := range fc.hf.Params {
		paramType := types.Invalid
		if i < len(ft.Params) {
			paramType = ft.Params[i].Type
		}
		fc.bindLocal(p.Local, paramType)
	}

	for i := range fc.hf.Blocks {
		fc.cur = &fc.out.Blocks[i]
		fc.checkBlock(&fc.hf.Blocks[i])
	}
	return fc.out
}

// bindLocal maps a hir local to a freshly allocated, named mir local.
func (fc *funcChecker) bindLocal(hl hir.LocalID, ty types.TypeID) mir.LocalID {
	id := mir.LocalID(len(fc.out.Locals))
	name := fc.hf.LocalNames[hl]
	fc.out.Locals = append(fc.out.Locals, mir.Local{Name: name, Type: ty})
	fc.locals[hl] = id
	if name.Valid() {
		if fc.localNames == nil {
			fc.localNames = make(map[source.Name]mir.LocalID)
		}
		fc.localNames[name] = id
	}
	return id
}

// newTemp allocates an anonymous local to hold an intermediate result; it
// has no hir counterpart (sub-expressions are never separately bound in
// Stage-1), so it is keyed purely by its position in Func.Locals.
func (fc *funcChecker) newTemp(ty types.TypeID) mir.LocalID {
	id := mir.LocalID(len(fc.out.Locals))
	fc.out.Locals = append(fc.out.Locals, mir.Local{Type: ty})
	return id
}

func (fc *funcChecker) emit(in mir.Instr) {
	fc.cur.Instr = append(fc.cur.Instr, in)
}

// blockID translates a 1-based hir.BlockID (0 meaning NoBlock) into the
// 0-based mir.BlockID space (-1 meaning NoBlockID).
func (fc *funcChecker) blockID(h hir.BlockID) mir.BlockID {
	if !h.Valid() {
		return mir.NoBlockID
	}
	return mir.BlockID(h - 1)
}

func (fc *funcChecker) errorf(span source.Span, code diag.Code, format string, args ...any) {
	fc.bag.Add(diag.Errorf(code, span, format, args...))
}

func (fc *funcChecker) checkBlock(hb *hir.BasicBlock) {
	for _, instr := range hb.Instr {
		fc.checkInstr(instr)
	}
	fc.checkTerm(hb.Term)
}

func (fc *funcChecker) checkInstr(in hir.Instr) {
	switch in.Kind {
	case hir.InstrEval:
		fc.evalExpr(in.Expr)
	case hir.InstrBind:
		val, ty := fc.evalExpr(in.Expr)
		final := ty
		if in.DeclType.Valid() {
			declared, _ := fc.res.ResolveTypeExpr(fc.file, fc.scope, in.DeclType)
			if declared.Valid() && ty.Valid() {
				if ok, _ := convertible(fc.typesIn, fc.b, ty, declared); !ok && ty != declared {
					fc.errorf(fc.file.Exprs.Get(in.Expr).Span, diag.CodeTypeMismatch,
						"cannot initialize '%s' with a value of a different type", fc.names.Text(in.Name))
				} else {
					fc.checkLiteralNarrowing(val, ty, declared, fc.file.Exprs.Get(in.Expr).Span)
				}
			}
			final = declared
		}
		lid := fc.bindLocal(in.Local, final)
		fc.emit(mir.Instr{Kind: mir.InstrAssign, Dst: lid, Assign: mir.AssignInstr{
			Dst: mir.Place{Kind: mir.PlaceLocal, Local: lid, Type: final}, Src: val,
		}})
	case hir.InstrDeferCall:
		fc.evalExpr(in.Expr)
	}
}

// checkLiteralNarrowing bounds-checks a comptime_int literal folded into a
// sized integer destination. convertible treats comptime_int -> sized int
// as always assignable, on the assumption the literal's value is checked
// against the destination's width at fold time; this is that check.
func (fc *funcChecker) checkLiteralNarrowing(val mir.Value, from, to types.TypeID, span source.Span) {
	if val.Kind != mir.ValueConst || val.Const.Kind != mir.ConstInt {
		return
	}
	if fc.typesIn.Get(from).Kind != types.KindComptimeInt {
		return
	}
	tt := fc.typesIn.Get(to)
	if tt.Kind != types.KindInt {
		return
	}
	n, ok := new(big.Int).SetString(val.Const.Int, 10)
	if !ok || vm.FitsWidth(n, tt.Width, tt.Signed) {
		return
	}
	fc.errorf(span, diag.CodeOverflow, "integer value %s cannot be implicitly casted to type '%s'",
		val.Const.Int, fc.typesIn.String(to, fc.names))
}

func (fc *funcChecker) checkTerm(t hir.Terminator) {
	switch t.Kind {
	case hir.TermJump:
		fc.cur.Term = mir.Terminator{Kind: mir.TermJump, Target: fc.blockID(t.Target)}
	case hir.TermBranch:
		cond, _ := fc.evalExpr(t.Cond)
		fc.cur.Term = mir.Terminator{Kind: mir.TermBranch, Cond: cond,
			Then: fc.blockID(t.Then), Else: fc.blockID(t.Else)}
	case hir.TermSwitch:
		fc.checkSwitchTerm(t)
	case hir.TermReturn:
		if t.Value.Valid() {
			val, _ := fc.evalExpr(t.Value)
			fc.cur.Term = mir.Terminator{Kind: mir.TermReturn, Value: val, HasValue: true}
		} else {
			fc.cur.Term = mir.Terminator{Kind: mir.TermReturn}
		}
	case hir.TermUnreachable:
		fc.cur.Term = mir.Terminator{Kind: mir.TermUnreachable}
	}
}

func (fc *funcChecker) checkSwitchTerm(t hir.Terminator) {
	cond, _ := fc.evalExpr(t.Cond)
	edges := make([]mir.SwitchEdge, 0, len(t.Edges))
	for _, e := range t.Edges {
		vals := make([]mir.Const, 0, len(e.Values))
		for _, vid := range e.Values {
			if c, ok := fc.foldConst(vid); ok {
				vals = append(vals, c)
			}
		}
		edges = append(edges, mir.SwitchEdge{Values: vals, Target: fc.blockID(e.Target)})
	}
	fc.cur.Term = mir.Terminator{Kind: mir.TermSwitch, Cond: cond, Edges: edges, Default: fc.blockID(t.Default)}
}
