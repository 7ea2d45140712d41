package sema

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/mono"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
	"github.com/thresh-lang/threshc/internal/types"
	"github.com/thresh-lang/threshc/internal/vm"
)

// evalExpr type-checks one expression, emitting whatever mir instructions
// are needed to produce its value into the current block, and returns that
// value plus its type. It covers the expression shapes a function body
// actually needs to reach a typed IR; the higher-level control-flow forms
// (if/while/for/switch/block as an expression) are handled entirely by
// internal/hir's CFG lowering and never reach evalExpr directly — only the
// leaf conditions and scrutinees hir leaves as opaque ast.ExprID do.
func (fc *funcChecker) evalExpr(id ast.ExprID) (mir.Value, types.TypeID) {
	e := fc.file.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprGroup:
		return fc.evalExpr(e.A)
	case ast.ExprIdent:
		return fc.evalIdent(e)
	case ast.ExprIntLit:
		ty := fc.b.ComptimeInt
		return mir.Value{Kind: mir.ValueConst, Type: ty, Const: mir.Const{Kind: mir.ConstInt, Type: ty, Int: e.IntText}}, ty
	case ast.ExprFloatLit:
		ty := fc.b.ComptimeFloat
		return mir.Value{Kind: mir.ValueConst, Type: ty, Const: mir.Const{Kind: mir.ConstFloat, Type: ty, Float: e.Float}}, ty
	case ast.ExprBoolLit:
		return mir.Value{Kind: mir.ValueConst, Type: fc.b.Bool, Const: mir.Const{Kind: mir.ConstBool, Type: fc.b.Bool, Bool: e.Bool}}, fc.b.Bool
	case ast.ExprStringLit, ast.ExprCStringLit:
		ty := fc.typesIn.SliceOf(fc.b.U8, true)
		return mir.Value{Kind: mir.ValueConst, Type: ty, Const: mir.Const{Kind: mir.ConstString, Type: ty, Str: e.Str}}, ty
	case ast.ExprCharLit:
		ty := fc.b.ComptimeInt
		return mir.Value{Kind: mir.ValueConst, Type: ty, Const: mir.Const{Kind: mir.ConstInt, Type: ty, Int: e.IntText}}, ty
	case ast.ExprNullLit:
		return mir.Value{Kind: mir.ValueConst, Const: mir.Const{Kind: mir.ConstNull}}, types.Invalid
	case ast.ExprUndefinedLit:
		return mir.Value{Kind: mir.ValueConst, Const: mir.Const{Kind: mir.ConstUndef}}, types.Invalid
	case ast.ExprBinary:
		return fc.evalBinary(e)
	case ast.ExprUnary:
		return fc.evalUnary(e)
	case ast.ExprAssign:
		return fc.evalAssign(e)
	case ast.ExprCall:
		return fc.evalCall(e)
	case ast.ExprComptime, ast.ExprInline:
		return fc.evalForcedComptime(e)
	case ast.ExprField, ast.ExprIndex, ast.ExprDeref:
		place, ty := fc.evalPlace(id)
		return mir.Value{Kind: mir.ValuePlace, Place: place, Type: ty}, ty
	case ast.ExprAddrOf:
		place, ty := fc.evalPlace(e.A)
		ptrTy := fc.typesIn.PointerTo(ty, true, false)
		dst := fc.newTemp(ptrTy)
		fc.emit(mir.Instr{Kind: mir.InstrAddrOf, Dst: dst, AddrOf: mir.Value{Kind: mir.ValuePlace, Place: place, Type: ty}})
		return fc.localValue(dst, ptrTy), ptrTy
	default:
		fc.errorf(e.Span, diag.CodeTypeMismatch, "this expression form is not yet supported by the checker")
		return mir.Value{}, types.Invalid
	}
}

func (fc *funcChecker) localValue(id mir.LocalID, ty types.TypeID) mir.Value {
	return mir.Value{Kind: mir.ValuePlace, Type: ty, Place: mir.Place{Kind: mir.PlaceLocal, Local: id, Type: ty}}
}

// evalIdent resolves a bare identifier: a still-live local binding first
// (tracked by name as blocks are checked in creation order, since Stage-1's
// CFG never reuses a name across sibling scopes without an intervening
// dominance boundary), then a module-level declaration.
func (fc *funcChecker) evalIdent(e *ast.Expr) (mir.Value, types.TypeID) {
	if lid, ty, ok := fc.lookupLocalName(e.Name); ok {
		return fc.localValue(lid, ty), ty
	}
	declID, ok := fc.res.Lookup(fc.scope, e.Name, e.Span)
	if !ok {
		fc.errorf(e.Span, diag.CodeResolveUndeclared, "undeclared identifier '%s'", fc.names.Text(e.Name))
		return mir.Value{}, types.Invalid
	}
	decl := fc.res.Decl(declID)
	switch decl.Kind {
	case symbols.DeclFn:
		fc.errorf(e.Span, diag.CodeTypeMismatch, "'%s' names a function; function values are only supported as a direct call target", fc.names.Text(e.Name))
		return mir.Value{}, types.Invalid
	case symbols.DeclVar:
		fc.errorf(e.Span, diag.CodeTypeMismatch, "global variable '%s' references are not yet supported", fc.names.Text(e.Name))
		return mir.Value{}, decl.Type
	default:
		fc.errorf(e.Span, diag.CodeTypeMismatch, "'%s' cannot be used as a value", fc.names.Text(e.Name))
		return mir.Value{}, types.Invalid
	}
}

func (fc *funcChecker) evalBinary(e *ast.Expr) (mir.Value, types.TypeID) {
	lhs, lt := fc.evalExpr(e.A)
	rhs, rt := fc.evalExpr(e.B)
	result, trap, wraps, ok := binOpResult(fc.typesIn, fc.b, e.BinOp, lt, rt)
	if !ok {
		fc.errorf(e.Span, diag.CodeTypeMismatch, "incompatible operand types for this operator")
		return mir.Value{}, types.Invalid
	}
	dst := fc.newTemp(result)
	fc.emit(mir.Instr{Kind: mir.InstrBinOp, Dst: dst, BinOp: mir.BinOpInstr{
		Op: toMirBinOp(e.BinOp), Lhs: lhs, Rhs: rhs, Type: result, Trap: trap, Wraps: wraps,
	}})
	return fc.localValue(dst, result), result
}

func (fc *funcChecker) evalUnary(e *ast.Expr) (mir.Value, types.TypeID) {
	operand, ty := fc.evalExpr(e.A)
	op := mir.UnNeg
	trap := mir.TrapNone
	switch e.UnOp {
	case ast.OpNeg:
		op = mir.UnNeg
		if t := fc.typesIn.Get(ty); t.Kind == types.KindInt {
			trap = mir.TrapOverflow
		}
	case ast.OpNot:
		op = mir.UnNot
	case ast.OpBitNot:
		op = mir.UnBitNot
	}
	dst := fc.newTemp(ty)
	fc.emit(mir.Instr{Kind: mir.InstrUnOp, Dst: dst, UnOp: mir.UnOpInstr{Op: op, Operand: operand, Type: ty, Trap: trap}})
	return fc.localValue(dst, ty), ty
}

// evalAssign lowers `place = value` / `place op= value` into an
// mir.InstrAssign against the place's existing storage; it never allocates
// a new local, since assignment mutates a binding rather than introducing
// one.
func (fc *funcChecker) evalAssign(e *ast.Expr) (mir.Value, types.TypeID) {
	place, pt := fc.evalPlace(e.A)
	rhs, rt := fc.evalExpr(e.B)
	val := rhs
	if e.Compound {
		cur := mir.Value{Kind: mir.ValuePlace, Place: place, Type: pt}
		result, trap, wraps, ok := binOpResult(fc.typesIn, fc.b, e.BinOp, pt, rt)
		if !ok {
			fc.errorf(e.Span, diag.CodeTypeMismatch, "incompatible operand types for this compound assignment")
			return mir.Value{}, types.Invalid
		}
		dst := fc.newTemp(result)
		fc.emit(mir.Instr{Kind: mir.InstrBinOp, Dst: dst, BinOp: mir.BinOpInstr{
			Op: toMirBinOp(e.BinOp), Lhs: cur, Rhs: rhs, Type: result, Trap: trap, Wraps: wraps,
		}})
		val = fc.localValue(dst, result)
	} else if ok, _ := convertible(fc.typesIn, fc.b, rt, pt); !ok && rt != pt && pt.Valid() {
		fc.errorf(e.Span, diag.CodeTypeMismatch, "cannot assign a value of a different type")
	}
	fc.emit(mir.Instr{Kind: mir.InstrAssign, Dst: mir.NoLocalID, Assign: mir.AssignInstr{Dst: place, Src: val}})
	return val, pt
}

func (fc *funcChecker) evalCall(e *ast.Expr) (mir.Value, types.TypeID) {
	args := make([]mir.Value, 0, len(e.Children))
	for _, a := range e.Children {
		v, _ := fc.evalExpr(a)
		args = append(args, v)
	}
	return fc.emitCall(e, args)
}

// emitCall lowers a call against already-evaluated args, resolving a named
// callee directly against declFuncID when possible and falling back to an
// indirect call through a function value otherwise.
func (fc *funcChecker) emitCall(e *ast.Expr, args []mir.Value) (mir.Value, types.TypeID) {
	callee := fc.file.Exprs.Get(e.A)
	var mc mir.Callee
	resolvedDirect := false
	retType := types.Invalid
	if callee.Kind == ast.ExprIdent {
		if declID, ok := fc.res.Lookup(fc.scope, callee.Name, callee.Span); ok {
			if funcID, ok := fc.declFuncID[declID]; ok {
				decl := fc.res.Decl(declID)
				if ft := fc.typesIn.Get(decl.Type); ft.Kind == types.KindFn {
					retType = ft.Ret
				}
				mc = mir.Callee{Kind: mir.CalleeDirect, Func: funcID}
				resolvedDirect = true
				fc.recordGenericCall(declID, args, e.Span)
			}
		}
	}
	if !resolvedDirect {
		v, ty := fc.evalExpr(e.A)
		mc = mir.Callee{Kind: mir.CalleeValue, Val: v}
		if ft := fc.typesIn.Get(ty); ft.Kind == types.KindFn {
			retType = ft.Ret
		}
	}

	dst := fc.newTemp(retType)
	fc.emit(mir.Instr{Kind: mir.InstrCall, Dst: dst, Call: mir.CallInstr{Callee: mc, Args: args, Type: retType}})
	return fc.localValue(dst, retType), retType
}

// evalForcedComptime handles `comptime expr` and `inline expr`: the wrapped
// expression must be fully evaluable at compile time. A direct call is
// interpreted through internal/vm against the callee's already-checked
// mir.Func body and folded into a mir.ValueConst; anything else must
// already reduce to a constant on its own. Only a callee declared earlier
// in the module is evaluable here (the same single-forward-pass limit
// declFuncID has elsewhere in this checker).
func (fc *funcChecker) evalForcedComptime(e *ast.Expr) (mir.Value, types.TypeID) {
	inner := fc.file.Exprs.Get(e.A)
	if inner.Kind == ast.ExprCall {
		if v, ty, ok := fc.evalCallForced(inner, e.Span); ok {
			return v, ty
		}
	}
	val, ty := fc.evalExpr(e.A)
	if val.Kind != mir.ValueConst {
		fc.errorf(e.Span, diag.CodeTypeMismatch, "this expression cannot be evaluated at compile time")
	}
	return val, ty
}

// evalCallForced attempts to fold a direct call entirely at compile time.
// ok is false when the call can't be forced this way (an indirect callee,
// a name that doesn't resolve to a function, or a callee with no checked
// body yet); the caller falls back to evalExpr's ordinary handling of the
// wrapped expression. A non-constant argument or a failed evaluation is
// reported as a diagnostic and still returns ok.
func (fc *funcChecker) evalCallForced(e *ast.Expr, span source.Span) (mir.Value, types.TypeID, bool) {
	callee := fc.file.Exprs.Get(e.A)
	if callee.Kind != ast.ExprIdent {
		return mir.Value{}, types.Invalid, false
	}
	declID, ok := fc.res.Lookup(fc.scope, callee.Name, callee.Span)
	if !ok {
		return mir.Value{}, types.Invalid, false
	}
	funcID, ok := fc.declFuncID[declID]
	if !ok {
		fc.errorf(span, diag.CodeTypeMismatch, "'%s' cannot be evaluated at compile time here; it is declared later in the module",
			fc.names.Text(callee.Name))
		return mir.Value{}, types.Invalid, true
	}
	target := fc.builtFuncs[funcID]
	if target == nil {
		return mir.Value{}, types.Invalid, false
	}

	args := make([]mir.Value, 0, len(e.Children))
	vmArgs := make([]vm.Value, 0, len(e.Children))
	for _, a := range e.Children {
		v, _ := fc.evalExpr(a)
		args = append(args, v)
		if v.Kind != mir.ValueConst {
			fc.errorf(span, diag.CodeTypeMismatch, "arguments to a forced compile-time call must themselves be compile-time-evaluable")
			return mir.Value{}, types.Invalid, true
		}
		cv, verr := vm.FromConst(v.Const)
		if verr != nil {
			fc.errorf(span, diag.CodeTypeMismatch, "%s", verr.Error())
			return mir.Value{}, types.Invalid, true
		}
		vmArgs = append(vmArgs, cv)
	}
	fc.recordGenericCall(declID, args, span)

	result, verr := fc.newVM().Eval(target, vmArgs)
	if verr != nil {
		fc.errorf(span, vmDiagCode(verr.Kind), "%s", verr.Error())
		return mir.Value{}, types.Invalid, true
	}
	c, ok := vm.ToConst(result)
	if !ok {
		fc.errorf(span, diag.CodeTypeMismatch, "compile-time call result could not be folded into a constant")
		return mir.Value{}, types.Invalid, true
	}
	return mir.Value{Kind: mir.ValueConst, Type: c.Type, Const: c}, c.Type, true
}

// recordGenericCall folds a call's compile-time argument slots (the ones
// lined up against a `comptime`-marked parameter) into internal/mono's
// Recorder, if the callee is generic. A comptime slot that isn't already a
// folded mir.ValueConst int or bool (a `type` argument, or anything this
// checker hasn't reduced to a constant yet) isn't representable as a
// types.InstArg here, so the call is left unrecorded rather than guessed at;
// the function still runs correctly, it just isn't tracked for deduplicated
// backend emission.
func (fc *funcChecker) recordGenericCall(declID symbols.DeclID, args []mir.Value, span source.Span) {
	decl := fc.res.Decl(declID)
	if !decl.Generic {
		return
	}
	mod, ok := fc.res.Modules[decl.Module]
	if !ok {
		return
	}
	item := mod.File.Items.Get(decl.Item)
	instArgs := make([]types.InstArg, 0, len(item.Params))
	for i, p := range item.Params {
		if !p.Comptime {
			continue
		}
		if i >= len(args) || args[i].Kind != mir.ValueConst {
			return
		}
		switch c := args[i].Const; c.Kind {
		case mir.ConstInt:
			instArgs = append(instArgs, types.InstArg{Kind: types.InstArgInt, Int: c.Int})
		case mir.ConstBool:
			instArgs = append(instArgs, types.InstArg{Kind: types.InstArgBool, Bool: c.Bool})
		default:
			return
		}
	}
	fc.mono.Record(decl.Name, decl.Seq, instArgs, mono.UseSite{Span: span, Caller: fc.out.Name})
}

// evalPlace type-checks an lvalue, producing the mir.Place an assignment or
// address-of operation targets. Only identifier, field, index, and deref
// bases are handled; anything else is rejected as not assignable.
func (fc *funcChecker) evalPlace(id ast.ExprID) (mir.Place, types.TypeID) {
	e := fc.file.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		if lid, ty, ok := fc.lookupLocalName(e.Name); ok {
			return mir.Place{Kind: mir.PlaceLocal, Local: lid, Type: ty}, ty
		}
		fc.errorf(e.Span, diag.CodeResolveUndeclared, "undeclared identifier '%s'", fc.names.Text(e.Name))
		return mir.Place{}, types.Invalid
	case ast.ExprField:
		base, bt := fc.evalPlace(e.A)
		fieldTy := fc.fieldType(bt, e.Name, e.Span)
		base.Proj = append(append([]mir.PlaceProj{}, base.Proj...), mir.PlaceProj{Kind: mir.ProjField, Field: e.Name})
		base.Type = fieldTy
		return base, fieldTy
	case ast.ExprIndex:
		base, bt := fc.evalPlace(e.A)
		idxVal, _ := fc.evalExpr(e.B)
		elemTy := fc.elemType(bt)
		base.Proj = append(append([]mir.PlaceProj{}, base.Proj...), mir.PlaceProj{Kind: mir.ProjIndex, Index: idxVal})
		base.Type = elemTy
		return base, elemTy
	case ast.ExprDeref:
		base, bt := fc.evalPlace(e.A)
		elemTy := fc.elemType(bt)
		base.Proj = append(append([]mir.PlaceProj{}, base.Proj...), mir.PlaceProj{Kind: mir.ProjDeref})
		base.Type = elemTy
		return base, elemTy
	default:
		fc.errorf(e.Span, diag.CodeTypeMismatch, "this expression is not assignable")
		return mir.Place{}, types.Invalid
	}
}

func (fc *funcChecker) elemType(container types.TypeID) types.TypeID {
	if !container.Valid() {
		return types.Invalid
	}
	t := fc.typesIn.Get(container)
	switch t.Kind {
	case types.KindPointer, types.KindSlice, types.KindArray:
		return t.Elem
	}
	return types.Invalid
}

// fieldType resolves a `.name` field access's type. Struct layout (the
// field-name-to-type table a container resolves into) lives in
// internal/symbols' container resolution and is not yet threaded through to
// Stage-2; until it is, a field access type-checks as Invalid with a
// diagnostic rather than guessing.
func (fc *funcChecker) fieldType(container types.TypeID, name source.Name, span source.Span) types.TypeID {
	fc.errorf(span, diag.CodeTypeMismatch, "field access is not yet supported by the checker")
	return types.Invalid
}

// lookupLocalName finds the most recently bound mir local for name, walking
// the name-to-local table built as InstrBind instructions are checked.
func (fc *funcChecker) lookupLocalName(name source.Name) (mir.LocalID, types.TypeID, bool) {
	lid, ok := fc.localNames[name]
	if !ok {
		return mir.NoLocalID, types.Invalid, false
	}
	return lid, fc.out.Locals[lid].Type, true
}

func toMirBinOp(op ast.BinOp) mir.BinOp {
	switch op {
	case ast.OpAdd, ast.OpAddWrap:
		return mir.OpAdd
	case ast.OpSub, ast.OpSubWrap:
		return mir.OpSub
	case ast.OpMul, ast.OpMulWrap:
		return mir.OpMul
	case ast.OpDiv, ast.OpDivExact:
		return mir.OpDiv
	case ast.OpMod:
		return mir.OpRem
	case ast.OpShl, ast.OpShlWrap:
		return mir.OpShl
	case ast.OpShr:
		return mir.OpShr
	case ast.OpBitAnd:
		return mir.OpBitAnd
	case ast.OpBitOr:
		return mir.OpBitOr
	case ast.OpBitXor:
		return mir.OpBitXor
	case ast.OpEq:
		return mir.OpEq
	case ast.OpNe:
		return mir.OpNe
	case ast.OpLt:
		return mir.OpLt
	case ast.OpGt:
		return mir.OpGt
	case ast.OpLe:
		return mir.OpLe
	case ast.OpGe:
		return mir.OpGe
	}
	return mir.OpAdd
}
