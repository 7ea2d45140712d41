package symbols

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/mono"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// resolveDecl drives one declaration through Unresolved -> Resolving ->
// {Ok, Invalid}. Re-entering a Decl that is already Resolving means the
// declaration graph looped back on itself: a plain value/const cycle gets
// CodeResolveCycle, a container that reached itself by value gets the more
// specific CodeTypeSelfContain.
func (r *Resolver) resolveDecl(id DeclID) State {
	d := r.decl(id)
	switch d.State {
	case Ok, Invalid:
		return d.State
	case Resolving:
		if d.Kind == DeclContainer {
			r.bag.Add(diag.Errorf(diag.CodeTypeSelfContain, d.Span,
				"%s '%s' contains itself", containerNoun(d), r.names.Text(d.Name)))
		} else {
			r.bag.Add(diag.Errorf(diag.CodeResolveCycle, d.Span,
				"'%s' depends on itself", r.names.Text(d.Name)))
		}
		d.State = Invalid
		return Invalid
	}

	d.State = Resolving
	mod := r.Modules[d.Module]
	file := mod.File

	switch d.Kind {
	case DeclFn:
		r.resolveFn(d, file, file.Items.Get(d.Item))
	case DeclVar:
		r.resolveVar(d, file, file.Items.Get(d.Item))
	case DeclContainer:
		r.resolveContainer(d, mod, file, file.Items.Get(d.Item))
	case DeclTest:
		d.State = Ok
	default:
		d.State = Invalid
	}
	return d.State
}

func containerNoun(d *Decl) string {
	// The Item's ContainerKind isn't on Decl directly; callers that need the
	// exact noun look it up. Kept generic here since both messages read fine.
	return "declaration"
}

func (r *Resolver) resolveFn(d *Decl, file *ast.File, item *ast.Item) {
	d.Generic = mono.IsGeneric(item.Params)
	scope := r.Modules[d.Module].Scope
	params := make([]types.Param, 0, len(item.Params))
	ok := true
	for _, p := range item.Params {
		t, valid := r.resolveTypeExprShallow(file, scope, p.Type)
		if !valid {
			ok = false
		}
		params = append(params, types.Param{Type: t, NoAlias: p.NoAlias})
	}
	ret := r.b.Void
	if item.RetType.Valid() {
		t, valid := r.resolveTypeExprShallow(file, scope, item.RetType)
		ret = t
		if !valid {
			ok = false
		}
	}
	if !ok {
		d.State = Invalid
		return
	}
	d.Type = r.typesIn.FnType(params, ret, item.CallConv)
	d.State = Ok
}

func (r *Resolver) resolveVar(d *Decl, file *ast.File, item *ast.Item) {
	if !item.Type.Valid() {
		// No annotation: type comes from the initializer, which is an
		// internal/sema concern (it needs to evaluate/typecheck Value).
		// The resolver only settles explicitly annotated types.
		d.State = Ok
		return
	}
	scope := r.Modules[d.Module].Scope
	t, ok := r.resolveTypeExprShallow(file, scope, item.Type)
	d.Type = t
	if ok {
		d.State = Ok
	} else {
		d.State = Invalid
	}
}

func (r *Resolver) resolveContainer(d *Decl, mod *ModuleScope, file *ast.File, item *ast.Item) {
	scope := mod.Scope
	ok := true
	for _, f := range item.Fields {
		switch item.ContainerKind {
		case ast.ContainerEnum:
			// enum variants carry no field type, only an optional tag value
			// (evaluated by sema); nothing for the resolver to chase.
		default:
			if !f.Type.Valid() {
				continue
			}
			// Struct/union fields hold their member BY VALUE, so resolving
			// a named field type recurses into that declaration fully: if
			// it is this very container, resolveDecl's Resolving re-entry
			// above reports self-containment instead of silently looping.
			if !r.resolveTypeExprDirect(file, scope, f.Type) {
				ok = false
			}
		}
	}
	if item.BackingType.Valid() {
		if _, valid := r.resolveTypeExprShallow(file, scope, item.BackingType); !valid {
			ok = false
		}
	}
	if ok {
		d.Type = r.typesIn.Named(d.Name, d.Seq)
		d.State = Ok
	} else {
		d.State = Invalid
	}
}

// ResolveTypeExpr exposes resolveTypeExprShallow to other packages (sema
// resolving a local let-binding's type annotation, which needs no local
// scope of its own since type names only ever live in module scope).
func (r *Resolver) ResolveTypeExpr(file *ast.File, scope ScopeID, id ast.TypeExprID) (types.TypeID, bool) {
	return r.resolveTypeExprShallow(file, scope, id)
}

// resolveTypeExprShallow resolves a type-syntax node to a TypeID without
// forcing full resolution of any named type it mentions: pointers, slices,
// and array element types only need the pointee/element's identity, not its
// completed layout, so chasing it eagerly would make indirect cycles
// through a pointer report as errors when they are perfectly valid.
func (r *Resolver) resolveTypeExprShallow(file *ast.File, scope ScopeID, id ast.TypeExprID) (types.TypeID, bool) {
	return r.resolveTypeExpr(file, scope, id, false)
}

// resolveTypeExprDirect resolves a type-syntax node the way a by-value
// field does: a named type is fully resolved (resolveDecl), so self- and
// mutual-containment are caught via the Resolving re-entry check.
func (r *Resolver) resolveTypeExprDirect(file *ast.File, scope ScopeID, id ast.TypeExprID) bool {
	_, ok := r.resolveTypeExpr(file, scope, id, true)
	return ok
}

func (r *Resolver) resolveTypeExpr(file *ast.File, scope ScopeID, id ast.TypeExprID, direct bool) (types.TypeID, bool) {
	te := file.TypeExprs.Get(id)
	switch te.Kind {
	case ast.TypeName:
		return r.resolveNamedType(file, scope, te, direct)
	case ast.TypePointer:
		elem, _ := r.resolveTypeExprShallow(file, scope, te.Elem) // pointee need not be complete
		return r.typesIn.PointerTo(elem, te.Const, te.Volatile), elem.Valid() || te.Elem == ast.NoTypeExpr
	case ast.TypeSlice:
		elem, _ := r.resolveTypeExprShallow(file, scope, te.Elem)
		return r.typesIn.SliceOf(elem, te.Const), true
	case ast.TypeArray:
		elem, ok := r.resolveTypeExprShallow(file, scope, te.Elem)
		length := arrayLenOf(te)
		return r.typesIn.ArrayOf(elem, length), ok
	case ast.TypeNullable:
		elem, ok := r.resolveTypeExprDispatch(file, scope, te.Elem, direct)
		return r.typesIn.NullableOf(elem), ok
	case ast.TypeErrorUnion:
		errSet := types.Invalid
		okErr := true
		if te.Error.Valid() {
			errSet, okErr = r.resolveTypeExprShallow(file, scope, te.Error)
		}
		payload, okPayload := r.resolveTypeExprDispatch(file, scope, te.Elem, direct)
		return r.typesIn.ErrorUnionOf(errSet, payload), okErr && okPayload
	case ast.TypeFn:
		params := make([]types.Param, 0, len(te.Params))
		ok := true
		for _, p := range te.Params {
			t, valid := r.resolveTypeExprShallow(file, scope, p.Type)
			if !valid {
				ok = false
			}
			params = append(params, types.Param{Type: t, NoAlias: p.NoAlias})
		}
		ret, okRet := r.resolveTypeExprShallow(file, scope, te.Ret)
		return r.typesIn.FnType(params, ret, te.CallCnv), ok && okRet
	default:
		return types.Invalid, false
	}
}

func (r *Resolver) resolveTypeExprDispatch(file *ast.File, scope ScopeID, id ast.TypeExprID, direct bool) (types.TypeID, bool) {
	if direct {
		return r.resolveTypeExpr(file, scope, id, true)
	}
	return r.resolveTypeExprShallow(file, scope, id)
}

// arrayLenOf returns types.ArrayDynamicLength for every array type: the
// length expression is not read, not even a bare integer literal, so
// `[4]u8` and `[n]u8` resolve to the same array type.
func arrayLenOf(te *ast.TypeExpr) uint64 {
	return types.ArrayDynamicLength
}

func (r *Resolver) resolveNamedType(file *ast.File, scope ScopeID, te *ast.TypeExpr, direct bool) (types.TypeID, bool) {
	if builtin, ok := r.lookupBuiltinName(te.Name); ok {
		return builtin, true
	}
	declID, ok := r.lookup(scope, te.Name, te.Span)
	if !ok {
		r.bag.Add(diag.Errorf(diag.CodeResolveUndeclared, te.Span,
			"undeclared type '%s'", r.names.Text(te.Name)))
		return types.Invalid, false
	}
	target := r.decl(declID)
	if target.Kind != DeclContainer {
		r.bag.Add(diag.Errorf(diag.CodeResolveUndeclared, te.Span,
			"'%s' is not a type", r.names.Text(te.Name)))
		return types.Invalid, false
	}
	if direct {
		state := r.resolveDecl(declID)
		return target.Type, state == Ok
	}
	// Shallow use: the pointee doesn't need to be complete, just identified.
	return r.typesIn.Named(target.Name, target.Seq), true
}

func (r *Resolver) lookupBuiltinName(name source.Name) (types.TypeID, bool) {
	switch r.names.Text(name) {
	case "void":
		return r.b.Void, true
	case "noreturn":
		return r.b.NoReturn, true
	case "bool":
		return r.b.Bool, true
	case "i8":
		return r.b.I8, true
	case "i16":
		return r.b.I16, true
	case "i32":
		return r.b.I32, true
	case "i64":
		return r.b.I64, true
	case "u8":
		return r.b.U8, true
	case "u16":
		return r.b.U16, true
	case "u32":
		return r.b.U32, true
	case "u64":
		return r.b.U64, true
	case "f32":
		return r.b.F32, true
	case "f64":
		return r.b.F64, true
	case "type":
		return r.b.Type, true
	default:
		return types.Invalid, false
	}
}
