package symbols

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
)

// hoistUses resolves every `use` edge registered for mod and appends the
// named declaration to mod's scope as a HoistedName, in declaration order.
// Visibility is deliberately NOT checked here: a `use` of a private name
// only fails at the point something actually looks it up.
func (r *Resolver) hoistUses(mod *ModuleScope) {
	scope := r.scope(mod.Scope)
	for _, edge := range mod.Uses {
		span := mod.File.Items.Get(edge.Item).Span
		if len(edge.Path) < 2 {
			r.bag.Add(diag.Errorf(diag.CodeResolveUndeclared, span,
				"use path must name a module and a member"))
			continue
		}
		target, ok := r.Modules[edge.Path[0]]
		if !ok {
			r.bag.Add(diag.Errorf(diag.CodeResolveUndeclared, span,
				"no module named '%s'", r.names.Text(edge.Path[0])))
			continue
		}
		declID, ok := r.resolvePathTail(target, edge.Path[1:], span)
		if !ok {
			continue
		}
		last := edge.Path[len(edge.Path)-1]
		scope.Hoisted = append(scope.Hoisted, HoistedName{Name: last, Decl: declID})
	}
}

// resolvePathTail walks the remaining path segments starting from mod's
// direct declarations. Only a single member segment is supported today:
// `use a::b;` reaches `b` in module `a`. Deeper nesting (`a::b::c`) would
// require namespacing member declarations themselves, which containers
// don't yet expose as their own scopes.
func (r *Resolver) resolvePathTail(mod *ModuleScope, tail []source.Name, span source.Span) (DeclID, bool) {
	if len(tail) != 1 {
		r.bag.Add(diag.Errorf(diag.CodeResolveUndeclared, span,
			"nested use paths beyond one member are not supported"))
		return NoDecl, false
	}
	scope := r.scope(mod.Scope)
	declID, ok := scope.Names[tail[0]]
	if !ok {
		r.bag.Add(diag.Errorf(diag.CodeResolveUndeclared, span,
			"module '%s' has no member '%s'", r.names.Text(mod.Name), r.names.Text(tail[0])))
		return NoDecl, false
	}
	return declID, true
}

// Lookup exposes lookup to other packages (sema resolving identifier
// expressions against a function or block scope built from this table).
func (r *Resolver) Lookup(scope ScopeID, name source.Name, usageSpan source.Span) (DeclID, bool) {
	return r.lookup(scope, name, usageSpan)
}

// lookup finds name visible from scope: first among its direct
// declarations, then among whatever `use` hoisted into it (in declaration
// order, first match wins). A hoisted match is visibility-checked against
// usageSpan; a direct match never is (same-module access is always legal).
func (r *Resolver) lookup(scopeID ScopeID, name source.Name, usageSpan source.Span) (DeclID, bool) {
	scope := r.scope(scopeID)
	if id, ok := scope.Names[name]; ok {
		return id, true
	}
	for _, h := range scope.Hoisted {
		if h.Name != name {
			continue
		}
		target := r.decl(h.Decl)
		if target.Visibility == ast.Private {
			r.bag.Add(diag.Errorf(diag.CodeResolvePrivate, usageSpan,
				"'%s' is private to module '%s'", r.names.Text(name), r.names.Text(target.Module)))
			return NoDecl, false
		}
		return h.Decl, true
	}
	if scope.Parent.Valid() {
		return r.lookup(scope.Parent, name, usageSpan)
	}
	return NoDecl, false
}
