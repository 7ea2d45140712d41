// Package symbols implements the declaration resolver: it walks a file's
// top-level items into a module scope, hoists `use` imports, and drives
// every declaration through Unresolved -> Resolving -> {Ok, Invalid},
// diagnosing re-entrant resolution as a cycle.
package symbols

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// UseEdge is one `use a::b::c;` item, recorded for later hoisting once
// every module referenced by a path is known to the Resolver.
type UseEdge struct {
	Item ast.ItemID
	Path []source.Name
}

// ModuleScope is the resolved state for one compilation unit (currently:
// one file). Multi-file modules share the Resolver's Modules table so
// `use` can cross file boundaries.
type ModuleScope struct {
	Name  source.Name
	File  *ast.File
	Scope ScopeID
	Uses  []UseEdge
}

// Resolver owns every Scope/Decl allocated while resolving a set of
// modules, plus the shared interners declarations' types are built from.
type Resolver struct {
	bag     *diag.Bag
	names   *source.Interner
	typesIn *types.Interner
	b       types.Builtins

	Modules map[source.Name]*ModuleScope

	scopes []Scope
	decls  []Decl

	order []DeclID // declaration order across all modules, for a deterministic resolve pass
}

// New returns an empty Resolver. names/typesIn/b are shared with the rest
// of the compilation (lexer, parser, sema).
func New(bag *diag.Bag, names *source.Interner, typesIn *types.Interner, b types.Builtins) *Resolver {
	return &Resolver{
		bag:     bag,
		names:   names,
		typesIn: typesIn,
		b:       b,
		Modules: make(map[source.Name]*ModuleScope),
		scopes:  make([]Scope, 1), // slot 0: NoScope
		decls:   make([]Decl, 1),  // slot 0: NoDecl
	}
}

func (r *Resolver) scope(id ScopeID) *Scope { return &r.scopes[id] }
func (r *Resolver) decl(id DeclID) *Decl    { return &r.decls[id] }

// Decl returns the resolved declaration for id; the zero Decl for NoDecl.
func (r *Resolver) Decl(id DeclID) *Decl { return &r.decls[id] }

func (r *Resolver) allocScope(kind ScopeKind, parent ScopeID) ScopeID {
	id := ScopeID(len(r.scopes))
	r.scopes = append(r.scopes, *newScope(kind, parent))
	if parent.Valid() {
		p := r.scope(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

func (r *Resolver) allocDecl(d Decl) DeclID {
	id := DeclID(len(r.decls))
	r.decls = append(r.decls, d)
	r.order = append(r.order, id)
	return id
}

// AddModule registers file under moduleName, allocating a Decl for every
// top-level item and recording `use` edges for later hoisting. Call this
// once per file before ResolveAll.
func (r *Resolver) AddModule(moduleName source.Name, file *ast.File) *ModuleScope {
	mod := &ModuleScope{Name: moduleName, File: file, Scope: r.allocScope(ScopeModule, NoScope)}
	r.Modules[moduleName] = mod
	scope := r.scope(mod.Scope)

	for _, itemID := range file.Root {
		item := file.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemUse:
			mod.Uses = append(mod.Uses, UseEdge{Item: itemID, Path: item.UsePath})
			continue
		case ast.ItemComptimeBlock:
			continue // anonymous; never declares a name
		}

		kind := declKindOf(item.Kind)
		declID := r.allocDecl(Decl{
			Name: item.Name, Kind: kind, State: Unresolved,
			Visibility: item.Visibility, Module: moduleName,
			Item: itemID, Span: item.Span, Seq: item.Seq,
		})
		if existing, dup := scope.Names[item.Name]; dup {
			r.bag.Add(diag.Errorf(diag.CodeResolveDuplicate, item.Span,
				"'%s' redeclared in this scope (first declared at %s)",
				r.names.Text(item.Name), r.decl(existing).Span))
			r.decl(declID).State = Invalid
			continue
		}
		scope.declare(item.Name, declID)
	}
	return mod
}

func declKindOf(k ast.ItemKind) DeclKind {
	switch k {
	case ast.ItemFn:
		return DeclFn
	case ast.ItemVar:
		return DeclVar
	case ast.ItemContainer:
		return DeclContainer
	case ast.ItemTest:
		return DeclTest
	default:
		return DeclInvalid
	}
}

// ResolveAll hoists every module's `use` edges and then resolves every
// declaration in registration order, so diagnostics come out deterministic
// and independent of map iteration.
func (r *Resolver) ResolveAll() {
	for _, mod := range r.modulesInOrder() {
		r.hoistUses(mod)
	}
	for _, id := range r.order {
		r.resolveDecl(id)
	}
}

// ModulesSorted exposes modulesInOrder to other packages (internal/hir
// lowers functions in the same deterministic module order ResolveAll used).
func (r *Resolver) ModulesSorted() []*ModuleScope { return r.modulesInOrder() }

// modulesInOrder returns modules sorted by name text, since Go map
// iteration order is not itself deterministic.
func (r *Resolver) modulesInOrder() []*ModuleScope {
	mods := make([]*ModuleScope, 0, len(r.Modules))
	for _, m := range r.Modules {
		mods = append(mods, m)
	}
	for i := 1; i < len(mods); i++ {
		for j := i; j > 0 && r.names.Text(mods[j-1].Name) > r.names.Text(mods[j].Name); j-- {
			mods[j-1], mods[j] = mods[j], mods[j-1]
		}
	}
	return mods
}
