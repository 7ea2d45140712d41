package hir

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
)

// LowerModule lowers every successfully-resolved, non-extern function body
// registered with res into a Module, walking modules in the same
// deterministic order symbols.Resolver.ResolveAll used.
func LowerModule(res *symbols.Resolver, names *source.Interner, bag *diag.Bag) *Module {
	mod := &Module{}
	for _, modScope := range res.ModulesSorted() {
		file := modScope.File
		for _, itemID := range file.Root {
			item := file.Items.Get(itemID)
			if item.Kind != ast.ItemFn || item.Extern || !item.Body.Valid() {
				continue
			}
			declID, ok := res.Lookup(modScope.Scope, item.Name, item.Span)
			if !ok || res.Decl(declID).State != symbols.Ok {
				continue
			}
			b := NewBuilder(file, bag, names)
			mod.Funcs = append(mod.Funcs, *b.LowerFn(item))
		}
	}
	return mod
}
