package ast

import "github.com/thresh-lang/threshc/internal/source"

// File is the per-compilation-unit arena collection the parser builds. All
// four node arenas share one monotonic sequence counter so every node in the
// tree — regardless of kind — has a total creation order, which is what the
// declaration resolver and Backend Emitter iterate by for deterministic
// output.
type File struct {
	ID   source.FileID
	Path string

	Exprs     *Exprs
	Stmts     *Stmts
	Items     *Items
	TypeExprs *TypeExprs

	Root []ItemID // top-level declarations, in source order

	seq uint32
}

// NewFile returns an empty File arena set for the given source file.
func NewFile(id source.FileID, path string) *File {
	return &File{
		ID:        id,
		Path:      path,
		Exprs:     NewExprs(256),
		Stmts:     NewStmts(128),
		Items:     NewItems(64),
		TypeExprs: NewTypeExprs(64),
	}
}

// nextSeq returns the next value of the file-wide creation-order counter.
func (f *File) nextSeq() uint32 {
	f.seq++
	return f.seq
}

func (f *File) NewExpr(kind ExprKind, span source.Span) ExprID {
	return f.Exprs.New(kind, span, f.nextSeq())
}

func (f *File) NewStmt(kind StmtKind, span source.Span) StmtID {
	return f.Stmts.New(kind, span, f.nextSeq())
}

func (f *File) NewItem(kind ItemKind, span source.Span) ItemID {
	return f.Items.New(kind, span, f.nextSeq())
}

func (f *File) NewTypeExpr(kind TypeExprKind, span source.Span) TypeExprID {
	return f.TypeExprs.New(kind, span, f.nextSeq())
}
