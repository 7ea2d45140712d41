package types

import "github.com/thresh-lang/threshc/internal/source"

// PointerTo interns `*elem` or `*const elem` (optionally volatile),
// returning the same TypeID on every repeated call with the same shape.
func (in *Interner) PointerTo(elem TypeID, constFlag, volatile bool) TypeID {
	return in.intern(Type{Kind: KindPointer, Elem: elem, Const: constFlag, Volatile: volatile})
}

// SliceOf interns `[]elem` or `[]const elem`.
func (in *Interner) SliceOf(elem TypeID, constFlag bool) TypeID {
	return in.intern(Type{Kind: KindSlice, Elem: elem, Const: constFlag, Len: ArrayDynamicLength})
}

// ArrayOf interns `[n]elem`.
func (in *Interner) ArrayOf(elem TypeID, length uint64) TypeID {
	return in.intern(Type{Kind: KindArray, Elem: elem, Len: length})
}

// NullableOf interns `?elem`.
func (in *Interner) NullableOf(elem TypeID) TypeID {
	return in.intern(Type{Kind: KindNullable, Elem: elem})
}

// ErrorUnionOf interns `errSet!payload`; pass Invalid for errSet to request
// an inferred error set (`!payload`).
func (in *Interner) ErrorUnionOf(errSet, payload TypeID) TypeID {
	return in.intern(Type{Kind: KindErrorUnion, ErrorSet: errSet, Elem: payload})
}

// FnType interns a function signature: ordered {noalias, type} parameters,
// a return type, and an optional calling convention.
func (in *Interner) FnType(params []Param, ret TypeID, callConv source.Name) TypeID {
	return in.intern(Type{Kind: KindFn, Params: params, Ret: ret, CallCnv: callConv})
}

// Named interns the identity of a struct/enum/union/alias declaration. The
// declSeq disambiguates declarations that share a spelled Name (shadowing
// across nested containers), so it must come from the same monotonic
// counter the declaration's ast.Item was stamped with.
func (in *Interner) Named(name source.Name, declSeq uint32) TypeID {
	return in.intern(Type{Kind: KindNamed, Name: name, DeclSeq: declSeq})
}

// ErrorSetMember interns one named error-set tag (e.g. `error.OutOfMemory`).
func (in *Interner) ErrorSetMember(name source.Name) TypeID {
	return in.intern(Type{Kind: KindErrorSet, Name: name})
}

// IsInteger reports whether a Type is an integer of any width, fixed or
// comptime.
func (t *Type) IsInteger() bool { return t.Kind == KindInt || t.Kind == KindComptimeInt }

// IsFloat reports whether a Type is a float of any width, fixed or
// comptime.
func (t *Type) IsFloat() bool { return t.Kind == KindFloat || t.Kind == KindComptimeFloat }

// IsComptimeOnly reports whether a Type must be resolved to a concrete
// width before it can exist at runtime.
func (t *Type) IsComptimeOnly() bool {
	return t.Kind == KindComptimeInt || t.Kind == KindComptimeFloat
}
