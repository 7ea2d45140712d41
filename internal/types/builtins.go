package types

// Builtins holds the TypeIDs of every primitive type, interned once up
// front so sema and hir can reference `Bool`, `I32`, and friends by field
// rather than re-describing and re-hashing them at every use site.
type Builtins struct {
	Void     TypeID
	NoReturn TypeID
	Bool     TypeID

	I8, I16, I32, I64   TypeID
	U8, U16, U32, U64   TypeID
	F32, F64            TypeID
	ComptimeInt         TypeID
	ComptimeFloat       TypeID

	// Type is the meta-type `type` itself: a generic function parameter
	// declared `comptime T: type` takes this as its static type, with the
	// actual argument a TypeID folded into the call's instantiation key.
	Type TypeID
}

// NewBuiltins interns the fixed primitive set into in and returns handles
// to each. Call once per Interner.
func NewBuiltins(in *Interner) Builtins {
	return Builtins{
		Void:          in.intern(Type{Kind: KindVoid}),
		NoReturn:      in.intern(Type{Kind: KindNoReturn}),
		Bool:          in.intern(Type{Kind: KindBool}),
		I8:            in.intern(Type{Kind: KindInt, Width: 8, Signed: true}),
		I16:           in.intern(Type{Kind: KindInt, Width: 16, Signed: true}),
		I32:           in.intern(Type{Kind: KindInt, Width: 32, Signed: true}),
		I64:           in.intern(Type{Kind: KindInt, Width: 64, Signed: true}),
		U8:            in.intern(Type{Kind: KindInt, Width: 8}),
		U16:           in.intern(Type{Kind: KindInt, Width: 16}),
		U32:           in.intern(Type{Kind: KindInt, Width: 32}),
		U64:           in.intern(Type{Kind: KindInt, Width: 64}),
		F32:           in.intern(Type{Kind: KindFloat, Width: 32}),
		F64:           in.intern(Type{Kind: KindFloat, Width: 64}),
		ComptimeInt:   in.intern(Type{Kind: KindComptimeInt}),
		ComptimeFloat: in.intern(Type{Kind: KindComptimeFloat}),
		Type:          in.intern(Type{Kind: KindType}),
	}
}

// IntWidths lists the fixed-width integer bit widths the language accepts
// for `iN`/`uN` spelling. Nothing in this tree reads it: the named-type
// resolver's lookupBuiltinName spells the accepted names out itself.
var IntWidths = []uint8{8, 16, 32, 64}
