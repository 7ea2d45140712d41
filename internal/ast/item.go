package ast

import "github.com/thresh-lang/threshc/internal/source"

// ItemKind tags top-level and container-member declarations: functions,
// var/const bindings, struct/enum/union container declarations, `use`
// imports, and `test` blocks.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFn
	ItemVar
	ItemContainer // struct/enum/union
	ItemUse
	ItemTest
	ItemComptimeBlock // top-level `comptime { ... }`
)

// ContainerKind distinguishes struct/enum/union bodies of an ItemContainer.
type ContainerKind uint8

const (
	ContainerStruct ContainerKind = iota
	ContainerEnum
	ContainerUnion
)

// Item is a fat node for every declaration-level construct.
type Item struct {
	Kind ItemKind
	Span source.Span
	Seq  uint32

	Name       source.Name
	Visibility Visibility

	// ItemFn
	Params    []FnParam
	RetType   TypeExprID
	Body      ExprID // ExprBlock; NoExpr for `extern fn` prototypes
	Extern    bool
	Inline    bool
	CallConv  source.Name
	Section   source.Name
	Align     ExprID

	// ItemVar
	Mutable bool
	Type    TypeExprID
	Value   ExprID

	// ItemContainer
	ContainerKind ContainerKind
	Layout        ContainerLayout
	Fields        []ContainerField
	Members       []ItemID // nested declarations inside the container body
	BackingType   TypeExprID // enum(u8) explicit tag type

	// ItemUse
	UsePath []source.Name

	// ItemTest
	TestName string
}

// ContainerField is one struct field, enum variant, or union variant.
type ContainerField struct {
	Name    source.Name
	Type    TypeExprID // enum variants may omit this (pure tag)
	Default ExprID     // struct field default value, NoExpr if absent
	Value   ExprID     // explicit enum tag value, NoExpr if auto-assigned
}

// Items is the per-file arena of declaration nodes.
type Items struct {
	arena *Arena[Item]
}

func NewItems(capHint int) *Items { return &Items{arena: NewArena[Item](capHint)} }

func (is *Items) New(kind ItemKind, span source.Span, seq uint32) ItemID {
	return ItemID(is.arena.Alloc(Item{Kind: kind, Span: span, Seq: seq}))
}

func (is *Items) Get(id ItemID) *Item { return is.arena.Get(uint32(id)) }
func (is *Items) Len() int            { return is.arena.Len() }
