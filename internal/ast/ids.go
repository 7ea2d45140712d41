package ast

// Every ID below is a 1-based index into the like-named arena on *File; the
// zero value means "absent" and is never dereferenced.
type (
	ExprID     uint32
	StmtID     uint32
	ItemID     uint32
	TypeExprID uint32
	FieldID    uint32 // struct/enum/union member, function parameter
	CaseID     uint32 // switch prong
	AsmOperandID uint32
	AsmClobberID uint32
)

const (
	NoExpr     ExprID     = 0
	NoStmt     StmtID     = 0
	NoItem     ItemID     = 0
	NoTypeExpr TypeExprID = 0
	NoField    FieldID    = 0
	NoCase     CaseID     = 0
)

func (id ExprID) Valid() bool     { return id != NoExpr }
func (id StmtID) Valid() bool     { return id != NoStmt }
func (id ItemID) Valid() bool     { return id != NoItem }
func (id TypeExprID) Valid() bool { return id != NoTypeExpr }
func (id FieldID) Valid() bool    { return id != NoField }
func (id CaseID) Valid() bool     { return id != NoCase }

// Visibility is shared by top-level declarations and container members.
type Visibility uint8

const (
	Private Visibility = iota
	Pub
	Export
)

// ContainerLayout is a struct/enum/union's memory layout request.
type ContainerLayout uint8

const (
	LayoutAuto ContainerLayout = iota
	LayoutExtern
	LayoutPacked
)

// DeferKind distinguishes the three `defer` shapes the grammar accepts:
// `defer`, `?defer`, `%defer`.
type DeferKind uint8

const (
	DeferUnconditional DeferKind = iota
	DeferMaybe
	DeferError
)
