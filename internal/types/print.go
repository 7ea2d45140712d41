package types

import (
	"fmt"
	"strings"

	"github.com/thresh-lang/threshc/internal/source"
)

// String renders id in Thresh's own type syntax, using names to resolve
// interned identifiers back to text. Used by internal/diagfmt for
// diagnostics and by internal/sema for error messages.
func (in *Interner) String(id TypeID, names *source.Interner) string {
	if !id.Valid() {
		return "<invalid>"
	}
	t := in.Get(id)
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindNoReturn:
		return "noreturn"
	case KindBool:
		return "bool"
	case KindComptimeInt:
		return "comptime_int"
	case KindComptimeFloat:
		return "comptime_float"
	case KindInt:
		if t.Signed {
			return fmt.Sprintf("i%d", t.Width)
		}
		return fmt.Sprintf("u%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	case KindPointer:
		prefix := "*"
		if t.Const {
			prefix += "const "
		}
		if t.Volatile {
			prefix += "volatile "
		}
		return prefix + in.String(t.Elem, names)
	case KindSlice:
		prefix := "[]"
		if t.Const {
			prefix += "const "
		}
		return prefix + in.String(t.Elem, names)
	case KindArray:
		return fmt.Sprintf("[%d]%s", t.Len, in.String(t.Elem, names))
	case KindNullable:
		return "?" + in.String(t.Elem, names)
	case KindErrorUnion:
		if !t.ErrorSet.Valid() {
			return "!" + in.String(t.Elem, names)
		}
		return in.String(t.ErrorSet, names) + "!" + in.String(t.Elem, names)
	case KindErrorSet:
		return "error." + names.Text(t.Name)
	case KindFn:
		var b strings.Builder
		b.WriteString("fn(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if p.NoAlias {
				b.WriteString("noalias ")
			}
			b.WriteString(in.String(p.Type, names))
		}
		b.WriteString(") ")
		b.WriteString(in.String(t.Ret, names))
		return b.String()
	case KindNamed:
		return names.Text(t.Name)
	case KindType:
		return "type"
	default:
		return "<invalid>"
	}
}
