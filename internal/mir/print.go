package mir

import (
	"fmt"
	"io"

	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// Dump writes a human-readable rendering of m.
func Dump(w io.Writer, m *Module, names *source.Interner, typesIn *types.Interner) error {
	for i := range m.Globals {
		g := &m.Globals[i]
		fmt.Fprintf(w, "global %s: %s\n", names.Text(g.Name), typesIn.String(g.Type, names))
	}
	for i := range m.Funcs {
		if err := dumpFunc(w, &m.Funcs[i], names, typesIn); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(w io.Writer, f *Func, names *source.Interner, typesIn *types.Interner) error {
	fmt.Fprintf(w, "fn %s", names.Text(f.Name))
	if f.Extern {
		fmt.Fprintln(w, " extern;")
		return nil
	}
	fmt.Fprintln(w, " {")
	for i := range f.Blocks {
		b := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", b.ID)
		for _, phi := range b.Phis {
			fmt.Fprintf(w, "    l%d = phi(%d incoming)\n", phi.Dst, len(phi.Incoming))
		}
		for _, instr := range b.Instr {
			fmt.Fprintf(w, "    %s\n", describeInstr(instr))
		}
		fmt.Fprintf(w, "    %s\n", describeTerm(b.Term))
	}
	fmt.Fprintln(w, "}")
	return nil
}

func describeInstr(in Instr) string {
	switch in.Kind {
	case InstrAssign:
		return fmt.Sprintf("store -> l%d", in.Dst)
	case InstrCall:
		return fmt.Sprintf("l%d = call(%d args)", in.Dst, len(in.Call.Args))
	case InstrBinOp:
		return fmt.Sprintf("l%d = binop(%d)", in.Dst, in.BinOp.Op)
	case InstrUnOp:
		return fmt.Sprintf("l%d = unop(%d)", in.Dst, in.UnOp.Op)
	case InstrConvert:
		return fmt.Sprintf("l%d = convert", in.Dst)
	case InstrAddrOf:
		return fmt.Sprintf("l%d = addrof", in.Dst)
	case InstrStructLit:
		return fmt.Sprintf("l%d = struct{%d fields}", in.Dst, len(in.Struct.Fields))
	case InstrArrayLit:
		return fmt.Sprintf("l%d = array[%d]", in.Dst, len(in.Array.Elems))
	default:
		return "nop"
	}
}

func describeTerm(t Terminator) string {
	switch t.Kind {
	case TermJump:
		return fmt.Sprintf("jump bb%d", t.Target)
	case TermBranch:
		return fmt.Sprintf("branch bb%d, bb%d", t.Then, t.Else)
	case TermSwitch:
		return fmt.Sprintf("switch (%d arms, default bb%d)", len(t.Edges), t.Default)
	case TermReturn:
		if t.HasValue {
			return "return <value>"
		}
		return "return"
	case TermUnreachable:
		return "unreachable"
	default:
		return "<unterminated>"
	}
}
