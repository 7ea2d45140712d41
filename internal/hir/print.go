package hir

import (
	"fmt"
	"io"

	"github.com/thresh-lang/threshc/internal/source"
)

// Printer dumps a Module to a stable text form; lower_test.go renders a
// lowered function through Dump to inspect it.
type Printer struct {
	w     io.Writer
	names *source.Interner
}

func NewPrinter(w io.Writer, names *source.Interner) *Printer {
	return &Printer{w: w, names: names}
}

// Dump writes every function in m to w.
func Dump(w io.Writer, m *Module, names *source.Interner) error {
	p := NewPrinter(w, names)
	for i := range m.Funcs {
		if err := p.Func(&m.Funcs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) Func(f *Func) error {
	if _, err := fmt.Fprintf(p.w, "fn %s(", p.names.Text(f.Name)); err != nil {
		return err
	}
	for i, param := range f.Params {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		fmt.Fprintf(p.w, "%s: l%d", p.names.Text(param.Name), param.Local)
	}
	fmt.Fprintf(p.w, ") {\n")
	for i := range f.Blocks {
		if err := p.block(&f.Blocks[i]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w, "}")
	return err
}

func (p *Printer) block(b *BasicBlock) error {
	fmt.Fprintf(p.w, "  bb%d:\n", b.ID)
	for _, phi := range b.Phis {
		fmt.Fprintf(p.w, "    l%d = phi(%d incoming)\n", phi.Local, len(phi.Incoming))
	}
	for _, instr := range b.Instr {
		switch instr.Kind {
		case InstrEval:
			fmt.Fprintf(p.w, "    eval e%d\n", instr.Expr)
		case InstrBind:
			fmt.Fprintf(p.w, "    l%d = e%d\n", instr.Local, instr.Expr)
		case InstrDeferCall:
			fmt.Fprintf(p.w, "    defer-call e%d\n", instr.Expr)
		}
	}
	switch b.Term.Kind {
	case TermJump:
		fmt.Fprintf(p.w, "    jump bb%d\n", b.Term.Target)
	case TermBranch:
		fmt.Fprintf(p.w, "    branch e%d, bb%d, bb%d\n", b.Term.Cond, b.Term.Then, b.Term.Else)
	case TermSwitch:
		fmt.Fprintf(p.w, "    switch e%d (%d arms, default bb%d)\n", b.Term.Cond, len(b.Term.Edges), b.Term.Default)
	case TermReturn:
		if b.Term.Value.Valid() {
			fmt.Fprintf(p.w, "    return e%d\n", b.Term.Value)
		} else {
			fmt.Fprintln(p.w, "    return")
		}
	case TermUnreachable:
		fmt.Fprintln(p.w, "    unreachable")
	default:
		fmt.Fprintln(p.w, "    <unterminated>")
	}
	_, err := fmt.Fprintln(p.w)
	return err
}
