package mir

import (
	"errors"
	"fmt"
)

// Validate checks structural MIR invariants: every block terminates, every
// terminator's targets exist, and every local an instruction writes (its
// Dst) was actually allocated. It catches lowering bugs in internal/sema, not
// source-program errors (those are diag.Diagnostics raised during checking).
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for i := range m.Funcs {
		if err := validateFunc(&m.Funcs[i]); err != nil {
			errs = append(errs, fmt.Errorf("function %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func) error {
	if f.Extern {
		return nil
	}
	var errs []error
	for i := range f.Blocks {
		b := &f.Blocks[i]
		if b.Term.Kind == TermInvalid {
			errs = append(errs, fmt.Errorf("block %d: unterminated", b.ID))
			continue
		}
		for _, target := range termTargets(&b.Term) {
			if target == NoBlockID {
				continue
			}
			if int(target) < 0 || int(target) >= len(f.Blocks) {
				errs = append(errs, fmt.Errorf("block %d: terminator targets out-of-range block %d", b.ID, target))
			}
		}
		for _, instr := range b.Instr {
			if instr.Dst != NoLocalID && (int(instr.Dst) < 0 || int(instr.Dst) >= len(f.Locals)) {
				errs = append(errs, fmt.Errorf("block %d: instruction writes out-of-range local %d", b.ID, instr.Dst))
			}
		}
	}
	if int(f.Entry) < 0 || int(f.Entry) >= len(f.Blocks) {
		errs = append(errs, fmt.Errorf("entry block %d out of range", f.Entry))
	}
	return errors.Join(errs...)
}

func termTargets(t *Terminator) []BlockID {
	switch t.Kind {
	case TermJump:
		return []BlockID{t.Target}
	case TermBranch:
		return []BlockID{t.Then, t.Else}
	case TermSwitch:
		targets := make([]BlockID, 0, len(t.Edges)+1)
		for _, e := range t.Edges {
			targets = append(targets, e.Target)
		}
		if t.Default != NoBlockID {
			targets = append(targets, t.Default)
		}
		return targets
	default:
		return nil
	}
}
