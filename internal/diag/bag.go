package diag

import "sort"

// Bag accumulates diagnostics for one compilation in source order up to a
// cap, after which Add reports the overflow once and starts discarding.
type Bag struct {
	items    []Diagnostic
	max      int
	overflow bool
}

// NewBag returns a Bag that keeps at most max diagnostics, plus the one
// fatal "too many diagnostics" entry Add appends once the cap is reached.
func NewBag(max int) *Bag {
	if max <= 0 {
		max = 100
	}
	return &Bag{items: make([]Diagnostic, 0, max), max: max}
}

// Add appends d, returning false once the cap has been reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		if !b.overflow {
			b.overflow = true
			b.items = append(b.items, New(SevFatal, "", d.Primary, "too many diagnostics, stopping"))
		}
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any accumulated diagnostic is SevError or worse.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any accumulated diagnostic is SevWarning or worse.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the accumulated diagnostics. Callers must not mutate the
// returned slice; it aliases the Bag's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

// SortBySpan orders diagnostics by (file, start offset) for deterministic,
// source-ordered output regardless of analysis visit order.
func (b *Bag) SortBySpan() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i].Primary, b.items[j].Primary
		if a.File != c.File {
			return a.File < c.File
		}
		return a.Start < c.Start
	})
}
