// Package mono is the monomorphization bookkeeping layer: it doesn't
// instantiate generic bodies itself (that happens in internal/sema, which
// interprets a generic function's IR against a concrete compile-time
// argument tuple), but it is the single source of truth for which
// {function, argument vector} instantiations exist, so every call site
// requesting the same one shares a single Entry. internal/backend's
// emitter does not consult it.
package mono

import (
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// UseSite records one call site that requested an instantiation.
type UseSite struct {
	Span   source.Span
	Caller source.Name
}

// Entry is everything recorded about one canonical instantiation.
type Entry struct {
	ID      types.InstID
	FnName  source.Name
	DeclSeq uint32
	Args    []types.InstArg
	Sites   []UseSite
}

// Recorder is the canonical instantiation table for one compilation: every
// generic call site funnels through Record, which folds {function, args}
// into the type arena's InstID (internal/types/generic.go) so two call
// sites requesting the same instantiation share one Entry.
type Recorder struct {
	typesIn *types.Interner
	entries map[types.InstID]*Entry
	// order preserves first-seen order, so backend emission and golden
	// test output are deterministic run to run.
	order []types.InstID
	// pending holds instantiations recorded since the last Drain, the
	// worklist Drain returns.
	pending []types.InstID
}

// NewRecorder returns a Recorder backed by typesIn's instantiation table.
func NewRecorder(typesIn *types.Interner) *Recorder {
	return &Recorder{typesIn: typesIn, entries: make(map[types.InstID]*Entry)}
}

// Record folds fnName/declSeq/args into a canonical InstID and registers
// site against it, allocating a fresh Entry on first sight. isNew reports
// whether this call created the entry (useful for emitting a log line
// without re-deriving it from Pending afterward).
func (r *Recorder) Record(fnName source.Name, declSeq uint32, args []types.InstArg, site UseSite) (id types.InstID, isNew bool) {
	id = r.typesIn.Instantiation(fnName, declSeq, args)
	entry, ok := r.entries[id]
	if !ok {
		entry = &Entry{ID: id, FnName: fnName, DeclSeq: declSeq, Args: args}
		r.entries[id] = entry
		r.order = append(r.order, id)
		r.pending = append(r.pending, id)
		isNew = true
	}
	entry.Sites = append(entry.Sites, site)
	return id, isNew
}

// Entry returns the recorded entry for id, if any.
func (r *Recorder) Entry(id types.InstID) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// All returns every recorded instantiation in first-seen order.
func (r *Recorder) All() []*Entry {
	out := make([]*Entry, len(r.order))
	for i, id := range r.order {
		out[i] = r.entries[id]
	}
	return out
}

// Drain returns every instantiation recorded since the last Drain and
// clears the pending worklist. Interpreting a generic call can itself
// record further instantiations (a generic function calling another
// generic function), so a later Drain can return entries an earlier one
// did not. Only this package's tests call it.
func (r *Recorder) Drain() []*Entry {
	if len(r.pending) == 0 {
		return nil
	}
	out := make([]*Entry, len(r.pending))
	for i, id := range r.pending {
		out[i] = r.entries[id]
	}
	r.pending = r.pending[:0]
	return out
}

// Len reports how many distinct instantiations have been recorded.
func (r *Recorder) Len() int { return len(r.order) }
