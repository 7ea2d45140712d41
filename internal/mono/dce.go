package mono

import (
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/types"
)

// Reachable computes which recorded instantiations are transitively used
// starting from a root function (an exported function, a `test`
// declaration, or `main`, as decided by isRoot). An instantiation is
// reachable if any of its use sites names a reachable caller — either a
// root, or another instantiation's own function name, since a generic
// function can itself call a further generic function.
func (r *Recorder) Reachable(isRoot func(fn source.Name) bool) map[types.InstID]bool {
	reachable := make(map[types.InstID]bool, len(r.order))
	for changed := true; changed; {
		changed = false
		for _, id := range r.order {
			if reachable[id] {
				continue
			}
			entry := r.entries[id]
			for _, site := range entry.Sites {
				if isRoot(site.Caller) || r.callerIsReachable(reachable, site.Caller) {
					reachable[id] = true
					changed = true
					break
				}
			}
		}
	}
	return reachable
}

func (r *Recorder) callerIsReachable(reachable map[types.InstID]bool, caller source.Name) bool {
	for id, ok := range reachable {
		if ok && r.entries[id].FnName == caller {
			return true
		}
	}
	return false
}

// Unreachable returns every recorded instantiation dead-code-eliminated
// by a Reachable pass with the same isRoot, in first-seen order — the
// instantiations no root reaches.
func (r *Recorder) Unreachable(isRoot func(fn source.Name) bool) []*Entry {
	reachable := r.Reachable(isRoot)
	var dead []*Entry
	for _, id := range r.order {
		if !reachable[id] {
			dead = append(dead, r.entries[id])
		}
	}
	return dead
}
