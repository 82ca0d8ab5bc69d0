// Package assignment maps roster members onto layout slots.
//
// Two strategies exist per session: greedy auto-assignment (Auto) and
// explicit drag/drop assignment (Assignments). Both keep the slot<->member
// relation injective in both directions.
package assignment

import (
	"github.com/okian/lineup/internal/domain/layout"
	"github.com/okian/lineup/internal/domain/model"
)

// Candidate is the part of a member the matcher looks at.
type Candidate struct {
	ID           string
	PositionKeys []string
}

// CandidatesFrom converts members to candidates, preserving order.
func CandidatesFrom(members []model.Member) []Candidate {
	out := make([]Candidate, 0, len(members))
	for i := range members {
		out = append(out, Candidate{ID: members[i].ID, PositionKeys: members[i].PositionKeys()})
	}
	return out
}

// Map is a slot key -> member id assignment.
type Map map[string]string

// Members returns the inverse relation member id -> slot key.
func (m Map) Members() map[string]string {
	inv := make(map[string]string, len(m))
	for slot, member := range m {
		inv[member] = slot
	}
	return inv
}

// Auto performs greedy first-fit matching. Slots are visited in declared
// order; each takes the first not-yet-used candidate whose position keys
// intersect the slot's accepted keys. Later slots may be starved by earlier
// ones. Unmatched slots are absent from the result.
func Auto(slots []layout.LayoutSlot, candidates []Candidate) Map {
	out := make(Map, len(slots))
	used := make(map[string]struct{}, len(slots))
	for i := range slots {
		s := &slots[i]
		for _, c := range candidates {
			if c.ID == "" {
				continue
			}
			if _, taken := used[c.ID]; taken {
				continue
			}
			if s.AcceptsAny(c.PositionKeys) {
				out[s.Key] = c.ID
				used[c.ID] = struct{}{}
				break
			}
		}
	}
	return out
}
