// Package roster derives filtered, role-partitioned views of a team roster.
//
// The Predicate defined here is the only filter implementation in the engine:
// the same filtered set feeds both the listing and the auto-assignment
// candidate pool.
package roster

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/lineup/internal/domain/model"
)

// Predicate selects roster members. Zero-valued fields are inactive; active
// fields combine with AND.
type Predicate struct {
	// LineGroup must appear verbatim among the member's line group keys.
	LineGroup string `json:"line_group,omitempty"`
	// PositionGroup must prefix at least one of the member's position keys.
	PositionGroup string `json:"position_group,omitempty"`
	// StartersOnly keeps only members flagged as starters.
	StartersOnly bool `json:"starters_only,omitempty"`
	// NameSearch is a case-insensitive substring of the display name,
	// spaces included. A blank search is inactive.
	NameSearch string `json:"name_search,omitempty"`
}

// IsZero reports whether no field is active.
func (p Predicate) IsZero() bool {
	return p.Active() == 0
}

// Active returns the number of active fields.
func (p Predicate) Active() int {
	n := 0
	if p.LineGroup != "" {
		n++
	}
	if p.PositionGroup != "" {
		n++
	}
	if p.StartersOnly {
		n++
	}
	if strings.TrimSpace(p.NameSearch) != "" {
		n++
	}
	return n
}

// Match reports whether m satisfies every active field.
func (p Predicate) Match(m *model.Member) bool {
	if p.LineGroup != "" && !hasLineGroup(m, p.LineGroup) {
		return false
	}
	if p.PositionGroup != "" && !hasPositionPrefix(m, p.PositionGroup) {
		return false
	}
	if p.StartersOnly && !m.Starter {
		return false
	}
	if strings.TrimSpace(p.NameSearch) != "" {
		fold := cases.Fold()
		if !strings.Contains(fold.String(m.DisplayName()), fold.String(p.NameSearch)) {
			return false
		}
	}
	return true
}

func hasLineGroup(m *model.Member, key string) bool {
	for _, g := range m.LineGroups {
		if g.Key == key {
			return true
		}
	}
	return false
}

func hasPositionPrefix(m *model.Member, prefix string) bool {
	for _, p := range m.Positions {
		if strings.HasPrefix(p.Key, prefix) {
			return true
		}
	}
	return false
}

// Filter returns the members matching p, preserving roster order.
func Filter(members []model.Member, p Predicate) []model.Member {
	out := make([]model.Member, 0, len(members))
	for i := range members {
		if p.Match(&members[i]) {
			out = append(out, members[i])
		}
	}
	return out
}
