// Package model contains domain models passed between layers.
package model

import "strings"

// Role is the closed set of roster role variants.
type Role string

const (
	RolePlayer Role = "player"
	RoleCoach  Role = "coach"
	RoleStaff  Role = "staff"
)

// Valid reports whether r is one of the known role variants.
func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleCoach, RoleStaff:
		return true
	}
	return false
}

// Position is a sport position a member can play, e.g. "QB" or "OLB".
type Position struct {
	ID      string `koanf:"id" json:"id"`
	Key     string `koanf:"key" json:"key"`
	Name    string `koanf:"name" json:"name"`
	Primary bool   `koanf:"primary" json:"primary"`
}

// LineGroup is a unit within a team, e.g. "offense", "first_line".
type LineGroup struct {
	ID      string `koanf:"id" json:"id"`
	Key     string `koanf:"key" json:"key"`
	Name    string `koanf:"name" json:"name"`
	Primary bool   `koanf:"primary" json:"primary"`
}

// Badge is an achievement shown on a card.
type Badge struct {
	Key   string `koanf:"key" json:"key"`
	Label string `koanf:"label" json:"label"`
	Icon  string `koanf:"icon" json:"icon,omitempty"`
}

// Member is a roster record as delivered by the roster provider. It is
// read-only for the engine and recomputed on every render.
type Member struct {
	ID         string      `koanf:"id" json:"id"`
	FirstName  string      `koanf:"first_name" json:"first_name"`
	LastName   string      `koanf:"last_name" json:"last_name"`
	PhotoRef   string      `koanf:"photo" json:"photo,omitempty"`
	Jersey     *int        `koanf:"jersey" json:"jersey,omitempty"`
	Role       Role        `koanf:"role" json:"role"`
	RoleTitle  string      `koanf:"role_title" json:"role_title,omitempty"`
	Starter    bool        `koanf:"starter" json:"starter"`
	Captain    bool        `koanf:"captain" json:"captain"`
	Positions  []Position  `koanf:"positions" json:"positions"`
	LineGroups []LineGroup `koanf:"line_groups" json:"line_groups"`
	Rating     int         `koanf:"rating" json:"rating,omitempty"`
	Badges     []Badge     `koanf:"badges" json:"badges,omitempty"`
	Style      string      `koanf:"style" json:"style,omitempty"`
	Accent     string      `koanf:"accent" json:"accent,omitempty"`
}

// DisplayName joins the name parts with a single space.
func (m *Member) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
}

// PositionKeys returns the member's position keys in declared order.
func (m *Member) PositionKeys() []string {
	keys := make([]string, 0, len(m.Positions))
	for _, p := range m.Positions {
		keys = append(keys, p.Key)
	}
	return keys
}

// LineGroupKeys returns the member's line group keys in declared order.
func (m *Member) LineGroupKeys() []string {
	keys := make([]string, 0, len(m.LineGroups))
	for _, g := range m.LineGroups {
		keys = append(keys, g.Key)
	}
	return keys
}

// PrimaryPosition returns the position flagged primary, or the first one.
// The boolean is false when the member has no positions.
func (m *Member) PrimaryPosition() (Position, bool) {
	return PrimaryOf(m.Positions, func(p Position) bool { return p.Primary })
}

// PrimaryLineGroup returns the line group flagged primary, or the first one.
func (m *Member) PrimaryLineGroup() (LineGroup, bool) {
	return PrimaryOf(m.LineGroups, func(g LineGroup) bool { return g.Primary })
}

// PrimaryOf returns the first element for which primary reports true and
// falls back to the first element when none is flagged.
func PrimaryOf[T any](items []T, primary func(T) bool) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	for _, it := range items {
		if primary(it) {
			return it, true
		}
	}
	return items[0], true
}
