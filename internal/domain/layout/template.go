// Package layout holds the static catalog of per-sport slot layouts.
//
// Templates are loaded once (from the embedded catalog or an override file),
// indexed by sport key and treated as immutable afterwards.
package layout

import "strings"

// Wildcard is the sport key of templates that apply to every sport.
const Wildcard = "*"

// Coordinate bounds for slot positions.
const (
	MinCoord = 0.0
	MaxCoord = 100.0
)

// TemplateType identifies how a template is drawn.
type TemplateType string

const (
	TypeFormation   TemplateType = "formation"
	TypeCourtMap    TemplateType = "court_map"
	TypeFieldMap    TemplateType = "field_map"
	TypeRotation    TemplateType = "rotation"
	TypeGroupedList TemplateType = "grouped_list"
)

// Spatial reports whether slots of this template type carry coordinates.
func (t TemplateType) Spatial() bool {
	return t != TypeGroupedList
}

// Side groups formation templates for sports with platoons.
type Side string

const (
	SideNone         Side = ""
	SideOffense      Side = "offense"
	SideDefense      Side = "defense"
	SideSpecialTeams Side = "special_teams"
)

// LayoutSlot is a named, positioned placeholder that may hold one member.
type LayoutSlot struct {
	Key     string   `koanf:"key"`
	Label   string   `koanf:"label"`
	X       float64  `koanf:"x"`
	Y       float64  `koanf:"y"`
	Accepts []string `koanf:"accepts"`
}

// AcceptsAny reports whether any of positionKeys is accepted by the slot.
func (s *LayoutSlot) AcceptsAny(positionKeys []string) bool {
	for _, want := range s.Accepts {
		for _, have := range positionKeys {
			if want == have {
				return true
			}
		}
	}
	return false
}

// SportLayoutTemplate is a named collection of slots for a sport.
type SportLayoutTemplate struct {
	ID       string       `koanf:"id"`
	Name     string       `koanf:"name"`
	SportKey string       `koanf:"sport"`
	Type     TemplateType `koanf:"type"`
	Side     Side         `koanf:"side"`
	Slots    []LayoutSlot `koanf:"slots"`
}

// IsWildcard reports whether the template applies to every sport.
func (t *SportLayoutTemplate) IsWildcard() bool {
	return t.SportKey == Wildcard
}

// Slot returns the slot with the given key.
func (t *SportLayoutTemplate) Slot(key string) (LayoutSlot, bool) {
	for _, s := range t.Slots {
		if s.Key == key {
			return s, true
		}
	}
	return LayoutSlot{}, false
}

// normalizeSport lower-cases and trims a sport key.
func normalizeSport(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
