// Package card projects roster records into immutable presentation cards.
//
// Projection is pure: no I/O, no shared state. Cards are rebuilt on every
// render and carry no identity beyond the source member id.
package card

import (
	"strings"

	"github.com/okian/lineup/internal/domain/model"
)

// Rating bounds for the card rating domain.
const (
	MinRating = 40
	MaxRating = 99
)

// Tier thresholds, inclusive lower bounds.
const (
	silverFloor = 65
	goldFloor   = 80
	eliteFloor  = 90
)

// Style is the card background style. The palette is fixed.
type Style string

const (
	StyleClassic Style = "classic"
	StyleCarbon  Style = "carbon"
	StyleGold    Style = "gold"
	StyleHolo    Style = "holo"
	StyleTeam    Style = "team"
)

// Styles lists the palette in display order.
var Styles = []Style{StyleClassic, StyleCarbon, StyleGold, StyleHolo, StyleTeam}

// ParseStyle maps a raw style to the palette, defaulting to classic.
func ParseStyle(raw string) Style {
	s := Style(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Styles {
		if s == known {
			return s
		}
	}
	return StyleClassic
}

// Tier is a rating band derived from the card rating.
type Tier string

const (
	TierNone   Tier = ""
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
	TierElite  Tier = "elite"
)

// Context carries the team-level labels stamped on each card.
type Context struct {
	Team   string
	Sport  string
	Season string
}

// Card is the render-ready projection of a roster member.
type Card struct {
	ID         string
	FirstName  string
	LastName   string
	PhotoRef   string
	Team       string
	Sport      string
	Season     string
	Jersey     *int
	Positions  []model.Position
	LineGroups []model.LineGroup
	Role       model.Role
	RoleTitle  string
	Badges     []model.Badge
	Rating     *int
	Style      Style
	Accent     string
	Starter    bool
	Captain    bool
}

// Project builds a Card from a member and its team context.
func Project(m model.Member, ctx Context) Card { //nolint:gocritic // hugeParam: members are value records
	c := Card{
		ID:         m.ID,
		FirstName:  strings.TrimSpace(m.FirstName),
		LastName:   strings.TrimSpace(m.LastName),
		PhotoRef:   m.PhotoRef,
		Team:       ctx.Team,
		Sport:      ctx.Sport,
		Season:     ctx.Season,
		Positions:  append([]model.Position(nil), m.Positions...),
		LineGroups: append([]model.LineGroup(nil), m.LineGroups...),
		Role:       m.Role,
		RoleTitle:  strings.TrimSpace(m.RoleTitle),
		Badges:     append([]model.Badge(nil), m.Badges...),
		Style:      ParseStyle(m.Style),
		Accent:     strings.TrimSpace(m.Accent),
		Starter:    m.Starter,
		Captain:    m.Captain,
	}
	if !c.Role.Valid() {
		c.Role = model.RolePlayer
	}
	if m.Jersey != nil {
		j := *m.Jersey
		c.Jersey = &j
	}
	if m.Rating > 0 {
		r := clampRating(m.Rating)
		c.Rating = &r
	}
	return c
}

// ProjectAll projects members in order.
func ProjectAll(members []model.Member, ctx Context) []Card {
	out := make([]Card, 0, len(members))
	for i := range members {
		out = append(out, Project(members[i], ctx))
	}
	return out
}

func clampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// DisplayName joins first and last name.
func (c *Card) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// PrimaryPosition returns the flagged primary position or the first one.
func (c *Card) PrimaryPosition() (model.Position, bool) {
	return model.PrimaryOf(c.Positions, func(p model.Position) bool { return p.Primary })
}

// PrimaryLineGroup returns the flagged primary line group or the first one.
func (c *Card) PrimaryLineGroup() (model.LineGroup, bool) {
	return model.PrimaryOf(c.LineGroups, func(g model.LineGroup) bool { return g.Primary })
}

// PositionKeys returns position keys in declared order.
func (c *Card) PositionKeys() []string {
	keys := make([]string, 0, len(c.Positions))
	for _, p := range c.Positions {
		keys = append(keys, p.Key)
	}
	return keys
}

// LineGroupKeys returns line group keys in declared order.
func (c *Card) LineGroupKeys() []string {
	keys := make([]string, 0, len(c.LineGroups))
	for _, g := range c.LineGroups {
		keys = append(keys, g.Key)
	}
	return keys
}

// Tier returns the rating band, or TierNone for unrated cards.
func (c *Card) Tier() Tier {
	if c.Rating == nil {
		return TierNone
	}
	switch r := *c.Rating; {
	case r >= eliteFloor:
		return TierElite
	case r >= goldFloor:
		return TierGold
	case r >= silverFloor:
		return TierSilver
	default:
		return TierBronze
	}
}
