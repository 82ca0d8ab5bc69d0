// Package render maps engine state to presentation values and draws them.
//
// Card is a pure mapping from a card and a render context to a CardView.
// Surfaces draw CardViews, team layouts and reveal snapshots; TextSurface is
// the terminal implementation.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/model"
)

// Variant is the size a card is drawn at.
type Variant string

const (
	// VariantFull shows everything.
	VariantFull Variant = "full"
	// VariantCompact fits formation slots: no photo, at most two badges.
	VariantCompact Variant = "compact"
	// VariantInert is a face-down card: identity only, no rating.
	VariantInert Variant = "inert"
)

const compactBadgeLimit = 2

// palette maps each style to background and default accent colours.
var palette = map[card.Style][2]string{ //nolint:gochecknoglobals // fixed palette
	card.StyleClassic: {"#f4f1e8", "#1d3557"},
	card.StyleCarbon:  {"#1f1f1f", "#e63946"},
	card.StyleGold:    {"#d4af37", "#3d2b00"},
	card.StyleHolo:    {"#b8c6ff", "#5a189a"},
	card.StyleTeam:    {"#0b3d91", "#ffffff"},
}

// Context carries per-draw presentation hints.
type Context struct {
	Variant     Variant
	Highlighted bool
}

// CardView is a card ready to be drawn.
type CardView struct {
	ID          string
	Name        string
	Ribbon      string
	Subtitle    string
	Jersey      string
	Position    string
	LineGroup   string
	Rating      string
	Tier        card.Tier
	Badges      []string
	Photo       string
	Background  string
	Accent      string
	Captain     bool
	Variant     Variant
	Highlighted bool
}

// Card builds the view of c for ctx.
func Card(c *card.Card, ctx Context) CardView {
	variant := ctx.Variant
	if variant == "" {
		variant = VariantFull
	}
	colours := palette[card.ParseStyle(string(c.Style))]
	accent := c.Accent
	if accent == "" {
		accent = colours[1]
	}

	v := CardView{
		ID:          c.ID,
		Name:        c.DisplayName(),
		Ribbon:      Ribbon(c),
		Jersey:      jersey(c.Jersey),
		Background:  colours[0],
		Accent:      accent,
		Captain:     c.Captain,
		Variant:     variant,
		Highlighted: ctx.Highlighted,
	}
	if variant == VariantInert {
		return v
	}

	v.Subtitle = subtitle(c)
	if p, ok := c.PrimaryPosition(); ok {
		v.Position = label(p.Name, p.Key)
	}
	if g, ok := c.PrimaryLineGroup(); ok {
		v.LineGroup = label(g.Name, g.Key)
	}
	v.Rating, v.Tier = "--", c.Tier()
	if c.Rating != nil {
		v.Rating = strconv.Itoa(*c.Rating)
	}
	for _, b := range c.Badges {
		if variant == VariantCompact && len(v.Badges) == compactBadgeLimit {
			break
		}
		v.Badges = append(v.Badges, label(b.Label, b.Key))
	}
	if variant == VariantFull {
		v.Photo = c.PhotoRef
	}
	return v
}

// Ribbon is the role banner of a card: the role title when one is set,
// otherwise the role itself.
func Ribbon(c *card.Card) string {
	upper := cases.Upper(language.Und)
	if t := strings.TrimSpace(c.RoleTitle); t != "" && c.Role != model.RolePlayer {
		return upper.String(t)
	}
	switch c.Role {
	case model.RoleCoach:
		return "COACH"
	case model.RoleStaff:
		return "STAFF"
	default:
		if c.Captain {
			return "CAPTAIN"
		}
		return "PLAYER"
	}
}

func subtitle(c *card.Card) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{c.Team, c.Season} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func jersey(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("#%d", *n)
}

func label(name, key string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return key
}
