package view

import (
	"github.com/okian/lineup/internal/domain/assignment"
	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/layout"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/metrics"
)

// Status tells a surface what kind of layout to draw.
type Status string

const (
	// StatusReady has a template; Placements or Groups are filled.
	StatusReady Status = "ready"
	// StatusNoLayout means no template exists for the sport. Surfaces must
	// render an explicit "no layout available" state.
	StatusNoLayout Status = "no_layout"
)

// Placement is one slot of a spatial template. Card is nil for an empty slot.
type Placement struct {
	Slot        layout.LayoutSlot
	Card        *card.Card
	Highlighted bool
}

// Group is one heading of a grouped list.
type Group struct {
	Key   string
	Name  string
	Cards []card.Card
}

// Layout is everything a surface needs to draw the team view.
type Layout struct {
	Status   Status
	Template layout.SportLayoutTemplate
	Mode     Mode
	Filter   roster.Predicate

	// Placements follow the template's slot order (spatial templates only).
	Placements []Placement
	// Groups partition the filtered roster (grouped_list templates only).
	Groups []Group
	// Bench lists filtered members without a visible slot, in roster order.
	Bench []card.Card

	Coaches  []card.Card
	Athletes []card.Card
	Staff    []card.Card

	// LineGroups are the selector options for the whole roster.
	LineGroups []model.LineGroup
	Highlight  string
}

// IsSpatial reports whether the layout places cards on coordinates.
func (l *Layout) IsSpatial() bool {
	return l.Status == StatusReady && l.Template.Type.Spatial()
}

// Layout computes the current presentation.
func (v *TeamView) Layout() Layout {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := roster.Filter(v.members, v.filter)
	part := roster.Index(v.members, v.filter)

	out := Layout{
		Status:     StatusNoLayout,
		Mode:       v.mode(),
		Filter:     v.filter,
		Coaches:    card.ProjectAll(part.Coaches, v.team),
		Athletes:   card.ProjectAll(part.Athletes, v.team),
		Staff:      card.ProjectAll(part.Staff, v.team),
		LineGroups: roster.LineGroups(v.members),
		Highlight:  v.highlight,
	}
	if !v.hasTemplate {
		out.Bench = card.ProjectAll(filtered, v.team)
		return out
	}
	out.Status = StatusReady
	out.Template = v.template

	if !v.template.Type.Spatial() {
		for _, g := range assignment.GroupByPrimaryPosition(filtered) {
			out.Groups = append(out.Groups, Group{
				Key:   g.Key,
				Name:  g.Name,
				Cards: card.ProjectAll(g.Members, v.team),
			})
		}
		return out
	}

	slots := v.assignments(filtered)
	if v.explicit == nil {
		metrics.RecordAutoAssignment(len(slots), len(v.template.Slots)-len(slots))
	}
	placed := slots.Members()

	out.Placements = make([]Placement, 0, len(v.template.Slots))
	for _, s := range v.template.Slots {
		p := Placement{Slot: s}
		if id, ok := slots[s.Key]; ok {
			c := card.Project(v.members[v.byID[id]], v.team)
			p.Card = &c
			p.Highlighted = id == v.highlight
		}
		out.Placements = append(out.Placements, p)
	}
	for i := range filtered {
		if _, ok := placed[filtered[i].ID]; !ok {
			out.Bench = append(out.Bench, card.Project(filtered[i], v.team))
		}
	}
	return out
}
