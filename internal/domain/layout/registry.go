package layout

import (
	"fmt"
)

// Registry indexes templates by sport key. It is immutable after NewRegistry
// and safe for concurrent reads.
type Registry struct {
	// lookup holds, per sport key, the sport templates followed by every
	// wildcard template. Sports without templates are absent and resolve to
	// wildcards.
	lookup    map[string][]SportLayoutTemplate
	wildcards []SportLayoutTemplate
	byID      map[string]SportLayoutTemplate
	order     []string
}

// NewRegistry validates and indexes templates. Template ids must be unique,
// slot keys must be unique within a template and coordinates must lie in the
// 0..100 range.
func NewRegistry(templates []SportLayoutTemplate) (*Registry, error) {
	r := &Registry{
		lookup: make(map[string][]SportLayoutTemplate),
		byID:   make(map[string]SportLayoutTemplate, len(templates)),
	}

	bySport := make(map[string][]SportLayoutTemplate)
	var sports []string
	for i := range templates {
		t := templates[i]
		t.SportKey = normalizeSport(t.SportKey)
		if err := validate(&t); err != nil {
			return nil, err
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTemplate, t.ID)
		}
		r.byID[t.ID] = t
		r.order = append(r.order, t.ID)

		if t.IsWildcard() {
			r.wildcards = append(r.wildcards, t)
			continue
		}
		if _, seen := bySport[t.SportKey]; !seen {
			sports = append(sports, t.SportKey)
		}
		bySport[t.SportKey] = append(bySport[t.SportKey], t)
	}

	for _, sport := range sports {
		list := make([]SportLayoutTemplate, 0, len(bySport[sport])+len(r.wildcards))
		list = append(list, bySport[sport]...)
		list = append(list, r.wildcards...)
		r.lookup[sport] = list
	}
	return r, nil
}

func validate(t *SportLayoutTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTemplate)
	}
	if t.SportKey == "" {
		return fmt.Errorf("%w: template %q has no sport", ErrInvalidTemplate, t.ID)
	}
	switch t.Type {
	case TypeFormation, TypeCourtMap, TypeFieldMap, TypeRotation, TypeGroupedList:
	case "":
		t.Type = TypeFormation
	default:
		return fmt.Errorf("%w: template %q has unknown type %q", ErrInvalidTemplate, t.ID, t.Type)
	}
	switch t.Side {
	case SideNone, SideOffense, SideDefense, SideSpecialTeams:
	default:
		return fmt.Errorf("%w: template %q has unknown side %q", ErrInvalidTemplate, t.ID, t.Side)
	}

	keys := make(map[string]struct{}, len(t.Slots))
	for _, s := range t.Slots {
		if s.Key == "" {
			return fmt.Errorf("%w: template %q has a slot without key", ErrInvalidTemplate, t.ID)
		}
		if _, dup := keys[s.Key]; dup {
			return fmt.Errorf("%w: %q in template %q", ErrDuplicateSlot, s.Key, t.ID)
		}
		keys[s.Key] = struct{}{}
		if !inRange(s.X) || !inRange(s.Y) {
			return fmt.Errorf("%w: slot %q in template %q at (%v,%v)", ErrInvalidCoordinate, s.Key, t.ID, s.X, s.Y)
		}
	}
	return nil
}

func inRange(v float64) bool {
	return v >= MinCoord && v <= MaxCoord
}

// TemplatesForSport returns the sport's templates followed by every wildcard
// template. When the sport has none, only the wildcard templates are
// returned. The returned slice is a copy.
func (r *Registry) TemplatesForSport(sportKey string) []SportLayoutTemplate {
	list, ok := r.lookup[normalizeSport(sportKey)]
	if !ok {
		list = r.wildcards
	}
	return append([]SportLayoutTemplate(nil), list...)
}

// DefaultTemplate returns the first sport-specific template, else the first
// wildcard template. ErrNoLayout is returned when neither exists.
func (r *Registry) DefaultTemplate(sportKey string) (SportLayoutTemplate, error) {
	if list, ok := r.lookup[normalizeSport(sportKey)]; ok && len(list) > 0 {
		return list[0], nil
	}
	if len(r.wildcards) > 0 {
		return r.wildcards[0], nil
	}
	return SportLayoutTemplate{}, fmt.Errorf("%w: sport %q", ErrNoLayout, sportKey)
}

// Template returns a template by id.
func (r *Registry) Template(id string) (SportLayoutTemplate, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.byID)
}

// IDs returns template ids in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}
