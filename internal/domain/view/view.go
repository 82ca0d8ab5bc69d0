// Package view holds the session state of one team presentation: the
// selected template, the filter, the slot assignments and the highlighted
// member. It turns that state into a Layout for a presentation surface.
//
// A TeamView starts in auto mode, where slots are filled by greedy first-fit
// matching of the filtered roster. The first drop or remove switches it to
// explicit mode for as long as the template stays selected.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/lineup/internal/domain/assignment"
	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/layout"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Mode tells how slots are currently filled.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeExplicit Mode = "explicit"
)

// Drop outcomes recorded in metrics.
const (
	dropPlaced    = "placed"
	dropMoved     = "moved"
	dropDisplaced = "displaced"
	dropSwapped   = "swapped"
	dropNoop      = "noop"
	dropConflict  = "conflict"
	dropRejected  = "rejected"
)

// TeamView is the presentation state of one team. All methods are safe for
// concurrent use; every action is applied atomically.
type TeamView struct {
	mu sync.Mutex

	id       string
	ctx      context.Context
	registry *layout.Registry
	team     card.Context
	members  []model.Member
	byID     map[string]int
	swap     bool
	logger   logger.Logger

	template    layout.SportLayoutTemplate
	hasTemplate bool
	filter      roster.Predicate
	explicit    *assignment.Assignments
	highlight   string
}

// New creates a view over members for the team's sport. When the registry
// has no template for the sport, the view is still created and reports
// StatusNoLayout from Layout.
func New(ctx context.Context, registry *layout.Registry, members []model.Member, team card.Context, opts ...Option) (*TeamView, error) {
	if registry == nil {
		return nil, ErrNoRegistry
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Get().Named("view")
	}

	v := &TeamView{
		id:       uuid.NewString(),
		ctx:      ctx,
		registry: registry,
		team:     team,
		members:  append([]model.Member(nil), members...),
		byID:     make(map[string]int, len(members)),
		swap:     cfg.swapOnDrop,
		logger:   cfg.logger,
		filter:   cfg.filter,
	}
	for i := range v.members {
		id := v.members[i].ID
		if id == "" {
			return nil, fmt.Errorf("%w: member at %d", ErrMissingMemberID, i)
		}
		if _, dup := v.byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, id)
		}
		v.byID[id] = i
	}

	v.resolveTemplate(cfg.templateID)
	return v, nil
}

func (v *TeamView) resolveTemplate(preferred string) {
	if preferred != "" {
		if t, ok := v.availableTemplate(preferred); ok {
			v.template, v.hasTemplate = t, true
			return
		}
		v.logger.Warn(v.ctx, "requested template not available, using default",
			logger.String("template_id", preferred),
			logger.String("sport", v.team.Sport),
		)
	}

	t, err := v.registry.DefaultTemplate(v.team.Sport)
	if err != nil {
		if errors.Is(err, layout.ErrNoLayout) {
			metrics.RecordLayoutFallback("none")
		}
		metrics.RecordErrorByComponent("view", "no_layout")
		v.logger.Warn(v.ctx, "no layout available", logger.String("sport", v.team.Sport), logger.Error(err))
		return
	}
	if t.IsWildcard() {
		metrics.RecordLayoutFallback("wildcard")
		v.logger.Debug(v.ctx, "falling back to wildcard template",
			logger.String("sport", v.team.Sport),
			logger.String("template_id", t.ID),
		)
	}
	v.template, v.hasTemplate = t, true
}

// availableTemplate returns template id if it is offered for the team's sport.
func (v *TeamView) availableTemplate(id string) (layout.SportLayoutTemplate, bool) {
	for _, t := range v.registry.TemplatesForSport(v.team.Sport) {
		if t.ID == id {
			return t, true
		}
	}
	return layout.SportLayoutTemplate{}, false
}

// ID returns the view session id.
func (v *TeamView) ID() string { return v.id }

// Templates returns the templates offered for the team's sport.
func (v *TeamView) Templates() []layout.SportLayoutTemplate {
	return v.registry.TemplatesForSport(v.team.Sport)
}

// Mode returns the current assignment mode.
func (v *TeamView) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode()
}

func (v *TeamView) mode() Mode {
	if v.explicit != nil {
		return ModeExplicit
	}
	return ModeAuto
}

// Filter returns the active predicate.
func (v *TeamView) Filter() roster.Predicate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// OnAssign handles a drop of memberID onto slotKey. It reports whether the
// drop was accepted. Unknown members and slots leave the state unchanged.
func (v *TeamView) OnAssign(slotKey, memberID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.spatial() {
		metrics.RecordDrop(dropRejected)
		return false
	}
	if _, ok := v.template.Slot(slotKey); !ok {
		metrics.RecordDrop(dropRejected)
		v.logger.Debug(v.ctx, "drop on unknown slot", logger.String("slot", slotKey))
		return false
	}
	if _, ok := v.byID[memberID]; !ok {
		metrics.RecordDrop(dropConflict)
		v.logger.Debug(v.ctx, "drop of unknown member", logger.String("member_id", memberID))
		return false
	}

	v.materialize()
	var res assignment.DropResult
	if v.swap {
		res = v.explicit.Swap(slotKey, memberID)
	} else {
		res = v.explicit.Assign(slotKey, memberID)
	}
	metrics.RecordDrop(dropOutcome(res))
	v.logger.Debug(v.ctx, "member dropped",
		logger.String("slot", slotKey),
		logger.String("member_id", memberID),
		logger.String("from", res.From),
		logger.String("displaced", res.Displaced),
	)
	return true
}

func dropOutcome(res assignment.DropResult) string {
	switch {
	case !res.Changed:
		return dropNoop
	case res.DisplacedTo != "":
		return dropSwapped
	case res.Displaced != "":
		return dropDisplaced
	case res.From != "":
		return dropMoved
	default:
		return dropPlaced
	}
}

// OnRemove clears slotKey. It reports whether a member was removed.
func (v *TeamView) OnRemove(slotKey string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.spatial() {
		return false
	}
	if _, ok := v.template.Slot(slotKey); !ok {
		return false
	}
	v.materialize()
	member, ok := v.explicit.Remove(slotKey)
	if ok {
		metrics.RecordRemove()
		v.logger.Debug(v.ctx, "member removed", logger.String("slot", slotKey), logger.String("member_id", member))
	}
	return ok
}

// OnFilterChange replaces the filter predicate. In auto mode the slots are
// refilled from the new candidate pool; explicit assignments are kept, and
// members the filter hides are hidden in their slots too.
func (v *TeamView) OnFilterChange(p roster.Predicate) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setFilter(p)
}

// OnLineGroupSelect sets the line-group part of the filter. An empty key
// selects every line group.
func (v *TeamView) OnLineGroupSelect(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := v.filter
	p.LineGroup = key
	v.setFilter(p)
}

func (v *TeamView) setFilter(p roster.Predicate) {
	v.filter = p
	metrics.RecordFilterChange()
	if v.highlight != "" && !v.visible(v.highlight) {
		v.highlight = ""
	}
}

// OnTemplateSelect switches to template id. Only templates offered for the
// team's sport can be selected. A new template starts over in auto mode.
func (v *TeamView) OnTemplateSelect(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	t, ok := v.availableTemplate(id)
	if !ok {
		metrics.RecordTemplateSelect("unknown")
		return false
	}
	metrics.RecordTemplateSelect("ok")
	if v.hasTemplate && v.template.ID == t.ID {
		return true
	}
	v.template, v.hasTemplate = t, true
	v.explicit = nil
	v.logger.Debug(v.ctx, "template selected", logger.String("template_id", t.ID))
	return true
}

// Highlight marks memberID. An empty id clears the highlight. Members that
// are unknown or hidden by the filter cannot be highlighted.
func (v *TeamView) Highlight(memberID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if memberID == "" {
		v.highlight = ""
		return true
	}
	if !v.visible(memberID) {
		return false
	}
	v.highlight = memberID
	return true
}

// Assignments returns the visible slot -> member map.
func (v *TeamView) Assignments() assignment.Map {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.assignments(roster.Filter(v.members, v.filter))
}

// assignments computes the slot map shown for the filtered roster.
func (v *TeamView) assignments(filtered []model.Member) assignment.Map {
	if !v.spatial() {
		return assignment.Map{}
	}
	if v.explicit == nil {
		return assignment.Auto(v.template.Slots, assignment.CandidatesFrom(filtered))
	}
	out := v.explicit.Map()
	for slot, member := range out {
		if !v.visible(member) {
			delete(out, slot)
		}
	}
	return out
}

// materialize switches to explicit mode, seeding it with what auto mode
// currently shows.
func (v *TeamView) materialize() {
	if v.explicit != nil {
		return
	}
	seed := assignment.Auto(v.template.Slots, assignment.CandidatesFrom(roster.Filter(v.members, v.filter)))
	explicit, err := assignment.FromMap(seed)
	if err != nil {
		// Auto never maps a member twice; start empty if it ever does.
		v.logger.Error(v.ctx, "auto assignment not injective", logger.Error(err))
		metrics.RecordErrorByComponent("view", "not_injective")
		explicit = assignment.New()
	}
	v.explicit = explicit
}

func (v *TeamView) spatial() bool {
	return v.hasTemplate && v.template.Type.Spatial()
}

func (v *TeamView) visible(memberID string) bool {
	i, ok := v.byID[memberID]
	return ok && v.filter.Match(&v.members[i])
}
