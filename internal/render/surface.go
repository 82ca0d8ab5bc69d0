package render

import (
	"context"

	"github.com/okian/lineup/internal/domain/reveal"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/internal/domain/view"
)

// Surface draws engine output. Any presentation technology can implement it.
type Surface interface {
	DrawCard(cv CardView) error
	DrawLayout(l *view.Layout) error
	DrawReveal(deck reveal.Deck, snap reveal.Snapshot) error
}

// LayoutActions are the team view operations a surface forwards user input to.
type LayoutActions interface {
	OnAssign(slotKey, memberID string) bool
	OnRemove(slotKey string) bool
	OnFilterChange(p roster.Predicate)
	OnTemplateSelect(id string) bool
}

// RevealActions are the ceremony operations a surface forwards user input to.
type RevealActions interface {
	Start(ctx context.Context) (bool, error)
	Advance(ctx context.Context) (bool, error)
	SkipAll(ctx context.Context) (bool, error)
	Close(ctx context.Context) (bool, error)
}

var (
	_ LayoutActions = (*view.TeamView)(nil)
	_ RevealActions = (*reveal.Session)(nil)
)
