package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rivo/uniseg"

	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/reveal"
	"github.com/okian/lineup/internal/domain/view"
)

const (
	defaultCellWidth = 24
	ansiBold         = "\x1b[1m"
	ansiReset        = "\x1b[0m"
)

// TextSurface draws to a terminal or any io.Writer.
type TextSurface struct {
	w         io.Writer
	color     bool
	cellWidth int
}

// TextOption configures a TextSurface.
type TextOption func(*TextSurface)

// WithColor enables ANSI emphasis for highlighted cards.
func WithColor(enabled bool) TextOption {
	return func(s *TextSurface) {
		s.color = enabled
	}
}

// WithCellWidth sets the column width of formation rows.
func WithCellWidth(n int) TextOption {
	return func(s *TextSurface) {
		if n > 0 {
			s.cellWidth = n
		}
	}
}

// NewTextSurface creates a surface writing to w.
func NewTextSurface(w io.Writer, opts ...TextOption) *TextSurface {
	s := &TextSurface{w: w, cellWidth: defaultCellWidth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Surface = (*TextSurface)(nil)

// errWriter keeps the first write error so drawing code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// DrawCard writes one card on a single line.
func (s *TextSurface) DrawCard(cv CardView) error {
	ew := &errWriter{w: s.w}
	ew.printf("%s\n", s.cardLine(cv))
	return ew.err
}

func (s *TextSurface) cardLine(cv CardView) string {
	var b strings.Builder
	b.WriteString("[" + cv.Ribbon + "] ")
	b.WriteString(cv.Name)
	if cv.Captain {
		b.WriteString(" (C)")
	}
	if cv.Jersey != "" {
		b.WriteString(" " + cv.Jersey)
	}
	if cv.Variant != VariantInert {
		if cv.Position != "" {
			b.WriteString(" " + cv.Position)
		}
		b.WriteString(" " + cv.Rating)
		if cv.Tier != card.TierNone {
			b.WriteString(" " + string(cv.Tier))
		}
		if len(cv.Badges) > 0 {
			b.WriteString(" {" + strings.Join(cv.Badges, ", ") + "}")
		}
	}
	return s.emphasise(b.String(), cv.Highlighted)
}

// DrawLayout writes the team view: the template or fallback, the bench and
// the role partitions.
func (s *TextSurface) DrawLayout(l *view.Layout) error {
	ew := &errWriter{w: s.w}

	if l.Status == view.StatusNoLayout {
		ew.printf("No layout available\n")
	} else {
		ew.printf("== %s (%s) [%s] ==\n", l.Template.Name, l.Template.Type, l.Mode)
		if l.IsSpatial() {
			s.drawPlacements(ew, l)
		} else {
			s.drawGroups(ew, l)
		}
	}

	if l.IsSpatial() || l.Status == view.StatusNoLayout {
		s.drawList(ew, "Bench", l.Bench, l.Highlight)
	}
	s.drawList(ew, "Coaches", l.Coaches, l.Highlight)
	s.drawList(ew, "Staff", l.Staff, l.Highlight)
	return ew.err
}

// drawPlacements prints slots row by row, top of the field first. Slots that
// share a rounded Y coordinate share a row, ordered by X.
func (s *TextSurface) drawPlacements(ew *errWriter, l *view.Layout) {
	rows := make(map[int][]view.Placement)
	var ys []int
	for _, p := range l.Placements {
		y := int(math.Round(p.Slot.Y))
		if _, ok := rows[y]; !ok {
			ys = append(ys, y)
		}
		rows[y] = append(rows[y], p)
	}
	sort.Ints(ys)

	for _, y := range ys {
		row := rows[y]
		sort.SliceStable(row, func(i, j int) bool { return row[i].Slot.X < row[j].Slot.X })
		var b strings.Builder
		for _, p := range row {
			b.WriteString(s.cell(p))
		}
		ew.printf("%s\n", strings.TrimRight(b.String(), " "))
	}
}

func (s *TextSurface) cell(p view.Placement) string {
	text := p.Slot.Label
	if text == "" {
		text = p.Slot.Key
	}
	if p.Card != nil {
		cv := Card(p.Card, Context{Variant: VariantCompact})
		text += ": " + cv.Name
		if cv.Jersey != "" {
			text += " " + cv.Jersey
		}
	} else {
		text += ": -"
	}
	if p.Highlighted && !s.color {
		text = "*" + text
	}
	text = truncate(text, s.cellWidth-1)
	padded := text + strings.Repeat(" ", s.cellWidth-uniseg.StringWidth(text))
	if p.Highlighted && s.color {
		padded = ansiBold + padded + ansiReset
	}
	return padded
}

func (s *TextSurface) drawGroups(ew *errWriter, l *view.Layout) {
	for _, g := range l.Groups {
		ew.printf("%s\n", g.Name)
		for i := range g.Cards {
			cv := Card(&g.Cards[i], Context{Variant: VariantCompact, Highlighted: g.Cards[i].ID == l.Highlight})
			ew.printf("  %s\n", s.cardLine(cv))
		}
	}
}

func (s *TextSurface) drawList(ew *errWriter, title string, cards []card.Card, highlight string) {
	if len(cards) == 0 {
		return
	}
	ew.printf("%s:\n", title)
	for i := range cards {
		cv := Card(&cards[i], Context{Variant: VariantCompact, Highlighted: cards[i].ID == highlight})
		ew.printf("  %s\n", s.cardLine(cv))
	}
}

// DrawReveal writes one line describing the ceremony state.
func (s *TextSurface) DrawReveal(deck reveal.Deck, snap reveal.Snapshot) error {
	ew := &errWriter{w: s.w}
	switch {
	case snap.Closed:
		ew.printf("[closed] %d of %d revealed\n", snap.Revealed, snap.Total)
	case snap.Phase == reveal.PhaseIntro:
		ew.printf("[intro] %d cards\n", snap.Total)
	case snap.Phase == reveal.PhaseCountdown:
		ew.printf("[countdown] %d\n", snap.Countdown)
	case snap.Phase == reveal.PhaseRevealing && snap.Active != reveal.NoCard:
		rc := deck.At(snap.Active)
		face := "???"
		if snap.CardPhase == reveal.CardRevealed {
			face = s.cardLine(Card(&rc.Card, Context{Variant: VariantFull, Highlighted: true}))
		}
		ew.printf("[%s] %s of %d (%s) %s\n", snap.CardPhase, humanize.Ordinal(snap.Active+1), snap.Total, rc.Category, face)
	case snap.Phase == reveal.PhaseRevealing:
		ew.printf("[revealing] %d of %d revealed\n", snap.Revealed, snap.Total)
	case snap.Skipped:
		ew.printf("[complete] skipped after %d of %d\n", snap.Revealed, snap.Total)
	default:
		ew.printf("[complete] %d of %d revealed\n", snap.Revealed, snap.Total)
	}
	return ew.err
}

func (s *TextSurface) emphasise(text string, on bool) string {
	if !on {
		return text
	}
	if s.color {
		return ansiBold + text + ansiReset
	}
	return "*" + text
}

// truncate shortens text to at most width display columns.
func truncate(text string, width int) string {
	if uniseg.StringWidth(text) <= width {
		return text
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := uniseg.StringWidth(g.Str())
		if used+w > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String() + "…"
}
