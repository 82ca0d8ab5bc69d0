// Package reveal drives the timed pack-reveal ceremony.
//
// A Deck is an ordered set of cards. A Machine walks the deck through the
// top-level phases intro -> countdown -> revealing -> complete and, during
// revealing, moves the single active card through hidden -> flipping ->
// revealed. Session runs a Machine on its own goroutine for real-time use.
package reveal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/model"
)

// Category groups cards for the ceremony.
type Category string

const (
	CategoryHeadCoach Category = "head_coach"
	CategoryCaptain   Category = "captain"
	CategoryStarter   Category = "starter"
	CategoryRoster    Category = "roster"
)

// rank orders categories within a pack.
func (c Category) rank() int {
	switch c {
	case CategoryHeadCoach:
		return 0
	case CategoryCaptain:
		return 1
	case CategoryStarter:
		return 2
	default:
		return 3
	}
}

// RevealCard is a card with its position in the reveal sequence.
type RevealCard struct {
	card.Card
	Order    int
	Category Category
}

// Deck is a validated reveal set sorted by ascending Order.
type Deck struct {
	cards []RevealCard
}

// NewDeck sorts cards by Order and validates that the orders are exactly
// 0..n-1: duplicates and gaps are rejected.
func NewDeck(cards []RevealCard) (Deck, error) {
	if len(cards) == 0 {
		return Deck{}, ErrEmptyDeck
	}
	sorted := append([]RevealCard(nil), cards...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	for i := range sorted {
		switch {
		case i > 0 && sorted[i].Order == sorted[i-1].Order:
			return Deck{}, fmt.Errorf("%w: %d", ErrDuplicateOrder, sorted[i].Order)
		case sorted[i].Order != i:
			return Deck{}, fmt.Errorf("%w: expected %d, got %d", ErrMissingOrder, i, sorted[i].Order)
		}
	}
	return Deck{cards: sorted}, nil
}

// Len returns the number of cards.
func (d Deck) Len() int { return len(d.cards) }

// At returns the card at position i in reveal order.
func (d Deck) At(i int) RevealCard { return d.cards[i] }

// Cards returns a copy of the cards in reveal order.
func (d Deck) Cards() []RevealCard {
	return append([]RevealCard(nil), d.cards...)
}

// Categorize derives the ceremony category of a card. Only a coach whose
// title names them head coach opens the pack; other coaches and staff are
// regular roster cards.
func Categorize(c *card.Card) Category {
	switch {
	case c.Role == model.RoleCoach && strings.Contains(strings.ToLower(c.RoleTitle), "head"):
		return CategoryHeadCoach
	case c.Role != model.RolePlayer:
		return CategoryRoster
	case c.Captain:
		return CategoryCaptain
	case c.Starter:
		return CategoryStarter
	default:
		return CategoryRoster
	}
}

// BuildDeck assigns reveal orders to cards: head coach first, then captains,
// starters and the rest of the roster. Within a category higher ratings come
// first; ties keep the input order.
func BuildDeck(cards []card.Card) (Deck, error) {
	rc := make([]RevealCard, len(cards))
	for i := range cards {
		rc[i] = RevealCard{Card: cards[i], Category: Categorize(&cards[i])}
	}
	sort.SliceStable(rc, func(i, j int) bool {
		ri, rj := rc[i].Category.rank(), rc[j].Category.rank()
		if ri != rj {
			return ri < rj
		}
		return ratingOf(&rc[i].Card) > ratingOf(&rc[j].Card)
	})
	for i := range rc {
		rc[i].Order = i
	}
	return NewDeck(rc)
}

func ratingOf(c *card.Card) int {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}
