package reveal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func revealCard(id string, order int) RevealCard {
	return RevealCard{Card: card.Card{ID: id, FirstName: id, Role: model.RolePlayer}, Order: order}
}

func threeCardDeck() Deck {
	d, err := NewDeck([]RevealCard{revealCard("X", 2), revealCard("Y", 0), revealCard("Z", 1)})
	if err != nil {
		panic(err)
	}
	return d
}

type recorder struct {
	snaps []Snapshot
}

func (r *recorder) observe(s Snapshot) { r.snaps = append(r.snaps, s) }

func newTestMachine(deck Deck, timing Timing) (*Machine, *fakeClock, *recorder) {
	clock := &fakeClock{}
	rec := &recorder{}
	m, err := NewMachine(context.Background(), deck,
		WithTiming(timing),
		WithScheduler(clock),
		WithObserver(rec.observe),
	)
	if err != nil {
		panic(err)
	}
	return m, clock, rec
}

func TestNewDeck(t *testing.T) {
	Convey("Given reveal cards", t, func() {
		Convey("they are ordered by reveal order", func() {
			d := threeCardDeck()
			So(d.Len(), ShouldEqual, 3)
			So(d.At(0).ID, ShouldEqual, "Y")
			So(d.At(1).ID, ShouldEqual, "Z")
			So(d.At(2).ID, ShouldEqual, "X")
		})

		Convey("duplicate orders are rejected", func() {
			_, err := NewDeck([]RevealCard{revealCard("A", 0), revealCard("B", 0)})
			So(errors.Is(err, ErrDuplicateOrder), ShouldBeTrue)
		})

		Convey("gaps are rejected", func() {
			_, err := NewDeck([]RevealCard{revealCard("A", 0), revealCard("B", 2)})
			So(errors.Is(err, ErrMissingOrder), ShouldBeTrue)
		})

		Convey("an empty deck is rejected", func() {
			_, err := NewDeck(nil)
			So(err, ShouldEqual, ErrEmptyDeck)
		})

		Convey("Cards returns a copy", func() {
			d := threeCardDeck()
			cards := d.Cards()
			cards[0].ID = "mutated"
			So(d.At(0).ID, ShouldEqual, "Y")
		})
	})
}

func TestBuildDeck(t *testing.T) {
	Convey("Given a mixed roster", t, func() {
		r := func(v int) *int { return &v }
		cards := []card.Card{
			{ID: "bench", Role: model.RolePlayer, Rating: r(95)},
			{ID: "starter-low", Role: model.RolePlayer, Starter: true, Rating: r(70)},
			{ID: "assistant", Role: model.RoleCoach, RoleTitle: "Assistant Coach"},
			{ID: "captain", Role: model.RolePlayer, Captain: true, Starter: true, Rating: r(60)},
			{ID: "starter-high", Role: model.RolePlayer, Starter: true, Rating: r(88)},
			{ID: "head", Role: model.RoleCoach, RoleTitle: "Head Coach"},
		}

		d, err := BuildDeck(cards)
		So(err, ShouldBeNil)

		var ids []string
		for _, c := range d.Cards() {
			ids = append(ids, c.ID)
		}
		So(ids, ShouldResemble, []string{"head", "captain", "starter-high", "starter-low", "bench", "assistant"})
		So(d.At(0).Category, ShouldEqual, CategoryHeadCoach)
		So(d.At(5).Category, ShouldEqual, CategoryRoster)

		Convey("an empty roster has no deck", func() {
			_, err := BuildDeck(nil)
			So(err, ShouldEqual, ErrEmptyDeck)
		})
	})
}

func TestNewMachineValidation(t *testing.T) {
	Convey("Machine construction", t, func() {
		Convey("requires a scheduler", func() {
			_, err := NewMachine(context.Background(), threeCardDeck())
			So(err, ShouldEqual, ErrNoScheduler)
		})

		Convey("rejects negative timing", func() {
			timing := DefaultTiming()
			timing.FlipDelay = -time.Millisecond
			_, err := NewMachine(context.Background(), threeCardDeck(), WithTiming(timing), WithScheduler(&fakeClock{}))
			So(errors.Is(err, ErrInvalidTiming), ShouldBeTrue)
		})

		Convey("rejects an empty deck", func() {
			_, err := NewMachine(context.Background(), Deck{}, WithScheduler(&fakeClock{}))
			So(err, ShouldEqual, ErrEmptyDeck)
		})
	})
}

func TestMachineCeremony(t *testing.T) {
	Convey("Given a three card deck with default timing", t, func() {
		m, clock, rec := newTestMachine(threeCardDeck(), DefaultTiming())

		So(m.Phase(), ShouldEqual, PhaseIntro)
		So(m.Active(), ShouldEqual, NoCard)

		Convey("the countdown lasts steps times step duration", func() {
			So(m.Start(), ShouldBeTrue)
			So(m.Phase(), ShouldEqual, PhaseCountdown)
			So(m.Countdown(), ShouldEqual, 3)

			clock.Advance(2399 * time.Millisecond)
			So(m.Phase(), ShouldEqual, PhaseCountdown)
			So(m.Countdown(), ShouldEqual, 1)

			clock.Advance(time.Millisecond)
			So(m.Phase(), ShouldEqual, PhaseRevealing)
			So(m.Active(), ShouldEqual, 0)
			So(m.CardPhase(), ShouldEqual, CardHidden)
		})

		Convey("a second start is ignored", func() {
			m.Start()
			So(m.Start(), ShouldBeFalse)
		})

		Convey("each card goes hidden, flipping, revealed", func() {
			m.Start()
			clock.Advance(2400 * time.Millisecond)

			clock.Advance(DefaultFlipDelay)
			So(m.CardPhase(), ShouldEqual, CardFlipping)

			clock.Advance(DefaultFlipDuration)
			So(m.CardPhase(), ShouldEqual, CardRevealed)
			So(m.RevealedCount(), ShouldEqual, 0)
			So(m.Pending(), ShouldBeTrue)
		})

		Convey("manual advance is ignored until the card is revealed", func() {
			m.Start()
			clock.Advance(2400 * time.Millisecond)
			So(m.Advance(), ShouldBeFalse)

			clock.Advance(DefaultFlipDelay)
			So(m.Advance(), ShouldBeFalse)
			So(m.CardPhase(), ShouldEqual, CardFlipping)

			clock.Advance(DefaultFlipDuration)
			So(m.Advance(), ShouldBeTrue)
			So(m.RevealedCount(), ShouldEqual, 1)
			So(m.Active(), ShouldEqual, 1)
			So(m.CardPhase(), ShouldEqual, CardHidden)
		})

		Convey("cards are visited in reveal order and the ceremony completes", func() {
			m.Start()
			clock.Advance(time.Minute)

			So(m.Phase(), ShouldEqual, PhaseComplete)
			So(m.RevealedCount(), ShouldEqual, 3)
			So(m.Pending(), ShouldBeFalse)
			So(clock.Pending(), ShouldEqual, 0)

			var visited []string
			last := NoCard
			for _, s := range rec.snaps {
				if s.Active != NoCard && s.Active != last {
					visited = append(visited, m.Deck().At(s.Active).ID)
					last = s.Active
				}
			}
			So(visited, ShouldResemble, []string{"Y", "Z", "X"})
		})

		Convey("phases never move backwards", func() {
			m.Start()
			clock.Advance(time.Minute)

			rank := map[Phase]int{PhaseIntro: 0, PhaseCountdown: 1, PhaseRevealing: 2, PhaseComplete: 3}
			prev, prevRevealed := 0, 0
			for _, s := range rec.snaps {
				So(rank[s.Phase], ShouldBeGreaterThanOrEqualTo, prev)
				So(s.Revealed, ShouldBeGreaterThanOrEqualTo, prevRevealed)
				prev, prevRevealed = rank[s.Phase], s.Revealed
			}
		})

		Convey("the last card holds for the completion delay", func() {
			m.Start()
			clock.Advance(2400 * time.Millisecond)
			for i := 0; i < 3; i++ {
				clock.Advance(DefaultFlipDelay + DefaultFlipDuration)
				So(m.Advance(), ShouldBeTrue)
			}
			So(m.Phase(), ShouldEqual, PhaseRevealing)
			So(m.Active(), ShouldEqual, NoCard)
			So(m.RevealedCount(), ShouldEqual, 3)

			clock.Advance(DefaultCompletionDelay - time.Millisecond)
			So(m.Phase(), ShouldEqual, PhaseRevealing)
			clock.Advance(time.Millisecond)
			So(m.Phase(), ShouldEqual, PhaseComplete)
		})

		Convey("skip all completes from the countdown", func() {
			m.Start()
			clock.Advance(800 * time.Millisecond)

			So(m.SkipAll(), ShouldBeTrue)
			So(m.Phase(), ShouldEqual, PhaseComplete)
			So(m.RevealedCount(), ShouldEqual, 0)
			So(m.Snapshot().Skipped, ShouldBeTrue)
			So(clock.Pending(), ShouldEqual, 0)

			Convey("and is idempotent", func() {
				n := len(rec.snaps)
				So(m.SkipAll(), ShouldBeFalse)
				clock.Advance(time.Minute)
				So(len(rec.snaps), ShouldEqual, n)
			})
		})

		Convey("skip all mid-flip stops every card transition", func() {
			m.Start()
			clock.Advance(2400*time.Millisecond + DefaultFlipDelay)
			So(m.CardPhase(), ShouldEqual, CardFlipping)
			So(m.Pending(), ShouldBeTrue)

			So(m.SkipAll(), ShouldBeTrue)
			So(m.Phase(), ShouldEqual, PhaseComplete)
			So(m.Pending(), ShouldBeFalse)
			So(m.Snapshot().CardPhase, ShouldEqual, CardHidden)
			So(m.Snapshot().Active, ShouldEqual, NoCard)

			n := len(rec.snaps)
			clock.Advance(time.Minute)
			So(len(rec.snaps), ShouldEqual, n)
			So(m.RevealedCount(), ShouldEqual, 0)
			So(m.Advance(), ShouldBeFalse)
		})

		Convey("skip all after a revealed card keeps the count", func() {
			m.Start()
			clock.Advance(2400*time.Millisecond + DefaultFlipDelay + DefaultFlipDuration)
			So(m.Advance(), ShouldBeTrue)
			clock.Advance(DefaultFlipDelay + DefaultFlipDuration)
			So(m.CardPhase(), ShouldEqual, CardRevealed)

			So(m.SkipAll(), ShouldBeTrue)
			clock.Advance(time.Minute)
			So(m.RevealedCount(), ShouldEqual, 1)
			So(m.Snapshot().CardPhaseAt(0), ShouldEqual, CardRevealed)
			So(m.Snapshot().CardPhaseAt(1), ShouldEqual, CardHidden)
		})

		Convey("skip all is accepted from intro", func() {
			So(m.SkipAll(), ShouldBeTrue)
			So(m.Phase(), ShouldEqual, PhaseComplete)
			So(m.Start(), ShouldBeFalse)
		})

		Convey("close cancels the pending timer", func() {
			m.Start()
			clock.Advance(2400*time.Millisecond + DefaultFlipDelay)
			So(m.Pending(), ShouldBeTrue)

			So(m.Close(), ShouldBeTrue)
			So(m.Pending(), ShouldBeFalse)
			So(clock.Pending(), ShouldEqual, 0)

			n := len(rec.snaps)
			clock.Advance(time.Minute)
			So(len(rec.snaps), ShouldEqual, n)
			So(m.Snapshot().Closed, ShouldBeTrue)

			So(m.Close(), ShouldBeFalse)
			So(m.Advance(), ShouldBeFalse)
			So(m.SkipAll(), ShouldBeFalse)
		})
	})
}

func TestMachineTimingVariants(t *testing.T) {
	Convey("Given non-default timing", t, func() {
		Convey("zero auto-advance waits for the user", func() {
			timing := DefaultTiming()
			timing.AutoAdvance = 0
			m, clock, _ := newTestMachine(threeCardDeck(), timing)

			m.Start()
			clock.Advance(time.Hour)
			So(m.Phase(), ShouldEqual, PhaseRevealing)
			So(m.CardPhase(), ShouldEqual, CardRevealed)
			So(m.RevealedCount(), ShouldEqual, 0)
			So(m.Pending(), ShouldBeFalse)

			So(m.Advance(), ShouldBeTrue)
			So(m.Active(), ShouldEqual, 1)
		})

		Convey("zero countdown steps reveal immediately", func() {
			timing := DefaultTiming()
			timing.CountdownSteps = 0
			m, _, _ := newTestMachine(threeCardDeck(), timing)

			m.Start()
			So(m.Phase(), ShouldEqual, PhaseRevealing)
			So(m.Active(), ShouldEqual, 0)
		})
	})
}

func TestMachineLateTimer(t *testing.T) {
	Convey("Given timers whose cancellation arrives too late", t, func() {
		clock := &fakeClock{lateStop: true}
		m, err := NewMachine(context.Background(), threeCardDeck(), WithScheduler(clock))
		So(err, ShouldBeNil)

		m.Start()
		clock.Advance(2400*time.Millisecond + DefaultFlipDelay + DefaultFlipDuration)
		So(m.CardPhase(), ShouldEqual, CardRevealed)

		// The auto-advance timer for card 0 is now superseded.
		So(m.Advance(), ShouldBeTrue)
		So(m.RevealedCount(), ShouldEqual, 1)

		// Run past the stale auto-advance due time, but not the new one.
		clock.Advance(DefaultAutoAdvance)
		So(m.RevealedCount(), ShouldEqual, 1)
		So(m.Active(), ShouldEqual, 1)
		So(m.CardPhase(), ShouldEqual, CardRevealed)
	})
}

func TestSnapshotCardPhaseAt(t *testing.T) {
	Convey("Given a snapshot mid-ceremony", t, func() {
		s := Snapshot{Phase: PhaseRevealing, Active: 1, CardPhase: CardFlipping, Revealed: 1, Total: 3}

		So(s.CardPhaseAt(0), ShouldEqual, CardRevealed)
		So(s.CardPhaseAt(1), ShouldEqual, CardFlipping)
		So(s.CardPhaseAt(2), ShouldEqual, CardHidden)
		So(s.IsActive(1), ShouldBeTrue)
		So(s.IsActive(2), ShouldBeFalse)

		Convey("a completed ceremony shows every card", func() {
			done := Snapshot{Phase: PhaseComplete, Active: NoCard, Revealed: 3, Total: 3}
			So(done.CardPhaseAt(2), ShouldEqual, CardRevealed)
		})

		Convey("a skipped ceremony keeps unrevealed cards hidden", func() {
			skipped := Snapshot{Phase: PhaseComplete, Active: NoCard, Revealed: 1, Total: 3, Skipped: true}
			So(skipped.CardPhaseAt(0), ShouldEqual, CardRevealed)
			So(skipped.CardPhaseAt(2), ShouldEqual, CardHidden)
		})
	})
}
