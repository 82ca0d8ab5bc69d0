package reveal

import (
	"context"
	"time"

	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

// Phase is the top-level ceremony state. Phases are visited at most once,
// in declaration order.
type Phase string

const (
	PhaseIntro     Phase = "intro"
	PhaseCountdown Phase = "countdown"
	PhaseRevealing Phase = "revealing"
	PhaseComplete  Phase = "complete"
)

// CardPhase is the state of the active card during revealing.
type CardPhase string

const (
	CardHidden   CardPhase = "hidden"
	CardFlipping CardPhase = "flipping"
	CardRevealed CardPhase = "revealed"
)

// NoCard is the Active index when no card is active.
const NoCard = -1

// Snapshot is the observable state of a Machine.
type Snapshot struct {
	Phase     Phase
	Countdown int
	// Active is the index (in reveal order) of the active card, or NoCard.
	Active    int
	CardPhase CardPhase
	Revealed  int
	Total     int
	Skipped   bool
	Closed    bool
}

// CardPhaseAt returns the phase card i is shown in: cards already passed are
// revealed, the active card carries the live sub-phase, the rest are hidden.
func (s Snapshot) CardPhaseAt(i int) CardPhase {
	switch {
	case s.Phase == PhaseComplete && !s.Skipped:
		return CardRevealed
	case i < s.Revealed:
		return CardRevealed
	case i == s.Active:
		return s.CardPhase
	default:
		return CardHidden
	}
}

// IsActive reports whether card i is the active card.
func (s Snapshot) IsActive(i int) bool {
	return s.Active != NoCard && s.Active == i
}

// Machine is the ceremony state machine. It is not safe for concurrent use:
// actions and timer callbacks must run on one goroutine. Session provides
// that discipline for real-time use.
type Machine struct {
	ctx      context.Context
	deck     Deck
	timing   Timing
	sched    Scheduler
	observer func(Snapshot)
	logger   logger.Logger

	phase     Phase
	countdown int
	active    int
	cardPhase CardPhase
	revealed  int
	skipped   bool
	closed    bool
	startedAt time.Time

	// At most one timer is pending at any time. gen invalidates callbacks of
	// superseded timers whose Stop came too late.
	pending Timer
	gen     uint64
}

// NewMachine creates a machine in the intro phase. A Scheduler is required
// (WithScheduler); timing defaults to DefaultTiming.
func NewMachine(ctx context.Context, deck Deck, opts ...Option) (*Machine, error) {
	cfg := newConfig(opts)
	if err := cfg.timing.Validate(); err != nil {
		return nil, err
	}
	if deck.Len() == 0 {
		return nil, ErrEmptyDeck
	}
	if cfg.scheduler == nil {
		return nil, ErrNoScheduler
	}
	return newMachine(ctx, deck, cfg), nil
}

func newMachine(ctx context.Context, deck Deck, cfg *config) *Machine {
	return &Machine{
		ctx:       ctx,
		deck:      deck,
		timing:    cfg.timing,
		sched:     cfg.scheduler,
		observer:  cfg.observer,
		logger:    cfg.logger,
		phase:     PhaseIntro,
		active:    NoCard,
		cardPhase: CardHidden,
	}
}

// Start leaves intro and begins the countdown. It reports whether the
// action was accepted.
func (m *Machine) Start() bool {
	if m.closed || m.phase != PhaseIntro {
		m.ignored("start")
		return false
	}
	m.startedAt = time.Now()
	metrics.RecordRevealStarted()
	m.logger.Debug(m.ctx, "reveal started", logger.Int("cards", m.deck.Len()))

	if m.timing.CountdownSteps == 0 {
		m.beginRevealing()
		return true
	}
	m.phase = PhaseCountdown
	m.countdown = m.timing.CountdownSteps
	m.notify()
	m.schedule(m.timing.CountdownStep, m.tick)
	return true
}

func (m *Machine) tick() {
	m.countdown--
	if m.countdown > 0 {
		m.notify()
		m.schedule(m.timing.CountdownStep, m.tick)
		return
	}
	m.beginRevealing()
}

func (m *Machine) beginRevealing() {
	m.phase = PhaseRevealing
	m.countdown = 0
	m.revealed = 0
	m.activate(0)
}

// activate makes card i the active card in the hidden sub-phase.
func (m *Machine) activate(i int) {
	m.active = i
	m.cardPhase = CardHidden
	m.notify()
	m.schedule(m.timing.FlipDelay, m.flip)
}

func (m *Machine) flip() {
	m.cardPhase = CardFlipping
	m.notify()
	m.schedule(m.timing.FlipDuration, m.land)
}

func (m *Machine) land() {
	m.cardPhase = CardRevealed
	m.notify()
	if m.timing.AutoAdvance > 0 {
		m.schedule(m.timing.AutoAdvance, m.completeActive)
	}
}

// Advance completes the active card on user request. It is accepted only
// while revealing and once the active card has reached revealed.
func (m *Machine) Advance() bool {
	if m.closed || m.phase != PhaseRevealing || m.active == NoCard || m.cardPhase != CardRevealed {
		m.ignored("advance")
		return false
	}
	m.completeActive()
	return true
}

// completeActive counts the active card as revealed and activates the next
// one, or schedules completion when none is left.
func (m *Machine) completeActive() {
	m.cancel()
	c := m.deck.At(m.active)
	m.revealed++
	metrics.RecordCardRevealed(string(c.Category))

	if m.revealed < m.deck.Len() {
		m.activate(m.revealed)
		return
	}
	m.active = NoCard
	m.notify()
	m.schedule(m.timing.CompletionDelay, m.finish)
}

func (m *Machine) finish() {
	m.phase = PhaseComplete
	m.active = NoCard
	m.cardPhase = CardHidden
	metrics.RecordRevealCompleted(m.skipped, time.Since(m.startedAt).Seconds())
	m.logger.Debug(m.ctx, "reveal complete",
		logger.Int("revealed", m.revealed),
		logger.Bool("skipped", m.skipped),
	)
	m.notify()
}

// SkipAll forces completion without revealing the remaining cards one by
// one. It is accepted once; later calls are no-ops.
func (m *Machine) SkipAll() bool {
	if m.closed || m.phase == PhaseComplete {
		m.ignored("skip_all")
		return false
	}
	m.cancel()
	if m.startedAt.IsZero() {
		m.startedAt = time.Now()
	}
	m.skipped = true
	m.countdown = 0
	m.finish()
	return true
}

// Close tears the machine down and cancels any pending timer. Close is
// idempotent; it reports whether this call closed the machine.
func (m *Machine) Close() bool {
	if m.closed {
		return false
	}
	m.cancel()
	m.closed = true
	m.active = NoCard
	m.logger.Debug(m.ctx, "reveal closed", logger.String("phase", string(m.phase)))
	m.notify()
	return true
}

// Snapshot returns the current observable state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Phase:     m.phase,
		Countdown: m.countdown,
		Active:    m.active,
		CardPhase: m.cardPhase,
		Revealed:  m.revealed,
		Total:     m.deck.Len(),
		Skipped:   m.skipped,
		Closed:    m.closed,
	}
}

// Phase returns the top-level phase.
func (m *Machine) Phase() Phase { return m.phase }

// CardPhase returns the sub-phase of the active card.
func (m *Machine) CardPhase() CardPhase { return m.cardPhase }

// Countdown returns the remaining countdown ticks.
func (m *Machine) Countdown() int { return m.countdown }

// Active returns the index of the active card, or NoCard.
func (m *Machine) Active() int { return m.active }

// RevealedCount returns the number of individually revealed cards.
func (m *Machine) RevealedCount() int { return m.revealed }

// Deck returns the deck being revealed.
func (m *Machine) Deck() Deck { return m.deck }

// Pending reports whether a timer is outstanding.
func (m *Machine) Pending() bool { return m.pending != nil }

// schedule replaces any pending timer with a new one running fn after d.
// Schedulers must not run fn from within After.
func (m *Machine) schedule(d time.Duration, fn func()) {
	m.cancel()
	m.gen++
	gen := m.gen
	metrics.RecordTimerScheduled()
	m.pending = m.sched.After(d, func() {
		if m.closed || gen != m.gen {
			return
		}
		m.pending = nil
		metrics.AddPendingTimers(-1)
		fn()
	})
	metrics.AddPendingTimers(1)
}

// cancel drops the pending timer, if any.
func (m *Machine) cancel() {
	if m.pending == nil {
		return
	}
	m.pending.Stop()
	m.pending = nil
	m.gen++
	metrics.RecordTimerCancelled()
	metrics.AddPendingTimers(-1)
}

func (m *Machine) ignored(action string) {
	metrics.RecordRevealActionIgnored(action)
	m.logger.Debug(m.ctx, "reveal action ignored",
		logger.String("action", action),
		logger.String("phase", string(m.phase)),
		logger.String("card_phase", string(m.cardPhase)),
	)
}

func (m *Machine) notify() {
	if m.observer != nil {
		m.observer(m.Snapshot())
	}
}
