// Package fixtures generates deterministic synthetic rosters for demos and
// tests. Equal sport and seed always give an equal roster.
package fixtures

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/lineup/internal/adapters/rosterfile"
	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
)

const (
	defaultTeam       = "Eagles"
	defaultSeason     = "2026"
	defaultAssistants = 2
	defaultStaff      = 1
	captainCount      = 2
	maxJersey         = 99
	starterBoostBelow = 70
	starterBoost      = 10
)

// Rating distribution cases.
const (
	caseAverage = iota
	caseHigh
	caseLow
	caseElite
	caseUnrated
	ratingCases
)

// Rating ranges per case: inclusive minimum and width.
const (
	averageMin  = 60
	averageSpan = 20
	highMin     = 80
	highSpan    = 10
	lowMin      = 45
	lowSpan     = 15
	eliteMin    = 90
	eliteSpan   = 10
)

// Generator builds synthetic rosters for one sport.
type Generator struct {
	sport      string
	team       string
	season     string
	seed       uint64
	assistants int
	staff      int
	logger     logger.Logger
}

// New creates a generator for sport.
func New(sport string, opts ...Option) *Generator {
	g := &Generator{
		sport:      strings.ToLower(strings.TrimSpace(sport)),
		team:       defaultTeam,
		season:     defaultSeason,
		seed:       1,
		assistants: defaultAssistants,
		staff:      defaultStaff,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logger.Get().Named("fixtures")
	}
	return g
}

// Load returns the generated roster. It has the shape of a roster file
// provider so callers can use either source.
func (g *Generator) Load(ctx context.Context) (rosterfile.Roster, error) {
	if err := ctx.Err(); err != nil {
		return rosterfile.Roster{}, fmt.Errorf("generate roster: %w", err)
	}
	r := g.Generate()
	g.logger.Info(ctx, "generated fixture roster",
		logger.String("sport", r.Sport),
		logger.Int("members", len(r.Members)),
		logger.Any("seed", g.seed))
	return r, nil
}

// Generate builds the roster: the head coach, then athletes by position
// depth chart, then assistant coaches and staff.
func (g *Generator) Generate() rosterfile.Roster {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], g.seed)
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	pool, ok := pools[g.sport]
	if !ok {
		pool = genericPool
	}

	members := []model.Member{g.person(rng, src, model.RoleCoach, "Head Coach")}

	jerseys := rng.Perm(maxJersey)
	next := 0
	for _, p := range pool {
		for d := 0; d < p.depth; d++ {
			m := g.person(rng, src, model.RolePlayer, "")
			jersey := jerseys[next%maxJersey] + 1
			next++
			m.Jersey = &jersey
			m.Positions = []model.Position{{Key: p.key, Name: p.name, Primary: true}}
			m.LineGroups = []model.LineGroup{{Key: p.group, Name: groupNames[p.group], Primary: true}}
			m.Starter = d < p.starters
			m.Rating = rating(rng, m.Starter)
			members = append(members, m)
		}
	}
	markCaptains(members)
	for i := range members {
		dress(&members[i])
	}

	for i := 0; i < g.assistants; i++ {
		members = append(members, g.person(rng, src, model.RoleCoach, "Assistant Coach"))
	}
	for i := 0; i < g.staff; i++ {
		members = append(members, g.person(rng, src, model.RoleStaff, staffTitles[i%len(staffTitles)]))
	}

	return rosterfile.Roster{Team: g.team, Sport: g.sport, Season: g.season, Members: members}
}

func (g *Generator) person(rng *rand.Rand, src *rand.ChaCha8, role model.Role, title string) model.Member {
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceOID, binary.LittleEndian.AppendUint64(nil, rng.Uint64()))
	}
	return model.Member{
		ID:        id.String(),
		FirstName: firstNames[rng.IntN(len(firstNames))],
		LastName:  lastNames[rng.IntN(len(lastNames))],
		Role:      role,
		RoleTitle: title,
	}
}

// rating draws from a spread of performer bands. Some athletes are unrated.
func rating(rng *rand.Rand, starter bool) int {
	var r int
	switch rng.IntN(ratingCases) {
	case caseAverage:
		r = averageMin + rng.IntN(averageSpan)
	case caseHigh:
		r = highMin + rng.IntN(highSpan)
	case caseLow:
		r = lowMin + rng.IntN(lowSpan)
	case caseElite:
		r = eliteMin + rng.IntN(eliteSpan)
	case caseUnrated:
		return 0
	}
	if starter && r < starterBoostBelow {
		r += starterBoost
	}
	return r
}

// markCaptains names the highest rated starters captains. Ties keep
// roster order.
func markCaptains(members []model.Member) {
	var starters []int
	for i := range members {
		if members[i].Role == model.RolePlayer && members[i].Starter {
			starters = append(starters, i)
		}
	}
	sort.SliceStable(starters, func(a, b int) bool {
		return members[starters[a]].Rating > members[starters[b]].Rating
	})
	for n, i := range starters {
		if n == captainCount {
			break
		}
		members[i].Captain = true
	}
}

// dress picks a card style and badges from the athlete's standing.
func dress(m *model.Member) {
	if m.Role != model.RolePlayer {
		return
	}
	switch {
	case m.Captain:
		m.Style = string(card.StyleHolo)
		m.Badges = append(m.Badges, model.Badge{Key: "captain", Label: "Captain"})
	case m.Rating >= eliteMin:
		m.Style = string(card.StyleGold)
	case m.Starter:
		m.Style = string(card.StyleTeam)
	default:
		m.Style = string(card.StyleClassic)
	}
	if m.Rating >= eliteMin {
		m.Badges = append(m.Badges, model.Badge{Key: "all_conference", Label: "All Conference"})
	}
}
