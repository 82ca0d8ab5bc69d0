// Package rosterfile reads team rosters from YAML or JSON documents.
//
// A roster file names the team, its sport and season, and lists members in
// roster order:
//
//	team: Eagles
//	sport: football
//	season: "2026"
//	members:
//	  - id: m-1
//	    first_name: Jordan
//	    last_name: Reyes
//	    role: player
//	    jersey: 12
//	    positions: [{key: QB, name: Quarterback, primary: true}]
package rosterfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
)

// Roster is one team's roster as read from a file.
type Roster struct {
	Team    string         `koanf:"team"`
	Sport   string         `koanf:"sport"`
	Season  string         `koanf:"season"`
	Members []model.Member `koanf:"members"`
}

// Context returns the labels stamped on the team's cards.
func (r *Roster) Context() card.Context {
	return card.Context{Team: r.Team, Sport: r.Sport, Season: r.Season}
}

// Provider loads a roster file. JSON documents are read by the YAML parser.
type Provider struct {
	path         string
	defaultSport string
	logger       logger.Logger
}

// NewProvider creates a provider for the file at path.
func NewProvider(path string, opts ...Option) *Provider {
	p := &Provider{path: path}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("rosterfile")
	}
	return p
}

// Load reads, normalises and validates the roster.
func (p *Provider) Load(ctx context.Context) (Roster, error) {
	if err := ctx.Err(); err != nil {
		return Roster{}, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(p.path), yaml.Parser()); err != nil {
		return Roster{}, fmt.Errorf("%w: %s: %w", ErrLoadRoster, p.path, err)
	}
	var r Roster
	if err := k.UnmarshalWithConf("", &r, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Roster{}, fmt.Errorf("%w: %s: %w", ErrLoadRoster, p.path, err)
	}

	r.Sport = strings.ToLower(strings.TrimSpace(r.Sport))
	if r.Sport == "" {
		r.Sport = strings.ToLower(strings.TrimSpace(p.defaultSport))
	}
	if err := normalize(&r); err != nil {
		return Roster{}, err
	}

	p.logger.Info(ctx, "roster loaded",
		logger.String("path", p.path),
		logger.String("team", r.Team),
		logger.String("sport", r.Sport),
		logger.Int("members", len(r.Members)))
	return r, nil
}

// normalize defaults empty roles to player and rejects rosters a view could
// not index: missing sport, missing or duplicate ids, unknown roles.
func normalize(r *Roster) error {
	if r.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidRoster)
	}
	seen := make(map[string]struct{}, len(r.Members))
	for i := range r.Members {
		m := &r.Members[i]
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			return fmt.Errorf("%w: member %d has no id", ErrInvalidRoster, i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate member id %q", ErrInvalidRoster, m.ID)
		}
		seen[m.ID] = struct{}{}

		m.Role = model.Role(strings.ToLower(strings.TrimSpace(string(m.Role))))
		if m.Role == "" {
			m.Role = model.RolePlayer
		}
		if !m.Role.Valid() {
			return fmt.Errorf("%w: member %q has unknown role %q", ErrInvalidRoster, m.ID, m.Role)
		}
	}
	return nil
}
