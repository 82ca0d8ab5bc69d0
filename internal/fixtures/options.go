package fixtures

import "github.com/okian/lineup/pkg/logger"

// Option applies a configuration option to a Generator.
type Option func(*Generator)

// WithSeed sets the seed. Equal seeds produce equal rosters.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithTeam sets the team and season labels.
func WithTeam(team, season string) Option {
	return func(g *Generator) {
		g.team = team
		g.season = season
	}
}

// WithAssistants sets how many assistant coaches follow the head coach.
func WithAssistants(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.assistants = n
		}
	}
}

// WithStaff sets how many staff members the roster carries.
func WithStaff(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.staff = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
