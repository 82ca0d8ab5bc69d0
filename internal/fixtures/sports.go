package fixtures

// slotPool describes how many athletes of a position a synthetic roster
// carries and how many of them start.
type slotPool struct {
	key      string
	name     string
	group    string
	depth    int
	starters int
}

// group display names.
var groupNames = map[string]string{ //nolint:gochecknoglobals // static lookup
	"offense":       "Offense",
	"defense":       "Defense",
	"special_teams": "Special Teams",
	"first_line":    "First Line",
	"second_line":   "Second Line",
	"varsity":       "Varsity",
}

// pools keys position pools by sport. Sports without a pool get the
// generic athlete pool.
var pools = map[string][]slotPool{ //nolint:gochecknoglobals // static lookup
	"football": {
		{"QB", "Quarterback", "offense", 2, 1},
		{"RB", "Running Back", "offense", 2, 1},
		{"WR", "Wide Receiver", "offense", 4, 3},
		{"TE", "Tight End", "offense", 2, 1},
		{"OL", "Offensive Line", "offense", 6, 5},
		{"DL", "Defensive Line", "defense", 5, 4},
		{"LB", "Linebacker", "defense", 4, 3},
		{"CB", "Cornerback", "defense", 3, 2},
		{"S", "Safety", "defense", 3, 2},
		{"K", "Kicker", "special_teams", 1, 1},
		{"P", "Punter", "special_teams", 1, 1},
	},
	"basketball": {
		{"PG", "Point Guard", "varsity", 2, 1},
		{"SG", "Shooting Guard", "varsity", 2, 1},
		{"SF", "Small Forward", "varsity", 2, 1},
		{"PF", "Power Forward", "varsity", 2, 1},
		{"C", "Center", "varsity", 2, 1},
	},
	"soccer": {
		{"GK", "Goalkeeper", "varsity", 2, 1},
		{"CB", "Center Back", "varsity", 3, 2},
		{"FB", "Fullback", "varsity", 3, 2},
		{"CM", "Central Midfield", "varsity", 4, 3},
		{"W", "Winger", "varsity", 3, 2},
		{"ST", "Striker", "varsity", 2, 1},
	},
	"volleyball": {
		{"S", "Setter", "varsity", 2, 1},
		{"OH", "Outside Hitter", "varsity", 3, 2},
		{"MB", "Middle Blocker", "varsity", 3, 2},
		{"OPP", "Opposite", "varsity", 2, 1},
		{"L", "Libero", "varsity", 1, 1},
	},
	"baseball": {
		{"P", "Pitcher", "varsity", 4, 1},
		{"C", "Catcher", "varsity", 2, 1},
		{"IF", "Infield", "varsity", 5, 4},
		{"OF", "Outfield", "varsity", 4, 3},
	},
	"hockey": {
		{"C", "Center", "first_line", 2, 1},
		{"LW", "Left Wing", "first_line", 2, 1},
		{"RW", "Right Wing", "first_line", 2, 1},
		{"D", "Defense", "second_line", 4, 2},
		{"G", "Goalie", "second_line", 2, 1},
	},
}

var genericPool = []slotPool{ //nolint:gochecknoglobals // static lookup
	{"ATH", "Athlete", "varsity", 12, 6},
}

var firstNames = []string{ //nolint:gochecknoglobals // static lookup
	"Avery", "Blake", "Cameron", "Dakota", "Emerson", "Finley", "Gray", "Harper",
	"Indigo", "Jordan", "Kai", "Logan", "Morgan", "Noel", "Oakley", "Parker",
	"Quinn", "Reese", "Sawyer", "Taylor", "Umi", "Val", "Wren", "Yael",
}

var lastNames = []string{ //nolint:gochecknoglobals // static lookup
	"Adeyemi", "Brooks", "Castillo", "Dubois", "Eriksen", "Fontaine", "Garcia",
	"Haddad", "Ito", "Jensen", "Kowalski", "Lindqvist", "Mensah", "Novak",
	"Okafor", "Petrov", "Quintero", "Reyes", "Sato", "Thornton", "Uribe",
	"Vasquez", "Whitfield", "Zhang",
}

var staffTitles = []string{ //nolint:gochecknoglobals // static lookup
	"Athletic Trainer", "Team Manager", "Equipment Manager",
}
