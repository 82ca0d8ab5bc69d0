package rosterfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/lineup/internal/adapters/rosterfile"
	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

const eaglesYAML = `
team: Eagles
sport: Football
season: "2026"
members:
  - id: m-1
    first_name: Jordan
    last_name: Reyes
    jersey: 12
    captain: true
    starter: true
    rating: 91
    positions:
      - {key: QB, name: Quarterback, primary: true}
    line_groups:
      - {key: offense, name: Offense}
    badges:
      - {key: mvp, label: MVP}
  - id: c-1
    first_name: Dana
    last_name: Cole
    role: Coach
    role_title: Head Coach
`

const eaglesJSON = `{
  "team": "Eagles",
  "members": [
    {"id": "m-1", "first_name": "Jordan", "jersey": 12, "positions": [{"key": "QB"}]}
  ]
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a YAML roster file", t, func() {
		path := writeFile(t, "eagles.yaml", eaglesYAML)

		convey.Convey("When it is loaded", func() {
			r, err := rosterfile.NewProvider(path).Load(ctx)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then team labels are read and the sport is normalised", func() {
				convey.So(r.Context(), convey.ShouldResemble, card.Context{Team: "Eagles", Sport: "football", Season: "2026"})
			})

			convey.Convey("Then members keep file order and field values", func() {
				convey.So(r.Members, convey.ShouldHaveLength, 2)
				m := r.Members[0]
				convey.So(m.ID, convey.ShouldEqual, "m-1")
				convey.So(m.Role, convey.ShouldEqual, model.RolePlayer)
				convey.So(m.Jersey, convey.ShouldNotBeNil)
				convey.So(*m.Jersey, convey.ShouldEqual, 12)
				convey.So(m.Captain, convey.ShouldBeTrue)
				convey.So(m.Rating, convey.ShouldEqual, 91)
				convey.So(m.PositionKeys(), convey.ShouldResemble, []string{"QB"})
				convey.So(m.LineGroupKeys(), convey.ShouldResemble, []string{"offense"})
				convey.So(m.Badges, convey.ShouldResemble, []model.Badge{{Key: "mvp", Label: "MVP"}})
			})

			convey.Convey("Then roles are case-insensitive", func() {
				convey.So(r.Members[1].Role, convey.ShouldEqual, model.RoleCoach)
				convey.So(r.Members[1].RoleTitle, convey.ShouldEqual, "Head Coach")
			})
		})
	})

	convey.Convey("Given a JSON roster without a sport", t, func() {
		path := writeFile(t, "eagles.json", eaglesJSON)

		convey.Convey("Then the default sport fills in", func() {
			r, err := rosterfile.NewProvider(path, rosterfile.WithDefaultSport("Basketball")).Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Sport, convey.ShouldEqual, "basketball")
			convey.So(r.Members[0].Jersey, convey.ShouldNotBeNil)
			convey.So(*r.Members[0].Jersey, convey.ShouldEqual, 12)
		})

		convey.Convey("Then without a default the roster is invalid", func() {
			_, err := rosterfile.NewProvider(path).Load(ctx)
			convey.So(errors.Is(err, rosterfile.ErrInvalidRoster), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given malformed rosters", t, func() {
		cases := []struct {
			name string
			body string
		}{
			{"missing id", "sport: football\nmembers:\n  - first_name: Ann\n"},
			{"duplicate id", "sport: football\nmembers:\n  - id: a\n  - id: a\n"},
			{"unknown role", "sport: football\nmembers:\n  - id: a\n    role: mascot\n"},
		}
		for _, tc := range cases {
			convey.Convey("Then "+tc.name+" is rejected", func() {
				path := writeFile(t, "bad.yaml", tc.body)
				_, err := rosterfile.NewProvider(path).Load(ctx)
				convey.So(errors.Is(err, rosterfile.ErrInvalidRoster), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given a missing file", t, func() {
		_, err := rosterfile.NewProvider(filepath.Join(t.TempDir(), "nope.yaml")).Load(ctx)
		convey.So(errors.Is(err, rosterfile.ErrLoadRoster), convey.ShouldBeTrue)
	})

	convey.Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := rosterfile.NewProvider(writeFile(t, "eagles.yaml", eaglesYAML)).Load(cctx)
		convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
	})
}
