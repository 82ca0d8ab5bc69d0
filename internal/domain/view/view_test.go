package view_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/lineup/internal/domain/card"
	"github.com/okian/lineup/internal/domain/layout"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/roster"
	"github.com/okian/lineup/internal/domain/view"
	"github.com/okian/lineup/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func slot(key string, accepts ...string) layout.LayoutSlot {
	return layout.LayoutSlot{Key: key, Label: key, X: 50, Y: 50, Accepts: accepts}
}

func athlete(id string, starter bool, group string, positions ...string) model.Member {
	m := model.Member{ID: id, FirstName: "Player", LastName: id, Role: model.RolePlayer, Starter: starter}
	for i, p := range positions {
		m.Positions = append(m.Positions, model.Position{Key: p, Name: p, Primary: i == 0})
	}
	if group != "" {
		m.LineGroups = []model.LineGroup{{Key: group, Name: group, Primary: true}}
	}
	return m
}

func testRegistry() *layout.Registry {
	r, err := layout.NewRegistry([]layout.SportLayoutTemplate{
		{ID: "offense", Name: "Offense", SportKey: "football", Type: layout.TypeFormation, Slots: []layout.LayoutSlot{
			slot("QB", "QB"), slot("WR1", "WR"), slot("WR2", "WR"),
		}},
		{ID: "receivers", Name: "Receivers", SportKey: "football", Type: layout.TypeFormation, Slots: []layout.LayoutSlot{
			slot("X", "WR"), slot("Z", "WR"),
		}},
		{ID: "court", Name: "Court", SportKey: "basketball", Type: layout.TypeCourtMap, Slots: []layout.LayoutSlot{
			slot("PG", "PG"),
		}},
		{ID: "grouped", Name: "Roster", SportKey: layout.Wildcard, Type: layout.TypeGroupedList},
	})
	if err != nil {
		panic(err)
	}
	return r
}

// scenarioRoster is the roster 1[QB], 2[WR], 3[WR], 4[RB] plus a coach.
func scenarioRoster() []model.Member {
	coach := model.Member{ID: "c1", FirstName: "Dana", LastName: "Cole", Role: model.RoleCoach, RoleTitle: "Head Coach"}
	return []model.Member{
		athlete("1", true, "offense", "QB"),
		athlete("2", true, "offense", "WR"),
		athlete("3", false, "offense", "WR"),
		athlete("4", false, "defense", "RB"),
		coach,
	}
}

func football() card.Context {
	return card.Context{Team: "Eagles", Sport: "football", Season: "2026"}
}

func occupants(l view.Layout) map[string]string {
	out := make(map[string]string)
	for _, p := range l.Placements {
		if p.Card != nil {
			out[p.Slot.Key] = p.Card.ID
		}
	}
	return out
}

func benchIDs(l view.Layout) []string {
	var out []string
	for _, c := range l.Bench {
		out = append(out, c.ID)
	}
	return out
}

func newView(opts ...view.Option) *view.TeamView {
	v, err := view.New(context.Background(), testRegistry(), scenarioRoster(), football(), opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func TestNew(t *testing.T) {
	Convey("Given view construction", t, func() {
		ctx := context.Background()

		Convey("a registry is required", func() {
			_, err := view.New(ctx, nil, scenarioRoster(), football())
			So(err, ShouldEqual, view.ErrNoRegistry)
		})

		Convey("member ids must be unique", func() {
			members := append(scenarioRoster(), athlete("2", false, "", "TE"))
			_, err := view.New(ctx, testRegistry(), members, football())
			So(errors.Is(err, view.ErrDuplicateMember), ShouldBeTrue)
		})

		Convey("member ids are required", func() {
			_, err := view.New(ctx, testRegistry(), []model.Member{{FirstName: "Nobody"}}, football())
			So(errors.Is(err, view.ErrMissingMemberID), ShouldBeTrue)
		})

		Convey("the sport default template is selected", func() {
			v := newView()
			So(v.ID(), ShouldNotBeEmpty)
			l := v.Layout()
			So(l.Status, ShouldEqual, view.StatusReady)
			So(l.Template.ID, ShouldEqual, "offense")
			So(l.IsSpatial(), ShouldBeTrue)
		})

		Convey("a preferred template is honoured when offered", func() {
			v := newView(view.WithTemplate("receivers"))
			So(v.Layout().Template.ID, ShouldEqual, "receivers")
		})

		Convey("a foreign preferred template falls back to the default", func() {
			v := newView(view.WithTemplate("court"))
			So(v.Layout().Template.ID, ShouldEqual, "offense")
		})
	})
}

func TestAutoAssignment(t *testing.T) {
	Convey("Given the QB/WR/WR template and the scenario roster", t, func() {
		v := newView()
		l := v.Layout()

		Convey("slots are filled greedily in slot order", func() {
			So(l.Mode, ShouldEqual, view.ModeAuto)
			So(occupants(l), ShouldResemble, map[string]string{"QB": "1", "WR1": "2", "WR2": "3"})
		})

		Convey("unmatched members sit on the bench", func() {
			So(benchIDs(l), ShouldResemble, []string{"4", "c1"})
		})

		Convey("placements follow the template slot order", func() {
			So(len(l.Placements), ShouldEqual, 3)
			So(l.Placements[0].Slot.Key, ShouldEqual, "QB")
			So(l.Placements[2].Slot.Key, ShouldEqual, "WR2")
		})

		Convey("the roster is partitioned by role", func() {
			So(len(l.Coaches), ShouldEqual, 1)
			So(len(l.Athletes), ShouldEqual, 4)
			So(len(l.Staff), ShouldEqual, 0)
			So(l.Coaches[0].Team, ShouldEqual, "Eagles")
		})

		Convey("the filter narrows the candidate pool", func() {
			v.OnFilterChange(roster.Predicate{PositionGroup: "W"})
			l := v.Layout()
			So(occupants(l), ShouldResemble, map[string]string{"WR1": "2", "WR2": "3"})
			So(l.Bench, ShouldBeEmpty)
			So(v.Mode(), ShouldEqual, view.ModeAuto)
		})

		Convey("starters only leaves the second receiver slot open", func() {
			v.OnFilterChange(roster.Predicate{StartersOnly: true})
			So(occupants(v.Layout()), ShouldResemble, map[string]string{"QB": "1", "WR1": "2"})
		})
	})
}

func TestExplicitAssignment(t *testing.T) {
	Convey("Given an auto-filled view", t, func() {
		v := newView()

		Convey("dropping a placed member onto an occupied slot moves and displaces", func() {
			So(v.OnAssign("WR2", "2"), ShouldBeTrue)
			l := v.Layout()
			So(l.Mode, ShouldEqual, view.ModeExplicit)
			So(occupants(l), ShouldResemble, map[string]string{"QB": "1", "WR2": "2"})
			So(benchIDs(l), ShouldResemble, []string{"3", "4", "c1"})
		})

		Convey("dropping a bench member places it", func() {
			So(v.OnAssign("QB", "4"), ShouldBeTrue)
			So(occupants(v.Layout()), ShouldResemble, map[string]string{"QB": "4", "WR1": "2", "WR2": "3"})
		})

		Convey("explicit drops ignore accepted positions", func() {
			So(v.OnAssign("WR1", "c1"), ShouldBeTrue)
			So(v.Assignments()["WR1"], ShouldEqual, "c1")
		})

		Convey("an unknown member is a no-op", func() {
			So(v.OnAssign("QB", "ghost"), ShouldBeFalse)
			So(v.Mode(), ShouldEqual, view.ModeAuto)
			So(occupants(v.Layout()), ShouldResemble, map[string]string{"QB": "1", "WR1": "2", "WR2": "3"})
		})

		Convey("an unknown slot is a no-op", func() {
			So(v.OnAssign("K", "4"), ShouldBeFalse)
			So(v.Mode(), ShouldEqual, view.ModeAuto)
		})

		Convey("remove clears the slot and auto mode does not refill it", func() {
			So(v.OnRemove("QB"), ShouldBeTrue)
			l := v.Layout()
			So(l.Mode, ShouldEqual, view.ModeExplicit)
			So(occupants(l), ShouldResemble, map[string]string{"WR1": "2", "WR2": "3"})
			So(benchIDs(l), ShouldResemble, []string{"1", "4", "c1"})

			Convey("and removing an empty slot reports nothing removed", func() {
				So(v.OnRemove("QB"), ShouldBeFalse)
			})
		})

		Convey("every action keeps the assignment injective", func() {
			v.OnAssign("QB", "2")
			v.OnAssign("WR1", "2")
			v.OnAssign("WR2", "1")
			v.OnRemove("WR2")
			v.OnAssign("WR2", "3")

			seen := make(map[string]bool)
			for _, member := range v.Assignments() {
				So(seen[member], ShouldBeFalse)
				seen[member] = true
			}
		})

		Convey("filtered members keep their slot but are hidden", func() {
			v.OnAssign("QB", "1")
			v.OnFilterChange(roster.Predicate{PositionGroup: "WR"})
			So(occupants(v.Layout()), ShouldResemble, map[string]string{"WR1": "2", "WR2": "3"})

			v.OnFilterChange(roster.Predicate{})
			So(occupants(v.Layout())["QB"], ShouldEqual, "1")
		})
	})

	Convey("Given a view that swaps on drop", t, func() {
		v := newView(view.WithSwapOnDrop(true))

		Convey("the occupant moves into the slot the member left", func() {
			So(v.OnAssign("WR2", "2"), ShouldBeTrue)
			So(occupants(v.Layout()), ShouldResemble, map[string]string{"QB": "1", "WR1": "3", "WR2": "2"})
		})

		Convey("a bench member still displaces", func() {
			So(v.OnAssign("QB", "4"), ShouldBeTrue)
			So(occupants(v.Layout())["QB"], ShouldEqual, "4")
			So(benchIDs(v.Layout()), ShouldResemble, []string{"1", "c1"})
		})
	})
}

func TestTemplateSelect(t *testing.T) {
	Convey("Given an explicit view", t, func() {
		v := newView()
		v.OnRemove("QB")
		So(v.Mode(), ShouldEqual, view.ModeExplicit)

		Convey("templates of another sport cannot be selected", func() {
			So(v.OnTemplateSelect("court"), ShouldBeFalse)
			So(v.OnTemplateSelect("missing"), ShouldBeFalse)
			So(v.Mode(), ShouldEqual, view.ModeExplicit)
		})

		Convey("reselecting the current template keeps the assignments", func() {
			So(v.OnTemplateSelect("offense"), ShouldBeTrue)
			So(v.Mode(), ShouldEqual, view.ModeExplicit)
		})

		Convey("a new template starts over in auto mode", func() {
			So(v.OnTemplateSelect("receivers"), ShouldBeTrue)
			l := v.Layout()
			So(l.Mode, ShouldEqual, view.ModeAuto)
			So(occupants(l), ShouldResemble, map[string]string{"X": "2", "Z": "3"})
		})

		Convey("the wildcard template is offered too", func() {
			So(v.OnTemplateSelect("grouped"), ShouldBeTrue)
			l := v.Layout()
			So(l.IsSpatial(), ShouldBeFalse)
			So(v.OnAssign("QB", "1"), ShouldBeFalse)
			So(v.OnRemove("QB"), ShouldBeFalse)
		})

		Convey("the offered templates list sport templates first", func() {
			var ids []string
			for _, t := range v.Templates() {
				ids = append(ids, t.ID)
			}
			So(ids, ShouldResemble, []string{"offense", "receivers", "grouped"})
		})
	})
}

func TestFallbacks(t *testing.T) {
	Convey("Given a sport without templates", t, func() {
		team := card.Context{Team: "Eagles", Sport: "lacrosse"}
		v, err := view.New(context.Background(), testRegistry(), scenarioRoster(), team)
		So(err, ShouldBeNil)

		Convey("the grouped list groups by primary position", func() {
			l := v.Layout()
			So(l.Status, ShouldEqual, view.StatusReady)
			So(l.Template.ID, ShouldEqual, "grouped")
			So(l.Placements, ShouldBeEmpty)

			var keys []string
			for _, g := range l.Groups {
				keys = append(keys, g.Key)
			}
			So(keys, ShouldResemble, []string{"QB", "WR", "RB", ""})
			So(len(l.Groups[1].Cards), ShouldEqual, 2)
			So(l.Groups[3].Cards[0].ID, ShouldEqual, "c1")
		})
	})

	Convey("Given a registry without a wildcard", t, func() {
		r, err := layout.NewRegistry([]layout.SportLayoutTemplate{
			{ID: "court", SportKey: "basketball", Slots: []layout.LayoutSlot{slot("PG", "PG")}},
		})
		So(err, ShouldBeNil)

		v, err := view.New(context.Background(), r, scenarioRoster(), football())
		So(err, ShouldBeNil)

		Convey("the layout reports that nothing is available", func() {
			l := v.Layout()
			So(l.Status, ShouldEqual, view.StatusNoLayout)
			So(l.IsSpatial(), ShouldBeFalse)
			So(len(l.Bench), ShouldEqual, 5)
			So(v.OnAssign("PG", "1"), ShouldBeFalse)
		})
	})
}

func TestHighlightAndLineGroups(t *testing.T) {
	Convey("Given a view", t, func() {
		v := newView()

		Convey("a visible member can be highlighted", func() {
			So(v.Highlight("2"), ShouldBeTrue)
			l := v.Layout()
			So(l.Highlight, ShouldEqual, "2")
			So(l.Placements[1].Highlighted, ShouldBeTrue)
			So(l.Placements[0].Highlighted, ShouldBeFalse)
		})

		Convey("unknown members cannot be highlighted", func() {
			So(v.Highlight("ghost"), ShouldBeFalse)
		})

		Convey("the highlight is cleared when its member is filtered out", func() {
			v.Highlight("4")
			v.OnLineGroupSelect("offense")
			So(v.Layout().Highlight, ShouldBeEmpty)
			So(v.Filter().LineGroup, ShouldEqual, "offense")
		})

		Convey("line group selection keeps the rest of the filter", func() {
			v.OnFilterChange(roster.Predicate{StartersOnly: true})
			v.OnLineGroupSelect("offense")
			So(v.Filter(), ShouldResemble, roster.Predicate{StartersOnly: true, LineGroup: "offense"})

			v.OnLineGroupSelect("")
			So(v.Filter(), ShouldResemble, roster.Predicate{StartersOnly: true})
		})

		Convey("the selector offers every line group on the roster", func() {
			l := v.Layout()
			So(len(l.LineGroups), ShouldEqual, 2)
			So(l.LineGroups[0].Key, ShouldEqual, "offense")
			So(l.LineGroups[1].Key, ShouldEqual, "defense")
		})
	})
}
