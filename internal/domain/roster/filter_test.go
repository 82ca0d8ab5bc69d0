package roster_test

import (
	"testing"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func member(id, first, last string, role model.Role, starter bool, groups []string, positions ...string) model.Member {
	m := model.Member{ID: id, FirstName: first, LastName: last, Role: role, Starter: starter}
	for _, g := range groups {
		m.LineGroups = append(m.LineGroups, model.LineGroup{Key: g})
	}
	for _, p := range positions {
		m.Positions = append(m.Positions, model.Position{Key: p})
	}
	return m
}

func memberIDs(ms []model.Member) []string {
	out := make([]string, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ID)
	}
	return out
}

func sampleRoster() []model.Member {
	return []model.Member{
		member("c1", "Pat", "Coach", model.RoleCoach, false, []string{"offense"}),
		member("1", "Ada", "Lovelace", model.RolePlayer, true, []string{"offense"}, "OL"),
		member("2", "Grace", "Hopper", model.RolePlayer, false, []string{"offense"}, "OLB"),
		member("3", "Alan", "Turing", model.RolePlayer, true, []string{"defense"}, "OLB"),
		member("4", "Émile", "Borel", model.RolePlayer, true, []string{"offense", "defense"}, "QB", "OT"),
		member("s1", "Sam", "Trainer", model.RoleStaff, false, nil),
		member("5", "Linus", "Torvalds", model.RolePlayer, true, []string{"offense"}, "WR"),
	}
}

func TestPredicate(t *testing.T) {
	Convey("Given a roster", t, func() {
		members := sampleRoster()

		Convey("When no predicate is active", func() {
			got := roster.Filter(members, roster.Predicate{})

			Convey("Then every member is returned in order", func() {
				So(memberIDs(got), ShouldResemble, memberIDs(members))
				So(roster.Predicate{}.IsZero(), ShouldBeTrue)
			})
		})

		Convey("When filtering by position group", func() {
			got := roster.Filter(members, roster.Predicate{PositionGroup: "O"})

			Convey("Then prefix matching is used", func() {
				So(memberIDs(got), ShouldResemble, []string{"1", "2", "3", "4"})
			})
		})

		Convey("When filtering by line group", func() {
			got := roster.Filter(members, roster.Predicate{LineGroup: "defense"})

			Convey("Then the key must match exactly", func() {
				So(memberIDs(got), ShouldResemble, []string{"3", "4"})
				So(roster.Filter(members, roster.Predicate{LineGroup: "def"}), ShouldBeEmpty)
			})
		})

		Convey("When combining line group, position group and starters", func() {
			p := roster.Predicate{LineGroup: "offense", PositionGroup: "O", StartersOnly: true}
			got := roster.Filter(members, p)

			Convey("Then all predicates must hold", func() {
				So(memberIDs(got), ShouldResemble, []string{"1", "4"})
				So(p.Active(), ShouldEqual, 3)
			})
		})

		Convey("When searching by name", func() {
			Convey("Then matching is case-insensitive on the full name", func() {
				So(memberIDs(roster.Filter(members, roster.Predicate{NameSearch: "LACE"})), ShouldResemble, []string{"1"})
				So(memberIDs(roster.Filter(members, roster.Predicate{NameSearch: "grace h"})), ShouldResemble, []string{"2"})
				So(memberIDs(roster.Filter(members, roster.Predicate{NameSearch: "ÉMILE"})), ShouldResemble, []string{"4"})
			})

			Convey("Then surrounding spaces are part of the query", func() {
				So(memberIDs(roster.Filter(members, roster.Predicate{NameSearch: "A "})), ShouldResemble, []string{"1"})
				So(roster.Filter(members, roster.Predicate{NameSearch: " Ada"}), ShouldBeEmpty)
			})

			Convey("Then blank searches are inactive", func() {
				So(len(roster.Filter(members, roster.Predicate{NameSearch: "   "})), ShouldEqual, len(members))
			})
		})
	})
}

func TestIndex(t *testing.T) {
	Convey("Given a roster with every role", t, func() {
		members := sampleRoster()

		Convey("When indexing without filters", func() {
			part := roster.Index(members, roster.Predicate{})

			Convey("Then members are partitioned by role in order", func() {
				So(memberIDs(part.Coaches), ShouldResemble, []string{"c1"})
				So(memberIDs(part.Athletes), ShouldResemble, []string{"1", "2", "3", "4", "5"})
				So(memberIDs(part.Staff), ShouldResemble, []string{"s1"})
				So(part.Len(), ShouldEqual, len(members))
			})
		})

		Convey("When indexing with the starters filter", func() {
			part := roster.Index(members, roster.Predicate{StartersOnly: true})

			Convey("Then only starters remain", func() {
				So(part.Coaches, ShouldBeEmpty)
				So(part.Staff, ShouldBeEmpty)
				So(memberIDs(part.Athletes), ShouldResemble, []string{"1", "3", "4", "5"})
			})
		})

		Convey("When listing line groups", func() {
			groups := roster.LineGroups(members)

			Convey("Then distinct keys appear in first-seen order", func() {
				So(len(groups), ShouldEqual, 2)
				So(groups[0].Key, ShouldEqual, "offense")
				So(groups[1].Key, ShouldEqual, "defense")
			})
		})
	})
}
