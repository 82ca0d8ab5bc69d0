package roster

import "github.com/okian/lineup/internal/domain/model"

// Partition is a filtered roster split by role. Each list keeps roster order.
type Partition struct {
	Coaches  []model.Member
	Athletes []model.Member
	Staff    []model.Member
}

// Len returns the number of members across all partitions.
func (p *Partition) Len() int {
	return len(p.Coaches) + len(p.Athletes) + len(p.Staff)
}

// Index filters members with pred and partitions the result by role.
// Members with an unknown role are treated as athletes.
func Index(members []model.Member, pred Predicate) Partition {
	var out Partition
	for i := range members {
		m := &members[i]
		if !pred.Match(m) {
			continue
		}
		switch m.Role {
		case model.RoleCoach:
			out.Coaches = append(out.Coaches, *m)
		case model.RoleStaff:
			out.Staff = append(out.Staff, *m)
		default:
			out.Athletes = append(out.Athletes, *m)
		}
	}
	return out
}

// LineGroups returns the distinct line groups present on the roster in
// first-seen order. Used to populate the line-group selector.
func LineGroups(members []model.Member) []model.LineGroup {
	seen := make(map[string]struct{})
	var out []model.LineGroup
	for i := range members {
		for _, g := range members[i].LineGroups {
			if _, ok := seen[g.Key]; ok {
				continue
			}
			seen[g.Key] = struct{}{}
			g.Primary = false
			out = append(out, g)
		}
	}
	return out
}
