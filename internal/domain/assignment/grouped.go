package assignment

import "github.com/okian/lineup/internal/domain/model"

// Group is one heading of the grouped-list fallback.
type Group struct {
	// Key is the primary position key; empty for members without positions.
	Key     string
	Name    string
	Members []model.Member
}

// GroupByPrimaryPosition partitions members by primary position key. Groups
// appear in first-seen order and members keep roster order. Members without
// positions are collected in a trailing group with an empty key.
func GroupByPrimaryPosition(members []model.Member) []Group {
	index := make(map[string]int)
	var groups []Group
	var unpositioned []model.Member
	for i := range members {
		p, ok := members[i].PrimaryPosition()
		if !ok {
			unpositioned = append(unpositioned, members[i])
			continue
		}
		at, seen := index[p.Key]
		if !seen {
			name := p.Name
			if name == "" {
				name = p.Key
			}
			at = len(groups)
			index[p.Key] = at
			groups = append(groups, Group{Key: p.Key, Name: name})
		}
		groups[at].Members = append(groups[at].Members, members[i])
	}
	if len(unpositioned) > 0 {
		groups = append(groups, Group{Name: "Other", Members: unpositioned})
	}
	return groups
}
