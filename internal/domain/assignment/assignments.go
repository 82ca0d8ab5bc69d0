package assignment

import "fmt"

// DropResult describes the effect of a single Assign or Swap.
type DropResult struct {
	// Changed is false when the member already occupied the slot.
	Changed bool
	// From is the slot the member left, empty if it was unassigned.
	From string
	// Displaced is the previous occupant of the target slot, if any.
	Displaced string
	// DisplacedTo is where the displaced member ended up (swap only).
	DisplacedTo string
}

// Assignments is an explicit, injective slot<->member relation. It is not
// safe for concurrent use; the owning view serialises access.
type Assignments struct {
	bySlot   map[string]string
	byMember map[string]string
}

// New returns an empty assignment set.
func New() *Assignments {
	return &Assignments{
		bySlot:   make(map[string]string),
		byMember: make(map[string]string),
	}
}

// FromMap builds an assignment set from m. It fails when m maps one member
// to more than one slot.
func FromMap(m Map) (*Assignments, error) {
	a := New()
	for slot, member := range m {
		if slot == "" || member == "" {
			return nil, fmt.Errorf("%w: empty slot or member", ErrNotInjective)
		}
		if prev, dup := a.byMember[member]; dup {
			return nil, fmt.Errorf("%w: member %q in slots %q and %q", ErrNotInjective, member, prev, slot)
		}
		a.bySlot[slot] = member
		a.byMember[member] = slot
	}
	return a, nil
}

// Assign places member into slot with move semantics: the member leaves any
// slot it held, and a different occupant of slot becomes unassigned.
func (a *Assignments) Assign(slot, member string) DropResult {
	if a.bySlot[slot] == member {
		return DropResult{From: slot}
	}
	res := DropResult{Changed: true}
	if from, ok := a.byMember[member]; ok {
		delete(a.bySlot, from)
		res.From = from
	}
	if occupant, ok := a.bySlot[slot]; ok {
		delete(a.byMember, occupant)
		res.Displaced = occupant
	}
	a.bySlot[slot] = member
	a.byMember[member] = slot
	return res
}

// Swap is Assign, except that a displaced occupant moves into the slot the
// member left (when it left one).
func (a *Assignments) Swap(slot, member string) DropResult {
	res := a.Assign(slot, member)
	if res.Displaced != "" && res.From != "" {
		a.bySlot[res.From] = res.Displaced
		a.byMember[res.Displaced] = res.From
		res.DisplacedTo = res.From
	}
	return res
}

// Remove clears slot and returns the member that held it.
func (a *Assignments) Remove(slot string) (string, bool) {
	member, ok := a.bySlot[slot]
	if !ok {
		return "", false
	}
	delete(a.bySlot, slot)
	delete(a.byMember, member)
	return member, true
}

// Member returns the occupant of slot.
func (a *Assignments) Member(slot string) (string, bool) {
	m, ok := a.bySlot[slot]
	return m, ok
}

// Slot returns the slot held by member.
func (a *Assignments) Slot(member string) (string, bool) {
	s, ok := a.byMember[member]
	return s, ok
}

// Len returns the number of occupied slots.
func (a *Assignments) Len() int {
	return len(a.bySlot)
}

// Map returns a copy of the slot -> member relation.
func (a *Assignments) Map() Map {
	out := make(Map, len(a.bySlot))
	for k, v := range a.bySlot {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (a *Assignments) Clone() *Assignments {
	c := New()
	for k, v := range a.bySlot {
		c.bySlot[k] = v
		c.byMember[v] = k
	}
	return c
}
