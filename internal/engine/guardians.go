package engine

import (
	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
)

// GuardianSet is an unordered set of guardian principals backed by a
// resizable slice, giving O(1) membership checks plus enumerability.
// The slice and the membership map always hold exactly the same principals.
//
// Removal swaps the last element into the removed slot and truncates, so
// enumeration order is NOT stable across removals. Callers must not depend
// on ordering.
type GuardianSet struct {
	members    []principal.Principal
	membership map[principal.Principal]struct{}
}

// NewGuardianSet returns an empty guardian set.
func NewGuardianSet() *GuardianSet {
	return &GuardianSet{
		membership: make(map[principal.Principal]struct{}),
	}
}

// Contains reports whether p is a guardian.
func (g *GuardianSet) Contains(p principal.Principal) bool {
	_, ok := g.membership[p]
	return ok
}

// List returns a copy of the members in current enumeration order.
func (g *GuardianSet) List() []principal.Principal {
	out := make([]principal.Principal, len(g.members))
	copy(out, g.members)
	return out
}

// Count returns the number of guardians.
func (g *GuardianSet) Count() int {
	return len(g.members)
}

// add appends p to the set. Authorization and owner/zero checks belong to
// the engine; this only enforces set mechanics.
func (g *GuardianSet) add(p principal.Principal) error {
	if g.Contains(p) {
		return common.ErrAlreadyGuardian
	}
	g.members = append(g.members, p)
	g.membership[p] = struct{}{}
	return nil
}

// remove deletes p via swap-with-last-and-truncate.
func (g *GuardianSet) remove(p principal.Principal) error {
	if !g.Contains(p) {
		return common.ErrNotGuardian
	}
	for i, m := range g.members {
		if m == p {
			last := len(g.members) - 1
			g.members[i] = g.members[last]
			g.members = g.members[:last]
			break
		}
	}
	delete(g.membership, p)
	return nil
}
