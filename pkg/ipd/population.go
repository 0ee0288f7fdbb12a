package ipd

import "fmt"

// Population is an ordered, duplicate-free collection of agents. Membership
// is fixed at construction; every projection returns a new slice.
type Population struct {
	members []*Agent
}

// NewPopulation builds a population from agents in order. Adding the same
// agent twice returns ErrDuplicateMember; distinct agents with equal state
// are fine.
func NewPopulation(agents ...*Agent) (*Population, error) {
	seen := make(map[*Agent]struct{}, len(agents))
	members := make([]*Agent, 0, len(agents))
	for i, a := range agents {
		if a == nil {
			return nil, fmt.Errorf("population member %d is nil", i)
		}
		if _, dup := seen[a]; dup {
			return nil, fmt.Errorf("%w: '%s' at position %d", ErrDuplicateMember, a.Name(), i)
		}
		seen[a] = struct{}{}
		members = append(members, a)
	}
	return &Population{members: members}, nil
}

// Members returns a read-only ordered view (a copy) of the population.
func (p *Population) Members() []*Agent {
	out := make([]*Agent, len(p.members))
	copy(out, p.members)
	return out
}

// Len returns the number of members.
func (p *Population) Len() int {
	return len(p.members)
}

// FirstMember returns the first agent or ErrEmptyPopulation.
func (p *Population) FirstMember() (*Agent, error) {
	if len(p.members) == 0 {
		return nil, ErrEmptyPopulation
	}
	return p.members[0], nil
}

// Excluding returns every member except excluded, in order. Matching is by
// identity, so value-equal agents are kept.
func (p *Population) Excluding(excluded *Agent) []*Agent {
	out := make([]*Agent, 0, len(p.members))
	for _, m := range p.members {
		if m != excluded {
			out = append(out, m)
		}
	}
	return out
}

// Rest returns the population without its first member. The receiver is not
// modified.
func (p *Population) Rest() *Population {
	if len(p.members) == 0 {
		return &Population{}
	}
	return &Population{members: p.Excluding(p.members[0])}
}

// Contains reports whether a is a member.
func (p *Population) Contains(a *Agent) bool {
	for _, m := range p.members {
		if m == a {
			return true
		}
	}
	return false
}
