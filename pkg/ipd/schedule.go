package ipd

// Pair is one scheduled match.
type Pair struct {
	A *Agent
	B *Agent
}

// AllPairs returns every unordered pair of the population exactly once.
//
// The first member is paired with everyone else, then the same is done for
// the population without it. A population of n yields n(n-1)/2 pairs; empty
// and singleton populations yield none.
func AllPairs(p *Population) []Pair {
	if p == nil || p.Len() < 2 {
		return nil
	}

	first, err := p.FirstMember()
	if err != nil {
		return nil
	}

	others := p.Excluding(first)
	pairs := make([]Pair, 0, len(others))
	for _, other := range others {
		pairs = append(pairs, Pair{A: first, B: other})
	}
	return append(pairs, AllPairs(p.Rest())...)
}

// Rounds partitions a schedule into rounds of agent-disjoint pairs, preserving
// schedule order within each round. Each element is an index into pairs.
// Matches inside one round can be played concurrently.
func Rounds(pairs []Pair) [][]int {
	var rounds [][]int
	var used []map[*Agent]bool

	for i, pair := range pairs {
		placed := false
		for r := range rounds {
			if used[r][pair.A] || used[r][pair.B] {
				continue
			}
			rounds[r] = append(rounds[r], i)
			used[r][pair.A], used[r][pair.B] = true, true
			placed = true
			break
		}
		if !placed {
			rounds = append(rounds, []int{i})
			used = append(used, map[*Agent]bool{pair.A: true, pair.B: true})
		}
	}
	return rounds
}
