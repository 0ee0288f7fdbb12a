package ipd

import (
	"fmt"
	"strings"
)

// Descriptor describes a registered strategy.
type Descriptor struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`        // canonical display name, e.g. "Tit for Tat"
	Description string `json:"description"` // one-line summary of the rule
	Randomized  bool   `json:"randomized"`  // decisions draw from the agent's Rand
	Unspecified bool   `json:"unspecified"` // named but without a decision rule

	build func() Strategy
}

// New constructs a fresh strategy instance.
func (d Descriptor) New() (Strategy, error) {
	if d.Unspecified || d.build == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnspecifiedStrategy, d.Name)
	}
	return d.build(), nil
}

var registry = []Descriptor{
	{
		Kind: KindKantian, Name: "Kantian",
		Description: "Always cooperates.",
		build:       func() Strategy { return Kantian{} },
	},
	{
		Kind: KindDefector, Name: "Defector",
		Description: "Always defects.",
		build:       func() Strategy { return Defector{} },
	},
	{
		Kind: KindTitForTat, Name: "Tit for Tat",
		Description: "Cooperates first, then copies the opponent's last move.",
		build:       func() Strategy { return TitForTat{} },
	},
	{
		Kind: KindTitFor2Tats, Name: "Tit for 2 Tats",
		Description: "Cooperates unless the opponent's last two moves were both defect.",
		build:       func() Strategy { return &TitFor2Tats{} },
	},
	{
		Kind: KindMeanTitForTat, Name: "Mean Tit for Tat",
		Description: "Tit for Tat, but defects one turn in six at random.",
		Randomized:  true,
		build:       func() Strategy { return MeanTitForTat{} },
	},
	{
		Kind: KindWaryTitForTat, Name: "Wary Tit for Tat",
		Description: "Tit for Tat, but starts by defecting.",
		build:       func() Strategy { return WaryTitForTat{} },
	},
	{
		Kind: KindTester, Name: "Tester",
		Description: "Tit for Tat that occasionally probes; alternates D/C against opponents that do not retaliate within one turn.",
		Randomized:  true,
		build:       NewTester,
	},
	{
		Kind: KindConniver, Name: "Conniver",
		Description: "Tit for Tat that occasionally probes; defects for good against opponents that do not retaliate within two turns.",
		Randomized:  true,
		build:       NewConniver,
	},
	{
		Kind: KindGrudger, Name: "Grudger",
		Description: "Cooperates until the opponent defects once, then always defects.",
		build:       func() Strategy { return &Grudger{} },
	},
	{
		Kind: KindPavlovian, Name: "Pavlovian",
		Description: "Repeats its last move if its score went up, otherwise switches.",
		build:       func() Strategy { return &Pavlovian{} },
	},
	{
		Kind: KindClanGrunt, Name: "Clan Grunt",
		Description: "Opening-sequence clan member. No decision rule defined yet.",
		Unspecified: true,
	},
	{
		Kind: KindClanLeader, Name: "Clan Leader",
		Description: "Opening-sequence clan leader. No decision rule defined yet.",
		Unspecified: true,
	},
	{
		Kind: KindRandom, Name: "Random",
		Description: "Cooperates or defects at 50/50.",
		Randomized:  true,
		build:       func() Strategy { return Random{} },
	},
}

// normalizeName folds case and drops spaces, hyphens and underscores so that
// "Tit for Tat", "tit-for-tat" and "TitForTat" all resolve to the same entry.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Lookup resolves a strategy name or kind.
// Returns *UnknownStrategyError if nothing matches.
func Lookup(name string) (Descriptor, error) {
	key := normalizeName(name)
	if key != "" {
		for _, d := range registry {
			if normalizeName(d.Name) == key || normalizeName(string(d.Kind)) == key {
				return d, nil
			}
		}
	}
	return Descriptor{}, &UnknownStrategyError{Name: name}
}

// NewStrategy constructs a fresh strategy by name.
func NewStrategy(name string) (Strategy, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return d.New()
}

// NewAgentByName constructs a fresh agent running the named strategy.
// An empty label defaults to the strategy's display name.
func NewAgentByName(strategyName, label string, rng Rand) (*Agent, error) {
	d, err := Lookup(strategyName)
	if err != nil {
		return nil, err
	}
	s, err := d.New()
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = d.Name
	}
	return NewAgent(label, s, rng), nil
}

// Strategies returns every registered descriptor in registration order.
func Strategies() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Names returns the canonical names of every strategy that can be constructed.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, d := range registry {
		if !d.Unspecified {
			names = append(names, d.Name)
		}
	}
	return names
}
