// Package ipd provides the core types and engine pieces for running an
// Iterated Prisoner's Dilemma among a population of strategy agents.
//
// # Overview
//
// An Agent wraps a Strategy: a small finite-state decision process that is
// asked for one Action per turn. Agents keep a persistent score for the whole
// tournament, while strategy state is ephemeral and reset at the start of
// every match.
//
// A Population is an ordered, duplicate-free set of agents. AllPairs turns a
// population into the round-robin schedule (every unordered pair exactly
// once) and RunMatch plays one pairing for a fixed number of turns.
//
// # Strategies
//
// Kantian, Defector, Tit for Tat, Tit for 2 Tats, Mean Tit for Tat,
// Wary Tit for Tat, Grudger, Pavlovian and Random are reactive rules.
// Tester and Conniver run a probe protocol: an exploratory defection
// followed by a test window that decides whether the opponent can be
// exploited. Clan Grunt and Clan Leader are registered names without a
// decision rule; requesting them returns ErrUnspecifiedStrategy.
//
// # Usage Example
//
//	rng := rand.New(rand.NewPCG(42, 0))
//	tft, _ := ipd.NewAgentByName("Tit for Tat", "", rng)
//	grudger, _ := ipd.NewAgentByName("Grudger", "", rng)
//
//	result, err := ipd.RunMatch(tft, grudger, 200, ipd.DefaultPayoff)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.ScoreA, result.ScoreB) // 600 600
//
// # Randomness
//
// Randomised strategies never touch a process-wide generator. Each agent
// owns a Rand, normally a seeded math/rand/v2 source, so tournaments are
// reproducible and agents can be played concurrently.
package ipd
