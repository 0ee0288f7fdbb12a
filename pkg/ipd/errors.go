package ipd

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPopulation is returned when the first member of an empty population is requested.
	ErrEmptyPopulation = errors.New("population has no members")

	// ErrInvalidMatchConfiguration is returned for a non-positive turn count.
	ErrInvalidMatchConfiguration = errors.New("invalid match configuration")

	// ErrAgentBusy is returned when an agent is already playing another match.
	// Under a correct schedule this never happens.
	ErrAgentBusy = errors.New("agent is already in a match")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnspecifiedStrategy is returned for registered names that have no decision rule.
	ErrUnspecifiedStrategy = errors.New("strategy has no decision rule")

	// ErrDuplicateMember is returned when the same agent is added to a population twice.
	ErrDuplicateMember = errors.New("agent already in population")
)

// AgentBusyError names the agent that could not be bound to a match.
type AgentBusyError struct {
	Agent string
}

func (e *AgentBusyError) Error() string {
	return fmt.Sprintf("agent '%s' is already in a match", e.Agent)
}

// Is makes errors.Is(err, ErrAgentBusy) work.
func (e *AgentBusyError) Is(target error) bool {
	return target == ErrAgentBusy
}

// UnknownStrategyError names the strategy that could not be resolved.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy: %s", e.Name)
}

// Is makes errors.Is(err, ErrUnknownStrategy) work.
func (e *UnknownStrategyError) Is(target error) bool {
	return target == ErrUnknownStrategy
}

// IsUnknownStrategy checks if an error is (or wraps) an UnknownStrategyError.
func IsUnknownStrategy(err error) bool {
	return errors.Is(err, ErrUnknownStrategy)
}
