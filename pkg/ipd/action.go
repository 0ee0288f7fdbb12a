package ipd

import "fmt"

// Action is a single turn's choice. true means cooperate, false means defect.
type Action bool

const (
	// Cooperate is the cooperative move
	Cooperate Action = true

	// Defect is the defecting move
	Defect Action = false
)

// String returns "C" for Cooperate and "D" for Defect.
func (a Action) String() string {
	if a == Cooperate {
		return "C"
	}
	return "D"
}

// Flip returns the opposite action.
func (a Action) Flip() Action {
	return !a
}

// MarshalText encodes the action as "C" or "D" so match logs stay compact in JSON.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts "C"/"D" (case-insensitive) or "cooperate"/"defect".
func (a *Action) UnmarshalText(text []byte) error {
	switch string(text) {
	case "C", "c", "cooperate":
		*a = Cooperate
	case "D", "d", "defect":
		*a = Defect
	default:
		return fmt.Errorf("invalid action: %q (expected C or D)", string(text))
	}
	return nil
}
