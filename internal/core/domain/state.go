package domain

import "fmt"

// State is the traffic controller's lifecycle position for a campaign.
type State uint8

const (
	StateIdle State = iota
	StateActive
	StatePaused
	StateHighSpendPaused
	StateHighSpendBudgetUpdated
	StateForceActivated
)

var stateNames = [...]string{
	StateIdle:                   "idle",
	StateActive:                 "active",
	StatePaused:                 "paused",
	StateHighSpendPaused:        "high_spend_paused",
	StateHighSpendBudgetUpdated: "high_spend_budget_updated",
	StateForceActivated:         "force_activated",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ParseState converts the persisted name of a state back into a State.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return StateIdle, fmt.Errorf("unknown campaign state %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Regime classifies a campaign's daily spend.
type Regime uint8

const (
	RegimeLowSpend Regime = iota
	RegimeHighSpend
)

func (r Regime) String() string {
	if r == RegimeHighSpend {
		return "high-spend"
	}
	return "low-spend"
}
