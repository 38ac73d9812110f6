package sim

import "fmt"

// Outcome is the observable result flag of a round or level.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeP1Won
	OutcomeP2Won
	OutcomeTimeUp
	OutcomeLevelComplete
	OutcomeLevelFailed
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeP1Won:
		return "p1Won"
	case OutcomeP2Won:
		return "p2Won"
	case OutcomeTimeUp:
		return "timeUp"
	case OutcomeLevelComplete:
		return "levelComplete"
	case OutcomeLevelFailed:
		return "levelFailed"
	default:
		return "unknown"
	}
}

// Done reports whether the outcome ends the round.
func (o Outcome) Done() bool { return o != OutcomeNone }

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (o *Outcome) UnmarshalText(b []byte) error {
	for c := OutcomeNone; c <= OutcomeLevelFailed; c++ {
		if c.String() == string(b) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("sim: unknown outcome %q", b)
}
