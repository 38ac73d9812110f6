package sim

import (
	"fmt"
	"time"
)

// EventKind names a discrete happening the shell may react to with sound or UI.
type EventKind int

const (
	EventNone EventKind = iota
	EventPunch          // a melee swing started
	EventHit            // a strike connected unguarded
	EventBlocked        // a strike connected against a raised guard
	EventGuard          // a guard was raised
	EventJump
	EventSpecial      // signature move fired
	EventSpecialBurst // one step of the signature move flourish
	EventKnockout
	EventTimerTick
	EventTimeUp
	EventRevealWinner // the victory screen is due
	EventPickup
	EventLifeLost
	EventLevelComplete
	EventPowerUp
	EventLevelFailed
	EventShot
	EventBossHit
	EventBossDefeated
	EventGameWon
	EventGameOver
	EventAsked    // a question went to the 8-ball
	EventShimmer  // thinking sparkle
	EventAnswered // the 8-ball replied
)

var eventNames = map[EventKind]string{
	EventNone:          "none",
	EventPunch:         "punch",
	EventHit:           "hit",
	EventBlocked:       "blocked",
	EventGuard:         "guard",
	EventJump:          "jump",
	EventSpecial:       "special",
	EventSpecialBurst:  "special_burst",
	EventKnockout:      "knockout",
	EventTimerTick:     "timer_tick",
	EventTimeUp:        "time_up",
	EventRevealWinner:  "reveal_winner",
	EventPickup:        "pickup",
	EventLifeLost:      "life_lost",
	EventLevelComplete: "level_complete",
	EventPowerUp:       "power_up",
	EventLevelFailed:   "level_failed",
	EventShot:          "shot",
	EventBossHit:       "boss_hit",
	EventBossDefeated:  "boss_defeated",
	EventGameWon:       "game_won",
	EventGameOver:      "game_over",
	EventAsked:         "asked",
	EventShimmer:       "shimmer",
	EventAnswered:      "answered",
}

// String returns the snake_case name used in logs and the spectator feed.
func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (k *EventKind) UnmarshalText(b []byte) error {
	for kind, name := range eventNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("sim: unknown event kind %q", b)
}

// EventKinds lists every named kind except EventNone, in declaration order.
func EventKinds() []EventKind {
	kinds := make([]EventKind, 0, len(eventNames)-1)
	for k := EventPunch; k <= EventAnswered; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Event is a notification emitted by a round. Actor and Target are seat or
// entity numbers (0 when not applicable); Amount carries damage, points or
// a level number depending on Kind.
type Event struct {
	Kind   EventKind     `json:"kind"`
	At     time.Duration `json:"at"`
	Actor  int           `json:"actor,omitempty"`
	Target int           `json:"target,omitempty"`
	Amount float64       `json:"amount,omitempty"`
}

// Sink receives events as they happen.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(e Event) { f(e) }

// Recorder buffers events until the shell drains them after a frame.
type Recorder struct {
	events []Event
	tee    Sink
}

// NewRecorder returns a recorder that also forwards every event to tee
// when tee is non-nil.
func NewRecorder(tee Sink) *Recorder {
	return &Recorder{tee: tee}
}

// Emit appends e.
func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
	if r.tee != nil {
		r.tee.Emit(e)
	}
}

// Drain returns the buffered events and empties the buffer.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Len returns the number of buffered events.
func (r *Recorder) Len() int { return len(r.events) }

// Count returns how many buffered events have the given kind.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
