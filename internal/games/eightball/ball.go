package eightball

import (
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Timing of a consultation.
const (
	ShimmerDelay = 400 * time.Millisecond
	AnswerDelay  = 1500 * time.Millisecond
)

// Answers is everything the ball is willing to say.
var Answers = []string{
	"Absolutely not.",
	"Wow. You really asked that?",
	"The universe says no ♥",
	"Sure. If you're into disappointment.",
	"Ask again when you're smarter.",
	"I rolled my eyes so hard and I don't have eyes.",
	"This feels like a bad idea.",
	"Even I wouldn't bet on that.",
	"Technically yes. Emotionally? No.",
	"Let's pretend you didn't ask that.",
}

// Ball is the sarcastic 8-ball. A question starts a consultation: the chime
// sounds at once, the shimmer a little later, and the answer after
// AnswerDelay. Asking again mid-consultation starts over.
type Ball struct {
	rng    *rand.Rand
	events *sim.Recorder
	sched  sim.Schedule

	now      time.Duration
	question string
	answer   string
	thinking bool
	answered int
}

// New returns a ball drawing answers from rng.
func New(rng *rand.Rand, sink sim.Sink) *Ball {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Ball{rng: rng, events: sim.NewRecorder(sink)}
}

// Ask hands the ball a question. Blank questions are ignored and false is
// returned.
func (b *Ball) Ask(question string) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}
	b.sched.Reset()
	b.question = question
	b.answer = ""
	b.thinking = true

	b.events.Emit(sim.Event{Kind: sim.EventAsked, At: b.now})
	b.sched.After(b.now, ShimmerDelay, sim.Event{Kind: sim.EventShimmer})
	b.sched.After(b.now, AnswerDelay, sim.Event{Kind: sim.EventAnswered})
	return true
}

// Tick advances the ball to now and delivers whatever is due.
func (b *Ball) Tick(now time.Duration) {
	b.now = now
	for _, ev := range b.sched.Due(now) {
		if ev.Kind == sim.EventAnswered {
			i := b.rng.Intn(len(Answers))
			b.answer = Answers[i]
			b.thinking = false
			b.answered++
			ev.Amount = float64(i)
		}
		b.events.Emit(ev)
	}
}

// Question returns the last accepted question.
func (b *Ball) Question() string { return b.question }

// Answer returns the last answer, empty while thinking or before any question.
func (b *Ball) Answer() string { return b.answer }

// Thinking reports whether a consultation is in progress.
func (b *Ball) Thinking() bool { return b.thinking }

// Answered counts completed consultations.
func (b *Ball) Answered() int { return b.answered }

// Outcome is always none; the ball never finishes.
func (b *Ball) Outcome() sim.Outcome { return sim.OutcomeNone }

// Drain returns the events emitted since the last call.
func (b *Ball) Drain() []sim.Event { return b.events.Drain() }
