package eightball

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

func kinds(events []sim.Event) []sim.EventKind {
	out := make([]sim.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestBlankQuestionsIgnored(t *testing.T) {
	b := New(nil, nil)
	for _, q := range []string{"", "   ", "\t\n"} {
		if b.Ask(q) {
			t.Errorf("Ask(%q) accepted", q)
		}
	}
	if b.Thinking() || len(b.Drain()) != 0 {
		t.Error("blank questions must not start a consultation")
	}
}

func TestConsultationTiming(t *testing.T) {
	b := New(rand.New(rand.NewSource(4)), nil)
	if !b.Ask("  Will it rain?  ") {
		t.Fatal("question refused")
	}
	if b.Question() != "Will it rain?" {
		t.Errorf("question = %q, expected trimmed", b.Question())
	}

	var got []sim.Event
	for ms := 100; ms <= 2000; ms += 100 {
		b.Tick(time.Duration(ms) * time.Millisecond)
		got = append(got, b.Drain()...)
		if ms == 1400 && !b.Thinking() {
			t.Error("answer arrived early")
		}
	}

	want := []sim.EventKind{sim.EventAsked, sim.EventShimmer, sim.EventAnswered}
	if k := kinds(got); len(k) != len(want) || k[0] != want[0] || k[1] != want[1] || k[2] != want[2] {
		t.Fatalf("events = %v, expected %v", k, want)
	}
	if got[1].At != ShimmerDelay || got[2].At != AnswerDelay {
		t.Errorf("shimmer at %v, answer at %v", got[1].At, got[2].At)
	}
	if b.Thinking() || b.Answered() != 1 {
		t.Errorf("thinking = %v, answered = %d", b.Thinking(), b.Answered())
	}
	if b.Answer() != Answers[int(got[2].Amount)] {
		t.Errorf("answer %q does not match index %v", b.Answer(), got[2].Amount)
	}
}

func TestAnswersAreSeeded(t *testing.T) {
	ask := func(seed int64) []string {
		b := New(rand.New(rand.NewSource(seed)), nil)
		var out []string
		now := time.Duration(0)
		for i := 0; i < 5; i++ {
			b.Ask("again?")
			now += AnswerDelay
			b.Tick(now)
			out = append(out, b.Answer())
		}
		return out
	}
	a, b := ask(11), ask(11)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("answer %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestAskingAgainStartsOver(t *testing.T) {
	b := New(nil, nil)
	b.Ask("first?")
	b.Tick(time.Second)
	b.Ask("second?")
	b.Tick(AnswerDelay) // the first question's answer would be due here
	if !b.Thinking() {
		t.Fatal("the superseded consultation answered")
	}
	b.Tick(time.Second + AnswerDelay)
	if b.Thinking() || b.Answered() != 1 {
		t.Errorf("thinking = %v, answered = %d", b.Thinking(), b.Answered())
	}
}

func TestGameTextPrompt(t *testing.T) {
	g, err := registry.Create("eightball")
	if err != nil {
		t.Fatal(err)
	}
	prompt, ok := g.(registry.TextPrompt)
	if !ok {
		t.Fatal("eightball should take typed questions")
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if prompt.Submit(" ") {
		t.Error("blank submission accepted")
	}
	if !prompt.Submit("Am I right?") {
		t.Fatal("question refused")
	}

	screen := core.NewScreen(80, 24)
	g.Step(core.NewMultiInputFrame())
	g.Render(screen)
	if !strings.Contains(screen.String(), "Thinking…") {
		t.Error("thinking text missing")
	}

	for i := 0; i < 120; i++ {
		g.Step(core.NewMultiInputFrame())
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1", g.State().Score)
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), g.(*Game).Ball().Answer()) {
		t.Error("answer not rendered")
	}
}
