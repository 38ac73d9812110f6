package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// SampleRate is used for playback and export.
const SampleRate = beep.SampleRate(48000)

// Note is one tone inside a cue.
type Note struct {
	At       time.Duration // offset from the start of the cue
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Gain     float64 // starting amplitude, decays to 0.01
}

// Cue is a named group of notes.
type Cue struct {
	Name  string
	Notes []Note
}

// Length returns when the last note ends.
func (c Cue) Length() time.Duration {
	var end time.Duration
	for _, n := range c.Notes {
		if e := n.At + n.Duration; e > end {
			end = e
		}
	}
	return end
}

func tone(freq float64, d time.Duration, w Wave, gain float64) Note {
	return Note{Freq: freq, Duration: d, Wave: w, Gain: gain}
}

func at(offset time.Duration, n Note) Note {
	n.At = offset
	return n
}

var (
	punchCue = Cue{Name: "punch", Notes: []Note{tone(200, 100*time.Millisecond, Sine, 0.3)}}
	hitCue   = Cue{Name: "hit", Notes: []Note{tone(150, 150*time.Millisecond, Saw, 0.4)}}
	blockCue = Cue{Name: "block", Notes: []Note{tone(300, 80*time.Millisecond, Square, 0.2)}}

	specialCue = Cue{Name: "special", Notes: []Note{
		at(0, tone(300, 150*time.Millisecond, Saw, 0.5)),
		at(50*time.Millisecond, tone(400, 150*time.Millisecond, Saw, 0.5)),
		at(100*time.Millisecond, tone(500, 150*time.Millisecond, Saw, 0.5)),
		at(150*time.Millisecond, tone(700, 150*time.Millisecond, Saw, 0.5)),
		at(200*time.Millisecond, tone(900, 150*time.Millisecond, Saw, 0.5)),
		at(300*time.Millisecond, tone(100, 200*time.Millisecond, Sine, 0.6)),
	}}

	// C5 E5 G5 C6
	victoryCue = Cue{Name: "victory", Notes: []Note{
		at(0, tone(523.25, 300*time.Millisecond, Sine, 0.3)),
		at(150*time.Millisecond, tone(659.25, 300*time.Millisecond, Sine, 0.3)),
		at(300*time.Millisecond, tone(783.99, 300*time.Millisecond, Sine, 0.3)),
		at(450*time.Millisecond, tone(1046.50, 300*time.Millisecond, Sine, 0.3)),
	}}

	pelletCue = Cue{Name: "pellet", Notes: []Note{tone(800, 200*time.Millisecond, Sine, 0.3)}}
	shotCue   = Cue{Name: "shot", Notes: []Note{tone(600, 150*time.Millisecond, Sine, 0.2)}}

	chimeCue = Cue{Name: "chime", Notes: []Note{
		at(0, tone(523.25, 1500*time.Millisecond, Sine, 0.15)),
		at(100*time.Millisecond, tone(659.25, 1400*time.Millisecond, Sine, 0.15)),
		at(200*time.Millisecond, tone(783.99, 1300*time.Millisecond, Sine, 0.15)),
	}}

	shimmerCue = func() Cue {
		c := Cue{Name: "shimmer"}
		for i, f := range []float64{800, 1000, 1200, 1400, 1600, 1400, 1200} {
			c.Notes = append(c.Notes, at(time.Duration(i)*150*time.Millisecond, tone(f, 300*time.Millisecond, Triangle, 0.08)))
		}
		return c
	}()
)

var cues = map[sim.EventKind]Cue{
	sim.EventPunch:         punchCue,
	sim.EventHit:           hitCue,
	sim.EventGuard:         blockCue,
	sim.EventBlocked:       blockCue,
	sim.EventSpecial:       specialCue,
	sim.EventRevealWinner:  victoryCue,
	sim.EventPickup:        pelletCue,
	sim.EventBossHit:       pelletCue,
	sim.EventShot:          shotCue,
	sim.EventLevelComplete: victoryCue,
	sim.EventGameWon:       victoryCue,
	sim.EventAsked:         chimeCue,
	sim.EventShimmer:       shimmerCue,
}

// For returns the cue played for kind. Kinds without a sound report false.
func For(kind sim.EventKind) (Cue, bool) {
	c, ok := cues[kind]
	return c, ok
}

// Cues returns each distinct cue once, ordered by first event kind.
func Cues() []Cue {
	seen := make(map[string]bool)
	var out []Cue
	for _, k := range sim.EventKinds() {
		c, ok := cues[k]
		if !ok || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}

// Render builds a finite streamer for c at rate, scaled by volume (1 is
// unchanged, 0 is silent).
func Render(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(c.Notes))
	for _, n := range c.Notes {
		osc := newOscillator(n.Freq, n.Duration, n.Wave, rate)
		note := beep.Streamer(newDecay(osc, n.Gain, n.Duration, rate))
		if n.At > 0 {
			note = beep.Seq(beep.Silence(rate.N(n.At)), note)
		}
		parts = append(parts, note)
	}
	mixed := beep.Take(rate.N(c.Length()), beep.Mix(parts...))
	return withVolume(mixed, volume)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
