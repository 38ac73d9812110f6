// Package audio turns simulation events into short synthesised tones.
// Cues are plain data; Render builds beep streamers from them, which can be
// written to WAV or played on the speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Triangle
)

func (w Wave) String() string {
	switch w {
	case Square:
		return "square"
	case Saw:
		return "saw"
	case Triangle:
		return "triangle"
	default:
		return "sine"
	}
}

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case Square:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case Saw:
			v = 2 * (o.phase - 0.5)
		case Triangle:
			v = 1 - 4*math.Abs(o.phase-0.5)
		default:
			v = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay scales a stream from gain down to floor along an exponential curve,
// reaching floor at the end of the note.
type decay struct {
	streamer beep.Streamer
	gain     float64
	ratio    float64 // per-sample multiplier
}

const decayFloor = 0.01

func newDecay(s beep.Streamer, gain float64, d time.Duration, rate beep.SampleRate) *decay {
	n := rate.N(d)
	ratio := 1.0
	if n > 0 && gain > decayFloor {
		ratio = math.Pow(decayFloor/gain, 1/float64(n))
	}
	return &decay{streamer: s, gain: gain, ratio: ratio}
}

func (e *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= e.gain
		samples[i][1] *= e.gain
		e.gain *= e.ratio
	}
	return n, ok
}

func (e *decay) Err() error { return e.streamer.Err() }
