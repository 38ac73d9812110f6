package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorShapes(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{Sine, Square, Saw, Triangle} {
		t.Run(w.String(), func(t *testing.T) {
			samples := drain(newOscillator(440, 50*time.Millisecond, w, rate))
			if len(samples) != rate.N(50*time.Millisecond) {
				t.Fatalf("got %d samples, expected %d", len(samples), rate.N(50*time.Millisecond))
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d = %v", i, s)
				}
				if w == Square && s[0] != 1 && s[0] != -1 {
					t.Fatalf("square sample %d = %v", i, s[0])
				}
			}
		})
	}
}

func TestDecayFallsToFloor(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 200 * time.Millisecond
	// A square wave keeps |amplitude| at 1, so the envelope is visible directly.
	samples := drain(newDecay(newOscillator(100, d, Square, rate), 0.3, d, rate))
	first, last := samples[0][0], samples[len(samples)-1][0]
	if first < 0 {
		first = -first
	}
	if last < 0 {
		last = -last
	}
	if first != 0.3 {
		t.Errorf("starting gain = %v, expected 0.3", first)
	}
	if last > 0.0102 || last < 0.0099 {
		t.Errorf("final gain = %v, expected about 0.01", last)
	}
}

func TestCueTable(t *testing.T) {
	tests := []struct {
		kind sim.EventKind
		name string
		freq float64
		dur  time.Duration
		wave Wave
	}{
		{sim.EventPunch, "punch", 200, 100 * time.Millisecond, Sine},
		{sim.EventHit, "hit", 150, 150 * time.Millisecond, Saw},
		{sim.EventGuard, "block", 300, 80 * time.Millisecond, Square},
		{sim.EventPickup, "pellet", 800, 200 * time.Millisecond, Sine},
		{sim.EventShot, "shot", 600, 150 * time.Millisecond, Sine},
		{sim.EventGameWon, "victory", 523.25, 300 * time.Millisecond, Sine},
		{sim.EventShimmer, "shimmer", 800, 300 * time.Millisecond, Triangle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := For(tt.kind)
			if !ok || c.Name != tt.name {
				t.Fatalf("For(%v) = %q, %v", tt.kind, c.Name, ok)
			}
			n := c.Notes[0]
			if n.Freq != tt.freq || n.Duration != tt.dur || n.Wave != tt.wave {
				t.Errorf("first note = %+v", n)
			}
		})
	}

	if _, ok := For(sim.EventTimerTick); ok {
		t.Error("timer ticks should be silent")
	}
}

func TestSpecialSweepEndsWithBoom(t *testing.T) {
	c, _ := For(sim.EventSpecial)
	if len(c.Notes) != 6 {
		t.Fatalf("special has %d notes", len(c.Notes))
	}
	boom := c.Notes[5]
	if boom.Freq != 100 || boom.At != 300*time.Millisecond {
		t.Errorf("boom = %+v", boom)
	}
	if c.Length() != 500*time.Millisecond {
		t.Errorf("length = %v, expected 500ms", c.Length())
	}
}

func TestRenderLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, c := range Cues() {
		got := len(drain(Render(c, rate, 1)))
		if want := rate.N(c.Length()); got != want {
			t.Errorf("%s rendered %d samples, expected %d", c.Name, got, want)
		}
	}
}

func TestCuesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Cues() {
		if seen[c.Name] {
			t.Errorf("cue %s listed twice", c.Name)
		}
		seen[c.Name] = true
	}
	if len(seen) != 9 {
		t.Errorf("got %d cues, expected 9", len(seen))
	}
}

func TestExportAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cues")
	paths, err := ExportAll(dir)
	if err != nil {
		t.Fatalf("ExportAll() failed: %v", err)
	}
	if len(paths) != len(Cues()) {
		t.Fatalf("wrote %d files", len(paths))
	}

	f, err := os.Open(filepath.Join(dir, "punch.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, fmtDecoded, err := wav.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer s.Close()
	if fmtDecoded.SampleRate != SampleRate || fmtDecoded.NumChannels != 2 {
		t.Errorf("format = %+v", fmtDecoded)
	}
	if s.Len() != SampleRate.N(100*time.Millisecond) {
		t.Errorf("punch.wav has %d samples", s.Len())
	}
}

func TestPlayerSilentUntilInit(t *testing.T) {
	p := NewPlayer(0.5)
	p.Emit(sim.Event{Kind: sim.EventPunch})
	if p.mixer.Len() != 0 {
		t.Error("uninitialised player queued a sound")
	}
	p.Close()
}
