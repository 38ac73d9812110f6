package sim

import (
	"sort"
	"time"
)

// Schedule holds one-shot deferred events, such as the flourish steps of a
// special move or the delayed victory reveal. Gameplay state never rides on
// it; it only replays notifications at the right moment.
//
// Every entry is stamped with the generation current when it was queued.
// Reset bumps the generation, and entries from an older generation are
// dropped instead of fired, so a new round never sees the previous round's
// leftovers.
type Schedule struct {
	gen     uint64
	entries []scheduled
	seq     uint64
}

type scheduled struct {
	at  time.Duration
	gen uint64
	seq uint64
	ev  Event
}

// After queues ev to fire at now+d. The event's At is set to the due time.
func (s *Schedule) After(now, d time.Duration, ev Event) {
	s.seq++
	ev.At = now + d
	s.entries = append(s.entries, scheduled{at: now + d, gen: s.gen, seq: s.seq, ev: ev})
}

// Due removes and returns, in time order, every current-generation entry
// whose time has come. Stale entries are discarded along the way.
func (s *Schedule) Due(now time.Duration) []Event {
	if len(s.entries) == 0 {
		return nil
	}

	var due []scheduled
	keep := s.entries[:0]
	for _, e := range s.entries {
		switch {
		case e.gen != s.gen:
			// stale
		case e.at <= now:
			due = append(due, e)
		default:
			keep = append(keep, e)
		}
	}
	s.entries = keep

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	out := make([]Event, len(due))
	for i, e := range due {
		out[i] = e.ev
	}
	return out
}

// Reset invalidates everything queued so far.
func (s *Schedule) Reset() {
	s.gen++
}

// Generation returns the current generation number.
func (s *Schedule) Generation() uint64 { return s.gen }

// Pending counts current-generation entries still waiting.
func (s *Schedule) Pending() int {
	n := 0
	for _, e := range s.entries {
		if e.gen == s.gen {
			n++
		}
	}
	return n
}
