package watch

import "sync"

// spectator is one connected viewer. Frames are queued on a buffered
// channel; when the viewer falls behind the oldest frame is dropped, since
// only the latest state matters.
type spectator struct {
	id       uint64
	frames   chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

func newSpectator(id uint64, buffer int) *spectator {
	if buffer < 1 {
		buffer = 16
	}
	return &spectator{
		id:     id,
		frames: make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// send queues a frame without blocking.
func (s *spectator) send(frame []byte) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.frames <- frame:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- frame:
	default:
	}
}

// close marks the spectator as gone. Safe to call more than once.
func (s *spectator) close() {
	s.doneOnce.Do(func() { close(s.done) })
}
