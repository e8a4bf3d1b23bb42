package position

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// slot is a single-slot cancellable timer. Arming it always cancels the
// previous timer first, and a callback from a superseded timer that already
// fired is ignored via the generation check.
type slot struct {
	clock clockwork.Clock
	post  func(func())
	timer clockwork.Timer
	due   time.Time
	gen   uint64
}

func (s *slot) arm(d time.Duration, f func()) {
	s.stop()
	s.gen++
	gen := s.gen
	s.due = s.clock.Now().Add(d)
	s.timer = s.clock.AfterFunc(d, func() {
		s.post(func() {
			if gen != s.gen {
				return
			}
			s.timer = nil
			f()
		})
	})
}

func (s *slot) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *slot) pending() bool {
	return s.timer != nil
}

// deadline reports when the armed timer fires.
func (s *slot) deadline() (time.Time, bool) {
	return s.due, s.timer != nil
}
