package game

import (
	"context"
	"fmt"
	"time"

	"github.com/arcanaland/matcher/internal/card"
	"github.com/arcanaland/matcher/internal/logger"
)

// DefaultResolveDelay keeps both flipped cards visible before the board changes
const DefaultResolveDelay = 700 * time.Millisecond

// Session runs a game from a single goroutine. Picks, the resolve timer
// and cancellation are all handled in one select loop, so State is never
// touched concurrently.
type Session struct {
	ID       string
	Delay    time.Duration
	OnChange func(Snapshot)

	state  State
	logger *logger.Logger
}

// NewSession creates a session for deck
func NewSession(id string, deck []card.Card, log *logger.Logger) *Session {
	return &Session{
		ID:     id,
		Delay:  DefaultResolveDelay,
		state:  New(deck),
		logger: log,
	}
}

// Snapshot returns the current view. Only call it from the goroutine running Run,
// or after Run has returned.
func (s *Session) Snapshot() Snapshot {
	return s.state.Snapshot()
}

// Run plays until the board is cleared, there is nothing to play, picks is
// closed or ctx is done. Each value on picks is a 1-based board position.
func (s *Session) Run(ctx context.Context, picks <-chan int) (Snapshot, error) {
	s.notify()
	if s.state.Snapshot().Done() {
		return s.state.Snapshot(), nil
	}

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Task
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timer, timerC = nil, nil
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return s.state.Snapshot(), ctx.Err()

		case pos, ok := <-picks:
			if !ok {
				return s.state.Snapshot(), nil
			}
			if !s.pick(pos, &pending) {
				continue
			}
			if _, waiting := s.state.Pending(); waiting && timer == nil {
				timer = time.NewTimer(s.Delay)
				timerC = timer.C
			}
			s.notify()

		case <-timerC:
			timer, timerC = nil, nil
			before := s.state.Snapshot().Matched
			s.state = s.state.Resolve(pending)
			if s.state.Snapshot().Matched > before {
				s.logger.Event("MATCH", s.ID, fmt.Sprintf("pair %s/%s removed", pending.First, pending.Second))
			} else {
				s.logger.Debug(fmt.Sprintf("session %s: no match for %s/%s", s.ID, pending.First, pending.Second))
			}
			pending = Task{}
			s.notify()

			if snap := s.state.Snapshot(); snap.Won {
				s.logger.Event("WON", s.ID, fmt.Sprintf("%d pairs matched", snap.Matched))
				return snap, nil
			}
		}
	}
}

// pick applies a board position and reports whether the state changed
func (s *Session) pick(pos int, pending *Task) bool {
	c, ok := s.state.CardAt(pos)
	if !ok {
		s.logger.Debug(fmt.Sprintf("session %s: no card at position %d", s.ID, pos))
		return false
	}

	before := s.state.Phase()
	next, task, scheduled := s.state.Select(c.CardID, c.MatchID)
	if before == Resolving {
		s.logger.Debug(fmt.Sprintf("session %s: ignored %s while resolving", s.ID, c.CardID))
		return false
	}

	s.state = next
	if scheduled {
		*pending = task
	}
	return true
}

func (s *Session) notify() {
	if s.OnChange != nil {
		s.OnChange(s.state.Snapshot())
	}
}
