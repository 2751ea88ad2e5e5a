package game

import (
	"context"
	"testing"
	"time"
)

func newTestSession(delay time.Duration) (*Session, *[]Snapshot) {
	s := NewSession("test", testDeck(), nil)
	s.Delay = delay
	var seen []Snapshot
	s.OnChange = func(snap Snapshot) { seen = append(seen, snap) }
	return s, &seen
}

func TestSessionPlaysToWin(t *testing.T) {
	s, seen := newTestSession(time.Millisecond)
	picks := make(chan int)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		snap Snapshot
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := s.Run(ctx, picks)
		done <- result{snap, err}
	}()

	// Positions shift as pairs leave the board:
	// [a1 b1 c1 a2 c2 b2] -> [b1 c1 c2 b2] -> [b1 b2]
	for _, pair := range [][2]int{{1, 4}, {2, 3}, {1, 2}} {
		picks <- pair[0]
		picks <- pair[1]
		time.Sleep(50 * time.Millisecond)
	}

	r := <-done
	if r.err != nil {
		t.Fatalf("Run returned error: %v", r.err)
	}
	if !r.snap.Won || r.snap.Matched != 3 {
		t.Errorf("Expected a win with 3 pairs, got %+v", r.snap)
	}
	if len(*seen) == 0 || !(*seen)[len(*seen)-1].Won {
		t.Errorf("Expected the last snapshot passed to OnChange to be a win")
	}
}

func TestSessionIgnoresPicksWhileResolving(t *testing.T) {
	s, _ := newTestSession(200 * time.Millisecond)
	picks := make(chan int)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := s.Run(ctx, picks)
		done <- snap
	}()

	picks <- 1 // a1
	picks <- 2 // b1
	picks <- 4 // a2, ignored while resolving
	time.Sleep(400 * time.Millisecond)
	cancel()

	snap := <-done
	if len(snap.Deck) != 6 {
		t.Errorf("Expected deck unchanged, got %d cards", len(snap.Deck))
	}
	if len(snap.Selection) != 0 || snap.Phase != Idle {
		t.Errorf("Expected mismatch to leave an idle board, got %+v", snap)
	}
}

func TestSessionCancelOnReclick(t *testing.T) {
	s, seen := newTestSession(time.Millisecond)
	picks := make(chan int)

	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := s.Run(context.Background(), picks)
		done <- snap
	}()

	picks <- 3
	picks <- 3
	close(picks)

	snap := <-done
	if snap.Phase != Idle || len(snap.Selection) != 0 {
		t.Errorf("Expected re-click to cancel, got %+v", snap)
	}
	// initial render, first flip, cancel
	if len(*seen) != 3 {
		t.Errorf("Expected 3 snapshots, got %d", len(*seen))
	}
}

func TestSessionEmptyDeckReturnsImmediately(t *testing.T) {
	s := NewSession("empty", nil, nil)

	snap, err := s.Run(context.Background(), make(chan int))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !snap.NoData {
		t.Errorf("Expected no data, got %+v", snap)
	}
}

func TestSessionStopsOnContext(t *testing.T) {
	s, _ := newTestSession(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx, make(chan int)); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSessionIgnoresOutOfRangePositions(t *testing.T) {
	s, seen := newTestSession(time.Millisecond)
	picks := make(chan int)

	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := s.Run(context.Background(), picks)
		done <- snap
	}()

	picks <- 0
	picks <- 99
	close(picks)

	snap := <-done
	if snap.Phase != Idle {
		t.Errorf("Expected idle, got %v", snap.Phase)
	}
	if len(*seen) != 1 {
		t.Errorf("Expected only the initial render, got %d", len(*seen))
	}
}
