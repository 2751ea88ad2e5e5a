// Package game holds the selection and match rules of a memory game.
//
// State is a value: every transition returns a new State and leaves the
// receiver untouched. Session drives a State from a single goroutine.
package game

import (
	"github.com/arcanaland/matcher/internal/card"
)

// Phase is derived from the number of cards in the selection
type Phase int

const (
	Idle Phase = iota
	OneSelected
	Resolving
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case OneSelected:
		return "one selected"
	case Resolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Task identifies one scheduled resolution. A task only resolves the
// selection it was created for.
type Task struct {
	Seq    uint64
	First  string // card ID
	Second string // card ID
}

// State is the deck and the current selection
type State struct {
	deck      []card.Card
	selection []card.Pick
	pending   Task
	seq       uint64
	matched   int
	started   bool
}

// New creates a state for a freshly built deck
func New(deck []card.Card) State {
	cards := make([]card.Card, len(deck))
	copy(cards, deck)
	return State{deck: cards, started: len(cards) > 0}
}

// Phase reports where the state machine is
func (s State) Phase() Phase {
	switch len(s.selection) {
	case 0:
		return Idle
	case 1:
		return OneSelected
	default:
		return Resolving
	}
}

// Pending returns the task awaiting resolution, if any
func (s State) Pending() (Task, bool) {
	if s.Phase() != Resolving {
		return Task{}, false
	}
	return s.pending, true
}

// Select flips a card. When it completes a pair the returned task must be
// passed to Resolve after the resolve delay.
func (s State) Select(cardID, matchID string) (State, Task, bool) {
	c, ok := s.find(cardID)
	if !ok || c.MatchID != matchID {
		return s, Task{}, false
	}

	if s.Phase() == Resolving {
		return s, Task{}, false
	}

	// Re-clicking a flipped card cancels the selection
	for _, p := range s.selection {
		if p.CardID == cardID {
			return s.Reset(), Task{}, false
		}
	}

	next := s
	next.selection = append(append([]card.Pick(nil), s.selection...), c.Pick())

	if len(next.selection) < 2 {
		return next, Task{}, false
	}

	next.seq++
	next.pending = Task{
		Seq:    next.seq,
		First:  next.selection[0].CardID,
		Second: next.selection[1].CardID,
	}
	return next, next.pending, true
}

// Resolve compares the selected pair. Matched pairs leave the deck; either
// way the selection is cleared. Stale or repeated tasks are ignored.
func (s State) Resolve(t Task) State {
	pending, ok := s.Pending()
	if !ok || pending != t {
		return s
	}

	first, second := s.selection[0], s.selection[1]

	next := s
	next.selection = nil
	next.pending = Task{}

	if first.MatchID != second.MatchID {
		return next
	}

	next.deck = make([]card.Card, 0, len(s.deck))
	for _, c := range s.deck {
		if c.MatchID != first.MatchID {
			next.deck = append(next.deck, c)
		}
	}
	next.matched++

	return next
}

// Reset clears the selection, dropping any pending resolution
func (s State) Reset() State {
	next := s
	next.selection = nil
	next.pending = Task{}
	return next
}

// CardAt returns the card at a 1-based board position
func (s State) CardAt(position int) (card.Card, bool) {
	if position < 1 || position > len(s.deck) {
		return card.Card{}, false
	}
	return s.deck[position-1], true
}

// Snapshot returns a read-only view for presentation
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Deck:      make([]card.Card, len(s.deck)),
		Selection: make([]card.Pick, len(s.selection)),
		Phase:     s.Phase(),
		Matched:   s.matched,
	}
	copy(snap.Deck, s.deck)
	copy(snap.Selection, s.selection)

	if len(s.deck) == 0 {
		snap.Won = s.started
		snap.NoData = !s.started
	}

	return snap
}

func (s State) find(cardID string) (card.Card, bool) {
	for _, c := range s.deck {
		if c.CardID == cardID {
			return c, true
		}
	}
	return card.Card{}, false
}

// Snapshot is what the presentation layer renders from
type Snapshot struct {
	Deck      []card.Card
	Selection []card.Pick
	Phase     Phase
	Matched   int  // Pairs removed so far
	Won       bool // Every pair was matched
	NoData    bool // The deck was empty from the start
}

// IsCardSelected reports whether cardID is currently flipped
func (s Snapshot) IsCardSelected(cardID string) bool {
	for _, p := range s.Selection {
		if p.CardID == cardID {
			return true
		}
	}
	return false
}

// Done reports whether nothing is left to play
func (s Snapshot) Done() bool {
	return s.Won || s.NoData
}
