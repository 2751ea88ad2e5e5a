package deck

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"

	"github.com/arcanaland/matcher/internal/card"
)

// IDSource mints card IDs that never repeat for the lifetime of the source
type IDSource struct {
	prefix string
	next   atomic.Uint64
}

// NewIDSource creates an ID source whose IDs start with prefix (e.g., "card")
func NewIDSource(prefix string) *IDSource {
	return &IDSource{prefix: prefix}
}

// Next returns the next unused ID
func (s *IDSource) Next() string {
	return s.prefix + strconv.FormatUint(s.next.Add(1), 10)
}

// FromBatch truncates a gallery batch to count distinct images and builds a
// deck from them. Repeated image IDs are dropped before truncating.
func FromBatch(raw []card.RawImage, count int, ids *IDSource, rng *rand.Rand) []card.Card {
	if count <= 0 {
		return []card.Card{}
	}
	raw = dedupe(raw)
	if len(raw) > count {
		raw = raw[:count]
	}
	return Build(raw, ids, rng)
}

// dedupe returns raw without images whose ID already appeared earlier
func dedupe(raw []card.RawImage) []card.RawImage {
	seen := make(map[string]bool, len(raw))
	out := make([]card.RawImage, 0, len(raw))
	for _, img := range raw {
		if seen[img.ID] {
			continue
		}
		seen[img.ID] = true
		out = append(out, img)
	}
	return out
}

// Build creates a shuffled deck holding two cards for every raw image
func Build(raw []card.RawImage, ids *IDSource, rng *rand.Rand) []card.Card {
	cards := make([]card.Card, 0, len(raw)*2)

	for _, img := range raw {
		// Two independent values sharing the match ID
		for i := 0; i < 2; i++ {
			cards = append(cards, card.Card{
				MatchID: img.ID,
				CardID:  ids.Next(),
				Title:   img.Title,
				URL:     img.URL,
			})
		}
	}

	Shuffle(cards, rng)

	return cards
}

// Shuffle permutes cards in place with Fisher-Yates
func Shuffle(cards []card.Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Validate checks that every match ID appears exactly twice and card IDs are distinct
func Validate(cards []card.Card) error {
	if len(cards)%2 != 0 {
		return fmt.Errorf("deck has odd size %d", len(cards))
	}

	matches := make(map[string]int)
	seen := make(map[string]bool)

	for _, c := range cards {
		if c.CardID == "" {
			return fmt.Errorf("card with match id %q has no card id", c.MatchID)
		}
		if seen[c.CardID] {
			return fmt.Errorf("duplicate card id: %s", c.CardID)
		}
		seen[c.CardID] = true
		matches[c.MatchID]++
	}

	for matchID, n := range matches {
		if n != 2 {
			return fmt.Errorf("match id %q appears %d times, want 2", matchID, n)
		}
	}

	return nil
}

// Pairs returns the number of pairs left in the deck
func Pairs(cards []card.Card) int {
	return len(cards) / 2
}
