package card

// RawImage is a single gallery record as returned by an image source
type RawImage struct {
	ID    string // Gallery ID, becomes the match ID of both cards in a pair
	Title string // Display title
	URL   string // Direct media URL
}

// Card represents one physical card on the board
type Card struct {
	MatchID string // Shared by exactly two cards in a deck
	CardID  string // Unique per card instance (e.g., card1, card2)
	Title   string
	URL     string
}

// Pick is a flipped, unresolved card
type Pick struct {
	MatchID string
	CardID  string
}

// Pick returns the selection entry for c
func (c Card) Pick() Pick {
	return Pick{MatchID: c.MatchID, CardID: c.CardID}
}
