package deck

import "fmt"

// Suit represents a card suit. None is used for purely numeric decks
// (games that deal ranked cards without suits).
type Suit int

const (
	None Suit = iota
	Spades
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return ""
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are low (1) in the raw representation;
// games decide how to value them.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card represents a playing card. ID is unique within the deck the card was
// built into, which lets conservation checks distinguish the four copies of
// a rank in a multi-set shoe. Cards are immutable once drawn; ownership
// moves between the deck and hand collections, never duplicated.
type Card struct {
	ID   int  `json:"id"`
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String returns the string representation of a card (e.g. "A♠", or "7"
// for a suitless numeric card).
func (c Card) String() string {
	if c.Suit == None {
		return fmt.Sprintf("%d", int(c.Rank))
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}
