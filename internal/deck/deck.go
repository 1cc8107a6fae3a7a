package deck

import (
	rand "math/rand/v2"
)

// Deck is an ordered stack of cards. Draw takes from the top; AddTop pushes
// cards back so they become the next ones drawn. Decks are rebuilt per hand
// or round and never shared between game instances.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewStandard builds sets × 52 suited cards. Card ids are unique within the
// built deck. The caller supplies the generator so seeded games shuffle
// reproducibly.
func NewStandard(sets int, rng *rand.Rand) *Deck {
	if sets < 1 {
		sets = 1
	}
	d := &Deck{
		cards: make([]Card, 0, sets*52),
		rng:   rng,
	}
	id := 0
	for s := 0; s < sets; s++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Ace; rank <= King; rank++ {
				id++
				d.cards = append(d.cards, Card{ID: id, Rank: rank, Suit: suit})
			}
		}
	}
	return d
}

// NewNumeric builds sets × maxRank suitless cards ranked 1..maxRank.
func NewNumeric(maxRank, sets int, rng *rand.Rand) *Deck {
	if sets < 1 {
		sets = 1
	}
	d := &Deck{
		cards: make([]Card, 0, sets*maxRank),
		rng:   rng,
	}
	id := 0
	for s := 0; s < sets; s++ {
		for rank := 1; rank <= maxRank; rank++ {
			id++
			d.cards = append(d.cards, Card{ID: id, Rank: Rank(rank), Suit: None})
		}
	}
	return d
}

// FromCards rebuilds a deck around an explicit card order, e.g. when
// restoring a snapshot.
func FromCards(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the next card to deal. The second return is
// false when the deck is empty; callers handle depletion, it never panics.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// AddTop pushes cards back onto the draw end. The given order is preserved
// as the next cards drawn: AddTop(a, b) means Draw returns a, then b.
func (d *Deck) AddTop(cards ...Card) {
	d.cards = append(append(make([]Card, 0, len(cards)+len(d.cards)), cards...), d.cards...)
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining card order, top first. Snapshots
// persist this so a restored deck deals identically.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
