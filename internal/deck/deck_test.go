package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablegames/internal/randutil"
)

func TestStandardDeckConservation(t *testing.T) {
	d := NewStandard(1, randutil.New(1))
	d.Shuffle()

	seen := make(map[int]bool)
	rankCounts := make(map[Rank]int)
	suitCounts := make(map[Suit]int)

	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		assert.False(t, seen[c.ID], "duplicate card id %d", c.ID)
		seen[c.ID] = true
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	require.Len(t, seen, 52)
	for rank := Ace; rank <= King; rank++ {
		assert.Equal(t, 4, rankCounts[rank], "rank %s", rank)
	}
	for suit := Spades; suit <= Clubs; suit++ {
		assert.Equal(t, 13, suitCounts[suit])
	}
}

func TestMultiSetDeckUniqueIDs(t *testing.T) {
	d := NewStandard(4, randutil.New(7))
	require.Equal(t, 208, d.Len())

	seen := make(map[int]bool)
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		require.False(t, seen[c.ID])
		seen[c.ID] = true
	}
	require.Len(t, seen, 208)
}

func TestNumericDeck(t *testing.T) {
	d := NewNumeric(11, 1, randutil.New(3))
	require.Equal(t, 11, d.Len())

	for want := 1; want <= 11; want++ {
		c, ok := d.Draw()
		require.True(t, ok)
		assert.Equal(t, Rank(want), c.Rank)
		assert.Equal(t, None, c.Suit)
	}
	_, ok := d.Draw()
	assert.False(t, ok, "empty deck must report depletion")
}

func TestDrawEmptyReturnsFalse(t *testing.T) {
	d := FromCards(nil, randutil.New(0))
	_, ok := d.Draw()
	assert.False(t, ok)
}

func TestAddTopPreservesOrder(t *testing.T) {
	d := FromCards([]Card{{ID: 1, Rank: Five, Suit: Clubs}}, randutil.New(0))
	a := Card{ID: 2, Rank: Ace, Suit: Spades}
	b := Card{ID: 3, Rank: King, Suit: Hearts}

	d.AddTop(a, b)
	require.Equal(t, 3, d.Len())

	first, _ := d.Draw()
	second, _ := d.Draw()
	third, _ := d.Draw()
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)
	assert.Equal(t, Rank(Five), third.Rank)
}

func TestShuffleDeterministicForSeed(t *testing.T) {
	d1 := NewStandard(1, randutil.New(42))
	d2 := NewStandard(1, randutil.New(42))
	d1.Shuffle()
	d2.Shuffle()
	assert.Equal(t, d1.Cards(), d2.Cards())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Rank: Ace, Suit: Spades}.String())
	assert.Equal(t, "10♥", Card{Rank: Ten, Suit: Hearts}.String())
	assert.Equal(t, "7", Card{Rank: Seven, Suit: None}.String())
}
