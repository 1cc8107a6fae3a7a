package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore5Categories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
	}{
		{"high card", "AsKd9h5c2s", HighCard},
		{"one pair", "AsAd9h5c2s", OnePair},
		{"two pair", "AsAd9h9c2s", TwoPair},
		{"three of a kind", "AsAdAh5c2s", ThreeOfAKind},
		{"straight", "9s8d7h6c5s", Straight},
		{"wheel straight", "As2d3h4c5s", Straight},
		{"flush", "AsKs9s5s2s", Flush},
		{"full house", "9s9d9h5c5s", FullHouse},
		{"four of a kind", "9s9d9h9c5s", FourOfAKind},
		{"straight flush", "9s8s7s6s5s", StraightFlush},
		{"royal", "AsKsQsJsTs", StraightFlush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score5(MustParseCards(tt.cards))
			assert.Equal(t, tt.category, score.Category)
		})
	}
}

func TestWheelRanksFiveHigh(t *testing.T) {
	wheel := Score5(MustParseCards("As2d3h4c5s"))
	sixHigh := Score5(MustParseCards("2s3d4h5c6s"))
	require.Equal(t, Straight, wheel.Category)
	assert.True(t, sixHigh.Beats(wheel), "six-high straight beats the wheel")
	assert.Equal(t, []int{5}, wheel.Tiebreaks)
}

func TestCategoryOrdering(t *testing.T) {
	pair := Score5(MustParseCards("AsAd9h5c2s"))
	trips := Score5(MustParseCards("2s2d2h5c9s"))
	assert.True(t, trips.Beats(pair), "category outranks tiebreaks")
}

func TestKickerComparison(t *testing.T) {
	aceKicker := Score5(MustParseCards("9s9dAh5c2s"))
	kingKicker := Score5(MustParseCards("9h9cKd5h2d"))
	assert.True(t, aceKicker.Beats(kingKicker))

	identical := Score5(MustParseCards("9h9cAd5h2d"))
	assert.Equal(t, 0, aceKicker.Compare(identical))
}

func TestBest5From7(t *testing.T) {
	// seven cards holding a flush that only one 5-card subset finds
	score, five, err := Best5(MustParseCards("AsKs9s5s2s9d9h"))
	require.NoError(t, err)
	assert.Equal(t, Flush, score.Category)
	assert.Len(t, five, 5)

	_, _, err = Best5(MustParseCards("AsKs9s5s"))
	require.Error(t, err, "fewer than 5 cards must be rejected")
}

func TestBest5PrefersFullHouseOverFlush(t *testing.T) {
	score, _, err := Best5(MustParseCards("9s9d9h5c5sAsKs"))
	require.NoError(t, err)
	assert.Equal(t, FullHouse, score.Category)
	assert.Equal(t, []int{9, 5}, score.Tiebreaks)
}
