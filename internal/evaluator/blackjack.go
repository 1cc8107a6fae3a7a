package evaluator

import "github.com/lox/tablegames/internal/deck"

// CardValue returns the blackjack value of a single card: aces count 11,
// face cards 10, everything else its rank.
func CardValue(c deck.Card) int {
	switch {
	case c.Rank == deck.Ace:
		return 11
	case c.Rank > deck.Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// HandValue computes the additive blackjack total with the soft-ace rule.
// Aces start at 11; while the total exceeds 21 and an ace is still counted
// at 11, one ace at a time is demoted to 1. soft is true iff at least one
// ace still counts as 11. Dealer hit decisions and payouts both depend on
// this exact demotion order.
func HandValue(cards []deck.Card) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		v := CardValue(c)
		if c.Rank == deck.Ace {
			aces++
		}
		total += v
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsNatural reports whether cards form a natural blackjack: exactly two
// cards totalling 21.
func IsNatural(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	total, _ := HandValue(cards)
	return total == 21
}
