package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/tablegames/internal/deck"
)

// Category ranks a 5-card poker hand class. Higher is better.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandScore is a comparable poker hand ranking: category first, then the
// category-specific tiebreak ranks in descending significance.
type HandScore struct {
	Category  Category
	Tiebreaks []int
}

// Beats reports whether s outranks other.
func (s HandScore) Beats(other HandScore) bool {
	return s.Compare(other) > 0
}

// Compare returns -1, 0 or 1 ordering two scores.
func (s HandScore) Compare(other HandScore) int {
	if s.Category != other.Category {
		if s.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(s.Tiebreaks) && i < len(other.Tiebreaks); i++ {
		if s.Tiebreaks[i] != other.Tiebreaks[i] {
			if s.Tiebreaks[i] < other.Tiebreaks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String returns e.g. "Full House [9 5]"
func (s HandScore) String() string {
	return fmt.Sprintf("%s %v", s.Category, s.Tiebreaks)
}

// Best5 evaluates every 5-card subset of cards and returns the highest score
// along with the five cards achieving it. Brute force over C(n,5); fine for
// the n ≤ 7 this engine deals.
func Best5(cards []deck.Card) (HandScore, []deck.Card, error) {
	if len(cards) < 5 {
		return HandScore{}, nil, fmt.Errorf("best hand requires at least 5 cards, got %d", len(cards))
	}

	var best HandScore
	var bestFive []deck.Card
	found := false

	idx := []int{0, 1, 2, 3, 4}
	n := len(cards)
	for {
		five := []deck.Card{cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]]}
		score := Score5(five)
		if !found || score.Beats(best) {
			best = score
			bestFive = five
			found = true
		}

		// advance the combination indices
		i := 4
		for i >= 0 && idx[i] == n-5+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return best, bestFive, nil
}

// Score5 scores exactly five cards. Aces rank high (14) except in the wheel
// straight A-2-3-4-5, which ranks as five-high.
func Score5(cards []deck.Card) HandScore {
	ranks := make([]int, 5)
	for i, c := range cards {
		ranks[i] = pokerRank(c.Rank)
	}

	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}
	type group struct{ count, rank int }
	groups := make([]group, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, group{n, r})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	flush := isFlush(cards)
	straight, straightHigh := isStraight(ranks)

	switch {
	case straight && flush:
		return HandScore{StraightFlush, []int{straightHigh}}
	case groups[0].count == 4:
		return HandScore{FourOfAKind, []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandScore{FullHouse, []int{groups[0].rank, groups[1].rank}}
	case flush:
		return HandScore{Flush, descending(ranks)}
	case straight:
		return HandScore{Straight, []int{straightHigh}}
	case groups[0].count == 3:
		return HandScore{ThreeOfAKind, append([]int{groups[0].rank}, kickers(ranks, groups[0].rank)...)}
	case groups[0].count == 2 && groups[1].count == 2:
		hi, lo := groups[0].rank, groups[1].rank
		if lo > hi {
			hi, lo = lo, hi
		}
		return HandScore{TwoPair, append([]int{hi, lo}, kickers(ranks, hi, lo)...)}
	case groups[0].count == 2:
		return HandScore{OnePair, append([]int{groups[0].rank}, kickers(ranks, groups[0].rank)...)}
	default:
		return HandScore{HighCard, descending(ranks)}
	}
}

func pokerRank(r deck.Rank) int {
	if r == deck.Ace {
		return 14
	}
	return int(r)
}

func isFlush(cards []deck.Card) bool {
	suit := cards[0].Suit
	if suit == deck.None {
		return false
	}
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

func isStraight(ranks []int) (bool, int) {
	unique := uniqueInts(descending(ranks))
	if len(unique) != 5 {
		return false, 0
	}
	if unique[0]-unique[4] == 4 {
		return true, unique[0]
	}
	// wheel: A-2-3-4-5
	if unique[0] == 14 && unique[1] == 5 && unique[2] == 4 && unique[3] == 3 && unique[4] == 2 {
		return true, 5
	}
	return false, 0
}

func descending(ranks []int) []int {
	out := make([]int, len(ranks))
	copy(out, ranks)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func uniqueInts(sorted []int) []int {
	out := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func kickers(ranks []int, excluded ...int) []int {
	skip := map[int]bool{}
	for _, e := range excluded {
		skip[e] = true
	}
	var out []int
	for _, r := range descending(ranks) {
		if !skip[r] {
			out = append(out, r)
		}
	}
	return out
}
