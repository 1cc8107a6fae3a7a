package blackjack

import "github.com/lox/tablegames/internal/game"

// Payout is the blackjack payout ratio for a natural.
type Payout string

const (
	PayoutThreeToTwo Payout = "3_to_2"
	PayoutSixToFive  Payout = "6_to_5"
	PayoutEvenMoney  Payout = "1_to_1"
)

// DoubleRule restricts which two-card hands may double down.
type DoubleRule string

const (
	DoubleAnyTwo       DoubleRule = "any_two"
	DoubleNineToEleven DoubleRule = "9_to_11"
	DoubleTenEleven    DoubleRule = "10_to_11"
)

// SplitRule decides when a two-card hand may be split.
type SplitRule string

const (
	SplitSameRank  SplitRule = "same_rank"
	SplitSameValue SplitRule = "same_value"
)

// Rules are the house options a rules profile governs. Selecting a profile
// overwrites every field here atomically; it never merges.
type Rules struct {
	DealerHitsSoft17          bool       `json:"dealer_hits_soft_17"`
	DealerPeeksBlackjack      bool       `json:"dealer_peeks_blackjack"`
	AllowInsurance            bool       `json:"allow_insurance"`
	AllowLateSurrender        bool       `json:"allow_late_surrender"`
	BlackjackPayout           Payout     `json:"blackjack_payout"`
	DoubleDownRule            DoubleRule `json:"double_down_rule"`
	AllowDoubleAfterSplit     bool       `json:"allow_double_after_split"`
	SplitRule                 SplitRule  `json:"split_rule"`
	MaxSplitHands             int        `json:"max_split_hands"`
	SplitAcesOneCardOnly      bool       `json:"split_aces_one_card_only"`
	SplitAcesCountAsBlackjack bool       `json:"split_aces_count_as_blackjack"`
}

// Profiles are the named rule presets.
var profiles = map[string]Rules{
	"vegas": {
		DealerHitsSoft17:          true,
		DealerPeeksBlackjack:      true,
		AllowInsurance:            true,
		AllowLateSurrender:        true,
		BlackjackPayout:           PayoutThreeToTwo,
		DoubleDownRule:            DoubleAnyTwo,
		AllowDoubleAfterSplit:     true,
		SplitRule:                 SplitSameRank,
		MaxSplitHands:             2,
		SplitAcesOneCardOnly:      true,
		SplitAcesCountAsBlackjack: false,
	},
	"european": {
		DealerHitsSoft17:          false,
		DealerPeeksBlackjack:      false,
		AllowInsurance:            true,
		AllowLateSurrender:        false,
		BlackjackPayout:           PayoutThreeToTwo,
		DoubleDownRule:            DoubleNineToEleven,
		AllowDoubleAfterSplit:     false,
		SplitRule:                 SplitSameRank,
		MaxSplitHands:             2,
		SplitAcesOneCardOnly:      true,
		SplitAcesCountAsBlackjack: false,
	},
	"friendly": {
		DealerHitsSoft17:          false,
		DealerPeeksBlackjack:      true,
		AllowInsurance:            true,
		AllowLateSurrender:        true,
		BlackjackPayout:           PayoutThreeToTwo,
		DoubleDownRule:            DoubleAnyTwo,
		AllowDoubleAfterSplit:     true,
		SplitRule:                 SplitSameValue,
		MaxSplitHands:             2,
		SplitAcesOneCardOnly:      false,
		SplitAcesCountAsBlackjack: true,
	},
}

// ProfileRules returns the preset for a profile name, falling back to vegas
// for unknown names (and reporting which profile actually applied).
func ProfileRules(name string) (Rules, string) {
	if r, ok := profiles[name]; ok {
		return r, name
	}
	return profiles["vegas"], "vegas"
}

// ProfileNames lists the available presets.
func ProfileNames() []string {
	return []string{"vegas", "european", "friendly"}
}

// Options configure one blackjack table.
type Options struct {
	StartingChips    int    `json:"starting_chips"`
	BaseBet          int    `json:"base_bet"`
	TableMinBet      int    `json:"table_min_bet"`
	TableMaxBet      int    `json:"table_max_bet"`
	DeckCount        int    `json:"deck_count"`
	TurnTimerSeconds int    `json:"turn_timer_seconds"`
	CardsFaceUp      bool   `json:"cards_face_up"`
	RulesProfile     string `json:"rules_profile"`
	Rules            Rules  `json:"rules"`
}

// DefaultOptions returns the table defaults with the vegas profile applied.
func DefaultOptions() Options {
	rules, profile := ProfileRules("vegas")
	return Options{
		StartingChips:    500,
		BaseBet:          10,
		TableMinBet:      5,
		TableMaxBet:      100,
		DeckCount:        4,
		TurnTimerSeconds: 0,
		CardsFaceUp:      true,
		RulesProfile:     profile,
		Rules:            rules,
	}
}

// ApplyProfile bulk-sets every rule option from the named preset.
func (o *Options) ApplyProfile(name string) {
	rules, resolved := ProfileRules(name)
	o.RulesProfile = resolved
	o.Rules = rules
}

// Validate returns configuration violation tokens. Starting is refused
// until the list is empty.
func (o *Options) Validate() []game.Reason {
	var errs []game.Reason
	if o.BaseBet > o.StartingChips {
		errs = append(errs, "blackjack-error-bet-too-high")
	}
	if o.TableMinBet > o.TableMaxBet {
		errs = append(errs, "blackjack-error-table-limits-invalid")
	}
	if o.BaseBet < o.TableMinBet {
		errs = append(errs, "blackjack-error-bet-below-min")
	}
	if o.BaseBet > o.TableMaxBet {
		errs = append(errs, "blackjack-error-bet-above-max")
	}
	return errs
}
