package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/tablegames/internal/game"
)

func TestProfileRules(t *testing.T) {
	vegas, name := ProfileRules("vegas")
	assert.Equal(t, "vegas", name)
	assert.True(t, vegas.DealerHitsSoft17)
	assert.True(t, vegas.DealerPeeksBlackjack)
	assert.True(t, vegas.AllowLateSurrender)
	assert.Equal(t, PayoutThreeToTwo, vegas.BlackjackPayout)
	assert.Equal(t, DoubleAnyTwo, vegas.DoubleDownRule)
	assert.True(t, vegas.SplitAcesOneCardOnly)
	assert.False(t, vegas.SplitAcesCountAsBlackjack)

	euro, name := ProfileRules("european")
	assert.Equal(t, "european", name)
	assert.False(t, euro.DealerHitsSoft17)
	assert.False(t, euro.DealerPeeksBlackjack)
	assert.False(t, euro.AllowLateSurrender)
	assert.Equal(t, DoubleNineToEleven, euro.DoubleDownRule)
	assert.False(t, euro.AllowDoubleAfterSplit)

	friendly, name := ProfileRules("friendly")
	assert.Equal(t, "friendly", name)
	assert.Equal(t, SplitSameValue, friendly.SplitRule)
	assert.False(t, friendly.SplitAcesOneCardOnly)
	assert.True(t, friendly.SplitAcesCountAsBlackjack)
}

func TestProfileRulesUnknownFallsBackToVegas(t *testing.T) {
	rules, name := ProfileRules("atlantic-city")
	assert.Equal(t, "vegas", name)
	assert.Equal(t, profiles["vegas"], rules)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   []game.Reason
	}{
		{
			name:   "defaults pass",
			mutate: func(*Options) {},
			want:   nil,
		},
		{
			name:   "bet above starting chips",
			mutate: func(o *Options) { o.StartingChips = 5 },
			want:   []game.Reason{"blackjack-error-bet-too-high"},
		},
		{
			name:   "inverted table limits",
			mutate: func(o *Options) { o.TableMinBet = 200 },
			want: []game.Reason{
				"blackjack-error-table-limits-invalid",
				"blackjack-error-bet-below-min",
			},
		},
		{
			name:   "bet above table max",
			mutate: func(o *Options) { o.TableMaxBet = 8 },
			want:   []game.Reason{"blackjack-error-bet-above-max"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			assert.Equal(t, tt.want, opts.Validate())
		})
	}
}
