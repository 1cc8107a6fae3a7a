package twentyone

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// duel builds a two-player game mid-round with empty hands, bypassing the
// random deal so tests can stage exact states.
func duel(seed int64) (*Game, *Player, *Player) {
	g := New(DefaultOptions(), game.NopEnv(), randutil.New(seed), testLogger())
	a := g.AddPlayer("a", "Ada", false)
	b := g.AddPlayer("b", "Bea", false)
	a.HP, b.HP = 10, 10
	g.SetStatus(game.StatusPlaying)
	g.SetPhase(PhaseTurns)
	g.SetTurnPlayers([]string{"a", "b"}, true)
	g.roundNumber = 1
	return g, a, b
}

func numericCards(ranks ...int) []deck.Card {
	cards := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		cards[i] = deck.Card{ID: i + 100, Rank: deck.Rank(r)}
	}
	return cards
}

func TestCurrentTargetDefault(t *testing.T) {
	g, _, _ := duel(1)
	assert.Equal(t, 21, g.currentTarget())
}

func TestTargetModifierReplacesRivalTarget(t *testing.T) {
	g, a, b := duel(1)
	g.placeTableEffect(a, ModTarget17)
	assert.Equal(t, 17, g.currentTarget())

	g.placeTableEffect(b, ModTarget24)
	assert.Equal(t, 24, g.currentTarget())
	assert.Empty(t, a.TableModifiers)
}

func TestCurrentBetMath(t *testing.T) {
	g, a, b := duel(1)
	assert.Equal(t, 1, g.currentBet(a))

	b.TableModifiers = []string{ModRaise2}
	assert.Equal(t, 3, g.currentBet(a))

	a.TableModifiers = []string{ModGuard}
	assert.Equal(t, 2, g.currentBet(a))

	a.TableModifiers = []string{ModGuard, ModGuardPlus}
	assert.Equal(t, 0, g.currentBet(a))

	b.TableModifiers = []string{ModPrecisionDrawPlus}
	a.TableModifiers = nil
	assert.Equal(t, 6, g.currentBet(a))
}

func TestTableEffectLimitExpiresOldest(t *testing.T) {
	g, a, _ := duel(1)
	for i := 0; i < tableEffectLimit; i++ {
		g.placeTableEffect(a, ModGuard)
	}
	g.placeTableEffect(a, ModSalvage)

	assert.Len(t, a.TableModifiers, tableEffectLimit)
	assert.Equal(t, ModSalvage, a.TableModifiers[tableEffectLimit-1])
}

func TestResolveRoundOutcome(t *testing.T) {
	tests := []struct {
		total1, total2, target int
		want                   roundOutcome
	}{
		{20, 18, 21, outcomeFirstWins},
		{18, 20, 21, outcomeSecondWins},
		{22, 18, 21, outcomeSecondWins},
		{18, 22, 21, outcomeFirstWins},
		{25, 23, 21, outcomeSecondWins},
		{23, 25, 21, outcomeFirstWins},
		{24, 24, 21, outcomeDraw},
		{18, 18, 21, outcomeDraw},
		{20, 18, 17, outcomeSecondWins},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveRoundOutcome(tt.total1, tt.total2, tt.target),
			"totals %d/%d target %d", tt.total1, tt.total2, tt.target)
	}
}

func TestSettleRoundDamageAndWait(t *testing.T) {
	g, a, b := duel(1)
	a.Hand = numericCards(10, 10)
	b.Hand = numericCards(9, 9)

	g.settleRound()

	assert.Equal(t, 10, a.HP)
	assert.Equal(t, 9, b.HP)
	assert.Equal(t, PhaseBetweenRounds, g.Phase())
	assert.Equal(t, DefaultOptions().NextRoundWaitTicks, g.nextRoundTicks)
}

func TestSettleRoundEliminationEndsGame(t *testing.T) {
	g, a, b := duel(1)
	a.Hand = numericCards(10, 10)
	b.Hand = numericCards(9, 9)
	b.HP = 1

	g.settleRound()

	assert.Equal(t, 0, b.HP)
	assert.Equal(t, game.StatusFinished, g.Status())
	assert.Equal(t, PhaseFinished, g.Phase())

	res := g.BuildResult()
	assert.Equal(t, "Ada", res.Custom["winner_name"])
	assert.Equal(t, 10, res.Custom["winner_hp"])
}

func TestHitKeepsTurnAndClearsPendingStands(t *testing.T) {
	g, a, b := duel(1)
	g.deck = deck.FromCards(numericCards(5, 6, 7), g.Rng())
	b.StandPending = true

	require.True(t, g.Execute("a", "hit", "").OK())

	assert.Len(t, a.Hand, 1)
	assert.Equal(t, "a", g.CurrentPlayerID())
	assert.False(t, b.StandPending)
}

func TestStandAdvancesThenBothStandingSettles(t *testing.T) {
	g, a, b := duel(1)
	a.Hand = numericCards(10, 10)
	b.Hand = numericCards(9, 9)

	require.True(t, g.Execute("a", "stand", "").OK())
	assert.True(t, a.StandPending)
	assert.Equal(t, "b", g.CurrentPlayerID())

	require.True(t, g.Execute("b", "stand", "").OK())
	assert.Equal(t, PhaseBetweenRounds, g.Phase())
	assert.Equal(t, 9, b.HP)
}

func TestPlayTargetModifier(t *testing.T) {
	g, a, _ := duel(1)
	a.Hand = numericCards(10, 9, 4) // 23, busting at 21
	a.Modifiers = []string{ModTarget24}

	require.True(t, g.Execute("a", "play_modifier", "0:Target 24").OK())

	assert.Empty(t, a.Modifiers)
	assert.Equal(t, []string{ModTarget24}, a.TableModifiers)
	assert.Equal(t, 24, g.currentTarget())
	assert.Equal(t, "a", g.CurrentPlayerID())
}

func TestLockdownBlocksModifierPlay(t *testing.T) {
	g, a, b := duel(1)
	b.TableModifiers = []string{ModLockdown}
	a.Modifiers = []string{ModGuard}

	assert.True(t, g.modifiersLockedFor(a))
	assert.Equal(t, ReasonNotAvailable, g.Execute("a", "play_modifier", "0:Guard"))
}

func TestBreakDestroysNewestEffect(t *testing.T) {
	g, a, b := duel(1)
	b.TableModifiers = []string{ModGuard, ModSalvage}
	a.Modifiers = []string{ModBreak}

	require.True(t, g.Execute("a", "play_modifier", "0:Break Effect").OK())
	assert.Equal(t, []string{ModGuard}, b.TableModifiers)
}

func TestBreakAllClearsEffects(t *testing.T) {
	g, a, b := duel(1)
	b.TableModifiers = []string{ModGuard, ModRaise1, ModSalvage}
	a.Modifiers = []string{ModBreakAll}

	require.True(t, g.Execute("a", "play_modifier", "0:Break All").OK())
	assert.Empty(t, b.TableModifiers)
}

func TestLockdownClearsAndLocks(t *testing.T) {
	g, a, b := duel(1)
	b.TableModifiers = []string{ModGuard}
	a.Modifiers = []string{ModLockdown}

	require.True(t, g.Execute("a", "play_modifier", "0:Lockdown").OK())
	assert.Empty(t, b.TableModifiers)
	assert.Equal(t, []string{ModLockdown}, a.TableModifiers)
	assert.True(t, g.modifiersLockedFor(b))
}

func TestExactDrawPullsRankFromDeck(t *testing.T) {
	g, a, _ := duel(1)
	g.deck = deck.FromCards(numericCards(1, 5, 3), g.Rng())
	a.Modifiers = []string{ModDraw3}

	require.True(t, g.Execute("a", "play_modifier", "0:Exact 3").OK())

	require.Len(t, a.Hand, 1)
	assert.Equal(t, deck.Rank(3), a.Hand[0].Rank)
	assert.Equal(t, 2, g.deck.Len())
}

func TestExactDrawMissingRank(t *testing.T) {
	g, a, _ := duel(1)
	g.deck = deck.FromCards(numericCards(1, 5), g.Rng())
	a.Modifiers = []string{ModDraw7}

	require.True(t, g.Execute("a", "play_modifier", "0:Exact 7").OK())
	assert.Empty(t, a.Hand)
	assert.Empty(t, a.Modifiers)
}

func TestPrecisionDrawPicksBestFit(t *testing.T) {
	g, a, _ := duel(1)
	a.Hand = numericCards(7, 8) // 15
	g.deck = deck.FromCards(numericCards(9, 6, 2), g.Rng())
	a.Modifiers = []string{ModPrecisionDraw}

	require.True(t, g.Execute("a", "play_modifier", "0:Precision Draw").OK())
	assert.Equal(t, 21, a.HandTotal())
}

func TestScrapReturnsOpponentCard(t *testing.T) {
	g, a, b := duel(1)
	b.Hand = numericCards(4, 9)
	b.LastDrawnID = b.Hand[1].ID
	g.deck = deck.FromCards(numericCards(2), g.Rng())
	a.Modifiers = []string{ModScrap}

	require.True(t, g.Execute("a", "play_modifier", "0:Scrap Card").OK())

	assert.Len(t, b.Hand, 1)
	assert.Equal(t, 0, b.LastDrawnID)
	top, ok := g.deck.Draw()
	require.True(t, ok)
	assert.Equal(t, deck.Rank(9), top.Rank)
}

func TestScrapUnplayableWithoutVisibleCard(t *testing.T) {
	g, a, b := duel(1)
	b.Hand = numericCards(4)
	b.LastDrawnID = 0
	a.Modifiers = []string{ModScrap}

	assert.False(t, g.isModifierPlayable(a, ModScrap))
}

func TestSalvageGrantsOnAnyModifierPlay(t *testing.T) {
	g, a, _ := duel(1)
	a.TableModifiers = []string{ModSalvage}
	a.Modifiers = []string{ModTarget17}

	require.True(t, g.Execute("a", "play_modifier", "0:Target 17").OK())
	assert.Len(t, a.Modifiers, 1)
}

func TestRedraftCounts(t *testing.T) {
	g, a, _ := duel(1)
	a.Modifiers = []string{ModRedraft, ModGuard, ModScrap}

	require.True(t, g.Execute("a", "play_modifier", "0:Redraft").OK())
	// played one, discarded two, gained three
	assert.Len(t, a.Modifiers, 3)
}

func TestBotThink(t *testing.T) {
	t.Run("fixes bust with target card", func(t *testing.T) {
		g, a, _ := duel(2)
		a.Hand = numericCards(11, 11) // 22
		a.Modifiers = []string{ModTarget24}
		assert.Equal(t, "play_modifier", g.BotThink("a"))
	})
	t.Run("chases target with precision draw", func(t *testing.T) {
		g, a, _ := duel(2)
		a.Hand = numericCards(5, 5)
		g.deck = deck.FromCards(numericCards(5), g.Rng())
		a.Modifiers = []string{ModPrecisionDraw}
		assert.Equal(t, "play_modifier", g.BotThink("a"))
	})
	t.Run("hits below target", func(t *testing.T) {
		g, a, _ := duel(2)
		a.Hand = numericCards(5, 5)
		g.deck = deck.FromCards(numericCards(5), g.Rng())
		assert.Equal(t, "hit", g.BotThink("a"))
	})
	t.Run("stands on empty deck", func(t *testing.T) {
		g, a, _ := duel(2)
		a.Hand = numericCards(5, 5)
		g.deck = deck.FromCards(nil, g.Rng())
		assert.Equal(t, "stand", g.BotThink("a"))
	})
	t.Run("stands near target", func(t *testing.T) {
		g, a, _ := duel(2)
		a.Hand = numericCards(10, 9)
		g.deck = deck.FromCards(numericCards(5), g.Rng())
		assert.Equal(t, "stand", g.BotThink("a"))
	})
	t.Run("chases standing opponent", func(t *testing.T) {
		g, a, b := duel(2)
		a.Hand = numericCards(10, 9)
		b.Hand = numericCards(10, 10)
		b.StandPending = true
		g.deck = deck.FromCards(numericCards(5), g.Rng())
		assert.Equal(t, "hit", g.BotThink("a"))
	})
	t.Run("ignores other players turns", func(t *testing.T) {
		g, _, _ := duel(2)
		assert.Equal(t, "", g.BotThink("b"))
	})
}

func TestBotSelectPrefersTargetFixWhenBusting(t *testing.T) {
	g, a, b := duel(3)
	a.Hand = numericCards(11, 11, 1) // 23
	b.Hand = numericCards(5)
	a.Modifiers = []string{ModScrap, ModTarget24}

	options := g.modifierOptions("a")
	require.Len(t, options, 2)
	assert.Equal(t, 1, g.botSelectModifier("a", options))
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := New(DefaultOptions(), game.NopEnv(), randutil.New(11), testLogger())
	g.AddPlayer("a", "Ada", true)
	g.AddPlayer("b", "Bea", true)
	g.OnStart()

	data, err := g.Snapshot()
	require.NoError(t, err)

	resumed := New(DefaultOptions(), game.NopEnv(), randutil.New(12), testLogger())
	require.NoError(t, resumed.Restore(data))

	assert.Equal(t, g.SessionID, resumed.SessionID)
	assert.Equal(t, g.RoundNumber(), resumed.RoundNumber())
	assert.Equal(t, g.CurrentPlayerID(), resumed.CurrentPlayerID())
	assert.Equal(t, g.deck.Cards(), resumed.deck.Cards())

	orig := g.PlayerByID("a")
	rest := resumed.PlayerByID("a")
	assert.Equal(t, orig.HP, rest.HP)
	assert.Equal(t, orig.Hand, rest.Hand)
	assert.Equal(t, orig.Modifiers, rest.Modifiers)
}

func TestRestoreRejectsCorruptData(t *testing.T) {
	g := New(DefaultOptions(), game.NopEnv(), randutil.New(1), testLogger())
	assert.Error(t, g.Restore([]byte("nope")))
}

func TestBotsDuelToCompletion(t *testing.T) {
	g := New(DefaultOptions(), game.NopEnv(), randutil.New(42), testLogger())
	g.AddPlayer("b1", "Ada", true)
	g.AddPlayer("b2", "Bea", true)

	require.Empty(t, g.PrestartValidate())
	g.OnStart()

	for i := 0; i < 200000 && g.Status() != game.StatusFinished; i++ {
		g.OnTick()
	}
	require.Equal(t, game.StatusFinished, g.Status())

	res := g.BuildResult()
	assert.Equal(t, GameType, res.GameType)
	assert.Contains(t, res.Custom, "final_hp")
	assert.Contains(t, res.Custom, "rounds_played")
}
