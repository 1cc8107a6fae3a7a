package blackjack

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/evaluator"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestGame(opts Options, seed int64, names ...string) *Game {
	g := New(opts, game.NopEnv(), randutil.New(seed), testLogger())
	for i, name := range names {
		g.AddPlayer(fmt.Sprintf("p%d", i+1), name, false)
	}
	return g
}

// rigDeck pre-loads the draw order. A padding shoe is appended so the
// hand-start reshuffle threshold never discards the rigged cards.
func rigDeck(g *Game, notation string) {
	cards := evaluator.MustParseCards(notation)
	pad := deck.NewStandard(2, g.Rng()).Cards()
	g.deck = deck.FromCards(append(cards, pad...), g.Rng())
}

func TestPlayerNaturalPaysThreeToTwo(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "As5hKs9d")
	g.OnStart()

	p := g.PlayerByID("p1")
	require.True(t, p.Main.Blackjack)
	assert.Equal(t, PhaseSettle, g.Phase())
	// 500 - 10 bet + 25 blackjack payout
	assert.Equal(t, 515, p.Chips)
	assert.Equal(t, 1, g.HandNumber())
}

func TestBlackjackTotalPayout(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")

	g.opts.Rules.BlackjackPayout = PayoutThreeToTwo
	assert.Equal(t, 25, g.blackjackTotalPayout(10))
	g.opts.Rules.BlackjackPayout = PayoutSixToFive
	assert.Equal(t, 22, g.blackjackTotalPayout(10))
	g.opts.Rules.BlackjackPayout = PayoutEvenMoney
	assert.Equal(t, 20, g.blackjackTotalPayout(10))
}

func TestPostBets(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1)
	rich := &Player{Player: game.Player{ID: "a"}, Chips: 500}
	shortStack := &Player{Player: game.Player{ID: "b"}, Chips: 3}
	broke := &Player{Player: game.Player{ID: "c"}, Chips: 0}

	g.postBets([]*Player{rich, shortStack, broke})

	assert.Equal(t, 10, rich.Main.Bet)
	assert.Equal(t, 490, rich.Chips)

	// below the table minimum but allowed all-in
	assert.Equal(t, 3, shortStack.Main.Bet)
	assert.Equal(t, 0, shortStack.Chips)

	assert.Equal(t, 0, broke.Main.Bet)
	assert.True(t, broke.Main.Done)
}

func TestPostBetsRaisesToTableMinimum(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseBet = 3
	g := newTestGame(opts, 1)
	p := &Player{Player: game.Player{ID: "a"}, Chips: 100}

	g.postBets([]*Player{p})

	assert.Equal(t, 5, p.Main.Bet)
	assert.Equal(t, 95, p.Chips)
}

func TestDoubleDown(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "6h9c5d9sTh")
	g.OnStart()

	p := g.PlayerByID("p1")
	require.Equal(t, PhasePlayers, g.Phase())
	require.Equal(t, "p1", g.CurrentPlayerID())

	r := g.Execute("p1", "double_down", "")
	require.True(t, r.OK(), "reason: %s", r)

	assert.True(t, p.Main.Doubled)
	assert.Equal(t, 20, p.Main.Bet)
	assert.Len(t, p.Main.Cards, 3)
	// 500 - 20 staked + 40 back on the 21 vs 18 win
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 520, p.Chips)
}

func TestSplit(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "8s7c8d9h3cTh")
	g.OnStart()

	p := g.PlayerByID("p1")
	r := g.Execute("p1", "split", "")
	require.True(t, r.OK(), "reason: %s", r)

	assert.Equal(t, 480, p.Chips)
	assert.Equal(t, 10, p.Main.Bet)
	assert.Equal(t, 10, p.Split.Bet)
	assert.Len(t, p.Main.Cards, 2)
	assert.Len(t, p.Split.Cards, 2)
	assert.False(t, p.Main.FromSplitAces)
	assert.Equal(t, 0, p.ActiveHand)

	require.True(t, g.Execute("p1", "stand", "").OK())
	assert.Equal(t, 1, p.ActiveHand)
	require.True(t, g.Execute("p1", "stand", "").OK())

	// dealer 16 draws the padding ace and stands on 17; split hand 18 wins
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 500, p.Chips)
}

func TestSplitAcesTakeOneCardOnly(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "As9cAd8h5h6d")
	g.OnStart()

	p := g.PlayerByID("p1")
	require.True(t, g.Execute("p1", "split", "").OK())

	assert.True(t, p.Main.FromSplitAces)
	assert.True(t, p.Split.FromSplitAces)
	assert.True(t, p.Main.Done)
	assert.True(t, p.Split.Done)
	assert.False(t, p.Main.Blackjack)
	assert.False(t, p.Split.Blackjack)

	// dealer stands on 17; ace-five loses, ace-six pushes
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 490, p.Chips)
}

func TestSurrenderRefundsHalf(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "ThTc6s9d")
	g.OnStart()

	p := g.PlayerByID("p1")
	require.True(t, g.Execute("p1", "surrender", "").OK())

	assert.True(t, p.Main.Surrendered)
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 495, p.Chips)
}

func TestSurrenderDisabledByProfile(t *testing.T) {
	opts := DefaultOptions()
	opts.ApplyProfile("european")
	g := newTestGame(opts, 1, "Ada")
	rigDeck(g, "ThTc6s9d")
	g.OnStart()

	r := g.Execute("p1", "surrender", "")
	assert.Equal(t, ReasonCannotSurrender, r)
}

func TestInsurancePaysTwoToOne(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "ThAc9sKd")
	g.OnStart()

	require.Equal(t, PhaseInsurance, g.Phase())
	require.True(t, g.Execute("p1", "take_insurance", "").OK())

	// insurance pays back 15 on the dealer natural; the main bet loses
	p := g.PlayerByID("p1")
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 490, p.Chips)
}

func TestInsuranceLostWhenDealerMisses(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "ThAc9s5d")
	g.OnStart()

	require.Equal(t, PhaseInsurance, g.Phase())
	require.True(t, g.Execute("p1", "take_insurance", "").OK())
	require.Equal(t, PhasePlayers, g.Phase())
	require.True(t, g.Execute("p1", "stand", "").OK())

	p := g.PlayerByID("p1")
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 5, p.InsuranceBet)
	// staked 10 + 5 insurance; the main hand result depends on the
	// dealer's drawn cards so only check the side bet was not repaid
	assert.LessOrEqual(t, p.Chips, 505)
}

func TestEvenMoneyAgainstDealerNatural(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "AsAcKsTd")
	g.OnStart()

	require.Equal(t, PhaseInsurance, g.Phase())
	require.True(t, g.Execute("p1", "even_money", "").OK())

	p := g.PlayerByID("p1")
	assert.True(t, p.TookEvenMoney)
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, 510, p.Chips)
}

func TestDeclineInsurance(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	rigDeck(g, "ThAc9s5d")
	g.OnStart()

	require.Equal(t, PhaseInsurance, g.Phase())
	require.True(t, g.Execute("p1", "decline_insurance", "").OK())

	p := g.PlayerByID("p1")
	assert.Equal(t, 0, p.InsuranceBet)
	assert.True(t, p.InsuranceDone)
	assert.Equal(t, PhasePlayers, g.Phase())
}

func TestActionGates(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada", "Bea")
	rigDeck(g, "5h7d9s9c8sTd")

	// before start nothing is playable
	assert.Equal(t, game.ReasonNotPlaying, g.Execute("p1", "hit", ""))

	g.OnStart()
	require.Equal(t, "p1", g.CurrentPlayerID())

	assert.Equal(t, game.ReasonNotYourTurn, g.Execute("p2", "hit", ""))
	assert.Equal(t, game.ReasonUnknownAction, g.Execute("p1", "flip", ""))
	assert.Equal(t, ReasonCannotSplit, g.Execute("p1", "split", ""))
	assert.Equal(t, ReasonNotInsurancePhase, g.Execute("p1", "take_insurance", ""))

	// enablement drives menus: the waiting player keeps only the readbacks
	waiting := g.Actions("p2").EnabledActions("p2")
	assert.NotContains(t, waiting, "hit")
	assert.NotContains(t, waiting, "stand")
	assert.Contains(t, waiting, "table_status")
	assert.Contains(t, g.Actions("p1").EnabledActions("p1"), "hit")
	assert.Contains(t, g.Actions("p1").EnabledActions("p1"), "stand")

	// after a third card the two-card actions close
	require.True(t, g.Execute("p1", "hit", "").OK())
	assert.Equal(t, ReasonCannotDoubleDown, g.Execute("p1", "double_down", ""))
	assert.Equal(t, ReasonCannotSurrender, g.Execute("p1", "surrender", ""))
}

func TestSpectatorsCannotAct(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada", "Bea")
	watcher := g.AddPlayer("p3", "Cal", false)
	watcher.IsSpectator = true
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()

	assert.Equal(t, game.ReasonSpectator, g.Execute("p3", "hit", ""))
	assert.Equal(t, 0, watcher.Chips)
	assert.Empty(t, watcher.Main.Cards)
}

func TestSettlement(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "A", "B", "C", "D")
	g.SetStatus(game.StatusPlaying)
	g.dealerHand = evaluator.MustParseCards("Th8d")

	winner := g.PlayerByID("p1")
	winner.Main = Hand{Cards: evaluator.MustParseCards("Th9s"), Bet: 10, Done: true, Stood: true}
	pusher := g.PlayerByID("p2")
	pusher.Main = Hand{Cards: evaluator.MustParseCards("Th8s"), Bet: 10, Done: true, Stood: true}
	loser := g.PlayerByID("p3")
	loser.Main = Hand{Cards: evaluator.MustParseCards("Th7s"), Bet: 10, Done: true, Stood: true}
	busted := g.PlayerByID("p4")
	busted.Main = Hand{Cards: evaluator.MustParseCards("Th8s6c"), Bet: 10, Done: true, Busted: true}

	g.settleHand()

	assert.Equal(t, 20, winner.Chips)
	assert.Equal(t, 10, pusher.Chips)
	assert.Equal(t, 0, loser.Chips)
	assert.Equal(t, 0, busted.Chips)
	assert.Equal(t, PhaseSettle, g.Phase())
	assert.Equal(t, nextHandWait, g.nextHandTicks)
}

func TestSettlementDealerBustPaysAllStanders(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "A", "B")
	g.SetStatus(game.StatusPlaying)
	g.dealerHand = evaluator.MustParseCards("Th8d5c")

	low := g.PlayerByID("p1")
	low.Main = Hand{Cards: evaluator.MustParseCards("Th2s"), Bet: 10, Done: true, Stood: true}
	high := g.PlayerByID("p2")
	high.Main = Hand{Cards: evaluator.MustParseCards("Th9s"), Bet: 10, Done: true, Stood: true}

	g.settleHand()

	assert.Equal(t, 20, low.Chips)
	assert.Equal(t, 20, high.Chips)
}

func TestBotThink(t *testing.T) {
	setup := func(hand, dealer string) (*Game, *Player) {
		g := newTestGame(DefaultOptions(), 1)
		g.AddPlayer("p1", "Bot", true)
		g.SetStatus(game.StatusPlaying)
		g.SetPhase(PhasePlayers)
		g.SetTurnPlayers([]string{"p1"}, true)
		p := g.PlayerByID("p1")
		p.Chips = 100
		p.Main = Hand{Cards: evaluator.MustParseCards(hand), Bet: 10}
		g.dealerHand = evaluator.MustParseCards(dealer)
		return g, p
	}

	tests := []struct {
		hand   string
		dealer string
		want   string
	}{
		{"Th6s", "Td2c", "surrender"},
		{"Th5s", "Td2c", "surrender"},
		{"Th6s", "9d2c", "surrender"},
		{"9h7s", "6c2d", "stand"},
		{"8s8d", "6c2d", "split"},
		{"AsAd", "9c2d", "split"},
		{"9s9d", "7c2d", "stand"},
		{"9s9d", "6c2d", "split"},
		{"6h5d", "5c2d", "double_down"},
		{"6h4d", "9c2d", "double_down"},
		{"6h4d", "Tc2d", "hit"},
		{"5h4d", "3c2d", "double_down"},
		{"5h4d", "2c3d", "hit"},
		{"7h4s2d", "5c3d", "stand"},
		{"As6d", "2c3d", "hit"},
		{"As7d", "9c3d", "stand"},
		{"Th7s", "Tc3d", "stand"},
		{"Th6s", "8c3d", "hit"},
		{"Th2s", "4c3d", "stand"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_vs_%s", tt.hand, tt.dealer), func(t *testing.T) {
			g, _ := setup(tt.hand, tt.dealer)
			assert.Equal(t, tt.want, g.BotThink("p1"))
		})
	}
}

func TestBotThinkInsurance(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1)
	g.AddPlayer("p1", "Bot", true)
	g.SetStatus(game.StatusPlaying)
	g.SetPhase(PhaseInsurance)
	g.SetTurnPlayers([]string{"p1"}, true)
	g.dealerHand = evaluator.MustParseCards("AcTd")

	p := g.PlayerByID("p1")
	p.Chips = 100
	p.Main = Hand{Cards: evaluator.MustParseCards("Th9s"), Bet: 10}
	assert.Equal(t, "decline_insurance", g.BotThink("p1"))

	p.Main = Hand{Cards: evaluator.MustParseCards("AsKs"), Bet: 10, Blackjack: true}
	assert.Equal(t, "even_money", g.BotThink("p1"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(DefaultOptions(), 7, "Ada", "Bea")
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()
	require.True(t, g.Execute("p1", "hit", "").OK())

	data, err := g.Snapshot()
	require.NoError(t, err)

	resumed := New(DefaultOptions(), game.NopEnv(), randutil.New(99), testLogger())
	require.NoError(t, resumed.Restore(data))

	assert.Equal(t, g.SessionID, resumed.SessionID)
	assert.Equal(t, g.Phase(), resumed.Phase())
	assert.Equal(t, g.HandNumber(), resumed.HandNumber())
	assert.Equal(t, g.CurrentPlayerID(), resumed.CurrentPlayerID())
	assert.Equal(t, g.deck.Cards(), resumed.deck.Cards())

	orig := g.PlayerByID("p1")
	rest := resumed.PlayerByID("p1")
	assert.Equal(t, orig.Chips, rest.Chips)
	assert.Equal(t, orig.Main.Cards, rest.Main.Cards)
}

func TestRestoreRejectsCorruptData(t *testing.T) {
	g := newTestGame(DefaultOptions(), 1, "Ada")
	assert.Error(t, g.Restore([]byte("{not json")))
	assert.Error(t, g.Restore([]byte(`{"core":{},"game":{}}`)))
}

func TestBotsPlayToCompletion(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingChips = 40
	opts.BaseBet = 10
	opts.DeckCount = 1

	g := New(opts, game.NopEnv(), randutil.New(42), testLogger())
	g.AddPlayer("b1", "Ada", true)
	g.AddPlayer("b2", "Bea", true)
	g.AddPlayer("b3", "Cal", true)

	require.Empty(t, g.PrestartValidate())
	g.OnStart()

	for i := 0; i < 200000 && g.Status() != game.StatusFinished; i++ {
		g.OnTick()
	}
	require.Equal(t, game.StatusFinished, g.Status())

	res := g.BuildResult()
	assert.Equal(t, GameType, res.GameType)
	assert.Len(t, res.Players, 3)
	assert.Contains(t, res.Custom, "final_chips")
	assert.Contains(t, res.Custom, "hands_played")
}

func TestBotsPlayToCompletionAcrossRestores(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingChips = 40
	opts.BaseBet = 10
	opts.DeckCount = 1

	g := New(opts, game.NopEnv(), randutil.New(7), testLogger())
	g.AddPlayer("b1", "Ada", true)
	g.AddPlayer("b2", "Bea", true)
	g.AddPlayer("b3", "Cal", true)

	require.Empty(t, g.PrestartValidate())
	g.OnStart()

	for i := 0; i < 200000 && g.Status() != game.StatusFinished; i++ {
		g.OnTick()
		if i%500 == 499 && g.Status() == game.StatusPlaying {
			data, err := g.Snapshot()
			require.NoError(t, err)
			resumed := New(DefaultOptions(), game.NopEnv(), randutil.New(int64(i)), testLogger())
			require.NoError(t, resumed.Restore(data))
			g = resumed
		}
	}
	require.Equal(t, game.StatusFinished, g.Status())
}

// speakingTestGame wires a recorder into the private-speech channel so the
// readback output can be asserted on.
func speakingTestGame(opts Options, seed int64, names ...string) (*Game, *[]string) {
	var lines []string
	env := game.NopEnv()
	env.SpeakTo = func(playerID, text string) {
		lines = append(lines, playerID+"|"+text)
	}
	g := New(opts, env, randutil.New(seed), testLogger())
	for i, name := range names {
		g.AddPlayer(fmt.Sprintf("p%d", i+1), name, false)
	}
	return g, &lines
}

func linesFor(lines []string, playerID string) []string {
	var out []string
	for _, l := range lines {
		if id, text, ok := strings.Cut(l, "|"); ok && id == playerID {
			out = append(out, text)
		}
	}
	return out
}

func TestReadbacksAvailableOffTurn(t *testing.T) {
	g, lines := speakingTestGame(DefaultOptions(), 1, "Ada", "Bea")
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()
	require.Equal(t, "p1", g.CurrentPlayerID())

	*lines = nil
	require.True(t, g.Execute("p2", "read_hand", "").OK())
	require.True(t, g.Execute("p2", "read_dealer", "").OK())
	require.True(t, g.Execute("p2", "read_rules", "").OK())
	require.True(t, g.Execute("p2", "check_turn_timer", "").OK())

	got := linesFor(*lines, "p2")
	require.Len(t, got, 4)
	// p2 was dealt the second and fifth cards of the rig
	assert.Contains(t, got[0], "7♦ 8♠")
	assert.Contains(t, got[0], "(15)")
	assert.Contains(t, got[1], "Dealer shows 9♠")
	assert.Contains(t, got[1], "hidden")
	assert.Contains(t, got[2], "Rules profile vegas")
	assert.Contains(t, got[2], "Blackjack pays 3 to 2")
	assert.Equal(t, "The turn timer is off.", got[3])
}

func TestTableStatusReadback(t *testing.T) {
	g, lines := speakingTestGame(DefaultOptions(), 1, "Ada", "Bea")
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()

	*lines = nil
	require.True(t, g.Execute("p2", "table_status", "").OK())

	got := linesFor(*lines, "p2")
	require.Len(t, got, 4, "rules line, two player lines, dealer line")
	assert.Contains(t, got[0], "Rules profile vegas")
	// cards are face up by default, so the opponent's total shows too
	assert.Contains(t, got[1], "Ada: 490 chips, bet 10, total 14.")
	assert.Contains(t, got[2], "Bea: 490 chips, bet 10, total 15.")
	assert.Contains(t, got[3], "Dealer shows 9♠")
}

func TestTableStatusHidesFaceDownCards(t *testing.T) {
	opts := DefaultOptions()
	opts.CardsFaceUp = false
	g, lines := speakingTestGame(opts, 1, "Ada", "Bea")
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()

	*lines = nil
	require.True(t, g.Execute("p2", "table_status", "").OK())

	got := linesFor(*lines, "p2")
	require.Len(t, got, 4)
	assert.Contains(t, got[1], "Ada: 490 chips, bet 10.")
	assert.NotContains(t, got[1], "total")
	// own cards stay visible
	assert.Contains(t, got[2], "Bea: 490 chips, bet 10, total 15.")
}

func TestReadHandWithSplitHands(t *testing.T) {
	g, lines := speakingTestGame(DefaultOptions(), 1, "Ada")
	g.SetStatus(game.StatusPlaying)
	g.SetPhase(PhasePlayers)
	p := g.PlayerByID("p1")
	p.Main = Hand{Cards: evaluator.MustParseCards("8hTs"), Bet: 10, Done: true, Stood: true}
	p.Split = Hand{Cards: evaluator.MustParseCards("8d9c"), Bet: 10}
	p.ActiveHand = 1

	*lines = nil
	require.True(t, g.Execute("p1", "read_hand", "").OK())

	got := linesFor(*lines, "p1")
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "Hand 1: 8♥ 10♠ (18)")
	assert.Contains(t, got[0], "Hand 2: 8♦ 9♣ (17)")
	assert.Contains(t, got[0], "Playing hand 2")
}

func TestTurnTimerReadback(t *testing.T) {
	opts := DefaultOptions()
	opts.TurnTimerSeconds = 30
	g, lines := speakingTestGame(opts, 1, "Ada", "Bea")
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()
	require.Equal(t, "p1", g.CurrentPlayerID())

	*lines = nil
	require.True(t, g.Execute("p2", "check_turn_timer", "").OK())

	got := linesFor(*lines, "p2")
	require.Len(t, got, 1)
	assert.Equal(t, "30 seconds remain on the turn timer.", got[0])
}

func TestReadbackGates(t *testing.T) {
	g, _ := speakingTestGame(DefaultOptions(), 1, "Ada", "Bea")

	// not playing yet
	assert.Equal(t, game.ReasonNotPlaying, g.Execute("p1", "read_hand", ""))

	watcher := g.AddPlayer("p3", "Cal", false)
	watcher.IsSpectator = true
	rigDeck(g, "5h7d9s9c8sTd")
	g.OnStart()

	assert.Equal(t, game.ReasonSpectator, g.Execute("p3", "table_status", ""))

	// the status readbacks show in menus, the narrow ones are keybind-only
	var visible []string
	for _, a := range g.Actions("p2").VisibleActions("p2") {
		visible = append(visible, a.ID)
	}
	assert.Contains(t, visible, "table_status")
	assert.Contains(t, visible, "read_rules")
	assert.NotContains(t, visible, "read_hand")
	assert.NotContains(t, visible, "read_dealer")
	assert.NotContains(t, visible, "check_turn_timer")
}
