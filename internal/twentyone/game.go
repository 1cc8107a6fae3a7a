package twentyone

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

// GameType is the registry tag.
const GameType = "twentyone"

// Phase values for the round lifecycle.
const (
	PhaseTurns         = "turns"
	PhaseBetweenRounds = "between_rounds"
	PhaseFinished      = "finished"
)

// deckMaxRank: the round deck runs 1..11, no face cards.
const deckMaxRank = 11

// Options configure one survival-21 duel.
type Options struct {
	StartingHealth            int `json:"starting_health"`
	BaseBet                   int `json:"base_bet"`
	StartingModifiersPerRound int `json:"starting_modifiers_per_round"`
	DrawModifierChancePercent int `json:"draw_modifier_chance_percent"`
	DeckCount                 int `json:"deck_count"`
	NextRoundWaitTicks        int `json:"next_round_wait_ticks"`
	TurnTimerSeconds          int `json:"turn_timer_seconds"`
}

// DefaultOptions returns the duel defaults.
func DefaultOptions() Options {
	return Options{
		StartingHealth:            10,
		BaseBet:                   1,
		StartingModifiersPerRound: 1,
		DrawModifierChancePercent: 35,
		DeckCount:                 1,
		NextRoundWaitTicks:        30,
	}
}

// Player is one duelist. Held modifiers persist across rounds; the hand and
// table effects reset every round.
type Player struct {
	game.Player
	Hand           []deck.Card `json:"hand"`
	HP             int         `json:"hp"`
	Modifiers      []string    `json:"modifiers"`
	TableModifiers []string    `json:"table_modifiers"`
	StandPending   bool        `json:"stand_pending"`
	LastDrawnID    int         `json:"last_drawn_id"` // 0 = none visible
}

// HandTotal sums the numeric ranks; there is no ace softness in this ruleset.
func (p *Player) HandTotal() int {
	total := 0
	for _, c := range p.Hand {
		total += int(c.Rank)
	}
	return total
}

// VisibleCards returns the cards the opponent can see (everything but the
// first, hidden card).
func (p *Player) VisibleCards() []deck.Card {
	if len(p.Hand) <= 1 {
		return nil
	}
	return p.Hand[1:]
}

// Game is one head-to-head survival-21 session.
type Game struct {
	*game.Core
	opts    Options
	players []*Player

	deck              *deck.Deck
	roundNumber       int
	roundStarterIndex int
	nextRoundTicks    int
}

// New creates a duel with the given options.
func New(opts Options, env *game.Env, rng *rand.Rand, logger *log.Logger) *Game {
	g := &Game{
		Core: game.NewCore(env, rng, logger.WithPrefix(GameType)),
		opts: opts,
	}
	g.Core.Bind(g)
	g.Core.SetTurnTimerSeconds(opts.TurnTimerSeconds)
	return g
}

// Type implements game.Game.
func (g *Game) Type() string { return GameType }

// MinPlayers implements game.Game; this ruleset is strictly head-to-head.
func (g *Game) MinPlayers() int { return 2 }

// MaxPlayers implements game.Game.
func (g *Game) MaxPlayers() int { return 2 }

// Options returns the duel configuration.
func (g *Game) Options() Options { return g.opts }

// AddPlayer seats a duelist.
func (g *Game) AddPlayer(id, name string, isBot bool) *Player {
	p := &Player{Player: game.Player{ID: id, Name: name, IsBot: isBot}}
	g.players = append(g.players, p)
	return p
}

// PlayerByID returns the seated player, or nil.
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Players returns every seated player.
func (g *Game) Players() []*Player { return g.players }

// RoundNumber returns the 1-based round counter.
func (g *Game) RoundNumber() int { return g.roundNumber }

func (g *Game) activePlayers() []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) alivePlayers() []*Player {
	var out []*Player
	for _, p := range g.activePlayers() {
		if p.HP > 0 {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) opponentOf(p *Player) *Player {
	for _, other := range g.alivePlayers() {
		if other.ID != p.ID {
			return other
		}
	}
	return nil
}

// PrestartValidate implements game.Game.
func (g *Game) PrestartValidate() []game.Reason {
	var errs []game.Reason
	if g.opts.BaseBet < 0 {
		errs = append(errs, "twentyone-error-bet-invalid")
	}
	return errs
}

// OnStart resets both duelists and deals round one.
func (g *Game) OnStart() {
	g.SetStatus(game.StatusPlaying)
	g.SetPhase(PhaseTurns)
	g.roundNumber = 0
	g.roundStarterIndex = 0
	g.nextRoundTicks = 0

	for _, p := range g.activePlayers() {
		p.HP = max(1, g.opts.StartingHealth)
		p.Hand = nil
		p.Modifiers = nil
		p.TableModifiers = nil
		p.StandPending = false
		p.LastDrawnID = 0
	}
	g.startRound(false)
}

// OnTick implements game.Game.
func (g *Game) OnTick() {
	g.TickShared()
	if g.Status() != game.StatusPlaying {
		return
	}
	if g.Phase() == PhaseBetweenRounds {
		if g.nextRoundTicks > 0 {
			g.nextRoundTicks--
		}
		if g.nextRoundTicks <= 0 {
			g.startRound(true)
		}
	}
}

// FallbackAction implements the turn-timeout default.
func (g *Game) FallbackAction(playerID string) string { return "stand" }

// --- round lifecycle -----------------------------------------------------

func (g *Game) startRound(rotateStarter bool) {
	alive := g.alivePlayers()
	if len(alive) <= 1 {
		var winner *Player
		if len(alive) == 1 {
			winner = alive[0]
		}
		g.endGame(winner)
		return
	}

	if rotateStarter {
		g.roundStarterIndex = (g.roundStarterIndex + 1) % len(alive)
	}
	if g.roundStarterIndex >= len(alive) {
		g.roundStarterIndex = 0
	}

	g.SetPhase(PhaseTurns)
	g.roundNumber++

	g.deck = deck.NewNumeric(deckMaxRank, max(1, g.opts.DeckCount), g.Rng())
	g.deck.Shuffle()

	for _, p := range alive {
		p.Hand = nil
		p.TableModifiers = nil
		p.StandPending = false
		p.LastDrawnID = 0
		g.giveRandomModifiers(p, g.opts.StartingModifiersPerRound, false)
	}

	// first card hidden, second face up
	for dealRound := 0; dealRound < 2; dealRound++ {
		for _, p := range alive {
			card, ok := g.deck.Draw()
			if !ok {
				continue
			}
			g.addCardToHand(p, card, "", dealRound > 0)
		}
	}

	ids := make([]string, len(alive))
	for i, p := range alive {
		ids[i] = p.ID
	}
	g.SetTurnPlayers(ids, true)
	g.SetTurnIndex(g.roundStarterIndex)

	g.Env().Say("Round %d begins. Target is %d.", g.roundNumber, g.currentTarget())
	for _, p := range alive {
		if shown := g.peekLastDrawnCard(p); shown != nil {
			g.Env().Say("%s shows %s.", p.Name, shown)
		} else {
			g.Env().Say("%s receives cards.", p.Name)
		}
		if len(p.Hand) > 0 {
			g.Env().Tell(p.ID, "Your hidden card is %s.", p.Hand[0])
		}
		g.Env().Tell(p.ID, "Your total is %d.", p.HandTotal())
		g.Env().Tell(p.ID, "Your modifiers: %s.", modifierListText(p.Modifiers))
	}

	g.startTurn()
}

func (g *Game) startTurn() {
	p := g.PlayerByID(g.CurrentPlayerID())
	if p == nil {
		return
	}
	g.Env().Say("It is %s's turn.", p.Name)
	if p.IsBot {
		g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 8, 16))
	}
	g.StartTurnTimer()
}

func (g *Game) advanceTurnAfterAction() {
	if g.Phase() != PhaseTurns {
		return
	}
	g.AdvanceTurn()
	g.startTurn()
}

// rejoltCurrent reschedules the acting bot when an action keeps the turn.
func (g *Game) rejoltCurrent() {
	p := g.PlayerByID(g.CurrentPlayerID())
	if p == nil {
		return
	}
	if p.IsBot {
		g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 8, 16))
	}
	g.StartTurnTimer()
}

func (g *Game) bothPlayersStanding() bool {
	players := g.alivePlayers()
	if len(players) < 2 {
		return false
	}
	for _, p := range players {
		if !p.StandPending {
			return false
		}
	}
	return true
}

// clearPendingStands: any draw reopens the round for both players.
func (g *Game) clearPendingStands() {
	for _, p := range g.alivePlayers() {
		p.StandPending = false
	}
}

func (g *Game) settleRound() {
	players := g.alivePlayers()
	if len(players) < 2 {
		var winner *Player
		if len(players) == 1 {
			winner = players[0]
		}
		g.endGame(winner)
		return
	}

	g.SetPhase(PhaseBetweenRounds)
	g.StopTurnTimer()
	p1, p2 := players[0], players[1]
	target := g.currentTarget()
	total1, total2 := p1.HandTotal(), p2.HandTotal()

	g.Env().Say("Round totals (target %d): %s %d, %s %d.", target, p1.Name, total1, p2.Name, total2)

	switch resolveRoundOutcome(total1, total2, target) {
	case outcomeFirstWins:
		g.applyRoundLossDamage(p2)
		g.Env().Say("%s wins the round.", p1.Name)
	case outcomeSecondWins:
		g.applyRoundLossDamage(p1)
		g.Env().Say("%s wins the round.", p2.Name)
	default:
		g.applyRoundLossDamage(p1)
		g.applyRoundLossDamage(p2)
		g.Env().Say("Round is a draw. Both players take damage.")
	}

	switch {
	case total1 > target && total2 > target:
		g.Env().Say("Both players busted; closer to target decides the winner.")
	case total1 > target:
		g.Env().Say("%s busted.", p1.Name)
	case total2 > target:
		g.Env().Say("%s busted.", p2.Name)
	}

	survivors := g.alivePlayers()
	if len(survivors) <= 1 {
		var winner *Player
		if len(survivors) == 1 {
			winner = survivors[0]
		}
		g.endGame(winner)
		return
	}
	g.nextRoundTicks = max(0, g.opts.NextRoundWaitTicks)
}

type roundOutcome int

const (
	outcomeDraw roundOutcome = iota
	outcomeFirstWins
	outcomeSecondWins
)

func resolveRoundOutcome(total1, total2, target int) roundOutcome {
	bust1 := total1 > target
	bust2 := total2 > target
	switch {
	case bust1 && !bust2:
		return outcomeSecondWins
	case bust2 && !bust1:
		return outcomeFirstWins
	case bust1 && bust2:
		diff1 := total1 - target
		diff2 := total2 - target
		if diff1 < diff2 {
			return outcomeFirstWins
		}
		if diff2 < diff1 {
			return outcomeSecondWins
		}
		return outcomeDraw
	case total1 > total2:
		return outcomeFirstWins
	case total2 > total1:
		return outcomeSecondWins
	default:
		return outcomeDraw
	}
}

func (g *Game) applyRoundLossDamage(loser *Player) {
	damage := g.currentBet(loser)
	if damage <= 0 {
		g.Env().Say("%s loses the round but bet is 0.", loser.Name)
		return
	}
	loser.HP = max(0, loser.HP-damage)
	g.Env().Say("%s takes %d damage and now has %d HP.", loser.Name, damage, loser.HP)
}

func (g *Game) endGame(winner *Player) {
	g.SetPhase(PhaseFinished)
	g.StopTurnTimer()
	if winner != nil {
		g.Env().Say("%s wins 21 with %d HP remaining.", winner.Name, winner.HP)
	} else {
		g.Env().Say("21 ends with no winner.")
	}
	g.Finish()
}

// --- targets, bets and table effects -------------------------------------

// currentTarget scans placed target effects; placement removes rival target
// effects so at most one is active.
func (g *Game) currentTarget() int {
	for _, p := range g.alivePlayers() {
		for i := len(p.TableModifiers) - 1; i >= 0; i-- {
			if v, ok := targetValues[p.TableModifiers[i]]; ok {
				return v
			}
		}
	}
	return 21
}

// currentBet is the damage the player would take on a round loss: the base
// stake, raised by opponent table effects and reduced by own guards.
func (g *Game) currentBet(p *Player) int {
	base := max(0, g.opts.BaseBet)
	opponent := g.opponentOf(p)
	if opponent == nil {
		return base
	}

	increase := 0
	for _, m := range opponent.TableModifiers {
		switch m {
		case ModRaise1:
			increase++
		case ModRaise2, ModRaise2Plus:
			increase += 2
		case ModPrecisionDrawPlus:
			increase += 5
		}
	}

	reduction := 0
	for _, m := range p.TableModifiers {
		switch m {
		case ModGuard:
			reduction++
		case ModGuardPlus:
			reduction += 2
		}
	}

	return max(0, base+increase-reduction)
}

func (g *Game) modifiersLockedFor(p *Player) bool {
	opponent := g.opponentOf(p)
	if opponent == nil {
		return false
	}
	for _, m := range opponent.TableModifiers {
		if m == ModLockdown {
			return true
		}
	}
	return false
}

func (g *Game) placeTableEffect(p *Player, modifier string) {
	if _, isTarget := targetValues[modifier]; isTarget {
		for _, other := range g.alivePlayers() {
			var kept []string
			for _, m := range other.TableModifiers {
				if _, ok := targetValues[m]; !ok {
					kept = append(kept, m)
				}
			}
			other.TableModifiers = kept
		}
	}

	p.TableModifiers = append(p.TableModifiers, modifier)
	for len(p.TableModifiers) > tableEffectLimit {
		removed := p.TableModifiers[0]
		p.TableModifiers = p.TableModifiers[1:]
		g.Env().Say("%s's %s expires.", p.Name, ModifierLabel(removed))
	}
}

func popLastTableEffect(p *Player) string {
	if len(p.TableModifiers) == 0 {
		return ""
	}
	last := p.TableModifiers[len(p.TableModifiers)-1]
	p.TableModifiers = p.TableModifiers[:len(p.TableModifiers)-1]
	return last
}

// salvage reward: every active Salvage pays out when any modifier resolves.
func (g *Game) triggerSalvageRewards() {
	for _, p := range g.alivePlayers() {
		for _, m := range p.TableModifiers {
			if m == ModSalvage {
				g.giveRandomModifiers(p, 1, true)
				break
			}
		}
	}
}

// --- cards ---------------------------------------------------------------

func (g *Game) drawCard() (deck.Card, bool) {
	if g.deck == nil {
		return deck.Card{}, false
	}
	return g.deck.Draw()
}

func (g *Game) drawSpecificRank(rank int) (deck.Card, bool) {
	if g.deck == nil || g.deck.IsEmpty() {
		return deck.Card{}, false
	}
	remaining := g.deck.Cards()
	for i, c := range remaining {
		if int(c.Rank) == rank {
			rest := append(remaining[:i:i], remaining[i+1:]...)
			g.deck = deck.FromCards(rest, g.Rng())
			return c, true
		}
	}
	return deck.Card{}, false
}

// drawBestPossibleCard picks the highest card that fits under the target, or
// failing that the card landing closest to it.
func (g *Game) drawBestPossibleCard(p *Player) (deck.Card, bool) {
	if g.deck == nil || g.deck.IsEmpty() {
		return deck.Card{}, false
	}
	target := g.currentTarget()
	current := p.HandTotal()
	remaining := g.deck.Cards()

	bestIndex, bestValue := -1, -1
	fallbackIndex, fallbackDiff := 0, 1<<30
	for i, c := range remaining {
		value := int(c.Rank)
		projected := current + value
		if projected <= target && value > bestValue {
			bestValue = value
			bestIndex = i
		}
		diff := projected - target
		if diff < 0 {
			diff = -diff
		}
		if diff < fallbackDiff {
			fallbackDiff = diff
			fallbackIndex = i
		}
	}
	chosen := bestIndex
	if chosen < 0 {
		chosen = fallbackIndex
	}
	card := remaining[chosen]
	rest := append(remaining[:chosen:chosen], remaining[chosen+1:]...)
	g.deck = deck.FromCards(rest, g.Rng())
	return card, true
}

func (g *Game) addCardToHand(p *Player, card deck.Card, announceSource string, revealToOthers bool) {
	p.Hand = append(p.Hand, card)
	if revealToOthers {
		p.LastDrawnID = card.ID
	} else {
		p.LastDrawnID = 0
	}
	if announceSource == "" {
		return
	}
	if revealToOthers {
		g.Env().Say("%s %s.", announceSource, card)
	} else {
		g.Env().Tell(p.ID, "You receive a hidden card (%s).", card)
		g.Env().BroadcastExcept(p.ID, fmt.Sprintf("%s receives a hidden card.", p.Name))
	}
}

func (g *Game) returnCardsToTop(cards ...deck.Card) {
	if len(cards) == 0 {
		return
	}
	if g.deck == nil {
		g.deck = deck.FromCards(cards, g.Rng())
		return
	}
	g.deck.AddTop(cards...)
}

func (g *Game) peekLastDrawnCard(p *Player) *deck.Card {
	if p.LastDrawnID == 0 {
		return nil
	}
	for i := range p.Hand {
		if p.Hand[i].ID == p.LastDrawnID {
			return &p.Hand[i]
		}
	}
	return nil
}

func (g *Game) extractLastDrawnCard(p *Player) (deck.Card, bool) {
	card := g.peekLastDrawnCard(p)
	if card == nil {
		return deck.Card{}, false
	}
	for i := range p.Hand {
		if p.Hand[i].ID == card.ID {
			removed := p.Hand[i]
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			p.LastDrawnID = 0
			return removed, true
		}
	}
	return deck.Card{}, false
}

// --- modifier hand management --------------------------------------------

func (g *Game) giveRandomModifiers(p *Player, count int, announce bool) {
	for i := 0; i < count; i++ {
		modifier := ModifierPool[g.Rng().IntN(len(ModifierPool))]
		p.Modifiers = append(p.Modifiers, modifier)
		if announce {
			g.Env().Tell(p.ID, "You gain modifier %s.", ModifierLabel(modifier))
			g.Env().BroadcastExcept(p.ID, fmt.Sprintf("%s gains a modifier card.", p.Name))
		}
	}
}

func (g *Game) discardRandomModifiers(p *Player, count int) {
	for i := 0; i < count && len(p.Modifiers) > 0; i++ {
		idx := g.Rng().IntN(len(p.Modifiers))
		p.Modifiers = append(p.Modifiers[:idx], p.Modifiers[idx+1:]...)
	}
}

func (g *Game) isModifierPlayable(p *Player, modifier string) bool {
	if g.modifiersLockedFor(p) {
		return false
	}
	if !isKnownModifier(modifier) {
		return false
	}

	if tableEffectModifiers[modifier] {
		if _, isTarget := targetValues[modifier]; isTarget {
			return true
		}
		return len(p.TableModifiers) < tableEffectLimit
	}

	opponent := g.opponentOf(p)
	if opponent == nil {
		return false
	}
	switch modifier {
	case ModScrap, ModRecycle:
		return g.peekLastDrawnCard(opponent) != nil
	case ModBreak, ModBreakAll:
		return len(opponent.TableModifiers) > 0
	}
	return true
}

// resolveModifier applies one played modifier card.
func (g *Game) resolveModifier(p *Player, modifier string) {
	opponent := g.opponentOf(p)
	if opponent == nil {
		return
	}

	if rank, ok := exactDrawRanks[modifier]; ok {
		if card, ok := g.drawSpecificRank(rank); ok {
			g.addCardToHand(p, card, fmt.Sprintf("%s draws exact", p.Name), true)
			p.StandPending = false
		} else {
			g.Env().Say("No %d card available.", rank)
		}
		return
	}

	switch modifier {
	case ModRaise1, ModRaise2:
		g.placeTableEffect(p, modifier)
		g.giveRandomModifiers(p, 1, true)

	case ModRaise2Plus:
		g.placeTableEffect(p, modifier)
		if removed, ok := g.extractLastDrawnCard(opponent); ok {
			g.returnCardsToTop(removed)
			g.Env().Say("%s's last face-up card is returned to top of deck.", opponent.Name)
		}
		g.giveRandomModifiers(p, 1, true)

	case ModScrap, ModRecycle:
		if removed, ok := g.extractLastDrawnCard(opponent); ok {
			g.returnCardsToTop(removed)
			g.Env().Say("%s's last face-up card is returned to top of deck.", opponent.Name)
		} else {
			g.Env().Say("No face-up card to remove.")
		}

	case ModSwapDraw:
		first, hadFirst := g.extractLastDrawnCard(p)
		second, hadSecond := g.extractLastDrawnCard(opponent)
		if card, ok := g.drawCard(); ok {
			g.addCardToHand(p, card, fmt.Sprintf("%s draws", p.Name), true)
			p.StandPending = false
		}
		if card, ok := g.drawCard(); ok {
			g.addCardToHand(opponent, card, fmt.Sprintf("%s draws", opponent.Name), true)
			opponent.StandPending = false
		}
		var returned []deck.Card
		if hadFirst {
			returned = append(returned, first)
		}
		if hadSecond {
			returned = append(returned, second)
		}
		g.returnCardsToTop(returned...)
		g.Env().Say("Exchange resolves for both players.")

	case ModRedraft:
		g.discardRandomModifiers(p, 2)
		g.giveRandomModifiers(p, 3, true)

	case ModRedraftPlus:
		g.discardRandomModifiers(p, 1)
		g.giveRandomModifiers(p, 4, true)

	case ModBreak:
		if removed := popLastTableEffect(opponent); removed != "" {
			g.Env().Say("%s destroys %s.", p.Name, ModifierLabel(removed))
		} else {
			g.Env().Say("No table effect to destroy.")
		}

	case ModBreakAll:
		if n := len(opponent.TableModifiers); n > 0 {
			opponent.TableModifiers = nil
			g.Env().Say("%s destroys all opponent table effects (%d).", p.Name, n)
		} else {
			g.Env().Say("No table effects to destroy.")
		}

	case ModLockdown:
		if len(opponent.TableModifiers) > 0 {
			opponent.TableModifiers = nil
			g.Env().Say("%s clears opponent table effects.", p.Name)
		}
		g.placeTableEffect(p, modifier)

	case ModPrecisionDraw:
		if card, ok := g.drawBestPossibleCard(p); ok {
			g.addCardToHand(p, card, fmt.Sprintf("%s precision draws", p.Name), true)
			p.StandPending = false
		} else {
			g.Env().Say("Precision Draw found no card.")
		}

	case ModPrecisionDrawPlus:
		g.placeTableEffect(p, modifier)
		if card, ok := g.drawBestPossibleCard(p); ok {
			g.addCardToHand(p, card, fmt.Sprintf("%s precision draws", p.Name), true)
			p.StandPending = false
		} else {
			g.Env().Say("Precision Draw+ found no card.")
		}

	case ModPrimeDraw:
		if card, ok := g.drawBestPossibleCard(p); ok {
			g.addCardToHand(p, card, fmt.Sprintf("%s prime draws", p.Name), true)
			p.StandPending = false
		}
		g.giveRandomModifiers(p, 2, true)

	case ModTarget17, ModTarget24, ModTarget27:
		g.placeTableEffect(p, modifier)
		g.Env().Say("Target changes to %d.", g.currentTarget())

	case ModSalvage:
		g.placeTableEffect(p, modifier)

	case ModAidRival:
		if card, ok := g.drawBestPossibleCard(opponent); ok {
			g.addCardToHand(opponent, card, fmt.Sprintf("%s draws from Aid Rival", opponent.Name), true)
			opponent.StandPending = false
		} else {
			g.Env().Say("Aid Rival found no card.")
		}
	}
}

// BuildResult implements game.Game.
func (g *Game) BuildResult() *game.Result {
	active := g.activePlayers()
	rows := make([]game.PlayerRow, 0, len(active))
	finalHP := make(map[string]any, len(active))
	var winner *Player
	for _, p := range active {
		rows = append(rows, game.PlayerRow{PlayerID: p.ID, PlayerName: p.Name, IsBot: p.IsBot})
		finalHP[p.Name] = p.HP
		if winner == nil || p.HP > winner.HP {
			winner = p
		}
	}

	custom := map[string]any{
		"final_hp":      finalHP,
		"rounds_played": g.roundNumber,
	}
	if winner != nil {
		custom["winner_name"] = winner.Name
		custom["winner_hp"] = winner.HP
	}
	return game.NewResult(g.Core, GameType, rows, custom)
}

func modifierListText(mods []string) string {
	if len(mods) == 0 {
		return "none"
	}
	labels := make([]string, len(mods))
	for i, m := range mods {
		labels[i] = ModifierLabel(m)
	}
	return strings.Join(labels, ", ")
}
