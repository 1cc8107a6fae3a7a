package blackjack

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/evaluator"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

// GameType is the registry tag.
const GameType = "blackjack"

// Phase values for the hand lifecycle.
const (
	PhasePlayers   = "players"
	PhaseInsurance = "insurance"
	PhaseDealer    = "dealer"
	PhaseSettle    = "settle"
	PhaseFinished  = "finished"
)

// nextHandWait is the tick delay between settlement and the next hand.
const nextHandWait = 40

// Hand is one playable sub-hand (main or split).
type Hand struct {
	Cards         []deck.Card `json:"cards"`
	Bet           int         `json:"bet"`
	Done          bool        `json:"done"`
	Stood         bool        `json:"stood"`
	Busted        bool        `json:"busted"`
	Blackjack     bool        `json:"blackjack"`
	Doubled       bool        `json:"doubled"`
	Surrendered   bool        `json:"surrendered"`
	FromSplitAces bool        `json:"from_split_aces"`
}

// Total returns the hand's blackjack value.
func (h *Hand) Total() (int, bool) {
	return evaluator.HandValue(h.Cards)
}

// Player is a seated blackjack player. Created at seat-join, persists
// across hands within the session.
type Player struct {
	game.Player
	Chips         int  `json:"chips"`
	Main          Hand `json:"main"`
	Split         Hand `json:"split"`
	ActiveHand    int  `json:"active_hand"`
	InsuranceBet  int  `json:"insurance_bet"`
	InsuranceDone bool `json:"insurance_done"`
	TookEvenMoney bool `json:"took_even_money"`
}

// PendingHand reports whether the player still has a sub-hand to act on.
func (p *Player) PendingHand() bool {
	if p.Main.Bet > 0 && !p.Main.Done {
		return true
	}
	if p.Split.Bet > 0 && !p.Split.Done {
		return true
	}
	return false
}

// Game is one blackjack table session.
type Game struct {
	*game.Core
	opts    Options
	players []*Player

	deck               *deck.Deck
	dealerHand         []deck.Card
	dealerHoleRevealed bool
	handNumber         int
	nextHandTicks      int
}

// New creates a blackjack table with the given options.
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

// MinPlayers implements game.Game; solo play against the dealer is allowed.
func (g *Game) MinPlayers() int { return 1 }

// MaxPlayers implements game.Game.
func (g *Game) MaxPlayers() int { return 7 }

// Options returns the table configuration.
func (g *Game) Options() Options { return g.opts }

// AddPlayer seats a player. Chips are granted at start, not at seating.
func (g *Game) AddPlayer(id, name string, isBot bool) *Player {
	p := &Player{
		Player: game.Player{ID: id, Name: name, IsBot: isBot},
	}
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
func (g *Game) Players() []*Player {
	return g.players
}

// DealerHand exposes the dealer cards (for rendering and tests).
func (g *Game) DealerHand() []deck.Card {
	return g.dealerHand
}

// HandNumber returns the 1-based hand counter.
func (g *Game) HandNumber() int { return g.handNumber }

func (g *Game) activePlayers() []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// PrestartValidate implements game.Game.
func (g *Game) PrestartValidate() []game.Reason {
	g.opts.ApplyProfile(g.opts.RulesProfile)
	return g.opts.Validate()
}

// OnStart grants starting chips and deals the first hand.
func (g *Game) OnStart() {
	g.SetStatus(game.StatusPlaying)
	g.SetPhase(PhasePlayers)
	g.handNumber = 0
	g.nextHandTicks = 0

	for _, p := range g.activePlayers() {
		p.Chips = g.opts.StartingChips
	}
	g.startNewHand()
}

// OnTick implements game.Game: the shared machinery first (timer, jolts),
// then the between-hand wait.
func (g *Game) OnTick() {
	g.TickShared()
	if g.Status() != game.StatusPlaying {
		return
	}
	if g.nextHandTicks > 0 {
		g.nextHandTicks--
		if g.nextHandTicks == 0 {
			g.startNewHand()
		}
	}
}

// FallbackAction implements the turn-timeout default.
func (g *Game) FallbackAction(playerID string) string {
	if g.Phase() == PhaseInsurance {
		return "decline_insurance"
	}
	return "stand"
}

// --- hand lifecycle ------------------------------------------------------

func (g *Game) startNewHand() {
	g.SetPhase(PhasePlayers)
	g.handNumber++
	g.StopTurnTimer()

	competitors := g.activePlayers()
	var funded []*Player
	for _, p := range competitors {
		if p.Chips > 0 {
			funded = append(funded, p)
		}
	}

	if len(funded) == 0 {
		g.endGame(nil)
		return
	}
	// Multiplayer ends when one stack remains; solo keeps dealing until the
	// single player busts out.
	if len(competitors) > 1 && len(funded) <= 1 {
		g.endGame(funded[0])
		return
	}

	for _, p := range competitors {
		p.Main = Hand{}
		p.Split = Hand{Done: true}
		p.ActiveHand = 0
		p.InsuranceBet = 0
		p.InsuranceDone = false
		p.TookEvenMoney = false
	}

	g.dealerHand = nil
	g.dealerHoleRevealed = false

	g.Env().Say("Hand %d.", g.handNumber)
	g.Logger().Debug("hand start", "hand", g.handNumber, "players", len(funded))

	g.ensureDeck(len(funded) * 6)
	g.postBets(funded)
	g.dealInitialCards(funded)

	if g.shouldOfferInsurance(funded) {
		g.startInsurancePhase(funded)
		return
	}

	if evaluator.IsNatural(g.dealerHand) && g.opts.Rules.DealerPeeksBlackjack {
		g.revealDealerHand()
		g.Env().Say("Dealer has blackjack.")
		g.settleHand()
		return
	}

	g.startPlayerPhase(funded)
}

func (g *Game) ensureDeck(minCards int) {
	if g.deck != nil && g.deck.Len() >= minCards {
		return
	}
	g.deck = deck.NewStandard(g.opts.DeckCount, g.Rng())
	g.deck.Shuffle()
}

func (g *Game) draw() (deck.Card, bool) {
	if card, ok := g.deck.Draw(); ok {
		return card, true
	}
	g.ensureDeck(1)
	return g.deck.Draw()
}

func (g *Game) postBets(players []*Player) {
	for _, p := range players {
		if p.Chips <= 0 {
			p.Main.Bet = 0
			p.Main.Done = true
			continue
		}
		bet := min(p.Chips, min(g.opts.BaseBet, g.opts.TableMaxBet))
		if p.Chips >= g.opts.TableMinBet && bet < g.opts.TableMinBet {
			bet = g.opts.TableMinBet
		}
		if bet <= 0 || p.Chips < bet {
			// cannot cover even the minimum: sit this hand out
			p.Main.Bet = 0
			p.Main.Done = true
			continue
		}
		p.Chips -= bet
		p.Main.Bet = bet
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("You bet %d chips.", bet),
			fmt.Sprintf("%s bets %d chips.", p.Name, bet))
	}
}

func (g *Game) dealInitialCards(players []*Player) {
	// Two alternating rounds: each player, then the dealer. The card-by-card
	// order matters for the face-up table chatter, not for fairness.
	for round := 0; round < 2; round++ {
		for _, p := range players {
			if p.Main.Bet <= 0 {
				continue
			}
			if card, ok := g.draw(); ok {
				p.Main.Cards = append(p.Main.Cards, card)
			}
		}
		if card, ok := g.draw(); ok {
			g.dealerHand = append(g.dealerHand, card)
		}
	}

	if len(g.dealerHand) > 0 {
		g.Env().Say("Dealer shows %s.", g.dealerHand[0])
	}

	for _, p := range players {
		if p.Main.Bet <= 0 {
			continue
		}
		total, soft := p.Main.Total()
		if g.opts.CardsFaceUp {
			g.Env().BroadcastPersonal(p.ID,
				fmt.Sprintf("You have %s (%s).", handText(p.Main.Cards), totalText(total, soft)),
				fmt.Sprintf("%s has %s (%s).", p.Name, handText(p.Main.Cards), totalText(total, soft)))
		} else {
			g.Env().Tell(p.ID, "You have %s (%s).", handText(p.Main.Cards), totalText(total, soft))
		}
		if evaluator.IsNatural(p.Main.Cards) {
			p.Main.Blackjack = true
			p.Main.Done = true
			p.Main.Stood = true
			g.Env().BroadcastPersonal(p.ID, "Blackjack!", fmt.Sprintf("%s has blackjack!", p.Name))
		}
	}
}

// --- insurance -----------------------------------------------------------

func (g *Game) dealerUpcardIsAce() bool {
	return len(g.dealerHand) > 0 && g.dealerHand[0].Rank == deck.Ace
}

func (g *Game) insuranceAmount(p *Player) int {
	return p.Main.Bet / 2
}

func (g *Game) canTakeInsurance(p *Player) bool {
	if !g.opts.Rules.AllowInsurance || !g.dealerUpcardIsAce() {
		return false
	}
	if p.Main.Bet <= 0 || p.Main.Blackjack || p.InsuranceDone {
		return false
	}
	amount := g.insuranceAmount(p)
	return amount > 0 && p.Chips >= amount
}

func (g *Game) canTakeEvenMoney(p *Player) bool {
	if !g.opts.Rules.AllowInsurance || !g.dealerUpcardIsAce() {
		return false
	}
	return p.Main.Bet > 0 && p.Main.Blackjack && !p.InsuranceDone
}

func (g *Game) needsInsuranceDecision(p *Player) bool {
	if p.Main.Bet <= 0 || p.InsuranceDone {
		return false
	}
	return g.canTakeInsurance(p) || g.canTakeEvenMoney(p)
}

func (g *Game) shouldOfferInsurance(players []*Player) bool {
	if !g.opts.Rules.AllowInsurance || !g.dealerUpcardIsAce() {
		return false
	}
	for _, p := range players {
		if g.canTakeInsurance(p) || g.canTakeEvenMoney(p) {
			return true
		}
	}
	return false
}

func (g *Game) startInsurancePhase(players []*Player) {
	g.SetPhase(PhaseInsurance)
	g.StopTurnTimer()
	g.Env().Say("Dealer shows an ace. Insurance is open.")

	for _, p := range players {
		p.InsuranceDone = !g.needsInsuranceDecision(p)
	}

	var order []string
	for _, p := range players {
		if g.needsInsuranceDecision(p) {
			order = append(order, p.ID)
		}
	}
	g.SetTurnPlayers(order, true)
	if len(order) == 0 {
		g.finishInsurancePhase()
		return
	}
	g.startInsuranceTurn()
}

func (g *Game) startInsuranceTurn() {
	p := g.PlayerByID(g.CurrentPlayerID())
	if p == nil {
		g.finishInsurancePhase()
		return
	}
	if !g.needsInsuranceDecision(p) {
		g.advanceInsuranceTurn()
		return
	}

	if g.canTakeEvenMoney(p) {
		g.Env().BroadcastPersonal(p.ID,
			"You have blackjack. Take even money?",
			fmt.Sprintf("%s is offered even money.", p.Name))
	} else if g.canTakeInsurance(p) {
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("Insurance costs %d chips. Take it?", g.insuranceAmount(p)),
			fmt.Sprintf("%s is offered insurance.", p.Name))
	}

	if p.IsBot {
		g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 20, 35))
	}
	g.StartTurnTimer()
}

func (g *Game) advanceInsuranceTurn() {
	rotation := g.TurnPlayers()
	if len(rotation) == 0 {
		g.finishInsurancePhase()
		return
	}
	for range rotation {
		g.AdvanceTurn()
		next := g.PlayerByID(g.CurrentPlayerID())
		if next == nil {
			continue
		}
		if g.needsInsuranceDecision(next) {
			g.startInsuranceTurn()
			return
		}
	}
	g.finishInsurancePhase()
}

func (g *Game) finishInsurancePhase() {
	g.StopTurnTimer()
	players := g.activePlayers()
	for _, p := range players {
		if g.needsInsuranceDecision(p) {
			p.InsuranceDone = true
		}
	}

	if evaluator.IsNatural(g.dealerHand) && g.opts.Rules.DealerPeeksBlackjack {
		g.revealDealerHand()
		g.Env().Say("Dealer has blackjack.")
		g.settleHand()
		return
	}

	g.startPlayerPhase(players)
}

// --- player phase --------------------------------------------------------

func (g *Game) startPlayerPhase(players []*Player) {
	g.SetPhase(PhasePlayers)
	var order []string
	for _, p := range players {
		if p.PendingHand() {
			order = append(order, p.ID)
		}
	}
	g.SetTurnPlayers(order, true)
	if len(order) == 0 {
		g.playDealerTurn()
		return
	}
	g.startTurn()
}

func (g *Game) startTurn() {
	p := g.PlayerByID(g.CurrentPlayerID())
	if p == nil {
		g.playDealerTurn()
		return
	}
	g.selectFirstPendingHand(p)
	if g.currentHand(p).Done {
		g.advanceToNextPlayer()
		return
	}

	total, soft := g.currentHand(p).Total()
	g.announceTurnTotal(p, total, soft)

	if p.IsBot {
		g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 20, 35))
	}
	g.StartTurnTimer()
}

func (g *Game) announceTurnTotal(p *Player, total int, soft bool) {
	if p.Split.Bet > 0 {
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("Hand %d: your total is %s.", p.ActiveHand+1, totalText(total, soft)),
			fmt.Sprintf("%s plays hand %d (%s).", p.Name, p.ActiveHand+1, totalText(total, soft)))
		return
	}
	if g.opts.CardsFaceUp {
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("Your total is %s.", totalText(total, soft)),
			fmt.Sprintf("%s has %s.", p.Name, totalText(total, soft)))
	} else {
		g.Env().Tell(p.ID, "Your total is %s.", totalText(total, soft))
	}
}

func (g *Game) currentHand(p *Player) *Hand {
	if p.ActiveHand == 0 {
		return &p.Main
	}
	return &p.Split
}

func (g *Game) selectFirstPendingHand(p *Player) {
	if p.Main.Bet > 0 && !p.Main.Done {
		p.ActiveHand = 0
		return
	}
	if p.Split.Bet > 0 && !p.Split.Done {
		p.ActiveHand = 1
	}
}

func (g *Game) switchToNextHand(p *Player) bool {
	if p.ActiveHand == 0 && p.Split.Bet > 0 && !p.Split.Done {
		p.ActiveHand = 1
		return true
	}
	return false
}

func (g *Game) advanceToNextPlayer() {
	if p := g.PlayerByID(g.CurrentPlayerID()); p != nil && g.switchToNextHand(p) {
		g.startTurn()
		return
	}

	rotation := g.TurnPlayers()
	if len(rotation) == 0 {
		g.playDealerTurn()
		return
	}
	for range rotation {
		g.AdvanceTurn()
		next := g.PlayerByID(g.CurrentPlayerID())
		if next == nil {
			continue
		}
		g.selectFirstPendingHand(next)
		if g.currentHand(next).Done {
			continue
		}
		g.startTurn()
		return
	}
	g.playDealerTurn()
}

// --- dealer and settlement -----------------------------------------------

func (g *Game) revealDealerHand() {
	if g.dealerHoleRevealed {
		return
	}
	g.dealerHoleRevealed = true
	if len(g.dealerHand) >= 2 {
		total, soft := evaluator.HandValue(g.dealerHand)
		g.Env().Say("Dealer reveals %s: %s (%s).",
			g.dealerHand[1], handText(g.dealerHand), totalText(total, soft))
	}
}

func (g *Game) playDealerTurn() {
	g.SetPhase(PhaseDealer)
	g.StopTurnTimer()
	g.ClearTurn()
	g.revealDealerHand()

	for {
		total, soft := evaluator.HandValue(g.dealerHand)
		shouldHit := total < 17
		if total == 17 && soft && g.opts.Rules.DealerHitsSoft17 {
			shouldHit = true
		}
		if !shouldHit {
			break
		}
		card, ok := g.draw()
		if !ok {
			break
		}
		g.dealerHand = append(g.dealerHand, card)
		newTotal, newSoft := evaluator.HandValue(g.dealerHand)
		g.Env().Say("Dealer draws %s: %s (%s).", card, handText(g.dealerHand), totalText(newTotal, newSoft))
	}

	total, soft := evaluator.HandValue(g.dealerHand)
	if total > 21 {
		g.Env().Say("Dealer busts with %s.", totalText(total, soft))
	} else {
		g.Env().Say("Dealer stands on %s.", totalText(total, soft))
	}
	g.settleHand()
}

func (g *Game) blackjackTotalPayout(bet int) int {
	switch g.opts.Rules.BlackjackPayout {
	case PayoutSixToFive:
		return bet + (bet*6)/5
	case PayoutEvenMoney:
		return bet * 2
	default:
		return bet + (bet*3)/2
	}
}

func (g *Game) settleHand() {
	g.SetPhase(PhaseSettle)
	g.StopTurnTimer()
	g.ClearTurn()

	dealerTotal, _ := evaluator.HandValue(g.dealerHand)
	dealerBlackjack := evaluator.IsNatural(g.dealerHand)
	dealerBust := dealerTotal > 21

	for _, p := range g.activePlayers() {
		// insurance side-bet resolves first
		if p.InsuranceBet > 0 {
			if dealerBlackjack {
				p.Chips += p.InsuranceBet * 3
				g.Env().BroadcastPersonal(p.ID,
					fmt.Sprintf("Insurance pays %d chips.", p.InsuranceBet*2),
					fmt.Sprintf("%s wins insurance.", p.Name))
			} else {
				g.Env().BroadcastPersonal(p.ID,
					fmt.Sprintf("Insurance loses %d chips.", p.InsuranceBet),
					fmt.Sprintf("%s loses insurance.", p.Name))
			}
		}

		hands := []*Hand{}
		if p.Main.Bet > 0 {
			hands = append(hands, &p.Main)
		}
		if p.Split.Bet > 0 {
			hands = append(hands, &p.Split)
		}

		for i, h := range hands {
			if h.Surrendered {
				continue
			}
			if h == &p.Main && p.TookEvenMoney {
				p.Chips += h.Bet * 2
				g.settleResult(p, i, "even money", h.Bet)
				continue
			}
			if h.Busted {
				g.settleResult(p, i, "lose", h.Bet)
				continue
			}
			playerTotal, _ := evaluator.HandValue(h.Cards)
			switch {
			case h.Blackjack && !dealerBlackjack:
				payout := g.blackjackTotalPayout(h.Bet)
				p.Chips += payout
				g.settleResult(p, i, "win", payout-h.Bet)
			case dealerBlackjack && !h.Blackjack:
				g.settleResult(p, i, "lose", h.Bet)
			case dealerBust || playerTotal > dealerTotal:
				p.Chips += h.Bet * 2
				g.settleResult(p, i, "win", h.Bet)
			case playerTotal == dealerTotal:
				p.Chips += h.Bet
				g.settleResult(p, i, "push", 0)
			default:
				g.settleResult(p, i, "lose", h.Bet)
			}
		}

		if p.Chips == 0 {
			g.Env().BroadcastPersonal(p.ID, "You are out of chips.",
				fmt.Sprintf("%s is out of chips.", p.Name))
		}
	}

	competitors := g.activePlayers()
	var remaining []*Player
	for _, p := range competitors {
		if p.Chips > 0 {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == 0 {
		g.endGame(nil)
		return
	}
	if len(competitors) > 1 && len(remaining) <= 1 {
		g.endGame(remaining[0])
		return
	}

	g.nextHandTicks = nextHandWait
}

func (g *Game) settleResult(p *Player, handIndex int, result string, amount int) {
	label := ""
	if p.Split.Bet > 0 {
		label = fmt.Sprintf(" on hand %d", handIndex+1)
	}
	switch result {
	case "push":
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("Push%s.", label),
			fmt.Sprintf("%s pushes%s.", p.Name, label))
	case "even money":
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("Even money pays %d chips.", amount),
			fmt.Sprintf("%s takes even money for %d chips.", p.Name, amount))
	default:
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("You %s %d chips%s.", result, amount, label),
			fmt.Sprintf("%s %ss %d chips%s.", p.Name, result, amount, label))
	}
	g.Logger().Debug("settle", "player", p.Name, "hand", handIndex, "result", result, "amount", amount, "chips", p.Chips)
}

func (g *Game) endGame(winner *Player) {
	g.SetPhase(PhaseFinished)
	g.StopTurnTimer()
	if winner != nil {
		g.Env().BroadcastPersonal(winner.ID,
			fmt.Sprintf("You win the game with %d chips!", winner.Chips),
			fmt.Sprintf("%s wins the game with %d chips!", winner.Name, winner.Chips))
	}
	g.Finish()
}

// BuildResult implements game.Game.
func (g *Game) BuildResult() *game.Result {
	active := g.activePlayers()
	rows := make([]game.PlayerRow, 0, len(active))
	finalChips := make(map[string]any, len(active))
	var winner *Player
	for _, p := range active {
		rows = append(rows, game.PlayerRow{PlayerID: p.ID, PlayerName: p.Name, IsBot: p.IsBot})
		finalChips[p.Name] = p.Chips
		if winner == nil || p.Chips > winner.Chips {
			winner = p
		}
	}

	custom := map[string]any{
		"final_chips":  finalChips,
		"hands_played": g.handNumber,
	}
	if winner != nil {
		custom["winner_name"] = winner.Name
		custom["winner_chips"] = winner.Chips
	}
	return game.NewResult(g.Core, GameType, rows, custom)
}

func handText(cards []deck.Card) string {
	out := ""
	for i, c := range cards {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}

func totalText(total int, soft bool) string {
	if soft {
		return fmt.Sprintf("soft %d", total)
	}
	return fmt.Sprintf("%d", total)
}
