package blackjack

import (
	"fmt"

	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/evaluator"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

// Blackjack-specific reason tokens.
const (
	ReasonNotPlayerPhase    game.Reason = "blackjack-not-player-phase"
	ReasonHandComplete      game.Reason = "blackjack-hand-complete"
	ReasonCannotSplit       game.Reason = "blackjack-cannot-split"
	ReasonCannotDoubleDown  game.Reason = "blackjack-cannot-double-down"
	ReasonCannotSurrender   game.Reason = "blackjack-cannot-surrender"
	ReasonNotInsurancePhase game.Reason = "blackjack-not-insurance-phase"
	ReasonInsuranceClosed   game.Reason = "blackjack-insurance-closed"
)

// checkGate runs the checks shared by the informational readback actions,
// which stay available off-turn for the whole hand.
func (g *Game) checkGate(playerID string) (*Player, game.Reason) {
	if g.Status() != game.StatusPlaying {
		return nil, game.ReasonNotPlaying
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, game.ReasonNotPlaying
	}
	if p.IsSpectator {
		return nil, game.ReasonSpectator
	}
	return p, game.Allowed
}

// playGate runs the checks shared by every player-phase action.
func (g *Game) playGate(playerID string) (*Player, game.Reason) {
	if g.Status() != game.StatusPlaying {
		return nil, game.ReasonNotPlaying
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, game.ReasonNotPlaying
	}
	if p.IsSpectator {
		return nil, game.ReasonSpectator
	}
	if g.Phase() != PhasePlayers {
		return nil, ReasonNotPlayerPhase
	}
	if g.CurrentPlayerID() != playerID {
		return nil, game.ReasonNotYourTurn
	}
	if g.currentHand(p).Done {
		return nil, ReasonHandComplete
	}
	return p, game.Allowed
}

// insuranceGate runs the checks shared by the insurance-phase actions.
func (g *Game) insuranceGate(playerID string) (*Player, game.Reason) {
	if g.Status() != game.StatusPlaying {
		return nil, game.ReasonNotPlaying
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, game.ReasonNotPlaying
	}
	if p.IsSpectator {
		return nil, game.ReasonSpectator
	}
	if g.Phase() != PhaseInsurance {
		return nil, ReasonNotInsurancePhase
	}
	if g.CurrentPlayerID() != playerID {
		return nil, game.ReasonNotYourTurn
	}
	if !g.needsInsuranceDecision(p) {
		return nil, ReasonInsuranceClosed
	}
	return p, game.Allowed
}

// lockedAfterSplitAces reports whether the current hand took its single
// permitted card after splitting aces.
func (g *Game) lockedAfterSplitAces(p *Player) bool {
	return g.opts.Rules.SplitAcesOneCardOnly && g.currentHand(p).FromSplitAces
}

func (g *Game) canDoubleDown(p *Player) bool {
	h := g.currentHand(p)
	if len(h.Cards) != 2 {
		return false
	}
	if p.ActiveHand == 1 && !g.opts.Rules.AllowDoubleAfterSplit {
		return false
	}
	if g.lockedAfterSplitAces(p) {
		return false
	}
	if p.Chips < h.Bet {
		return false
	}
	total, _ := h.Total()
	switch g.opts.Rules.DoubleDownRule {
	case DoubleNineToEleven:
		return total >= 9 && total <= 11
	case DoubleTenEleven:
		return total >= 10 && total <= 11
	default:
		return true
	}
}

func (g *Game) canSplit(p *Player) bool {
	if p.ActiveHand != 0 || g.opts.Rules.MaxSplitHands <= 1 {
		return false
	}
	if p.Split.Bet > 0 {
		return false
	}
	h := &p.Main
	if len(h.Cards) != 2 || h.Bet <= 0 || p.Chips < h.Bet {
		return false
	}
	a, b := h.Cards[0], h.Cards[1]
	if g.opts.Rules.SplitRule == SplitSameValue {
		return evaluator.CardValue(a) == evaluator.CardValue(b)
	}
	return a.Rank == b.Rank
}

func (g *Game) canSurrender(p *Player) bool {
	if !g.opts.Rules.AllowLateSurrender {
		return false
	}
	if p.ActiveHand != 0 || p.Split.Bet > 0 {
		return false
	}
	h := &p.Main
	return len(h.Cards) == 2 && !h.Blackjack && !h.Surrendered && h.Bet > 0 && !h.Done
}

// Actions implements game.Game: one flat menu whose entries hide themselves
// outside their phase.
func (g *Game) Actions(playerID string) *game.ActionSet {
	set := game.NewActionSet("blackjack")

	playHidden := func(string) game.Visibility {
		if g.Phase() != PhasePlayers {
			return game.Hidden
		}
		return game.Visible
	}
	hideUnless := func(pred func(*Player) bool) func(string) game.Visibility {
		return func(id string) game.Visibility {
			if g.Phase() != PhasePlayers {
				return game.Hidden
			}
			p := g.PlayerByID(id)
			if p == nil || !pred(p) {
				return game.Hidden
			}
			return game.Visible
		}
	}

	set.Add(&game.Action{
		ID:     "hit",
		Label:  "Hit",
		Hidden: playHidden,
		Enabled: func(id string) game.Reason {
			p, r := g.playGate(id)
			if !r.OK() {
				return r
			}
			if g.lockedAfterSplitAces(p) {
				return ReasonHandComplete
			}
			return game.Allowed
		},
		Handler: g.handleHit,
	})
	set.Add(&game.Action{
		ID:     "stand",
		Label:  "Stand",
		Hidden: playHidden,
		Enabled: func(id string) game.Reason {
			_, r := g.playGate(id)
			return r
		},
		Handler: g.handleStand,
	})
	set.Add(&game.Action{
		ID:     "double_down",
		Label:  "Double Down",
		Hidden: hideUnless(g.canDoubleDown),
		Enabled: func(id string) game.Reason {
			p, r := g.playGate(id)
			if !r.OK() {
				return r
			}
			if !g.canDoubleDown(p) {
				return ReasonCannotDoubleDown
			}
			return game.Allowed
		},
		Handler: g.handleDoubleDown,
	})
	set.Add(&game.Action{
		ID:     "split",
		Label:  "Split",
		Hidden: hideUnless(g.canSplit),
		Enabled: func(id string) game.Reason {
			p, r := g.playGate(id)
			if !r.OK() {
				return r
			}
			if !g.canSplit(p) {
				return ReasonCannotSplit
			}
			return game.Allowed
		},
		Handler: g.handleSplit,
	})
	set.Add(&game.Action{
		ID:     "surrender",
		Label:  "Surrender",
		Hidden: hideUnless(g.canSurrender),
		Enabled: func(id string) game.Reason {
			p, r := g.playGate(id)
			if !r.OK() {
				return r
			}
			if !g.canSurrender(p) {
				return ReasonCannotSurrender
			}
			return game.Allowed
		},
		Handler: g.handleSurrender,
	})

	insuranceHidden := func(pred func(*Player) bool) func(string) game.Visibility {
		return func(id string) game.Visibility {
			if g.Phase() != PhaseInsurance {
				return game.Hidden
			}
			p := g.PlayerByID(id)
			if p == nil || !pred(p) {
				return game.Hidden
			}
			return game.Visible
		}
	}

	set.Add(&game.Action{
		ID:     "take_insurance",
		Label:  "Take Insurance",
		Hidden: insuranceHidden(g.canTakeInsurance),
		Enabled: func(id string) game.Reason {
			p, r := g.insuranceGate(id)
			if !r.OK() {
				return r
			}
			if !g.canTakeInsurance(p) {
				return ReasonInsuranceClosed
			}
			return game.Allowed
		},
		Handler: g.handleTakeInsurance,
	})
	set.Add(&game.Action{
		ID:     "even_money",
		Label:  "Even Money",
		Hidden: insuranceHidden(g.canTakeEvenMoney),
		Enabled: func(id string) game.Reason {
			p, r := g.insuranceGate(id)
			if !r.OK() {
				return r
			}
			if !g.canTakeEvenMoney(p) {
				return ReasonInsuranceClosed
			}
			return game.Allowed
		},
		Handler: g.handleEvenMoney,
	})
	set.Add(&game.Action{
		ID:    "decline_insurance",
		Label: "No Insurance",
		Hidden: func(string) game.Visibility {
			if g.Phase() != PhaseInsurance {
				return game.Hidden
			}
			return game.Visible
		},
		Enabled: func(id string) game.Reason {
			_, r := g.insuranceGate(id)
			return r
		},
		Handler: g.handleDeclineInsurance,
	})

	checkHidden := func(id string) game.Visibility {
		if _, r := g.checkGate(id); !r.OK() {
			return game.Hidden
		}
		return game.Visible
	}
	alwaysHidden := func(string) game.Visibility { return game.Hidden }
	checkEnabled := func(id string) game.Reason {
		_, r := g.checkGate(id)
		return r
	}

	set.Add(&game.Action{
		ID:      "table_status",
		Label:   "Table status",
		Hidden:  checkHidden,
		Enabled: checkEnabled,
		Handler: g.handleTableStatus,
	})
	set.Add(&game.Action{
		ID:      "read_rules",
		Label:   "Read table rules",
		Hidden:  checkHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadRules,
	})
	set.Add(&game.Action{
		ID:      "read_hand",
		Label:   "Read your hand",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadHand,
	})
	set.Add(&game.Action{
		ID:      "read_dealer",
		Label:   "Read dealer cards",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadDealer,
	})
	set.Add(&game.Action{
		ID:      "check_turn_timer",
		Label:   "Check turn timer",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleCheckTurnTimer,
	})

	return set
}

// --- player-phase handlers -----------------------------------------------

func (g *Game) handleHit(playerID, _ string) {
	p, r := g.playGate(playerID)
	if !r.OK() {
		return
	}
	h := g.currentHand(p)
	card, ok := g.draw()
	if !ok {
		return
	}
	h.Cards = append(h.Cards, card)
	total, soft := h.Total()

	if g.opts.CardsFaceUp {
		g.Env().BroadcastPersonal(p.ID,
			fmt.Sprintf("You draw %s (%s).", card, totalText(total, soft)),
			fmt.Sprintf("%s draws %s (%s).", p.Name, card, totalText(total, soft)))
	} else {
		g.Env().Tell(p.ID, "You draw %s (%s).", card, totalText(total, soft))
		g.Env().BroadcastExcept(p.ID, fmt.Sprintf("%s draws a card.", p.Name))
	}

	switch {
	case total > 21:
		h.Busted = true
		h.Done = true
		g.Env().BroadcastPersonal(p.ID, "You bust!", fmt.Sprintf("%s busts!", p.Name))
		g.advanceToNextPlayer()
	case total == 21:
		h.Done = true
		h.Stood = true
		g.advanceToNextPlayer()
	default:
		if p.IsBot {
			g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 20, 35))
		}
		g.StartTurnTimer()
	}
}

func (g *Game) handleStand(playerID, _ string) {
	p, r := g.playGate(playerID)
	if !r.OK() {
		return
	}
	h := g.currentHand(p)
	h.Done = true
	h.Stood = true
	total, soft := h.Total()
	g.Env().BroadcastPersonal(p.ID,
		fmt.Sprintf("You stand on %s.", totalText(total, soft)),
		fmt.Sprintf("%s stands on %s.", p.Name, totalText(total, soft)))
	g.advanceToNextPlayer()
}

func (g *Game) handleDoubleDown(playerID, _ string) {
	p, r := g.playGate(playerID)
	if !r.OK() || !g.canDoubleDown(p) {
		return
	}
	h := g.currentHand(p)
	p.Chips -= h.Bet
	h.Bet *= 2
	h.Doubled = true

	card, ok := g.draw()
	if !ok {
		return
	}
	h.Cards = append(h.Cards, card)
	total, soft := h.Total()
	g.Env().BroadcastPersonal(p.ID,
		fmt.Sprintf("You double down and draw %s (%s).", card, totalText(total, soft)),
		fmt.Sprintf("%s doubles down and draws %s (%s).", p.Name, card, totalText(total, soft)))

	if total > 21 {
		h.Busted = true
		g.Env().BroadcastPersonal(p.ID, "You bust!", fmt.Sprintf("%s busts!", p.Name))
	} else {
		h.Stood = true
	}
	h.Done = true
	g.advanceToNextPlayer()
}

func (g *Game) handleSplit(playerID, _ string) {
	p, r := g.playGate(playerID)
	if !r.OK() || !g.canSplit(p) {
		return
	}

	second := p.Main.Cards[1]
	p.Main.Cards = p.Main.Cards[:1]
	splitAces := p.Main.Cards[0].Rank == deck.Ace && second.Rank == deck.Ace

	p.Split = Hand{
		Cards:         []deck.Card{second},
		Bet:           p.Main.Bet,
		FromSplitAces: splitAces,
	}
	p.Chips -= p.Main.Bet
	p.Main.Done = false
	p.Main.Stood = false
	p.Main.Busted = false
	p.Main.Blackjack = false
	p.Main.FromSplitAces = splitAces

	g.Env().BroadcastPersonal(p.ID,
		fmt.Sprintf("You split for another %d chips.", p.Main.Bet),
		fmt.Sprintf("%s splits for another %d chips.", p.Name, p.Main.Bet))

	for _, h := range []*Hand{&p.Main, &p.Split} {
		if card, ok := g.draw(); ok {
			h.Cards = append(h.Cards, card)
		}
	}

	if splitAces {
		if g.opts.Rules.SplitAcesCountAsBlackjack {
			for _, h := range []*Hand{&p.Main, &p.Split} {
				if total, _ := h.Total(); len(h.Cards) == 2 && total == 21 {
					h.Blackjack = true
					h.Done = true
					h.Stood = true
				}
			}
		}
		if g.opts.Rules.SplitAcesOneCardOnly {
			for _, h := range []*Hand{&p.Main, &p.Split} {
				h.Done = true
				h.Stood = true
			}
			g.Env().BroadcastPersonal(p.ID,
				"Split aces take one card each.",
				fmt.Sprintf("%s's split aces take one card each.", p.Name))
			g.advanceToNextPlayer()
			return
		}
	}

	if total, _ := p.Main.Total(); total == 21 && !p.Main.Done {
		p.Main.Done = true
		p.Main.Stood = true
	}
	g.startTurn()
}

func (g *Game) handleSurrender(playerID, _ string) {
	p, r := g.playGate(playerID)
	if !r.OK() || !g.canSurrender(p) {
		return
	}
	h := &p.Main
	refund := h.Bet / 2
	p.Chips += refund
	h.Surrendered = true
	h.Done = true
	h.Stood = true
	g.Env().BroadcastPersonal(p.ID,
		fmt.Sprintf("You surrender and keep %d chips.", refund),
		fmt.Sprintf("%s surrenders.", p.Name))
	g.advanceToNextPlayer()
}

// --- insurance handlers --------------------------------------------------

func (g *Game) handleTakeInsurance(playerID, _ string) {
	p, r := g.insuranceGate(playerID)
	if !r.OK() || !g.canTakeInsurance(p) {
		return
	}
	amount := g.insuranceAmount(p)
	p.Chips -= amount
	p.InsuranceBet = amount
	p.InsuranceDone = true
	g.Env().BroadcastPersonal(p.ID,
		fmt.Sprintf("You take insurance for %d chips.", amount),
		fmt.Sprintf("%s takes insurance.", p.Name))
	g.advanceInsuranceTurn()
}

func (g *Game) handleEvenMoney(playerID, _ string) {
	p, r := g.insuranceGate(playerID)
	if !r.OK() || !g.canTakeEvenMoney(p) {
		return
	}
	p.TookEvenMoney = true
	p.InsuranceDone = true
	g.Env().BroadcastPersonal(p.ID,
		"You take even money.",
		fmt.Sprintf("%s takes even money.", p.Name))
	g.advanceInsuranceTurn()
}

func (g *Game) handleDeclineInsurance(playerID, _ string) {
	p, r := g.insuranceGate(playerID)
	if !r.OK() {
		return
	}
	p.InsuranceDone = true
	g.Env().BroadcastPersonal(p.ID,
		"You decline insurance.",
		fmt.Sprintf("%s declines insurance.", p.Name))
	g.advanceInsuranceTurn()
}

// --- readback handlers ---------------------------------------------------

func (g *Game) handleReadHand(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}

	if p.Split.Bet > 0 && len(p.Split.Cards) > 0 {
		total1, soft1 := p.Main.Total()
		total2, soft2 := p.Split.Total()
		g.Env().Tell(p.ID, "Hand 1: %s (%s). Hand 2: %s (%s). Playing hand %d.",
			handText(p.Main.Cards), totalText(total1, soft1),
			handText(p.Split.Cards), totalText(total2, soft2),
			p.ActiveHand+1)
		return
	}

	if len(p.Main.Cards) == 0 {
		g.Env().Tell(p.ID, "You have no cards.")
		return
	}
	total, soft := p.Main.Total()
	g.Env().Tell(p.ID, "You have %s (%s).", handText(p.Main.Cards), totalText(total, soft))
}

func (g *Game) handleReadDealer(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}

	if len(g.dealerHand) == 0 {
		g.Env().Tell(p.ID, "The dealer has no cards yet.")
		return
	}
	if !g.dealerHoleRevealed {
		g.Env().Tell(p.ID, "Dealer shows %s. The hole card is hidden.", g.dealerHand[0])
		return
	}
	total, soft := evaluator.HandValue(g.dealerHand)
	g.Env().Tell(p.ID, "Dealer has %s (%s).", handText(g.dealerHand), totalText(total, soft))
}

func (g *Game) handleTableStatus(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}

	g.Env().Tell(p.ID, "%s", g.rulesText())
	for _, other := range g.activePlayers() {
		canView := g.opts.CardsFaceUp || other.ID == p.ID
		switch {
		case canView && other.Split.Bet > 0 && len(other.Split.Cards) > 0:
			total1, soft1 := other.Main.Total()
			total2, soft2 := other.Split.Total()
			g.Env().Tell(p.ID, "%s: %d chips, bet %d (%s) and bet %d (%s).",
				other.Name, other.Chips,
				other.Main.Bet, totalText(total1, soft1),
				other.Split.Bet, totalText(total2, soft2))
		case canView && g.Phase() == PhasePlayers && other.Main.Bet > 0 && len(other.Main.Cards) > 0:
			total, soft := other.Main.Total()
			g.Env().Tell(p.ID, "%s: %d chips, bet %d, total %s.",
				other.Name, other.Chips, other.Main.Bet, totalText(total, soft))
		case other.Main.Bet+other.Split.Bet > 0:
			g.Env().Tell(p.ID, "%s: %d chips, bet %d.",
				other.Name, other.Chips, other.Main.Bet+other.Split.Bet)
		default:
			g.Env().Tell(p.ID, "%s: %d chips.", other.Name, other.Chips)
		}
	}

	if len(g.dealerHand) > 0 {
		if g.dealerHoleRevealed {
			total, soft := evaluator.HandValue(g.dealerHand)
			g.Env().Tell(p.ID, "Dealer: %s (%s).", handText(g.dealerHand), totalText(total, soft))
		} else {
			g.Env().Tell(p.ID, "Dealer shows %s.", g.dealerHand[0])
		}
	}
}

func (g *Game) handleReadRules(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	g.Env().Tell(p.ID, "%s", g.rulesText())
}

func (g *Game) handleCheckTurnTimer(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	remaining := g.TurnTimerRemaining()
	if remaining <= 0 {
		g.Env().Tell(p.ID, "The turn timer is off.")
		return
	}
	g.Env().Tell(p.ID, "%d seconds remain on the turn timer.", remaining)
}

func yesNo(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}

func payoutText(p Payout) string {
	switch p {
	case PayoutSixToFive:
		return "6 to 5"
	case PayoutEvenMoney:
		return "even money"
	default:
		return "3 to 2"
	}
}

func doubleRuleText(r DoubleRule) string {
	switch r {
	case DoubleNineToEleven:
		return "9 to 11 only"
	case DoubleTenEleven:
		return "10 to 11 only"
	default:
		return "any two cards"
	}
}

func splitRuleText(r SplitRule) string {
	if r == SplitSameValue {
		return "same value"
	}
	return "same rank"
}

// rulesText renders the active house rules in one readable line.
func (g *Game) rulesText() string {
	rules := g.opts.Rules
	return fmt.Sprintf("Rules profile %s. Bets %d to %d, base bet %d. "+
		"Dealer hits soft 17: %s. Dealer peeks: %s. Insurance: %s. Surrender: %s. "+
		"Blackjack pays %s. Double on %s, after split: %s. Split on %s, up to %d hands. "+
		"Split aces take one card: %s, count as blackjack: %s. Cards face up: %s.",
		g.opts.RulesProfile, g.opts.TableMinBet, g.opts.TableMaxBet, g.opts.BaseBet,
		yesNo(rules.DealerHitsSoft17), yesNo(rules.DealerPeeksBlackjack),
		yesNo(rules.AllowInsurance), yesNo(rules.AllowLateSurrender),
		payoutText(rules.BlackjackPayout), doubleRuleText(rules.DoubleDownRule),
		yesNo(rules.AllowDoubleAfterSplit), splitRuleText(rules.SplitRule),
		rules.MaxSplitHands, yesNo(rules.SplitAcesOneCardOnly),
		yesNo(rules.SplitAcesCountAsBlackjack), yesNo(g.opts.CardsFaceUp))
}
