package twentyone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/game"
)

// ReasonNotAvailable gates turn actions outside the turns phase and
// modifier plays that are locked or impossible.
const ReasonNotAvailable game.Reason = "action-not-available"

func (g *Game) turnGate(playerID string) (*Player, game.Reason) {
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
	if g.Phase() != PhaseTurns {
		return nil, ReasonNotAvailable
	}
	if g.CurrentPlayerID() != playerID {
		return nil, game.ReasonNotYourTurn
	}
	return p, game.Allowed
}

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

func (g *Game) hasPlayableModifier(p *Player) bool {
	for _, m := range p.Modifiers {
		if g.isModifierPlayable(p, m) {
			return true
		}
	}
	return false
}

// modifierOptions renders the held modifiers as "index:Label - help" menu
// entries; the index prefix survives the round trip back through dispatch.
func (g *Game) modifierOptions(playerID string) []string {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil
	}
	options := make([]string, 0, len(p.Modifiers))
	for i, m := range p.Modifiers {
		if help := ModifierHelp(m); help != "" {
			options = append(options, fmt.Sprintf("%d:%s - %s", i, ModifierLabel(m), help))
		} else {
			options = append(options, fmt.Sprintf("%d:%s", i, ModifierLabel(m)))
		}
	}
	return options
}

func parseModifierOption(option string) (int, bool) {
	prefix, _, found := strings.Cut(option, ":")
	if !found {
		return 0, false
	}
	idx, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Actions implements game.Game.
func (g *Game) Actions(playerID string) *game.ActionSet {
	set := game.NewActionSet("twentyone")

	turnHidden := func(id string) game.Visibility {
		p := g.PlayerByID(id)
		if p == nil || p.IsSpectator || g.Phase() != PhaseTurns {
			return game.Hidden
		}
		if g.CurrentPlayerID() != id {
			return game.Hidden
		}
		return game.Visible
	}
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
		ID:     "hit",
		Label:  "Hit",
		Hidden: turnHidden,
		Enabled: func(id string) game.Reason {
			_, r := g.turnGate(id)
			return r
		},
		Handler: g.handleHit,
	})
	set.Add(&game.Action{
		ID:     "stand",
		Label:  "Stand",
		Hidden: turnHidden,
		Enabled: func(id string) game.Reason {
			_, r := g.turnGate(id)
			return r
		},
		Handler: g.handleStand,
	})
	set.Add(&game.Action{
		ID:    "play_modifier",
		Label: "Play Modifier",
		Hidden: func(id string) game.Visibility {
			if turnHidden(id) == game.Hidden {
				return game.Hidden
			}
			p := g.PlayerByID(id)
			if p == nil || len(p.Modifiers) == 0 || g.modifiersLockedFor(p) {
				return game.Hidden
			}
			return game.Visible
		},
		Enabled: func(id string) game.Reason {
			p, r := g.turnGate(id)
			if !r.OK() {
				return r
			}
			if g.modifiersLockedFor(p) || len(p.Modifiers) == 0 {
				return ReasonNotAvailable
			}
			return game.Allowed
		},
		Handler: g.handlePlayModifier,
		Input: &game.InputRequest{
			Prompt:    "Select a modifier to play",
			Options:   g.modifierOptions,
			BotSelect: g.botSelectModifier,
		},
	})
	set.Add(&game.Action{
		ID:      "check_21_status",
		Label:   "Check 21 status",
		Hidden:  checkHidden,
		Enabled: checkEnabled,
		Handler: g.handleCheckStatus,
	})
	set.Add(&game.Action{
		ID:      "modifier_guide",
		Label:   "Modifier Guide",
		Hidden:  checkHidden,
		Enabled: checkEnabled,
		Handler: g.handleModifierGuide,
	})
	set.Add(&game.Action{
		ID:      "read_21_opponent_face_up",
		Label:   "Read opponent face-up cards",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadOpponentFaceUp,
	})
	set.Add(&game.Action{
		ID:      "read_21_hand",
		Label:   "Read current hand",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadHand,
	})
	set.Add(&game.Action{
		ID:      "read_21_bets",
		Label:   "Read current bets",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadBets,
	})
	set.Add(&game.Action{
		ID:      "read_21_active_effects",
		Label:   "Read active modifier effects",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadActiveEffects,
	})

	return set
}

// --- turn handlers -------------------------------------------------------

func (g *Game) handleHit(playerID, _ string) {
	p, r := g.turnGate(playerID)
	if !r.OK() {
		return
	}

	card, ok := g.drawCard()
	if !ok {
		g.Env().Say("Deck is empty. You can still choose to stay.")
		g.rejoltCurrent()
		return
	}

	g.clearPendingStands()
	g.addCardToHand(p, card, fmt.Sprintf("%s draws", p.Name), true)
	p.StandPending = false

	chance := max(0, min(100, g.opts.DrawModifierChancePercent))
	if g.Rng().IntN(100)+1 <= chance {
		g.giveRandomModifiers(p, 1, true)
	}

	// hitting keeps the turn
	g.rejoltCurrent()
}

func (g *Game) handleStand(playerID, _ string) {
	p, r := g.turnGate(playerID)
	if !r.OK() {
		return
	}

	p.StandPending = true
	g.Env().Say("%s chooses to stay.", p.Name)

	if g.bothPlayersStanding() {
		g.settleRound()
		return
	}
	g.advanceTurnAfterAction()
}

func (g *Game) handlePlayModifier(playerID, input string) {
	p, r := g.turnGate(playerID)
	if !r.OK() {
		return
	}
	if g.modifiersLockedFor(p) || len(p.Modifiers) == 0 {
		return
	}

	idx, ok := parseModifierOption(input)
	if !ok || idx < 0 || idx >= len(p.Modifiers) {
		return
	}

	modifier := p.Modifiers[idx]
	if !g.isModifierPlayable(p, modifier) {
		g.rejoltCurrent()
		return
	}
	p.Modifiers = append(p.Modifiers[:idx], p.Modifiers[idx+1:]...)

	g.clearPendingStands()
	g.Env().Say("%s plays %s.", p.Name, ModifierLabel(modifier))
	g.resolveModifier(p, modifier)
	g.triggerSalvageRewards()

	// playing a modifier keeps the turn
	g.rejoltCurrent()
}

// --- readback handlers ---------------------------------------------------

func (g *Game) handleCheckStatus(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}

	g.Env().Tell(p.ID, "Target %d. HP %d. Bet %d. Hand [%s] total %d. Modifiers in hand: %s. Table effects: %s.",
		g.currentTarget(), p.HP, g.currentBet(p),
		handRanksText(p), p.HandTotal(),
		modifierListText(p.Modifiers), modifierListText(p.TableModifiers))

	opponent := g.opponentOf(p)
	if opponent == nil {
		return
	}
	shown := opponent.VisibleCards()
	shownTotal := 0
	for _, c := range shown {
		shownTotal += int(c.Rank)
	}
	g.Env().Tell(p.ID, "%s: HP %d, bet %d, shown cards [%s] shown total %d, hole card hidden.",
		opponent.Name, opponent.HP, g.currentBet(opponent), cardRanksText(shown), shownTotal)
}

func (g *Game) handleModifierGuide(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	g.Env().Tell(p.ID, "Modifier guide.")
	for _, m := range ModifierPool {
		g.Env().Tell(p.ID, "%s: %s", ModifierLabel(m), ModifierHelp(m))
	}
	g.Env().Tell(p.ID, "Table effect limit is five. Target modifiers replace older target modifiers.")
}

func (g *Game) handleReadOpponentFaceUp(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	opponent := g.opponentOf(p)
	if opponent == nil {
		g.Env().Tell(p.ID, "No opponent available.")
		return
	}
	shown := opponent.VisibleCards()
	shownTotal := 0
	for _, c := range shown {
		shownTotal += int(c.Rank)
	}
	g.Env().Tell(p.ID, "%s face-up cards [%s] total %d. Hole card is hidden.",
		opponent.Name, cardRanksText(shown), shownTotal)
}

func (g *Game) handleReadHand(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	g.Env().Tell(p.ID, "Your hand [%s] total %d.", handRanksText(p), p.HandTotal())
}

func (g *Game) handleReadBets(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	opponent := g.opponentOf(p)
	if opponent == nil {
		g.Env().Tell(p.ID, "Current bet %d.", g.currentBet(p))
		return
	}
	g.Env().Tell(p.ID, "Current bets. %s: %d. %s: %d.",
		p.Name, g.currentBet(p), opponent.Name, g.currentBet(opponent))
}

func (g *Game) handleReadActiveEffects(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	opponent := g.opponentOf(p)
	if opponent == nil {
		g.Env().Tell(p.ID, "Active effects. %s: %s.", p.Name, modifierListText(p.TableModifiers))
		return
	}
	g.Env().Tell(p.ID, "Active effects. %s: %s. %s: %s.",
		p.Name, modifierListText(p.TableModifiers),
		opponent.Name, modifierListText(opponent.TableModifiers))
}

func handRanksText(p *Player) string {
	return cardRanksText(p.Hand)
}

func cardRanksText(cards []deck.Card) string {
	if len(cards) == 0 {
		return "none"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = strconv.Itoa(int(c.Rank))
	}
	return strings.Join(parts, ", ")
}
