package blackjack

import "github.com/lox/tablegames/internal/evaluator"

// BotThink implements basic-strategy play, loosened to decline insurance and
// surrender only the textbook hands.
func (g *Game) BotThink(playerID string) string {
	p := g.PlayerByID(playerID)
	if p == nil {
		return ""
	}

	if g.Phase() == PhaseInsurance {
		if !g.needsInsuranceDecision(p) {
			return ""
		}
		if g.canTakeEvenMoney(p) {
			return "even_money"
		}
		return "decline_insurance"
	}

	if g.Phase() != PhasePlayers || g.CurrentPlayerID() != playerID {
		return ""
	}
	h := g.currentHand(p)
	if h.Done {
		return ""
	}

	total, soft := h.Total()
	if total >= 21 {
		return "stand"
	}

	dealerValue := 10
	if len(g.dealerHand) > 0 {
		dealerValue = evaluator.CardValue(g.dealerHand[0])
	}

	if g.canSurrender(p) && !soft {
		if total == 16 && dealerValue >= 9 {
			return "surrender"
		}
		if total == 15 && dealerValue == 10 {
			return "surrender"
		}
	}

	if g.canSplit(p) {
		pairValue := evaluator.CardValue(h.Cards[0])
		if pairValue == 8 || pairValue == 11 {
			return "split"
		}
		if pairValue == 9 && dealerValue != 7 && dealerValue != 10 && dealerValue != 11 {
			return "split"
		}
	}

	if g.canDoubleDown(p) {
		switch {
		case total == 11:
			return "double_down"
		case total == 10 && dealerValue <= 9:
			return "double_down"
		case total == 9 && dealerValue >= 3 && dealerValue <= 6:
			return "double_down"
		}
	}

	if total <= 11 {
		return "hit"
	}
	if soft && total <= 17 {
		return "hit"
	}
	if !soft && total >= 17 {
		return "stand"
	}
	if dealerValue >= 7 && total <= 16 {
		return "hit"
	}
	return "stand"
}
