package party

import (
	"strings"

	"github.com/lox/tablegames/internal/randutil"
)

// BotThink implements game.Game. Submitter bots toggle one random card per
// decision until the pick count is met, then submit; judge bots pick a
// random submission. The per-decision jolt delay keeps them human-paced.
func (g *Game) BotThink(playerID string) string {
	p := g.PlayerByID(playerID)
	if p == nil || p.IsSpectator {
		return ""
	}

	switch g.Phase() {
	case PhaseSubmitting:
		if g.isJudge(playerID) || p.HasSubmitted() {
			return ""
		}
		required := g.requiredPicks()
		if len(p.Selected) < required {
			for i := range p.Hand {
				if !containsInt(p.Selected, i) {
					return "toggle_card"
				}
			}
			return ""
		}
		if len(p.Selected) == required {
			return "submit_cards"
		}
	case PhaseJudging:
		if g.isJudge(playerID) && len(g.submissionOrder) > 0 {
			return "judge_pick"
		}
	}
	return ""
}

// botSelectCard picks a random not-yet-selected card. The menu lists the
// hand in order, so hand index and option index coincide.
func (g *Game) botSelectCard(playerID string, options []string) int {
	p := g.PlayerByID(playerID)
	if p == nil || len(options) == 0 {
		return -1
	}
	var available []int
	for i := range options {
		if strings.HasSuffix(options[i], "(selected)") {
			continue
		}
		available = append(available, i)
	}
	if len(available) == 0 {
		return -1
	}
	return available[g.Rng().IntN(len(available))]
}

// botSelectSubmission picks uniformly; bot judges have no sense of humor.
func (g *Game) botSelectSubmission(_ string, options []string) int {
	if len(options) == 0 {
		return -1
	}
	return g.Rng().IntN(len(options))
}

// rejoltSubmitter schedules the bot's next toggle-or-submit decision.
func (g *Game) rejoltSubmitter(p *Player) {
	g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 10, 20))
}
