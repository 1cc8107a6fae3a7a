package party

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/tablegames/internal/game"
)

// Rejection tokens beyond the engine's shared set.
const (
	ReasonAlreadySubmitted game.Reason = "party-already-submitted"
	ReasonWrongCardCount   game.Reason = "party-wrong-card-count"
	ReasonNothingSelected  game.Reason = "party-select-cards-first"
)

// submitterGate admits non-judge players during the submitting phase who
// have not yet locked in their answer. Judges are spectators of this phase.
func (g *Game) submitterGate(playerID string) (*Player, game.Reason) {
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
	if g.isJudge(playerID) {
		return nil, game.ReasonSpectator
	}
	if p.HasSubmitted() {
		return nil, ReasonAlreadySubmitted
	}
	if g.Phase() != PhaseSubmitting {
		return nil, game.ReasonNotPlaying
	}
	return p, game.Allowed
}

func (g *Game) judgeGate(playerID string) (*Player, game.Reason) {
	if g.Status() != game.StatusPlaying {
		return nil, game.ReasonNotPlaying
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, game.ReasonNotPlaying
	}
	if !g.isJudge(playerID) {
		return nil, game.ReasonSpectator
	}
	if g.Phase() != PhaseJudging {
		return nil, game.ReasonNotPlaying
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

// cardOptions renders the player's hand as "index:text" menu entries with a
// marker on currently selected cards.
func (g *Game) cardOptions(playerID string) []string {
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil
	}
	options := make([]string, 0, len(p.Hand))
	for i, card := range p.Hand {
		if containsInt(p.Selected, i) {
			options = append(options, fmt.Sprintf("%d:%s (selected)", i, card.Text))
		} else {
			options = append(options, fmt.Sprintf("%d:%s", i, card.Text))
		}
	}
	return options
}

// submissionOptions renders each shuffled submission with the prompt's
// blanks filled in, in presentation order.
func (g *Game) submissionOptions(playerID string) []string {
	if !g.isJudge(playerID) {
		return nil
	}
	promptText := ""
	if g.currentPrompt != nil {
		promptText = g.currentPrompt.Text
	}
	options := make([]string, 0, len(g.submissionOrder))
	for i, subIdx := range g.submissionOrder {
		if subIdx >= len(g.submissions) {
			continue
		}
		filled := fillBlanks(promptText, g.submissions[subIdx].Cards)
		options = append(options, fmt.Sprintf("%d:%s", i, filled))
	}
	return options
}

func parseIndexOption(option string) (int, bool) {
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

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Actions implements game.Game.
func (g *Game) Actions(playerID string) *game.ActionSet {
	set := game.NewActionSet("party")

	submitterHidden := func(id string) game.Visibility {
		if _, r := g.submitterGate(id); !r.OK() {
			return game.Hidden
		}
		return game.Visible
	}
	judgeHidden := func(id string) game.Visibility {
		if _, r := g.judgeGate(id); !r.OK() {
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
		ID:     "toggle_card",
		Label:  "Select a card",
		Hidden: submitterHidden,
		Enabled: func(id string) game.Reason {
			p, r := g.submitterGate(id)
			if !r.OK() {
				return r
			}
			if len(p.Hand) == 0 {
				return game.ReasonNotPlaying
			}
			return game.Allowed
		},
		Handler: g.handleToggleCard,
		Input: &game.InputRequest{
			Prompt:    "Choose a card to select or deselect",
			Options:   g.cardOptions,
			BotSelect: g.botSelectCard,
		},
	})
	set.Add(&game.Action{
		ID:     "submit_cards",
		Label:  "Submit cards",
		Hidden: submitterHidden,
		LabelFunc: func(id string) string {
			p := g.PlayerByID(id)
			if p == nil {
				return "Submit cards"
			}
			return fmt.Sprintf("Submit cards (%d of %d selected)", len(p.Selected), g.requiredPicks())
		},
		Enabled: func(id string) game.Reason {
			p, r := g.submitterGate(id)
			if !r.OK() {
				return r
			}
			if len(p.Selected) != g.requiredPicks() {
				return ReasonWrongCardCount
			}
			return game.Allowed
		},
		Handler: g.handleSubmitCards,
	})
	set.Add(&game.Action{
		ID:     "judge_pick",
		Label:  "Pick the winning answer",
		Hidden: judgeHidden,
		Enabled: func(id string) game.Reason {
			_, r := g.judgeGate(id)
			if !r.OK() {
				return r
			}
			if len(g.submissionOrder) == 0 {
				return game.ReasonNotPlaying
			}
			return game.Allowed
		},
		Handler: g.handleJudgePick,
		Input: &game.InputRequest{
			Prompt:    "Choose the best answer",
			Options:   g.submissionOptions,
			BotSelect: g.botSelectSubmission,
		},
	})
	set.Add(&game.Action{
		ID:      "read_party_prompt",
		Label:   "Read the prompt",
		Hidden:  checkHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadPrompt,
	})
	set.Add(&game.Action{
		ID:      "read_party_hand",
		Label:   "Read your hand",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadHand,
	})
	set.Add(&game.Action{
		ID:      "read_party_submission",
		Label:   "Read your submission",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadSubmission,
	})
	set.Add(&game.Action{
		ID:      "read_party_scores",
		Label:   "Read the scores",
		Hidden:  checkHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadScores,
	})
	set.Add(&game.Action{
		ID:      "read_party_judges",
		Label:   "Who is judging",
		Hidden:  alwaysHidden,
		Enabled: checkEnabled,
		Handler: g.handleReadJudges,
	})

	return set
}

// --- submission handlers --------------------------------------------------

func (g *Game) handleToggleCard(playerID, input string) {
	p, r := g.submitterGate(playerID)
	if !r.OK() {
		return
	}
	idx, ok := parseIndexOption(input)
	if !ok || idx < 0 || idx >= len(p.Hand) {
		return
	}

	if containsInt(p.Selected, idx) {
		out := p.Selected[:0]
		for _, s := range p.Selected {
			if s != idx {
				out = append(out, s)
			}
		}
		p.Selected = out
		g.Env().Tell(playerID, "Deselected: %s", p.Hand[idx].Text)
	} else {
		// Selecting past the pick count drops the oldest selection.
		if len(p.Selected) >= g.requiredPicks() && len(p.Selected) > 0 {
			p.Selected = p.Selected[1:]
		}
		p.Selected = append(p.Selected, idx)
		g.Env().Tell(playerID, "Selected: %s", p.Hand[idx].Text)
	}

	if p.IsBot && !p.HasSubmitted() {
		g.rejoltSubmitter(p)
	}
}

func (g *Game) handleSubmitCards(playerID, _ string) {
	p, r := g.submitterGate(playerID)
	if !r.OK() {
		return
	}

	required := g.requiredPicks()
	if len(p.Selected) != required {
		g.Env().Tell(playerID, "Select exactly %d cards before submitting.", required)
		return
	}

	// Texts travel in the order the cards were picked; blanks fill in order.
	texts := make([]string, 0, required)
	for _, idx := range p.Selected {
		if idx < len(p.Hand) {
			texts = append(texts, p.Hand[idx].Text)
		}
	}
	p.Submitted = texts

	removal := append([]int(nil), p.Selected...)
	sort.Sort(sort.Reverse(sort.IntSlice(removal)))
	for _, idx := range removal {
		if idx < len(p.Hand) {
			g.answerDiscard = append(g.answerDiscard, p.Hand[idx])
			p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
		}
	}
	p.Selected = nil

	g.Env().Tell(playerID, "Your answer is in.")

	nonJudges := g.nonJudges()
	submitted := 0
	for _, nj := range nonJudges {
		if nj.HasSubmitted() {
			submitted++
		}
	}
	g.Env().Say("%d of %d answers submitted.", submitted, len(nonJudges))

	if submitted >= len(nonJudges) {
		g.startJudging()
	}
}

func (g *Game) handleJudgePick(playerID, input string) {
	_, r := g.judgeGate(playerID)
	if !r.OK() {
		return
	}
	idx, ok := parseIndexOption(input)
	if !ok || idx < 0 || idx >= len(g.submissionOrder) {
		return
	}
	actual := g.submissionOrder[idx]
	if actual >= len(g.submissions) {
		return
	}
	sub := g.submissions[actual]
	winner := g.PlayerByID(sub.PlayerID)
	if winner == nil {
		return
	}
	g.awardRound(winner, sub)
}

// --- readbacks ------------------------------------------------------------

func (g *Game) handleReadPrompt(playerID, _ string) {
	if _, r := g.checkGate(playerID); !r.OK() {
		return
	}
	if g.currentPrompt == nil {
		g.Env().Tell(playerID, "There is no prompt right now.")
		return
	}
	g.Env().Tell(playerID, "The prompt: %s", spokenPrompt(g.currentPrompt.Text))
	if g.currentPrompt.Pick > 1 {
		g.Env().Tell(playerID, "Pick %d cards.", g.currentPrompt.Pick)
	}
}

func (g *Game) handleReadHand(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	if len(p.Hand) == 0 {
		g.Env().Tell(playerID, "Your hand is empty.")
		return
	}
	lines := make([]string, len(p.Hand))
	for i, card := range p.Hand {
		marker := ""
		if containsInt(p.Selected, i) {
			marker = " (selected)"
		}
		lines[i] = fmt.Sprintf("%d. %s%s", i+1, card.Text, marker)
	}
	g.Env().Tell(playerID, "Your hand: %s", strings.Join(lines, " "))
}

func (g *Game) handleReadSubmission(playerID, _ string) {
	p, r := g.checkGate(playerID)
	if !r.OK() {
		return
	}
	promptText := ""
	if g.currentPrompt != nil {
		promptText = g.currentPrompt.Text
	}
	switch {
	case p.HasSubmitted():
		g.Env().Tell(playerID, "Your submission: %s", fillBlanks(promptText, p.Submitted))
	case len(p.Selected) > 0:
		texts := make([]string, 0, len(p.Selected))
		for _, idx := range p.Selected {
			if idx < len(p.Hand) {
				texts = append(texts, p.Hand[idx].Text)
			}
		}
		g.Env().Tell(playerID, "Your selection so far: %s", fillBlanks(promptText, texts))
	default:
		g.Env().Tell(playerID, "Select some cards first.")
	}
}

func (g *Game) handleReadScores(playerID, _ string) {
	if _, r := g.checkGate(playerID); !r.OK() {
		return
	}
	sorted := append([]*Player(nil), g.activePlayers()...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = fmt.Sprintf("%s: %d", p.Name, p.Score)
	}
	g.Env().Tell(playerID, "%s.", strings.Join(parts, ". "))
}

func (g *Game) handleReadJudges(playerID, _ string) {
	if _, r := g.checkGate(playerID); !r.OK() {
		return
	}
	js := g.judges()
	if len(js) == 0 {
		g.Env().Tell(playerID, "Nobody is judging right now.")
		return
	}
	names := make([]string, len(js))
	for i, j := range js {
		names[i] = j.Name
	}
	g.Env().Tell(playerID, "Judging: %s.", strings.Join(names, ", "))
}
