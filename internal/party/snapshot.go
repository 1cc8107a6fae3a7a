package party

import (
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

type gameState struct {
	Options         Options      `json:"options"`
	Players         []*Player    `json:"players"`
	AnswerDeck      []AnswerCard `json:"answer_deck"`
	AnswerDiscard   []AnswerCard `json:"answer_discard"`
	PromptDeck      []PromptCard `json:"prompt_deck"`
	PromptDiscard   []PromptCard `json:"prompt_discard"`
	CurrentPrompt   *PromptCard  `json:"current_prompt"`
	JudgeIndices    []int        `json:"judge_indices"`
	LastWinnerIndex int          `json:"last_winner_index"`
	Submissions     []Submission `json:"submissions"`
	SubmissionOrder []int        `json:"submission_order"`
	RoundNumber     int          `json:"round_number"`
	RoundEndTicks   int          `json:"round_end_ticks"`
	NextCardID      int          `json:"next_card_id"`
}

// Snapshot implements game.Game.
func (g *Game) Snapshot() ([]byte, error) {
	state := gameState{
		Options:         g.opts,
		Players:         g.players,
		AnswerDeck:      g.answerDeck,
		AnswerDiscard:   g.answerDiscard,
		PromptDeck:      g.promptDeck,
		PromptDiscard:   g.promptDiscard,
		CurrentPrompt:   g.currentPrompt,
		JudgeIndices:    g.judgeIndices,
		LastWinnerIndex: g.lastWinnerIndex,
		Submissions:     g.submissions,
		SubmissionOrder: g.submissionOrder,
		RoundNumber:     g.roundNumber,
		RoundEndTicks:   g.roundEndTicks,
		NextCardID:      g.nextCardID,
	}
	return g.MarshalSnapshot(state)
}

// Restore implements game.Game. Packs are not serialized; the restored
// session keeps drawing from the registry it was constructed with.
func (g *Game) Restore(data []byte) error {
	var state gameState
	if err := g.UnmarshalSnapshot(data, &state); err != nil {
		return err
	}
	g.opts = state.Options
	g.players = state.Players
	g.answerDeck = state.AnswerDeck
	g.answerDiscard = state.AnswerDiscard
	g.promptDeck = state.PromptDeck
	g.promptDiscard = state.PromptDiscard
	g.currentPrompt = state.CurrentPrompt
	g.judgeIndices = state.JudgeIndices
	g.lastWinnerIndex = state.LastWinnerIndex
	g.submissions = state.Submissions
	g.submissionOrder = state.SubmissionOrder
	g.roundNumber = state.RoundNumber
	g.roundEndTicks = state.RoundEndTicks
	g.nextCardID = state.NextCardID

	// The jolt queue is not persisted; rewake whichever bots were mid-phase.
	if g.Status() == game.StatusPlaying {
		switch g.Phase() {
		case PhaseSubmitting:
			for _, p := range g.nonJudges() {
				if p.IsBot && !p.HasSubmitted() {
					g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 20, 40))
				}
			}
		case PhaseJudging:
			for _, j := range g.judges() {
				if j.IsBot {
					g.Jolt(j.ID, randutil.IntBetween(g.Rng(), 30, 50))
				}
			}
		}
	}
	return nil
}
