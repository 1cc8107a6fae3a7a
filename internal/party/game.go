package party

import (
	rand "math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

// GameType is the registry tag.
const GameType = "party"

// Phase values for the round lifecycle.
const (
	PhaseSubmitting = "submitting"
	PhaseJudging    = "judging"
	PhaseRoundEnd   = "round_end"
	PhaseFinished   = "finished"
)

// Judge selection modes.
const (
	JudgeRotating   = "rotating"
	JudgeRandom     = "random"
	JudgeLastWinner = "last_winner"
)

// roundEndWait is the pause between the winner reveal and the next round.
const roundEndWait = 100

// Options configure one party game session.
type Options struct {
	WinningScore int      `json:"winning_score"`
	HandSize     int      `json:"hand_size"`
	Packs        []string `json:"packs"`
	JudgeMode    string   `json:"judge_mode"`
	NumJudges    int      `json:"num_judges"`
}

// DefaultOptions returns the session defaults: first to 7 points, hands of
// 10, one rotating judge, the built-in pack.
func DefaultOptions() Options {
	return Options{
		WinningScore: 7,
		HandSize:     10,
		Packs:        []string{StarterPackName},
		JudgeMode:    JudgeRotating,
		NumJudges:    1,
	}
}

// Player is one seat. The hand refills to the hand size each round; a nil
// Submitted slice means the player has not submitted this round.
type Player struct {
	game.Player
	Score     int          `json:"score"`
	Hand      []AnswerCard `json:"hand"`
	Submitted []string     `json:"submitted"`
	Selected  []int        `json:"selected"`
}

// HasSubmitted reports whether the player locked in cards this round.
func (p *Player) HasSubmitted() bool {
	return p.Submitted != nil
}

// Submission is one player's locked-in answer for the current prompt.
type Submission struct {
	PlayerID string   `json:"player_id"`
	Cards    []string `json:"cards"`
}

// Game is one judged party game session.
type Game struct {
	*game.Core
	opts    Options
	packs   *PackRegistry
	players []*Player

	answerDeck    []AnswerCard
	answerDiscard []AnswerCard
	promptDeck    []PromptCard
	promptDiscard []PromptCard
	currentPrompt *PromptCard

	judgeIndices    []int
	lastWinnerIndex int
	submissions     []Submission
	submissionOrder []int
	roundNumber     int
	roundEndTicks   int
	nextCardID      int
}

// New creates a session drawing cards from the given registry. A nil
// registry falls back to the built-in starter pack.
func New(opts Options, packs *PackRegistry, env *game.Env, rng *rand.Rand, logger *log.Logger) *Game {
	if packs == nil {
		packs = DefaultRegistry()
	}
	g := &Game{
		Core:            game.NewCore(env, rng, logger.WithPrefix(GameType)),
		opts:            opts,
		packs:           packs,
		lastWinnerIndex: -1,
	}
	g.Core.Bind(g)
	return g
}

// Type implements game.Game.
func (g *Game) Type() string { return GameType }

// MinPlayers implements game.Game; judging needs a judge plus at least two
// competing submissions.
func (g *Game) MinPlayers() int { return 3 }

// MaxPlayers implements game.Game.
func (g *Game) MaxPlayers() int { return 10 }

// Options returns the session configuration.
func (g *Game) Options() Options { return g.opts }

// AddPlayer seats a player.
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

func (g *Game) activePlayers() []*Player {
	active := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// PrestartValidate implements game.Game.
func (g *Game) PrestartValidate() []game.Reason {
	var errs []game.Reason
	if g.opts.WinningScore < 3 || g.opts.WinningScore > 20 {
		errs = append(errs, "party-error-winning-score-invalid")
	}
	if g.opts.HandSize < 5 || g.opts.HandSize > 15 {
		errs = append(errs, "party-error-hand-size-invalid")
	}
	if g.opts.NumJudges < 1 || g.opts.NumJudges > 3 {
		errs = append(errs, "party-error-judge-count-invalid")
	}
	switch g.opts.JudgeMode {
	case JudgeRotating, JudgeRandom, JudgeLastWinner:
	default:
		errs = append(errs, "party-error-judge-mode-invalid")
	}
	if len(g.opts.Packs) == 0 {
		errs = append(errs, "party-error-no-packs")
	}
	for _, name := range g.opts.Packs {
		if _, ok := g.packs.Get(name); !ok {
			errs = append(errs, "party-error-unknown-pack")
			break
		}
	}
	return errs
}

// OnStart deals opening hands and runs the first round.
func (g *Game) OnStart() {
	g.SetStatus(game.StatusPlaying)
	g.roundNumber = 0
	g.judgeIndices = nil
	g.lastWinnerIndex = -1

	g.buildDecks()

	active := g.activePlayers()
	if len(g.answerDeck) < len(active)*g.opts.HandSize {
		g.Env().Say("Warning: the selected packs may not have enough cards for this table.")
	}

	for _, p := range active {
		p.Score = 0
		p.Hand = nil
		p.Submitted = nil
		p.Selected = nil
	}

	g.Env().Say("The game is starting. Dealing %d cards to each player.", g.opts.HandSize)
	for _, p := range active {
		g.dealToHandSize(p)
	}

	g.startRound()
}

// OnTick implements game.Game.
func (g *Game) OnTick() {
	g.TickShared()
	if g.Status() != game.StatusPlaying {
		return
	}
	if g.Phase() == PhaseRoundEnd {
		if g.roundEndTicks > 0 {
			g.roundEndTicks--
		}
		if g.roundEndTicks <= 0 {
			g.startRound()
		}
	}
}

// FallbackAction implements game.Game. There is no per-player turn timer in
// this game; submissions run concurrently.
func (g *Game) FallbackAction(string) string { return "" }

// --- deck management ------------------------------------------------------

func (g *Game) makeCardID() int {
	g.nextCardID++
	return g.nextCardID
}

func (g *Game) buildDecks() {
	g.answerDeck = nil
	g.promptDeck = nil
	g.answerDiscard = nil
	g.promptDiscard = nil

	for _, name := range g.opts.Packs {
		pack, ok := g.packs.Get(name)
		if !ok {
			continue
		}
		for _, text := range pack.Answers {
			g.answerDeck = append(g.answerDeck, AnswerCard{
				ID:   g.makeCardID(),
				Text: strings.TrimRight(text, "."),
				Pack: pack.Name,
			})
		}
		for _, text := range pack.Prompts {
			g.promptDeck = append(g.promptDeck, PromptCard{
				Text: text,
				Pick: promptPickCount(text),
				Pack: pack.Name,
			})
		}
	}

	g.Rng().Shuffle(len(g.answerDeck), func(i, j int) {
		g.answerDeck[i], g.answerDeck[j] = g.answerDeck[j], g.answerDeck[i]
	})
	g.Rng().Shuffle(len(g.promptDeck), func(i, j int) {
		g.promptDeck[i], g.promptDeck[j] = g.promptDeck[j], g.promptDeck[i]
	})
}

// drawAnswers draws up to count answer cards, reshuffling the discard pile
// back in when the deck runs dry.
func (g *Game) drawAnswers(count int) []AnswerCard {
	var cards []AnswerCard
	for range count {
		if len(g.answerDeck) == 0 {
			if len(g.answerDiscard) == 0 {
				break
			}
			g.answerDeck = g.answerDiscard
			g.answerDiscard = nil
			g.Rng().Shuffle(len(g.answerDeck), func(i, j int) {
				g.answerDeck[i], g.answerDeck[j] = g.answerDeck[j], g.answerDeck[i]
			})
			g.Env().Say("The answer deck has been reshuffled.")
		}
		last := len(g.answerDeck) - 1
		cards = append(cards, g.answerDeck[last])
		g.answerDeck = g.answerDeck[:last]
	}
	return cards
}

// drawPrompt draws the next prompt card, reshuffling the discard pile back
// in when the deck runs dry. Returns false when no prompts remain at all.
func (g *Game) drawPrompt() (PromptCard, bool) {
	if len(g.promptDeck) == 0 {
		if len(g.promptDiscard) == 0 {
			return PromptCard{}, false
		}
		g.promptDeck = g.promptDiscard
		g.promptDiscard = nil
		g.Rng().Shuffle(len(g.promptDeck), func(i, j int) {
			g.promptDeck[i], g.promptDeck[j] = g.promptDeck[j], g.promptDeck[i]
		})
		g.Env().Say("The prompt deck has been reshuffled.")
	}
	last := len(g.promptDeck) - 1
	card := g.promptDeck[last]
	g.promptDeck = g.promptDeck[:last]
	return card, true
}

func (g *Game) dealToHandSize(p *Player) {
	needed := g.opts.HandSize - len(p.Hand)
	if needed > 0 {
		p.Hand = append(p.Hand, g.drawAnswers(needed)...)
	}
}

// fillBlanks substitutes answer texts into the prompt's blanks in order;
// prompts without blanks get the answers appended.
func fillBlanks(prompt string, answers []string) string {
	result := prompt
	for _, text := range answers {
		insert := strings.TrimRight(text, ".")
		if strings.Contains(result, "_") {
			result = strings.Replace(result, "_", insert, 1)
		} else {
			result += " " + insert
		}
	}
	return result
}

// spokenPrompt renders blanks as the word "blank" for announcements.
func spokenPrompt(text string) string {
	return strings.ReplaceAll(text, "_", "blank")
}

func (g *Game) requiredPicks() int {
	if g.currentPrompt == nil {
		return 1
	}
	return g.currentPrompt.Pick
}

// --- judge management -----------------------------------------------------

func (g *Game) isJudge(playerID string) bool {
	active := g.activePlayers()
	for _, idx := range g.judgeIndices {
		if idx < len(active) && active[idx].ID == playerID {
			return true
		}
	}
	return false
}

func (g *Game) judges() []*Player {
	active := g.activePlayers()
	var js []*Player
	for _, idx := range g.judgeIndices {
		if idx < len(active) {
			js = append(js, active[idx])
		}
	}
	return js
}

func (g *Game) nonJudges() []*Player {
	var out []*Player
	for _, p := range g.activePlayers() {
		if !g.isJudge(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// selectJudges picks this round's judge seats per the configured mode.
// Every mode leaves at least one non-judge to submit.
func (g *Game) selectJudges() {
	active := g.activePlayers()
	numJudges := min(g.opts.NumJudges, len(active)-1)
	if numJudges < 1 {
		numJudges = 1
	}

	switch g.opts.JudgeMode {
	case JudgeRandom:
		indices := make([]int, len(active))
		for i := range indices {
			indices[i] = i
		}
		g.Rng().Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		g.judgeIndices = indices[:numJudges]
	case JudgeLastWinner:
		if g.lastWinnerIndex >= 0 && g.lastWinnerIndex < len(active) {
			g.judgeIndices = []int{g.lastWinnerIndex}
			for offset := 1; offset < len(active) && len(g.judgeIndices) < numJudges; offset++ {
				g.judgeIndices = append(g.judgeIndices, (g.lastWinnerIndex+offset)%len(active))
			}
		} else {
			// No winner yet; rotate until there is one.
			g.selectJudgesRotating(len(active), numJudges)
		}
	default:
		g.selectJudgesRotating(len(active), numJudges)
	}
}

func (g *Game) selectJudgesRotating(numActive, numJudges int) {
	if len(g.judgeIndices) == 0 {
		g.judgeIndices = []int{0}
	} else {
		g.judgeIndices = []int{(g.judgeIndices[0] + 1) % numActive}
	}
	for len(g.judgeIndices) < numJudges {
		next := (g.judgeIndices[len(g.judgeIndices)-1] + 1) % numActive
		if next == g.judgeIndices[0] {
			break
		}
		g.judgeIndices = append(g.judgeIndices, next)
	}
}

func (g *Game) announceJudges() {
	js := g.judges()
	switch len(js) {
	case 0:
	case 1:
		g.Env().Say("%s is judging this round.", js[0].Name)
	default:
		names := make([]string, len(js))
		for i, j := range js {
			names[i] = j.Name
		}
		g.Env().Say("Judging this round: %s.", strings.Join(names, ", "))
	}
}

// --- round lifecycle ------------------------------------------------------

func (g *Game) startRound() {
	g.roundNumber++
	g.SetPhase(PhaseSubmitting)
	g.submissions = nil
	g.submissionOrder = nil

	active := g.activePlayers()
	for _, p := range active {
		p.Submitted = nil
		p.Selected = nil
		g.dealToHandSize(p)
	}

	g.selectJudges()

	prompt, ok := g.drawPrompt()
	if !ok {
		g.Env().Say("The prompt deck is exhausted. The game ends early.")
		g.endGame(nil)
		return
	}
	g.currentPrompt = &prompt

	g.Env().Say("Round %d.", g.roundNumber)
	g.announceJudges()
	g.Env().Say("The prompt: %s", spokenPrompt(prompt.Text))
	if prompt.Pick > 1 {
		g.Env().Say("Pick %d cards.", prompt.Pick)
	}

	for _, p := range g.nonJudges() {
		g.Env().Tell(p.ID, "Select %d of your cards to answer the prompt.", prompt.Pick)
	}

	for _, p := range active {
		if p.IsBot && !g.isJudge(p.ID) {
			g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 20, 40))
		}
	}
}

// startJudging collects every locked submission, shuffles the presentation
// order so the judge cannot tell who wrote what, and wakes judge bots.
func (g *Game) startJudging() {
	g.SetPhase(PhaseJudging)

	g.submissions = nil
	for _, p := range g.nonJudges() {
		if p.HasSubmitted() {
			g.submissions = append(g.submissions, Submission{
				PlayerID: p.ID,
				Cards:    append([]string(nil), p.Submitted...),
			})
		}
	}

	g.submissionOrder = make([]int, len(g.submissions))
	for i := range g.submissionOrder {
		g.submissionOrder[i] = i
	}
	g.Rng().Shuffle(len(g.submissionOrder), func(i, j int) {
		g.submissionOrder[i], g.submissionOrder[j] = g.submissionOrder[j], g.submissionOrder[i]
	})

	g.Env().Say("All answers are in. The judge is deciding.")

	for _, j := range g.judges() {
		if j.IsBot {
			g.Jolt(j.ID, randutil.IntBetween(g.Rng(), 30, 50))
		}
	}
}

// awardRound credits the winning submission and either ends the game or
// schedules the next round.
func (g *Game) awardRound(winner *Player, sub Submission) {
	winner.Score++
	active := g.activePlayers()
	g.lastWinnerIndex = -1
	for i, p := range active {
		if p.ID == winner.ID {
			g.lastWinnerIndex = i
			break
		}
	}

	promptText := ""
	if g.currentPrompt != nil {
		promptText = g.currentPrompt.Text
	}

	g.Env().Say("%s wins the round and now has %d points.", winner.Name, winner.Score)
	g.Env().Say("%s submitted: %s", winner.Name, fillBlanks(promptText, sub.Cards))

	// Reveal the rest after the winner.
	g.Env().Say("The other answers:")
	for _, other := range g.submissions {
		if other.PlayerID == winner.ID {
			continue
		}
		p := g.PlayerByID(other.PlayerID)
		if p == nil {
			continue
		}
		g.Env().Say("%s submitted: %s", p.Name, fillBlanks(promptText, other.Cards))
	}

	if winner.Score >= g.opts.WinningScore {
		g.endGame(winner)
		return
	}

	g.SetPhase(PhaseRoundEnd)
	g.roundEndTicks = roundEndWait
	if g.currentPrompt != nil {
		g.promptDiscard = append(g.promptDiscard, *g.currentPrompt)
		g.currentPrompt = nil
	}
}

func (g *Game) endGame(winner *Player) {
	g.SetPhase(PhaseFinished)
	if winner != nil {
		g.Env().BroadcastPersonal(winner.ID,
			"You win the game!",
			winner.Name+" wins the game!")
	}
	g.Finish()
}

// --- result ---------------------------------------------------------------

// BuildResult implements game.Game.
func (g *Game) BuildResult() *game.Result {
	active := g.activePlayers()
	sorted := append([]*Player(nil), active...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	rows := make([]game.PlayerRow, 0, len(active))
	finalScores := make(map[string]any, len(active))
	for _, p := range active {
		rows = append(rows, game.PlayerRow{PlayerID: p.ID, PlayerName: p.Name, IsBot: p.IsBot})
		finalScores[p.Name] = p.Score
	}

	custom := map[string]any{
		"final_scores":  finalScores,
		"rounds_played": g.roundNumber,
	}
	if len(sorted) > 0 {
		custom["winner_name"] = sorted[0].Name
		custom["winner_score"] = sorted[0].Score
	}
	return game.NewResult(g.Core, GameType, rows, custom)
}
