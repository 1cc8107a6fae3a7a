package twentyone

import (
	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

type gameState struct {
	Options           Options     `json:"options"`
	Players           []*Player   `json:"players"`
	Deck              []deck.Card `json:"deck"`
	RoundNumber       int         `json:"round_number"`
	RoundStarterIndex int         `json:"round_starter_index"`
	NextRoundTicks    int         `json:"next_round_ticks"`
}

// Snapshot implements game.Game.
func (g *Game) Snapshot() ([]byte, error) {
	state := gameState{
		Options:           g.opts,
		Players:           g.players,
		RoundNumber:       g.roundNumber,
		RoundStarterIndex: g.roundStarterIndex,
		NextRoundTicks:    g.nextRoundTicks,
	}
	if g.deck != nil {
		state.Deck = g.deck.Cards()
	}
	return g.MarshalSnapshot(state)
}

// Restore implements game.Game.
func (g *Game) Restore(data []byte) error {
	var state gameState
	if err := g.UnmarshalSnapshot(data, &state); err != nil {
		return err
	}
	g.opts = state.Options
	g.players = state.Players
	g.deck = deck.FromCards(state.Deck, g.Rng())
	g.roundNumber = state.RoundNumber
	g.roundStarterIndex = state.RoundStarterIndex
	g.nextRoundTicks = state.NextRoundTicks
	g.SetTurnTimerSeconds(state.Options.TurnTimerSeconds)

	if g.Status() == game.StatusPlaying && g.Phase() == PhaseTurns {
		if p := g.PlayerByID(g.CurrentPlayerID()); p != nil {
			if p.IsBot {
				g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 8, 16))
			}
			g.StartTurnTimer()
		}
	}
	return nil
}
