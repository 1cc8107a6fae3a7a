package blackjack

import (
	"github.com/lox/tablegames/internal/deck"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

type gameState struct {
	Options            Options     `json:"options"`
	Players            []*Player   `json:"players"`
	Deck               []deck.Card `json:"deck"`
	DealerHand         []deck.Card `json:"dealer_hand"`
	DealerHoleRevealed bool        `json:"dealer_hole_revealed"`
	HandNumber         int         `json:"hand_number"`
	NextHandTicks      int         `json:"next_hand_ticks"`
}

// Snapshot implements game.Game. Scheduled bot moves and the running turn
// countdown are dropped; a resumed game restarts them from the turn boundary.
func (g *Game) Snapshot() ([]byte, error) {
	state := gameState{
		Options:            g.opts,
		Players:            g.players,
		DealerHand:         g.dealerHand,
		DealerHoleRevealed: g.dealerHoleRevealed,
		HandNumber:         g.handNumber,
		NextHandTicks:      g.nextHandTicks,
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
	g.dealerHand = state.DealerHand
	g.dealerHoleRevealed = state.DealerHoleRevealed
	g.handNumber = state.HandNumber
	g.nextHandTicks = state.NextHandTicks
	g.SetTurnTimerSeconds(state.Options.TurnTimerSeconds)

	// Restart the interrupted turn's scheduling.
	if g.Status() == game.StatusPlaying {
		if p := g.PlayerByID(g.CurrentPlayerID()); p != nil {
			if p.IsBot {
				g.Jolt(p.ID, randutil.IntBetween(g.Rng(), 20, 35))
			}
			g.StartTurnTimer()
		}
	}
	return nil
}
