package main

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/tablegames/internal/blackjack"
	"github.com/lox/tablegames/internal/config"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/party"
	"github.com/lox/tablegames/internal/twentyone"
)

var botNames = []string{"Ada", "Bea", "Cam", "Dee", "Eli", "Fox", "Gus", "Hal", "Ivy"}

// buildRegistry wires every game type with the table's options.
func buildRegistry(t config.TableConfig) *game.Registry {
	r := game.NewRegistry()
	r.Register(blackjack.GameType, func(env *game.Env, rng *rand.Rand, logger *log.Logger) game.Game {
		return blackjack.New(t.BlackjackOptions(), env, rng, logger)
	})
	r.Register(twentyone.GameType, func(env *game.Env, rng *rand.Rand, logger *log.Logger) game.Game {
		return twentyone.New(t.TwentyOneOptions(), env, rng, logger)
	})
	r.Register(party.GameType, func(env *game.Env, rng *rand.Rand, logger *log.Logger) game.Game {
		return party.New(t.PartyOptions(), party.DefaultRegistry(), env, rng, logger)
	})
	return r
}

// newTableGame constructs the game a table config describes.
func newTableGame(t config.TableConfig, env *game.Env, rng *rand.Rand, logger *log.Logger) (game.Game, error) {
	return buildRegistry(t).New(t.Game, env, rng, logger)
}

// defaultBotCount picks a sensible full table when the config leaves the
// bot count unset.
func defaultBotCount(gameType string) int {
	switch gameType {
	case twentyone.GameType:
		return 2
	case party.GameType:
		return 4
	default:
		return 3
	}
}

// seatBots fills count bot seats. AddPlayer lives on the concrete types, so
// seating switches on them.
func seatBots(g game.Game, count int) error {
	for i := 0; i < count; i++ {
		name := botNames[i%len(botNames)]
		if err := seatPlayer(g, uuid.NewString(), name, true); err != nil {
			return err
		}
	}
	return nil
}

// seatHuman adds one human seat and returns its player id.
func seatHuman(g game.Game, name string) (string, error) {
	id := uuid.NewString()
	if err := seatPlayer(g, id, name, false); err != nil {
		return "", err
	}
	return id, nil
}

func seatPlayer(g game.Game, id, name string, isBot bool) error {
	switch t := g.(type) {
	case *blackjack.Game:
		t.AddPlayer(id, name, isBot)
	case *twentyone.Game:
		t.AddPlayer(id, name, isBot)
	case *party.Game:
		t.AddPlayer(id, name, isBot)
	default:
		return fmt.Errorf("game type %q has no seating support", g.Type())
	}
	return nil
}
