package game

import "time"

// PlayerRow is one player's line in a final result.
type PlayerRow struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	IsBot      bool   `json:"is_bot"`
}

// Result is the immutable snapshot taken at game end: type tag, timing, the
// roster and a game-specific payload (final chips, winner, rounds played).
// Never mutated after construction.
type Result struct {
	GameType      string         `json:"game_type"`
	SessionID     string         `json:"session_id"`
	Timestamp     time.Time      `json:"timestamp"`
	DurationTicks int            `json:"duration_ticks"`
	Players       []PlayerRow    `json:"players"`
	Custom        map[string]any `json:"custom,omitempty"`
}

// NewResult stamps a result for the given session.
func NewResult(c *Core, gameType string, players []PlayerRow, custom map[string]any) *Result {
	return &Result{
		GameType:      gameType,
		SessionID:     c.SessionID,
		Timestamp:     time.Now(),
		DurationTicks: c.Ticks(),
		Players:       players,
		Custom:        custom,
	}
}
