package game

import (
	"encoding/json"
	"fmt"
)

// coreState is the persisted portion of Core. The timer countdown and the
// jolt queue are deliberately absent: resuming into a half-elapsed timer or
// a mid-think bot is how restored games end up inconsistent, so both start
// cold after Restore.
type coreState struct {
	SessionID    string   `json:"session_id"`
	Status       Status   `json:"status"`
	Phase        string   `json:"phase"`
	Ticks        int      `json:"ticks"`
	TurnIDs      []string `json:"turn_ids"`
	TurnIndex    int      `json:"turn_index"`
	TimerSeconds int      `json:"timer_seconds"`
}

// MarshalSnapshot wraps a game-specific state struct together with the core
// fields. Games call it from their Snapshot.
func (c *Core) MarshalSnapshot(gameState any) ([]byte, error) {
	payload := struct {
		Core coreState `json:"core"`
		Game any       `json:"game"`
	}{
		Core: c.coreState(),
		Game: gameState,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot into the game-specific state struct
// and reapplies the core fields. A snapshot that cannot be reconstructed is
// a hard error, the one failure in the engine that must be loud.
func (c *Core) UnmarshalSnapshot(data []byte, gameState any) error {
	payload := struct {
		Core coreState       `json:"core"`
		Game json.RawMessage `json:"game"`
	}{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if payload.Core.SessionID == "" {
		return fmt.Errorf("decode snapshot: missing session id")
	}
	if err := json.Unmarshal(payload.Game, gameState); err != nil {
		return fmt.Errorf("decode snapshot game state: %w", err)
	}
	c.restoreCore(payload.Core)
	return nil
}
