package game

// Player holds the identity fields shared by every game type. Concrete games
// embed it in their own player structs alongside their economy fields
// (chips, bets, health, modifiers).
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsBot       bool   `json:"is_bot"`
	IsSpectator bool   `json:"is_spectator"`
}

// Active reports whether the player takes part in play (not a spectator).
func (p *Player) Active() bool {
	return !p.IsSpectator
}
