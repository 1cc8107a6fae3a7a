package twentyone

// hasPlayable reports whether the player holds any of the given modifiers in
// a currently playable state.
func (g *Game) hasPlayable(p *Player, ids ...string) bool {
	for _, held := range p.Modifiers {
		for _, id := range ids {
			if held == id && g.isModifierPlayable(p, held) {
				return true
			}
		}
	}
	return false
}

// BotThink drives the duel bot: fix a bust with a target card, chase the
// target with precision draws, punish a standing opponent, guard when
// behind on HP, otherwise hit until close to the target.
func (g *Game) BotThink(playerID string) string {
	p := g.PlayerByID(playerID)
	if p == nil || g.Phase() != PhaseTurns || g.CurrentPlayerID() != playerID {
		return ""
	}
	opponent := g.opponentOf(p)
	if opponent == nil {
		return "stand"
	}

	target := g.currentTarget()
	total := p.HandTotal()
	oppTotal := opponent.HandTotal()

	if !g.modifiersLockedFor(p) && len(p.Modifiers) > 0 {
		if total > target && g.hasPlayable(p, ModTarget17, ModTarget24, ModTarget27) {
			return "play_modifier"
		}
		if total < target-5 && g.hasPlayable(p, ModPrecisionDraw, ModPrecisionDrawPlus, ModPrimeDraw) {
			return "play_modifier"
		}
		if opponent.StandPending && total <= oppTotal &&
			g.hasPlayable(p, ModRaise1, ModRaise2, ModRaise2Plus, ModLockdown) {
			return "play_modifier"
		}
		if p.HP <= opponent.HP && g.hasPlayable(p, ModGuard, ModGuardPlus) {
			return "play_modifier"
		}
	}

	if g.deck == nil || g.deck.IsEmpty() {
		return "stand"
	}
	if total < target-2 {
		return "hit"
	}
	if opponent.StandPending && total < oppTotal && total <= target {
		return "hit"
	}
	return "stand"
}

// botSelectModifier resolves the play_modifier sub-choice without UI,
// returning an index into the options menu.
func (g *Game) botSelectModifier(playerID string, options []string) int {
	p := g.PlayerByID(playerID)
	if p == nil || len(options) == 0 {
		return -1
	}
	opponent := g.opponentOf(p)
	if opponent == nil {
		return 0
	}

	target := g.currentTarget()
	total := p.HandTotal()
	oppTotal := opponent.HandTotal()

	held := func(id string) bool {
		for _, m := range p.Modifiers {
			if m == id {
				return true
			}
		}
		return false
	}

	var preferred []string
	if held(ModLockdown) && len(opponent.Modifiers) > 0 {
		preferred = append(preferred, ModLockdown)
	}
	if total > target {
		if held(ModTarget24) {
			preferred = append(preferred, ModTarget24)
		}
		if held(ModTarget27) {
			preferred = append(preferred, ModTarget27)
		}
	}
	if total < target {
		for _, id := range []string{ModPrecisionDraw, ModPrecisionDrawPlus, ModPrimeDraw} {
			if held(id) {
				preferred = append(preferred, id)
			}
		}
	}
	if p.HP <= opponent.HP {
		if held(ModGuardPlus) {
			preferred = append(preferred, ModGuardPlus)
		}
		if held(ModGuard) {
			preferred = append(preferred, ModGuard)
		}
	}
	if oppTotal >= target-1 {
		for _, id := range []string{ModRaise2Plus, ModRaise2, ModRaise1} {
			if held(id) {
				preferred = append(preferred, id)
			}
		}
	}

	indexOf := func(id string) int {
		for i, m := range p.Modifiers {
			if m == id && i < len(options) {
				return i
			}
		}
		return -1
	}

	for _, id := range preferred {
		if g.isModifierPlayable(p, id) {
			if i := indexOf(id); i >= 0 {
				return i
			}
		}
	}
	for i, m := range p.Modifiers {
		if g.isModifierPlayable(p, m) && i < len(options) {
			return i
		}
	}
	return 0
}
