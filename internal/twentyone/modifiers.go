package twentyone

// Modifier card identifiers. A player's held modifiers and placed table
// effects are both lists of these ids.
const (
	ModRaise1            = "raise_1"
	ModRaise2            = "raise_2"
	ModRaise2Plus        = "raise_2_plus"
	ModDraw2             = "draw_2"
	ModDraw3             = "draw_3"
	ModDraw4             = "draw_4"
	ModDraw5             = "draw_5"
	ModDraw6             = "draw_6"
	ModDraw7             = "draw_7"
	ModScrap             = "scrap"
	ModRecycle           = "recycle"
	ModSwapDraw          = "swap_draw"
	ModRedraft           = "redraft"
	ModRedraftPlus       = "redraft_plus"
	ModGuard             = "guard"
	ModGuardPlus         = "guard_plus"
	ModBreak             = "break_effect"
	ModBreakAll          = "break_all"
	ModLockdown          = "lockdown"
	ModPrecisionDraw     = "precision_draw"
	ModPrecisionDrawPlus = "precision_draw_plus"
	ModPrimeDraw         = "prime_draw"
	ModTarget17          = "target_17"
	ModTarget24          = "target_24"
	ModTarget27          = "target_27"
	ModSalvage           = "salvage"
	ModAidRival          = "aid_rival"
)

// ModifierPool is the draw pool for random modifier grants.
var ModifierPool = []string{
	ModRaise1, ModRaise2, ModRaise2Plus,
	ModDraw2, ModDraw3, ModDraw4, ModDraw5, ModDraw6, ModDraw7,
	ModScrap, ModRecycle, ModSwapDraw,
	ModRedraft, ModRedraftPlus,
	ModGuard, ModGuardPlus,
	ModBreak, ModBreakAll, ModLockdown,
	ModPrecisionDraw, ModPrecisionDrawPlus, ModPrimeDraw,
	ModTarget17, ModTarget24, ModTarget27,
	ModSalvage, ModAidRival,
}

var modifierLabels = map[string]string{
	ModRaise1:            "Stake Raise 1",
	ModRaise2:            "Stake Raise 2",
	ModRaise2Plus:        "Stake Raise 2+",
	ModDraw2:             "Exact 2",
	ModDraw3:             "Exact 3",
	ModDraw4:             "Exact 4",
	ModDraw5:             "Exact 5",
	ModDraw6:             "Exact 6",
	ModDraw7:             "Exact 7",
	ModScrap:             "Scrap Card",
	ModRecycle:           "Recycle Card",
	ModSwapDraw:          "Swap Draw",
	ModRedraft:           "Redraft",
	ModRedraftPlus:       "Redraft+",
	ModGuard:             "Guard",
	ModGuardPlus:         "Guard+",
	ModBreak:             "Break Effect",
	ModBreakAll:          "Break All",
	ModLockdown:          "Lockdown",
	ModPrecisionDraw:     "Precision Draw",
	ModPrecisionDrawPlus: "Precision Draw+",
	ModPrimeDraw:         "Prime Draw",
	ModTarget17:          "Target 17",
	ModTarget24:          "Target 24",
	ModTarget27:          "Target 27",
	ModSalvage:           "Salvage",
	ModAidRival:          "Aid Rival",
}

var modifierHelp = map[string]string{
	ModRaise1:            "Increase opponent damage by 1. Gain 1 random modifier.",
	ModRaise2:            "Increase opponent damage by 2. Gain 1 random modifier.",
	ModRaise2Plus:        "Increase opponent damage by 2, return opponent last drawn card to top of deck, and gain 1 random modifier.",
	ModDraw2:             "Draw an exact 2 from deck if available.",
	ModDraw3:             "Draw an exact 3 from deck if available.",
	ModDraw4:             "Draw an exact 4 from deck if available.",
	ModDraw5:             "Draw an exact 5 from deck if available.",
	ModDraw6:             "Draw an exact 6 from deck if available.",
	ModDraw7:             "Draw an exact 7 from deck if available.",
	ModScrap:             "Remove opponent last drawn face-up card and place it on top of deck.",
	ModRecycle:           "Return opponent last drawn face-up card to top of deck.",
	ModSwapDraw:          "Both players return their own last drawn face-up card and each draw one new card.",
	ModRedraft:           "Discard 2 random modifiers, then gain 3 random modifiers.",
	ModRedraftPlus:       "Discard 1 random modifier, then gain 4 random modifiers.",
	ModGuard:             "Reduce incoming round damage by 1 while active.",
	ModGuardPlus:         "Reduce incoming round damage by 2 while active.",
	ModBreak:             "Destroy opponent newest table effect.",
	ModBreakAll:          "Destroy all opponent table effects.",
	ModLockdown:          "Clear opponent table effects and lock opponent from playing modifiers while active.",
	ModPrecisionDraw:     "Draw the best available card for current target.",
	ModPrecisionDrawPlus: "Precision draw plus increase opponent damage by 5 while active.",
	ModPrimeDraw:         "Precision draw and gain 2 random modifiers.",
	ModTarget17:          "Set round target to 17.",
	ModTarget24:          "Set round target to 24.",
	ModTarget27:          "Set round target to 27.",
	ModSalvage:           "Whenever any modifier is played, gain 1 random modifier while active.",
	ModAidRival:          "Opponent draws their best available card for current target.",
}

// tableEffectModifiers stay on the table after being played.
var tableEffectModifiers = map[string]bool{
	ModRaise1:            true,
	ModRaise2:            true,
	ModRaise2Plus:        true,
	ModGuard:             true,
	ModGuardPlus:         true,
	ModLockdown:          true,
	ModPrecisionDrawPlus: true,
	ModTarget17:          true,
	ModTarget24:          true,
	ModTarget27:          true,
	ModSalvage:           true,
}

// targetValues maps target modifiers to the round target they impose.
var targetValues = map[string]int{
	ModTarget17: 17,
	ModTarget24: 24,
	ModTarget27: 27,
}

// exactDrawRanks maps the exact-draw modifiers to the rank they fetch.
var exactDrawRanks = map[string]int{
	ModDraw2: 2,
	ModDraw3: 3,
	ModDraw4: 4,
	ModDraw5: 5,
	ModDraw6: 6,
	ModDraw7: 7,
}

// tableEffectLimit caps per-player table effects; the oldest expires first.
const tableEffectLimit = 5

// ModifierLabel returns the display name for a modifier id.
func ModifierLabel(id string) string {
	if label, ok := modifierLabels[id]; ok {
		return label
	}
	return id
}

// ModifierHelp returns the one-line rules text for a modifier id.
func ModifierHelp(id string) string {
	return modifierHelp[id]
}

func isKnownModifier(id string) bool {
	_, ok := modifierLabels[id]
	return ok
}
