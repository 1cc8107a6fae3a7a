package game

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
)

// Game is the contract every game type implements over the shared Core.
// Phase graphs, betting and scoring rules are game-specific; turn rotation,
// timers, bot scheduling and dispatch are Core's.
type Game interface {
	// Type is the registry key, e.g. "blackjack".
	Type() string
	MinPlayers() int
	MaxPlayers() int

	// PrestartValidate returns configuration violation tokens; starting is
	// refused until the list is empty.
	PrestartValidate() []Reason

	// OnStart transitions lobby → playing and sets up the first round.
	OnStart()
	// OnTick drives timers, waits and bot execution; called once per engine
	// tick, never concurrently with Execute.
	OnTick()

	// Actions returns the action set currently addressable by the player.
	Actions(playerID string) *ActionSet
	// BotThink maps observable state to a chosen action id ("" = no move).
	BotThink(playerID string) string
	// FallbackAction is the hard default substituted on turn timeout when
	// BotThink yields nothing.
	FallbackAction(playerID string) string

	// BuildResult snapshots final standings once status is finished.
	BuildResult() *Result

	// Snapshot serializes every field needed to resume play; transient
	// scheduling state is excluded. Restore fails loudly on malformed data.
	Snapshot() ([]byte, error)
	Restore(data []byte) error

	Status() Status
	Phase() string
	Execute(playerID, actionID, input string) Reason
}

// Env is the narrow collaborator seam the core calls out through. All calls
// are one-way notifications; the engine never awaits a response except via
// the action dispatch path. Nil members are permitted (NopEnv fills them).
type Env struct {
	// Broadcast tells everyone at the table.
	Broadcast func(text string)
	// BroadcastExcept tells everyone but one player.
	BroadcastExcept func(playerID, text string)
	// SpeakTo tells one player privately.
	SpeakTo func(playerID, text string)
	// BroadcastPersonal tells the player the personal text and everyone
	// else the third-person rendering of the same event.
	BroadcastPersonal func(playerID, personal, thirdPerson string)
	// FinishGame signals terminal state to the hosting session.
	FinishGame func()
}

// NopEnv returns an Env whose hooks all discard. Simulations and tests that
// do not care about table chatter use it.
func NopEnv() *Env {
	return &Env{
		Broadcast:         func(string) {},
		BroadcastExcept:   func(string, string) {},
		SpeakTo:           func(string, string) {},
		BroadcastPersonal: func(string, string, string) {},
		FinishGame:        func() {},
	}
}

// Say broadcasts formatted text to the table.
func (e *Env) Say(format string, args ...any) {
	if e.Broadcast != nil {
		e.Broadcast(fmt.Sprintf(format, args...))
	}
}

// Tell speaks formatted text to one player.
func (e *Env) Tell(playerID, format string, args ...any) {
	if e.SpeakTo != nil {
		e.SpeakTo(playerID, fmt.Sprintf(format, args...))
	}
}

// Constructor builds a fresh game instance of one registered type.
type Constructor func(env *Env, rng *rand.Rand, logger *log.Logger) Game

// Registry maps game type tags to constructors. It is an owned object the
// process builds at startup and passes explicitly, not a package-global.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a game type. Registering a duplicate type panics; that is a
// wiring bug, not a runtime condition.
func (r *Registry) Register(gameType string, ctor Constructor) {
	if _, exists := r.ctors[gameType]; exists {
		panic(fmt.Sprintf("game type %q registered twice", gameType))
	}
	r.ctors[gameType] = ctor
}

// New constructs a game of the given type.
func (r *Registry) New(gameType string, env *Env, rng *rand.Rand, logger *log.Logger) (Game, error) {
	ctor, ok := r.ctors[gameType]
	if !ok {
		return nil, fmt.Errorf("unknown game type %q", gameType)
	}
	return ctor(env, rng, logger), nil
}

// Types lists the registered type tags, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.ctors))
	for t := range r.ctors {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
