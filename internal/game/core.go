package game

import (
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// TicksPerSecond is the engine tick rate every countdown is expressed in.
const TicksPerSecond = 20

// Status is the coarse lifecycle state of a game instance.
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// joltEntry is one scheduled bot decision: Ticks counts down each tick;
// once elapsed the bot thinks on one tick and executes the chosen action on
// the next, so bot turns never resolve on the tick they were scheduled.
type joltEntry struct {
	Ticks         int
	PendingAction string
	HasPending    bool
}

// Core carries the state machinery shared by every game instance: status and
// phase, the turn rotation, the per-turn countdown timer, and the bot jolt
// queue. Concrete games embed *Core and drive it from their OnTick.
//
// All mutation happens synchronously inside an Execute call or a Tick call;
// the hosting layer guarantees the two never run concurrently for one
// instance, so Core holds no locks.
type Core struct {
	SessionID string
	status    Status
	phase     string

	env    *Env
	rng    *rand.Rand
	logger *log.Logger
	game   Game

	ticks int

	turnIDs   []string
	turnIndex int

	// turn timer; 0 seconds disables it
	timerSeconds int
	timerTicks   int
	timerArmed   bool

	jolts map[string]*joltEntry
}

// NewCore builds the shared machinery for one game session. The rng is the
// session's single generator; every shuffle, bot choice and jolt delay draws
// from it.
func NewCore(env *Env, rng *rand.Rand, logger *log.Logger) *Core {
	if env == nil {
		env = NopEnv()
	}
	return &Core{
		SessionID: uuid.NewString(),
		status:    StatusLobby,
		env:       env,
		rng:       rng,
		logger:    logger,
		jolts:     make(map[string]*joltEntry),
	}
}

// Bind attaches the concrete game so Core can reach its action sets, bot
// think function and fallback action. Must be called before play starts.
func (c *Core) Bind(g Game) {
	c.game = g
}

// Env returns the collaborator seam.
func (c *Core) Env() *Env {
	return c.env
}

// Rng returns the session generator.
func (c *Core) Rng() *rand.Rand {
	return c.rng
}

// Logger returns the session logger.
func (c *Core) Logger() *log.Logger {
	return c.logger
}

// Status returns the lifecycle status.
func (c *Core) Status() Status {
	return c.status
}

// SetStatus transitions the lifecycle status.
func (c *Core) SetStatus(s Status) {
	c.status = s
}

// Phase returns the game-defined phase string.
func (c *Core) Phase() string {
	return c.phase
}

// SetPhase transitions to a game-defined phase.
func (c *Core) SetPhase(phase string) {
	if c.logger != nil {
		c.logger.Debug("phase change", "from", c.phase, "to", phase)
	}
	c.phase = phase
}

// Ticks returns how many ticks this session has processed.
func (c *Core) Ticks() int {
	return c.ticks
}

// Finish marks the game finished and signals the hosting session.
func (c *Core) Finish() {
	c.status = StatusFinished
	c.StopTurnTimer()
	c.ClearJolts()
	if c.env.FinishGame != nil {
		c.env.FinishGame()
	}
}

// --- turn rotation -------------------------------------------------------

// SetTurnPlayers establishes the active rotation for a phase. resetIndex
// restarts at the first entry; otherwise the current index is clamped into
// the new list.
func (c *Core) SetTurnPlayers(ids []string, resetIndex bool) {
	c.turnIDs = append([]string(nil), ids...)
	if resetIndex || c.turnIndex >= len(c.turnIDs) {
		c.turnIndex = 0
	}
}

// TurnPlayers returns the current rotation.
func (c *Core) TurnPlayers() []string {
	return append([]string(nil), c.turnIDs...)
}

// CurrentPlayerID returns the id of the turn holder, or "" when the phase
// has no active rotation.
func (c *Core) CurrentPlayerID() string {
	if len(c.turnIDs) == 0 || c.turnIndex >= len(c.turnIDs) {
		return ""
	}
	return c.turnIDs[c.turnIndex]
}

// AdvanceTurn moves to the next index with wraparound. The caller decides
// whether the new holder is eligible and loops again if not.
func (c *Core) AdvanceTurn() {
	if len(c.turnIDs) == 0 {
		return
	}
	c.turnIndex = (c.turnIndex + 1) % len(c.turnIDs)
}

// SetTurnIndex points the rotation at a specific position.
func (c *Core) SetTurnIndex(i int) {
	c.turnIndex = i
}

// TurnIndex returns the current rotation position.
func (c *Core) TurnIndex() int {
	return c.turnIndex
}

// ClearTurn empties the rotation, used by phases without player turns
// (dealer resolution, settlement, between-round waits).
func (c *Core) ClearTurn() {
	c.turnIDs = nil
	c.turnIndex = 0
	c.StopTurnTimer()
}

// --- turn timer ----------------------------------------------------------

// SetTurnTimerSeconds configures the per-turn countdown; 0 disables it.
func (c *Core) SetTurnTimerSeconds(seconds int) {
	c.timerSeconds = seconds
}

// StartTurnTimer arms the countdown for the current turn.
func (c *Core) StartTurnTimer() {
	if c.timerSeconds <= 0 {
		return
	}
	c.timerTicks = c.timerSeconds * TicksPerSecond
	c.timerArmed = true
}

// StopTurnTimer disarms the countdown.
func (c *Core) StopTurnTimer() {
	c.timerArmed = false
	c.timerTicks = 0
}

// TurnTimerRemaining returns whole seconds left on the armed countdown,
// rounded up, or 0 when the timer is disarmed.
func (c *Core) TurnTimerRemaining() int {
	if !c.timerArmed {
		return 0
	}
	return (c.timerTicks + TicksPerSecond - 1) / TicksPerSecond
}

// --- bot scheduling ------------------------------------------------------

// Jolt schedules a bot decision after the given tick delay. Scheduling is
// keyed by player id; a second jolt for the same player restarts the delay.
func (c *Core) Jolt(playerID string, ticks int) {
	if ticks < 1 {
		ticks = 1
	}
	c.jolts[playerID] = &joltEntry{Ticks: ticks}
}

// CancelJolt removes any scheduled decision for the player.
func (c *Core) CancelJolt(playerID string) {
	delete(c.jolts, playerID)
}

// HasJolt reports whether a decision is scheduled for the player.
func (c *Core) HasJolt(playerID string) bool {
	_, ok := c.jolts[playerID]
	return ok
}

// ClearJolts drops all scheduled bot decisions.
func (c *Core) ClearJolts() {
	c.jolts = make(map[string]*joltEntry)
}

// --- tick loop -----------------------------------------------------------

// TickShared advances the shared machinery one tick: the turn timer first,
// then the jolt queue. Games call it at the top of their OnTick before any
// phase-specific work, mirroring how every countdown in the engine is
// tick-driven rather than clock-driven.
func (c *Core) TickShared() {
	c.ticks++
	if c.status != StatusPlaying {
		return
	}
	c.tickTurnTimer()
	c.tickJolts()
}

func (c *Core) tickTurnTimer() {
	if !c.timerArmed {
		return
	}
	c.timerTicks--
	if c.timerTicks > 0 {
		return
	}
	c.timerArmed = false

	playerID := c.CurrentPlayerID()
	if playerID == "" {
		return
	}
	// Timeout substitutes a fallback action so no turn can stall forever:
	// the bot-think result when it yields one, else the game's hard default.
	actionID := c.game.BotThink(playerID)
	if actionID == "" {
		actionID = c.game.FallbackAction(playerID)
	}
	if actionID == "" {
		return
	}
	if c.logger != nil {
		c.logger.Debug("turn timer expired", "player", playerID, "fallback", actionID)
	}
	c.Execute(playerID, actionID, "")
}

func (c *Core) tickJolts() {
	// Deterministic polling order keeps seeded games replayable.
	ids := make([]string, 0, len(c.jolts))
	for id := range c.jolts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry, ok := c.jolts[id]
		if !ok {
			continue
		}
		if entry.Ticks > 0 {
			entry.Ticks--
			continue
		}
		if entry.HasPending {
			actionID := entry.PendingAction
			delete(c.jolts, id)
			if actionID != "" {
				c.Execute(id, actionID, "")
			}
			continue
		}
		entry.PendingAction = c.game.BotThink(id)
		entry.HasPending = true
		if entry.PendingAction == "" {
			delete(c.jolts, id)
		}
	}
}

// Execute is the single dispatch path for every invocation source: human
// input, a bot's scheduled decision, or a timer fallback. Illegal calls come
// back as Reason tokens and leave state untouched.
func (c *Core) Execute(playerID, actionID, input string) Reason {
	set := c.game.Actions(playerID)
	if set == nil {
		return ReasonUnknownAction
	}
	r := set.Execute(playerID, actionID, input)
	if !r.OK() && c.logger != nil {
		c.logger.Debug("action rejected", "player", playerID, "action", actionID, "reason", r)
	}
	return r
}

// restoreCore reapplies persisted core fields after a snapshot load.
// Transient scheduling state (timer countdown, jolt queue) is intentionally
// absent from snapshots and starts cold.
func (c *Core) restoreCore(s coreState) {
	c.SessionID = s.SessionID
	c.status = s.Status
	c.phase = s.Phase
	c.ticks = s.Ticks
	c.turnIDs = s.TurnIDs
	c.turnIndex = s.TurnIndex
	c.timerSeconds = s.TimerSeconds
	c.timerArmed = false
	c.timerTicks = 0
	c.jolts = make(map[string]*joltEntry)
}

func (c *Core) coreState() coreState {
	return coreState{
		SessionID:    c.SessionID,
		Status:       c.status,
		Phase:        c.phase,
		Ticks:        c.ticks,
		TurnIDs:      c.turnIDs,
		TurnIndex:    c.turnIndex,
		TimerSeconds: c.timerSeconds,
	}
}
