package game

// Reason is an error-reason token returned by enablement checks and the
// dispatch path. The empty Reason means the action is allowed. Tokens are
// opaque to the engine; the hosting layer renders them. Illegal actions are
// absorbed here as tokens rather than errors because stale menus and
// double-submits are expected traffic, not faults.
type Reason string

// Allowed is the zero Reason.
const Allowed Reason = ""

// Common reason tokens shared across game types.
const (
	ReasonUnknownAction Reason = "action-unknown"
	ReasonNotPlaying    Reason = "action-not-playing"
	ReasonNotYourTurn   Reason = "action-not-your-turn"
	ReasonSpectator     Reason = "action-spectator"
	ReasonInputRequired Reason = "action-input-required"
)

// OK reports whether the reason allows the action.
func (r Reason) OK() bool {
	return r == Allowed
}

// Visibility controls whether an action appears in a rendered menu. Hidden
// actions must not be shown even when technically callable.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

// InputRequest describes the sub-choice an action needs before its handler
// can run (e.g. which modifier card to play). Options supplies the menu for
// humans; BotSelect resolves the same choice for bots without any UI,
// returning an index into the options (-1 declines).
type InputRequest struct {
	Prompt    string
	Options   func(playerID string) []string
	BotSelect func(playerID string, options []string) int
}

// Action is a stateless descriptor of a named capability. Predicates gate
// menu building; the Handler must independently re-check legality before
// mutating state. The enablement predicate is advisory, not a security
// boundary.
type Action struct {
	ID        string
	Label     string
	LabelFunc func(playerID string) string
	Enabled   func(playerID string) Reason
	Hidden    func(playerID string) Visibility
	Handler   func(playerID, input string)
	Input     *InputRequest
}

// DisplayLabel resolves the dynamic label when one is set.
func (a *Action) DisplayLabel(playerID string) string {
	if a.LabelFunc != nil {
		return a.LabelFunc(playerID)
	}
	return a.Label
}

// ActionSet is an ordered, keyed collection of actions making up one
// player-facing menu. Sets are rebuilt per menu refresh, never persisted.
type ActionSet struct {
	Name    string
	actions []*Action
	byID    map[string]*Action
}

// NewActionSet creates an empty named action set.
func NewActionSet(name string) *ActionSet {
	return &ActionSet{
		Name: name,
		byID: make(map[string]*Action),
	}
}

// Add appends an action, replacing any previous action with the same id.
func (s *ActionSet) Add(a *Action) {
	if prev, ok := s.byID[a.ID]; ok {
		for i, existing := range s.actions {
			if existing == prev {
				s.actions[i] = a
				break
			}
		}
	} else {
		s.actions = append(s.actions, a)
	}
	s.byID[a.ID] = a
}

// Get returns the action with the given id, or nil.
func (s *ActionSet) Get(id string) *Action {
	return s.byID[id]
}

// VisibleActions returns the actions a menu should show for the player, in
// insertion order.
func (s *ActionSet) VisibleActions(playerID string) []*Action {
	var out []*Action
	for _, a := range s.actions {
		if a.Hidden != nil && a.Hidden(playerID) == Hidden {
			continue
		}
		out = append(out, a)
	}
	return out
}

// EnabledActions returns the ids of actions currently permitted for the
// player. Turn-order integrity checks lean on this.
func (s *ActionSet) EnabledActions(playerID string) []string {
	var out []string
	for _, a := range s.actions {
		if a.Enabled == nil || a.Enabled(playerID).OK() {
			out = append(out, a.ID)
		}
	}
	return out
}

// Execute runs the single dispatch path shared by humans, bots and timer
// fallbacks: unknown action and failed enablement come back as tokens, and
// an action needing input that got none is resolved through BotSelect when
// possible, otherwise rejected.
func (s *ActionSet) Execute(playerID, actionID, input string) Reason {
	a := s.Get(actionID)
	if a == nil {
		return ReasonUnknownAction
	}
	if a.Enabled != nil {
		if r := a.Enabled(playerID); !r.OK() {
			return r
		}
	}
	if a.Input != nil && input == "" {
		if a.Input.BotSelect == nil {
			return ReasonInputRequired
		}
		options := a.Input.Options(playerID)
		choice := a.Input.BotSelect(playerID, options)
		if choice < 0 || choice >= len(options) {
			return ReasonInputRequired
		}
		input = options[choice]
	}
	a.Handler(playerID, input)
	return Allowed
}
