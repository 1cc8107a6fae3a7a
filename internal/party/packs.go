package party

import (
	"fmt"
	"strings"
)

// Pack is one themed set of answer cards and prompt cards. Prompts mark
// their blanks with underscores; a prompt with no blank asks for one card.
type Pack struct {
	Name    string   `json:"name"`
	Answers []string `json:"answers"`
	Prompts []string `json:"prompts"`
}

// AnswerCard is one dealt answer card. IDs are assigned per session when
// decks are built.
type AnswerCard struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Pack string `json:"pack"`
}

// PromptCard is one prompt with its required pick count.
type PromptCard struct {
	Text string `json:"text"`
	Pick int    `json:"pick"`
	Pack string `json:"pack"`
}

// promptPickCount derives how many answers a prompt needs from its blanks.
func promptPickCount(text string) int {
	pick := strings.Count(text, "_")
	if pick == 0 {
		pick = 1
	}
	return pick
}

// PackRegistry is an owned collection of card packs, built at process
// startup and passed to each session explicitly.
type PackRegistry struct {
	packs  []Pack
	byName map[string]int
}

// NewPackRegistry returns an empty registry.
func NewPackRegistry() *PackRegistry {
	return &PackRegistry{byName: make(map[string]int)}
}

// Register adds a pack. Registering a duplicate name panics; that is a
// wiring bug, not a runtime condition.
func (r *PackRegistry) Register(p Pack) {
	if _, exists := r.byName[p.Name]; exists {
		panic(fmt.Sprintf("card pack %q registered twice", p.Name))
	}
	r.byName[p.Name] = len(r.packs)
	r.packs = append(r.packs, p)
}

// Get returns the named pack.
func (r *PackRegistry) Get(name string) (Pack, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Pack{}, false
	}
	return r.packs[i], true
}

// Names lists the registered pack names in registration order.
func (r *PackRegistry) Names() []string {
	names := make([]string, len(r.packs))
	for i, p := range r.packs {
		names[i] = p.Name
	}
	return names
}

// DefaultRegistry returns a registry holding the built-in starter pack.
func DefaultRegistry() *PackRegistry {
	r := NewPackRegistry()
	r.Register(StarterPack())
	return r
}

// StarterPackName is the name of the built-in pack.
const StarterPackName = "Starter Pack"

// StarterPack returns the built-in pack shipped with the engine. External
// packs are loaded by the host and registered alongside it.
func StarterPack() Pack {
	return Pack{
		Name: StarterPackName,
		Answers: []string{
			"A sensible pair of shoes",
			"An alarmingly confident pigeon",
			"The last slice of pizza",
			"A motivational poster about synergy",
			"Grandma's secret recipe",
			"A suspiciously quiet toddler",
			"Free samples at the supermarket",
			"The office printer",
			"A conspiracy involving garden gnomes",
			"Interpretive dance",
			"An expired coupon",
			"The world's smallest violin",
			"A lifetime supply of bubble wrap",
			"Passive-aggressive sticky notes",
			"A raccoon in a tiny hat",
			"The five-second rule",
			"Somebody else's lunch from the shared fridge",
			"A very long voicemail from mom",
			"Decorative towels nobody may use",
			"The snooze button",
			"A dramatic weather forecast",
			"Unsolicited career advice",
			"A karaoke machine at 2 a.m.",
			"The neighbor's leaf blower",
			"An overly ambitious to-do list",
			"Mystery leftovers",
			"A glitter bomb",
			"The hold music",
			"One sock, origin unknown",
			"A detailed spreadsheet about nothing",
			"The group chat",
			"A haunted vending machine",
			"Aggressive small talk",
			"The committee that decides these things",
			"An inspirational mug",
			"Seventeen browser tabs",
			"A rogue shopping cart",
			"The instruction manual nobody read",
			"A firm handshake",
			"Cold coffee",
			"A surprise fire drill",
			"The wrong kind of attention",
			"An elaborate excuse",
			"A slightly used birthday candle",
			"The backup plan's backup plan",
			"A standing ovation for no reason",
			"Mandatory fun",
			"The thermostat wars",
		},
		Prompts: []string{
			"I never leave home without _.",
			"The real reason the meeting ran long: _.",
			"This year's office party was ruined by _.",
			"My therapist says I rely too much on _.",
			"The secret ingredient is always _.",
			"Instead of a resume, I handed them _.",
			"Nothing says romance like _.",
			"The museum's newest exhibit: _.",
			"I solved the mystery. It was _ all along.",
			"My autobiography will be titled '_'.",
			"Step one: _. Step two: _. Step three: profit.",
			"They combined _ and _ and called it innovation.",
			"The weather report warned us about _.",
			"My New Year's resolution is to finally quit _.",
			"The committee has replaced the fire alarm with _.",
			"What did I find under the couch? _.",
			"The wifi password is _.",
			"Breaking news: local hero saves town using _.",
			"My retirement plan is mostly _.",
			"The best part of waking up is _.",
		},
	}
}
