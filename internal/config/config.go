// Package config loads table definitions from HCL files. A missing file
// yields the built-in defaults; a malformed file is an error.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/tablegames/internal/blackjack"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/party"
	"github.com/lox/tablegames/internal/twentyone"
)

// Config is the complete engine configuration.
type Config struct {
	Engine *EngineSettings `hcl:"engine,block"`
	Tables []TableConfig   `hcl:"table,block"`
}

// EngineSettings contains process-level configuration.
type EngineSettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	// Seed pins the shared random source; 0 derives one from the clock.
	Seed int64 `hcl:"seed,optional"`
}

// TableConfig defines one table: which game runs on it, how many bot seats
// to fill, and the game's option block. Unset option fields keep the game's
// defaults.
type TableConfig struct {
	Name string `hcl:"name,label"`
	Game string `hcl:"game"`
	Bots int    `hcl:"bots,optional"`

	Blackjack *BlackjackBlock `hcl:"blackjack,block"`
	TwentyOne *TwentyOneBlock `hcl:"twentyone,block"`
	Party     *PartyBlock     `hcl:"party,block"`
}

// BlackjackBlock is the blackjack option block.
type BlackjackBlock struct {
	StartingChips    int    `hcl:"starting_chips,optional"`
	BaseBet          int    `hcl:"base_bet,optional"`
	TableMinBet      int    `hcl:"table_min_bet,optional"`
	TableMaxBet      int    `hcl:"table_max_bet,optional"`
	DeckCount        int    `hcl:"deck_count,optional"`
	TurnTimerSeconds int    `hcl:"turn_timer_seconds,optional"`
	RulesProfile     string `hcl:"rules_profile,optional"`
}

// TwentyOneBlock is the survival-21 option block.
type TwentyOneBlock struct {
	StartingHealth            int `hcl:"starting_health,optional"`
	BaseBet                   int `hcl:"base_bet,optional"`
	StartingModifiersPerRound int `hcl:"starting_modifiers_per_round,optional"`
	DrawModifierChancePercent int `hcl:"draw_modifier_chance_percent,optional"`
	DeckCount                 int `hcl:"deck_count,optional"`
	NextRoundWaitTicks        int `hcl:"next_round_wait_ticks,optional"`
	TurnTimerSeconds          int `hcl:"turn_timer_seconds,optional"`
}

// PartyBlock is the party game option block.
type PartyBlock struct {
	WinningScore int      `hcl:"winning_score,optional"`
	HandSize     int      `hcl:"hand_size,optional"`
	Packs        []string `hcl:"packs,optional"`
	JudgeMode    string   `hcl:"judge_mode,optional"`
	NumJudges    int      `hcl:"num_judges,optional"`
}

// Default returns the built-in configuration: one blackjack table with
// three bot seats.
func Default() *Config {
	return &Config{
		Engine: &EngineSettings{
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name: "main",
				Game: blackjack.GameType,
				Bots: 3,
			},
		},
	}
}

// Load reads configuration from an HCL file. A missing file returns the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Parse decodes configuration from in-memory HCL source.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == nil {
		c.Engine = &EngineSettings{}
	}
	if c.Engine.LogLevel == "" {
		c.Engine.LogLevel = "info"
	}
}

// seatRange is the seat count envelope per game type. Per-game option
// validation stays with the games themselves via PrestartValidate; the
// config layer only checks what the games cannot see.
var seatRange = map[string][2]int{
	blackjack.GameType: {1, 7},
	twentyone.GameType: {2, 2},
	party.GameType:     {3, 10},
}

// Validate returns configuration violation tokens for problems the decode
// cannot catch.
func (c *Config) Validate() []game.Reason {
	var errs []game.Reason
	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if seen[t.Name] {
			errs = append(errs, "config-error-duplicate-table")
		}
		seen[t.Name] = true

		seats, known := seatRange[t.Game]
		if !known {
			errs = append(errs, "config-error-unknown-game")
			continue
		}
		if t.Bots > 0 && (t.Bots < seats[0] || t.Bots > seats[1]) {
			errs = append(errs, "config-error-bot-count")
		}
	}
	return errs
}

// Table returns the named table config.
func (c *Config) Table(name string) (TableConfig, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableConfig{}, false
}

// BlackjackOptions resolves the table's blackjack options, with defaults
// for unset fields.
func (t TableConfig) BlackjackOptions() blackjack.Options {
	opts := blackjack.DefaultOptions()
	b := t.Blackjack
	if b == nil {
		return opts
	}
	if b.StartingChips > 0 {
		opts.StartingChips = b.StartingChips
	}
	if b.BaseBet > 0 {
		opts.BaseBet = b.BaseBet
	}
	if b.TableMinBet > 0 {
		opts.TableMinBet = b.TableMinBet
	}
	if b.TableMaxBet > 0 {
		opts.TableMaxBet = b.TableMaxBet
	}
	if b.DeckCount > 0 {
		opts.DeckCount = b.DeckCount
	}
	if b.TurnTimerSeconds > 0 {
		opts.TurnTimerSeconds = b.TurnTimerSeconds
	}
	if b.RulesProfile != "" {
		opts.ApplyProfile(b.RulesProfile)
	}
	return opts
}

// TwentyOneOptions resolves the table's survival-21 options.
func (t TableConfig) TwentyOneOptions() twentyone.Options {
	opts := twentyone.DefaultOptions()
	b := t.TwentyOne
	if b == nil {
		return opts
	}
	if b.StartingHealth > 0 {
		opts.StartingHealth = b.StartingHealth
	}
	if b.BaseBet > 0 {
		opts.BaseBet = b.BaseBet
	}
	if b.StartingModifiersPerRound > 0 {
		opts.StartingModifiersPerRound = b.StartingModifiersPerRound
	}
	if b.DrawModifierChancePercent > 0 {
		opts.DrawModifierChancePercent = b.DrawModifierChancePercent
	}
	if b.DeckCount > 0 {
		opts.DeckCount = b.DeckCount
	}
	if b.NextRoundWaitTicks > 0 {
		opts.NextRoundWaitTicks = b.NextRoundWaitTicks
	}
	if b.TurnTimerSeconds > 0 {
		opts.TurnTimerSeconds = b.TurnTimerSeconds
	}
	return opts
}

// PartyOptions resolves the table's party game options.
func (t TableConfig) PartyOptions() party.Options {
	opts := party.DefaultOptions()
	b := t.Party
	if b == nil {
		return opts
	}
	if b.WinningScore > 0 {
		opts.WinningScore = b.WinningScore
	}
	if b.HandSize > 0 {
		opts.HandSize = b.HandSize
	}
	if len(b.Packs) > 0 {
		opts.Packs = b.Packs
	}
	if b.JudgeMode != "" {
		opts.JudgeMode = b.JudgeMode
	}
	if b.NumJudges > 0 {
		opts.NumJudges = b.NumJudges
	}
	return opts
}
