package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/tablegames/internal/config"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

// PlayCmd runs one interactive table: a human seat on stdin plus bots.
type PlayCmd struct {
	Game   string `kong:"default='blackjack',help='Game type: blackjack, twentyone, party'"`
	Name   string `kong:"default='You',help='Your display name'"`
	Bots   int    `kong:"default='0',help='Bot seats to fill (0 picks a full table)'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Config string `kong:"help='Table configuration file (HCL)'"`
	Table  string `kong:"help='Table name inside the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)

	table, err := resolveTable(c.Config, c.Table, c.Game)
	if err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Debug("table ready", "game", table.Game, "seed", seed)

	var humanID string
	env := &game.Env{
		Broadcast: func(text string) { fmt.Println(text) },
		BroadcastExcept: func(playerID, text string) {
			if playerID != humanID {
				fmt.Println(text)
			}
		},
		SpeakTo: func(playerID, text string) {
			if playerID == humanID {
				fmt.Println(text)
			}
		},
		BroadcastPersonal: func(playerID, personal, thirdPerson string) {
			if playerID == humanID {
				fmt.Println(personal)
			} else {
				fmt.Println(thirdPerson)
			}
		},
		FinishGame: func() {},
	}

	g, err := newTableGame(table, env, rng, logger)
	if err != nil {
		return err
	}

	humanID, err = seatHuman(g, c.Name)
	if err != nil {
		return err
	}
	bots := c.Bots
	if bots <= 0 {
		bots = defaultBotCount(table.Game)
	}
	if bots > g.MaxPlayers()-1 {
		bots = g.MaxPlayers() - 1
	}
	if bots < g.MinPlayers()-1 {
		bots = g.MinPlayers() - 1
	}
	if err := seatBots(g, bots); err != nil {
		return err
	}

	if errs := g.PrestartValidate(); len(errs) > 0 {
		return fmt.Errorf("invalid table options: %v", errs)
	}

	fmt.Printf("Playing %s with %d bots. Type 'help' for commands.\n", table.Game, bots)
	g.OnStart()

	return c.loop(g, humanID)
}

// loop serializes ticks and stdin dispatch onto one goroutine; the engine
// requires that no two actions or ticks run concurrently.
func (c *PlayCmd) loop(g game.Game, humanID string) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	clock := quartz.NewReal()
	ticker := clock.NewTicker(time.Second / game.TicksPerSecond)
	defer ticker.Stop()

	for g.Status() != game.StatusFinished {
		select {
		case <-ticker.C:
			g.OnTick()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.dispatch(g, humanID, line); quit {
				return nil
			}
		}
	}

	if res := g.BuildResult(); res != nil {
		if name, ok := res.Custom["winner_name"]; ok {
			fmt.Printf("Winner: %v\n", name)
		}
	}
	return nil
}

// dispatch handles one input line. Returns true on quit.
func (c *PlayCmd) dispatch(g game.Game, humanID, line string) bool {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "help", "actions":
		printMenu(g, humanID)
		return false
	}

	actionID := fields[0]
	input := ""
	set := g.Actions(humanID)
	if set == nil {
		fmt.Println("No actions available.")
		return false
	}
	action := set.Get(actionID)
	if action == nil {
		fmt.Printf("Unknown action %q. Type 'help' for the menu.\n", actionID)
		return false
	}

	// Choice-taking actions accept a menu number; with no number given,
	// show the menu instead of silently auto-picking.
	if action.Input != nil {
		options := action.Input.Options(humanID)
		if len(fields) < 2 {
			fmt.Println(action.Input.Prompt + ":")
			for i, opt := range options {
				fmt.Printf("  %d. %s\n", i, stripOptionIndex(opt))
			}
			fmt.Printf("Choose with '%s <number>'.\n", actionID)
			return false
		}
		choice, err := strconv.Atoi(fields[1])
		if err != nil || choice < 0 || choice >= len(options) {
			fmt.Printf("Pick a number between 0 and %d.\n", len(options)-1)
			return false
		}
		input = options[choice]
	}

	if r := g.Execute(humanID, actionID, input); !r.OK() {
		fmt.Printf("Can't do that: %s\n", r)
	}
	return false
}

// stripOptionIndex drops the "n:" routing prefix the engine puts on menu
// options before showing them to a human.
func stripOptionIndex(option string) string {
	if _, rest, found := strings.Cut(option, ":"); found {
		return rest
	}
	return option
}

func printMenu(g game.Game, humanID string) {
	set := g.Actions(humanID)
	if set == nil {
		fmt.Println("No actions available.")
		return
	}
	visible := set.VisibleActions(humanID)
	if len(visible) == 0 {
		fmt.Println("Nothing to do right now.")
		return
	}
	fmt.Println("Actions:")
	for _, a := range visible {
		status := ""
		if a.Enabled != nil {
			if r := a.Enabled(humanID); !r.OK() {
				status = fmt.Sprintf(" (unavailable: %s)", r)
			}
		}
		fmt.Printf("  %-16s %s%s\n", a.ID, a.DisplayLabel(humanID), status)
	}
}

// resolveTable loads the named table from a config file, or builds an
// ad-hoc table for the requested game type.
func resolveTable(path, tableName, gameType string) (config.TableConfig, error) {
	if path == "" {
		return config.TableConfig{Name: "adhoc", Game: gameType}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.TableConfig{}, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return config.TableConfig{}, fmt.Errorf("invalid config: %v", errs)
	}
	if tableName == "" {
		if len(cfg.Tables) == 0 {
			return config.TableConfig{}, fmt.Errorf("config %s defines no tables", path)
		}
		return cfg.Tables[0], nil
	}
	t, ok := cfg.Table(tableName)
	if !ok {
		return config.TableConfig{}, fmt.Errorf("no table %q in %s", tableName, path)
	}
	return t, nil
}
