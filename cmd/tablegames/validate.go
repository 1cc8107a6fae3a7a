package main

import (
	"fmt"

	"github.com/lox/tablegames/internal/config"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
)

// ValidateConfigCmd checks a configuration file without running anything.
type ValidateConfigCmd struct {
	Path  string `kong:"arg,help='Configuration file to check'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *ValidateConfigCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Path)
	if err != nil {
		return err
	}

	problems := cfg.Validate()

	// Per-game option rules live with the games; construct each table and
	// ask it.
	for _, table := range cfg.Tables {
		g, err := newTableGame(table, game.NopEnv(), randutil.New(0), logger)
		if err != nil {
			continue // already reported as config-error-unknown-game
		}
		problems = append(problems, g.PrestartValidate()...)
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("  %s\n", p)
		}
		return fmt.Errorf("%s: %d problem(s)", c.Path, len(problems))
	}

	fmt.Printf("%s: %d table(s) OK\n", c.Path, len(cfg.Tables))
	return nil
}
