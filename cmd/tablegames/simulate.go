package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/lox/tablegames/internal/fileutil"
	"github.com/lox/tablegames/internal/game"
	"github.com/lox/tablegames/internal/randutil"
	"github.com/lox/tablegames/internal/runner"
	"github.com/lox/tablegames/internal/statistics"
)

// SimulateCmd runs bot-only sessions in parallel and reports standings.
type SimulateCmd struct {
	Game     string `kong:"default='blackjack',help='Game type: blackjack, twentyone, party'"`
	Sessions int    `kong:"default='20',help='Number of sessions to run'"`
	Bots     int    `kong:"default='0',help='Bot seats per session (0 picks a full table)'"`
	Seed     int64  `kong:"default='0',help='Base RNG seed (0 for random); session i uses seed+i'"`
	Parallel int    `kong:"default='4',help='Concurrent sessions'"`
	MaxTicks int    `kong:"default='500000',help='Tick budget per session'"`
	Config   string `kong:"help='Table configuration file (HCL)'"`
	Table    string `kong:"help='Table name inside the config file'"`
	Out      string `kong:"help='Write a JSON report to this file'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	table, err := resolveTable(c.Config, c.Table, c.Game)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bots := c.Bots
	if bots <= 0 {
		bots = table.Bots
	}
	if bots <= 0 {
		bots = defaultBotCount(table.Game)
	}

	logger.Info("simulating", "game", table.Game, "sessions", c.Sessions, "bots", bots, "seed", seed)

	ctx := signalContext(logger)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.Parallel)

	results := make([]*game.Result, c.Sessions)
	started := time.Now()
	for i := 0; i < c.Sessions; i++ {
		eg.Go(func() error {
			rng := randutil.New(seed + int64(i))
			g, err := newTableGame(table, game.NopEnv(), rng, logger)
			if err != nil {
				return err
			}
			if err := seatBots(g, bots); err != nil {
				return err
			}
			session := &runner.Session{Game: g, Logger: logger, MaxTicks: c.MaxTicks}
			res, err := session.RunUnpaced(ctx)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, seed+int64(i), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	agg := statistics.NewAggregate()
	for _, res := range results {
		agg.Add(res)
	}
	if err := agg.Validate(); err != nil {
		return fmt.Errorf("inconsistent results: %w", err)
	}

	elapsed := time.Since(started)
	printStandings(table.Game, agg, elapsed)

	if c.Out != "" {
		report := agg.Report(table.Game, elapsed)
		if err := fileutil.WriteJSONAtomic(c.Out, report, 0644); err != nil {
			return err
		}
		logger.Info("report written", "path", c.Out)
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4"))
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func printStandings(gameType string, agg *statistics.Aggregate, elapsed time.Duration) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d sessions in %s", gameType, agg.Sessions, elapsed.Round(time.Millisecond))))
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-20s %6s %7s", "player", "wins", "share")))
	for _, row := range agg.Standings() {
		fmt.Println(rowStyle.Render(fmt.Sprintf("%-20s %6d %6.1f%%", row.Name, row.Wins, row.Share*100)))
	}
	if agg.Sessions > 0 {
		fmt.Println(faintStyle.Render(fmt.Sprintf("average session length: %.0f ticks (%s of game time)",
			agg.MeanTicks(), agg.MeanGameTime().Round(time.Second))))
	}
}
