// Package runner drives game sessions on a ticker. The clock is injected so
// tests fast-forward through waits instead of sleeping through them.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/tablegames/internal/game"
)

// ErrTickBudgetExceeded is returned when a session outlives its tick cap.
var ErrTickBudgetExceeded = errors.New("session exceeded tick budget")

var errSessionFinished = errors.New("session finished")

// Session runs one seated game instance to completion.
type Session struct {
	Game   game.Game
	Clock  quartz.Clock
	Logger *log.Logger

	// Interval between engine ticks; defaults to the engine tick rate.
	Interval time.Duration
	// MaxTicks caps runaway sessions; 0 means no cap.
	MaxTicks int
}

// start validates and kicks off the game. Returns true when the game
// already reached a terminal state during OnStart.
func (s *Session) start() (bool, error) {
	if errs := s.Game.PrestartValidate(); len(errs) > 0 {
		return false, fmt.Errorf("invalid configuration: %v", errs)
	}
	s.Game.OnStart()
	if s.Logger != nil {
		s.Logger.Info("session started", "game", s.Game.Type())
	}
	return s.Game.Status() == game.StatusFinished, nil
}

// Run validates, starts, and ticks the game until it finishes or the
// context is cancelled, then returns the final result.
func (s *Session) Run(ctx context.Context) (*game.Result, error) {
	clock := s.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Second / game.TicksPerSecond
	}

	done, err := s.start()
	if err != nil {
		return nil, err
	}
	if done {
		return s.Game.BuildResult(), nil
	}

	ticks := 0
	waiter := clock.TickerFunc(ctx, interval, func() error {
		s.Game.OnTick()
		ticks++
		if s.Game.Status() == game.StatusFinished {
			return errSessionFinished
		}
		if s.MaxTicks > 0 && ticks >= s.MaxTicks {
			return ErrTickBudgetExceeded
		}
		return nil
	}, "runner.Session")

	err = waiter.Wait()
	switch {
	case errors.Is(err, errSessionFinished):
	case err != nil:
		return nil, err
	}

	result := s.Game.BuildResult()
	if s.Logger != nil {
		s.Logger.Info("session finished", "game", s.Game.Type(), "ticks", ticks)
	}
	return result, nil
}

// RunUnpaced ticks the game in a tight loop with no clock, for simulations
// where wall time per tick is waste.
func (s *Session) RunUnpaced(ctx context.Context) (*game.Result, error) {
	done, err := s.start()
	if err != nil {
		return nil, err
	}

	ticks := 0
	for !done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Game.OnTick()
		ticks++
		if s.Game.Status() == game.StatusFinished {
			break
		}
		if s.MaxTicks > 0 && ticks >= s.MaxTicks {
			return nil, ErrTickBudgetExceeded
		}
	}

	result := s.Game.BuildResult()
	if s.Logger != nil {
		s.Logger.Info("session finished", "game", s.Game.Type(), "ticks", ticks)
	}
	return result, nil
}
