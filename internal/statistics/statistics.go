// Package statistics aggregates finished session results for reporting.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lox/tablegames/internal/game"
)

// Aggregate accumulates results across simulated sessions.
type Aggregate struct {
	Sessions  int
	Decided   int // sessions that produced a winner
	SumTicks  float64
	SumTicks2 float64   // sum of squares for variance
	Ticks     []float64 // per-session durations for median calculation
	Wins      map[string]int
}

func NewAggregate() *Aggregate {
	return &Aggregate{Wins: make(map[string]int)}
}

// Add incorporates one finished session. Nil results are skipped so an
// aggregate can be built straight from a sparsely filled result slice.
func (a *Aggregate) Add(res *game.Result) {
	if res == nil {
		return
	}
	ticks := float64(res.DurationTicks)
	a.Sessions++
	a.SumTicks += ticks
	a.SumTicks2 += ticks * ticks
	a.Ticks = append(a.Ticks, ticks)

	if name, ok := res.Custom["winner_name"].(string); ok && name != "" {
		a.Decided++
		a.Wins[name]++
	}
}

// MeanTicks returns the mean session duration in ticks.
func (a *Aggregate) MeanTicks() float64 {
	if a.Sessions == 0 {
		return 0
	}
	return a.SumTicks / float64(a.Sessions)
}

// Variance returns the sample variance of session durations.
func (a *Aggregate) Variance() float64 {
	if a.Sessions < 2 {
		return 0
	}
	mean := a.MeanTicks()
	return (a.SumTicks2 - float64(a.Sessions)*mean*mean) / float64(a.Sessions-1)
}

func (a *Aggregate) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean duration.
func (a *Aggregate) StdError() float64 {
	if a.Sessions == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// session duration in ticks.
func (a *Aggregate) ConfidenceInterval95() (float64, float64) {
	mean := a.MeanTicks()
	margin := 1.96 * a.StdError()
	return mean - margin, mean + margin
}

// MedianTicks returns the median session duration in ticks.
func (a *Aggregate) MedianTicks() float64 {
	if len(a.Ticks) == 0 {
		return 0
	}
	sorted := make([]float64, len(a.Ticks))
	copy(sorted, a.Ticks)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// MeanGameTime converts the mean duration into wall-clock game time.
func (a *Aggregate) MeanGameTime() time.Duration {
	return time.Duration(a.MeanTicks()) * time.Second / game.TicksPerSecond
}

// Standing is one row of the winner table.
type Standing struct {
	Name  string  `json:"name"`
	Wins  int     `json:"wins"`
	Share float64 `json:"share"` // fraction of decided sessions, 0..1
}

// Standings returns winner rows ordered by wins descending, then name.
func (a *Aggregate) Standings() []Standing {
	rows := make([]Standing, 0, len(a.Wins))
	for name, wins := range a.Wins {
		row := Standing{Name: name, Wins: wins}
		if a.Decided > 0 {
			row.Share = float64(wins) / float64(a.Decided)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Report is the serializable summary of a simulation run.
type Report struct {
	GameType    string     `json:"game_type"`
	Sessions    int        `json:"sessions"`
	Decided     int        `json:"decided"`
	Elapsed     string     `json:"elapsed"`
	MeanTicks   float64    `json:"mean_ticks"`
	MedianTicks float64    `json:"median_ticks"`
	StdDevTicks float64    `json:"stddev_ticks"`
	Standings   []Standing `json:"standings"`
}

func (a *Aggregate) Report(gameType string, elapsed time.Duration) Report {
	return Report{
		GameType:    gameType,
		Sessions:    a.Sessions,
		Decided:     a.Decided,
		Elapsed:     elapsed.Round(time.Millisecond).String(),
		MeanTicks:   a.MeanTicks(),
		MedianTicks: a.MedianTicks(),
		StdDevTicks: a.StdDev(),
		Standings:   a.Standings(),
	}
}

// Validate checks the aggregate for internal consistency.
func (a *Aggregate) Validate() error {
	if len(a.Ticks) != a.Sessions {
		return fmt.Errorf("duration samples (%d) do not match session count (%d)", len(a.Ticks), a.Sessions)
	}
	totalWins := 0
	for _, n := range a.Wins {
		totalWins += n
	}
	if totalWins != a.Decided {
		return fmt.Errorf("win tally (%d) does not match decided sessions (%d)", totalWins, a.Decided)
	}
	if a.Decided > a.Sessions {
		return fmt.Errorf("decided sessions (%d) exceed total sessions (%d)", a.Decided, a.Sessions)
	}
	return nil
}
