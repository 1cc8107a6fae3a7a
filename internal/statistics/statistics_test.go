package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablegames/internal/game"
)

func result(winner string, ticks int) *game.Result {
	res := &game.Result{
		GameType:      "twentyone",
		DurationTicks: ticks,
		Custom:        map[string]any{},
	}
	if winner != "" {
		res.Custom["winner_name"] = winner
	}
	return res
}

func TestAggregateCounts(t *testing.T) {
	a := NewAggregate()
	a.Add(result("Ada", 100))
	a.Add(result("Bea", 200))
	a.Add(result("Ada", 300))
	a.Add(nil)
	a.Add(result("", 400)) // finished without a winner

	assert.Equal(t, 4, a.Sessions)
	assert.Equal(t, 3, a.Decided)
	assert.Equal(t, map[string]int{"Ada": 2, "Bea": 1}, a.Wins)
	assert.NoError(t, a.Validate())
}

func TestAggregateDurationStats(t *testing.T) {
	a := NewAggregate()
	for _, ticks := range []int{100, 200, 300, 400} {
		a.Add(result("Ada", ticks))
	}

	assert.InDelta(t, 250, a.MeanTicks(), 1e-9)
	assert.InDelta(t, 250, a.MedianTicks(), 1e-9)
	assert.InDelta(t, 129.099, a.StdDev(), 0.001)

	lo, hi := a.ConfidenceInterval95()
	assert.Less(t, lo, a.MeanTicks())
	assert.Greater(t, hi, a.MeanTicks())

	// 250 ticks at 20 ticks/second
	assert.Equal(t, 12500*time.Millisecond, a.MeanGameTime())
}

func TestAggregateMedianOddCount(t *testing.T) {
	a := NewAggregate()
	for _, ticks := range []int{500, 100, 300} {
		a.Add(result("Ada", ticks))
	}
	assert.InDelta(t, 300, a.MedianTicks(), 1e-9)
}

func TestStandingsOrdering(t *testing.T) {
	a := NewAggregate()
	a.Add(result("Bea", 10))
	a.Add(result("Ada", 10))
	a.Add(result("Cam", 10))
	a.Add(result("Cam", 10))

	rows := a.Standings()
	require.Len(t, rows, 3)
	assert.Equal(t, "Cam", rows[0].Name)
	assert.Equal(t, 2, rows[0].Wins)
	assert.InDelta(t, 0.5, rows[0].Share, 1e-9)
	// ties break alphabetically
	assert.Equal(t, "Ada", rows[1].Name)
	assert.Equal(t, "Bea", rows[2].Name)
}

func TestReport(t *testing.T) {
	a := NewAggregate()
	a.Add(result("Ada", 100))
	a.Add(result("Bea", 300))

	rep := a.Report("party", 1500*time.Millisecond)
	assert.Equal(t, "party", rep.GameType)
	assert.Equal(t, 2, rep.Sessions)
	assert.Equal(t, 2, rep.Decided)
	assert.Equal(t, "1.5s", rep.Elapsed)
	assert.InDelta(t, 200, rep.MeanTicks, 1e-9)
	require.Len(t, rep.Standings, 2)
}

func TestValidateCatchesMismatch(t *testing.T) {
	a := NewAggregate()
	a.Add(result("Ada", 100))
	a.Wins["Ada"] = 5
	assert.Error(t, a.Validate())
}

func TestEmptyAggregate(t *testing.T) {
	a := NewAggregate()
	assert.Zero(t, a.MeanTicks())
	assert.Zero(t, a.MedianTicks())
	assert.Zero(t, a.StdDev())
	assert.Empty(t, a.Standings())
	assert.NoError(t, a.Validate())
}
