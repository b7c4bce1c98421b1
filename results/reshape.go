// Package results holds the pure reshaping transformations applied to the
// engine's result table before metrics and plotting: population
// sub-sampling, support-level bucketing and reporting-tick filtering.
package results

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"movement-sim/engine"
)

// ErrDataShape marks an expected column or tick missing from the results.
var ErrDataShape = errors.New("data shape error")

// Level is a discrete support bucket.
type Level int

const (
	LevelOpposed Level = iota
	LevelNeutral
	LevelSupportive
)

// Levels lists the buckets in display order.
var Levels = []Level{LevelOpposed, LevelNeutral, LevelSupportive}

func (l Level) String() string {
	switch l {
	case LevelOpposed:
		return "opposed"
	case LevelNeutral:
		return "neutral"
	case LevelSupportive:
		return "supportive"
	}
	return "unknown"
}

// BucketOptions configures the midpoint bucketing of continuous support.
type BucketOptions struct {
	// Midpoint is the center of the neutral band.
	Midpoint float64
	// Band is the half-width of the neutral band; zero yields a two-level
	// opposed/supportive split.
	Band float64
}

// Subsample keeps floor(N*frac) distinct nodes per run, chosen once and
// applied identically across all ticks of that run. The input table is not
// modified.
func Subsample(t *engine.Table, frac float64, rng *rand.Rand) (*engine.Table, error) {
	if frac <= 0 || frac > 1 {
		return nil, fmt.Errorf("%w: sample fraction %v outside (0,1]", ErrDataShape, frac)
	}

	// distinct nodes per run, in deterministic order
	runNodes := make(map[int][]int64)
	seen := make(map[int]map[int64]bool)
	for _, row := range t.Rows {
		if seen[row.Run] == nil {
			seen[row.Run] = make(map[int64]bool)
		}
		if !seen[row.Run][row.Node] {
			seen[row.Run][row.Node] = true
			runNodes[row.Run] = append(runNodes[row.Run], row.Node)
		}
	}

	// draw per run in ascending run order; map iteration order would consume
	// the rng differently on every invocation
	runs := make([]int, 0, len(runNodes))
	for run := range runNodes {
		runs = append(runs, run)
	}
	sort.Ints(runs)

	keep := make(map[int]map[int64]bool)
	for _, run := range runs {
		nodes := runNodes[run]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

		k := int(math.Floor(float64(len(nodes)) * frac))
		kept := make(map[int64]bool, k)
		for _, idx := range rng.Perm(len(nodes))[:k] {
			kept[nodes[idx]] = true
		}
		keep[run] = kept
	}

	out := engine.NewTable()
	for _, row := range t.Rows {
		if keep[row.Run][row.Node] {
			out.Rows = append(out.Rows, row)
		}
	}

	return out, nil
}

// LeveledRow is one bucketed observation.
type LeveledRow struct {
	Run   int
	Tick  int
	Node  int64
	Level Level
}

// LeveledTable is the bucketed counterpart of an engine result table.
type LeveledTable struct {
	Rows []LeveledRow
}

// Bucket maps continuous support values into discrete levels around the
// configured midpoint.
func Bucket(t *engine.Table, opt BucketOptions) *LeveledTable {
	out := &LeveledTable{Rows: make([]LeveledRow, 0, len(t.Rows))}
	for _, row := range t.Rows {
		level := LevelNeutral
		switch {
		case row.Support < opt.Midpoint-opt.Band:
			level = LevelOpposed
		case row.Support > opt.Midpoint+opt.Band:
			level = LevelSupportive
		}
		out.Rows = append(out.Rows, LeveledRow{
			Run:   row.Run,
			Tick:  row.Tick,
			Node:  row.Node,
			Level: level,
		})
	}
	return out
}

// FilterTicks restricts the table to the given reporting ticks. A requested
// tick with no rows at all is a shape error, not an empty result.
func FilterTicks(t *LeveledTable, ticks []int) (*LeveledTable, error) {
	want := make(map[int]bool, len(ticks))
	for _, tick := range ticks {
		want[tick] = true
	}

	present := make(map[int]bool)
	out := &LeveledTable{}
	for _, row := range t.Rows {
		if want[row.Tick] {
			present[row.Tick] = true
			out.Rows = append(out.Rows, row)
		}
	}

	for _, tick := range ticks {
		if !present[tick] {
			return nil, fmt.Errorf("%w: tick %d missing from results", ErrDataShape, tick)
		}
	}

	return out, nil
}

// Runs returns the distinct run indices in ascending order.
func (t *LeveledTable) Runs() []int {
	seen := make(map[int]bool)
	var runs []int
	for _, row := range t.Rows {
		if !seen[row.Run] {
			seen[row.Run] = true
			runs = append(runs, row.Run)
		}
	}
	sort.Ints(runs)
	return runs
}

// Ticks returns the distinct ticks in ascending order.
func (t *LeveledTable) Ticks() []int {
	seen := make(map[int]bool)
	var ticks []int
	for _, row := range t.Rows {
		if !seen[row.Tick] {
			seen[row.Tick] = true
			ticks = append(ticks, row.Tick)
		}
	}
	sort.Ints(ticks)
	return ticks
}

// LevelCounts counts rows per level for one run and tick.
func (t *LeveledTable) LevelCounts(run int, tick int) map[Level]int {
	counts := make(map[Level]int)
	for _, row := range t.Rows {
		if row.Run == run && row.Tick == tick {
			counts[row.Level]++
		}
	}
	return counts
}
