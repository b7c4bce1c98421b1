// Package metrics computes per-run summary statistics from the bucketed
// result table and exports them as CSV and as a sqlite archive.
package metrics

import (
	"movement-sim/results"
)

// NoCrossover is reported as crossover_tick when the supportive fraction
// never exceeds the opposed fraction.
const NoCrossover = -1

// Variable names of the reported statistics.
const (
	VarPeakSupport   = "peak_support"
	VarCrossoverTick = "crossover_tick"
)

// ConfigColumns carries the configuration parameters attached verbatim to
// every metrics row. All fields are plain scalars, materialized by the
// caller before reporting; never closures or deferred expressions.
type ConfigColumns struct {
	Lambda    float64
	Percent   float64
	NumNodes  int
	Allies    bool
	Homophily bool
	Degree    int
}

// Row is one computed statistic for one run, tagged with the run's
// configuration.
type Row struct {
	Run       int
	Lambda    float64
	Percent   float64
	NumNodes  int
	Allies    bool
	Homophily bool
	Degree    int
	Variable  string
	Value     float64
}

// Report computes, per run, the peak supportive fraction over all ticks and
// the first tick at which the supportive fraction exceeds the opposed
// fraction (NoCrossover if it never does).
func Report(t *results.LeveledTable, cols ConfigColumns) []Row {
	var rows []Row

	for _, run := range t.Runs() {
		peak := 0.0
		crossover := NoCrossover

		for _, tick := range t.Ticks() {
			counts := t.LevelCounts(run, tick)
			total := 0
			for _, c := range counts {
				total += c
			}
			if total == 0 {
				continue
			}

			supportive := float64(counts[results.LevelSupportive]) / float64(total)
			opposed := float64(counts[results.LevelOpposed]) / float64(total)

			if supportive > peak {
				peak = supportive
			}
			if crossover == NoCrossover && supportive > opposed {
				crossover = tick
			}
		}

		rows = append(rows,
			newRow(run, cols, VarPeakSupport, peak),
			newRow(run, cols, VarCrossoverTick, float64(crossover)),
		)
	}

	return rows
}

func newRow(run int, cols ConfigColumns, variable string, value float64) Row {
	return Row{
		Run:       run,
		Lambda:    cols.Lambda,
		Percent:   cols.Percent,
		NumNodes:  cols.NumNodes,
		Allies:    cols.Allies,
		Homophily: cols.Homophily,
		Degree:    cols.Degree,
		Variable:  variable,
		Value:     value,
	}
}
