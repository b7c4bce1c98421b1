// Package engine defines the API surface of the external simulation engine
// and the driver that manages its lifecycle. The engine itself is a
// collaborator behind the Engine interface; engine/support ships one
// in-process implementation.
package engine

import (
	"errors"
	"sort"
)

// ErrEngine marks failures of the external engine: start, load or run.
var ErrEngine = errors.New("engine error")

// Row is one per-tick, per-node observation returned by the engine.
// Run is the 1-based replicate index, assigned by the driver.
type Row struct {
	Run     int
	Tick    int
	Node    int64
	Support float64
}

// Table is the combined result set of one configuration, kept in memory only
// while that configuration is processed.
type Table struct {
	Rows []Row
}

// NewTable creates an empty result table.
func NewTable() *Table {
	return &Table{Rows: make([]Row, 0)}
}

// AppendTagged appends rows with their Run field overwritten by run.
func (t *Table) AppendTagged(run int, rows []Row) {
	for _, row := range rows {
		row.Run = run
		t.Rows = append(t.Rows, row)
	}
}

// Runs returns the distinct run indices in ascending order.
func (t *Table) Runs() []int {
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

// RunSpec describes one simulation run over one network file.
type RunSpec struct {
	NetworkFile string
	Ticks       int

	// behavior function selectors, resolved by the engine's registries
	Growth          string
	RandomInfluence string
	Response        string

	MinorityOnset   int
	AllyOnset       int
	InfluenceWeight float64

	// Seed for the engine's random source; 0 leaves the engine unseeded.
	Seed int64
}

// Engine is the external simulation engine API surface. One model may be
// loaded at a time; the engine is an exclusive resource.
type Engine interface {
	// Start boots the engine, optionally without a graphical subsystem.
	Start(headless bool) error

	// Load loads the model definition. Requires a started engine.
	Load(modelPath string) error

	// Run executes one simulation over spec.NetworkFile for spec.Ticks and
	// returns the per-tick table (Run field left at zero).
	Run(spec RunSpec) (*Table, error)

	// Stop shuts the engine down. Stopping a stopped engine is a no-op.
	Stop() error
}
