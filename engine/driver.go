package engine

import (
	"fmt"
	"os"
)

// HeadlessEnv is set to "1" while a headless engine session is live, so the
// engine process starts without a graphical subsystem.
const HeadlessEnv = "NOAWT"

// DriverState tracks the engine session lifecycle.
type DriverState int

const (
	NotStarted DriverState = iota
	ModelLoaded
	Stopped
)

// Driver owns one engine session per configuration: start, load the model,
// run every network file, stop. The session is started and stopped once per
// configuration, never shared across configurations.
type Driver struct {
	eng   Engine
	state DriverState
}

// NewDriver wraps an engine in a fresh, not yet started driver.
func NewDriver(eng Engine) *Driver {
	return &Driver{eng: eng, state: NotStarted}
}

// State returns the current lifecycle state.
func (d *Driver) State() DriverState {
	return d.state
}

// StartHeadless sets the headless toggle, boots the engine and loads the
// model definition. On load failure the engine is stopped again so the
// process is never leaked.
func (d *Driver) StartHeadless(modelPath string) error {
	if d.state != NotStarted {
		return fmt.Errorf("%w: session already used", ErrEngine)
	}

	if err := os.Setenv(HeadlessEnv, "1"); err != nil {
		return fmt.Errorf("%w: set headless toggle: %v", ErrEngine, err)
	}

	if err := d.eng.Start(true); err != nil {
		os.Unsetenv(HeadlessEnv)
		return fmt.Errorf("%w: start: %v", ErrEngine, err)
	}

	if err := d.eng.Load(modelPath); err != nil {
		if stopErr := d.Stop(); stopErr != nil {
			return fmt.Errorf("%w: load %s: %v (stop: %v)", ErrEngine, modelPath, err, stopErr)
		}
		return fmt.Errorf("%w: load %s: %v", ErrEngine, modelPath, err)
	}

	d.state = ModelLoaded
	return nil
}

// RunAll executes one simulation per network file and combines all rows into
// a single table, tagged with the 1-based replicate index. A failed run
// aborts the remaining files; the caller still owns the Stop.
func (d *Driver) RunAll(files []string, spec RunSpec) (*Table, error) {
	if d.state != ModelLoaded {
		return nil, fmt.Errorf("%w: run without a loaded model", ErrEngine)
	}

	combined := NewTable()
	for i, file := range files {
		runSpec := spec
		runSpec.NetworkFile = file
		if spec.Seed != 0 {
			// distinct replicate seeds, still deterministic
			runSpec.Seed = spec.Seed + int64(i)
		}

		table, err := d.eng.Run(runSpec)
		if err != nil {
			return nil, fmt.Errorf("%w: run %d (%s): %v", ErrEngine, i+1, file, err)
		}

		combined.AppendTagged(i+1, table.Rows)
	}

	return combined, nil
}

// Stop shuts the engine down and clears the headless toggle. Safe to call on
// every exit path; repeated stops are no-ops.
func (d *Driver) Stop() error {
	if d.state == Stopped {
		return nil
	}
	d.state = Stopped

	err := d.eng.Stop()
	os.Unsetenv(HeadlessEnv)
	if err != nil {
		return fmt.Errorf("%w: stop: %v", ErrEngine, err)
	}
	return nil
}
