package engine

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeEngine records lifecycle calls and serves scripted results.
type fakeEngine struct {
	calls    []string
	rowsPer  int
	failRun  int // 1-based index of the run that fails; 0 = never
	failStop bool
	runCount int
}

func (f *fakeEngine) Start(headless bool) error {
	f.calls = append(f.calls, "start")
	if !headless {
		return errors.New("expected headless start")
	}
	if os.Getenv(HeadlessEnv) != "1" {
		return errors.New("headless toggle not set before start")
	}
	return nil
}

func (f *fakeEngine) Load(modelPath string) error {
	f.calls = append(f.calls, "load:"+modelPath)
	if modelPath == "missing.model" {
		return errors.New("no such model")
	}
	return nil
}

func (f *fakeEngine) Run(spec RunSpec) (*Table, error) {
	f.calls = append(f.calls, "run:"+spec.NetworkFile)
	f.runCount++
	if f.failRun != 0 && f.runCount == f.failRun {
		return nil, errors.New("scripted failure")
	}

	table := NewTable()
	for tick := 0; tick < f.rowsPer; tick++ {
		table.Rows = append(table.Rows, Row{Tick: tick, Node: 1, Support: 0.5})
	}
	return table, nil
}

func (f *fakeEngine) Stop() error {
	f.calls = append(f.calls, "stop")
	if f.failStop {
		return errors.New("shutdown refused")
	}
	return nil
}

func TestDriverLifecycle(t *testing.T) {
	eng := &fakeEngine{rowsPer: 3}
	drv := NewDriver(eng)
	require.Equal(t, NotStarted, drv.State())

	require.NoError(t, drv.StartHeadless("model.yaml"))
	require.Equal(t, ModelLoaded, drv.State())
	require.Equal(t, "1", os.Getenv(HeadlessEnv))

	table, err := drv.RunAll([]string{"a.msgpack", "b.msgpack"}, RunSpec{Ticks: 3})
	require.NoError(t, err)

	require.NoError(t, drv.Stop())
	require.Equal(t, Stopped, drv.State())
	require.Empty(t, os.Getenv(HeadlessEnv), "headless toggle must be cleared after stop")

	require.Equal(t, []string{
		"start", "load:model.yaml", "run:a.msgpack", "run:b.msgpack", "stop",
	}, eng.calls)

	// rows are tagged with the 1-based replicate index
	require.Equal(t, []int{1, 2}, table.Runs())
	require.Len(t, table.Rows, 6)
}

func TestDriverStopsEngineOnLoadFailure(t *testing.T) {
	eng := &fakeEngine{}
	drv := NewDriver(eng)

	err := drv.StartHeadless("missing.model")
	require.ErrorIs(t, err, ErrEngine)

	require.Equal(t, []string{"start", "load:missing.model", "stop"}, eng.calls)
	require.Empty(t, os.Getenv(HeadlessEnv))
}

func TestDriverReportsStopFailureAfterLoadFailure(t *testing.T) {
	eng := &fakeEngine{failStop: true}
	drv := NewDriver(eng)

	err := drv.StartHeadless("missing.model")
	require.ErrorIs(t, err, ErrEngine)
	require.Contains(t, err.Error(), "no such model")
	require.Contains(t, err.Error(), "shutdown refused")
	require.Empty(t, os.Getenv(HeadlessEnv))
}

func TestDriverRunFailureAbortsRemainingFiles(t *testing.T) {
	eng := &fakeEngine{rowsPer: 2, failRun: 2}
	drv := NewDriver(eng)

	require.NoError(t, drv.StartHeadless(""))
	_, err := drv.RunAll([]string{"a", "b", "c"}, RunSpec{Ticks: 2})
	require.ErrorIs(t, err, ErrEngine)

	// the caller's deferred stop still shuts the engine down
	require.NoError(t, drv.Stop())
	require.Equal(t, "stop", eng.calls[len(eng.calls)-1])
	require.NotContains(t, eng.calls, "run:c")
}

func TestDriverRequiresLoadedModel(t *testing.T) {
	drv := NewDriver(&fakeEngine{})
	_, err := drv.RunAll([]string{"a"}, RunSpec{})
	require.ErrorIs(t, err, ErrEngine)
}

func TestDriverStopIsIdempotent(t *testing.T) {
	eng := &fakeEngine{}
	drv := NewDriver(eng)
	require.NoError(t, drv.StartHeadless(""))

	require.NoError(t, drv.Stop())
	require.NoError(t, drv.Stop())

	stops := 0
	for _, call := range eng.calls {
		if call == "stop" {
			stops++
		}
	}
	require.Equal(t, 1, stops)
}

func TestDriverSessionIsSingleUse(t *testing.T) {
	drv := NewDriver(&fakeEngine{})
	require.NoError(t, drv.StartHeadless(""))
	require.NoError(t, drv.Stop())

	require.ErrorIs(t, drv.StartHeadless(""), ErrEngine)
}
