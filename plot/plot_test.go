package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"movement-sim/engine"
	"movement-sim/results"
)

func pollTable() *results.LeveledTable {
	t := &results.LeveledTable{}
	for run := 1; run <= 2; run++ {
		for _, tick := range []int{0, 5, 10} {
			t.Rows = append(t.Rows,
				results.LeveledRow{Run: run, Tick: tick, Node: 0, Level: results.LevelOpposed},
				results.LeveledRow{Run: run, Tick: tick, Node: 1, Level: results.LevelOpposed},
				results.LeveledRow{Run: run, Tick: tick, Node: 2, Level: results.LevelNeutral},
				results.LeveledRow{Run: run, Tick: tick, Node: 3, Level: results.LevelSupportive},
			)
		}
	}
	return t
}

func snapshotTable() *engine.Table {
	t := engine.NewTable()
	for _, tick := range []int{0, 50, 100} {
		for node := int64(0); node < 40; node++ {
			t.Rows = append(t.Rows, engine.Row{
				Run:     1,
				Tick:    tick,
				Node:    node,
				Support: float64(node) / 40,
			})
		}
	}
	return t
}

func TestPollSpecAveragesAcrossRuns(t *testing.T) {
	spec := PollSpec(pollTable(), "poll")

	require.Len(t, spec.Series, 3, "one series per support level")
	for _, series := range spec.Series {
		require.Equal(t, []float64{0, 5, 10}, series.X)
	}

	byName := make(map[string]SeriesSpec)
	for _, series := range spec.Series {
		byName[series.Name] = series
	}
	require.Equal(t, []float64{2, 2, 2}, byName["opposed"].Y)
	require.Equal(t, []float64{1, 1, 1}, byName["neutral"].Y)
	require.Equal(t, []float64{1, 1, 1}, byName["supportive"].Y)
}

func TestSupportSpecHistograms(t *testing.T) {
	spec, err := SupportSpec(snapshotTable(), 1, []int{0, 50, 100}, 10, "snapshot")
	require.NoError(t, err)
	require.Len(t, spec.Series, 3, "one series per snapshot tick")

	for _, series := range spec.Series {
		require.Len(t, series.X, 10)
		total := 0.0
		for _, y := range series.Y {
			total += y
		}
		require.Equal(t, 40.0, total, "every node lands in exactly one bin")
	}
}

func TestSupportSpecRejectsMissingTick(t *testing.T) {
	_, err := SupportSpec(snapshotTable(), 1, []int{0, 7}, 10, "snapshot")
	require.ErrorIs(t, err, results.ErrDataShape)

	_, err = SupportSpec(snapshotTable(), 9, []int{0}, 10, "snapshot")
	require.ErrorIs(t, err, results.ErrDataShape)
}

func TestSpecSaveAndLoad(t *testing.T) {
	spec := PollSpec(pollTable(), "poll")

	path := filepath.Join(t.TempDir(), "plot.spec.msgpack")
	require.NoError(t, spec.Save(path))

	loaded, err := LoadSpec(path)
	require.NoError(t, err)
	require.Equal(t, spec, loaded)
}

func TestRenderWritesPNG(t *testing.T) {
	spec := PollSpec(pollTable(), "poll")

	path := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, spec.Render(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	header := make([]byte, 8)
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	_, err = file.Read(header)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, header)
}
