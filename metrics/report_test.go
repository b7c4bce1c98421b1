package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"movement-sim/results"
)

var testCols = ConfigColumns{
	Lambda:    2,
	Percent:   10,
	NumNodes:  100,
	Allies:    true,
	Homophily: false,
	Degree:    4,
}

// leveledTable builds a single-run table from per-tick level counts.
func leveledTable(counts map[int]map[results.Level]int) *results.LeveledTable {
	t := &results.LeveledTable{}
	for tick, levels := range counts {
		node := int64(0)
		for level, n := range levels {
			for i := 0; i < n; i++ {
				t.Rows = append(t.Rows, results.LeveledRow{Run: 1, Tick: tick, Node: node, Level: level})
				node++
			}
		}
	}
	return t
}

func byVariable(rows []Row) map[string]Row {
	out := make(map[string]Row)
	for _, row := range rows {
		out[row.Variable] = row
	}
	return out
}

func TestReportPeakAndCrossover(t *testing.T) {
	table := leveledTable(map[int]map[results.Level]int{
		0:  {results.LevelOpposed: 8, results.LevelNeutral: 1, results.LevelSupportive: 1},
		10: {results.LevelOpposed: 5, results.LevelNeutral: 1, results.LevelSupportive: 4},
		20: {results.LevelOpposed: 3, results.LevelNeutral: 1, results.LevelSupportive: 6},
		30: {results.LevelOpposed: 4, results.LevelNeutral: 1, results.LevelSupportive: 5},
	})

	rows := Report(table, testCols)
	require.Len(t, rows, 2)

	vars := byVariable(rows)
	require.InDelta(t, 0.6, vars[VarPeakSupport].Value, 1e-9)
	// first tick with supportive > opposed, not the peak tick
	require.Equal(t, float64(20), vars[VarCrossoverTick].Value)
}

func TestReportNoCrossoverSentinel(t *testing.T) {
	table := leveledTable(map[int]map[results.Level]int{
		0:  {results.LevelOpposed: 9, results.LevelSupportive: 1},
		10: {results.LevelOpposed: 6, results.LevelSupportive: 4},
	})

	vars := byVariable(Report(table, testCols))
	require.Equal(t, float64(NoCrossover), vars[VarCrossoverTick].Value)
	require.InDelta(t, 0.4, vars[VarPeakSupport].Value, 1e-9)
}

func TestReportTagsEveryRowWithConfig(t *testing.T) {
	table := leveledTable(map[int]map[results.Level]int{
		0: {results.LevelOpposed: 1, results.LevelSupportive: 1},
	})

	for _, row := range Report(table, testCols) {
		require.Equal(t, testCols.Lambda, row.Lambda)
		require.Equal(t, testCols.Percent, row.Percent)
		require.Equal(t, testCols.NumNodes, row.NumNodes)
		require.Equal(t, testCols.Allies, row.Allies)
		require.Equal(t, testCols.Homophily, row.Homophily)
		require.Equal(t, testCols.Degree, row.Degree)
	}
}

func TestReportCoversEveryRun(t *testing.T) {
	table := &results.LeveledTable{}
	for run := 1; run <= 3; run++ {
		table.Rows = append(table.Rows,
			results.LeveledRow{Run: run, Tick: 0, Node: 0, Level: results.LevelSupportive},
			results.LeveledRow{Run: run, Tick: 0, Node: 1, Level: results.LevelOpposed},
		)
	}

	rows := Report(table, testCols)
	require.Len(t, rows, 6)

	runs := make(map[int]int)
	for _, row := range rows {
		runs[row.Run]++
	}
	for run := 1; run <= 3; run++ {
		require.Equal(t, 2, runs[run], "run %d", run)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rows := []Row{
		newRow(1, testCols, VarPeakSupport, 0.625),
		newRow(1, testCols, VarCrossoverTick, 20),
		newRow(2, testCols, VarPeakSupport, 0.5),
		newRow(2, testCols, VarCrossoverTick, float64(NoCrossover)),
	}

	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, WriteCSV(path, rows))

	loaded, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, rows, loaded)
}

func TestDBStoreAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	db, err := OpenDB(path)
	require.NoError(t, err)

	rows := []Row{
		newRow(1, testCols, VarPeakSupport, 0.4),
		newRow(1, testCols, VarCrossoverTick, float64(NoCrossover)),
		newRow(2, testCols, VarPeakSupport, 0.7),
	}
	require.NoError(t, db.StoreRows(rows))
	require.NoError(t, db.Close())

	// reopen: the archive is durable across sessions
	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	peaks, err := db.QueryVariable(VarPeakSupport)
	require.NoError(t, err)
	require.Equal(t, []Row{rows[0], rows[2]}, peaks)

	crossovers, err := db.QueryVariable(VarCrossoverTick)
	require.NoError(t, err)
	require.Equal(t, []Row{rows[1]}, crossovers)
}
