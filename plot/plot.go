// Package plot renders the poll and snapshot plots of one configuration and
// persists both the PNG images and the underlying plot specification, so
// figures can be re-composed later without rerunning the simulation.
package plot

import (
	"fmt"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/wcharczuk/go-chart/v2"

	"movement-sim/engine"
	"movement-sim/results"
)

// SeriesSpec is one named line of a plot.
type SeriesSpec struct {
	Name string    `msgpack:"name"`
	X    []float64 `msgpack:"x"`
	Y    []float64 `msgpack:"y"`
}

// Spec is the serializable plot specification underlying a rendered image.
type Spec struct {
	Title  string       `msgpack:"title"`
	XLabel string       `msgpack:"x_label"`
	YLabel string       `msgpack:"y_label"`
	Series []SeriesSpec `msgpack:"series"`
}

// PollSpec builds the time-series plot of support-level counts per reporting
// tick, averaged across runs.
func PollSpec(t *results.LeveledTable, title string) *Spec {
	runs := t.Runs()
	ticks := t.Ticks()

	spec := &Spec{
		Title:  title,
		XLabel: "tick",
		YLabel: "mean count",
	}

	for _, level := range results.Levels {
		series := SeriesSpec{Name: level.String()}
		for _, tick := range ticks {
			sum := 0
			for _, run := range runs {
				sum += t.LevelCounts(run, tick)[level]
			}
			series.X = append(series.X, float64(tick))
			series.Y = append(series.Y, float64(sum)/float64(len(runs)))
		}
		spec.Series = append(spec.Series, series)
	}

	return spec
}

// SupportSpec builds the snapshot distribution plot: a support histogram of
// one designated run at each of the given ticks.
func SupportSpec(t *engine.Table, run int, ticks []int, bins int, title string) (*Spec, error) {
	if bins <= 0 {
		bins = 10
	}

	spec := &Spec{
		Title:  title,
		XLabel: "support",
		YLabel: "count",
	}

	sort.Ints(ticks)
	for _, tick := range ticks {
		counts := make([]float64, bins)
		found := false
		for _, row := range t.Rows {
			if row.Run != run || row.Tick != tick {
				continue
			}
			found = true
			bin := int(row.Support * float64(bins))
			if bin >= bins {
				bin = bins - 1
			}
			counts[bin]++
		}
		if !found {
			return nil, fmt.Errorf("%w: run %d has no rows at tick %d", results.ErrDataShape, run, tick)
		}

		series := SeriesSpec{Name: fmt.Sprintf("tick %d", tick)}
		for bin := range counts {
			series.X = append(series.X, (float64(bin)+0.5)/float64(bins))
			series.Y = append(series.Y, counts[bin])
		}
		spec.Series = append(spec.Series, series)
	}

	return spec, nil
}

// Render draws the spec as a PNG image file.
func (s *Spec) Render(path string) error {
	var series []chart.Series
	for _, sp := range s.Series {
		series = append(series, chart.ContinuousSeries{
			Name:    sp.Name,
			XValues: sp.X,
			YValues: sp.Y,
		})
	}

	graph := chart.Chart{
		Title:  s.Title,
		Width:  800,
		Height: 480,
		XAxis: chart.XAxis{
			Name: s.XLabel,
		},
		YAxis: chart.YAxis{
			Name: s.YLabel,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

// Save persists the plot specification next to the rendered image.
func (s *Spec) Save(path string) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSpec reads a plot specification written by Save.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec Spec
	if err := msgpack.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
