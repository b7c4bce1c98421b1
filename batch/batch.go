// Package batch runs the configuration-driven pipeline: for each entry of
// the run list, generate replicate networks, emit them, drive the engine,
// reshape the results, report metrics, render plots and clean up, fully
// releasing one configuration's data before the next begins.
package batch

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"movement-sim/config"
	"movement-sim/engine"
	"movement-sim/metrics"
	"movement-sim/network"
	"movement-sim/plot"
	"movement-sim/results"
)

const snapshotBins = 10

// Batch processes the run list under BaseDir against one engine. The engine
// session is started and stopped once per configuration, never shared.
type Batch struct {
	BaseDir string
	Engine  engine.Engine
	Log     zerolog.Logger

	// Progress enables the progress bar over the run list.
	Progress bool
}

// New creates a batch over baseDir.
func New(baseDir string, eng engine.Engine, log zerolog.Logger) *Batch {
	return &Batch{
		BaseDir: baseDir,
		Engine:  eng,
		Log:     log,
	}
}

// Run processes every configuration in the run list, sequentially. The
// first failing configuration aborts the batch; outputs of earlier
// configurations stay on disk.
func (b *Batch) Run() error {
	names, err := config.LoadRunList(b.BaseDir)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if b.Progress {
		bar = progressbar.Default(int64(len(names)))
	}

	for _, name := range names {
		start := time.Now()
		if err := b.RunOne(name); err != nil {
			b.Log.Error().Err(err).Str("run", name).Msg("configuration failed")
			return fmt.Errorf("configuration %s: %w", name, err)
		}
		b.Log.Info().
			Str("run", name).
			Dur("elapsed", time.Since(start)).
			Msg("configuration finished")
		if bar != nil {
			bar.Add(1)
		}
	}

	return nil
}

// RunOne processes a single configuration end to end.
func (b *Batch) RunOne(name string) error {
	cfg, err := config.LoadRunConfig(b.BaseDir, name)
	if err != nil {
		return err
	}

	topology, err := network.Topology(cfg.NetworkType)
	if err != nil {
		return err
	}
	supportDist, err := network.Support(cfg.SupportDist)
	if err != nil {
		return err
	}
	trait := network.TraitForHomophily(cfg.Homophily)

	// materialize derived parameters as plain scalars up front; metrics
	// columns are copied from these, never from deferred expressions
	minorityCount := cfg.MinorityCount()
	minorityOnset := cfg.MinorityOnset()
	allyOnset := cfg.AllyOnset()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	dir := cfg.Dir(b.BaseDir)

	// generate and emit replicate networks
	graphs := make([]*network.Graph, 0, cfg.Runs)
	for runIdx := 0; runIdx < cfg.Runs; runIdx++ {
		g, err := network.Generate(rng, network.GenerateOptions{
			NodeCount:     cfg.NumNodes,
			MinorityCount: minorityCount,
			Degree:        cfg.Degree,
			Lambda:        cfg.Lambda,
			Topology:      topology,
			Trait:         trait,
			Support:       supportDist,
		})
		if err != nil {
			return err
		}
		graphs = append(graphs, g)
	}

	files, err := network.EmitAll(dir, graphs)
	if err != nil {
		return err
	}
	b.Log.Debug().Str("run", name).Int("files", len(files)).Msg("networks emitted")

	// the engine reads the files; the in-memory graphs are done
	graphs = nil

	// one exclusive engine session per configuration
	drv := engine.NewDriver(b.Engine)
	if err := drv.StartHeadless(cfg.ModelPath); err != nil {
		return err
	}
	table, runErr := drv.RunAll(files, engine.RunSpec{
		Ticks:           cfg.MaxTicks,
		Growth:          cfg.Growth,
		RandomInfluence: cfg.RandomInfluence,
		Response:        cfg.Response,
		MinorityOnset:   minorityOnset,
		AllyOnset:       allyOnset,
		InfluenceWeight: cfg.InfluenceWeight,
		Seed:            cfg.Seed,
	})
	if stopErr := drv.Stop(); stopErr != nil && runErr == nil {
		runErr = stopErr
	}
	if runErr != nil {
		return runErr
	}
	b.Log.Debug().Str("run", name).Int("rows", len(table.Rows)).Msg("simulations finished")

	if cfg.KeepRawResults {
		if err := results.SaveTable(filepath.Join(dir, "results.lz4"), table); err != nil {
			return err
		}
	}

	// reshape: subsample the population, bucket support, keep report ticks
	sampled, err := results.Subsample(table, cfg.SampleFrac, rng)
	if err != nil {
		return err
	}
	table = nil // release the full table before plotting

	leveled := results.Bucket(sampled, results.BucketOptions{
		Midpoint: cfg.Midpoint,
		Band:     cfg.Band,
	})

	ticks := reportTicks(cfg.MaxTicks)
	filtered, err := results.FilterTicks(leveled, ticks)
	if err != nil {
		return err
	}

	// metrics over all ticks, attached to literal configuration scalars
	cols := metrics.ConfigColumns{
		Lambda:    cfg.Lambda,
		Percent:   cfg.Pct,
		NumNodes:  cfg.NumNodes,
		Allies:    cfg.Allies,
		Homophily: cfg.Homophily,
		Degree:    cfg.Degree,
	}
	rows := metrics.Report(leveled, cols)

	if err := metrics.WriteCSV(filepath.Join(dir, name+".csv"), rows); err != nil {
		return err
	}
	if cfg.ArchiveMetrics {
		if err := b.archiveMetrics(dir, rows); err != nil {
			return err
		}
	}

	// plots: poll time series over report ticks, snapshot distribution of
	// the first replicate
	title := plotTitle(cfg)

	pollSpec := plot.PollSpec(filtered, title)
	if err := pollSpec.Render(filepath.Join(dir, "poll_plot_"+name+".png")); err != nil {
		return err
	}
	if err := pollSpec.Save(filepath.Join(dir, "poll_plot_"+name+".spec.msgpack")); err != nil {
		return err
	}

	supportSpec, err := plot.SupportSpec(sampled, 1, snapshotTicks(cfg.MaxTicks), snapshotBins, title)
	if err != nil {
		return err
	}
	if err := supportSpec.Render(filepath.Join(dir, "support_plot_"+name+".png")); err != nil {
		return err
	}
	if err := supportSpec.Save(filepath.Join(dir, "support_plot_"+name+".spec.msgpack")); err != nil {
		return err
	}

	// results are captured; reclaim the network files. The tables die with
	// this frame, so nothing of this configuration outlives the call.
	return network.RemoveFiles(files)
}

func (b *Batch) archiveMetrics(dir string, rows []metrics.Row) error {
	db, err := metrics.OpenDB(filepath.Join(dir, "metrics.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	return db.StoreRows(rows)
}

// reportTicks picks roughly ten evenly spaced reporting ticks, always
// including tick 0 and the final tick.
func reportTicks(maxTicks int) []int {
	step := max(maxTicks/10, 1)
	var ticks []int
	for tick := 0; tick < maxTicks; tick += step {
		ticks = append(ticks, tick)
	}
	return append(ticks, maxTicks)
}

// snapshotTicks picks the ticks shown in the snapshot distribution plot.
func snapshotTicks(maxTicks int) []int {
	return []int{0, maxTicks / 2, maxTicks}
}

func plotTitle(cfg *config.RunConfig) string {
	return fmt.Sprintf(
		"lambda=%g pct=%g n=%d allies=%t homophily=%t degree=%d",
		cfg.Lambda, cfg.Pct, cfg.NumNodes, cfg.Allies, cfg.Homophily, cfg.Degree,
	)
}
