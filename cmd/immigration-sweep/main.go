// Command immigration-sweep runs many headless grids across a range of seed
// densities and species counts and reports which configurations survive.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"immigration/internal/logger"
	"immigration/internal/report"
	"immigration/internal/sims/immigration"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"
)

type scenario struct {
	density float64
	species int
	trial   int
}

func (s scenario) String() string {
	return fmt.Sprintf("density=%.2f species=%d", s.density, s.species)
}

type scenarioResult struct {
	scenario
	generations   int
	extinct       bool
	finalLive     int
	dominant      int
	dominantShare float64
}

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	*l = (*l)[:0]
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 || v > 1 {
			return fmt.Errorf("invalid density %q", part)
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	size := flag.Int("size", 64, "grid edge length")
	wrap := flag.Bool("wrap", true, "toroidal wraparound")
	steps := flag.Int("steps", 400, "generations to simulate per scenario")
	trials := flag.Int("trials", 4, "seeds per scenario")
	maxSpecies := flag.Int("max-species", 6, "sweep species counts 1..N")
	seed := flag.Int64("seed", 1337, "base seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scenario evaluations")
	densities := floatList{0.1, 0.2, 0.3, 0.4, 0.5}
	flag.Var(&densities, "densities", "comma-separated seed densities")
	flag.Parse()

	log := logger.New("sweep")
	reportHost(log)

	var sets []scenario
	for _, d := range densities {
		for s := 1; s <= *maxSpecies; s++ {
			for t := 0; t < *trials; t++ {
				sets = append(sets, scenario{density: d, species: s, trial: t})
			}
		}
	}
	log.Infof("sweeping %d scenarios (%d workers, %d steps, %dx%d)", len(sets), *workers, *steps, *size, *size)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := make([]scenarioResult, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i, sc := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runScenario(sc, *size, *wrap, *steps, *seed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("sweep aborted: %v", err)
		os.Exit(1)
	}

	summarize(log, aggregate(results), time.Since(start))
}

func reportHost(log *logger.Logger) {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		log.Warnf("cpu info unavailable: %v", err)
		return
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		logical = runtime.NumCPU()
	}
	log.Infof("host cpu %q, %d logical cores", infos[0].ModelName, logical)
}

func runScenario(sc scenario, size int, wrap bool, steps int, baseSeed int64) scenarioResult {
	seed := baseSeed + int64(sc.trial)*7919 + int64(sc.species)*104729 + int64(sc.density*1000)
	grid := immigration.NewFromConfig(immigration.Config{
		Size:       size,
		Species:    sc.species,
		Wraparound: wrap,
		Density:    sc.density,
		Seed:       seed,
	})

	res := scenarioResult{scenario: sc}
	for grid.Generation() < steps {
		grid.Step()
		if grid.TotalCells() == 0 {
			res.extinct = true
			break
		}
	}
	history := report.NewHistory(1)
	history.Record(grid)
	res.generations = grid.Generation()
	res.finalLive = grid.TotalCells()
	res.dominant = history.Dominant()
	if res.finalLive > 0 && res.dominant > 0 {
		res.dominantShare = float64(grid.SpeciesCounts()[uint8(res.dominant)]) / float64(res.finalLive)
	}
	return res
}

type aggregateRow struct {
	scenario
	runs          int
	extinctions   int
	meanLive      float64
	meanDominance float64
}

func aggregate(results []scenarioResult) []aggregateRow {
	byKey := map[scenario]*aggregateRow{}
	var order []scenario
	for _, r := range results {
		key := scenario{density: r.density, species: r.species}
		row, ok := byKey[key]
		if !ok {
			row = &aggregateRow{scenario: key}
			byKey[key] = row
			order = append(order, key)
		}
		row.runs++
		if r.extinct {
			row.extinctions++
		}
		row.meanLive += float64(r.finalLive)
		row.meanDominance += r.dominantShare
	}
	rows := make([]aggregateRow, 0, len(order))
	for _, key := range order {
		row := byKey[key]
		row.meanLive /= float64(row.runs)
		row.meanDominance /= float64(row.runs)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].meanLive > rows[j].meanLive })
	return rows
}

func summarize(log *logger.Logger, rows []aggregateRow, elapsed time.Duration) {
	fmt.Printf("\n%-30s %6s %8s %10s %9s\n", "scenario", "runs", "extinct", "mean live", "dominance")
	for _, row := range rows {
		fmt.Printf("%-30s %6d %8d %10.1f %8.1f%%\n",
			row.scenario, row.runs, row.extinctions, row.meanLive, 100*row.meanDominance)
	}
	log.Infof("sweep finished in %s", elapsed.Round(time.Millisecond))
}
