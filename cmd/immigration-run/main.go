// Command immigration-run drives the simulation without a window. Frames are
// pumped from a ticker on the main goroutine, or as fast as possible with
// -realtime=false, and the run can be written out as a chart and a video.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"immigration/internal/app"
	"immigration/internal/logger"
	"immigration/internal/report"
)

type runOptions struct {
	generations int
	realtime    bool
	stopExtinct bool
	logEvery    int
	chartPath   string
	recordPath  string
	recordScale int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var ro runOptions
	flag.IntVar(&ro.generations, "generations", 500, "generations to simulate")
	flag.BoolVar(&ro.realtime, "realtime", true, "pace steps at -fps using -tps frame signals")
	flag.BoolVar(&ro.stopExtinct, "stop-extinct", true, "stop early once every cell is empty")
	flag.IntVar(&ro.logEvery, "log-every", 50, "log population every N generations (0 disables)")
	flag.StringVar(&ro.chartPath, "chart", "", "write a population chart PNG to this path")
	flag.StringVar(&ro.recordPath, "record", "", "write an MJPEG AVI recording to this path")
	flag.IntVar(&ro.recordScale, "record-scale", 4, "pixels per cell in the recording")
	flag.Parse()

	log := logger.New("run")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, ro, log); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, ro runOptions, log *logger.Logger) error {
	opts, err := cfg.Resolve()
	if err != nil {
		return err
	}
	opts.Logger = log
	ctrl := app.NewController(opts)
	defer ctrl.Destroy()

	grid := ctrl.Grid()
	log.Infof("grid %dx%d species=%d wrap=%v fps=%g density=%g live=%d",
		grid.Size(), grid.Size(), grid.SpeciesCount(), grid.Wraparound(), ctrl.Simulation().FPS(), ctrl.Density(), grid.TotalCells())

	history := report.NewHistory(0)
	history.Record(grid)

	var rec *report.Recorder
	if ro.recordPath != "" {
		fps := int(cfg.FPS)
		if !ro.realtime {
			fps = 30
		}
		rec, err = report.NewRecorder(ro.recordPath, grid.Size(), ro.recordScale, fps, ctrl.Palette())
		if err != nil {
			return err
		}
		// Close is idempotent, so this only matters on early returns.
		defer rec.Close()
		if err := rec.AddFrame(grid.Snapshot(), grid.Generation()); err != nil {
			return err
		}
	}

	var recErr error
	ctrl.AddObserver(func(s app.Stats) {
		history.Record(ctrl.Grid())
		if rec != nil && recErr == nil {
			recErr = rec.AddFrame(ctrl.Grid().Snapshot(), s.Generation)
		}
		if ro.logEvery > 0 && s.Generation%ro.logEvery == 0 {
			log.Infof("generation %d live=%d species=%v", s.Generation, s.Total, s.Species)
		}
	})

	done := func() bool {
		if recErr != nil || ctx.Err() != nil {
			return true
		}
		if ro.stopExtinct && ctrl.Grid().TotalCells() == 0 {
			return true
		}
		return ctrl.Grid().Generation() >= ro.generations
	}

	start := time.Now()
	if ro.realtime {
		tps := cfg.TPS
		if tps <= 0 {
			tps = 60
		}
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		ctrl.TogglePlay()
		for !done() {
			select {
			case <-ctx.Done():
			case <-ticker.C:
				ctrl.Frames().Pump()
			}
		}
	} else {
		for !done() {
			ctrl.StepOnce()
		}
	}
	elapsed := time.Since(start)

	if rec != nil {
		if err := rec.Close(); err != nil {
			return err
		}
		if recErr != nil {
			return recErr
		}
		log.Event("recording", fmt.Sprintf("%s frames=%d", ro.recordPath, rec.Frames()))
	}

	final := ctrl.Stats()
	rate := float64(final.Generation) / elapsed.Seconds()
	log.Infof("finished generation=%d live=%d dominant=%d in %s (%.1f gen/s)",
		final.Generation, final.Total, history.Dominant(), elapsed.Round(time.Millisecond), rate)
	if ctx.Err() != nil {
		log.Warn("interrupted")
	}

	if ro.chartPath != "" {
		if err := writeChart(ro.chartPath, history, ctrl); err != nil {
			return err
		}
		log.Event("chart", ro.chartPath)
	}
	return nil
}

func writeChart(path string, history *report.History, ctrl *app.Controller) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	title := fmt.Sprintf("Game of Immigration %dx%d", ctrl.Grid().Size(), ctrl.Grid().Size())
	if err := report.WriteChart(f, history, ctrl.Palette(), report.ChartOptions{Title: title}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart: %w", err)
	}
	return nil
}
