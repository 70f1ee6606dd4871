package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/statecast/statecast/internal/dbg"
	"github.com/statecast/statecast/pkg/common"
	"github.com/statecast/statecast/pkg/config"
	"github.com/statecast/statecast/pkg/data"
	"github.com/statecast/statecast/pkg/data/duckdb"
	"github.com/statecast/statecast/pkg/forecast"
	"github.com/statecast/statecast/pkg/models/statespace"
	"github.com/statecast/statecast/pkg/tools/metrics"
)

func main() {
	configPath := flag.String("config", "config/statecast.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := dbg.NewLogger(cfg.Production)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info(fmt.Sprintf("statecast %s", Version))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	reader := duckdb.NewReader()
	if err := reader.Connect(); err != nil {
		return err
	}
	defer reader.Close()

	polls, err := reader.LoadPolls(ctx, cfg.PollsCSV)
	if err != nil {
		return err
	}
	historical, err := reader.LoadHistorical(ctx, cfg.HistoricalCSV)
	if err != nil {
		return err
	}
	actual := map[string]float64{}
	if cfg.ActualCSV != "" {
		if actual, err = reader.LoadActualMargins(ctx, cfg.ActualCSV); err != nil {
			return err
		}
	}

	models := statespace.AllVariants(logger)
	runner := forecast.NewRunner(logger, cfg.Workers, models...)

	preds, err := runner.Run(ctx, forecast.Input{
		Polls:         polls,
		Historical:    historical,
		Actual:        actual,
		ForecastDates: cfg.ForecastTimes(),
		ElectionDate:  cfg.ElectionTime(),
	})
	if err != nil {
		return err
	}

	for _, model := range models {
		name := model.Name()
		modelPreds := filterByModel(preds, name)

		csvPath := filepath.Join(cfg.OutputDir, "predictions", name+".csv")
		if err := data.WritePredictions(csvPath, modelPreds); err != nil {
			return err
		}

		report := metrics.Report{Model: name, Rows: metrics.Evaluate(modelPreds)}
		report.Print(logger)
		txtPath := filepath.Join(cfg.OutputDir, "metrics", name+".txt")
		if err := data.WriteReport(txtPath, report); err != nil {
			return err
		}
	}
	return nil
}

func filterByModel(preds []common.Prediction, model string) []common.Prediction {
	var out []common.Prediction
	for _, p := range preds {
		if p.Model == model {
			out = append(out, p)
		}
	}
	return out
}
