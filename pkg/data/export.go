package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/statecast/statecast/pkg/common"
	"github.com/statecast/statecast/pkg/tools/metrics"
)

// WritePredictions writes one model's forecasts as CSV, in the layout
// the comparison tooling expects.
func WritePredictions(path string, preds []common.Prediction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"state", "forecast_date", "win_probability",
		"predicted_margin", "margin_std", "actual_margin"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range preds {
		actual := ""
		if p.HasActual {
			actual = strconv.FormatFloat(p.ActualMargin, 'f', -1, 64)
		}
		record := []string{
			p.State,
			p.ForecastDate.Format(time.DateOnly),
			strconv.FormatFloat(p.Result.WinProbability, 'f', -1, 64),
			strconv.FormatFloat(p.Result.PredictedMargin, 'f', -1, 64),
			strconv.FormatFloat(p.Result.MarginStd, 'f', -1, 64),
			actual,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing prediction row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteReport writes a model's metrics report as text.
func WriteReport(path string, report metrics.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return os.WriteFile(path, []byte(report.Render()), 0o644)
}
