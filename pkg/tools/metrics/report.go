package metrics

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Report is the evaluation summary for one model variant.
type Report struct {
	Model string
	Rows  []Row
}

func (r Report) Print(logger *zap.Logger) {
	for _, row := range r.Rows {
		logger.Info("evaluation metrics",
			zap.String("model", r.Model),
			zap.String("forecast_date", row.ForecastDate.Format(time.DateOnly)),
			zap.Int("states", row.States),
			zap.Float64("brier_score", row.BrierScore),
			zap.Float64("log_loss", row.LogLoss),
			zap.Float64("mae_margin", row.MAEMargin))
	}
}

// Render produces the plain-text report format consumed by the
// comparison tooling.
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - Evaluation Metrics\n", r.Model)
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "Forecast Date: %s\n", row.ForecastDate.Format(time.DateOnly))
		fmt.Fprintf(&b, "  States: %d\n", row.States)
		fmt.Fprintf(&b, "  Brier Score: %.4f\n", row.BrierScore)
		fmt.Fprintf(&b, "  Log Loss: %.4f\n", row.LogLoss)
		fmt.Fprintf(&b, "  MAE (Margin): %.4f\n\n", row.MAEMargin)
	}
	return b.String()
}
