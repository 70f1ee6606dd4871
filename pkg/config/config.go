package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config is the YAML run configuration: data locations, the date grid,
// and runtime knobs. Model constants live with the variants, not here.
type Config struct {
	PollsCSV      string   `yaml:"polls_csv" validate:"required"`
	HistoricalCSV string   `yaml:"historical_csv" validate:"required"`
	ActualCSV     string   `yaml:"actual_csv"`
	ElectionDate  string   `yaml:"election_date" validate:"required,datetime=2006-01-02"`
	ForecastDates []string `yaml:"forecast_dates" validate:"omitempty,dive,datetime=2006-01-02"`
	Workers       int      `yaml:"workers" validate:"gte=0"`
	OutputDir     string   `yaml:"output_dir"`
	Production    bool     `yaml:"production"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{
		ElectionDate: "2016-11-08",
		ForecastDates: []string{
			"2016-10-01", "2016-10-15", "2016-11-01", "2016-11-07",
		},
		OutputDir: "out",
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) ElectionTime() time.Time {
	t, _ := time.Parse(dateLayout, c.ElectionDate)
	return t
}

func (c *Config) ForecastTimes() []time.Time {
	out := make([]time.Time, 0, len(c.ForecastDates))
	for _, d := range c.ForecastDates {
		t, _ := time.Parse(dateLayout, d)
		out = append(out, t)
	}
	return out
}
