package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/govalues/decimal"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/statecast/statecast/pkg/common"
)

// Reader loads poll and results CSVs through an in-memory DuckDB
// instance, which handles CSV typing and date parsing in SQL.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadPolls reads the polling CSV and groups rows by state. Vote
// shares are read as text and parsed into decimals so the two-party
// renormalization downstream stays exact.
func (r *Reader) LoadPolls(ctx context.Context, csvPath string) (map[string][]common.Poll, error) {
	query := fmt.Sprintf(`
		SELECT state_code, pollster, middate,
		       CAST(dem_share AS VARCHAR), CAST(rep_share AS VARCHAR),
		       CAST(samplesize AS BIGINT)
		FROM read_csv_auto('%s')
		WHERE state_code IS NOT NULL
		ORDER BY state_code, middate, pollster`, escape(csvPath))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying polls: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	polls := make(map[string][]common.Poll)
	for rows.Next() {
		var (
			p          common.Poll
			mid        time.Time
			demS, repS string
		)
		if err := rows.Scan(&p.State, &p.Pollster, &mid, &demS, &repS, &p.SampleSize); err != nil {
			return nil, fmt.Errorf("scanning poll row: %w", err)
		}
		p.MidDate = mid.UTC()
		if p.DemShare, err = decimal.Parse(demS); err != nil {
			return nil, fmt.Errorf("parsing dem share %q: %w", demS, err)
		}
		if p.RepShare, err = decimal.Parse(repS); err != nil {
			return nil, fmt.Errorf("parsing rep share %q: %w", repS, err)
		}
		polls[p.State] = append(polls[p.State], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning polls: %w", err)
	}
	return polls, nil
}

// LoadHistorical reads the per-state margins of the two prior cycles.
func (r *Reader) LoadHistorical(ctx context.Context, csvPath string) (map[string]common.HistoricalResult, error) {
	query := fmt.Sprintf(`
		SELECT state_code, margin_2012, margin_2008
		FROM read_csv_auto('%s')
		WHERE state_code IS NOT NULL`, escape(csvPath))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying historical results: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	hist := make(map[string]common.HistoricalResult)
	for rows.Next() {
		var h common.HistoricalResult
		if err := rows.Scan(&h.State, &h.Margin2012, &h.Margin2008); err != nil {
			return nil, fmt.Errorf("scanning historical row: %w", err)
		}
		hist[h.State] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning historical results: %w", err)
	}
	return hist, nil
}

// LoadActualMargins reads the realized election margins, used only
// for evaluation.
func (r *Reader) LoadActualMargins(ctx context.Context, csvPath string) (map[string]float64, error) {
	query := fmt.Sprintf(`
		SELECT state_code, margin
		FROM read_csv_auto('%s')
		WHERE state_code IS NOT NULL`, escape(csvPath))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying election results: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	actual := make(map[string]float64)
	for rows.Next() {
		var (
			state  string
			margin float64
		)
		if err := rows.Scan(&state, &margin); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		actual[state] = margin
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanning election results: %w", err)
	}
	return actual, nil
}

func escape(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
