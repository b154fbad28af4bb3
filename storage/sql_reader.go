package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"listing-profiler/table"
	"listing-profiler/utils"
)

// SQLReader loads the result of a query from PostgreSQL or SQLite into a
// Table. It reads the listings table the scraper stores by default.
type SQLReader struct {
	Driver string
	DSN    string
	Query  string
	Schema table.Schema
	Retry  *utils.RetryConfig
	Logger *utils.Logger

	stats LoadStats
}

// NewSQLReader returns a reader for the "postgres" or "sqlite" driver.
func NewSQLReader(driver, dsn, query string, schema table.Schema, logger *utils.Logger, maxRetries int) (*SQLReader, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("storage: unsupported sql driver %q", driver)
	}
	if strings.TrimSpace(query) == "" {
		query = "SELECT * FROM listings"
	}
	return &SQLReader{
		Driver: driver,
		DSN:    dsn,
		Query:  query,
		Schema: schema,
		Logger: logger,
		Retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}, nil
}

// Stats returns the counters of the last Read.
func (r *SQLReader) Stats() LoadStats { return r.stats }

// Read connects, runs the query and converts every row. NULL becomes a
// missing value. Connection failures return an *IOError.
func (r *SQLReader) Read(ctx context.Context) (*table.Table, error) {
	r.stats = LoadStats{}

	db, err := sql.Open(r.Driver, r.DSN)
	if err != nil {
		return nil, &IOError{Path: r.Driver, Err: fmt.Errorf("open: %w", err)}
	}
	defer db.Close()

	if err := r.Retry.Do(ctx, r.Driver+"-ping", func() error { return db.PingContext(ctx) }); err != nil {
		return nil, &IOError{Path: r.Driver, Err: err}
	}

	rows, err := db.QueryContext(ctx, r.Query)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", r.Driver, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: columns: %w", r.Driver, err)
	}

	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	var records [][]string
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", r.Driver, err)
		}
		rec := make([]string, len(header))
		for i, c := range cells {
			if c.Valid {
				rec[i] = strings.TrimSpace(c.String)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", r.Driver, err)
	}

	t, bad, err := table.FromRecords(header, records, r.Schema)
	if err != nil {
		return nil, fmt.Errorf("%s: build table: %w", r.Driver, err)
	}
	r.stats.Rows = t.Len()
	r.stats.UnparsedCells = bad
	if r.Logger != nil {
		r.Logger.Info("[%s] loaded %d rows x %d columns", r.Driver, t.Len(), len(header))
	}
	return t, nil
}
