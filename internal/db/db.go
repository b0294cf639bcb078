// Package db provides PostgreSQL access to the DQ engine's result tables.
// The SQL lives in standalone files under queries/ and is embedded at compile
// time; the application controls when and in what order it runs.
package db

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/yiqitkaan/fintech-data-quality-ai/internal/types"
)

//go:embed queries/*.sql
var queryFiles embed.FS

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes and verifies a connection pool.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping reports the server time and database name, verifying the connection.
func (db *DB) Ping(ctx context.Context) (time.Time, string, error) {
	var serverTime time.Time
	var database string
	err := db.pool.QueryRow(ctx,
		`SELECT now() AS server_time, current_database() AS db`,
	).Scan(&serverTime, &database)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to query server info: %w", err)
	}
	return serverTime, database, nil
}

// LatestRun holds the three row sets describing the most recent DQ run.
// Summary is nil when no run exists yet.
type LatestRun struct {
	Summary  *types.RunSummary
	ByRule   []types.RuleCount
	Failures []types.ViolationRow
}

// LatestRun fetches the latest run's summary, per-rule counts, and violation
// rows. The three queries are independent reads and run concurrently; the
// call returns only once all of them have completed.
func (db *DB) LatestRun(ctx context.Context) (*LatestRun, error) {
	var run LatestRun

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := db.querySummary(gCtx)
		if err != nil {
			return fmt.Errorf("latest run summary query failed: %w", err)
		}
		run.Summary = summary
		return nil
	})

	g.Go(func() error {
		byRule, err := db.queryByRule(gCtx)
		if err != nil {
			return fmt.Errorf("latest run by-rule query failed: %w", err)
		}
		run.ByRule = byRule
		return nil
	})

	g.Go(func() error {
		failures, err := db.queryFailures(gCtx)
		if err != nil {
			return fmt.Errorf("latest run failures query failed: %w", err)
		}
		run.Failures = failures
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &run, nil
}

func (db *DB) querySummary(ctx context.Context) (*types.RunSummary, error) {
	rows, err := db.pool.Query(ctx, query("latest_run_summary.sql"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var summary types.RunSummary
	if err := rows.Scan(&summary.RunID, &summary.RunTime, &summary.TotalFailures); err != nil {
		return nil, err
	}
	return &summary, rows.Err()
}

func (db *DB) queryByRule(ctx context.Context) ([]types.RuleCount, error) {
	rows, err := db.pool.Query(ctx, query("latest_run_by_rule.sql"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []types.RuleCount
	for rows.Next() {
		var c types.RuleCount
		if err := rows.Scan(&c.RuleCode, &c.FailCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (db *DB) queryFailures(ctx context.Context) ([]types.ViolationRow, error) {
	rows, err := db.pool.Query(ctx, query("latest_run_failures.sql"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []types.ViolationRow
	for rows.Next() {
		var f types.ViolationRow
		if err := rows.Scan(&f.RuleCode, &f.EntityType, &f.EntityID); err != nil {
			return nil, err
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// query returns the embedded SQL for name. Missing files are a build defect,
// so this panics rather than returning an error.
func query(name string) string {
	data, err := queryFiles.ReadFile("queries/" + name)
	if err != nil {
		panic(fmt.Sprintf("embedded query %s not found: %v", name, err))
	}
	return string(data)
}
