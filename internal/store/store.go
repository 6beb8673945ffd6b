// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

// Package store persists named ratings datasets in DuckDB.
//
// Datasets are snapshots of a session's ratings table. Summaries are
// computed in SQL so listing stays cheap even for large datasets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/modista/internal/config"
	"github.com/tomtom215/modista/internal/metrics"
	"github.com/tomtom215/modista/internal/models"
)

// ErrDatasetNotFound is returned when a named dataset does not exist.
var ErrDatasetNotFound = errors.New("dataset not found")

// Store wraps the DuckDB connection for dataset persistence.
type Store struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// New opens the DuckDB database and initializes the schema.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		conn:   conn,
		logger: logger.With().Str("component", "store").Logger(),
	}
	if err := s.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}

	s.logger.Info().Str("path", cfg.Path).Int("threads", threads).Msg("dataset store ready")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			name VARCHAR PRIMARY KEY,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			dataset VARCHAR NOT NULL,
			user_id VARCHAR NOT NULL,
			item_id VARCHAR NOT NULL,
			rating DOUBLE NOT NULL,
			category VARCHAR NOT NULL DEFAULT '',
			price DOUBLE NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_dataset ON ratings(dataset)`,
	}
	for _, stmt := range schema {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}

// SaveDataset stores ratings under the given name, replacing any
// existing dataset with that name.
func (s *Store) SaveDataset(ctx context.Context, name string, ratings []models.Rating) error {
	defer metrics.ObserveDBQuery("save_dataset", time.Now())

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE dataset = ?`, name); err != nil {
		metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
		return fmt.Errorf("clearing previous ratings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
		metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
		return fmt.Errorf("clearing previous dataset: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (name, created_at) VALUES (?, ?)`,
		name, time.Now().UTC()); err != nil {
		metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
		return fmt.Errorf("inserting dataset record: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ratings (dataset, user_id, item_id, rating, category, price) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range ratings {
		if _, err := stmt.ExecContext(ctx, name, r.UserID, r.ItemID, r.Rating, r.Category, r.Price); err != nil {
			metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
			return fmt.Errorf("inserting rating row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.DBQueryErrors.WithLabelValues("save_dataset").Inc()
		return fmt.Errorf("committing dataset: %w", err)
	}

	s.logger.Info().Str("dataset", name).Int("rows", len(ratings)).Msg("dataset saved")
	return nil
}

// ListDatasets returns summaries of all stored datasets, newest first.
func (s *Store) ListDatasets(ctx context.Context) ([]models.DatasetSummary, error) {
	defer metrics.ObserveDBQuery("list_datasets", time.Now())

	rows, err := s.conn.QueryContext(ctx, summaryQuery+summaryGroupBy+` ORDER BY d.created_at DESC`)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("list_datasets").Inc()
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []models.DatasetSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			metrics.DBQueryErrors.WithLabelValues("list_datasets").Inc()
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		metrics.DBQueryErrors.WithLabelValues("list_datasets").Inc()
		return nil, fmt.Errorf("iterating datasets: %w", err)
	}
	return summaries, nil
}

// Summary returns aggregate statistics for one stored dataset.
func (s *Store) Summary(ctx context.Context, name string) (models.DatasetSummary, error) {
	defer metrics.ObserveDBQuery("dataset_summary", time.Now())

	row := s.conn.QueryRowContext(ctx, summaryQuery+` WHERE d.name = ?`+summaryGroupBy, name)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DatasetSummary{}, ErrDatasetNotFound
	}
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("dataset_summary").Inc()
		return models.DatasetSummary{}, err
	}
	return summary, nil
}

// LoadRatings returns the full ratings table of a stored dataset.
func (s *Store) LoadRatings(ctx context.Context, name string) ([]models.Rating, error) {
	defer metrics.ObserveDBQuery("load_ratings", time.Now())

	var exists bool
	err := s.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM datasets WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("load_ratings").Inc()
		return nil, fmt.Errorf("checking dataset: %w", err)
	}
	if !exists {
		return nil, ErrDatasetNotFound
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT user_id, item_id, rating, category, price
		 FROM ratings WHERE dataset = ?`, name)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("load_ratings").Inc()
		return nil, fmt.Errorf("loading ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Rating, &r.Category, &r.Price); err != nil {
			metrics.DBQueryErrors.WithLabelValues("load_ratings").Inc()
			return nil, fmt.Errorf("scanning rating row: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		metrics.DBQueryErrors.WithLabelValues("load_ratings").Inc()
		return nil, fmt.Errorf("iterating ratings: %w", err)
	}
	return ratings, nil
}

// DeleteDataset removes a stored dataset and its ratings.
func (s *Store) DeleteDataset(ctx context.Context, name string) error {
	defer metrics.ObserveDBQuery("delete_dataset", time.Now())

	res, err := s.conn.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("delete_dataset").Inc()
		return fmt.Errorf("deleting dataset: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("delete_dataset").Inc()
		return fmt.Errorf("reading delete result: %w", err)
	}
	if affected == 0 {
		return ErrDatasetNotFound
	}

	if _, err := s.conn.ExecContext(ctx, `DELETE FROM ratings WHERE dataset = ?`, name); err != nil {
		metrics.DBQueryErrors.WithLabelValues("delete_dataset").Inc()
		return fmt.Errorf("deleting dataset ratings: %w", err)
	}
	return nil
}

// summaryQuery aggregates dataset statistics in one pass. Categories
// come back as a comma-joined string because database/sql cannot scan
// DuckDB lists directly.
const summaryQuery = `
	SELECT
		d.name,
		d.created_at,
		COUNT(r.user_id) AS rows,
		COUNT(DISTINCT r.user_id) AS users,
		COUNT(DISTINCT r.item_id) AS items,
		COALESCE(AVG(r.rating), 0) AS mean_rating,
		COALESCE(STRING_AGG(DISTINCT NULLIF(r.category, ''), ','), '') AS categories
	FROM datasets d
	LEFT JOIN ratings r ON r.dataset = d.name`

const summaryGroupBy = `
	GROUP BY d.name, d.created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(row rowScanner) (models.DatasetSummary, error) {
	var (
		summary    models.DatasetSummary
		categories string
	)
	err := row.Scan(&summary.Name, &summary.CreatedAt, &summary.Rows,
		&summary.Users, &summary.Items, &summary.MeanRating, &categories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, err
		}
		return summary, fmt.Errorf("scanning dataset summary: %w", err)
	}

	if categories != "" {
		summary.Categories = strings.Split(categories, ",")
	}
	return summary, nil
}
