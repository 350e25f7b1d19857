// Package database persists batch summaries so past simulation batches can
// be listed and re-compared. Runs themselves are stateless; only the
// reduced statistics are stored.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/huntersim/internal/montecarlo"
)

// Database wraps the history store connection.
type Database struct {
	db      *sql.DB
	dialect Dialect
}

// Open opens the history store. For the SQLite dialect dsn is a file path
// (created on demand); for PostgreSQL it is a connection string.
func Open(dialectType DialectType, dsn string) (*Database, error) {
	dialect := NewDialect(dialectType)

	if dialectType == DialectSQLite {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	d := &Database{db: db, dialect: dialect}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS batches (
		id %s,
		created_at TIMESTAMP NOT NULL,
		archetype TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		summary TEXT NOT NULL
	)`, d.dialect.PrimaryKeyColumn())
	if _, err := d.db.Exec(stmt); err != nil {
		return err
	}
	return nil
}

// Batch is one stored batch summary.
type Batch struct {
	ID         int64
	CreatedAt  time.Time
	Archetype  string
	Iterations int
	Seed       int64
	Summary    montecarlo.Summary
}

// SaveBatch stores a batch reduction and returns its id.
func (d *Database) SaveBatch(archetype string, seed int64, summary montecarlo.Summary) (int64, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return 0, fmt.Errorf("encoding summary: %w", err)
	}

	query := fmt.Sprintf(
		"INSERT INTO batches (created_at, archetype, iterations, seed, summary) VALUES (%s, %s, %s, %s, %s)",
		d.dialect.Placeholder(1), d.dialect.Placeholder(2), d.dialect.Placeholder(3),
		d.dialect.Placeholder(4), d.dialect.Placeholder(5))

	now := time.Now().UTC()
	if d.dialect.SupportsLastInsertID() {
		res, err := d.db.Exec(query, now, archetype, summary.Iterations, seed, string(payload))
		if err != nil {
			return 0, fmt.Errorf("inserting batch: %w", err)
		}
		return res.LastInsertId()
	}

	var id int64
	query += " " + d.dialect.ReturningClause("id")
	if err := d.db.QueryRow(query, now, archetype, summary.Iterations, seed, string(payload)).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting batch: %w", err)
	}
	return id, nil
}

// GetBatch loads one stored batch by id.
func (d *Database) GetBatch(id int64) (*Batch, error) {
	query := fmt.Sprintf(
		"SELECT id, created_at, archetype, iterations, seed, summary FROM batches WHERE id = %s",
		d.dialect.Placeholder(1))

	var b Batch
	var payload string
	err := d.db.QueryRow(query, id).Scan(&b.ID, &b.CreatedAt, &b.Archetype, &b.Iterations, &b.Seed, &payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &b.Summary); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	return &b, nil
}

// ListBatches returns the most recent batches, newest first.
func (d *Database) ListBatches(limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(
		"SELECT id, created_at, archetype, iterations, seed, summary FROM batches ORDER BY id DESC LIMIT %s",
		d.dialect.Placeholder(1))

	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var payload string
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.Archetype, &b.Iterations, &b.Seed, &payload); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &b.Summary); err != nil {
			return nil, fmt.Errorf("decoding summary for batch %d: %w", b.ID, err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
