package database

import "fmt"

// DialectType identifies a supported database backend.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// Dialect abstracts the SQL differences between backends.
type Dialect interface {
	// DriverName returns the database/sql driver name.
	DriverName() string

	// Placeholder returns the parameter placeholder for position n (1-based).
	Placeholder(n int) string

	// SupportsLastInsertID reports whether the driver implements
	// Result.LastInsertId.
	SupportsLastInsertID() bool

	// ReturningClause returns a RETURNING clause for the given column, or
	// an empty string when the driver supports LastInsertId instead.
	ReturningClause(column string) string

	// PrimaryKeyColumn returns the column definition for an auto-increment
	// integer primary key.
	PrimaryKeyColumn() string

	// InitStatements returns statements run once after opening.
	InitStatements() []string
}

// NewDialect returns the dialect for the given type. Unknown types fall
// back to SQLite.
func NewDialect(t DialectType) Dialect {
	switch t {
	case DialectPostgres:
		return &postgresDialect{}
	default:
		return &sqliteDialect{}
	}
}

type sqliteDialect struct{}

func (d *sqliteDialect) DriverName() string         { return "sqlite" }
func (d *sqliteDialect) Placeholder(n int) string   { return "?" }
func (d *sqliteDialect) SupportsLastInsertID() bool { return true }

func (d *sqliteDialect) ReturningClause(column string) string { return "" }

func (d *sqliteDialect) PrimaryKeyColumn() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d *sqliteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

type postgresDialect struct{}

func (d *postgresDialect) DriverName() string         { return "postgres" }
func (d *postgresDialect) Placeholder(n int) string   { return fmt.Sprintf("$%d", n) }
func (d *postgresDialect) SupportsLastInsertID() bool { return false }

func (d *postgresDialect) ReturningClause(column string) string {
	return fmt.Sprintf("RETURNING %s", column)
}

func (d *postgresDialect) PrimaryKeyColumn() string {
	return "BIGSERIAL PRIMARY KEY"
}

func (d *postgresDialect) InitStatements() []string { return nil }
