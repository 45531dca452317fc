package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Store is the read-side data access layer for the versions and docblox
// tables.
type Store struct {
	db     *sql.DB
	driver string
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	return Open(DriverSQLite, dbPath)
}

// Open opens a database with the given driver. For SQLite the dsn is a file
// path; for PostgreSQL it is a connection string understood by pgx.
func Open(driver, dsn string) (*Store, error) {
	var source string
	switch driver {
	case DriverSQLite, "", "sqlite":
		driver = DriverSQLite
		source = dsn + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000"
	case DriverPostgres, "postgres":
		driver = DriverPostgres
		source = strings.TrimSpace(dsn)
	default:
		return nil, fmt.Errorf("open database: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver reports the database/sql driver in use.
func (s *Store) Driver() string {
	return s.driver
}

// Migrate creates the versions and docblox tables and their indexes. Idempotent.
func (s *Store) Migrate() error {
	ddl := sqliteDDL
	if s.driver == DriverPostgres {
		ddl = postgresDDL
	}
	for _, stmt := range strings.Split(ddl, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

const sqliteDDL = `
CREATE TABLE IF NOT EXISTS versions (
  id              INTEGER PRIMARY KEY,
  major           INTEGER NOT NULL,
  minor           INTEGER NOT NULL,
  branch          TEXT NOT NULL,
  is_default      BOOLEAN NOT NULL DEFAULT FALSE,
  codepath        TEXT NOT NULL DEFAULT '',
  docspath        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS docblox (
  id              INTEGER PRIMARY KEY,
  version_id      INTEGER NOT NULL REFERENCES versions(id),
  package         TEXT NOT NULL DEFAULT '',
  hash            TEXT NOT NULL,
  file            TEXT NOT NULL,
  docblock        TEXT NOT NULL DEFAULT '',
  markers         TEXT NOT NULL DEFAULT '[]',
  functions       TEXT NOT NULL DEFAULT '[]',
  classes         TEXT NOT NULL DEFAULT '[]',
  constants       TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_versions_order ON versions(major, minor, branch);
CREATE INDEX IF NOT EXISTS idx_docblox_version ON docblox(version_id, package, file);
CREATE INDEX IF NOT EXISTS idx_docblox_hash ON docblox(hash)
`

const postgresDDL = `
CREATE TABLE IF NOT EXISTS versions (
  id              BIGSERIAL PRIMARY KEY,
  major           INTEGER NOT NULL,
  minor           INTEGER NOT NULL,
  branch          TEXT NOT NULL,
  is_default      BOOLEAN NOT NULL DEFAULT FALSE,
  codepath        TEXT NOT NULL DEFAULT '',
  docspath        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS docblox (
  id              BIGSERIAL PRIMARY KEY,
  version_id      BIGINT NOT NULL REFERENCES versions(id),
  package         TEXT NOT NULL DEFAULT '',
  hash            TEXT NOT NULL,
  file            TEXT NOT NULL,
  docblock        TEXT NOT NULL DEFAULT '',
  markers         TEXT NOT NULL DEFAULT '[]',
  functions       TEXT NOT NULL DEFAULT '[]',
  classes         TEXT NOT NULL DEFAULT '[]',
  constants       TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_versions_order ON versions(major, minor, branch);
CREATE INDEX IF NOT EXISTS idx_docblox_version ON docblox(version_id, package, file);
CREATE INDEX IF NOT EXISTS idx_docblox_hash ON docblox(hash)
`
