package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/okian/asistencia/pkg/logger"

	_ "github.com/lib/pq"  // Postgres driver.
	_ "modernc.org/sqlite" // SQLite driver.
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Default pool configuration constants.
const (
	defaultMaxOpenConns    = 10
	defaultConnMaxLifetime = 5 * time.Minute
)

// SQLStore reads attendance inputs through database/sql. It is safe for
// concurrent use; every method issues independent queries.
type SQLStore struct {
	db     *sql.DB
	driver string

	maxOpenConns    int
	connMaxLifetime time.Duration

	logger logger.Logger
}

// Open connects to the store and verifies the connection.
func Open(ctx context.Context, driverName, dsn string, opts ...Option) (*SQLStore, error) {
	switch driverName {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driverName)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	s := New(db, driverName, opts...)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	s.logger.Info(ctx, "connected to attendance store", logger.String("driver", driverName))
	return s, nil
}

// New wraps an already opened database.
func New(db *sql.DB, driverName string, opts ...Option) *SQLStore {
	s := &SQLStore{
		db:              db,
		driver:          driverName,
		maxOpenConns:    defaultMaxOpenConns,
		connMaxLifetime: defaultConnMaxLifetime,
		logger:          logger.Nop(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	db.SetMaxOpenConns(s.maxOpenConns)
	db.SetConnMaxLifetime(s.connMaxLifetime)
	return s
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) query(ctx context.Context, name, q string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, rebind(s.driver, q), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}
	return rows, nil
}

// collect runs q and maps every row with scan.
func collect[T any](ctx context.Context, s *SQLStore, name, q string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := s.query(ctx, name, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrScan, name, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}
	return out, nil
}

// namedValues loads Nombre/Valor pairs from a key/value table.
func (s *SQLStore) namedValues(ctx context.Context, name, q string, args ...any) (map[string]any, error) {
	type pair struct {
		key string
		val any
	}
	pairs, err := collect(ctx, s, name, q, func(rows *sql.Rows) (pair, error) {
		var p pair
		var raw rawValue
		if err := rows.Scan(&p.key, &raw); err != nil {
			return p, err
		}
		p.val = raw.V
		return p, nil
	}, args...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		out[p.key] = p.val
	}
	return out, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
