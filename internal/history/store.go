// Package history keeps a SQLite record of the commands picaf launched.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/picaf/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the launch history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement, backing off while the database is locked
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database location
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts launch and sets its ID
func (s *Store) Record(ctx context.Context, launch *models.Launch) error {
	command, err := json.Marshal(launch.Command)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	launchedAt := launch.LaunchedAt
	if launchedAt.IsZero() {
		launchedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO launches (run_id, path, command, exit_code, dry_run, launched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		launch.RunID,
		launch.Path,
		string(command),
		launch.ExitCode,
		launch.DryRun,
		launchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert launch: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	launch.ID = id
	return nil
}

// Recent returns up to limit launches, most recent first.
// A limit <= 0 returns every launch.
func (s *Store) Recent(ctx context.Context, limit int) ([]*models.Launch, error) {
	query := `SELECT id, run_id, path, command, exit_code, dry_run, launched_at
		FROM launches ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// ForRun returns the launches of one picaf invocation in launch order
func (s *Store) ForRun(ctx context.Context, runID string) ([]*models.Launch, error) {
	return s.query(ctx, `SELECT id, run_id, path, command, exit_code, dry_run, launched_at
		FROM launches WHERE run_id = ? ORDER BY id ASC`, runID)
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]*models.Launch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}
	defer rows.Close()

	var launches []*models.Launch
	for rows.Next() {
		l := &models.Launch{}
		var command string
		if err := rows.Scan(&l.ID, &l.RunID, &l.Path, &command, &l.ExitCode, &l.DryRun, &l.LaunchedAt); err != nil {
			return nil, fmt.Errorf("scan launch row: %w", err)
		}
		if err := json.Unmarshal([]byte(command), &l.Command); err != nil {
			return nil, fmt.Errorf("unmarshal command of launch %d: %w", l.ID, err)
		}
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate launches: %w", err)
	}
	return launches, nil
}
