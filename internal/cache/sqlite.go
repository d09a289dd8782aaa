package cache

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"UptrendScanner/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists fetched bars to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if !strings.HasPrefix(dbPath, ":memory:") && !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite bar cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bar_fetches (
			symbol     TEXT NOT NULL,
			period     TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, period)
		)`,
		`CREATE TABLE IF NOT EXISTS bars (
			symbol TEXT NOT NULL,
			period TEXT NOT NULL,
			ts     INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, period, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_at ON bar_fetches(fetched_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load(symbol, period string, maxAge time.Duration) ([]model.OHLCV, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedAt int64
	err := s.db.QueryRow(`SELECT fetched_at FROM bar_fetches WHERE symbol = ? AND period = ?`,
		symbol, period).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query fetch time: %w", err)
	}
	if s.now().Sub(time.Unix(fetchedAt, 0)) >= maxAge {
		return nil, false, nil
	}

	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume FROM bars
		WHERE symbol = ? AND period = ? ORDER BY ts`, symbol, period)
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OHLCV
	for rows.Next() {
		var ts int64
		var b model.OHLCV
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return bars, len(bars) > 0, nil
}

// Save replaces any bars previously stored for symbol/period.
func (s *SQLiteStore) Save(symbol, period string, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM bars WHERE symbol = ? AND period = ?`, symbol, period); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO bars (symbol, period, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.Exec(symbol, period, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO bar_fetches (symbol, period, fetched_at) VALUES (?,?,?)
		ON CONFLICT(symbol, period) DO UPDATE SET fetched_at = excluded.fetched_at`,
		symbol, period, s.now().Unix()); err != nil {
		return fmt.Errorf("upsert fetch time: %w", err)
	}
	return tx.Commit()
}

// Purge drops entries fetched more than olderThan ago and reports how many
// symbol/period entries were removed.
func (s *SQLiteStore) Purge(olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-olderThan).Unix()
	if _, err := s.db.Exec(`DELETE FROM bars WHERE (symbol, period) IN
		(SELECT symbol, period FROM bar_fetches WHERE fetched_at < ?)`, cutoff); err != nil {
		return 0, fmt.Errorf("purge bars: %w", err)
	}
	res, err := s.db.Exec(`DELETE FROM bar_fetches WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge fetches: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
