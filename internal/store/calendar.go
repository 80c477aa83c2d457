// Package store provides SQLite-backed persistence for exchange
// calendar data.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"apac-settle/internal/errors"
)

// CalendarStore persists non-session weekdays per exchange calendar
// code. Weekends are never stored; they are derived from the weekday.
type CalendarStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewCalendarStore opens (creating if needed) the calendar database.
func NewCalendarStore(dbPath string) (*CalendarStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating calendar db directory")
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "opening calendar database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connecting to calendar database")
	}

	s := &CalendarStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing calendar schema")
	}

	return s, nil
}

func (s *CalendarStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calendar_days (
		calendar_code TEXT NOT NULL,
		day           TEXT NOT NULL,
		PRIMARY KEY (calendar_code, day)
	);
	CREATE INDEX IF NOT EXISTS idx_calendar_days_code ON calendar_days(calendar_code);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *CalendarStore) Close() error {
	return s.db.Close()
}

// IsNonSessionDay reports whether the exchange lists the weekday as a
// non-session day.
func (s *CalendarStore) IsNonSessionDay(ctx context.Context, calendarCode string, day time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM calendar_days WHERE calendar_code = ? AND day = ?`,
		calendarCode, day.Format("2006-01-02"),
	).Scan(&count)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return count > 0, nil
}

// NonSessionDays returns the stored non-session days within [start, end].
func (s *CalendarStore) NonSessionDays(ctx context.Context, calendarCode string, start, end time.Time) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT day FROM calendar_days
		 WHERE calendar_code = ? AND day >= ? AND day <= ?
		 ORDER BY day`,
		calendarCode, start.Format("2006-01-02"), end.Format("2006-01-02"),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var iso string
		if err := rows.Scan(&iso); err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
		}
		day, err := time.Parse("2006-01-02", iso)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrDatabaseError, "corrupt day %q: %v", iso, err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// CountDays returns the number of stored days for a calendar code.
func (s *CalendarStore) CountDays(ctx context.Context, calendarCode string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM calendar_days WHERE calendar_code = ?`, calendarCode,
	).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return count, nil
}

// AddDays inserts non-session days for a calendar code. Existing rows
// are left untouched.
func (s *CalendarStore) AddDays(ctx context.Context, calendarCode string, days []time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO calendar_days (calendar_code, day) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	defer stmt.Close()

	for _, day := range days {
		if _, err := stmt.ExecContext(ctx, calendarCode, day.Format("2006-01-02")); err != nil {
			return errors.Wrap(errors.ErrDatabaseError, err.Error())
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return nil
}

// RemoveDay deletes one stored non-session day.
func (s *CalendarStore) RemoveDay(ctx context.Context, calendarCode string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM calendar_days WHERE calendar_code = ? AND day = ?`,
		calendarCode, day.Format("2006-01-02"))
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(errors.ErrDataNotFound, "no calendar day %s for %s",
			day.Format("2006-01-02"), calendarCode)
	}
	return nil
}
