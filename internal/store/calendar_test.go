package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"apac-settle/internal/errors"
)

func newTestStore(t *testing.T) *CalendarStore {
	t.Helper()
	s, err := NewCalendarStore(filepath.Join(t.TempDir(), "calendars.db"))
	if err != nil {
		t.Fatalf("NewCalendarStore error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddAndQueryDays(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	days := []time.Time{day("2026-01-01"), day("2026-02-17"), day("2026-02-18")}
	if err := s.AddDays(ctx, "XHKG", days); err != nil {
		t.Fatalf("AddDays error: %v", err)
	}

	count, err := s.CountDays(ctx, "XHKG")
	if err != nil {
		t.Fatalf("CountDays error: %v", err)
	}
	if count != 3 {
		t.Errorf("CountDays = %d, want 3", count)
	}

	closed, err := s.IsNonSessionDay(ctx, "XHKG", day("2026-02-17"))
	if err != nil {
		t.Fatalf("IsNonSessionDay error: %v", err)
	}
	if !closed {
		t.Error("2026-02-17 should be a non-session day for XHKG")
	}

	open, err := s.IsNonSessionDay(ctx, "XHKG", day("2026-02-20"))
	if err != nil {
		t.Fatalf("IsNonSessionDay error: %v", err)
	}
	if open {
		t.Error("2026-02-20 should not be a non-session day for XHKG")
	}

	// Codes are isolated from each other.
	other, err := s.IsNonSessionDay(ctx, "XTKS", day("2026-02-17"))
	if err != nil {
		t.Fatalf("IsNonSessionDay error: %v", err)
	}
	if other {
		t.Error("XTKS must not see XHKG days")
	}
}

func TestAddDaysIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	days := []time.Time{day("2026-01-01")}
	for i := 0; i < 3; i++ {
		if err := s.AddDays(ctx, "XTKS", days); err != nil {
			t.Fatalf("AddDays run %d error: %v", i, err)
		}
	}

	count, err := s.CountDays(ctx, "XTKS")
	if err != nil {
		t.Fatalf("CountDays error: %v", err)
	}
	if count != 1 {
		t.Errorf("CountDays = %d, want 1 after repeated inserts", count)
	}
}

func TestNonSessionDaysRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.AddDays(ctx, "XSHG", []time.Time{
		day("2026-02-16"), day("2026-02-17"), day("2026-02-18"),
		day("2026-02-19"), day("2026-02-20"), day("2026-02-23"),
		day("2026-02-24"), day("2026-05-01"),
	})
	if err != nil {
		t.Fatalf("AddDays error: %v", err)
	}

	got, err := s.NonSessionDays(ctx, "XSHG", day("2026-02-01"), day("2026-02-28"))
	if err != nil {
		t.Fatalf("NonSessionDays error: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("got %d days, want 7", len(got))
	}
	if !got[0].Equal(day("2026-02-16")) || !got[6].Equal(day("2026-02-24")) {
		t.Errorf("range not sorted or bounded: first %v last %v", got[0], got[6])
	}
}

func TestRemoveDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddDays(ctx, "XASX", []time.Time{day("2026-01-26")}); err != nil {
		t.Fatalf("AddDays error: %v", err)
	}
	if err := s.RemoveDay(ctx, "XASX", day("2026-01-26")); err != nil {
		t.Fatalf("RemoveDay error: %v", err)
	}

	closed, err := s.IsNonSessionDay(ctx, "XASX", day("2026-01-26"))
	if err != nil {
		t.Fatalf("IsNonSessionDay error: %v", err)
	}
	if closed {
		t.Error("removed day still reported as non-session")
	}

	err = s.RemoveDay(ctx, "XASX", day("2026-01-26"))
	if !errors.Is(err, errors.ErrDataNotFound) {
		t.Errorf("expected ErrDataNotFound, got %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "calendars.db")
	ctx := context.Background()

	s, err := NewCalendarStore(dbPath)
	if err != nil {
		t.Fatalf("NewCalendarStore error: %v", err)
	}
	if err := s.AddDays(ctx, "XKRX", []time.Time{day("2026-03-01")}); err != nil {
		t.Fatalf("AddDays error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reopened, err := NewCalendarStore(dbPath)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	closed, err := reopened.IsNonSessionDay(ctx, "XKRX", day("2026-03-01"))
	if err != nil {
		t.Fatalf("IsNonSessionDay error: %v", err)
	}
	if !closed {
		t.Error("day lost across reopen")
	}
}
