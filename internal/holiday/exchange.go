// Package holiday merges exchange, public-holiday, and manual override
// data into a single calendar view per market.
package holiday

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
	"apac-settle/internal/store"
)

// ExchangeSource answers trading-day queries from the SQLite calendar
// store, keyed by exchange calendar code.
type ExchangeSource struct {
	store  *store.CalendarStore
	logger zerolog.Logger
}

// NewExchangeSource wraps the calendar store and seeds it from the
// embedded closure tables for any calendar code with no stored rows.
func NewExchangeSource(ctx context.Context, st *store.CalendarStore, logger zerolog.Logger) (*ExchangeSource, error) {
	s := &ExchangeSource{store: st, logger: logger}

	for code, isoDays := range exchangeClosures {
		count, err := st.CountDays(ctx, code)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		days := make([]time.Time, 0, len(isoDays))
		for _, iso := range isoDays {
			days = append(days, clock.MustDate(iso))
		}
		if err := st.AddDays(ctx, code, days); err != nil {
			return nil, err
		}
		logger.Debug().
			Str("calendar", code).
			Int("days", len(days)).
			Msg("Seeded exchange calendar")
	}

	return s, nil
}

// IsTradingDay reports whether the exchange holds a session on the
// date. Weekends are never sessions.
func (s *ExchangeSource) IsTradingDay(ctx context.Context, m models.Market, day time.Time) (bool, error) {
	if clock.IsWeekend(day) {
		return false, nil
	}
	closed, err := s.store.IsNonSessionDay(ctx, m.ExchangeCalendarCode, day)
	if err != nil {
		return false, err
	}
	return !closed, nil
}

// NonSessionWeekdays returns the exchange's stored closures in a range.
func (s *ExchangeSource) NonSessionWeekdays(ctx context.Context, m models.Market, start, end time.Time) ([]time.Time, error) {
	return s.store.NonSessionDays(ctx, m.ExchangeCalendarCode, start, end)
}
