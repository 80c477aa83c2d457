// Package overlap computes simultaneous trading windows between two
// markets on a given date.
package overlap

import (
	"context"
	"sort"
	"time"

	"apac-settle/internal/calendar"
	"apac-settle/internal/clock"
	"apac-settle/internal/errors"
	"apac-settle/internal/models"
	"apac-settle/pkg/utils"
)

// Calculator derives overlap windows from market hours and calendars.
type Calculator struct {
	clock    *clock.Service
	calendar *calendar.Service
}

// NewCalculator creates an overlap calculator.
func NewCalculator(clk *clock.Service, cal *calendar.Service) *Calculator {
	return &Calculator{clock: clk, calendar: cal}
}

type session struct {
	name  models.SessionName
	start time.Time
	end   time.Time
}

// sessions materializes a market's trading sessions for a date as UTC
// half-open intervals.
func (c *Calculator) sessions(m models.Market, day time.Time) ([]session, error) {
	open, err := c.clock.Localize(m, day, m.Hours.Open)
	if err != nil {
		return nil, err
	}
	close, err := c.clock.Localize(m, day, m.Hours.Close)
	if err != nil {
		return nil, err
	}

	if !m.Hours.HasLunchBreak() {
		return []session{
			{name: models.SessionRegular, start: open.UTC(), end: close.UTC()},
		}, nil
	}

	lunchStart, err := c.clock.Localize(m, day, m.Hours.LunchStart)
	if err != nil {
		return nil, err
	}
	lunchEnd, err := c.clock.Localize(m, day, m.Hours.LunchEnd)
	if err != nil {
		return nil, err
	}

	return []session{
		{name: models.SessionMorning, start: open.UTC(), end: lunchStart.UTC()},
		{name: models.SessionAfternoon, start: lunchEnd.UTC(), end: close.UTC()},
	}, nil
}

// Windows returns the overlap windows between two markets on a date,
// sorted by start. Either market being closed yields no windows.
func (c *Calculator) Windows(ctx context.Context, a, b models.Market, day time.Time) ([]models.OverlapWindow, error) {
	tradingA, err := c.calendar.IsTradingDay(ctx, a.Code, day)
	if err != nil {
		return nil, err
	}
	tradingB, err := c.calendar.IsTradingDay(ctx, b.Code, day)
	if err != nil {
		return nil, err
	}
	if !tradingA || !tradingB {
		return nil, nil
	}

	sessionsA, err := c.sessions(a, day)
	if err != nil {
		return nil, err
	}
	sessionsB, err := c.sessions(b, day)
	if err != nil {
		return nil, err
	}

	var windows []models.OverlapWindow
	for _, sa := range sessionsA {
		for _, sb := range sessionsB {
			start := sa.start
			if sb.start.After(start) {
				start = sb.start
			}
			end := sa.end
			if sb.end.Before(end) {
				end = sb.end
			}
			if !start.Before(end) {
				continue
			}
			windows = append(windows, models.OverlapWindow{
				Start:           start,
				End:             end,
				SessionA:        sa.name,
				SessionB:        sb.name,
				DurationMinutes: int(end.Sub(start) / time.Minute),
			})
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
	return windows, nil
}

// NextViableTradeDate returns the first date on or after from on which
// both markets trade and share at least one overlap window. Windows is
// empty whenever either market is closed, so a hit implies both.
func (c *Calculator) NextViableTradeDate(ctx context.Context, a, b models.Market, from time.Time) (time.Time, error) {
	day := clock.Date(from)
	for i := 0; i < calendar.MaxDateIterations; i++ {
		windows, err := c.Windows(ctx, a, b, day)
		if err != nil {
			return time.Time{}, err
		}
		if len(windows) > 0 {
			return day, nil
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, errors.Wrapf(errors.ErrIterationLimit,
		"no overlapping trading day for %s/%s within %d days of %s",
		a.Code, b.Code, calendar.MaxDateIterations, from.Format("2006-01-02"))
}

// Summarize condenses a day's windows for display in the given
// market's local time.
func (c *Calculator) Summarize(windows []models.OverlapWindow, display models.Market) (models.OverlapSummary, error) {
	if len(windows) == 0 {
		return models.OverlapSummary{Text: "No trading hour overlap"}, nil
	}

	total := 0
	for _, w := range windows {
		total += w.DurationMinutes
	}

	first, err := c.clock.Convert(windows[0].Start, display)
	if err != nil {
		return models.OverlapSummary{}, err
	}
	last, err := c.clock.Convert(windows[len(windows)-1].End, display)
	if err != nil {
		return models.OverlapSummary{}, err
	}

	return models.OverlapSummary{
		FirstStart:   &first,
		LastEnd:      &last,
		TotalMinutes: total,
		Text:         utils.FormatMinutes(total) + " overlap",
	}, nil
}
