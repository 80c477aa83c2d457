// Package status reports live market state and pair comparisons.
package status

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/calendar"
	"apac-settle/internal/clock"
	"apac-settle/internal/models"
	"apac-settle/internal/overlap"
	"apac-settle/internal/registry"
	"apac-settle/pkg/utils"
)

// Service assembles point-in-time market snapshots.
type Service struct {
	registry *registry.Registry
	calendar *calendar.Service
	clock    *clock.Service
	overlap  *overlap.Calculator
	logger   zerolog.Logger
}

// NewService creates a status service.
func NewService(reg *registry.Registry, cal *calendar.Service, clk *clock.Service, ovl *overlap.Calculator, logger zerolog.Logger) *Service {
	return &Service{
		registry: reg,
		calendar: cal,
		clock:    clk,
		overlap:  ovl,
		logger:   logger,
	}
}

// Status returns a snapshot of one market at the given instant.
func (s *Service) Status(ctx context.Context, marketCode string, now time.Time) (*models.MarketStatus, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return nil, err
	}

	local, err := s.clock.Convert(now, m)
	if err != nil {
		return nil, err
	}
	today := clock.Date(local)

	st := &models.MarketStatus{
		MarketCode:     m.Code,
		LocalTime:      local,
		CurrentSession: models.SessionClosed,
	}

	st.IsTradingDay = s.calendar.Holidays().IsTradingDay(ctx, m, today)
	if info := s.calendar.Holidays().HolidayInfo(ctx, m, today); info != nil {
		st.HolidayName = info.Name
		st.IsHoliday = info.Source != models.SourceWeekend
	}

	if st.IsTradingDay {
		session, err := s.currentSession(m, local, today)
		if err != nil {
			return nil, err
		}
		st.CurrentSession = session
		st.IsOpen = session == models.SessionMorning ||
			session == models.SessionAfternoon ||
			session == models.SessionRegular
	}

	if err := s.fillTransitions(ctx, m, st, local, today); err != nil {
		return nil, err
	}
	if err := s.fillCutOff(m, st, local, today); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) currentSession(m models.Market, local, today time.Time) (models.SessionName, error) {
	open, err := s.clock.Localize(m, today, m.Hours.Open)
	if err != nil {
		return models.SessionClosed, err
	}
	marketClose, err := s.clock.Localize(m, today, m.Hours.Close)
	if err != nil {
		return models.SessionClosed, err
	}

	if local.Before(open) {
		return models.SessionPreMarket, nil
	}
	if !local.Before(marketClose) {
		return models.SessionPostMarket, nil
	}

	if !m.Hours.HasLunchBreak() {
		return models.SessionRegular, nil
	}

	lunchStart, err := s.clock.Localize(m, today, m.Hours.LunchStart)
	if err != nil {
		return models.SessionClosed, err
	}
	lunchEnd, err := s.clock.Localize(m, today, m.Hours.LunchEnd)
	if err != nil {
		return models.SessionClosed, err
	}

	switch {
	case local.Before(lunchStart):
		return models.SessionMorning, nil
	case local.Before(lunchEnd):
		return models.SessionLunch, nil
	default:
		return models.SessionAfternoon, nil
	}
}

func (s *Service) fillTransitions(ctx context.Context, m models.Market, st *models.MarketStatus, local, today time.Time) error {
	if st.IsOpen || st.CurrentSession == models.SessionLunch {
		marketClose, err := s.clock.Localize(m, today, m.Hours.Close)
		if err != nil {
			return err
		}
		st.NextClose = &marketClose
		st.TimeToClose = utils.FormatDuration(marketClose.Sub(local))
		return nil
	}

	// Closed: find the next opening bell.
	if st.IsTradingDay && st.CurrentSession == models.SessionPreMarket {
		open, err := s.clock.Localize(m, today, m.Hours.Open)
		if err != nil {
			return err
		}
		st.NextOpen = &open
		st.TimeToOpen = utils.FormatDuration(open.Sub(local))
		return nil
	}

	nextDay, err := s.calendar.NextTradingDay(ctx, m.Code, today)
	if err != nil {
		return err
	}
	open, err := s.clock.Localize(m, nextDay, m.Hours.Open)
	if err != nil {
		return err
	}
	st.NextOpen = &open
	st.TimeToOpen = utils.FormatDuration(open.Sub(local))
	return nil
}

func (s *Service) fillCutOff(m models.Market, st *models.MarketStatus, local, today time.Time) error {
	if m.DepositoryCutOff == "" || !st.IsTradingDay {
		return nil
	}
	cutOff, err := s.clock.Localize(m, today, m.DepositoryCutOff)
	if err != nil {
		return err
	}
	// Strict comparison: exactly at the cut-off counts as past.
	st.PastCutOff = !local.Before(cutOff)
	if !st.PastCutOff {
		st.TimeToCutOff = utils.FormatDuration(cutOff.Sub(local))
	}
	return nil
}

// AllStatuses snapshots every registered market.
func (s *Service) AllStatuses(ctx context.Context, now time.Time) ([]models.MarketStatus, error) {
	var out []models.MarketStatus
	for _, code := range s.registry.Codes() {
		st, err := s.Status(ctx, code, now)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, nil
}

// PairComparison contrasts two markets at an instant: timezone gap,
// today's overlap windows, and whether both are currently open.
func (s *Service) PairComparison(ctx context.Context, codeA, codeB string, now time.Time) (*models.PairComparison, error) {
	marketA, err := s.registry.Get(codeA)
	if err != nil {
		return nil, err
	}
	marketB, err := s.registry.Get(codeB)
	if err != nil {
		return nil, err
	}

	localA, err := s.clock.Convert(now, marketA)
	if err != nil {
		return nil, err
	}
	today := clock.Date(localA)

	diff, err := s.clock.OffsetDifference(marketA, marketB, today)
	if err != nil {
		return nil, err
	}

	windows, err := s.overlap.Windows(ctx, marketA, marketB, today)
	if err != nil {
		return nil, err
	}
	summary, err := s.overlap.Summarize(windows, marketA)
	if err != nil {
		return nil, err
	}

	statusA, err := s.Status(ctx, marketA.Code, now)
	if err != nil {
		return nil, err
	}
	statusB, err := s.Status(ctx, marketB.Code, now)
	if err != nil {
		return nil, err
	}

	return &models.PairComparison{
		MarketA:               marketA.Code,
		MarketB:               marketB.Code,
		OffsetDifferenceHours: diff,
		Overlaps:              windows,
		BothOpenNow:           statusA.IsOpen && statusB.IsOpen,
		BothTradingToday:      statusA.IsTradingDay && statusB.IsTradingDay,
		OverlapSummary:        summary.Text,
	}, nil
}
