package holiday

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/clock"
	"apac-settle/internal/logging"
	"apac-settle/internal/models"
)

// Manager merges the three holiday sources under fixed precedence:
// manual overrides beat weekends, which beat the exchange calendar;
// public holidays only contribute names for exchange closures.
type Manager struct {
	overrides *OverrideStore
	exchange  *ExchangeSource
	public    *PublicSource
	logger    zerolog.Logger
}

// NewManager wires the sources together.
func NewManager(overrides *OverrideStore, exchange *ExchangeSource, public *PublicSource, logger zerolog.Logger) *Manager {
	return &Manager{
		overrides: overrides,
		exchange:  exchange,
		public:    public,
		logger:    logger,
	}
}

// Overrides exposes the manual override store.
func (m *Manager) Overrides() *OverrideStore {
	return m.overrides
}

// IsTradingDay reports whether the market trades on the date. A failed
// exchange lookup falls back to weekday plus public-holiday logic.
func (m *Manager) IsTradingDay(ctx context.Context, market models.Market, day time.Time) bool {
	if o, ok := m.overrides.Get(market.Code, day); ok {
		return !o.IsClosure
	}

	trading, err := m.exchange.IsTradingDay(ctx, market, day)
	if err != nil {
		logging.LogSourceFallback(m.logger, string(models.SourceExchangeCalendar), market.Code, err)
		return !clock.IsWeekend(day) && !m.public.IsPublicHoliday(market.Code, day)
	}
	return trading
}

// IsSettlementDay reports whether settlement can complete on the date.
// It matches IsTradingDay except for overrides scoped to trading only.
func (m *Manager) IsSettlementDay(ctx context.Context, market models.Market, day time.Time) bool {
	if o, ok := m.overrides.Get(market.Code, day); ok {
		if !o.IsClosure {
			return true
		}
		return !o.AffectsSettlement
	}
	return m.IsTradingDay(ctx, market, day)
}

// HolidayInfo returns the merged holiday fact for a date, or nil when
// the market is open.
func (m *Manager) HolidayInfo(ctx context.Context, market models.Market, day time.Time) *models.HolidayInfo {
	if o, ok := m.overrides.Get(market.Code, day); ok {
		if !o.IsClosure {
			return nil
		}
		info := &models.HolidayInfo{
			Date:              day,
			MarketCode:        market.Code,
			Name:              o.Name,
			Source:            models.SourceManualOverride,
			IsFullDay:         true,
			AffectsTrading:    o.AffectsTrading,
			AffectsSettlement: o.AffectsSettlement,
			Notes:             o.Reason,
		}
		logging.LogHolidayLookup(m.logger, market.Code, day.Format("2006-01-02"),
			string(info.Source), info.Name)
		return info
	}

	if clock.IsWeekend(day) {
		return &models.HolidayInfo{
			Date:              day,
			MarketCode:        market.Code,
			Name:              "Weekend",
			Source:            models.SourceWeekend,
			IsFullDay:         true,
			AffectsTrading:    true,
			AffectsSettlement: true,
		}
	}

	if !m.IsTradingDay(ctx, market, day) {
		name, isPublic := m.public.Name(market.Code, day)
		info := &models.HolidayInfo{
			Date:              day,
			MarketCode:        market.Code,
			Source:            models.SourceExchangeCalendar,
			IsFullDay:         true,
			AffectsTrading:    true,
			AffectsSettlement: true,
		}
		if isPublic {
			info.Name = name
			info.Source = models.SourcePublicHoliday
		} else {
			info.Name = "Market Holiday"
		}
		return info
	}

	return nil
}

// HolidaysInRange returns every holiday in [start, end], deduplicated
// by date, optionally including weekends.
func (m *Manager) HolidaysInRange(ctx context.Context, market models.Market, start, end time.Time, includeWeekends bool) []models.HolidayInfo {
	var out []models.HolidayInfo
	for day := clock.Date(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		info := m.HolidayInfo(ctx, market, day)
		if info == nil {
			continue
		}
		if !includeWeekends && info.Source == models.SourceWeekend {
			continue
		}
		out = append(out, *info)
	}
	return out
}

// UpcomingHolidays returns holidays from today through daysAhead days.
func (m *Manager) UpcomingHolidays(ctx context.Context, market models.Market, now time.Time, daysAhead int, includeWeekends bool) []models.HolidayInfo {
	start := clock.Date(now)
	return m.HolidaysInRange(ctx, market, start, start.AddDate(0, 0, daysAhead), includeWeekends)
}

// YearSummary tallies a market's holidays for one year by source.
type YearSummary struct {
	MarketCode    string               `json:"market_code"`
	Year          int                  `json:"year"`
	TotalHolidays int                  `json:"total_holidays"`
	ByExchange    int                  `json:"by_exchange"`
	ByPublic      int                  `json:"by_public"`
	ByManual      int                  `json:"by_manual"`
	Holidays      []models.HolidayInfo `json:"holidays"`
}

// Summary builds the holiday summary for a market and year.
func (m *Manager) Summary(ctx context.Context, market models.Market, year int) YearSummary {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	holidays := m.HolidaysInRange(ctx, market, start, end, false)

	summary := YearSummary{
		MarketCode:    market.Code,
		Year:          year,
		TotalHolidays: len(holidays),
		Holidays:      holidays,
	}
	for _, h := range holidays {
		switch h.Source {
		case models.SourceExchangeCalendar:
			summary.ByExchange++
		case models.SourcePublicHoliday:
			summary.ByPublic++
		case models.SourceManualOverride:
			summary.ByManual++
		}
	}
	return summary
}

// MarketComparison contrasts two markets' holidays over a range.
type MarketComparison struct {
	MarketA     string   `json:"market_a"`
	MarketB     string   `json:"market_b"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	TotalA      int      `json:"total_a"`
	TotalB      int      `json:"total_b"`
	CommonDates []string `json:"common_dates"`
	OnlyInA     []string `json:"only_in_a"`
	OnlyInB     []string `json:"only_in_b"`
}

// CompareMarkets contrasts holiday dates between two markets.
func (m *Manager) CompareMarkets(ctx context.Context, a, b models.Market, start, end time.Time) MarketComparison {
	holidaysA := m.HolidaysInRange(ctx, a, start, end, false)
	holidaysB := m.HolidaysInRange(ctx, b, start, end, false)

	datesA := make(map[string]bool, len(holidaysA))
	for _, h := range holidaysA {
		datesA[h.Date.Format("2006-01-02")] = true
	}
	datesB := make(map[string]bool, len(holidaysB))
	for _, h := range holidaysB {
		datesB[h.Date.Format("2006-01-02")] = true
	}

	cmp := MarketComparison{
		MarketA:   a.Code,
		MarketB:   b.Code,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		TotalA:    len(holidaysA),
		TotalB:    len(holidaysB),
	}
	for d := range datesA {
		if datesB[d] {
			cmp.CommonDates = append(cmp.CommonDates, d)
		} else {
			cmp.OnlyInA = append(cmp.OnlyInA, d)
		}
	}
	for d := range datesB {
		if !datesA[d] {
			cmp.OnlyInB = append(cmp.OnlyInB, d)
		}
	}
	sort.Strings(cmp.CommonDates)
	sort.Strings(cmp.OnlyInA)
	sort.Strings(cmp.OnlyInB)
	return cmp
}

// AddSpecialClosure records a manual closure (typhoon days and the
// like) for a market.
func (m *Manager) AddSpecialClosure(market models.Market, day time.Time, name, reason string) error {
	err := m.overrides.Add(models.Override{
		Date:              clock.Date(day),
		MarketCode:        market.Code,
		Name:              name,
		Reason:            reason,
		IsClosure:         true,
		AffectsTrading:    true,
		AffectsSettlement: true,
	})
	if err == nil {
		logging.LogOverride(m.logger, "add", market.Code, day.Format("2006-01-02"), name)
	}
	return err
}

// RemoveSpecialClosure deletes a manual closure.
func (m *Manager) RemoveSpecialClosure(market models.Market, day time.Time) error {
	err := m.overrides.Remove(market.Code, day)
	if err == nil {
		logging.LogOverride(m.logger, "remove", market.Code, day.Format("2006-01-02"), "")
	}
	return err
}
