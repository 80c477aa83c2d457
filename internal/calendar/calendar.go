// Package calendar provides trading and settlement day arithmetic on
// top of the merged holiday view.
package calendar

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/clock"
	"apac-settle/internal/errors"
	"apac-settle/internal/holiday"
	"apac-settle/internal/models"
	"apac-settle/internal/registry"
)

// MaxDateIterations bounds every date-walking loop. Exceeding it means
// the calendar data is corrupt, not that the search should widen.
const MaxDateIterations = 30

// Service answers calendar queries for registered markets.
type Service struct {
	registry *registry.Registry
	holidays *holiday.Manager
	logger   zerolog.Logger
}

// NewService creates a calendar service.
func NewService(reg *registry.Registry, holidays *holiday.Manager, logger zerolog.Logger) *Service {
	return &Service{registry: reg, holidays: holidays, logger: logger}
}

// Holidays exposes the underlying holiday manager.
func (s *Service) Holidays() *holiday.Manager {
	return s.holidays
}

// IsTradingDay reports whether the market trades on the date.
func (s *Service) IsTradingDay(ctx context.Context, marketCode string, day time.Time) (bool, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return false, err
	}
	return s.holidays.IsTradingDay(ctx, m, clock.Date(day)), nil
}

// IsSettlementDay reports whether settlement can complete on the date.
func (s *Service) IsSettlementDay(ctx context.Context, marketCode string, day time.Time) (bool, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return false, err
	}
	return s.holidays.IsSettlementDay(ctx, m, clock.Date(day)), nil
}

// NextTradingDay returns the first trading day strictly after the date.
func (s *Service) NextTradingDay(ctx context.Context, marketCode string, after time.Time) (time.Time, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return time.Time{}, err
	}
	return s.nextDay(ctx, m, after, s.holidays.IsTradingDay)
}

// NextSettlementDay returns the first settlement day strictly after
// the date.
func (s *Service) NextSettlementDay(ctx context.Context, marketCode string, after time.Time) (time.Time, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return time.Time{}, err
	}
	return s.nextDay(ctx, m, after, s.holidays.IsSettlementDay)
}

func (s *Service) nextDay(ctx context.Context, m models.Market, after time.Time, ok func(context.Context, models.Market, time.Time) bool) (time.Time, error) {
	day := clock.Date(after)
	for i := 0; i < MaxDateIterations; i++ {
		day = day.AddDate(0, 0, 1)
		if ok(ctx, m, day) {
			return day, nil
		}
	}
	return time.Time{}, errors.NewMarketError(m.Code, "next business day",
		errors.Wrapf(errors.ErrIterationLimit, "no open day within %d days of %s",
			MaxDateIterations, after.Format("2006-01-02")))
}

// PreviousTradingDay returns the last trading day strictly before the
// date.
func (s *Service) PreviousTradingDay(ctx context.Context, marketCode string, before time.Time) (time.Time, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return time.Time{}, err
	}
	day := clock.Date(before)
	for i := 0; i < MaxDateIterations; i++ {
		day = day.AddDate(0, 0, -1)
		if s.holidays.IsTradingDay(ctx, m, day) {
			return day, nil
		}
	}
	return time.Time{}, errors.NewMarketError(m.Code, "previous trading day",
		errors.Wrapf(errors.ErrIterationLimit, "no open day within %d days before %s",
			MaxDateIterations, before.Format("2006-01-02")))
}

// TradingDaysInRange lists every trading day in [start, end].
func (s *Service) TradingDaysInRange(ctx context.Context, marketCode string, start, end time.Time) ([]time.Time, error) {
	return s.daysInRange(ctx, marketCode, start, end, true)
}

// NonTradingDaysInRange lists every closed day in [start, end],
// weekends included.
func (s *Service) NonTradingDaysInRange(ctx context.Context, marketCode string, start, end time.Time) ([]time.Time, error) {
	return s.daysInRange(ctx, marketCode, start, end, false)
}

func (s *Service) daysInRange(ctx context.Context, marketCode string, start, end time.Time, trading bool) ([]time.Time, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return nil, err
	}
	var days []time.Time
	for day := clock.Date(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		if s.holidays.IsTradingDay(ctx, m, day) == trading {
			days = append(days, day)
		}
	}
	return days, nil
}

// CommonTradingDays lists the dates in [start, end] on which both
// markets trade.
func (s *Service) CommonTradingDays(ctx context.Context, codeA, codeB string, start, end time.Time) ([]time.Time, error) {
	marketA, err := s.registry.Get(codeA)
	if err != nil {
		return nil, err
	}
	marketB, err := s.registry.Get(codeB)
	if err != nil {
		return nil, err
	}
	var days []time.Time
	for day := clock.Date(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		if s.holidays.IsTradingDay(ctx, marketA, day) &&
			s.holidays.IsTradingDay(ctx, marketB, day) {
			days = append(days, day)
		}
	}
	return days, nil
}

// NextViableTradeDate returns the first date on or after from on which
// both markets trade.
func (s *Service) NextViableTradeDate(ctx context.Context, codeA, codeB string, from time.Time) (time.Time, error) {
	marketA, err := s.registry.Get(codeA)
	if err != nil {
		return time.Time{}, err
	}
	marketB, err := s.registry.Get(codeB)
	if err != nil {
		return time.Time{}, err
	}
	day := clock.Date(from)
	for i := 0; i < MaxDateIterations; i++ {
		if s.holidays.IsTradingDay(ctx, marketA, day) &&
			s.holidays.IsTradingDay(ctx, marketB, day) {
			return day, nil
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, errors.Wrapf(errors.ErrIterationLimit,
		"no common trading day for %s/%s within %d days of %s",
		marketA.Code, marketB.Code, MaxDateIterations, from.Format("2006-01-02"))
}

// AdvanceBusinessDays walks forward from the trade date until n
// settlement days have passed, recording every skipped calendar day.
func (s *Service) AdvanceBusinessDays(ctx context.Context, marketCode string, from time.Time, n int) (*models.SettlementDateResult, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return nil, err
	}

	tradeDate := clock.Date(from)
	result := &models.SettlementDateResult{
		TradeDate:  tradeDate,
		MarketCode: m.Code,
	}

	day := tradeDate
	counted := 0
	for i := 0; counted < n; i++ {
		if i >= MaxDateIterations {
			return nil, errors.NewMarketError(m.Code, "advance business days",
				errors.Wrapf(errors.ErrIterationLimit, "could not find %d settlement days after %s",
					n, tradeDate.Format("2006-01-02")))
		}
		day = day.AddDate(0, 0, 1)
		result.DaysToSettle++

		if s.holidays.IsSettlementDay(ctx, m, day) {
			counted++
			continue
		}
		result.SkippedDays = append(result.SkippedDays, models.SkippedDay{
			Date:   day,
			Reason: s.skipReason(ctx, m, day),
		})
	}

	result.SettlementDate = day
	return result, nil
}

func (s *Service) skipReason(ctx context.Context, m models.Market, day time.Time) string {
	if info := s.holidays.HolidayInfo(ctx, m, day); info != nil {
		return info.Name
	}
	return "Non-settlement day"
}

// SettlementDate computes the market's standard settlement date for a
// trade date.
func (s *Service) SettlementDate(ctx context.Context, marketCode string, tradeDate time.Time) (*models.SettlementDateResult, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return nil, err
	}
	return s.AdvanceBusinessDays(ctx, m.Code, tradeDate, m.SettlementCycle)
}

// CommonResult pairs two per-market settlement results with the first
// date on which both sides can settle.
type CommonResult struct {
	A          *models.SettlementDateResult `json:"a"`
	B          *models.SettlementDateResult `json:"b"`
	CommonDate time.Time                    `json:"common_date"`
}

// CommonSettlementDate finds the earliest date, no earlier than either
// market's own settlement date, on which both markets can settle.
func (s *Service) CommonSettlementDate(ctx context.Context, codeA, codeB string, tradeDate time.Time) (*CommonResult, error) {
	marketA, err := s.registry.Get(codeA)
	if err != nil {
		return nil, err
	}
	marketB, err := s.registry.Get(codeB)
	if err != nil {
		return nil, err
	}

	resultA, err := s.AdvanceBusinessDays(ctx, marketA.Code, tradeDate, marketA.SettlementCycle)
	if err != nil {
		return nil, err
	}
	resultB, err := s.AdvanceBusinessDays(ctx, marketB.Code, tradeDate, marketB.SettlementCycle)
	if err != nil {
		return nil, err
	}

	common := resultA.SettlementDate
	if resultB.SettlementDate.After(common) {
		common = resultB.SettlementDate
	}

	for i := 0; ; i++ {
		if s.holidays.IsSettlementDay(ctx, marketA, common) &&
			s.holidays.IsSettlementDay(ctx, marketB, common) {
			break
		}
		if i >= MaxDateIterations {
			return nil, errors.Wrapf(errors.ErrIterationLimit,
				"no common settlement day for %s/%s after %s",
				marketA.Code, marketB.Code, tradeDate.Format("2006-01-02"))
		}
		common = common.AddDate(0, 0, 1)
	}

	return &CommonResult{A: resultA, B: resultB, CommonDate: common}, nil
}

// DayCell is one calendar day in a month grid.
type DayCell struct {
	Date        time.Time `json:"date"`
	Weekday     string    `json:"weekday"`
	IsTrading   bool      `json:"is_trading"`
	HolidayName string    `json:"holiday_name,omitempty"`
}

// MonthGrid returns per-day trading information for a month.
func (s *Service) MonthGrid(ctx context.Context, marketCode string, year int, month time.Month) ([]DayCell, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var cells []DayCell
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		cell := DayCell{
			Date:      day,
			Weekday:   day.Format("Mon"),
			IsTrading: s.holidays.IsTradingDay(ctx, m, day),
		}
		if !cell.IsTrading {
			if info := s.holidays.HolidayInfo(ctx, m, day); info != nil {
				cell.HolidayName = info.Name
			}
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

// TradingDayCount counts trading days in [start, end].
func (s *Service) TradingDayCount(ctx context.Context, marketCode string, start, end time.Time) (int, error) {
	m, err := s.registry.Get(marketCode)
	if err != nil {
		return 0, err
	}
	count := 0
	for day := clock.Date(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		if s.holidays.IsTradingDay(ctx, m, day) {
			count++
		}
	}
	return count, nil
}
