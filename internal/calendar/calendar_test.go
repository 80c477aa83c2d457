package calendar

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/clock"
	"apac-settle/internal/errors"
	"apac-settle/internal/holiday"
	"apac-settle/internal/registry"
	"apac-settle/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	st, err := store.NewCalendarStore(filepath.Join(dir, "calendars.db"))
	if err != nil {
		t.Fatalf("NewCalendarStore error: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	exchange, err := holiday.NewExchangeSource(context.Background(), st, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewExchangeSource error: %v", err)
	}
	overrides := holiday.NewOverrideStore(filepath.Join(dir, "manual_overrides.json"), zerolog.Nop())
	manager := holiday.NewManager(overrides, exchange, holiday.NewPublicSource(), zerolog.Nop())

	return NewService(registry.New(registry.BuiltIn()), manager, zerolog.Nop())
}

func TestNextTradingDay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		market string
		after  string
		want   string
	}{
		{"plain weekday", "HK", "2026-01-27", "2026-01-28"},
		{"skips weekend", "HK", "2026-01-30", "2026-02-02"},
		{"skips LNY run", "CN", "2026-02-13", "2026-02-25"},
		{"strictly after holiday eve", "JP", "2025-12-30", "2026-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.NextTradingDay(ctx, tt.market, clock.MustDate(tt.after))
			if err != nil {
				t.Fatalf("NextTradingDay error: %v", err)
			}
			if !got.Equal(clock.MustDate(tt.want)) {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestSettlementDate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		market    string
		tradeDate string
		want      string
		days      int
	}{
		// JP, HK, and CN are T+1; SG is T+2.
		{"JP next day", "JP", "2026-01-28", "2026-01-29", 1},
		{"HK next day", "HK", "2026-01-28", "2026-01-29", 1},
		{"SG over weekend", "SG", "2026-01-29", "2026-02-02", 4},
		{"CN across LNY", "CN", "2026-02-13", "2026-02-25", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.SettlementDate(ctx, tt.market, clock.MustDate(tt.tradeDate))
			if err != nil {
				t.Fatalf("SettlementDate error: %v", err)
			}
			if !result.SettlementDate.Equal(clock.MustDate(tt.want)) {
				t.Errorf("settlement date = %s, want %s",
					result.SettlementDate.Format("2006-01-02"), tt.want)
			}
			if result.DaysToSettle != tt.days {
				t.Errorf("DaysToSettle = %d, want %d", result.DaysToSettle, tt.days)
			}
		})
	}
}

func TestSkippedDaysRecorded(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// SG T+2 from Thursday 2026-01-29 crosses a weekend.
	result, err := s.SettlementDate(ctx, "SG", clock.MustDate("2026-01-29"))
	if err != nil {
		t.Fatalf("SettlementDate error: %v", err)
	}
	if len(result.SkippedDays) != 2 {
		t.Fatalf("got %d skipped days, want 2: %+v", len(result.SkippedDays), result.SkippedDays)
	}
	for _, skipped := range result.SkippedDays {
		if skipped.Reason != "Weekend" {
			t.Errorf("skip reason = %q, want Weekend", skipped.Reason)
		}
	}

	// JP T+1 from 2025-12-31 skips the New Year run with named reasons.
	result, err = s.SettlementDate(ctx, "JP", clock.MustDate("2025-12-31"))
	if err != nil {
		t.Fatalf("SettlementDate error: %v", err)
	}
	if !result.SettlementDate.Equal(clock.MustDate("2026-01-05")) {
		t.Fatalf("settlement date = %s, want 2026-01-05",
			result.SettlementDate.Format("2006-01-02"))
	}
	named := false
	for _, skipped := range result.SkippedDays {
		if skipped.Reason == "New Year's Day" {
			named = true
		}
	}
	if !named {
		t.Errorf("no skip named New Year's Day: %+v", result.SkippedDays)
	}
}

func TestPreviousTradingDay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		market string
		before string
		want   string
	}{
		{"plain weekday", "HK", "2026-01-28", "2026-01-27"},
		{"back over weekend", "HK", "2026-02-02", "2026-01-30"},
		{"back over LNY run", "CN", "2026-02-25", "2026-02-13"},
		{"strictly before year end", "JP", "2026-01-05", "2025-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.PreviousTradingDay(ctx, tt.market, clock.MustDate(tt.before))
			if err != nil {
				t.Fatalf("PreviousTradingDay error: %v", err)
			}
			if !got.Equal(clock.MustDate(tt.want)) {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestTradingAndNonTradingDaysInRange(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// CN is shut from 02-16 through 02-24 (LNY plus the weekend).
	trading, err := s.TradingDaysInRange(ctx, "CN",
		clock.MustDate("2026-02-16"), clock.MustDate("2026-02-25"))
	if err != nil {
		t.Fatalf("TradingDaysInRange error: %v", err)
	}
	if len(trading) != 1 || !trading[0].Equal(clock.MustDate("2026-02-25")) {
		t.Errorf("trading days = %v, want [2026-02-25]", trading)
	}

	// HK trades 02-16 then closes 02-17..19; 02-14/15 are the weekend.
	closed, err := s.NonTradingDaysInRange(ctx, "HK",
		clock.MustDate("2026-02-14"), clock.MustDate("2026-02-19"))
	if err != nil {
		t.Fatalf("NonTradingDaysInRange error: %v", err)
	}
	if len(closed) != 5 {
		t.Fatalf("got %d closed days, want 5: %v", len(closed), closed)
	}
	for _, day := range closed {
		if day.Equal(clock.MustDate("2026-02-16")) {
			t.Error("2026-02-16 is a trading day, should not be listed")
		}
	}
}

func TestCommonTradingDays(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// JP trades all of 02-16..02-20, HK only the Monday and Friday.
	days, err := s.CommonTradingDays(ctx, "HK", "JP",
		clock.MustDate("2026-02-16"), clock.MustDate("2026-02-20"))
	if err != nil {
		t.Fatalf("CommonTradingDays error: %v", err)
	}
	if len(days) != 2 ||
		!days[0].Equal(clock.MustDate("2026-02-16")) ||
		!days[1].Equal(clock.MustDate("2026-02-20")) {
		t.Errorf("common days = %v, want [2026-02-16 2026-02-20]", days)
	}

	// CN never opens in the window, so there is no common day.
	days, err = s.CommonTradingDays(ctx, "HK", "CN",
		clock.MustDate("2026-02-16"), clock.MustDate("2026-02-22"))
	if err != nil {
		t.Fatalf("CommonTradingDays error: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("common days = %v, want none", days)
	}
}

func TestNextViableTradeDate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// Inclusive of from: both HK and JP trade on the Monday itself.
	got, err := s.NextViableTradeDate(ctx, "HK", "JP", clock.MustDate("2026-02-16"))
	if err != nil {
		t.Fatalf("NextViableTradeDate error: %v", err)
	}
	if !got.Equal(clock.MustDate("2026-02-16")) {
		t.Errorf("got %s, want 2026-02-16", got.Format("2006-01-02"))
	}

	// CN's LNY run pushes the pair out to the reopening day.
	got, err = s.NextViableTradeDate(ctx, "HK", "CN", clock.MustDate("2026-02-16"))
	if err != nil {
		t.Fatalf("NextViableTradeDate error: %v", err)
	}
	if !got.Equal(clock.MustDate("2026-02-25")) {
		t.Errorf("got %s, want 2026-02-25", got.Format("2006-01-02"))
	}
}

func TestCommonSettlementDate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		a, b      string
		tradeDate string
		want      string
	}{
		// Both legs settle next day.
		{"HK/JP plain", "HK", "JP", "2026-01-28", "2026-01-29"},
		// HK settles 01-29, SG 01-30; common is the later one.
		{"HK/SG plain", "HK", "SG", "2026-01-28", "2026-01-30"},
		// HK settles 02-16, CN waits out the LNY run until 02-25.
		{"HK/CN across LNY", "HK", "CN", "2026-02-13", "2026-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			common, err := s.CommonSettlementDate(ctx, tt.a, tt.b, clock.MustDate(tt.tradeDate))
			if err != nil {
				t.Fatalf("CommonSettlementDate error: %v", err)
			}
			if !common.CommonDate.Equal(clock.MustDate(tt.want)) {
				t.Errorf("common date = %s, want %s (A=%s B=%s)",
					common.CommonDate.Format("2006-01-02"), tt.want,
					common.A.SettlementDate.Format("2006-01-02"),
					common.B.SettlementDate.Format("2006-01-02"))
			}
			if common.CommonDate.Before(common.A.SettlementDate) ||
				common.CommonDate.Before(common.B.SettlementDate) {
				t.Error("common date earlier than a leg's own settlement date")
			}
		})
	}
}

func TestIterationLimit(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	hk, err := registry.New(registry.BuiltIn()).Get("HK")
	if err != nil {
		t.Fatal(err)
	}

	// Close HK for forty consecutive days so no walk can finish.
	day := clock.MustDate("2026-03-02")
	for i := 0; i < 40; i++ {
		if err := s.Holidays().AddSpecialClosure(hk, day, "Extended closure", "test"); err != nil {
			t.Fatalf("AddSpecialClosure error: %v", err)
		}
		day = day.AddDate(0, 0, 1)
	}

	_, err = s.NextTradingDay(ctx, "HK", clock.MustDate("2026-03-01"))
	if !errors.Is(err, errors.ErrIterationLimit) {
		t.Errorf("NextTradingDay: expected ErrIterationLimit, got %v", err)
	}

	_, err = s.SettlementDate(ctx, "HK", clock.MustDate("2026-03-01"))
	if !errors.Is(err, errors.ErrIterationLimit) {
		t.Errorf("SettlementDate: expected ErrIterationLimit, got %v", err)
	}
}

func TestMonthGrid(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	cells, err := s.MonthGrid(ctx, "HK", 2026, time.February)
	if err != nil {
		t.Fatalf("MonthGrid error: %v", err)
	}
	if len(cells) != 28 {
		t.Fatalf("February 2026 has %d cells, want 28", len(cells))
	}

	byDate := make(map[string]DayCell, len(cells))
	trading := 0
	for _, cell := range cells {
		byDate[cell.Date.Format("2006-01-02")] = cell
		if cell.IsTrading {
			trading++
		}
	}

	if byDate["2026-02-17"].IsTrading {
		t.Error("2026-02-17 should be closed for LNY")
	}
	if byDate["2026-02-17"].HolidayName != "Lunar New Year" {
		t.Errorf("holiday name = %q, want Lunar New Year", byDate["2026-02-17"].HolidayName)
	}
	if !byDate["2026-02-02"].IsTrading {
		t.Error("2026-02-02 should be a trading day")
	}
	// 28 days, 8 weekend days, 3 LNY closures.
	if trading != 17 {
		t.Errorf("trading days = %d, want 17", trading)
	}
}

func TestTradingDayCount(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	count, err := s.TradingDayCount(ctx, "HK",
		clock.MustDate("2026-02-01"), clock.MustDate("2026-02-28"))
	if err != nil {
		t.Fatalf("TradingDayCount error: %v", err)
	}
	if count != 17 {
		t.Errorf("count = %d, want 17", count)
	}
}

func TestIsTradingAndSettlementDay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	trading, err := s.IsTradingDay(ctx, "JP", clock.MustDate("2026-01-01"))
	if err != nil {
		t.Fatalf("IsTradingDay error: %v", err)
	}
	if trading {
		t.Error("JP should be closed on New Year's Day")
	}

	if _, err := s.IsTradingDay(ctx, "US", clock.MustDate("2026-01-01")); !errors.Is(err, errors.ErrMarketNotFound) {
		t.Errorf("expected ErrMarketNotFound, got %v", err)
	}

	settling, err := s.IsSettlementDay(ctx, "JP", clock.MustDate("2026-01-05"))
	if err != nil {
		t.Fatalf("IsSettlementDay error: %v", err)
	}
	if !settling {
		t.Error("2026-01-05 should be a settlement day for JP")
	}
}
