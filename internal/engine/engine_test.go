package engine

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/calendar"
	"apac-settle/internal/clock"
	"apac-settle/internal/holiday"
	"apac-settle/internal/models"
	"apac-settle/internal/overlap"
	"apac-settle/internal/registry"
	"apac-settle/internal/special"
	"apac-settle/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *holiday.Manager, *clock.Service) {
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

	reg := registry.New(registry.BuiltIn())
	cal := calendar.NewService(reg, manager, zerolog.Nop())
	clk := clock.New()
	ovl := overlap.NewCalculator(clk, cal)
	eng := New(reg, cal, clk, ovl, special.NewAdvisor(), zerolog.Nop())
	return eng, manager, clk
}

func execAt(t *testing.T, clk *clock.Service, m models.Market, day, hhmm string) *time.Time {
	t.Helper()
	instant, err := clk.Localize(m, clock.MustDate(day), hhmm)
	if err != nil {
		t.Fatalf("Localize error: %v", err)
	}
	return &instant
}

func assertNoDuplicates(t *testing.T, label string, items []string) {
	t.Helper()
	seen := make(map[string]bool, len(items))
	for _, s := range items {
		if seen[s] {
			t.Errorf("%s repeats %q: %v", label, s, items)
		}
		seen[s] = true
	}
}

func TestCheckLikely(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "JP", clock.MustDate("2026-01-28"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusLikely {
		t.Fatalf("status = %s, want LIKELY (%+v)", result.Status, result)
	}
	want := "Settlement expected on 2026-01-29 (T+1). Both HK and JP markets are open for trading and settlement."
	if result.Message != want {
		t.Errorf("message = %q\nwant      %q", result.Message, want)
	}
	if result.CommonSettlementDate == nil ||
		!result.CommonSettlementDate.Equal(clock.MustDate("2026-01-29")) {
		t.Errorf("common settlement date = %v, want 2026-01-29", result.CommonSettlementDate)
	}
	if result.SettlementA.DaysToSettle != 1 || result.SettlementB.DaysToSettle != 1 {
		t.Errorf("days A=%d B=%d, want 1/1",
			result.SettlementA.DaysToSettle, result.SettlementB.DaysToSettle)
	}

	// One depository cut-off and one market close per market, present
	// whether or not an execution time was given.
	if len(result.Deadlines) != 4 {
		t.Fatalf("got %d deadlines, want 4: %+v", len(result.Deadlines), result.Deadlines)
	}
	for i := 1; i < len(result.Deadlines); i++ {
		if result.Deadlines[i].Time.Before(result.Deadlines[i-1].Time) {
			t.Fatal("deadlines not sorted by instant")
		}
	}
	if len(result.Recommendations) == 0 {
		t.Error("LIKELY should still carry standing recommendations")
	}
}

func TestCheckDetailsPopulated(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "JP", clock.MustDate("2026-01-28"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	d := result.Details
	if d == nil {
		t.Fatal("details not populated")
	}
	if d.MarketA.MarketCode != "HK" || d.MarketB.MarketCode != "JP" {
		t.Errorf("detail markets = %s/%s", d.MarketA.MarketCode, d.MarketB.MarketCode)
	}
	for _, side := range []models.MarketDayDetail{d.MarketA, d.MarketB} {
		if !side.TradingDayOnTradeDate || !side.SettlementDayOnTradeDate {
			t.Errorf("%s trade-date flags = %+v, want open", side.MarketCode, side)
		}
		if !side.TradingDayOnSettlementDate || !side.SettlementDayOnSettlementDate {
			t.Errorf("%s settlement-date flags = %+v, want open", side.MarketCode, side)
		}
	}
	if d.OverlapSummary != "2h 30m overlap" {
		t.Errorf("overlap summary = %q, want \"2h 30m overlap\"", d.OverlapSummary)
	}
	if len(d.OverlapWindows) == 0 {
		t.Error("overlap windows missing")
	}
	if d.ExecutionTimeValid != nil {
		t.Error("ExecutionTimeValid should be unset without an execution time")
	}
}

func TestCheckInvalidTradeDate(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "JP", clock.MustDate("2026-01-01"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	want := "Trade date 2026-01-01 is not valid. HK: New Year's Day; JP: New Year's Day. Please select a common business day."
	if result.Message != want {
		t.Errorf("message = %q\nwant      %q", result.Message, want)
	}
	if result.NextViableDate == nil ||
		!result.NextViableDate.Equal(clock.MustDate("2026-01-05")) {
		t.Errorf("next viable = %v, want 2026-01-05", result.NextViableDate)
	}
	if result.Details == nil ||
		result.Details.MarketA.TradingDayOnTradeDate ||
		result.Details.MarketB.TradingDayOnTradeDate {
		t.Errorf("details should mark both markets closed: %+v", result.Details)
	}

	// Postpone advice comes before the concrete date.
	var postponeIdx, nextIdx = -1, -1
	for i, r := range result.Recommendations {
		if strings.HasPrefix(r, "Consider postponing") {
			postponeIdx = i
		}
		if strings.HasPrefix(r, "Next viable trade date:") {
			nextIdx = i
		}
	}
	if postponeIdx == -1 || nextIdx == -1 || postponeIdx > nextIdx {
		t.Errorf("recommendation order wrong: %v", result.Recommendations)
	}
}

func TestCheckLunarNewYearPair(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "CN", clock.MustDate("2026-02-16"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	if !strings.Contains(result.Message, "CN: Chinese New Year") {
		t.Errorf("message %q does not name the CN closure", result.Message)
	}
	if result.NextViableDate == nil ||
		!result.NextViableDate.Equal(clock.MustDate("2026-02-25")) {
		t.Errorf("next viable = %v, want 2026-02-25", result.NextViableDate)
	}

	// LNY advisories ride along on the pair, each exactly once.
	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, "Lunar New Year period") {
		t.Errorf("no LNY advisory in warnings: %v", result.Warnings)
	}
	if !strings.Contains(joined, "[HK-CN] Stock Connect settlements follow both HK and mainland schedules during LNY") {
		t.Errorf("no Stock Connect note in warnings: %v", result.Warnings)
	}
	assertNoDuplicates(t, "warnings", result.Warnings)
	assertNoDuplicates(t, "recommendations", result.Recommendations)
}

func TestCheckPastCutOff(t *testing.T) {
	eng, _, clk := newTestEngine(t)
	hk, _ := registry.New(registry.BuiltIn()).Get("HK")

	execution := execAt(t, clk, hk, "2026-03-02", "16:30")
	result, err := eng.Check(context.Background(), "HK", "SG", clock.MustDate("2026-03-02"), execution, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	wantWarning := "Execution time is past HK depository cut-off (16:00)"
	found := false
	for _, w := range result.Warnings {
		if w == wantWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings %v missing %q", result.Warnings, wantWarning)
	}
	if !strings.HasPrefix(result.Message, "Settlement unlikely. ") {
		t.Errorf("message = %q", result.Message)
	}
	if result.NextViableDate == nil ||
		!result.NextViableDate.Equal(clock.MustDate("2026-03-03")) {
		t.Errorf("next viable = %v, want 2026-03-03", result.NextViableDate)
	}
}

func TestCheckExactlyAtCutOffIsPast(t *testing.T) {
	eng, _, clk := newTestEngine(t)
	hk, _ := registry.New(registry.BuiltIn()).Get("HK")

	execution := execAt(t, clk, hk, "2026-03-02", "16:00")
	result, err := eng.Check(context.Background(), "HK", "SG", clock.MustDate("2026-03-02"), execution, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != models.StatusUnlikely {
		t.Errorf("execution exactly at cut-off should be UNLIKELY, got %s", result.Status)
	}
}

func TestCheckImminentCutOff(t *testing.T) {
	eng, _, clk := newTestEngine(t)
	hk, _ := registry.New(registry.BuiltIn()).Get("HK")

	execution := execAt(t, clk, hk, "2026-03-02", "15:30")
	result, err := eng.Check(context.Background(), "HK", "SG", clock.MustDate("2026-03-02"), execution, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusAtRisk {
		t.Fatalf("status = %s, want AT_RISK (%+v)", result.Status, result.Warnings)
	}
	want := "Settlement may occur on 2026-03-04 (T+2), but operational cut-off is imminent. Issues: HK depository instruction cut-off closes in 30m"
	if result.Message != want {
		t.Errorf("message = %q\nwant      %q", result.Message, want)
	}
}

func TestCheckComfortableLeadTime(t *testing.T) {
	eng, _, clk := newTestEngine(t)
	hk, _ := registry.New(registry.BuiltIn()).Get("HK")

	execution := execAt(t, clk, hk, "2026-03-02", "10:00")
	result, err := eng.Check(context.Background(), "HK", "SG", clock.MustDate("2026-03-02"), execution, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != models.StatusLikely {
		t.Errorf("status = %s, want LIKELY", result.Status)
	}
	if len(result.Deadlines) != 4 {
		t.Errorf("got %d deadlines, want 4", len(result.Deadlines))
	}
	// 10:00 HK falls inside the shared morning session.
	if result.Details == nil || result.Details.ExecutionTimeValid == nil {
		t.Fatal("ExecutionTimeValid not set when an execution time is given")
	}
	if !*result.Details.ExecutionTimeValid {
		t.Error("10:00 execution should fall inside an overlap window")
	}
}

func TestCheckDeadlinesEvaluatedAgainstClock(t *testing.T) {
	eng, _, clk := newTestEngine(t)
	hk, _ := registry.New(registry.BuiltIn()).Get("HK")

	// 15:00 HK on the trade date: both JP deadlines (14:00 cut-off and
	// 15:00 close, JST) are already past, both HK ones (16:00 HKT) are
	// an hour out.
	now, err := clk.Localize(hk, clock.MustDate("2026-01-28"), "15:00")
	if err != nil {
		t.Fatal(err)
	}
	clk.NowFunc = func() time.Time { return now }

	result, err := eng.Check(context.Background(), "HK", "JP", clock.MustDate("2026-01-28"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	passed, upcoming := 0, 0
	for _, d := range result.Deadlines {
		if d.IsBefore {
			upcoming++
			if d.MarketCode != "HK" || d.TimeRemaining != "1h 0m" {
				t.Errorf("upcoming deadline = %+v, want HK with 1h 0m", d)
			}
			continue
		}
		passed++
		if d.MarketCode != "JP" {
			t.Errorf("passed deadline = %+v, want JP", d)
		}
		if d.TimeRemaining != "" {
			t.Errorf("passed deadline carries remaining time: %+v", d)
		}
	}
	if passed != 2 || upcoming != 2 {
		t.Errorf("passed=%d upcoming=%d, want 2/2: %+v", passed, upcoming, result.Deadlines)
	}

	// Without an execution time the clock-relative deadlines are
	// informational and must not sway classification.
	if result.Status != models.StatusLikely {
		t.Errorf("status = %s, want LIKELY", result.Status)
	}
}

func TestCheckExtendedSettlementAtRisk(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	// Trading Friday before the CN Lunar New Year run stretches the CN
	// leg far past T+1.
	result, err := eng.Check(context.Background(), "HK", "CN", clock.MustDate("2026-02-13"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusAtRisk {
		t.Fatalf("status = %s, want AT_RISK", result.Status)
	}
	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, "CN settlement takes 12 calendar days due to market closures") {
		t.Errorf("warnings missing extended-settlement note: %v", result.Warnings)
	}
	if result.CommonSettlementDate == nil ||
		!result.CommonSettlementDate.Equal(clock.MustDate("2026-02-25")) {
		t.Errorf("common date = %v, want 2026-02-25", result.CommonSettlementDate)
	}
}

func TestCheckManualClosureWithAdvisory(t *testing.T) {
	eng, manager, _ := newTestEngine(t)
	hk, _ := registry.New(registry.BuiltIn()).Get("HK")

	day := clock.MustDate("2026-07-20")
	if err := manager.AddSpecialClosure(hk, day, "Typhoon Signal 8", "T8 hoisted"); err != nil {
		t.Fatalf("AddSpecialClosure error: %v", err)
	}

	result, err := eng.Check(context.Background(), "HK", "SG", day, nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	joined := strings.Join(result.Warnings, "\n")
	if !strings.Contains(joined, "HK: Typhoon Signal 8") {
		t.Errorf("warnings missing override name: %v", result.Warnings)
	}
	if !strings.Contains(joined, "[HK] Typhoon season - monitor Hong Kong Observatory for warnings") {
		t.Errorf("warnings missing typhoon advisory: %v", result.Warnings)
	}
	if result.NextViableDate == nil ||
		!result.NextViableDate.Equal(clock.MustDate("2026-07-21")) {
		t.Errorf("next viable = %v, want 2026-07-21", result.NextViableDate)
	}
}

func TestCheckUnknownMarket(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "US", clock.MustDate("2026-01-28"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("unknown market should yield a result, not an error: %v", err)
	}
	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	if result.MarketB != "US" {
		t.Errorf("MarketB = %q, want US", result.MarketB)
	}
	if !strings.Contains(result.Message, "Unknown market code US") {
		t.Errorf("message %q does not name the unknown code", result.Message)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "US") {
		t.Errorf("warnings %v do not name the unknown code", result.Warnings)
	}
}

func TestCheckSameMarketRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "hk", clock.MustDate("2026-01-28"), nil, models.InstrumentEquity)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	if !strings.Contains(result.Message, "Buy and sell markets must differ") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestCheckUnknownInstrumentRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	result, err := eng.Check(context.Background(), "HK", "JP", clock.MustDate("2026-01-28"), nil, "crypto")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != models.StatusUnlikely {
		t.Fatalf("status = %s, want UNLIKELY", result.Status)
	}
	if !strings.Contains(result.Message, `Unknown instrument type "crypto"`) {
		t.Errorf("message = %q", result.Message)
	}

	// Empty instrument defaults to equity instead of rejecting.
	result, err = eng.Check(context.Background(), "HK", "JP", clock.MustDate("2026-01-28"), nil, "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != models.StatusLikely {
		t.Errorf("default instrument check = %s, want LIKELY", result.Status)
	}
}

func TestDedupeStrings(t *testing.T) {
	got := dedupeStrings([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
