// Package engine classifies cross-market settlement feasibility.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/calendar"
	"apac-settle/internal/clock"
	"apac-settle/internal/errors"
	"apac-settle/internal/logging"
	"apac-settle/internal/models"
	"apac-settle/internal/overlap"
	"apac-settle/internal/registry"
	"apac-settle/internal/special"
)

// Classification thresholds. Each is deliberately a single constant:
// operations teams tune these, so they must not be scattered.
const (
	// AtRiskThresholdMinutes marks a still-open cut-off as imminent.
	AtRiskThresholdMinutes = 60
	// MaxNormalSettlementDays is the longest settlement extension that
	// does not warrant an AT_RISK flag.
	MaxNormalSettlementDays = 3
)

// Engine runs settlement feasibility checks.
type Engine struct {
	registry *registry.Registry
	calendar *calendar.Service
	clock    *clock.Service
	overlap  *overlap.Calculator
	advisor  *special.Advisor
	logger   zerolog.Logger
}

// New creates a settlement engine.
func New(reg *registry.Registry, cal *calendar.Service, clk *clock.Service, ovl *overlap.Calculator, advisor *special.Advisor, logger zerolog.Logger) *Engine {
	return &Engine{
		registry: reg,
		calendar: cal,
		clock:    clk,
		overlap:  ovl,
		advisor:  advisor,
		logger:   logger,
	}
}

// Check evaluates whether a trade between two markets can settle. The
// execution time is optional; without it cut-off checks are skipped
// and the verdict rests on calendars alone. An empty instrument type
// defaults to equity. Malformed requests never error: they come back
// as UNLIKELY results whose warnings name the rejection.
func (e *Engine) Check(ctx context.Context, codeA, codeB string, tradeDate time.Time, executionTime *time.Time, instrument models.InstrumentType) (*models.CheckResult, error) {
	if instrument == "" {
		instrument = models.InstrumentEquity
	}
	if !instrument.Recognized() {
		return e.rejected(codeA, codeB, tradeDate, fmt.Sprintf(
			"Unknown instrument type %q (recognized: %s, %s, %s)",
			string(instrument), models.InstrumentEquity, models.InstrumentETF, models.InstrumentBond)), nil
	}
	if strings.EqualFold(codeA, codeB) {
		return e.rejected(codeA, codeB, tradeDate, fmt.Sprintf(
			"Buy and sell markets must differ (both %s)", strings.ToUpper(codeA))), nil
	}

	marketA, errA := e.registry.Get(codeA)
	marketB, errB := e.registry.Get(codeB)
	if errA != nil || errB != nil {
		var reasons []string
		for _, miss := range []struct {
			code string
			err  error
		}{{codeA, errA}, {codeB, errB}} {
			if miss.err != nil {
				reasons = append(reasons, fmt.Sprintf(
					"Unknown market code %s (available: %s)",
					strings.ToUpper(miss.code), strings.Join(e.registry.Codes(), ", ")))
			}
		}
		return e.rejected(codeA, codeB, tradeDate, reasons...), nil
	}

	tradeDate = clock.Date(tradeDate)
	result := &models.CheckResult{
		TradeDate: tradeDate,
		MarketA:   marketA.Code,
		MarketB:   marketB.Code,
	}

	defer func() {
		e.attachDetails(ctx, result, marketA, marketB, executionTime)
		e.appendAdvisories(marketA, marketB, tradeDate, result)
		logging.LogCheck(e.logger, marketA.Code, marketB.Code,
			tradeDate.Format("2006-01-02"), string(result.Status))
	}()

	// Invalid trade date ends the check before any settlement math.
	invalid := e.invalidTradeDateParts(ctx, tradeDate, marketA, marketB)
	if len(invalid) > 0 {
		result.Status = models.StatusUnlikely
		result.Warnings = append(result.Warnings, invalid...)
		result.Message = fmt.Sprintf(
			"Trade date %s is not valid. %s. Please select a common business day.",
			tradeDate.Format("2006-01-02"), strings.Join(invalid, "; "))
		result.Recommendations = append(result.Recommendations,
			"Consider postponing trade to next common business day")
		e.attachNextViable(ctx, marketA, marketB, tradeDate, result)
		return result, nil
	}

	common, err := e.calendar.CommonSettlementDate(ctx, marketA.Code, marketB.Code, tradeDate)
	if err != nil {
		if errors.Is(err, errors.ErrIterationLimit) {
			result.Status = models.StatusUnlikely
			result.Warnings = append(result.Warnings, err.Error())
			result.Message = "Settlement unlikely. " + err.Error()
			return result, nil
		}
		return nil, err
	}
	result.SettlementA = common.A
	result.SettlementB = common.B
	commonDate := common.CommonDate
	result.CommonSettlementDate = &commonDate

	deadlines, err := e.deadlines(tradeDate, e.clock.NowFunc(), marketA, marketB)
	if err != nil {
		return nil, err
	}
	result.Deadlines = deadlines

	var cutOffs []models.Deadline
	if executionTime != nil {
		cutOffs, err = e.cutOffChecks(tradeDate, *executionTime, marketA, marketB)
		if err != nil {
			return nil, err
		}
	}

	e.classify(ctx, result, cutOffs, executionTime, marketA, marketB)
	return result, nil
}

// rejected builds the UNLIKELY result for a request that fails
// validation before any calendar work.
func (e *Engine) rejected(codeA, codeB string, tradeDate time.Time, reasons ...string) *models.CheckResult {
	result := &models.CheckResult{
		Status:    models.StatusUnlikely,
		TradeDate: clock.Date(tradeDate),
		MarketA:   strings.ToUpper(codeA),
		MarketB:   strings.ToUpper(codeB),
		Warnings:  reasons,
		Message:   "Settlement check rejected. " + strings.Join(reasons, "; "),
	}
	logging.LogCheck(e.logger, result.MarketA, result.MarketB,
		result.TradeDate.Format("2006-01-02"), string(result.Status))
	return result
}

// invalidTradeDateParts returns "CODE: reason" for each market closed
// on the trade date.
func (e *Engine) invalidTradeDateParts(ctx context.Context, tradeDate time.Time, markets ...models.Market) []string {
	var parts []string
	for _, m := range markets {
		if e.calendar.Holidays().IsTradingDay(ctx, m, tradeDate) {
			continue
		}
		reason := "Market closed"
		if info := e.calendar.Holidays().HolidayInfo(ctx, m, tradeDate); info != nil {
			reason = info.Name
		}
		parts = append(parts, fmt.Sprintf("%s: %s", m.Code, reason))
	}
	return parts
}

// deadlines assembles each market's depository cut-off and market
// close on the trade date, evaluated against the current instant and
// sorted by deadline time.
func (e *Engine) deadlines(tradeDate, now time.Time, markets ...models.Market) ([]models.Deadline, error) {
	var deadlines []models.Deadline
	for _, m := range markets {
		if m.DepositoryCutOff != "" {
			cutOff, err := e.clock.Localize(m, tradeDate, m.DepositoryCutOff)
			if err != nil {
				return nil, err
			}
			deadlines = append(deadlines,
				models.NewDeadline(m.Code, models.DeadlineDepositoryCutOff, cutOff, now))
		}
		marketClose, err := e.clock.Localize(m, tradeDate, m.Hours.Close)
		if err != nil {
			return nil, err
		}
		deadlines = append(deadlines,
			models.NewDeadline(m.Code, models.DeadlineMarketClose, marketClose, now))
	}
	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].Time.Before(deadlines[j].Time)
	})
	return deadlines, nil
}

// cutOffChecks evaluates each market's depository cut-off against the
// execution instant. These drive classification; the result's deadline
// list is evaluated against "now" instead.
func (e *Engine) cutOffChecks(tradeDate, execution time.Time, markets ...models.Market) ([]models.Deadline, error) {
	var checks []models.Deadline
	for _, m := range markets {
		if m.DepositoryCutOff == "" {
			continue
		}
		cutOff, err := e.clock.Localize(m, tradeDate, m.DepositoryCutOff)
		if err != nil {
			return nil, err
		}
		checks = append(checks,
			models.NewDeadline(m.Code, models.DeadlineDepositoryCutOff, cutOff, execution))
	}
	return checks, nil
}

func (e *Engine) classify(ctx context.Context, result *models.CheckResult, cutOffs []models.Deadline, execution *time.Time, marketA, marketB models.Market) {
	var missedCutOffs, imminentCutOffs []models.Deadline
	for _, d := range cutOffs {
		if !d.IsBefore {
			missedCutOffs = append(missedCutOffs, d)
			continue
		}
		if remaining := d.RemainingMinutes(*execution); remaining > 0 && remaining < AtRiskThresholdMinutes {
			imminentCutOffs = append(imminentCutOffs, d)
		}
	}

	maxDays := result.SettlementA.DaysToSettle
	if result.SettlementB.DaysToSettle > maxDays {
		maxDays = result.SettlementB.DaysToSettle
	}
	commonDate := result.CommonSettlementDate.Format("2006-01-02")

	switch {
	case len(missedCutOffs) > 0:
		result.Status = models.StatusUnlikely
		for _, d := range missedCutOffs {
			m := marketA
			if d.MarketCode == marketB.Code {
				m = marketB
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Execution time is past %s depository cut-off (%s)",
				d.MarketCode, m.DepositoryCutOff))
		}
		result.Message = "Settlement unlikely. " + strings.Join(result.Warnings, "; ")
		result.Recommendations = append(result.Recommendations,
			"Consider postponing trade to next common business day")
		e.attachNextViable(ctx, marketA, marketB, result.TradeDate, result)

	case len(imminentCutOffs) > 0:
		result.Status = models.StatusAtRisk
		for _, d := range imminentCutOffs {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s closes in %s", d.Description, d.TimeRemaining))
		}
		result.Message = fmt.Sprintf(
			"Settlement may occur on %s (T+%d), but operational cut-off is imminent. Issues: %s",
			commonDate, maxDays, strings.Join(result.Warnings, "; "))
		result.Recommendations = append(result.Recommendations,
			"Immediate action required for trade confirmation",
			"Contact counterparty to ensure timely processing",
			"Consider alternative execution timing if possible")

	case maxDays > MaxNormalSettlementDays:
		result.Status = models.StatusAtRisk
		for _, sr := range []*models.SettlementDateResult{result.SettlementA, result.SettlementB} {
			if sr.DaysToSettle > MaxNormalSettlementDays {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"%s settlement takes %d calendar days due to market closures",
					sr.MarketCode, sr.DaysToSettle))
			}
		}
		issues := "Immediate action required for confirmations."
		if len(result.Warnings) > 0 {
			issues = "Issues: " + strings.Join(result.Warnings, "; ")
		}
		result.Message = fmt.Sprintf(
			"Settlement may occur on %s (T+%d), but operational cut-off is imminent. %s",
			commonDate, maxDays, issues)
		result.Recommendations = append(result.Recommendations,
			"Immediate action required for trade confirmation",
			"Contact counterparty to ensure timely processing",
			"Consider alternative execution timing if possible")

	default:
		result.Status = models.StatusLikely
		result.Message = fmt.Sprintf(
			"Settlement expected on %s (T+%d). Both %s and %s markets are open for trading and settlement.",
			commonDate, maxDays, marketA.Code, marketB.Code)
		result.Recommendations = append(result.Recommendations,
			"Ensure trade instructions are submitted before cut-off times",
			"Monitor both markets for any unexpected closures")
	}
}

// attachNextViable finds the first later date on which both markets
// trade and records the matching recommendation.
func (e *Engine) attachNextViable(ctx context.Context, marketA, marketB models.Market, tradeDate time.Time, result *models.CheckResult) {
	next, err := e.calendar.NextViableTradeDate(ctx, marketA.Code, marketB.Code, tradeDate.AddDate(0, 0, 1))
	if err != nil {
		e.logger.Warn().
			Str("market_a", marketA.Code).
			Str("market_b", marketB.Code).
			Str("trade_date", tradeDate.Format("2006-01-02")).
			Msg("No viable trade date within search window")
		return
	}
	result.NextViableDate = &next
	result.Recommendations = append(result.Recommendations,
		fmt.Sprintf("Next viable trade date: %s", next.Format("2006-01-02")))
}

// attachDetails records each market's calendar standing and the pair's
// trading-hour overlap on the trade date.
func (e *Engine) attachDetails(ctx context.Context, result *models.CheckResult, marketA, marketB models.Market, execution *time.Time) {
	details := &models.CheckDetails{
		MarketA: e.dayDetail(ctx, marketA, result.TradeDate, result.CommonSettlementDate),
		MarketB: e.dayDetail(ctx, marketB, result.TradeDate, result.CommonSettlementDate),
	}

	windows, err := e.overlap.Windows(ctx, marketA, marketB, result.TradeDate)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("market_a", marketA.Code).
			Str("market_b", marketB.Code).
			Msg("Overlap computation failed")
	} else {
		details.OverlapWindows = windows
		if summary, serr := e.overlap.Summarize(windows, marketA); serr == nil {
			details.OverlapSummary = summary.Text
		}
		if execution != nil {
			valid := false
			for _, w := range windows {
				if !execution.Before(w.Start) && execution.Before(w.End) {
					valid = true
					break
				}
			}
			details.ExecutionTimeValid = &valid
		}
	}
	result.Details = details
}

func (e *Engine) dayDetail(ctx context.Context, m models.Market, tradeDate time.Time, settlement *time.Time) models.MarketDayDetail {
	d := models.MarketDayDetail{
		MarketCode:               m.Code,
		TradingDayOnTradeDate:    e.calendar.Holidays().IsTradingDay(ctx, m, tradeDate),
		SettlementDayOnTradeDate: e.calendar.Holidays().IsSettlementDay(ctx, m, tradeDate),
	}
	if settlement != nil {
		d.TradingDayOnSettlementDate = e.calendar.Holidays().IsTradingDay(ctx, m, *settlement)
		d.SettlementDayOnSettlementDate = e.calendar.Holidays().IsSettlementDay(ctx, m, *settlement)
	}
	return d
}

// appendAdvisories folds special-case warnings into the result, then
// drops duplicates from the merged lists.
func (e *Engine) appendAdvisories(marketA, marketB models.Market, tradeDate time.Time, result *models.CheckResult) {
	adv := e.advisor.AdviseCross(marketA, marketB, tradeDate)
	result.Warnings = dedupeStrings(append(result.Warnings, adv.Warnings...))
	result.Recommendations = dedupeStrings(append(result.Recommendations, adv.Recommendations...))
}

// dedupeStrings removes later duplicates, keeping first-seen order.
func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
