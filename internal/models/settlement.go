package models

import (
	"fmt"
	"time"
)

// FeasibilityStatus classifies a settlement check outcome.
type FeasibilityStatus string

// Settlement feasibility outcomes.
const (
	StatusLikely   FeasibilityStatus = "LIKELY"
	StatusAtRisk   FeasibilityStatus = "AT_RISK"
	StatusUnlikely FeasibilityStatus = "UNLIKELY"
)

// DeadlineKind identifies an operational deadline type.
type DeadlineKind string

// Operational deadline kinds.
const (
	DeadlineDepositoryCutOff      DeadlineKind = "depository_cut_off"
	DeadlineMarketClose           DeadlineKind = "market_close"
	DeadlineInstructionSubmission DeadlineKind = "instruction_submission"
	DeadlineTradeConfirmation     DeadlineKind = "trade_confirmation"
	DeadlineSettlementCutOff      DeadlineKind = "settlement_cut_off"
)

// Deadline is an operational cut-off evaluated against a reference
// instant. IsBefore is strict: a reference exactly at the deadline
// counts as past, and a past deadline carries no remaining time.
type Deadline struct {
	MarketCode    string       `json:"market_code"`
	Kind          DeadlineKind `json:"kind"`
	Time          time.Time    `json:"time"`
	Description   string       `json:"description"`
	IsBefore      bool         `json:"is_before"`
	TimeRemaining string       `json:"time_remaining,omitempty"`
}

// NewDeadline evaluates a deadline against the given reference instant.
func NewDeadline(marketCode string, kind DeadlineKind, deadline, ref time.Time) Deadline {
	d := Deadline{
		MarketCode:  marketCode,
		Kind:        kind,
		Time:        deadline,
		Description: deadlineDescription(marketCode, kind),
		IsBefore:    ref.Before(deadline),
	}
	if d.IsBefore {
		remaining := int(deadline.Sub(ref) / time.Minute)
		if hours := remaining / 60; hours > 0 {
			d.TimeRemaining = fmt.Sprintf("%dh %dm", hours, remaining%60)
		} else {
			d.TimeRemaining = fmt.Sprintf("%dm", remaining)
		}
	}
	return d
}

// RemainingMinutes returns whole minutes until the deadline, zero if past.
func (d Deadline) RemainingMinutes(execution time.Time) int {
	if !d.IsBefore {
		return 0
	}
	return int(d.Time.Sub(execution) / time.Minute)
}

func deadlineDescription(marketCode string, kind DeadlineKind) string {
	switch kind {
	case DeadlineDepositoryCutOff:
		return fmt.Sprintf("%s depository instruction cut-off", marketCode)
	case DeadlineMarketClose:
		return fmt.Sprintf("%s market close", marketCode)
	case DeadlineInstructionSubmission:
		return fmt.Sprintf("%s instruction submission deadline", marketCode)
	case DeadlineTradeConfirmation:
		return fmt.Sprintf("%s trade confirmation deadline", marketCode)
	case DeadlineSettlementCutOff:
		return fmt.Sprintf("%s settlement cut-off", marketCode)
	}
	return fmt.Sprintf("%s deadline", marketCode)
}

// SkippedDay records a non-settlement day passed over while advancing.
type SkippedDay struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// SettlementDateResult is the settlement date computed for one market.
type SettlementDateResult struct {
	TradeDate      time.Time    `json:"trade_date"`
	SettlementDate time.Time    `json:"settlement_date"`
	MarketCode     string       `json:"market_code"`
	DaysToSettle   int          `json:"days_to_settle"`
	SkippedDays    []SkippedDay `json:"skipped_days,omitempty"`
}

// MarketDayDetail captures one market's calendar standing on the trade
// date and, once known, the common settlement date.
type MarketDayDetail struct {
	MarketCode                    string `json:"market_code"`
	TradingDayOnTradeDate         bool   `json:"trading_day_on_trade_date"`
	SettlementDayOnTradeDate      bool   `json:"settlement_day_on_trade_date"`
	TradingDayOnSettlementDate    bool   `json:"trading_day_on_settlement_date"`
	SettlementDayOnSettlementDate bool   `json:"settlement_day_on_settlement_date"`
}

// CheckDetails is the structured breakdown behind a check verdict.
// ExecutionTimeValid is set only when an execution time was supplied:
// true when the execution instant falls inside an overlap window.
type CheckDetails struct {
	MarketA            MarketDayDetail `json:"market_a"`
	MarketB            MarketDayDetail `json:"market_b"`
	OverlapWindows     []OverlapWindow `json:"overlap_windows,omitempty"`
	OverlapSummary     string          `json:"overlap_summary,omitempty"`
	ExecutionTimeValid *bool           `json:"execution_time_valid,omitempty"`
}

// CheckResult is the full outcome of a cross-market settlement check.
type CheckResult struct {
	Status               FeasibilityStatus     `json:"status"`
	TradeDate            time.Time             `json:"trade_date"`
	MarketA              string                `json:"market_a"`
	MarketB              string                `json:"market_b"`
	SettlementA          *SettlementDateResult `json:"settlement_a,omitempty"`
	SettlementB          *SettlementDateResult `json:"settlement_b,omitempty"`
	CommonSettlementDate *time.Time            `json:"common_settlement_date,omitempty"`
	Deadlines            []Deadline            `json:"deadlines,omitempty"`
	Warnings             []string              `json:"warnings,omitempty"`
	Recommendations      []string              `json:"recommendations,omitempty"`
	Message              string                `json:"message"`
	NextViableDate       *time.Time            `json:"next_viable_date,omitempty"`
	Details              *CheckDetails         `json:"details,omitempty"`
}
