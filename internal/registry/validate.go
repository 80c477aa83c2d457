package registry

import (
	"fmt"
	"time"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
)

// Severity levels for validation issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// knownCurrencies are the currencies expected in the supported region.
// Others are flagged as warnings, not errors.
var knownCurrencies = map[string]bool{
	"JPY": true, "HKD": true, "SGD": true, "INR": true,
	"AUD": true, "KRW": true, "TWD": true, "CNY": true,
	"USD": true, "EUR": true, "GBP": true,
}

// ValidationIssue is one problem found in a market definition.
type ValidationIssue struct {
	MarketCode string `json:"market_code"`
	Field      string `json:"field"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
}

// ValidationResult aggregates issues across the market set.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(code, field, msg string) {
	r.Errors = append(r.Errors, ValidationIssue{code, field, msg, SeverityError})
	r.IsValid = false
}

func (r *ValidationResult) addWarning(code, field, msg string) {
	r.Warnings = append(r.Warnings, ValidationIssue{code, field, msg, SeverityWarning})
}

// Validate checks a raw market list (before registry construction, so
// duplicates are still visible) and returns all issues found.
func Validate(markets []models.Market) ValidationResult {
	result := ValidationResult{IsValid: true}
	seen := make(map[string]bool)

	for _, m := range markets {
		code := m.NormalizedCode()
		if code == "" {
			result.addError("", "code", "market code is required")
			continue
		}
		if seen[code] {
			result.addError(code, "code", fmt.Sprintf("duplicate market code %s", code))
			continue
		}
		seen[code] = true

		validateMarket(&result, m)
	}

	return result
}

func validateMarket(result *ValidationResult, m models.Market) {
	code := m.NormalizedCode()

	required := []struct {
		field string
		value string
	}{
		{"name", m.Name},
		{"exchange_name", m.ExchangeName},
		{"exchange_calendar_code", m.ExchangeCalendarCode},
		{"timezone", m.Timezone},
		{"currency", m.Currency},
	}
	for _, req := range required {
		if req.value == "" {
			result.addError(code, req.field, fmt.Sprintf("%s is required", req.field))
		}
	}

	if m.Timezone != "" {
		if _, err := time.LoadLocation(m.Timezone); err != nil {
			result.addError(code, "timezone", fmt.Sprintf("unknown timezone %q", m.Timezone))
		}
	}

	if m.SettlementCycle < 0 || m.SettlementCycle > 5 {
		result.addError(code, "settlement_cycle",
			fmt.Sprintf("settlement cycle %d outside 0-5", m.SettlementCycle))
	}

	if m.Currency != "" && !knownCurrencies[m.Currency] {
		result.addWarning(code, "currency", fmt.Sprintf("uncommon currency %q", m.Currency))
	}

	validateHours(result, code, m.Hours)

	if m.DepositoryCutOff == "" {
		result.addWarning(code, "depository_cut_off", "no depository cut-off configured; cut-off checks will be skipped")
	} else if _, _, err := clock.ParseHHMM(m.DepositoryCutOff); err != nil {
		result.addError(code, "depository_cut_off", fmt.Sprintf("invalid time %q", m.DepositoryCutOff))
	}
}

func validateHours(result *ValidationResult, code string, h models.TradingHours) {
	times := []struct {
		field string
		value string
	}{
		{"trading_hours.open", h.Open},
		{"trading_hours.close", h.Close},
		{"trading_hours.lunch_start", h.LunchStart},
		{"trading_hours.lunch_end", h.LunchEnd},
	}

	minutes := make(map[string]int)
	for _, t := range times {
		if t.value == "" {
			if t.field == "trading_hours.open" || t.field == "trading_hours.close" {
				result.addError(code, t.field, fmt.Sprintf("%s is required", t.field))
			}
			continue
		}
		hour, minute, err := clock.ParseHHMM(t.value)
		if err != nil {
			result.addError(code, t.field, fmt.Sprintf("invalid time %q", t.value))
			continue
		}
		minutes[t.field] = hour*60 + minute
	}

	open, hasOpen := minutes["trading_hours.open"]
	close, hasClose := minutes["trading_hours.close"]
	if hasOpen && hasClose && open >= close {
		result.addError(code, "trading_hours", "open must be before close")
	}

	ls, hasLS := minutes["trading_hours.lunch_start"]
	le, hasLE := minutes["trading_hours.lunch_end"]
	if hasLS != hasLE {
		result.addError(code, "trading_hours", "lunch_start and lunch_end must both be set")
	}
	if hasLS && hasLE {
		if ls >= le {
			result.addError(code, "trading_hours", "lunch_start must be before lunch_end")
		}
		if hasOpen && hasClose && (ls <= open || le >= close) {
			result.addError(code, "trading_hours", "lunch break must fall inside the trading session")
		}
	}
}
