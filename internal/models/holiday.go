package models

import "time"

// HolidaySource identifies which data source produced a holiday fact.
type HolidaySource string

// Holiday data sources, in precedence order (manual override wins).
const (
	SourceManualOverride   HolidaySource = "manual_override"
	SourceWeekend          HolidaySource = "weekend"
	SourceExchangeCalendar HolidaySource = "exchange_calendar"
	SourcePublicHoliday    HolidaySource = "public_holiday"
)

// HolidayInfo is a merged holiday fact for one market on one date.
type HolidayInfo struct {
	Date              time.Time     `json:"date"`
	MarketCode        string        `json:"market_code"`
	Name              string        `json:"name"`
	Source            HolidaySource `json:"source"`
	IsFullDay         bool          `json:"is_full_day"`
	AffectsTrading    bool          `json:"affects_trading"`
	AffectsSettlement bool          `json:"affects_settlement"`
	Notes             string        `json:"notes,omitempty"`
}

// Override is a manual calendar correction. IsClosure true marks the
// date closed; false forces the date open regardless of other sources.
type Override struct {
	Date              time.Time `json:"date"`
	MarketCode        string    `json:"market_code"`
	Name              string    `json:"name"`
	Reason            string    `json:"reason"`
	IsClosure         bool      `json:"is_closure"`
	AffectsTrading    bool      `json:"affects_trading"`
	AffectsSettlement bool      `json:"affects_settlement"`
	CreatedAt         string    `json:"created_at"`
}
