package models

import (
	"fmt"
	"time"
)

// MarketStatus is a point-in-time snapshot of one market.
type MarketStatus struct {
	MarketCode     string      `json:"market_code"`
	LocalTime      time.Time   `json:"local_time"`
	IsOpen         bool        `json:"is_open"`
	CurrentSession SessionName `json:"current_session"`
	IsTradingDay   bool        `json:"is_trading_day"`
	IsHoliday      bool        `json:"is_holiday"`
	HolidayName    string      `json:"holiday_name,omitempty"`
	NextOpen       *time.Time  `json:"next_open,omitempty"`
	NextClose      *time.Time  `json:"next_close,omitempty"`
	TimeToOpen     string      `json:"time_to_open,omitempty"`
	TimeToClose    string      `json:"time_to_close,omitempty"`
	PastCutOff     bool        `json:"past_cut_off"`
	TimeToCutOff   string      `json:"time_to_cut_off,omitempty"`
}

// StatusText returns a one-line human summary of the market state.
func (s MarketStatus) StatusText() string {
	if s.IsOpen {
		return fmt.Sprintf("Open - %s", s.CurrentSession)
	}
	if s.IsHoliday {
		return fmt.Sprintf("Holiday - %s", s.HolidayName)
	}
	if !s.IsTradingDay {
		return "Closed - Weekend"
	}
	return "Closed"
}

// CanTradeToday reports whether orders can still settle today: the
// market must be trading and the depository cut-off not yet passed.
func (s MarketStatus) CanTradeToday() bool {
	return s.IsTradingDay && !s.PastCutOff
}

// PairComparison compares two markets at a point in time.
type PairComparison struct {
	MarketA               string          `json:"market_a"`
	MarketB               string          `json:"market_b"`
	OffsetDifferenceHours float64         `json:"offset_difference_hours"`
	Overlaps              []OverlapWindow `json:"overlaps,omitempty"`
	BothOpenNow           bool            `json:"both_open_now"`
	BothTradingToday      bool            `json:"both_trading_today"`
	OverlapSummary        string          `json:"overlap_summary"`
}
