// Package models defines the core domain types shared across the application.
package models

import (
	"fmt"
	"strings"
)

// InstrumentType identifies a tradable instrument class.
type InstrumentType string

// Supported instrument types.
const (
	InstrumentEquity InstrumentType = "equity"
	InstrumentETF    InstrumentType = "etf"
	InstrumentBond   InstrumentType = "bond"
)

// Recognized reports whether the instrument type is a known class.
func (t InstrumentType) Recognized() bool {
	switch t {
	case InstrumentEquity, InstrumentETF, InstrumentBond:
		return true
	}
	return false
}

// SessionName identifies a segment of the trading day.
type SessionName string

// Trading day sessions.
const (
	SessionPreMarket  SessionName = "pre_market"
	SessionMorning    SessionName = "morning"
	SessionLunch      SessionName = "lunch"
	SessionAfternoon  SessionName = "afternoon"
	SessionPostMarket SessionName = "post_market"
	SessionRegular    SessionName = "regular"
	SessionClosed     SessionName = "closed"
)

// TradingHours holds a market's session boundaries as local "HH:MM" strings.
// LunchStart/LunchEnd are empty for markets that trade straight through.
type TradingHours struct {
	Open       string `mapstructure:"open" json:"open"`
	Close      string `mapstructure:"close" json:"close"`
	LunchStart string `mapstructure:"lunch_start" json:"lunch_start,omitempty"`
	LunchEnd   string `mapstructure:"lunch_end" json:"lunch_end,omitempty"`
}

// HasLunchBreak reports whether the market suspends trading mid-day.
func (h TradingHours) HasLunchBreak() bool {
	return h.LunchStart != "" && h.LunchEnd != ""
}

// Market describes a single market's static configuration.
type Market struct {
	Code                 string           `mapstructure:"code" json:"code"`
	Name                 string           `mapstructure:"name" json:"name"`
	ExchangeName         string           `mapstructure:"exchange_name" json:"exchange_name"`
	ExchangeCalendarCode string           `mapstructure:"exchange_calendar_code" json:"exchange_calendar_code"`
	Timezone             string           `mapstructure:"timezone" json:"timezone"`
	Hours                TradingHours     `mapstructure:"trading_hours" json:"trading_hours"`
	SettlementCycle      int              `mapstructure:"settlement_cycle" json:"settlement_cycle"`
	Currency             string           `mapstructure:"currency" json:"currency"`
	DepositoryCutOff     string           `mapstructure:"depository_cut_off" json:"depository_cut_off,omitempty"`
	Instruments          []InstrumentType `mapstructure:"instruments" json:"instruments,omitempty"`
}

// SettlementLabel returns the conventional cycle notation, e.g. "T+2".
func (m Market) SettlementLabel() string {
	return fmt.Sprintf("T+%d", m.SettlementCycle)
}

// NormalizedCode returns the upper-cased market code.
func (m Market) NormalizedCode() string {
	return strings.ToUpper(m.Code)
}

// Supports reports whether the market lists the given instrument type.
func (m Market) Supports(t InstrumentType) bool {
	for _, it := range m.Instruments {
		if it == t {
			return true
		}
	}
	return false
}
