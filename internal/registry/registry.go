// Package registry holds the immutable market configuration set.
package registry

import (
	"sort"
	"strings"

	"apac-settle/internal/errors"
	"apac-settle/internal/models"
)

// Registry is an immutable lookup of market configurations.
type Registry struct {
	markets map[string]models.Market
	codes   []string
}

// New builds a registry from market definitions. Codes are normalized
// to upper case; later duplicates are dropped (Validate reports them).
func New(markets []models.Market) *Registry {
	r := &Registry{markets: make(map[string]models.Market, len(markets))}
	for _, m := range markets {
		code := m.NormalizedCode()
		if _, exists := r.markets[code]; exists {
			continue
		}
		m.Code = code
		r.markets[code] = m
		r.codes = append(r.codes, code)
	}
	sort.Strings(r.codes)
	return r
}

// Get returns the market for a code (case-insensitive).
func (r *Registry) Get(code string) (models.Market, error) {
	m, ok := r.markets[strings.ToUpper(code)]
	if !ok {
		return models.Market{}, errors.Wrapf(errors.ErrMarketNotFound,
			"%s (available: %s)", code, strings.Join(r.codes, ", "))
	}
	return m, nil
}

// Has reports whether a market code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.markets[strings.ToUpper(code)]
	return ok
}

// All returns all markets sorted by code.
func (r *Registry) All() []models.Market {
	out := make([]models.Market, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, r.markets[code])
	}
	return out
}

// Codes returns the sorted market codes.
func (r *Registry) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// BuiltIn returns the embedded default market set covering the eight
// supported Asia-Pacific markets.
func BuiltIn() []models.Market {
	allInstruments := []models.InstrumentType{
		models.InstrumentEquity, models.InstrumentETF, models.InstrumentBond,
	}
	equityETF := []models.InstrumentType{
		models.InstrumentEquity, models.InstrumentETF,
	}

	return []models.Market{
		{
			Code:                 "JP",
			Name:                 "Japan",
			ExchangeName:         "Tokyo Stock Exchange",
			ExchangeCalendarCode: "XTKS",
			Timezone:             "Asia/Tokyo",
			Hours:                models.TradingHours{Open: "09:00", Close: "15:00", LunchStart: "11:30", LunchEnd: "12:30"},
			SettlementCycle:      1,
			Currency:             "JPY",
			DepositoryCutOff:     "14:00",
			Instruments:          allInstruments,
		},
		{
			Code:                 "HK",
			Name:                 "Hong Kong",
			ExchangeName:         "Hong Kong Stock Exchange",
			ExchangeCalendarCode: "XHKG",
			Timezone:             "Asia/Hong_Kong",
			Hours:                models.TradingHours{Open: "09:30", Close: "16:00", LunchStart: "12:00", LunchEnd: "13:00"},
			SettlementCycle:      1,
			Currency:             "HKD",
			DepositoryCutOff:     "16:00",
			Instruments:          allInstruments,
		},
		{
			Code:                 "SG",
			Name:                 "Singapore",
			ExchangeName:         "Singapore Exchange",
			ExchangeCalendarCode: "XSES",
			Timezone:             "Asia/Singapore",
			Hours:                models.TradingHours{Open: "09:00", Close: "17:00"},
			SettlementCycle:      2,
			Currency:             "SGD",
			DepositoryCutOff:     "17:00",
			Instruments:          allInstruments,
		},
		{
			Code:                 "IN",
			Name:                 "India",
			ExchangeName:         "National Stock Exchange of India",
			ExchangeCalendarCode: "XNSE",
			Timezone:             "Asia/Kolkata",
			Hours:                models.TradingHours{Open: "09:15", Close: "15:30"},
			SettlementCycle:      1,
			Currency:             "INR",
			DepositoryCutOff:     "15:00",
			Instruments:          equityETF,
		},
		{
			Code:                 "AU",
			Name:                 "Australia",
			ExchangeName:         "Australian Securities Exchange",
			ExchangeCalendarCode: "XASX",
			Timezone:             "Australia/Sydney",
			Hours:                models.TradingHours{Open: "10:00", Close: "16:00"},
			SettlementCycle:      2,
			Currency:             "AUD",
			DepositoryCutOff:     "16:00",
			Instruments:          allInstruments,
		},
		{
			Code:                 "KR",
			Name:                 "South Korea",
			ExchangeName:         "Korea Exchange",
			ExchangeCalendarCode: "XKRX",
			Timezone:             "Asia/Seoul",
			Hours:                models.TradingHours{Open: "09:00", Close: "15:30"},
			SettlementCycle:      2,
			Currency:             "KRW",
			DepositoryCutOff:     "15:00",
			Instruments:          equityETF,
		},
		{
			Code:                 "TW",
			Name:                 "Taiwan",
			ExchangeName:         "Taiwan Stock Exchange",
			ExchangeCalendarCode: "XTAI",
			Timezone:             "Asia/Taipei",
			Hours:                models.TradingHours{Open: "09:00", Close: "13:30"},
			SettlementCycle:      2,
			Currency:             "TWD",
			DepositoryCutOff:     "13:30",
			Instruments:          equityETF,
		},
		{
			Code:                 "CN",
			Name:                 "China",
			ExchangeName:         "Shanghai Stock Exchange",
			ExchangeCalendarCode: "XSHG",
			Timezone:             "Asia/Shanghai",
			Hours:                models.TradingHours{Open: "09:30", Close: "15:00", LunchStart: "11:30", LunchEnd: "13:00"},
			SettlementCycle:      1,
			Currency:             "CNY",
			DepositoryCutOff:     "15:00",
			Instruments:          equityETF,
		},
	}
}
