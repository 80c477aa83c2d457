// Package special flags regional settlement hazards: typhoon season,
// Lunar New Year closures, and half-day trading sessions.
package special

import (
	"fmt"
	"strings"
	"time"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
)

// Lunar New Year window bounds, relative to the new year date.
const (
	lnyDaysBefore = 7
	lnyDaysAfter  = 14
)

type lunarNewYear struct {
	date     string
	animal   string
	closures map[string][]string // market code -> closure dates
}

var lunarNewYears = map[int]lunarNewYear{
	2024: {
		date:   "2024-02-10",
		animal: "Dragon",
		closures: map[string][]string{
			"CN": {"2024-02-09", "2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15", "2024-02-16"},
			"HK": {"2024-02-12", "2024-02-13"},
			"TW": {"2024-02-08", "2024-02-09", "2024-02-12", "2024-02-13", "2024-02-14"},
			"SG": {"2024-02-12"},
			"KR": {"2024-02-09", "2024-02-12"},
		},
	},
	2025: {
		date:   "2025-01-29",
		animal: "Snake",
		closures: map[string][]string{
			"CN": {"2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31", "2025-02-03", "2025-02-04"},
			"HK": {"2025-01-29", "2025-01-30", "2025-01-31"},
			"TW": {"2025-01-27", "2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31"},
			"SG": {"2025-01-29", "2025-01-30"},
			"KR": {"2025-01-28", "2025-01-29", "2025-01-30"},
		},
	},
	2026: {
		date:   "2026-02-17",
		animal: "Horse",
		closures: map[string][]string{
			"CN": {"2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20", "2026-02-21", "2026-02-22", "2026-02-23", "2026-02-24"},
			"HK": {"2026-02-17", "2026-02-18", "2026-02-19"},
			"TW": {"2026-02-14", "2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20"},
			"SG": {"2026-02-17", "2026-02-18"},
			"KR": {"2026-02-16", "2026-02-17", "2026-02-18"},
		},
	},
	2027: {
		date:   "2027-02-06",
		animal: "Goat",
		closures: map[string][]string{
			"CN": {"2027-02-08", "2027-02-09", "2027-02-10", "2027-02-11", "2027-02-12"},
			"HK": {"2027-02-08", "2027-02-09"},
			"TW": {"2027-02-08", "2027-02-09", "2027-02-10", "2027-02-11", "2027-02-12"},
			"SG": {"2027-02-08"},
			"KR": {"2027-02-08", "2027-02-09"},
		},
	},
}

// typhoonAuthorities maps typhoon-prone markets to the authority whose
// warnings govern exchange closures. Season runs June through October.
var typhoonAuthorities = map[string]string{
	"HK": "Hong Kong Observatory",
	"TW": "Central Weather Bureau",
}

const (
	typhoonSeasonStart = time.June
	typhoonSeasonEnd   = time.October
)

type halfDayPattern struct {
	names      []string
	earlyClose string
}

// halfDayPatterns lists, per market, the named days that trade a
// shortened session and the early close time.
var halfDayPatterns = map[string]halfDayPattern{
	"HK": {names: []string{"Christmas Eve", "New Year's Eve", "Lunar New Year Eve"}, earlyClose: "12:00"},
	"SG": {names: []string{"Christmas Eve", "New Year's Eve"}, earlyClose: "12:00"},
	"AU": {names: []string{"Christmas Eve", "New Year's Eve"}, earlyClose: "14:10"},
}

// Advisory collects warnings and recommendations for a check.
type Advisory struct {
	Warnings        []string `json:"warnings,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	IsHalfDay       bool     `json:"is_half_day"`
	EarlyClose      string   `json:"early_close,omitempty"`
}

// HalfDay describes one shortened trading session.
type HalfDay struct {
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`
	EarlyClose string    `json:"early_close"`
}

// Advisor evaluates the embedded special-case tables.
type Advisor struct{}

// NewAdvisor creates an advisor.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// LunarNewYearPeriod reports whether the date falls inside the Lunar
// New Year window (seven days before through fourteen after).
func (a *Advisor) LunarNewYearPeriod(day time.Time) (time.Time, string, bool) {
	lny, ok := lunarNewYears[day.Year()]
	if !ok {
		return time.Time{}, "", false
	}
	lnyDate := clock.MustDate(lny.date)
	start := lnyDate.AddDate(0, 0, -lnyDaysBefore)
	end := lnyDate.AddDate(0, 0, lnyDaysAfter)
	d := clock.Date(day)
	if d.Before(start) || d.After(end) {
		return time.Time{}, "", false
	}
	return lnyDate, lny.animal, true
}

// ClosureDays returns the market's expected Lunar New Year closure
// dates for the date's year.
func (a *Advisor) ClosureDays(marketCode string, year int) []time.Time {
	lny, ok := lunarNewYears[year]
	if !ok {
		return nil
	}
	isoDays := lny.closures[strings.ToUpper(marketCode)]
	days := make([]time.Time, 0, len(isoDays))
	for _, iso := range isoDays {
		days = append(days, clock.MustDate(iso))
	}
	return days
}

// HalfDays generates the market's half-day sessions for a year,
// skipping any that land on a weekend.
func (a *Advisor) HalfDays(marketCode string, year int) []HalfDay {
	pattern, ok := halfDayPatterns[strings.ToUpper(marketCode)]
	if !ok {
		return nil
	}

	var out []HalfDay
	for _, name := range pattern.names {
		var day time.Time
		// Check "Lunar New Year" before "New Year's Eve": the names
		// share a substring and the longer one must win.
		switch {
		case strings.Contains(name, "Lunar New Year"):
			lny, ok := lunarNewYears[year]
			if !ok {
				continue
			}
			day = clock.MustDate(lny.date).AddDate(0, 0, -1)
		case strings.Contains(name, "Christmas Eve"):
			day = time.Date(year, time.December, 24, 0, 0, 0, 0, time.UTC)
		case strings.Contains(name, "New Year's Eve"):
			day = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		default:
			continue
		}
		if clock.IsWeekend(day) {
			continue
		}
		out = append(out, HalfDay{Date: day, Name: name, EarlyClose: pattern.earlyClose})
	}
	return out
}

// HalfDayOn returns the half-day session for a market and date, if any.
func (a *Advisor) HalfDayOn(marketCode string, day time.Time) (HalfDay, bool) {
	d := clock.Date(day)
	for _, hd := range a.HalfDays(marketCode, d.Year()) {
		if hd.Date.Equal(d) {
			return hd, true
		}
	}
	return HalfDay{}, false
}

// Advise evaluates all special cases for one market and date.
func (a *Advisor) Advise(m models.Market, day time.Time) Advisory {
	var adv Advisory
	code := m.NormalizedCode()

	if authority, ok := typhoonAuthorities[code]; ok {
		month := day.Month()
		if month >= typhoonSeasonStart && month <= typhoonSeasonEnd {
			adv.Warnings = append(adv.Warnings,
				fmt.Sprintf("Typhoon season - monitor %s for warnings", authority))
			adv.Recommendations = append(adv.Recommendations,
				"Consider settlement buffer for potential unplanned closures")
		}
	}

	if _, _, ok := a.LunarNewYearPeriod(day); ok {
		if closures := a.ClosureDays(code, day.Year()); len(closures) > 0 {
			adv.Warnings = append(adv.Warnings,
				fmt.Sprintf("Lunar New Year period - %d closure days expected", len(closures)))
			adv.Recommendations = append(adv.Recommendations,
				"Plan trades to settle before or well after LNY period")
		}
	}

	if hd, ok := a.HalfDayOn(code, day); ok {
		adv.IsHalfDay = true
		adv.EarlyClose = hd.EarlyClose
		adv.Warnings = append(adv.Warnings,
			"Half-day trading session - reduced trading hours")
		adv.Recommendations = append(adv.Recommendations,
			"Complete trades before market close")
	}

	return adv
}

// AdviseCross evaluates both markets, prefixing each finding with its
// market code, and adds the Stock Connect note for HK/CN pairs inside
// a Lunar New Year window.
func (a *Advisor) AdviseCross(ma, mb models.Market, day time.Time) Advisory {
	var adv Advisory

	for _, m := range []models.Market{ma, mb} {
		side := a.Advise(m, day)
		for _, w := range side.Warnings {
			adv.Warnings = append(adv.Warnings, fmt.Sprintf("[%s] %s", m.Code, w))
		}
		for _, r := range side.Recommendations {
			adv.Recommendations = append(adv.Recommendations, fmt.Sprintf("[%s] %s", m.Code, r))
		}
		if side.IsHalfDay {
			adv.IsHalfDay = true
			if adv.EarlyClose == "" {
				adv.EarlyClose = side.EarlyClose
			}
		}
	}

	if _, _, ok := a.LunarNewYearPeriod(day); ok {
		codes := map[string]bool{ma.NormalizedCode(): true, mb.NormalizedCode(): true}
		if codes["HK"] || codes["CN"] {
			adv.Warnings = append(adv.Warnings,
				"[HK-CN] Stock Connect settlements follow both HK and mainland schedules during LNY")
		}
	}

	return adv
}
