package holiday

import (
	"sort"
	"time"

	"apac-settle/internal/clock"
	"apac-settle/internal/models"
)

// PublicSource answers public/bank holiday queries from the embedded
// country tables. Markets without data simply return no holidays.
type PublicSource struct{}

// NewPublicSource creates the public holiday source.
func NewPublicSource() *PublicSource {
	return &PublicSource{}
}

// Name returns the public holiday name for a market and date, if any.
func (s *PublicSource) Name(marketCode string, day time.Time) (string, bool) {
	table, ok := publicHolidayNames[marketCode]
	if !ok {
		return "", false
	}
	name, ok := table[day.Format("2006-01-02")]
	return name, ok
}

// IsPublicHoliday reports whether the date is a listed public holiday.
func (s *PublicSource) IsPublicHoliday(marketCode string, day time.Time) bool {
	_, ok := s.Name(marketCode, day)
	return ok
}

// Holidays returns the public holidays for a market within [start, end],
// sorted by date.
func (s *PublicSource) Holidays(marketCode string, start, end time.Time) []models.HolidayInfo {
	table, ok := publicHolidayNames[marketCode]
	if !ok {
		return nil
	}

	var out []models.HolidayInfo
	for iso, name := range table {
		day := clock.MustDate(iso)
		if day.Before(start) || day.After(end) {
			continue
		}
		out = append(out, models.HolidayInfo{
			Date:              day,
			MarketCode:        marketCode,
			Name:              name,
			Source:            models.SourcePublicHoliday,
			IsFullDay:         true,
			AffectsTrading:    true,
			AffectsSettlement: true,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
