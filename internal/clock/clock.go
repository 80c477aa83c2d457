// Package clock provides timezone-aware time services for markets.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"apac-settle/internal/errors"
	"apac-settle/internal/models"
	"apac-settle/pkg/utils"
)

// ImminentThreshold marks a deadline as imminent when less time remains.
const ImminentThreshold = 30 * time.Minute

// Service resolves market-local times and UTC offsets. NowFunc is
// injectable for tests and defaults to time.Now.
type Service struct {
	NowFunc func() time.Time

	mu   sync.Mutex
	locs map[string]*time.Location
}

// New creates a clock service.
func New() *Service {
	return &Service{
		NowFunc: time.Now,
		locs:    make(map[string]*time.Location),
	}
}

// Location resolves and caches an IANA timezone.
func (s *Service) Location(tz string) (*time.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc, ok := s.locs[tz]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnknownTimezone, "%s", tz)
	}
	s.locs[tz] = loc
	return loc, nil
}

// Localize combines a calendar date and an "HH:MM" clock string into an
// instant in the market's timezone.
func (s *Service) Localize(m models.Market, day time.Time, hhmm string) (time.Time, error) {
	loc, err := s.Location(m.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// Now returns the current time in the market's timezone.
func (s *Service) Now(m models.Market) (time.Time, error) {
	loc, err := s.Location(m.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return s.NowFunc().In(loc), nil
}

// Convert re-expresses an instant in another market's timezone.
func (s *Service) Convert(t time.Time, to models.Market) (time.Time, error) {
	loc, err := s.Location(to.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// UTCOffsetHours returns the market's UTC offset on the given date.
// The offset is sampled at local noon so DST transitions on the date
// itself do not skew the result.
func (s *Service) UTCOffsetHours(m models.Market, day time.Time) (float64, error) {
	loc, err := s.Location(m.Timezone)
	if err != nil {
		return 0, err
	}
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)
	_, offset := noon.Zone()
	return float64(offset) / 3600, nil
}

// OffsetDifference returns offset(a) - offset(b) in hours on a date.
func (s *Service) OffsetDifference(a, b models.Market, day time.Time) (float64, error) {
	offA, err := s.UTCOffsetHours(a, day)
	if err != nil {
		return 0, err
	}
	offB, err := s.UTCOffsetHours(b, day)
	if err != nil {
		return 0, err
	}
	return offA - offB, nil
}

// TimeUntilInfo describes the distance to a target instant.
type TimeUntilInfo struct {
	Duration   time.Duration `json:"-"`
	Formatted  string        `json:"formatted"`
	IsPast     bool          `json:"is_past"`
	IsImminent bool          `json:"is_imminent"`
}

// TimeUntil computes the distance from now to target.
func TimeUntil(target, now time.Time) TimeUntilInfo {
	d := target.Sub(now)
	return TimeUntilInfo{
		Duration:   d,
		Formatted:  utils.FormatDuration(d),
		IsPast:     d <= 0,
		IsImminent: d > 0 && d < ImminentThreshold,
	}
}

// ParseHHMM parses a 24-hour "HH:MM" clock string.
func ParseHHMM(hhmm string) (hour, minute int, err error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, errors.Wrapf(errors.ErrInvalidTime, "%q is not HH:MM", hhmm)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, errors.Wrapf(errors.ErrInvalidTime, "%q has invalid hour", hhmm)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errors.Wrapf(errors.ErrInvalidTime, "%q has invalid minute", hhmm)
	}
	return hour, minute, nil
}

// ParseDate parses an ISO "2006-01-02" date into a UTC midnight instant.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidDate, "%q is not YYYY-MM-DD", s)
	}
	return t, nil
}

// Date normalizes an instant to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two instants fall on the same calendar date
// in their respective locations.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MustDate is a test and seed-data helper; it panics on a bad date.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("bad date %q: %v", s, err))
	}
	return t
}
