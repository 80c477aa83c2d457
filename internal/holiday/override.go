package holiday

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"apac-settle/internal/clock"
	"apac-settle/internal/errors"
	"apac-settle/internal/models"
)

// overrideDTO is the on-disk shape of one override entry.
type overrideDTO struct {
	Date              string `json:"date"`
	MarketCode        string `json:"market_code"`
	Name              string `json:"name"`
	Reason            string `json:"reason"`
	IsClosure         bool   `json:"is_closure"`
	AffectsTrading    bool   `json:"affects_trading"`
	AffectsSettlement bool   `json:"affects_settlement"`
	CreatedAt         string `json:"created_at"`
}

type overrideFile struct {
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Overrides   []overrideDTO `json:"overrides"`
}

// OverrideStore keeps manual calendar overrides in memory, persisted as
// a single JSON blob. Every mutation rewrites the whole file via a
// temp file and rename; a failed write rolls the in-memory state back.
type OverrideStore struct {
	path   string
	logger zerolog.Logger

	mu       sync.RWMutex
	byMarket map[string]map[string]models.Override // market -> ISO date
}

// NewOverrideStore loads the override blob if present. An unreadable
// file is logged and treated as empty rather than failing startup.
func NewOverrideStore(path string, logger zerolog.Logger) *OverrideStore {
	s := &OverrideStore{
		path:     path,
		logger:   logger,
		byMarket: make(map[string]map[string]models.Override),
	}
	s.load()
	return s
}

func (s *OverrideStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Could not read manual overrides")
		}
		return
	}

	var file overrideFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Could not parse manual overrides")
		return
	}

	for _, dto := range file.Overrides {
		day, err := clock.ParseDate(dto.Date)
		if err != nil {
			s.logger.Warn().Str("date", dto.Date).Msg("Skipping override with bad date")
			continue
		}
		market := strings.ToUpper(dto.MarketCode)
		if s.byMarket[market] == nil {
			s.byMarket[market] = make(map[string]models.Override)
		}
		s.byMarket[market][dto.Date] = models.Override{
			Date:              day,
			MarketCode:        market,
			Name:              dto.Name,
			Reason:            dto.Reason,
			IsClosure:         dto.IsClosure,
			AffectsTrading:    dto.AffectsTrading,
			AffectsSettlement: dto.AffectsSettlement,
			CreatedAt:         dto.CreatedAt,
		}
	}
}

// save serializes the full override set and atomically replaces the
// blob. Callers must hold the write lock.
func (s *OverrideStore) save() error {
	file := overrideFile{
		Version:     "1.0.0",
		Description: "Manual holiday overrides for special closures",
	}
	for _, byDate := range s.byMarket {
		for iso, o := range byDate {
			file.Overrides = append(file.Overrides, overrideDTO{
				Date:              iso,
				MarketCode:        o.MarketCode,
				Name:              o.Name,
				Reason:            o.Reason,
				IsClosure:         o.IsClosure,
				AffectsTrading:    o.AffectsTrading,
				AffectsSettlement: o.AffectsSettlement,
				CreatedAt:         o.CreatedAt,
			})
		}
	}
	sort.Slice(file.Overrides, func(i, j int) bool {
		if file.Overrides[i].Date != file.Overrides[j].Date {
			return file.Overrides[i].Date < file.Overrides[j].Date
		}
		return file.Overrides[i].MarketCode < file.Overrides[j].MarketCode
	})

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".overrides-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

func (s *OverrideStore) snapshot() map[string]map[string]models.Override {
	snap := make(map[string]map[string]models.Override, len(s.byMarket))
	for market, byDate := range s.byMarket {
		inner := make(map[string]models.Override, len(byDate))
		for iso, o := range byDate {
			inner[iso] = o
		}
		snap[market] = inner
	}
	return snap
}

// Add inserts or replaces an override and persists the store.
func (s *OverrideStore) Add(o models.Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	market := strings.ToUpper(o.MarketCode)
	o.MarketCode = market
	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().UTC().Format("2006-01-02")
	}
	iso := o.Date.Format("2006-01-02")

	snap := s.snapshot()
	if s.byMarket[market] == nil {
		s.byMarket[market] = make(map[string]models.Override)
	}
	s.byMarket[market][iso] = o

	if err := s.save(); err != nil {
		s.byMarket = snap
		return errors.NewOverrideError(market, iso, "add", err)
	}
	return nil
}

// Remove deletes an override and persists the store.
func (s *OverrideStore) Remove(marketCode string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	market := strings.ToUpper(marketCode)
	iso := day.Format("2006-01-02")

	byDate, ok := s.byMarket[market]
	if !ok {
		return errors.NewOverrideError(market, iso, "remove", errors.ErrOverrideNotFound)
	}
	if _, ok := byDate[iso]; !ok {
		return errors.NewOverrideError(market, iso, "remove", errors.ErrOverrideNotFound)
	}

	snap := s.snapshot()
	delete(byDate, iso)

	if err := s.save(); err != nil {
		s.byMarket = snap
		return errors.NewOverrideError(market, iso, "remove", err)
	}
	return nil
}

// Get returns the override for a market and date, if any.
func (s *OverrideStore) Get(marketCode string, day time.Time) (models.Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate, ok := s.byMarket[strings.ToUpper(marketCode)]
	if !ok {
		return models.Override{}, false
	}
	o, ok := byDate[day.Format("2006-01-02")]
	return o, ok
}

// List returns a market's overrides sorted by date, optionally bounded
// by [start, end] (nil means unbounded).
func (s *OverrideStore) List(marketCode string, start, end *time.Time) []models.Override {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Override
	for _, o := range s.byMarket[strings.ToUpper(marketCode)] {
		if start != nil && o.Date.Before(*start) {
			continue
		}
		if end != nil && o.Date.After(*end) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
