package holiday

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"apac-settle/internal/clock"
	"apac-settle/internal/errors"
	"apac-settle/internal/models"
)

func typhoonOverride(iso string) models.Override {
	return models.Override{
		Date:              clock.MustDate(iso),
		MarketCode:        "HK",
		Name:              "Typhoon Signal 8",
		Reason:            "T8 hoisted before market open",
		IsClosure:         true,
		AffectsTrading:    true,
		AffectsSettlement: true,
	}
}

func TestOverrideAddGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual_overrides.json")
	s := NewOverrideStore(path, zerolog.Nop())

	if err := s.Add(typhoonOverride("2026-07-20")); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	o, ok := s.Get("HK", clock.MustDate("2026-07-20"))
	if !ok {
		t.Fatal("override not found after Add")
	}
	if o.Name != "Typhoon Signal 8" || !o.IsClosure {
		t.Errorf("unexpected override: %+v", o)
	}
	if o.CreatedAt == "" {
		t.Error("CreatedAt not stamped")
	}

	// Lookups are case-insensitive on market code.
	if _, ok := s.Get("hk", clock.MustDate("2026-07-20")); !ok {
		t.Error("lower-case lookup failed")
	}

	if err := s.Remove("HK", clock.MustDate("2026-07-20")); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, ok := s.Get("HK", clock.MustDate("2026-07-20")); ok {
		t.Error("override still present after Remove")
	}
}

func TestOverrideRemoveMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual_overrides.json")
	s := NewOverrideStore(path, zerolog.Nop())

	err := s.Remove("HK", clock.MustDate("2026-07-20"))
	if !errors.Is(err, errors.ErrOverrideNotFound) {
		t.Errorf("expected ErrOverrideNotFound, got %v", err)
	}
}

func TestOverridePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual_overrides.json")

	s := NewOverrideStore(path, zerolog.Nop())
	if err := s.Add(typhoonOverride("2026-07-20")); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	// Blob must carry version and snake_case fields.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading blob: %v", err)
	}
	var blob struct {
		Version   string `json:"version"`
		Overrides []struct {
			Date       string `json:"date"`
			MarketCode string `json:"market_code"`
			IsClosure  bool   `json:"is_closure"`
		} `json:"overrides"`
	}
	if err := json.Unmarshal(data, &blob); err != nil {
		t.Fatalf("blob is not valid JSON: %v", err)
	}
	if blob.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", blob.Version)
	}
	if len(blob.Overrides) != 1 || blob.Overrides[0].Date != "2026-07-20" {
		t.Errorf("unexpected blob contents: %+v", blob.Overrides)
	}

	reloaded := NewOverrideStore(path, zerolog.Nop())
	if _, ok := reloaded.Get("HK", clock.MustDate("2026-07-20")); !ok {
		t.Error("override lost across reload")
	}
}

func TestOverrideRollbackOnWriteFailure(t *testing.T) {
	// Point the store at a path whose parent is a file, so MkdirAll
	// fails and the write cannot succeed.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(blocker, "manual_overrides.json")
	s := NewOverrideStore(path, zerolog.Nop())

	err := s.Add(typhoonOverride("2026-07-20"))
	if err == nil {
		t.Fatal("expected Add to fail")
	}
	var oe *errors.OverrideError
	if !errors.As(err, &oe) {
		t.Errorf("expected OverrideError, got %T", err)
	}

	// Failed write must not leave the override visible.
	if _, ok := s.Get("HK", clock.MustDate("2026-07-20")); ok {
		t.Error("in-memory state not rolled back after failed save")
	}
}

func TestOverrideList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual_overrides.json")
	s := NewOverrideStore(path, zerolog.Nop())

	for _, iso := range []string{"2026-07-22", "2026-07-20", "2026-09-01"} {
		if err := s.Add(typhoonOverride(iso)); err != nil {
			t.Fatalf("Add(%s) error: %v", iso, err)
		}
	}

	all := s.List("HK", nil, nil)
	if len(all) != 3 {
		t.Fatalf("List = %d entries, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Date.Before(all[i-1].Date) {
			t.Fatal("List not sorted by date")
		}
	}

	from := clock.MustDate("2026-07-21")
	to := clock.MustDate("2026-08-31")
	bounded := s.List("HK", &from, &to)
	if len(bounded) != 1 || !bounded[0].Date.Equal(clock.MustDate("2026-07-22")) {
		t.Errorf("bounded List = %+v, want only 2026-07-22", bounded)
	}

	if got := s.List("JP", nil, nil); len(got) != 0 {
		t.Errorf("JP has %d overrides, want 0", len(got))
	}
}

func TestOverrideBadFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual_overrides.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewOverrideStore(path, zerolog.Nop())
	if got := s.List("HK", nil, nil); len(got) != 0 {
		t.Errorf("corrupt blob yielded %d overrides, want 0", len(got))
	}

	// The store must still accept writes afterwards.
	if err := s.Add(typhoonOverride("2026-07-20")); err != nil {
		t.Fatalf("Add after corrupt load error: %v", err)
	}
}
