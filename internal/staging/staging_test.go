package staging

import (
	"context"
	"errors"
	"testing"

	"github.com/gestorrestaurants/restaurant-curator/internal/models"
	"github.com/gestorrestaurants/restaurant-curator/internal/places"
)

type mockVideoStore struct {
	saved   map[string][]models.ReviewEntry
	saveErr error
	calls   int
}

func newMockVideoStore() *mockVideoStore {
	return &mockVideoStore{saved: make(map[string][]models.ReviewEntry)}
}

func (m *mockVideoStore) SetVideoReviews(_ context.Context, videoID string, entries []models.ReviewEntry) error {
	m.calls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[videoID] = entries
	return nil
}

func TestSeedAssignsIDsToLegacyEntries(t *testing.T) {
	s := New(newMockVideoStore())
	s.Seed("vid1", []models.ReviewEntry{
		{Name: "Casa Paco", Start: 95},
		{ID: "existing-id", Name: "Bar Manolo"},
	})

	entries := s.Entries("vid1")
	if len(entries) != 2 {
		t.Fatalf("Expected 2 staged entries, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("Expected a generated id for the legacy entry")
	}
	if entries[1].ID != "existing-id" {
		t.Errorf("Expected existing id preserved, got %q", entries[1].ID)
	}
	if entries[0].Start != "95" {
		t.Errorf("Expected Start denormalized to \"95\", got %q", entries[0].Start)
	}
}

func TestSeedReplacesPriorEdits(t *testing.T) {
	s := New(newMockVideoStore())
	s.Seed("vid1", nil)
	s.AddBlank("vid1")

	s.Seed("vid1", nil)
	if got := len(s.Entries("vid1")); got != 0 {
		t.Errorf("Expected re-seed to drop prior edits, got %d entries", got)
	}
}

func TestAddBlank(t *testing.T) {
	s := New(newMockVideoStore())
	id1 := s.AddBlank("vid1")
	id2 := s.AddBlank("vid1")

	if id1 == "" || id2 == "" || id1 == id2 {
		t.Fatalf("Expected two distinct non-empty ids, got %q and %q", id1, id2)
	}
	entries := s.Entries("vid1")
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Start != "0" || entries[0].Rating != "0" {
		t.Errorf("Expected zeroed numeric defaults, got %+v", entries[0])
	}
}

func TestUpdateByID(t *testing.T) {
	s := New(newMockVideoStore())
	id := s.AddBlank("vid1")

	err := s.Update("vid1", id, func(r *models.StagedReview) {
		r.Name = "El Rincón"
		r.ID = "tampered"
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	entries := s.Entries("vid1")
	if entries[0].Name != "El Rincón" {
		t.Errorf("Expected name updated, got %q", entries[0].Name)
	}
	if entries[0].ID != id {
		t.Errorf("Expected id immutable, got %q", entries[0].ID)
	}
}

func TestUpdateErrors(t *testing.T) {
	s := New(newMockVideoStore())
	noop := func(*models.StagedReview) {}

	if err := s.Update("missing", "x", noop); !errors.Is(err, ErrVideoNotStaged) {
		t.Errorf("Expected ErrVideoNotStaged, got %v", err)
	}

	s.AddBlank("vid1")
	if err := s.Update("vid1", "missing-id", noop); !errors.Is(err, ErrStagedReviewNotFound) {
		t.Errorf("Expected ErrStagedReviewNotFound, got %v", err)
	}
}

func TestRemoveKeepsOtherIDsStable(t *testing.T) {
	s := New(newMockVideoStore())
	id1 := s.AddBlank("vid1")
	id2 := s.AddBlank("vid1")

	if err := s.Remove("vid1", id1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	entries := s.Entries("vid1")
	if len(entries) != 1 || entries[0].ID != id2 {
		t.Fatalf("Expected only %q to remain, got %+v", id2, entries)
	}

	if err := s.Remove("vid1", id1); !errors.Is(err, ErrStagedReviewNotFound) {
		t.Errorf("Expected ErrStagedReviewNotFound on second remove, got %v", err)
	}
}

func TestApplyPlaceDetailsMergesGoogleFieldsOnly(t *testing.T) {
	s := New(newMockVideoStore())
	id := s.AddBlank("vid1")
	_ = s.Update("vid1", id, func(r *models.StagedReview) {
		r.Start = "120"
		r.TripAdvisorURL = "https://tripadvisor.example/casa-paco"
	})

	err := s.ApplyPlaceDetails("vid1", id, places.Details{
		ID:              "place-1",
		Name:            "Casa Paco",
		Address:         "Calle Mayor 1",
		Rating:          4.5,
		UserRatingCount: 321,
		PriceLevel:      "PRICE_LEVEL_MODERATE",
		Location:        &places.Location{Latitude: 41.38, Longitude: 2.17},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := s.Entries("vid1")[0]
	if got.PlaceID != "place-1" || got.Name != "Casa Paco" {
		t.Errorf("Expected place fields applied, got %+v", got)
	}
	if got.Rating != "4.5" || got.UserRatingsTotal != "321" {
		t.Errorf("Expected numeric fields formatted, got rating %q total %q", got.Rating, got.UserRatingsTotal)
	}
	if got.Latitude != "41.38" || got.Longitude != "2.17" {
		t.Errorf("Expected coordinates applied, got %q/%q", got.Latitude, got.Longitude)
	}
	if got.Start != "120" {
		t.Errorf("Expected operator-entered start kept, got %q", got.Start)
	}
	if got.TripAdvisorURL != "https://tripadvisor.example/casa-paco" {
		t.Errorf("Expected operator-entered TripAdvisor URL kept, got %q", got.TripAdvisorURL)
	}
}

func TestPersistNormalizesEntries(t *testing.T) {
	store := newMockVideoStore()
	s := New(store)
	id := s.AddBlank("vid1")
	_ = s.Update("vid1", id, func(r *models.StagedReview) {
		r.Name = "Casa Paco"
		r.Start = "95.9"
		r.PriceLevel = "PRICE_LEVEL_MODERATE"
		r.Rating = "4.5"
		r.UserRatingsTotal = "not a number"
		r.Latitude = "41.38"
		r.Longitude = "2.17"
	})

	if err := s.Persist(context.Background(), "vid1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	saved := store.saved["vid1"]
	if len(saved) != 1 {
		t.Fatalf("Expected 1 persisted entry, got %d", len(saved))
	}
	e := saved[0]
	if e.ID != id {
		t.Errorf("Expected stable id persisted, got %q", e.ID)
	}
	if e.Start != 95 {
		t.Errorf("Expected Start truncated to 95, got %d", e.Start)
	}
	if e.PriceLevel != 2 {
		t.Errorf("Expected price level 2, got %d", e.PriceLevel)
	}
	if e.Rating != 4.5 {
		t.Errorf("Expected rating 4.5, got %v", e.Rating)
	}
	if e.UserRatingsTotal != 0 {
		t.Errorf("Expected unparseable total to default to 0, got %d", e.UserRatingsTotal)
	}
	if e.Geopoint == nil || e.Geopoint.Latitude != 41.38 || e.Geopoint.Longitude != 2.17 {
		t.Errorf("Expected geopoint set, got %+v", e.Geopoint)
	}
}

func TestPersistUnstagedVideo(t *testing.T) {
	store := newMockVideoStore()
	s := New(store)

	if err := s.Persist(context.Background(), "missing"); !errors.Is(err, ErrVideoNotStaged) {
		t.Fatalf("Expected ErrVideoNotStaged, got %v", err)
	}
	if store.calls != 0 {
		t.Errorf("Expected no store call, got %d", store.calls)
	}
}

func TestDiscard(t *testing.T) {
	s := New(newMockVideoStore())
	s.AddBlank("vid1")
	s.Discard("vid1")

	if got := len(s.Entries("vid1")); got != 0 {
		t.Errorf("Expected no entries after discard, got %d", got)
	}
}
