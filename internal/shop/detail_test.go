package shop

import (
	"errors"
	"testing"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/money"
)

func TestResolveDetail(t *testing.T) {
	t.Parallel()
	fetched := catalog.PlantDetail{
		PlantSummary:   catalog.PlantSummary{ID: "p", Name: "Fetched"},
		ScientificName: "Planta",
	}
	summary := catalog.PlantSummary{ID: "p", Name: "Summary", Category: "Fruit", Price: money.FromFloat(10)}
	netErr := &catalog.NetworkError{Op: "plant", StatusCode: 500}

	tests := []struct {
		name        string
		ok          bool
		err         error
		haveSummary bool
		wantSource  DetailSource
		wantName    string
		wantMsg     string
		wantErr     bool
	}{
		{"fetched wins", true, nil, true, DetailFetched, "Fetched", "", false},
		{"empty falls back to summary", false, nil, true, DetailFromSummary, "Summary", "", false},
		{"error falls back to summary", false, netErr, true, DetailFromSummary, "Summary", "", false},
		{"empty without summary", false, nil, false, DetailNone, "", MsgDetailNotAvailable, true},
		{"error without summary", false, netErr, false, DetailNone, "", MsgDetailFailed, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, src, msg, err := ResolveDetail(fetched, tt.ok, tt.err, summary, tt.haveSummary)
			if src != tt.wantSource {
				t.Errorf("source = %d, want %d", src, tt.wantSource)
			}
			if d.Name != tt.wantName {
				t.Errorf("name = %q, want %q", d.Name, tt.wantName)
			}
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrDetailUnavailable) {
				t.Errorf("err %v should wrap ErrDetailUnavailable", err)
			}
		})
	}
}

func TestApplyDetailFallbackToSummary(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 3)
	id := s.Plants[1].ID

	tk := s.OpenDetail(id)
	if s.Detail.Status != StatusLoading || !s.Detail.Open {
		t.Fatal("OpenDetail should mark the overlay open and loading")
	}
	applied, err := s.ApplyDetail(tk, catalog.PlantDetail{}, false, nil)
	if !applied || err != nil {
		t.Fatalf("ApplyDetail = %v, %v", applied, err)
	}
	if s.Detail.Source != DetailFromSummary {
		t.Errorf("source = %d, want summary fallback", s.Detail.Source)
	}
	if s.Detail.Plant.Name != s.Plants[1].Name || s.Detail.Plant.Price != s.Plants[1].Price {
		t.Errorf("fallback detail = %+v, want summary fields", s.Detail.Plant)
	}
}

func TestApplyDetailNoSummary(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 1)
	tk := s.OpenDetail("ghost")
	applied, err := s.ApplyDetail(tk, catalog.PlantDetail{}, false, nil)
	if !applied || !errors.Is(err, ErrDetailUnavailable) {
		t.Fatalf("ApplyDetail = %v, %v", applied, err)
	}
	if s.Detail.Message != MsgDetailNotAvailable {
		t.Errorf("message = %q, want %q", s.Detail.Message, MsgDetailNotAvailable)
	}
}

func TestApplyDetailStale(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 3)

	first := s.OpenDetail(s.Plants[0].ID)
	second := s.OpenDetail(s.Plants[1].ID)
	if applied, _ := s.ApplyDetail(first, catalog.PlantDetail{}, true, nil); applied {
		t.Error("detail for a superseded plant was applied")
	}
	if s.Detail.PlantID != s.Plants[1].ID || s.Detail.Status != StatusLoading {
		t.Error("stale detail changed the overlay")
	}

	s.CloseDetail()
	if applied, _ := s.ApplyDetail(second, catalog.PlantDetail{}, true, nil); applied {
		t.Error("detail applied after the overlay closed")
	}
	if s.Detail.Open {
		t.Error("late detail reopened the overlay")
	}
}
