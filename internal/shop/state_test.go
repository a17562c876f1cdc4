package shop

import (
	"errors"
	"fmt"
	"testing"

	"github.com/papapumpkin/greenhouse/internal/cart"
	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/money"
)

var testCategories = []catalog.Category{{ID: "1", Name: "Fruit"}, {ID: "2", Name: "Flower"}}

// plantsFor builds n plants priced at $10 with ids prefixed by the category.
func plantsFor(categoryID string, n int) []catalog.PlantSummary {
	out := make([]catalog.PlantSummary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, catalog.PlantSummary{
			ID:    fmt.Sprintf("%s-%d", categoryID, i),
			Name:  fmt.Sprintf("Plant %s-%d", categoryID, i),
			Price: money.FromFloat(10),
		})
	}
	return out
}

// loadedState returns a state with categories loaded and category "1"
// active with its plants applied.
func loadedState(t *testing.T, n int) *State {
	t.Helper()
	s := NewState()
	next, ok := s.ApplyCategories(s.BeginCategories(), testCategories, nil)
	if !ok || next != "1" {
		t.Fatalf("ApplyCategories = %q, %v; want first category", next, ok)
	}
	tk, err := s.SelectCategory(next)
	if err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	if !s.ApplyPlants(tk, plantsFor("1", n), nil) {
		t.Fatal("ApplyPlants rejected a current ticket")
	}
	return s
}

func TestScenarioFruitAndFlower(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 8)

	if len(s.Plants) != catalog.WorkingSetLimit {
		t.Fatalf("working set = %d, want %d", len(s.Plants), catalog.WorkingSetLimit)
	}
	for _, p := range s.Plants[:3] {
		if _, err := s.AddToCart(p.ID); err != nil {
			t.Fatalf("AddToCart(%s): %v", p.ID, err)
		}
	}
	if got := s.Cart.Total().String(); got != "$30.00" {
		t.Errorf("total = %s, want $30.00", got)
	}

	s.RemoveFromCart(s.Plants[1].ID)
	if got := s.Cart.Total().String(); got != "$20.00" {
		t.Errorf("total after remove = %s, want $20.00", got)
	}

	if _, err := s.AddToCart(s.Plants[1].ID); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if got := s.Cart.Total().String(); got != "$30.00" {
		t.Errorf("total after re-add = %s, want $30.00", got)
	}
}

func TestAddDuplicateSurfacesNotice(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 3)
	id := s.Plants[0].ID
	if _, err := s.AddToCart(id); err != nil {
		t.Fatal(err)
	}
	_, err := s.AddToCart(id)
	if !errors.Is(err, cart.ErrDuplicateItem) {
		t.Fatalf("second add: want ErrDuplicateItem, got %v", err)
	}
	if s.Cart.Len() != 1 {
		t.Errorf("cart len = %d after duplicate, want 1", s.Cart.Len())
	}
}

func TestSwitchCategoryReplacesWorkingSet(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 4)
	oldID := s.Plants[0].ID

	tk, err := s.SelectCategory("2")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Plants) != 0 || s.PlantsStatus != StatusLoading {
		t.Fatalf("switch should clear plants and mark loading, got %d plants, %s", len(s.Plants), s.PlantsStatus)
	}
	if !s.ApplyPlants(tk, plantsFor("2", 2), nil) {
		t.Fatal("ApplyPlants rejected current ticket")
	}

	_, err = s.AddToCart(oldID)
	if !errors.Is(err, ErrPlantNotFound) {
		t.Fatalf("adding id from previous category: want ErrPlantNotFound, got %v", err)
	}
	if !s.Cart.IsEmpty() {
		t.Error("cart should be untouched by a rejected add")
	}
}

func TestStalePlantsResponseIsDiscarded(t *testing.T) {
	t.Parallel()
	s := NewState()
	s.ApplyCategories(s.BeginCategories(), testCategories, nil)

	first, _ := s.SelectCategory("1")
	second, _ := s.SelectCategory("2")

	if s.ApplyPlants(first, plantsFor("1", 3), nil) {
		t.Fatal("stale response for category 1 was accepted")
	}
	if len(s.Plants) != 0 || s.PlantsStatus != StatusLoading {
		t.Error("stale response changed the working set")
	}
	if !s.ApplyPlants(second, plantsFor("2", 2), nil) {
		t.Fatal("current response rejected")
	}
	if s.Plants[0].ID != "2-0" {
		t.Errorf("working set holds %q, want category 2 plants", s.Plants[0].ID)
	}

	// A stale error must not clobber a good listing either.
	if s.ApplyPlants(first, nil, errors.New("late failure")) {
		t.Fatal("stale error accepted")
	}
	if s.PlantsStatus != StatusReady {
		t.Errorf("status = %s, want ready", s.PlantsStatus)
	}
}

func TestApplyPlantsFailure(t *testing.T) {
	t.Parallel()
	s := NewState()
	s.ApplyCategories(s.BeginCategories(), testCategories, nil)
	tk, _ := s.SelectCategory("1")

	boom := &catalog.NetworkError{Op: "plants", StatusCode: 503}
	if !s.ApplyPlants(tk, nil, boom) {
		t.Fatal("failure result rejected")
	}
	if s.PlantsStatus != StatusFailed || !errors.Is(s.PlantsErr, catalog.ErrNetwork) {
		t.Errorf("status %s err %v, want failed network error", s.PlantsStatus, s.PlantsErr)
	}
}

func TestApplyCategories(t *testing.T) {
	t.Parallel()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		s := NewState()
		next, ok := s.ApplyCategories(s.BeginCategories(), nil, nil)
		if !ok || next != "" {
			t.Errorf("got %q, %v; want no selection", next, ok)
		}
		if s.CategoriesStatus != StatusReady {
			t.Errorf("status = %s, want ready", s.CategoriesStatus)
		}
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		s := NewState()
		_, ok := s.ApplyCategories(s.BeginCategories(), nil, catalog.ErrParse)
		if !ok || s.CategoriesStatus != StatusFailed {
			t.Errorf("failure not recorded: ok %v status %s", ok, s.CategoriesStatus)
		}
	})

	t.Run("stale", func(t *testing.T) {
		t.Parallel()
		s := NewState()
		old := s.BeginCategories()
		s.BeginCategories()
		if _, ok := s.ApplyCategories(old, testCategories, nil); ok {
			t.Error("stale category ticket accepted")
		}
	})

	t.Run("reload keeps active category", func(t *testing.T) {
		t.Parallel()
		s := loadedState(t, 2)
		if _, err := s.SelectCategory("2"); err != nil {
			t.Fatal(err)
		}
		next, _ := s.ApplyCategories(s.BeginCategories(), testCategories, nil)
		if next != "2" {
			t.Errorf("next = %q, want active category 2 preserved", next)
		}
	})

	t.Run("reload drops vanished category", func(t *testing.T) {
		t.Parallel()
		s := loadedState(t, 2)
		next, _ := s.ApplyCategories(s.BeginCategories(), []catalog.Category{{ID: "9", Name: "Herbs"}}, nil)
		if next != "9" {
			t.Errorf("next = %q, want first category 9", next)
		}
	})
}

func TestSelectUnknownCategory(t *testing.T) {
	t.Parallel()
	s := loadedState(t, 2)
	if _, err := s.SelectCategory("nope"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("want ErrUnknownCategory, got %v", err)
	}
	if s.ActiveCategory != "1" {
		t.Errorf("active category changed to %q", s.ActiveCategory)
	}
}

func TestReloadPlantsWithoutCategory(t *testing.T) {
	t.Parallel()
	if _, err := NewState().ReloadPlants(); !errors.Is(err, ErrNoActiveCategory) {
		t.Errorf("want ErrNoActiveCategory, got %v", err)
	}
}
