// Package shop owns the storefront's application state: the category list,
// the active category, the working set of plants, the cart, and the open
// detail view. It is driven from a single event loop and never locks.
//
// Every fetch is issued against a Ticket. A result is applied only when its
// ticket is still the latest one for that region, so a response that lands
// after the user moved on is discarded instead of overwriting newer state.
package shop

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/greenhouse/internal/cart"
	"github.com/papapumpkin/greenhouse/internal/catalog"
)

// Sentinel errors for state transitions.
var (
	// ErrPlantNotFound indicates an id that is not in the current working set.
	ErrPlantNotFound = errors.New("plant not found")
	// ErrUnknownCategory indicates a category id that is not in the category list.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNoActiveCategory indicates a plant reload with no category selected.
	ErrNoActiveCategory = errors.New("no active category")
)

// PlantNotFoundError names the id that could not be resolved.
type PlantNotFoundError struct {
	ID string
}

// Error returns a user-facing message.
func (e *PlantNotFoundError) Error() string {
	return fmt.Sprintf("plant %q is not in the current listing", e.ID)
}

// Unwrap returns ErrPlantNotFound.
func (e *PlantNotFoundError) Unwrap() error { return ErrPlantNotFound }

// Status is the load state of one view region.
type Status int

const (
	// StatusIdle means nothing has been requested yet.
	StatusIdle Status = iota
	// StatusLoading means a fetch is outstanding.
	StatusLoading
	// StatusReady means content is available (possibly empty).
	StatusReady
	// StatusFailed means the last fetch failed.
	StatusFailed
)

// String returns a lowercase label for logs.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one issued fetch. Key is the category or plant id the
// fetch was issued for.
type Ticket struct {
	Seq uint64
	Key string
}

// Region-scoped user messages.
const (
	MsgCategoriesFailed = "Failed to load categories. Please try again."
	MsgCategoriesEmpty  = "No categories available."
	MsgPlantsFailed     = "Failed to load plants. Please try again."
	MsgPlantsEmpty      = "No plants available in this category."
)

// State is the storefront's single source of truth.
type State struct {
	Categories       []catalog.Category
	CategoriesStatus Status
	CategoriesErr    error

	ActiveCategory string
	Plants         []catalog.PlantSummary // working set for ActiveCategory
	PlantsStatus   Status
	PlantsErr      error

	Cart   *cart.Store
	Detail DetailState

	categoriesSeq uint64
	plantsSeq     uint64
	detailSeq     uint64
}

// NewState returns an empty state with an empty cart.
func NewState() *State {
	return &State{Cart: cart.New()}
}

// BeginCategories marks the category list as loading and issues a ticket.
func (s *State) BeginCategories() Ticket {
	s.categoriesSeq++
	s.CategoriesStatus = StatusLoading
	s.CategoriesErr = nil
	return Ticket{Seq: s.categoriesSeq}
}

// ApplyCategories stores a category fetch result. It returns false when the
// ticket is stale. On success the previously active category is kept if it is
// still listed; otherwise the first category becomes the candidate. The
// returned id is the category the caller should select next ("" for none).
func (s *State) ApplyCategories(t Ticket, cats []catalog.Category, err error) (next string, accepted bool) {
	if t.Seq != s.categoriesSeq {
		return "", false
	}
	if err != nil {
		s.CategoriesStatus = StatusFailed
		s.CategoriesErr = err
		return "", true
	}
	s.Categories = cats
	s.CategoriesStatus = StatusReady
	s.CategoriesErr = nil

	if len(cats) == 0 {
		s.ActiveCategory = ""
		s.clearPlants(StatusIdle)
		return "", true
	}
	if s.ActiveCategory != "" && s.hasCategory(s.ActiveCategory) {
		return s.ActiveCategory, true
	}
	return cats[0].ID, true
}

// SelectCategory makes id the active category, discards the working set, and
// issues a plants ticket. Exactly one category is active afterwards.
func (s *State) SelectCategory(id string) (Ticket, error) {
	if !s.hasCategory(id) {
		return Ticket{}, fmt.Errorf("select %q: %w", id, ErrUnknownCategory)
	}
	s.ActiveCategory = id
	return s.beginPlants(), nil
}

// ReloadPlants refetches the active category's plants.
func (s *State) ReloadPlants() (Ticket, error) {
	if s.ActiveCategory == "" {
		return Ticket{}, ErrNoActiveCategory
	}
	return s.beginPlants(), nil
}

func (s *State) beginPlants() Ticket {
	s.plantsSeq++
	s.clearPlants(StatusLoading)
	return Ticket{Seq: s.plantsSeq, Key: s.ActiveCategory}
}

func (s *State) clearPlants(status Status) {
	s.Plants = nil
	s.PlantsStatus = status
	s.PlantsErr = nil
}

// ApplyPlants stores a plant listing. It returns false, leaving the working
// set untouched, when the ticket is not the latest plants ticket.
func (s *State) ApplyPlants(t Ticket, plants []catalog.PlantSummary, err error) bool {
	if t.Seq != s.plantsSeq || t.Key != s.ActiveCategory {
		return false
	}
	if err != nil {
		s.Plants = nil
		s.PlantsStatus = StatusFailed
		s.PlantsErr = err
		return true
	}
	if len(plants) > catalog.WorkingSetLimit {
		plants = plants[:catalog.WorkingSetLimit]
	}
	s.Plants = plants
	s.PlantsStatus = StatusReady
	s.PlantsErr = nil
	return true
}

// FindPlant looks id up in the working set.
func (s *State) FindPlant(id string) (catalog.PlantSummary, bool) {
	for _, p := range s.Plants {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.PlantSummary{}, false
}

// AddToCart adds the working-set plant with id to the cart. A plant missing
// from the working set yields *PlantNotFoundError; an id already in the cart
// yields the cart's *DuplicateItemError.
func (s *State) AddToCart(id string) (cart.Item, error) {
	p, ok := s.FindPlant(id)
	if !ok {
		return cart.Item{}, &PlantNotFoundError{ID: id}
	}
	item := cart.Item{ID: p.ID, Name: p.Name, Price: p.Price}
	if err := s.Cart.Add(item); err != nil {
		return item, err
	}
	return item, nil
}

// RemoveFromCart removes id from the cart. Absent ids are a no-op.
func (s *State) RemoveFromCart(id string) bool {
	return s.Cart.Remove(id)
}

// ActiveCategoryName returns the display name of the active category.
func (s *State) ActiveCategoryName() string {
	for _, c := range s.Categories {
		if c.ID == s.ActiveCategory {
			return c.Name
		}
	}
	return ""
}

func (s *State) hasCategory(id string) bool {
	for _, c := range s.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
