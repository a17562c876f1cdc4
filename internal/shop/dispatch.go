package shop

import (
	"errors"
	"fmt"
)

// ErrNoHandler indicates a trigger with no entry in the dispatch table.
var ErrNoHandler = errors.New("no handler for trigger")

// Region is a view region that can originate user actions.
type Region int

const (
	RegionCategories Region = iota
	RegionPlants
	RegionCart
	RegionDetail
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionCategories:
		return "categories"
	case RegionPlants:
		return "plants"
	case RegionCart:
		return "cart"
	case RegionDetail:
		return "detail"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// Action is what the user asked a region to do.
type Action int

const (
	ActionSelect Action = iota
	ActionOpen
	ActionAdd
	ActionRemove
	ActionReload
	ActionClose
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionOpen:
		return "open"
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReload:
		return "reload"
	case ActionClose:
		return "close"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Trigger keys the dispatch table.
type Trigger struct {
	Region Region
	Action Action
}

// String returns "region/action".
func (t Trigger) String() string { return t.Region.String() + "/" + t.Action.String() }

// FetchKind names the catalog query an Effect asks the caller to run.
type FetchKind int

const (
	FetchNone FetchKind = iota
	FetchCategories
	FetchPlants
	FetchDetail
)

// Effect is the follow-up work a handler leaves for the event loop.
type Effect struct {
	Fetch  FetchKind
	Ticket Ticket
	// Changed lists what the handler mutated, for logging and telemetry.
	Changed string
}

// Handler applies one trigger to the state. target is the id of the category,
// plant, or cart item the action is aimed at.
type Handler func(s *State, target string) (Effect, error)

// Dispatcher maps triggers to handlers.
type Dispatcher struct {
	handlers map[Trigger]Handler
}

// NewDispatcher returns a dispatcher with the storefront's standard table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[Trigger]Handler{
		{RegionCategories, ActionSelect}: selectCategory,
		{RegionCategories, ActionReload}: reloadCategories,
		{RegionPlants, ActionOpen}:       openDetail,
		{RegionPlants, ActionAdd}:        addToCart,
		{RegionPlants, ActionReload}:     reloadPlants,
		{RegionCart, ActionRemove}:       removeFromCart,
		{RegionDetail, ActionClose}:      closeDetail,
	}}
}

// Handle registers or replaces the handler for a trigger.
func (d *Dispatcher) Handle(t Trigger, h Handler) {
	d.handlers[t] = h
}

// Has reports whether t has a handler.
func (d *Dispatcher) Has(t Trigger) bool {
	_, ok := d.handlers[t]
	return ok
}

// Dispatch runs the handler for t.
func (d *Dispatcher) Dispatch(s *State, t Trigger, target string) (Effect, error) {
	h, ok := d.handlers[t]
	if !ok {
		return Effect{}, fmt.Errorf("%s: %w", t, ErrNoHandler)
	}
	return h(s, target)
}

func selectCategory(s *State, id string) (Effect, error) {
	t, err := s.SelectCategory(id)
	if err != nil {
		return Effect{}, err
	}
	return Effect{Fetch: FetchPlants, Ticket: t, Changed: "active_category"}, nil
}

func reloadCategories(s *State, _ string) (Effect, error) {
	return Effect{Fetch: FetchCategories, Ticket: s.BeginCategories(), Changed: "categories"}, nil
}

func reloadPlants(s *State, _ string) (Effect, error) {
	t, err := s.ReloadPlants()
	if err != nil {
		return Effect{}, err
	}
	return Effect{Fetch: FetchPlants, Ticket: t, Changed: "plants"}, nil
}

func openDetail(s *State, id string) (Effect, error) {
	if id == "" {
		return Effect{}, &PlantNotFoundError{ID: id}
	}
	return Effect{Fetch: FetchDetail, Ticket: s.OpenDetail(id), Changed: "detail"}, nil
}

func addToCart(s *State, id string) (Effect, error) {
	if _, err := s.AddToCart(id); err != nil {
		return Effect{}, err
	}
	return Effect{Changed: "cart"}, nil
}

func removeFromCart(s *State, id string) (Effect, error) {
	if !s.RemoveFromCart(id) {
		return Effect{}, nil
	}
	return Effect{Changed: "cart"}, nil
}

func closeDetail(s *State, _ string) (Effect, error) {
	s.CloseDetail()
	return Effect{Changed: "detail"}, nil
}
