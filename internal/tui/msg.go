package tui

import (
	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/shop"
)

// MsgCategoriesLoaded delivers the result of a category fetch.
type MsgCategoriesLoaded struct {
	Ticket     shop.Ticket
	Categories []catalog.Category
	Err        error
}

// MsgPlantsLoaded delivers the result of a category-scoped plant fetch.
type MsgPlantsLoaded struct {
	Ticket shop.Ticket
	Plants []catalog.PlantSummary
	Err    error
}

// MsgDetailLoaded delivers the result of a single-plant detail fetch.
// OK is false when the catalog had no record for the id.
type MsgDetailLoaded struct {
	Ticket shop.Ticket
	Detail catalog.PlantDetail
	OK     bool
	Err    error
}

// MsgCatalogChanged signals that the catalog file changed on disk and was
// reloaded. Err is set when the reload failed; the previous contents stay
// in effect.
type MsgCatalogChanged struct {
	Change catalog.Change
	Err    error
}

// MsgWatchClosed signals that the catalog watcher stopped delivering changes.
type MsgWatchClosed struct{}

// MsgNoticeExpired clears the notice line if it is still the one with ID.
type MsgNoticeExpired struct {
	ID int
}
