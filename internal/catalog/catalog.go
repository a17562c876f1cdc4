// Package catalog reads plant categories and plant listings from a catalog
// source. Two sources exist: Client talks to the remote catalog REST API, and
// Fixture serves the same shapes from a local TOML file.
package catalog

import (
	"context"

	"github.com/papapumpkin/greenhouse/internal/money"
)

// WorkingSetLimit is the maximum number of plants returned for a category.
// It is a display policy, so every source applies it.
const WorkingSetLimit = 6

// ShortDescriptionLimit is the rune length a card description is cut to.
const ShortDescriptionLimit = 100

// Display fallbacks for missing plant fields.
const (
	PlaceholderImage    = "https://via.placeholder.com/300x200?text=Plant+Image"
	NoDescription       = "No description provided"
	NoFullDescription   = "No description available"
	UnknownCategory     = "Unknown"
	UnspecifiedCategory = "Not specified"
	NoScientificName    = "Not available"
	NoCareInstructions  = "Not provided"
	syntheticIDPrefix   = "plant-"
)

// Category is a plant category. Identity is ID.
type Category struct {
	ID   string
	Name string
}

// PlantSummary is the card-level view of a plant within a category listing.
type PlantSummary struct {
	ID               string
	Name             string
	ImageURL         string
	ShortDescription string
	Category         string
	Price            money.Amount
}

// PlantDetail is the full record for a single plant. Optional text fields
// are empty when the catalog did not supply them.
type PlantDetail struct {
	PlantSummary
	ScientificName   string
	CareInstructions string
	FullDescription  string
}

// DetailFromSummary builds a PlantDetail carrying only summary fields. The
// listing description stands in for the full one unless it is the
// no-description placeholder.
func DetailFromSummary(s PlantSummary) PlantDetail {
	d := PlantDetail{PlantSummary: s}
	if s.ShortDescription != NoDescription {
		d.FullDescription = s.ShortDescription
	}
	return d
}

// Source is anything that can answer the three catalog queries.
type Source interface {
	// Categories lists all categories.
	Categories(ctx context.Context) ([]Category, error)
	// PlantsByCategory lists at most WorkingSetLimit plants for a category.
	PlantsByCategory(ctx context.Context, categoryID string) ([]PlantSummary, error)
	// PlantDetail looks up one plant. ok is false when the source has no data
	// for the id; that is not an error.
	PlantDetail(ctx context.Context, plantID string) (detail PlantDetail, ok bool, err error)
}

// CategoryLabel returns the card label for the plant's category.
func (s PlantSummary) CategoryLabel() string {
	if s.Category == "" {
		return UnknownCategory
	}
	return s.Category
}

// Labeled returns a copy with every empty text field replaced by its
// display fallback.
func (d PlantDetail) Labeled() PlantDetail {
	fill := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	fill(&d.Category, UnspecifiedCategory)
	fill(&d.ScientificName, NoScientificName)
	fill(&d.CareInstructions, NoCareInstructions)
	fill(&d.FullDescription, NoFullDescription)
	fill(&d.ImageURL, PlaceholderImage)
	return d
}
