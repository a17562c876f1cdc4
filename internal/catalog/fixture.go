package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/greenhouse/internal/money"
)

// fixtureFile is the on-disk TOML layout of an offline catalog:
//
//	[[categories]]
//	id = "1"
//	name = "Fruit Trees"
//
//	[[plants]]
//	id = "mango"
//	category_id = "1"
//	name = "Mango Tree"
//	price = 500
type fixtureFile struct {
	Categories []fixtureCategory `toml:"categories"`
	Plants     []fixturePlant    `toml:"plants"`
}

type fixtureCategory struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type fixturePlant struct {
	ID             string `toml:"id"`
	CategoryID     string `toml:"category_id"`
	Name           string `toml:"name"`
	Image          string `toml:"image"`
	Description    string `toml:"description"`
	Category       string `toml:"category"`
	Price          any    `toml:"price"`
	ScientificName string `toml:"scientific_name"`
	Care           string `toml:"care"`
}

// Fixture is a Source backed by a TOML file. Reload swaps the contents
// atomically, so fetches may run concurrently with a reload.
type Fixture struct {
	path string

	mu         sync.RWMutex
	categories []Category
	plants     []fixturePlant
}

// LoadFixture reads and validates the fixture at path.
func LoadFixture(path string) (*Fixture, error) {
	f := &Fixture{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseFixture builds a Fixture from TOML bytes. The result cannot Reload.
func ParseFixture(data []byte) (*Fixture, error) {
	cats, plants, err := parseFixture(data)
	if err != nil {
		return nil, err
	}
	return &Fixture{categories: cats, plants: plants}, nil
}

// Path returns the file the fixture was loaded from.
func (f *Fixture) Path() string { return f.path }

// Reload re-reads the fixture file. On error the previous contents stay.
func (f *Fixture) Reload() error {
	if f.path == "" {
		return fmt.Errorf("catalog: fixture has no backing file")
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("catalog: read fixture %s: %w", f.path, err)
	}
	cats, plants, err := parseFixture(data)
	if err != nil {
		return fmt.Errorf("catalog: fixture %s: %w", f.path, err)
	}
	f.mu.Lock()
	f.categories = cats
	f.plants = plants
	f.mu.Unlock()
	return nil
}

func parseFixture(data []byte) ([]Category, []fixturePlant, error) {
	var ff fixtureFile
	if err := toml.Unmarshal(data, &ff); err != nil {
		return nil, nil, &ParseError{Op: "fixture", Err: err}
	}

	seen := make(map[string]bool, len(ff.Categories))
	cats := make([]Category, 0, len(ff.Categories))
	for i, c := range ff.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, nil, fmt.Errorf("category %d: missing id", i)
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("category %q: duplicate id", id)
		}
		seen[id] = true
		cats = append(cats, Category{ID: id, Name: strings.TrimSpace(c.Name)})
	}
	for i, p := range ff.Plants {
		if !seen[strings.TrimSpace(p.CategoryID)] {
			return nil, nil, fmt.Errorf("plant %d (%s): unknown category %q", i, p.Name, p.CategoryID)
		}
	}
	return cats, ff.Plants, nil
}

// Categories returns the fixture's categories.
func (f *Fixture) Categories(_ context.Context) ([]Category, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

// PlantsByCategory returns the first WorkingSetLimit plants of a category.
func (f *Fixture) PlantsByCategory(_ context.Context, categoryID string) ([]PlantSummary, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []PlantSummary
	index := 0
	for _, p := range f.plants {
		if strings.TrimSpace(p.CategoryID) != categoryID {
			continue
		}
		out = append(out, p.payload().summary(index))
		index++
	}
	return truncateWorkingSet(out), nil
}

// PlantDetail looks a plant up by its explicit id.
func (f *Fixture) PlantDetail(_ context.Context, plantID string) (PlantDetail, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.plants {
		if strings.TrimSpace(p.ID) == plantID && plantID != "" {
			return p.payload().detail(plantID), true, nil
		}
	}
	return PlantDetail{}, false, nil
}

// payload maps a fixture row onto the API shape so both sources share the
// same normalization.
func (p fixturePlant) payload() plantPayload {
	return plantPayload{
		ID:             flexString(p.ID),
		Name:           flexString(p.Name),
		Image:          p.Image,
		Description:    p.Description,
		Category:       flexString(p.Category),
		Price:          flexPrice(money.Parse(p.Price)),
		ScientificName: p.ScientificName,
		Care:           p.Care,
	}
}
