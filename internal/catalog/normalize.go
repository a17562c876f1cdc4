package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/papapumpkin/greenhouse/internal/money"
)

// ResolveID picks a plant's identity. Precedence: underscoreID ("_id" in the
// API), then id, then a synthesized "plant-<index>" for the plant's position
// in its listing.
func ResolveID(underscoreID, id string, index int) string {
	if v := strings.TrimSpace(underscoreID); v != "" {
		return v
	}
	if v := strings.TrimSpace(id); v != "" {
		return v
	}
	return syntheticIDPrefix + strconv.Itoa(index)
}

// ShortDescription cuts desc to ShortDescriptionLimit runes, marking the cut
// with "...". An empty desc yields NoDescription.
func ShortDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return NoDescription
	}
	if utf8.RuneCountInString(desc) <= ShortDescriptionLimit {
		return desc
	}
	r := []rune(desc)
	return string(r[:ShortDescriptionLimit]) + "..."
}

// truncateWorkingSet keeps the first WorkingSetLimit plants.
func truncateWorkingSet(plants []PlantSummary) []PlantSummary {
	if len(plants) > WorkingSetLimit {
		return plants[:WorkingSetLimit]
	}
	return plants
}

// flexString decodes a JSON string, number, or null into a string. Catalog
// ids arrive as either.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexPrice decodes a price given as a number, a numeric string, or nothing.
type flexPrice money.Amount

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*p = flexPrice(money.Parse(v))
	return nil
}

type categoryPayload struct {
	ID   flexString `json:"id"`
	Name flexString `json:"category_name"`
}

type categoriesEnvelope struct {
	Categories []categoryPayload `json:"categories"`
}

type plantDetailsPayload struct {
	Description string `json:"description"`
}

type plantPayload struct {
	UnderscoreID   flexString           `json:"_id"`
	ID             flexString           `json:"id"`
	Name           flexString           `json:"name"`
	Image          string               `json:"image"`
	Description    string               `json:"description"`
	Details        *plantDetailsPayload `json:"details"`
	Category       flexString           `json:"category"`
	Price          flexPrice            `json:"price"`
	ScientificName string               `json:"scientific_name"`
	Care           string               `json:"care"`
}

type plantsEnvelope struct {
	Plants []plantPayload `json:"plants"`
}

// detailEnvelope carries a single plant under "data", or under "plants" as
// an object on some API revisions.
type detailEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Plants json.RawMessage `json:"plants"`
}

func (c categoryPayload) category() Category {
	return Category{
		ID:   strings.TrimSpace(string(c.ID)),
		Name: strings.TrimSpace(string(c.Name)),
	}
}

// description prefers the nested details text over the top-level one.
func (p plantPayload) description() string {
	if p.Details != nil && strings.TrimSpace(p.Details.Description) != "" {
		return strings.TrimSpace(p.Details.Description)
	}
	return strings.TrimSpace(p.Description)
}

func (p plantPayload) summary(index int) PlantSummary {
	image := strings.TrimSpace(p.Image)
	if image == "" {
		image = PlaceholderImage
	}
	return PlantSummary{
		ID:               ResolveID(string(p.UnderscoreID), string(p.ID), index),
		Name:             strings.TrimSpace(string(p.Name)),
		ImageURL:         image,
		ShortDescription: ShortDescription(p.description()),
		Category:         strings.TrimSpace(string(p.Category)),
		Price:            money.Amount(p.Price),
	}
}

// detail builds a PlantDetail. requestedID stands in when the payload omits
// both id fields.
func (p plantPayload) detail(requestedID string) PlantDetail {
	s := p.summary(0)
	if strings.TrimSpace(string(p.UnderscoreID)) == "" && strings.TrimSpace(string(p.ID)) == "" {
		s.ID = requestedID
	}
	return PlantDetail{
		PlantSummary:     s,
		ScientificName:   strings.TrimSpace(p.ScientificName),
		CareInstructions: strings.TrimSpace(p.Care),
		FullDescription:  p.description(),
	}
}

func summarize(payloads []plantPayload) []PlantSummary {
	n := len(payloads)
	if n > WorkingSetLimit {
		n = WorkingSetLimit
	}
	out := make([]PlantSummary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, payloads[i].summary(i))
	}
	return out
}

// isJSONObject reports whether raw holds a JSON object.
func isJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
