package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResolveID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		underscoreID string
		id           string
		index        int
		want         string
	}{
		{"underscore id wins", "abc", "7", 0, "abc"},
		{"falls back to id", "", "7", 3, "7"},
		{"synthesized from index", "", "", 4, "plant-4"},
		{"whitespace counts as missing", "  ", " ", 1, "plant-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveID(tt.underscoreID, tt.id, tt.index); got != tt.want {
				t.Errorf("ResolveID(%q, %q, %d) = %q, want %q", tt.underscoreID, tt.id, tt.index, got, tt.want)
			}
		})
	}
}

func TestShortDescription(t *testing.T) {
	t.Parallel()

	if got := ShortDescription(""); got != NoDescription {
		t.Errorf("empty description = %q, want %q", got, NoDescription)
	}
	if got := ShortDescription("A small tree."); got != "A small tree." {
		t.Errorf("short description changed: %q", got)
	}

	long := strings.Repeat("é", 150)
	got := ShortDescription(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis on truncated description, got %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != ShortDescriptionLimit {
		t.Errorf("truncated to %d runes, want %d", n, ShortDescriptionLimit)
	}
}

func TestPlantPayloadDecoding(t *testing.T) {
	t.Parallel()
	raw := `{"id": 12, "name": "Neem", "price": "45.5", "category": "Medicinal",
		"details": {"description": "Nested text"}, "description": "Top text"}`

	var p plantPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := p.summary(2)
	if s.ID != "12" {
		t.Errorf("ID = %q, want numeric id as string", s.ID)
	}
	if s.Price.String() != "$45.50" {
		t.Errorf("Price = %s, want $45.50", s.Price)
	}
	if s.ShortDescription != "Nested text" {
		t.Errorf("ShortDescription = %q, want nested details text", s.ShortDescription)
	}
	if s.ImageURL != PlaceholderImage {
		t.Errorf("ImageURL = %q, want placeholder", s.ImageURL)
	}
}

func TestPlantPayloadMissingFields(t *testing.T) {
	t.Parallel()
	var p plantPayload
	if err := json.Unmarshal([]byte(`{"name": "Mystery", "price": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := p.summary(5)
	if s.ID != "plant-5" {
		t.Errorf("ID = %q, want plant-5", s.ID)
	}
	if s.Price != 0 {
		t.Errorf("Price = %d, want 0", s.Price)
	}
	if s.ShortDescription != NoDescription {
		t.Errorf("ShortDescription = %q, want fallback", s.ShortDescription)
	}

	d := p.detail("requested")
	if d.ID != "requested" {
		t.Errorf("detail ID = %q, want requested id when payload has none", d.ID)
	}
}

func TestSummarize_OutOfRangePrice(t *testing.T) {
	t.Parallel()
	raw := `{"plants":[{"name":"a","price":1e17},{"name":"b","price":"92233720368547758"},{"name":"c","price":12.5}]}`
	var env plantsEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := summarize(env.Plants)
	want := []string{"$0.00", "$0.00", "$12.50"}
	if len(got) != len(want) {
		t.Fatalf("got %d plants, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Price < 0 {
			t.Errorf("%s: negative price %d", p.Name, p.Price)
		}
		if p.Price.String() != want[i] {
			t.Errorf("%s: price %s, want %s", p.Name, p.Price, want[i])
		}
	}
}
