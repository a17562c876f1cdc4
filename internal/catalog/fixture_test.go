package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleFixture = `
[[categories]]
id = "1"
name = "Fruit"

[[categories]]
id = "2"
name = "Flower"

[[plants]]
id = "mango"
category_id = "1"
name = "Mango Tree"
price = 500
category = "Fruit Tree"
scientific_name = "Mangifera indica"
care = "Full sun"
description = "Sweet summer fruit."

[[plants]]
category_id = "1"
name = "Guava"
price = "12.25"

[[plants]]
id = "rose"
category_id = "2"
name = "Rose"
price = 9.5
`

func TestParseFixture(t *testing.T) {
	t.Parallel()
	f, err := ParseFixture([]byte(sampleFixture))
	if err != nil {
		t.Fatalf("ParseFixture: %v", err)
	}
	ctx := context.Background()

	cats, _ := f.Categories(ctx)
	if len(cats) != 2 || cats[0].Name != "Fruit" || cats[1].ID != "2" {
		t.Errorf("unexpected categories: %+v", cats)
	}

	plants, _ := f.PlantsByCategory(ctx, "1")
	if len(plants) != 2 {
		t.Fatalf("got %d fruit plants, want 2", len(plants))
	}
	if plants[0].ID != "mango" || plants[0].Price.String() != "$500.00" {
		t.Errorf("unexpected first plant: %+v", plants[0])
	}
	if plants[1].ID != "plant-1" {
		t.Errorf("plant without id = %q, want synthesized plant-1", plants[1].ID)
	}
	if plants[1].Price.String() != "$12.25" {
		t.Errorf("string price = %s, want $12.25", plants[1].Price)
	}

	d, ok, err := f.PlantDetail(ctx, "mango")
	if err != nil || !ok {
		t.Fatalf("PlantDetail(mango) ok=%v err=%v", ok, err)
	}
	if d.ScientificName != "Mangifera indica" || d.CareInstructions != "Full sun" {
		t.Errorf("unexpected detail: %+v", d)
	}

	if _, ok, _ := f.PlantDetail(ctx, "unknown"); ok {
		t.Error("expected ok=false for unknown plant")
	}
}

func TestParseFixtureTruncatesWorkingSet(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	b.WriteString("[[categories]]\nid = \"1\"\nname = \"Fruit\"\n")
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&b, "[[plants]]\nid = \"p%d\"\ncategory_id = \"1\"\nname = \"P%d\"\nprice = 10\n", i, i)
	}
	f, err := ParseFixture([]byte(b.String()))
	if err != nil {
		t.Fatalf("ParseFixture: %v", err)
	}
	plants, _ := f.PlantsByCategory(context.Background(), "1")
	if len(plants) != WorkingSetLimit {
		t.Errorf("got %d plants, want %d", len(plants), WorkingSetLimit)
	}
}

func TestParseFixtureErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantSub string
	}{
		{"malformed toml", "[[categories]\nid=", "malformed"},
		{"missing category id", "[[categories]]\nname = \"x\"\n", "missing id"},
		{"duplicate category", "[[categories]]\nid = \"1\"\n[[categories]]\nid = \"1\"\n", "duplicate id"},
		{"unknown category", "[[categories]]\nid = \"1\"\n[[plants]]\nname = \"x\"\ncategory_id = \"9\"\n", "unknown category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseFixture([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err, tt.wantSub)
			}
		})
	}

	_, err := ParseFixture([]byte("[[categories]\n"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("malformed TOML should satisfy ErrParse, got %v", err)
	}
}

func TestFixtureReloadKeepsOldContentsOnError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(sampleFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	if err := os.WriteFile(path, []byte("[[broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.Reload(); err == nil {
		t.Fatal("expected reload error for broken file")
	}
	cats, _ := f.Categories(context.Background())
	if len(cats) != 2 {
		t.Errorf("expected previous categories to survive, got %d", len(cats))
	}

	if err := os.WriteFile(path, []byte("[[categories]]\nid = \"9\"\nname = \"Herbs\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	cats, _ = f.Categories(context.Background())
	if len(cats) != 1 || cats[0].Name != "Herbs" {
		t.Errorf("unexpected categories after reload: %+v", cats)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(sampleFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(sampleFixture+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Changes:
		if c.Removed {
			t.Error("expected a write, got removal")
		}
		if filepath.Base(c.Path) != "catalog.toml" {
			t.Errorf("unexpected path %q", c.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte(sampleFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-w.Changes:
		t.Errorf("unexpected change: %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}
