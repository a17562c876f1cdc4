// Package telemetry provides a JSONL event stream for storefront sessions.
// Every catalog load, stale drop, and cart mutation is recorded as one JSON
// line, so a session can be reviewed after the fact. The stream is
// write-only; nothing in the storefront reads it back.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindSessionStart     = "session_start"
	KindSessionEnd       = "session_end"
	KindCategoriesLoaded = "categories_loaded"
	KindPlantsLoaded     = "plants_loaded"
	KindFetchFailed      = "fetch_failed"
	KindStaleDropped     = "stale_dropped"
	KindCartAdd          = "cart_add"
	KindCartDuplicate    = "cart_duplicate"
	KindCartRemove       = "cart_remove"
	KindPlantNotFound    = "plant_not_found"
	KindDetailOpened     = "detail_opened"
	KindCatalogReloaded  = "catalog_reloaded"
)

// Event is a single telemetry record.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	SessionID string    `json:"session,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file    *os.File
	enc     *json.Encoder
	session string
	now     func() time.Time
	mu      sync.Mutex
}

// NewEmitter creates an Emitter appending to the file at path, stamped with
// a fresh session id.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file:    f,
		enc:     json.NewEncoder(f),
		session: uuid.NewString(),
		now:     time.Now,
	}, nil
}

// SessionID returns the id stamped on every event.
func (e *Emitter) SessionID() string {
	if e == nil {
		return ""
	}
	return e.session
}

// Emit writes a single event. A zero Timestamp or empty SessionID is filled
// in. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if evt.SessionID == "" {
		evt.SessionID = e.session
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record is shorthand for Emit with a kind and data payload.
func (e *Emitter) Record(kind string, data any) error {
	return e.Emit(Event{Kind: kind, Data: data})
}

// Close closes the underlying file. Calling Close on a nil Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
