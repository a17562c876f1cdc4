package shop

import (
	"errors"

	"github.com/papapumpkin/greenhouse/internal/catalog"
)

// ErrDetailUnavailable indicates neither the detail fetch nor the working set
// could supply data for a plant.
var ErrDetailUnavailable = errors.New("plant details unavailable")

// Detail messages shown in place of content.
const (
	MsgDetailNotAvailable = "Plant details not available."
	MsgDetailFailed       = "Failed to load plant details. Please try again."
)

// DetailSource records where the displayed detail came from.
type DetailSource int

const (
	// DetailNone means no detail is displayed.
	DetailNone DetailSource = iota
	// DetailFetched means the detail came from the catalog.
	DetailFetched
	// DetailFromSummary means the fetch failed or was empty and the working
	// set supplied the fields.
	DetailFromSummary
)

// DetailState is the state of the detail overlay.
type DetailState struct {
	Open    bool
	PlantID string
	Status  Status
	Source  DetailSource
	Plant   catalog.PlantDetail
	Message string // set instead of Plant when nothing can be shown
}

// ResolveDetail applies the fallback policy. A fetched detail wins. Otherwise
// the matching summary is used. With no summary either, the result is
// ErrDetailUnavailable and the message tells the user whether the fetch
// failed or simply had nothing.
func ResolveDetail(fetched catalog.PlantDetail, ok bool, fetchErr error, summary catalog.PlantSummary, haveSummary bool) (catalog.PlantDetail, DetailSource, string, error) {
	if fetchErr == nil && ok {
		return fetched, DetailFetched, "", nil
	}
	if haveSummary {
		return catalog.DetailFromSummary(summary), DetailFromSummary, "", nil
	}
	if fetchErr != nil {
		return catalog.PlantDetail{}, DetailNone, MsgDetailFailed, errors.Join(ErrDetailUnavailable, fetchErr)
	}
	return catalog.PlantDetail{}, DetailNone, MsgDetailNotAvailable, ErrDetailUnavailable
}

// OpenDetail opens the overlay for id in the loading state and issues a
// detail ticket. Any earlier outstanding detail fetch becomes stale.
func (s *State) OpenDetail(id string) Ticket {
	s.detailSeq++
	s.Detail = DetailState{
		Open:    true,
		PlantID: id,
		Status:  StatusLoading,
	}
	return Ticket{Seq: s.detailSeq, Key: id}
}

// ApplyDetail stores a detail fetch result, falling back to the working set.
// It returns false for stale tickets or when the overlay was closed. The
// returned error is non-nil only when nothing could be shown.
func (s *State) ApplyDetail(t Ticket, d catalog.PlantDetail, ok bool, fetchErr error) (bool, error) {
	if t.Seq != s.detailSeq || !s.Detail.Open || s.Detail.PlantID != t.Key {
		return false, nil
	}
	summary, have := s.FindPlant(t.Key)
	plant, src, msg, err := ResolveDetail(d, ok, fetchErr, summary, have)
	s.Detail.Plant = plant
	s.Detail.Source = src
	s.Detail.Message = msg
	if err != nil {
		s.Detail.Status = StatusFailed
	} else {
		s.Detail.Status = StatusReady
	}
	return true, err
}

// CloseDetail hides the overlay. A fetch still in flight for it is dropped
// when it lands.
func (s *State) CloseDetail() {
	s.detailSeq++
	s.Detail = DetailState{}
}
