package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/shop"
)

// Each fetch command runs once, off the event loop, and reports back with the
// ticket it was issued under. Whether the result still matters is decided in
// Update.

func fetchCategoriesCmd(src catalog.Source, timeout time.Duration, t shop.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()
		cats, err := src.Categories(ctx)
		return MsgCategoriesLoaded{Ticket: t, Categories: cats, Err: err}
	}
}

func fetchPlantsCmd(src catalog.Source, timeout time.Duration, t shop.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()
		plants, err := src.PlantsByCategory(ctx, t.Key)
		return MsgPlantsLoaded{Ticket: t, Plants: plants, Err: err}
	}
}

func fetchDetailCmd(src catalog.Source, timeout time.Duration, t shop.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()
		d, ok, err := src.PlantDetail(ctx, t.Key)
		return MsgDetailLoaded{Ticket: t, Detail: d, OK: ok, Err: err}
	}
}

func fetchContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// watchCmd waits for the next catalog file change, reloads the catalog, and
// reports the outcome. Update re-arms it after every delivery.
func watchCmd(changes <-chan catalog.Change, reload func() error) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return MsgWatchClosed{}
		}
		var err error
		if reload != nil {
			err = reload()
		}
		return MsgCatalogChanged{Change: c, Err: err}
	}
}

// noticeExpireCmd clears notice id after ttl. A zero ttl keeps notices until
// they are replaced.
func noticeExpireCmd(id int, ttl time.Duration) tea.Cmd {
	if ttl <= 0 {
		return nil
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return MsgNoticeExpired{ID: id}
	})
}
