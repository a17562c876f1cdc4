package tui

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/greenhouse/internal/cart"
	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/shop"
	"github.com/papapumpkin/greenhouse/internal/telemetry"
)

// Focus is the view region that receives navigation keys.
type Focus int

const (
	FocusCategories Focus = iota
	FocusPlants
	FocusCart
)

// regionCount is the number of focusable regions.
const regionCount = 3

// DefaultNoticeTTL is how long a notice stays on screen.
const DefaultNoticeTTL = 4 * time.Second

// Options configures the storefront model.
type Options struct {
	Source    catalog.Source
	Timeout   time.Duration
	Logger    logrus.FieldLogger
	Telemetry *telemetry.Emitter
	// SourceLabel is shown in the status bar.
	SourceLabel string
	// Changes delivers catalog file changes; nil disables hot reload.
	Changes <-chan catalog.Change
	// Reload rereads the catalog after a change.
	Reload func() error
	Mouse  bool
	// NoticeTTL overrides DefaultNoticeTTL. Negative keeps notices until
	// they are replaced.
	NoticeTTL time.Duration
}

// AppModel is the root BubbleTea model composing all sub-views.
type AppModel struct {
	State      *shop.State
	Dispatcher *shop.Dispatcher
	Keys       KeyMap
	Focus      Focus
	Spinner    spinner.Model
	Detail     DetailPanel
	StatusBar  StatusBar
	Notice     string
	Width      int
	Height     int

	CategoryCursor int
	PlantCursor    int
	CartCursor     int

	noticeID  int
	noticeTTL time.Duration
	opts      Options
	log       logrus.FieldLogger
}

// NewAppModel creates a storefront model over opts.Source.
func NewAppModel(opts Options) AppModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	ttl := opts.NoticeTTL
	if ttl == 0 {
		ttl = DefaultNoticeTTL
	}

	w, h := overlaySize(80, 24)
	return AppModel{
		State:      shop.NewState(),
		Dispatcher: shop.NewDispatcher(),
		Keys:       DefaultKeyMap(),
		Spinner:    s,
		Detail:     NewDetailPanel(w, h),
		StatusBar:  StatusBar{Source: opts.SourceLabel},
		noticeTTL:  ttl,
		opts:       opts,
		log:        log,
	}
}

// Init starts the spinner, requests the category list, and arms the catalog
// watcher when one is configured.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		m.dispatch(shop.Trigger{Region: shop.RegionCategories, Action: shop.ActionReload}, ""),
		watchCmd(m.opts.Changes, m.opts.Reload),
	)
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Detail.SetSize(overlaySize(msg.Width, msg.Height))
		if m.State.Detail.Open {
			m.refreshDetail()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		if m.State.Detail.Open && m.State.Detail.Status == shop.StatusLoading {
			m.refreshDetail()
		}
		return m, cmd

	case MsgCategoriesLoaded:
		return m.handleCategoriesLoaded(msg)

	case MsgPlantsLoaded:
		return m.handlePlantsLoaded(msg)

	case MsgDetailLoaded:
		return m.handleDetailLoaded(msg)

	case MsgCatalogChanged:
		return m.handleCatalogChanged(msg)

	case MsgWatchClosed:
		m.log.Debug("catalog watcher closed")
		return m, nil

	case MsgNoticeExpired:
		if msg.ID == m.noticeID {
			m.Notice = ""
		}
		return m, nil
	}
	return m, nil
}

func (m AppModel) handleCategoriesLoaded(msg MsgCategoriesLoaded) (tea.Model, tea.Cmd) {
	next, accepted := m.State.ApplyCategories(msg.Ticket, msg.Categories, msg.Err)
	if !accepted {
		m.dropStale("categories", msg.Ticket)
		return m, nil
	}
	if msg.Err != nil {
		m.fetchFailed("categories", "", msg.Err)
		return m, nil
	}
	m.log.WithField("count", len(msg.Categories)).Info("categories loaded")
	m.record(telemetry.KindCategoriesLoaded, map[string]any{"count": len(msg.Categories)})

	if next == "" {
		m.CategoryCursor = 0
		return m, nil
	}
	m.CategoryCursor = m.categoryIndex(next)
	cmd := m.dispatch(shop.Trigger{Region: shop.RegionCategories, Action: shop.ActionSelect}, next)
	return m, cmd
}

func (m AppModel) handlePlantsLoaded(msg MsgPlantsLoaded) (tea.Model, tea.Cmd) {
	if !m.State.ApplyPlants(msg.Ticket, msg.Plants, msg.Err) {
		m.dropStale("plants", msg.Ticket)
		return m, nil
	}
	if msg.Err != nil {
		m.fetchFailed("plants", msg.Ticket.Key, msg.Err)
		return m, nil
	}
	m.PlantCursor = clamp(m.PlantCursor, 0, len(m.State.Plants)-1)
	m.log.WithFields(logrus.Fields{
		"category": msg.Ticket.Key,
		"count":    len(m.State.Plants),
	}).Info("plants loaded")
	m.record(telemetry.KindPlantsLoaded, map[string]any{
		"category": msg.Ticket.Key,
		"count":    len(m.State.Plants),
	})
	return m, nil
}

func (m AppModel) handleDetailLoaded(msg MsgDetailLoaded) (tea.Model, tea.Cmd) {
	accepted, err := m.State.ApplyDetail(msg.Ticket, msg.Detail, msg.OK, msg.Err)
	if !accepted {
		m.dropStale("detail", msg.Ticket)
		return m, nil
	}
	if msg.Err != nil {
		m.fetchFailed("detail", msg.Ticket.Key, msg.Err)
	}
	if err != nil {
		m.log.WithError(err).WithField("plant", msg.Ticket.Key).Warn("detail unavailable")
	}
	m.refreshDetail()
	return m, nil
}

func (m AppModel) handleCatalogChanged(msg MsgCatalogChanged) (tea.Model, tea.Cmd) {
	rearm := watchCmd(m.opts.Changes, m.opts.Reload)
	if msg.Err != nil {
		m.log.WithError(msg.Err).WithField("path", msg.Change.Path).Warn("catalog reload failed")
		notice := m.setNotice("Catalog reload failed; keeping previous contents.")
		return m, tea.Batch(rearm, notice)
	}
	m.log.WithField("path", msg.Change.Path).Info("catalog reloaded")
	m.record(telemetry.KindCatalogReloaded, map[string]any{"path": msg.Change.Path})
	reload := m.dispatch(shop.Trigger{Region: shop.RegionCategories, Action: shop.ActionReload}, "")
	return m, tea.Batch(rearm, reload)
}

// handleKey processes keyboard input.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Quit) {
		return m, tea.Quit
	}
	if m.State.Detail.Open {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.NextRegion):
		m.Focus = (m.Focus + 1) % regionCount

	case key.Matches(msg, m.Keys.PrevRegion):
		m.Focus = (m.Focus + regionCount - 1) % regionCount

	case key.Matches(msg, m.Keys.Left):
		m.moveCursor(-1, 0)

	case key.Matches(msg, m.Keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(0, -1)

	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.Keys.Enter):
		switch m.Focus {
		case FocusCategories:
			if id, ok := m.cursorCategory(); ok {
				cmd := m.dispatch(shop.Trigger{Region: shop.RegionCategories, Action: shop.ActionSelect}, id)
				return m, cmd
			}
		case FocusPlants:
			if id, ok := m.cursorPlant(); ok {
				cmd := m.dispatch(shop.Trigger{Region: shop.RegionPlants, Action: shop.ActionOpen}, id)
				return m, cmd
			}
		}

	case key.Matches(msg, m.Keys.Add):
		if m.Focus == FocusPlants {
			if id, ok := m.cursorPlant(); ok {
				cmd := m.dispatch(shop.Trigger{Region: shop.RegionPlants, Action: shop.ActionAdd}, id)
				return m, cmd
			}
		}

	case key.Matches(msg, m.Keys.Remove):
		if m.Focus == FocusCart {
			items := m.State.Cart.Items()
			if len(items) > 0 {
				id := items[clamp(m.CartCursor, 0, len(items)-1)].ID
				cmd := m.dispatch(shop.Trigger{Region: shop.RegionCart, Action: shop.ActionRemove}, id)
				return m, cmd
			}
		}

	case key.Matches(msg, m.Keys.Reload):
		switch m.Focus {
		case FocusCategories:
			cmd := m.dispatch(shop.Trigger{Region: shop.RegionCategories, Action: shop.ActionReload}, "")
			return m, cmd
		case FocusPlants:
			cmd := m.dispatch(shop.Trigger{Region: shop.RegionPlants, Action: shop.ActionReload}, "")
			return m, cmd
		}
	}
	return m, nil
}

// handleDetailKey processes keys while the detail overlay is open.
func (m AppModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Close):
		cmd := m.dispatch(shop.Trigger{Region: shop.RegionDetail, Action: shop.ActionClose}, "")
		return m, cmd
	case key.Matches(msg, m.Keys.Add):
		cmd := m.dispatch(shop.Trigger{Region: shop.RegionPlants, Action: shop.ActionAdd}, m.State.Detail.PlantID)
		m.refreshDetail()
		return m, cmd
	default:
		m.Detail.Update(msg)
	}
	return m, nil
}

// handleMouse closes the overlay on a click outside it, scrolls it with the
// wheel, and selects categories and cards on click.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State.Detail.Open {
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			m.Detail.Update(msg)
			return m, nil
		}
		if !isLeftClick(msg) {
			return m, nil
		}
		if !m.overlayRect().contains(msg.X, msg.Y) {
			cmd := m.dispatch(shop.Trigger{Region: shop.RegionDetail, Action: shop.ActionClose}, "")
			return m, cmd
		}
		return m, nil
	}
	if !isLeftClick(msg) {
		return m, nil
	}

	if msg.Y == categoryBarY {
		if i := m.categoryBar().ButtonAt(msg.X); i >= 0 {
			m.Focus = FocusCategories
			m.CategoryCursor = i
			cmd := m.dispatch(shop.Trigger{Region: shop.RegionCategories, Action: shop.ActionSelect}, m.State.Categories[i].ID)
			return m, cmd
		}
		return m, nil
	}
	if m.State.PlantsStatus == shop.StatusReady {
		if i := cardAt(m.Width, msg.X, msg.Y); i >= 0 && i < len(m.State.Plants) {
			m.Focus = FocusPlants
			m.PlantCursor = i
			cmd := m.dispatch(shop.Trigger{Region: shop.RegionPlants, Action: shop.ActionOpen}, m.State.Plants[i].ID)
			return m, cmd
		}
	}
	return m, nil
}

func isLeftClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// dispatch runs a trigger against the state and turns its effect into a
// command. Failures become notices; they never end the session.
func (m *AppModel) dispatch(t shop.Trigger, target string) tea.Cmd {
	entry := m.log.WithFields(logrus.Fields{"trigger": t.String(), "target": target})
	eff, err := m.Dispatcher.Dispatch(m.State, t, target)
	if err != nil {
		return m.dispatchFailed(t, target, err)
	}
	entry.WithField("changed", eff.Changed).Debug("dispatched")

	switch {
	case t.Action == shop.ActionAdd:
		p, _ := m.State.FindPlant(target)
		m.record(telemetry.KindCartAdd, map[string]any{
			"plant": target,
			"name":  p.Name,
			"price": p.Price.String(),
			"total": m.State.Cart.Total().String(),
		})
		entry.WithField("total", m.State.Cart.Total().String()).Info("cart add")
	case t.Action == shop.ActionRemove && eff.Changed != "":
		m.CartCursor = clamp(m.CartCursor, 0, m.State.Cart.Len()-1)
		m.record(telemetry.KindCartRemove, map[string]any{
			"plant": target,
			"total": m.State.Cart.Total().String(),
		})
		entry.WithField("total", m.State.Cart.Total().String()).Info("cart remove")
	case t.Action == shop.ActionOpen:
		m.record(telemetry.KindDetailOpened, map[string]any{"plant": target})
	case t.Region == shop.RegionCategories && t.Action == shop.ActionSelect:
		m.PlantCursor = 0
	}

	switch eff.Fetch {
	case shop.FetchCategories:
		return fetchCategoriesCmd(m.opts.Source, m.opts.Timeout, eff.Ticket)
	case shop.FetchPlants:
		return fetchPlantsCmd(m.opts.Source, m.opts.Timeout, eff.Ticket)
	case shop.FetchDetail:
		m.refreshDetail()
		return fetchDetailCmd(m.opts.Source, m.opts.Timeout, eff.Ticket)
	}
	return nil
}

func (m *AppModel) dispatchFailed(t shop.Trigger, target string, err error) tea.Cmd {
	entry := m.log.WithFields(logrus.Fields{"trigger": t.String(), "target": target}).WithError(err)
	var dup *cart.DuplicateItemError
	switch {
	case errors.As(err, &dup):
		entry.Info("duplicate cart add")
		m.record(telemetry.KindCartDuplicate, map[string]any{"plant": dup.ID})
		return m.setNotice(dup.Error())
	case errors.Is(err, shop.ErrPlantNotFound):
		entry.Warn("plant not found")
		m.record(telemetry.KindPlantNotFound, map[string]any{"plant": target})
		return m.setNotice("That plant is no longer listed.")
	default:
		entry.Warn("dispatch failed")
		return m.setNotice(err.Error())
	}
}

// setNotice shows text on the notice line and schedules its removal.
func (m *AppModel) setNotice(text string) tea.Cmd {
	m.noticeID++
	m.Notice = text
	return noticeExpireCmd(m.noticeID, m.noticeTTL)
}

func (m *AppModel) dropStale(region string, t shop.Ticket) {
	m.log.WithFields(logrus.Fields{
		"region": region,
		"seq":    t.Seq,
		"key":    t.Key,
	}).Debug("stale result dropped")
	m.record(telemetry.KindStaleDropped, map[string]any{"region": region, "key": t.Key})
}

func (m *AppModel) fetchFailed(region, key string, err error) {
	m.log.WithFields(logrus.Fields{"region": region, "key": key}).WithError(err).Warn("fetch failed")
	m.record(telemetry.KindFetchFailed, map[string]any{
		"region":  region,
		"key":     key,
		"network": errors.Is(err, catalog.ErrNetwork),
		"error":   err.Error(),
	})
}

func (m *AppModel) record(kind string, data map[string]any) {
	if err := m.opts.Telemetry.Record(kind, data); err != nil {
		m.log.WithError(err).Debug("telemetry write failed")
	}
}

// refreshDetail re-renders the overlay body from the detail state.
func (m *AppModel) refreshDetail() {
	d := m.State.Detail
	if !d.Open {
		return
	}
	width := m.Detail.Width()
	title := d.PlantID
	if p, ok := m.State.FindPlant(d.PlantID); ok {
		title = p.Name
	}
	switch d.Status {
	case shop.StatusLoading:
		m.Detail.SetEmpty(title, m.Spinner.View()+" "+styleEmpty.Render("Loading plant details..."))
	case shop.StatusFailed:
		m.Detail.SetEmpty(title, styleError.Render(d.Message))
	default:
		if d.Plant.Name != "" {
			title = d.Plant.Name
		}
		inCart := m.State.Cart.Contains(d.Plant.ID)
		m.Detail.SetContent(title, renderDetailBody(d.Plant, d.Source, inCart, width))
	}
}

func (m *AppModel) moveCursor(dx, dy int) {
	switch m.Focus {
	case FocusCategories:
		step := dx
		if step == 0 {
			step = dy
		}
		m.CategoryCursor = clamp(m.CategoryCursor+step, 0, len(m.State.Categories)-1)
	case FocusPlants:
		m.PlantCursor = clamp(m.PlantCursor+dx+dy*gridColumns, 0, len(m.State.Plants)-1)
	case FocusCart:
		step := dy
		if step == 0 {
			step = dx
		}
		m.CartCursor = clamp(m.CartCursor+step, 0, m.State.Cart.Len()-1)
	}
}

func (m AppModel) cursorCategory() (string, bool) {
	if m.CategoryCursor < 0 || m.CategoryCursor >= len(m.State.Categories) {
		return "", false
	}
	return m.State.Categories[m.CategoryCursor].ID, true
}

func (m AppModel) cursorPlant() (string, bool) {
	if m.State.PlantsStatus != shop.StatusReady || m.PlantCursor < 0 || m.PlantCursor >= len(m.State.Plants) {
		return "", false
	}
	return m.State.Plants[m.PlantCursor].ID, true
}

func (m AppModel) categoryIndex(id string) int {
	for i, c := range m.State.Categories {
		if c.ID == id {
			return i
		}
	}
	return 0
}

func (m AppModel) categoryBar() CategoryBar {
	return CategoryBar{
		Categories: m.State.Categories,
		Active:     m.State.ActiveCategory,
		Cursor:     m.CategoryCursor,
		Focused:    m.Focus == FocusCategories,
		Status:     m.State.CategoriesStatus,
		Spinner:    m.Spinner.View(),
		Width:      m.Width,
	}
}

// overlayBox renders the detail overlay: the panel, any notice, and the
// overlay's key hints.
func (m AppModel) overlayBox() string {
	panel := m.Detail.View()
	parts := []string{panel}
	if m.Notice != "" {
		parts = append(parts, styleNotice.Render(TruncateWithEllipsis(m.Notice, lipgloss.Width(panel))))
	}
	parts = append(parts, Footer{Width: lipgloss.Width(panel), Bindings: DetailFooterBindings(DetailKeyMap())}.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m AppModel) overlayRect() rect {
	return overlayBounds(m.overlayBox(), m.Width, m.Height)
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.Width == 0 {
		return "initializing..."
	}

	if m.State.Detail.Open {
		return centerOverlay(m.overlayBox(), m.Width, m.Height)
	}

	m.StatusBar.Category = m.State.ActiveCategoryName()
	m.StatusBar.CartCount = m.State.Cart.Len()
	m.StatusBar.Total = m.State.Cart.Total()

	sections := []string{
		m.StatusBar.View(),
		m.categoryBar().View(),
		styleDetailSep.Render(strings.Repeat("─", m.Width)),
		m.renderBody(),
	}
	if m.Notice != "" {
		sections = append(sections, styleNotice.Render(TruncateWithEllipsis(m.Notice, m.Width)))
	}
	sections = append(sections, Footer{Width: m.Width, Bindings: ShopFooterBindings(m.Keys, m.Focus)}.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody lays out the plant grid and the cart panel side by side, or
// stacked on narrow terminals.
func (m AppModel) renderBody() string {
	grid := PlantGrid{
		Title:   m.State.ActiveCategoryName(),
		Plants:  m.State.Plants,
		Status:  m.State.PlantsStatus,
		Cursor:  m.PlantCursor,
		Focused: m.Focus == FocusPlants,
		Cart:    m.State.Cart,
		Spinner: m.Spinner.View(),
		Width:   m.Width,
	}.View()

	panelWidth := cartPanelWidth
	if m.Width < SideCartWidth {
		panelWidth = m.Width
	}
	panel := CartPanel{
		Items:   m.State.Cart.Items(),
		Total:   m.State.Cart.Total().String(),
		Cursor:  m.CartCursor,
		Focused: m.Focus == FocusCart,
		Width:   panelWidth,
	}.View()

	if m.Width < SideCartWidth {
		return lipgloss.JoinVertical(lipgloss.Left, grid, "", panel)
	}
	grid = lipgloss.NewStyle().Width(gridWidth(m.Width)).Render(grid)
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, panel)
}
