package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/stayprice/internal/api"
	"github.com/jask/stayprice/internal/config"
	"github.com/jask/stayprice/internal/database/repository"
	"github.com/jask/stayprice/internal/service"
	"github.com/jask/stayprice/internal/session"
)

// App ties together the session, the controllers and the views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	sess     *session.Session
	client   api.Service
	services Services

	state       appState
	fieldCursor int

	modal        modalState
	editingField fieldID
	inputBuffer  string

	health        *api.HealthResponse
	healthLoading bool
	healthErr     string

	recLoading  bool
	bookLoading bool

	historyRows []repository.HistoryEntry

	status   string
	currency string
}

// Services are the controllers driven by the app.
type Services struct {
	Recommender *service.Recommender
	Simulator   *service.Simulator
	History     *service.HistoryService
}

type appState string

const (
	viewRecommend appState = "recommend"
	viewHistory   appState = "history"
	viewSettings  appState = "settings"
)

type modalState string

const (
	modalNone         modalState = ""
	modalEditField    modalState = "editField"
	modalEditBaseURL  modalState = "editBaseURL"
	modalConfirmClear modalState = "confirmClear"
)

type fieldID string

const (
	fieldRowIndex     fieldID = "rowIndex"
	fieldRoomType     fieldID = "roomType"
	fieldPropertyType fieldID = "propertyType"
	fieldAccommodates fieldID = "accommodates"
	fieldBathrooms    fieldID = "bathrooms"
	fieldAmenities    fieldID = "amenities"
	fieldMinNights    fieldID = "minimumNights"
	fieldInstant      fieldID = "instantBookable"
	fieldSuperhost    fieldID = "superhost"
	fieldRating       fieldID = "rating"
	fieldReviews      fieldID = "reviews"
	fieldLatitude     fieldID = "latitude"
	fieldLongitude    fieldID = "longitude"
	fieldWeekend      fieldID = "weekend"
	fieldHoliday      fieldID = "holiday"
	fieldStartDate    fieldID = "startDate"
	fieldBasePrice    fieldID = "basePrice"
)

// fieldDef describes one focusable row of the recommend view.
type fieldDef struct {
	id    fieldID
	label string
	flag  bool
}

func New(ctx context.Context, cfg config.Config, sess *session.Session, client api.Service, services Services) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		sess:     sess,
		client:   client,
		services: services,
		state:    viewRecommend,
		currency: cfg.UI.CurrencySymbol,
	}
}

func (a *App) Init() tea.Cmd {
	return a.healthCmd()
}

// fields returns the focusable rows for the active pipeline. The shared
// flags and the booking inputs are present in both.
func (a *App) fields() []fieldDef {
	common := []fieldDef{
		{fieldWeekend, "Weekend uplift", true},
		{fieldHoliday, "Holiday uplift", true},
		{fieldStartDate, "Start date", false},
		{fieldBasePrice, "Base price", false},
	}
	if a.sess.Mode == session.ModeByIndex {
		return append([]fieldDef{{fieldRowIndex, "Row index", false}}, common...)
	}
	return append([]fieldDef{
		{fieldRoomType, "Room type", false},
		{fieldPropertyType, "Property type", false},
		{fieldAccommodates, "Accommodates", false},
		{fieldBathrooms, "Bathrooms", false},
		{fieldAmenities, "Amenities (comma-separated)", false},
		{fieldMinNights, "Minimum nights", false},
		{fieldInstant, "Instant bookable", true},
		{fieldSuperhost, "Superhost", true},
		{fieldRating, "Rating", false},
		{fieldReviews, "Number of reviews", false},
		{fieldLatitude, "Latitude", false},
		{fieldLongitude, "Longitude", false},
	}, common...)
}

func (a *App) fieldValue(id fieldID) string {
	f := &a.sess.Features
	switch id {
	case fieldRowIndex:
		return a.sess.RowIndex
	case fieldRoomType:
		return f.RoomType
	case fieldPropertyType:
		return f.PropertyType
	case fieldAccommodates:
		return f.Accommodates
	case fieldBathrooms:
		return f.Bathrooms
	case fieldAmenities:
		return f.Amenities
	case fieldMinNights:
		return f.MinimumNights
	case fieldRating:
		return f.Rating
	case fieldReviews:
		return f.Reviews
	case fieldLatitude:
		return f.Latitude
	case fieldLongitude:
		return f.Longitude
	case fieldStartDate:
		return a.sess.StartDate
	case fieldBasePrice:
		return a.sess.BasePrice
	}
	return ""
}

func (a *App) setFieldValue(id fieldID, v string) {
	f := &a.sess.Features
	switch id {
	case fieldRowIndex:
		a.sess.RowIndex = v
	case fieldRoomType:
		f.RoomType = v
	case fieldPropertyType:
		f.PropertyType = v
	case fieldAccommodates:
		f.Accommodates = v
	case fieldBathrooms:
		f.Bathrooms = v
	case fieldAmenities:
		f.Amenities = v
	case fieldMinNights:
		f.MinimumNights = v
	case fieldRating:
		f.Rating = v
	case fieldReviews:
		f.Reviews = v
	case fieldLatitude:
		f.Latitude = v
	case fieldLongitude:
		f.Longitude = v
	case fieldStartDate:
		a.sess.StartDate = v
	case fieldBasePrice:
		a.sess.BasePrice = v
	}
}

func (a *App) flagValue(id fieldID) bool {
	switch id {
	case fieldWeekend:
		return a.sess.Weekend
	case fieldHoliday:
		return a.sess.Holiday
	case fieldInstant:
		return a.sess.Features.InstantBookable
	case fieldSuperhost:
		return a.sess.Features.Superhost
	}
	return false
}

func (a *App) toggleFlag(id fieldID) {
	switch id {
	case fieldWeekend:
		a.sess.Weekend = !a.sess.Weekend
	case fieldHoliday:
		a.sess.Holiday = !a.sess.Holiday
	case fieldInstant:
		a.sess.Features.InstantBookable = !a.sess.Features.InstantBookable
	case fieldSuperhost:
		a.sess.Features.Superhost = !a.sess.Features.Superhost
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewHistory:
			return a.handleHistoryKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		}
		return a.handleRecommendKey(m)

	case healthMsg:
		a.healthLoading = false
		if m.err != nil {
			a.health = nil
			a.healthErr = m.err.Error()
			return a, nil
		}
		h := m.health
		a.health = &h
		a.healthErr = ""

	case recommendMsg:
		if !a.sess.CurrentRecommend(m.gen) {
			// a newer request is in flight; keep waiting for it
			return a, nil
		}
		a.recLoading = false
		if m.err != nil {
			a.sess.FailRecommendation(m.err)
			return a, nil
		}
		a.sess.ApplyRecommendation(m.mode, m.rec)
		a.status = fmt.Sprintf("recommended %s for the %s", fmtMoney(a.currency, m.rec.FinalPrice), m.mode.Label())
		return a, a.recordRecommendationCmd(m.mode, m.rec)

	case bookingMsg:
		if !a.sess.CurrentBooking(m.gen) {
			return a, nil
		}
		a.bookLoading = false
		if m.err != nil {
			a.sess.FailBooking(m.err)
			return a, nil
		}
		a.sess.ApplyBookingWeek(m.week)
		a.status = fmt.Sprintf("simulated %d nights", len(m.week.Results))
		return a, a.recordBookingCmd(m.mode, m.week)

	case historyMsg:
		if m.err != nil {
			a.status = "history: " + m.err.Error()
			return a, nil
		}
		a.historyRows = m.rows

	case statusMsg:
		a.status = string(m)
	}
	return a, nil
}

func (a *App) handleRecommendKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := a.fields()
	// a cross-pipeline pin can shrink the field list under the cursor
	if a.fieldCursor >= len(fields) {
		a.fieldCursor = len(fields) - 1
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		if a.sess.Mode == session.ModeByIndex {
			a.sess.SetMode(session.ModeByFeatures)
		} else {
			a.sess.SetMode(session.ModeByIndex)
		}
		a.fieldCursor = 0
	case "up", "k":
		if a.fieldCursor > 0 {
			a.fieldCursor--
		}
	case "down", "j":
		if a.fieldCursor < len(fields)-1 {
			a.fieldCursor++
		}
	case "enter":
		field := fields[a.fieldCursor]
		if field.flag {
			a.toggleFlag(field.id)
			return a, nil
		}
		a.modal = modalEditField
		a.editingField = field.id
		a.inputBuffer = a.fieldValue(field.id)
	case "g":
		a.status = "predicting..."
		return a, a.recommendCmd()
	case "s":
		a.status = "simulating..."
		return a, a.simulateCmd()
	case "c":
		return a, a.healthCmd()
	case "y":
		a.state = viewHistory
		a.status = ""
		return a, a.loadHistoryCmd()
	case "p":
		a.state = viewSettings
		a.status = ""
	}
	return a, nil
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "d":
		a.state = viewRecommend
		a.status = ""
	case "r":
		return a, a.loadHistoryCmd()
	case "x":
		a.modal = modalConfirmClear
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "d":
		a.state = viewRecommend
		a.status = ""
	case "e":
		a.modal = modalEditBaseURL
		a.inputBuffer = a.cfg.API.BaseURL
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalConfirmClear {
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.clearHistoryCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	}

	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		a.inputBuffer = ""
	case tea.KeyEnter:
		text := strings.TrimSpace(a.inputBuffer)
		mode := a.modal
		a.modal = modalNone
		a.inputBuffer = ""
		switch mode {
		case modalEditField:
			a.setFieldValue(a.editingField, text)
			if a.editingField == fieldRoomType {
				if hint := session.RoomTypeHint(text); hint != "" {
					a.status = fmt.Sprintf("unknown room type; did you mean %q?", hint)
				}
			}
		case modalEditBaseURL:
			if text == "" {
				a.status = "enter a base URL"
				return a, nil
			}
			a.cfg.API.BaseURL = text
			if c, ok := a.client.(interface{ SetBaseURL(string) }); ok {
				c.SetBaseURL(text)
			}
			return a, a.saveConfigCmd()
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
	case tea.KeySpace:
		a.inputBuffer += " "
	case tea.KeyRunes:
		a.inputBuffer += string(m.Runes)
	}
	return a, nil
}

// commands
func (a *App) healthCmd() tea.Cmd {
	a.healthErr = ""
	a.healthLoading = true
	return func() tea.Msg {
		h, err := a.client.Health(a.ctx)
		return healthMsg{health: h, err: err}
	}
}

func (a *App) recommendCmd() tea.Cmd {
	mode := a.sess.Mode
	gen := a.sess.BeginRecommend()
	// snapshot so edits made while the request is in flight stay out of it
	snap := *a.sess
	a.recLoading = true
	return func() tea.Msg {
		rec, err := a.services.Recommender.Recommend(a.ctx, mode, &snap)
		return recommendMsg{gen: gen, mode: mode, rec: rec, err: err}
	}
}

func (a *App) simulateCmd() tea.Cmd {
	mode := a.sess.Mode
	gen := a.sess.BeginBooking()
	snap := *a.sess
	a.bookLoading = true
	return func() tea.Msg {
		week, err := a.services.Simulator.Week(a.ctx, &snap)
		return bookingMsg{gen: gen, mode: mode, week: week, err: err}
	}
}

func (a *App) recordRecommendationCmd(mode session.Mode, rec api.Recommendation) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.History.RecordRecommendation(a.ctx, mode, rec); err != nil {
			return statusMsg("history: " + err.Error())
		}
		return nil
	}
}

func (a *App) recordBookingCmd(mode session.Mode, week api.BookingWeek) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.History.RecordBookingWeek(a.ctx, mode, week); err != nil {
			return statusMsg("history: " + err.Error())
		}
		return nil
	}
}

func (a *App) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.services.History.Recent(a.ctx, 50)
		return historyMsg{rows: rows, err: err}
	}
}

func (a *App) clearHistoryCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.History.Clear(a.ctx); err != nil {
				return statusMsg("history: " + err.Error())
			}
			return statusMsg("history cleared")
		},
		a.loadHistoryCmd(),
	)
}

func (a *App) saveConfigCmd() tea.Cmd {
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return statusMsg("save config: " + err.Error())
		}
		return statusMsg("base URL saved")
	}
}

// messages
type healthMsg struct {
	health api.HealthResponse
	err    error
}

type recommendMsg struct {
	gen  uint64
	mode session.Mode
	rec  api.Recommendation
	err  error
}

type bookingMsg struct {
	gen  uint64
	mode session.Mode
	week api.BookingWeek
	err  error
}

type historyMsg struct {
	rows []repository.HistoryEntry
	err  error
}

type statusMsg string
