package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewHistory:
		body = a.renderHistory()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderRecommend()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderRecommend() string {
	title := titleStyle.Render("StayPrice - " + a.sess.Mode.Label())
	out := title + "\n" + a.renderHealthLine() + "\n\n"

	for i, f := range a.fields() {
		marker := " "
		if i == a.fieldCursor {
			marker = "▶"
		}
		if f.flag {
			out += fmt.Sprintf("%s %-28s [%s]\n", marker, f.label, checkbox(a.flagValue(f.id)))
			continue
		}
		val := a.fieldValue(f.id)
		if val == "" {
			val = "<empty>"
		}
		out += fmt.Sprintf("%s %-28s %s\n", marker, f.label, val)
	}

	out += "\n" + a.renderRecommendation()
	out += a.renderBookingWeek()

	out += "\n[tab] Switch pipeline  [enter] Edit/Toggle  [g] Recommend  [s] Simulate week  [c] Check service  [y] History  [p] Settings  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderHealthLine() string {
	switch {
	case a.healthLoading:
		return "Service: checking..."
	case a.healthErr != "":
		return "Service: unreachable (" + a.healthErr + ")"
	case a.health != nil:
		booking := "no booking model"
		if a.health.BookingModelLoaded {
			booking = "booking model loaded"
		}
		return fmt.Sprintf("Service: %s  %d rows  %s", a.health.Status, a.health.NRows, booking)
	}
	return "Service: unknown"
}

func (a *App) renderRecommendation() string {
	if a.recLoading {
		return "Recommendation: predicting...\n"
	}
	out := ""
	if a.sess.RecommendError != "" {
		out += "Recommendation error: " + a.sess.RecommendError + "\n"
	}
	rec := a.sess.Recommendation
	if rec == nil {
		if out == "" {
			out = "No recommendation yet. Press [g].\n"
		}
		return out
	}
	out += fmt.Sprintf("Recommended price: %s  (peer median %s, regression %s)\n",
		fmtMoney(a.currency, rec.FinalPrice), fmtMoney(a.currency, rec.PeerMedianPrice), fmtMoney(a.currency, rec.RegressionPrice))
	detail := fmt.Sprintf("Row %d", rec.RowIndex)
	if rec.Neighbourhood != nil {
		detail += "  " + *rec.Neighbourhood
	}
	if rec.City != nil {
		detail += ", " + *rec.City
	}
	if rec.PriceBucketStatic != nil {
		detail += "  [" + *rec.PriceBucketStatic + "]"
	}
	return out + detail + "\n"
}

func (a *App) renderBookingWeek() string {
	if a.bookLoading {
		return "Booking week: simulating...\n"
	}
	out := ""
	if a.sess.BookingError != "" {
		out += "Simulation error: " + a.sess.BookingError + "\n"
	}
	week := a.sess.BookingWeek
	if week == nil {
		return out
	}
	out += fmt.Sprintf("Week from base price %s:\n", fmtMoney(a.currency, week.BasePrice))
	for _, d := range week.Results {
		out += fmt.Sprintf("  %s  %8s  booked %s  vacant %s\n",
			d.Date, fmtMoney(a.currency, d.EffectivePrice), fmtPct(d.ProbBookedPct), fmtPct(d.ProbVacantPct))
	}
	return out
}

func (a *App) renderHistory() string {
	title := titleStyle.Render("History")
	out := title + "\n"
	if len(a.historyRows) == 0 {
		out += "No history yet.\n"
	}
	for _, e := range a.historyRows {
		kind := "price"
		if e.Kind == "booking_week" {
			kind = "week"
		}
		out += fmt.Sprintf("%s  %-5s  %-12s  %8s  %s\n",
			e.CreatedAt.Format(a.cfg.UI.DateFormat+" 15:04"), kind, e.Mode, fmtMoney(a.currency, e.Price), e.Summary)
	}
	out += "[r] Refresh  [x] Clear  [d] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	out += fmt.Sprintf("Prediction service: %s\n", a.cfg.API.BaseURL)
	out += fmt.Sprintf("Request timeout:    %ds\n", a.cfg.API.TimeoutSeconds)
	out += fmt.Sprintf("Database:           %s\n", a.cfg.Database.Path)
	out += "[e] Edit service URL  [d] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmClear:
		return titleStyle.Render("Clear history?") + "\nThis will delete all recorded results.\n[y] Yes  [n] No"
	case modalEditBaseURL:
		return titleStyle.Render("Prediction service URL (stored in config.toml)") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalEditField:
		label := string(a.editingField)
		for _, f := range a.fields() {
			if f.id == a.editingField {
				label = f.label
			}
		}
		return titleStyle.Render("Edit "+label) + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "x"
	}
	return " "
}

func fmtMoney(currency string, n float64) string {
	return fmt.Sprintf("%s%.0f", currency, n)
}

func fmtPct(n float64) string {
	return fmt.Sprintf("%.1f%%", n)
}
