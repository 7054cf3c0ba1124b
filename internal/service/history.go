package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/stayprice/internal/api"
	"github.com/jask/stayprice/internal/database"
	"github.com/jask/stayprice/internal/database/repository"
	"github.com/jask/stayprice/internal/session"
)

// HistoryService appends produced results to the local audit log. Recording
// is best-effort: a failure surfaces in the status line and never blocks or
// clears the result it describes.
type HistoryService struct {
	History *repository.HistoryRepo
}

// RecordRecommendation logs a successful recommendation.
func (h *HistoryService) RecordRecommendation(ctx context.Context, mode session.Mode, rec api.Recommendation) error {
	if h == nil || h.History == nil {
		return nil
	}
	return h.History.Add(ctx, repository.HistoryEntry{
		ID:        uuid.NewString(),
		Kind:      "recommendation",
		Mode:      string(mode),
		Summary:   recommendationSummary(mode, rec),
		Price:     rec.FinalPrice,
		CreatedAt: database.Now(),
	})
}

// RecordBookingWeek logs a successful simulation.
func (h *HistoryService) RecordBookingWeek(ctx context.Context, mode session.Mode, week api.BookingWeek) error {
	if h == nil || h.History == nil {
		return nil
	}
	summary := fmt.Sprintf("%d nights from base price %.0f", len(week.Results), week.BasePrice)
	if len(week.Results) > 0 {
		summary = fmt.Sprintf("%s starting %s", summary, week.Results[0].Date)
	}
	return h.History.Add(ctx, repository.HistoryEntry{
		ID:        uuid.NewString(),
		Kind:      "booking_week",
		Mode:      string(mode),
		Summary:   summary,
		Price:     week.BasePrice,
		CreatedAt: database.Now(),
	})
}

// Recent returns the newest entries for the history view.
func (h *HistoryService) Recent(ctx context.Context, limit int) ([]repository.HistoryEntry, error) {
	if h == nil || h.History == nil {
		return nil, nil
	}
	return h.History.ListRecent(ctx, limit)
}

// Clear wipes the audit log.
func (h *HistoryService) Clear(ctx context.Context) error {
	if h == nil || h.History == nil {
		return nil
	}
	return h.History.Clear(ctx)
}

func recommendationSummary(mode session.Mode, rec api.Recommendation) string {
	if mode == session.ModeByIndex {
		s := fmt.Sprintf("row %d", rec.RowIndex)
		if rec.Neighbourhood != nil && *rec.Neighbourhood != "" {
			s += ", " + *rec.Neighbourhood
		}
		if rec.City != nil && *rec.City != "" {
			s += ", " + *rec.City
		}
		return s
	}
	return "custom feature set"
}
