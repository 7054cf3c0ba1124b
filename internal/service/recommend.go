// Package service holds the two request controllers. They orchestrate
// validation, payload assembly and the transport call; applying results to
// the session is the caller's job so that all state mutation stays on the
// update loop.
package service

import (
	"context"
	"fmt"

	"github.com/jask/stayprice/internal/api"
	"github.com/jask/stayprice/internal/session"
)

// Recommender drives the two mutually exclusive recommendation pipelines.
type Recommender struct {
	API api.Service
}

// ByIndex requests a recommendation for the session's row index. A
// validation failure returns before any request is issued.
func (r *Recommender) ByIndex(ctx context.Context, s *session.Session) (api.Recommendation, error) {
	req, err := s.RecommendByIndexRequest()
	if err != nil {
		return api.Recommendation{}, err
	}
	return r.API.RecommendByIndex(ctx, req)
}

// FromFeatures requests a recommendation for the session's feature record.
func (r *Recommender) FromFeatures(ctx context.Context, s *session.Session) (api.Recommendation, error) {
	req, err := s.RecommendFromFeaturesRequest()
	if err != nil {
		return api.Recommendation{}, err
	}
	return r.API.RecommendFromFeatures(ctx, req)
}

// Recommend dispatches to the pipeline selected by mode.
func (r *Recommender) Recommend(ctx context.Context, mode session.Mode, s *session.Session) (api.Recommendation, error) {
	switch mode {
	case session.ModeByIndex:
		return r.ByIndex(ctx, s)
	case session.ModeByFeatures:
		return r.FromFeatures(ctx, s)
	default:
		return api.Recommendation{}, fmt.Errorf("unknown mode %q", mode)
	}
}

// Simulator drives the booking-week simulation. It dispatches on the
// session's active mode, so the listing being simulated is whichever
// pipeline currently governs the form.
type Simulator struct {
	API api.Service
}

// Week simulates 7 days for the session's base price and start date.
// Both are validated before any request is issued.
func (s *Simulator) Week(ctx context.Context, sess *session.Session) (api.BookingWeek, error) {
	switch sess.Mode {
	case session.ModeByIndex:
		req, err := sess.BookingByIndexRequest()
		if err != nil {
			return api.BookingWeek{}, err
		}
		return s.API.BookingWeekByIndex(ctx, req)
	case session.ModeByFeatures:
		req, err := sess.BookingFromFeaturesRequest()
		if err != nil {
			return api.BookingWeek{}, err
		}
		return s.API.BookingWeekFromFeatures(ctx, req)
	default:
		return api.BookingWeek{}, fmt.Errorf("unknown mode %q", sess.Mode)
	}
}
