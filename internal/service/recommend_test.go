package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/stayprice/internal/api"
	"github.com/jask/stayprice/internal/session"
)

// fakeAPI records calls so tests can assert that validation failures issue
// no request at all.
type fakeAPI struct {
	calls []string

	rec    api.Recommendation
	recErr error
	week   api.BookingWeek
	wkErr  error

	lastByIndex      api.RecommendByIndexRequest
	lastFeatures     api.RecommendFromFeaturesRequest
	lastBookIndex    api.BookingWeekByIndexRequest
	lastBookFeatures api.BookingWeekFromFeaturesRequest
}

func (f *fakeAPI) Health(ctx context.Context) (api.HealthResponse, error) {
	f.calls = append(f.calls, "health")
	return api.HealthResponse{Status: "ok"}, nil
}

func (f *fakeAPI) RecommendByIndex(ctx context.Context, req api.RecommendByIndexRequest) (api.Recommendation, error) {
	f.calls = append(f.calls, "recommend_by_index")
	f.lastByIndex = req
	return f.rec, f.recErr
}

func (f *fakeAPI) RecommendFromFeatures(ctx context.Context, req api.RecommendFromFeaturesRequest) (api.Recommendation, error) {
	f.calls = append(f.calls, "recommend_from_features")
	f.lastFeatures = req
	return f.rec, f.recErr
}

func (f *fakeAPI) BookingWeekByIndex(ctx context.Context, req api.BookingWeekByIndexRequest) (api.BookingWeek, error) {
	f.calls = append(f.calls, "booking_week_by_index")
	f.lastBookIndex = req
	return f.week, f.wkErr
}

func (f *fakeAPI) BookingWeekFromFeatures(ctx context.Context, req api.BookingWeekFromFeaturesRequest) (api.BookingWeek, error) {
	f.calls = append(f.calls, "booking_week_from_features")
	f.lastBookFeatures = req
	return f.week, f.wkErr
}

func TestRecommenderByIndex(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{rec: api.Recommendation{RowIndex: 5, FinalPrice: 132.7}}
	r := &Recommender{API: fake}

	s := session.New(time.Now())
	s.RowIndex = "5"
	s.Weekend = true

	rec, err := r.ByIndex(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, 132.7, rec.FinalPrice)
	require.Equal(t, []string{"recommend_by_index"}, fake.calls)
	require.Equal(t, api.RecommendByIndexRequest{RowIndex: 5, WeekendFlag: true}, fake.lastByIndex)
}

func TestRecommenderValidationIssuesNoRequest(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	r := &Recommender{API: fake}

	s := session.New(time.Now())
	s.RowIndex = "not a number"
	_, err := r.ByIndex(context.Background(), s)
	require.EqualError(t, err, "row index must be a whole number")

	s.Features.Accommodates = ""
	_, err = r.FromFeatures(context.Background(), s)
	require.EqualError(t, err, "accommodates is required")

	require.Empty(t, fake.calls, "validation failures must not reach the transport")
}

func TestRecommenderDispatch(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	r := &Recommender{API: fake}
	s := session.New(time.Now())

	_, err := r.Recommend(context.Background(), session.ModeByFeatures, s)
	require.NoError(t, err)
	require.Equal(t, []string{"recommend_from_features"}, fake.calls)
	require.Equal(t, "Entire home/apt", fake.lastFeatures.RoomType)
	require.Equal(t, 2, fake.lastFeatures.Accommodates)
}

func TestSimulatorFollowsActiveMode(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{week: api.BookingWeek{BasePrice: 133}}
	sim := &Simulator{API: fake}

	s := session.New(time.Now())
	s.RowIndex = "5"
	s.StartDate = "2024-06-01"
	s.ApplyRecommendation(session.ModeByIndex, api.Recommendation{RowIndex: 5, FinalPrice: 132.7})

	week, err := sim.Week(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, float64(133), week.BasePrice)
	require.Equal(t, []string{"booking_week_by_index"}, fake.calls)
	require.Equal(t, api.BookingWeekByIndexRequest{
		RowIndex:  5,
		StartDate: "2024-06-01",
		BasePrice: 133,
	}, fake.lastBookIndex)

	// switching pipelines redirects the next simulation, even without a new
	// recommendation
	s.SetMode(session.ModeByFeatures)
	_, err = sim.Week(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, "booking_week_from_features", fake.calls[len(fake.calls)-1])
	require.Equal(t, "2024-06-01", fake.lastBookFeatures.StartDate)
	require.Equal(t, float64(133), fake.lastBookFeatures.BasePrice)
	require.Equal(t, "Entire home/apt", fake.lastBookFeatures.RoomType)
}

func TestSimulatorRejectsBlankBasePrice(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	sim := &Simulator{API: fake}

	s := session.New(time.Now())
	s.BasePrice = ""
	_, err := sim.Week(context.Background(), s)
	require.EqualError(t, err, "base price is required")
	require.Empty(t, fake.calls)
}

func TestSimulatorSurfacesTransportError(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{wkErr: errors.New("request failed (500)")}
	sim := &Simulator{API: fake}

	s := session.New(time.Now())
	s.BasePrice = "120"
	_, err := sim.Week(context.Background(), s)
	require.EqualError(t, err, "request failed (500)")
}
