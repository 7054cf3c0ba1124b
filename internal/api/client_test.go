package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/health", r.URL.Path)
		fmt.Fprint(w, `{"status":"ok","n_rows":6110,"booking_model_loaded":true}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	h, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", h.Status)
	require.Equal(t, 6110, h.NRows)
	require.True(t, h.BookingModelLoaded)
}

func TestRecommendByIndexSendsFlags(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommend_by_index", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, float64(5), body["row_index"])
		require.Equal(t, true, body["weekend_flag"])
		require.Equal(t, false, body["holiday_flag"])
		fmt.Fprint(w, `{"row_index":5,"city":"Seattle","peer_median_price":120,"regression_price":128.4,"final_price":132.7}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	rec, err := client.RecommendByIndex(context.Background(), RecommendByIndexRequest{
		RowIndex:    5,
		WeekendFlag: true,
	})
	require.NoError(t, err)
	require.Equal(t, 5, rec.RowIndex)
	require.Equal(t, 132.7, rec.FinalPrice)
	require.NotNil(t, rec.City)
	require.Equal(t, "Seattle", *rec.City)
	require.Nil(t, rec.Neighbourhood)
}

func TestRecommendFromFeaturesNullsBlankOptionals(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommend_from_features", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Private room", body["room_type"])
		require.Nil(t, body["property_type"])
		require.Nil(t, body["bathrooms"])
		require.Nil(t, body["latitude"])
		require.Equal(t, float64(2), body["accommodates"])
		fmt.Fprint(w, `{"row_index":-1,"peer_median_price":90,"regression_price":95,"final_price":97.2}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	rec, err := client.RecommendFromFeatures(context.Background(), RecommendFromFeaturesRequest{
		RoomType:      "Private room",
		Accommodates:  2,
		MinimumNights: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 97.2, rec.FinalPrice)
}

func TestBookingWeekFromFeaturesFlattensFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/booking_week_from_features", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// feature fields sit at the top level beside booking params
		require.Equal(t, "Entire home/apt", body["room_type"])
		require.Equal(t, "2024-06-01", body["start_date"])
		require.Equal(t, float64(133), body["base_price"])
		fmt.Fprint(w, `{"row_index":-1,"base_price":133,"results":[{"date":"2024-06-01","effective_price":139.65,"prob_booked_pct":61.2,"prob_vacant_pct":38.8}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	week, err := client.BookingWeekFromFeatures(context.Background(), BookingWeekFromFeaturesRequest{
		RecommendFromFeaturesRequest: RecommendFromFeaturesRequest{
			RoomType:      "Entire home/apt",
			Accommodates:  2,
			MinimumNights: 1,
		},
		StartDate: "2024-06-01",
		BasePrice: 133,
	})
	require.NoError(t, err)
	require.Len(t, week.Results, 1)
	require.Equal(t, 61.2, week.Results[0].ProbBookedPct)
}

func TestStatusErrorPrefersDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":"row_index out of range"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.RecommendByIndex(context.Background(), RecommendByIndexRequest{RowIndex: 99999})
	require.EqualError(t, err, "row_index out of range")
}

func TestStatusErrorFallsBackToMessageThenGeneric(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"message":"upstream model unavailable"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Health(context.Background())
	require.EqualError(t, err, "upstream model unavailable")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer empty.Close()

	client = NewClient(empty.URL, time.Second)
	_, err = client.Health(context.Background())
	require.EqualError(t, err, "request failed (500)")
}

func TestEmptySuccessBodyTreatedAsNull(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	h, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, HealthResponse{}, h)
}

func TestMalformedJSONIsAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok"`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Health(context.Background())
	require.ErrorContains(t, err, "parse response")
}
