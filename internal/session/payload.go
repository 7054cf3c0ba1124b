package session

import (
	"strings"

	"github.com/jask/stayprice/internal/api"
)

// Payload assembly. Every builder validates its inputs and fails before any
// request is sent; a returned error is a local validation error.

// RecommendByIndexRequest builds the identifier-pipeline recommendation
// payload.
func (s *Session) RecommendByIndexRequest() (api.RecommendByIndexRequest, error) {
	idx, err := RequiredNonNegativeInt("row index", s.RowIndex)
	if err != nil {
		return api.RecommendByIndexRequest{}, err
	}
	return api.RecommendByIndexRequest{
		RowIndex:    idx,
		WeekendFlag: s.Weekend,
		HolidayFlag: s.Holiday,
	}, nil
}

// RecommendFromFeaturesRequest builds the feature-pipeline recommendation
// payload. A blank accommodates is rejected here, never sent as null;
// minimum nights defaults to 1 when blank.
func (s *Session) RecommendFromFeaturesRequest() (api.RecommendFromFeaturesRequest, error) {
	f := s.Features

	accommodates, err := RequiredPositiveInt("accommodates", f.Accommodates)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}
	nights, err := PositiveIntOrDefault("minimum nights", f.MinimumNights, 1)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}
	bathrooms, err := OptionalFloat("bathrooms", f.Bathrooms)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}
	rating, err := OptionalFloat("rating", f.Rating)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}
	reviews, err := OptionalInt("number of reviews", f.Reviews)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}
	lat, err := OptionalFloat("latitude", f.Latitude)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}
	lon, err := OptionalFloat("longitude", f.Longitude)
	if err != nil {
		return api.RecommendFromFeaturesRequest{}, err
	}

	return api.RecommendFromFeaturesRequest{
		RoomType:           strings.TrimSpace(f.RoomType),
		PropertyType:       OptionalString(f.PropertyType),
		Accommodates:       accommodates,
		Bathrooms:          bathrooms,
		Amenities:          OptionalString(f.Amenities),
		MinimumNights:      nights,
		InstantBookable:    f.InstantBookable,
		ReviewScoresRating: rating,
		NumberOfReviews:    reviews,
		HostIsSuperhost:    f.Superhost,
		Latitude:           lat,
		Longitude:          lon,
		WeekendFlag:        s.Weekend,
		HolidayFlag:        s.Holiday,
	}, nil
}

// bookingBasics validates the two fields every simulation needs.
func (s *Session) bookingBasics() (float64, string, error) {
	price, err := RequiredFloat("base price", s.BasePrice)
	if err != nil {
		return 0, "", err
	}
	date, err := RequiredDate("start date", s.StartDate)
	if err != nil {
		return 0, "", err
	}
	return price, date, nil
}

// BookingByIndexRequest builds the identifier-pipeline simulation payload.
func (s *Session) BookingByIndexRequest() (api.BookingWeekByIndexRequest, error) {
	price, date, err := s.bookingBasics()
	if err != nil {
		return api.BookingWeekByIndexRequest{}, err
	}
	idx, err := RequiredNonNegativeInt("row index", s.RowIndex)
	if err != nil {
		return api.BookingWeekByIndexRequest{}, err
	}
	return api.BookingWeekByIndexRequest{
		RowIndex:  idx,
		StartDate: date,
		BasePrice: price,
	}, nil
}

// BookingFromFeaturesRequest builds the feature-pipeline simulation payload:
// the full feature record plus start date and base price.
func (s *Session) BookingFromFeaturesRequest() (api.BookingWeekFromFeaturesRequest, error) {
	price, date, err := s.bookingBasics()
	if err != nil {
		return api.BookingWeekFromFeaturesRequest{}, err
	}
	features, err := s.RecommendFromFeaturesRequest()
	if err != nil {
		return api.BookingWeekFromFeaturesRequest{}, err
	}
	return api.BookingWeekFromFeaturesRequest{
		RecommendFromFeaturesRequest: features,
		StartDate:                    date,
		BasePrice:                    price,
	}, nil
}
