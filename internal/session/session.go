// Package session holds the per-run state machine: which input pipeline is
// active, the raw form fields, and the results produced by the two
// controllers. Nothing here survives a restart.
package session

import (
	"math"
	"strconv"
	"time"

	"github.com/jask/stayprice/internal/api"
)

// Mode selects which input pipeline governs recommendation and simulation
// requests.
type Mode string

const (
	ModeByIndex    Mode = "by_index"
	ModeByFeatures Mode = "by_features"
)

// Label returns the user-facing name of the mode.
func (m Mode) Label() string {
	if m == ModeByFeatures {
		return "custom listing"
	}
	return "example listing"
}

// FeatureForm carries the raw feature inputs as entered. Coercion to typed
// request fields happens at submission time, never per keystroke.
type FeatureForm struct {
	RoomType        string
	PropertyType    string
	Accommodates    string
	Bathrooms       string
	Amenities       string
	MinimumNights   string
	InstantBookable bool
	Superhost       bool
	Rating          string
	Reviews         string
	Latitude        string
	Longitude       string
}

// Session is the single mutable state of one app run. All mutation happens on
// the update loop, one completed request at a time.
type Session struct {
	Mode     Mode
	Weekend  bool
	Holiday  bool
	RowIndex string
	Features FeatureForm

	Recommendation *api.Recommendation
	RecommendError string

	// BasePrice is seeded from each successful recommendation, then left to
	// the operator until the next one.
	BasePrice string
	StartDate string

	BookingWeek  *api.BookingWeek
	BookingError string

	recGen  uint64
	bookGen uint64
}

// New creates a session with the standard defaults and today's start date.
func New(now time.Time) *Session {
	return &Session{
		Mode:     ModeByIndex,
		RowIndex: "0",
		Features: FeatureForm{
			RoomType:      "Entire home/apt",
			PropertyType:  "House",
			Accommodates:  "2",
			Bathrooms:     "1",
			Amenities:     "Wifi,Kitchen,Heating",
			MinimumNights: "1",
			Rating:        "4.8",
			Reviews:       "10",
		},
		StartDate: now.Format("2006-01-02"),
	}
}

// SetMode switches the active input pipeline. Switching alone triggers no
// request and clears nothing: the last results stay visible until replaced.
func (s *Session) SetMode(m Mode) { s.Mode = m }

// BeginRecommend hands out the generation for a new recommendation request.
// A response carrying an older generation is stale and must be discarded.
func (s *Session) BeginRecommend() uint64 {
	s.recGen++
	return s.recGen
}

// CurrentRecommend reports whether gen is the latest recommendation request.
func (s *Session) CurrentRecommend(gen uint64) bool { return gen == s.recGen }

// BeginBooking hands out the generation for a new simulation request.
func (s *Session) BeginBooking() uint64 {
	s.bookGen++
	return s.bookGen
}

// CurrentBooking reports whether gen is the latest simulation request.
func (s *Session) CurrentBooking(gen uint64) bool { return gen == s.bookGen }

// ApplyRecommendation stores a successful recommendation: the mode that
// produced it is pinned, the base price is seeded to the rounded final price,
// and any booking week tied to the previous recommendation is dropped along
// with its error.
func (s *Session) ApplyRecommendation(m Mode, rec api.Recommendation) {
	s.Recommendation = &rec
	s.RecommendError = ""
	s.Mode = m
	s.BasePrice = strconv.Itoa(int(math.Round(rec.FinalPrice)))
	s.BookingWeek = nil
	s.BookingError = ""
}

// FailRecommendation records the error and nothing else; a prior result
// stays visible until superseded.
func (s *Session) FailRecommendation(err error) {
	s.RecommendError = err.Error()
}

// ApplyBookingWeek stores a successful simulation.
func (s *Session) ApplyBookingWeek(week api.BookingWeek) {
	s.BookingWeek = &week
	s.BookingError = ""
}

// FailBooking records the error; a prior booking week stays visible.
func (s *Session) FailBooking(err error) {
	s.BookingError = err.Error()
}
