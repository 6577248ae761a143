//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	resdto "shareit/internal/handler/dto/response"
	"shareit/tests/common/authtest"
	"shareit/tests/common/builder"
	"shareit/tests/common/dbtest"
	"shareit/tests/common/httptest"
	"shareit/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/bookings"
	bookingURL       = "/bookings/%d"
	decideURL        = "/bookings/%d?approved=%t"
	ownerBookingsURL = "/bookings/owner?state=%s"
	myBookingsURL    = "/bookings?state=%s"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type parties struct {
	owner, renter, itemID int64
}

func (s *BookingSuite) seed(t *testing.T) parties {
	t.Helper()
	owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
	renter := dbtest.CreateTestUser(t, s.DB, "Renter", "renter@example.com")
	return parties{owner: owner, renter: renter, itemID: dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)}
}

func (s *BookingSuite) request(p parties, startIn, endIn time.Duration) any {
	now := time.Now()
	return builder.NewBookingBuilder(now).
		WithItem(p.itemID, p.owner).
		WithWindow(now.Add(startIn), now.Add(endIn)).
		BuildCreateRequestDTO()
}

// =============================================================================
// TestBookingLifecycle
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: create then approve", func() {
		t := s.T()
		p := s.seed(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.request(p, time.Hour, 2*time.Hour), p.renter)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "WAITING", created.Status)
		require.Equal(t, p.renter, created.Booker.ID)
		require.Equal(t, p.itemID, created.Item.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, true), nil, p.owner)
		var decided resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &decided)
		require.Equal(t, "APPROVED", decided.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, created.ID, false), nil, p.owner)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, p.renter)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)
	})

	s.Run("Error case: owner cannot book their own item", func() {
		t := s.T()
		p := s.seed(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.request(p, time.Hour, 2*time.Hour), p.owner)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("Error case: unavailable item", func() {
		t := s.T()
		p := s.seed(t)
		p.itemID = dbtest.CreateTestItem(t, s.DB, p.owner, "Broken saw", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.request(p, time.Hour, 2*time.Hour), p.renter)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")
	})

	s.Run("Error case: only the owner decides", func() {
		t := s.T()
		p := s.seed(t)
		id := dbtest.CreateTestBooking(t, s.DB, p.itemID, p.renter, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(decideURL, id, true), nil, p.renter)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("Error case: strangers cannot read a booking", func() {
		t := s.T()
		p := s.seed(t)
		stranger := dbtest.CreateTestUser(t, s.DB, "Stranger", "stranger@example.com")
		id := dbtest.CreateTestBooking(t, s.DB, p.itemID, p.renter, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, id), nil, stranger)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})
}

// =============================================================================
// TestListBookings
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: state filters for booker and owner", func() {
		t := s.T()
		p := s.seed(t)
		now := time.Now()
		past := dbtest.CreateTestBooking(t, s.DB, p.itemID, p.renter, now.Add(-4*time.Hour), now.Add(-3*time.Hour), "APPROVED")
		current := dbtest.CreateTestBooking(t, s.DB, p.itemID, p.renter, now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")
		future := dbtest.CreateTestBooking(t, s.DB, p.itemID, p.renter, now.Add(3*time.Hour), now.Add(4*time.Hour), "WAITING")
		rejected := dbtest.CreateTestBooking(t, s.DB, p.itemID, p.renter, now.Add(5*time.Hour), now.Add(6*time.Hour), "REJECTED")

		cases := map[string][]int64{
			"ALL":      {rejected, future, current, past},
			"CURRENT":  {current},
			"PAST":     {past},
			"FUTURE":   {rejected, future},
			"WAITING":  {future},
			"REJECTED": {rejected},
		}
		for state, want := range cases {
			for _, target := range []struct {
				url    string
				userID int64
			}{
				{url: fmt.Sprintf(myBookingsURL, state), userID: p.renter},
				{url: fmt.Sprintf(ownerBookingsURL, state), userID: p.owner},
			} {
				w := httptest.PerformRequest(t, s.Router, http.MethodGet, target.url, nil, target.userID)
				var got []resdto.BookingResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
				ids := make([]int64, 0, len(got))
				for _, b := range got {
					ids = append(ids, b.ID)
				}
				require.Equal(t, want, ids, target.url)
			}
		}
	})

	s.Run("Error case: unknown state", func() {
		t := s.T()
		p := s.seed(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(myBookingsURL, "SOON"), nil, p.renter)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Unknown state: SOON")
	})
}

// =============================================================================
// TestBearerIdentity
// =============================================================================

func (s *BookingSuite) TestBearerIdentity() {
	s.Run("Normal case: a bearer token identifies the caller", func() {
		t := s.T()
		p := s.seed(t)
		headers := authtest.NewJWTHelper(s.Config.Auth).BearerHeaders(t, p.renter)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, s.request(p, time.Hour, 2*time.Hour), headers)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, p.renter, created.Booker.ID)
	})

	s.Run("Error case: expired token", func() {
		t := s.T()
		p := s.seed(t)
		token := authtest.NewJWTHelper(s.Config.Auth).CreateExpiredToken(t, p.renter)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodGet, bookingsURL, nil,
			map[string]string{"Authorization": "Bearer " + token})
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}
