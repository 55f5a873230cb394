//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"roomdesk/internal/domain/user"
	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/tests/common/authtest"
	"roomdesk/tests/common/dbtest"
	"roomdesk/tests/common/httptest"
	"roomdesk/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	reservationsURL = "/api/reservations"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// guestAccount seeds a user with a client profile and logs them in.
func (s *BookingSuite) guestAccount(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()

	userID := dbtest.CreateTestUser(t, s.DB, email, string(user.RoleClient))
	dbtest.CreateTestClient(t, s.DB, userID, "Guest "+email, email)
	token := authtest.LoginUser(t, s.Router, email, "password123")
	return userID, token
}

// stayWindow returns a future check-in/check-out pair at midnight UTC,
// far enough out that the default notice windows stay open.
func stayWindow(daysFromNow, nights int) (time.Time, time.Time) {
	day := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, daysFromNow)
	return day, day.AddDate(0, 0, nights)
}

func bookingRequest(roomIDs []uuid.UUID, checkIn, checkOut time.Time) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomIDs:  roomIDs,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   2,
	}
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: web booking is confirmed with a server-side total", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "confirmed", created.Status)
		require.Equal(t, 3, created.Nights)
		require.Equal(t, int64(75000), created.TotalPriceCents)
		require.Equal(t, []string{"204"}, created.RoomNumbers)

		// The booking leaves a queued outbox job behind.
		require.Equal(t, []string{"reservation_created"}, dbtest.NotificationKinds(t, s.DB, created.ID))
	})

	s.Run("Normal case: stale quoted total is accepted, server price wins", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		req := bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut)
		staleQuote := int64(60000) // priced before a rate change, way off
		req.QuotedTotalCents = &staleQuote

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, int64(75000), created.TotalPriceCents)
	})

	s.Run("Error case: duplicate room in the request fails validation", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID, roomID}, checkIn, checkOut), token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation")
	})

	s.Run("Error case: guest count over the combined capacity", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		req := bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut)
		req.Adults = 5

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation")
	})

	s.Run("Error case: overlapping stay is rejected", func() {
		t := s.T()

		_, token1 := s.guestAccount(t, "guest1@example.com")
		_, token2 := s.guestAccount(t, "guest2@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token1)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Shifted by one night, still overlapping.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn.AddDate(0, 0, 1), checkOut.AddDate(0, 0, 1)), token2)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already booked")
	})

	s.Run("Normal case: back-to-back stays share the boundary night", func() {
		t := s.T()

		_, token1 := s.guestAccount(t, "guest1@example.com")
		_, token2 := s.guestAccount(t, "guest2@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token1)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Second stay checks in on the first stay's check-out day.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkOut, checkOut.AddDate(0, 0, 2)), token2)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: unknown room returns 404", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{uuid.New()}, checkIn, checkOut), token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "do not exist")
	})

	s.Run("Error case: stay in the past fails validation", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(-10, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})
}

func (s *BookingSuite) TestConcurrentBooking() {
	s.Run("Normal case: exactly one of many simultaneous requests wins", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		const workers = 8
		tokens := make([]string, workers)
		for i := range workers {
			_, tokens[i] = s.guestAccount(t, fmt.Sprintf("guest%d@example.com", i))
		}

		checkIn, checkOut := stayWindow(30, 3)
		req := bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut)

		codes := make([]int, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, tokens[i])
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		created, conflicted := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one booking should win, got codes %v", codes)
		require.Equal(t, workers-1, conflicted, "all other bookings should conflict, got codes %v", codes)
	})
}

func (s *BookingSuite) TestCancelReservation() {
	s.Run("Normal case: cancel inside the notice window, repeat cancel conflicts", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		cancelURL := reservationsURL + "/" + created.ID.String() + "/cancel"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var canceled resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &canceled)
		require.Equal(t, "canceled", canceled.Status)
		require.Equal(t, []string{"reservation_created", "reservation_canceled"},
			dbtest.NotificationKinds(t, s.DB, created.ID))

		// The room frees up immediately.
		_, token2 := s.guestAccount(t, "guest2@example.com")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token2)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Second cancel of the same reservation conflicts.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already canceled")
	})

	s.Run("Error case: cancel too close to check-in is refused", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		// Check-in two days out, default cancel notice is seven days.
		checkIn, checkOut := stayWindow(2, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/cancel", nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "window")
	})

	s.Run("Error case: another client cannot cancel the reservation", func() {
		t := s.T()

		_, token1 := s.guestAccount(t, "guest1@example.com")
		_, token2 := s.guestAccount(t, "guest2@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token1)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/cancel", nil, token2)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

func (s *BookingSuite) TestRescheduleReservation() {
	s.Run("Normal case: move to a free window and reprice", func() {
		t := s.T()

		_, token := s.guestAccount(t, "guest1@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		newCheckIn, newCheckOut := stayWindow(40, 4)
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+created.ID.String(),
			reqdto.RescheduleReservationRequest{CheckIn: newCheckIn, CheckOut: newCheckOut, Adults: 2}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Equal(t, 4, updated.Nights)
		require.Equal(t, int64(100000), updated.TotalPriceCents)
		require.Equal(t, "confirmed", updated.Status)
	})

	s.Run("Error case: moving onto another reservation conflicts", func() {
		t := s.T()

		_, token1 := s.guestAccount(t, "guest1@example.com")
		_, token2 := s.guestAccount(t, "guest2@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn1, checkOut1 := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn1, checkOut1), token1)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var first resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)

		checkIn2, checkOut2 := stayWindow(40, 3)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn2, checkOut2), token2)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+first.ID.String(),
			reqdto.RescheduleReservationRequest{CheckIn: checkIn2, CheckOut: checkOut2, Adults: 2}, token1)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already booked")
	})
}

func (s *BookingSuite) TestListAndGetReservations() {
	s.Run("Normal case: owner sees their reservations, others do not", func() {
		t := s.T()

		_, token1 := s.guestAccount(t, "guest1@example.com")
		_, token2 := s.guestAccount(t, "guest2@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		checkIn, checkOut := stayWindow(30, 3)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingRequest([]uuid.UUID{roomID}, checkIn, checkOut), token1)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token1)
		var listed []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listed)
		require.Len(t, listed, 1)
		require.Equal(t, created.ID, listed[0].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+created.ID.String(), nil, token1)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var fetched resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.ReservationResponse{}, "CreatedAt", "UpdatedAt"),
		}
		require.Empty(t, cmp.Diff(created, fetched, opts...), "detail view should match the created booking")

		// A different client is locked out.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+created.ID.String(), nil, token2)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "another client")

		// An unauthenticated request never gets in.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
