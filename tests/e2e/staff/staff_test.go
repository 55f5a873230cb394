//go:build e2e

package staff_test

import (
	"net/http"
	"testing"
	"time"

	"roomdesk/internal/domain/user"
	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/tests/common/authtest"
	"roomdesk/tests/common/dbtest"
	"roomdesk/tests/common/httptest"
	"roomdesk/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	reservationsURL = "/api/reservations"
)

type StaffSuite struct {
	e2e.SharedSuite
}

func (s *StaffSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestStaffSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StaffSuite))
}

func (s *StaffSuite) agentToken(t *testing.T) string {
	t.Helper()
	return authtest.CreateAndLogin(t, s.DB, s.Router, "agent@example.com", string(user.RoleAgent))
}

func (s *StaffSuite) adminToken(t *testing.T) string {
	t.Helper()
	return authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
}

// staffBooking places a walk-in booking through the agent, returning the
// pending reservation.
func (s *StaffSuite) staffBooking(t *testing.T, token string, roomID uuid.UUID) resdto.ReservationResponse {
	t.Helper()

	day := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 30)
	req := reqdto.CreateBookingRequest{
		RoomIDs:  []uuid.UUID{roomID},
		CheckIn:  day,
		CheckOut: day.AddDate(0, 0, 2),
		Adults:   2,
		Guest: &reqdto.GuestDetails{
			Name:  "Walk In",
			Email: "walkin@example.com",
		},
	}

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.ReservationResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.Equal(t, "pending", created.Status)
	return created
}

func (s *StaffSuite) TestStaffLifecycle() {
	s.Run("Normal case: pending booking walks the whole lifecycle", func() {
		t := s.T()

		agent := s.agentToken(t)
		admin := s.adminToken(t)
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		created := s.staffBooking(t, agent, roomID)
		id := created.ID

		for _, step := range []struct {
			action string
			token  string
			status string
		}{
			{action: "validate", token: agent, status: "confirmed"},
			{action: "check-in", token: agent, status: "checked_in"},
			{action: "check-out", token: agent, status: "checked_out"},
			{action: "complete", token: admin, status: "completed"},
		} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost,
				reservationsURL+"/"+id.String()+"/"+step.action, nil, step.token)
			require.Equal(t, http.StatusOK, w.Code, "%s: %s", step.action, w.Body.String())

			var view resdto.ReservationResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
			require.Equal(t, step.status, view.Status, step.action)
		}

		// Every guest-visible transition queued an outbox job.
		require.Equal(t, []string{
			"reservation_created",
			"reservation_validated",
			"reservation_checked_in",
			"reservation_checked_out",
		}, dbtest.NotificationKinds(t, s.DB, id))

		// Terminal: nothing leaves completed.
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+id.String()+"/check-in", nil, agent)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: check-in before validation is blocked", func() {
		t := s.T()

		agent := s.agentToken(t)
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)
		created := s.staffBooking(t, agent, roomID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/check-in", nil, agent)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Normal case: reject records the reason", func() {
		t := s.T()

		agent := s.agentToken(t)
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)
		created := s.staffBooking(t, agent, roomID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/reject",
			reqdto.RejectReservationRequest{Reason: "overbooked on arrival day"}, agent)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var rejected resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rejected)
		require.Equal(t, "canceled", rejected.Status)
		require.NotNil(t, rejected.StatusReason)
		require.Equal(t, "overbooked on arrival day", *rejected.StatusReason)
	})

	s.Run("Error case: staff booking without guest details", func() {
		t := s.T()

		agent := s.agentToken(t)
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)

		day := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 30)
		req := reqdto.CreateBookingRequest{
			RoomIDs:  []uuid.UUID{roomID},
			CheckIn:  day,
			CheckOut: day.AddDate(0, 0, 2),
			Adults:   2,
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, agent)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Guest details")
	})
}

func (s *StaffSuite) TestRoleEnforcement() {
	s.Run("Error case: clients cannot run staff transitions", func() {
		t := s.T()

		agent := s.agentToken(t)
		client := authtest.CreateAndLogin(t, s.DB, s.Router, "client@example.com", string(user.RoleClient))
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)
		created := s.staffBooking(t, agent, roomID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/validate", nil, client)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: agents cannot complete, only admins", func() {
		t := s.T()

		agent := s.agentToken(t)
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, 25000)
		created := s.staffBooking(t, agent, roomID)

		for _, action := range []string{"validate", "check-in", "check-out"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost,
				reservationsURL+"/"+created.ID.String()+"/"+action, nil, agent)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/complete", nil, agent)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
