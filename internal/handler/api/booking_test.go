//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"roomdesk/internal/domain/user"
	"roomdesk/internal/handler/api"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/usecase/commands"
	"roomdesk/tests/common/builder"
	"roomdesk/tests/common/httptest"
	"roomdesk/tests/common/testutil"
	commandsmock "roomdesk/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	handler      *api.BookingHandler

	actorID   uuid.UUID
	actorRole user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands)

	s.actorID = uuid.New()
	s.actorRole = user.RoleClient

	// Stand-in for RequireAuth: inject the actor the way the middleware would
	s.router.POST("/bookings", func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
		s.handler.CreateBooking(c)
	})
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) actor() commands.Actor {
	return commands.Actor{UserID: s.actorID, Role: s.actorRole}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	resBuilder := builder.NewReservationBuilder()
	reqBody := resBuilder.BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the reservation", func() {
		view := resBuilder.BuildView()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actor()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("confirmed", response.Status)
		s.Equal(view.TotalPriceCents, response.TotalPriceCents)
		s.Equal(3, response.Nights)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing room_ids", mutate: testutil.Field("room_ids", nil)},
			{name: "empty room_ids", mutate: testutil.Field("room_ids", []string{})},
			{name: "missing check_in", mutate: testutil.Field("check_in", nil)},
			{name: "missing check_out", mutate: testutil.Field("check_out", nil)},
			{name: "zero adults", mutate: testutil.Field("adults", 0)},
			{name: "negative children", mutate: testutil.Field("children", -1)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: command failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "unknown room", err: commands.ErrRoomNotFound, expectCode: http.StatusNotFound},
			{name: "overlapping stay", err: commands.ErrRoomConflict, expectCode: http.StatusConflict},
			{name: "stale quote", err: commands.ErrPriceMismatch, expectCode: http.StatusConflict},
			{name: "staff booking without guest", err: commands.ErrGuestDetailsRequired, expectCode: http.StatusBadRequest},
			{name: "no client profile", err: commands.ErrClientNotFound, expectCode: http.StatusNotFound},
			{name: "domain validation", err: commands.ErrDomainValidation, expectCode: http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actor()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}
