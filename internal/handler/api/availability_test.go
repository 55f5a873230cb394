//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"roomdesk/internal/handler/api"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/infra"
	"roomdesk/internal/usecase/queries"
	"roomdesk/tests/common/builder"
	"roomdesk/tests/common/httptest"
	queriesmock "roomdesk/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/rooms", s.handler.ListRooms)
	s.router.GET("/rooms/availability", s.handler.SearchRooms)
	s.router.GET("/rooms/:id", s.handler.GetRoom)
	s.router.GET("/rooms/:id/availability", s.handler.RoomCalendar)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestSearchRooms() {
	s.Run("success: quotes the total for the searched window", func() {
		view := builder.NewRoomBuilder().BuildView()
		expected := queries.AvailabilitySearch{
			CheckIn:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
			Guests:   2,
			Sort:     queries.SortRecommended,
		}
		s.mockQueries.EXPECT().SearchRooms(gomock.Any(), expected).
			Return([]*queries.RoomView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/availability?check_in=2026-09-10&check_out=2026-09-13&guests=2", nil, "")

		var response []resdto.SearchResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal(3, response[0].Nights)
		s.Equal(view.NightlyRateCents*3, response[0].QuotedTotalCents)
	})

	s.Run("success: guests and sort default when omitted", func() {
		expected := queries.AvailabilitySearch{
			CheckIn:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
			Guests:   1,
			Sort:     queries.SortRecommended,
		}
		s.mockQueries.EXPECT().SearchRooms(gomock.Any(), expected).
			Return([]*queries.RoomView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/availability?check_in=2026-09-10&check_out=2026-09-11", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on missing dates", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/availability?check_in=2026-09-10", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on unknown sort order", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/availability?check_in=2026-09-10&check_out=2026-09-13&sort=cheapest", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 when the window is inverted", func() {
		s.mockQueries.EXPECT().SearchRooms(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidSearchWindow).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/availability?check_in=2026-09-13&check_out=2026-09-10", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "before check-out")
	})

	s.Run("error: 400 when the window is in the past", func() {
		s.mockQueries.EXPECT().SearchRooms(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrSearchWindowInPast).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/availability?check_in=2020-01-10&check_out=2020-01-12", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "past")
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetRoom() {
	view := builder.NewRoomBuilder().BuildView()

	s.Run("success: returns the room", func() {
		s.mockQueries.EXPECT().GetRoom(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/"+view.ID.String(), nil, "")

		var response resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Number, response.Number)
		s.Equal(view.NightlyRateCents, response.NightlyRateCents)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 when the room does not exist", func() {
		missing := uuid.New()
		s.mockQueries.EXPECT().GetRoom(gomock.Any(), missing).
			Return(nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/"+missing.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})
}

func (s *AvailabilityHandlerTestSuite) TestListRooms() {
	s.Run("success: returns the catalog", func() {
		views := []*queries.RoomView{
			builder.NewRoomBuilder().BuildView(),
			builder.NewRoomBuilder().WithNumber("310").BuildView(),
		}
		s.mockQueries.EXPECT().ListRooms(gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms", nil, "")

		var response []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})
}

func (s *AvailabilityHandlerTestSuite) TestRoomCalendar() {
	roomID := uuid.New()
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	url := "/rooms/" + roomID.String() + "/availability?check_in=2026-09-10&check_out=2026-09-13"

	s.Run("success: free room has no conflicts", func() {
		s.mockQueries.EXPECT().RoomCalendar(gomock.Any(), roomID, checkIn, checkOut).
			Return(&queries.RoomAvailabilityView{RoomID: roomID, Available: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.RoomAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Available)
		s.Empty(response.Conflicts)
	})

	s.Run("success: blocked room lists the blocking stays", func() {
		conflict := queries.StayView{
			ReservationID: uuid.New(),
			CheckIn:       checkIn.AddDate(0, 0, 1),
			CheckOut:      checkOut.AddDate(0, 0, 2),
			Status:        "confirmed",
		}
		s.mockQueries.EXPECT().RoomCalendar(gomock.Any(), roomID, checkIn, checkOut).
			Return(&queries.RoomAvailabilityView{RoomID: roomID, Available: false, Conflicts: []queries.StayView{conflict}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.RoomAvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
		s.Require().Len(response.Conflicts, 1)
		s.Equal(conflict.ReservationID, response.Conflicts[0].ReservationID)
	})

	s.Run("error: 400 on missing window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/"+roomID.String()+"/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 when the room does not exist", func() {
		s.mockQueries.EXPECT().RoomCalendar(gomock.Any(), roomID, checkIn, checkOut).
			Return(nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})
}
