package api

import (
	"errors"
	"net/http"

	"roomdesk/internal/domain/reservation"
	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
	}
}

// @Summary Search available rooms
// @Description List rooms free for the whole stay window, with filters and sorting
// @Tags rooms
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param guests query int false "Total guests"
// @Param max_price_cents query int false "Maximum nightly rate in cents"
// @Param room_type query string false "Room type filter"
// @Param view query string false "View filter"
// @Param bed query string false "Bed type filter"
// @Param amenities query []string false "Required amenities"
// @Param sort query string false "Sort order: recommended, price_asc, price_desc"
// @Success 200 {array} resdto.SearchResultResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/availability [get]
func (h *AvailabilityHandler) SearchRooms(c *gin.Context) {
	var req reqdto.SearchRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid search parameters",
		})
		return
	}

	rooms, err := h.availability.SearchRooms(c.Request.Context(), req.ToSearch())
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidSearchWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-in must be before check-out",
			})
		case errors.Is(err, queries.ErrSearchWindowInPast):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-in cannot be in the past",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	window, werr := reservation.NewStayWindow(req.CheckIn, req.CheckOut)
	nights := 1
	if werr == nil {
		nights = window.Nights()
	}

	c.JSON(http.StatusOK, resdto.FromSearchResults(rooms, nights))
}

// @Summary Room availability calendar
// @Description Availability of one room for a window, with the blocking stays
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.RoomAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *AvailabilityHandler) RoomCalendar(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.RoomAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid availability parameters",
		})
		return
	}

	view, err := h.availability.RoomCalendar(c.Request.Context(), roomID, req.CheckIn, req.CheckOut)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidSearchWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-in must be before check-out",
			})
		case errors.Is(err, queries.ErrSearchWindowInPast):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-in cannot be in the past",
			})
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomAvailabilityView(view))
}

// @Summary List rooms
// @Description List the whole room catalog
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *AvailabilityHandler) ListRooms(c *gin.Context) {
	rooms, err := h.availability.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary Get room
// @Description Get one room by ID
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *AvailabilityHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	view, err := h.availability.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}
