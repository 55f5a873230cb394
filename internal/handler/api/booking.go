package api

import (
	"errors"
	"net/http"

	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/handler/middleware"
	"roomdesk/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
}

func NewBookingHandler(bookingCommands commands.BookingCommands) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
	}
}

// @Summary Create booking
// @Description Book one or more rooms for a stay window. The overlap check
// @Description and pricing both happen server-side inside one transaction.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "One or more rooms do not exist",
			})
		case errors.Is(err, commands.ErrRoomConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Rooms are already booked for the requested stay",
			})
		case errors.Is(err, commands.ErrPriceMismatch):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Quoted total does not match the current price",
			})
		case errors.Is(err, commands.ErrGuestDetailsRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Guest details are required for staff bookings",
			})
		case errors.Is(err, commands.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No client profile for this account",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking request failed validation",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

func currentActor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return commands.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return commands.Actor{}, false
	}
	return commands.Actor{UserID: userID, Role: role}, true
}
