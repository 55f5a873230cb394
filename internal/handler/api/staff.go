package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/usecase/commands"
	"roomdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffHandler struct {
	staffCommands commands.StaffCommands
}

func NewStaffHandler(staffCommands commands.StaffCommands) *StaffHandler {
	return &StaffHandler{
		staffCommands: staffCommands,
	}
}

// @Summary Validate reservation
// @Description Confirm a pending staff-channel reservation
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/validate [post]
func (h *StaffHandler) ValidateReservation(c *gin.Context) {
	h.runTransition(c, h.staffCommands.Validate)
}

// @Summary Reject reservation
// @Description Turn down a pending reservation with a reason
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RejectReservationRequest true "Rejection reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/reject [post]
func (h *StaffHandler) RejectReservation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	var req reqdto.RejectReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.staffCommands.Reject(c.Request.Context(), actor, id, req.TrimmedReason())
	if err != nil {
		writeTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Check in reservation
// @Description Mark a confirmed reservation as checked in
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/check-in [post]
func (h *StaffHandler) CheckInReservation(c *gin.Context) {
	h.runTransition(c, h.staffCommands.CheckIn)
}

// @Summary Check out reservation
// @Description Mark a checked-in reservation as checked out
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/check-out [post]
func (h *StaffHandler) CheckOutReservation(c *gin.Context) {
	h.runTransition(c, h.staffCommands.CheckOut)
}

// @Summary Complete reservation
// @Description Mark a checked-out reservation completed for downstream eligibility
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/complete [post]
func (h *StaffHandler) CompleteReservation(c *gin.Context) {
	h.runTransition(c, h.staffCommands.Complete)
}

func (h *StaffHandler) runTransition(
	c *gin.Context,
	fn func(ctx context.Context, actor commands.Actor, id uuid.UUID) (*queries.ReservationView, error),
) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		writeTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrAlreadyCanceled),
		errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "The reservation status does not allow this change",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Request failed validation",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
