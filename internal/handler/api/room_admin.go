package api

import (
	"errors"
	"net/http"

	reqdto "roomdesk/internal/handler/dto/request"
	resdto "roomdesk/internal/handler/dto/response"
	"roomdesk/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomAdminHandler struct {
	roomCommands commands.RoomCommands
}

func NewRoomAdminHandler(roomCommands commands.RoomCommands) *RoomAdminHandler {
	return &RoomAdminHandler{
		roomCommands: roomCommands,
	}
}

// @Summary Create room
// @Description Add a room to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpsertRoomRequest true "Room definition"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/rooms [post]
func (h *RoomAdminHandler) CreateRoom(c *gin.Context) {
	var req reqdto.UpsertRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.roomCommands.CreateRoom(c.Request.Context(), req)
	if err != nil {
		writeRoomAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

// @Summary Update room
// @Description Replace a room's catalog attributes
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpsertRoomRequest true "Room definition"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/rooms/{id} [put]
func (h *RoomAdminHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.UpsertRoomRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.roomCommands.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		writeRoomAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Delete room
// @Description Remove a room. Blocked while the room still has blocking reservations.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rooms/{id} [delete]
func (h *RoomAdminHandler) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	if err := h.roomCommands.DeleteRoom(c.Request.Context(), id); err != nil {
		writeRoomAdminError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeRoomAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrDuplicateRoomNumber):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room number already exists",
		})
	case errors.Is(err, commands.ErrRoomHasReservations):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room still has blocking reservations",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Room definition failed validation",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
