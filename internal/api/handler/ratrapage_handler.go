package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/service"
	pkgerrors "scholaria/backend/pkg/errors"
	"scholaria/backend/pkg/response"
)

// RatrapageHandler serves the makeup-session endpoints.
type RatrapageHandler struct {
	ratrapageSvc service.RatrapageService
}

func NewRatrapageHandler(ratrapageSvc service.RatrapageService) *RatrapageHandler {
	return &RatrapageHandler{ratrapageSvc: ratrapageSvc}
}

// Add schedules one makeup session for the authenticated professor.
// POST /api/v1/add_ratrappage
func (h *RatrapageHandler) Add(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddRatrapageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}

	rat, err := h.ratrapageSvc.Add(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRatrapageError(c, err)
		return
	}

	response.Created(c, rat)
}

// Update reschedules one makeup session.
// PUT /api/v1/update_ratrapage/:id
func (h *RatrapageHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRatrapageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request body")
		return
	}

	rat, err := h.ratrapageSvc.Update(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.handleRatrapageError(c, err)
		return
	}

	response.OK(c, rat)
}

// Delete cancels one makeup session.
// DELETE /api/v1/delete_ratrapage/:id
func (h *RatrapageHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.ratrapageSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleRatrapageError(c, err)
		return
	}

	response.OK(c, gin.H{"msg": "ratrapage deleted"})
}

// ListByClass returns a class's makeup sessions.
// GET /api/v1/fetch_ratrapages/:class_id
func (h *RatrapageHandler) ListByClass(c *gin.Context) {
	rats, err := h.ratrapageSvc.ListByClass(c.Request.Context(), c.Param("class_id"))
	if err != nil {
		h.handleRatrapageError(c, err)
		return
	}
	response.OK(c, gin.H{"ratrapages": rats})
}

// ListMine returns the authenticated professor's makeup sessions.
// GET /api/v1/fetch_ratrapages_for_professor
func (h *RatrapageHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	rats, err := h.ratrapageSvc.ListByProfessor(c.Request.Context(), userID)
	if err != nil {
		h.handleRatrapageError(c, err)
		return
	}
	response.OK(c, gin.H{"ratrapages": rats})
}

func (h *RatrapageHandler) handleRatrapageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 12002, "date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrSundayDate):
		response.BadRequest(c, 12003, "nothing can be scheduled on a Sunday")
	case errors.Is(err, service.ErrInvalidSlot):
		response.BadRequest(c, 12004, "start time is not a valid slot on the grid")
	case errors.Is(err, service.ErrInvalidAssignment):
		response.BadRequest(c, 12005, "subject is not taught by this professor")
	case errors.Is(err, service.ErrDepartmentMismatch):
		response.BadRequest(c, 12006, "department does not match the class")
	case errors.Is(err, service.ErrRatrapageNotFound):
		response.NotFound(c, 12101, "ratrapage not found")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12102, "class not found")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 12103, "room not found")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12104, "subject not found")
	case errors.Is(err, service.ErrNotRatrapageOwner):
		response.Forbidden(c, 12105, "ratrapage belongs to another professor")
	case errors.Is(err, service.ErrRoomOccupied):
		response.Conflict(c, 12201, "slot already booked", "room")
	case errors.Is(err, service.ErrProfessorBusy):
		response.Conflict(c, 12202, "slot already booked", "professor")
	case errors.Is(err, service.ErrClassBusy):
		response.Conflict(c, 12203, "slot already booked", "class")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
