package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/service"
	pkgerrors "scholaria/backend/pkg/errors"
	"scholaria/backend/pkg/response"
)

// SessionHandler serves the weekly timetable endpoints.
type SessionHandler struct {
	sessionSvc service.SessionService
}

func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Add creates one weekly session.
// POST /api/v1/add_session
func (h *SessionHandler) Add(c *gin.Context) {
	var req dto.AddSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Add(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// Delete removes one weekly session.
// DELETE /api/v1/delete_session/:session_id
func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("session_id")
	if id == "" {
		response.BadRequest(c, 11001, "session id is required")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"msg": "session deleted"})
}

// Get returns one weekly session with its nested projections.
// GET /api/v1/fetch_single_session/:session_id
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessionSvc.GetByID(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, session)
}

// ListByClass returns a class's weekly sessions.
// GET /api/v1/fetch_sessions/:class_id
func (h *SessionHandler) ListByClass(c *gin.Context) {
	sessions, err := h.sessionSvc.ListByClass(c.Request.Context(), c.Param("class_id"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, gin.H{"sessions": sessions})
}

// ListMine returns the authenticated professor's weekly sessions.
// GET /api/v1/fetch_sessions_for_professor
func (h *SessionHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	sessions, err := h.sessionSvc.ListByProfessor(c.Request.Context(), userID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, gin.H{"sessions": sessions})
}

// ListByDepartment returns every weekly session of a department.
// GET /api/v1/fetch_sessions_by_department/:department_id
func (h *SessionHandler) ListByDepartment(c *gin.Context) {
	sessions, err := h.sessionSvc.ListByDepartment(c.Request.Context(), c.Param("department_id"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, gin.H{"sessions": sessions})
}

// WeekGrid projects a class timetable onto the day × slot grid.
// GET /api/v1/schedule/week/:class_id
func (h *SessionHandler) WeekGrid(c *gin.Context) {
	grid, err := h.sessionSvc.ProjectWeek(c.Request.Context(), c.Param("class_id"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, grid)
}

func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 11002, "day must be between Monday and Saturday")
	case errors.Is(err, service.ErrInvalidSlot):
		response.BadRequest(c, 11003, "start time is not a valid slot on the grid")
	case errors.Is(err, service.ErrInvalidAssignment):
		response.BadRequest(c, 11004, "subject is not taught by this professor")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 11101, "session not found")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 11102, "class not found")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 11103, "room not found")
	case errors.Is(err, service.ErrProfessorNotFound):
		response.NotFound(c, 11104, "professor not found")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 11105, "subject not found")
	case errors.Is(err, service.ErrRoomOccupied):
		response.Conflict(c, 11201, "slot already booked", "room")
	case errors.Is(err, service.ErrProfessorBusy):
		response.Conflict(c, 11202, "slot already booked", "professor")
	case errors.Is(err, service.ErrClassBusy):
		response.Conflict(c, 11203, "slot already booked", "class")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
