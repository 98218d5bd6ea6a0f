package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/service"
	pkgerrors "scholaria/backend/pkg/errors"
	"scholaria/backend/pkg/response"
)

// AbsenceHandler serves the attendance endpoints.
type AbsenceHandler struct {
	absenceSvc service.AbsenceService
}

func NewAbsenceHandler(absenceSvc service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absenceSvc: absenceSvc}
}

// Assign marks one student absent or present at one occurrence.
// POST /api/v1/assign_absence
func (h *AbsenceHandler) Assign(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request body")
		return
	}

	record, err := h.absenceSvc.Assign(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}

	response.OK(c, record)
}

// RollCall records attendance for a whole class roster at once.
// POST /api/v1/roll_call
func (h *AbsenceHandler) RollCall(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RollCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request body")
		return
	}

	summary, err := h.absenceSvc.SubmitRollCall(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}

	response.OK(c, summary)
}

// SessionSummary returns the attendance of one session occurrence.
// GET /api/v1/absences/session/:session_id?date=YYYY-MM-DD
func (h *AbsenceHandler) SessionSummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 13001, "date is required")
		return
	}

	summary, err := h.absenceSvc.SessionSummary(c.Request.Context(), c.Param("session_id"), date)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OK(c, summary)
}

// MyStatus returns the authenticated student's standing for one session.
// GET /api/v1/absences/status/:session_id
func (h *AbsenceHandler) MyStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	status, err := h.absenceSvc.StudentStatus(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OK(c, status)
}

// MyHistory returns the authenticated student's absence history for one
// session.
// GET /api/v1/student_absence_history/:session_id
func (h *AbsenceHandler) MyHistory(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	history, err := h.absenceSvc.StudentHistory(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OK(c, gin.H{"absence_history": history})
}

func (h *AbsenceHandler) handleAbsenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13002, "date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrDateNotOnWeekday):
		response.BadRequest(c, 13003, "date does not fall on the session's weekday")
	case errors.Is(err, service.ErrStudentNotInClass):
		response.BadRequest(c, 13004, "student is not enrolled in the session's class")
	case errors.Is(err, service.ErrIncompleteRoster):
		response.BadRequest(c, 13005, "roll call must cover the full class roster")
	case errors.Is(err, service.ErrUnknownStudent):
		response.BadRequest(c, 13006, "roll call contains a student outside the class")
	case errors.Is(err, service.ErrDuplicateEntry):
		response.BadRequest(c, 13007, "roll call lists the same student twice")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13101, "session not found")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 13102, "student not found")
	case errors.Is(err, service.ErrNotSessionTeacher):
		response.Forbidden(c, 13103, "session is taught by another professor")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
