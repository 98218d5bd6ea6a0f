package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/dto"
	"scholaria/backend/internal/service"
	pkgerrors "scholaria/backend/pkg/errors"
	"scholaria/backend/pkg/response"
)

// DemandeHandler serves the absence revocation workflow.
type DemandeHandler struct {
	demandeSvc service.DemandeService
}

func NewDemandeHandler(demandeSvc service.DemandeService) *DemandeHandler {
	return &DemandeHandler{demandeSvc: demandeSvc}
}

// Open files a revocation request against one absence record. The body is
// a multipart form carrying the justification, or plain JSON.
// POST /api/v1/demand_absence
func (h *DemandeHandler) Open(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DemandAbsenceRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request body")
		return
	}

	demande, err := h.demandeSvc.Open(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleDemandeError(c, err)
		return
	}

	response.Created(c, demande)
}

// List returns requests for review, pending by default.
// GET /api/v1/fetch_requests?status=pending|approved|rejected
func (h *DemandeHandler) List(c *gin.Context) {
	demandes, err := h.demandeSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleDemandeError(c, err)
		return
	}
	response.OK(c, gin.H{"demandes": demandes})
}

// ListMine returns the authenticated student's requests.
// GET /api/v1/my_requests
func (h *DemandeHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	demandes, err := h.demandeSvc.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleDemandeError(c, err)
		return
	}
	response.OK(c, gin.H{"demandes": demandes})
}

// Approve grants a request and clears the underlying absence.
// POST /api/v1/accept_absence/:id
func (h *DemandeHandler) Approve(c *gin.Context) {
	demande, err := h.demandeSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDemandeError(c, err)
		return
	}
	response.OK(c, demande)
}

// Reject declines a request; the absence stays in force.
// POST /api/v1/reject_absence/:id
func (h *DemandeHandler) Reject(c *gin.Context) {
	demande, err := h.demandeSvc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDemandeError(c, err)
		return
	}
	response.OK(c, demande)
}

func (h *DemandeHandler) handleDemandeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotMarkedAbsent):
		response.BadRequest(c, 14002, "absence record is not marked absent")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 14004, "status must be pending, approved or rejected")
	case errors.Is(err, service.ErrDemandeDecided):
		response.BadRequest(c, 14003, "demande has already been decided")
	case errors.Is(err, service.ErrDemandeNotFound):
		response.NotFound(c, 14101, "demande not found")
	case errors.Is(err, service.ErrAbsenceNotFound):
		response.NotFound(c, 14102, "absence not found")
	case errors.Is(err, service.ErrNotAbsenceOwner):
		response.Forbidden(c, 14103, "absence belongs to another student")
	case errors.Is(err, service.ErrDuplicatePending):
		response.Conflict(c, 14201, "a pending demande already exists for this absence", "demande")
	case errors.Is(err, pkgerrors.ErrStorageUnavailable):
		response.StorageUnavailable(c)
	default:
		response.InternalError(c)
	}
}
