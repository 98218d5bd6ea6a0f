package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/service"
	"scholaria/backend/pkg/response"
)

// CatalogHandler serves the lookup lists used when composing a session.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Professors lists every professor.
// GET /api/v1/fetch_professors
func (h *CatalogHandler) Professors(c *gin.Context) {
	professors, err := h.catalogSvc.ListProfessors(c.Request.Context())
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, gin.H{"professors": professors})
}

// Rooms lists a department's rooms.
// GET /api/v1/fetch_rooms/:id
func (h *CatalogHandler) Rooms(c *gin.Context) {
	rooms, err := h.catalogSvc.ListRoomsByDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, gin.H{"rooms": rooms})
}

// Classes lists a department's classes.
// GET /api/v1/fetch_classes/:id
func (h *CatalogHandler) Classes(c *gin.Context) {
	classes, err := h.catalogSvc.ListClassesByDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, gin.H{"classes": classes})
}

// Subjects lists a department's subjects.
// GET /api/v1/fetch_subject/:id
func (h *CatalogHandler) Subjects(c *gin.Context) {
	subjects, err := h.catalogSvc.ListSubjectsByDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, gin.H{"subjects": subjects})
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 17101, "department not found")
	default:
		response.InternalError(c)
	}
}
