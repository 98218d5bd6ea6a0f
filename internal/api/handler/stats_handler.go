package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/service"
	"scholaria/backend/pkg/response"
)

// StatsHandler serves the attendance statistics endpoints.
type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Class returns the per-student report of one class.
// GET /api/v1/stats/class/:id
func (h *StatsHandler) Class(c *gin.Context) {
	stats, err := h.statsSvc.ClassStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStatsError(c, err)
		return
	}
	response.OK(c, stats)
}

// Department rolls the class reports up to one department.
// GET /api/v1/stats/department/:id
func (h *StatsHandler) Department(c *gin.Context) {
	stats, err := h.statsSvc.DepartmentStatistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStatsError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *StatsHandler) handleStatsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 15101, "class not found")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 15102, "department not found")
	default:
		response.InternalError(c)
	}
}
