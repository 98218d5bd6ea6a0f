package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scholaria/backend/internal/service"
	"scholaria/backend/pkg/response"
)

// ExportHandler streams timetable exports.
type ExportHandler struct {
	exportSvc service.ExportService
}

func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ScheduleXLSX downloads a class timetable as a workbook.
// GET /api/v1/export/schedule/:id
func (h *ExportHandler) ScheduleXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.ScheduleXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ScheduleICS downloads a class timetable as an iCalendar feed.
// GET /api/v1/export/calendar/:id
func (h *ExportHandler) ScheduleICS(c *gin.Context) {
	buf, filename, err := h.exportSvc.ScheduleICS(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 16101, "class not found")
	case errors.Is(err, service.ErrExportEmpty):
		response.BadRequest(c, 16002, "class has no sessions to export")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
