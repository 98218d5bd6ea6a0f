package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified JSON envelope returned by every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── success responses ──

// OK writes a 200 success response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 success response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── error responses ──

// Error writes a generic error response.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails writes an error response carrying extra details,
// e.g. the conflicting resource of a scheduling collision.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ── shortcuts ──

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict writes a 409 response naming the contested resource.
func Conflict(c *gin.Context, code int, message, details string) {
	ErrorWithDetails(c, http.StatusConflict, code, message, details)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "internal server error")
}

// StorageUnavailable writes a 503 response for backing-store outages.
func StorageUnavailable(c *gin.Context) {
	Error(c, http.StatusServiceUnavailable, 50300, "storage temporarily unavailable")
}
