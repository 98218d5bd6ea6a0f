package handler

import (
	"github.com/gin-gonic/gin"

	"scholaria/backend/pkg/response"
)

// MustGetUserID extracts user_id injected by the JWT middleware. On failure
// it writes a 401 and returns ok=false; the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts the authenticated role from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
