package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"coachdesk/internal/interfaces/http/middleware"
)

// actorFromContext reads the authenticated staff identity set by the auth
// middleware. The email falls back to "unknown" so audit rows are never
// written without an actor label.
func actorFromContext(c *gin.Context) (*uint, string) {
	email := c.GetString(middleware.ContextKeyUserEmail)
	if email == "" {
		email = "unknown"
	}

	userID := c.GetUint(middleware.ContextKeyUserID)
	if userID == 0 {
		return nil, email
	}
	return &userID, email
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
