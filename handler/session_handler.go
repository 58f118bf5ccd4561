package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetActiveSessions lists the caller's active login sessions, most recently
// active first.
func GetActiveSessions(c *gin.Context, sessionsRepo *repository.SessionsRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	sessions, err := sessionsRepo.GetUserActiveSessions(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	utils.Success(c, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}
