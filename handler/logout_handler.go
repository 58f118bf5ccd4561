package handler

import (
	"log"
	"strings"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, sessionsRepo *repository.SessionsRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken != "" {
		if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
			log.Printf("Failed to blacklist tokens for user %s: %v", userID, err)
		}
	}

	if err := sessionsRepo.EndUserSessions(c.Request.Context(), userID.(string)); err != nil {
		utils.InternalError(c, "Failed to end sessions")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
