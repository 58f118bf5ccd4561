package handler

import (
	"fmt"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"
)

func LoginHandler(c *gin.Context, usersRepo *repository.UsersRepo, sessionsRepo *repository.SessionsRepo) {
	var loginReq model.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	user, err := usersRepo.FindUserByUsername(c.Request.Context(), loginReq.Username)
	if err != nil {
		utils.TrackAuthAttempt("failure", "user_lookup")
		utils.InternalError(c, "Failed to look up user")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "user_not_found")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	match, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil || !match {
		utils.TrackAuthAttempt("failure", "invalid_password")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	ua := useragent.Parse(c.Request.UserAgent())
	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         user.UserID,
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour)),
		LastActivityAt: time.Now(),
		DeviceInfo:     fmt.Sprintf("%s on %s", ua.Name, ua.OS),
		IPAddress:      c.ClientIP(),
		IsActive:       true,
	}
	if err := sessionsRepo.CreateSession(c.Request.Context(), session); err != nil {
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"message":       "Login successful",
		"token":         token,
		"refresh_token": refreshToken,
		"session_id":    session.SessionID,
		"user": gin.H{
			"user_id":  user.UserID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
