package handler

import (
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegistrationHandler(c *gin.Context, usersRepo *repository.UsersRepo) {
	var req model.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "registration_validation")
		utils.BadRequest(c, "Invalid registration data")
		return
	}

	existing, err := usersRepo.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		utils.InternalError(c, "Failed to check username")
		return
	}
	if existing != nil {
		utils.TrackAuthAttempt("failure", "username_taken")
		utils.Conflict(c, "Username already exists")
		return
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		UserID:    uuid.New().String(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	if err := usersRepo.AddUser(c.Request.Context(), user); err != nil {
		utils.InternalError(c, "Failed to create user")
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}
