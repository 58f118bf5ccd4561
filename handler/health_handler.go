package handler

import (
	"context"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
)

func HealthHandler(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if utils.MongoClient != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := utils.MongoClient.Ping(ctx, nil); err != nil {
			status["status"] = "degraded"
			status["mongo"] = err.Error()
		}
	}

	utils.Success(c, status)
}
