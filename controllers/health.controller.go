package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bagasramadhana99/Glucosense/config"
)

// HealthCheck endpoint
func HealthCheck(c *gin.Context) {
	// Test database connection
	err := config.DB.Ping()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "Database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "glucosense-backend",
		"timestamp": time.Now().Unix(),
	})
}
