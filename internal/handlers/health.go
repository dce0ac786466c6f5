package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the liveness endpoint
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task Tracker API is running",
	})
}

// Root returns the service banner
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Task Tracker API",
		"version": "1.0.0",
	})
}
