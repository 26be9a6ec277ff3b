package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show service info
// @Description Returns the service name, version and feature list.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Secure Auth App API",
		"version": "2.0.0",
		"features": []string{
			"username + password login",
			"Google OAuth login",
			"email verification",
			"password reset",
			"login risk detection",
			"generation proxies",
		},
	})
}
