package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/tools"
)

// PingResponse represents the response for the ping endpoint
type PingResponse struct {
	Message string `json:"message" example:"pong"` // Response message
}

// HealthResponse represents the response for the health endpoint
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"mcp-openweathermap"`
	Version string `json:"version" example:"1.0.0"`
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}

// handleHealth godoc
// @Summary Service health
// @Description Report that the MCP server is up
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (app *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: tools.ServerName,
		Version: Version,
	})
}
