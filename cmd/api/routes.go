package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoints
	app.router.GET("/ping", app.handlePing)
	app.router.GET("/health", app.handleHealth)

	// Location endpoints
	app.router.GET("/location/resolve", app.handleResolveLocation)
	app.router.GET("/location/search", app.handleSearchLocation)

	// MCP streamable HTTP endpoint
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return app.mcpServer
	}, nil)
	app.router.Any("/mcp", gin.WrapH(mcpHandler))

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
