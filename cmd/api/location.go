package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/location"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	_ "github.com/NimbleBrainInc/mcp-openweathermap/internal/types" // imported for swagger type definitions
)

// ResolveLocationInput defines the query parameters for the resolve endpoint
type ResolveLocationInput struct {
	Query string `form:"query" binding:"required"` // Place name or "lat,lon"
}

// SearchLocationInput defines the query parameters for the search endpoint
type SearchLocationInput struct {
	Query string `form:"query" binding:"required"` // Place name
	Limit int    `form:"limit"`                    // Maximum number of candidates (1-5)
}

// SearchLocationResponse lists geocoding candidates
type SearchLocationResponse struct {
	Query   string                           `json:"query" example:"Springfield"`
	Results []openweathermap.GeocodingResult `json:"results"`
}

// handleResolveLocation godoc
// @Summary Resolve a location
// @Description Turn a place name or a "lat,lon" pair into coordinates. Coordinates are returned as given without a lookup.
// @Tags location
// @Produce json
// @Param query query string true "Place name or lat,lon pair" example(51.5074,-0.1278)
// @Success 200 {object} types.Coords
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /location/resolve [get]
func (app *App) handleResolveLocation(c *gin.Context) {
	var input ResolveLocationInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Delegate to business layer
	coords, err := app.locationService.Resolve(c.Request.Context(), input.Query)
	if err != nil {
		app.writeLocationError(c, input.Query, err)
		return
	}

	c.JSON(http.StatusOK, coords)
}

// handleSearchLocation godoc
// @Summary Search locations
// @Description List up to 5 geocoding candidates for a place name, in provider order
// @Tags location
// @Produce json
// @Param query query string true "Place name" example(Springfield)
// @Param limit query int false "Maximum number of candidates" minimum(1) maximum(5) default(5)
// @Success 200 {object} SearchLocationResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /location/search [get]
func (app *App) handleSearchLocation(c *gin.Context) {
	var input SearchLocationInput

	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := app.locationService.Search(c.Request.Context(), input.Query, input.Limit)
	if err != nil {
		app.writeLocationError(c, input.Query, err)
		return
	}
	if results == nil {
		results = []openweathermap.GeocodingResult{}
	}

	c.JSON(http.StatusOK, SearchLocationResponse{Query: input.Query, Results: results})
}

func (app *App) writeLocationError(c *gin.Context, query string, err error) {
	var notFound *location.NotFoundError
	switch {
	case errors.Is(err, location.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		// Upstream failures are reported as a bad gateway
		app.logger.Error("failed to resolve location", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
