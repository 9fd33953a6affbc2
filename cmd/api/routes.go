package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Welcome message",
		Tags:        []string{"health"},
	}, app.handleRoot)

	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	// Location endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "list-locations",
		Method:      http.MethodGet,
		Path:        "/locations",
		Summary:     "List locations with current weather",
		Description: "Returns every saved location in id order with current conditions attached. " +
			"Depending on configuration a provider failure yields zeroed weather for that location or a 502.",
		Tags: []string{"locations"},
	}, app.handleListLocations)

	huma.Register(app.api, huma.Operation{
		OperationID:   "create-location",
		Method:        http.MethodPost,
		Path:          "/locations",
		Summary:       "Save a location",
		Tags:          []string{"locations"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict, http.StatusUnprocessableEntity},
	}, app.handleCreateLocation)

	huma.Register(app.api, huma.Operation{
		OperationID:   "delete-location",
		Method:        http.MethodDelete,
		Path:          "/locations/{id}",
		Summary:       "Delete a location",
		Tags:          []string{"locations"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, app.handleDeleteLocation)

	// Forecast endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "get-forecast",
		Method:      http.MethodGet,
		Path:        "/forecast/{id}",
		Summary:     "7-day forecast for a location",
		Description: "Daily forecast starting today in the location's timezone. Provider failures are returned as 502.",
		Tags:        []string{"forecast"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, app.handleGetForecast)

	// Catalog endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "list-available-locations",
		Method:      http.MethodGet,
		Path:        "/available-locations",
		Summary:     "Candidate cities",
		Description: "Reference list of cities that can be added as locations",
		Tags:        []string{"catalog"},
	}, app.handleListAvailableLocations)

	// GeoJSON export for the dashboard map
	huma.Register(app.api, huma.Operation{
		OperationID: "export-locations-geojson",
		Method:      http.MethodGet,
		Path:        "/locations.geojson",
		Summary:     "Saved locations as GeoJSON",
		Description: "FeatureCollection of point features, one per saved location. No weather is fetched.",
		Tags:        []string{"locations"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "GeoJSON FeatureCollection",
				Content: map[string]*huma.MediaType{
					geoJSONContentType: {Schema: &huma.Schema{Type: huma.TypeObject}},
				},
			},
		},
	}, app.handleLocationsGeoJSON)

	// Swagger documentation, backed by the generated OpenAPI document
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json"))(c)
	})
}
