package router

import (
	"github.com/gin-gonic/gin"

	"docfill/internal/handler"
	"docfill/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
// maxBody bounds a whole request; a fill upload carries two files.
func Setup(
	allowedOrigins []string,
	maxBody int64,
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/health", healthH.Liveness)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.BodyLimit(maxBody))

	extract := v1.Group("/extract")
	extract.POST("/passport", extractionH.ExtractPassport)
	extract.POST("/representative", extractionH.ExtractRepresentative)

	v1.POST("/fill", extractionH.Fill)

	runs := v1.Group("/runs")
	runs.GET("", extractionH.ListRuns)
	runs.GET("/:id", extractionH.GetRun)

	return r
}
