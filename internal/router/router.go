package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docverify/internal/handler"
	"docverify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	verificationH *handler.VerificationHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Verification routes
	v1.POST("/process-complete", verificationH.ProcessComplete)
	v1.POST("/reverify", verificationH.Reverify)
	v1.POST("/extract", verificationH.Extract)

	// Archived reports
	reports := v1.Group("/reports")
	reports.GET("", reportH.List)
	reports.GET("/:name", reportH.Download)

	return r
}
