package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "fieldcheck/docs" // registers the swagger spec
	"fieldcheck/internal/handler"
	"fieldcheck/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	corsOrigins []string,
	verifier middleware.CallerVerifier,
	limiter middleware.RequestLimiter,
	validationH *handler.ValidationHandler,
	healthH *handler.HealthHandler,
	metrics http.Handler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.GET("/validators", validationH.Validators)

	// Rate limited before identity so a flood of bad tokens is still throttled.
	limited := v1.Group("")
	limited.Use(middleware.RateLimit(limiter))
	limited.Use(middleware.Identify(verifier))

	validations := limited.Group("/validations")
	validations.POST("/run", validationH.Run)
	validations.POST("/run-batch", validationH.RunBatch)

	jobs := limited.Group("/validation-jobs")
	jobs.POST("", validationH.RecordJob)
	jobs.GET("", validationH.ListJobs)

	tickets := v1.Group("/tickets")
	tickets.Use(middleware.Identify(verifier))
	tickets.GET("/:ticketId/validation-jobs/export", validationH.Export)
	tickets.POST("/:ticketId/submission-check", validationH.SubmissionCheck)

	return r
}
