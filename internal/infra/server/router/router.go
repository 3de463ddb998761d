// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fortify/backend/internal/integration/entrypoint/controller"
	"github.com/fortify/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	passwordController   *controller.PasswordController
	credentialController *controller.CredentialController
	breachController     *controller.BreachController
	authRateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	passwordController *controller.PasswordController,
	credentialController *controller.CredentialController,
	breachController *controller.BreachController,
	authRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		passwordController:   passwordController,
		credentialController: credentialController,
		breachController:     breachController,
		authRateLimiter:      authRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.authRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/signup", r.authController.Signup)
				auth.POST("/login", r.authRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/verify", r.authRateLimiter.Middleware(), r.authController.VerifyEmail)
				auth.POST("/resend", r.authRateLimiter.Middleware(), r.authController.ResendCode)
			}
		}

		// Password analysis routes
		if r.passwordController != nil {
			passwords := v1.Group("/passwords")
			{
				passwords.POST("/check", r.passwordController.CheckExposure)
				passwords.POST("/suggestions", r.passwordController.GenerateSuggestions)
			}
		}

		// Stored credential routes
		if r.credentialController != nil {
			credentials := v1.Group("/credentials")
			{
				credentials.POST("", r.credentialController.Save)
				credentials.GET("", r.credentialController.List)
				credentials.DELETE("/:id", r.credentialController.Delete)
			}
		}

		// Breach lookup routes
		if r.breachController != nil {
			breaches := v1.Group("/breaches")
			{
				breaches.GET("/:email", r.breachController.Lookup)
			}
		}
	}
}
