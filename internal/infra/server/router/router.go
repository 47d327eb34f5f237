// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rental-marketplace/backend/internal/integration/entrypoint/controller"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	userController     *controller.UserController
	propertyController *controller.PropertyController
	bookingController  *controller.BookingController
	favoriteController *controller.FavoriteController
	bookingRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
// A nil rate limiter disables rate limiting on booking creation.
func NewRouter(
	healthController *controller.HealthController,
	userController *controller.UserController,
	propertyController *controller.PropertyController,
	bookingController *controller.BookingController,
	favoriteController *controller.FavoriteController,
	bookingRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:   healthController,
		userController:     userController,
		propertyController: propertyController,
		bookingController:  bookingController,
		favoriteController: favoriteController,
		bookingRateLimiter: bookingRateLimiter,
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

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

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
	v1 := r.engine.Group("/api/v1")
	{
		v1.POST("/users", r.userController.Register)

		users := v1.Group("/users/me")
		users.Use(middleware.Identity())
		{
			users.GET("", r.userController.Me)
			users.POST("/host", r.userController.BecomeHost)
			users.POST("/verifications", r.userController.Verify)
		}

		// Browsing is public; hosts see their own drafts through the optional identity
		public := v1.Group("/properties")
		public.Use(middleware.OptionalIdentity())
		{
			public.GET("", r.propertyController.Search)
			public.GET("/:id", r.propertyController.Get)
			public.GET("/:id/quote", r.propertyController.Quote)
		}

		properties := v1.Group("/properties")
		properties.Use(middleware.Identity())
		{
			properties.POST("", r.propertyController.Create)
			properties.POST("/:id/publish", r.propertyController.Publish)
			properties.POST("/:id/unlist", r.propertyController.Unlist)
			properties.POST("/:id/images", r.propertyController.AddImage)
		}

		host := v1.Group("/host")
		host.Use(middleware.Identity())
		{
			host.GET("/properties", r.propertyController.ListMine)
		}

		bookings := v1.Group("/bookings")
		bookings.Use(middleware.Identity())
		{
			if r.bookingRateLimiter != nil {
				bookings.POST("", r.bookingRateLimiter.Middleware(), r.bookingController.Create)
			} else {
				bookings.POST("", r.bookingController.Create)
			}
			bookings.GET("", r.bookingController.List)
			bookings.GET("/:id", r.bookingController.Get)
			bookings.POST("/:id/confirm", r.bookingController.Confirm)
			bookings.POST("/:id/reject", r.bookingController.Reject)
			bookings.POST("/:id/cancel", r.bookingController.Cancel)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(middleware.Identity())
		{
			favorites.GET("", r.favoriteController.List)
			favorites.PUT("/:id", r.favoriteController.Add)
			favorites.DELETE("/:id", r.favoriteController.Remove)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
