// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/config"
	"github.com/rental-marketplace/backend/internal/application/usecase/booking"
	"github.com/rental-marketplace/backend/internal/application/usecase/favorite"
	"github.com/rental-marketplace/backend/internal/application/usecase/property"
	"github.com/rental-marketplace/backend/internal/application/usecase/user"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/infra/db"
	"github.com/rental-marketplace/backend/internal/infra/server/router"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/controller"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
	"github.com/rental-marketplace/backend/internal/integration/lock"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     redis.UniversalClient
	Router    *router.Router
	Scheduler *scheduler.CompletionScheduler // nil when the sweep is disabled
}

// NewInjector creates a new dependency injector with all dependencies wired.
// Entity options (clock, id generator) are shared by repositories and use cases.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, rdb redis.UniversalClient, opts ...entity.Option) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB, opts...)
	propertyRepo := persistence.NewPropertyRepository(gormDB, opts...)
	bookingRepo := persistence.NewBookingRepository(gormDB, opts...)
	favoriteRepo := persistence.NewFavoriteRepository(gormDB, opts...)

	// Create the per-property booking lock
	bookingLock := lock.NewRedisBookingLock(rdb, lock.Config{
		TTL:           cfg.Booking.LockTTL,
		WaitTimeout:   cfg.Booking.LockWaitTimeout,
		RetryInterval: cfg.Booking.LockRetryInterval,
	})

	// Create user use cases
	registerUserUseCase := user.NewRegisterUserUseCase(userRepo, opts...)
	getUserUseCase := user.NewGetUserUseCase(userRepo)
	becomeHostUseCase := user.NewBecomeHostUseCase(userRepo)
	verifyUserUseCase := user.NewVerifyUserUseCase(userRepo)

	// Create property use cases
	createPropertyUseCase := property.NewCreatePropertyUseCase(propertyRepo, userRepo, opts...)
	getPropertyUseCase := property.NewGetPropertyUseCase(propertyRepo, favoriteRepo)
	listPropertiesUseCase := property.NewListPropertiesUseCase(propertyRepo)
	publishPropertyUseCase := property.NewPublishPropertyUseCase(propertyRepo)
	unlistPropertyUseCase := property.NewUnlistPropertyUseCase(propertyRepo)
	addImageUseCase := property.NewAddImageUseCase(propertyRepo)
	quotePropertyUseCase := property.NewQuotePropertyUseCase(propertyRepo, bookingRepo)

	// Create booking use cases
	createBookingUseCase := booking.NewCreateBookingUseCase(
		bookingRepo,
		propertyRepo,
		userRepo,
		bookingLock,
		entity.CancellationPolicy(cfg.Booking.DefaultCancellationPolicy),
		opts...,
	)
	getBookingUseCase := booking.NewGetBookingUseCase(bookingRepo)
	listBookingsUseCase := booking.NewListBookingsUseCase(bookingRepo)
	confirmBookingUseCase := booking.NewConfirmBookingUseCase(bookingRepo)
	rejectBookingUseCase := booking.NewRejectBookingUseCase(bookingRepo)
	cancelBookingUseCase := booking.NewCancelBookingUseCase(bookingRepo)

	// Create favorite use cases
	addFavoriteUseCase := favorite.NewAddFavoriteUseCase(favoriteRepo, propertyRepo, opts...)
	removeFavoriteUseCase := favorite.NewRemoveFavoriteUseCase(favoriteRepo)
	listFavoritesUseCase := favorite.NewListFavoritesUseCase(favoriteRepo, propertyRepo)

	// Create the completion sweep
	var completionScheduler *scheduler.CompletionScheduler
	if cfg.Booking.SweepEnabled {
		sweep := booking.NewCompletePastBookingsUseCase(bookingRepo, cfg.Booking.SweepBatchSize, entity.ClockFromOptions(opts...))
		s, err := scheduler.NewCompletionScheduler(sweep, scheduler.Config{
			Schedule: cfg.Booking.SweepSchedule,
			Timeout:  cfg.Booking.SweepTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create completion scheduler: %w", err)
		}
		completionScheduler = s
	}

	// Create controllers
	healthController := controller.NewHealthController(
		func(ctx context.Context) bool {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		},
		db.RedisHealthCheck(rdb),
	)

	userController := controller.NewUserController(
		registerUserUseCase,
		getUserUseCase,
		becomeHostUseCase,
		verifyUserUseCase,
	)

	propertyController := controller.NewPropertyController(
		createPropertyUseCase,
		getPropertyUseCase,
		listPropertiesUseCase,
		publishPropertyUseCase,
		unlistPropertyUseCase,
		addImageUseCase,
		quotePropertyUseCase,
		cfg.Booking.DefaultCurrency,
	)

	bookingController := controller.NewBookingController(
		createBookingUseCase,
		getBookingUseCase,
		listBookingsUseCase,
		confirmBookingUseCase,
		rejectBookingUseCase,
		cancelBookingUseCase,
	)

	favoriteController := controller.NewFavoriteController(
		addFavoriteUseCase,
		removeFavoriteUseCase,
		listFavoritesUseCase,
	)

	// Create middleware
	// Rate limiting is disabled for E2E/test environments to prevent flaky tests
	var bookingRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment != "e2e" && cfg.Server.Environment != "test" {
		bookingRateLimiter = middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Prefix:      "rate-limit:bookings:",
			MaxRequests: cfg.Booking.RateLimitPerMinute,
			Window:      time.Minute,
		})
	}

	// Create router
	r := router.NewRouter(
		healthController,
		userController,
		propertyController,
		bookingController,
		favoriteController,
		bookingRateLimiter,
	)

	return &Injector{
		Config:    cfg,
		DB:        gormDB,
		Redis:     rdb,
		Router:    r,
		Scheduler: completionScheduler,
	}, nil
}
