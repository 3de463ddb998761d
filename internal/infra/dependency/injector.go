// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fortify/backend/config"
	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/application/usecase/breach"
	"github.com/fortify/backend/internal/application/usecase/credential"
	"github.com/fortify/backend/internal/application/usecase/password"
	"github.com/fortify/backend/internal/application/usecase/verification"
	"github.com/fortify/backend/internal/infra/server/router"
	"github.com/fortify/backend/internal/integration/adapters"
	"github.com/fortify/backend/internal/integration/cache"
	"github.com/fortify/backend/internal/integration/email"
	"github.com/fortify/backend/internal/integration/email/templates"
	"github.com/fortify/backend/internal/integration/entrypoint/controller"
	"github.com/fortify/backend/internal/integration/entrypoint/middleware"
	"github.com/fortify/backend/internal/integration/hibp"
	"github.com/fortify/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies
// wired. The email sender is passed in so callers can substitute a mock.
func NewInjector(cfg *config.Config, db *gorm.DB, rdb *redis.Client, emailSender adapter.EmailSender) (*Injector, error) {
	// Create repositories and stores
	userRepo := persistence.NewUserRepository(db)
	credentialRepo := persistence.NewCredentialRepository(db)
	challengeStore := cache.NewRedisChallengeStore(rdb)
	breachCache := cache.NewRedisBreachCache(rdb)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	codeGenerator := adapters.NewCodeGenerator()
	rangeClient := hibp.NewRangeClient(cfg.HIBP.PasswordRangeURL, cfg.HIBP.UserAgent, cfg.HIBP.RequestTimeout)
	breachClient := hibp.NewBreachClient(cfg.HIBP.BreachedAccountURL, cfg.HIBP.APIKey, cfg.HIBP.UserAgent, cfg.HIBP.RequestTimeout)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email templates: %w", err)
	}
	dispatcher := email.NewService(emailSender, renderer, cfg.Email.SendTimeout)

	// Create verification use cases
	locks := verification.NewEmailLocks()
	issuer := verification.NewCodeIssuer(challengeStore, codeGenerator, dispatcher, cfg.Verification.CodeTTL)
	signupUseCase := verification.NewSignupUseCase(userRepo, passwordService, issuer, locks)
	loginUseCase := verification.NewLoginUseCase(userRepo, passwordService)
	verifyEmailUseCase := verification.NewVerifyEmailUseCase(userRepo, challengeStore, locks)
	resendCodeUseCase := verification.NewResendCodeUseCase(userRepo, issuer, locks)

	// Create password use cases
	debouncer := password.NewDebouncer(cfg.Exposure.DebounceDelay)
	checkExposureUseCase := password.NewCheckExposureUseCase(rangeClient, debouncer)
	generateSuggestionsUseCase := password.NewGenerateSuggestionsUseCase(checkExposureUseCase)

	// Create credential use cases
	saveCredentialUseCase := credential.NewSaveCredentialUseCase(userRepo, credentialRepo, passwordService)
	listCredentialsUseCase := credential.NewListCredentialsUseCase(credentialRepo)
	deleteCredentialUseCase := credential.NewDeleteCredentialUseCase(credentialRepo)

	// Create breach use case
	lookupBreachesUseCase := breach.NewLookupBreachesUseCase(breachClient, breachCache, cfg.HIBP.BreachCacheTTL)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			return rdb.Ping(context.Background()).Err() == nil
		},
	)

	authController := controller.NewAuthController(
		signupUseCase,
		loginUseCase,
		verifyEmailUseCase,
		resendCodeUseCase,
	)

	passwordController := controller.NewPasswordController(
		checkExposureUseCase,
		generateSuggestionsUseCase,
	)

	credentialController := controller.NewCredentialController(
		saveCredentialUseCase,
		listCredentialsUseCase,
		deleteCredentialUseCase,
	)

	breachController := controller.NewBreachController(lookupBreachesUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var authRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		authRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		authRateLimiter = middleware.NewRateLimiter()
	}

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		passwordController,
		credentialController,
		breachController,
		authRateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Router: r,
	}, nil
}
