// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/application/usecase/breach"
	"github.com/fortify/backend/internal/application/usecase/credential"
	"github.com/fortify/backend/internal/application/usecase/password"
	"github.com/fortify/backend/internal/application/usecase/verification"
	"github.com/fortify/backend/internal/integration/adapters"
	"github.com/fortify/backend/internal/integration/cache"
	"github.com/fortify/backend/internal/integration/email"
	"github.com/fortify/backend/internal/integration/email/templates"
	"github.com/fortify/backend/internal/integration/entrypoint/controller"
	"github.com/fortify/backend/internal/integration/entrypoint/middleware"
	hibpclient "github.com/fortify/backend/internal/integration/hibp"
	"github.com/fortify/backend/internal/integration/persistence"
	"github.com/fortify/backend/internal/integration/persistence/model"
	"github.com/fortify/backend/internal/infra/server/router"
	"github.com/fortify/backend/test/integration/mock"
)

const challengeTTL = 10 * time.Minute

// TestContext holds the application under test and the state for one
// scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Backing services
	db          *mock.Db
	hibp        *mock.HibpServer
	emailSender *email.MockEmailSender
	codes       *dispatchedCodes

	// Wiring reused by givens
	userRepo        adapter.UserRepository
	challengeStore  adapter.ChallengeStore
	passwordService adapter.PasswordService
	signupUseCase   *verification.SignupUseCase
}

// dispatchedCodes records every verification code that left the system so
// steps can reference the latest one through placeholders.
type dispatchedCodes struct {
	inner adapter.CodeDispatcher

	mu       sync.Mutex
	byEmail  map[string][]string
	lastSent string
}

func (d *dispatchedCodes) DispatchVerificationCode(ctx context.Context, input adapter.CodeDispatchInput) error {
	if err := d.inner.DispatchVerificationCode(ctx, input); err != nil {
		return err
	}
	d.mu.Lock()
	d.byEmail[input.Email] = append(d.byEmail[input.Email], input.Code)
	d.lastSent = input.Code
	d.mu.Unlock()
	return nil
}

// latest returns the most recently dispatched code, for any email.
func (d *dispatchedCodes) latest() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSent
}

// latestFor returns the most recently dispatched code for email.
func (d *dispatchedCodes) latestFor(email string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	codes := d.byEmail[email]
	if len(codes) == 0 {
		return ""
	}
	return codes[len(codes)-1]
}

// previous returns the code dispatched before the latest one for email.
func (d *dispatchedCodes) previous(email string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	codes := d.byEmail[email]
	if len(codes) < 2 {
		return ""
	}
	return codes[len(codes)-2]
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

var hibpStubOnce sync.Once
var hibpStub *mock.HibpServer

func sharedHibpStub() *mock.HibpServer {
	hibpStubOnce.Do(func() {
		hibpStub = mock.NewHibpServer()
	})
	return hibpStub
}

// newTestContext stands up the full application against in-memory
// infrastructure: SQLite for persistence, an embedded Redis for challenges
// and the breach cache, a stubbed corpus server and a mock email provider.
func newTestContext() (*TestContext, error) {
	db := mock.NewDb(&model.UserModel{}, &model.CredentialModel{})

	rdb := mock.NewRedis()
	if err := mock.ClearRedis(rdb); err != nil {
		return nil, fmt.Errorf("failed to clear redis: %w", err)
	}

	stub := sharedHibpStub()
	stub.Reset()

	userRepo := persistence.NewUserRepository(db.DbConn)
	credentialRepo := persistence.NewCredentialRepository(db.DbConn)
	challengeStore := cache.NewRedisChallengeStore(rdb)
	breachCache := cache.NewRedisBreachCache(rdb)

	passwordService := adapters.NewPasswordService()
	codeGenerator := adapters.NewCodeGenerator()

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailSender := email.NewMockEmailSender()
	codes := &dispatchedCodes{
		inner:   email.NewService(emailSender, renderer, time.Second),
		byEmail: make(map[string][]string),
	}

	locks := verification.NewEmailLocks()
	issuer := verification.NewCodeIssuer(challengeStore, codeGenerator, codes, challengeTTL)

	signupUseCase := verification.NewSignupUseCase(userRepo, passwordService, issuer, locks)
	loginUseCase := verification.NewLoginUseCase(userRepo, passwordService)
	verifyEmailUseCase := verification.NewVerifyEmailUseCase(userRepo, challengeStore, locks)
	resendCodeUseCase := verification.NewResendCodeUseCase(userRepo, issuer, locks)

	rangeClient := hibpclient.NewRangeClient(stub.URL(), "fortify-tests", 2*time.Second)
	breachClient := hibpclient.NewBreachClient(stub.URL(), "test-key", "fortify-tests", 2*time.Second)

	debouncer := password.NewDebouncer(time.Millisecond)
	checkExposureUseCase := password.NewCheckExposureUseCase(rangeClient, debouncer)
	generateSuggestionsUseCase := password.NewGenerateSuggestionsUseCase(checkExposureUseCase)

	lookupBreachesUseCase := breach.NewLookupBreachesUseCase(breachClient, breachCache, time.Hour)

	saveCredentialUseCase := credential.NewSaveCredentialUseCase(userRepo, credentialRepo, passwordService)
	listCredentialsUseCase := credential.NewListCredentialsUseCase(credentialRepo)
	deleteCredentialUseCase := credential.NewDeleteCredentialUseCase(credentialRepo)

	healthController := controller.NewHealthController(
		func() bool { return true },
		func() bool { return true },
	)
	authController := controller.NewAuthController(signupUseCase, loginUseCase, verifyEmailUseCase, resendCodeUseCase)
	passwordController := controller.NewPasswordController(checkExposureUseCase, generateSuggestionsUseCase)
	credentialController := controller.NewCredentialController(saveCredentialUseCase, listCredentialsUseCase, deleteCredentialUseCase)
	breachController := controller.NewBreachController(lookupBreachesUseCase)

	rateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)

	r := router.NewRouter(
		healthController,
		authController,
		passwordController,
		credentialController,
		breachController,
		rateLimiter,
	)
	engine := r.Setup("test")

	return &TestContext{
		server:          httptest.NewServer(engine),
		db:              db,
		hibp:            stub,
		emailSender:     emailSender,
		codes:           codes,
		userRepo:        userRepo,
		challengeStore:  challengeStore,
		passwordService: passwordService,
		signupUseCase:   signupUseCase,
	}, nil
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if hibpStub != nil {
			hibpStub.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}
