package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/fortify/backend/internal/application/usecase/verification"
	"github.com/fortify/backend/internal/domain/entity"
	"github.com/fortify/backend/internal/integration/persistence/model"
	"github.com/fortify/backend/test/integration/mock"
)

// registerDomainSteps registers givens that seed accounts, the breach
// corpus stub and the email provider, plus state assertions.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a verified account "([^"]*)" with password "([^"]*)" exists$`, aVerifiedAccountExists)
	ctx.Step(`^an account "([^"]*)" with password "([^"]*)" has signed up$`, anAccountHasSignedUp)
	ctx.Step(`^the verification code for "([^"]*)" has expired$`, theVerificationCodeHasExpired)

	ctx.Step(`^the password "([^"]*)" appears (\d+) times in the breach corpus$`, thePasswordAppearsInCorpus)
	ctx.Step(`^the account "([^"]*)" appears in the "([^"]*)" breach$`, theAccountAppearsInBreach)
	ctx.Step(`^the breach corpus service is unavailable$`, theBreachCorpusServiceIsUnavailable)
	ctx.Step(`^the breach corpus service is available again$`, theBreachCorpusServiceIsAvailableAgain)
	ctx.Step(`^the email provider is failing$`, theEmailProviderIsFailing)

	ctx.Step(`^a verification email should have been sent to "([^"]*)"$`, aVerificationEmailShouldHaveBeenSentTo)
	ctx.Step(`^(\d+) verification emails? should have been sent$`, verificationEmailsShouldHaveBeenSent)
	ctx.Step(`^the account "([^"]*)" should be verified$`, theAccountShouldBeVerified)
	ctx.Step(`^the account "([^"]*)" should not be verified$`, theAccountShouldNotBeVerified)
	ctx.Step(`^the users table should have (\d+) rows?$`, theUsersTableShouldHaveRows)
	ctx.Step(`^the credentials table should have (\d+) rows?$`, theCredentialsTableShouldHaveRows)
}

// usernameFor derives a username from an email's local part.
func usernameFor(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func aVerifiedAccountExists(ctx context.Context, email, plaintext string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	hash, err := tc.passwordService.HashPassword(plaintext)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(usernameFor(email), email, hash)
	user.Verified = true
	return tc.userRepo.Create(ctx, user)
}

func anAccountHasSignedUp(ctx context.Context, email, plaintext string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	_, err := tc.signupUseCase.Execute(ctx, verification.SignupInput{
		Username: usernameFor(email),
		Email:    email,
		Password: plaintext,
	})
	return err
}

// theVerificationCodeHasExpired rewrites the live challenge so its code is
// unchanged but its expiry lies in the past.
func theVerificationCodeHasExpired(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	code := tc.codes.latestFor(email)
	if code == "" {
		return fmt.Errorf("no verification code was dispatched to %s", email)
	}

	expired := entity.NewVerificationChallenge(email, code, -time.Minute)
	return tc.challengeStore.Put(ctx, expired, challengeTTL)
}

func thePasswordAppearsInCorpus(ctx context.Context, plaintext string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.hibp.SeedPassword(plaintext, int64(count))
	return nil
}

func theAccountAppearsInBreach(ctx context.Context, email, breachName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.hibp.SeedBreach(email, mock.HibpBreach{
		Name:        breachName,
		Title:       breachName,
		Domain:      strings.ToLower(breachName) + ".com",
		BreachDate:  "2024-03-15",
		PwnCount:    123456,
		Description: "Seeded breach record",
		DataClasses: []string{"Email addresses", "Passwords"},
		IsVerified:  true,
	})
	return nil
}

func theBreachCorpusServiceIsUnavailable(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.hibp.SetFailing(true)
	return nil
}

func theBreachCorpusServiceIsAvailableAgain(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.hibp.SetFailing(false)
	return nil
}

func theEmailProviderIsFailing(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.emailSender.SetFailure(errors.New("provider unavailable"), false)
	return nil
}

func aVerificationEmailShouldHaveBeenSentTo(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	for _, sent := range tc.emailSender.SentEmails {
		if sent.To == email {
			return nil
		}
	}
	return fmt.Errorf("no verification email was sent to %s (%d emails sent)", email, len(tc.emailSender.SentEmails))
}

func verificationEmailsShouldHaveBeenSent(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := len(tc.emailSender.SentEmails); got != expected {
		return fmt.Errorf("expected %d verification emails, got %d", expected, got)
	}
	return nil
}

func theAccountShouldBeVerified(ctx context.Context, email string) error {
	return accountVerificationIs(ctx, email, true)
}

func theAccountShouldNotBeVerified(ctx context.Context, email string) error {
	return accountVerificationIs(ctx, email, false)
}

func accountVerificationIs(ctx context.Context, email string, expected bool) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	user, err := tc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load account %s: %w", email, err)
	}
	if user.Verified != expected {
		return fmt.Errorf("account %s verified = %t, expected %t", email, user.Verified, expected)
	}
	return nil
}

func theUsersTableShouldHaveRows(ctx context.Context, expected int) error {
	return tableShouldHaveRows(ctx, &model.UserModel{}, expected)
}

func theCredentialsTableShouldHaveRows(ctx context.Context, expected int) error {
	return tableShouldHaveRows(ctx, &model.CredentialModel{}, expected)
}

func tableShouldHaveRows(ctx context.Context, m any, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	count, err := tc.db.Count(m)
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows, got %d", expected, count)
	}
	return nil
}
