package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerror "github.com/fortify/backend/internal/domain/error"
)

const testCodeTTL = time.Minute

type verificationFixture struct {
	userRepo   *fakeUserRepo
	store      *fakeChallengeStore
	dispatcher *fakeDispatcher
	codeGen    *fakeCodeGenerator
	signup     *SignupUseCase
	verify     *VerifyEmailUseCase
	resend     *ResendCodeUseCase
	login      *LoginUseCase
}

func newVerificationFixture(codes ...string) *verificationFixture {
	userRepo := newFakeUserRepo()
	store := newFakeChallengeStore()
	dispatcher := &fakeDispatcher{}
	codeGen := &fakeCodeGenerator{codes: codes}
	locks := NewEmailLocks()
	issuer := NewCodeIssuer(store, codeGen, dispatcher, testCodeTTL)

	return &verificationFixture{
		userRepo:   userRepo,
		store:      store,
		dispatcher: dispatcher,
		codeGen:    codeGen,
		signup:     NewSignupUseCase(userRepo, fakePasswordService{}, issuer, locks),
		verify:     NewVerifyEmailUseCase(userRepo, store, locks),
		resend:     NewResendCodeUseCase(userRepo, issuer, locks),
		login:      NewLoginUseCase(userRepo, fakePasswordService{}),
	}
}

func (f *verificationFixture) mustSignup(t *testing.T, email string) {
	t.Helper()
	_, err := f.signup.Execute(context.Background(), SignupInput{
		Username: "alice",
		Email:    email,
		Password: "Str0ngEnough!",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
}

func assertAuthCode(t *testing.T, err error, code domainerror.AuthErrorCode) {
	t.Helper()
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Code != code {
		t.Fatalf("expected error code %s, got %s", code, authErr.Code)
	}
}

func TestVerifyEmail_HappyPath(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	dispatched, ok := f.dispatcher.lastDispatch()
	if !ok {
		t.Fatal("expected a dispatched code after signup")
	}
	if dispatched.Code != "123456" {
		t.Fatalf("expected dispatched code 123456, got %s", dispatched.Code)
	}

	output, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !output.User.Verified {
		t.Error("expected user to be verified")
	}

	stored, _ := f.userRepo.FindByEmail(context.Background(), "alice@example.com")
	if !stored.Verified {
		t.Error("expected verified flag to be persisted")
	}
}

func TestVerifyEmail_SecondAttemptReportsAlreadyVerified(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	if _, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	}); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}

	_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	})
	assertAuthCode(t, err, domainerror.ErrCodeAlreadyVerified)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "654321",
	})
	assertAuthCode(t, err, domainerror.ErrCodeCodeMismatch)

	// A failed attempt does not consume the challenge.
	if _, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	}); err != nil {
		t.Fatalf("verify with correct code failed after a wrong attempt: %v", err)
	}
}

func TestVerifyEmail_MalformedCode(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	tests := []struct {
		name string
		code string
	}{
		{"too short", "12345"},
		{"too long", "1234567"},
		{"non-digits", "12a456"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
				Email: "alice@example.com",
				Code:  tt.code,
			})
			assertAuthCode(t, err, domainerror.ErrCodeMalformedCode)
		})
	}
}

func TestVerifyEmail_UnknownUser(t *testing.T) {
	f := newVerificationFixture()

	_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "nobody@example.com",
		Code:  "123456",
	})
	assertAuthCode(t, err, domainerror.ErrCodeUserNotFound)
}

func TestVerifyEmail_NoChallenge(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")
	if err := f.store.Delete(context.Background(), "alice@example.com"); err != nil {
		t.Fatal(err)
	}

	_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	})
	assertAuthCode(t, err, domainerror.ErrCodeChallengeNotFound)
}

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	f.verify.now = func() time.Time {
		return time.Now().Add(testCodeTTL + time.Second)
	}

	_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	})
	assertAuthCode(t, err, domainerror.ErrCodeCodeExpired)
}

func TestVerifyEmail_WrongCodeAfterExpiryReportsMismatch(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	f.verify.now = func() time.Time {
		return time.Now().Add(testCodeTTL + time.Second)
	}

	_, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "654321",
	})
	assertAuthCode(t, err, domainerror.ErrCodeCodeMismatch)
}

func TestVerifyEmail_UpdateFailureKeepsChallenge(t *testing.T) {
	f := newVerificationFixture("123456")
	f.mustSignup(t, "alice@example.com")

	f.userRepo.updateErr = errors.New("database unavailable")
	if _, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	}); err == nil {
		t.Fatal("expected verify to fail when the update fails")
	}

	// The challenge survives, so the same code works once the store recovers.
	f.userRepo.updateErr = nil
	if _, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "123456",
	}); err != nil {
		t.Fatalf("verify after recovery failed: %v", err)
	}
}
