package verification

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/fortify/backend/internal/domain/error"
)

func TestSignup_CreatesUnverifiedUserAndDispatchesCode(t *testing.T) {
	f := newVerificationFixture("111111")

	output, err := f.signup.Execute(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ngEnough!",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if output.User.Verified {
		t.Error("new accounts must start unverified")
	}
	if output.User.PasswordHash == "Str0ngEnough!" {
		t.Error("password must not be stored in plaintext")
	}

	dispatched, ok := f.dispatcher.lastDispatch()
	if !ok {
		t.Fatal("expected a dispatched verification code")
	}
	if dispatched.Email != "alice@example.com" || dispatched.Code != "111111" {
		t.Errorf("unexpected dispatch: %+v", dispatched)
	}
	if dispatched.Resend {
		t.Error("initial dispatch must not be flagged as a resend")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newVerificationFixture("111111", "222222")
	f.mustSignup(t, "alice@example.com")

	_, err := f.signup.Execute(context.Background(), SignupInput{
		Username: "mallory",
		Email:    "alice@example.com",
		Password: "An0therPass!",
	})
	assertAuthCode(t, err, domainerror.ErrCodeEmailExists)
}

func TestSignup_InvalidEmail(t *testing.T) {
	f := newVerificationFixture("111111")

	for _, email := range []string{"", "not-an-email", "missing@tld", "@example.com"} {
		_, err := f.signup.Execute(context.Background(), SignupInput{
			Username: "alice",
			Email:    email,
			Password: "Str0ngEnough!",
		})
		assertAuthCode(t, err, domainerror.ErrCodeInvalidEmail)
	}
}

func TestSignup_DispatchFailureKeepsAccountAndChallenge(t *testing.T) {
	f := newVerificationFixture("111111")
	f.dispatcher.failWith = errors.New("provider down")

	output, err := f.signup.Execute(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ngEnough!",
	})
	assertAuthCode(t, err, domainerror.ErrCodeDispatchFailed)
	if output == nil || output.User == nil {
		t.Fatal("expected the created user alongside the dispatch error")
	}

	// Account and challenge were committed before the dispatch attempt,
	// so the code still verifies.
	if _, err := f.verify.Execute(context.Background(), VerifyEmailInput{
		Email: "alice@example.com",
		Code:  "111111",
	}); err != nil {
		t.Fatalf("verify after failed dispatch failed: %v", err)
	}
}
