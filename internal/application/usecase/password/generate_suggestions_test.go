package password

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// openRangeClient reports every prefix as empty, so every candidate is
// confirmed absent.
type openRangeClient struct{}

func (openRangeClient) Lookup(_ context.Context, _ string) ([]adapter.RangeEntry, error) {
	return nil, nil
}

var candidateFormat = regexp.MustCompile(`^[A-Za-z0-9]{0,3}(Nova|Byte|Pulse|Flux|Echo|Cipher|Blaze)[1-9][0-9]{3}[!@#$%^&*?]$`)

func newSuggestionsFixture(client adapter.RangeClient) *GenerateSuggestionsUseCase {
	checker := NewCheckExposureUseCase(client, nil)
	uc := NewGenerateSuggestionsUseCase(checker)
	// Deterministic choices for stable assertions.
	uc.randInt = func(n int) int { return 0 }
	return uc
}

func TestGenerateSuggestions_FormatAndCount(t *testing.T) {
	uc := newSuggestionsFixture(openRangeClient{})

	output, err := uc.Execute(context.Background(), GenerateSuggestionsInput{Password: "mypassword"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(output.Suggestions) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(output.Suggestions))
	}

	for _, s := range output.Suggestions {
		if !candidateFormat.MatchString(s.Password) {
			t.Errorf("candidate %q does not match the expected shape", s.Password)
		}
		if !strings.HasPrefix(s.Password, "myp") {
			t.Errorf("candidate %q should carry the seed prefix", s.Password)
		}
		if !s.Safe || s.Count != 0 {
			t.Errorf("candidate %q should be safe with count 0, got safe=%v count=%d", s.Password, s.Safe, s.Count)
		}
		if s.Strength != 100 {
			t.Errorf("candidate %q should score 100, got %d", s.Password, s.Strength)
		}
	}
}

func TestGenerateSuggestions_ShortSeedStillProducesFullCandidates(t *testing.T) {
	uc := newSuggestionsFixture(openRangeClient{})

	for _, seed := range []string{"a", "!!", "x1"} {
		output, err := uc.Execute(context.Background(), GenerateSuggestionsInput{Password: seed})
		if err != nil {
			t.Fatalf("generate for seed %q failed: %v", seed, err)
		}
		for _, s := range output.Suggestions {
			if !candidateFormat.MatchString(s.Password) {
				t.Errorf("seed %q produced weak candidate %q", seed, s.Password)
			}
			// Word + number + special alone guarantee a usable length.
			if len(s.Password) < 9 {
				t.Errorf("seed %q produced too-short candidate %q", seed, s.Password)
			}
		}
	}
}

func TestGenerateSuggestions_PrefixKeepsOnlyAlphanumerics(t *testing.T) {
	uc := newSuggestionsFixture(openRangeClient{})

	output, err := uc.Execute(context.Background(), GenerateSuggestionsInput{Password: "a!b@c#d"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, s := range output.Suggestions {
		if !strings.HasPrefix(s.Password, "abc") {
			t.Errorf("expected seed prefix abc, got %q", s.Password)
		}
	}
}

func TestGenerateSuggestions_LookupFailureMarksUnknownNotSafe(t *testing.T) {
	client := &fakeRangeClient{err: errors.New("network down")}
	uc := newSuggestionsFixture(client)

	output, err := uc.Execute(context.Background(), GenerateSuggestionsInput{Password: "mypassword"})
	if err != nil {
		t.Fatalf("generate should not fail outright: %v", err)
	}
	for _, s := range output.Suggestions {
		if s.Safe {
			t.Errorf("candidate %q must not be marked safe without a confirmed lookup", s.Password)
		}
		if s.Count != ExposureUnknown {
			t.Errorf("candidate %q should report the unknown sentinel, got %d", s.Password, s.Count)
		}
	}
}

func TestGenerateSuggestions_EmptySeed(t *testing.T) {
	uc := newSuggestionsFixture(openRangeClient{})

	_, err := uc.Execute(context.Background(), GenerateSuggestionsInput{Password: ""})
	var pwdErr *domainerror.PasswordError
	if !errors.As(err, &pwdErr) || pwdErr.Code != domainerror.ErrCodeEmptyPassword {
		t.Fatalf("expected ErrCodeEmptyPassword, got %v", err)
	}
}
