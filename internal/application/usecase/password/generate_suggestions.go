package password

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/domain/valueobject"
)

// suggestionCount is the number of candidates produced per request.
const suggestionCount = 5

// vocabulary and specials feed the candidate format:
// <alnum prefix of seed><word><4-digit number><special>.
var (
	vocabulary = []string{"Nova", "Byte", "Pulse", "Flux", "Echo", "Cipher", "Blaze"}
	specials   = "!@#$%^&*?"
)

// Suggestion is one generated candidate with its exposure and strength.
type Suggestion struct {
	Password string
	Count    int
	Strength int
	Safe     bool
}

// GenerateSuggestionsInput represents the input for suggestion generation.
type GenerateSuggestionsInput struct {
	Password string
}

// GenerateSuggestionsOutput represents the generated candidates, in order.
type GenerateSuggestionsOutput struct {
	Suggestions []Suggestion
}

// GenerateSuggestionsUseCase derives stronger candidate passwords from a
// seed and verifies each against the exposure check before presenting it as
// safe. The word, number and special segments are non-empty by construction
// even when the seed is short, so short seeds cannot produce weak stubs.
type GenerateSuggestionsUseCase struct {
	checker *CheckExposureUseCase

	// randInt returns a value in [0,n). Swappable for deterministic tests;
	// suggestions are not secrets until saved, so math/rand is acceptable.
	randInt func(n int) int
}

// NewGenerateSuggestionsUseCase creates a new GenerateSuggestionsUseCase.
func NewGenerateSuggestionsUseCase(checker *CheckExposureUseCase) *GenerateSuggestionsUseCase {
	return &GenerateSuggestionsUseCase{
		checker: checker,
		randInt: rand.IntN,
	}
}

// Execute generates the candidates. A candidate whose exposure lookup fails
// is reported with the unknown sentinel and never marked safe.
func (uc *GenerateSuggestionsUseCase) Execute(ctx context.Context, input GenerateSuggestionsInput) (*GenerateSuggestionsOutput, error) {
	if input.Password == "" {
		return nil, domainerror.NewPasswordError(
			domainerror.ErrCodeEmptyPassword,
			"enter a password to generate suggestions from",
			domainerror.ErrEmptyPassword,
		)
	}

	base := alphanumericPrefix(input.Password, 3)

	suggestions := make([]Suggestion, 0, suggestionCount)
	for i := 0; i < suggestionCount; i++ {
		word := vocabulary[uc.randInt(len(vocabulary))]
		number := 1000 + uc.randInt(9000)
		special := specials[uc.randInt(len(specials))]
		candidate := fmt.Sprintf("%s%s%d%c", base, word, number, special)

		suggestion := Suggestion{
			Password: candidate,
			Strength: valueobject.StrengthScore(candidate),
		}
		out, err := uc.checker.Execute(ctx, CheckExposureInput{Password: candidate})
		if err != nil {
			slog.Warn("Exposure check failed for suggestion candidate", "error", err)
			suggestion.Count = ExposureUnknown
			suggestion.Safe = false
		} else {
			suggestion.Count = out.Count
			suggestion.Safe = out.Count == 0
		}

		suggestions = append(suggestions, suggestion)
	}

	return &GenerateSuggestionsOutput{Suggestions: suggestions}, nil
}

// alphanumericPrefix returns the first n alphanumeric characters of s.
func alphanumericPrefix(s string, n int) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= n {
				break
			}
		}
	}
	return b.String()
}
