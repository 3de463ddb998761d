// Package password contains password analysis use cases: strength scoring,
// k-anonymity exposure checks and suggestion generation.
package password

import (
	"context"
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/domain/valueobject"
)

// ExposureUnknown is the sentinel count reported when the range lookup
// failed. It is distinct from 0, which means the password is confirmed
// absent from the corpus.
const ExposureUnknown = -1

// hashPrefixLength is the number of leading hex characters of the SHA-1
// digest sent to the range endpoint. The remaining 35 characters never
// leave the process.
const hashPrefixLength = 5

// CheckExposureInput represents the input for an exposure check.
type CheckExposureInput struct {
	Password string

	// DebounceKey identifies the interactive input stream (e.g. the user's
	// email). When set, the check waits out the debounce delay and is
	// abandoned if a newer check arrives for the same key. Empty disables
	// debouncing.
	DebounceKey string
}

// CheckExposureOutput represents the result of an exposure check.
type CheckExposureOutput struct {
	// Count is the number of corpus appearances, 0 when confirmed absent.
	Count int

	// Strength is the 0-100 strength score of the checked password.
	Strength int
}

// CheckExposureUseCase implements the k-anonymity exposure check: it hashes
// the password locally, sends only the digest prefix to the range endpoint
// and matches the suffix against the response in-process.
type CheckExposureUseCase struct {
	rangeClient adapter.RangeClient
	debouncer   *Debouncer
}

// NewCheckExposureUseCase creates a new CheckExposureUseCase instance.
// debouncer may be nil to disable debouncing entirely.
func NewCheckExposureUseCase(rangeClient adapter.RangeClient, debouncer *Debouncer) *CheckExposureUseCase {
	return &CheckExposureUseCase{
		rangeClient: rangeClient,
		debouncer:   debouncer,
	}
}

// Execute performs the check. Lookup failures surface as
// ErrExposureLookupFailed, never as a zero count.
func (uc *CheckExposureUseCase) Execute(ctx context.Context, input CheckExposureInput) (*CheckExposureOutput, error) {
	if input.Password == "" {
		return nil, domainerror.NewPasswordError(
			domainerror.ErrCodeEmptyPassword,
			"password must not be empty",
			domainerror.ErrEmptyPassword,
		)
	}

	if uc.debouncer != nil && input.DebounceKey != "" {
		if err := uc.debouncer.Wait(ctx, input.DebounceKey); err != nil {
			return nil, err
		}
	}

	digest := fmt.Sprintf("%X", sha1.Sum([]byte(input.Password)))
	prefix := digest[:hashPrefixLength]
	suffix := digest[hashPrefixLength:]

	entries, err := uc.rangeClient.Lookup(ctx, prefix)
	if err != nil {
		return nil, domainerror.NewPasswordError(
			domainerror.ErrCodeExposureLookupFailed,
			"could not check password exposure",
			err,
		)
	}

	count := 0
	for _, entry := range entries {
		if strings.EqualFold(entry.Suffix, suffix) {
			count = entry.Count
			break
		}
	}

	return &CheckExposureOutput{
		Count:    count,
		Strength: valueobject.StrengthScore(input.Password),
	}, nil
}
