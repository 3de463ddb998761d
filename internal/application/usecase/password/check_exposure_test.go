package password

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fortify/backend/internal/application/adapter"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

// fakeRangeClient records queried prefixes and serves canned suffix lists.
type fakeRangeClient struct {
	mu       sync.Mutex
	prefixes []string
	entries  map[string][]adapter.RangeEntry
	err      error
}

func (c *fakeRangeClient) Lookup(_ context.Context, prefix string) ([]adapter.RangeEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefixes = append(c.prefixes, prefix)
	if c.err != nil {
		return nil, c.err
	}
	return c.entries[prefix], nil
}

func TestCheckExposure_KnownPassword(t *testing.T) {
	// SHA-1("password") = 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8.
	client := &fakeRangeClient{
		entries: map[string][]adapter.RangeEntry{
			"5BAA6": {
				{Suffix: "003D68EB55068C33ACE09247EE4C639306B", Count: 3},
				{Suffix: "1E4C9B93F3F0682250B6CF8331B7EE68FD8", Count: 3730330},
				{Suffix: "011053FD0102E94D6AE2F8B83D76FAF94F6", Count: 873},
			},
		},
	}
	uc := NewCheckExposureUseCase(client, nil)

	output, err := uc.Execute(context.Background(), CheckExposureInput{Password: "password"})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if output.Count != 3730330 {
		t.Errorf("expected count 3730330, got %d", output.Count)
	}
	if output.Strength != 25 {
		t.Errorf("expected strength 25, got %d", output.Strength)
	}
}

func TestCheckExposure_OnlyPrefixLeavesProcess(t *testing.T) {
	client := &fakeRangeClient{entries: map[string][]adapter.RangeEntry{}}
	uc := NewCheckExposureUseCase(client, nil)

	if _, err := uc.Execute(context.Background(), CheckExposureInput{Password: "password"}); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if len(client.prefixes) != 1 {
		t.Fatalf("expected exactly one lookup, got %d", len(client.prefixes))
	}
	prefix := client.prefixes[0]
	if prefix != "5BAA6" {
		t.Errorf("expected prefix 5BAA6, got %q", prefix)
	}
	if len(prefix) != 5 {
		t.Errorf("prefix must be 5 characters, got %d", len(prefix))
	}
	if strings.Contains(prefix, "1E4C9B93F3F0682250B6CF8331B7EE68FD8") {
		t.Error("suffix must never be sent to the range endpoint")
	}
}

func TestCheckExposure_AbsentSuffixMeansZero(t *testing.T) {
	client := &fakeRangeClient{
		entries: map[string][]adapter.RangeEntry{
			"5BAA6": {
				{Suffix: "003D68EB55068C33ACE09247EE4C639306B", Count: 3},
			},
		},
	}
	uc := NewCheckExposureUseCase(client, nil)

	output, err := uc.Execute(context.Background(), CheckExposureInput{Password: "password"})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if output.Count != 0 {
		t.Errorf("expected count 0 for absent suffix, got %d", output.Count)
	}
}

func TestCheckExposure_SuffixMatchIsCaseInsensitive(t *testing.T) {
	client := &fakeRangeClient{
		entries: map[string][]adapter.RangeEntry{
			"5BAA6": {
				{Suffix: "1e4c9b93f3f0682250b6cf8331b7ee68fd8", Count: 42},
			},
		},
	}
	uc := NewCheckExposureUseCase(client, nil)

	output, err := uc.Execute(context.Background(), CheckExposureInput{Password: "password"})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if output.Count != 42 {
		t.Errorf("expected count 42, got %d", output.Count)
	}
}

func TestCheckExposure_LookupFailureIsAnErrorNotZero(t *testing.T) {
	client := &fakeRangeClient{err: errors.New("network down")}
	uc := NewCheckExposureUseCase(client, nil)

	_, err := uc.Execute(context.Background(), CheckExposureInput{Password: "password"})
	if err == nil {
		t.Fatal("expected an error when the lookup fails")
	}

	var pwdErr *domainerror.PasswordError
	if !errors.As(err, &pwdErr) || pwdErr.Code != domainerror.ErrCodeExposureLookupFailed {
		t.Fatalf("expected ErrCodeExposureLookupFailed, got %v", err)
	}
}

func TestCheckExposure_EmptyPassword(t *testing.T) {
	client := &fakeRangeClient{}
	uc := NewCheckExposureUseCase(client, nil)

	_, err := uc.Execute(context.Background(), CheckExposureInput{Password: ""})
	var pwdErr *domainerror.PasswordError
	if !errors.As(err, &pwdErr) || pwdErr.Code != domainerror.ErrCodeEmptyPassword {
		t.Fatalf("expected ErrCodeEmptyPassword, got %v", err)
	}
	if len(client.prefixes) != 0 {
		t.Error("empty password must not trigger a lookup")
	}
}
