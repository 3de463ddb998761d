package hibp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
)

// BreachClient queries GET {base}/breachedaccount/{email}. The endpoint
// requires an API key and an identifying user-agent; a 404 means the
// account has no known breaches and is returned as an empty slice.
type BreachClient struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
}

// NewBreachClient creates a BreachClient targeting baseURL.
func NewBreachClient(baseURL, apiKey, userAgent string, timeout time.Duration) *BreachClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &BreachClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// BreachesForAccount fetches the breach records for email.
func (c *BreachClient) BreachesForAccount(ctx context.Context, email string) ([]entity.BreachRecord, error) {
	endpoint := c.baseURL + "/breachedaccount/" + url.PathEscape(email) + "?truncateResponse=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build breach request: %w", err)
	}
	req.Header.Set("hibp-api-key", c.apiKey)
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("breach request for %s: %w", email, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		// No breach found for that account.
		return []entity.BreachRecord{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("breach endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read breach response: %w", err)
	}

	var records []entity.BreachRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode breach response: %w", err)
	}
	return records, nil
}

// Ensure implementation satisfies the interface.
var _ adapter.BreachClient = (*BreachClient)(nil)
