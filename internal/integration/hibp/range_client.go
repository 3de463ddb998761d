// Package hibp implements HTTP clients for the Have I Been Pwned APIs: the
// anonymous password range endpoint and the authenticated breached-account
// endpoint.
package hibp

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
)

// RangeClient queries GET {base}/range/{prefix}. Only the 5-character digest
// prefix is ever placed in the request; the response covers every known
// suffix sharing that prefix and is matched locally by the caller.
type RangeClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewRangeClient creates a RangeClient targeting baseURL.
func NewRangeClient(baseURL, userAgent string, timeout time.Duration) *RangeClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &RangeClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the range for prefix and parses the newline-delimited
// SUFFIX:COUNT body.
func (c *RangeClient) Lookup(ctx context.Context, prefix string) ([]adapter.RangeEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return nil, fmt.Errorf("build range request: %w", err)
	}
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("range request for prefix %s: %w", prefix, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("range endpoint returned status %d", resp.StatusCode)
	}

	var entries []adapter.RangeEntry
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		suffix, countStr, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("malformed range line %q", line)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return nil, fmt.Errorf("malformed count in range line %q: %w", line, err)
		}
		entries = append(entries, adapter.RangeEntry{
			Suffix: strings.TrimSpace(suffix),
			Count:  count,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read range response: %w", err)
	}

	return entries, nil
}

// Ensure implementation satisfies the interface.
var _ adapter.RangeClient = (*RangeClient)(nil)
