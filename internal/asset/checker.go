package asset

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPChecker verifies assets with HEAD requests against a base URL.
type HTTPChecker struct {
	baseURL string
	client  *http.Client
}

// NewHTTPChecker returns a checker for the asset host at baseURL. The
// client's own timeout is a second bound under the resolver's context
// deadline so a stalled host can never block a turn.
func NewHTTPChecker(baseURL string, timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &HTTPChecker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Exists implements Checker. Any 2xx status counts as present.
func (c *HTTPChecker) Exists(ctx context.Context, key string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/"+key, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build asset check request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check asset %s: %w", key, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
