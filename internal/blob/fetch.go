package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	fetchAttempts = 3
	fetchBackoff  = 2 * time.Second
)

// Fetcher downloads a blob back from the object store by URL. A freshly
// uploaded object may not be readable immediately, so the download is
// wrapped in a bounded fixed-backoff retry (3 attempts, 2s apart) instead
// of ad-hoc loops at each call site.
type Fetcher struct {
	client   *http.Client
	attempts uint64
	interval time.Duration
}

// NewFetcher returns a Fetcher with the default retry policy. A nil
// client uses http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, attempts: fetchAttempts, interval: fetchBackoff}
}

// Fetch GETs url, retrying on transport errors and non-2xx responses.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("blob fetch status %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.interval), f.attempts-1), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("fetching blob after %d attempts: %w", f.attempts, err)
	}
	return body, nil
}
