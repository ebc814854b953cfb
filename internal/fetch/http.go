package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/hpungsan/verso/internal/errors"
)

// MaxBodyBytes caps a single chapter or book response.
const MaxBodyBytes = 4 << 20

// HTTPRetriever fetches locations with GET. Any status other than 200 is a failure.
type HTTPRetriever struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPRetriever creates a retriever. rps <= 0 disables throttling.
// A nil client uses http.DefaultClient; per-attempt timeouts come from the caller's context.
func NewHTTPRetriever(client *http.Client, rps float64) *HTTPRetriever {
	if client == nil {
		client = http.DefaultClient
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HTTPRetriever{client: client, limiter: rate.NewLimiter(limit, 1)}
}

// Retrieve performs the GET.
func (r *HTTPRetriever) Retrieve(ctx context.Context, location string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, errors.NewUnavailable(location, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("bad location %q: %v", location, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "verso")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.NewUnavailable(location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewUnavailable(location, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, errors.NewUnavailable(location, err)
	}
	if len(body) > MaxBodyBytes {
		return nil, errors.NewMalformedResponse(location, "body exceeds size limit")
	}
	return body, nil
}
