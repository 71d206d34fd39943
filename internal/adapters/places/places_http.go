package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"place-backfill-service/internal/ports"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// apiStatusError is a non-OK "status" field in an otherwise successful response.
type apiStatusError struct {
	Status  string
	Message string
}

func (e *apiStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places status %s", e.Status)
	}
	return fmt.Sprintf("places status %s: %s", e.Status, e.Message)
}

func (c *GoogleNearbySearchClient) newRequest(ctx context.Context, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+nearbySearchPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do executes one request and decodes the body. Any status other than OK or
// ZERO_RESULTS is returned as an *apiStatusError.
func (c *GoogleNearbySearchClient) do(req *http.Request) (nearbyResponse, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nearbyResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return nearbyResponse{}, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	var decoded nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nearbyResponse{}, fmt.Errorf("decode nearby response: %w", err)
	}

	switch decoded.Status {
	case statusOK, statusZeroResults:
		return decoded, nil
	default:
		return nearbyResponse{}, &apiStatusError{Status: decoded.Status, Message: decoded.ErrorMessage}
	}
}

// doWithRetry retries transient failures (network errors, 429/5xx responses,
// throttling statuses) using exponential backoff while respecting context
// cancellation. A transient failure on the last attempt is reported as
// ports.ErrRetryBudgetExhausted.
func (c *GoogleNearbySearchClient) doWithRetry(
	ctx context.Context,
	pageToken bool,
	makeReq func() (*http.Request, error),
) (nearbyResponse, error) {
	backoff := c.backoff

	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nearbyResponse{}, err
		}

		req, err := makeReq()
		if err != nil {
			return nearbyResponse{}, fmt.Errorf("make request: %w", err)
		}

		decoded, err := c.do(req)
		if err == nil {
			return decoded, nil
		}
		lastErr = err

		if !retryable(err, pageToken) {
			return nearbyResponse{}, classify(err)
		}

		if attempt == c.maxAttempts {
			break
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nearbyResponse{}, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nearbyResponse{}, fmt.Errorf("%w after %d attempts: %v", ports.ErrRetryBudgetExhausted, c.maxAttempts, lastErr)
}

func retryable(err error, pageToken bool) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var se *apiStatusError
	if errors.As(err, &se) {
		switch se.Status {
		case statusOverQueryLimit, statusUnknownError:
			return true
		case statusInvalidRequest:
			// a fresh next_page_token is rejected until it becomes active
			return pageToken
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// classify maps fatal API statuses onto the port sentinels.
func classify(err error) error {
	var se *apiStatusError
	if errors.As(err, &se) {
		switch se.Status {
		case statusRequestDenied:
			return fmt.Errorf("%w: %v", ports.ErrRequestDenied, err)
		case statusInvalidRequest:
			return fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err)
		}
	}
	return err
}
