package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDownloadBytes caps the size of a remote workbook
const maxDownloadBytes = 64 << 20

// ErrTooLarge is returned when a remote workbook exceeds the download cap
var ErrTooLarge = errors.New("dataset too large")

// fetcher downloads a remote workbook with retry logic
type fetcher struct {
	httpClient     *http.Client
	maxRetries     int
	retryDelayBase time.Duration
	maxBytes       int64
}

func newFetcher(timeout time.Duration, maxRetries int, retryDelayBase time.Duration) *fetcher {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}
	return &fetcher{
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		maxBytes:       maxDownloadBytes,
	}
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetch performs the GET with retries on transport errors and 5xx responses.
// Client errors (4xx) are returned immediately.
func (f *fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for i := 0; i < f.maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.retryDelayBase * time.Duration(i)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}

		// One byte past the cap tells an oversized body from one that fits exactly
		body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if int64(len(body)) > f.maxBytes {
			return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, f.maxBytes)
		}
		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
