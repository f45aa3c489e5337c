// Package upstream performs HTTP calls against inference backends in either
// streaming or buffered mode and reports failures as typed domain errors.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

const (
	defaultTimeout        = 120 * time.Second
	defaultErrorBodyLimit = 64 << 10
)

// Invoker wraps the HTTP client used for backend calls.
type Invoker struct {
	httpClient     *http.Client
	errorBodyLimit int64
}

// NewInvoker creates a new upstream invoker.
func NewInvoker(cfg *Config) *Invoker {
	timeout := defaultTimeout
	limit := int64(defaultErrorBodyLimit)

	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = time.Duration(cfg.Timeout) * time.Second
		}
		if cfg.ErrorBodyLimit > 0 {
			limit = cfg.ErrorBodyLimit
		}
	}

	return &Invoker{
		// Client.Timeout bounds connect plus full body read.
		httpClient:     &http.Client{Timeout: timeout},
		errorBodyLimit: limit,
	}
}

// Stream posts body and returns the response body for incremental reads.
// The caller owns the returned reader and must close it.
func (i *Invoker) Stream(ctx context.Context, url string, body []byte, headers http.Header) (io.ReadCloser, error) {
	//nolint:bodyclose // Response body is handed to the caller on success.
	resp, err := i.do(ctx, url, body, headers)
	if err != nil {
		return nil, err
	}

	return &bodyReader{url: url, body: resp.Body}, nil
}

// Call posts body and reads the whole response.
func (i *Invoker) Call(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error) {
	resp, err := i.do(ctx, url, body, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(url, err)
	}

	return data, nil
}

func (i *Invoker) do(ctx context.Context, url string, body []byte, headers http.Header) (*http.Response, error) {
	logger := observability.FromContext(ctx)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	start := time.Now()
	logger.Debug("calling upstream", observability.String("url", url))

	resp, err := i.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("upstream request failed",
			observability.String("url", url),
			observability.Duration("elapsed", time.Since(start)),
			observability.Error(err))
		return nil, transportError(url, err)
	}

	logger.Debug("upstream responded",
		observability.Int("status", resp.StatusCode),
		observability.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, i.errorBodyLimit))
		logger.Error("upstream returned error status",
			observability.Int("status", resp.StatusCode),
			observability.String("body", string(errBody)))
		return nil, &domain.UpstreamStatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
	}

	return resp, nil
}

// bodyReader maps read failures onto transport errors.
type bodyReader struct {
	url  string
	body io.ReadCloser
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.body.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, transportError(b.url, err)
	}
	return n, err
}

func (b *bodyReader) Close() error {
	return b.body.Close()
}

func transportError(url string, err error) error {
	// Context cancellation is the caller leaving, not a backend fault.
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())

	return &domain.TransportError{URL: url, Timeout: timeout, Cause: err}
}
