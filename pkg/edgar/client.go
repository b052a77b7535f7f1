package edgar

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"edgarfetch/pkg/config"
	"edgarfetch/pkg/logger"
	"edgarfetch/pkg/retry"
)

// ErrorType classifies failures of a single request attempt.
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeServerError ErrorType = "server_error"
)

// Error represents a retryable failure of one request attempt. Terminal
// outcomes are not errors; they are FetchResults.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("edgar %s error (code %d): %s", e.Type, e.Code, e.Message)
}

// IsRetryable reports whether err is a retryable request failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := err.(*Error); ok {
		switch apiErr.Type {
		case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError:
			return true
		}
	}
	return false
}

// IsRetryableStatusCode reports whether an HTTP status code should be
// retried. The set is fixed: 429 plus the transient server errors.
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// FetchResult is the terminal outcome of one logical GET.
type FetchResult struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the fetch returned the document.
func (r FetchResult) Success() bool {
	return r.StatusCode == http.StatusOK
}

// Client is an HTTP client for the EDGAR API.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	retrier    *retry.Retrier
	logger     logger.Logger
}

// NewClient creates a new EDGAR client. retryCfg may be nil for the default
// retry policy.
func NewClient(timeout time.Duration, userAgent string, retryCfg *config.RetryConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	rc := retry.DefaultConfig()
	rc.RetryIf = IsRetryable
	rc.Logger = log
	if retryCfg != nil {
		rc.MaxAttempts = retryCfg.MaxAttempts
		rc.Backoff = &retry.ExponentialBackoff{
			Base: retryCfg.BaseBackoff,
			Max:  retryCfg.MaxBackoff,
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent":      userAgent,
			"Accept-Encoding": "gzip, deflate",
		},
		baseURL: CompanyFactsBaseURL,
		retrier: retry.NewRetrier(rc),
		logger:  log,
	}
}

// SetBaseURL overrides the companyfacts base URL. Used by tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// CompanyFactsURL returns the companyfacts URL for a canonical CIK.
func (c *Client) CompanyFactsURL(cik10 string) string {
	return CompanyFactsURL(c.baseURL, cik10)
}

// Get performs exactly one GET attempt against url and classifies the
// outcome. A transport failure or a retryable status is returned as a typed
// *Error (the body of a retryable status is discarded); anything else,
// including client errors like 404, is a terminal FetchResult.
func (c *Client) Get(ctx context.Context, url string) (FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.WarnWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return FetchResult{}, &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if IsRetryableStatusCode(resp.StatusCode) {
		// Drain so the connection can be reused; the body is of no use.
		io.Copy(io.Discard, resp.Body)

		errType := ErrorTypeServerError
		if resp.StatusCode == http.StatusTooManyRequests {
			errType = ErrorTypeRateLimit
		}
		return FetchResult{}, &Error{
			Type:    errType,
			Message: fmt.Sprintf("retryable HTTP %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	// Setting Accept-Encoding by hand turns off the transport's transparent
	// gzip handling, so the body arrives as the server encoded it.
	body, err := decodeBody(raw, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return FetchResult{}, &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to decode response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return FetchResult{StatusCode: resp.StatusCode, Body: body}, nil
}

// decodeBody decompresses data according to the response Content-Encoding.
func decodeBody(data []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return data, nil
	case "gzip":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case "deflate":
		// "deflate" means zlib on the wire, but some servers send raw
		// deflate streams.
		if r, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
			defer r.Close()
			return io.ReadAll(r)
		}
		r := flate.NewReader(bytes.NewReader(data))
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// Fetch performs one logical GET with the client's retry policy. Retryable
// failures are retried with exponential backoff; when attempts are exhausted
// the error wraps retry.ErrRetriesExhausted with the last cause.
func (c *Client) Fetch(ctx context.Context, url string) (FetchResult, error) {
	var result FetchResult

	err := c.retrier.Do(ctx, func() error {
		var opErr error
		result, opErr = c.Get(ctx, url)
		return opErr
	})
	if err != nil {
		return FetchResult{}, err
	}

	return result, nil
}
