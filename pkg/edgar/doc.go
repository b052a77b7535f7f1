// Package edgar provides the HTTP client for the SEC EDGAR API.
//
// A single logical GET is classified into one of three outcomes:
//
//   - success: HTTP 200, the response body is returned
//   - retryable failure: a transport error or a status in {429, 500, 502,
//     503, 504}, surfaced as a typed *Error so the retry layer can back off
//     and try again
//   - terminal failure: any other status (404 for a CIK with no facts being
//     the common case), returned as a plain FetchResult with no error —
//     these will never succeed on retry and are recorded per item instead
//
// Fetch wraps Get with the configured retry policy; Get performs exactly one
// attempt.
package edgar
