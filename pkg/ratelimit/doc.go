// Package ratelimit enforces a minimum interval between outbound requests.
//
// The SEC asks automated clients to keep a conservative, steady request rate,
// so the limiter here is a fixed-delay limiter rather than a token bucket:
// every request pays the full inter-request interval up front, with no burst
// allowance. The configured requests-per-second value is clamped so that a
// misconfigured rate can never go below one request per 100ms.
package ratelimit
