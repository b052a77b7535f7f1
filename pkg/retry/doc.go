// Package retry provides bounded retry with exponential backoff for
// operations against the EDGAR API.
//
// The delay before attempt k+1 is Base * 2^k, with an optional ceiling. There
// is no jitter: the fetcher runs strictly sequentially against a single host,
// so thundering-herd protection buys nothing and predictable delays make the
// retry schedule testable.
package retry
