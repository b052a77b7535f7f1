// Package snapshot resolves and reads dated captures of the CIK universe.
//
// Snapshots live under <root>/dt=<YYYY-MM-DD>/company_tickers.json, one
// directory per day, immutable once written. The current universe is always
// the lexicographically latest dt= directory; ISO dates sort correctly as
// plain strings.
package snapshot
