// Package fetcher orchestrates the resumable bulk download of companyfacts
// documents.
//
// One run resolves the latest CIK snapshot, diffs it against the ledger and
// the artifacts already on disk, and then processes the pending identifiers
// strictly sequentially: rate-limit, fetch with retry, atomic write, ledger
// update. The ledger is persisted after every single item, so killing the
// process at any point loses at most the in-flight item.
package fetcher
