// Package ledger maintains the durable per-CIK fetch status record that makes
// runs resumable.
//
// The ledger is a single JSON document mapping canonical CIKs to their
// last-known outcome. It is persisted after every processed item via the
// atomic-write primitive, so killing the process at any point loses at most
// the in-flight item's progress. Entries are upserted, never deleted.
package ledger
