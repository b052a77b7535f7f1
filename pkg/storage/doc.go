// Package storage provides the crash-safe file persistence primitive and the
// on-disk layout for fetched documents.
//
// All durable writes go through WriteFileAtomic, which stages content in a
// temporary file in the destination directory, syncs it to stable storage and
// renames it over the destination. A reader never observes a partially
// written file: it sees either the previous content or the new content.
//
// Fetched documents are laid out one directory per CIK:
//
//	<output-root>/cik=<cik10>/companyfacts.json
package storage
