// Package logger provides structured logging for the fetcher, backed by
// zerolog. Application code logs through the Logger interface so tests can
// swap in a capturing implementation (see NewTestLogger).
package logger
