package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"edgarfetch/pkg/logger"
	"edgarfetch/pkg/storage"
)

// Item statuses. HTTP failures carry their status code, e.g. "http_error:404".
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusHTTPError returns the ledger status for a terminal non-200 response.
func StatusHTTPError(code int) string {
	return fmt.Sprintf("http_error:%d", code)
}

// Entry records the last-known fetch outcome for one CIK.
type Entry struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
	Bytes     int64     `json:"bytes"`
	Error     string    `json:"error,omitempty"`
}

// Ledger is the durable mapping from canonical CIK to fetch outcome.
type Ledger struct {
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Items     map[string]Entry `json:"items"`
}

// Upsert sets or replaces the entry for a CIK.
func (l *Ledger) Upsert(cik10 string, entry Entry) {
	if l.Items == nil {
		l.Items = make(map[string]Entry)
	}
	l.Items[cik10] = entry
}

// Succeeded reports whether the ledger records a successful fetch for a CIK.
func (l *Ledger) Succeeded(cik10 string) bool {
	entry, ok := l.Items[cik10]
	return ok && entry.Status == StatusSuccess
}

// Counts returns the number of entries per status class: successes, HTTP
// errors and other errors.
func (l *Ledger) Counts() (success, httpError, failed int) {
	for _, entry := range l.Items {
		switch {
		case entry.Status == StatusSuccess:
			success++
		case entry.Status == StatusError:
			failed++
		default:
			httpError++
		}
	}
	return success, httpError, failed
}

// Store handles loading and persisting the ledger at a fixed path.
type Store struct {
	path   string
	logger logger.Logger
}

// NewStore creates a ledger store for the given state file path.
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Store{path: path, logger: log}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the ledger from disk, or a fresh one stamped with the current
// time when no state file exists yet.
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			now := time.Now().UTC()
			return &Ledger{
				CreatedAt: now,
				UpdatedAt: now,
				Items:     make(map[string]Entry),
			}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var led Ledger
	if err := json.Unmarshal(data, &led); err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", s.path, err)
	}
	if led.Items == nil {
		led.Items = make(map[string]Entry)
	}

	s.logger.DebugWithFields("ledger loaded", map[string]interface{}{
		"path":  s.path,
		"items": len(led.Items),
	})

	return &led, nil
}

// Save persists the full ledger, refreshing its updated_at stamp. The write
// is atomic: a crash mid-save leaves the previous state file intact.
func (s *Store) Save(led *Ledger) error {
	led.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(led, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	if _, err := storage.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}

	return nil
}
