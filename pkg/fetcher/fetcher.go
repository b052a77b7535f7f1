package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"edgarfetch/pkg/config"
	"edgarfetch/pkg/edgar"
	"edgarfetch/pkg/ledger"
	"edgarfetch/pkg/logger"
	"edgarfetch/pkg/ratelimit"
	"edgarfetch/pkg/snapshot"
	"edgarfetch/pkg/storage"
	"edgarfetch/pkg/ui"
)

// Fetcher orchestrates the companyfacts download process.
type Fetcher struct {
	client  *edgar.Client
	limiter ratelimit.Limiter
	store   *ledger.Store
	config  *config.Config
	logger  logger.Logger
}

// New creates a Fetcher from the effective configuration.
func New(cfg *config.Config) *Fetcher {
	log := logger.GetLogger()

	return &Fetcher{
		client:  edgar.NewClient(cfg.SEC.Timeout, cfg.SEC.UserAgent, &cfg.Retry, log),
		limiter: ratelimit.NewFixedInterval(cfg.RateLimit.RequestsPerSecond),
		store:   ledger.NewStore(cfg.Paths.StateFile, log),
		config:  cfg,
		logger:  log,
	}
}

// SetClient replaces the EDGAR client. Used by tests.
func (f *Fetcher) SetClient(client *edgar.Client) {
	f.client = client
}

// Run executes one resumable fetch pass over the current snapshot universe.
// Pre-flight failures (missing snapshot, unreadable ledger) abort the run;
// per-item failures are recorded in the ledger and the run continues.
func (f *Fetcher) Run(ctx context.Context) error {
	snapshotFile, err := snapshot.LatestFile(f.config.Paths.SnapshotRoot)
	if err != nil {
		return err
	}

	ciks, err := snapshot.LoadCIKs(snapshotFile)
	if err != nil {
		return err
	}
	if limit := f.config.Run.Limit; limit > 0 && len(ciks) > limit {
		ciks = ciks[:limit]
	}

	led, err := f.store.Load()
	if err != nil {
		return err
	}

	pending := f.pendingCIKs(ciks, led)

	// Persist before fetching so reconciliation survives an interrupt.
	if err := f.store.Save(led); err != nil {
		return err
	}

	ui.PrintInfo("Snapshot", snapshotFile)
	ui.PrintInfo("Total CIKs", strconv.Itoa(len(ciks)))
	ui.PrintInfo("Pending", strconv.Itoa(len(pending)))
	ui.PrintInfo("Output root", f.config.Paths.OutputRoot)
	ui.PrintInfo("State file", f.store.Path())

	f.logger.InfoWithFields("starting fetch run", map[string]interface{}{
		"snapshot": snapshotFile,
		"total":    len(ciks),
		"pending":  len(pending),
		"interval": f.limiter.Interval(),
	})

	tracker := ui.NewStatusTracker(len(pending))

	for _, cik10 := range pending {
		f.limiter.Wait()

		entry := f.fetchOne(ctx, cik10)
		led.Upsert(cik10, entry)

		// A failed ledger write would silently forfeit resumability for
		// everything processed afterwards, so it aborts the run.
		if err := f.store.Save(led); err != nil {
			return err
		}

		tracker.Record(entry.Status == ledger.StatusSuccess)
		tracker.PrintProgress(cik10)
	}

	tracker.PrintSummary()

	f.logger.InfoWithFields("fetch run finished", map[string]interface{}{
		"processed": tracker.Done,
		"succeeded": tracker.Succeeded,
		"failed":    tracker.Failed,
		"elapsed":   tracker.GetElapsedTime(),
	})

	return nil
}

// pendingCIKs computes this run's work list and reconciles the ledger with
// artifacts already on disk: a complete artifact is authoritative over a
// stale or missing ledger entry and is recorded as success without a fetch.
// Previously failed items stay pending and are retried.
func (f *Fetcher) pendingCIKs(ciks []int, led *ledger.Ledger) []string {
	pending := make([]string, 0, len(ciks))

	for _, cik := range ciks {
		cik10 := edgar.PadCIK(cik)

		if f.config.Run.Overwrite {
			pending = append(pending, cik10)
			continue
		}

		artifact := storage.ArtifactPath(f.config.Paths.OutputRoot, cik10)
		if size, ok := storage.ArtifactSize(artifact); ok {
			if !led.Succeeded(cik10) {
				led.Upsert(cik10, ledger.Entry{
					Status:    ledger.StatusSuccess,
					UpdatedAt: time.Now().UTC(),
					Bytes:     size,
				})
				f.logger.DebugWithFields("reconciled existing artifact", map[string]interface{}{
					"cik":   cik10,
					"bytes": size,
				})
			}
			continue
		}

		pending = append(pending, cik10)
	}

	return pending
}

// fetchOne processes a single CIK and returns its ledger entry. All outcomes
// are data; nothing here aborts the run.
func (f *Fetcher) fetchOne(ctx context.Context, cik10 string) ledger.Entry {
	url := f.client.CompanyFactsURL(cik10)

	result, err := f.client.Fetch(ctx, url)
	if err != nil {
		f.logger.WarnWithFields("fetch failed", map[string]interface{}{
			"cik":   cik10,
			"error": err.Error(),
		})
		return ledger.Entry{
			Status:    ledger.StatusError,
			UpdatedAt: time.Now().UTC(),
			Error:     err.Error(),
		}
	}

	if !result.Success() {
		f.logger.WarnWithFields("document not available", map[string]interface{}{
			"cik":    cik10,
			"status": result.StatusCode,
		})
		return ledger.Entry{
			Status:    ledger.StatusHTTPError(result.StatusCode),
			UpdatedAt: time.Now().UTC(),
			Error:     fmt.Sprintf("HTTP %d", result.StatusCode),
		}
	}

	path := storage.ArtifactPath(f.config.Paths.OutputRoot, cik10)
	n, err := storage.WriteFileAtomic(path, result.Body)
	if err != nil {
		f.logger.ErrorWithFields("failed to store document", map[string]interface{}{
			"cik":   cik10,
			"path":  path,
			"error": err.Error(),
		})
		return ledger.Entry{
			Status:    ledger.StatusError,
			UpdatedAt: time.Now().UTC(),
			Error:     err.Error(),
		}
	}

	return ledger.Entry{
		Status:    ledger.StatusSuccess,
		UpdatedAt: time.Now().UTC(),
		Bytes:     int64(n),
	}
}
