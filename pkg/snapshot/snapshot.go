package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"edgarfetch/pkg/edgar"
	"edgarfetch/pkg/storage"
)

const (
	// DirPrefix names dated snapshot directories: dt=YYYY-MM-DD.
	DirPrefix = "dt="

	// FileName is the payload stored inside each snapshot directory.
	FileName = "company_tickers.json"

	// DateLayout is the ISO date used in snapshot directory names.
	DateLayout = "2006-01-02"
)

// ErrNoSnapshot indicates the snapshot root, dated directory or payload file
// is missing.
var ErrNoSnapshot = errors.New("snapshot not found")

// tickerRow is one entry of the SEC company_tickers.json file. The file is
// keyed by arbitrary numeric strings; only cik_str matters here.
type tickerRow struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// LatestFile selects the snapshot payload inside the lexicographically
// greatest dt= directory under root. It fails with ErrNoSnapshot when the
// root is absent, no dated directory exists, or the payload file is missing.
func LatestFile(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: snapshot root %s", ErrNoSnapshot, root)
		}
		return "", fmt.Errorf("failed to read snapshot root: %w", err)
	}

	latest := ""
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), DirPrefix) && e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w: no %s* directories under %s", ErrNoSnapshot, DirPrefix, root)
	}

	path := filepath.Join(root, latest, FileName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: snapshot file %s", ErrNoSnapshot, path)
	}

	return path, nil
}

// LoadCIKs parses the snapshot payload into the identifier universe:
// de-duplicated CIKs in ascending order.
func LoadCIKs(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var rows map[string]tickerRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	seen := make(map[int]struct{}, len(rows))
	ciks := make([]int, 0, len(rows))
	for _, row := range rows {
		if row.CIK <= 0 {
			continue
		}
		if _, ok := seen[row.CIK]; ok {
			continue
		}
		seen[row.CIK] = struct{}{}
		ciks = append(ciks, row.CIK)
	}
	sort.Ints(ciks)

	return ciks, nil
}

// Take downloads the current company_tickers.json and stores it atomically
// under today's dated directory. This is a one-shot unconditional GET; it
// returns the stored path and the number of entries in the file.
func Take(ctx context.Context, client *edgar.Client, root string) (string, int, error) {
	return takeFrom(ctx, client, edgar.TickersURL, root)
}

func takeFrom(ctx context.Context, client *edgar.Client, url, root string) (string, int, error) {
	result, err := client.Get(ctx, url)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download tickers file: %w", err)
	}
	if !result.Success() {
		return "", 0, fmt.Errorf("tickers download returned HTTP %d", result.StatusCode)
	}

	// Reject a payload the fetch loop would choke on later.
	var rows map[string]tickerRow
	if err := json.Unmarshal(result.Body, &rows); err != nil {
		return "", 0, fmt.Errorf("tickers payload is not valid JSON: %w", err)
	}

	date := time.Now().UTC().Format(DateLayout)
	path := filepath.Join(root, DirPrefix+date, FileName)
	if _, err := storage.WriteFileAtomic(path, result.Body); err != nil {
		return "", 0, fmt.Errorf("failed to store snapshot: %w", err)
	}

	return path, len(rows), nil
}
