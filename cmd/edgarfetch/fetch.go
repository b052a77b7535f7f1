package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"edgarfetch/pkg/config"
	"edgarfetch/pkg/fetcher"
	"edgarfetch/pkg/logger"
	"edgarfetch/pkg/ui"
)

var (
	// Fetch command flags
	fetchLimit   int
	fetchRPS     float64
	overwrite    bool
	outputRoot   string
	snapshotRoot string
	stateFile    string
	timeoutSecs  int
	maxRetries   int
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download company facts for every CIK in the latest snapshot",
	Long: `Download the companyfacts JSON document for every CIK in the most recent
ticker snapshot.

Completed downloads are skipped, so an interrupted run can simply be started
again. Use --overwrite to re-download everything regardless of prior state.`,
	Example: `  # Fetch everything pending from the latest snapshot
  edgarfetch fetch

  # Smoke-test with a small universe and custom output root
  edgarfetch fetch --limit 10 --output ./data/companyfacts

  # Re-download everything at a slower pace
  edgarfetch fetch --overwrite --rps 1.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runFetch()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "fetch at most N CIKs (0 means all)")
	fetchCmd.Flags().Float64Var(&fetchRPS, "rps", 0, "requests per second (default from config)")
	fetchCmd.Flags().BoolVar(&overwrite, "overwrite", false, "re-download items that already succeeded")
	fetchCmd.Flags().StringVarP(&outputRoot, "output", "o", "", "root directory for fetched artifacts")
	fetchCmd.Flags().StringVar(&snapshotRoot, "snapshot-root", "", "root directory holding dated ticker snapshots")
	fetchCmd.Flags().StringVar(&stateFile, "state-file", "", "path of the state ledger")
	fetchCmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "per-request timeout in seconds")
	fetchCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "maximum attempts per request")
}

func runFetch() {
	flags := globalFlags()
	if fetchLimit > 0 {
		flags["limit"] = fetchLimit
	}
	if fetchRPS > 0 {
		flags["requests-per-second"] = fetchRPS
	}
	if overwrite {
		flags["overwrite"] = true
	}
	if outputRoot != "" {
		flags["output-root"] = outputRoot
	}
	if snapshotRoot != "" {
		flags["snapshot-root"] = snapshotRoot
	}
	if stateFile != "" {
		flags["state-file"] = stateFile
	}
	if timeoutSecs > 0 {
		flags["timeout"] = time.Duration(timeoutSecs) * time.Second
	}
	if maxRetries > 0 {
		flags["max-retries"] = maxRetries
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("edgarfetch starting")

	f := fetcher.New(cfg)
	if err := f.Run(context.Background()); err != nil {
		log.WithError(err).Error("Fetch run failed")
		ui.PrintError("Fetch run failed", err.Error())
		os.Exit(1)
	}
}
