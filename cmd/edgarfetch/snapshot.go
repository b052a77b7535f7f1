package main

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"edgarfetch/pkg/config"
	"edgarfetch/pkg/edgar"
	"edgarfetch/pkg/logger"
	"edgarfetch/pkg/snapshot"
	"edgarfetch/pkg/ui"
)

var snapshotTargetRoot string

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Download today's company ticker snapshot",
	Long: `Download the current company ticker file from the SEC and store it under a
dated directory. Subsequent fetch runs use the most recent snapshot as their
CIK universe.`,
	Example: `  # Take a snapshot into the configured snapshot root
  edgarfetch snapshot

  # Take a snapshot into a specific directory
  edgarfetch snapshot --snapshot-root ./data/tickers`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runSnapshot()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVar(&snapshotTargetRoot, "snapshot-root", "", "root directory for dated ticker snapshots")
}

func runSnapshot() {
	flags := globalFlags()
	if snapshotTargetRoot != "" {
		flags["snapshot-root"] = snapshotTargetRoot
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

	client := edgar.NewClient(cfg.SEC.Timeout, cfg.SEC.UserAgent, &cfg.Retry, log)
	path, count, err := snapshot.Take(context.Background(), client, cfg.Paths.SnapshotRoot)
	if err != nil {
		log.WithError(err).Error("Snapshot failed")
		ui.PrintError("Snapshot failed", err.Error())
		os.Exit(1)
	}

	ui.PrintInfo("Snapshot", path)
	ui.PrintInfo("Companies", strconv.Itoa(count))
	ui.PrintSuccess("Snapshot complete")
}
