package main

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"edgarfetch/pkg/config"
	"edgarfetch/pkg/ledger"
	"edgarfetch/pkg/logger"
	"edgarfetch/pkg/snapshot"
	"edgarfetch/pkg/ui"
)

var statusStateFile string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current snapshot and ledger state",
	Long: `Summarize the state ledger: how many items have succeeded, failed with a
terminal HTTP status, or failed for other reasons, plus the snapshot the next
fetch run would use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runStatus()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusStateFile, "state-file", "", "path of the state ledger")
}

func runStatus() {
	flags := globalFlags()
	if statusStateFile != "" {
		flags["state-file"] = statusStateFile
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	log := logger.GetLogger()

	snapshotFile, err := snapshot.LatestFile(cfg.Paths.SnapshotRoot)
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		ui.PrintWarning("No snapshot found", cfg.Paths.SnapshotRoot)
	case err != nil:
		ui.PrintError("Failed to locate snapshot", err.Error())
		os.Exit(1)
	default:
		ui.PrintInfo("Snapshot", snapshotFile)
	}

	led, err := ledger.NewStore(cfg.Paths.StateFile, log).Load()
	if err != nil {
		ui.PrintError("Failed to load state ledger", err.Error())
		os.Exit(1)
	}

	success, httpError, failed := led.Counts()
	ui.PrintInfo("State file", cfg.Paths.StateFile)
	ui.PrintInfo("Tracked items", strconv.Itoa(len(led.Items)))
	ui.PrintInfo("Succeeded", strconv.Itoa(success))
	ui.PrintInfo("HTTP errors", strconv.Itoa(httpError))
	ui.PrintInfo("Other failures", strconv.Itoa(failed))
	if !led.UpdatedAt.IsZero() {
		ui.PrintInfo("Last updated", led.UpdatedAt.UTC().Format(time.RFC3339))
	}
}
