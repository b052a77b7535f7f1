package ui

import (
	"fmt"
	"strings"
	"time"
)

const (
	progressBar   = "█"
	progressEmpty = "░"
	barWidth      = 20
)

// StatusTracker keeps per-run fetch progress for display.
type StatusTracker struct {
	Pending   int
	Done      int
	Succeeded int
	Failed    int
	StartTime time.Time
}

// NewStatusTracker creates a tracker for a run over the given pending count.
func NewStatusTracker(pending int) *StatusTracker {
	return &StatusTracker{
		Pending:   pending,
		StartTime: time.Now(),
	}
}

// Record counts one processed item.
func (st *StatusTracker) Record(success bool) {
	st.Done++
	if success {
		st.Succeeded++
	} else {
		st.Failed++
	}
}

// GetElapsedTime returns the elapsed time since tracking started.
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}

// GetRate returns the average processing rate in items per minute.
func (st *StatusTracker) GetRate() float64 {
	elapsed := st.GetElapsedTime().Minutes()
	if elapsed == 0 {
		return 0
	}
	return float64(st.Done) / elapsed
}

// bar renders the progress bar for the current position.
func (st *StatusTracker) bar() string {
	if st.Pending == 0 {
		return strings.Repeat(progressBar, barWidth)
	}
	filled := st.Done * barWidth / st.Pending
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat(progressBar, filled) + strings.Repeat(progressEmpty, barWidth-filled)
}

// PrintProgress prints the advancing per-item progress line.
func (st *StatusTracker) PrintProgress(cik10 string) {
	if quietMode {
		return
	}
	fmt.Printf("\r[%s] %d/%d ok:%d err:%d %s",
		st.bar(), st.Done, st.Pending, st.Succeeded, st.Failed, Dim("cik="+cik10))
}

// PrintSummary prints the final run summary.
func (st *StatusTracker) PrintSummary() {
	if quietMode {
		return
	}
	fmt.Println()
	PrintInfo("Processed", fmt.Sprintf("%d (ok: %d, failed: %d)", st.Done, st.Succeeded, st.Failed))
	PrintInfo("Elapsed", st.GetElapsedTime().Round(time.Second).String())
	if st.Done > 0 {
		PrintInfo("Rate", fmt.Sprintf("%.1f items/min", st.GetRate()))
	}
}
