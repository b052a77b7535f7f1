package ui

import (
	"strings"
	"testing"
	"time"
)

func TestStatusTrackerRecord(t *testing.T) {
	tracker := NewStatusTracker(3)

	tracker.Record(true)
	tracker.Record(true)
	tracker.Record(false)

	if tracker.Done != 3 {
		t.Errorf("Expected 3 done, got %d", tracker.Done)
	}
	if tracker.Succeeded != 2 {
		t.Errorf("Expected 2 succeeded, got %d", tracker.Succeeded)
	}
	if tracker.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", tracker.Failed)
	}
}

func TestStatusTrackerGetRate(t *testing.T) {
	tracker := NewStatusTracker(10)
	tracker.StartTime = time.Now().Add(-time.Minute)

	if rate := tracker.GetRate(); rate != 0 {
		t.Errorf("Expected zero rate before any item, got %f", rate)
	}

	tracker.Record(true)
	tracker.Record(true)

	rate := tracker.GetRate()
	if rate < 1.5 || rate > 2.5 {
		t.Errorf("Expected roughly 2 items/min, got %f", rate)
	}
}

func TestStatusTrackerBar(t *testing.T) {
	tracker := NewStatusTracker(4)
	tracker.Record(true)
	tracker.Record(true)

	bar := tracker.bar()
	if got := strings.Count(bar, progressBar); got != barWidth/2 {
		t.Errorf("Expected half-filled bar, got %d filled segments", got)
	}

	for tracker.Done < tracker.Pending {
		tracker.Record(true)
	}
	if bar := tracker.bar(); strings.Contains(bar, progressEmpty) {
		t.Errorf("Expected full bar, got %q", bar)
	}
}
