package commander

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"summarizer/internal/jobs"
	"summarizer/internal/persistence"
)

func writePairCSV(t *testing.T, pairs int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "text,summary")
	for i := 0; i < pairs; i++ {
		fmt.Fprintf(file, "alpha beta gamma delta item%d,alpha item%d\n", i, i)
	}
	return path
}

func waitForJob(t *testing.T, job *jobs.Job) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		switch job.GetStatus() {
		case jobs.JobCompleted:
			return
		case jobs.JobFailed:
			t.Fatalf("job failed: %v", job.Error)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not complete in time")
}

func TestSaveReadsResultThroughJobAccessors(t *testing.T) {
	c := NewCommander("")
	c.handleLoad([]string{writePairCSV(t, 12)})
	if len(c.pairs) != 12 {
		t.Fatalf("expected 12 pairs loaded, got %d", len(c.pairs))
	}

	bundlePath := filepath.Join(t.TempDir(), "run.bundle")

	c.handleTrain([]string{"2"})
	if c.lastJob == nil {
		t.Fatal("expected a job after handleTrain")
	}

	// Saving concurrently with the run must refuse cleanly, never read
	// a partially written result.
	for c.lastJob.GetStatus() != jobs.JobCompleted {
		c.handleSave([]string{bundlePath})
		if _, err := os.Stat(bundlePath); err == nil {
			if c.lastJob.GetStatus() != jobs.JobCompleted {
				t.Fatal("bundle written before the job completed")
			}
			break
		}
		time.Sleep(time.Millisecond)
	}
	waitForJob(t, c.lastJob)

	c.handleSave([]string{bundlePath})
	bundle, err := persistence.LoadRunBundle(bundlePath)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	if len(bundle.EpochLosses) != 2 {
		t.Fatalf("expected 2 epoch losses, got %d", len(bundle.EpochLosses))
	}
	if bundle.Metadata.Dataset == "" {
		t.Fatal("expected dataset recorded in metadata")
	}
}

func TestSaveWithoutCompletedRun(t *testing.T) {
	c := NewCommander("")
	path := filepath.Join(t.TempDir(), "run.bundle")
	c.handleSave([]string{path})
	if _, err := os.Stat(path); err == nil {
		t.Fatal("expected no bundle without a completed run")
	}
}
