package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sopforge/sopforge/internal/config"
	"github.com/sopforge/sopforge/internal/outline"
)

const validYAML = `
type: STANDARD OPERATING PROCEDURE
document_no: SOP-007
document_code: QA-SOP
effective_date: 2026-03-01
document_rev: "01"
title: Sample Handling
purpose:
  - Describe sample handling.
procedure:
  receiving:
    - Log the sample
    - checks:
        - Verify label
        - Verify seal
`

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWorker_Process(t *testing.T) {
	dir := t.TempDir()
	w := NewWorker(outline.New(testLogger()), testLogger(), dir, "")

	job := NewJob("sample.yaml", "markdown", []byte(validYAML))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Errors)
	}
	want := filepath.Join(dir, "sample-handling.md")
	if snap.OutputPath != want {
		t.Errorf("expected output %q, got %q", want, snap.OutputPath)
	}

	out, err := os.ReadFile(snap.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(out), "# Sample Handling") {
		t.Errorf("expected rendered markdown, got:\n%s", out)
	}
}

func TestWorker_Process_InvalidYAML(t *testing.T) {
	w := NewWorker(outline.New(testLogger()), testLogger(), t.TempDir(), "")

	job := NewJob("bad.yaml", "markdown", []byte("key: [unclosed"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if snap.Phase != "loading" {
		t.Errorf("expected failure in loading phase, got %q", snap.Phase)
	}
	if len(snap.Errors) == 0 {
		t.Error("expected recorded error")
	}
}

func TestWorker_Process_ValidationFailure(t *testing.T) {
	w := NewWorker(outline.New(testLogger()), testLogger(), t.TempDir(), "")

	job := NewJob("incomplete.yaml", "markdown", []byte("title: Only A Title"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if len(snap.Errors) == 0 || !strings.Contains(snap.Errors[0], "required") {
		t.Errorf("expected validation error, got %v", snap.Errors)
	}
}

func TestWorker_Process_UnknownFormat(t *testing.T) {
	w := NewWorker(outline.New(testLogger()), testLogger(), t.TempDir(), "")

	job := NewJob("sample.yaml", "epub", []byte(validYAML))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if snap.Phase != "rendering" {
		t.Errorf("expected failure in rendering phase, got %q", snap.Phase)
	}
}

func TestOrchestrator_SubmitAndProcess(t *testing.T) {
	cfg := config.Config{
		OutputDir:    t.TempDir(),
		WorkerCount:  2,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
	}
	o := NewOrchestrator(cfg, outline.New(testLogger()), testLogger(), "")
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("sample.yaml", "text", []byte(validYAML))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	waitForJob(t, o, job.ID)
}

// waitForJob polls until the job completes, failing the test on error or
// timeout.
func waitForJob(t *testing.T, o *Orchestrator, id string) JobSnapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		snap := o.GetJob(id).Snapshot()
		if snap.Status == StatusCompleted {
			return snap
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job did not complete, status %s", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOrchestrator_CustomTemplate(t *testing.T) {
	cfg := config.Config{
		OutputDir:    t.TempDir(),
		WorkerCount:  1,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
	}
	o := NewOrchestrator(cfg, outline.New(testLogger()), testLogger(), "TITLE={{ .title }}")
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("sample.yaml", "markdown", []byte(validYAML))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := waitForJob(t, o, job.ID)

	out, err := os.ReadFile(snap.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := string(out); got != "TITLE=Sample Handling" {
		t.Errorf("expected custom template output, got %q", got)
	}
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	cfg := config.Config{
		OutputDir:    t.TempDir(),
		WorkerCount:  1,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
	}
	o := NewOrchestrator(cfg, outline.New(testLogger()), testLogger(), "")
	o.Start(context.Background())
	o.Stop()

	job := NewJob("late.yaml", "markdown", []byte(validYAML))
	if err := o.Submit(job); err == nil {
		t.Fatal("expected error submitting after stop")
	}
	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", snap.Status)
	}
	if snap.Phase != "shutdown" {
		t.Errorf("expected shutdown phase, got %q", snap.Phase)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{
		OutputDir:    t.TempDir(),
		WorkerCount:  1,
		MaxQueueSize: 1,
		JobTTL:       time.Hour,
	}
	// Never started: nothing drains the queue.
	o := NewOrchestrator(cfg, outline.New(testLogger()), testLogger(), "")

	first := NewJob("a.yaml", "markdown", []byte(validYAML))
	if err := o.Submit(first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := NewJob("b.yaml", "markdown", []byte(validYAML))
	err := o.Submit(second)
	if err == nil {
		t.Fatal("expected queue-full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to be marked failed, got %s", second.Snapshot().Status)
	}
	// The rejected job is still queryable.
	if o.GetJob(second.ID) == nil {
		t.Error("expected rejected job to remain in the store")
	}
}
