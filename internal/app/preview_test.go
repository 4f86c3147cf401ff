package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bakerapp/baker/internal/app"
	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/scanner"
	"github.com/bakerapp/baker/internal/testutil"
)

func newTestOrchestrator(t *testing.T) *app.Orchestrator {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	return app.NewOrchestrator(cfg, nil, &testutil.DummyLogger{})
}

// seedBreadcrumbs writes current breadcrumbs for a project as a scan would.
func seedBreadcrumbs(t *testing.T, projectPath string) *breadcrumbs.Snapshot {
	t.Helper()
	snap := scanner.ComputeSnapshot(projectPath, nil, time.Now())
	if err := breadcrumbs.Save(projectPath, snap, false); err != nil {
		t.Fatalf("seeding breadcrumbs: %v", err)
	}
	return snap
}

func TestPreviewProject_NewProject(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Fresh", 1)
	o := newTestOrchestrator(t)

	preview, err := o.PreviewProject(context.Background(), project)
	if err != nil {
		t.Fatalf("PreviewProject: %v", err)
	}

	if preview.HasBreadcrumbs {
		t.Error("new project should have no breadcrumbs yet")
	}
	if !preview.Full.HasChanges || !preview.Detail.HasChanges {
		t.Error("a brand new snapshot is all additions")
	}
	if preview.Full.Summary.Added == 0 {
		t.Errorf("expected additions, got %+v", preview.Full.Summary)
	}
	if len(preview.RawDiff) == 0 {
		t.Error("raw diff should show the whole new file")
	}
}

func TestPreviewProject_UpToDate(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Steady", 1)
	seedBreadcrumbs(t, project)
	o := newTestOrchestrator(t)

	preview, err := o.PreviewProject(context.Background(), project)
	if err != nil {
		t.Fatalf("PreviewProject: %v", err)
	}

	if !preview.HasBreadcrumbs {
		t.Error("expected breadcrumbs present")
	}
	if preview.Detail.HasChanges {
		t.Errorf("an up-to-date project must not need an update: %+v", preview.Detail.Summary)
	}
}

func TestPreviewProject_ReadOnly(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Untouched", 1)
	seedBreadcrumbs(t, project)
	before, err := breadcrumbs.LoadRaw(project)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}

	o := newTestOrchestrator(t)
	if _, err := o.PreviewProject(context.Background(), project); err != nil {
		t.Fatalf("PreviewProject: %v", err)
	}

	after, err := breadcrumbs.LoadRaw(project)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if before != after {
		t.Error("preview must never write to disk")
	}
}

func TestPreviewProject_InvalidBreadcrumbs(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Corrupt", 1)
	testutil.WriteFile(t, breadcrumbs.Path(project), "{broken")
	o := newTestOrchestrator(t)

	preview, err := o.PreviewProject(context.Background(), project)
	if err != nil {
		t.Fatalf("a corrupt file degrades, it does not fail: %v", err)
	}
	if !preview.InvalidBreadcrumbs {
		t.Error("corruption should be flagged")
	}
	if !preview.Detail.HasChanges {
		t.Error("a corrupt file previews as a full regeneration")
	}
}

func TestPreviewBatch_MixedResults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fresh := testutil.MakeProjectFolder(t, root, "Fresh", 1)
	steady := testutil.MakeProjectFolder(t, root, "Steady", 1)
	seedBreadcrumbs(t, steady)
	o := newTestOrchestrator(t)

	batch, err := o.PreviewBatch(context.Background(), []string{fresh, steady})
	if err != nil {
		t.Fatalf("PreviewBatch: %v", err)
	}

	if len(batch.Previews) != 2 {
		t.Fatalf("expected 2 previews, got %d", len(batch.Previews))
	}
	if batch.Summary.TotalProjects != 2 {
		t.Errorf("total projects: got %d", batch.Summary.TotalProjects)
	}
	if batch.Summary.ProjectsWithChanges != 1 {
		t.Errorf("only the fresh project needs an update, got %d", batch.Summary.ProjectsWithChanges)
	}
	if !batch.Summary.HasAnyChanges() {
		t.Error("apply should be enabled")
	}
}

func TestApplyProject_CreateMissing(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Fresh", 1)
	o := newTestOrchestrator(t)

	outcome := o.ApplyProject(context.Background(), project, true)
	if outcome.Status != "created" {
		t.Fatalf("expected created, got %s (%s)", outcome.Status, outcome.Error)
	}
	if !breadcrumbs.Exists(project) {
		t.Error("breadcrumbs file should exist after apply")
	}

	snap, err := breadcrumbs.Load(project)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.CreatedBy != "Baker" {
		t.Errorf("fresh files are created by the scanner, got %q", snap.CreatedBy)
	}
	if snap.ScannedBy == nil || *snap.ScannedBy != "Baker" {
		t.Errorf("scannedBy: got %v", snap.ScannedBy)
	}
}

func TestApplyProject_SkipsMissingWithoutFlag(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Fresh", 1)
	o := newTestOrchestrator(t)

	outcome := o.ApplyProject(context.Background(), project, false)
	if outcome.Status != "skipped" {
		t.Errorf("expected skipped, got %s", outcome.Status)
	}
	if breadcrumbs.Exists(project) {
		t.Error("nothing should be written")
	}
}

func TestApplyProject_SkipsWhenNoMeaningfulChange(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Steady", 1)
	seedBreadcrumbs(t, project)
	before, _ := breadcrumbs.LoadRaw(project)
	o := newTestOrchestrator(t)

	outcome := o.ApplyProject(context.Background(), project, false)
	if outcome.Status != "skipped" {
		t.Errorf("expected skipped, got %s (%s)", outcome.Status, outcome.Error)
	}
	after, _ := breadcrumbs.LoadRaw(project)
	if before != after {
		t.Error("a skipped project must not be rewritten")
	}
}

func TestApplyProject_UpdatesAndBacksUp(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Growing", 1)
	seedBreadcrumbs(t, project)
	before, _ := breadcrumbs.LoadRaw(project)
	// New footage makes the update meaningful.
	testutil.WriteFile(t, filepath.Join(project, "Footage", "Camera 1", "extra.mp4"), strings.Repeat("x", 10))
	o := newTestOrchestrator(t)

	outcome := o.ApplyProject(context.Background(), project, false)
	if outcome.Status != "updated" {
		t.Fatalf("expected updated, got %s (%s)", outcome.Status, outcome.Error)
	}

	after, err := breadcrumbs.LoadRaw(project)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if after == before {
		t.Error("file should have been rewritten")
	}
	backup, err := os.ReadFile(breadcrumbs.Path(project) + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != before {
		t.Error("backup should hold the previous contents")
	}

	snap, err := breadcrumbs.Load(project)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Files) != 2 {
		t.Errorf("expected the new file recorded, got %+v", snap.Files)
	}
	if !strings.HasSuffix(snap.CreatedBy, " - updated by Baker") {
		t.Errorf("creator should carry the update suffix, got %q", snap.CreatedBy)
	}
}

func TestApplyProject_RegeneratesCorruptFile(t *testing.T) {
	t.Parallel()

	project := testutil.MakeProjectFolder(t, t.TempDir(), "Corrupt", 1)
	testutil.WriteFile(t, breadcrumbs.Path(project), "{broken")
	o := newTestOrchestrator(t)

	outcome := o.ApplyProject(context.Background(), project, false)
	if outcome.Status != "updated" {
		t.Fatalf("a corrupt file regenerates in place, got %s (%s)", outcome.Status, outcome.Error)
	}
	if _, err := breadcrumbs.Load(project); err != nil {
		t.Errorf("regenerated file should parse: %v", err)
	}
}

func TestStartBatchApplyJob_StreamsOutcomes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fresh := testutil.MakeProjectFolder(t, root, "Fresh", 1)
	steady := testutil.MakeProjectFolder(t, root, "Steady", 1)
	seedBreadcrumbs(t, steady)
	o := newTestOrchestrator(t)

	job, err := o.StartBatchApplyJob(context.Background(), app.BatchApplyRequest{
		Projects:      []string{fresh, steady},
		CreateMissing: true,
	})
	if err != nil {
		t.Fatalf("StartBatchApplyJob: %v", err)
	}

	var projectEvents int
	for ev := range job.Events {
		if ev.Type == app.JobEventProject {
			projectEvents++
		}
	}

	if projectEvents != 2 {
		t.Errorf("expected 2 per-project events, got %d", projectEvents)
	}

	final := o.GetJob(job.ID)
	if final == nil {
		t.Fatal("job should still be listed")
	}
	if final.Status != app.JobDone {
		t.Errorf("expected done, got %s (%s)", final.Status, final.Error)
	}
	if final.BatchResult == nil {
		t.Fatal("batch result missing")
	}
	if final.BatchResult.Created != 1 || final.BatchResult.Skipped != 1 {
		t.Errorf("unexpected result: %+v", final.BatchResult)
	}
}

func TestStartBatchApplyJob_RequiresProjects(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t)
	if _, err := o.StartBatchApplyJob(context.Background(), app.BatchApplyRequest{}); err == nil {
		t.Error("expected an error for an empty selection")
	}
}
