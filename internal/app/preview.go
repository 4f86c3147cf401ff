package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/diff"
	"github.com/bakerapp/baker/internal/logging"
	"github.com/bakerapp/baker/internal/scanner"
)

// previewWorkers bounds the concurrency of batch preview computation. Folder
// size walks are IO bound; a handful in flight keeps a spinning disk sane.
const previewWorkers = 4

// ProjectPreviewResponse is a single project's preview: the structured diffs
// plus the raw text diff of the file that would be written.
type ProjectPreviewResponse struct {
	*diff.ProjectPreview
	RawDiff            []diff.Chunk `json:"rawDiff"`
	HasBreadcrumbs     bool         `json:"hasBreadcrumbs"`
	InvalidBreadcrumbs bool         `json:"invalidBreadcrumbs"`
	Stale              bool         `json:"stale"`
}

// BatchPreview is the result of previewing a selection of projects. Failures
// are recorded per path; one broken folder never sinks the batch.
type BatchPreview struct {
	Previews  map[string]*ProjectPreviewResponse `json:"previews"`
	Failures  map[string]string                  `json:"failures,omitempty"`
	Summary   diff.BatchUpdateSummary            `json:"summary"`
	Generated string                             `json:"generated"`
}

// BatchApplyRequest selects the projects for a batch update.
type BatchApplyRequest struct {
	Projects []string `json:"projects"`

	// CreateMissing writes breadcrumbs into valid project folders that have
	// none yet; otherwise such folders are skipped.
	CreateMissing bool `json:"createMissing"`
}

// ProjectUpdateOutcome is one project's result within a batch update.
type ProjectUpdateOutcome struct {
	ProjectPath string `json:"projectPath"`
	ProjectName string `json:"projectName"`
	Status      string `json:"status"` // "created" | "updated" | "skipped" | "failed"
	Error       string `json:"error,omitempty"`
}

// BatchUpdateResult is the outcome of one batch update run.
type BatchUpdateResult struct {
	Successful int                    `json:"successful"`
	Failed     int                    `json:"failed"`
	Skipped    int                    `json:"skipped"`
	Created    int                    `json:"created"`
	Updated    int                    `json:"updated"`
	Outcomes   []ProjectUpdateOutcome `json:"outcomes"`
}

// PreviewProject computes the preview for one project folder: what its
// breadcrumbs would become if updated right now, diffed against what is on
// disk. Read-only.
func (o *Orchestrator) PreviewProject(ctx context.Context, projectPath string) (*ProjectPreviewResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, loadErr := breadcrumbs.Load(projectPath)
	invalid := false
	if loadErr != nil {
		if !errors.Is(loadErr, breadcrumbs.ErrInvalidFile) {
			return nil, loadErr
		}
		// Corrupt file: diff against nothing, so the preview shows a full
		// regeneration.
		invalid = true
		current = nil
	}

	head := scanner.ComputeSnapshot(projectPath, current, time.Now())
	name := filepath.Base(projectPath)
	preview := diff.NewProjectPreview(name, projectPath, current, head)

	baseRaw, err := breadcrumbs.LoadRaw(projectPath)
	if err != nil {
		baseRaw = ""
	}
	headRaw, err := breadcrumbs.Render(head)
	if err != nil {
		return nil, err
	}

	return &ProjectPreviewResponse{
		ProjectPreview:     preview,
		RawDiff:            diff.RawChunks(baseRaw, string(headRaw)),
		HasBreadcrumbs:     breadcrumbs.Exists(projectPath),
		InvalidBreadcrumbs: invalid,
		Stale:              scanner.CheckStale(projectPath),
	}, nil
}

// PreviewBatch previews every selected project concurrently and folds the
// results into a batch summary. A project whose preview fails lands in
// Failures and still counts toward the summary's total.
func (o *Orchestrator) PreviewBatch(ctx context.Context, projectPaths []string) (*BatchPreview, error) {
	batch := &BatchPreview{
		Previews:  make(map[string]*ProjectPreviewResponse, len(projectPaths)),
		Failures:  make(map[string]string),
		Generated: time.Now().UTC().Format(time.RFC3339),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, previewWorkers)

	for _, path := range projectPaths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			preview, err := o.PreviewProject(ctx, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				batch.Failures[path] = err.Error()
				return
			}
			batch.Previews[path] = preview
		}(path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previews := make(map[string]*diff.ProjectPreview, len(batch.Previews))
	for path, p := range batch.Previews {
		previews[path] = p.ProjectPreview
	}
	batch.Summary = diff.SummarizeBatch(projectPaths, previews)

	if len(batch.Failures) == 0 {
		batch.Failures = nil
	}
	return batch, nil
}

// ApplyProject updates one project's breadcrumbs file, returning its outcome.
// The write is gated the same way the preview gates the apply button: no
// meaningful change, no write, unless the folder has no breadcrumbs at all
// and createMissing allows a fresh file.
func (o *Orchestrator) ApplyProject(ctx context.Context, projectPath string, createMissing bool) ProjectUpdateOutcome {
	outcome := ProjectUpdateOutcome{
		ProjectPath: projectPath,
		ProjectName: filepath.Base(projectPath),
	}

	if err := ctx.Err(); err != nil {
		outcome.Status = "skipped"
		outcome.Error = err.Error()
		return outcome
	}

	current, loadErr := breadcrumbs.Load(projectPath)
	invalid := loadErr != nil && errors.Is(loadErr, breadcrumbs.ErrInvalidFile)
	if loadErr != nil && !invalid {
		outcome.Status = "failed"
		outcome.Error = loadErr.Error()
		return outcome
	}
	if invalid {
		current = nil
	}

	exists := breadcrumbs.Exists(projectPath)
	if !exists && !createMissing {
		outcome.Status = "skipped"
		outcome.Error = "no breadcrumbs file"
		return outcome
	}

	head := scanner.ComputeSnapshot(projectPath, current, time.Now())
	_, meaningful := diff.Diff(current, head)
	if exists && !invalid && !meaningful.HasChanges {
		outcome.Status = "skipped"
		return outcome
	}

	if err := breadcrumbs.Save(projectPath, head, o.cfg.BackupOriginals && exists); err != nil {
		outcome.Status = "failed"
		outcome.Error = err.Error()
		return outcome
	}

	if exists {
		outcome.Status = "updated"
	} else {
		outcome.Status = "created"
	}
	return outcome
}

// applyBatch runs ApplyProject over the selection sequentially. Writes stay
// serial so partial failures leave an obvious frontier; onOutcome fires after
// every project for progress streaming.
func (o *Orchestrator) applyBatch(ctx context.Context, req BatchApplyRequest, onOutcome func(path, status string, processed int)) *BatchUpdateResult {
	result := &BatchUpdateResult{
		Outcomes: make([]ProjectUpdateOutcome, 0, len(req.Projects)),
	}

	for i, path := range req.Projects {
		outcome := o.ApplyProject(ctx, path, req.CreateMissing)
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case "created":
			result.Created++
			result.Successful++
		case "updated":
			result.Updated++
			result.Successful++
		case "skipped":
			result.Skipped++
		default:
			result.Failed++
			o.logger.Warn("batch apply failed for project",
				logging.Field{Key: "path", Value: path},
				logging.Field{Key: "error", Value: outcome.Error})
		}

		if onOutcome != nil {
			onOutcome(path, outcome.Status, i+1)
		}
	}

	o.logger.Info("batch apply finished",
		logging.Field{Key: "total", Value: len(req.Projects)},
		logging.Field{Key: "successful", Value: result.Successful},
		logging.Field{Key: "failed", Value: result.Failed},
		logging.Field{Key: "skipped", Value: result.Skipped})
	return result
}
