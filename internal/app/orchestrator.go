package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bakerapp/baker/internal/logging"
	"github.com/bakerapp/baker/internal/registry"
	"github.com/bakerapp/baker/internal/scanner"
	"github.com/bakerapp/baker/internal/sprout"
	"github.com/bakerapp/baker/internal/trello"
)

type JobEventType string

const (
	JobEventStatus    JobEventType = "status"
	JobEventProgress  JobEventType = "progress"
	JobEventDiscovery JobEventType = "discovery"
	JobEventProject   JobEventType = "project"
	JobEventResult    JobEventType = "result"
)

type JobEvent struct {
	JobID string       `json:"jobId"`
	Type  JobEventType `json:"type"`

	// For status changes
	Status JobStatus `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`

	// For scan progress and discoveries
	Progress *scanner.Progress      `json:"progress,omitempty"`
	Folder   *scanner.ProjectFolder `json:"folder,omitempty"`

	// For per-project apply outcomes
	ProjectPath   string `json:"projectPath,omitempty"`
	ProjectStatus string `json:"projectStatus,omitempty"`
	Processed     int    `json:"processed,omitempty"`
	Total         int    `json:"total,omitempty"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobFailed   JobStatus = "failed"
	JobCanceled JobStatus = "canceled"
)

type Job struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"` // "scan" | "batch_apply"
	RootSlug  string        `json:"rootSlug,omitempty"`
	Status    JobStatus     `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	EndedAt   time.Time     `json:"endedAt"`
	Events    chan JobEvent `json:"-"`

	// Optional results:
	ScanResult  *scanner.Result    `json:"scanResult,omitempty"`
	BatchResult *BatchUpdateResult `json:"batchResult,omitempty"`
}

// Orchestrator ties the scanner, diff engine, registry and media clients
// together behind the HTTP API. Long operations run as jobs whose events
// stream over a channel to the websocket layer.
type Orchestrator struct {
	cfg      *Config
	registry *registry.Registry
	scanner  *scanner.Scanner
	trello   *trello.Client
	sprout   *sprout.Client
	logger   logging.Logger

	jobsMu     sync.Mutex
	jobs       map[string]*Job
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator ties together config, registry and logger.
func NewOrchestrator(cfg *Config, reg *registry.Registry, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		cfg:      cfg,
		registry: reg,
		scanner:  scanner.New(logger),
		trello:   trello.NewClient(cfg.TrelloBaseURL, logger),
		sprout:   sprout.NewClient(cfg.SproutBaseURL, logger),
		logger:   logger,
	}
}

func (o *Orchestrator) emitJobEvent(jobID string, ev JobEvent) {
	o.jobsMu.Lock()
	job, ok := o.jobs[jobID]
	o.jobsMu.Unlock()
	if !ok || job == nil || job.Events == nil {
		return
	}

	// Non-blocking send; drop if buffer is full.
	select {
	case job.Events <- ev:
	default:
	}
}

func (o *Orchestrator) setJob(job *Job) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if o.jobs == nil {
		o.jobs = make(map[string]*Job)
	}
	o.jobs[job.ID] = job
}

func (o *Orchestrator) setCancel(jobID string, cancel context.CancelFunc) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if o.jobCancels == nil {
		o.jobCancels = make(map[string]context.CancelFunc)
	}
	o.jobCancels[jobID] = cancel
}

func (o *Orchestrator) deleteCancel(jobID string) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	delete(o.jobCancels, jobID)
}

func (o *Orchestrator) getCancel(jobID string) context.CancelFunc {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	return o.jobCancels[jobID]
}

// newJob registers a pending job of the given type and returns it with a
// cancellable context for the work.
func (o *Orchestrator) newJob(ctx context.Context, jobType, rootSlug string) (*Job, context.Context) {
	job := &Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		RootSlug:  rootSlug,
		Status:    JobPending,
		StartedAt: time.Now().UTC(),
		Events:    make(chan JobEvent, 64),
	}
	o.setJob(job)

	jobCtx, cancel := context.WithCancel(ctx)
	o.setCancel(job.ID, cancel)

	o.emitJobEvent(job.ID, JobEvent{
		JobID:  job.ID,
		Type:   JobEventStatus,
		Status: JobPending,
	})
	return job, jobCtx
}

// runJob executes work in a goroutine, keeping the job's status and events in
// sync and closing the events channel when the work ends so websocket readers
// terminate cleanly.
func (o *Orchestrator) runJob(jobCtx context.Context, jobID string, work func(ctx context.Context) error) {
	go func() {
		defer func() {
			o.jobsMu.Lock()
			if j, ok := o.jobs[jobID]; ok {
				j.EndedAt = time.Now().UTC()
			}
			o.jobsMu.Unlock()
			o.deleteCancel(jobID)

			o.jobsMu.Lock()
			j := o.jobs[jobID]
			o.jobsMu.Unlock()
			if j != nil && j.Events != nil {
				close(j.Events)
			}
		}()

		o.setJobStatus(jobID, JobRunning, "")
		o.emitJobEvent(jobID, JobEvent{
			JobID:  jobID,
			Type:   JobEventStatus,
			Status: JobRunning,
		})

		err := work(jobCtx)

		status := JobDone
		errMsg := ""
		eventType := JobEventResult
		switch {
		case jobCtx.Err() != nil:
			status = JobCanceled
			errMsg = jobCtx.Err().Error()
			eventType = JobEventStatus
		case err != nil:
			status = JobFailed
			errMsg = err.Error()
			eventType = JobEventStatus
		}

		o.setJobStatus(jobID, status, errMsg)
		o.emitJobEvent(jobID, JobEvent{
			JobID:  jobID,
			Type:   eventType,
			Status: status,
			Error:  errMsg,
		})
	}()
}

func (o *Orchestrator) setJobStatus(jobID string, status JobStatus, errMsg string) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if j, ok := o.jobs[jobID]; ok {
		j.Status = status
		j.Error = errMsg
	}
}

// StartScanJob kicks off an asynchronous scan of a registered root. Progress
// and per-folder discoveries stream through the job's events channel, and the
// run is recorded in the root's scan history.
func (o *Orchestrator) StartScanJob(ctx context.Context, rootSlug string, opts *scanner.Options) (*Job, error) {
	root, err := o.registry.GetRootBySlug(ctx, rootSlug)
	if err != nil {
		return nil, err
	}

	scanOpts := o.cfg.Scan
	if opts != nil {
		scanOpts = *opts
	}

	job, jobCtx := o.newJob(ctx, "scan", rootSlug)
	jobID := job.ID

	o.runJob(jobCtx, jobID, func(ctx context.Context) error {
		scanID, err := o.registry.RecordScanStart(context.WithoutCancel(ctx), root.ID)
		if err != nil {
			return fmt.Errorf("recording scan start: %w", err)
		}

		result, scanErr := o.scanner.Scan(ctx, root.Path, scanOpts,
			func(p scanner.Progress) {
				progress := p
				o.emitJobEvent(jobID, JobEvent{
					JobID:    jobID,
					Type:     JobEventProgress,
					Progress: &progress,
				})
			},
			func(f scanner.ProjectFolder) {
				folder := f
				o.emitJobEvent(jobID, JobEvent{
					JobID:  jobID,
					Type:   JobEventDiscovery,
					Folder: &folder,
				})
			})

		o.jobsMu.Lock()
		if j, ok := o.jobs[jobID]; ok {
			j.ScanResult = result
		}
		o.jobsMu.Unlock()

		status := "done"
		if scanErr != nil {
			status = "canceled"
		}
		if err := o.registry.RecordScanFinish(context.WithoutCancel(ctx), scanID, status, result); err != nil {
			o.logger.Warn("recording scan finish",
				logging.Field{Key: "scan_id", Value: scanID},
				logging.Field{Key: "error", Value: err.Error()})
		}
		return scanErr
	})

	return job, nil
}

// StartBatchApplyJob kicks off an asynchronous batch update over the selected
// project folders. Per-project outcomes stream through the events channel.
func (o *Orchestrator) StartBatchApplyJob(ctx context.Context, req BatchApplyRequest) (*Job, error) {
	if len(req.Projects) == 0 {
		return nil, fmt.Errorf("no projects selected")
	}

	job, jobCtx := o.newJob(ctx, "batch_apply", "")
	jobID := job.ID

	o.runJob(jobCtx, jobID, func(ctx context.Context) error {
		result := o.applyBatch(ctx, req, func(path, status string, processed int) {
			o.emitJobEvent(jobID, JobEvent{
				JobID:         jobID,
				Type:          JobEventProject,
				ProjectPath:   path,
				ProjectStatus: status,
				Processed:     processed,
				Total:         len(req.Projects),
			})
		})

		o.jobsMu.Lock()
		if j, ok := o.jobs[jobID]; ok {
			j.BatchResult = result
		}
		o.jobsMu.Unlock()
		return ctx.Err()
	})

	return job, nil
}

func (o *Orchestrator) CancelJob(jobID string) {
	cancel := o.getCancel(jobID)
	if cancel != nil {
		cancel()
	}
}

func (o *Orchestrator) GetJob(jobID string) *Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	j, ok := o.jobs[jobID]
	if !ok {
		return nil
	}
	return j
}

// ListJobs returns all known jobs, newest first.
func (o *Orchestrator) ListJobs() []*Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	jobs := make([]*Job, 0, len(o.jobs))
	for _, j := range o.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].StartedAt.After(jobs[k].StartedAt)
	})
	return jobs
}

// Close cancels any running jobs.
func (o *Orchestrator) Close() {
	o.jobsMu.Lock()
	cancels := make([]context.CancelFunc, 0, len(o.jobCancels))
	for _, cancel := range o.jobCancels {
		cancels = append(cancels, cancel)
	}
	o.jobsMu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

func (o *Orchestrator) CreateRoot(ctx context.Context, slug, path, label string) (*registry.Root, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return o.registry.CreateRoot(ctx, slug, expanded, label)
}

func (o *Orchestrator) ListRoots(ctx context.Context) ([]registry.Root, error) {
	return o.registry.ListRoots(ctx)
}

func (o *Orchestrator) GetRootBySlug(ctx context.Context, slug string) (*registry.Root, error) {
	return o.registry.GetRootBySlug(ctx, slug)
}

func (o *Orchestrator) ListScans(ctx context.Context, rootSlug string, limit int) ([]registry.ScanRecord, error) {
	root, err := o.registry.GetRootBySlug(ctx, rootSlug)
	if err != nil {
		return nil, err
	}
	return o.registry.ListScans(ctx, root.ID, limit)
}
