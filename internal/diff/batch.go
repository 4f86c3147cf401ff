package diff

import "github.com/bakerapp/baker/internal/breadcrumbs"

// ProjectPreview is the full preview computed for one project before a batch
// update: both diffs plus the classified detail. Previews are recomputed on
// every selection change and never persisted.
type ProjectPreview struct {
	ProjectName string              `json:"projectName"`
	ProjectPath string              `json:"projectPath"`
	Full        ProjectDiff         `json:"fullDiff"`
	Meaningful  ProjectDiff         `json:"meaningfulDiff"`
	Detail      ProjectChangeDetail `json:"detail"`
}

// NewProjectPreview diffs the two snapshots and assembles the preview.
func NewProjectPreview(name, path string, current, head *breadcrumbs.Snapshot) *ProjectPreview {
	full, meaningful := Diff(current, head)
	return &ProjectPreview{
		ProjectName: name,
		ProjectPath: path,
		Full:        full,
		Meaningful:  meaningful,
		Detail:      BuildProjectChangeDetail(name, path, full, meaningful),
	}
}

// Names of the recurring maintenance-style changes surfaced as batch-level
// counters instead of per-project noise.
const (
	CommonFolderSizeRecalculations = "folderSizeRecalculations"
	CommonFileListUpdates          = "fileListUpdates"
	CommonTimestampUpdates         = "timestampUpdates"
)

// commonChangeFields maps each counter to the schema field it watches.
var commonChangeFields = map[string]string{
	CommonFolderSizeRecalculations: FieldFolderSizeBytes,
	CommonFileListUpdates:          FieldFiles,
	CommonTimestampUpdates:         FieldLastModified,
}

// BatchUpdateSummary aggregates the previews for a selection of projects.
// TotalChanges counts from the full diffs, so maintenance writes show up in
// the numeric pills; ProjectsWithChanges counts meaningful changes only and
// is what gates the apply action.
type BatchUpdateSummary struct {
	TotalProjects       int            `json:"totalProjects"`
	ProjectsWithChanges int            `json:"projectsWithChanges"`
	TotalChanges        ChangeSummary  `json:"totalChanges"`
	CommonChanges       map[string]int `json:"commonChanges"`
	EstimatedDuration   string         `json:"estimatedDuration"`
}

// HasAnyChanges reports whether the batch-apply control should be enabled.
func (s BatchUpdateSummary) HasAnyChanges() bool {
	return s.ProjectsWithChanges > 0
}

// SummarizeBatch folds the previews for the selected project paths into one
// summary. selected drives TotalProjects; a path whose preview is missing
// (failed or still pending) still counts toward the total and contributes
// nothing else. The fold is pure, so recomputing over the same previews
// yields an identical summary.
func SummarizeBatch(selected []string, previews map[string]*ProjectPreview) BatchUpdateSummary {
	summary := BatchUpdateSummary{
		TotalProjects: len(selected),
		CommonChanges: map[string]int{},
	}

	for _, path := range selected {
		preview := previews[path]
		if preview == nil {
			continue
		}
		if preview.Detail.HasChanges {
			summary.ProjectsWithChanges++
		}
		summary.TotalChanges.Added += preview.Full.Summary.Added
		summary.TotalChanges.Modified += preview.Full.Summary.Modified
		summary.TotalChanges.Removed += preview.Full.Summary.Removed

		for counter, field := range commonChangeFields {
			if hasFieldUpdate(preview.Full, field) {
				summary.CommonChanges[counter]++
			}
		}
	}

	summary.EstimatedDuration = estimateDuration(summary.TotalProjects)
	return summary
}

// hasFieldUpdate reports whether the diff writes the given field (added or
// modified; removals are not "updates" the counters care about).
func hasFieldUpdate(d ProjectDiff, field string) bool {
	for _, fc := range d.Changes {
		if fc.Field == field && (fc.Type == ChangeAdded || fc.Type == ChangeModified) {
			return true
		}
	}
	return false
}

// estimateDuration buckets the project count into coarse wording. It is a
// guess, and the wording must never imply more precision than that.
func estimateDuration(projects int) string {
	switch {
	case projects <= 3:
		return "a few seconds"
	case projects <= 10:
		return "under half a minute"
	case projects <= 25:
		return "about a minute"
	default:
		return "a minute or more"
	}
}
