// Package diff implements the breadcrumbs change-detection core: per-field
// comparison, classification of changes by category and impact, per-project
// change details, and batch-level summaries. Everything in this package is
// pure and operates on in-memory snapshots; callers own all I/O.
package diff

import (
	"github.com/bakerapp/baker/internal/breadcrumbs"
)

// Category buckets a field by why it changes.
type Category string

const (
	CategoryContent     Category = "content"
	CategoryMetadata    Category = "metadata"
	CategoryMaintenance Category = "maintenance"
)

// Impact is the user-facing weight of a change.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Declared field names of the breadcrumbs schema. The schema is closed: the
// engine walks exactly these fields, in this order.
const (
	FieldProjectTitle     = "projectTitle"
	FieldNumberOfCameras  = "numberOfCameras"
	FieldFiles            = "files"
	FieldParentFolder     = "parentFolder"
	FieldCreatedBy        = "createdBy"
	FieldCreationDateTime = "creationDateTime"
	FieldFolderSizeBytes  = "folderSizeBytes"
	FieldLastModified     = "lastModified"
	FieldScannedBy        = "scannedBy"
	FieldTrelloCardURL    = "trelloCardUrl"
	FieldVideoLinks       = "videoLinks"
	FieldTrelloCards      = "trelloCards"
)

// fieldSpec is one row of the schema table: how to read a field off a
// snapshot, how to compare two values, how to render one for display, and
// how its changes classify. This table is the single source of truth for
// "is this a maintenance field"; the meaningful-diff filter and the detail
// buckets both consult it so they can never disagree.
type fieldSpec struct {
	name     string
	display  string
	category Category
	impact   Impact

	// value extracts the field; ok is false when the field is absent from
	// the snapshot.
	value func(s *breadcrumbs.Snapshot) (v any, ok bool)

	// equal compares two present values. nil means plain ==.
	equal func(a, b any) bool

	// format renders a present value for humans. nil means fmt.Sprint.
	format func(v any) string
}

var schema = []fieldSpec{
	{
		name: FieldProjectTitle, display: "Project Title",
		category: CategoryMetadata, impact: ImpactMedium,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.ProjectTitle, s.ProjectTitle != "" },
	},
	{
		name: FieldNumberOfCameras, display: "Number of Cameras",
		category: CategoryContent, impact: ImpactMedium,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.NumberOfCameras, true },
	},
	{
		name: FieldFiles, display: "Files",
		category: CategoryContent, impact: ImpactHigh,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.Files, s.Files != nil },
		equal: func(a, b any) bool {
			return filesEqual(a.([]breadcrumbs.FileInfo), b.([]breadcrumbs.FileInfo))
		},
		format: func(v any) string { return countLabel(len(v.([]breadcrumbs.FileInfo)), "file", "files") },
	},
	{
		name: FieldParentFolder, display: "Parent Folder",
		category: CategoryMetadata, impact: ImpactLow,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.ParentFolder, s.ParentFolder != "" },
	},
	{
		name: FieldCreatedBy, display: "Created By",
		category: CategoryMetadata, impact: ImpactLow,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.CreatedBy, s.CreatedBy != "" },
	},
	{
		name: FieldCreationDateTime, display: "Creation Date",
		category: CategoryMetadata, impact: ImpactLow,
		value: func(s *breadcrumbs.Snapshot) (any, bool) {
			return s.CreationDateTime, s.CreationDateTime != ""
		},
		format: func(v any) string { return formatTimestamp(v.(string)) },
	},
	{
		name: FieldFolderSizeBytes, display: "Folder Size",
		category: CategoryMaintenance, impact: ImpactLow,
		value: func(s *breadcrumbs.Snapshot) (any, bool) {
			if s.FolderSizeBytes == nil {
				return nil, false
			}
			return *s.FolderSizeBytes, true
		},
		format: func(v any) string { return formatBytes(v.(uint64)) },
	},
	{
		name: FieldLastModified, display: "Last Modified",
		category: CategoryMaintenance, impact: ImpactLow,
		value: func(s *breadcrumbs.Snapshot) (any, bool) {
			if s.LastModified == nil {
				return nil, false
			}
			return *s.LastModified, true
		},
		format: func(v any) string { return formatTimestamp(v.(string)) },
	},
	{
		name: FieldScannedBy, display: "Scanned By",
		category: CategoryMetadata, impact: ImpactLow,
		value: func(s *breadcrumbs.Snapshot) (any, bool) {
			if s.ScannedBy == nil {
				return nil, false
			}
			return *s.ScannedBy, true
		},
	},
	{
		// The single-card predecessor of trelloCards. The policy table has
		// always treated it as metadata/medium and downstream displays rely
		// on that, so it stays that way even though the array fields around
		// it read more like content to some eyes.
		name: FieldTrelloCardURL, display: "Trello Card URL",
		category: CategoryMetadata, impact: ImpactMedium,
		value: func(s *breadcrumbs.Snapshot) (any, bool) {
			if s.TrelloCardURL == nil {
				return nil, false
			}
			return *s.TrelloCardURL, true
		},
	},
	{
		name: FieldVideoLinks, display: "Video Links",
		category: CategoryMetadata, impact: ImpactMedium,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.VideoLinks, s.VideoLinks != nil },
		equal: func(a, b any) bool {
			return videoLinksEqual(a.([]breadcrumbs.VideoLink), b.([]breadcrumbs.VideoLink))
		},
		format: func(v any) string {
			return countLabel(len(v.([]breadcrumbs.VideoLink)), "video link", "video links")
		},
	},
	{
		name: FieldTrelloCards, display: "Trello Cards",
		category: CategoryMetadata, impact: ImpactMedium,
		value: func(s *breadcrumbs.Snapshot) (any, bool) { return s.TrelloCards, s.TrelloCards != nil },
		equal: func(a, b any) bool {
			return trelloCardsEqual(a.([]breadcrumbs.TrelloCard), b.([]breadcrumbs.TrelloCard))
		},
		format: func(v any) string {
			return countLabel(len(v.([]breadcrumbs.TrelloCard)), "Trello card", "Trello cards")
		},
	},
}

// schemaByName indexes the table for classification lookups.
var schemaByName = func() map[string]*fieldSpec {
	m := make(map[string]*fieldSpec, len(schema))
	for i := range schema {
		m[schema[i].name] = &schema[i]
	}
	return m
}()

// FieldNames returns the declared schema fields in walk order.
func FieldNames() []string {
	names := make([]string, len(schema))
	for i, f := range schema {
		names[i] = f.name
	}
	return names
}

// Order is significant: the camera assignment UI keys off position, so a
// reorder with identical elements still counts as a change.
func filesEqual(a, b []breadcrumbs.FileInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func videoLinksEqual(a, b []breadcrumbs.VideoLink) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trelloCardsEqual(a, b []breadcrumbs.TrelloCard) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
