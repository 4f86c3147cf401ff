package diff_test

import (
	"reflect"
	"testing"

	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/diff"
)

func uptr(v uint64) *uint64 { return &v }
func sptr(v string) *string { return &v }

// baseSnapshot returns a fully populated snapshot for diffing against.
func baseSnapshot() *breadcrumbs.Snapshot {
	return &breadcrumbs.Snapshot{
		ProjectTitle:    "Summer Launch",
		NumberOfCameras: 2,
		Files: []breadcrumbs.FileInfo{
			{Camera: 1, Name: "a.mp4", Path: "Footage/Camera 1/a.mp4"},
			{Camera: 2, Name: "b.mp4", Path: "Footage/Camera 2/b.mp4"},
		},
		ParentFolder:     "/media/archive",
		CreatedBy:        "Sam",
		CreationDateTime: "2024-03-01T10:00:00Z",
		FolderSizeBytes:  uptr(4096),
		LastModified:     sptr("2024-03-01T10:00:00Z"),
		ScannedBy:        sptr("Baker"),
	}
}

func changeByField(t *testing.T, d diff.ProjectDiff, field string) diff.FieldChange {
	t.Helper()
	for _, fc := range d.Changes {
		if fc.Field == field {
			return fc
		}
	}
	t.Fatalf("field %q not present in diff", field)
	return diff.FieldChange{}
}

func TestDiff_IdenticalSnapshots(t *testing.T) {
	t.Parallel()

	snap := baseSnapshot()
	full, meaningful := diff.Diff(snap, snap.Clone())

	if full.HasChanges {
		t.Errorf("full diff of identical snapshots reports changes: %+v", full.Summary)
	}
	if meaningful.HasChanges {
		t.Errorf("meaningful diff of identical snapshots reports changes: %+v", meaningful.Summary)
	}
	if full.Summary.Total() != 0 {
		t.Errorf("expected zero total, got %d", full.Summary.Total())
	}
	// Present fields still appear, as unchanged.
	fc := changeByField(t, full, diff.FieldProjectTitle)
	if fc.Type != diff.ChangeUnchanged {
		t.Errorf("expected unchanged, got %s", fc.Type)
	}
}

func TestDiff_Deterministic(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.ProjectTitle = "Summer Launch v2"
	head.FolderSizeBytes = uptr(8192)

	full1, meaningful1 := diff.Diff(current, head)
	full2, meaningful2 := diff.Diff(current, head)

	if !reflect.DeepEqual(full1, full2) {
		t.Errorf("full diff not deterministic")
	}
	if !reflect.DeepEqual(meaningful1, meaningful2) {
		t.Errorf("meaningful diff not deterministic")
	}
}

func TestDiff_NilCurrentAllAdded(t *testing.T) {
	t.Parallel()

	head := baseSnapshot()
	full, _ := diff.Diff(nil, head)

	if !full.HasChanges {
		t.Fatal("expected changes for a brand new snapshot")
	}
	if full.Summary.Removed != 0 || full.Summary.Modified != 0 {
		t.Errorf("expected only additions, got %+v", full.Summary)
	}
	for _, fc := range full.Changes {
		if fc.Type != diff.ChangeAdded {
			t.Errorf("field %s: expected added, got %s", fc.Field, fc.Type)
		}
		if fc.OldDisplay != diff.AbsentDisplay {
			t.Errorf("field %s: expected old display %q, got %q", fc.Field, diff.AbsentDisplay, fc.OldDisplay)
		}
	}
}

func TestDiff_NilHeadAllRemoved(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	full, _ := diff.Diff(current, nil)

	if full.Summary.Added != 0 || full.Summary.Modified != 0 {
		t.Errorf("expected only removals, got %+v", full.Summary)
	}
	for _, fc := range full.Changes {
		if fc.Type != diff.ChangeRemoved {
			t.Errorf("field %s: expected removed, got %s", fc.Field, fc.Type)
		}
		if fc.NewDisplay != diff.AbsentDisplay {
			t.Errorf("field %s: expected new display %q, got %q", fc.Field, diff.AbsentDisplay, fc.NewDisplay)
		}
	}
}

func TestDiff_MaintenanceOnlyChange(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.FolderSizeBytes = uptr(8192)
	head.LastModified = sptr("2024-03-02T10:00:00Z")

	full, meaningful := diff.Diff(current, head)

	if !full.HasChanges {
		t.Error("full diff should report the maintenance changes")
	}
	if full.Summary.Modified != 2 {
		t.Errorf("expected 2 modifications, got %+v", full.Summary)
	}
	if meaningful.HasChanges {
		t.Error("maintenance-only drift must not count as meaningful")
	}
	if meaningful.Summary.Total() != 0 {
		t.Errorf("expected empty meaningful summary, got %+v", meaningful.Summary)
	}
	// Maintenance fields are filtered out of the meaningful change list
	// entirely, not just out of the counts.
	for _, fc := range meaningful.Changes {
		if fc.Field == diff.FieldFolderSizeBytes || fc.Field == diff.FieldLastModified {
			t.Errorf("maintenance field %s leaked into meaningful diff", fc.Field)
		}
	}
}

func TestDiff_MixedChange(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.Files = append(head.Files, breadcrumbs.FileInfo{Camera: 2, Name: "c.mp4", Path: "Footage/Camera 2/c.mp4"})
	head.FolderSizeBytes = uptr(16384)

	full, meaningful := diff.Diff(current, head)

	if full.Summary.Modified != 2 {
		t.Errorf("expected 2 modifications in full diff, got %+v", full.Summary)
	}
	if !meaningful.HasChanges {
		t.Error("a files change must be meaningful")
	}
	if meaningful.Summary.Modified != 1 {
		t.Errorf("expected exactly the files change in meaningful diff, got %+v", meaningful.Summary)
	}
}

func TestDiff_FilesReorderIsModified(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.Files[0], head.Files[1] = head.Files[1], head.Files[0]

	full, meaningful := diff.Diff(current, head)

	fc := changeByField(t, full, diff.FieldFiles)
	if fc.Type != diff.ChangeModified {
		t.Errorf("reordered files: expected modified, got %s", fc.Type)
	}
	if !meaningful.HasChanges {
		t.Error("a files reorder must be meaningful")
	}
}

func TestDiff_EmptyStringFieldIsAbsent(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.ProjectTitle = ""

	full, _ := diff.Diff(current, head)

	fc := changeByField(t, full, diff.FieldProjectTitle)
	if fc.Type != diff.ChangeRemoved {
		t.Errorf("cleared title: expected removed, got %s", fc.Type)
	}
}

func TestDiff_NumberOfCamerasAlwaysPresent(t *testing.T) {
	t.Parallel()

	// Two empty snapshots differ in nothing, but numberOfCameras is a real
	// zero, not an absence, so it shows up as unchanged.
	full, _ := diff.Diff(&breadcrumbs.Snapshot{}, &breadcrumbs.Snapshot{})

	fc := changeByField(t, full, diff.FieldNumberOfCameras)
	if fc.Type != diff.ChangeUnchanged {
		t.Errorf("expected unchanged, got %s", fc.Type)
	}
	if full.HasChanges {
		t.Error("two empty snapshots must not differ")
	}
}

func TestDiff_AbsentFromBothOmitted(t *testing.T) {
	t.Parallel()

	full, _ := diff.Diff(&breadcrumbs.Snapshot{}, &breadcrumbs.Snapshot{})

	for _, fc := range full.Changes {
		if fc.Field == diff.FieldVideoLinks || fc.Field == diff.FieldTrelloCards {
			t.Errorf("field %s absent from both snapshots should be omitted", fc.Field)
		}
	}
}

func TestCompareField_UnknownFieldFallback(t *testing.T) {
	t.Parallel()

	fc := diff.CompareField("futureField", "a", true, "b", true)
	if fc.Type != diff.ChangeModified {
		t.Errorf("expected modified, got %s", fc.Type)
	}
	if fc.OldDisplay != "a" || fc.NewDisplay != "b" {
		t.Errorf("unexpected displays: %q / %q", fc.OldDisplay, fc.NewDisplay)
	}

	same := diff.CompareField("futureField", "a", true, "a", true)
	if same.Type != diff.ChangeUnchanged {
		t.Errorf("expected unchanged, got %s", same.Type)
	}
}

func TestCompareField_Displays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		field       string
		oldVal      any
		newVal      any
		wantOldDisp string
		wantNewDisp string
	}{
		{
			name:  "folder size binary units",
			field: diff.FieldFolderSizeBytes,
			oldVal: uint64(1536), newVal: uint64(1048576),
			wantOldDisp: "1.50 KB", wantNewDisp: "1.00 MB",
		},
		{
			name:  "small sizes in bytes",
			field: diff.FieldFolderSizeBytes,
			oldVal: uint64(0), newVal: uint64(512),
			wantOldDisp: "0 B", wantNewDisp: "512 B",
		},
		{
			name:  "file counts",
			field: diff.FieldFiles,
			oldVal: []breadcrumbs.FileInfo{{Name: "a"}},
			newVal: []breadcrumbs.FileInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}},
			wantOldDisp: "1 file", wantNewDisp: "3 files",
		},
		{
			name:  "unparseable timestamps pass through",
			field: diff.FieldLastModified,
			oldVal: "not-a-date", newVal: "also-not-a-date",
			wantOldDisp: "not-a-date", wantNewDisp: "also-not-a-date",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fc := diff.CompareField(tc.field, tc.oldVal, true, tc.newVal, true)
			if fc.OldDisplay != tc.wantOldDisp {
				t.Errorf("old display: want %q, got %q", tc.wantOldDisp, fc.OldDisplay)
			}
			if fc.NewDisplay != tc.wantNewDisp {
				t.Errorf("new display: want %q, got %q", tc.wantNewDisp, fc.NewDisplay)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field    string
		category diff.Category
		impact   diff.Impact
	}{
		{diff.FieldFiles, diff.CategoryContent, diff.ImpactHigh},
		{diff.FieldNumberOfCameras, diff.CategoryContent, diff.ImpactMedium},
		{diff.FieldProjectTitle, diff.CategoryMetadata, diff.ImpactMedium},
		{diff.FieldVideoLinks, diff.CategoryMetadata, diff.ImpactMedium},
		{diff.FieldTrelloCards, diff.CategoryMetadata, diff.ImpactMedium},
		{diff.FieldTrelloCardURL, diff.CategoryMetadata, diff.ImpactMedium},
		{diff.FieldParentFolder, diff.CategoryMetadata, diff.ImpactLow},
		{diff.FieldCreatedBy, diff.CategoryMetadata, diff.ImpactLow},
		{diff.FieldScannedBy, diff.CategoryMetadata, diff.ImpactLow},
		{diff.FieldCreationDateTime, diff.CategoryMetadata, diff.ImpactLow},
		{diff.FieldFolderSizeBytes, diff.CategoryMaintenance, diff.ImpactLow},
		{diff.FieldLastModified, diff.CategoryMaintenance, diff.ImpactLow},
	}

	for _, tc := range tests {
		got := diff.Classify(tc.field)
		if got.Category != tc.category || got.Impact != tc.impact {
			t.Errorf("%s: want %s/%s, got %s/%s", tc.field, tc.category, tc.impact, got.Category, got.Impact)
		}
	}
}

func TestClassify_UnknownField(t *testing.T) {
	t.Parallel()

	got := diff.Classify("someNewField")
	if got.Category != diff.CategoryMetadata || got.Impact != diff.ImpactLow {
		t.Errorf("unknown field: want metadata/low, got %s/%s", got.Category, got.Impact)
	}
	if got.Display != "someNewField" {
		t.Errorf("unknown field display: want raw name, got %q", got.Display)
	}
}

func TestFieldNames_Closed(t *testing.T) {
	t.Parallel()

	want := []string{
		diff.FieldProjectTitle, diff.FieldNumberOfCameras, diff.FieldFiles,
		diff.FieldParentFolder, diff.FieldCreatedBy, diff.FieldCreationDateTime,
		diff.FieldFolderSizeBytes, diff.FieldLastModified, diff.FieldScannedBy,
		diff.FieldTrelloCardURL, diff.FieldVideoLinks, diff.FieldTrelloCards,
	}
	got := diff.FieldNames()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("schema walk order changed:\nwant %v\ngot  %v", want, got)
	}
}

func TestBuildProjectChangeDetail_Buckets(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.Files = head.Files[:1]
	head.ProjectTitle = "Renamed"
	head.FolderSizeBytes = uptr(100)

	full, meaningful := diff.Diff(current, head)
	detail := diff.BuildProjectChangeDetail("Renamed", "/media/archive/Renamed", full, meaningful)

	if detail.Summary.Content != 1 || detail.Summary.Metadata != 1 || detail.Summary.Maintenance != 1 {
		t.Errorf("unexpected bucket counts: %+v", detail.Summary)
	}
	if detail.Summary.Total != 3 {
		t.Errorf("expected total 3, got %d", detail.Summary.Total)
	}
	if !detail.HasChanges {
		t.Error("content and metadata changes must set the gate flag")
	}
	if len(detail.Content) != 1 || detail.Content[0].Field != diff.FieldFiles {
		t.Errorf("expected files in content bucket, got %+v", detail.Content)
	}
}

func TestBuildProjectChangeDetail_MaintenanceOnly(t *testing.T) {
	t.Parallel()

	current := baseSnapshot()
	head := baseSnapshot()
	head.LastModified = sptr("2024-04-01T09:00:00Z")

	full, meaningful := diff.Diff(current, head)
	detail := diff.BuildProjectChangeDetail("p", "/p", full, meaningful)

	if detail.HasChanges {
		t.Error("maintenance-only detail must not set the gate flag")
	}
	if len(detail.Maintenance) != 1 {
		t.Errorf("maintenance bucket should still hold the change, got %d entries", len(detail.Maintenance))
	}
	if detail.Summary.Maintenance != 1 || detail.Summary.Total != 1 {
		t.Errorf("unexpected summary: %+v", detail.Summary)
	}
}
