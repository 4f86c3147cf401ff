package breadcrumbs_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/testutil"
)

func sampleSnapshot() *breadcrumbs.Snapshot {
	size := uint64(4096)
	modified := "2024-03-01T10:00:00Z"
	return &breadcrumbs.Snapshot{
		ProjectTitle:    "Summer Launch",
		NumberOfCameras: 2,
		Files: []breadcrumbs.FileInfo{
			{Camera: 1, Name: "a.mp4", Path: "Footage/Camera 1/a.mp4"},
		},
		ParentFolder:     "/media/archive",
		CreatedBy:        "Sam",
		CreationDateTime: "2024-03-01T10:00:00Z",
		FolderSizeBytes:  &size,
		LastModified:     &modified,
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	snap, err := breadcrumbs.Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if snap != nil {
		t.Errorf("missing file should load as nil, got %+v", snap)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, breadcrumbs.Path(dir), "{not json")

	_, err := breadcrumbs.Load(dir)
	if !errors.Is(err, breadcrumbs.ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	snap := sampleSnapshot()

	if err := breadcrumbs.Save(dir, snap, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := breadcrumbs.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", snap, got)
	}
}

func TestSave_BackupKeepsPreviousContents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := sampleSnapshot()
	if err := breadcrumbs.Save(dir, first, true); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	firstBytes, err := os.ReadFile(breadcrumbs.Path(dir))
	if err != nil {
		t.Fatalf("reading first write: %v", err)
	}

	second := sampleSnapshot()
	second.ProjectTitle = "Renamed"
	if err := breadcrumbs.Save(dir, second, true); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	backup, err := os.ReadFile(breadcrumbs.Path(dir) + ".bak")
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(backup) != string(firstBytes) {
		t.Errorf("backup does not match the previous contents")
	}
}

func TestSave_NoBackupForFirstWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := breadcrumbs.Save(dir, sampleSnapshot(), true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(breadcrumbs.Path(dir) + ".bak"); !os.IsNotExist(err) {
		t.Errorf("no backup expected on first write, stat err: %v", err)
	}
}

func TestRender_MatchesSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	snap := sampleSnapshot()

	rendered, err := breadcrumbs.Render(snap)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := breadcrumbs.Save(dir, snap, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	onDisk, err := os.ReadFile(breadcrumbs.Path(dir))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(rendered) != string(onDisk) {
		t.Error("Render output must be byte-identical to what Save writes")
	}
}

func TestLoadRaw(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw, err := breadcrumbs.LoadRaw(dir)
	if err != nil || raw != "" {
		t.Errorf("missing file: want empty string, got %q, %v", raw, err)
	}

	testutil.WriteFile(t, breadcrumbs.Path(dir), "{}")
	raw, err = breadcrumbs.LoadRaw(dir)
	if err != nil || raw != "{}" {
		t.Errorf("want {}, got %q, %v", raw, err)
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if breadcrumbs.Exists(dir) {
		t.Error("Exists true for empty dir")
	}
	testutil.WriteFile(t, filepath.Join(dir, breadcrumbs.FileName), "{}")
	if !breadcrumbs.Exists(dir) {
		t.Error("Exists false after write")
	}
}

func TestClone_DeepCopy(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	clone := snap.Clone()

	clone.Files[0].Name = "changed.mp4"
	*clone.FolderSizeBytes = 1

	if snap.Files[0].Name != "a.mp4" {
		t.Error("clone shares the files slice")
	}
	if *snap.FolderSizeBytes != 4096 {
		t.Error("clone shares the size pointer")
	}
}
