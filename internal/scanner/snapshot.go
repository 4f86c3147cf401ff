package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/bakerapp/baker/internal/breadcrumbs"
)

// updatedBySuffix is appended once to the creator of regenerated
// breadcrumbs so provenance survives automated updates.
const updatedBySuffix = " - updated by Baker"

// scannerName is recorded in scannedBy on every computed snapshot.
const scannerName = "Baker"

// ComputeSnapshot builds the "new" breadcrumbs snapshot for a project from
// its live folder state. When existing is non-nil its identity fields
// (title, creator, creation time, links, cards) are preserved and only the
// scanned state is refreshed; otherwise a fresh record is created. now is
// passed in so previews and the eventual write render the same timestamps.
//
// The returned snapshot is what the diff engine compares against the on-disk
// one; ComputeSnapshot itself writes nothing.
func ComputeSnapshot(projectPath string, existing *breadcrumbs.Snapshot, now time.Time) *breadcrumbs.Snapshot {
	files := ScanFootageFiles(projectPath)
	size := FolderSize(projectPath)
	stamp := now.UTC().Format(time.RFC3339)
	scanned := scannerName

	if existing == nil {
		validation := ValidateProjectFolder(projectPath)
		return &breadcrumbs.Snapshot{
			ProjectTitle:     filepath.Base(projectPath),
			NumberOfCameras:  validation.CameraCount,
			Files:            files,
			ParentFolder:     filepath.Dir(projectPath),
			CreatedBy:        scannerName,
			CreationDateTime: stamp,
			FolderSizeBytes:  &size,
			LastModified:     &stamp,
			ScannedBy:        &scanned,
		}
	}

	snap := existing.Clone()
	snap.Files = files
	snap.FolderSizeBytes = &size
	snap.LastModified = &stamp
	snap.ScannedBy = &scanned
	switch {
	case snap.CreatedBy == "":
		snap.CreatedBy = scannerName
	case snap.CreatedBy != scannerName && !strings.HasSuffix(snap.CreatedBy, updatedBySuffix):
		// Records provenance once; files we created ourselves need no suffix.
		snap.CreatedBy += updatedBySuffix
	}
	if validation := ValidateProjectFolder(projectPath); validation.CameraCount > 0 {
		snap.NumberOfCameras = validation.CameraCount
	}
	return snap
}
