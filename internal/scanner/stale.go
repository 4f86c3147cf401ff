package scanner

import (
	"sort"

	"github.com/bakerapp/baker/internal/breadcrumbs"
)

// staleSizeThresholdBytes is the minimum folder-size drift that marks
// breadcrumbs stale. Below 1 KiB the difference is filesystem noise.
const staleSizeThresholdBytes = 1024

// CheckStale reports whether a project's breadcrumbs no longer match its
// folder: the footage file list drifted, or the folder size moved by at
// least the threshold. A missing or unparseable breadcrumbs file is not
// stale (it is absent or invalid, handled elsewhere).
func CheckStale(projectPath string) bool {
	existing, err := breadcrumbs.Load(projectPath)
	if err != nil || existing == nil {
		return false
	}

	actual := ScanFootageFiles(projectPath)
	if len(existing.Files) != len(actual) {
		return true
	}

	// Compare sorted so a reordered-but-identical list does not flag the
	// folder; order sensitivity belongs to the diff preview, not staleness.
	recorded := append([]breadcrumbs.FileInfo(nil), existing.Files...)
	sort.Slice(recorded, func(i, j int) bool {
		if recorded[i].Camera != recorded[j].Camera {
			return recorded[i].Camera < recorded[j].Camera
		}
		return recorded[i].Name < recorded[j].Name
	})
	for i := range recorded {
		if recorded[i].Name != actual[i].Name || recorded[i].Camera != actual[i].Camera {
			return true
		}
	}

	if existing.FolderSizeBytes != nil {
		currentSize := FolderSize(projectPath)
		diff := currentSize - *existing.FolderSizeBytes
		if currentSize < *existing.FolderSizeBytes {
			diff = *existing.FolderSizeBytes - currentSize
		}
		if diff >= staleSizeThresholdBytes {
			return true
		}
	}
	return false
}
