// Package scanner inspects project folders on disk: validating their
// structure, enumerating camera footage, measuring folder size, detecting
// stale breadcrumbs, and computing fresh breadcrumbs snapshots for the diff
// engine to compare against what is on disk.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bakerapp/baker/internal/breadcrumbs"
)

// requiredSubfolders must all exist for a folder to count as a valid
// project.
var requiredSubfolders = []string{"Footage", "Graphics", "Renders", "Projects", "Scripts"}

const cameraFolderPrefix = "Camera "

// Validation is the outcome of checking one folder's project structure.
type Validation struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	CameraCount int      `json:"cameraCount"`
}

// ValidateProjectFolder checks the folder against the expected project
// layout: the required subfolders plus at least one "Camera N" folder under
// Footage/.
func ValidateProjectFolder(path string) Validation {
	v := Validation{Errors: []string{}}

	if _, err := os.Stat(path); err != nil {
		v.Errors = append(v.Errors, "Folder does not exist")
		return v
	}

	for _, folder := range requiredSubfolders {
		info, err := os.Stat(filepath.Join(path, folder))
		if err != nil || !info.IsDir() {
			v.Errors = append(v.Errors, fmt.Sprintf("Missing required subfolder: %s", folder))
		}
	}

	entries, err := os.ReadDir(filepath.Join(path, "Footage"))
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() && strings.HasPrefix(entry.Name(), cameraFolderPrefix) {
				v.CameraCount++
			}
		}
	}
	if v.CameraCount == 0 {
		v.Errors = append(v.Errors, "No Camera folders found in Footage directory")
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// ScanFootageFiles enumerates the files under Footage/Camera N/ folders,
// skipping hidden files like .DS_Store, sorted by camera number then name.
// Paths are relative to the project folder, matching what the breadcrumbs
// file records.
func ScanFootageFiles(projectPath string) []breadcrumbs.FileInfo {
	files := []breadcrumbs.FileInfo{}

	entries, err := os.ReadDir(filepath.Join(projectPath, "Footage"))
	if err != nil {
		return files
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), cameraFolderPrefix) {
			continue
		}
		cameraNum, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), cameraFolderPrefix))
		if err != nil {
			continue
		}

		cameraFiles, err := os.ReadDir(filepath.Join(projectPath, "Footage", entry.Name()))
		if err != nil {
			continue
		}
		for _, file := range cameraFiles {
			if file.IsDir() || strings.HasPrefix(file.Name(), ".") {
				continue
			}
			files = append(files, breadcrumbs.FileInfo{
				Camera: cameraNum,
				Name:   file.Name(),
				Path:   fmt.Sprintf("Footage/%s/%s", entry.Name(), file.Name()),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Camera != files[j].Camera {
			return files[i].Camera < files[j].Camera
		}
		return files[i].Name < files[j].Name
	})
	return files
}

// FolderSize totals the size of every regular file under path, recursively.
// Unreadable entries are skipped rather than failing the measurement.
func FolderSize(path string) uint64 {
	var total uint64
	_ = filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += uint64(info.Size())
		}
		return nil
	})
	return total
}
