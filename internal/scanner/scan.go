package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bakerapp/baker/internal/breadcrumbs"
	"github.com/bakerapp/baker/internal/logging"
)

// skipPatterns are directory names that never contain project folders and
// are expensive to descend into.
var skipPatterns = []string{
	"node_modules", ".git", ".svn", ".hg", "vendor", "build", "dist",
	"target", ".cache", "tmp", "temp", "__pycache__", ".DS_Store",
}

// progressInterval throttles progress callbacks so a large scan does not
// flood the websocket.
const progressInterval = 100 * time.Millisecond

// Options control a recursive root scan.
type Options struct {
	MaxDepth      int  `json:"maxDepth" toml:"max_depth"`
	IncludeHidden bool `json:"includeHidden" toml:"include_hidden"`
}

// ProjectFolder describes one folder the scan considered project-like:
// either structurally valid, or carrying a (possibly invalid) breadcrumbs
// file.
type ProjectFolder struct {
	Path               string   `json:"path"`
	Name               string   `json:"name"`
	IsValid            bool     `json:"isValid"`
	HasBreadcrumbs     bool     `json:"hasBreadcrumbs"`
	StaleBreadcrumbs   bool     `json:"staleBreadcrumbs"`
	InvalidBreadcrumbs bool     `json:"invalidBreadcrumbs"`
	LastScanned        string   `json:"lastScanned"`
	CameraCount        int      `json:"cameraCount"`
	ValidationErrors   []string `json:"validationErrors"`
}

// Error records a filesystem problem encountered mid-scan. Scans degrade
// rather than abort: the error is recorded and the walk continues elsewhere.
type Error struct {
	Path      string `json:"path"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Result is the outcome of one root scan.
type Result struct {
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime,omitempty"`
	RootPath        string          `json:"rootPath"`
	TotalFolders    int             `json:"totalFolders"`
	ValidProjects   int             `json:"validProjects"`
	TotalFolderSize uint64          `json:"totalFolderSize"`
	Errors          []Error         `json:"errors"`
	Projects        []ProjectFolder `json:"projects"`
}

// Progress is emitted periodically while a scan runs.
type Progress struct {
	FoldersScanned int    `json:"foldersScanned"`
	CurrentPath    string `json:"currentPath"`
	ProjectsFound  int    `json:"projectsFound"`
}

// Scanner walks a root directory looking for project folders.
type Scanner struct {
	logger logging.Logger
}

// New returns a Scanner.
func New(logger logging.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan walks root up to opts.MaxDepth levels deep and classifies every
// directory it sees. onProgress (optional) receives throttled progress
// updates; onDiscovery (optional) fires once per project folder found.
// Cancelling ctx stops the walk; the partial result is still returned.
func (sc *Scanner) Scan(ctx context.Context, root string, opts Options, onProgress func(Progress), onDiscovery func(ProjectFolder)) (*Result, error) {
	result := &Result{
		StartTime: time.Now().UTC().Format(time.RFC3339),
		RootPath:  root,
		Errors:    []Error{},
		Projects:  []ProjectFolder{},
	}

	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}

	lastProgress := time.Now()

	// The root itself may be a project folder.
	sc.inspect(root, result, onDiscovery)

	sc.walk(ctx, root, 0, opts, result, &lastProgress, onProgress, onDiscovery)

	result.EndTime = time.Now().UTC().Format(time.RFC3339)
	sc.logger.Info("scan finished",
		logging.Field{Key: "root", Value: root},
		logging.Field{Key: "folders", Value: result.TotalFolders},
		logging.Field{Key: "projects", Value: len(result.Projects)})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (sc *Scanner) walk(ctx context.Context, dir string, depth int, opts Options, result *Result, lastProgress *time.Time, onProgress func(Progress), onDiscovery func(ProjectFolder)) {
	if depth >= opts.MaxDepth || ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Errors = append(result.Errors, Error{
			Path:      dir,
			Type:      "filesystem",
			Message:   err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if shouldSkipDir(name) {
			continue
		}

		path := filepath.Join(dir, name)
		result.TotalFolders++

		if onProgress != nil && time.Since(*lastProgress) >= progressInterval {
			onProgress(Progress{
				FoldersScanned: result.TotalFolders,
				CurrentPath:    path,
				ProjectsFound:  result.ValidProjects,
			})
			*lastProgress = time.Now()
		}

		if sc.inspect(path, result, onDiscovery) {
			continue
		}

		// Folders that look like partial project structures are dead ends;
		// everything else may contain projects further down.
		hasMediaDirs := dirExists(filepath.Join(path, "Footage")) || dirExists(filepath.Join(path, "Graphics"))
		if !hasMediaDirs {
			sc.walk(ctx, path, depth+1, opts, result, lastProgress, onProgress, onDiscovery)
		}
	}
}

// inspect classifies a single folder and, when it is project-like, adds it
// to the result. Returns true when the folder was recorded as a project.
func (sc *Scanner) inspect(path string, result *Result, onDiscovery func(ProjectFolder)) bool {
	validation := ValidateProjectFolder(path)

	snap, loadErr := breadcrumbs.Load(path)
	hasBreadcrumbs := loadErr == nil && snap != nil
	invalidBreadcrumbs := loadErr != nil

	if !validation.Valid && !hasBreadcrumbs && !invalidBreadcrumbs {
		return false
	}

	if validation.Valid {
		result.ValidProjects++
	}

	folder := ProjectFolder{
		Path:               path,
		Name:               filepath.Base(path),
		IsValid:            validation.Valid,
		HasBreadcrumbs:     hasBreadcrumbs,
		InvalidBreadcrumbs: invalidBreadcrumbs,
		LastScanned:        time.Now().UTC().Format(time.RFC3339),
		CameraCount:        validation.CameraCount,
		ValidationErrors:   validation.Errors,
	}
	if hasBreadcrumbs {
		folder.StaleBreadcrumbs = CheckStale(path)
	}

	result.TotalFolderSize += FolderSize(path)
	result.Projects = append(result.Projects, folder)

	sc.logger.Debug("project folder found",
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "valid", Value: folder.IsValid},
		logging.Field{Key: "stale", Value: folder.StaleBreadcrumbs})

	if onDiscovery != nil {
		onDiscovery(folder)
	}
	return true
}

func shouldSkipDir(name string) bool {
	for _, pattern := range skipPatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
