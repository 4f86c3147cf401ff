// Package testutil provides shared test doubles and fixtures for use across
// package tests: an in-memory logger and builders for project folder trees
// shaped the way the scanner expects them.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/bakerapp/baker/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Project folder fixtures ───────────────────────────────────────────

// MakeProjectFolder creates a structurally valid project folder under dir
// with the given number of camera folders, and returns its path. Each camera
// folder gets one small clip file.
func MakeProjectFolder(t *testing.T, dir, name string, cameras int) string {
	t.Helper()

	project := filepath.Join(dir, name)
	for _, sub := range []string{"Graphics", "Renders", "Projects", "Scripts"} {
		if err := os.MkdirAll(filepath.Join(project, sub), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", sub, err)
		}
	}
	for i := 1; i <= cameras; i++ {
		camera := filepath.Join(project, "Footage", "Camera "+strconv.Itoa(i))
		if err := os.MkdirAll(camera, 0o755); err != nil {
			t.Fatalf("mkdir camera %d: %v", i, err)
		}
		WriteFile(t, filepath.Join(camera, "clip.mp4"), "footage")
	}
	if cameras == 0 {
		if err := os.MkdirAll(filepath.Join(project, "Footage"), 0o755); err != nil {
			t.Fatalf("mkdir Footage: %v", err)
		}
	}
	return project
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
