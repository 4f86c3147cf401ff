package breadcrumbs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidFile marks a breadcrumbs file that exists but cannot be parsed.
// Callers treat this like a missing file for diff purposes (the folder gets
// regenerated) but surface it to the user as corruption, not staleness.
var ErrInvalidFile = errors.New("breadcrumbs file is not valid JSON")

// Path returns the breadcrumbs file path inside a project folder.
func Path(projectPath string) string {
	return filepath.Join(projectPath, FileName)
}

// Load reads the breadcrumbs file for a project. A missing file is a normal
// case (new project) and returns (nil, nil). A present but unparseable file
// returns ErrInvalidFile wrapped with the path.
func Load(projectPath string) (*Snapshot, error) {
	raw, err := os.ReadFile(Path(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", Path(projectPath), err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", Path(projectPath), ErrInvalidFile)
	}
	return &snap, nil
}

// LoadRaw returns the raw file contents, or ("", nil) when the file does not
// exist. Used by the raw-diff transparency view.
func LoadRaw(projectPath string) (string, error) {
	raw, err := os.ReadFile(Path(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", Path(projectPath), err)
	}
	return string(raw), nil
}

// Render serializes a snapshot exactly as Save writes it. Previews diff
// against this output so what the user approves is byte-for-byte what lands
// on disk.
func Render(s *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing breadcrumbs: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the breadcrumbs file. When backup is true and a file already
// exists, the previous contents are copied to breadcrumbs.json.bak first.
func Save(projectPath string, s *Snapshot, backup bool) error {
	target := Path(projectPath)

	if backup {
		if prev, err := os.ReadFile(target); err == nil {
			if err := os.WriteFile(target+".bak", prev, 0o644); err != nil {
				return fmt.Errorf("writing backup for %s: %w", target, err)
			}
		}
	}

	data, err := Render(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// Exists reports whether a breadcrumbs file is present for the project.
func Exists(projectPath string) bool {
	_, err := os.Stat(Path(projectPath))
	return err == nil
}
