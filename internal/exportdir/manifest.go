package exportdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

const (
	ManifestFile   = "export.manifest.json"
	IncompleteFile = ".export.incomplete"
)

// FileEntry describes one written file.
type FileEntry struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Size     int64  `json:"size"`
}

// Manifest records what an export produced.
type Manifest struct {
	Timestamp  time.Time   `json:"timestamp"`
	BaseName   string      `json:"base_name"`
	SpellCount int         `json:"spell_count"`
	Languages  []string    `json:"languages"`
	TextSize   int         `json:"text_size"`
	Files      []FileEntry `json:"files"`
}

// WriteManifest marks an export directory complete.
func WriteManifest(dir string, m Manifest) (string, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	// Remove a failure marker left by an earlier attempt
	os.Remove(filepath.Join(dir, IncompleteFile))

	if _, err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ReadManifest loads the manifest of an export directory.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// MarkIncomplete leaves a marker explaining why an export stopped. Files
// already written stay in place.
func MarkIncomplete(dir string, reason string, written []string) error {
	marker := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"reason":    reason,
		"written":   written,
	}

	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}

	// Remove complete marker if it exists
	os.Remove(filepath.Join(dir, ManifestFile))

	_, err = WriteFile(filepath.Join(dir, IncompleteFile), data)
	return err
}
