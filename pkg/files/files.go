package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/promptdeck/promptdeck/pkg/models"
)

const (
	DeckDir      = ".promptdeck"
	TagsFile     = "tags.json"
	PagesFile    = "pages_data.json"
	SettingsFile = "settings.yaml"
	HistoryFile  = "history.json"
	ImagesDir    = "images"
)

// InitProjectStructure creates the .promptdeck directory layout in the
// current working directory.
func InitProjectStructure() error {
	dirs := []string{
		DeckDir,
		filepath.Join(DeckDir, ImagesDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ProjectExists reports whether the data directory is present.
func ProjectExists() bool {
	info, err := os.Stat(DeckDir)
	return err == nil && info.IsDir()
}

// TagsPath returns the path of the shared tag template file.
func TagsPath() string {
	return filepath.Join(DeckDir, TagsFile)
}

// PagesPath returns the path of the page registry file.
func PagesPath() string {
	return filepath.Join(DeckDir, PagesFile)
}

// HistoryPath returns the path of the translation history file.
func HistoryPath() string {
	return filepath.Join(DeckDir, HistoryFile)
}

// ReadSettings loads settings.yaml, falling back to defaults when the
// file is absent.
func ReadSettings() (*models.Settings, error) {
	path := filepath.Join(DeckDir, SettingsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return settings, nil
}

// WriteSettings persists settings.yaml.
func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(DeckDir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := WriteFileAtomic(filepath.Join(DeckDir, SettingsFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// WriteFileAtomic writes data via a temp file and rename so readers never
// observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
