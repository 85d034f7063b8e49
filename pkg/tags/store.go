package tags

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/promptdeck/promptdeck/pkg/models"
)

const (
	backupPrefix = "tags_backup_"
	maxBackups   = 5
)

// Store manages the shared tag template file (tags.json). New pages seed
// their own collection from it; its on-disk form may also be rewritten by
// external writers, which is detected via the file modification time
// rather than locking.
type Store struct {
	mu       sync.RWMutex
	path     string
	loadedAt time.Time
}

// storeFile is the on-disk layout of tags.json.
type storeFile struct {
	Head         map[string]models.Category `json:"head"`
	Tail         map[string]models.Category `json:"tail"`
	LastModified float64                    `json:"last_modified,omitempty"`
}

// NewStore creates a store backed by the given file path. The file is not
// required to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the template collection from disk. A missing file yields an
// empty collection; category and tag names are cleaned on the way in.
func (s *Store) Load() (models.TagCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loadedAt = time.Now()
			return models.NewTagCollection(), nil
		}
		return nil, fmt.Errorf("failed to read tag store: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tag store: %w", err)
	}

	col := models.TagCollection{
		models.TagTypeHead: file.Head,
		models.TagTypeTail: file.Tail,
	}
	col.EnsureTypes()

	if info, err := os.Stat(s.path); err == nil {
		s.loadedAt = info.ModTime()
	}
	return col.CleanKeys(), nil
}

// Save writes the template collection to disk with a fresh last_modified
// timestamp, backing up the previous version first.
func (s *Store) Save(col models.TagCollection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create tag store directory: %w", err)
	}

	if err := s.rotateBackups(); err != nil {
		// Backup failure must not block the save; in-memory state stays
		// authoritative either way.
		fmt.Fprintf(os.Stderr, "warning: tag store backup failed: %v\n", err)
	}

	cleaned := col.CleanKeys()
	file := storeFile{
		Head:         cleaned[models.TagTypeHead],
		Tail:         cleaned[models.TagTypeTail],
		LastModified: float64(time.Now().UnixNano()) / float64(time.Second),
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tag store: %w", err)
	}

	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to save tag store: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		s.loadedAt = info.ModTime()
	}
	return nil
}

// Changed reports whether the backing file was modified after the last
// Load or Save, e.g. by the browser-extension bridge. Callers react by
// re-importing in merge mode rather than locking the file.
func (s *Store) Changed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := os.Stat(s.path)
	if err != nil {
		return false
	}
	return !s.loadedAt.IsZero() && info.ModTime().After(s.loadedAt)
}

// rotateBackups copies the current file to a timestamped backup and keeps
// only the newest maxBackups of them.
func (s *Store) rotateBackups() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	dir := filepath.Dir(s.path)
	stamp := time.Now().Format("20060102_150405.000000000")
	backupPath := filepath.Join(dir, fmt.Sprintf("%s%s.json", backupPrefix, stamp))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), backupPrefix) {
			backups = append(backups, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for _, old := range backups[min(len(backups), maxBackups):] {
		os.Remove(filepath.Join(dir, old))
	}
	return nil
}

// writeFileAtomic writes data via a temp file and rename so readers never
// observe a half-written store.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return nil
}
