package files

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// HistoryEntry is one completed translation.
type HistoryEntry struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Timestamp int64  `json:"timestamp"`
}

// DefaultHistorySize caps the history file when the caller passes no limit.
const DefaultHistorySize = 500

// ReadHistory loads the translation history, newest first. A missing file
// yields an empty history.
func ReadHistory(path string) ([]HistoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

// AppendHistory prepends a new entry and rewrites the file, keeping at
// most limit entries.
func AppendHistory(path, input, output string, limit int) error {
	if limit <= 0 {
		limit = DefaultHistorySize
	}

	entries, err := ReadHistory(path)
	if err != nil {
		// A corrupt history is not worth failing a translation over.
		entries = []HistoryEntry{}
	}

	entries = append([]HistoryEntry{{
		Input:     input,
		Output:    output,
		Timestamp: time.Now().Unix(),
	}}, entries...)
	if len(entries) > limit {
		entries = entries[:limit]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return WriteFileAtomic(path, data, 0644)
}
