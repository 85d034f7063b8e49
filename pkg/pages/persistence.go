package pages

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/promptdeck/promptdeck/pkg/files"
)

// registryFile is the on-disk layout of pages_data.json.
type registryFile struct {
	Pages         []*Page `json:"pages"`
	CurrentPageID int     `json:"current_page_id"`
	NextPageID    int     `json:"next_page_id"`
}

// Save persists the whole registry. The current page's view state is
// captured first and every page's legacy mirror is refreshed, so the file
// reflects what the user sees. A write failure is reported but leaves
// in-memory state authoritative.
func (m *Manager) Save() error {
	if current := m.CurrentPage(); current != nil {
		current.SaveState()
	}

	m.mu.RLock()
	file := registryFile{
		Pages:         make([]*Page, 0, len(m.order)),
		CurrentPageID: m.currentID,
		NextPageID:    m.nextID,
	}
	for _, id := range m.order {
		page := m.pages[id]
		page.syncInsertedTags()
		file.Pages = append(file.Pages, page)
	}
	m.mu.RUnlock()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pages: %w", err)
	}
	if err := files.WriteFileAtomic(m.dataPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save pages: %w", err)
	}
	return nil
}

// Load replaces the registry with the persisted one. A missing file is a
// clean empty registry; a corrupt file falls back to empty so the caller
// can create a default page. A persisted current id that no longer exists
// falls back to the first page.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read pages: %w", err)
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse pages: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = make(map[int]*Page, len(file.Pages))
	m.order = m.order[:0]
	for _, page := range file.Pages {
		if page == nil {
			continue
		}
		page.SetTemplate(m.template)
		page.setOutputState(m.output)
		m.pages[page.ID] = page
		m.order = append(m.order, page.ID)
	}
	sort.Ints(m.order)

	m.currentID = file.CurrentPageID
	if _, ok := m.pages[m.currentID]; !ok && len(m.order) > 0 {
		m.currentID = m.order[0]
	}
	if len(m.order) == 0 {
		m.currentID = 0
	}

	m.nextID = file.NextPageID
	if m.nextID < 1 {
		m.nextID = 1
	}
	// Ids are never reused: a tampered counter must not fall behind
	// existing pages.
	for _, id := range m.order {
		if id >= m.nextID {
			m.nextID = id + 1
		}
	}
	return nil
}
